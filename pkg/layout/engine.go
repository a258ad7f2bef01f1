// ABOUTME: Layout engine: fills a TextInfo from text with wrapping, pages, links, and quads
// ABOUTME: Grapheme-aware via uniseg, cell widths via go-runewidth, glyph boxes via basicfont

// Package layout computes character, word, line, page, link, and mesh
// records for a string and writes them into a textinfo.TextInfo, growing
// its pooled buffers as needed.
package layout

import (
	"image"
	"image/color"
	"unicode"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/norm"

	"github.com/mauromedda/textpool-go/pkg/pool"
	"github.com/mauromedda/textpool-go/pkg/textinfo"
)

// Engine lays out text. The zero value is not usable; call NewEngine.
type Engine struct {
	Face         *basicfont.Face
	MaxWidth     int // cells per line; 0 disables wrapping
	LinesPerPage int // 0 puts everything on one page
	Color        color.RGBA
}

// NewEngine returns an engine using the 7x13 bitmap face.
func NewEngine(maxWidth, linesPerPage int) *Engine {
	return &Engine{
		Face:         basicfont.Face7x13,
		MaxWidth:     maxWidth,
		LinesPerPage: linesPerPage,
		Color:        color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

type linkSpan struct {
	id    string
	first int
	count int
}

// run carries the cursor state of one Layout call.
type run struct {
	e    *Engine
	ti   *textinfo.TextInfo
	face font.Face

	lineHeight float32
	ascent     float32
	descent    float32
	atlas      image.Rectangle

	line     int
	column   int
	pen      fixed.Int26_6
	inWord   bool
	quads    int
	openLink int
}

// Layout replaces the contents of ti with the layout of text.
func (e *Engine) Layout(ti *textinfo.TextInfo, text string) {
	text = norm.NFC.String(text)

	m := e.Face.Metrics()
	r := &run{
		e:          e,
		ti:         ti,
		face:       e.Face,
		lineHeight: toFloat(m.Height),
		ascent:     toFloat(m.Ascent),
		descent:    toFloat(m.Descent),
		atlas:      e.Face.Mask.Bounds(),
		openLink:   -1,
	}

	ti.Clear()
	ti.ClearLineInfo()
	if len(ti.Meshes) == 0 {
		ti.SetMeshes(1)
	}

	links := pool.Lists[linkSpan](ti.Registry()).Acquire()
	defer pool.Lists[linkSpan](ti.Registry()).Release(links)

	r.beginLine()
	for i := 0; i < len(text); {
		switch {
		case text[i] == '\x1b':
			i = skipEscape(text, i)
			continue
		case text[i] == '<':
			if id, end, ok := openLink(text, i); ok {
				r.closeLink(links)
				*links = append(*links, linkSpan{id: id, first: ti.CharacterCount})
				r.openLink = len(*links) - 1
				i = end
				continue
			}
			if r.openLink >= 0 && len(text)-i >= len(linkClose) && text[i:i+len(linkClose)] == linkClose {
				r.closeLink(links)
				i += len(linkClose)
				continue
			}
		}

		cluster, rest, _, _ := uniseg.FirstGraphemeClusterInString(text[i:], -1)
		r.place(cluster, i)
		i += len(text[i:]) - len(rest)
	}
	r.closeLink(links)
	r.endWord()
	r.finishLine()

	ti.LineCount = r.line + 1
	ti.PageCount = r.pageOfLine(r.line) + 1
	r.buildPages()

	ti.SetLinks(len(*links))
	for i, l := range *links {
		ti.Links[i] = textinfo.LinkInfo{ID: l.id, FirstCharacterIndex: l.first, CharacterCount: l.count}
	}
	ti.LinkCount = len(*links)

	ti.Meshes[0].VertexCount = r.quads * 4
	ti.ClearUnusedVertices()
}

func (r *run) closeLink(links *[]linkSpan) {
	if r.openLink < 0 {
		return
	}
	l := &(*links)[r.openLink]
	l.count = r.ti.CharacterCount - l.first
	r.openLink = -1
}

// place records one grapheme cluster found at byte offset index.
func (r *run) place(cluster string, index int) {
	ti := r.ti
	first, _ := utf8.DecodeRuneInString(cluster)
	control := first == '\n' || first == '\r'
	cells := 0
	if !control {
		cells = runewidth.StringWidth(cluster)
	}

	if !control && r.e.MaxWidth > 0 && r.column > 0 && r.column+cells > r.e.MaxWidth {
		r.endWord()
		r.newLine()
	}

	ci := ti.CharacterCount
	ti.EnsureCharacters(ci + 1)
	ti.CharacterCount++

	l := &ti.Lines[r.line]
	if l.CharacterCount == 0 {
		l.FirstCharacterIndex = ci
	}
	l.CharacterCount++
	l.LastCharacterIndex = ci

	baseline := -float32(r.line) * r.lineHeight
	ch := textinfo.CharacterInfo{
		Cluster:    cluster,
		Rune:       first,
		Index:      index,
		LineNumber: r.line,
		PageNumber: r.pageOfLine(r.line),
		Column:     r.column,
		Width:      cells,
		Origin:     toFloat(r.pen),
		Baseline:   baseline,
		Ascender:   baseline + r.ascent,
		Descender:  baseline - r.descent,
	}

	switch {
	case control:
		l.ControlCharacterCount++
		ti.Characters[ci] = ch
		r.endWord()
		if cluster[len(cluster)-1] == '\n' {
			r.newLine()
		}
		return
	case unicode.IsSpace(first):
		l.SpaceCount++
		ti.SpaceCount++
		r.endWord()
	default:
		r.extendWord(ci)
	}

	advance := r.advance(first, cells)
	ch.Advance = toFloat(advance)
	if advance > 0 && !unicode.IsSpace(first) {
		r.emitQuad(&ch, first, advance)
		l.VisibleCharacterCount++
	}
	ti.Characters[ci] = ch

	r.pen += advance
	r.column += cells
	l.Width = toFloat(r.pen)
	if ch.Advance > l.MaxAdvance {
		l.MaxAdvance = ch.Advance
	}
}

// advance is the pen movement for a cluster spanning cells cells.
func (r *run) advance(first rune, cells int) fixed.Int26_6 {
	if cells == 0 {
		return 0
	}
	adv, ok := r.face.GlyphAdvance(first)
	if !ok {
		adv = fixed.I(r.e.Face.Advance)
	}
	return adv * fixed.Int26_6(cells)
}

// emitQuad appends the glyph quad for ch to mesh 0.
func (r *run) emitQuad(ch *textinfo.CharacterInfo, first rune, advance fixed.Int26_6) {
	ti := r.ti
	q := r.quads
	ti.EnsureQuads(0, q+1)
	r.quads++

	dr, _, maskp, _, ok := r.face.Glyph(fixed.Point26_6{}, first)
	if !ok {
		dr = image.Rect(0, -int(r.ascent), advance.Round(), int(r.descent))
	}

	x0 := ch.Origin + float32(dr.Min.X)
	x1 := ch.Origin + toFloat(advance)
	if w := float32(dr.Dx()); ok && w > 0 && ch.Width <= 1 {
		x1 = x0 + w
	}
	top := ch.Baseline - float32(dr.Min.Y)
	bottom := ch.Baseline - float32(dr.Max.Y)

	ch.BottomLeft = textinfo.Vec3{X: x0, Y: bottom}
	ch.TopRight = textinfo.Vec3{X: x1, Y: top}
	ch.VertexIndex = q * 4
	ch.IsVisible = true

	m := &ti.Meshes[0]
	v := q * 4
	m.Vertices[v+0] = textinfo.Vec3{X: x0, Y: bottom}
	m.Vertices[v+1] = textinfo.Vec3{X: x0, Y: top}
	m.Vertices[v+2] = textinfo.Vec3{X: x1, Y: top}
	m.Vertices[v+3] = textinfo.Vec3{X: x1, Y: bottom}

	aw, ah := float32(r.atlas.Dx()), float32(r.atlas.Dy())
	u0, u1 := float32(maskp.X)/aw, float32(maskp.X+dr.Dx())/aw
	v0, v1 := float32(maskp.Y)/ah, float32(maskp.Y+dr.Dy())/ah
	m.UVs0[v+0] = textinfo.Vec2{X: u0, Y: v1}
	m.UVs0[v+1] = textinfo.Vec2{X: u0, Y: v0}
	m.UVs0[v+2] = textinfo.Vec2{X: u1, Y: v0}
	m.UVs0[v+3] = textinfo.Vec2{X: u1, Y: v1}
	for k := 0; k < 4; k++ {
		m.UVs2[v+k] = textinfo.Vec2{X: float32(ch.Width)}
		m.Colors[v+k] = r.e.Color
	}

	l := &ti.Lines[r.line]
	l.Extents.Min.X = min(l.Extents.Min.X, x0)
	l.Extents.Min.Y = min(l.Extents.Min.Y, bottom)
	l.Extents.Max.X = max(l.Extents.Max.X, x1)
	l.Extents.Max.Y = max(l.Extents.Max.Y, top)
}

func (r *run) extendWord(ci int) {
	ti := r.ti
	if !r.inWord {
		ti.EnsureWords(ti.WordCount + 1)
		ti.Words[ti.WordCount] = textinfo.WordInfo{FirstCharacterIndex: ci}
		ti.WordCount++
		ti.Lines[r.line].WordCount++
		r.inWord = true
	}
	w := &ti.Words[ti.WordCount-1]
	w.LastCharacterIndex = ci
	w.CharacterCount++
}

func (r *run) endWord() {
	r.inWord = false
}

func (r *run) beginLine() {
	r.ti.EnsureLines(r.line + 1)
	l := &r.ti.Lines[r.line]
	textinfo.ResetLine(l)
	l.FirstCharacterIndex = r.ti.CharacterCount
	l.LastCharacterIndex = r.ti.CharacterCount - 1
	l.Baseline = -float32(r.line) * r.lineHeight
	l.Ascender = l.Baseline + r.ascent
	l.Descender = l.Baseline - r.descent
	r.column = 0
	r.pen = 0
}

func (r *run) finishLine() {
	l := &r.ti.Lines[r.line]
	if l.VisibleCharacterCount == 0 {
		l.Extents = textinfo.Extents{
			Min: textinfo.Vec2{X: 0, Y: l.Descender},
			Max: textinfo.Vec2{X: 0, Y: l.Ascender},
		}
	}
}

func (r *run) newLine() {
	r.finishLine()
	r.line++
	r.beginLine()
}

func (r *run) pageOfLine(line int) int {
	if r.e.LinesPerPage <= 0 {
		return 0
	}
	return line / r.e.LinesPerPage
}

// buildPages derives page records from the finished lines.
func (r *run) buildPages() {
	ti := r.ti
	ti.EnsurePages(ti.PageCount)
	for p := 0; p < ti.PageCount; p++ {
		ti.Pages[p] = textinfo.PageInfo{FirstCharacterIndex: -1, LastCharacterIndex: -1}
	}
	for i := 0; i < ti.LineCount; i++ {
		l := ti.Lines[i]
		pg := &ti.Pages[r.pageOfLine(i)]
		if pg.FirstCharacterIndex < 0 {
			pg.FirstCharacterIndex = l.FirstCharacterIndex
			pg.Ascender = l.Ascender
		}
		if l.CharacterCount > 0 {
			pg.LastCharacterIndex = l.LastCharacterIndex
		}
		pg.Descender = l.Descender
	}
}

func toFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
