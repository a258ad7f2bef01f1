// ABOUTME: TextInfo: per-text-instance buffer set grown through pooled arrays
// ABOUTME: Counters track populated prefixes; array lengths are capacities that never shrink

// Package textinfo holds the layout results of one text instance. Its
// arrays come from a pool.Registry and go back to it when the instance is
// released. A nil registry selects plain allocation throughout.
package textinfo

import (
	"image/color"

	"github.com/mauromedda/textpool-go/pkg/pool"
)

// Initial capacities of a new TextInfo.
const (
	initialCharacters = 8
	initialWords      = 16
	initialLinks      = 0
	initialLines      = 2
	initialPages      = 4
	initialMeshes     = 1
)

// Sentinel extents for line records that hold no characters yet.
const (
	infinityPositive float32 = 32767
	infinityNegative float32 = -32767
)

// TextInfo is the buffer set of one text instance. It is not safe for
// concurrent use and must be released exactly once.
type TextInfo struct {
	CharacterCount int
	SpaceCount     int
	WordCount      int
	LinkCount      int
	LineCount      int
	PageCount      int
	SpriteCount    int
	MaterialCount  int

	Characters []CharacterInfo
	Words      []WordInfo
	Links      []LinkInfo
	Lines      []LineInfo
	Pages      []PageInfo
	Meshes     []MeshInfo

	cachedMeshes []MeshInfo
	reg          *pool.Registry
}

// New acquires a TextInfo and its initial arrays from reg.
func New(reg *pool.Registry) *TextInfo {
	ti := pool.Objects[TextInfo](reg).Acquire()
	ti.reg = reg
	ti.Characters = pool.Arrays[CharacterInfo](reg).Acquire(initialCharacters)
	ti.Words = pool.Arrays[WordInfo](reg).Acquire(initialWords)
	ti.Links = pool.Arrays[LinkInfo](reg).Acquire(initialLinks)
	ti.Lines = pool.Arrays[LineInfo](reg).Acquire(initialLines)
	ti.Pages = pool.Arrays[PageInfo](reg).Acquire(initialPages)
	ti.Meshes = pool.Arrays[MeshInfo](reg).Acquire(initialMeshes)
	ti.MaterialCount = 1
	return ti
}

// Registry returns the registry the arrays came from; nil when unpooled.
func (ti *TextInfo) Registry() *pool.Registry {
	return ti.reg
}

// Clear resets the counters. Array contents are left for reuse.
func (ti *TextInfo) Clear() {
	ti.CharacterCount = 0
	ti.SpaceCount = 0
	ti.WordCount = 0
	ti.LinkCount = 0
	ti.LineCount = 0
	ti.PageCount = 0
	ti.SpriteCount = 0
	for i := range ti.Meshes {
		ti.Meshes[i].VertexCount = 0
	}
}

// ClearLineInfo resets every line record to its empty state.
func (ti *TextInfo) ClearLineInfo() {
	if ti.Lines == nil {
		ti.Lines = pool.Arrays[LineInfo](ti.reg).Acquire(initialLines)
	}
	for i := range ti.Lines {
		ResetLine(&ti.Lines[i])
	}
}

// ResetLine puts a line record in its empty state: no characters and
// inverted extents so the first character establishes the bounds.
func ResetLine(l *LineInfo) {
	*l = LineInfo{
		Ascender:  infinityNegative,
		Descender: infinityPositive,
		Extents: Extents{
			Min: Vec2{X: infinityPositive, Y: infinityPositive},
			Max: Vec2{X: infinityNegative, Y: infinityNegative},
		},
	}
}

// ClearMeshInfo zeroes the vertex data of every mesh, keeping triangles.
func (ti *TextInfo) ClearMeshInfo() {
	for i := range ti.Meshes {
		ti.Meshes[i].clearVertices(0)
		ti.Meshes[i].VertexCount = 0
	}
}

// ResetVertexLayout shrinks every mesh to zero quads.
func (ti *TextInfo) ResetVertexLayout() {
	for i := range ti.Meshes {
		ti.Meshes[i].resize(ti.reg, 0)
	}
}

// ClearUnusedVertices zeroes vertices past each mesh's VertexCount so
// they render as degenerate quads.
func (ti *TextInfo) ClearUnusedVertices() {
	for i := range ti.Meshes {
		ti.Meshes[i].clearVertices(ti.Meshes[i].VertexCount)
	}
}

// EnsureCharacters grows the character array to hold n records.
func (ti *TextInfo) EnsureCharacters(n int) {
	pool.Grow(pool.Arrays[CharacterInfo](ti.reg), &ti.Characters, n)
}

// EnsureWords grows the word array to hold n records.
func (ti *TextInfo) EnsureWords(n int) {
	pool.Grow(pool.Arrays[WordInfo](ti.reg), &ti.Words, n)
}

// EnsureLines grows the line array to hold n records. New records are in
// the empty state set by ResetLine.
func (ti *TextInfo) EnsureLines(n int) {
	had := len(ti.Lines)
	if pool.Grow(pool.Arrays[LineInfo](ti.reg), &ti.Lines, n) {
		for i := had; i < len(ti.Lines); i++ {
			ResetLine(&ti.Lines[i])
		}
	}
}

// EnsurePages grows the page array to hold n records.
func (ti *TextInfo) EnsurePages(n int) {
	pool.Grow(pool.Arrays[PageInfo](ti.reg), &ti.Pages, n)
}

// SetLinks sizes the link array to exactly n records.
func (ti *TextInfo) SetLinks(n int) {
	pool.ResizeExact(pool.Arrays[LinkInfo](ti.reg), &ti.Links, n)
}

// SetMeshes sizes the mesh array to exactly n meshes. Vertex buffers of
// meshes cut off by a shrink are released first.
func (ti *TextInfo) SetMeshes(n int) {
	for i := n; i < len(ti.Meshes); i++ {
		ti.Meshes[i].release(ti.reg)
	}
	pool.ResizeExact(pool.Arrays[MeshInfo](ti.reg), &ti.Meshes, n)
	if n > ti.MaterialCount {
		ti.MaterialCount = n
	}
}

// EnsureQuads grows mesh i to hold at least quads quads, rounding through
// the growth policy.
func (ti *TextInfo) EnsureQuads(i, quads int) {
	m := &ti.Meshes[i]
	if quads <= m.Quads() {
		return
	}
	m.resize(ti.reg, pool.NextCapacity(quads))
}

// CopyMeshInfoVertexData returns a copy of the primary vertex data of every
// mesh. The copy is owned by ti and reused by later calls; its buffers are
// replaced only when a mesh count or vertex length changes.
func (ti *TextInfo) CopyMeshInfoVertexData() []MeshInfo {
	if ti.cachedMeshes == nil || len(ti.cachedMeshes) != len(ti.Meshes) {
		ti.releaseCached()
		ti.cachedMeshes = pool.Arrays[MeshInfo](ti.reg).Acquire(len(ti.Meshes))
	}
	for i := range ti.cachedMeshes {
		src, dst := &ti.Meshes[i], &ti.cachedMeshes[i]
		n := len(src.Vertices)
		if len(dst.Vertices) != n {
			pool.ResizeExact(pool.Arrays[Vec3](ti.reg), &dst.Vertices, n)
			pool.ResizeExact(pool.Arrays[Vec2](ti.reg), &dst.UVs0, n)
			pool.ResizeExact(pool.Arrays[Vec2](ti.reg), &dst.UVs2, n)
			pool.ResizeExact(pool.Arrays[color.RGBA](ti.reg), &dst.Colors, n)
		}
		copy(dst.Vertices, src.Vertices)
		copy(dst.UVs0, src.UVs0)
		copy(dst.UVs2, src.UVs2)
		copy(dst.Colors, src.Colors)
		dst.VertexCount = src.VertexCount
	}
	return ti.cachedMeshes
}

func (ti *TextInfo) releaseCached() {
	for i := range ti.cachedMeshes {
		ti.cachedMeshes[i].release(ti.reg)
	}
	pool.Arrays[MeshInfo](ti.reg).Recycle(ti.cachedMeshes)
	ti.cachedMeshes = nil
}

// LineText returns the clusters of line i concatenated.
func (ti *TextInfo) LineText(i int) string {
	if i < 0 || i >= ti.LineCount {
		return ""
	}
	buf := pool.Lists[byte](ti.reg).Acquire()
	defer pool.Lists[byte](ti.reg).Release(buf)

	l := ti.Lines[i]
	for c := l.FirstCharacterIndex; c <= l.LastCharacterIndex && c < ti.CharacterCount; c++ {
		if ch := ti.Characters[c]; ch.Rune != '\n' && ch.Rune != '\r' {
			*buf = append(*buf, ch.Cluster...)
		}
	}
	return string(*buf)
}

// Release returns every array and ti itself to the registry. ti must not
// be used afterwards.
func (ti *TextInfo) Release() {
	reg := ti.reg
	pool.Arrays[CharacterInfo](reg).Recycle(ti.Characters)
	pool.Arrays[WordInfo](reg).Recycle(ti.Words)
	pool.Arrays[LinkInfo](reg).Recycle(ti.Links)
	pool.Arrays[LineInfo](reg).Recycle(ti.Lines)
	pool.Arrays[PageInfo](reg).Recycle(ti.Pages)
	for i := range ti.Meshes {
		ti.Meshes[i].release(reg)
	}
	pool.Arrays[MeshInfo](reg).Recycle(ti.Meshes)
	ti.releaseCached()
	pool.Objects[TextInfo](reg).Release(ti)
}
