// ABOUTME: Per-element layout records held by a TextInfo buffer set
// ABOUTME: Characters, words, links, lines, pages, and mesh vertex buffers

package textinfo

import "image/color"

// Vec2 is a 2D point or texture coordinate.
type Vec2 struct{ X, Y float32 }

// Vec3 is a mesh vertex position.
type Vec3 struct{ X, Y, Z float32 }

// Extents is an axis-aligned bounding box.
type Extents struct{ Min, Max Vec2 }

// CharacterInfo describes one laid-out grapheme cluster.
type CharacterInfo struct {
	Cluster    string
	Rune       rune // first rune of Cluster
	Index      int  // byte offset in the source text
	LineNumber int
	PageNumber int
	Column     int // cell column within the line
	Width      int // cells
	Origin     float32
	Advance    float32
	Baseline   float32
	Ascender   float32
	Descender  float32
	BottomLeft Vec3
	TopRight   Vec3

	MaterialIndex int
	VertexIndex   int // first of four vertices in the material's mesh
	IsVisible     bool
}

// WordInfo spans a run of non-space characters on one line.
type WordInfo struct {
	FirstCharacterIndex int
	LastCharacterIndex  int
	CharacterCount      int
}

// LinkInfo spans the characters inside a link tag.
type LinkInfo struct {
	ID                  string
	FirstCharacterIndex int
	CharacterCount      int
}

// LineInfo aggregates the characters of one line.
type LineInfo struct {
	CharacterCount        int
	VisibleCharacterCount int
	SpaceCount            int
	WordCount             int
	ControlCharacterCount int
	FirstCharacterIndex   int
	LastCharacterIndex    int

	Width      float32
	Ascender   float32
	Descender  float32
	Baseline   float32
	MaxAdvance float32
	Extents    Extents
}

// PageInfo aggregates the lines of one page.
type PageInfo struct {
	FirstCharacterIndex int
	LastCharacterIndex  int
	Ascender            float32
	Descender           float32
}

// MeshInfo holds the quad geometry for one material. Vertex arrays are
// sized in whole quads: four vertices and six triangle indices each.
// VertexCount is the number of leading vertices in use.
type MeshInfo struct {
	VertexCount int
	Vertices    []Vec3
	UVs0        []Vec2
	UVs2        []Vec2
	Colors      []color.RGBA
	Triangles   []int
}
