// ABOUTME: Pooled vertex buffers for MeshInfo: quad-sized resize, clears, release
// ABOUTME: Every vertex array goes through the registry's per-type array pools

package textinfo

import (
	"image/color"

	"github.com/mauromedda/textpool-go/pkg/pool"
)

// Quads returns the number of quads the mesh buffers can hold.
func (m *MeshInfo) Quads() int {
	return len(m.Vertices) / 4
}

// resize sets the mesh capacity to exactly quads quads. Triangle indices
// for newly added quads are filled in; existing vertex data is kept.
func (m *MeshInfo) resize(r *pool.Registry, quads int) {
	n := quads * 4
	pool.ResizeExact(pool.Arrays[Vec3](r), &m.Vertices, n)
	pool.ResizeExact(pool.Arrays[Vec2](r), &m.UVs0, n)
	pool.ResizeExact(pool.Arrays[Vec2](r), &m.UVs2, n)
	pool.ResizeExact(pool.Arrays[color.RGBA](r), &m.Colors, n)

	had := len(m.Triangles) / 6
	pool.ResizeExact(pool.Arrays[int](r), &m.Triangles, quads*6)
	for q := had; q < quads; q++ {
		v, t := q*4, q*6
		m.Triangles[t+0] = v + 0
		m.Triangles[t+1] = v + 1
		m.Triangles[t+2] = v + 2
		m.Triangles[t+3] = v + 2
		m.Triangles[t+4] = v + 3
		m.Triangles[t+5] = v + 0
	}
	if m.VertexCount > n {
		m.VertexCount = n
	}
}

// clearVertices zeroes vertex data from index from onward. Triangles stay.
func (m *MeshInfo) clearVertices(from int) {
	if from >= len(m.Vertices) {
		return
	}
	clear(m.Vertices[from:])
	clear(m.UVs0[from:])
	clear(m.UVs2[from:])
	clear(m.Colors[from:])
}

// release hands every vertex array back to r.
func (m *MeshInfo) release(r *pool.Registry) {
	pool.Arrays[Vec3](r).Recycle(m.Vertices)
	pool.Arrays[Vec2](r).Recycle(m.UVs0)
	pool.Arrays[Vec2](r).Recycle(m.UVs2)
	pool.Arrays[color.RGBA](r).Recycle(m.Colors)
	pool.Arrays[int](r).Recycle(m.Triangles)
	*m = MeshInfo{}
}
