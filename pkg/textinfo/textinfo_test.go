// ABOUTME: Tests for the TextInfo buffer set
// ABOUTME: Initial capacities, pooled growth, exact resizes, mesh buffers, and release

package textinfo

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mauromedda/textpool-go/pkg/pool"
)

func activeTotal(r *pool.Registry) int {
	return pool.Sum(r.Stats()).Active
}

func TestNew_InitialCapacities(t *testing.T) {
	t.Parallel()

	for _, reg := range []*pool.Registry{pool.NewRegistry(), nil} {
		ti := New(reg)
		got := []int{len(ti.Characters), len(ti.Words), len(ti.Links), len(ti.Lines), len(ti.Pages), len(ti.Meshes)}
		if diff := cmp.Diff([]int{8, 16, 0, 2, 4, 1}, got); diff != "" {
			t.Errorf("capacities mismatch (-want +got):\n%s", diff)
		}
		if ti.MaterialCount != 1 || ti.Registry() != reg {
			t.Errorf("MaterialCount=%d Registry=%p", ti.MaterialCount, ti.Registry())
		}
		if ti.Links == nil {
			t.Error("Links should be an empty, non-nil array")
		}
		ti.Release()
	}
}

func TestRelease_ReturnsEverything(t *testing.T) {
	t.Parallel()

	reg := pool.NewRegistry()
	ti := New(reg)
	ti.EnsureCharacters(40)
	ti.EnsureQuads(0, 3)
	ti.SetMeshes(2)
	ti.CopyMeshInfoVertexData()
	ti.LineCount = 1
	ti.LineText(0)

	if activeTotal(reg) == 0 {
		t.Fatal("expected active instances before Release")
	}
	ti.Release()
	if got := activeTotal(reg); got != 0 {
		t.Errorf("active after Release = %d; want 0\n%+v", got, reg.Stats())
	}
}

func TestRelease_SecondInstanceReusesArrays(t *testing.T) {
	t.Parallel()

	reg := pool.NewRegistry()
	first := New(reg)
	chars := first.Characters
	first.Release()
	created := pool.Sum(reg.Stats()).Created

	second := New(reg)
	if &second.Characters[0] != &chars[0] {
		t.Error("second instance did not reuse the character array")
	}
	if second != first {
		t.Error("second instance did not reuse the TextInfo object")
	}
	if got := pool.Sum(reg.Stats()).Created; got != created {
		t.Errorf("Created grew from %d to %d on reuse", created, got)
	}
}

func TestRelease_TwiceIsHarmless(t *testing.T) {
	t.Parallel()

	var reported []error
	reg := pool.NewRegistry(pool.WithReporter(func(err error) { reported = append(reported, err) }))
	ti := New(reg)
	ti.Release()
	ti.Release()

	if len(reported) != 0 {
		t.Errorf("reported %v; want none", reported)
	}
	if got := pool.Objects[TextInfo](reg).FreeCount(); got != 1 {
		t.Errorf("TextInfo free count = %d; want 1", got)
	}
}

func TestEnsureCharacters_GrowsThroughPolicy(t *testing.T) {
	t.Parallel()

	reg := pool.NewRegistry()
	ti := New(reg)
	defer ti.Release()

	ti.Characters[3].Rune = 'd'
	old := ti.Characters
	ti.EnsureCharacters(9)
	if len(ti.Characters) != 16 {
		t.Fatalf("len = %d; want 16", len(ti.Characters))
	}
	if ti.Characters[3].Rune != 'd' {
		t.Error("content was not copied forward")
	}
	if got := pool.Arrays[CharacterInfo](reg).Acquire(8); &got[0] != &old[0] {
		t.Error("old array was not released")
	}

	ti.EnsureCharacters(3)
	if len(ti.Characters) != 16 {
		t.Errorf("capacity shrank to %d", len(ti.Characters))
	}
}

func TestEnsureLines_NewRecordsAreReset(t *testing.T) {
	t.Parallel()

	ti := New(pool.NewRegistry())
	defer ti.Release()

	ti.EnsureLines(3)
	if len(ti.Lines) != 4 {
		t.Fatalf("len = %d; want 4", len(ti.Lines))
	}
	for i := 2; i < 4; i++ {
		l := ti.Lines[i]
		if l.Ascender != infinityNegative || l.Descender != infinityPositive || l.Extents.Min.X != infinityPositive {
			t.Errorf("line %d = %+v; want reset sentinels", i, l)
		}
	}
}

func TestClearLineInfo(t *testing.T) {
	t.Parallel()

	ti := New(nil)
	ti.Lines[1].CharacterCount = 5
	ti.ClearLineInfo()
	var want LineInfo
	ResetLine(&want)
	if diff := cmp.Diff([]LineInfo{want, want}, ti.Lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}

	ti.Lines = nil
	ti.ClearLineInfo()
	if len(ti.Lines) != initialLines {
		t.Errorf("len = %d; want %d", len(ti.Lines), initialLines)
	}
}

func TestSetLinks_Exact(t *testing.T) {
	t.Parallel()

	reg := pool.NewRegistry()
	ti := New(reg)
	defer ti.Release()

	ti.SetLinks(3)
	if len(ti.Links) != 3 {
		t.Fatalf("len = %d; want 3", len(ti.Links))
	}
	ti.Links[0].ID = "a"
	before := &ti.Links[0]
	ti.SetLinks(3)
	if &ti.Links[0] != before || ti.Links[0].ID != "a" {
		t.Error("SetLinks to the current length should be a no-op")
	}
}

func TestMeshes(t *testing.T) {
	t.Parallel()

	reg := pool.NewRegistry()
	ti := New(reg)
	defer ti.Release()

	ti.EnsureQuads(0, 3)
	m := ti.Meshes[0]
	if m.Quads() != 4 || len(m.Vertices) != 16 || len(m.UVs0) != 16 || len(m.Colors) != 16 {
		t.Fatalf("quads=%d vertices=%d", m.Quads(), len(m.Vertices))
	}
	if diff := cmp.Diff([]int{4, 5, 6, 6, 7, 4}, m.Triangles[6:12]); diff != "" {
		t.Errorf("triangles mismatch (-want +got):\n%s", diff)
	}

	ti.SetMeshes(2)
	ti.EnsureQuads(1, 1)
	if ti.MaterialCount != 2 {
		t.Errorf("MaterialCount = %d; want 2", ti.MaterialCount)
	}
	ti.SetMeshes(1)
	if got := pool.Arrays[Vec3](reg).BucketLen(4); got != 1 {
		t.Errorf("vertex bucket 4 holds %d; want the dropped mesh's array", got)
	}

	ti.ResetVertexLayout()
	if ti.Meshes[0].Quads() != 0 {
		t.Errorf("Quads() = %d after reset; want 0", ti.Meshes[0].Quads())
	}
}

func TestClearVertices(t *testing.T) {
	t.Parallel()

	ti := New(pool.NewRegistry())
	defer ti.Release()

	ti.EnsureQuads(0, 2)
	m := &ti.Meshes[0]
	for i := range m.Vertices {
		m.Vertices[i] = Vec3{X: 1}
	}
	m.VertexCount = 4
	ti.ClearUnusedVertices()
	if m.Vertices[3].X != 1 || m.Vertices[4].X != 0 {
		t.Errorf("vertices = %v; want first 4 kept, rest zeroed", m.Vertices)
	}

	ti.ClearMeshInfo()
	if m.Vertices[0].X != 0 || m.VertexCount != 0 {
		t.Error("ClearMeshInfo left vertex data")
	}
	if m.Triangles[2] != 2 {
		t.Error("ClearMeshInfo must keep triangles")
	}

	ti.CharacterCount = 3
	ti.Clear()
	if ti.CharacterCount != 0 || ti.MaterialCount != 1 {
		t.Errorf("Clear: CharacterCount=%d MaterialCount=%d", ti.CharacterCount, ti.MaterialCount)
	}
}

func TestCopyMeshInfoVertexData(t *testing.T) {
	t.Parallel()

	reg := pool.NewRegistry()
	ti := New(reg)
	defer ti.Release()

	ti.EnsureQuads(0, 1)
	ti.Meshes[0].Vertices[2] = Vec3{X: 3, Y: 4}
	ti.Meshes[0].VertexCount = 4

	cp := ti.CopyMeshInfoVertexData()
	if len(cp) != 1 || cp[0].Vertices[2] != (Vec3{X: 3, Y: 4}) || cp[0].VertexCount != 4 {
		t.Fatalf("copy = %+v", cp)
	}
	cp[0].Vertices[2] = Vec3{}
	if ti.Meshes[0].Vertices[2].X != 3 {
		t.Error("copy aliases the source vertices")
	}

	again := ti.CopyMeshInfoVertexData()
	if &again[0] != &cp[0] || &again[0].Vertices[0] != &cp[0].Vertices[0] {
		t.Error("unchanged meshes should reuse the cached copy")
	}

	ti.EnsureQuads(0, 2)
	grown := ti.CopyMeshInfoVertexData()
	if len(grown[0].Vertices) != 8 {
		t.Errorf("cached vertices = %d; want 8", len(grown[0].Vertices))
	}
}

func TestLineText(t *testing.T) {
	t.Parallel()

	ti := New(pool.NewRegistry())
	defer ti.Release()

	for i, c := range []string{"h", "i", "\n"} {
		ti.Characters[i] = CharacterInfo{Cluster: c, Rune: rune(c[0])}
	}
	ti.CharacterCount = 3
	ti.LineCount = 1
	ti.Lines[0] = LineInfo{FirstCharacterIndex: 0, LastCharacterIndex: 2, CharacterCount: 3}

	if got := ti.LineText(0); got != "hi" {
		t.Errorf("LineText(0) = %q; want %q", got, "hi")
	}
	if got := ti.LineText(1); got != "" {
		t.Errorf("LineText(1) = %q; want empty", got)
	}
}

func TestStrictRegistry_CatchesReleaseOfFreeArray(t *testing.T) {
	t.Parallel()

	var reported []error
	reg := pool.NewRegistry(
		pool.WithGuard(pool.GuardStrict),
		pool.WithReporter(func(err error) { reported = append(reported, err) }),
	)
	ti := New(reg)
	chars := ti.Characters
	ti.Release()

	pool.Arrays[CharacterInfo](reg).Recycle(chars)
	if len(reported) != 1 || !errors.Is(reported[0], pool.ErrDoubleRelease) {
		t.Errorf("reported %v; want one ErrDoubleRelease", reported)
	}
}
