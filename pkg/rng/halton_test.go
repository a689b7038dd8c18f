package rng

import (
	"math"
	"testing"

	"github.com/avellis/pathtracer/pkg/core"
)

func TestHalton_FirstTerms(t *testing.T) {
	// base-2 radical inverse of 1,2,3,4 is 0.5, 0.25, 0.75, 0.125
	want := []float64{0.5, 0.25, 0.75, 0.125}
	for i, w := range want {
		got := halton(i+1, 2)
		if math.Abs(got-w) > 1e-12 {
			t.Errorf("halton(%d,2) = %v, want %v", i+1, got, w)
		}
	}
}

func TestTable_GetSample_Range(t *testing.T) {
	tbl := NewTable(256)
	for n := 0; n < 256; n++ {
		s := tbl.GetSample(n, core.NewVec2(0, 0))
		if s.X < 0 || s.X >= 1 || s.Y < 0 || s.Y >= 1 {
			t.Fatalf("GetSample(%d) = %v, want components in [0,1)", n, s)
		}
	}
}

func TestTable_GetSample_Deterministic(t *testing.T) {
	tbl := NewTable(64)
	off := core.NewVec2(0.1, 0.2)
	a := tbl.GetSample(5, off)
	b := tbl.GetSample(5, off)
	if a != b {
		t.Errorf("GetSample not deterministic: %v != %v", a, b)
	}
}

func TestTable_GetSample_Stratified(t *testing.T) {
	// Spec §8: successive samples should not collapse onto the same point;
	// check that no two samples in a small batch coincide.
	tbl := NewTable(16)
	seen := map[core.Vec2]bool{}
	for n := 0; n < 16; n++ {
		s := tbl.GetSample(n, core.NewVec2(0, 0))
		if seen[s] {
			t.Errorf("duplicate sample at n=%d: %v", n, s)
		}
		seen[s] = true
	}
}

func TestTable_GetDiskSample_WithinRadius(t *testing.T) {
	tbl := NewTable(128)
	radius := 2.5
	for n := 0; n < 128; n++ {
		p := tbl.GetDiskSample(n, core.NewVec2(0, 0), radius)
		dist := math.Sqrt(p.X*p.X + p.Y*p.Y)
		if dist > radius+1e-9 {
			t.Fatalf("GetDiskSample(%d) = %v, dist %v exceeds radius %v", n, p, dist, radius)
		}
	}
}

func TestTable_GetDiskSample_FoldsOffsetBeyondUnit(t *testing.T) {
	tbl := NewTable(8)
	// an offset that pushes sqrt(R)+off.X past 1 must fold back via reflection
	// rather than escape the unit disk.
	p := tbl.GetDiskSample(1, core.NewVec2(0.99, 0), 1.0)
	dist := math.Sqrt(p.X*p.X + p.Y*p.Y)
	if dist > 1+1e-9 {
		t.Errorf("folded disk sample escaped unit radius: %v (dist %v)", p, dist)
	}
}
