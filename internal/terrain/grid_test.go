package terrain

import "testing"

func TestGridAt(t *testing.T) {
	g := NewGrid(4, 3)
	if g.At(-1, 0) != nil || g.At(4, 0) != nil || g.At(0, 3) != nil {
		t.Error("out-of-bounds At should return nil")
	}
	if g.At(3, 2).Type != TileEmpty {
		t.Error("new grid tiles should be empty")
	}
	g.At(1, 2).Solid = true
	if !g.Tiles[2*4+1].Solid {
		t.Error("grid is not row-major")
	}
}

func TestHeightFieldRange(t *testing.T) {
	tests := []struct {
		name string
		rows int
		p    HeightParams
	}{
		{"default", 32, HeightParams{Persistence: 0.75, Frequency: 0.05, Amplitude: 8}},
		{"huge amplitude", 20, HeightParams{Persistence: 0.9, Frequency: 0.2, Amplitude: 100}},
		{"flat", 16, HeightParams{Persistence: 0.5, Frequency: 0.05, Amplitude: 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			heights := HeightField(0.42, 64, tc.rows, tc.p)
			if len(heights) != 64 {
				t.Fatalf("len = %d", len(heights))
			}
			for col, h := range heights {
				if h < MinRow || h > tc.rows-3 {
					t.Errorf("column %d height %d outside [%d,%d]", col, h, MinRow, tc.rows-3)
				}
			}
		})
	}
}

func TestHeightFieldDeterministic(t *testing.T) {
	p := HeightParams{Persistence: 0.75, Frequency: 0.05, Amplitude: 6}
	a := HeightField(0.3, 40, 30, p)
	b := HeightField(0.3, 40, 30, p)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("column %d differs: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestFillColumns(t *testing.T) {
	heights := []int{6, 8, 7, 9, 6}
	g := NewGrid(len(heights), 14)
	g.FillColumns(heights, ColumnSpec{GroundDepth: 3, WallHeight: 4, Surface: 0, Subsoil: 1, Water: 2})

	for col := range heights {
		if g.SolidRuns(col) != 1 {
			t.Errorf("column %d has %d solid runs", col, g.SolidRuns(col))
		}
	}
	for col := 1; col < 4; col++ {
		if g.SurfaceRow(col) != heights[col] || g.SolidCount(col) != 3 {
			t.Errorf("column %d surface %d count %d", col, g.SurfaceRow(col), g.SolidCount(col))
		}
		if g.At(col, heights[col]).Type != 0 || g.At(col, heights[col]+1).Type != 1 {
			t.Errorf("column %d surface/subsoil types wrong", col)
		}
	}
	for _, col := range []int{0, 4} {
		if g.SurfaceRow(col) != 2 {
			t.Errorf("wall column %d starts at %d, expected 2", col, g.SurfaceRow(col))
		}
		if !g.IsSolid(col, 13) {
			t.Errorf("wall column %d does not reach the bottom", col)
		}
	}
}

func TestFillColumnsWater(t *testing.T) {
	heights := []int{5, 9, 5}
	g := NewGrid(3, 12)
	g.FillColumns(heights, ColumnSpec{GroundDepth: 1, WaterRow: 7, Water: 2})

	for row := 7; row < 9; row++ {
		if tile := g.At(1, row); !tile.Liquid || tile.Solid || tile.Type != 2 {
			t.Errorf("row %d of the dip = %+v, expected water", row, tile)
		}
	}
	if g.At(1, 6).Liquid {
		t.Error("water above the water row")
	}
	if g.At(0, 7).Liquid {
		t.Error("water inside solid ground")
	}
}
