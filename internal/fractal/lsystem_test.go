package fractal

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/scrollgen/internal/core"
	"github.com/vovakirdan/scrollgen/internal/texture"
)

func TestParseSequence(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"plain", "F+F-F", "F+F-F", nil},
		{"unicode minus", "F−X", "F-X", nil},
		{"nested", "F[+F[-X]]F", "F[+F[-X]]F", nil},
		{"whitespace", " F F ", "FF", nil},
		{"unclosed", "F[+F", "", ErrUnbalanced},
		{"stray close", "F]", "", ErrUnbalanced},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seq, err := ParseSequence(tc.input)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("ParseSequence(%q) error = %v, expected %v", tc.input, err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSequence(%q) error: %v", tc.input, err)
			}
			if seq.String() != tc.want {
				t.Errorf("String() = %q, expected %q", seq.String(), tc.want)
			}
		})
	}
}

func TestExpandMarkerRewritten(t *testing.T) {
	seq := MustParse("F[X]X")
	if got := seq.Count(ExpandMarker); got != 2 {
		t.Fatalf("Count(ExpandMarker) = %d, expected 2", got)
	}
	if ExpandMarker.String() != "X" {
		t.Errorf("ExpandMarker.String() = %q, expected %q", ExpandMarker.String(), "X")
	}
	out := Expand(seq, MustParse("F"), 1)
	if got := out.Count(ExpandMarker); got != 0 {
		t.Errorf("Count(ExpandMarker) after Expand = %d, expected 0", got)
	}
}

func TestParseSequenceRejectsUnknown(t *testing.T) {
	if _, err := ParseSequence("FQ"); err == nil {
		t.Error("ParseSequence should reject unknown symbols")
	}
}

func TestExpandOnce(t *testing.T) {
	got := Expand(MustParse("X"), MustParse(PlantRule), 1)
	want := "F+[-F-XF-X][+FF][--XF[+X]][++F-X]"
	if got.String() != want {
		t.Errorf("Expand(X, 1) = %q, expected %q", got.String(), want)
	}
}

func TestExpandGroupsOncePerIteration(t *testing.T) {
	prod := MustParse("F")
	got := Expand(MustParse("F[F[X]]"), prod, 2)
	// Top-level F doubles twice; each group level also gets exactly one
	// pass per outer iteration.
	if got.String() != "FFFF[FFFF[FF]]" {
		t.Errorf("Expand() = %q", got.String())
	}
}

func TestExpandDoesNotMutateInput(t *testing.T) {
	axiom := MustParse("F[X]")
	before := axiom.String()
	Expand(axiom, MustParse(PlantRule), 3)
	if axiom.String() != before {
		t.Errorf("input mutated: %q -> %q", before, axiom.String())
	}
}

func TestFractalPlantGrowth(t *testing.T) {
	prev := 0
	for i := 1; i <= 4; i++ {
		n := FractalPlant(i).Count(Forward)
		if n <= prev {
			t.Errorf("iteration %d has %d forwards, expected more than %d", i, n, prev)
		}
		prev = n
	}
}

func TestRenderCollapsesRuns(t *testing.T) {
	c := texture.NewCanvas()
	stats := Render(MustParse("FFFF"), c, rand.New(rand.NewSource(1)), Turtle{X: 10, Y: 20, Dist: 2}, core.RGB{G: 1}, 0)
	if stats.Lines != 1 {
		t.Errorf("Lines = %d, expected 1", stats.Lines)
	}
	// One vertical line of length 8 covers 9 pixels.
	if c.Len() != 9 || !c.IsSet(10, 12) || !c.IsSet(10, 20) {
		t.Errorf("unexpected line: %d pixels", c.Len())
	}
}

func TestRenderGroupRestoresCursor(t *testing.T) {
	c := texture.NewCanvas()
	seq := MustParse("F[+FF]F")
	stats := Render(seq, c, rand.New(rand.NewSource(3)), Turtle{X: 50, Y: 50, Dist: 5}, core.RGB{G: 1}, 0)
	if stats.Lines != 3 || stats.Turns != 1 || stats.MaxDepth != 1 {
		t.Errorf("stats = %+v", stats)
	}
	// The trailing F continues straight up from the trunk top.
	if !c.IsSet(50, 40) {
		t.Error("cursor not restored after group")
	}
}

func TestRenderTurnRange(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for i := 0; i < 50; i++ {
		c := texture.NewCanvas()
		Render(MustParse("+F"), c, rng, Turtle{X: 100, Y: 100, Dist: 100}, core.RGB{R: 1}, 0)
		b := c.Bounds()
		// A 20-24 degree clockwise turn leans the line right by 34-41 px.
		if b.X != 100 || b.W < 35 || b.W > 42 {
			t.Fatalf("turned line bounds %+v", b)
		}
	}
}

func TestRenderDeepPlant(t *testing.T) {
	c := texture.NewCanvas()
	stats := Render(FractalPlant(5), c, rand.New(rand.NewSource(5)), Turtle{X: 400, Y: 400, Dist: 1}, core.RGB{G: 1}, 0)
	if stats.MaxDepth < 3 || c.Len() == 0 {
		t.Errorf("deep plant stats = %+v, pixels %d", stats, c.Len())
	}
}
