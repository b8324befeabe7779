// Package fractal grows vegetation textures: bracketed L-system plants,
// volume-conserving branching trees and the leaf scatter that dresses them.
// All generators draw into a texture.Canvas and take their randomness from
// an injected *rand.Rand, so a fixed seed reproduces the same picture.
package fractal

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/vovakirdan/scrollgen/internal/core"
	"github.com/vovakirdan/scrollgen/internal/texture"
)

// Symbol is one token of the plant grammar.
type Symbol uint8

const (
	Forward      Symbol = iota + 1 // F: draw forward
	TurnLeft                       // -: rotate counter-clockwise
	TurnRight                      // +: rotate clockwise
	ExpandMarker                   // X: rewritten by the production, draws nothing
	Group                          // [...]: nested branch
)

// String returns the grammar character for the symbol.
func (s Symbol) String() string {
	switch s {
	case Forward:
		return "F"
	case TurnLeft:
		return "-"
	case TurnRight:
		return "+"
	case ExpandMarker:
		return "X"
	case Group:
		return "[]"
	default:
		return "?"
	}
}

// Element is a grammar symbol, or a bracketed branch when Sym is Group.
type Element struct {
	Sym      Symbol
	Children Sequence
}

// Sequence is an L-system word.
type Sequence []Element

// ErrUnbalanced is returned when brackets do not pair up.
var ErrUnbalanced = errors.New("fractal: unbalanced brackets")

// Plant grammar: axiom X, X → PlantRule, F → FF.
const (
	PlantAxiom = "X"
	PlantRule  = "F+[−F−XF−X][+FF][−−XF[+X]][++F−X]"
)

// ParseSequence parses a word over F, X, +, - (or U+2212) and brackets.
// Whitespace is ignored.
func ParseSequence(s string) (Sequence, error) {
	stack := []Sequence{nil}
	for _, r := range s {
		top := len(stack) - 1
		switch r {
		case 'F':
			stack[top] = append(stack[top], Element{Sym: Forward})
		case 'X':
			stack[top] = append(stack[top], Element{Sym: ExpandMarker})
		case '+':
			stack[top] = append(stack[top], Element{Sym: TurnRight})
		case '-', '−':
			stack[top] = append(stack[top], Element{Sym: TurnLeft})
		case '[':
			stack = append(stack, Sequence{})
		case ']':
			if top == 0 {
				return nil, ErrUnbalanced
			}
			group := stack[top]
			stack = stack[:top]
			stack[top-1] = append(stack[top-1], Element{Sym: Group, Children: group})
		case ' ', '\t', '\n':
		default:
			return nil, fmt.Errorf("fractal: unexpected symbol %q", r)
		}
	}
	if len(stack) != 1 {
		return nil, ErrUnbalanced
	}
	return stack[0], nil
}

// MustParse is ParseSequence for grammar constants.
func MustParse(s string) Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic(err)
	}
	return seq
}

// String renders the sequence back into grammar notation.
func (seq Sequence) String() string {
	var sb strings.Builder
	seq.write(&sb)
	return sb.String()
}

func (seq Sequence) write(sb *strings.Builder) {
	for _, e := range seq {
		if e.Sym == Group {
			sb.WriteByte('[')
			e.Children.write(sb)
			sb.WriteByte(']')
			continue
		}
		sb.WriteString(e.Sym.String())
	}
}

// Count returns how many elements with the given symbol the sequence holds,
// including those inside groups.
func (seq Sequence) Count(sym Symbol) int {
	n := 0
	for _, e := range seq {
		if e.Sym == sym {
			n++
		}
		if e.Sym == Group {
			n += e.Children.Count(sym)
		}
	}
	return n
}

// Expand applies the rewrite iterations times. Each pass replaces X with the
// production, doubles F, and expands every group exactly once, so a group
// only ever sees one pass per outer iteration. The input is not modified.
func Expand(seq, production Sequence, iterations int) Sequence {
	for i := 0; i < iterations; i++ {
		next := make(Sequence, 0, len(seq)*2)
		for _, e := range seq {
			switch e.Sym {
			case ExpandMarker:
				next = append(next, production...)
			case Forward:
				next = append(next, Element{Sym: Forward}, Element{Sym: Forward})
			case Group:
				next = append(next, Element{Sym: Group, Children: Expand(e.Children, production, 1)})
			default:
				next = append(next, e)
			}
		}
		seq = next
	}
	return seq
}

// FractalPlant returns the plant word expanded iterations times.
func FractalPlant(iterations int) Sequence {
	return Expand(MustParse(PlantAxiom), MustParse(PlantRule), iterations)
}

// Turtle is the drawing cursor. Angle is in degrees, 0 points up and
// positive angles turn clockwise.
type Turtle struct {
	X, Y  float64
	Dist  float64
	Angle float64
}

// RenderStats describes one Render call.
type RenderStats struct {
	Lines    int
	Turns    int
	MaxDepth int
}

// Turn perturbation range in degrees.
const (
	minTurn = 20.0
	maxTurn = 24.0
)

type renderFrame struct {
	seq   Sequence
	pos   int
	saved Turtle
}

// Render interprets seq as turtle commands and draws it into c. Runs of
// consecutive F collapse into a single line. Each turn rotates by a random
// 20-24 degrees. A group draws from the cursor at its start and restores it
// on exit.
func Render(seq Sequence, c *texture.Canvas, rng *rand.Rand, t Turtle, col core.RGB, frame int) RenderStats {
	var stats RenderStats
	cur := t
	run := 0

	flush := func() {
		if run == 0 {
			return
		}
		length := t.Dist * float64(run)
		nx, ny := advance(cur.X, cur.Y, cur.Angle, length)
		c.SetLine(round(cur.X), round(cur.Y), round(nx), round(ny), 1, col, frame)
		cur.X, cur.Y = nx, ny
		stats.Lines++
		run = 0
	}

	stack := []renderFrame{{seq: seq, saved: t}}
	for len(stack) > 0 {
		top := len(stack) - 1
		if stack[top].pos >= len(stack[top].seq) {
			flush()
			cur = stack[top].saved
			stack = stack[:top]
			continue
		}
		e := stack[top].seq[stack[top].pos]
		stack[top].pos++

		if e.Sym == Forward {
			run++
			continue
		}
		flush()
		switch e.Sym {
		case TurnLeft:
			cur.Angle -= core.Uniform(rng, minTurn, maxTurn)
			stats.Turns++
		case TurnRight:
			cur.Angle += core.Uniform(rng, minTurn, maxTurn)
			stats.Turns++
		case Group:
			stack = append(stack, renderFrame{seq: e.Children, saved: cur})
			stats.MaxDepth = core.Max(stats.MaxDepth, len(stack)-1)
		}
	}
	return stats
}

// advance moves (x, y) by length along angle degrees, 0 = up, clockwise.
func advance(x, y, angle, length float64) (float64, float64) {
	rad := angle * math.Pi / 180
	return x + math.Sin(rad)*length, y - math.Cos(rad)*length
}

func round(v float64) int {
	return int(math.Round(v))
}
