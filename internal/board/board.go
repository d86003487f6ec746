package board

import (
	"math/rand/v2"
	"strings"

	"github.com/minelogic/minesweeper-agent/internal/knowledge"
)

/*
A Board is the ground truth a knowledge base reasons about: fixed mine
positions plus the set of cells flagged so far. The board answers
neighbor-count queries; it never reveals mine positions to a player
directly.
*/
type Board struct {
	Params
	mines   knowledge.CellSet
	flagged knowledge.CellSet
}

func New(params Params, r *rand.Rand) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	b := &Board{
		Params:  params,
		mines:   make(knowledge.CellSet),
		flagged: make(knowledge.CellSet),
	}

	/*
	 * Write down every cell, then pick mineCount off the list at
	 * random, swapping used slots to the tail.
	 */
	candidates := make([]knowledge.Cell, 0, params.CellCount())
	for row := range params.Height {
		for col := range params.Width {
			candidates = append(candidates, knowledge.Cell{Row: row, Col: col})
		}
	}
	k := len(candidates)
	for range params.MineCount {
		i := r.IntN(k)
		b.mines.Add(candidates[i])
		k--
		candidates[i] = candidates[k]
	}

	return b, nil
}

func (b *Board) InBounds(c knowledge.Cell) bool {
	return c.Row >= 0 && c.Row < b.Height && c.Col >= 0 && c.Col < b.Width
}

func (b *Board) IsMine(c knowledge.Cell) bool {
	return b.mines.Has(c)
}

// Mines returns a copy of the true mine positions. Test and rendering
// helper; players must not consult it.
func (b *Board) Mines() knowledge.CellSet {
	return b.mines.Copy()
}

// NearbyMines counts the mines within one row and column of c, not
// counting c itself.
func (b *Board) NearbyMines(c knowledge.Cell) (count int) {
	for row := c.Row - 1; row <= c.Row+1; row++ {
		for col := c.Col - 1; col <= c.Col+1; col++ {
			n := knowledge.Cell{Row: row, Col: col}
			if n != c && b.InBounds(n) && b.mines.Has(n) {
				count++
			}
		}
	}
	return count
}

func (b *Board) Flag(c knowledge.Cell) {
	if b.InBounds(c) {
		b.flagged.Add(c)
	}
}

func (b *Board) Flagged() knowledge.CellSet {
	return b.flagged.Copy()
}

// Won reports whether every mine has been flagged and nothing else.
func (b *Board) Won() bool {
	return b.flagged.Equal(b.mines)
}

func (b *Board) String() string {
	var sb strings.Builder
	for row := range b.Height {
		for col := range b.Width {
			c := knowledge.Cell{Row: row, Col: col}
			var ch string
			switch {
			case b.flagged.Has(c):
				ch = "F "
			case b.mines.Has(c):
				ch = "* "
			default:
				ch = "- "
			}
			sb.WriteString(ch)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
