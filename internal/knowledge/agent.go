package knowledge

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
)

var Log *slog.Logger = slog.Default()

/*
An Agent holds everything a player knows about one game: the cells it
has already probed, the cells proven to be mines or proven safe, and
the active sentences that are not yet fully resolved. All four only
ever grow in information; the agent is created once per game and never
rolled back.

The agent is not safe for concurrent use. [Agent.AddKnowledge] runs its
whole inference loop before returning, so a single game loop never sees
partial state.
*/
type Agent struct {
	width, height int
	rnd           *rand.Rand

	movesMade CellSet
	mines     CellSet
	safes     CellSet
	knowledge []*Sentence
}

func NewAgent(width, height int, rnd *rand.Rand) (*Agent, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid grid dimensions %dx%d", width, height)
	}
	return &Agent{
		width:     width,
		height:    height,
		rnd:       rnd,
		movesMade: make(CellSet),
		mines:     make(CellSet),
		safes:     make(CellSet),
	}, nil
}

func (a *Agent) Width() int  { return a.width }
func (a *Agent) Height() int { return a.height }

func (a *Agent) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < a.height && c.Col >= 0 && c.Col < a.width
}

// Mines returns a copy of the set of cells proven to be mines.
func (a *Agent) Mines() CellSet { return a.mines.Copy() }

// Safes returns a copy of the set of cells proven safe.
func (a *Agent) Safes() CellSet { return a.safes.Copy() }

// MovesMade returns a copy of the set of cells already probed.
func (a *Agent) MovesMade() CellSet { return a.movesMade.Copy() }

// SentenceCount reports how many unresolved sentences are active.
func (a *Agent) SentenceCount() int { return len(a.knowledge) }

/*
MarkMine records cell as a proven mine and broadcasts the fact to every
active sentence. Idempotent: a second call finds the cell already gone
from every cell set.
*/
func (a *Agent) MarkMine(cell Cell) {
	a.mines.Add(cell)
	for _, s := range a.knowledge {
		s.MarkMine(cell)
	}
}

// MarkSafe is the symmetric broadcast for a proven safe cell.
func (a *Agent) MarkSafe(cell Cell) {
	a.safes.Add(cell)
	for _, s := range a.knowledge {
		s.MarkSafe(cell)
	}
}

func (a *Agent) hasSentence(s *Sentence) bool {
	for _, other := range a.knowledge {
		if other.Equal(s) {
			return true
		}
	}
	return false
}

/*
AddKnowledge ingests one observation: cell was probed and turned out to
have exactly count mines among its in-bounds neighbors. It records the
move, marks the cell safe, builds a sentence over the neighbors whose
status is still unknown, and then runs inference to a fixed point.

The count is a precondition, not something the agent can check against
ground truth. Malformed input (out-of-bounds cell, repeated cell,
impossible count) is rejected up front; a count that is merely *wrong*
surfaces later as a contradictory sentence, reported as an error from
whichever AddKnowledge call exposes it.
*/
func (a *Agent) AddKnowledge(cell Cell, count int) (err error) {
	if !a.InBounds(cell) {
		return fmt.Errorf("cell %s out of %dx%d grid", cell, a.width, a.height)
	}
	if a.movesMade.Has(cell) {
		return fmt.Errorf("cell %s was already probed", cell)
	}
	if a.mines.Has(cell) {
		return fmt.Errorf("cell %s is a proven mine", cell)
	}
	neighbors := a.neighbors(cell)
	if count < 0 || count > len(neighbors) {
		return fmt.Errorf(
			"cell %s cannot have %d mined neighbors", cell, count,
		)
	}

	defer func() {
		var ae AssertionError
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && errors.As(e, &ae) {
				err = fmt.Errorf("knowledge base corrupted: %w", ae)
				return
			}
			panic(r)
		}
	}()

	a.movesMade.Add(cell)
	a.MarkSafe(cell)

	/*
	 * Neighbors already resolved carry no information for the new
	 * sentence: a known mine is accounted for by decrementing the
	 * count, a known safe simply drops out.
	 */
	unknown := make(CellSet)
	for c := range neighbors {
		if a.mines.Has(c) {
			count--
			continue
		}
		if a.safes.Has(c) {
			continue
		}
		unknown.Add(c)
	}
	if count < 0 || count > len(unknown) {
		panic(AssertionError{fmt.Sprintf(
			"observation at %s contradicts known facts", cell,
		)})
	}
	if len(unknown) > 0 {
		s := NewSentence(unknown, count)
		if !a.hasSentence(s) {
			a.knowledge = append(a.knowledge, s)
		}
	}

	a.infer()
	return nil
}

func (a *Agent) neighbors(cell Cell) CellSet {
	out := make(CellSet, 8)
	for r := cell.Row - 1; r <= cell.Row+1; r++ {
		for c := cell.Col - 1; c <= cell.Col+1; c++ {
			n := Cell{r, c}
			if n != cell && a.InBounds(n) {
				out.Add(n)
			}
		}
	}
	return out
}

/*
infer runs the deduction rules until a full pass changes nothing. Each
pass: resolve sentences whose cells are all mines or all safe,
broadcast those facts, prune sentences that became empty or duplicate,
then derive new sentences by subset elimination.

The loop terminates: every productive pass either resolves at least one
fresh cell (at most width*height of those), prunes a sentence, or
derives a sentence strictly smaller than one it already had, and a
sentence never holds more than 8 cells, so derivation chains between
resolutions are shallow. The explicit cap turns a convergence bug into
a loud assertion instead of a hang.

panics [AssertionError]
*/
func (a *Agent) infer() {
	limit := 2*a.width*a.height + 16
	for pass := 1; ; pass++ {
		if pass > limit {
			panic(AssertionError{"inference failed to converge"})
		}
		changed := false

		/*
		 * Direct resolution. Collect over a stable snapshot before
		 * marking anything: marks mutate the very sentences being
		 * scanned.
		 */
		newSafes := make(CellSet)
		newMines := make(CellSet)
		for _, s := range a.knowledge {
			for c := range s.KnownSafes() {
				if !a.safes.Has(c) {
					newSafes.Add(c)
				}
			}
			for c := range s.KnownMines() {
				if !a.mines.Has(c) {
					newMines.Add(c)
				}
			}
		}
		for c := range newSafes {
			a.MarkSafe(c)
			changed = true
		}
		for c := range newMines {
			a.MarkMine(c)
			changed = true
		}

		/*
		 * Prune. An empty sentence carries no residual information; a
		 * duplicate carries none beyond its twin.
		 */
		kept := a.knowledge[:0]
		for _, s := range a.knowledge {
			if s.Empty() {
				changed = true
				continue
			}
			dup := false
			for _, k := range kept {
				if k.Equal(s) {
					dup = true
					break
				}
			}
			if dup {
				changed = true
				continue
			}
			kept = append(kept, s)
		}
		a.knowledge = kept

		/*
		 * Subset elimination: if s1's cells sit entirely inside s2's
		 * and account for exactly s1.count mines, the rest of s2 must
		 * hold exactly the remainder.
		 */
		var derived []*Sentence
		for _, s1 := range a.knowledge {
			for _, s2 := range a.knowledge {
				if s1 == s2 || !s1.cells.SubsetOf(s2.cells) {
					continue
				}
				rest := s2.cells.Diff(s1.cells)
				if len(rest) == 0 {
					continue
				}
				s := NewSentence(rest, s2.count-s1.count)
				if a.hasSentence(s) {
					continue
				}
				fresh := true
				for _, d := range derived {
					if d.Equal(s) {
						fresh = false
						break
					}
				}
				if fresh {
					Log.Debug("derived sentence",
						"from", s2.String(), "minus", s1.String(),
						"sentence", s.String())
					derived = append(derived, s)
					changed = true
				}
			}
		}
		a.knowledge = append(a.knowledge, derived...)

		if !changed {
			return
		}
	}
}

/*
SafeMove returns a cell proven safe that has not been probed yet,
scanning the grid in row-major order so the choice is stable. The
second return is false when no such cell exists. Read-only.
*/
func (a *Agent) SafeMove() (Cell, bool) {
	for r := 0; r < a.height; r++ {
		for c := 0; c < a.width; c++ {
			cell := Cell{r, c}
			if a.safes.Has(cell) && !a.movesMade.Has(cell) {
				return cell, true
			}
		}
	}
	return Cell{}, false
}

/*
RandomMove picks uniformly among every cell that is neither probed nor
a proven mine. Cells proven safe and cells of unknown status are both
eligible; the caller is expected to prefer [Agent.SafeMove] first. The
second return is false when the board is exhausted. Read-only.
*/
func (a *Agent) RandomMove() (Cell, bool) {
	candidates := make([]Cell, 0, a.width*a.height)
	for r := 0; r < a.height; r++ {
		for c := 0; c < a.width; c++ {
			cell := Cell{r, c}
			if !a.movesMade.Has(cell) && !a.mines.Has(cell) {
				candidates = append(candidates, cell)
			}
		}
	}
	if len(candidates) == 0 {
		return Cell{}, false
	}
	return candidates[a.rnd.IntN(len(candidates))], true
}
