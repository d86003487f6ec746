package knowledge

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAgent(t *testing.T, width, height int) *Agent {
	t.Helper()
	a, err := NewAgent(width, height, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	return a
}

func TestAddKnowledgeRejectsMalformedInput(t *testing.T) {
	t.Parallel()

	a := newTestAgent(t, 8, 8)

	assert.Error(t, a.AddKnowledge(Cell{-1, 0}, 0))
	assert.Error(t, a.AddKnowledge(Cell{0, 8}, 0))
	assert.Error(t, a.AddKnowledge(Cell{0, 0}, -1))
	assert.Error(t, a.AddKnowledge(Cell{0, 0}, 4), "corner has 3 neighbors")

	require.NoError(t, a.AddKnowledge(Cell{0, 0}, 0))
	assert.Error(t, a.AddKnowledge(Cell{0, 0}, 0), "duplicate probe")
}

func TestAddKnowledgeMarksNeighborsSafe(t *testing.T) {
	t.Parallel()

	a := newTestAgent(t, 8, 8)
	require.NoError(t, a.AddKnowledge(Cell{1, 1}, 0))

	for _, c := range []Cell{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 2},
		{2, 0}, {2, 1}, {2, 2},
	} {
		assert.True(t, a.Safes().Has(c), "%s must be proven safe", c)
	}
	assert.Empty(t, a.Mines())
}

func TestEndToEndSmallGrid(t *testing.T) {
	t.Parallel()

	a := newTestAgent(t, 3, 3)
	require.NoError(t, a.AddKnowledge(Cell{0, 0}, 0))

	safes := a.Safes()
	assert.True(t, safes.Has(Cell{0, 1}))
	assert.True(t, safes.Has(Cell{1, 0}))
	assert.True(t, safes.Has(Cell{1, 1}))

	for _, s := range a.knowledge {
		assert.False(t, s.Empty(), "empty sentences must be pruned")
	}
}

func TestSubsetElimination(t *testing.T) {
	t.Parallel()

	cellA, cellB, cellC := Cell{0, 0}, Cell{0, 1}, Cell{0, 2}

	a := newTestAgent(t, 3, 3)
	a.knowledge = append(a.knowledge,
		NewSentence(NewCellSet(cellA, cellB), 1),
		NewSentence(NewCellSet(cellA, cellB, cellC), 2),
	)
	a.infer()

	assert.True(t, a.Mines().Has(cellC),
		"{A,B}=1 inside {A,B,C}=2 must prove C is a mine")
	assert.False(t, a.Safes().Has(cellC))
}

func TestMarkMineIdempotent(t *testing.T) {
	t.Parallel()

	cell := Cell{1, 1}

	once := newTestAgent(t, 4, 4)
	once.knowledge = append(once.knowledge,
		NewSentence(NewCellSet(cell, Cell{1, 2}), 1),
	)
	twice := newTestAgent(t, 4, 4)
	twice.knowledge = append(twice.knowledge,
		NewSentence(NewCellSet(cell, Cell{1, 2}), 1),
	)

	once.MarkMine(cell)
	twice.MarkMine(cell)
	twice.MarkMine(cell)

	assert.True(t, once.Mines().Equal(twice.Mines()))
	require.Equal(t, len(once.knowledge), len(twice.knowledge))
	for i := range once.knowledge {
		assert.True(t, once.knowledge[i].Equal(twice.knowledge[i]))
	}
}

func TestContradictoryObservationReported(t *testing.T) {
	t.Parallel()

	// 1x3 strip: first probe proves (0,1) is a mine, second probe
	// claims it has no mined neighbors.
	a := newTestAgent(t, 3, 1)
	require.NoError(t, a.AddKnowledge(Cell{0, 0}, 1))
	require.True(t, a.Mines().Has(Cell{0, 1}))

	assert.Error(t, a.AddKnowledge(Cell{0, 2}, 0))
}

func TestSafeMove(t *testing.T) {
	t.Parallel()

	a := newTestAgent(t, 3, 3)
	require.NoError(t, a.AddKnowledge(Cell{0, 0}, 0))

	seen := make(CellSet)
	for {
		cell, ok := a.SafeMove()
		if !ok {
			break
		}
		assert.False(t, a.MovesMade().Has(cell),
			"safe move must never revisit %s", cell)
		assert.False(t, seen.Has(cell))
		seen.Add(cell)
		require.NoError(t, a.AddKnowledge(cell, 0))
	}

	// a 0-count cascade on a mineless grid opens everything
	assert.Len(t, a.MovesMade(), 9)
	_, ok := a.SafeMove()
	assert.False(t, ok, "no safe move once safes - movesMade is empty")
}

func TestRandomMove(t *testing.T) {
	t.Parallel()

	a := newTestAgent(t, 2, 2)
	a.movesMade.Add(Cell{0, 0})
	a.mines.Add(Cell{0, 1})

	hits := make(map[Cell]int)
	for range 200 {
		cell, ok := a.RandomMove()
		require.True(t, ok)
		assert.NotEqual(t, Cell{0, 0}, cell)
		assert.NotEqual(t, Cell{0, 1}, cell)
		hits[cell]++
	}
	assert.Positive(t, hits[Cell{1, 0}], "both eligible cells must come up")
	assert.Positive(t, hits[Cell{1, 1}], "both eligible cells must come up")
}

func TestRandomMoveExhausted(t *testing.T) {
	t.Parallel()

	a := newTestAgent(t, 1, 2)
	a.movesMade.Add(Cell{0, 0})
	a.mines.Add(Cell{1, 0})

	_, ok := a.RandomMove()
	assert.False(t, ok)
}

func TestMinesAndSafesStayDisjoint(t *testing.T) {
	t.Parallel()

	a := newTestAgent(t, 4, 4)
	require.NoError(t, a.AddKnowledge(Cell{0, 0}, 3))
	require.NoError(t, a.AddKnowledge(Cell{3, 3}, 0))

	for c := range a.Mines() {
		assert.False(t, a.Safes().Has(c), "%s is both mine and safe", c)
	}
}
