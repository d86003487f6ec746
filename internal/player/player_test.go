package player

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minelogic/minesweeper-agent/internal/board"
)

func TestPlayMinelessBoard(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(1, 2))
	b, err := board.New(board.Params{Width: 4, Height: 4, MineCount: 0}, r)
	require.NoError(t, err)

	p, err := New(b, r)
	require.NoError(t, err)

	outcome, err := p.Play()
	require.NoError(t, err)
	assert.Equal(t, Won, outcome)
	for _, m := range p.Moves() {
		assert.False(t, m.Mine)
	}
}

func TestPlayIsSoundAcrossSeeds(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	tests := []struct {
		name   string
		params board.Params
	}{
		{name: "8x8(8)", params: board.Params{Width: 8, Height: 8, MineCount: 8}},
		{name: "9x9(10)", params: board.Params{Width: 9, Height: 9, MineCount: 10}},
		{name: "16x16(40)", params: board.Params{Width: 16, Height: 16, MineCount: 40}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			for seed := range uint64(25) {
				r := rand.New(rand.NewPCG(seed, seed+1))
				b, err := board.New(test.params, r)
				require.NoError(t, err)

				p, err := New(b, r)
				require.NoError(t, err)

				outcome, err := p.Play()
				require.NoError(t, err)
				require.Contains(t, []Outcome{Won, Lost}, outcome)

				moves := p.Moves()
				require.NotEmpty(t, moves)
				for i, m := range moves {
					if m.Mine {
						// only a losing final guess may touch a mine
						assert.Equal(t, len(moves)-1, i)
						assert.True(t, m.Guess,
							"a proven-safe probe hit a mine at seed %d", seed)
					}
				}

				// proven mines never stray outside the real mine set
				for c := range p.Agent().Mines() {
					assert.True(t, b.IsMine(c),
						"agent proved %s a mine falsely at seed %d", c, seed)
				}

				if outcome == Won {
					assert.True(t, b.Won())
					assert.True(t, b.Flagged().Equal(b.Mines()))
				}
			}
		})
	}
}

func TestStepAfterGameOver(t *testing.T) {
	t.Parallel()

	r := rand.New(rand.NewPCG(7, 11))
	b, err := board.New(board.Params{Width: 2, Height: 2, MineCount: 0}, r)
	require.NoError(t, err)

	p, err := New(b, r)
	require.NoError(t, err)

	outcome, err := p.Play()
	require.NoError(t, err)
	require.Equal(t, Won, outcome)

	_, _, err = p.Step()
	assert.Error(t, err)
}
