package repository

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/minelogic/minesweeper-agent/internal/player"
)

type Episode struct {
	EpisodeId int64
	PublicId  uuid.UUID
	PlayerId  *int64
	Width     int
	Height    int
	MineCount int
	Outcome   string
	MoveCount int
	Guesses   int
	Moves     []byte
	CreatedAt pgtype.Timestamptz
}

// DecodeMoves unpacks the gob-encoded move log stored for an episode.
func (e Episode) DecodeMoves() ([]player.Move, error) {
	var moves []player.Move
	err := gob.NewDecoder(bytes.NewReader(e.Moves)).Decode(&moves)
	if err != nil {
		return nil, fmt.Errorf("invalid episode.moves payload: %w", err)
	}
	return moves, nil
}

type CreateEpisodeParams struct {
	PlayerId  *int64
	Width     int
	Height    int
	MineCount int
	Outcome   player.Outcome
	Moves     []player.Move
}

func (q *Queries) CreateEpisode(
	ctx context.Context, params CreateEpisodeParams,
) (*Episode, error) {
	guesses := 0
	for _, m := range params.Moves {
		if m.Guess {
			guesses++
		}
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(params.Moves); err != nil {
		return nil, err
	}

	args := pgx.NamedArgs{
		"public_id":  uuid.New(),
		"width":      params.Width,
		"height":     params.Height,
		"mine_count": params.MineCount,
		"outcome":    params.Outcome.String(),
		"move_count": len(params.Moves),
		"guesses":    guesses,
		"moves":      buf.Bytes(),
		"player_id":  nil,
	}
	if params.PlayerId != nil {
		args["player_id"] = *params.PlayerId
	}

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO episode (
			public_id, player_id, width, height, mine_count,
			outcome, move_count, guesses, moves
		)
		VALUES (
			@public_id, @player_id, @width, @height, @mine_count,
			@outcome, @move_count, @guesses, @moves
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Episode])
}

func (q *Queries) FetchEpisode(
	ctx context.Context, publicId uuid.UUID,
) (*Episode, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM episode WHERE public_id = $1", publicId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Episode])
}

func (q *Queries) ListEpisodes(ctx context.Context, limit int) ([]Episode, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM episode ORDER BY created_at DESC LIMIT $1",
		limit,
	)
	return pgx.CollectRows(rows, pgx.RowToStructByName[Episode])
}

type PlayerStats struct {
	Username string
	Games    int
	Wins     int
	WinRate  float64
}

func (q *Queries) GetPlayerStats(ctx context.Context, limit int) ([]PlayerStats, error) {
	rows, _ := q.db.Query(
		ctx,
		`SELECT
			p.username AS username,
			count(*)::int AS games,
			count(*) FILTER (WHERE e.outcome = 'won')::int AS wins,
			(count(*) FILTER (WHERE e.outcome = 'won'))::float / count(*) AS win_rate
		FROM episode e
		JOIN player p USING (player_id)
		GROUP BY p.username
		ORDER BY win_rate DESC, games DESC
		LIMIT $1`,
		limit,
	)
	return pgx.CollectRows(rows, pgx.RowToStructByName[PlayerStats])
}
