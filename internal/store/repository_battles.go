package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// InsertBattle stores a finished battle and its moves in one transaction.
func (s *Store) InsertBattle(ctx context.Context, rec BattleRecord) error {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
INSERT INTO battles (id, room_id, black_name, white_name, winner, reason, move_count, started_at, ended_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.RoomID, rec.BlackName, rec.WhiteName, rec.Winner, rec.Reason,
		len(rec.Moves), timestamptzParam(rec.StartedAt), timestamptzParam(rec.EndedAt))
	if err != nil {
		return fmt.Errorf("insert battle: %w", err)
	}

	if len(rec.Moves) > 0 {
		rows := make([][]any, 0, len(rec.Moves))
		for _, m := range rec.Moves {
			rows = append(rows, []any{rec.ID, m.Seq, m.X, m.Y, m.Color, m.Player})
		}
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"battle_moves"},
			[]string{"battle_id", "seq", "x", "y", "color", "player_name"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("insert battle moves: %w", err)
		}
	}
	return tx.Commit(ctx)
}

// ListBattles returns the most recently finished battles without moves.
func (s *Store) ListBattles(ctx context.Context, limit, offset int) ([]BattleRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.Pool.Query(ctx, `
SELECT id, room_id, black_name, white_name, winner, reason, move_count, started_at, ended_at
FROM battles
ORDER BY ended_at DESC, id DESC
LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []BattleRecord{}
	for rows.Next() {
		rec, err := scanBattle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// GetBattle loads one battle with its moves in play order.
func (s *Store) GetBattle(ctx context.Context, id string) (*BattleRecord, error) {
	row := s.Pool.QueryRow(ctx, `
SELECT id, room_id, black_name, white_name, winner, reason, move_count, started_at, ended_at
FROM battles
WHERE id = $1`, id)
	rec, err := scanBattle(row)
	if err != nil {
		return nil, mapNotFound(err)
	}

	rows, err := s.Pool.Query(ctx, `
SELECT seq, x, y, color, player_name
FROM battle_moves
WHERE battle_id = $1
ORDER BY seq ASC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rec.Moves = []BattleMove{}
	for rows.Next() {
		var m BattleMove
		if err := rows.Scan(&m.Seq, &m.X, &m.Y, &m.Color, &m.Player); err != nil {
			return nil, err
		}
		rec.Moves = append(rec.Moves, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &rec, nil
}

func scanBattle(row pgx.Row) (BattleRecord, error) {
	var (
		rec            BattleRecord
		started, ended pgtype.Timestamptz
	)
	err := row.Scan(&rec.ID, &rec.RoomID, &rec.BlackName, &rec.WhiteName, &rec.Winner, &rec.Reason,
		&rec.MoveCount, &started, &ended)
	if err != nil {
		return BattleRecord{}, err
	}
	rec.StartedAt = timeVal(started)
	rec.EndedAt = timeVal(ended)
	return rec, nil
}
