package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"gobang-server/internal/store"
	"gobang-server/internal/testutil"
)

func sampleBattle(roomID string, ended time.Time, moves ...store.BattleMove) store.BattleRecord {
	return store.BattleRecord{
		ID:        store.NewID(),
		RoomID:    roomID,
		BlackName: "alice",
		WhiteName: "bob",
		Winner:    "BLACK",
		Reason:    "WIN",
		StartedAt: ended.Add(-time.Minute),
		EndedAt:   ended,
		Moves:     moves,
	}
}

func mustInsertBattle(t *testing.T, st *store.Store, rec store.BattleRecord) {
	t.Helper()
	if err := st.InsertBattle(context.Background(), rec); err != nil {
		t.Fatalf("insert battle: %v", err)
	}
}

func TestStoreReady(t *testing.T) {
	st := testutil.OpenTestStore(t)
	ctx := context.Background()
	if err := st.Ping(ctx); err != nil {
		t.Fatalf("ping failed: %v", err)
	}
	for _, table := range []string{"battles", "battle_moves"} {
		var found *string
		if err := st.Pool.QueryRow(ctx, "SELECT to_regclass($1)::text", table).Scan(&found); err != nil {
			t.Fatalf("lookup %s: %v", table, err)
		}
		if found == nil {
			t.Fatalf("table %s missing after migrations", table)
		}
	}
}

func TestInsertAndGetBattle(t *testing.T) {
	st := testutil.OpenTestStore(t)
	ctx := context.Background()

	ended := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := sampleBattle("1000", ended,
		store.BattleMove{Seq: 1, X: 7, Y: 7, Color: "BLACK", Player: "alice"},
		store.BattleMove{Seq: 2, X: 7, Y: 8, Color: "WHITE", Player: "bob"},
	)
	mustInsertBattle(t, st, rec)

	got, err := st.GetBattle(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get battle: %v", err)
	}
	if got.RoomID != "1000" || got.Winner != "BLACK" || got.Reason != "WIN" {
		t.Fatalf("unexpected battle: %+v", got)
	}
	if got.MoveCount != 2 || len(got.Moves) != 2 {
		t.Fatalf("expected 2 moves, got count=%d moves=%d", got.MoveCount, len(got.Moves))
	}
	if got.Moves[1].X != 7 || got.Moves[1].Y != 8 || got.Moves[1].Player != "bob" {
		t.Fatalf("unexpected second move: %+v", got.Moves[1])
	}
	if !got.EndedAt.Equal(ended) {
		t.Fatalf("ended_at = %v, want %v", got.EndedAt, ended)
	}
}

func TestGetBattleNotFound(t *testing.T) {
	st := testutil.OpenTestStore(t)

	_, err := st.GetBattle(context.Background(), store.NewID())
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInsertBattleIsAtomic(t *testing.T) {
	st := testutil.OpenTestStore(t)
	ctx := context.Background()

	rec := sampleBattle("1000", time.Now().UTC(),
		store.BattleMove{Seq: 1, X: 7, Y: 7, Color: "BLACK", Player: "alice"},
		store.BattleMove{Seq: 1, X: 8, Y: 8, Color: "WHITE", Player: "bob"},
	)
	if err := st.InsertBattle(ctx, rec); err == nil {
		t.Fatal("expected duplicate move seq to fail")
	}
	if _, err := st.GetBattle(ctx, rec.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("battle row survived a failed insert: %v", err)
	}
}

func TestListBattlesNewestFirst(t *testing.T) {
	st := testutil.OpenTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := sampleBattle("1000", base)
	newer := sampleBattle("1001", base.Add(time.Hour))
	draw := sampleBattle("1002", base.Add(2*time.Hour))
	draw.Winner, draw.Reason = "NONE", "DRAW"
	mustInsertBattle(t, st, older)
	mustInsertBattle(t, st, newer)
	mustInsertBattle(t, st, draw)

	got, err := st.ListBattles(ctx, 2, 0)
	if err != nil {
		t.Fatalf("list battles: %v", err)
	}
	if len(got) != 2 || got[0].ID != draw.ID || got[1].ID != newer.ID {
		t.Fatalf("unexpected page: %+v", got)
	}
	if got[0].Moves != nil {
		t.Fatalf("list should not load moves")
	}

	got, err = st.ListBattles(ctx, 2, 2)
	if err != nil {
		t.Fatalf("list battles offset: %v", err)
	}
	if len(got) != 1 || got[0].ID != older.ID {
		t.Fatalf("unexpected second page: %+v", got)
	}
}
