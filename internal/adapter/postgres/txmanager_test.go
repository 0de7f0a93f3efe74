//go:build integration

package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wassimTlili/med-q-main-sub002/internal/adapter/postgres"
	"github.com/wassimTlili/med-q-main-sub002/internal/adapter/postgres/testhelper"
)

func subjectExists(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM subjects WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("subjectExists query: %v", err)
	}
	return exists
}

func insertSubject(ctx context.Context, pool *pgxpool.Pool, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, pool)
	_, err := q.Exec(ctx, `INSERT INTO subjects (id, name) VALUES ($1, $2)`, id, testhelper.UniqueName("tx"))
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	id := uuid.New()

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertSubject(ctx, pool, id)
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !subjectExists(t, pool, id) {
		t.Fatal("expected subject to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	id := uuid.New()
	sentinel := errors.New("batch failed")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertSubject(ctx, pool, id); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}
	if subjectExists(t, pool, id) {
		t.Fatal("expected subject NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	id := uuid.New()

	defer func() {
		if r := recover(); r != "test panic" {
			t.Fatalf("expected panic %q to be re-raised, got %v", "test panic", r)
		}
		if subjectExists(t, pool, id) {
			t.Fatal("expected subject NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertSubject(ctx, pool, id); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestSendBatchExec_CountsOnlyWrittenRows(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	ctx := context.Background()
	id := uuid.New()
	name := testhelper.UniqueName("batch")

	batch := &pgx.Batch{}
	for range 3 {
		batch.Queue(`INSERT INTO subjects (id, name) VALUES ($1, $2) ON CONFLICT DO NOTHING`, id, name)
	}

	n, err := postgres.SendBatchExec(ctx, postgres.QuerierFromCtx(ctx, pool), batch)
	if err != nil {
		t.Fatalf("SendBatchExec returned error: %v", err)
	}
	if n != 1 {
		t.Fatalf("SendBatchExec affected = %d, want 1", n)
	}
}
