package postgres

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ai/internal/domain"
	"github.com/jhoicas/Inventario-ai/internal/domain/entity"
)

// ── Helpers de test ──────────────────────────────────────────────────────────

// fakeTx registra las sentencias; falla las que contengan failOn.
type fakeTx struct {
	pgx.Tx
	failOn     string
	failErr    error
	stmts      []string
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.stmts = append(f.stmts, sql)
	if f.failOn != "" && strings.Contains(sql, f.failOn) {
		return pgconn.CommandTag{}, f.failErr
	}
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(context.Context) error {
	if !f.committed {
		f.rolledBack = true
	}
	return nil
}

// fakeDB Querier cuyo único camino válido es Begin: cualquier sentencia fuera de la tx es un fallo.
type fakeDB struct {
	tx       *fakeTx
	outside  []string
	beginErr error
}

func (f *fakeDB) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.outside = append(f.outside, sql)
	return pgconn.NewCommandTag("UPDATE 1"), nil
}

func (f *fakeDB) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	f.outside = append(f.outside, sql)
	return nil, errors.New("not implemented")
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	f.outside = append(f.outside, sql)
	return nil
}

func (f *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return f.tx, nil
}

func renamed() *entity.Category {
	return &entity.Category{ID: "00000000-0000-0000-0000-0000000000c1", Name: "Herramientas"}
}

// ── Tests CategoryRepo.Update ────────────────────────────────────────────────

func TestCategoryUpdate_RenombraYSincronizaEnUnaTransaccion(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}

	require.NoError(t, NewCategoryRepository(db).Update(context.Background(), renamed()))

	assert.Empty(t, db.outside)
	require.Len(t, db.tx.stmts, 2)
	assert.Contains(t, db.tx.stmts[0], "UPDATE categories")
	assert.Contains(t, db.tx.stmts[1], "UPDATE inventory_items")
	assert.True(t, db.tx.committed)
}

func TestCategoryUpdate_FalloAlSincronizarHaceRollback(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{failOn: "inventory_items", failErr: errors.New("connection reset")}}

	err := NewCategoryRepository(db).Update(context.Background(), renamed())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sync item category name")
	assert.False(t, db.tx.committed, "el renombrado no debe quedar confirmado")
	assert.True(t, db.tx.rolledBack)
	assert.Empty(t, db.outside)
}

func TestCategoryUpdate_NombreDuplicado(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{failOn: "UPDATE categories", failErr: &pgconn.PgError{Code: "23505"}}}

	err := NewCategoryRepository(db).Update(context.Background(), renamed())

	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, db.tx.stmts, 1)
	assert.True(t, db.tx.rolledBack)
}

func TestCategoryUpdate_ErrorAlIniciarTransaccion(t *testing.T) {
	db := &fakeDB{beginErr: errors.New("pool closed")}

	err := NewCategoryRepository(db).Update(context.Background(), renamed())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin transaction")
	assert.Empty(t, db.outside)
}
