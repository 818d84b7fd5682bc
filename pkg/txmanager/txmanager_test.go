package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
)

type fakeTx struct {
	committed  bool
	rolledBack bool
	commitErr  error
}

func (f *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (f *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (f *fakeTx) Commit() error {
	f.committed = true
	return f.commitErr
}

func (f *fakeTx) Rollback() error {
	f.rolledBack = true
	return nil
}

type fakeBeginner struct {
	tx       *fakeTx
	opts     []*sql.TxOptions
	beginErr error
}

func (f *fakeBeginner) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	f.opts = append(f.opts, opts)
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return f.tx, nil
}

func TestDo_CommitsAndExposesTx(t *testing.T) {
	tx := &fakeTx{}
	mgr := NewTransactionManager(&fakeBeginner{tx: tx})

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
}

func TestDo_RollsBackOnError(t *testing.T) {
	tx := &fakeTx{}
	mgr := NewTransactionManager(&fakeBeginner{tx: tx})
	boom := errors.New("boom")

	err := mgr.Do(context.Background(), func(context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}

func TestDo_RollsBackOnPanic(t *testing.T) {
	tx := &fakeTx{}
	mgr := NewTransactionManager(&fakeBeginner{tx: tx})

	assert.Panics(t, func() {
		_ = mgr.Do(context.Background(), func(context.Context) error { panic("oops") })
	})
	assert.True(t, tx.rolledBack)
}

func TestDo_NestedReusesOuterTx(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	mgr := NewTransactionManager(beginner)

	err := mgr.Do(context.Background(), func(ctx context.Context) error {
		return mgr.DoReadOnly(ctx, func(context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.Len(t, beginner.opts, 1)
}

func TestDoReadOnly_Options(t *testing.T) {
	beginner := &fakeBeginner{tx: &fakeTx{}}
	mgr := NewTransactionManager(beginner)

	require.NoError(t, mgr.DoReadOnly(context.Background(), func(context.Context) error { return nil }))
	require.Len(t, beginner.opts, 1)
	assert.True(t, beginner.opts[0].ReadOnly)
	assert.Equal(t, sql.LevelRepeatableRead, beginner.opts[0].Isolation)
}

func TestDo_BeginAndCommitErrors(t *testing.T) {
	mgr := NewTransactionManager(&fakeBeginner{beginErr: errors.New("no conn")})
	err := mgr.Do(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrBeginTx)

	mgr = NewTransactionManager(&fakeBeginner{tx: &fakeTx{commitErr: sql.ErrConnDone}})
	err = mgr.DoSerializable(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrCommitTx)
	assert.ErrorIs(t, err, sql.ErrConnDone)
}
