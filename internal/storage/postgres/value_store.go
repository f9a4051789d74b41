package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ticketchain/ledger/internal/domain"
)

// ValueStore implements the value-transfer collaborator over the
// balances and assets tables. Its methods join the transaction opened
// by a repository's WithTx through the shared context key, so currency
// moves, asset moves and record writes form one atomic unit.
type ValueStore struct {
	pool *pgxpool.Pool
}

func NewValueStore(pool *pgxpool.Pool) *ValueStore {
	return &ValueStore{pool: pool}
}

func (s *ValueStore) Transfer(ctx context.Context, amount uint64, from, to string) error {
	if amount == 0 {
		return nil
	}

	const debit = `
UPDATE balances
SET lamports = lamports - $1
WHERE identity = $2 AND lamports >= $1`

	tag, err := s.exec(ctx, debit, int64(amount), from)
	if err != nil {
		return fmt.Errorf("debit %s: %w", from, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInsufficientFunds
	}

	const credit = `
INSERT INTO balances (identity, lamports)
VALUES ($1, $2)
ON CONFLICT (identity) DO UPDATE SET lamports = balances.lamports + EXCLUDED.lamports`

	if _, err := s.exec(ctx, credit, to, int64(amount)); err != nil {
		return fmt.Errorf("credit %s: %w", to, err)
	}
	return nil
}

func (s *ValueStore) MintAsset(ctx context.Context, assetID, to string) error {
	const stmt = `
INSERT INTO assets (id, owner, amount)
VALUES ($1, $2, 1)`

	_, err := s.exec(ctx, stmt, assetID, to)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("mint asset: %w", err)
	}
	return nil
}

func (s *ValueStore) TransferAsset(ctx context.Context, assetID, from, to string) error {
	const query = `SELECT owner FROM assets WHERE id = $1 FOR UPDATE`

	var owner string
	if err := s.queryRow(ctx, query, assetID).Scan(&owner); err != nil {
		if err == pgx.ErrNoRows {
			return domain.ErrTicketNotFound
		}
		return fmt.Errorf("get asset: %w", err)
	}
	if owner != from {
		return domain.ErrUnauthorized
	}

	const stmt = `UPDATE assets SET owner = $2 WHERE id = $1`
	if _, err := s.exec(ctx, stmt, assetID, to); err != nil {
		return fmt.Errorf("transfer asset: %w", err)
	}
	return nil
}

// CloseCustody drains whatever lamports the record identity holds to
// depositDest and removes its balance row. A record that never held a
// deposit closes as a no-op.
func (s *ValueStore) CloseCustody(ctx context.Context, custodyID, depositDest string) error {
	const stmt = `
WITH closed AS (
	DELETE FROM balances WHERE identity = $1 RETURNING lamports
)
INSERT INTO balances (identity, lamports)
SELECT $2, lamports FROM closed WHERE lamports > 0
ON CONFLICT (identity) DO UPDATE SET lamports = balances.lamports + EXCLUDED.lamports`

	if _, err := s.exec(ctx, stmt, custodyID, depositDest); err != nil {
		return fmt.Errorf("close custody %s: %w", custodyID, err)
	}
	return nil
}

func (s *ValueStore) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return s.pool.Exec(ctx, sql, args...)
}

func (s *ValueStore) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return s.pool.QueryRow(ctx, sql, args...)
}
