package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ticketchain/ledger/internal/domain"
)

type ListingRepository struct {
	pool *pgxpool.Pool
}

func NewListingRepository(pool *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{pool: pool}
}

func (r *ListingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *ListingRepository) GetEvent(ctx context.Context, eventID string) (domain.Event, error) {
	const query = `
SELECT id, organizer, price_lamports, supply, sold
FROM events
WHERE id = $1`

	var (
		e     domain.Event
		price int64
		sup   int64
		sold  int64
	)
	err := r.queryRow(ctx, query, eventID).Scan(&e.ID, &e.Organizer, &price, &sup, &sold)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	e.PriceLamports = uint64(price)
	e.Supply = uint32(sup)
	e.Sold = uint32(sold)
	return e, nil
}

func (r *ListingRepository) CreateListing(ctx context.Context, listing domain.Listing) error {
	const stmt = `
INSERT INTO listings (id, seller, event_id, ticket_mint, price_lamports, escrow_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.exec(ctx, stmt,
		listing.ID,
		listing.Seller,
		listing.EventID,
		listing.TicketMint,
		int64(listing.PriceLamports),
		listing.EscrowID,
		listing.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("create listing: %w", err)
	}
	return nil
}

func (r *ListingRepository) GetListing(ctx context.Context, listingID string) (domain.Listing, error) {
	return r.getListing(ctx, listingID, false)
}

// GetListingForUpdate locks the listing row so that a concurrent buy
// and cancel of the same listing serialize; the loser sees the row gone
// and fails with not-found.
func (r *ListingRepository) GetListingForUpdate(ctx context.Context, listingID string) (domain.Listing, error) {
	return r.getListing(ctx, listingID, true)
}

func (r *ListingRepository) getListing(ctx context.Context, listingID string, forUpdate bool) (domain.Listing, error) {
	query := `
SELECT id, seller, event_id, ticket_mint, price_lamports, escrow_id, created_at
FROM listings
WHERE id = $1`
	if forUpdate {
		query += `
FOR UPDATE`
	}

	var (
		l     domain.Listing
		price int64
	)
	err := r.queryRow(ctx, query, listingID).Scan(
		&l.ID, &l.Seller, &l.EventID, &l.TicketMint, &price, &l.EscrowID, &l.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Listing{}, domain.ErrListingNotFound
		}
		return domain.Listing{}, fmt.Errorf("get listing: %w", err)
	}
	l.PriceLamports = uint64(price)
	return l, nil
}

func (r *ListingRepository) DeleteListing(ctx context.Context, listingID string) error {
	const stmt = `DELETE FROM listings WHERE id = $1`

	tag, err := r.exec(ctx, stmt, listingID)
	if err != nil {
		return fmt.Errorf("delete listing: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *ListingRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
