package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ticketchain/ledger/internal/domain"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *EventRepository) CreateEvent(ctx context.Context, event domain.Event) error {
	const stmt = `
INSERT INTO events (id, organizer, nonce, title, venue, date_ts, tier_name, price_lamports, supply, sold, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.exec(ctx, stmt,
		event.ID,
		event.Organizer,
		int64(event.Nonce),
		event.Title,
		event.Venue,
		event.DateTS,
		event.TierName,
		int64(event.PriceLamports),
		int64(event.Supply),
		int64(event.Sold),
		event.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) GetEvent(ctx context.Context, eventID string) (domain.Event, error) {
	return r.getEvent(ctx, eventID, false)
}

// GetEventForUpdate locks the event row for the rest of the
// transaction, serializing operations that contend on the sold counter.
func (r *EventRepository) GetEventForUpdate(ctx context.Context, eventID string) (domain.Event, error) {
	return r.getEvent(ctx, eventID, true)
}

func (r *EventRepository) getEvent(ctx context.Context, eventID string, forUpdate bool) (domain.Event, error) {
	query := `
SELECT id, organizer, nonce, title, venue, date_ts, tier_name, price_lamports, supply, sold, created_at
FROM events
WHERE id = $1`
	if forUpdate {
		query += `
FOR UPDATE`
	}

	var (
		e     domain.Event
		nonce int64
		price int64
		sup   int64
		sold  int64
	)
	err := r.queryRow(ctx, query, eventID).Scan(
		&e.ID, &e.Organizer, &nonce, &e.Title, &e.Venue, &e.DateTS,
		&e.TierName, &price, &sup, &sold, &e.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	e.Nonce = uint64(nonce)
	e.PriceLamports = uint64(price)
	e.Supply = uint32(sup)
	e.Sold = uint32(sold)
	return e, nil
}

func (r *EventRepository) UpdateSold(ctx context.Context, eventID string, sold uint32) error {
	const stmt = `UPDATE events SET sold = $2 WHERE id = $1`

	tag, err := r.exec(ctx, stmt, eventID, int64(sold))
	if err != nil {
		return fmt.Errorf("update sold: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) DeleteEvent(ctx context.Context, eventID string) error {
	const stmt = `DELETE FROM events WHERE id = $1`

	tag, err := r.exec(ctx, stmt, eventID)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *EventRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
