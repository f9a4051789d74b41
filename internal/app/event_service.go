package app

import (
	"context"

	"github.com/ticketchain/ledger/internal/clock"
	"github.com/ticketchain/ledger/internal/domain"
	"github.com/ticketchain/ledger/internal/identity"
)

type EventRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateEvent(ctx context.Context, event domain.Event) error
	GetEvent(ctx context.Context, eventID string) (domain.Event, error)
	GetEventForUpdate(ctx context.Context, eventID string) (domain.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// defaultEventDeposit is the rent held by an event record, returned to
// the organizer when the event closes.
const defaultEventDeposit = 2_449_920

type EventService struct {
	repo    EventRepository
	ledger  ValueLedger
	clock   clock.Clock
	deposit uint64
}

func NewEventService(repo EventRepository, ledger ValueLedger, clk clock.Clock, opts ...EventServiceOption) *EventService {
	svc := &EventService{
		repo:    repo,
		ledger:  ledger,
		clock:   clk,
		deposit: defaultEventDeposit,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type EventServiceOption func(*EventService)

// WithEventDeposit overrides the rent charged for an event record.
// Zero disables the deposit.
func WithEventDeposit(d uint64) EventServiceOption {
	return func(s *EventService) {
		s.deposit = d
	}
}

type CreateEventInput struct {
	Organizer     string
	Nonce         uint64
	Title         string
	Venue         string
	DateTS        int64
	TierName      string
	PriceLamports uint64
	Supply        uint32
}

func (s *EventService) CreateEvent(ctx context.Context, in CreateEventInput) (domain.Event, error) {
	if err := domain.ValidateNewEvent(in.Title, in.Venue, in.TierName, in.Supply); err != nil {
		return domain.Event{}, err
	}

	event := domain.Event{
		ID:            identity.EventID(in.Organizer, in.Nonce),
		Organizer:     in.Organizer,
		Nonce:         in.Nonce,
		Title:         in.Title,
		Venue:         in.Venue,
		DateTS:        in.DateTS,
		TierName:      in.TierName,
		PriceLamports: in.PriceLamports,
		Supply:        in.Supply,
		Sold:          0,
		CreatedAt:     s.clock.Now(),
	}

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.CreateEvent(txCtx, event); err != nil {
			return err
		}
		if s.deposit > 0 {
			if err := s.ledger.Transfer(txCtx, s.deposit, in.Organizer, event.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

type CloseEventInput struct {
	Caller  string
	EventID string
}

// CloseEvent destroys an event record and refunds its deposit to the
// organizer. Sold tickets are untouched; their event back-reference is
// left dangling, matching the runtime this ledger models.
func (s *EventService) CloseEvent(ctx context.Context, in CloseEventInput) error {
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.GetEventForUpdate(txCtx, in.EventID)
		if err != nil {
			return err
		}
		if event.Organizer != in.Caller {
			return domain.ErrUnauthorized
		}
		if err := s.repo.DeleteEvent(txCtx, event.ID); err != nil {
			return err
		}
		return s.ledger.CloseCustody(txCtx, event.ID, event.Organizer)
	})
}

func (s *EventService) GetEvent(ctx context.Context, eventID string) (domain.Event, error) {
	return s.repo.GetEvent(ctx, eventID)
}
