package app

import (
	"context"
	"math"

	"github.com/ticketchain/ledger/internal/domain"
	"github.com/ticketchain/ledger/internal/identity"
)

type TicketRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEventForUpdate(ctx context.Context, eventID string) (domain.Event, error)
	UpdateSold(ctx context.Context, eventID string, sold uint32) error
}

type TicketService struct {
	repo   TicketRepository
	ledger ValueLedger
}

func NewTicketService(repo TicketRepository, ledger ValueLedger) *TicketService {
	return &TicketService{
		repo:   repo,
		ledger: ledger,
	}
}

type BuyTicketInput struct {
	Buyer   string
	EventID string
}

// BuyTicket pays the primary-sale price to the organizer, mints one
// ticket to the buyer and advances the event's sold counter, as one
// unit. The mint identity is derived from the counter's pre-increment
// value, so the row lock on the event serializes competing buyers and
// no two tickets of an event ever share a mint.
func (s *TicketService) BuyTicket(ctx context.Context, in BuyTicketInput) (string, error) {
	var mintID string

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.GetEventForUpdate(txCtx, in.EventID)
		if err != nil {
			return err
		}
		if event.Sold >= event.Supply {
			return domain.ErrSoldOut
		}

		seq := event.Sold
		mintID = identity.TicketMintID(event.ID, seq)

		if err := s.ledger.Transfer(txCtx, event.PriceLamports, in.Buyer, event.Organizer); err != nil {
			return err
		}
		if err := s.ledger.MintAsset(txCtx, mintID, in.Buyer); err != nil {
			return err
		}

		if event.Sold == math.MaxUint32 {
			return domain.ErrOverflow
		}
		return s.repo.UpdateSold(txCtx, event.ID, event.Sold+1)
	})
	if err != nil {
		return "", err
	}
	return mintID, nil
}
