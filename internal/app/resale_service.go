package app

import (
	"context"

	"github.com/ticketchain/ledger/internal/clock"
	"github.com/ticketchain/ledger/internal/domain"
	"github.com/ticketchain/ledger/internal/identity"
)

type ListingRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEvent(ctx context.Context, eventID string) (domain.Event, error)
	CreateListing(ctx context.Context, listing domain.Listing) error
	GetListing(ctx context.Context, listingID string) (domain.Listing, error)
	GetListingForUpdate(ctx context.Context, listingID string) (domain.Listing, error)
	DeleteListing(ctx context.Context, listingID string) error
}

// Rent held by the listing record and its escrow custody account while
// a listing is open. Both come out of the seller's balance at listing
// time and flow back to the seller when the listing closes, whether it
// sells or is cancelled.
const (
	defaultListingDeposit = 1_677_360
	defaultEscrowDeposit  = 2_039_280
)

type ResaleService struct {
	repo           ListingRepository
	ledger         ValueLedger
	clock          clock.Clock
	listingDeposit uint64
	escrowDeposit  uint64
}

func NewResaleService(repo ListingRepository, ledger ValueLedger, clk clock.Clock, opts ...ResaleServiceOption) *ResaleService {
	svc := &ResaleService{
		repo:           repo,
		ledger:         ledger,
		clock:          clk,
		listingDeposit: defaultListingDeposit,
		escrowDeposit:  defaultEscrowDeposit,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type ResaleServiceOption func(*ResaleService)

// WithListingDeposit overrides the rent charged for a listing record.
func WithListingDeposit(d uint64) ResaleServiceOption {
	return func(s *ResaleService) {
		s.listingDeposit = d
	}
}

// WithEscrowDeposit overrides the rent charged for an escrow custody
// record.
func WithEscrowDeposit(d uint64) ResaleServiceOption {
	return func(s *ResaleService) {
		s.escrowDeposit = d
	}
}

type ListForResaleInput struct {
	Seller        string
	EventID       string
	TicketMint    string
	PriceLamports uint64
}

// ListForResale moves the seller's ticket into escrow custody and opens
// a listing at the seller's price. Listing and escrow addresses derive
// from the ticket mint alone, so a second listing for the same ticket
// collides and fails before anything moves.
func (s *ResaleService) ListForResale(ctx context.Context, in ListForResaleInput) (domain.Listing, error) {
	if in.PriceLamports == 0 {
		return domain.Listing{}, domain.ErrInvalidPrice
	}

	listing := domain.Listing{
		ID:            identity.ListingID(in.TicketMint),
		Seller:        in.Seller,
		EventID:       in.EventID,
		TicketMint:    in.TicketMint,
		PriceLamports: in.PriceLamports,
		EscrowID:      identity.EscrowID(in.TicketMint),
		CreatedAt:     s.clock.Now(),
	}

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetEvent(txCtx, in.EventID); err != nil {
			return err
		}
		if err := s.repo.CreateListing(txCtx, listing); err != nil {
			return err
		}
		if err := s.ledger.TransferAsset(txCtx, in.TicketMint, in.Seller, listing.EscrowID); err != nil {
			return err
		}
		if s.listingDeposit > 0 {
			if err := s.ledger.Transfer(txCtx, s.listingDeposit, in.Seller, listing.ID); err != nil {
				return err
			}
		}
		if s.escrowDeposit > 0 {
			if err := s.ledger.Transfer(txCtx, s.escrowDeposit, in.Seller, listing.EscrowID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.Listing{}, err
	}
	return listing, nil
}

type BuyResaleInput struct {
	Buyer      string
	EventID    string
	TicketMint string
	ListingID  string
	Organizer  string
	Seller     string
	Platform   string
}

// BuyResale settles an open listing: the price splits three ways
// between organizer, seller and platform, the escrowed ticket moves to
// the buyer, and the listing and its custody record are destroyed with
// their deposits refunded to the seller. Every move commits or none do.
func (s *ResaleService) BuyResale(ctx context.Context, in BuyResaleInput) error {
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		listing, err := s.repo.GetListingForUpdate(txCtx, in.ListingID)
		if err != nil {
			return err
		}
		if listing.EventID != in.EventID || listing.TicketMint != in.TicketMint {
			return domain.ErrListingMismatch
		}

		event, err := s.repo.GetEvent(txCtx, listing.EventID)
		if err != nil {
			return err
		}
		if in.Organizer != event.Organizer {
			return domain.ErrInvalidOrganizer
		}
		if in.Seller != listing.Seller {
			return domain.ErrInvalidSeller
		}

		artist, seller, platform, err := domain.SplitResale(listing.PriceLamports)
		if err != nil {
			return err
		}

		if err := s.ledger.Transfer(txCtx, artist, in.Buyer, in.Organizer); err != nil {
			return err
		}
		if err := s.ledger.Transfer(txCtx, seller, in.Buyer, in.Seller); err != nil {
			return err
		}
		if err := s.ledger.Transfer(txCtx, platform, in.Buyer, in.Platform); err != nil {
			return err
		}

		if err := s.ledger.TransferAsset(txCtx, listing.TicketMint, listing.EscrowID, in.Buyer); err != nil {
			return err
		}
		if err := s.ledger.CloseCustody(txCtx, listing.EscrowID, listing.Seller); err != nil {
			return err
		}
		if err := s.repo.DeleteListing(txCtx, listing.ID); err != nil {
			return err
		}
		return s.ledger.CloseCustody(txCtx, listing.ID, listing.Seller)
	})
}

type CancelListingInput struct {
	Seller     string
	TicketMint string
	ListingID  string
}

// CancelListing returns the escrowed ticket and all deposits to the
// seller and removes the listing. Only the listing's seller may cancel.
func (s *ResaleService) CancelListing(ctx context.Context, in CancelListingInput) error {
	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		listing, err := s.repo.GetListingForUpdate(txCtx, in.ListingID)
		if err != nil {
			return err
		}
		if listing.TicketMint != in.TicketMint {
			return domain.ErrListingMismatch
		}
		if listing.Seller != in.Seller {
			return domain.ErrInvalidSeller
		}

		if err := s.ledger.TransferAsset(txCtx, listing.TicketMint, listing.EscrowID, listing.Seller); err != nil {
			return err
		}
		if err := s.ledger.CloseCustody(txCtx, listing.EscrowID, listing.Seller); err != nil {
			return err
		}
		if err := s.repo.DeleteListing(txCtx, listing.ID); err != nil {
			return err
		}
		return s.ledger.CloseCustody(txCtx, listing.ID, listing.Seller)
	})
}

func (s *ResaleService) GetListing(ctx context.Context, listingID string) (domain.Listing, error) {
	return s.repo.GetListing(ctx, listingID)
}
