package app

import (
	"context"
	"testing"
	"time"

	"github.com/ticketchain/ledger/internal/clock"
	"github.com/ticketchain/ledger/internal/domain"
)

// TestPrimaryAndResaleFlow walks the full lifecycle: an organizer sells
// out a two-ticket event, the first buyer resells their ticket, and the
// proceeds split 40/40/20 between organizer, seller and platform.
func TestPrimaryAndResaleFlow(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 6, 20, 19, 30, 0, 0, time.UTC)
	ctx := context.Background()

	store := newMemStore()
	store.balances["organizer"] = 20_000_000
	store.balances["alice"] = 20_000_000
	store.balances["bob"] = 20_000_000

	events := NewEventService(store, store, clock.NewFixed(now))
	tickets := NewTicketService(store, store)
	resale := NewResaleService(store, store, clock.NewFixed(now))

	event, err := events.CreateEvent(ctx, CreateEventInput{
		Organizer:     "organizer",
		Nonce:         42,
		Title:         "Night Show",
		Venue:         "Arena",
		DateTS:        now.Add(14 * 24 * time.Hour).Unix(),
		TierName:      "Floor",
		PriceLamports: 100,
		Supply:        2,
	})
	if err != nil {
		t.Fatalf("create event: %v", err)
	}

	mint0, err := tickets.BuyTicket(ctx, BuyTicketInput{Buyer: "alice", EventID: event.ID})
	if err != nil {
		t.Fatalf("first purchase: %v", err)
	}
	mint1, err := tickets.BuyTicket(ctx, BuyTicketInput{Buyer: "bob", EventID: event.ID})
	if err != nil {
		t.Fatalf("second purchase: %v", err)
	}
	if mint0 == mint1 {
		t.Fatalf("both purchases produced mint %s", mint0)
	}
	if _, err := tickets.BuyTicket(ctx, BuyTicketInput{Buyer: "bob", EventID: event.ID}); err != domain.ErrSoldOut {
		t.Fatalf("expected ErrSoldOut on third purchase, got %v", err)
	}

	listing, err := resale.ListForResale(ctx, ListForResaleInput{
		Seller:        "alice",
		EventID:       event.ID,
		TicketMint:    mint0,
		PriceLamports: 50,
	})
	if err != nil {
		t.Fatalf("list for resale: %v", err)
	}

	organizerBefore := store.balances["organizer"]
	aliceBefore := store.balances["alice"]
	bobBefore := store.balances["bob"]

	err = resale.BuyResale(ctx, BuyResaleInput{
		Buyer:      "bob",
		EventID:    event.ID,
		TicketMint: mint0,
		ListingID:  listing.ID,
		Organizer:  "organizer",
		Seller:     "alice",
		Platform:   "platform",
	})
	if err != nil {
		t.Fatalf("buy resale: %v", err)
	}

	if got := store.balances["organizer"] - organizerBefore; got != 20 {
		t.Fatalf("expected organizer +20, got +%d", got)
	}
	wantAlice := aliceBefore + 20 + defaultListingDeposit + defaultEscrowDeposit
	if got := store.balances["alice"]; got != wantAlice {
		t.Fatalf("expected alice balance %d, got %d", wantAlice, got)
	}
	if got := store.balances["platform"]; got != 10 {
		t.Fatalf("expected platform balance 10, got %d", got)
	}
	if got := bobBefore - store.balances["bob"]; got != 50 {
		t.Fatalf("expected bob to pay 50, got %d", got)
	}
	if owner := store.assets[mint0]; owner != "bob" {
		t.Fatalf("expected bob to hold the resold ticket, owner %q", owner)
	}
	if _, err := resale.GetListing(ctx, listing.ID); err != domain.ErrListingNotFound {
		t.Fatalf("expected listing gone, got %v", err)
	}
}
