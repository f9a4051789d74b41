package app

import (
	"context"

	"github.com/ticketchain/ledger/internal/domain"
)

// memStore is an in-memory stand-in for the Postgres repositories and
// the value-transfer collaborator, shared by the service unit tests.
type memStore struct {
	events   map[string]domain.Event
	listings map[string]domain.Listing
	assets   map[string]string // asset id -> owner
	balances map[string]uint64

	transfers []transferCall
	mintErr   error
}

type transferCall struct {
	amount uint64
	from   string
	to     string
}

func newMemStore() *memStore {
	return &memStore{
		events:   make(map[string]domain.Event),
		listings: make(map[string]domain.Listing),
		assets:   make(map[string]string),
		balances: make(map[string]uint64),
	}
}

func (m *memStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (m *memStore) CreateEvent(_ context.Context, event domain.Event) error {
	if _, ok := m.events[event.ID]; ok {
		return domain.ErrAlreadyExists
	}
	m.events[event.ID] = event
	return nil
}

func (m *memStore) GetEvent(_ context.Context, eventID string) (domain.Event, error) {
	event, ok := m.events[eventID]
	if !ok {
		return domain.Event{}, domain.ErrEventNotFound
	}
	return event, nil
}

func (m *memStore) GetEventForUpdate(ctx context.Context, eventID string) (domain.Event, error) {
	return m.GetEvent(ctx, eventID)
}

func (m *memStore) UpdateSold(_ context.Context, eventID string, sold uint32) error {
	event, ok := m.events[eventID]
	if !ok {
		return domain.ErrEventNotFound
	}
	event.Sold = sold
	m.events[eventID] = event
	return nil
}

func (m *memStore) DeleteEvent(_ context.Context, eventID string) error {
	if _, ok := m.events[eventID]; !ok {
		return domain.ErrEventNotFound
	}
	delete(m.events, eventID)
	return nil
}

func (m *memStore) CreateListing(_ context.Context, listing domain.Listing) error {
	if _, ok := m.listings[listing.ID]; ok {
		return domain.ErrAlreadyExists
	}
	for _, l := range m.listings {
		if l.TicketMint == listing.TicketMint {
			return domain.ErrAlreadyExists
		}
	}
	m.listings[listing.ID] = listing
	return nil
}

func (m *memStore) GetListing(_ context.Context, listingID string) (domain.Listing, error) {
	listing, ok := m.listings[listingID]
	if !ok {
		return domain.Listing{}, domain.ErrListingNotFound
	}
	return listing, nil
}

func (m *memStore) GetListingForUpdate(ctx context.Context, listingID string) (domain.Listing, error) {
	return m.GetListing(ctx, listingID)
}

func (m *memStore) DeleteListing(_ context.Context, listingID string) error {
	if _, ok := m.listings[listingID]; !ok {
		return domain.ErrListingNotFound
	}
	delete(m.listings, listingID)
	return nil
}

func (m *memStore) Transfer(_ context.Context, amount uint64, from, to string) error {
	if amount == 0 {
		return nil
	}
	if m.balances[from] < amount {
		return domain.ErrInsufficientFunds
	}
	m.balances[from] -= amount
	m.balances[to] += amount
	m.transfers = append(m.transfers, transferCall{amount: amount, from: from, to: to})
	return nil
}

func (m *memStore) MintAsset(_ context.Context, assetID, to string) error {
	if m.mintErr != nil {
		return m.mintErr
	}
	if _, ok := m.assets[assetID]; ok {
		return domain.ErrAlreadyExists
	}
	m.assets[assetID] = to
	return nil
}

func (m *memStore) TransferAsset(_ context.Context, assetID, from, to string) error {
	owner, ok := m.assets[assetID]
	if !ok {
		return domain.ErrTicketNotFound
	}
	if owner != from {
		return domain.ErrUnauthorized
	}
	m.assets[assetID] = to
	return nil
}

func (m *memStore) CloseCustody(_ context.Context, custodyID, depositDest string) error {
	if held := m.balances[custodyID]; held > 0 {
		m.balances[depositDest] += held
	}
	delete(m.balances, custodyID)
	return nil
}
