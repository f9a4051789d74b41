package domain

import (
	"math"
	"time"
)

// Resale proceeds split, in whole percent. The platform takes whatever
// floor division leaves over, so the three shares always sum to the
// exact price.
const (
	ArtistSharePct = 40
	SellerSharePct = 40
)

// Listing is a seller's active offer to resell one specific ticket.
// Seller, EventID and TicketMint are immutable; the escrowed ticket is
// held by the custody record at EscrowID until the listing is closed.
type Listing struct {
	ID            string
	Seller        string
	EventID       string
	TicketMint    string
	PriceLamports uint64
	EscrowID      string
	CreatedAt     time.Time
}

// SplitResale divides a resale price three ways using floor division.
// The platform share absorbs the rounding remainder: for price=7 the
// shares are 2, 2, 3; for price=1 they are 0, 0, 1.
func SplitResale(price uint64) (artist, seller, platform uint64, err error) {
	if price > math.MaxUint64/ArtistSharePct {
		return 0, 0, 0, ErrOverflow
	}
	artist = price * ArtistSharePct / 100
	seller = price * SellerSharePct / 100
	platform = price - artist - seller
	return artist, seller, platform, nil
}
