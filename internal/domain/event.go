package domain

import "time"

// Field limits enforced at event creation.
const (
	MaxTitleLen    = 64
	MaxVenueLen    = 64
	MaxTierNameLen = 32
)

// Event represents a sellable occasion with a fixed ticket supply and a
// fixed primary-sale unit price. Organizer and Nonce are immutable and
// together determine the event's derived identity; Sold only ever
// increases, and never past Supply.
type Event struct {
	ID            string
	Organizer     string
	Nonce         uint64
	Title         string
	Venue         string
	DateTS        int64
	TierName      string
	PriceLamports uint64
	Supply        uint32
	Sold          uint32
	CreatedAt     time.Time
}

// ValidateNewEvent checks the creation-time constraints on an event's
// caller-supplied fields.
func ValidateNewEvent(title, venue, tierName string, supply uint32) error {
	if len(title) > MaxTitleLen {
		return ErrTitleTooLong
	}
	if len(venue) > MaxVenueLen {
		return ErrVenueTooLong
	}
	if len(tierName) > MaxTierNameLen {
		return ErrTierNameTooLong
	}
	if supply == 0 {
		return ErrInvalidSupply
	}
	return nil
}
