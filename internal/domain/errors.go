package domain

import "errors"

var (
	ErrTitleTooLong    = errors.New("title too long")
	ErrVenueTooLong    = errors.New("venue too long")
	ErrTierNameTooLong = errors.New("tier name too long")
	ErrInvalidSupply   = errors.New("supply must be positive")
	ErrInvalidPrice    = errors.New("resale price must be positive")

	ErrAlreadyExists   = errors.New("record already exists")
	ErrEventNotFound   = errors.New("event not found")
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrListingNotFound = errors.New("listing not found")

	ErrUnauthorized     = errors.New("caller is not the record owner")
	ErrInvalidSeller    = errors.New("seller does not match listing")
	ErrInvalidOrganizer = errors.New("organizer does not match event")
	ErrListingMismatch  = errors.New("listing does not match event or ticket")

	ErrSoldOut           = errors.New("event is sold out")
	ErrOverflow          = errors.New("arithmetic overflow")
	ErrInsufficientFunds = errors.New("insufficient funds")
)
