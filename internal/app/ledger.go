package app

import "context"

// ValueLedger is the value-transfer collaborator: native-currency and
// asset moves with all-or-nothing semantics. Implementations must join
// the unit of work opened by the repository's WithTx so that transfers
// and record writes commit or abort together.
type ValueLedger interface {
	// Transfer moves amount lamports between identities. Fails with
	// domain.ErrInsufficientFunds when the payer's balance is short.
	Transfer(ctx context.Context, amount uint64, from, to string) error

	// MintAsset creates the one-unit asset at assetID owned by to.
	MintAsset(ctx context.Context, assetID, to string) error

	// TransferAsset moves the asset at assetID from its current holder
	// to another identity. Fails with domain.ErrTicketNotFound when no
	// such asset exists, or domain.ErrUnauthorized when from is not the
	// current holder.
	TransferAsset(ctx context.Context, assetID, from, to string) error

	// CloseCustody drains any lamports held by a record identity to
	// depositDest and removes the record's balance entry.
	CloseCustody(ctx context.Context, custodyID, depositDest string) error
}
