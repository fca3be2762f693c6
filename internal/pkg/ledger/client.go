package ledger

import "context"

// TransferOp is the value movement recorded inside a block.
type TransferOp struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
	Memo   string `json:"memo"`
}

// Block is one immutable ledger record. Not every block carries a transfer.
type Block struct {
	Index    uint64      `json:"index"`
	Transfer *TransferOp `json:"transfer,omitempty"`
}

// Client is the boundary to the external payment ledger. All three calls are
// remote and may fail; callers must treat errors as retryable conditions, not
// crashes.
type Client interface {
	// Transfer moves amount to the given address, paying fee on top, and
	// returns the block index the transfer landed in.
	Transfer(ctx context.Context, to string, amount, fee int64) (uint64, error)
	// QueryBlocks returns up to length blocks starting at index start.
	QueryBlocks(ctx context.Context, start uint64, length uint32) ([]Block, error)
	// TransferFee returns the ledger's current per-transfer fee.
	TransferFee(ctx context.Context) (int64, error)
}
