package reservation

type CreateOrderRequest struct {
	RoomID int64 `json:"room_id" binding:"required"`
	Nights int64 `json:"nights" binding:"required,gte=1"`
}

type CompleteOrderRequest struct {
	RoomID        int64  `json:"room_id" binding:"required"`
	Nights        int64  `json:"nights" binding:"required,gte=1"`
	LedgerBlock   uint64 `json:"ledger_block" binding:"required"`
	CorrelationID string `json:"correlation_id" binding:"required"`
}
