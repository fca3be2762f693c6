package reservation

import (
	"errors"
	"net/http"
	"strconv"

	"roomledger/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the reservation endpoints onto an authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/reservations/orders", h.CreateOrder)
	rg.POST("/reservations/complete", h.CompleteOrder)
	rg.POST("/rooms/:id/checkout", h.EndReservation)
	rg.GET("/reservations/mine", h.MyOrders)
}

// RegisterPublicRoutes mounts the endpoints that need no authentication.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/reservations/fee", h.GetFee)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), payerFromContext(c), req.RoomID, req.Nights)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"order": order})
}

func (h *Handler) CompleteOrder(c *gin.Context) {
	var req CompleteOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	order, err := h.service.CompleteOrder(c.Request.Context(), payerFromContext(c), req.RoomID, req.Nights, req.LedgerBlock, req.CorrelationID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"order": order})
}

func (h *Handler) EndReservation(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}

	receipt, err := h.service.EndReservation(c.Request.Context(), payerFromContext(c), roomID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"status":  "payment_completed",
		"receipt": receipt,
	})
}

func (h *Handler) GetFee(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"fee": h.service.HoldingFee()})
}

func (h *Handler) MyOrders(c *gin.Context) {
	orders, err := h.service.MyOrders(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation parameters")
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrFeeNotConfigured):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Room, order or payment not found")
	case errors.Is(err, ErrBooked):
		response.Error(c, http.StatusConflict, "BOOKED", "Room reservation conflict")
	case errors.Is(err, ErrNotBooked):
		response.Error(c, http.StatusConflict, "NOT_BOOKED", "Room is not reserved")
	case errors.Is(err, ErrPaymentFailed):
		response.Error(c, http.StatusBadGateway, "PAYMENT_FAILED", "Ledger transfer failed, reservation unchanged")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Reservation operation failed")
	}
}

func payerFromContext(c *gin.Context) Payer {
	return Payer{
		UserID:        c.GetInt64("user_id"),
		LedgerAddress: c.GetString("ledger_address"),
	}
}
