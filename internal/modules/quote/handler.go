package quote

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"equiprent/internal/pkg/response"
	"equiprent/internal/pkg/validator"
	"equiprent/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/quotes", h.Create)
	rg.GET("/quotes", h.List)
	rg.GET("/quotes/:id", h.Get)
	rg.POST("/quotes/:id/items", h.AddItem)
	rg.DELETE("/quotes/:id/items/:itemId", h.RemoveItem)
	rg.POST("/quotes/:id/finalize", h.Finalize)
	rg.POST("/quotes/:id/cancel", h.Cancel)
	rg.POST("/quotes/:id/reserve", h.Reserve)
}

func (h *Handler) Create(c *gin.Context) {
	clientID := c.GetInt64("user_id")

	var req CreateQuoteRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
			return
		}
	}
	if issues := validator.Validate(req); issues != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid quote data", issues)
		return
	}

	q, err := h.service.Create(c.Request.Context(), clientID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create quote")
		return
	}

	response.Message(c, http.StatusCreated, "Quote created successfully", gin.H{"quote": q})
}

func (h *Handler) List(c *gin.Context) {
	clientID := c.GetInt64("user_id")

	quotes, err := h.service.List(c.Request.Context(), clientID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list quotes")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quotes": quotes})
}

func (h *Handler) Get(c *gin.Context) {
	clientID := c.GetInt64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	q, err := h.service.Get(c.Request.Context(), id, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Quote not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load quote")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"quote": q})
}

func (h *Handler) AddItem(c *gin.Context) {
	clientID := c.GetInt64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid item data", issues)
		return
	}

	item, err := h.service.AddItem(c.Request.Context(), id, clientID, req)
	if err != nil {
		h.writeQuoteError(c, err, "Failed to add item")
		return
	}

	response.Message(c, http.StatusCreated, "Item added to quote", gin.H{"item": item})
}

func (h *Handler) RemoveItem(c *gin.Context) {
	clientID := c.GetInt64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}

	if err := h.service.RemoveItem(c.Request.Context(), id, clientID, itemID); err != nil {
		h.writeQuoteError(c, err, "Failed to remove item")
		return
	}

	response.Message(c, http.StatusOK, "Item removed from quote", nil)
}

func (h *Handler) Finalize(c *gin.Context) {
	clientID := c.GetInt64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	q, err := h.service.Finalize(c.Request.Context(), id, clientID)
	if err != nil {
		h.writeQuoteError(c, err, "Failed to finalize quote")
		return
	}

	response.Message(c, http.StatusOK, "Quote finalized successfully", gin.H{"quote": q})
}

func (h *Handler) Cancel(c *gin.Context) {
	clientID := c.GetInt64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id, clientID); err != nil {
		h.writeQuoteError(c, err, "Failed to cancel quote")
		return
	}

	response.Message(c, http.StatusOK, "Quote cancelled", nil)
}

func (h *Handler) Reserve(c *gin.Context) {
	clientID := c.GetInt64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation data", issues)
		return
	}

	res, err := h.service.Reserve(c.Request.Context(), id, clientID, req)
	if err != nil {
		h.writeQuoteError(c, err, "Failed to create reservation")
		return
	}

	response.Message(c, http.StatusCreated, "Reservation requested successfully", gin.H{"reservation": res})
}

func (h *Handler) writeQuoteError(c *gin.Context, err error, fallback string) {
	var stockErr *repository.StockError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Quote not found")
	case errors.Is(err, ErrQuoteNotEditable):
		response.Error(c, http.StatusConflict, "QUOTE_NOT_EDITABLE", "This quote can no longer be modified")
	case errors.Is(err, ErrQuoteEmpty), errors.Is(err, repository.ErrQuoteEmpty):
		response.Error(c, http.StatusBadRequest, "QUOTE_EMPTY", "The quote has no items")
	case errors.Is(err, ErrQuoteNotCancelable):
		response.Error(c, http.StatusConflict, "QUOTE_NOT_CANCELABLE", "This quote cannot be cancelled anymore")
	case errors.Is(err, ErrDuplicateEquipment):
		response.Error(c, http.StatusConflict, "DUPLICATE_ITEM", "This equipment is already in the quote")
	case errors.Is(err, ErrTierUnavailable):
		response.Error(c, http.StatusBadRequest, "TIER_UNAVAILABLE", "The equipment has no price for the requested tier")
	case errors.Is(err, ErrNotRentable):
		response.Error(c, http.StatusBadRequest, "NOT_RENTABLE", "The equipment is not available for rental")
	case errors.Is(err, ErrInsufficientStock):
		response.Error(c, http.StatusBadRequest, "INSUFFICIENT_STOCK", "Requested quantity exceeds available stock")
	case errors.Is(err, ErrPastUseDate):
		response.Error(c, http.StatusBadRequest, "INVALID_USE_DATE", "Use date must be a future date, in YYYY-MM-DD format")
	case errors.Is(err, ErrItemNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Quote item not found")
	case errors.Is(err, repository.ErrQuoteNotFinalized):
		response.Error(c, http.StatusConflict, "QUOTE_NOT_FINALIZED", "Only finalized quotes can be reserved")
	case errors.As(err, &stockErr):
		response.ErrorWithDetails(c, http.StatusConflict, "INSUFFICIENT_STOCK", stockErr.Error(), gin.H{
			"equipment_id":   stockErr.EquipmentID,
			"equipment_name": stockErr.EquipmentName,
			"requested":      stockErr.Requested,
			"available":      stockErr.Available,
		})
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}
