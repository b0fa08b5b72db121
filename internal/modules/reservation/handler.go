package reservation

import (
	"errors"
	"net/http"
	"strconv"
	"time"

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
	rg.POST("/reservations", h.Create)
	rg.GET("/reservations", h.ListMine)
	rg.GET("/reservations/:id", h.GetMine)
	rg.POST("/reservations/:id/cancel", h.Cancel)
}

func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.GET("/reservations", h.ListAll)
	rg.GET("/reservations/stats", h.Stats)
	rg.GET("/reservations/:id", h.Get)
	rg.POST("/reservations/:id/approve", h.Approve)
	rg.POST("/reservations/:id/reject", h.Reject)
}

/* ---------- client side ---------- */

func (h *Handler) Create(c *gin.Context) {
	clientID := c.GetInt64("user_id")

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation data", issues)
		return
	}

	res, err := h.service.Create(c.Request.Context(), clientID, req)
	if err != nil {
		h.writeError(c, err, "Failed to create reservation")
		return
	}

	response.Message(c, http.StatusCreated, "Reservation requested successfully", gin.H{"reservation": res})
}

func (h *Handler) ListMine(c *gin.Context) {
	clientID := c.GetInt64("user_id")

	reservations, err := h.service.ListForClient(c.Request.Context(), clientID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list reservations")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservations": reservations})
}

func (h *Handler) GetMine(c *gin.Context) {
	clientID := c.GetInt64("user_id")
	id, ok := paramID(c)
	if !ok {
		return
	}

	res, err := h.service.GetForClient(c.Request.Context(), id, clientID)
	if err != nil {
		h.writeError(c, err, "Failed to load reservation")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) Cancel(c *gin.Context) {
	clientID := c.GetInt64("user_id")
	id, ok := paramID(c)
	if !ok {
		return
	}

	res, err := h.service.CancelByClient(c.Request.Context(), id, clientID)
	if err != nil {
		h.writeError(c, err, "Failed to cancel reservation")
		return
	}

	response.Message(c, http.StatusOK, "Reservation cancelled", gin.H{"reservation": res})
}

/* ---------- staff side ---------- */

func (h *Handler) ListAll(c *gin.Context) {
	f := parseReservationFilters(c)

	reservations, total, err := h.service.ListAll(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list reservations")
		return
	}

	totalPages := (int(total) + f.Limit - 1) / f.Limit
	currentPage := (f.Offset / f.Limit) + 1

	response.Success(c, http.StatusOK, gin.H{
		"reservations": reservations,
		"pagination": gin.H{
			"page":        currentPage,
			"limit":       f.Limit,
			"total":       total,
			"total_pages": totalPages,
		},
	})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	res, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to load reservation")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reservation": res})
}

func (h *Handler) Approve(c *gin.Context) {
	approverID := c.GetInt64("user_id")
	id, ok := paramID(c)
	if !ok {
		return
	}

	res, err := h.service.Approve(c.Request.Context(), id, approverID)
	if err != nil {
		h.writeError(c, err, "Failed to approve reservation")
		return
	}

	response.Message(c, http.StatusOK, "Reservation approved", gin.H{"reservation": res})
}

func (h *Handler) Reject(c *gin.Context) {
	approverID := c.GetInt64("user_id")
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "A rejection reason is required", issues)
		return
	}

	res, err := h.service.Reject(c.Request.Context(), id, approverID, req.Reason)
	if err != nil {
		h.writeError(c, err, "Failed to reject reservation")
		return
	}

	response.Message(c, http.StatusOK, "Reservation rejected", gin.H{"reservation": res})
}

func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load statistics")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

/* ---------- helpers ---------- */

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	var stockErr *repository.StockError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
	case errors.Is(err, repository.ErrReservationNotPending):
		response.Error(c, http.StatusConflict, "NOT_PENDING", "The reservation already left the pending state")
	case errors.As(err, &stockErr):
		response.ErrorWithDetails(c, http.StatusConflict, "INSUFFICIENT_STOCK", stockErr.Error(), gin.H{
			"equipment_id":   stockErr.EquipmentID,
			"equipment_name": stockErr.EquipmentName,
			"requested":      stockErr.Requested,
			"available":      stockErr.Available,
		})
	case errors.Is(err, ErrPastUseDate):
		response.Error(c, http.StatusBadRequest, "INVALID_USE_DATE", "Use date must be a future date, in YYYY-MM-DD format")
	case errors.Is(err, ErrNoItems):
		response.Error(c, http.StatusBadRequest, "NO_ITEMS", "The reservation needs at least one item")
	case errors.Is(err, ErrNotRentable):
		response.Error(c, http.StatusBadRequest, "NOT_RENTABLE", err.Error())
	case errors.Is(err, ErrInsufficientStock):
		response.Error(c, http.StatusBadRequest, "INSUFFICIENT_STOCK", err.Error())
	case errors.Is(err, ErrTierUnavailable):
		response.Error(c, http.StatusBadRequest, "TIER_UNAVAILABLE", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}

func parseReservationFilters(c *gin.Context) repository.ReservationFilters {
	var f repository.ReservationFilters

	f.Status = c.Query("status")
	if clientID := c.Query("client"); clientID != "" {
		if val, err := strconv.ParseInt(clientID, 10, 64); err == nil {
			f.ClientID = val
		}
	}
	if from := c.Query("from"); from != "" {
		if val, err := time.Parse("2006-01-02", from); err == nil {
			f.From = val
		}
	}
	if to := c.Query("to"); to != "" {
		if val, err := time.Parse("2006-01-02", to); err == nil {
			f.To = val
		}
	}

	f.Limit = 20
	if limit := c.Query("limit"); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil && val > 0 && val <= 100 {
			f.Limit = val
		}
	}
	f.Offset = 0
	if page := c.Query("page"); page != "" {
		if val, err := strconv.Atoi(page); err == nil && val > 0 {
			f.Offset = (val - 1) * f.Limit
		}
	}

	return f
}
