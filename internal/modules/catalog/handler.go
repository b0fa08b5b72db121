package catalog

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

// RegisterPublicRoutes exposes anonymous catalog browsing.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/categories", h.ListCategories)
	rg.GET("/categories/:id/equipment", h.ListEquipmentByCategory)
	rg.GET("/equipment", h.ListEquipment)
	rg.GET("/equipment/available", h.ListAvailableEquipment)
	rg.GET("/equipment/:id", h.GetEquipment)
	rg.POST("/equipment/calculate", h.Calculate)
}

// RegisterProtectedRoutes exposes endpoints for authenticated clients.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/equipment/check-availability", h.CheckAvailability)
}

// RegisterStaffRoutes exposes catalog mutation, staff only.
func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.POST("/categories", h.CreateCategory)
	rg.PUT("/categories/:id", h.UpdateCategory)
	rg.DELETE("/categories/:id", h.DeleteCategory)

	rg.POST("/equipment", h.CreateEquipment)
	rg.PUT("/equipment/:id", h.UpdateEquipment)
	rg.DELETE("/equipment/:id", h.DeleteEquipment)
	rg.GET("/equipment/:id/can-delete", h.CanDeleteEquipment)
}

/* ---------- categories ---------- */

func (h *Handler) ListCategories(c *gin.Context) {
	// staff may ask for inactive categories too
	activeOnly := c.Query("all") != "true"

	categories, err := h.service.ListCategories(c.Request.Context(), activeOnly)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list categories")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"categories": categories})
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid category data", issues)
		return
	}

	cat, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrCategoryNameTaken) {
			response.Error(c, http.StatusConflict, "DUPLICATE_NAME", "A category with this name already exists")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create category")
		return
	}

	response.Message(c, http.StatusCreated, "Category created successfully", gin.H{"category": cat})
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid category data", issues)
		return
	}

	cat, err := h.service.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Category not found")
		case errors.Is(err, ErrCategoryNameTaken):
			response.Error(c, http.StatusConflict, "DUPLICATE_NAME", "A category with this name already exists")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update category")
		}
		return
	}

	response.Message(c, http.StatusOK, "Category updated successfully", gin.H{"category": cat})
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Category not found")
		case errors.Is(err, repository.ErrCategoryInUse):
			response.Error(c, http.StatusBadRequest, "CATEGORY_IN_USE", "This category still owns equipment and cannot be removed")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete category")
		}
		return
	}

	response.Message(c, http.StatusOK, "Category removed successfully", nil)
}

/* ---------- equipment ---------- */

func (h *Handler) ListEquipment(c *gin.Context) {
	f := parseEquipmentFilters(c)

	equipment, total, err := h.service.ListEquipment(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list equipment")
		return
	}

	totalPages := (int(total) + f.Limit - 1) / f.Limit
	currentPage := (f.Offset / f.Limit) + 1

	response.Success(c, http.StatusOK, gin.H{
		"equipment": equipment,
		"pagination": gin.H{
			"page":        currentPage,
			"limit":       f.Limit,
			"total":       total,
			"total_pages": totalPages,
		},
	})
}

func (h *Handler) GetEquipment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	eq, err := h.service.GetEquipment(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Equipment not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load equipment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"equipment": eq})
}

func (h *Handler) ListAvailableEquipment(c *gin.Context) {
	equipment, err := h.service.ListAvailableEquipment(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list equipment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"count":     len(equipment),
		"equipment": equipment,
	})
}

func (h *Handler) ListEquipmentByCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	availableOnly := c.Query("available") == "true"

	cat, equipment, err := h.service.ListEquipmentByCategory(c.Request.Context(), id, availableOnly)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, ErrCategoryInactive) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Category not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list equipment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"category":  cat,
		"count":     len(equipment),
		"equipment": equipment,
	})
}

func (h *Handler) CreateEquipment(c *gin.Context) {
	var req EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid equipment data", issues)
		return
	}

	eq, warnings, err := h.service.CreateEquipment(c.Request.Context(), req)
	if err != nil {
		h.writeEquipmentError(c, err, "Failed to create equipment")
		return
	}

	data := gin.H{"equipment": eq}
	if len(warnings) > 0 {
		data["warnings"] = warnings
	}
	response.Message(c, http.StatusCreated, "Equipment registered successfully", data)
}

func (h *Handler) UpdateEquipment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid equipment data", issues)
		return
	}

	eq, warnings, err := h.service.UpdateEquipment(c.Request.Context(), id, req)
	if err != nil {
		h.writeEquipmentError(c, err, "Failed to update equipment")
		return
	}

	data := gin.H{"equipment": eq}
	if len(warnings) > 0 {
		data["warnings"] = warnings
	}
	response.Message(c, http.StatusOK, "Equipment updated successfully", data)
}

func (h *Handler) DeleteEquipment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteEquipment(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Equipment not found")
		case errors.Is(err, repository.ErrEquipmentReserved):
			response.ErrorWithDetails(c, http.StatusBadRequest, "EQUIPMENT_RESERVED",
				"This equipment cannot be removed while it is linked to active or future reservations",
				gin.H{"can_delete": false})
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete equipment")
		}
		return
	}

	response.Message(c, http.StatusOK, "Equipment removed successfully", gin.H{"can_delete": true})
}

func (h *Handler) CanDeleteEquipment(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	eq, canDelete, blocking, err := h.service.CanDeleteEquipment(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Equipment not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check equipment")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"equipment_name":      eq.Name,
		"can_delete":          canDelete,
		"active_reservations": blocking,
	})
}

/* ---------- pricing & availability ---------- */

func (h *Handler) Calculate(c *gin.Context) {
	var req CalculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid calculation request", issues)
		return
	}

	result, err := h.service.Calculate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Equipment not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to calculate price")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"calculation": result})
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	var req AvailabilityCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if issues := validator.Validate(req); issues != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid availability request", issues)
		return
	}

	results, allAvailable, err := h.service.CheckAvailability(c.Request.Context(), req)
	if err != nil {
		var fields FieldErrors
		if errors.As(err, &fields) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid availability request", fields)
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check availability")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"use_date":      req.UseDate,
		"all_available": allAvailable,
		"results":       results,
	})
}

/* ---------- helpers ---------- */

func (h *Handler) writeEquipmentError(c *gin.Context, err error, fallback string) {
	var fields FieldErrors
	switch {
	case errors.As(err, &fields):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid equipment data", fields)
	case errors.Is(err, ErrCategoryNotFound), errors.Is(err, ErrCategoryInactive):
		response.Error(c, http.StatusBadRequest, "INVALID_CATEGORY", "Category not found or inactive")
	case errors.Is(err, ErrSerialNumberTaken):
		response.Error(c, http.StatusConflict, "DUPLICATE_SERIAL", "Equipment with this serial number already exists")
	case errors.Is(err, gorm.ErrRecordNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Equipment not found")
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

func parseEquipmentFilters(c *gin.Context) repository.EquipmentFilters {
	var f repository.EquipmentFilters

	f.Query = c.Query("q")
	f.State = c.Query("state")
	f.Brand = c.Query("brand")
	f.OrderBy = c.Query("order_by")

	if categoryID := c.Query("category"); categoryID != "" && categoryID != "all" {
		if val, err := strconv.ParseInt(categoryID, 10, 64); err == nil {
			f.CategoryID = val
		}
	}
	if priceMin := c.Query("price_min"); priceMin != "" {
		if val, err := strconv.ParseFloat(priceMin, 64); err == nil {
			f.PriceMin = val
		}
	}
	if priceMax := c.Query("price_max"); priceMax != "" {
		if val, err := strconv.ParseFloat(priceMax, 64); err == nil {
			f.PriceMax = val
		}
	}
	if available := c.Query("available"); available != "" && available != "all" {
		val := available == "true"
		f.Available = &val
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
