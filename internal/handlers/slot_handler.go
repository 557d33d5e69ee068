package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/anri-dev/reservation-api/internal/domain/reservation"
	"github.com/anri-dev/reservation-api/internal/httperr"
	"github.com/anri-dev/reservation-api/internal/httpresp"
	"github.com/anri-dev/reservation-api/internal/models"
	"github.com/anri-dev/reservation-api/internal/timezone"
)

type SlotHandler struct {
	db *gorm.DB
}

func NewSlotHandler(db *gorm.DB) *SlotHandler {
	return &SlotHandler{db: db}
}

// --------- Requests ---------

type CreateSlotRequest struct {
	ServiceID uint      `json:"service_id" binding:"required"`
	Mode      string    `json:"mode" binding:"required,oneof=online offline"`
	StartAt   time.Time `json:"start_at" binding:"required"`
	EndAt     time.Time `json:"end_at" binding:"required,gtfield=StartAt"`
	Status    string    `json:"status" binding:"omitempty,oneof=available booked closed"`
}

type UpdateSlotRequest struct {
	ServiceID *uint      `json:"service_id"`
	Mode      *string    `json:"mode" binding:"omitempty,oneof=online offline"`
	StartAt   *time.Time `json:"start_at"`
	EndAt     *time.Time `json:"end_at"`
	Status    *string    `json:"status" binding:"omitempty,oneof=available booked closed"`
}

// ======================================================
// PUBLIC LIST (somente disponíveis)
// ======================================================

func (h *SlotHandler) PublicList(c *gin.Context) {
	serviceID := c.Query("service_id")
	mode := c.Query("mode")

	if serviceID == "" || mode == "" {
		httperr.BadRequest(c, "missing_params", "Serviço e modo obrigatórios.")
		return
	}
	if !domain.IsValidMode(domain.Mode(mode)) {
		httperr.Unprocessable(c, "invalid_mode", "Modo inválido (online ou offline).")
		return
	}

	q := h.db.
		Where("service_id = ? AND mode = ? AND status = ?", serviceID, mode, "available").
		Order("start_at ASC")

	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.ParseInLocation("2006-01-02", dateStr, timezone.Location())
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		q = q.Where("start_at >= ? AND start_at < ?", date, date.Add(24*time.Hour))
	}

	var slots []models.Slot
	if err := q.Find(&slots).Error; err != nil {
		httperr.Internal(c, "failed_to_list_slots", "Erro ao listar horários.")
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// ADMIN CRUD
// ======================================================

func (h *SlotHandler) List(c *gin.Context) {
	q := h.db.Order("start_at ASC")

	if serviceID := c.Query("service_id"); serviceID != "" {
		q = q.Where("service_id = ?", serviceID)
	}
	if mode := c.Query("mode"); mode != "" {
		q = q.Where("mode = ?", mode)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if dateStr := c.Query("date"); dateStr != "" {
		date, err := time.ParseInLocation("2006-01-02", dateStr, timezone.Location())
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data inválida.")
			return
		}
		q = q.Where("start_at >= ? AND start_at < ?", date, date.Add(24*time.Hour))
	}

	var slots []models.Slot
	if err := q.Find(&slots).Error; err != nil {
		httperr.Internal(c, "failed_to_list_slots", "Erro ao listar horários.")
		return
	}

	httpresp.List(c, slots)
}

func (h *SlotHandler) Create(c *gin.Context) {
	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, req.ServiceID).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
		return
	}

	status := req.Status
	if status == "" {
		status = "available"
	}

	slot := models.Slot{
		ServiceID: req.ServiceID,
		Mode:      req.Mode,
		StartAt:   req.StartAt,
		EndAt:     req.EndAt,
		Status:    status,
	}

	if err := h.db.Create(&slot).Error; err != nil {
		httperr.Internal(c, "failed_to_create_slot", "Erro ao criar horário.")
		return
	}

	c.JSON(http.StatusCreated, slot)
}

func (h *SlotHandler) Show(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var slot models.Slot
	if err := h.db.First(&slot, id).Error; err != nil {
		httperr.NotFound(c, "slot_not_found", "Horário não encontrado.")
		return
	}

	httpresp.OK(c, slot)
}

func (h *SlotHandler) Update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var slot models.Slot
	if err := h.db.First(&slot, id).Error; err != nil {
		httperr.NotFound(c, "slot_not_found", "Horário não encontrado.")
		return
	}

	var req UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.ServiceID != nil {
		slot.ServiceID = *req.ServiceID
	}
	if req.Mode != nil {
		slot.Mode = *req.Mode
	}
	if req.StartAt != nil {
		slot.StartAt = *req.StartAt
	}
	if req.EndAt != nil {
		slot.EndAt = *req.EndAt
	}
	if req.Status != nil {
		slot.Status = *req.Status
	}

	if !slot.EndAt.After(slot.StartAt) {
		httperr.Unprocessable(c, "invalid_window", "Intervalo solicitado inválido.")
		return
	}

	if err := h.db.Save(&slot).Error; err != nil {
		httperr.Internal(c, "failed_to_update_slot", "Erro ao atualizar horário.")
		return
	}

	httpresp.OK(c, slot)
}

func (h *SlotHandler) Delete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	if err := h.db.Delete(&models.Slot{}, id).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_slot", "Erro ao remover horário.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}
