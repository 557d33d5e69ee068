package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/anri-dev/reservation-api/internal/dto"
	"github.com/anri-dev/reservation-api/internal/httperr"
	"github.com/anri-dev/reservation-api/internal/httpresp"
	"github.com/anri-dev/reservation-api/internal/middleware"
	ucReservation "github.com/anri-dev/reservation-api/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type AdminReservationHandler struct {
	listUC     *ucReservation.ListReservationsForAdmin
	approveUC  *ucReservation.ApproveReservation
	rejectUC   *ucReservation.RejectReservation
	completeUC *ucReservation.CompleteReservation
}

func NewAdminReservationHandler(
	listUC *ucReservation.ListReservationsForAdmin,
	approveUC *ucReservation.ApproveReservation,
	rejectUC *ucReservation.RejectReservation,
	completeUC *ucReservation.CompleteReservation,
) *AdminReservationHandler {
	return &AdminReservationHandler{
		listUC:     listUC,
		approveUC:  approveUC,
		rejectUC:   rejectUC,
		completeUC: completeUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ApproveReservationRequest struct {
	AdminNote *string `json:"admin_note"`

	ScheduledStartAt *time.Time `json:"scheduled_start_at"`
	ScheduledEndAt   *time.Time `json:"scheduled_end_at"`

	MeetingLink *string `json:"meeting_link" binding:"omitempty,url"`
	Location    *string `json:"location" binding:"omitempty,max=255"`
}

type RejectReservationRequest struct {
	AdminNote string `json:"admin_note" binding:"required"`
}

// ======================================================
// LIST
// ======================================================

func (h *AdminReservationHandler) List(c *gin.Context) {
	status := c.Query("status")

	list, err := h.listUC.Execute(c.Request.Context(), status)
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "failed_to_list_reservations", "Erro ao listar reservas.")
		}
		return
	}

	out := make([]dto.AdminReservationDTO, 0, len(list))
	for i := range list {
		out = append(out, dto.NewAdminReservationDTO(&list[i]))
	}

	httpresp.List(c, out)
}

// ======================================================
// APPROVE
// ======================================================

func (h *AdminReservationHandler) Approve(c *gin.Context) {
	admin := middleware.PrincipalFrom(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req ApproveReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	err = h.approveUC.Execute(c.Request.Context(), admin, id, ucReservation.ApproveReservationInput{
		AdminNote:        req.AdminNote,
		ScheduledStartAt: req.ScheduledStartAt,
		ScheduledEndAt:   req.ScheduledEndAt,
		MeetingLink:      req.MeetingLink,
		Location:         req.Location,
	})
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "failed_to_approve_reservation", "Erro ao aprovar reserva.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Approved"})
}

// ======================================================
// REJECT
// ======================================================

func (h *AdminReservationHandler) Reject(c *gin.Context) {
	admin := middleware.PrincipalFrom(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req RejectReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "note_required", "Justificativa obrigatória para rejeitar.")
		return
	}

	if err := h.rejectUC.Execute(c.Request.Context(), admin, id, req.AdminNote); err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "failed_to_reject_reservation", "Erro ao rejeitar reserva.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rejected"})
}

// ======================================================
// COMPLETE
// ======================================================

func (h *AdminReservationHandler) Complete(c *gin.Context) {
	admin := middleware.PrincipalFrom(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	res, err := h.completeUC.Execute(c.Request.Context(), admin, id)
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "failed_to_complete_reservation", "Erro ao concluir reserva.")
		}
		return
	}

	httpresp.OK(c, res)
}
