package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/anri-dev/reservation-api/internal/domain/reservation"
	"github.com/anri-dev/reservation-api/internal/httperr"
	"github.com/anri-dev/reservation-api/internal/httpresp"
	"github.com/anri-dev/reservation-api/internal/middleware"
	"github.com/anri-dev/reservation-api/internal/storage"
	ucReservation "github.com/anri-dev/reservation-api/internal/usecase/reservation"
)

// ======================================================
// HANDLER
// ======================================================

type ReservationHandler struct {
	createUC *ucReservation.CreateReservation
	listUC   *ucReservation.ListOwnReservations
	showUC   *ucReservation.ShowReservation
	cancelUC *ucReservation.CancelReservation

	repo    domain.Repository
	letters *storage.LetterStore
}

func NewReservationHandler(
	createUC *ucReservation.CreateReservation,
	listUC *ucReservation.ListOwnReservations,
	showUC *ucReservation.ShowReservation,
	cancelUC *ucReservation.CancelReservation,
	repo domain.Repository,
	letters *storage.LetterStore,
) *ReservationHandler {
	return &ReservationHandler{
		createUC: createUC,
		listUC:   listUC,
		showUC:   showUC,
		cancelUC: cancelUC,
		repo:     repo,
		letters:  letters,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateReservationRequest struct {
	ServiceID uint   `json:"service_id" binding:"required"`
	Mode      string `json:"mode" binding:"required,oneof=online offline"`

	Topic   string `json:"topic" binding:"required,max=255"`
	Details string `json:"details"`

	RequestedStartAt time.Time `json:"requested_start_at" binding:"required"`
	RequestedEndAt   time.Time `json:"requested_end_at" binding:"required,gtfield=RequestedStartAt"`

	InstitutionName string `json:"institution_name" binding:"required,max=255"`
	UnitName        string `json:"unit_name" binding:"max=255"`
	PicName         string `json:"pic_name" binding:"required,max=255"`
	PicPhone        string `json:"pic_phone" binding:"required,max=30"`
	PicPosition     string `json:"pic_position" binding:"max=255"`
}

// ======================================================
// CREATE
// ======================================================

func (h *ReservationHandler) Create(c *gin.Context) {
	actor := middleware.PrincipalFrom(c)

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	res, err := h.createUC.Execute(c.Request.Context(), actor, ucReservation.CreateReservationInput{
		ServiceID: req.ServiceID,
		Mode:      req.Mode,
		Topic:     req.Topic,
		Details:   req.Details,

		RequestedStartAt: req.RequestedStartAt,
		RequestedEndAt:   req.RequestedEndAt,

		InstitutionName: req.InstitutionName,
		UnitName:        req.UnitName,
		PicName:         req.PicName,
		PicPhone:        req.PicPhone,
		PicPosition:     req.PicPosition,
	})
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "failed_to_create_reservation", "Erro ao criar reserva.")
		}
		return
	}

	c.JSON(http.StatusCreated, res)
}

// ======================================================
// LIST (próprias reservas)
// ======================================================

func (h *ReservationHandler) List(c *gin.Context) {
	actor := middleware.PrincipalFrom(c)

	list, err := h.listUC.Execute(c.Request.Context(), actor)
	if err != nil {
		httperr.Internal(c, "failed_to_list_reservations", "Erro ao listar reservas.")
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// SHOW
// ======================================================

func (h *ReservationHandler) Show(c *gin.Context) {
	actor := middleware.PrincipalFrom(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	res, err := h.showUC.Execute(c.Request.Context(), actor, id)
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "failed_to_show_reservation", "Erro ao buscar reserva.")
		}
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// CANCEL
// ======================================================

func (h *ReservationHandler) Cancel(c *gin.Context) {
	actor := middleware.PrincipalFrom(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	res, err := h.cancelUC.Execute(c.Request.Context(), actor, id)
	if err != nil {
		if !httperr.WriteBusiness(c, err) {
			httperr.Internal(c, "failed_to_cancel_reservation", "Erro ao cancelar reserva.")
		}
		return
	}

	httpresp.OK(c, res)
}

// ======================================================
// LETTER (carta de solicitação)
// ======================================================

func (h *ReservationHandler) UploadLetter(c *gin.Context) {
	if h.letters == nil {
		httperr.Internal(c, "letters_disabled", "Upload de carta indisponível.")
		return
	}

	actor := middleware.PrincipalFrom(c)

	id, err := parseID(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	res, err := h.repo.GetReservationByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			httperr.NotFound(c, "reservation_not_found", "Reserva não encontrada.")
		} else {
			httperr.Internal(c, "failed_to_load_reservation", "Erro ao buscar reserva.")
		}
		return
	}

	if !domain.CanAttachLetter(actor, res) {
		httperr.Forbidden(c, "forbidden", "Acesso negado.")
		return
	}

	file, header, err := c.Request.FormFile("letter")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Arquivo obrigatório (campo letter).")
		return
	}
	defer file.Close()

	key := storage.LetterKey(res.Reference, header.Filename)
	contentType := header.Header.Get("Content-Type")

	if err := h.letters.Put(c.Request.Context(), key, contentType, file); err != nil {
		httperr.Internal(c, "failed_to_store_letter", "Erro ao armazenar carta.")
		return
	}

	if err := h.repo.UpdateLetterKey(c.Request.Context(), res.ID, key); err != nil {
		httperr.Internal(c, "failed_to_update_reservation", "Erro ao salvar reserva.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"letter_key": key})
}

// ======================================================
// HELPERS
// ======================================================

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	return uint(id), err
}
