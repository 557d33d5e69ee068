package httperr

import (
	"errors"

	"github.com/gin-gonic/gin"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// businessMessages centraliza as mensagens exibidas ao usuário.
var businessMessages = map[string]string{
	"time_conflict":         "Conflito de horário com outra reserva.",
	"invalid_state":         "Estado atual da reserva não permite esta operação.",
	"schedule_required":     "Agenda final obrigatória (scheduled_start_at e scheduled_end_at).",
	"invalid_schedule":      "Agenda final inválida.",
	"note_required":         "Justificativa obrigatória para rejeitar.",
	"invalid_mode":          "Modo inválido (online ou offline).",
	"invalid_window":        "Intervalo solicitado inválido.",
	"invalid_status_filter": "Status inválido.",
	"service_not_found":     "Serviço não encontrado.",
	"reservation_not_found": "Reserva não encontrada.",
	"forbidden":             "Acesso negado.",
}

// WriteBusiness traduz um erro de negócio para a resposta HTTP adequada.
// Retorna false quando o erro não é um BusinessError (o handler trata como
// erro interno).
func WriteBusiness(c *gin.Context, err error) bool {
	var be BusinessError
	if !errors.As(err, &be) {
		return false
	}

	msg, ok := businessMessages[be.Code]
	if !ok {
		msg = "Operação inválida."
	}

	switch be.Code {
	case "time_conflict":
		Conflict(c, be.Code, msg)
	case "service_not_found", "reservation_not_found":
		NotFound(c, be.Code, msg)
	case "forbidden":
		Forbidden(c, be.Code, msg)
	case "invalid_state", "schedule_required", "invalid_schedule",
		"note_required", "invalid_mode", "invalid_window", "invalid_status_filter":
		Unprocessable(c, be.Code, msg)
	default:
		BadRequest(c, be.Code, msg)
	}

	return true
}
