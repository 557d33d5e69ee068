// Package httpresp padroniza os envelopes JSON de sucesso da API.
package httpresp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListResponse embala coleções com o total já contado para o cliente.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

func List[T any](c *gin.Context, data []T) {
	c.JSON(http.StatusOK, ListResponse[T]{
		Data:  data,
		Total: len(data),
	})
}
