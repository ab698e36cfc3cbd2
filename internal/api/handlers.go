package api

import (
	"context"
	"net/http"
	"strconv"

	"holocron/internal/catalog"
	"holocron/internal/logging"

	"github.com/gin-gonic/gin"
)

// GET /<resource>
func ListHandler[T any](list func(context.Context) ([]T, error), log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := list(c.Request.Context())
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// GET /<resource>/:id
func GetOneHandler[T any](kind string, get func(context.Context, int64) (T, error), log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, kind)
		if !ok {
			return
		}
		rec, err := get(c.Request.Context(), id)
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

// POST /<resource>
// 201 + созданная запись; 422 — карта ошибок валидации; 404 — нет ссылочной записи.
func CreateHandler[T any](create func(context.Context, catalog.Payload) (T, error), log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, ok := bindPayload(c)
		if !ok {
			return
		}
		rec, err := create(c.Request.Context(), payload)
		if err != nil {
			writeError(c, log, err)
			return
		}
		c.JSON(http.StatusCreated, rec)
	}
}

// DELETE /<resource>/:id
// Удаление идемпотентно: отсутствующий id тоже 204. Нецелый id не может
// совпасть ни с одной записью, поэтому тоже 204 без обращения к хранилищу.
func DeleteHandler(remove func(context.Context, int64) error, log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.Status(http.StatusNoContent)
			return
		}
		if err := remove(c.Request.Context(), id); err != nil {
			writeError(c, log, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
