package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"holocron/internal/catalog"
	"holocron/internal/logging"

	"github.com/gin-gonic/gin"
)

// parseID читает :id. Нечисловой id — как несовпавший маршрут: 404.
func parseID(c *gin.Context, kind string) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": fmt.Sprintf("%s with ID %s not found.", kind, raw)})
		return 0, false
	}
	return id, true
}

// bindPayload читает тело как JSON-объект. Числа остаются json.Number,
// чтобы валидатор отличал 5 от 5.0.
func bindPayload(c *gin.Context) (catalog.Payload, bool) {
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()

	var payload catalog.Payload
	if err := dec.Decode(&payload); err != nil || payload == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON"})
		return nil, false
	}
	// после объекта допускаются только пробелы
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON"})
		return nil, false
	}
	return payload, true
}

// writeError переводит ошибки сервиса в HTTP-ответ.
func writeError(c *gin.Context, log logging.Logger, err error) {
	var (
		vErr   *catalog.ValidationError
		refErr *catalog.ReferenceNotFoundError
		nfErr  *catalog.NotFoundError
		sErr   *catalog.StoreError
	)
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusUnprocessableEntity, vErr.Errors)
	case errors.As(err, &refErr):
		c.JSON(http.StatusNotFound, gin.H{"message": refErr.Error()})
	case errors.As(err, &nfErr):
		c.JSON(http.StatusNotFound, gin.H{"message": nfErr.Error()})
	case errors.As(err, &sErr):
		log.Error(c.Request.Context(), "store failure", "request_id", c.GetString(requestIDKey), "error", sErr.Err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": sErr.Error()})
	default:
		log.Error(c.Request.Context(), "unexpected error", "request_id", c.GetString(requestIDKey), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}
