package handler

import (
	"net/http"

	"devlavka/internal/app/store/entity"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// respondSuccess отправляет успешный ответ в едином envelope.
// HTTP статус остается основным сигналом, envelope несет детали.
func respondSuccess(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, entity.APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// respondError отправляет ответ об ошибке в едином envelope
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, entity.APIResponse{
		Success: false,
		Error:   message,
	})
}

// parseIDParam разбирает path-параметр :id как UUID.
// При неверном формате сам отвечает 400 и возвращает false.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

// formatValidationError форматирует ошибки валидации
func formatValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
