package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dougladias/Clinica-vida-plena-sub000/internal/middleware"
	"github.com/dougladias/Clinica-vida-plena-sub000/internal/models"
	"github.com/dougladias/Clinica-vida-plena-sub000/internal/services"
)

const (
	CodeValidation = "VALIDATION_ERROR"
	CodeConflict   = "CONFLICT"
	CodeNotFound   = "NOT_FOUND"

	msgInternal = "Erro interno do servidor"
)

func init() {
	// Report binding failures with the JSON field name.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

func errorCode(err error) string {
	switch {
	case errors.Is(err, services.ErrConflict):
		return CodeConflict
	case errors.Is(err, services.ErrNotFound):
		return CodeNotFound
	default:
		return CodeValidation
	}
}

// respondError writes a service error as 400 with its code. Anything else is
// logged and answered with a generic 500.
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	if se, ok := services.AsError(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": se.Message, "code": errorCode(se)})
		return
	}
	_ = c.Error(err)
	log.Error().Err(err).
		Str("request_id", c.GetString(middleware.RequestIDKey)).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Msg("request failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternal})
}

// respondBindError turns a body binding failure into a validation error.
func respondBindError(c *gin.Context, err error) {
	msg := "Corpo da requisição inválido"
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "email":
			msg = fmt.Sprintf("O campo %s deve ser um email válido", fe.Field())
		case "required":
			msg = fmt.Sprintf("O campo %s é obrigatório", fe.Field())
		default:
			msg = fmt.Sprintf("O campo %s é inválido", fe.Field())
		}
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": msg, "code": CodeValidation})
}

func invalid(field, msg string) error {
	return &services.Error{Kind: services.ErrValidation, Field: field, Message: msg}
}

// pathID parses the :id path parameter.
func pathID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, invalid("id", "ID inválido")
	}
	return id, nil
}

// parseUUID parses an optional UUID field. Blank input yields uuid.Nil.
func parseUUID(field, s string) (uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, invalid(field, fmt.Sprintf("O campo %s deve ser um UUID válido", field))
	}
	return id, nil
}

// parseDate parses an optional YYYY-MM-DD field. Blank input yields the zero date.
func parseDate(field, s string) (models.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Date{}, nil
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return models.Date{}, invalid(field, fmt.Sprintf("O campo %s deve estar no formato YYYY-MM-DD", field))
	}
	return d, nil
}

func parseUUIDPtr(field string, s *string) (*uuid.UUID, error) {
	if s == nil {
		return nil, nil
	}
	id, err := parseUUID(field, *s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseDatePtr(field string, s *string) (*models.Date, error) {
	if s == nil {
		return nil, nil
	}
	d, err := parseDate(field, *s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
