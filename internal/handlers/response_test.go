package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dougladias/Clinica-vida-plena-sub000/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "validation",
			err:    &services.Error{Kind: services.ErrValidation, Message: "O campo name é obrigatório"},
			status: http.StatusBadRequest,
			body:   `{"error":"O campo name é obrigatório","code":"VALIDATION_ERROR"}`,
		},
		{
			name:   "conflict",
			err:    &services.Error{Kind: services.ErrConflict, Message: "duplicado"},
			status: http.StatusBadRequest,
			body:   `{"error":"duplicado","code":"CONFLICT"}`,
		},
		{
			name:   "not found",
			err:    &services.Error{Kind: services.ErrNotFound, Message: "Médico não encontrado"},
			status: http.StatusBadRequest,
			body:   `{"error":"Médico não encontrado","code":"NOT_FOUND"}`,
		},
		{
			name:   "internal",
			err:    errors.New("connection refused"),
			status: http.StatusInternalServerError,
			body:   `{"error":"Erro interno do servidor"}`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var logs bytes.Buffer
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, zerolog.New(&logs), tc.err)
			assert.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, tc.body, rec.Body.String())
			if tc.status == http.StatusInternalServerError {
				assert.Contains(t, logs.String(), "connection refused")
				assert.NotContains(t, rec.Body.String(), "connection refused")
			} else {
				assert.Empty(t, logs.String())
			}
		})
	}
}

func TestRespondBindError(t *testing.T) {
	r := gin.New()
	r.POST("/", func(c *gin.Context) {
		var req CreateDoctorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	for body, want := range map[string]string{
		`{"email":"nope"}`: `{"error":"O campo email deve ser um email válido","code":"VALIDATION_ERROR"}`,
		`{"name":`:         `{"error":"Corpo da requisição inválido","code":"VALIDATION_ERROR"}`,
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, want, rec.Body.String())
	}
}

func TestParseHelpers(t *testing.T) {
	id := uuid.New()
	got, err := parseUUID("doctor_id", id.String())
	require.NoError(t, err)
	assert.Equal(t, id, got)

	got, err = parseUUID("doctor_id", " ")
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, got)

	_, err = parseUUID("doctor_id", "123")
	assert.ErrorIs(t, err, services.ErrValidation)

	d, err := parseDate("date", "2030-01-02")
	require.NoError(t, err)
	assert.Equal(t, "2030-01-02", d.String())

	_, err = parseDate("date", "02/01/2030")
	assert.ErrorIs(t, err, services.ErrValidation)

	p, err := parseDatePtr("date", nil)
	require.NoError(t, err)
	assert.Nil(t, p)

	up, err := parseUUIDPtr("doctor_id", &[]string{id.String()}[0])
	require.NoError(t, err)
	assert.Equal(t, id, *up)
}
