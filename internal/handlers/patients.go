package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dougladias/Clinica-vida-plena-sub000/internal/services"
)

type CreatePatientRequest struct {
	Name      string `json:"name"`
	CPF       string `json:"cpf"`
	DateBirth string `json:"date_birth"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
}

type UpdatePatientRequest struct {
	Name      *string `json:"name"`
	CPF       *string `json:"cpf"`
	DateBirth *string `json:"date_birth"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
}

type PatientHandler struct {
	svc *services.PatientService
	log zerolog.Logger
}

func NewPatientHandler(svc *services.PatientService, log zerolog.Logger) *PatientHandler {
	return &PatientHandler{svc: svc, log: log}
}

func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.svc.List(c.Request.Context(), services.PatientFilter{
		Name:  c.Query("name"),
		CPF:   c.Query("cpf"),
		Phone: c.Query("phone"),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	birth, err := parseDate("date_birth", req.DateBirth)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	patient, err := h.svc.Create(c.Request.Context(), services.PatientInput{
		Name:      req.Name,
		CPF:       req.CPF,
		DateBirth: birth,
		Address:   req.Address,
		Phone:     req.Phone,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, patient)
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	var req UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	birth, err := parseDatePtr("date_birth", req.DateBirth)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	patient, err := h.svc.Update(c.Request.Context(), id, services.PatientUpdate{
		Name:      req.Name,
		CPF:       req.CPF,
		DateBirth: birth,
		Address:   req.Address,
		Phone:     req.Phone,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

func (h *PatientHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	patient, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Paciente excluído com sucesso", "patient": patient})
}
