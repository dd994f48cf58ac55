package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dougladias/Clinica-vida-plena-sub000/internal/services"
)

type CreateConsultationRequest struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Status    string `json:"status"`
	DoctorID  string `json:"doctor_id"`
	PatientID string `json:"patient_id"`
}

type UpdateConsultationRequest struct {
	Date      *string `json:"date"`
	Time      *string `json:"time"`
	Status    *string `json:"status"`
	DoctorID  *string `json:"doctor_id"`
	PatientID *string `json:"patient_id"`
}

type ConsultationHandler struct {
	svc *services.ConsultationService
	log zerolog.Logger
}

func NewConsultationHandler(svc *services.ConsultationService, log zerolog.Logger) *ConsultationHandler {
	return &ConsultationHandler{svc: svc, log: log}
}

func (h *ConsultationHandler) List(c *gin.Context) {
	doctorID, err := parseUUID("doctor_id", c.Query("doctor_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	patientID, err := parseUUID("patient_id", c.Query("patient_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	date, err := parseDate("date", c.Query("date"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	consultations, err := h.svc.List(c.Request.Context(), services.ConsultationFilter{
		DoctorID:  doctorID,
		PatientID: patientID,
		Date:      date,
		Status:    c.Query("status"),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, consultations)
}

func (h *ConsultationHandler) Create(c *gin.Context) {
	var req CreateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	in := services.ConsultationInput{Time: req.Time, Status: req.Status}
	var err error
	if in.DoctorID, err = parseUUID("doctor_id", req.DoctorID); err != nil {
		respondError(c, h.log, err)
		return
	}
	if in.PatientID, err = parseUUID("patient_id", req.PatientID); err != nil {
		respondError(c, h.log, err)
		return
	}
	if in.Date, err = parseDate("date", req.Date); err != nil {
		respondError(c, h.log, err)
		return
	}

	consultation, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, consultation)
}

func (h *ConsultationHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	var req UpdateConsultationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	in := services.ConsultationUpdate{Time: req.Time, Status: req.Status}
	if in.DoctorID, err = parseUUIDPtr("doctor_id", req.DoctorID); err != nil {
		respondError(c, h.log, err)
		return
	}
	if in.PatientID, err = parseUUIDPtr("patient_id", req.PatientID); err != nil {
		respondError(c, h.log, err)
		return
	}
	if in.Date, err = parseDatePtr("date", req.Date); err != nil {
		respondError(c, h.log, err)
		return
	}

	consultation, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, consultation)
}

func (h *ConsultationHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	consultation, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Consulta excluída com sucesso", "consultation": consultation})
}
