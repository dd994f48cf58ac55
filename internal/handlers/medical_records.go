package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dougladias/Clinica-vida-plena-sub000/internal/services"
)

type CreateMedicalRecordRequest struct {
	ConsultationID string `json:"consultation_id"`
	Notes          string `json:"notes"`
	Diagnosis      string `json:"diagnosis"`
}

type UpdateMedicalRecordRequest struct {
	Notes     *string `json:"notes"`
	Diagnosis *string `json:"diagnosis"`
}

type MedicalRecordHandler struct {
	svc *services.MedicalRecordService
	log zerolog.Logger
}

func NewMedicalRecordHandler(svc *services.MedicalRecordService, log zerolog.Logger) *MedicalRecordHandler {
	return &MedicalRecordHandler{svc: svc, log: log}
}

func (h *MedicalRecordHandler) List(c *gin.Context) {
	consultationID, err := parseUUID("consultation_id", c.Query("consultation_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	records, err := h.svc.List(c.Request.Context(), services.MedicalRecordFilter{
		ConsultationID: consultationID,
		Diagnosis:      c.Query("diagnosis"),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *MedicalRecordHandler) Create(c *gin.Context) {
	var req CreateMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	consultationID, err := parseUUID("consultation_id", req.ConsultationID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	record, err := h.svc.Create(c.Request.Context(), services.MedicalRecordInput{
		ConsultationID: consultationID,
		Notes:          req.Notes,
		Diagnosis:      req.Diagnosis,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (h *MedicalRecordHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	var req UpdateMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	record, err := h.svc.Update(c.Request.Context(), id, services.MedicalRecordUpdate{
		Notes:     req.Notes,
		Diagnosis: req.Diagnosis,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *MedicalRecordHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	record, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Prontuário excluído com sucesso", "medical_record": record})
}
