package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dougladias/Clinica-vida-plena-sub000/internal/services"
)

type MedicationRequest struct {
	Name         string `json:"name"`
	Dosage       string `json:"dosage"`
	Instructions string `json:"instructions"`
}

type CreatePrescriptionRequest struct {
	ConsultationID string              `json:"consultation_id"`
	Medications    []MedicationRequest `json:"medications"`
}

// UpdatePrescriptionRequest replaces the medication list when medications is sent.
type UpdatePrescriptionRequest struct {
	Medications []MedicationRequest `json:"medications"`
}

type PrescriptionHandler struct {
	svc *services.PrescriptionService
	log zerolog.Logger
}

func NewPrescriptionHandler(svc *services.PrescriptionService, log zerolog.Logger) *PrescriptionHandler {
	return &PrescriptionHandler{svc: svc, log: log}
}

func medicationInputs(reqs []MedicationRequest) []services.MedicationInput {
	if reqs == nil {
		return nil
	}
	out := make([]services.MedicationInput, 0, len(reqs))
	for _, m := range reqs {
		out = append(out, services.MedicationInput(m))
	}
	return out
}

func (h *PrescriptionHandler) List(c *gin.Context) {
	consultationID, err := parseUUID("consultation_id", c.Query("consultation_id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	prescriptions, err := h.svc.List(c.Request.Context(), services.PrescriptionFilter{ConsultationID: consultationID})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, prescriptions)
}

func (h *PrescriptionHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	prescription, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, prescription)
}

func (h *PrescriptionHandler) Create(c *gin.Context) {
	var req CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	consultationID, err := parseUUID("consultation_id", req.ConsultationID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	prescription, err := h.svc.Create(c.Request.Context(), services.PrescriptionInput{
		ConsultationID: consultationID,
		Medications:    medicationInputs(req.Medications),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, prescription)
}

func (h *PrescriptionHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	var req UpdatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	prescription, err := h.svc.Update(c.Request.Context(), id, services.PrescriptionUpdate{
		Medications: medicationInputs(req.Medications),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, prescription)
}

func (h *PrescriptionHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	prescription, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Prescrição excluída com sucesso", "prescription": prescription})
}

func (h *PrescriptionHandler) AddMedication(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	var req MedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	medication, err := h.svc.AddMedication(c.Request.Context(), id, services.MedicationInput(req))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, medication)
}

func (h *PrescriptionHandler) RemoveMedication(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	medication, err := h.svc.RemoveMedication(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Medicamento removido com sucesso", "medication": medication})
}
