package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/dougladias/Clinica-vida-plena-sub000/internal/services"
)

// --- Structs for Request Binding ---

type CreateDoctorRequest struct {
	Name      string `json:"name"`
	CRM       string `json:"crm"`
	Specialty string `json:"specialty"`
	Phone     string `json:"phone"`
	Email     string `json:"email" binding:"omitempty,email"`
}

type UpdateDoctorRequest struct {
	Name      *string `json:"name"`
	CRM       *string `json:"crm"`
	Specialty *string `json:"specialty"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email" binding:"omitempty,email"`
}

type DoctorHandler struct {
	svc *services.DoctorService
	log zerolog.Logger
}

func NewDoctorHandler(svc *services.DoctorService, log zerolog.Logger) *DoctorHandler {
	return &DoctorHandler{svc: svc, log: log}
}

// --- Handler Functions ---

func (h *DoctorHandler) List(c *gin.Context) {
	doctors, err := h.svc.List(c.Request.Context(), services.DoctorFilter{
		Name:      c.Query("name"),
		CRM:       c.Query("crm"),
		Specialty: c.Query("specialty"),
		Email:     c.Query("email"),
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}

func (h *DoctorHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *DoctorHandler) Create(c *gin.Context) {
	var req CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	doctor, err := h.svc.Create(c.Request.Context(), services.DoctorInput{
		Name:      req.Name,
		CRM:       req.CRM,
		Specialty: req.Specialty,
		Phone:     req.Phone,
		Email:     req.Email,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, doctor)
}

func (h *DoctorHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	var req UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	doctor, err := h.svc.Update(c.Request.Context(), id, services.DoctorUpdate{
		Name:      req.Name,
		CRM:       req.CRM,
		Specialty: req.Specialty,
		Phone:     req.Phone,
		Email:     req.Email,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, doctor)
}

func (h *DoctorHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	doctor, err := h.svc.Delete(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Médico excluído com sucesso", "doctor": doctor})
}
