package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/dougladias/Clinica-vida-plena-sub000/internal/config"
	"github.com/dougladias/Clinica-vida-plena-sub000/internal/handlers"
	"github.com/dougladias/Clinica-vida-plena-sub000/internal/middleware"
	"github.com/dougladias/Clinica-vida-plena-sub000/internal/services"
)

// Setup builds the gin engine with the middleware chain and every route.
func Setup(cfg *config.Config, db *gorm.DB, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(log),
		middleware.RequestID(),
		middleware.Logger(log),
		cors.New(corsConfig(cfg)),
	)

	doctors := handlers.NewDoctorHandler(services.NewDoctorService(db), log)
	patients := handlers.NewPatientHandler(services.NewPatientService(db), log)
	consultations := handlers.NewConsultationHandler(services.NewConsultationService(db), log)
	records := handlers.NewMedicalRecordHandler(services.NewMedicalRecordService(db), log)
	prescriptions := handlers.NewPrescriptionHandler(services.NewPrescriptionService(db), log)
	users := handlers.NewUserHandler(services.NewUserService(db), log, cfg.JWTSecret, cfg.JWTTTL)

	// Public routes
	r.GET("/health", handlers.Health(db, log))
	r.POST("/user/login", users.Login)

	api := r.Group("")
	if cfg.AuthRequired {
		api.Use(middleware.Auth(cfg.JWTSecret))
	}

	doctor := api.Group("/doctor")
	{
		doctor.GET("", doctors.List)
		doctor.GET("/stats", doctors.Stats)
		doctor.POST("", doctors.Create)
		doctor.PUT("/:id", doctors.Update)
		doctor.DELETE("/:id", doctors.Delete)
	}

	patient := api.Group("/patient")
	{
		patient.GET("", patients.List)
		patient.POST("", patients.Create)
		patient.PUT("/:id", patients.Update)
		patient.DELETE("/:id", patients.Delete)
	}

	consultation := api.Group("/consultation")
	{
		consultation.GET("", consultations.List)
		consultation.POST("", consultations.Create)
		consultation.PUT("/:id", consultations.Update)
		consultation.DELETE("/:id", consultations.Delete)
	}

	record := api.Group("/medical-record")
	{
		record.GET("", records.List)
		record.POST("", records.Create)
		record.PUT("/:id", records.Update)
		record.DELETE("/:id", records.Delete)
	}

	prescription := api.Group("/prescription")
	{
		prescription.GET("", prescriptions.List)
		prescription.POST("", prescriptions.Create)
		prescription.GET("/:id", prescriptions.Get)
		prescription.PUT("/:id", prescriptions.Update)
		prescription.DELETE("/:id", prescriptions.Delete)
		prescription.POST("/:id/medications", prescriptions.AddMedication)
		prescription.DELETE("/medications/:id", prescriptions.RemoveMedication)
	}

	user := api.Group("/user")
	{
		user.GET("", users.List)
		user.POST("", users.Create)
		user.PUT("/:id", users.Update)
		user.DELETE("/:id", users.Delete)
	}

	return r
}

func corsConfig(cfg *config.Config) cors.Config {
	c := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		c.AllowAllOrigins = true
		c.AllowCredentials = false
	} else {
		c.AllowOrigins = cfg.CORSOrigins
	}
	return c
}
