package record

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Marxcruz/hospital-api/internal/middleware"
	"github.com/Marxcruz/hospital-api/internal/model"
	recordsvc "github.com/Marxcruz/hospital-api/internal/service/record"
	"github.com/Marxcruz/hospital-api/pkg/httputil"
)

// Handler serves clinical notes and prescriptions. Both are doctor-authored,
// created once and read many times; neither has an update or delete route.
type Handler struct {
	service *recordsvc.Service
}

func NewHandler(service *recordsvc.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	notes := r.Group("/clinical-notes", auth.RequireRole(model.RoleDoctor))
	{
		notes.POST("/create", h.CreateNote)
		notes.GET("/patient/:id", h.PatientNotes)
	}

	prescriptions := r.Group("/prescriptions", auth.RequireRole(model.RoleDoctor))
	{
		prescriptions.POST("/create", h.CreatePrescription)
		prescriptions.GET("/patient/:id", h.PatientPrescriptions)
	}
}

func (h *Handler) CreateNote(c *gin.Context) {
	var req model.CreateClinicalNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	doctor := middleware.CurrentUser(c)

	note, err := h.service.CreateNote(c.Request.Context(), doctor.ID, &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.Created(c, httputil.H{"message": "nota clínica registrada", "note": note})
}

func (h *Handler) PatientNotes(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.Error(c, middleware.NewInvalidID("id inválido"))
		return
	}

	notes, err := h.service.PatientNotes(c.Request.Context(), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, httputil.H{"notes": notes})
}

func (h *Handler) CreatePrescription(c *gin.Context) {
	var req model.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	doctor := middleware.CurrentUser(c)

	prescription, err := h.service.CreatePrescription(c.Request.Context(), doctor.ID, &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.Created(c, httputil.H{"message": "receta registrada", "prescription": prescription})
}

func (h *Handler) PatientPrescriptions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.Error(c, middleware.NewInvalidID("id inválido"))
		return
	}

	prescriptions, err := h.service.PatientPrescriptions(c.Request.Context(), id)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, httputil.H{"prescriptions": prescriptions})
}
