package message

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Marxcruz/hospital-api/internal/middleware"
	"github.com/Marxcruz/hospital-api/internal/model"
	messagesvc "github.com/Marxcruz/hospital-api/internal/service/message"
	"github.com/Marxcruz/hospital-api/pkg/httputil"
)

type Handler struct {
	service *messagesvc.Service
}

func NewHandler(service *messagesvc.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	messages := r.Group("/message")
	{
		messages.POST("/send", h.Send)
		messages.GET("/get-all", auth.RequireRole(model.RoleAdministrador), h.ListAll)
		messages.DELETE("/delete/:id", auth.RequireRole(model.RoleAdministrador), h.Delete)
	}
}

func (h *Handler) Send(c *gin.Context) {
	var req model.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.service.Create(c.Request.Context(), &req); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.Created(c, httputil.H{"message": "mensaje enviado"})
}

func (h *Handler) ListAll(c *gin.Context) {
	messages, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, httputil.H{"messages": messages})
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.Error(c, middleware.NewInvalidID("id inválido"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, httputil.H{"message": "mensaje eliminado"})
}
