package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Marxcruz/hospital-api/internal/middleware"
	"github.com/Marxcruz/hospital-api/internal/model"
	chatsvc "github.com/Marxcruz/hospital-api/internal/service/chat"
	"github.com/Marxcruz/hospital-api/pkg/httputil"
)

// Handler exposes the chat history over REST. The websocket hub is the
// write path for live rooms; these routes back the dashboard views and the
// AI assistant transcript, which appends via POST.
type Handler struct {
	service *chatsvc.Service
}

func NewHandler(service *chatsvc.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	messages := r.Group("/chat")
	{
		messages.GET("/messages", h.List)
		messages.POST("/messages", h.Append)
		messages.DELETE("/messages", auth.RequireRole(model.RoleAdministrador), h.Clear)
	}
}

// List returns a room's history when ?room= is given, otherwise every
// stored message.
func (h *Handler) List(c *gin.Context) {
	var (
		messages []*model.ChatMessage
		err      error
	)

	if room := c.Query("room"); room != "" {
		messages, err = h.service.History(c.Request.Context(), room)
	} else {
		messages, err = h.service.All(c.Request.Context())
	}
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, httputil.H{"messages": messages})
}

func (h *Handler) Append(c *gin.Context) {
	var req model.CreateChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	msg, err := h.service.Append(c.Request.Context(), &req)
	if err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.Created(c, httputil.H{"chatMessage": msg})
}

func (h *Handler) Clear(c *gin.Context) {
	if err := h.service.Clear(c.Request.Context()); err != nil {
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, httputil.H{"message": "historial de chat eliminado"})
}
