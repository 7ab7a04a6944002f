package assistant

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	assistantsvc "github.com/Marxcruz/hospital-api/internal/service/assistant"
	"github.com/Marxcruz/hospital-api/pkg/httputil"
)

// unavailableMessage is what the UI shows whenever the LLM server cannot be
// reached. A fixed string on HTTP 200 keeps transient outages from surfacing
// as hard errors in the dashboards.
const unavailableMessage = "No se pudo conectar con el asistente. Inténtalo de nuevo más tarde."

type Handler struct {
	service *assistantsvc.Service
}

func NewHandler(service *assistantsvc.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	ollama := r.Group("/ollama")
	{
		ollama.GET("/status", h.Status)
		ollama.GET("/models", h.Models)
		ollama.POST("/chat", h.Chat)
		ollama.POST("/chat/context", h.ChatWithContext)
	}
}

type chatRequest struct {
	Prompt  string                 `json:"prompt" binding:"required"`
	History []assistantsvc.Message `json:"history"`
}

func (h *Handler) Status(c *gin.Context) {
	status := h.service.CheckStatus(c.Request.Context())
	httputil.OK(c, httputil.H{"status": status})
}

func (h *Handler) Models(c *gin.Context) {
	models, err := h.service.Models(c.Request.Context())
	if err != nil {
		httputil.Fail(c, http.StatusOK, unavailableMessage)
		return
	}

	httputil.OK(c, httputil.H{"models": models})
}

func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := h.service.Chat(c.Request.Context(), req.Prompt)
	h.respond(c, reply, err)
}

func (h *Handler) ChatWithContext(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.Fail(c, http.StatusBadRequest, err.Error())
		return
	}

	reply, err := h.service.ChatWithContext(c.Request.Context(), req.Prompt, req.History)
	h.respond(c, reply, err)
}

func (h *Handler) respond(c *gin.Context, reply string, err error) {
	if err != nil {
		if errors.Is(err, assistantsvc.ErrUnavailable) {
			httputil.Fail(c, http.StatusOK, unavailableMessage)
			return
		}
		httputil.Error(c, err)
		return
	}

	httputil.OK(c, httputil.H{"response": reply})
}
