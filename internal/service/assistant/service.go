package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Marxcruz/hospital-api/pkg/circuitbreaker"
	"github.com/Marxcruz/hospital-api/pkg/metrics"
)

// ErrUnavailable is returned for any transport-level failure talking to the
// LLM server. Handlers map it to a fixed user-visible message instead of
// surfacing the underlying error.
var ErrUnavailable = errors.New("assistant unavailable")

// systemPrompt is injected ahead of every conversation so the model refuses
// questions outside the hospital domain.
const systemPrompt = "Eres el asistente virtual de un hospital. Responde únicamente " +
	"preguntas sobre salud, citas médicas, departamentos y servicios del hospital. " +
	"Si la pregunta no está relacionada, responde amablemente que solo puedes ayudar " +
	"con temas del hospital."

// OffTopicReply is returned without calling the model when the keyword
// pre-filter rejects a prompt.
const OffTopicReply = "Solo puedo responder preguntas relacionadas con salud y los servicios del hospital."

// domainKeywords is the pre/post filter vocabulary. A text passes when it
// contains at least one keyword.
var domainKeywords = []string{
	"salud", "médic", "medic", "doctor", "cita", "hospital", "síntoma", "sintoma",
	"enfermedad", "dolor", "tratamiento", "receta", "medicamento", "departamento",
	"urgencia", "emergencia", "consulta", "paciente", "diagnóstico", "diagnostico",
	"vacuna", "análisis", "analisis", "especialidad", "horario", "fiebre", "gripe",
}

type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ModelInfo struct {
	Name       string `json:"name"`
	ModifiedAt string `json:"modified_at,omitempty"`
	Size       int64  `json:"size,omitempty"`
}

type Status struct {
	Connected bool   `json:"connected"`
	Model     string `json:"model"`
	Models    int    `json:"models"`
}

type Service struct {
	cfg     Config
	client  *http.Client
	breaker *circuitbreaker.CircuitBreaker
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

func NewService(cfg Config, m *metrics.Metrics, logger zerolog.Logger) *Service {
	if cfg.Timeout <= 0 {
		// Generation is slow; the upstream default would cut answers off.
		cfg.Timeout = 60 * time.Second
	}
	if cfg.Model == "" {
		cfg.Model = "llama3"
	}
	return &Service{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: circuitbreaker.New(circuitbreaker.Settings{Name: "ollama", MaxFailures: 3, Timeout: 30 * time.Second}),
		metrics: m,
		logger:  logger,
	}
}

// InDomain reports whether text passes the keyword filter.
func InDomain(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range domainKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// CheckStatus probes the LLM server's tag listing.
func (s *Service) CheckStatus(ctx context.Context) *Status {
	models, err := s.Models(ctx)
	if err != nil {
		return &Status{Connected: false, Model: s.cfg.Model}
	}
	return &Status{Connected: true, Model: s.cfg.Model, Models: len(models)}
}

// Models lists the models the LLM server has pulled.
func (s *Service) Models(ctx context.Context) ([]ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.BaseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	var parsed struct {
		Models []ModelInfo `json:"models"`
	}
	if err := s.do(req, &parsed); err != nil {
		return nil, err
	}
	return parsed.Models, nil
}

// Chat sends a single-prompt conversation.
func (s *Service) Chat(ctx context.Context, prompt string) (string, error) {
	return s.ChatWithContext(ctx, prompt, nil)
}

// ChatWithContext sends a prompt preceded by prior conversation turns. The
// keyword filter is applied to the prompt before calling the model and to
// the model's answer before returning it.
func (s *Service) ChatWithContext(ctx context.Context, prompt string, history []Message) (string, error) {
	if !InDomain(prompt) {
		s.metrics.AssistantRequests.WithLabelValues("filtered").Inc()
		return OffTopicReply, nil
	}

	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: prompt})

	body, err := json.Marshal(map[string]interface{}{
		"model":    s.cfg.Model,
		"messages": messages,
		"stream":   false,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	var parsed struct {
		Message Message `json:"message"`
	}
	err = s.do(req, &parsed)
	s.metrics.AssistantLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		s.metrics.AssistantRequests.WithLabelValues("error").Inc()
		return "", err
	}

	answer := parsed.Message.Content
	if !InDomain(answer) {
		s.metrics.AssistantRequests.WithLabelValues("filtered").Inc()
		return OffTopicReply, nil
	}

	s.metrics.AssistantRequests.WithLabelValues("ok").Inc()
	return answer, nil
}

func (s *Service) do(req *http.Request, out interface{}) error {
	err := s.breaker.Execute(func() error {
		resp, err := s.client.Do(req)
		if err != nil {
			s.logger.Warn().Err(err).Str("url", req.URL.String()).Msg("LLM request failed")
			return ErrUnavailable
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			s.logger.Warn().Int("status", resp.StatusCode).Str("url", req.URL.String()).Msg("LLM returned non-200")
			return ErrUnavailable
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode LLM response: %w", err)
		}
		return nil
	})
	if errors.Is(err, circuitbreaker.ErrOpen) {
		return ErrUnavailable
	}
	return err
}
