package coach

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	coachservice "github.com/zhouzirui/speakit/backend/internal/service/coach"
	"github.com/zhouzirui/speakit/backend/pkg/utils"
)

// Handler 教练编排器的HTTP处理器
type Handler struct {
	coachSvc *coachservice.Service
}

// New 创建教练处理器
func New(coachSvc *coachservice.Service) *Handler {
	return &Handler{coachSvc: coachSvc}
}

// RegisterRoutes 注册教练相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/ai/feedback", h.handleFeedback)
	r.Post("/ai/debate", h.handleDebate)
	r.Post("/topics/generate", h.handleTopics)
}

// handleFeedback 生成个性化演讲反馈。生成失败会作为错误返回给调用方。
func (h *Handler) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Transcript      string `json:"transcript"`
		AnalysisSummary string `json:"analysisData"`
		Context         string `json:"context"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondErrorKind(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	feedback, err := h.coachSvc.RequestFeedback(r.Context(), payload.Transcript, payload.AnalysisSummary, payload.Context)
	if errors.Is(err, coachservice.ErrInvalidInput) {
		utils.RespondErrorKind(w, http.StatusBadRequest, "invalid_input", "transcript is required")
		return
	}
	if err != nil {
		log.Printf("[coach] feedback generation failed: %v", err)
		utils.RespondErrorKind(w, http.StatusBadGateway, "generation_error", "failed to generate feedback")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"feedback": feedback})
}

// handleDebate 生成辩论反驳。编排器保证总能给出内容，该端点不会因生成失败而报错。
func (h *Handler) handleDebate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Topic        string                    `json:"topic"`
		UserArgument string                    `json:"userArgument"`
		History      []coachservice.DebateTurn `json:"debateHistory"`
		Stance       string                    `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondErrorKind(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	rebuttal := h.coachSvc.RequestDebateRebuttal(r.Context(), payload.Topic, payload.UserArgument, payload.History, payload.Stance)
	utils.RespondJSON(w, http.StatusOK, map[string]string{"response": rebuttal})
}

// handleTopics 生成练习题目。生成失败时编排器降级为静态题库，同样按成功返回。
func (h *Handler) handleTopics(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Category   string `json:"category"`
		Difficulty string `json:"difficulty"`
		Count      int    `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondErrorKind(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	if payload.Count == 0 {
		payload.Count = 4
	}

	topics, err := h.coachSvc.RequestTopics(r.Context(), payload.Category, payload.Difficulty, payload.Count)
	if errors.Is(err, coachservice.ErrInvalidInput) {
		utils.RespondErrorKind(w, http.StatusBadRequest, "invalid_input", "count must be at least 1")
		return
	}
	if err != nil {
		log.Printf("[coach] topic generation failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to generate topics")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{"topics": topics})
}
