package session

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/speakit/backend/internal/analysis/progress"
	analysismodel "github.com/zhouzirui/speakit/backend/internal/model/analysis"
	sessionmodel "github.com/zhouzirui/speakit/backend/internal/model/session"
	"github.com/zhouzirui/speakit/backend/internal/service/analyzer"
	"github.com/zhouzirui/speakit/backend/pkg/utils"
)

const maxAudioBytes = 10 << 20 // 10MB

// Handler 会话与进度查询的HTTP处理器
type Handler struct {
	store    sessionmodel.Store
	provider analyzer.Provider
}

// New 创建会话处理器
func New(store sessionmodel.Store, provider analyzer.Provider) *Handler {
	return &Handler{
		store:    store,
		provider: provider,
	}
}

// RegisterRoutes 注册会话相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/speech/analyze", h.handleAnalyze)
	r.Get("/sessions/{sessionID}", h.handleGetSession)
	r.Post("/users/{userID}/sessions", h.handleSubmitSession)
	r.Get("/users/{userID}/progress", h.handleProgress)
}

// handleAnalyze 接收整段录音，交给分析提供方并持久化为一条会话。
func (h *Handler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAudioBytes); err != nil {
		utils.RespondErrorKind(w, http.StatusBadRequest, "invalid_input", "failed to parse multipart form: "+err.Error())
		return
	}

	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		utils.RespondErrorKind(w, http.StatusBadRequest, "invalid_input", "audio file is required")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(io.LimitReader(file, maxAudioBytes))
	if err != nil {
		utils.RespondErrorKind(w, http.StatusBadRequest, "invalid_input", "failed to read audio payload")
		return
	}

	format := inferAudioFormat(header.Filename)

	result, err := h.provider.Analyze(r.Context(), audio, format)
	if err != nil {
		// 分析失败只影响当前请求，且不落库。
		log.Printf("[session] analysis failed: %v", err)
		utils.RespondErrorKind(w, http.StatusBadGateway, "analysis_error", "failed to analyze speech")
		return
	}

	if err := result.Validate(); err != nil {
		log.Printf("[session] provider returned invalid result: %v", err)
		utils.RespondErrorKind(w, http.StatusBadGateway, "analysis_error", "analysis provider returned invalid result")
		return
	}

	sess := sessionmodel.Session{
		UserID:         strings.TrimSpace(r.FormValue("userId")),
		Analysis:       result,
		AudioSizeBytes: int64(len(audio)),
	}

	id, err := h.store.Append(r.Context(), sess)
	if err != nil {
		log.Printf("[session] append failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to persist session")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"sessionId": id,
		"analysis":  result,
	})
}

// handleSubmitSession 直接接收客户端已有的分析结果并持久化，跳过分析提供方。
func (h *Handler) handleSubmitSession(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		utils.RespondErrorKind(w, http.StatusBadRequest, "invalid_input", "userID is required")
		return
	}

	var payload struct {
		Analysis  analysismodel.Result `json:"analysis"`
		AudioSize int64                `json:"audioSize"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondErrorKind(w, http.StatusBadRequest, "invalid_input", "invalid request body")
		return
	}

	if err := payload.Analysis.Validate(); err != nil {
		utils.RespondErrorKind(w, http.StatusBadRequest, "invalid_input", err.Error())
		return
	}

	sess := sessionmodel.Session{
		UserID:         userID,
		Analysis:       payload.Analysis,
		AudioSizeBytes: payload.AudioSize,
	}

	id, err := h.store.Append(r.Context(), sess)
	if err != nil {
		log.Printf("[session] append failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to persist session")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]string{"sessionId": id})
}

// handleGetSession 按 ID 返回单条会话。
func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	sess, err := h.store.Get(r.Context(), sessionID)
	if errors.Is(err, sessionmodel.ErrNotFound) {
		utils.RespondErrorKind(w, http.StatusNotFound, "not_found", "session not found")
		return
	}
	if err != nil {
		log.Printf("[session] get failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load session")
		return
	}

	utils.RespondJSON(w, http.StatusOK, sess)
}

// handleProgress 按用户聚合历史会话并返回进度汇总。未知用户得到全零汇总。
func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		utils.RespondErrorKind(w, http.StatusBadRequest, "invalid_input", "userID is required")
		return
	}

	sessions, err := h.store.ListByUser(r.Context(), userID)
	if err != nil {
		log.Printf("[session] list failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "failed to load sessions")
		return
	}

	utils.RespondJSON(w, http.StatusOK, progress.Compute(sessions))
}

// inferAudioFormat 从文件名推断音频格式
func inferAudioFormat(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".mp3":
		return "mp3"
	case ".wav":
		return "wav"
	case ".webm":
		return "webm"
	case ".m4a":
		return "m4a"
	case ".aac":
		return "aac"
	default:
		return "wav"
	}
}
