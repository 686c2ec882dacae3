package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorPayload 统一的结构化错误响应体。
type ErrorPayload struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// RespondJSON 发送JSON响应
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// RespondError 发送错误响应
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorPayload{Error: message})
}

// RespondErrorKind 发送带错误类别的错误响应，类别取自错误分级体系
// (invalid_input / not_found / analysis_error / generation_error)。
func RespondErrorKind(w http.ResponseWriter, status int, kind, message string) {
	RespondJSON(w, status, ErrorPayload{Error: message, Kind: kind})
}
