package session

import (
	"time"

	"github.com/zhouzirui/speakit/backend/internal/model/analysis"
)

// Session captures one completed, persisted speaking attempt.
// Created once, never mutated afterwards.
type Session struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId,omitempty"`
	Timestamp      time.Time       `json:"timestamp"`
	Analysis       analysis.Result `json:"analysis"`
	AudioSizeBytes int64           `json:"audioSize,omitempty"`
}
