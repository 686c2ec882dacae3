package analysis

import (
	"errors"
	"fmt"
)

// Result 描述一次完整演讲分析的结构化结果。分析提供方（模型或测试替身）
// 负责生成，核心只校验并透传。
type Result struct {
	OverallScore    int                `json:"overallScore"`
	Pace            *PaceMetric        `json:"pace,omitempty"`
	Clarity         *ClarityMetric     `json:"clarity,omitempty"`
	FillerWords     *FillerWordsMetric `json:"fillerWords,omitempty"`
	Volume          *VolumeMetric      `json:"volume,omitempty"`
	DurationSeconds int                `json:"duration"`
	Transcript      string             `json:"transcript"`
}

// PaceMetric 语速维度
type PaceMetric struct {
	Score          int    `json:"score"`
	WordsPerMinute int    `json:"wordsPerMinute"`
	Feedback       string `json:"feedback"`
}

// ClarityMetric 清晰度维度
type ClarityMetric struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// FillerWordsMetric 填充词维度
type FillerWordsMetric struct {
	Score    int      `json:"score"`
	Count    int      `json:"count"`
	Types    []string `json:"types"`
	Feedback string   `json:"feedback"`
}

// VolumeMetric 音量维度
type VolumeMetric struct {
	Score       int    `json:"score"`
	Consistency string `json:"consistency"`
	Feedback    string `json:"feedback"`
}

// LiveFeedback 实时反馈事件载荷，由快速分析通道逐块产出。
type LiveFeedback struct {
	Volume    float64 `json:"volume"`
	Clarity   float64 `json:"clarity"`
	Timestamp int64   `json:"timestamp"` // unix milliseconds
}

var ErrInvalidResult = errors.New("invalid analysis result")

// Validate 校验所有评分落在 [0,100]，计数与时长非负。
func (r *Result) Validate() error {
	if err := checkScore("overallScore", r.OverallScore); err != nil {
		return err
	}
	if r.DurationSeconds <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidResult, r.DurationSeconds)
	}
	if r.Pace != nil {
		if err := checkScore("pace.score", r.Pace.Score); err != nil {
			return err
		}
	}
	if r.Clarity != nil {
		if err := checkScore("clarity.score", r.Clarity.Score); err != nil {
			return err
		}
	}
	if r.FillerWords != nil {
		if err := checkScore("fillerWords.score", r.FillerWords.Score); err != nil {
			return err
		}
		if r.FillerWords.Count < 0 {
			return fmt.Errorf("%w: fillerWords.count must be non-negative, got %d", ErrInvalidResult, r.FillerWords.Count)
		}
	}
	if r.Volume != nil {
		if err := checkScore("volume.score", r.Volume.Score); err != nil {
			return err
		}
	}
	return nil
}

func checkScore(field string, score int) error {
	if score < 0 || score > 100 {
		return fmt.Errorf("%w: %s out of range [0,100], got %d", ErrInvalidResult, field, score)
	}
	return nil
}
