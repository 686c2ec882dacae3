package analyzer

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/zhouzirui/speakit/backend/internal/model/analysis"
)

var ErrAnalysis = errors.New("audio analysis failed")

// Provider 完整分析提供方：接收整段音频，产出结构化分析结果。
// 真实实现由外部接入（语音模型、人工评估等），核心不关心其算法。
type Provider interface {
	Analyze(ctx context.Context, audio []byte, format string) (analysis.Result, error)
}

// QuickProvider 快速分析提供方：对单个音频分片给出近似的实时估计。
type QuickProvider interface {
	QuickAnalyze(ctx context.Context, chunk []byte) (analysis.LiveFeedback, error)
}

// Simulated 模拟分析器，区间取值与线上打分口径一致，
// 用于本地开发与测试替身。同时实现 Provider 与 QuickProvider。
type Simulated struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulated 创建模拟分析器。seed 为 0 时按当前时间播种。
func NewSimulated(seed uint64) *Simulated {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Simulated{rng: rand.New(rand.NewPCG(seed, seed))}
}

// Analyze 生成一份模拟的完整分析结果。
func (s *Simulated) Analyze(_ context.Context, audio []byte, _ string) (analysis.Result, error) {
	if len(audio) == 0 {
		return analysis.Result{}, errors.Join(ErrAnalysis, errors.New("empty audio payload"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return analysis.Result{
		OverallScore: s.between(75, 95),
		Pace: &analysis.PaceMetric{
			Score:          s.between(70, 95),
			WordsPerMinute: s.between(140, 190),
			Feedback:       "Good speaking pace, consider varying speed for emphasis",
		},
		Clarity: &analysis.ClarityMetric{
			Score:    s.between(80, 95),
			Feedback: "Clear articulation, excellent pronunciation",
		},
		FillerWords: &analysis.FillerWordsMetric{
			Score:    s.between(65, 95),
			Count:    s.between(2, 10),
			Types:    []string{"um", "uh", "like"},
			Feedback: "Try pausing instead of using filler words",
		},
		Volume: &analysis.VolumeMetric{
			Score:       s.between(75, 95),
			Consistency: "Good",
			Feedback:    "Maintain consistent volume throughout",
		},
		DurationSeconds: s.between(60, 240),
		Transcript:      "This is a simulated transcript of the analyzed speech...",
	}, nil
}

// QuickAnalyze 对单个分片给出实时估计。
func (s *Simulated) QuickAnalyze(_ context.Context, _ []byte) (analysis.LiveFeedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return analysis.LiveFeedback{
		Volume:    s.rng.Float64() * 100,
		Clarity:   s.rng.Float64() * 100,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// between 返回 [lo, hi) 区间内的随机整数。
func (s *Simulated) between(lo, hi int) int {
	return lo + s.rng.IntN(hi-lo)
}
