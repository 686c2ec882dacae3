package progress

import (
	"math"

	"github.com/zhouzirui/speakit/backend/internal/model/analysis"
	"github.com/zhouzirui/speakit/backend/internal/model/session"
)

// Summary 汇总一个用户的历史练习表现，按需计算，从不持久化。
type Summary struct {
	TotalSessions    int               `json:"totalSessions"`
	AverageScore     int               `json:"averageScore"`
	ImprovementDelta int               `json:"improvementDelta"`
	RecentSessions   []session.Session `json:"recentSessions"`
	Trends           map[string]int    `json:"trends"`
}

// 参与趋势计算的指标名。
const (
	MetricPace        = "pace"
	MetricClarity     = "clarity"
	MetricFillerWords = "fillerWords"
)

const (
	recentWindow  = 5
	trendWindow   = 10
	recentDisplay = 10
)

// Compute 根据按时间倒序排列的会话序列计算进度汇总。
// 输入为空时返回全零汇总；所有除法的分母均不小于 1，不会产生 NaN。
func Compute(sessions []session.Session) Summary {
	if len(sessions) == 0 {
		return Summary{
			RecentSessions: []session.Session{},
			Trends:         zeroTrends(),
		}
	}

	scores := make([]float64, len(sessions))
	for i, s := range sessions {
		scores[i] = float64(s.Analysis.OverallScore)
	}

	summary := Summary{
		TotalSessions: len(sessions),
		AverageScore:  int(math.Round(mean(scores))),
		Trends: map[string]int{
			MetricPace:        computeTrend(sessions, MetricPace),
			MetricClarity:     computeTrend(sessions, MetricClarity),
			MetricFillerWords: computeTrend(sessions, MetricFillerWords),
		},
	}

	// 近 5 场与其前 5 场的均值差。前窗不满 5 场时不给出增量，
	// 不做部分窗口对比。
	if len(scores) >= 2*recentWindow {
		recent := scores[:recentWindow]
		previous := scores[recentWindow : 2*recentWindow]
		summary.ImprovementDelta = int(math.Round(mean(recent) - mean(previous)))
	}

	display := min(len(sessions), recentDisplay)
	summary.RecentSessions = append([]session.Session(nil), sessions[:display]...)

	return summary
}

// computeTrend 取最近至多 10 场中具备该指标的评分，比较前 min(5,n) 个值
// 与其余值的均值。可用值少于 2 个时趋势为 0。
func computeTrend(sessions []session.Session, metric string) int {
	values := make([]float64, 0, trendWindow)
	for _, s := range sessions {
		score, ok := metricScore(&s.Analysis, metric)
		if !ok {
			continue
		}
		values = append(values, float64(score))
		if len(values) == trendWindow {
			break
		}
	}

	if len(values) < 2 {
		return 0
	}

	split := min(len(values), recentWindow)
	recentMean := mean(values[:split])

	// 后窗分母固定取 max(1, n-5)：后窗为空时均值记 0，而不是除零。
	older := values[split:]
	olderMean := sum(older) / float64(max(1, len(older)))

	return int(math.Round(recentMean - olderMean))
}

func metricScore(r *analysis.Result, metric string) (int, bool) {
	switch metric {
	case MetricPace:
		if r.Pace != nil {
			return r.Pace.Score, true
		}
	case MetricClarity:
		if r.Clarity != nil {
			return r.Clarity.Score, true
		}
	case MetricFillerWords:
		if r.FillerWords != nil {
			return r.FillerWords.Score, true
		}
	}
	return 0, false
}

func zeroTrends() map[string]int {
	return map[string]int{
		MetricPace:        0,
		MetricClarity:     0,
		MetricFillerWords: 0,
	}
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}
