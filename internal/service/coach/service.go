package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"

	"github.com/zhouzirui/speakit/backend/internal/model/topic"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrGeneration   = errors.New("text generation failed")
)

const debateHistoryLimit = 3

// fallbackRebuttal 在生成服务不可用时兜底返回，保证辩论流程不中断。
const fallbackRebuttal = "That's an interesting point, but consider the counter-evidence: most studies on this topic suggest the opposite conclusion. What assumptions is your argument relying on?"

// GenerateOptions 控制单次文本生成的采样参数。
type GenerateOptions struct {
	Temperature float32
	MaxTokens   int
}

// Generator 文本生成能力的最小契约：提示词进、文本出。
// 具体实现可以是大模型服务，也可以是测试替身。
type Generator interface {
	Generate(ctx context.Context, system, prompt string, opts GenerateOptions) (string, error)
}

// Feedback 演讲反馈的固定输出结构。
type Feedback struct {
	OverallScore int      `json:"overallScore"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Suggestions  []string `json:"suggestions"`
}

// DebateTurn 一轮辩论发言。
type DebateTurn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Service 教练编排器：组装提示词、调用文本生成能力、把输出解析为固定
// 结构。反馈路径的失败会向上抛出；辩论与题目路径降级为静态兜底内容。
type Service struct {
	generator Generator
	pool      []topic.Topic
}

// NewService 创建编排器。generator 可为 nil，此时反馈路径直接失败，
// 辩论与题目路径始终走兜底内容。
func NewService(generator Generator, pool []topic.Topic) *Service {
	return &Service{
		generator: generator,
		pool:      append([]topic.Topic(nil), pool...),
	}
}

// RequestFeedback 基于转写文本与分析摘要生成结构化反馈。
// 反馈是该调用的核心交付物，生成失败或输出不合规时错误原样上抛。
func (s *Service) RequestFeedback(ctx context.Context, transcript, analysisSummary, practiceContext string) (*Feedback, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, fmt.Errorf("%w: transcript is required", ErrInvalidInput)
	}
	if s.generator == nil {
		return nil, fmt.Errorf("%w: generator unavailable", ErrGeneration)
	}

	prompt := buildFeedbackPrompt(transcript, analysisSummary, practiceContext)
	raw, err := s.generator.Generate(ctx, feedbackSystemPrompt, prompt, GenerateOptions{
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}

	feedback, err := parseFeedback(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return feedback, nil
}

// RequestDebateRebuttal 生成针对用户论点的反驳。生成失败时返回固定的
// 通用反驳语句而非错误：辩论流程的时延与可用性优先于内容质量。
func (s *Service) RequestDebateRebuttal(ctx context.Context, topicTitle, userArgument string, history []DebateTurn, stance string) string {
	if s.generator == nil {
		return fallbackRebuttal
	}

	prompt := buildDebatePrompt(topicTitle, userArgument, history, stance)
	raw, err := s.generator.Generate(ctx, debateSystemPrompt, prompt, GenerateOptions{
		Temperature: 0.8,
		MaxTokens:   200,
	})
	if err != nil {
		log.Printf("[coach] debate generation failed, using fallback: %v", err)
		return fallbackRebuttal
	}

	rebuttal := strings.TrimSpace(raw)
	if rebuttal == "" {
		return fallbackRebuttal
	}
	return rebuttal
}

// RequestTopics 生成练习题目。生成失败或输出不合规时降级为静态题库：
// 按类别与难度过滤后无放回随机抽样至 count 个。
func (s *Service) RequestTopics(ctx context.Context, category, difficulty string, count int) ([]topic.Topic, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: count must be at least 1", ErrInvalidInput)
	}

	if s.generator == nil {
		return s.fallbackTopics(category, difficulty, count), nil
	}

	prompt := buildTopicsPrompt(category, difficulty, count)
	raw, err := s.generator.Generate(ctx, topicsSystemPrompt, prompt, GenerateOptions{
		Temperature: 0.9,
		MaxTokens:   800,
	})
	if err != nil {
		log.Printf("[coach] topic generation failed, using fallback pool: %v", err)
		return s.fallbackTopics(category, difficulty, count), nil
	}

	topics, err := parseTopics(raw)
	if err != nil {
		log.Printf("[coach] topic output parse failed, using fallback pool: %v", err)
		return s.fallbackTopics(category, difficulty, count), nil
	}

	if len(topics) > count {
		topics = topics[:count]
	}
	for i := range topics {
		if topics[i].Category == "" {
			topics[i].Category = category
		}
		if topics[i].Difficulty == "" {
			topics[i].Difficulty = difficulty
		}
	}
	return topics, nil
}

// fallbackTopics 从静态题库过滤并抽样。"all" 或空串表示不过滤。
func (s *Service) fallbackTopics(category, difficulty string, count int) []topic.Topic {
	filtered := make([]topic.Topic, 0, len(s.pool))
	for _, t := range s.pool {
		if !matchesFilter(t.Category, category) {
			continue
		}
		if !matchesFilter(t.Difficulty, difficulty) {
			continue
		}
		filtered = append(filtered, t)
	}

	rand.Shuffle(len(filtered), func(i, j int) {
		filtered[i], filtered[j] = filtered[j], filtered[i]
	})

	if len(filtered) > count {
		filtered = filtered[:count]
	}
	return filtered
}

func matchesFilter(value, filter string) bool {
	if filter == "" || strings.EqualFold(filter, "all") {
		return true
	}
	return strings.EqualFold(value, filter)
}

// parseFeedback 把生成输出当作不可信文本处理：截取 JSON 对象并校验结构。
func parseFeedback(content string) (*Feedback, error) {
	object, err := extractJSON(content, '{', '}')
	if err != nil {
		return nil, err
	}

	feedback := &Feedback{}
	if err := json.Unmarshal([]byte(object), feedback); err != nil {
		return nil, err
	}
	if feedback.OverallScore < 0 || feedback.OverallScore > 100 {
		return nil, fmt.Errorf("overallScore out of range: %d", feedback.OverallScore)
	}
	if len(feedback.Suggestions) == 0 {
		return nil, errors.New("missing suggestions")
	}
	return feedback, nil
}

// parseTopics 截取 JSON 数组并校验每个题目至少带有标题。
func parseTopics(content string) ([]topic.Topic, error) {
	array, err := extractJSON(content, '[', ']')
	if err != nil {
		return nil, err
	}

	var topics []topic.Topic
	if err := json.Unmarshal([]byte(array), &topics); err != nil {
		return nil, err
	}
	if len(topics) == 0 {
		return nil, errors.New("empty topic list")
	}
	for _, t := range topics {
		if strings.TrimSpace(t.Title) == "" {
			return nil, errors.New("topic missing title")
		}
	}
	return topics, nil
}

// extractJSON 从可能混有说明文字的输出中截取首尾配对的 JSON 片段。
func extractJSON(content string, opening, closing byte) (string, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.IndexByte(trimmed, opening)
	end := strings.LastIndexByte(trimmed, closing)
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("missing json payload delimited by %q and %q", string(opening), string(closing))
	}
	return trimmed[start : end+1], nil
}
