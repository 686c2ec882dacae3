package coach

import (
	"fmt"
	"strings"
)

const feedbackSystemPrompt = `你是一名专业的演讲教练，基于转写文本与量化分析给出个性化反馈。
输出要求：只返回一个 JSON 对象，字段如下：overallScore (0~100 的整数)、strengths (字符串数组)、improvements (字符串数组)、suggestions (3~4 条可执行建议的字符串数组)。不得输出多余文本。`

const debateSystemPrompt = `你是一名辩论对手，立场与用户相反。针对用户的论点给出有挑战性但公平的反驳：
回应对方的具体论点，引入新的证据或视角，保持尊重的辩论语气，长度控制在 2-3 句。只返回反驳文本本身。`

const topicsSystemPrompt = `你是一名演讲练习题目设计师。
输出要求：只返回一个 JSON 数组，每个元素包含字段：title (题目标题)、description (练习说明)、sessionType (Presentation/Debate/Interview/Storytelling 之一)、suggestedDuration (如 "3-5 minutes")、tips (3 条建议的字符串数组)。不得输出多余文本。`

// buildFeedbackPrompt 组装反馈请求的用户提示词。
func buildFeedbackPrompt(transcript, analysisSummary, context string) string {
	if analysisSummary == "" {
		analysisSummary = "Unknown"
	}
	if context == "" {
		context = "General speaking practice"
	}

	return fmt.Sprintf(`演讲转写文本：
"%s"

量化分析摘要：
%s

练习场景：%s

请给出整体评分、具体优点、待改进项以及 3-4 条可执行建议。`,
		transcript,
		analysisSummary,
		context,
	)
}

// buildDebatePrompt 组装辩论反驳请求的用户提示词，只携带最近至多 3 轮历史。
func buildDebatePrompt(topicTitle, userArgument string, history []DebateTurn, stance string) string {
	if stance == "" {
		stance = "反对用户的立场"
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "辩题：%q\n你的立场：%s\n", topicTitle, stance)
	fmt.Fprintf(&builder, "用户的最新论点：%q\n", userArgument)

	turns := history
	if len(turns) > debateHistoryLimit {
		turns = turns[len(turns)-debateHistoryLimit:]
	}
	if len(turns) > 0 {
		builder.WriteString("\n此前的辩论记录：\n")
		for _, turn := range turns {
			fmt.Fprintf(&builder, "- %s: %s\n", turn.Speaker, turn.Text)
		}
	}

	builder.WriteString("\n请给出你的反驳。")
	return builder.String()
}

// buildTopicsPrompt 组装题目生成请求的用户提示词。
func buildTopicsPrompt(category, difficulty string, count int) string {
	if category == "" {
		category = "general"
	}
	if difficulty == "" {
		difficulty = "intermediate"
	}

	return fmt.Sprintf(`请生成 %d 个互不重复的演讲练习题目。
类别：%s
难度：%s

请按输出要求返回 JSON 数组。`,
		count,
		category,
		difficulty,
	)
}
