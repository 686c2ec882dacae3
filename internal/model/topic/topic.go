package topic

// Topic 描述一个口语练习题目及其练习建议。
type Topic struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	SessionType       string   `json:"sessionType"`
	SuggestedDuration string   `json:"suggestedDuration"`
	Tips              []string `json:"tips"`
	Category          string   `json:"category,omitempty"`
	Difficulty        string   `json:"difficulty,omitempty"`
}

// 练习类型取值。
const (
	TypePresentation = "Presentation"
	TypeDebate       = "Debate"
	TypeInterview    = "Interview"
	TypeStorytelling = "Storytelling"
)

// Seed provides the pre-authored fallback pool used when topic generation
// is unavailable or returns unusable output.
func Seed() []Topic {
	return []Topic{
		{
			Title:             "Introduce Your Team's Work",
			Description:       "Give a short briefing on what your team does and why it matters to the company.",
			SessionType:       TypePresentation,
			SuggestedDuration: "2-3 minutes",
			Tips:              []string{"Open with the problem your team solves", "Use one concrete example", "End with a clear takeaway"},
			Category:          "business",
			Difficulty:        "beginner",
		},
		{
			Title:             "Pitch a Small Process Improvement",
			Description:       "Convince a colleague to adopt one small change that would save the team time.",
			SessionType:       TypePresentation,
			SuggestedDuration: "2-3 minutes",
			Tips:              []string{"Quantify the time saved", "Anticipate one objection", "Keep the ask specific"},
			Category:          "business",
			Difficulty:        "beginner",
		},
		{
			Title:             "Explain a Recent Decision",
			Description:       "Walk through a workplace decision you made recently and the reasoning behind it.",
			SessionType:       TypeInterview,
			SuggestedDuration: "3-4 minutes",
			Tips:              []string{"Structure as situation, options, choice", "Name the trade-off you accepted", "Avoid jargon"},
			Category:          "business",
			Difficulty:        "beginner",
		},
		{
			Title:             "Quarterly Results Briefing",
			Description:       "Present mixed quarterly results to stakeholders, balancing honesty with confidence.",
			SessionType:       TypePresentation,
			SuggestedDuration: "4-5 minutes",
			Tips:              []string{"Lead with the headline number", "Pair every negative with a plan", "Close on next quarter's focus"},
			Category:          "business",
			Difficulty:        "intermediate",
		},
		{
			Title:             "Remote Work Should Be the Default",
			Description:       "Argue for or against remote-first policies in knowledge work.",
			SessionType:       TypeDebate,
			SuggestedDuration: "4-5 minutes",
			Tips:              []string{"Concede one point to the other side", "Use evidence, not anecdotes alone", "Finish with your strongest argument"},
			Category:          "business",
			Difficulty:        "advanced",
		},
		{
			Title:             "A Lesson You Learned the Hard Way",
			Description:       "Tell the story of a mistake that taught you something lasting.",
			SessionType:       TypeStorytelling,
			SuggestedDuration: "3-4 minutes",
			Tips:              []string{"Set the scene in two sentences", "Let the mistake land before the lesson", "Keep the moral short"},
			Category:          "personal",
			Difficulty:        "beginner",
		},
		{
			Title:             "Describe Your Ideal Weekend",
			Description:       "Paint a picture of a perfect weekend and what it says about what you value.",
			SessionType:       TypeStorytelling,
			SuggestedDuration: "2-3 minutes",
			Tips:              []string{"Use sensory details", "Vary your pace", "Connect it back to your values"},
			Category:          "personal",
			Difficulty:        "beginner",
		},
		{
			Title:             "The Person Who Shaped You Most",
			Description:       "Speak about someone who influenced who you are and how you carry that forward.",
			SessionType:       TypeStorytelling,
			SuggestedDuration: "4-5 minutes",
			Tips:              []string{"Pick one defining moment", "Show them through actions, not adjectives", "End with how you pass it on"},
			Category:          "personal",
			Difficulty:        "intermediate",
		},
		{
			Title:             "Pitch an Original Film Premise",
			Description:       "Sell a film idea of your own invention in the style of a studio pitch.",
			SessionType:       TypePresentation,
			SuggestedDuration: "3-4 minutes",
			Tips:              []string{"Hook with the premise in one line", "Name the audience it is for", "Leave them wanting the second act"},
			Category:          "creative",
			Difficulty:        "intermediate",
		},
		{
			Title:             "Art Is Better Than Algorithms",
			Description:       "Debate whether human creativity can be matched by generative systems.",
			SessionType:       TypeDebate,
			SuggestedDuration: "4-5 minutes",
			Tips:              []string{"Define creativity before arguing about it", "Steelman the opposing view", "Use one vivid example per point"},
			Category:          "creative",
			Difficulty:        "advanced",
		},
		{
			Title:             "Explain How the Internet Works",
			Description:       "Explain what happens between typing a URL and seeing a page, for a non-technical listener.",
			SessionType:       TypePresentation,
			SuggestedDuration: "3-4 minutes",
			Tips:              []string{"Pick one analogy and stick to it", "Skip the acronyms", "Check understanding at each step"},
			Category:          "technical",
			Difficulty:        "beginner",
		},
		{
			Title:             "Walk Through a System You Designed",
			Description:       "Present the architecture of a system you built and defend its key trade-offs.",
			SessionType:       TypeInterview,
			SuggestedDuration: "5-6 minutes",
			Tips:              []string{"Start with the requirements, not the boxes", "Name the alternative you rejected", "Quantify the scale it handles"},
			Category:          "technical",
			Difficulty:        "advanced",
		},
	}
}
