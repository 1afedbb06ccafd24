package enhance

import "strings"

// Category is the detected subject area of an intent, used for usage
// analytics and role selection. Never derived from the prompt text stored
// anywhere; only the category label leaves the pipeline.
type Category string

const (
	CategoryEmail     Category = "email"
	CategoryCode      Category = "code"
	CategoryAnalysis  Category = "analysis"
	CategoryCreative  Category = "creative"
	CategoryMarketing Category = "marketing"
	CategoryLegal     Category = "legal"
	CategoryGeneral   Category = "general"
)

var categoryKeywords = map[Category][]string{
	CategoryEmail: {
		"email", "mail", "newsletter", "outreach", "reply",
		"follow up", "follow-up", "subject line",
	},
	CategoryCode: {
		"code", "function", "api", "debug", "refactor", "implement",
		"algorithm", "programming", "typescript", "javascript", "python",
		"sql", "query", "bug", "test",
	},
	CategoryAnalysis: {
		"analyze", "analysis", "report", "data", "compare", "evaluate",
		"research", "study", "review", "assess",
	},
	CategoryCreative: {
		"story", "poem", "creative", "fiction", "write", "blog",
		"article", "content", "narrative", "script",
	},
	CategoryMarketing: {
		"marketing", "ad", "campaign", "brand", "copy", "headline",
		"tagline", "social media", "seo", "landing page",
	},
	CategoryLegal: {
		"legal", "contract", "terms", "policy", "compliance",
		"regulation", "agreement", "clause",
	},
}

// DetectCategory classifies an intent by keyword score, falling back to
// general when nothing matches.
func DetectCategory(intent string) Category {
	lower := strings.ToLower(intent)

	best := CategoryGeneral
	bestScore := 0

	for category, keywords := range categoryKeywords {
		score := 0

		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				score++
			}
		}

		if score > bestScore || (score == bestScore && score > 0 && category < best) {
			best = category
			bestScore = score
		}
	}

	return best
}
