package schedule

import (
	"fmt"
	"strings"
)

// minDescriptionLen is the shortest step description accepted as actionable.
const minDescriptionLen = 40

// Generic filler descriptions an external proposer tends to produce. A match
// (case-insensitive, whole description) fails the quality gate.
var fillerPhrases = []string{
	"work on it",
	"work on your goal",
	"make progress",
	"continue where you left off",
	"keep going",
	"practice regularly",
	"do some research",
	"get started",
	"set up your workspace",
	"take breaks as needed",
	"stay consistent",
	"review your progress",
}

// descriptionRule pairs a title predicate with a template generator. Rules
// are evaluated top-down; the last rule always matches.
type descriptionRule struct {
	match    func(title string) bool
	generate func(title string, minutes int) string
}

func keywordMatch(keywords ...string) func(string) bool {
	return func(title string) bool {
		t := strings.ToLower(title)
		for _, k := range keywords {
			if strings.Contains(t, k) {
				return true
			}
		}
		return false
	}
}

var descriptionRules = []descriptionRule{
	{
		match: keywordMatch("business", "market", "research", "client", "customer", "pitch", "startup"),
		generate: func(title string, minutes int) string {
			return fmt.Sprintf("Spend %d minutes on %q: pick one concrete question to answer, find three real sources or examples, and write down what you learned in five bullet points plus one next action. Stop when the timer ends and keep the notes where you can find them.", minutes, title)
		},
	},
	{
		match: keywordMatch("language", "vocab", "words", "grammar", "speak", "polish", "spanish", "french", "german"),
		generate: func(title string, minutes int) string {
			return fmt.Sprintf("Spend %d minutes on %q: learn 10 new words with flashcards (read each aloud three times, cover the translation, recall it, write it once, use it in a short sentence), then review all 10 at the end of the session.", minutes, title)
		},
	},
	{
		match: keywordMatch("run", "workout", "exercise", "gym", "fitness", "train", "stretch", "strength"),
		generate: func(title string, minutes int) string {
			return fmt.Sprintf("Spend %d minutes on %q: warm up for 5 minutes, keep the effort at a pace where you can still talk in full sentences, and cool down for the last 5 minutes. Walking portions count; steady movement for the whole session is the goal.", minutes, title)
		},
	},
	{
		match: keywordMatch("write", "blog", "article", "draft", "essay", "journal", "chapter"),
		generate: func(title string, minutes int) string {
			return fmt.Sprintf("Spend %d minutes on %q: list the three points you want to make, write one paragraph per point with a concrete example, then add an opening line and a one-sentence conclusion. A rough complete draft beats a polished fragment.", minutes, title)
		},
	},
	{
		match: keywordMatch("guitar", "piano", "music", "song", "practice chord", "instrument", "sing"),
		generate: func(title string, minutes int) string {
			return fmt.Sprintf("Spend %d minutes on %q: pick one short piece or progression, practice it slowly until the transitions are clean, then play it through three times at tempo. Slow and correct first, speed later.", minutes, title)
		},
	},
	{
		match: keywordMatch("cook", "meal", "recipe", "bake", "kitchen", "nutrition"),
		generate: func(title string, minutes int) string {
			return fmt.Sprintf("Spend %d minutes on %q: choose one simple recipe, lay out every ingredient before you start, follow the steps in order, and plate the result. Note one thing to do differently next time.", minutes, title)
		},
	},
	{
		// Catch-all; must stay last.
		match: func(string) bool { return true },
		generate: func(title string, minutes int) string {
			return fmt.Sprintf("Spend %d minutes on %q: decide the single outcome this session should produce, break it into three small actions, do them in order, and write one line about where to pick up next time.", minutes, title)
		},
	},
}

// actionableDescription reports whether a proposed description passes the
// quality gate.
func actionableDescription(desc string) bool {
	trimmed := strings.TrimSpace(desc)
	if len(trimmed) < minDescriptionLen {
		return false
	}
	lower := strings.ToLower(trimmed)
	for _, phrase := range fillerPhrases {
		if lower == phrase || strings.HasPrefix(lower, phrase+".") {
			return false
		}
	}
	return true
}

// templateDescription produces a concrete instruction for a step whose
// proposed description failed the quality gate.
func templateDescription(title string, minutes int) string {
	for _, rule := range descriptionRules {
		if rule.match(title) {
			return rule.generate(title, minutes)
		}
	}
	// Unreachable: the final rule matches everything.
	return descriptionRules[len(descriptionRules)-1].generate(title, minutes)
}
