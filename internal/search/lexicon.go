package search

import (
	"fmt"
	"strings"
)

// defaultCategories maps a category label to its space-separated
// keyword set. Order is fixed: the scan order decides suggestion and
// recommendation output, so this is a slice rather than a map. The
// joined string is fed to the text index in one shot so relevance
// scoring spans all keywords of the category at once.
var defaultCategories = []struct {
	label    string
	keywords string
}{
	{"web design", "figma photoshop illustrator ui ux"},
	{"web development", "javascript react node angular vue"},
	{"devops", "docker kubernetes aws gcp ci/cd terraform jenkins ansible prometheus grafana linux"},
	{"ai/ml", "python tensorflow pytorch machine learning ai"},
	{"frontend", "html css javascript react vue angular"},
	{"backend", "node express java python php"},
	{"mobile apps", "react native flutter android ios swift"},
	{"ui/ux", "figma adobe xd sketch prototyping"},
}

// Lexicon is the static category -> keywords mapping shared by the
// category search, the suggestion extractor and the skill recommender.
// It is immutable after construction.
type Lexicon struct {
	order      []string
	categories map[string]string
}

func NewLexicon() *Lexicon {
	order := make([]string, 0, len(defaultCategories))
	categories := make(map[string]string, len(defaultCategories))
	for _, entry := range defaultCategories {
		order = append(order, entry.label)
		categories[entry.label] = entry.keywords
	}
	return &Lexicon{order: order, categories: categories}
}

// Keywords returns the joined keyword string for a category label.
// Lookup is case-insensitive.
func (l *Lexicon) Keywords(category string) (string, bool) {
	keywords, ok := l.categories[strings.ToLower(strings.TrimSpace(category))]
	return keywords, ok
}

// MatchingKeywords returns every individual keyword across all
// categories that contains q, case-insensitively, lowercased. A
// keyword is included whether or not any profile matches it, and
// categories are scanned in their declared order so repeated calls
// yield the same list.
func (l *Lexicon) MatchingKeywords(q string) []string {
	q = strings.ToLower(q)
	var matches []string
	for _, label := range l.order {
		for _, keyword := range strings.Fields(l.categories[label]) {
			if strings.Contains(keyword, q) {
				matches = append(matches, keyword)
			}
		}
	}
	return matches
}

// Recommendations suggests skills to learn next. Every category
// sharing at least one keyword with the user's skills contributes the
// keywords the user is still missing; when nothing matches, a generic
// starting point is offered instead. Two growth lines close the list.
func (l *Lexicon) Recommendations(skills []string) []string {
	have := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		have[strings.ToLower(skill)] = struct{}{}
	}

	var recs []string
	for _, label := range l.order {
		keywords := strings.Fields(l.categories[label])

		matched := false
		for _, keyword := range keywords {
			if _, ok := have[keyword]; ok {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		var missing []string
		for _, keyword := range keywords {
			if _, ok := have[keyword]; !ok {
				missing = append(missing, keyword)
			}
		}
		if len(missing) > 0 {
			recs = append(recs, fmt.Sprintf("Based on your interest in %s, consider learning: %s",
				label, strings.Join(missing, ", ")))
		}
	}

	if len(recs) == 0 {
		recs = append(recs, "Explore foundational skills in web development (HTML, CSS, JavaScript) or Python for AI/ML.")
	}

	recs = append(recs,
		"Focus on soft skills: communication, teamwork, and problem-solving.",
		"Consider online courses and certifications to strengthen your profile.",
	)
	return recs
}

// Categories returns the known category labels in declaration order.
func (l *Lexicon) Categories() []string {
	return append([]string{}, l.order...)
}
