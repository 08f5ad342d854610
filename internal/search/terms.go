package search

import (
	"strings"

	"talent-service/internal/models"
)

// ProfileTerms collects suggestion candidates from one profile and its
// owner: every skill, bio word, experience title/company, the
// location, and the owner's username/fullname that contain q
// case-insensitively. Everything returned is lowercased.
func ProfileTerms(p *models.Profile, owner *models.User, q string) []string {
	q = strings.ToLower(q)
	var terms []string

	add := func(candidate string) {
		candidate = strings.ToLower(strings.TrimSpace(candidate))
		if candidate != "" && strings.Contains(candidate, q) {
			terms = append(terms, candidate)
		}
	}

	for _, skill := range p.Skills {
		add(skill)
	}
	terms = append(terms, BioWords(p.Bio, q)...)
	for _, exp := range p.Experience {
		add(exp.Title)
		add(exp.Company)
	}
	add(p.Location)
	if owner != nil {
		add(owner.Username)
		add(owner.Fullname)
	}
	return terms
}

// BioWords extracts the whole words of a bio that contain q,
// lowercased, so free text yields word-shaped suggestions instead of
// raw substrings.
func BioWords(bio, q string) []string {
	q = strings.ToLower(q)
	var words []string
	for _, word := range strings.Fields(strings.ToLower(bio)) {
		word = strings.Trim(word, ".,;:!?()[]{}\"'")
		if word != "" && strings.Contains(word, q) {
			words = append(words, word)
		}
	}
	return words
}

// Dedupe removes case-insensitive duplicates preserving first-seen
// order and caps the list at limit. limit <= 0 means no cap.
func Dedupe(terms []string, limit int) []string {
	seen := make(map[string]struct{}, len(terms))
	deduped := make([]string, 0, len(terms))
	for _, term := range terms {
		key := strings.ToLower(term)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, term)
		if limit > 0 && len(deduped) == limit {
			break
		}
	}
	return deduped
}
