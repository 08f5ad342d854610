package search

import (
	"reflect"
	"strings"
	"testing"
)

func TestLexiconKeywords(t *testing.T) {
	lexicon := NewLexicon()

	testCases := []struct {
		name     string
		category string
		want     string
		wantOK   bool
	}{
		{"known category", "devops", "docker kubernetes aws gcp ci/cd terraform jenkins ansible prometheus grafana linux", true},
		{"case insensitive lookup", "Web Design", "figma photoshop illustrator ui ux", true},
		{"surrounding whitespace", "  backend  ", "node express java python php", true},
		{"slash in label", "ai/ml", "python tensorflow pytorch machine learning ai", true},
		{"unknown category", "gardening", "", false},
		{"empty label", "", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := lexicon.Keywords(tc.category)
			if ok != tc.wantOK {
				t.Fatalf("Keywords(%q) ok = %v, want %v", tc.category, ok, tc.wantOK)
			}
			if got != tc.want {
				t.Errorf("Keywords(%q) = %q, want %q", tc.category, got, tc.want)
			}
		})
	}
}

func TestLexiconMatchingKeywords(t *testing.T) {
	lexicon := NewLexicon()

	t.Run("substring across categories", func(t *testing.T) {
		matches := lexicon.MatchingKeywords("rea")
		got := map[string]bool{}
		for _, keyword := range matches {
			got[keyword] = true
		}
		if !got["react"] {
			t.Errorf("expected react in %v", matches)
		}
	})

	t.Run("case insensitive", func(t *testing.T) {
		matches := lexicon.MatchingKeywords("DOCKER")
		found := false
		for _, keyword := range matches {
			if keyword == "docker" {
				found = true
			}
		}
		if !found {
			t.Errorf("expected docker in %v", matches)
		}
	})

	t.Run("no match", func(t *testing.T) {
		if matches := lexicon.MatchingKeywords("zzzz"); len(matches) != 0 {
			t.Errorf("expected no matches, got %v", matches)
		}
	})

	t.Run("declaration order, stable across calls", func(t *testing.T) {
		want := []string{"angular", "ansible", "grafana", "angular", "android"}
		for i := 0; i < 50; i++ {
			got := lexicon.MatchingKeywords("an")
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("call %d: MatchingKeywords(\"an\") = %v, want %v", i, got, want)
			}
		}
	})
}

func TestLexiconRecommendations(t *testing.T) {
	lexicon := NewLexicon()

	t.Run("missing keywords of matched categories", func(t *testing.T) {
		recs := lexicon.Recommendations([]string{"Python"})

		want := []string{
			"Based on your interest in ai/ml, consider learning: tensorflow, pytorch, machine, learning, ai",
			"Based on your interest in backend, consider learning: node, express, java, php",
			"Focus on soft skills: communication, teamwork, and problem-solving.",
			"Consider online courses and certifications to strengthen your profile.",
		}
		if !reflect.DeepEqual(recs, want) {
			t.Errorf("Recommendations([Python]) = %v, want %v", recs, want)
		}
	})

	t.Run("no category match falls back to generic guidance", func(t *testing.T) {
		recs := lexicon.Recommendations([]string{"basket weaving"})
		if len(recs) != 3 {
			t.Fatalf("expected 3 lines, got %d: %v", len(recs), recs)
		}
		if !strings.HasPrefix(recs[0], "Explore foundational skills") {
			t.Errorf("expected generic guidance first, got %q", recs[0])
		}
	})

	t.Run("fully covered category contributes nothing", func(t *testing.T) {
		recs := lexicon.Recommendations([]string{"figma", "adobe", "xd", "sketch", "prototyping"})
		for _, rec := range recs {
			if strings.Contains(rec, "interest in ui/ux") {
				t.Errorf("category with no missing keywords must not be recommended: %q", rec)
			}
		}
	})

	t.Run("empty skills", func(t *testing.T) {
		recs := lexicon.Recommendations(nil)
		if len(recs) != 3 {
			t.Errorf("expected generic guidance plus growth lines, got %v", recs)
		}
	})
}

func TestLexiconCategories(t *testing.T) {
	lexicon := NewLexicon()

	labels := lexicon.Categories()
	if len(labels) != len(defaultCategories) {
		t.Fatalf("expected %d categories, got %d", len(defaultCategories), len(labels))
	}
	for i, label := range labels {
		if label != strings.ToLower(label) {
			t.Errorf("category label %q is not lowercase", label)
		}
		if label != defaultCategories[i].label {
			t.Errorf("category %d = %q, want %q", i, label, defaultCategories[i].label)
		}
	}
}
