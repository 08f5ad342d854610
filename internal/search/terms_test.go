package search

import (
	"reflect"
	"testing"

	"talent-service/internal/models"
)

func TestBioWords(t *testing.T) {
	testCases := []struct {
		name string
		bio  string
		q    string
		want []string
	}{
		{
			name: "whole words containing the query",
			bio:  "Senior Python developer, pythonic code enthusiast.",
			q:    "python",
			want: []string{"python", "pythonic"},
		},
		{
			name: "punctuation stripped",
			bio:  "Worked with React, Redux; also React-Native!",
			q:    "react",
			want: []string{"react", "react-native"},
		},
		{
			name: "case insensitive",
			bio:  "DOCKER expert",
			q:    "docker",
			want: []string{"docker"},
		},
		{
			name: "empty bio",
			bio:  "",
			q:    "python",
			want: nil,
		},
		{
			name: "no matches",
			bio:  "writes go services",
			q:    "python",
			want: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := BioWords(tc.bio, tc.q)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("BioWords(%q, %q) = %v, want %v", tc.bio, tc.q, got, tc.want)
			}
		})
	}
}

func TestProfileTerms(t *testing.T) {
	profile := &models.Profile{
		Bio:      "Backend engineer who loves Python",
		Skills:   []string{"Python", "Django", "PostgreSQL"},
		Location: "Pythonville",
		Experience: []models.Experience{
			{Title: "Python Developer", Company: "Monty Inc"},
		},
	}
	owner := &models.User{Username: "pythonista", Fullname: "Py Thon"}

	got := ProfileTerms(profile, owner, "python")

	want := map[string]bool{
		"python":           true,
		"pythonville":      true,
		"python developer": true,
		"pythonista":       true,
	}
	gotSet := map[string]bool{}
	for _, term := range got {
		gotSet[term] = true
	}
	for term := range want {
		if !gotSet[term] {
			t.Errorf("expected term %q in %v", term, got)
		}
	}
	if gotSet["django"] || gotSet["postgresql"] {
		t.Errorf("terms not containing the query leaked: %v", got)
	}
	if gotSet["monty inc"] {
		t.Errorf("company not containing the query leaked: %v", got)
	}

	t.Run("nil owner", func(t *testing.T) {
		terms := ProfileTerms(profile, nil, "python")
		for _, term := range terms {
			if term == "pythonista" {
				t.Errorf("owner terms present despite nil owner: %v", terms)
			}
		}
	})
}

func TestDedupe(t *testing.T) {
	testCases := []struct {
		name  string
		terms []string
		limit int
		want  []string
	}{
		{
			name:  "case insensitive duplicates removed",
			terms: []string{"Python", "python", "PYTHON", "django"},
			limit: 10,
			want:  []string{"Python", "django"},
		},
		{
			name:  "first seen order preserved",
			terms: []string{"b", "a", "b", "c", "a"},
			limit: 10,
			want:  []string{"b", "a", "c"},
		},
		{
			name:  "cap applied",
			terms: []string{"a", "b", "c", "d"},
			limit: 2,
			want:  []string{"a", "b"},
		},
		{
			name:  "no cap when limit is zero",
			terms: []string{"a", "b", "c"},
			limit: 0,
			want:  []string{"a", "b", "c"},
		},
		{
			name:  "empty input",
			terms: nil,
			limit: 10,
			want:  []string{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Dedupe(tc.terms, tc.limit)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Dedupe(%v, %d) = %v, want %v", tc.terms, tc.limit, got, tc.want)
			}
		})
	}
}
