package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"talent-service/internal/models"
	"talent-service/internal/search"

	"go.mongodb.org/mongo-driver/v2/mongo"
)

const (
	topProfilesLimit      = 8
	suggestMinQueryLen    = 3
	suggestCandidateLimit = 20
	suggestResultLimit    = 10
)

// SearchService implements the profile search and ranking core. Free
// text goes through a three-stage fallback chain (indexed full-text,
// then field substring, then identity match); category and
// availability searches are independent entry points. Every path ends
// in the same join: owners fetched separately, non-professional owners
// and the caller dropped.
type SearchService struct {
	profiles ProfileStore
	users    UserStore
	lexicon  *search.Lexicon
}

func NewSearchService(profiles ProfileStore, users UserStore, lexicon *search.Lexicon) *SearchService {
	return &SearchService{
		profiles: profiles,
		users:    users,
		lexicon:  lexicon,
	}
}

// searchStage is one strategy in the fallback chain. Stages run
// strictly in order; the first one whose filtered result is non-empty
// wins. A stage that matched documents but lost them all to the
// self/role filter counts as empty and still hands over to the next
// stage. Store errors abort the whole chain.
type searchStage func(ctx context.Context, callerID string, q search.Query) ([]*models.SearchResult, error)

// Search resolves a free-text query through the fallback chain.
func (s *SearchService) Search(ctx context.Context, callerID, rawQuery string) ([]*models.SearchResult, error) {
	q, ok := search.Normalize(rawQuery)
	if !ok {
		return nil, ErrInvalidQuery
	}

	stages := []searchStage{
		s.rankedStage,
		s.fieldStage,
		s.identityStage,
	}

	for _, stage := range stages {
		results, err := stage(ctx, callerID, q)
		if err != nil {
			return nil, err
		}
		if len(results) > 0 {
			return results, nil
		}
	}

	return []*models.SearchResult{}, nil
}

// rankedStage queries the composite text index and keeps the
// descending-relevance order it returns.
func (s *SearchService) rankedStage(ctx context.Context, callerID string, q search.Query) ([]*models.SearchResult, error) {
	return s.rankedSearch(ctx, callerID, q.Trimmed)
}

func (s *SearchService) rankedSearch(ctx context.Context, callerID, query string) ([]*models.SearchResult, error) {
	scored, err := s.profiles.TextSearch(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("text search failed: %w", err)
	}

	profiles := make([]*models.Profile, 0, len(scored))
	scores := make(map[string]float64, len(scored))
	for _, hit := range scored {
		profile := hit.Profile
		profiles = append(profiles, &profile)
		scores[hit.ID.Hex()] = hit.Score
	}

	results, err := s.joinOwners(ctx, callerID, profiles)
	if err != nil {
		return nil, err
	}
	for _, result := range results {
		result.Score = scores[result.ID.Hex()]
	}
	return results, nil
}

// fieldStage is the recall-favoring substring fallback: any token
// matching any searchable field qualifies, newest update first.
func (s *SearchService) fieldStage(ctx context.Context, callerID string, q search.Query) ([]*models.SearchResult, error) {
	profiles, err := s.profiles.FieldSearch(ctx, q.Tokens, 0)
	if err != nil {
		return nil, fmt.Errorf("field search failed: %w", err)
	}
	return s.joinOwners(ctx, callerID, profiles)
}

// identityStage resolves the query against usernames and full names.
// This is the only stage that can find someone by name: the text index
// nominally covers a name field that profile documents never carry.
// Professionals without a profile document are skipped silently.
func (s *SearchService) identityStage(ctx context.Context, callerID string, q search.Query) ([]*models.SearchResult, error) {
	users, err := s.users.SearchProfessionals(ctx, q.Trimmed)
	if err != nil {
		return nil, fmt.Errorf("identity search failed: %w", err)
	}

	ownerIDs := make([]string, 0, len(users))
	for _, user := range users {
		if user.ID.Hex() == callerID {
			continue
		}
		ownerIDs = append(ownerIDs, user.ID.Hex())
	}
	if len(ownerIDs) == 0 {
		return nil, nil
	}

	profiles, err := s.profiles.FindByOwnerIDs(ctx, ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("profile lookup failed: %w", err)
	}
	byOwner := make(map[string]*models.Profile, len(profiles))
	for _, profile := range profiles {
		byOwner[profile.OwnerID] = profile
	}

	var results []*models.SearchResult
	for _, user := range users {
		profile, ok := byOwner[user.ID.Hex()]
		if !ok {
			continue
		}
		results = append(results, &models.SearchResult{
			Profile: *profile,
			Owner:   user.Summary(),
		})
	}
	return results, nil
}

// SearchByCategory expands a category label through the lexicon and
// runs the joined keyword string through the ranked stage, so
// relevance scoring spans all keywords at once. No fallback stages.
func (s *SearchService) SearchByCategory(ctx context.Context, callerID, category string) ([]*models.SearchResult, error) {
	if strings.TrimSpace(category) == "" {
		return nil, ErrUnknownCategory
	}
	keywords, ok := s.lexicon.Keywords(category)
	if !ok {
		return nil, ErrUnknownCategory
	}

	results, err := s.rankedSearch(ctx, callerID, keywords)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []*models.SearchResult{}
	}
	return results, nil
}

// SearchByAvailability keeps professionals whose active-day count is
// at most maxDays. The whole collection is loaded and filtered in
// memory, mirroring the source system; fine at small scale.
func (s *SearchService) SearchByAvailability(ctx context.Context, callerID, daysParam string) ([]*models.SearchResult, error) {
	maxDays, err := strconv.Atoi(strings.TrimSpace(daysParam))
	if err != nil || maxDays < 0 {
		return nil, ErrInvalidAvailability
	}

	profiles, err := s.profiles.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("profile load failed: %w", err)
	}

	available := make([]*models.Profile, 0, len(profiles))
	for _, profile := range profiles {
		if profile.ActiveDays() <= maxDays {
			available = append(available, profile)
		}
	}

	results, err := s.joinOwners(ctx, callerID, available)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []*models.SearchResult{}
	}
	return results, nil
}

// TopProfiles returns the newest professional profiles. The cap is
// applied before the join, so a page can come back short when recent
// profiles belong to the caller or to demoted owners.
func (s *SearchService) TopProfiles(ctx context.Context, callerID string) ([]*models.SearchResult, error) {
	profiles, err := s.profiles.FindRecent(ctx, topProfilesLimit)
	if err != nil {
		return nil, fmt.Errorf("recent profile load failed: %w", err)
	}

	results, err := s.joinOwners(ctx, callerID, profiles)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []*models.SearchResult{}
	}
	return results, nil
}

// Suggest produces up to ten completion terms for a partial query.
// Queries under three characters return an empty list without touching
// the store; that threshold is a UX decision, not validation.
func (s *SearchService) Suggest(ctx context.Context, callerID, rawQuery string) ([]string, error) {
	q := strings.TrimSpace(rawQuery)
	if utf8.RuneCountInString(q) < suggestMinQueryLen {
		return []string{}, nil
	}

	profiles, err := s.profiles.FieldSearch(ctx, []string{q}, suggestCandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("suggestion search failed: %w", err)
	}

	ownerIDs := make([]string, 0, len(profiles))
	for _, profile := range profiles {
		ownerIDs = append(ownerIDs, profile.OwnerID)
	}

	owners := map[string]*models.User{}
	if len(ownerIDs) > 0 {
		owners, err = s.users.FindProfessionalsByIDs(ctx, ownerIDs)
		if err != nil {
			return nil, fmt.Errorf("owner lookup failed: %w", err)
		}
	}

	var terms []string
	for _, profile := range profiles {
		if profile.OwnerID == callerID {
			continue
		}
		owner, ok := owners[profile.OwnerID]
		if !ok {
			continue
		}
		terms = append(terms, search.ProfileTerms(profile, owner, q)...)
	}

	// Lexicon keywords count even when no profile matched them.
	terms = append(terms, s.lexicon.MatchingKeywords(q)...)

	return search.Dedupe(terms, suggestResultLimit), nil
}

// Recommend diffs the named user's skills against the category lexicon
// and suggests the keywords they are missing from every category they
// already touch, as newline-joined guidance text.
func (s *SearchService) Recommend(ctx context.Context, userID string) (*models.RecommendationResponse, error) {
	profile, err := s.profiles.FindByOwnerID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("profile lookup failed: %w", err)
	}

	recommendations := s.lexicon.Recommendations(profile.Skills)

	return &models.RecommendationResponse{
		User:              profile.OwnerID,
		CurrentSkills:     profile.Skills,
		AIRecommendations: strings.Join(recommendations, "\n"),
	}, nil
}

// joinOwners is the shared final stage: fetch the owning identities
// separately, keep only professional owners, drop the caller's own
// profile, and preserve the incoming order.
func (s *SearchService) joinOwners(ctx context.Context, callerID string, profiles []*models.Profile) ([]*models.SearchResult, error) {
	if len(profiles) == 0 {
		return nil, nil
	}

	ownerIDs := make([]string, 0, len(profiles))
	for _, profile := range profiles {
		ownerIDs = append(ownerIDs, profile.OwnerID)
	}

	owners, err := s.users.FindProfessionalsByIDs(ctx, ownerIDs)
	if err != nil {
		return nil, fmt.Errorf("owner lookup failed: %w", err)
	}

	var results []*models.SearchResult
	for _, profile := range profiles {
		if profile.OwnerID == callerID {
			continue
		}
		owner, ok := owners[profile.OwnerID]
		if !ok {
			// Join miss: owner missing or no longer professional.
			// Filtered silently, never surfaced.
			continue
		}
		results = append(results, &models.SearchResult{
			Profile: *profile,
			Owner:   owner.Summary(),
		})
	}
	return results, nil
}
