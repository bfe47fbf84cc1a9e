package search

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"placewise/models"
	"placewise/services/intent"
	"placewise/services/session"
	"placewise/utils"

	"go.uber.org/zap"
)

// followUpPhrases flag queries that only make sense relative to prior
// results. Tried in order; any hit classifies the query as a follow-up
// candidate (English + Dutch).
var followUpPhrases = []string{
	"the first", "the second", "the third", "the last", "first one",
	"second one", "third one", "last one", "that one", "this one",
	"tell me more", "more about", "what about", "how about", "is it",
	"is that", "is the",
	"de eerste", "de tweede", "de derde", "de laatste", "die ene",
	"vertel me meer", "meer over", "en die", "is het", "is die", "is deze",
}

// isFollowUpQuery reports whether the query uses follow-up phrasing.
func isFollowUpQuery(query string) bool {
	lower := strings.ToLower(query)
	for _, p := range followUpPhrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// Search runs one conversational search turn: parse, classify, resolve or
// retrieve, score, filter, annotate, persist session state and assemble the
// response envelope. Internal failures never escape: they surface as a
// failed envelope.
func (s *DefaultSearchService) Search(ctx context.Context, req models.SearchRequest) (resp *models.SearchResponse) {
	logger := utils.GetLogger()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("search: recovered panic", zap.Any("panic", r), zap.String("sessionId", req.SessionID))
			resp = failedResponse(&SearchError{Code: CodeInternal, Message: "internal search failure"})
		}
	}()

	if strings.TrimSpace(req.Query) == "" {
		return failedResponse(NewValidationError("query is required"))
	}
	if strings.TrimSpace(req.SessionID) == "" {
		return failedResponse(NewValidationError("sessionId is required"))
	}

	// Load or create the session context.
	sessionCtx, err := s.Sessions.Get(ctx, req.SessionID)
	if err == session.ErrSessionNotFound {
		sessionCtx, err = s.Sessions.Create(ctx, req.SessionID, req.UserID)
	}
	if err != nil {
		logger.Error("search: session store unavailable", zap.Error(err))
		return failedResponse(NewUpstreamError("session store unavailable"))
	}

	// Parse the query and detect intents.
	normalized := s.Parser.Normalize(req.Query)
	interpretation := models.QueryInterpretation{
		Normalized: normalized,
		Entities:   s.Parser.ExtractEntities(req.Query),
		Language:   s.Parser.DetectLanguage(req.Query),
		Location:   s.Parser.ExtractLocation(req.Query),
	}
	userCtx := s.buildUserContext(req, interpretation.Entities)
	interpretation.DietaryIntent = userCtx.DietaryIntent
	interpretation.GeneralIntent = userCtx.GeneralIntent

	previousResults := effectivePreviousResults(req, sessionCtx)
	searchType := s.classify(req, normalized, interpretation, previousResults)

	var (
		results      []models.POIResult
		responseText string
	)

	if searchType == models.SearchTypeContextual {
		resolved := s.Resolver.Resolve(req.Query, previousResults)
		if resolved != nil {
			results, responseText = s.buildContextualResult(resolved, userCtx, interpretation.Language)
		} else {
			// No reference resolved: fall back to a fresh general search.
			searchType = models.SearchTypeGeneral
		}
	}

	if searchType != models.SearchTypeContextual {
		results, err = s.freshSearch(ctx, req, normalized, userCtx)
		if err != nil {
			logger.Error("search: retrieval failed", zap.Error(err), zap.String("query", normalized))
			return failedResponse(NewUpstreamError("retrieval service unavailable"))
		}
		s.annotateFresh(results, req.Query, sessionCtx)
	}

	for i := range results {
		results[i].SearchType = searchType
	}

	// Persist the turn only after the full result set is assembled, so a
	// failed request never leaves the session half-updated.
	updated, err := s.updateSession(ctx, req, sessionCtx, results)
	if err != nil {
		logger.Error("search: session update failed", zap.Error(err), zap.String("sessionId", req.SessionID))
		return failedResponse(NewUpstreamError("session store unavailable"))
	}

	return &models.SearchResponse{
		Success: true,
		Data: &models.SearchData{
			Results:             results,
			SearchType:          searchType,
			QueryInterpretation: interpretation,
			Context:             updated,
			ResponseText:        responseText,
		},
		Metadata: &models.SearchMetadata{
			TotalResults:  len(results),
			SearchTimeMS:  float64(time.Since(start).Microseconds()) / 1000.0,
			EmbeddingType: s.Retriever.EmbeddingType(),
		},
	}
}

// buildUserContext assembles the per-request user context: coordinates,
// injected time and detected intents.
func (s *DefaultSearchService) buildUserContext(req models.SearchRequest, entities []string) *models.UserContext {
	userCtx := &models.UserContext{
		Location: req.Location,
		Entities: entities,
	}
	if req.CurrentTime != "" {
		if t, err := time.Parse(time.RFC3339, req.CurrentTime); err == nil {
			userCtx.CurrentTime = &t
		}
	}
	if dietary := s.Dietary.DetectDietaryIntent(req.Query); dietary.Detected {
		userCtx.DietaryIntent = dietary
	}
	if general := s.General.DetectIntent(req.Query); general.Primary != nil {
		userCtx.GeneralIntent = general
	}
	return userCtx
}

// effectivePreviousResults picks the prior-turn result list the resolver
// works against. Client-supplied context wins over server-held state: it
// reflects exactly what the user currently sees.
func effectivePreviousResults(req models.SearchRequest, sessionCtx *models.SessionContext) []models.POIResult {
	if req.ClientContext != nil && len(req.ClientContext.LastResults) > 0 {
		return req.ClientContext.LastResults
	}
	if req.Context != nil && len(req.Context.PreviousResults) > 0 {
		return req.Context.PreviousResults
	}
	return sessionCtx.LastResults
}

// classify determines the search type: a forced mode wins, then follow-up
// phrasing with available prior results, then query-shape heuristics.
func (s *DefaultSearchService) classify(req models.SearchRequest, normalized string, interp models.QueryInterpretation, previous []models.POIResult) string {
	if req.Options != nil {
		switch req.Options.SearchType {
		case models.SearchTypeGeneral, models.SearchTypeSpecific, models.SearchTypeContextual, models.SearchTypeAuto:
			if req.Options.SearchType != models.SearchTypeAuto {
				return req.Options.SearchType
			}
		}
	}
	if isFollowUpQuery(req.Query) && len(previous) > 0 {
		return models.SearchTypeContextual
	}
	if len(interp.Entities) <= 1 && interp.Location == "" {
		return models.SearchTypeGeneral
	}
	if interp.Location != "" || (interp.DietaryIntent != nil && interp.DietaryIntent.Detected) {
		return models.SearchTypeSpecific
	}
	return models.SearchTypeAuto
}

// buildContextualResult copies the resolved POI into a single-result set with
// a templated text answer reflecting its current open/closed status.
func (s *DefaultSearchService) buildContextualResult(resolved *ResolvedReference, userCtx *models.UserContext, language string) ([]models.POIResult, string) {
	result := *resolved.POI
	result.DisplayAsCard = true
	result.DisplayReason = models.DisplayReasonRequested
	result.PreviouslyDisplayed = true
	result.ResponseText = OpeningStatusText(&result, userCtx.Now(), language)
	return []models.POIResult{result}, result.ResponseText
}

// freshSearch retrieves candidates upstream, scores them and returns the
// top MaxResults in descending smart-score order. The sort is stable: ties
// keep the upstream similarity order. When the query asks about opening
// hours, places known to be closed right now are dropped before truncation;
// places with unknown hours stay in.
func (s *DefaultSearchService) freshSearch(ctx context.Context, req models.SearchRequest, normalized string, userCtx *models.UserContext) ([]models.POIResult, error) {
	maxResults := s.MaxResults
	if req.Options != nil && req.Options.MaxResults > 0 {
		maxResults = req.Options.MaxResults
	}

	// Retrieve a wider slate than requested so scoring can reorder.
	candidates, err := s.Retriever.Retrieve(ctx, normalized, s.Collection, maxResults*3)
	if err != nil {
		return nil, fmt.Errorf("retrieve candidates: %w", err)
	}

	results := s.Scoring.ScoreCandidates(candidates, userCtx, nil)
	if userCtx.GeneralIntent != nil && userCtx.GeneralIntent.Primary != nil &&
		userCtx.GeneralIntent.Primary.Label == intent.LabelOpeningHours {
		results = FilterByOpeningStatus(results, userCtx.Now())
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].SmartScore > results[j].SmartScore
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

// annotateFresh applies display decisions and anti-repetition flags. A POI
// shown in any earlier turn is marked previouslyDisplayed; its card is only
// suppressed when the immediately preceding turn already showed it and this
// query continues that thread without naming the POI again. Repeats outside
// the active follow-up chain stay displayable.
func (s *DefaultSearchService) annotateFresh(results []models.POIResult, query string, sessionCtx *models.SessionContext) {
	lowerQuery := strings.ToLower(query)
	continuation := isFollowUpQuery(query)

	lastShown := make(map[string]bool, len(sessionCtx.LastDisplayedPOIs))
	for _, id := range sessionCtx.LastDisplayedPOIs {
		lastShown[id] = true
	}

	for i := range results {
		r := &results[i]
		r.PreviouslyDisplayed = sessionCtx.HasDisplayed(r.ID)
		r.DisplayAsCard = true
		r.DisplayReason = models.DisplayReasonSearchResult

		explicitMention := r.Title != "" && strings.Contains(lowerQuery, strings.ToLower(r.Title))
		if continuation && lastShown[r.ID] && !explicitMention {
			r.DisplayAsCard = false
			r.DisplayReason = models.DisplayReasonRelevant
		} else if continuation {
			r.DisplayReason = models.DisplayReasonAlternative
		}
	}
}

// updateSession applies the whole turn as one read-modify-write.
func (s *DefaultSearchService) updateSession(ctx context.Context, req models.SearchRequest, sessionCtx *models.SessionContext, results []models.POIResult) (*models.SessionContext, error) {
	resultIDs := make([]string, 0, len(results))
	shownIDs := make([]string, 0, len(results))
	for _, r := range results {
		resultIDs = append(resultIDs, r.ID)
		if r.DisplayAsCard {
			shownIDs = append(shownIDs, r.ID)
		}
	}
	now := time.Now().UTC()

	return s.Sessions.Update(ctx, req.SessionID, func(sc *models.SessionContext) {
		if sc.UserID == "" {
			sc.UserID = req.UserID
		}
		sc.ConversationHistory = append(sc.ConversationHistory, models.ConversationTurn{
			Query:     req.Query,
			ResultIDs: resultIDs,
			Timestamp: now,
		})
		sc.LastQuery = req.Query
		sc.LastResults = results
		for _, id := range shownIDs {
			if !sc.HasDisplayed(id) {
				sc.DisplayedPOIs = append(sc.DisplayedPOIs, id)
			}
		}
		sc.LastDisplayedPOIs = shownIDs
		sc.ConversationTurn++
	})
}

// ResetSession drops all conversational state for a session.
func (s *DefaultSearchService) ResetSession(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return NewValidationError("sessionId is required")
	}
	return s.Sessions.Clear(ctx, sessionID)
}

// GetServiceStatus probes upstream collaborators. Reporting only.
func (s *DefaultSearchService) GetServiceStatus(ctx context.Context) models.ServiceStatus {
	status := models.ServiceStatus{
		Database:  s.Retriever.Ping(ctx) == nil,
		Cache:     s.Sessions.Ping(ctx) == nil,
		Embedding: s.Retriever.EmbeddingType(),
	}
	status.Ready = status.Database && status.Cache
	return status
}

func failedResponse(err error) *models.SearchResponse {
	payload := &models.SearchErrorPayload{Code: CodeInternal, Message: err.Error()}
	if se, ok := err.(*SearchError); ok {
		payload.Code = se.Code
		payload.Message = se.Message
	}
	return &models.SearchResponse{Success: false, Error: payload}
}
