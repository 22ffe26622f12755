// Package handler contains the HTTP request handlers of the API server.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"kindred/internal/delivery/http/response"
	"kindred/internal/domain/entity"
	"kindred/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// MatchHandlerParams holds dependencies for MatchHandler, injected by Fx.
type MatchHandlerParams struct {
	fx.In

	MatchUC usecase.MatchUsecase
	Logger  *slog.Logger
}

// MatchHandler holds dependencies for match-related handlers
type MatchHandler struct {
	matchUC usecase.MatchUsecase
	logger  *slog.Logger
}

// NewMatchHandler is the constructor for MatchHandler
func NewMatchHandler(params MatchHandlerParams) *MatchHandler {
	return &MatchHandler{
		matchUC: params.MatchUC,
		logger:  params.Logger,
	}
}

// ListMatchesRequest represents the query parameters for listing matches
type ListMatchesRequest struct {
	PageSize      int      `query:"page_size" validate:"omitempty,min=1,max=100"`
	PageToken     string   `query:"page_token"`
	AgeMin        *int     `query:"age_min" validate:"omitempty,min=18,max=120"`
	AgeMax        *int     `query:"age_max" validate:"omitempty,min=18,max=120"`
	Region        *string  `query:"region"`
	MaxDistanceKm *float64 `query:"max_distance_km" validate:"omitempty,gt=0"`
	Religion      *string  `query:"religion"`
	Lifestyle     *string  `query:"lifestyle"`
}

// MatchResponse is the wire representation of one match
type MatchResponse struct {
	CandidateID        string `json:"candidate_id"`
	DisplayName        string `json:"display_name,omitempty"`
	DomainScore        int    `json:"domain_score"`
	ArchetypeScore     int    `json:"archetype_score"`
	ModalityScore      int    `json:"modality_score"`
	CompatibilityScore int    `json:"compatibility_score"`
	Narrative          string `json:"narrative"`
	IsNew              bool   `json:"is_new"`
	TaxonomyVersion    int64  `json:"taxonomy_version"`
	CreatedAt          string `json:"created_at"`
}

// ListMatchesResponse is the wire representation of one ranked page
type ListMatchesResponse struct {
	Matches         []MatchResponse `json:"matches"`
	NextPageToken   string          `json:"next_page_token,omitempty"`
	TaxonomyVersion int64           `json:"taxonomy_version"`
}

// ListMatches handles GET /matches: one ranked page of compatible candidates
func (h *MatchHandler) ListMatches(c echo.Context) error {
	viewerID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	var req ListMatchesRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid match listing input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := &usecase.RankInput{
		Preferences: &entity.Preferences{
			AgeMin:        req.AgeMin,
			AgeMax:        req.AgeMax,
			Region:        req.Region,
			MaxDistanceKm: req.MaxDistanceKm,
			Religion:      req.Religion,
			Lifestyle:     req.Lifestyle,
		},
		PageSize:  req.PageSize,
		PageToken: req.PageToken,
	}

	page, err := h.matchUC.Rank(c.Request().Context(), viewerID, input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toListMatchesResponse(page), "Matches retrieved successfully")
}

// GetMatch handles GET /matches/:candidate_id: one pair's compatibility result
func (h *MatchHandler) GetMatch(c echo.Context) error {
	viewerID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	candidateID, err := uuid.Parse(c.Param("candidate_id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid candidate ID")
	}

	match, err := h.matchUC.Score(c.Request().Context(), viewerID, candidateID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toMatchResponse(match, ""), "Match retrieved successfully")
}

// DismissMatch handles POST /matches/:candidate_id/dismiss
func (h *MatchHandler) DismissMatch(c echo.Context) error {
	viewerID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	candidateID, err := uuid.Parse(c.Param("candidate_id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid candidate ID")
	}

	if err := h.matchUC.Dismiss(c.Request().Context(), viewerID, candidateID); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Candidate dismissed"}, "Candidate dismissed successfully")
}

// InvalidateMatches handles POST /matches/invalidate: the profile service
// calls this after a purpose profile edit or account deletion.
func (h *MatchHandler) InvalidateMatches(c echo.Context) error {
	userID, err := h.getUserID(c)
	if err != nil {
		return err
	}

	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid invalidation input")
	}

	if err := h.matchUC.Invalidate(c.Request().Context(), userID, req.Reason); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusAccepted, map[string]string{"message": "Invalidation published"}, "Invalidation published successfully")
}

// getUserID extracts the user ID from the context
func (h *MatchHandler) getUserID(c echo.Context) (uuid.UUID, error) {
	userIDVal := c.Get("userID")
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid user ID in request")
	}

	return userID, nil
}

func toListMatchesResponse(page *usecase.RankPage) *ListMatchesResponse {
	matches := make([]MatchResponse, 0, len(page.Items))
	for _, item := range page.Items {
		matches = append(matches, toMatchResponse(item.Match, item.Candidate.DisplayName))
	}

	return &ListMatchesResponse{
		Matches:         matches,
		NextPageToken:   page.NextPageToken,
		TaxonomyVersion: page.TaxonomyVersion,
	}
}

func toMatchResponse(match *entity.Match, displayName string) MatchResponse {
	return MatchResponse{
		CandidateID:        match.CandidateID.String(),
		DisplayName:        displayName,
		DomainScore:        match.DomainScore,
		ArchetypeScore:     match.ArchetypeScore,
		ModalityScore:      match.ModalityScore,
		CompatibilityScore: match.CompatibilityScore,
		Narrative:          match.Narrative,
		IsNew:              match.IsNew,
		TaxonomyVersion:    match.TaxonomyVersion,
		CreatedAt:          match.CreatedAt.Format(time.RFC3339),
	}
}
