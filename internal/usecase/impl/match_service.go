// Package impl contains the concrete application services behind the
// usecase interfaces.
package impl

import (
	"context"
	"log/slog"
	"time"

	"kindred/config"
	deliverycontext "kindred/internal/delivery/context"
	"kindred/internal/domain/constants"
	"kindred/internal/domain/entity"
	domainerrors "kindred/internal/domain/errors"
	"kindred/internal/domain/matching"
	"kindred/internal/domain/repository"
	"kindred/internal/domain/service"
	"kindred/internal/errors"
	"kindred/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

const (
	defaultScoreWorkers       = 8
	defaultCandidatePoolLimit = 500
	defaultPageSize           = 20
	defaultMaxPageSize        = 100
)

// MatchServiceParams holds the collaborators of the match service, injected by Fx.
type MatchServiceParams struct {
	fx.In

	Config        *config.Config
	Logger        *slog.Logger
	ProfileRepo   repository.ProfileRepository
	DismissalRepo repository.DismissalRepository
	SurfacedRepo  repository.SurfacedPairRepository
	DeviceRepo    repository.DeviceRepository
	TxManager     repository.TransactionManager
	Cache         repository.MatchCache
	Taxonomy      service.TaxonomySource
	Publisher     service.EventPublisher
	Notifier      service.NotificationService `optional:"true"`
}

type matchService struct {
	cfg           *config.Config
	logger        *slog.Logger
	profileRepo   repository.ProfileRepository
	dismissalRepo repository.DismissalRepository
	surfacedRepo  repository.SurfacedPairRepository
	deviceRepo    repository.DeviceRepository
	txManager     repository.TransactionManager
	cache         repository.MatchCache
	taxonomy      service.TaxonomySource
	publisher     service.EventPublisher
	notifier      service.NotificationService
}

// NewMatchService creates the match service instance.
func NewMatchService(params MatchServiceParams) usecase.MatchUsecase {
	return &matchService{
		cfg:           params.Config,
		logger:        params.Logger,
		profileRepo:   params.ProfileRepo,
		dismissalRepo: params.DismissalRepo,
		surfacedRepo:  params.SurfacedRepo,
		deviceRepo:    params.DeviceRepo,
		txManager:     params.TxManager,
		cache:         params.Cache,
		taxonomy:      params.Taxonomy,
		publisher:     params.Publisher,
		notifier:      params.Notifier,
	}
}

// Score computes the compatibility result between the viewer and one candidate.
// Serving a single lookup marks the pair as surfaced, so a repeat lookup is no
// longer new.
func (s *matchService) Score(ctx context.Context, viewerID, candidateID uuid.UUID) (*entity.Match, error) {
	if viewerID == candidateID {
		return nil, domainerrors.ErrSelfMatch
	}

	viewer, err := s.loadViewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	candidate, err := s.profileRepo.FindByID(ctx, candidateID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, domainerrors.ErrProfileNotFound
		}

		return nil, err
	}
	if !candidate.Eligible() {
		return nil, domainerrors.ErrCandidateNotEligible
	}

	snap := s.taxonomy.Current()

	match, err := s.scorePair(ctx, snap, viewer, candidate)
	if err != nil {
		return nil, s.mapScoringError(err)
	}

	oriented := match.ForViewer(viewerID)

	seen, err := s.surfacedRepo.SeenSet(ctx, viewerID, []uuid.UUID{candidateID})
	if err != nil {
		return nil, err
	}
	_, alreadySeen := seen[candidateID]
	oriented.IsNew = !alreadySeen
	if !alreadySeen {
		if err := s.surfacedRepo.MarkSeen(ctx, viewerID, []uuid.UUID{candidateID}); err != nil {
			return nil, err
		}
	}

	return oriented, nil
}

// Rank returns one page of scored, ranked, filtered candidates for the viewer.
func (s *matchService) Rank(ctx context.Context, viewerID uuid.UUID, input *usecase.RankInput) (*usecase.RankPage, error) {
	if input == nil {
		input = &usecase.RankInput{}
	}

	offset, err := matching.DecodePageToken(input.PageToken)
	if err != nil {
		return nil, domainerrors.ErrInvalidPageToken.WithDetails(err.Error())
	}
	pageSize := s.clampPageSize(input.PageSize)

	viewer, err := s.loadViewer(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	excluded, err := s.exclusionSet(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	pool, err := s.profileRepo.FindCandidates(ctx, repository.CandidateQuery{
		ExcludeUserID: viewerID,
		Region:        regionPreFilter(input.Preferences),
		Limit:         s.candidatePoolLimit(),
	})
	if err != nil {
		return nil, err
	}

	eligible := matching.FilterCandidates(matching.FilterInput{
		Viewer:      viewer,
		Preferences: input.Preferences,
		Pool:        pool,
		Excluded:    excluded,
		Now:         time.Now(),
	})

	// The whole batch is scored against one pinned snapshot; a reload mid
	// request never mixes versions inside a page.
	snap := s.taxonomy.Current()

	scored := s.scorePool(ctx, snap, viewer, eligible)

	matching.Rank(scored)
	page, nextToken := matching.Paginate(scored, offset, pageSize)

	items, err := s.finishPage(ctx, viewerID, page)
	if err != nil {
		return nil, err
	}

	return &usecase.RankPage{
		Items:           items,
		NextPageToken:   nextToken,
		TaxonomyVersion: snap.Version(),
	}, nil
}

// Dismiss permanently hides a candidate from the viewer's future pages.
// The dismissal and the seen marker commit together: a dismissed candidate
// must never reappear, not even as "new".
func (s *matchService) Dismiss(ctx context.Context, viewerID, candidateID uuid.UUID) error {
	if viewerID == candidateID {
		return domainerrors.ErrSelfMatch
	}

	if _, err := s.profileRepo.FindByID(ctx, candidateID); err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return domainerrors.ErrProfileNotFound
		}

		return err
	}

	err := s.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.DismissalRepo().Dismiss(ctx, viewerID, candidateID); err != nil {
			return err
		}

		return f.SurfacedRepo().MarkSeen(ctx, viewerID, []uuid.UUID{candidateID})
	})
	if err != nil {
		// Dismissals are idempotent from the client's point of view.
		if errors.Is(err, repository.ErrAlreadyDismissed) {
			return nil
		}

		return err
	}

	return nil
}

// Invalidate drops all cached results involving the user and broadcasts the
// invalidation so peer instances drop theirs too.
func (s *matchService) Invalidate(ctx context.Context, userID uuid.UUID, reason string) error {
	s.cache.Invalidate(userID)

	if reason == "" {
		reason = constants.InvalidationReasonPurposeChanged
	}

	event := &service.InvalidationEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		UserID:    userID.String(),
		Reason:    reason,
	}
	if err := s.publisher.PublishInvalidation(ctx, event); err != nil {
		return errors.Wrap(err, "failed to publish invalidation event")
	}

	return nil
}

// ApplyInvalidation drops cached results locally without re-publishing, so a
// consumed broadcast never loops back into the topic.
func (s *matchService) ApplyInvalidation(userID uuid.UUID) {
	s.cache.Invalidate(userID)
}

// loadViewer fetches the viewer and applies the eligibility and completeness
// gates every operation shares.
func (s *matchService) loadViewer(ctx context.Context, viewerID uuid.UUID) (*entity.Profile, error) {
	viewer, err := s.profileRepo.FindByID(ctx, viewerID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, domainerrors.ErrProfileNotFound
		}

		return nil, err
	}
	if !viewer.Eligible() {
		return nil, domainerrors.ErrProfileInactive
	}
	if !viewer.Purpose.Complete() {
		return nil, domainerrors.ErrProfileIncomplete
	}

	return viewer, nil
}

// exclusionSet assembles the candidate IDs that must never be surfaced.
func (s *matchService) exclusionSet(ctx context.Context, viewerID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	dismissed, err := s.dismissalRepo.DismissedIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	excluded := make(map[uuid.UUID]struct{}, len(dismissed))
	for _, id := range dismissed {
		excluded[id] = struct{}{}
	}

	return excluded, nil
}

// scorePool fans the eligible candidates out over a bounded worker group.
// A failed candidate is logged and dropped; the rest of the batch proceeds.
// Once the context is cancelled no new pair work is issued.
func (s *matchService) scorePool(ctx context.Context, snap *matching.Snapshot, viewer *entity.Profile, eligible []*entity.Profile) []matching.Scored {
	results := make([]*entity.Match, len(eligible))

	group := errgroup.Group{}
	group.SetLimit(s.scoreWorkers())

	for i, candidate := range eligible {
		if ctx.Err() != nil {
			break
		}

		group.Go(func() error {
			match, err := s.scorePair(ctx, snap, viewer, candidate)
			if err != nil {
				s.logger.Warn("Skipping candidate after scoring failure",
					slog.String("viewer_id", viewer.UserID.String()),
					slog.String("candidate_id", candidate.UserID.String()),
					slog.Any("error", err),
				)

				return nil
			}
			results[i] = match

			return nil
		})
	}
	_ = group.Wait()

	scored := make([]matching.Scored, 0, len(eligible))
	for i, match := range results {
		if match == nil {
			continue
		}
		scored = append(scored, matching.Scored{
			Match:   match.ForViewer(viewer.UserID),
			Profile: eligible[i],
		})
	}

	return scored
}

// scorePair resolves one pair through the cache. The cached entry is stored
// in canonical pair orientation; callers reorient with ForViewer.
func (s *matchService) scorePair(ctx context.Context, snap *matching.Snapshot, viewer, candidate *entity.Profile) (*entity.Match, error) {
	pairKey := entity.NewPairKey(viewer.UserID, candidate.UserID)

	return s.cache.GetOrCompute(ctx, pairKey, snap.Version(), func(ctx context.Context) (*entity.Match, error) {
		return s.computeMatch(snap, pairKey, viewer, candidate)
	})
}

// computeMatch runs the pure scoring pipeline for one pair.
func (s *matchService) computeMatch(snap *matching.Snapshot, pairKey entity.PairKey, viewer, candidate *entity.Profile) (*entity.Match, error) {
	breakdown, err := matching.ScorePair(snap, viewer.Purpose, candidate.Purpose)
	if err != nil {
		return nil, err
	}

	match := &entity.Match{
		ViewerID:           pairKey.Lo,
		CandidateID:        pairKey.Hi,
		DomainScore:        breakdown.Domain.Score,
		ArchetypeScore:     breakdown.Archetype.Score,
		ModalityScore:      breakdown.Modality.Score,
		CompatibilityScore: matching.CompatibilityScore(snap, breakdown),
		Narrative:          matching.Narrative(breakdown, s.lowAlignmentThreshold()),
		TaxonomyVersion:    snap.Version(),
		CreatedAt:          time.Now(),
	}

	return match, nil
}

// finishPage derives IsNew from the surfaced-pairs store, marks the freshly
// surfaced candidates, and kicks off best-effort notifications.
func (s *matchService) finishPage(ctx context.Context, viewerID uuid.UUID, page []matching.Scored) ([]*usecase.RankedMatch, error) {
	candidateIDs := make([]uuid.UUID, 0, len(page))
	for _, item := range page {
		candidateIDs = append(candidateIDs, item.Profile.UserID)
	}

	seen, err := s.surfacedRepo.SeenSet(ctx, viewerID, candidateIDs)
	if err != nil {
		return nil, err
	}

	items := make([]*usecase.RankedMatch, 0, len(page))
	fresh := make([]uuid.UUID, 0, len(page))
	for _, item := range page {
		_, alreadySeen := seen[item.Profile.UserID]
		item.Match.IsNew = !alreadySeen
		if !alreadySeen {
			fresh = append(fresh, item.Profile.UserID)
		}

		items = append(items, &usecase.RankedMatch{
			Match:     item.Match,
			Candidate: item.Profile,
		})
	}

	if len(fresh) > 0 {
		if err := s.surfacedRepo.MarkSeen(ctx, viewerID, fresh); err != nil {
			return nil, err
		}

		s.notifyNewMatches(ctx, items)
	}

	return items, nil
}

// notifyNewMatches pushes a "new match" notification to the candidates of
// fresh high-score pairs. Strictly best-effort: failures are logged and the
// page is served regardless.
func (s *matchService) notifyNewMatches(ctx context.Context, items []*usecase.RankedMatch) {
	if s.notifier == nil {
		return
	}
	threshold := s.notifyScoreThreshold()
	if threshold <= 0 {
		return
	}

	// Detached from the request so a client disconnect does not cancel sends.
	notifyCtx := context.WithoutCancel(ctx)

	go func() {
		for _, item := range items {
			if !item.Match.IsNew || item.Match.CompatibilityScore < threshold {
				continue
			}

			s.notifyCandidate(notifyCtx, item)
		}
	}()
}

func (s *matchService) notifyCandidate(ctx context.Context, item *usecase.RankedMatch) {
	devices, err := s.deviceRepo.FindActiveDevicesByUser(ctx, item.Candidate.UserID)
	if err != nil {
		s.logger.Warn("Failed to load devices for match notification",
			slog.String("candidate_id", item.Candidate.UserID.String()),
			slog.Any("error", err),
		)

		return
	}
	if len(devices) == 0 {
		return
	}

	tokens := make([]string, 0, len(devices))
	for _, device := range devices {
		tokens = append(tokens, device.FCMToken)
	}

	data := map[string]string{
		"type":     "new_match",
		"match_id": item.Match.ViewerID.String(),
	}
	_, _, invalidTokens, err := s.notifier.SendBatchNotification(ctx, tokens,
		"You have a new match", "Someone with a compatible purpose just appeared.", data)
	if err != nil {
		s.logger.Warn("Failed to send match notification",
			slog.String("candidate_id", item.Candidate.UserID.String()),
			slog.Any("error", err),
		)

		return
	}

	// Deactivate tokens the push provider reported as dead.
	for _, device := range devices {
		for _, invalid := range invalidTokens {
			if device.FCMToken != invalid {
				continue
			}
			if err := s.deviceRepo.DeactivateDevice(ctx, device.ID); err != nil {
				s.logger.Warn("Failed to deactivate invalid device token",
					slog.String("device_id", device.ID.String()),
					slog.Any("error", err),
				)
			}
		}
	}
}

// mapScoringError converts matching sentinels into application errors.
func (s *matchService) mapScoringError(err error) error {
	switch {
	case errors.Is(err, matching.ErrIncompleteScoreInput):
		return domainerrors.ErrProfileIncomplete
	case errors.Is(err, matching.ErrUnknownTaxonomyValue):
		return domainerrors.ErrUnknownTaxonomyValue.WithDetails(err.Error())
	default:
		return err
	}
}

func (s *matchService) clampPageSize(requested int) int {
	def, maxSize := defaultPageSize, defaultMaxPageSize
	if s.cfg.Matching != nil {
		if s.cfg.Matching.DefaultPageSize > 0 {
			def = s.cfg.Matching.DefaultPageSize
		}
		if s.cfg.Matching.MaxPageSize > 0 {
			maxSize = s.cfg.Matching.MaxPageSize
		}
	}

	if requested <= 0 {
		return def
	}
	if requested > maxSize {
		return maxSize
	}

	return requested
}

func (s *matchService) scoreWorkers() int {
	if s.cfg.Matching != nil && s.cfg.Matching.ScoreWorkers > 0 {
		return s.cfg.Matching.ScoreWorkers
	}

	return defaultScoreWorkers
}

func (s *matchService) candidatePoolLimit() int {
	if s.cfg.Matching != nil && s.cfg.Matching.CandidatePoolLimit > 0 {
		return s.cfg.Matching.CandidatePoolLimit
	}

	return defaultCandidatePoolLimit
}

func (s *matchService) lowAlignmentThreshold() int {
	if s.cfg.Matching != nil && s.cfg.Matching.LowAlignmentThreshold > 0 {
		return s.cfg.Matching.LowAlignmentThreshold
	}

	return matching.DefaultLowAlignmentThreshold
}

func (s *matchService) notifyScoreThreshold() int {
	if s.cfg.Matching != nil {
		return s.cfg.Matching.NotifyScoreThreshold
	}

	return 0
}

// regionPreFilter pushes the region preference down to the SQL query when the
// viewer set one; everything else filters in memory.
func regionPreFilter(prefs *entity.Preferences) *string {
	if prefs == nil {
		return nil
	}

	return prefs.Region
}
