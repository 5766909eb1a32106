package scanner

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/phambaophuc/guru-scan/internal/models"
)

// ImageHost uploads a staged file and returns its public URL.
type ImageHost interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// Searcher resolves a hosted image URL into normalized matches. It never
// fails; the bool reports whether the demo fallback was served.
type Searcher interface {
	Search(ctx context.Context, imageURL string) ([]models.MatchResult, bool)
}

// History persists completed scans. Failures here are best-effort from the
// pipeline's point of view.
type History interface {
	RetainImageCopy(srcPath string, scanID int64, originalFilename string) (string, error)
	Persist(record *models.ScanRecord) error
}

// ResultCache is an optional cache of search results keyed by hosted URL.
type ResultCache interface {
	Get(ctx context.Context, hostedURL string) ([]models.MatchResult, bool)
	Set(ctx context.Context, hostedURL string, results []models.MatchResult)
}

// EventPublisher is an optional announcer of completed scans.
type EventPublisher interface {
	PublishScanCompleted(ctx context.Context, record *models.ScanRecord) error
}

// Outcome separates the primary pipeline result from auxiliary-operation
// failures, which are recorded but never propagated.
type Outcome struct {
	Record       *models.ScanRecord
	Results      []models.MatchResult
	TotalMatches int
	HostedURL    string
	DemoData     bool
	CacheHit     bool

	PersistErr error
	CleanupErr error
}

// Service sequences one scan end to end: host upload, visual search,
// history persistence, staged-file cleanup.
type Service struct {
	host    ImageHost
	search  Searcher
	history History
	cache   ResultCache    // may be nil
	events  EventPublisher // may be nil
	logger  *zap.Logger
	ids     idGenerator
}

func NewService(
	host ImageHost,
	search Searcher,
	history History,
	cache ResultCache,
	events EventPublisher,
	logger *zap.Logger,
) *Service {
	return &Service{
		host:    host,
		search:  search,
		history: history,
		cache:   cache,
		events:  events,
		logger:  logger,
	}
}

// Scan runs the pipeline for a staged upload. The staged file is deleted on
// every path, including failure. The returned error is non-nil only when the
// host upload fails; that is the single failure a client ever sees.
func (s *Service) Scan(ctx context.Context, stagedPath, originalFilename string) (*Outcome, error) {
	outcome := &Outcome{}
	defer s.cleanup(stagedPath, outcome)

	hostedURL, err := s.host.Upload(ctx, stagedPath)
	if err != nil {
		return outcome, fmt.Errorf("image upload failed: %w", err)
	}
	outcome.HostedURL = hostedURL

	outcome.Results, outcome.DemoData, outcome.CacheHit = s.resolveMatches(ctx, hostedURL)
	outcome.TotalMatches = len(outcome.Results)

	record := models.NewScanRecord(s.ids.Next(), hostedURL, outcome.Results)
	outcome.Record = record

	if err := s.persist(record, stagedPath, originalFilename); err != nil {
		outcome.PersistErr = err
		s.logger.Error("Failed to persist scan history",
			zap.Int64("scan_id", record.ID),
			zap.Error(err))
	}

	s.announce(ctx, record)

	return outcome, nil
}

func (s *Service) resolveMatches(ctx context.Context, hostedURL string) (results []models.MatchResult, demo, cacheHit bool) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, hostedURL); ok {
			s.logger.Info("Search cache hit", zap.String("hosted_url", hostedURL))
			return cached, false, true
		}
	}

	results, demo = s.search.Search(ctx, hostedURL)

	// Demo results stand in for an outage; caching them would poison later
	// scans of the same image.
	if s.cache != nil && !demo {
		s.cache.Set(ctx, hostedURL, results)
	}

	return results, demo, false
}

func (s *Service) persist(record *models.ScanRecord, stagedPath, originalFilename string) error {
	copyPath, err := s.history.RetainImageCopy(stagedPath, record.ID, originalFilename)
	if err != nil {
		return err
	}
	record.OriginalImagePath = copyPath

	return s.history.Persist(record)
}

func (s *Service) announce(ctx context.Context, record *models.ScanRecord) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishScanCompleted(ctx, record); err != nil {
		s.logger.Warn("Failed to publish scan event",
			zap.Int64("scan_id", record.ID),
			zap.Error(err))
	}
}

func (s *Service) cleanup(stagedPath string, outcome *Outcome) {
	if err := os.Remove(stagedPath); err != nil && !os.IsNotExist(err) {
		outcome.CleanupErr = err
		s.logger.Warn("Failed to remove staged file",
			zap.String("path", stagedPath),
			zap.Error(err))
	}
}
