// Package pipeline runs a batch of resumes through extraction and scoring and ranks the result.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-screener/internal/extraction"
	"github.com/spigell/resume-screener/internal/logger"
	"github.com/spigell/resume-screener/internal/ranking"
	"github.com/spigell/resume-screener/internal/scoring"
	"github.com/spigell/resume-screener/internal/screening"
	"github.com/spigell/resume-screener/internal/textextract"
)

// Options configure a Screener.
type Options struct {
	// Concurrency above 1 processes resumes in parallel. Ordering is unaffected.
	Concurrency int
}

// Screener turns documents into ranked candidates for one job.
type Screener struct {
	job         *screening.JobRequirement
	extractor   *extraction.Extractor
	calculator  *scoring.Calculator
	logger      *zap.Logger
	concurrency int
}

// Stats describes the outcome of a batch.
type Stats struct {
	Total    int
	Ok       int
	Degraded int
	Failed   int
}

// Batch is a fully screened and ranked run.
type Batch struct {
	ID         string
	Job        *screening.JobRequirement
	Candidates []*screening.Candidate
	Stats      Stats
}

func New(job *screening.JobRequirement, extractor *extraction.Extractor, log *zap.Logger, opts Options) *Screener {
	if log == nil {
		log = zap.NewNop()
	}

	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	return &Screener{
		job:         job,
		extractor:   extractor,
		calculator:  scoring.NewCalculator(job),
		logger:      log,
		concurrency: concurrency,
	}
}

// Screen processes every document and returns them ranked. A bad resume never stops the batch;
// an error is returned only when ctx is done before the batch completes.
func (s *Screener) Screen(ctx context.Context, docs []textextract.Document) (*Batch, error) {
	batchID := uuid.NewString()
	log := logger.WithFields(s.logger, zap.String("batch_id", batchID))

	candidates := make([]*screening.Candidate, len(docs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for idx, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			candidates[idx] = s.Process(doc, log)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("screening batch: %w", err)
	}

	batch := &Batch{
		ID:         batchID,
		Job:        s.job,
		Candidates: ranking.Rank(candidates),
		Stats:      collectStats(candidates),
	}

	log.Info("batch screened",
		zap.String("job", s.job.Title()),
		zap.Int("total", batch.Stats.Total),
		zap.Int("ok", batch.Stats.Ok),
		zap.Int("degraded", batch.Stats.Degraded),
		zap.Int("failed", batch.Stats.Failed),
	)

	return batch, nil
}

// Process builds and scores the candidate for a single document. Any panic raised while doing so
// is contained and turned into a failed candidate.
func (s *Screener) Process(doc textextract.Document, log *zap.Logger) (candidate *screening.Candidate) {
	if log == nil {
		log = s.logger
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("resume processing panicked",
				zap.String("file", doc.Filename),
				zap.Any("panic", r),
			)
			candidate = screening.NewFailedCandidate(doc.Filename)
			s.calculator.Score(candidate)
		}
	}()

	candidate = s.build(doc, log)
	s.calculator.Score(candidate)

	log.Debug("resume screened", logger.CandidateFields(candidate)...)
	return candidate
}

func (s *Screener) build(doc textextract.Document, log *zap.Logger) *screening.Candidate {
	if !doc.Recognized || strings.TrimSpace(doc.Text) == "" {
		reason := screening.ErrUnsupportedFormat
		fields := []zap.Field{zap.String("file", doc.Filename), zap.NamedError("reason", reason)}
		if doc.Err != nil {
			fields = append(fields, zap.Error(doc.Err))
		}
		log.Warn("resume could not be parsed", fields...)
		return screening.NewFailedCandidate(doc.Filename)
	}

	result := s.extractor.Extract(doc.Text, s.job.RequiredSkills())

	candidate := &screening.Candidate{
		SourceName:      doc.Filename,
		Name:            result.Fields.Name,
		Email:           result.Fields.Email,
		Phone:           result.Fields.Phone,
		YearsExperience: result.Fields.YearsExperience,
		ParseStatus:     screening.ParseOk,
		MissingFields:   result.Missing,
	}
	candidate.SetSkills(result.Fields.Skills)

	if result.Degraded() {
		candidate.ParseStatus = screening.ParseDegraded
		log.Info("resume parsed partially",
			zap.String("file", doc.Filename),
			zap.Strings("missing_fields", result.Missing),
			zap.NamedError("reason", screening.ErrExtractionDegraded),
		)
	}

	return candidate
}

func collectStats(candidates []*screening.Candidate) Stats {
	stats := Stats{Total: len(candidates)}
	for _, c := range candidates {
		switch c.ParseStatus {
		case screening.ParseOk:
			stats.Ok++
		case screening.ParseDegraded:
			stats.Degraded++
		case screening.ParseFailed:
			stats.Failed++
		}
	}
	return stats
}
