package agents

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-forge/internal/config"
	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/types"
)

// defaultRetryBackoff is the pause before retrying a transient
// provider failure.
const defaultRetryBackoff = 2 * time.Second

// Result is the outcome of one pipeline invocation.
type Result struct {
	Content      *types.EnhancedContent
	Match        *types.MatchAnalysis
	QualityScore float64
	UsedLegacy   bool
	Iterations   int
}

// Orchestrator sequences the pipeline stages for one (Profile,
// JobPosting) pair. It owns the retry policy, the bounded reviewer
// revision loop and the legacy fallback. Whether the staged pipeline or
// the legacy path is used is a constructor parameter, not process
// state, so it can vary per request.
type Orchestrator struct {
	profiles *ProfileAnalyzer
	jobs     *JobAnalyzer
	matcher  *MatchMaker
	writer   *ContentWriter
	reviewer *Reviewer
	legacy   *LegacyGenerator

	cfg          config.PipelineConfig
	useLegacy    bool
	retryBackoff time.Duration
}

// NewOrchestrator builds an orchestrator and its stages around one
// model client. When useLegacy is true the staged pipeline is skipped
// entirely.
func NewOrchestrator(client llm.Client, cfg config.PipelineConfig, useLegacy bool) *Orchestrator {
	return &Orchestrator{
		profiles:     NewProfileAnalyzer(client, cfg),
		jobs:         NewJobAnalyzer(client),
		matcher:      NewMatchMaker(cfg),
		writer:       NewContentWriter(client),
		reviewer:     NewReviewer(client, cfg),
		legacy:       NewLegacyGenerator(client),
		cfg:          cfg,
		useLegacy:    useLegacy,
		retryBackoff: defaultRetryBackoff,
	}
}

// Generate produces resume content for the profile targeting the job.
// It never returns a partial result: the caller gets either a complete
// Result or an error, so nothing half-built reaches persistence.
func (o *Orchestrator) Generate(ctx context.Context, profile *types.Profile, job *types.JobPosting) (*Result, error) {
	if o.useLegacy {
		return o.runLegacy(ctx, profile, job, nil)
	}

	if profile.IsEmpty() {
		log.Printf("[orchestrator] profile has no experiences or skills, using legacy path")
		return o.runLegacy(ctx, profile, job, emptyMatch())
	}

	var profileAnalysis *types.ProfileAnalysis
	var jobAnalysis *types.JobAnalysis

	// Profile and job analysis have no data dependency on each other
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return o.retryTransient(groupCtx, func() error {
			var err error
			profileAnalysis, err = o.profiles.Analyze(groupCtx, profile)
			return err
		})
	})
	group.Go(func() error {
		return o.retryTransient(groupCtx, func() error {
			var err error
			jobAnalysis, err = o.jobs.Analyze(groupCtx, job)
			return err
		})
	})
	if err := group.Wait(); err != nil {
		return o.fallback(ctx, profile, job, err)
	}

	match := o.matcher.Match(profile, jobAnalysis)

	result, err := o.writeAndReview(ctx, profile, job, profileAnalysis, jobAnalysis, match)
	if err != nil {
		return o.fallback(ctx, profile, job, err)
	}
	return result, nil
}

// writeAndReview runs the bounded content writing and review loop. On
// rejection the writer is re-invoked with the reviewer's feedback; once
// the iteration bound is spent the best-scoring draft is accepted.
func (o *Orchestrator) writeAndReview(ctx context.Context, profile *types.Profile, job *types.JobPosting, profileAnalysis *types.ProfileAnalysis, jobAnalysis *types.JobAnalysis, match *types.MatchAnalysis) (*Result, error) {
	req := &WriteRequest{
		Profile:         profile,
		ProfileAnalysis: profileAnalysis,
		JobAnalysis:     jobAnalysis,
		Match:           match,
	}

	var bestContent *types.EnhancedContent
	var bestScore float64

	for iteration := 1; iteration <= o.cfg.MaxIterations; iteration++ {
		var content *types.EnhancedContent
		err := o.retryTransient(ctx, func() error {
			var werr error
			content, werr = o.writer.Write(ctx, req)
			return werr
		})
		if err != nil {
			return nil, err
		}

		var review *types.ReviewResult
		err = o.retryTransient(ctx, func() error {
			var rerr error
			review, rerr = o.reviewer.Review(ctx, content, profile, profileAnalysis, jobAnalysis)
			return rerr
		})
		if err != nil {
			return nil, err
		}

		if bestContent == nil || review.QualityScore > bestScore {
			bestContent = content
			bestScore = review.QualityScore
		}

		if review.Approved {
			return &Result{
				Content:      content,
				Match:        match,
				QualityScore: review.QualityScore,
				Iterations:   iteration,
			}, nil
		}

		log.Printf("[orchestrator] draft rejected (score %.0f, iteration %d/%d)",
			review.QualityScore, iteration, o.cfg.MaxIterations)
		req.Feedback = review.Suggestions
		req.PreviousDraft = content
	}

	// Iteration bound spent: accept the best draft rather than failing
	log.Printf("[orchestrator] accepting best draft after %d iterations (score %.0f)",
		o.cfg.MaxIterations, bestScore)
	return &Result{
		Content:      bestContent,
		Match:        match,
		QualityScore: bestScore,
		Iterations:   o.cfg.MaxIterations,
	}, nil
}

// fallback routes a failed staged run through the legacy path, unless
// the context is gone, in which case the whole invocation is abandoned.
func (o *Orchestrator) fallback(ctx context.Context, profile *types.Profile, job *types.JobPosting, cause error) (*Result, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	log.Printf("[orchestrator] staged pipeline failed (%s), using legacy path: %v", Classify(cause), cause)
	return o.runLegacy(ctx, profile, job, nil)
}

// runLegacy generates content through the single-prompt path. An error
// here is terminal for the request.
func (o *Orchestrator) runLegacy(ctx context.Context, profile *types.Profile, job *types.JobPosting, match *types.MatchAnalysis) (*Result, error) {
	var content *types.EnhancedContent
	err := o.retryTransient(ctx, func() error {
		var lerr error
		content, lerr = o.legacy.Generate(ctx, profile, job)
		return lerr
	})
	if err != nil {
		return nil, fmt.Errorf("legacy generation failed: %w", err)
	}

	var score float64
	if match != nil {
		score = match.OverallMatchScore
	}
	return &Result{
		Content:      content,
		Match:        match,
		QualityScore: score,
		UsedLegacy:   true,
	}, nil
}

// retryTransient runs fn, retrying once with backoff when the failure
// is classified recoverable. Schema errors and cancellation are never
// retried.
func (o *Orchestrator) retryTransient(ctx context.Context, fn func() error) error {
	err := fn()
	if err == nil || Classify(err) != OutcomeRecoverable {
		return err
	}

	select {
	case <-time.After(o.retryBackoff):
	case <-ctx.Done():
		return ctx.Err()
	}
	return fn()
}

// emptyMatch is the defined result for a profile with nothing to match.
func emptyMatch() *types.MatchAnalysis {
	return &types.MatchAnalysis{
		OverallMatchScore:   0,
		ExperienceMatches:   []types.ExperienceMatch{},
		SelectedExperiences: []int{},
		SelectedSkills:      []string{},
		SelectedEducation:   []int{},
	}
}
