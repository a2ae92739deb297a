// Package pipeline turns one candidate's inputs into a hiring assessment:
// resume extraction, profile scraping, prompt assembly and the assessor call.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spigell/hire-assessor/internal/ai"
	"github.com/spigell/hire-assessor/internal/document"
	"github.com/spigell/hire-assessor/internal/fetch"
	"github.com/spigell/hire-assessor/internal/logger"
	"github.com/spigell/hire-assessor/internal/profile"
	"github.com/spigell/hire-assessor/internal/prompt"
	"github.com/spigell/hire-assessor/internal/utils"
	"go.uber.org/zap"
)

const (
	stageResume   = "extract resume"
	stageProfile  = "scrape profile"
	stagePrompt   = "assemble prompt"
	stageAssess   = "assess"
	headlineLimit = 120
)

type ResumeReader interface {
	Read(ctx context.Context, ref document.Reference) fetch.Outcome[string]
}

type ProfileScraper interface {
	Scrape(ctx context.Context, pageURL string) fetch.Outcome[*profile.Bundle]
}

// Request carries the inputs of a single analysis.
type Request struct {
	ResumeURL      string `json:"resume_url"`
	ProfileURL     string `json:"profile_url"`
	JobDescription string `json:"job_description"`
	CompanyInfo    string `json:"company_info"`
}

// Candidate is the merged output of the fetch stages.
type Candidate struct {
	Resume   string          `json:"resume"`
	Profile  *profile.Bundle `json:"profile"`
	Warnings []string        `json:"warnings,omitempty"`
}

// Result is what an analysis returns to the caller.
type Result struct {
	InvocationID   string          `json:"invocation_id"`
	ResumeAnalysis string          `json:"resume_analysis"`
	GithubAnalysis *profile.Bundle `json:"github_analysis"`
	Assessment     string          `json:"assessment"`
	Warnings       []string        `json:"warnings,omitempty"`
}

// Deps aggregates the collaborators of an Analyzer. Assessor may be nil when
// only Collect is used.
type Deps struct {
	Resumes  ResumeReader
	Profiles ProfileScraper
	Assessor ai.Assessor
	Logger   *zap.Logger
}

type Options struct {
	Policy Policy
	// AssessTimeout bounds the assessor call. Zero means no extra bound.
	AssessTimeout time.Duration
}

// Analyzer is immutable after New and safe for concurrent use.
type Analyzer struct {
	resumes       ResumeReader
	profiles      ProfileScraper
	assessor      ai.Assessor
	policy        Policy
	assessTimeout time.Duration
	logger        *zap.Logger
}

type invocation struct {
	id         string
	req        Request
	candidate  *Candidate
	prompt     string
	assessment string
	logger     *zap.Logger
}

type stage struct {
	name string
	run  func(ctx context.Context, inv *invocation) error
}

func New(deps Deps, opts Options) (*Analyzer, error) {
	if deps.Resumes == nil {
		return nil, errors.New("resume reader is required")
	}

	if deps.Profiles == nil {
		return nil, errors.New("profile scraper is required")
	}

	policy, err := opts.Policy.Normalize()
	if err != nil {
		return nil, fmt.Errorf("failure policy: %w", err)
	}

	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Analyzer{
		resumes:       deps.Resumes,
		profiles:      deps.Profiles,
		assessor:      deps.Assessor,
		policy:        policy,
		assessTimeout: opts.AssessTimeout,
		logger:        log,
	}, nil
}

// Collect extracts the resume and scrapes the profile, applying the failure
// policy of each field.
func (a *Analyzer) Collect(ctx context.Context, req Request) (*Candidate, error) {
	inv := a.newInvocation(req)
	if err := a.run(ctx, inv, a.collectStages()); err != nil {
		return nil, err
	}
	return inv.candidate, nil
}

// Analyze runs Collect, assembles the prompt and asks the assessor.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*Result, error) {
	if a.assessor == nil {
		return nil, errors.New("assessor is not configured")
	}

	inv := a.newInvocation(req)
	stages := append(a.collectStages(),
		stage{name: stagePrompt, run: a.assemblePrompt},
		stage{name: stageAssess, run: a.assess},
	)

	if err := a.run(ctx, inv, stages); err != nil {
		return nil, err
	}

	return &Result{
		InvocationID:   inv.id,
		ResumeAnalysis: inv.candidate.Resume,
		GithubAnalysis: inv.candidate.Profile,
		Assessment:     inv.assessment,
		Warnings:       inv.candidate.Warnings,
	}, nil
}

func (a *Analyzer) newInvocation(req Request) *invocation {
	id := uuid.NewString()
	return &invocation{
		id:        id,
		req:       req,
		candidate: &Candidate{Profile: profile.Empty()},
		logger:    logger.WithFields(a.logger, logger.InvocationFields(id, req.ResumeURL, req.ProfileURL)...),
	}
}

func (a *Analyzer) collectStages() []stage {
	return []stage{
		{name: stageResume, run: a.extractResume},
		{name: stageProfile, run: a.scrapeProfile},
	}
}

func (a *Analyzer) run(ctx context.Context, inv *invocation, stages []stage) error {
	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", s.name, err)
		}

		started := time.Now()
		err := s.run(ctx, inv)
		fields := []zap.Field{
			zap.String(logger.FieldStage, s.name),
			zap.Duration("duration", time.Since(started)),
		}

		if err != nil {
			inv.logger.Warn("pipeline stage failed", append(fields, zap.Error(err))...)
			return fmt.Errorf("%s: %w", s.name, err)
		}

		inv.logger.Info("pipeline stage", fields...)
	}

	return nil
}

func (a *Analyzer) extractResume(ctx context.Context, inv *invocation) error {
	ref := document.NewReference(inv.req.ResumeURL)
	out := a.resumes.Read(ctx, ref)
	inv.candidate.Resume = out.Value

	if out.Err != nil {
		if a.policy.Resume == Abort {
			return fmt.Errorf("%w: %w", ErrResumeUnavailable, out.Err)
		}
		inv.warn("resume", out.Err.Error())
		return nil
	}

	if document.IsMarker(out.Value) {
		inv.warn("resume", out.Value)
	}

	return nil
}

func (a *Analyzer) scrapeProfile(ctx context.Context, inv *invocation) error {
	out := a.profiles.Scrape(ctx, inv.req.ProfileURL)
	if out.Value != nil {
		inv.candidate.Profile = out.Value
	}

	if out.Err != nil {
		if a.policy.Profile == Abort {
			return fmt.Errorf("%w: %w", ErrProfileUnavailable, out.Err)
		}
		inv.candidate.Profile = profile.Empty()
		inv.warn("profile", out.Err.Error())
		return nil
	}

	inv.logger.Debug("profile scraped",
		zap.String("name", inv.candidate.Profile.Name),
		zap.Strings("repositories", inv.candidate.Profile.RepositoryNames()),
	)
	return nil
}

func (a *Analyzer) assemblePrompt(_ context.Context, inv *invocation) error {
	inv.prompt = prompt.Assemble(prompt.Input{
		Resume:         inv.candidate.Resume,
		Profile:        inv.candidate.Profile,
		JobDescription: inv.req.JobDescription,
		CompanyInfo:    inv.req.CompanyInfo,
	})
	return nil
}

func (a *Analyzer) assess(ctx context.Context, inv *invocation) error {
	if a.assessTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.assessTimeout)
		defer cancel()
	}

	text, err := a.assessor.Assess(ctx, inv.prompt)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAssessment, err)
	}

	inv.assessment = text
	inv.logger.Debug("assessment received",
		zap.String("headline", utils.TruncateForLog(utils.FirstLine(text), headlineLimit)),
	)
	return nil
}

func (inv *invocation) warn(field, message string) {
	inv.candidate.Warnings = append(inv.candidate.Warnings, field+": "+message)
	inv.logger.Warn("degraded input", zap.String("field", field), zap.String("reason", message))
}
