// Package application validates and stores job applications.
package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xeipuuv/gojsonschema"

	"github.com/honeycarbs/talentry/internal/domain"
	"github.com/honeycarbs/talentry/internal/errs"
	"github.com/honeycarbs/talentry/internal/repository"
	"github.com/honeycarbs/talentry/pkg/logging"
)

// Service accepts application submissions
type Service struct {
	store  repository.RecordStore
	paths  repository.Paths
	schema *gojsonschema.Schema
	clock  func() time.Time
	logger *logging.Logger
}

// Option configures Service
type Option func(*Service)

// WithClock sets a custom clock
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService compiles the submission schema
func NewService(store repository.RecordStore, paths repository.Paths, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("application.Service: record store is required")
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(submissionSchema))
	if err != nil {
		return nil, fmt.Errorf("application.Service: compile schema: %w", err)
	}

	s := &Service{
		store:  store,
		paths:  paths,
		schema: schema,
		clock:  time.Now,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

type submission struct {
	UserID           string         `json:"userId"`
	JobID            string         `json:"jobId"`
	JobTitle         string         `json:"jobTitle"`
	CompanyName      string         `json:"companyName"`
	ApplicantName    string         `json:"applicantName"`
	ApplicantEmail   string         `json:"applicantEmail"`
	ApplicantPhone   string         `json:"applicantPhone"`
	PreviousJobTitle *string        `json:"previousJobTitle"`
	LinkedinURL      *string        `json:"linkedinUrl"`
	PortfolioURL     *string        `json:"portfolioUrl"`
	AdditionalInfo   *string        `json:"additionalInfo"`
	Resume           *domain.Resume `json:"resume"`
}

// Submit validates body and stores it under the applicant's collection
func (s *Service) Submit(ctx context.Context, body []byte) (domain.Application, error) {
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return domain.Application{}, errs.Validation("request body is not valid JSON")
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return domain.Application{}, errs.Validation("application is invalid", details...)
	}

	var in submission
	if err := json.Unmarshal(body, &in); err != nil {
		return domain.Application{}, errs.Validation("request body is not valid JSON")
	}

	app := domain.Application{
		ID:               uuid.NewString(),
		UserID:           strings.TrimSpace(in.UserID),
		JobID:            strings.TrimSpace(in.JobID),
		JobTitle:         strings.TrimSpace(in.JobTitle),
		CompanyName:      strings.TrimSpace(in.CompanyName),
		ApplicantName:    strings.TrimSpace(in.ApplicantName),
		ApplicantEmail:   strings.TrimSpace(in.ApplicantEmail),
		ApplicantPhone:   strings.TrimSpace(in.ApplicantPhone),
		PreviousJobTitle: blankToNil(in.PreviousJobTitle),
		LinkedinURL:      blankToNil(in.LinkedinURL),
		PortfolioURL:     blankToNil(in.PortfolioURL),
		AdditionalInfo:   blankToNil(in.AdditionalInfo),
		Resume:           in.Resume,
		AppliedAt:        s.clock().UTC(),
	}

	data, err := json.Marshal(app)
	if err != nil {
		return domain.Application{}, errs.RecordStore("encode application", err)
	}
	if err := s.store.Set(ctx, s.paths.Applications(app.UserID), app.ID, data); err != nil {
		return domain.Application{}, errs.RecordStore("write application", err)
	}

	s.logger.Info("application stored", "applicationId", app.ID, "jobId", app.JobID, "userId", app.UserID)
	return app, nil
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
