// Package filter narrows, orders and pages a pool of job records according to
// SearchCriteria. Stages run in a fixed order and an unset criterion is a
// pass-through.
package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/honeycarbs/talentry/internal/domain"
	"github.com/honeycarbs/talentry/internal/errs"
	"github.com/honeycarbs/talentry/pkg/logging"
)

// MatchMode selects how freeText and location are matched
type MatchMode string

const (
	// MatchLiteral is a case-insensitive substring match
	MatchLiteral MatchMode = "literal"
	// MatchRegex compiles user input as a case-insensitive regular expression
	MatchRegex MatchMode = "regex"
)

// ParseMatchMode maps config input to a MatchMode; empty means literal
func ParseMatchMode(s string) (MatchMode, error) {
	switch MatchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", MatchLiteral:
		return MatchLiteral, nil
	case MatchRegex:
		return MatchRegex, nil
	default:
		return "", fmt.Errorf("filter: unknown match mode %q", s)
	}
}

// Stage names used when a text pattern is rejected
const (
	StageFreeText = "freeText"
	StageLocation = "location"
)

// RemoteLocation matches any record flagged as remote
const RemoteLocation = "Remote"

// Result is the paged output plus the count before paging
type Result struct {
	Records []domain.JobRecord
	Total   int
}

// Engine applies SearchCriteria to candidate records
type Engine struct {
	mode           MatchMode
	logger         *logging.Logger
	onPatternError func(stage string)
}

// Option configures Engine
type Option func(*Engine)

// WithMatchMode sets literal or regex text matching
func WithMatchMode(mode MatchMode) Option {
	return func(e *Engine) {
		e.mode = mode
	}
}

// WithLogger sets the logger used for skipped stages
func WithLogger(logger *logging.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithPatternErrorHook is called with the stage name whenever a pattern fails to compile
func WithPatternErrorHook(hook func(stage string)) Option {
	return func(e *Engine) {
		e.onPatternError = hook
	}
}

// NewEngine builds an Engine; literal matching by default
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		mode:           MatchLiteral,
		logger:         logging.NewNop(),
		onPatternError: func(string) {},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Mode returns the configured match mode
func (e *Engine) Mode() MatchMode {
	return e.mode
}

// Apply filters, sorts and, for specific searches only, paginates records
func (e *Engine) Apply(records []domain.JobRecord, c domain.SearchCriteria) Result {
	out := Sort(e.Filter(records, c), c.SortOrder)
	total := len(out)
	if c.IsSpecific() {
		out = Paginate(out, c.Page, c.PageSize, c.PageCount)
	}
	return Result{Records: out, Total: total}
}

// Filter runs every active stage in order. The input slice is not modified.
func (e *Engine) Filter(records []domain.JobRecord, c domain.SearchCriteria) []domain.JobRecord {
	out := make([]domain.JobRecord, len(records))
	copy(out, records)

	if c.HasTextFilter() {
		if match, ok := e.matcher(StageFreeText, c.FreeText); ok {
			out = keep(out, func(r domain.JobRecord) bool {
				return match(r.Title) || match(r.EmployerName) || match(r.Description)
			})
		}
	}

	if c.Location != "" {
		if match, ok := e.matcher(StageLocation, c.Location); ok {
			wantsRemote := strings.EqualFold(c.Location, RemoteLocation)
			out = keep(out, func(r domain.JobRecord) bool {
				return match(r.CountryOrEmpty()) || (wantsRemote && r.IsRemote)
			})
		}
	}

	if len(c.EmploymentTypes) > 0 {
		allowed := make(map[string]struct{}, len(c.EmploymentTypes))
		for _, t := range c.EmploymentTypes {
			allowed[NormalizeEmploymentType(t)] = struct{}{}
		}
		out = keep(out, func(r domain.JobRecord) bool {
			_, ok := allowed[NormalizeEmploymentType(r.EmploymentType)]
			return ok
		})
	}

	if c.Category != "" {
		out = keep(out, func(r domain.JobRecord) bool {
			return strings.EqualFold(strings.TrimSpace(r.CategoryOrEmpty()), c.Category)
		})
	}

	if c.SalaryMin != nil || c.SalaryMax != nil {
		out = keep(out, func(r domain.JobRecord) bool {
			return withinSalary(r, c.SalaryMin, c.SalaryMax)
		})
	}

	if len(c.JobLevelKeywords) > 0 {
		keywords := make([]string, 0, len(c.JobLevelKeywords))
		for _, k := range c.JobLevelKeywords {
			keywords = append(keywords, strings.ToLower(k))
		}
		out = keep(out, func(r domain.JobRecord) bool {
			return mentionsAny(highlightText(r), keywords)
		})
	}

	return out
}

// matcher returns a predicate for pattern, or false when the stage must be skipped
func (e *Engine) matcher(stage, pattern string) (func(string) bool, bool) {
	if e.mode != MatchRegex {
		needle := strings.ToLower(pattern)
		return func(s string) bool {
			return strings.Contains(strings.ToLower(s), needle)
		}, true
	}

	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		e.logger.Warn("filter stage skipped",
			"stage", stage,
			"error", errs.InvalidFilterPattern(stage, pattern, err),
		)
		e.onPatternError(stage)
		return nil, false
	}
	return re.MatchString, true
}

// NormalizeEmploymentType folds "full-time", "Full Time" and "FULLTIME" together
func NormalizeEmploymentType(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return r
	}, strings.ToUpper(strings.TrimSpace(s)))
}

// withinSalary treats a missing record field as failing an active bound
func withinSalary(r domain.JobRecord, lo, hi *float64) bool {
	if lo != nil && (r.SalaryMin == nil || *r.SalaryMin < *lo) {
		return false
	}
	if hi != nil && (r.SalaryMax == nil || *r.SalaryMax > *hi) {
		return false
	}
	return true
}

func highlightText(r domain.JobRecord) string {
	if r.Highlights == nil {
		return ""
	}
	parts := make([]string, 0, len(r.Highlights.Qualifications)+len(r.Highlights.Responsibilities))
	parts = append(parts, r.Highlights.Qualifications...)
	parts = append(parts, r.Highlights.Responsibilities...)
	return strings.ToLower(strings.Join(parts, "\n"))
}

func mentionsAny(text string, keywords []string) bool {
	if text == "" {
		return false
	}
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func keep(records []domain.JobRecord, pred func(domain.JobRecord) bool) []domain.JobRecord {
	out := records[:0]
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}
