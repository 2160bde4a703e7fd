// Package dashboard runs menu interactions: one data session per
// interaction, the selected reports built on it in order, and the
// outcome recorded in logs, metrics and report events.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/semaphore"

	"finboard/internal/amqp"
	"finboard/internal/core"
	"finboard/internal/log"
	"finboard/internal/metrics"
	"finboard/internal/report"
)

const (
	OutcomeOK          = "ok"
	OutcomePartial     = "partial"
	OutcomeUnavailable = "unavailable"
)

// Opener acquires a session on the data source. Implementations return a
// *report.UnavailableError when the source cannot be reached.
type Opener func(ctx context.Context) (report.Session, error)

// Publisher announces generated reports.
type Publisher interface {
	PublishReportGenerated(ctx context.Context, msg *amqp.ReportGenerated) error
}

// Options configures a Service. Zero values fall back to sensible defaults.
type Options struct {
	MaxInteractions int64
	Clock           report.Clock
	// WarnUnresolved logs each receivable skipped by the ranking because
	// its customer does not exist.
	WarnUnresolved bool
	Registry       report.Registry
	Metrics        *metrics.Metrics
	Publisher      Publisher
	Logger         *log.Logger
}

// Section is one report on a page. Err is set when the report failed; the
// rest of the page is still valid.
type Section struct {
	Kind  report.Kind
	Title string
	Table report.Table
	Err   error
}

// Failed reports whether the section could not be built.
func (s Section) Failed() bool {
	return s.Err != nil
}

// Page is the result of one menu interaction.
type Page struct {
	Menu        report.MenuEntry
	Sections    []Section
	GeneratedAt time.Time
}

// Failed counts the sections that could not be built.
func (p Page) Failed() int {
	n := 0
	for _, s := range p.Sections {
		if s.Failed() {
			n++
		}
	}
	return n
}

type Service struct {
	open     Opener
	opts     Options
	sem      *semaphore.Weighted
	logger   *log.Logger
	slogger  *log.StructuredLogger
	registry report.Registry
}

func New(open Opener, opts Options) *Service {
	if opts.MaxInteractions < 1 {
		opts.MaxInteractions = 1
	}
	if opts.Clock == nil {
		opts.Clock = report.SystemClock()
	}
	if opts.Registry == nil {
		opts.Registry = report.DefaultRegistry()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}
	logger = logger.WithComponent(log.ComponentDashboard)

	return &Service{
		open:     open,
		opts:     opts,
		sem:      semaphore.NewWeighted(opts.MaxInteractions),
		logger:   logger,
		slogger:  log.NewStructuredLogger(logger),
		registry: opts.Registry,
	}
}

// Menu lists the selectable entries. The first one is the default.
func (s *Service) Menu() []report.MenuEntry {
	return report.Menu()
}

// Interact builds every report of the menu entry identified by slug. An
// empty slug selects the default entry.
//
// A report that fails is recorded on its section and the others still
// run. An unavailable data source aborts the whole interaction.
func (s *Service) Interact(ctx context.Context, slug string) (Page, error) {
	entry, err := s.lookup(slug)
	if err != nil {
		return Page{}, err
	}

	sections, err := s.run(ctx, entry.Slug, entry.Kinds)
	if err != nil {
		return Page{}, err
	}
	return Page{Menu: entry, Sections: sections, GeneratedAt: s.opts.Clock.Now()}, nil
}

// Report builds a single report in its own interaction.
func (s *Service) Report(ctx context.Context, kind report.Kind) (report.Table, error) {
	if _, ok := s.registry[kind]; !ok {
		return report.Table{}, fmt.Errorf("%w: %q", report.ErrUnknownReport, kind)
	}

	sections, err := s.run(ctx, string(kind), []report.Kind{kind})
	if err != nil {
		return report.Table{}, err
	}
	return sections[0].Table, sections[0].Err
}

func (s *Service) lookup(slug string) (report.MenuEntry, error) {
	if slug == "" {
		return report.Menu()[0], nil
	}
	entry, ok := report.LookupMenu(slug)
	if !ok {
		return report.MenuEntry{}, fmt.Errorf("%w: menu entry %q", report.ErrUnknownReport, slug)
	}
	return entry, nil
}

func (s *Service) run(ctx context.Context, menu string, kinds []report.Kind) (sections []Section, err error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("wait for interaction slot: %w", err)
	}
	defer s.sem.Release(1)

	if s.opts.Metrics != nil {
		defer s.opts.Metrics.TrackInFlight()()
	}

	start := time.Now()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	defer func() {
		outcome := OutcomeOK
		switch {
		case err != nil:
			outcome = OutcomeUnavailable
		case failedSections(sections) > 0:
			outcome = OutcomePartial
		}
		s.incrInteraction(outcome)
		s.slogger.LogInteraction(ctx, menu, names, outcome, time.Since(start).Milliseconds())
	}()

	sess, err := s.open(ctx)
	if err != nil {
		var unavailable *report.UnavailableError
		if !errors.As(err, &unavailable) {
			err = &report.UnavailableError{Err: err}
		}
		s.slogger.LogError(ctx, "Data source unavailable", err, report.ErrorType(err), log.OpInteract,
			log.LogFields{log.FieldMenu: menu})
		return nil, err
	}
	defer func() {
		if cerr := sess.Close(); cerr != nil {
			s.logger.WarnContext(ctx, "Failed to release data session", log.FieldError, cerr)
		}
	}()

	opts := report.Options{Clock: s.opts.Clock, OnUnresolved: s.unresolved}
	sections = make([]Section, 0, len(kinds))
	for _, kind := range kinds {
		section, err := s.build(ctx, sess, kind, opts)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return sections, nil
}

// build runs one report. The returned error is non-nil only when the data
// source went away, which ends the interaction.
func (s *Service) build(ctx context.Context, src report.Source, kind report.Kind, opts report.Options) (Section, error) {
	section := Section{Kind: kind, Title: kind.Title()}

	start := time.Now()
	tbl, err := s.registry.Run(ctx, kind, src, opts)
	elapsed := time.Since(start)
	if s.opts.Metrics != nil {
		s.opts.Metrics.ObserveReport(kind.String(), elapsed)
	}

	if err != nil {
		errorType := report.ErrorType(err)
		if s.opts.Metrics != nil {
			s.opts.Metrics.IncrReportError(kind.String(), errorType)
		}
		s.slogger.LogError(ctx, "Report failed", err, errorType, log.OpReport,
			log.LogFields{log.FieldKind: kind.String()})

		var unavailable *report.UnavailableError
		if errors.As(err, &unavailable) {
			return section, err
		}
		section.Err = err
		return section, nil
	}

	section.Table = tbl
	s.slogger.LogReportBuilt(ctx, kind.String(), len(tbl.Rows), elapsed.Milliseconds())
	s.publish(ctx, tbl)
	return section, nil
}

func (s *Service) publish(ctx context.Context, tbl report.Table) {
	if s.opts.Publisher == nil {
		return
	}
	msg := amqp.NewReportGenerated(tbl.Kind.String(), len(tbl.Rows), tbl.Month.String(), s.opts.Clock.Now())
	err := s.opts.Publisher.PublishReportGenerated(ctx, msg)
	if s.opts.Metrics != nil {
		outcome := "published"
		if err != nil {
			outcome = "failed"
		}
		s.opts.Metrics.IncrEvent(outcome)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to publish report event",
			log.FieldKind, tbl.Kind.String(), log.FieldError, err, log.FieldOperation, log.OpPublish)
	}
}

func (s *Service) unresolved(ctx context.Context, r core.Receivable) {
	if s.opts.Metrics != nil {
		s.opts.Metrics.IncrUnresolved()
	}
	if s.opts.WarnUnresolved {
		s.logger.WarnContext(ctx, "Receivable references a missing customer",
			"receivable_id", r.ID, "cliente_id", r.CustomerID)
	}
}

func (s *Service) incrInteraction(outcome string) {
	if s.opts.Metrics != nil {
		s.opts.Metrics.IncrInteraction(outcome)
	}
}

func failedSections(sections []Section) int {
	return Page{Sections: sections}.Failed()
}
