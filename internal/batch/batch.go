package batch

import (
	"context"
	"errors"
	"fmt"

	"threadcache-backend/internal/assert"
	"threadcache-backend/internal/parser"
	"threadcache-backend/internal/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"
)

const (
	report_parse        = "pool.parse"
	report_parsed_count = "pool.parsed"
	report_failed_count = "pool.failed"
)

var tracer = otel.Tracer("threadcache/internal/batch")
var meter = otel.Meter("threadcache/internal/batch")
var parseCounter, _ = meter.Int64Counter("parse_results")

// Action is what the caller of a parse should do about its outcome.
type Action int

const (
	ACTION_NONE Action = iota
	// the page is useless right now, skip it and slow down requests to the
	// site before fetching again.
	ACTION_SKIP_BACKOFF
	// the parser is broken for this page, someone has to look at it.
	ACTION_ALERT
)

func (a Action) String() string {
	switch a {
	case ACTION_SKIP_BACKOFF:
		return "skip_backoff"
	case ACTION_ALERT:
		return "alert"
	}
	return "none"
}

// ActionFor maps a parse error to the action the caller should take.
func ActionFor(err error) Action {
	if err == nil {
		return ACTION_NONE
	}
	kind, ok := parser.KindOf(err)
	if !ok {
		return ACTION_ALERT
	}
	switch kind {
	case parser.ERROR_WRONG_SITE, parser.ERROR_STRUCTURE_MISSING:
		return ACTION_SKIP_BACKOFF
	}
	return ACTION_ALERT
}

// Input is one document to parse, Name identifies it in reports.
type Input struct {
	Name string
	Data []byte
}

// Outcome is the result of parsing one Input.
type Outcome[T any] struct {
	Name   string
	Value  T
	Err    error
	Action Action
}

type Options struct {
	// Workers bounds the number of parses running at once.
	Workers   int
	Parser    parser.Parser
	Telemetry telemetry.API
}

// Pool dispatches parses to a bounded number of goroutines, parsing is cpu
// bound and a large page should not hold up the caller.
type Pool struct {
	workers int
	parser  parser.Parser
	tel     telemetry.API
}

func NewPool(opts Options) Pool {
	assert.Positive(opts.Workers)
	assert.NotNil(opts.Telemetry)
	return Pool{
		workers: opts.Workers,
		parser:  opts.Parser,
		tel:     opts.Telemetry,
	}
}

// ParseThreads parses thread pages, outcomes are in the order of inputs.
func (p Pool) ParseThreads(ctx context.Context, inputs []Input) ([]Outcome[parser.ParsedThread], error) {
	return run(ctx, p, "thread", inputs, p.parser.ParseThread)
}

// ParseReviews parses review pages, outcomes are in the order of inputs.
func (p Pool) ParseReviews(ctx context.Context, inputs []Input) ([]Outcome[parser.ParsedReviews], error) {
	return run(ctx, p, "reviews", inputs, p.parser.ParseReviews)
}

// Failed collects the errors of every failed outcome.
func Failed[T any](outcomes []Outcome[T]) error {
	var errs []error
	for _, o := range outcomes {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.Name, o.Err))
		}
	}
	return errors.Join(errs...)
}

func run[T any](
	ctx context.Context,
	p Pool,
	kind string,
	inputs []Input,
	parse func(data []byte) (T, error),
) ([]Outcome[T], error) {
	outcomes := make([]Outcome[T], len(inputs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(p.workers)

	for i, input := range inputs {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			outcomes[i] = parseOne(groupCtx, p.tel, kind, input, parse)
			return nil
		})
	}

	err := group.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return outcomes, err
	}

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	p.tel.ReportCount(report_parsed_count, int64(len(outcomes)-failed))
	p.tel.ReportCount(report_failed_count, int64(failed))

	return outcomes, nil
}

func parseOne[T any](
	ctx context.Context,
	tel telemetry.API,
	kind string,
	input Input,
	parse func(data []byte) (T, error),
) Outcome[T] {
	ctx, span := tracer.Start(ctx, "parse")
	defer span.End()
	span.SetAttributes(
		attribute.String("kind", kind),
		attribute.String("input", input.Name),
		attribute.Int("size", len(input.Data)),
	)

	value, err := parse(input.Data)
	action := ActionFor(err)
	parseCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("action", action.String()),
	))

	switch action {
	case ACTION_SKIP_BACKOFF:
		span.SetStatus(codes.Error, err.Error())
		tel.ReportWarning(report_parse, input.Name, err)
	case ACTION_ALERT:
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
		var perr *parser.ParserError
		if errors.As(err, &perr) && perr.Trace != "" {
			tel.ReportBroken(report_parse, input.Name, err, perr.Trace)
		} else {
			tel.ReportBroken(report_parse, input.Name, err)
		}
	default:
		tel.ReportDebug("parsed", input.Name, kind)
	}

	return Outcome[T]{
		Name:   input.Name,
		Value:  value,
		Err:    err,
		Action: action,
	}
}
