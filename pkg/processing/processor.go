// Package processing runs the analysis pipeline of a lap: channel derivation,
// corner segmentation, phase analysis and lap statistics.
package processing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/sergeyb2024/telemetry/log"
	"github.com/sergeyb2024/telemetry/pkg/model"
	"github.com/sergeyb2024/telemetry/pkg/processing/channels"
	"github.com/sergeyb2024/telemetry/pkg/processing/corner"
	"github.com/sergeyb2024/telemetry/pkg/processing/summary"
)

var meter = otel.Meter("hbt.pipeline")

type Processor struct {
	kin       model.CarKinematics
	segmenter *corner.Segmenter
	workers   int
	log       *log.Logger
	tracer    trace.Tracer

	samplesRecorder  metric.Int64Histogram
	cornersRecorder  metric.Int64Histogram
	durationRecorder metric.Float64Histogram
}
type ProcessorOption func(proc *Processor)

func WithKinematics(kin model.CarKinematics) ProcessorOption {
	return func(proc *Processor) {
		proc.kin = kin
	}
}

func WithSegmenter(s *corner.Segmenter) ProcessorOption {
	return func(proc *Processor) {
		proc.segmenter = s
	}
}

// WithWorkers limits the parallelism of derivation and phase analysis.
// 0 means GOMAXPROCS.
func WithWorkers(n int) ProcessorOption {
	return func(proc *Processor) {
		proc.workers = n
	}
}

func WithLogger(l *log.Logger) ProcessorOption {
	return func(proc *Processor) {
		proc.log = l
	}
}

func WithTracer(tracer trace.Tracer) ProcessorOption {
	return func(proc *Processor) {
		proc.tracer = tracer
	}
}

func NewProcessor(opts ...ProcessorOption) *Processor {
	ret := &Processor{
		log: log.Default().Named("pipeline"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.segmenter == nil {
		ret.segmenter, _ = corner.NewSegmenter()
	}
	if ret.tracer == nil {
		ret.tracer = otel.Tracer("hbt")
	}
	ret.samplesRecorder, _ = meter.Int64Histogram("pipeline.samples",
		metric.WithDescription("samples per processed lap"),
		metric.WithUnit("{sample}"))
	ret.cornersRecorder, _ = meter.Int64Histogram("pipeline.corners",
		metric.WithDescription("corners per processed lap"),
		metric.WithUnit("{corner}"))
	ret.durationRecorder, _ = meter.Float64Histogram("pipeline.duration",
		metric.WithDescription("processing time of a lap"),
		metric.WithUnit("s"))
	return ret
}

// Result is the outcome of processing one lap.
type Result struct {
	RunID   uuid.UUID               `json:"runId" yaml:"runId"`
	Samples []model.TelemetrySample `json:"-" yaml:"-"`
	Corners []model.CornerPhases    `json:"corners" yaml:"corners"`
	Stats   summary.LapStats        `json:"stats" yaml:"stats"`
	Summary model.AnalysisSummary   `json:"summary" yaml:"summary"`
}

// Lap returns the data needed for aggregation over several laps.
func (r *Result) Lap() summary.Lap {
	return summary.Lap{Samples: r.Samples, Corners: r.Corners}
}

// ProcessLap runs the full pipeline on the samples of one lap.
// The input samples are not modified.
//
//nolint:whitespace // can't make both editor and linter happy
func (p *Processor) ProcessLap(
	ctx context.Context,
	samples []model.TelemetrySample,
) (*Result, error) {
	start := time.Now()
	ret := &Result{RunID: uuid.New()}
	l := p.log.With(log.String("runId", ret.RunID.String()))
	ctx = log.AddToContext(ctx, l)

	ctx, span := p.tracer.Start(ctx, "ProcessLap",
		trace.WithAttributes(attribute.Int("samples", len(samples))))
	defer span.End()

	derived, err := p.derive(ctx, samples)
	if err != nil {
		l.Error("channel derivation failed", log.ErrorField(err))
		return nil, err
	}
	ret.Samples = derived

	events := p.segment(ctx, derived)

	if ret.Corners, err = p.analyze(ctx, derived, events); err != nil {
		l.Error("phase analysis failed", log.ErrorField(err))
		return nil, err
	}
	ret.Stats = summary.ComputeLapStats(derived, ret.Corners)
	ret.Summary = summary.Aggregate(ret.Lap())

	p.samplesRecorder.Record(ctx, int64(len(samples)))
	p.cornersRecorder.Record(ctx, int64(len(ret.Corners)))
	p.durationRecorder.Record(ctx, time.Since(start).Seconds())
	l.Info("lap processed",
		log.Int("samples", len(samples)),
		log.Int("corners", len(ret.Corners)),
		log.String("balance", string(ret.Summary.OverallBalance)),
		log.Duration("duration", time.Since(start)))
	return ret, nil
}

// Summarize aggregates the summaries of several processed laps.
func Summarize(results ...*Result) model.AnalysisSummary {
	laps := make([]summary.Lap, 0, len(results))
	for _, r := range results {
		laps = append(laps, r.Lap())
	}
	return summary.Aggregate(laps...)
}

//nolint:whitespace // can't make both editor and linter happy
func (p *Processor) derive(
	ctx context.Context,
	samples []model.TelemetrySample,
) ([]model.TelemetrySample, error) {
	ctx, span := p.tracer.Start(ctx, "derive")
	defer span.End()
	return channels.Derive(ctx, samples, p.kin,
		channels.WithWorkers(p.workers),
		channels.WithLogger(log.GetFromContext(ctx).Named("channels")))
}

//nolint:whitespace // can't make both editor and linter happy
func (p *Processor) segment(
	ctx context.Context,
	samples []model.TelemetrySample,
) []model.CornerEvent {
	_, span := p.tracer.Start(ctx, "segment")
	defer span.End()
	events := p.segmenter.Segment(samples)
	span.SetAttributes(attribute.Int("corners", len(events)))
	log.GetFromContext(ctx).Named("corner").Debug("segmented",
		log.Int("corners", len(events)))
	return events
}

//nolint:whitespace // can't make both editor and linter happy
func (p *Processor) analyze(
	ctx context.Context,
	samples []model.TelemetrySample,
	events []model.CornerEvent,
) ([]model.CornerPhases, error) {
	ctx, span := p.tracer.Start(ctx, "analyzePhases")
	defer span.End()
	return corner.AnalyzeAll(ctx, samples, events, p.workers)
}
