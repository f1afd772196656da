package recommend

import (
	"context"
	"fmt"
	"runtime"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/sergeyb2024/telemetry/log"
	"github.com/sergeyb2024/telemetry/pkg/model"
)

// DefaultModules returns all modules in reporting order.
func DefaultModules() []Module {
	return []Module{
		Aero(),
		Suspension(),
		Electronics(),
		Tyres(),
		Alignment(),
		Dampers(),
		Differential(),
		Brakes(),
	}
}

type (
	EngineOption func(*Engine)
	Engine       struct {
		spec    model.SetupParameterSpec
		modules []Module
		workers int
		log     *log.Logger
	}
)

func WithModules(modules ...Module) EngineOption {
	return func(e *Engine) {
		e.modules = modules
	}
}

func WithWorkers(n int) EngineOption {
	return func(e *Engine) {
		e.workers = n
	}
}

func WithLogger(l *log.Logger) EngineOption {
	return func(e *Engine) {
		e.log = l
	}
}

// NewEngine creates an engine for the given car spec. It fails with an error
// wrapping model.ErrMissingParameter if any rule references a parameter the
// spec does not contain.
func NewEngine(spec model.SetupParameterSpec, opts ...EngineOption) (*Engine, error) {
	ret := &Engine{
		spec:    spec,
		modules: DefaultModules(),
		workers: runtime.GOMAXPROCS(0),
		log:     log.Default().Named("recommend"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.workers <= 0 {
		ret.workers = runtime.GOMAXPROCS(0)
	}
	for i := range ret.modules {
		for _, p := range ret.modules[i].Parameters() {
			if _, err := spec.Bounds(p); err != nil {
				return nil, fmt.Errorf("module %s: %w", ret.modules[i].Name, err)
			}
		}
	}
	return ret, nil
}

// Parameters returns all parameters referenced by the engine's modules.
func (e *Engine) Parameters() []model.Parameter {
	return lo.Uniq(lo.FlatMap(e.modules, func(m Module, _ int) []model.Parameter {
		return m.Parameters()
	}))
}

// Recommend evaluates all modules concurrently. The result contains the
// recommendations in module order, within a module in rule order.
//
//nolint:whitespace // can't make both editor and linter happy
func (e *Engine) Recommend(
	ctx context.Context,
	summary model.AnalysisSummary,
	setup model.CurrentSetup,
) ([]model.Recommendation, error) {
	results := make([][]model.Recommendation, len(e.modules))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range e.modules {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			s := summary
			recs, err := e.modules[i].Evaluate(&s, setup, e.spec)
			if err != nil {
				return err
			}
			results[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	ret := lo.Flatten(results)
	e.log.Debug("recommendations computed",
		log.Int("modules", len(e.modules)),
		log.Int("recommendations", len(ret)))
	return ret, nil
}
