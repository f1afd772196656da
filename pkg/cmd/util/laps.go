package util

import (
	"context"
	"errors"

	"github.com/sergeyb2024/telemetry/log"
	"github.com/sergeyb2024/telemetry/pkg/config"
	"github.com/sergeyb2024/telemetry/pkg/ingest/csvsource"
	"github.com/sergeyb2024/telemetry/pkg/model"
	"github.com/sergeyb2024/telemetry/pkg/processing"
	"github.com/sergeyb2024/telemetry/pkg/processing/corner"
	"github.com/sergeyb2024/telemetry/pkg/setup"
	"github.com/sergeyb2024/telemetry/testsupport/tracegen"
)

var ErrNoInput = errors.New("no telemetry file given (use --demo for a synthetic lap)")

// LoadLaps reads one lap per file. With demo a synthetic lap for the car is
// generated instead.
func LoadLaps(files []string, demo bool, car *setup.Car) ([][]model.TelemetrySample, error) {
	if demo {
		return [][]model.TelemetrySample{
			tracegen.New(tracegen.WithKinematics(car.Kinematics())).Lap(),
		}, nil
	}
	if len(files) == 0 {
		return nil, ErrNoInput
	}
	ret := make([][]model.TelemetrySample, 0, len(files))
	for _, f := range files {
		samples, err := csvsource.ReadFile(f)
		if err != nil {
			return nil, err
		}
		ret = append(ret, samples)
	}
	return ret, nil
}

// Analysis is the outcome of the pipeline over all laps of a run.
type Analysis struct {
	Car     string                `json:"car" yaml:"car"`
	Laps    []*processing.Result  `json:"laps" yaml:"laps"`
	Summary model.AnalysisSummary `json:"summary" yaml:"summary"`
}

// Analyze runs the pipeline for each lap and aggregates the summary.
//
//nolint:whitespace // can't make both editor and linter happy
func Analyze(
	ctx context.Context,
	car *setup.Car,
	laps [][]model.TelemetrySample,
) (*Analysis, error) {
	cfg := config.NewConfig()
	policy, err := corner.ParseUnclosedPolicy(cfg.Unclosed)
	if err != nil {
		return nil, err
	}
	seg, err := corner.NewSegmenter(corner.WithUnclosedPolicy(policy))
	if err != nil {
		return nil, err
	}
	proc := processing.NewProcessor(
		processing.WithKinematics(car.Kinematics()),
		processing.WithSegmenter(seg),
		processing.WithWorkers(cfg.Workers),
	)
	ret := &Analysis{Car: car.ID, Laps: make([]*processing.Result, 0, len(laps))}
	for i, lap := range laps {
		res, err := proc.ProcessLap(ctx, lap)
		if err != nil {
			return nil, err
		}
		log.Debug("lap analyzed", log.Int("lap", i+1), log.String("runId", res.RunID.String()))
		ret.Laps = append(ret.Laps, res)
	}
	ret.Summary = processing.Summarize(ret.Laps...)
	return ret, nil
}

// LoadCar resolves the car from the configured catalog.
func LoadCar(ctx context.Context) (*setup.Car, model.SetupParameterSpec, error) {
	catalog, err := setup.LoadCatalogFile(config.CatalogFile)
	if err != nil {
		return nil, model.SetupParameterSpec{}, err
	}
	car, err := catalog.Car(config.CarID)
	if err != nil {
		return nil, model.SetupParameterSpec{}, err
	}
	spec, err := catalog.Spec(ctx, car.ID)
	if err != nil {
		return nil, model.SetupParameterSpec{}, err
	}
	return car, spec, nil
}
