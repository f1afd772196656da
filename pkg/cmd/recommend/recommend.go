package recommend

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sergeyb2024/telemetry/log"
	"github.com/sergeyb2024/telemetry/pkg/cmd/analyze"
	"github.com/sergeyb2024/telemetry/pkg/cmd/util"
	"github.com/sergeyb2024/telemetry/pkg/config"
	"github.com/sergeyb2024/telemetry/pkg/model"
	"github.com/sergeyb2024/telemetry/pkg/recommend"
	"github.com/sergeyb2024/telemetry/pkg/setup"
)

var demo bool

type report struct {
	Analysis        *util.Analysis         `json:"analysis" yaml:"analysis"`
	Setup           model.CurrentSetup     `json:"setup" yaml:"setup"`
	Recommendations []model.Recommendation `json:"recommendations" yaml:"recommendations"`
}

func NewRecommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend [file.csv...]",
		Short: "recommends setup changes based on the handling balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}
	analyze.AddPipelineFlags(cmd)
	cmd.Flags().BoolVar(&demo, "demo", false, "use a synthetic demo lap")
	cmd.Flags().StringVar(&config.SetupFile,
		"setup",
		"",
		"current setup (simulator setup json, exported json or yaml). Defaults are used if empty")
	cmd.Flags().StringVar(&config.ApplyOut,
		"apply-out",
		"",
		"write the setup with all recommendations applied to this file")
	return cmd
}

//nolint:funlen // sequential pipeline
func run(ctx context.Context, out io.Writer, args []string) error {
	car, spec, err := util.LoadCar(ctx)
	if err != nil {
		return err
	}
	current := model.CurrentSetup{}
	if config.SetupFile != "" {
		if current, err = setup.ReadSetupFile(config.SetupFile); err != nil {
			return err
		}
	}
	laps, err := util.LoadLaps(args, demo, car)
	if err != nil {
		return err
	}
	a, err := util.Analyze(ctx, car, laps)
	if err != nil {
		return err
	}
	engine, err := recommend.NewEngine(spec, recommend.WithWorkers(config.Workers))
	if err != nil {
		return err
	}
	recs, err := engine.Recommend(ctx, a.Summary, current)
	if err != nil {
		return err
	}
	recs = recommend.Rank(recs)
	log.Info("recommendations",
		log.String("car", car.ID),
		log.Int("count", len(recs)))

	if config.ApplyOut != "" {
		if err := writeApplied(car, spec, current, recs); err != nil {
			return err
		}
	}
	r := report{Analysis: a, Setup: current, Recommendations: recs}
	return util.Output(out, config.OutputFormat, r, func(w io.Writer) error {
		if err := util.WriteAnalysisText(w, a); err != nil {
			return err
		}
		fmt.Fprintln(w)
		return util.WriteRecommendationsText(w, recs, current, spec)
	})
}

//nolint:whitespace // can't make both editor and linter happy
func writeApplied(
	car *setup.Car,
	spec model.SetupParameterSpec,
	current model.CurrentSetup,
	recs []model.Recommendation,
) error {
	applied, err := setup.Apply(spec, current, recs)
	if err != nil {
		return err
	}
	f, err := os.Create(config.ApplyOut)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := setup.Export(f, car, applied, time.Now()); err != nil {
		return err
	}
	log.Info("adjusted setup written", log.String("file", config.ApplyOut))
	return nil
}
