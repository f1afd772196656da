package analyze

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/sergeyb2024/telemetry/pkg/cmd/util"
	"github.com/sergeyb2024/telemetry/pkg/config"
)

var demo bool

func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file.csv...]",
		Short: "analyzes the handling balance of one or more laps",
		Long: `Derives the balance channels, segments the corners and classifies
entry, apex and exit of every corner. Each file is treated as one lap.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return analyze(cmd.Context(), cmd, args)
		},
	}
	AddPipelineFlags(cmd)
	cmd.Flags().BoolVar(&demo, "demo", false, "analyze a synthetic demo lap")
	return cmd
}

// AddPipelineFlags registers the flags shared by the commands running the pipeline.
func AddPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&config.CarID,
		"car",
		"mercedes_amg_gt3",
		"car id from the catalog (see cars command)")
	cmd.Flags().StringVar(&config.UnclosedCorner,
		"unclosed",
		"drop",
		"handling of a corner still open at the end of a lap (drop, truncate)")
	cmd.Flags().StringVar(&config.OutputFormat,
		"format",
		util.FormatText,
		"output format (text, json, yaml)")
}

func analyze(ctx context.Context, cmd *cobra.Command, args []string) error {
	car, _, err := util.LoadCar(ctx)
	if err != nil {
		return err
	}
	laps, err := util.LoadLaps(args, demo, car)
	if err != nil {
		return err
	}
	a, err := util.Analyze(ctx, car, laps)
	if err != nil {
		return err
	}
	return util.Output(cmd.OutOrStdout(), config.OutputFormat, a, func(w io.Writer) error {
		return util.WriteAnalysisText(w, a)
	})
}
