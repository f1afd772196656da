package util

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/sergeyb2024/telemetry/pkg/model"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Output writes v in the requested format. text renders the text format.
func Output(w io.Writer, format string, v any, text func(w io.Writer) error) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatText, "":
		return text(w)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// Table returns a writer for aligned columns. Call Flush when done.
func Table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// WriteAnalysisText renders the corner tables, lap figures and the summary.
func WriteAnalysisText(w io.Writer, a *Analysis) error {
	for i, lap := range a.Laps {
		fmt.Fprintf(w, "Lap %d (%d samples, run %s)\n", i+1, lap.Stats.Samples, lap.RunID)
		fmt.Fprintf(w, "  understeer gradient %.2f deg/g  peak lateral g %.2f  avg speed %.1f km/h  balance factor %.1f%%\n",
			lap.Stats.UndersteerGradient, lap.Stats.PeakLateralG, lap.Stats.AvgSpeed,
			lap.Stats.BalanceFactor*100)
		tw := Table(w)
		fmt.Fprintln(tw, "  #\tduration\tavg usos\tmax g\tentry\tapex\texit")
		for j, row := range lap.Stats.Corners {
			c := lap.Corners[j]
			fmt.Fprintf(tw, "  %d\t%.2fs\t%.2f\t%.2f\t%s\t%s\t%s\n",
				row.Number, row.Duration, row.AvgUSOS, row.MaxLateralG,
				phaseText(c.Entry), phaseText(c.Apex), phaseText(c.Exit))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "\nSummary for %s (overall %s)\n", a.Car, a.Summary.OverallBalance)
	return writeSummaryText(w, &a.Summary)
}

func phaseText(p model.PhaseBalance) string {
	if p.Balance == model.Neutral {
		return string(p.Balance)
	}
	return fmt.Sprintf("%s %.2f", p.Balance, p.Severity)
}

func writeSummaryText(w io.Writer, s *model.AnalysisSummary) error {
	tw := Table(w)
	for _, m := range []struct {
		name  string
		value float64
	}{
		{"front understeer", s.FrontUndersteer},
		{"rear oversteer", s.RearOversteer},
		{"corner entry understeer", s.CornerEntryUndersteer},
		{"corner exit oversteer", s.CornerExitOversteer},
		{"corner entry instability", s.CornerEntryInstability},
		{"corner exit traction", s.CornerExitTraction},
		{"rear wheel slip", s.RearWheelSlip},
		{"front lockup frequency", s.FrontLockupFrequency},
		{"front brake lockup", s.FrontBrakeLockup},
		{"rear brake lockup", s.RearBrakeLockup},
		{"straight line instability", s.StraightLineInstability},
		{"tire wear imbalance", s.TireWearImbalance},
	} {
		fmt.Fprintf(tw, "  %s\t%.3f\n", m.name, m.value)
	}
	return tw.Flush()
}

// WriteRecommendationsText renders recommendations as a table.
func WriteRecommendationsText(w io.Writer, recs []model.Recommendation, current model.CurrentSetup, spec model.SetupParameterSpec) error {
	if len(recs) == 0 {
		_, err := fmt.Fprintln(w, "No setup changes recommended.")
		return err
	}
	tw := Table(w)
	fmt.Fprintln(tw, "confidence\tmodule\tparameter\tcurrent\tchange\treason")
	for _, r := range recs {
		v, err := current.Value(r.Parameter, spec)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%.2f\t%s\t%s\t%g\t%+g\t%s\n",
			r.Confidence, r.Module, r.Parameter, v, r.Change, r.Reason)
	}
	return tw.Flush()
}
