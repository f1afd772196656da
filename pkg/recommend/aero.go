package recommend

import "github.com/sergeyb2024/telemetry/pkg/model"

const ModuleAero = "aero"

func Aero() Module {
	return Module{
		Name: ModuleAero,
		Rules: []Rule{
			{
				Parameter:  model.Splitter,
				When:       func(s *model.AnalysisSummary) bool { return s.FrontUndersteer > 0.3 },
				Change:     Fixed(-1),
				Guard:      AboveMin(0),
				Confidence: 0.8,
				Reason:     "Reduce front downforce to cure understeer",
			},
			{
				Parameter:  model.Wing,
				When:       func(s *model.AnalysisSummary) bool { return s.RearOversteer > 0.3 },
				Change:     Fixed(1),
				Guard:      BelowMax(0),
				Confidence: 0.8,
				Reason:     "More rear wing for rear stability",
			},
		},
		Fallback: &Rule{
			Parameter: model.RideHeightFront,
			When: func(s *model.AnalysisSummary) bool {
				return s.OverallBalance != model.Neutral
			},
			Change: func(s *model.AnalysisSummary) float64 {
				if s.FrontUndersteer > 0 {
					return -2
				}
				return 2
			},
			Guard:      Always,
			Confidence: 0.6,
			Reason:     "Change front ride height to shift the aero balance",
		},
	}
}
