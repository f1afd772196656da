package recommend

import "github.com/sergeyb2024/telemetry/pkg/model"

const ModuleDifferential = "differential"

func Differential() Module {
	return Module{
		Name: ModuleDifferential,
		Rules: []Rule{
			{
				Parameter:  model.Preload,
				When:       func(s *model.AnalysisSummary) bool { return s.CornerExitOversteer > 0.3 },
				Change:     Fixed(10),
				Guard:      BelowMax(20),
				Confidence: 0.7,
				Reason:     "Raise diff preload to stabilize the corner exit",
			},
		},
	}
}
