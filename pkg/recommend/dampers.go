package recommend

import "github.com/sergeyb2024/telemetry/pkg/model"

const ModuleDampers = "dampers"

func Dampers() Module {
	return Module{
		Name: ModuleDampers,
		Rules: []Rule{
			{
				Parameter:  model.BumpSlowFront,
				When:       func(s *model.AnalysisSummary) bool { return s.CornerEntryInstability > 0.3 },
				Change:     Fixed(3),
				Guard:      Always,
				Confidence: 0.6,
				Reason:     "Stiffen front slow bump for a calmer corner entry",
			},
			{
				Parameter:  model.ReboundSlowRear,
				When:       func(s *model.AnalysisSummary) bool { return s.CornerExitTraction < 0.7 },
				Change:     Fixed(-2),
				Guard:      Always,
				Confidence: 0.6,
				Reason:     "Soften rear slow rebound for exit traction",
			},
		},
	}
}
