package recommend

import "github.com/sergeyb2024/telemetry/pkg/model"

const ModuleBrakes = "brakes"

func Brakes() Module {
	return Module{
		Name: ModuleBrakes,
		Rules: []Rule{
			{
				Parameter: model.BrakeBias,
				When: func(s *model.AnalysisSummary) bool {
					return s.FrontBrakeLockup > s.RearBrakeLockup+0.2
				},
				Change:     Fixed(-2),
				Guard:      AboveMin(2),
				Confidence: 0.8,
				Reason:     "Move brake bias to the rear to balance braking",
			},
		},
	}
}
