package recommend

import "github.com/sergeyb2024/telemetry/pkg/model"

const ModuleAlignment = "alignment"

func Alignment() Module {
	return Module{
		Name: ModuleAlignment,
		Rules: []Rule{
			{
				Parameter:  model.ToeFront,
				When:       func(s *model.AnalysisSummary) bool { return s.StraightLineInstability > 0.2 },
				Change:     Fixed(0.05),
				Guard:      Always,
				Confidence: 0.6,
				Reason:     "Add front toe in for straight line stability",
			},
			{
				Parameter:  model.CamberFront,
				When:       func(s *model.AnalysisSummary) bool { return s.TireWearImbalance > 0.3 },
				Change:     Fixed(-0.2),
				Guard:      Always,
				Confidence: 0.5,
				Reason:     "More negative front camber for an even tyre contact",
			},
		},
	}
}
