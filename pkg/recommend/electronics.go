package recommend

import "github.com/sergeyb2024/telemetry/pkg/model"

const ModuleElectronics = "electronics"

func Electronics() Module {
	return Module{
		Name: ModuleElectronics,
		Rules: []Rule{
			{
				Parameter:  model.TC2,
				When:       func(s *model.AnalysisSummary) bool { return s.RearWheelSlip > 0.15 },
				Change:     Fixed(2),
				Guard:      BelowMax(2),
				Confidence: 0.85,
				Reason:     "Raise TC2 to control rear wheel spin",
			},
			{
				Parameter:  model.ABS,
				When:       func(s *model.AnalysisSummary) bool { return s.FrontLockupFrequency > 0.1 },
				Change:     Fixed(1),
				Guard:      BelowMax(1),
				Confidence: 0.8,
				Reason:     "Raise ABS against front wheel lock ups",
			},
		},
	}
}
