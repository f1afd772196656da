package recommend

import "github.com/sergeyb2024/telemetry/pkg/model"

const ModuleSuspension = "suspension"

// Suspension softens the front anti roll bar on entry understeer. Whenever no
// bar change comes out, the front springs are softened instead.
func Suspension() Module {
	return Module{
		Name: ModuleSuspension,
		Rules: []Rule{
			{
				Parameter:  model.ARBFront,
				When:       entryUndersteer,
				Change:     Fixed(-2),
				Guard:      AboveMin(2),
				Confidence: 0.9,
				Reason:     "Soften front anti roll bar for more front grip on corner entry",
			},
		},
		Fallback: &Rule{
			Parameter:  model.WheelRateFront,
			When:       Unconditional,
			Change:     Fixed(-10),
			Guard:      Always,
			Confidence: 0.7,
			Reason:     "Soften front springs for more compliance",
		},
	}
}

func entryUndersteer(s *model.AnalysisSummary) bool {
	return s.CornerEntryUndersteer > 0.4
}
