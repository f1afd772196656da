package recommend

import "github.com/sergeyb2024/telemetry/pkg/model"

const ModuleTyres = "tyres"

func Tyres() Module {
	frontUndersteer := func(s *model.AnalysisSummary) bool { return s.FrontUndersteer > 0.3 }
	rearOversteer := func(s *model.AnalysisSummary) bool { return s.RearOversteer > 0.3 }
	pressure := func(p model.Parameter, when Condition, reason string) Rule {
		return Rule{
			Parameter:  p,
			When:       when,
			Change:     Fixed(-0.5),
			Guard:      AboveMin(1),
			Confidence: 0.7,
			Reason:     reason,
		}
	}
	const (
		frontReason = "Lower front pressure for a larger contact patch"
		rearReason  = "Lower rear pressure for more rear grip"
	)
	return Module{
		Name: ModuleTyres,
		Rules: []Rule{
			pressure(model.PressureLF, frontUndersteer, frontReason),
			pressure(model.PressureLR, rearOversteer, rearReason),
		},
	}
}
