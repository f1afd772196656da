// Package recommend maps an analysis summary onto bounded setup changes.
//
// Rules are grouped in modules. Each module has an ordered primary tier and
// an optional fallback which is only evaluated if the primary tier produced
// nothing.
package recommend

import (
	"fmt"

	"github.com/sergeyb2024/telemetry/pkg/model"
)

type (
	// Condition decides whether a rule applies to a summary.
	Condition func(s *model.AnalysisSummary) bool
	// Delta computes the signed change a rule proposes.
	Delta func(s *model.AnalysisSummary) float64
	// Guard checks the current value for enough headroom.
	Guard func(value float64, b model.ParameterBounds) bool
)

// Fixed is a Delta independent of the summary.
func Fixed(d float64) Delta {
	return func(*model.AnalysisSummary) float64 { return d }
}

// AboveMin requires value > min + margin.
func AboveMin(margin float64) Guard {
	return func(v float64, b model.ParameterBounds) bool {
		return v > b.Min+margin
	}
}

// BelowMax requires value < max - margin.
func BelowMax(margin float64) Guard {
	return func(v float64, b model.ParameterBounds) bool {
		return v < b.Max-margin
	}
}

// Unconditional applies to every summary.
func Unconditional(*model.AnalysisSummary) bool {
	return true
}

// Always accepts any current value. The post change check still applies.
func Always(float64, model.ParameterBounds) bool {
	return true
}

type Rule struct {
	Parameter  model.Parameter
	When       Condition
	Change     Delta
	Guard      Guard
	Confidence float64
	Reason     string
}

// Evaluate returns the recommendation of the rule or nil if it does not apply,
// there is no headroom or the changed value would leave the bounds.
// A parameter missing in spec yields an error wrapping model.ErrMissingParameter.
//
//nolint:whitespace // can't make both editor and linter happy
func (r *Rule) Evaluate(
	s *model.AnalysisSummary,
	setup model.CurrentSetup,
	spec model.SetupParameterSpec,
) (*model.Recommendation, error) {
	if !r.When(s) {
		return nil, nil
	}
	b, err := spec.Bounds(r.Parameter)
	if err != nil {
		return nil, err
	}
	current, err := setup.Value(r.Parameter, spec)
	if err != nil {
		return nil, err
	}
	guard := r.Guard
	if guard == nil {
		guard = Always
	}
	if !guard(current, b) {
		return nil, nil
	}
	change := r.Change(s)
	if !b.Contains(current + change) {
		return nil, nil
	}
	return &model.Recommendation{
		Parameter:  r.Parameter,
		Change:     change,
		Confidence: r.Confidence,
		Reason:     r.Reason,
	}, nil
}

type Module struct {
	Name     string
	Rules    []Rule
	Fallback *Rule
}

// Evaluate runs the primary tier in order and the fallback if the primary
// tier produced no recommendation. The module is pure.
//
//nolint:whitespace // can't make both editor and linter happy
func (m *Module) Evaluate(
	s *model.AnalysisSummary,
	setup model.CurrentSetup,
	spec model.SetupParameterSpec,
) ([]model.Recommendation, error) {
	ret := []model.Recommendation{}
	for i := range m.Rules {
		rec, err := m.Rules[i].Evaluate(s, setup, spec)
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", m.Name, err)
		}
		if rec != nil {
			rec.Module = m.Name
			ret = append(ret, *rec)
		}
	}
	if len(ret) > 0 || m.Fallback == nil {
		return ret, nil
	}
	rec, err := m.Fallback.Evaluate(s, setup, spec)
	if err != nil {
		return nil, fmt.Errorf("module %s: %w", m.Name, err)
	}
	if rec != nil {
		rec.Module = m.Name
		ret = append(ret, *rec)
	}
	return ret, nil
}

// Parameters returns the parameters touched by the rules of the module.
func (m *Module) Parameters() []model.Parameter {
	ret := make([]model.Parameter, 0, len(m.Rules)+1)
	for i := range m.Rules {
		ret = append(ret, m.Rules[i].Parameter)
	}
	if m.Fallback != nil {
		ret = append(ret, m.Fallback.Parameter)
	}
	return ret
}
