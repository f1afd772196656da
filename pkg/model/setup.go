package model

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrMissingParameter = errors.New("parameter missing in setup spec")
	ErrUnknownCategory  = errors.New("unknown setup category")
	ErrInvalidBounds    = errors.New("invalid parameter bounds")
	ErrWrongCategory    = errors.New("parameter listed in wrong category")
)

type Category string

const (
	CategoryAero           Category = "aero"
	CategoryMechanicalGrip Category = "mechanicalGrip"
	CategoryElectronics    Category = "electronics"
	CategoryTyres          Category = "tyres"
	CategoryAlignment      Category = "alignment"
	CategoryDampers        Category = "dampers"
)

var Categories = []Category{
	CategoryAero, CategoryMechanicalGrip, CategoryElectronics,
	CategoryTyres, CategoryAlignment, CategoryDampers,
}

// Parameter is the name of a setup parameter as used by the simulator.
type Parameter string

const (
	Splitter         Parameter = "splitter"
	Wing             Parameter = "wing"
	RideHeightFront  Parameter = "rideHeight_front"
	RideHeightRear   Parameter = "rideHeight_rear"
	ARBFront         Parameter = "ARBFront"
	ARBRear          Parameter = "ARBRear"
	WheelRateFront   Parameter = "wheelRate_front"
	WheelRateRear    Parameter = "wheelRate_rear"
	Preload          Parameter = "preload"
	TC1              Parameter = "tC1"
	TC2              Parameter = "tC2"
	ABS              Parameter = "abs"
	BrakeBias        Parameter = "brakeBias"
	PressureLF       Parameter = "pressureLF"
	PressureRF       Parameter = "pressureRF"
	PressureLR       Parameter = "pressureLR"
	PressureRR       Parameter = "pressureRR"
	ToeFront         Parameter = "toe_front"
	ToeRear          Parameter = "toe_rear"
	CamberFront      Parameter = "camber_front"
	CamberRear       Parameter = "camber_rear"
	BumpSlowFront    Parameter = "bumpSlow_front"
	BumpSlowRear     Parameter = "bumpSlow_rear"
	ReboundSlowFront Parameter = "reboundSlow_front"
	ReboundSlowRear  Parameter = "reboundSlow_rear"
)

var knownParameters = map[Parameter]Category{
	Splitter:         CategoryAero,
	Wing:             CategoryAero,
	RideHeightFront:  CategoryAero,
	RideHeightRear:   CategoryAero,
	ARBFront:         CategoryMechanicalGrip,
	ARBRear:          CategoryMechanicalGrip,
	WheelRateFront:   CategoryMechanicalGrip,
	WheelRateRear:    CategoryMechanicalGrip,
	Preload:          CategoryMechanicalGrip,
	TC1:              CategoryElectronics,
	TC2:              CategoryElectronics,
	ABS:              CategoryElectronics,
	BrakeBias:        CategoryElectronics,
	PressureLF:       CategoryTyres,
	PressureRF:       CategoryTyres,
	PressureLR:       CategoryTyres,
	PressureRR:       CategoryTyres,
	ToeFront:         CategoryAlignment,
	ToeRear:          CategoryAlignment,
	CamberFront:      CategoryAlignment,
	CamberRear:       CategoryAlignment,
	BumpSlowFront:    CategoryDampers,
	BumpSlowRear:     CategoryDampers,
	ReboundSlowFront: CategoryDampers,
	ReboundSlowRear:  CategoryDampers,
}

// Category returns the category a known parameter belongs to.
func (p Parameter) Category() (Category, bool) {
	c, ok := knownParameters[p]
	return c, ok
}

// ParameterBounds holds the legal range and the default of a parameter.
type ParameterBounds struct {
	Min     float64 `json:"min" yaml:"min"`
	Max     float64 `json:"max" yaml:"max"`
	Default float64 `json:"default" yaml:"default"`
}

func (b ParameterBounds) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

func (b ParameterBounds) validate() error {
	if b.Min > b.Max || !b.Contains(b.Default) {
		return fmt.Errorf("%w: min=%v max=%v default=%v",
			ErrInvalidBounds, b.Min, b.Max, b.Default)
	}
	return nil
}

// SetupParameterSpec is the validated, read-only bounds model of one car.
type SetupParameterSpec struct {
	params   map[Parameter]ParameterBounds
	category map[Parameter]Category
}

// NewSetupParameterSpec validates the per category bounds.
// Parameters not known to this package are accepted as long as their category is known.
//
//nolint:whitespace // can't make both editor and linter happy
func NewSetupParameterSpec(
	byCategory map[Category]map[Parameter]ParameterBounds,
) (SetupParameterSpec, error) {
	ret := SetupParameterSpec{
		params:   make(map[Parameter]ParameterBounds),
		category: make(map[Parameter]Category),
	}
	for cat, params := range byCategory {
		if !slices.Contains(Categories, cat) {
			return SetupParameterSpec{}, fmt.Errorf("%w: %s", ErrUnknownCategory, cat)
		}
		for p, b := range params {
			if known, ok := p.Category(); ok && known != cat {
				return SetupParameterSpec{}, fmt.Errorf("%w: %s belongs to %s, not %s",
					ErrWrongCategory, p, known, cat)
			}
			if err := b.validate(); err != nil {
				return SetupParameterSpec{}, fmt.Errorf("%s: %w", p, err)
			}
			ret.params[p] = b
			ret.category[p] = cat
		}
	}
	return ret, nil
}

// MustSetupParameterSpec is NewSetupParameterSpec for static data.
func MustSetupParameterSpec(byCategory map[Category]map[Parameter]ParameterBounds) SetupParameterSpec {
	ret, err := NewSetupParameterSpec(byCategory)
	if err != nil {
		panic(err)
	}
	return ret
}

// Bounds returns the bounds of p or an error wrapping ErrMissingParameter.
func (s SetupParameterSpec) Bounds(p Parameter) (ParameterBounds, error) {
	b, ok := s.params[p]
	if !ok {
		return ParameterBounds{}, fmt.Errorf("%w: %s", ErrMissingParameter, p)
	}
	return b, nil
}

func (s SetupParameterSpec) Has(p Parameter) bool {
	_, ok := s.params[p]
	return ok
}

// Parameters returns all parameters sorted by name.
func (s SetupParameterSpec) Parameters() []Parameter {
	ret := make([]Parameter, 0, len(s.params))
	for p := range s.params {
		ret = append(ret, p)
	}
	slices.Sort(ret)
	return ret
}

// ByCategory returns a copy of the spec organized by category.
func (s SetupParameterSpec) ByCategory() map[Category]map[Parameter]ParameterBounds {
	ret := make(map[Category]map[Parameter]ParameterBounds)
	for p, b := range s.params {
		cat := s.category[p]
		if ret[cat] == nil {
			ret[cat] = make(map[Parameter]ParameterBounds)
		}
		ret[cat][p] = b
	}
	return ret
}

// CurrentSetup maps parameters to their current value. It may be sparse.
type CurrentSetup map[Parameter]float64

// Value returns the current value of p, falling back to the spec default.
func (c CurrentSetup) Value(p Parameter, spec SetupParameterSpec) (float64, error) {
	b, err := spec.Bounds(p)
	if err != nil {
		return 0, err
	}
	if v, ok := c[p]; ok {
		return v, nil
	}
	return b.Default, nil
}
