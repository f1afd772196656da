package setup

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"time"

	"github.com/ohler55/ojg/oj"
	"github.com/shopspring/decimal"

	"github.com/sergeyb2024/telemetry/pkg/model"
)

var ErrOutOfRange = errors.New("value out of range")

// Defaults returns a setup with every parameter of spec at its default.
func Defaults(spec model.SetupParameterSpec) model.CurrentSetup {
	ret := model.CurrentSetup{}
	for _, p := range spec.Parameters() {
		b, _ := spec.Bounds(p)
		ret[p] = b.Default
	}
	return ret
}

// Apply returns a new setup with the changes applied. Changes to the same
// parameter accumulate. Decimal arithmetic keeps steps like 0.05 exact.
// A result outside the bounds is an error, values are never clamped.
//
//nolint:whitespace // can't make both editor and linter happy
func Apply(
	spec model.SetupParameterSpec,
	current model.CurrentSetup,
	recs []model.Recommendation,
) (model.CurrentSetup, error) {
	ret := maps.Clone(current)
	if ret == nil {
		ret = model.CurrentSetup{}
	}
	for _, r := range recs {
		b, err := spec.Bounds(r.Parameter)
		if err != nil {
			return nil, err
		}
		v, err := ret.Value(r.Parameter, spec)
		if err != nil {
			return nil, err
		}
		next := decimal.NewFromFloat(v).Add(decimal.NewFromFloat(r.Change)).InexactFloat64()
		if !b.Contains(next) {
			return nil, fmt.Errorf("%w: %s=%v not in [%v,%v]",
				ErrOutOfRange, r.Parameter, next, b.Min, b.Max)
		}
		ret[r.Parameter] = next
	}
	return ret, nil
}

// Export writes the setup of the car as indented JSON.
func Export(w io.Writer, car *Car, setup model.CurrentSetup, at time.Time) error {
	values := make(map[string]any, len(setup))
	for p, v := range setup {
		values[string(p)] = v
	}
	data := map[string]any{
		"carId":      car.ID,
		"carName":    car.Name,
		"setup":      values,
		"exportDate": at.UTC().Format(time.RFC3339),
	}
	_, err := io.WriteString(w, oj.JSON(data, &oj.Options{Indent: 2, Sort: true})+"\n")
	return err
}
