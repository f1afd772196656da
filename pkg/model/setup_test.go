//nolint:funlen,lll // ok for tests
package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleSpec(t *testing.T) SetupParameterSpec {
	t.Helper()
	spec, err := NewSetupParameterSpec(map[Category]map[Parameter]ParameterBounds{
		CategoryAero: {
			Splitter: {Min: 0, Max: 5, Default: 2},
			Wing:     {Min: 0, Max: 12, Default: 6},
		},
		CategoryTyres: {
			PressureLF: {Min: 24, Max: 32, Default: 27.5},
		},
	})
	assert.NoError(t, err)
	return spec
}

func TestNewSetupParameterSpec(t *testing.T) {
	tests := []struct {
		name    string
		input   map[Category]map[Parameter]ParameterBounds
		wantErr error
	}{
		{
			name:  "valid",
			input: map[Category]map[Parameter]ParameterBounds{CategoryAero: {Splitter: {Min: 0, Max: 5, Default: 2}}},
		},
		{
			name:  "unknown parameter in known category",
			input: map[Category]map[Parameter]ParameterBounds{CategoryDampers: {"bumpFast_front": {Min: 0, Max: 40, Default: 10}}},
		},
		{
			name:    "unknown category",
			input:   map[Category]map[Parameter]ParameterBounds{"fuel": {"fuelLoad": {Min: 0, Max: 120, Default: 60}}},
			wantErr: ErrUnknownCategory,
		},
		{
			name:    "wrong category",
			input:   map[Category]map[Parameter]ParameterBounds{CategoryTyres: {Wing: {Min: 0, Max: 12, Default: 6}}},
			wantErr: ErrWrongCategory,
		},
		{
			name:    "min above max",
			input:   map[Category]map[Parameter]ParameterBounds{CategoryAero: {Wing: {Min: 12, Max: 0, Default: 6}}},
			wantErr: ErrInvalidBounds,
		},
		{
			name:    "default outside",
			input:   map[Category]map[Parameter]ParameterBounds{CategoryAero: {Wing: {Min: 0, Max: 12, Default: 13}}},
			wantErr: ErrInvalidBounds,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSetupParameterSpec(tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestCurrentSetup_Value(t *testing.T) {
	spec := sampleSpec(t)
	setup := CurrentSetup{Splitter: 4}

	v, err := setup.Value(Splitter, spec)
	assert.NoError(t, err)
	assert.Equal(t, 4.0, v)

	// sparse setup falls back to default
	v, err = setup.Value(Wing, spec)
	assert.NoError(t, err)
	assert.Equal(t, 6.0, v)

	_, err = setup.Value(ARBFront, spec)
	assert.ErrorIs(t, err, ErrMissingParameter)
}

func TestSetupParameterSpec_ByCategory(t *testing.T) {
	spec := sampleSpec(t)
	byCat := spec.ByCategory()
	assert.Len(t, byCat, 2)
	assert.Equal(t, ParameterBounds{Min: 24, Max: 32, Default: 27.5}, byCat[CategoryTyres][PressureLF])
	assert.Equal(t, []Parameter{PressureLF, Splitter, Wing}, spec.Parameters())
}
