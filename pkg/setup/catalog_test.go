//nolint:funlen // ok for tests
package setup

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergeyb2024/telemetry/pkg/model"
	"github.com/sergeyb2024/telemetry/pkg/recommend"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	assert.Equal(t, CatalogAPIVersion, c.Version())

	cars := c.Cars()
	ids := make([]string, 0, len(cars))
	for _, car := range cars {
		ids = append(ids, car.ID)
	}
	assert.Equal(t, []string{
		"audi_r8_lms_evo",
		"bmw_m4_gt3",
		"ferrari_488_gt3_evo",
		"mercedes_amg_gt3",
		"mercedes_amg_gt3_evo",
	}, ids)

	bmw, err := c.Car("bmw_m4_gt3")
	require.NoError(t, err)
	assert.Equal(t, model.CarKinematics{Wheelbase: 2.810}, bmw.Kinematics())
	assert.Equal(t, "BMW M4 GT3", bmw.Name)
}

func TestDefaultCatalog_SpecsSupportAllModules(t *testing.T) {
	ctx := context.Background()
	c, err := DefaultCatalog()
	require.NoError(t, err)
	for _, car := range c.Cars() {
		t.Run(car.ID, func(t *testing.T) {
			spec, err := c.Spec(ctx, car.ID)
			require.NoError(t, err)
			_, err = recommend.NewEngine(spec)
			assert.NoError(t, err)
		})
	}
}

func TestCatalog_UnknownCar(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	_, err = c.Car("trabant")
	assert.ErrorIs(t, err, ErrUnknownCar)
	_, err = c.Spec(context.Background(), "trabant")
	assert.ErrorIs(t, err, ErrUnknownCar)
}

func TestLoadCatalog(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{
			name: "minimal",
			data: `
apiVersion: v1.0.0
cars:
  - id: test
    wheelbase: 2.5
    setupParameters:
      aero:
        splitter: {min: 0, max: 5, default: 2}
`,
		},
		{
			name:    "short version accepted",
			data:    "apiVersion: \"1.1\"\ncars: []\n",
			wantErr: nil,
		},
		{name: "newer minor", data: "apiVersion: v1.2.0\n", wantErr: ErrUnsupportedVersion},
		{name: "other major", data: "apiVersion: v2.0.0\n", wantErr: ErrUnsupportedVersion},
		{name: "no version", data: "cars: []\n", wantErr: ErrUnsupportedVersion},
		{
			name:    "duplicate",
			data:    "apiVersion: v1.0.0\ncars:\n  - {id: a, wheelbase: 2}\n  - {id: a, wheelbase: 2}\n",
			wantErr: ErrDuplicateCar,
		},
		{
			name:    "missing wheelbase",
			data:    "apiVersion: v1.0.0\ncars:\n  - {id: a}\n",
			wantErr: ErrInvalidCatalogEntry,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog(strings.NewReader(tt.data))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCatalog_InvalidBoundsReportedPerCar(t *testing.T) {
	data := `
apiVersion: v1.0.0
cars:
  - id: broken
    wheelbase: 2.5
    setupParameters:
      aero:
        splitter: {min: 5, max: 0, default: 2}
`
	c, err := LoadCatalog(strings.NewReader(data))
	require.NoError(t, err)
	_, err = c.Spec(context.Background(), "broken")
	assert.ErrorIs(t, err, model.ErrInvalidBounds)
}

func TestLoadCatalogFile(t *testing.T) {
	c, err := LoadCatalogFile("catalog.yml")
	require.NoError(t, err)
	assert.Len(t, c.Cars(), 5)

	c, err = LoadCatalogFile("")
	require.NoError(t, err)
	assert.Len(t, c.Cars(), 5)

	_, err = LoadCatalogFile("testdata/missing.yml")
	assert.Error(t, err)
}
