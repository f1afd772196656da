package csvsource

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sergeyb2024/telemetry/pkg/model"
	"github.com/sergeyb2024/telemetry/testsupport/tracegen"
)

func TestRead(t *testing.T) {
	data := `Time,SPEED,G_LAT,STEERANGLE,ROTY,WHEEL_SPEED_FL,WHEEL_SPEED_FR,WHEEL_SPEED_RL,WHEEL_SPEED_RR,THROTTLE
0.00,120.5,0.8,12.5,8.1,33.4,33.5,33.6,33.7,80
0.05,121.0,n/a,12.0,8.0,33.5,33.6,33.7,33.8,81

0.10,121.5,0.9,11.5,7.9,33.6,33.7,33.8,33.9,82
`
	got, err := Read(strings.NewReader(data))
	require.NoError(t, err)
	want := []model.TelemetrySample{
		{Time: 0, Speed: 120.5, LateralG: 0.8, SteerAngle: 12.5, YawRate: 8.1, WheelSpeed: [4]float64{33.4, 33.5, 33.6, 33.7}},
		{Time: 0.05, Speed: 121.0, LateralG: 0, SteerAngle: 12.0, YawRate: 8.0, WheelSpeed: [4]float64{33.5, 33.6, 33.7, 33.8}},
		{Time: 0.10, Speed: 121.5, LateralG: 0.9, SteerAngle: 11.5, YawRate: 7.9, WheelSpeed: [4]float64{33.6, 33.7, 33.8, 33.9}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Read() mismatch (-want +got):\n%s", diff)
	}
}

func TestRead_MinimalColumns(t *testing.T) {
	data := "SPEED,G_LAT,STEERANGLE\n36,0.5,3\n72,0.6,4\n"
	got, err := Read(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, 0.05, got[1].Time, 1e-12)
	assert.InDelta(t, 10.0, got[0].WheelSpeed[model.RL], 1e-4)
	assert.Equal(t, 0.0, got[0].YawRate)
}

func TestRead_MissingColumn(t *testing.T) {
	_, err := Read(strings.NewReader("Time,SPEED,STEERANGLE\n0,100,5\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = Read(strings.NewReader(""))
	assert.Error(t, err)
}

func TestWriteRead(t *testing.T) {
	lap := tracegen.DemoLap()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, lap))
	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, lap, got)
}
