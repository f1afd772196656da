// Package csvsource reads laps exported as CSV by the telemetry logger
// (MoTeC style column names).
package csvsource

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sergeyb2024/telemetry/log"
	"github.com/sergeyb2024/telemetry/pkg/kinematics"
	"github.com/sergeyb2024/telemetry/pkg/model"
)

const (
	ColTime    = "Time"
	ColSpeed   = "SPEED"
	ColLatG    = "G_LAT"
	ColSteer   = "STEERANGLE"
	ColYawRate = "ROTY"

	// used when the file has no time column
	DefaultSampleInterval = 0.05
)

var (
	ErrMissingColumn = errors.New("missing required column")

	requiredColumns = []string{ColSpeed, ColLatG, ColSteer}
	wheelColumns    = [model.NumWheels]string{
		"WHEEL_SPEED_FL", "WHEEL_SPEED_FR", "WHEEL_SPEED_RL", "WHEEL_SPEED_RR",
	}
	allColumns = append([]string{ColTime, ColSpeed, ColLatG, ColSteer, ColYawRate}, wheelColumns[:]...)
)

type (
	Option  func(*options)
	options struct {
		l *log.Logger
	}
)

func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.l = l
	}
}

func ReadFile(name string, opts ...Option) ([]model.TelemetrySample, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ret, err := Read(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return ret, nil
}

// Read parses the CSV data. Cells which are not a number read as 0.
// Without wheel speed columns the wheels are assumed to roll at vehicle
// speed, which yields no slip.
func Read(r io.Reader, opts ...Option) ([]model.TelemetrySample, error) {
	o := &options{l: log.Default().Named("csvsource")}
	for _, opt := range opts {
		opt(o)
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(h)] = i
	}
	for _, c := range requiredColumns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}
	_, hasTime := idx[ColTime]
	hasWheels := true
	for _, c := range wheelColumns {
		if _, ok := idx[c]; !ok {
			hasWheels = false
		}
	}
	if !hasWheels {
		o.l.Warn("no wheel speed columns, slip analysis disabled")
	}

	ret := []model.TelemetrySample{}
	invalid := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", len(ret)+2, err)
		}
		if isBlank(rec) {
			continue
		}
		cell := func(col string) float64 {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return 0
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
			if err != nil {
				invalid++
				return 0
			}
			return v
		}
		s := model.TelemetrySample{
			Time:       cell(ColTime),
			Speed:      cell(ColSpeed),
			LateralG:   cell(ColLatG),
			SteerAngle: cell(ColSteer),
			YawRate:    cell(ColYawRate),
		}
		if !hasTime {
			s.Time = float64(len(ret)) * DefaultSampleInterval
		}
		for w, c := range wheelColumns {
			if hasWheels {
				s.WheelSpeed[w] = cell(c)
			} else {
				s.WheelSpeed[w] = kinematics.ToMetersPerSecond(s.Speed)
			}
		}
		ret = append(ret, s)
	}
	if invalid > 0 {
		o.l.Warn("cells without a number read as 0", log.Int("cells", invalid))
	}
	o.l.Debug("read samples", log.Int("samples", len(ret)))
	return ret, nil
}

// Write writes the raw channels of the samples with all known columns.
func Write(w io.Writer, samples []model.TelemetrySample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(allColumns); err != nil {
		return err
	}
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	for i := range samples {
		s := &samples[i]
		rec := []string{f(s.Time), f(s.Speed), f(s.LateralG), f(s.SteerAngle), f(s.YawRate)}
		for _, v := range s.WheelSpeed {
			rec = append(rec, f(v))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
