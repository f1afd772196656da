package setup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"gopkg.in/yaml.v3"

	"github.com/sergeyb2024/telemetry/pkg/model"
)

var ErrUnknownSetupFormat = errors.New("unknown setup format")

// accPaths locates the parameters in a setup file saved by the simulator.
// Array indexes are FL, FR, RL, RR.
var accPaths = map[model.Parameter]string{
	model.PressureLF:       "$.basicSetup.tyres.tyrePressure[0]",
	model.PressureRF:       "$.basicSetup.tyres.tyrePressure[1]",
	model.PressureLR:       "$.basicSetup.tyres.tyrePressure[2]",
	model.PressureRR:       "$.basicSetup.tyres.tyrePressure[3]",
	model.ToeFront:         "$.basicSetup.alignment.toe[0]",
	model.ToeRear:          "$.basicSetup.alignment.toe[2]",
	model.CamberFront:      "$.basicSetup.alignment.camber[0]",
	model.CamberRear:       "$.basicSetup.alignment.camber[2]",
	model.TC1:              "$.basicSetup.electronics.tC1",
	model.TC2:              "$.basicSetup.electronics.tC2",
	model.ABS:              "$.basicSetup.electronics.abs",
	model.ARBFront:         "$.advancedSetup.mechanicalBalance.aRBFront",
	model.ARBRear:          "$.advancedSetup.mechanicalBalance.aRBRear",
	model.WheelRateFront:   "$.advancedSetup.mechanicalBalance.wheelRate[0]",
	model.WheelRateRear:    "$.advancedSetup.mechanicalBalance.wheelRate[2]",
	model.BrakeBias:        "$.advancedSetup.mechanicalBalance.brakeBias",
	model.BumpSlowFront:    "$.advancedSetup.dampers.bumpSlow[0]",
	model.BumpSlowRear:     "$.advancedSetup.dampers.bumpSlow[2]",
	model.ReboundSlowFront: "$.advancedSetup.dampers.reboundSlow[0]",
	model.ReboundSlowRear:  "$.advancedSetup.dampers.reboundSlow[2]",
	model.RideHeightFront:  "$.advancedSetup.aeroBalance.rideHeight[0]",
	model.RideHeightRear:   "$.advancedSetup.aeroBalance.rideHeight[2]",
	model.Splitter:         "$.advancedSetup.aeroBalance.splitter",
	model.Wing:             "$.advancedSetup.aeroBalance.rearWing",
	model.Preload:          "$.advancedSetup.drivetrain.preload",
}

var (
	accMarker    = jp.MustParseString("$.basicSetup")
	exportMarker = jp.MustParseString("$.setup")
)

// ReadSetupFile reads a current setup. YAML files are a flat parameter map,
// JSON files may be a simulator setup, an exported setup or a flat map.
func ReadSetupFile(name string) (model.CurrentSetup, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yml", ".yaml":
		ret := model.CurrentSetup{}
		if err := yaml.Unmarshal(data, &ret); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return ret, nil
	case ".json":
		ret, err := ParseSetupJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return ret, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSetupFormat, name)
	}
}

// ParseSetupJSON detects the kind of JSON setup and extracts the parameters.
func ParseSetupJSON(data []byte) (model.CurrentSetup, error) {
	obj, err := oj.Parse(data)
	if err != nil {
		return nil, err
	}
	if len(accMarker.Get(obj)) > 0 {
		return fromACC(obj), nil
	}
	if res := exportMarker.Get(obj); len(res) > 0 {
		return fromFlat(res[0])
	}
	return fromFlat(obj)
}

// ParseACCSetup extracts the known parameters from a simulator setup file.
// Parameters not present in the file are left out.
func ParseACCSetup(data []byte) (model.CurrentSetup, error) {
	obj, err := oj.Parse(data)
	if err != nil {
		return nil, err
	}
	return fromACC(obj), nil
}

func fromACC(obj any) model.CurrentSetup {
	ret := model.CurrentSetup{}
	for p, path := range accPaths {
		res := jp.MustParseString(path).Get(obj)
		if len(res) == 0 {
			continue
		}
		if v, ok := toFloat(res[0]); ok {
			ret[p] = v
		}
	}
	return ret
}

func fromFlat(obj any) (model.CurrentSetup, error) {
	m, ok := obj.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected an object", ErrUnknownSetupFormat)
	}
	ret := model.CurrentSetup{}
	for k, v := range m {
		f, ok := toFloat(v)
		if !ok {
			return nil, fmt.Errorf("%w: %s is not a number", ErrUnknownSetupFormat, k)
		}
		ret[model.Parameter(k)] = f
	}
	return ret, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
