// Package setup holds the car catalog with the setup bounds per car and
// reads, modifies and exports car setups.
package setup

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/sergeyb2024/telemetry/log"
	"github.com/sergeyb2024/telemetry/pkg/model"
	"github.com/sergeyb2024/telemetry/pkg/utils/cache"
	"github.com/sergeyb2024/telemetry/pkg/utils/cache/loadercache"
)

// CatalogAPIVersion is the newest catalog format this package reads.
// Catalogs with the same major version and an older or equal version are accepted.
const CatalogAPIVersion = "v1.1.0"

var (
	ErrUnknownCar          = errors.New("unknown car")
	ErrUnsupportedVersion  = errors.New("unsupported catalog version")
	ErrDuplicateCar        = errors.New("duplicate car id")
	ErrInvalidCatalogEntry = errors.New("invalid catalog entry")
)

//go:embed catalog.yml
var builtinCatalog []byte

type (
	ParameterSet map[model.Category]map[model.Parameter]model.ParameterBounds

	// Car is a catalog entry.
	Car struct {
		ID         string       `json:"id" yaml:"id"`
		Name       string       `json:"name" yaml:"name"`
		ModelYear  int          `json:"modelYear" yaml:"modelYear"`
		Class      string       `json:"class" yaml:"class"`
		Wheelbase  float64      `json:"wheelbase" yaml:"wheelbase"` // meters
		Parameters ParameterSet `json:"setupParameters" yaml:"setupParameters"`
	}

	catalogFile struct {
		APIVersion string `yaml:"apiVersion"`
		Cars       []Car  `yaml:"cars"`
	}

	CatalogOption func(*Catalog)
	Catalog       struct {
		version string
		cars    []Car
		byID    map[string]int
		specs   cache.Cache[string, model.SetupParameterSpec]
		l       *log.Logger
	}
)

func (c *Car) Kinematics() model.CarKinematics {
	return model.CarKinematics{Wheelbase: c.Wheelbase}
}

func WithCatalogLogger(l *log.Logger) CatalogOption {
	return func(c *Catalog) {
		c.l = l
	}
}

// DefaultCatalog returns the catalog compiled into the binary.
func DefaultCatalog(opts ...CatalogOption) (*Catalog, error) {
	return LoadCatalog(bytes.NewReader(builtinCatalog), opts...)
}

// LoadCatalogFile reads a catalog file. An empty name returns the default catalog.
func LoadCatalogFile(name string, opts ...CatalogOption) (*Catalog, error) {
	if name == "" {
		return DefaultCatalog(opts...)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ret, err := LoadCatalog(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return ret, nil
}

func LoadCatalog(r io.Reader, opts ...CatalogOption) (*Catalog, error) {
	var data catalogFile
	if err := yaml.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := checkVersion(data.APIVersion); err != nil {
		return nil, err
	}
	ret := &Catalog{
		version: data.APIVersion,
		cars:    data.Cars,
		byID:    make(map[string]int, len(data.Cars)),
		l:       log.Default().Named("setup.catalog"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	for i := range ret.cars {
		car := &ret.cars[i]
		if car.ID == "" || car.Wheelbase <= 0 {
			return nil, fmt.Errorf("%w: car #%d needs an id and a positive wheelbase",
				ErrInvalidCatalogEntry, i+1)
		}
		if _, ok := ret.byID[car.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCar, car.ID)
		}
		ret.byID[car.ID] = i
	}
	ret.specs = loadercache.New(
		loadercache.WithLoader[string, model.SetupParameterSpec](ret.loadSpec),
		loadercache.WithExpiration[string, model.SetupParameterSpec](0),
		loadercache.WithLogger[string, model.SetupParameterSpec](ret.l.Named("cache")),
	)
	ret.l.Debug("catalog loaded",
		log.String("apiVersion", data.APIVersion),
		log.Int("cars", len(ret.cars)))
	return ret, nil
}

func checkVersion(v string) error {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q is no semantic version", ErrUnsupportedVersion, v)
	}
	if semver.Major(v) != semver.Major(CatalogAPIVersion) ||
		semver.Compare(v, CatalogAPIVersion) > 0 {
		return fmt.Errorf("%w: %s (supported up to %s)", ErrUnsupportedVersion, v, CatalogAPIVersion)
	}
	return nil
}

func (c *Catalog) Version() string {
	return c.version
}

// Cars returns the catalog entries sorted by id.
func (c *Catalog) Cars() []Car {
	ret := slices.Clone(c.cars)
	slices.SortFunc(ret, func(a, b Car) int { return strings.Compare(a.ID, b.ID) })
	return ret
}

func (c *Catalog) Car(id string) (*Car, error) {
	idx, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCar, id)
	}
	return &c.cars[idx], nil
}

// Spec returns the validated setup bounds of the car. Specs are built once per car.
func (c *Catalog) Spec(ctx context.Context, id string) (model.SetupParameterSpec, error) {
	ret, err := c.specs.Get(ctx, id)
	if err != nil {
		return model.SetupParameterSpec{}, err
	}
	return *ret, nil
}

func (c *Catalog) loadSpec(_ context.Context, id string) (*model.SetupParameterSpec, error) {
	car, err := c.Car(id)
	if err != nil {
		return nil, err
	}
	spec, err := model.NewSetupParameterSpec(car.Parameters)
	if err != nil {
		return nil, fmt.Errorf("car %s: %w", id, err)
	}
	return &spec, nil
}
