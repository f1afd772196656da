package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	LogLevel          string // sets the log level (zap log level values)
	LogFormat         string // text vs json
	LogFilter         string // zapfilter rules, e.g. "debug:pipeline.* info:*"
	EnableTelemetry   bool   // enable telemetry
	TelemetryEndpoint string // endpoint for telemetry ("stdout" writes to stdout)
	CatalogFile       string // path to car catalog yaml (empty: built-in catalog)
	Workers           int    // number of workers for parallel stages (0: GOMAXPROCS)
	CarID             string // car to analyze
	SetupFile         string // path to current setup (ACC setup json or yaml)
	UnclosedCorner    string // drop or truncate
	OutputFormat      string // text, json or yaml
	ApplyOut          string // write adjusted setup to this file
)

// Config holds the configuration values which are used by the application
type Config struct {
	Workers  int    // number of workers for parallel stages
	Unclosed string // policy for a corner still open at the end of a lap
	Format   string // output format
}

// NewConfig converts the resolved CLI values into a Config
func NewConfig() Config {
	return Config{
		Workers:  Workers,
		Unclosed: UnclosedCorner,
		Format:   OutputFormat,
	}
}
