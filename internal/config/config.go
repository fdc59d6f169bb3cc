package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "confstats/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Conference ConferenceConfig `yaml:"conference" envconfig:"CONFERENCE"`
	Report     ReportConfig     `yaml:"report" envconfig:"REPORT"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Telemetry  TelemetryConfig  `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ConferenceConfig describes the conference and the layout of its export.
type ConferenceConfig struct {
	Name                string `yaml:"name" envconfig:"NAME" validate:"required"`
	Scores              []int  `yaml:"scores" envconfig:"SCORES" validate:"required,min=1"`
	AcceptScores        []int  `yaml:"accept_scores" envconfig:"ACCEPT_SCORES" validate:"required,min=1"`
	TopicsMarker        string `yaml:"topics_marker" envconfig:"TOPICS_MARKER" validate:"required"`
	ReviewsResource     string `yaml:"reviews_resource" envconfig:"REVIEWS_RESOURCE" validate:"required"`
	FieldValuesResource string `yaml:"field_values_resource" envconfig:"FIELD_VALUES_RESOURCE" validate:"required"`
}

// ReportConfig contains output locations. Empty optional paths disable
// the corresponding export.
type ReportConfig struct {
	OutputPath string `yaml:"output_path" envconfig:"OUTPUT_PATH" validate:"required"`
	CSVDir     string `yaml:"csv_dir" envconfig:"CSV_DIR"`
	XLSXPath   string `yaml:"xlsx_path" envconfig:"XLSX_PATH"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// TelemetryConfig controls tracing and metrics for a run
type TelemetryConfig struct {
	TraceExporter string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stdout"`
	MetricsFile   string `yaml:"metrics_file" envconfig:"METRICS_FILE"`
	Environment   string `yaml:"environment" envconfig:"ENVIRONMENT"`
}

// Load builds the configuration from compiled-in defaults, an optional YAML
// file and CONFSTATS_* environment variables, in increasing precedence.
func Load(filePath string) (*Config, error) {
	cfg := Default()

	if filePath != "" {
		if err := loadFromFile(filePath, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("path", filePath)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file at filePath onto cfg. Keys absent
// from the file keep their current value.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(data, cfg)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(validateScale, ConferenceConfig{})
	return v
}

// validateScale enforces a strictly descending scale and accept scores
// drawn from it.
func validateScale(sl validator.StructLevel) {
	c := sl.Current().Interface().(ConferenceConfig)

	for i := 1; i < len(c.Scores); i++ {
		if c.Scores[i] >= c.Scores[i-1] {
			sl.ReportError(c.Scores, "Scores", "scores", "descending", "")
			break
		}
	}

	allowed := make(map[int]bool, len(c.Scores))
	for _, s := range c.Scores {
		allowed[s] = true
	}
	for _, s := range c.AcceptScores {
		if !allowed[s] {
			sl.ReportError(c.AcceptScores, "AcceptScores", "accept_scores", "subset", "")
			break
		}
	}
}

// Validate checks the configuration and returns a CONFIG error naming every
// failing field.
func (c *Config) Validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Output = strings.ToLower(c.Logging.Output)
	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.NewConfigError("config validation failed", err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
	}
	sort.Strings(fields)
	return apperrors.NewConfigError("config validation failed", err).
		WithContext("fields", strings.Join(fields, ", "))
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Conference: ConferenceConfig{
			Name:                DefaultConferenceName,
			Scores:              append([]int(nil), DefaultScores...),
			AcceptScores:        append([]int(nil), DefaultAcceptScores...),
			TopicsMarker:        DefaultTopicsMarker,
			ReviewsResource:     DefaultReviewsResource,
			FieldValuesResource: DefaultFieldValuesResource,
		},
		Report: ReportConfig{
			OutputPath: DefaultOutputPath,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Output: "console",
		},
		Telemetry: TelemetryConfig{
			TraceExporter: "none",
			Environment:   "development",
		},
	}
}
