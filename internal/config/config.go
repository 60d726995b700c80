package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix for all environment variable overrides.
const EnvPrefix = "CATALOGLENS"

// Config represents the complete pipeline configuration. Values come from an
// optional YAML file overlaid with environment variables; env wins. All
// thresholds live here rather than in package state so runs with different
// parameters are independent.
type Config struct {
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Cleaning CleaningConfig `yaml:"cleaning" envconfig:"CLEANING"`
	Stats    StatsConfig    `yaml:"stats" envconfig:"STATS"`
	Anomaly  AnomalyConfig  `yaml:"anomaly" envconfig:"ANOMALY"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	Input     string `yaml:"input" envconfig:"INPUT" default:"data/catalog.csv" validate:"required"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"out" validate:"required"`
	ChartsDir string `yaml:"charts_dir" envconfig:"CHARTS_DIR" default:"out/charts" validate:"required"`
}

// CleanedCSV returns the path of the cleaned catalog output file.
func (p PathsConfig) CleanedCSV() string {
	return p.OutputDir + string(os.PathSeparator) + "catalog_cleaned.csv"
}

// QualityJSON returns the path of the quality report sidecar.
func (p PathsConfig) QualityJSON() string {
	return p.OutputDir + string(os.PathSeparator) + "quality_report.json"
}

// SummaryJSON returns the path of the statistical summary output.
func (p PathsConfig) SummaryJSON() string {
	return p.OutputDir + string(os.PathSeparator) + "summary.json"
}

// AnomaliesJSON returns the path of the anomaly report output.
func (p PathsConfig) AnomaliesJSON() string {
	return p.OutputDir + string(os.PathSeparator) + "anomalies.json"
}

// Workbook returns the path of the combined XLSX report.
func (p PathsConfig) Workbook() string {
	return p.OutputDir + string(os.PathSeparator) + "analysis.xlsx"
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/cataloglens.log"`
}

// CleaningConfig contains the missing-value policy knobs. Sentinels replace
// acceptable-but-missing categorical fields; rows missing any required field
// are dropped and counted.
type CleaningConfig struct {
	RequiredColumns  []string `yaml:"required_columns" envconfig:"REQUIRED_COLUMNS" default:"show_id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description" validate:"min=1"`
	DirectorSentinel string   `yaml:"director_sentinel" envconfig:"DIRECTOR_SENTINEL" default:"Unknown Director" validate:"required"`
	CastSentinel     string   `yaml:"cast_sentinel" envconfig:"CAST_SENTINEL" default:"Unknown Cast" validate:"required"`
	CountrySentinel  string   `yaml:"country_sentinel" envconfig:"COUNTRY_SENTINEL" default:"Unknown Country" validate:"required"`
}

// StatsConfig contains statistics engine configuration. YearBuckets are the
// inner edges of the rating-composition buckets over date-added year; N
// edges produce N+1 buckets.
type StatsConfig struct {
	Percentiles []int `yaml:"percentiles" envconfig:"PERCENTILES" default:"25,50,75,90" validate:"min=1,dive,gt=0,lt=100"`
	YearBuckets []int `yaml:"year_buckets" envconfig:"YEAR_BUCKETS" default:"2015,2018,2021" validate:"min=1"`
	TopN        int   `yaml:"top_n" envconfig:"TOP_N" default:"10" validate:"gt=0"`
}

// AnomalyConfig contains outlier detection thresholds. Defaults: IQR
// multiplier 1.5, z-score threshold 3.0.
type AnomalyConfig struct {
	IQRMultiplier   float64 `yaml:"iqr_multiplier" envconfig:"IQR_MULTIPLIER" default:"1.5" validate:"gt=0"`
	ZScoreThreshold float64 `yaml:"zscore_threshold" envconfig:"ZSCORE_THRESHOLD" default:"3.0" validate:"gt=0"`
}

// Load loads configuration from an optional YAML file and environment
// variables. Pass an empty path to skip the file layer. Environment
// variables take precedence; defaults fill whatever remains unset.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := loadFromFile(configFile, &cfg); err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
		}
	}

	// envconfig fills zero fields with defaults and applies env overrides on
	// top of whatever the file set.
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
