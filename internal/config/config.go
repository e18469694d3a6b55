// Package config provides configuration management for tabula readers,
// writers and the CLI
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// MixedPolicy decides what a reader does with a column whose values parse to
// more than one kind.
type MixedPolicy string

const (
	// MixedAsText turns a mixed column into Text. Every value has a textual
	// form, so this never fails.
	MixedAsText MixedPolicy = "text"
	// MixedInfer picks the tightest kind that keeps every value.
	MixedInfer MixedPolicy = "infer"
	// MixedFail rejects the input with a MixedTypeError.
	MixedFail MixedPolicy = "error"
)

// Config represents the configuration for parsing and writing tabular data
type Config struct {
	// Parsing Configuration
	NullValues  []string    `json:"null_values" yaml:"null_values"`   // Field values read as Missing
	Delimiter   string      `json:"delimiter" yaml:"delimiter"`       // CSV field delimiter, one character
	Header      bool        `json:"header" yaml:"header"`             // First CSV record holds column names
	TrimSpace   bool        `json:"trim_space" yaml:"trim_space"`     // Trim surrounding white space before parsing
	MixedPolicy MixedPolicy `json:"mixed_policy" yaml:"mixed_policy"` // What to do with mixed columns
	MaxRecords  int         `json:"max_records" yaml:"max_records"`   // Maximum data records to read (0 = unlimited)

	// Writing Configuration
	NAToken            string `json:"na_token" yaml:"na_token"`                       // Text written for Missing cells
	ParquetCompression string `json:"parquet_compression" yaml:"parquet_compression"` // snappy, gzip, zstd, lz4 or uncompressed

	// Debugging Configuration
	VerboseLogging bool `json:"verbose_logging" yaml:"verbose_logging"` // Enable debug logging
}

// Global configuration instance
var (
	globalConfig Config
	configMutex  sync.RWMutex
)

// Default configuration values
const (
	DefaultDelimiter          = ","
	DefaultNAToken            = "NA"
	DefaultMixedPolicy        = MixedInfer
	DefaultParquetCompression = "snappy"
)

var parquetCompressions = []string{"snappy", "gzip", "zstd", "lz4", "uncompressed"}

// Initialize global configuration with defaults
func init() {
	globalConfig = NewConfig()
}

// NewConfig creates a new configuration with default values
func NewConfig() Config {
	return Config{
		NullValues:  []string{"", DefaultNAToken},
		Delimiter:   DefaultDelimiter,
		Header:      true,
		TrimSpace:   false,
		MixedPolicy: DefaultMixedPolicy,
		MaxRecords:  0, // Unlimited

		NAToken:            DefaultNAToken,
		ParquetCompression: DefaultParquetCompression,

		VerboseLogging: false,
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return fmt.Errorf("Delimiter must be a single character, got %q", c.Delimiter)
	}

	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return fmt.Errorf("Delimiter %q cannot be used", c.Delimiter)
	}

	switch c.MixedPolicy {
	case MixedAsText, MixedInfer, MixedFail:
	default:
		return fmt.Errorf("MixedPolicy must be one of text, infer, error, got %q", c.MixedPolicy)
	}

	if c.MaxRecords < 0 {
		return fmt.Errorf("MaxRecords must be non-negative, got %d", c.MaxRecords)
	}

	if !slices.Contains(parquetCompressions, c.ParquetCompression) {
		return fmt.Errorf("ParquetCompression must be one of %s, got %q",
			strings.Join(parquetCompressions, ", "), c.ParquetCompression)
	}

	return nil
}

// DelimiterRune returns the delimiter as a rune. It assumes a validated
// configuration.
func (c Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// IsNull reports whether a raw field value is one of the null values.
func (c Config) IsNull(field string) bool {
	return slices.Contains(c.NullValues, field)
}

// WithDefaults returns a new configuration with default values filled in for zero values
func (c Config) WithDefaults() Config {
	defaults := NewConfig()

	if c.NullValues == nil {
		c.NullValues = defaults.NullValues
	}
	if c.Delimiter == "" {
		c.Delimiter = defaults.Delimiter
	}
	if c.MixedPolicy == "" {
		c.MixedPolicy = defaults.MixedPolicy
	}
	if c.NAToken == "" {
		c.NAToken = defaults.NAToken
	}
	if c.ParquetCompression == "" {
		c.ParquetCompression = defaults.ParquetCompression
	}

	// Note: Boolean fields are intentionally not set to defaults here
	// This allows distinguishing between explicitly set false and unset values
	// Use NewConfig() directly if you need boolean defaults

	return c
}

// SetGlobalConfig sets the global configuration
func SetGlobalConfig(config Config) {
	configMutex.Lock()
	defer configMutex.Unlock()
	globalConfig = config
}

// GetGlobalConfig returns the current global configuration
func GetGlobalConfig() Config {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return globalConfig
}

// LoadFromJSON loads configuration from JSON data. Keys absent from data
// keep their default values.
func LoadFromJSON(data []byte) (Config, error) {
	config := NewConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing JSON configuration: %w", err)
	}
	return config.WithDefaults(), nil
}

// LoadFromFile loads configuration from a JSON or YAML file. Keys absent
// from the file keep their default values.
func LoadFromFile(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", filename, err)
	}

	config := NewConfig()
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".json":
		err = json.Unmarshal(data, &config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		return Config{}, fmt.Errorf("unsupported config file format: %s", ext)
	}

	if err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", filename, err)
	}

	return config.WithDefaults(), nil
}

// LoadFromEnv loads configuration from TABULA_* environment variables on top
// of the defaults. Values that do not parse are ignored.
func LoadFromEnv() Config {
	config := NewConfig()

	if val, ok := os.LookupEnv("TABULA_NULL_VALUES"); ok {
		config.NullValues = strings.Split(val, ",")
	}

	if val := os.Getenv("TABULA_DELIMITER"); val != "" {
		config.Delimiter = val
	}

	if val := os.Getenv("TABULA_HEADER"); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			config.Header = parsed
		}
	}

	if val := os.Getenv("TABULA_TRIM_SPACE"); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			config.TrimSpace = parsed
		}
	}

	if val := os.Getenv("TABULA_MIXED_POLICY"); val != "" {
		config.MixedPolicy = MixedPolicy(strings.ToLower(val))
	}

	if val := os.Getenv("TABULA_MAX_RECORDS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.MaxRecords = parsed
		}
	}

	if val := os.Getenv("TABULA_NA_TOKEN"); val != "" {
		config.NAToken = val
	}

	if val := os.Getenv("TABULA_PARQUET_COMPRESSION"); val != "" {
		config.ParquetCompression = strings.ToLower(val)
	}

	if val := os.Getenv("TABULA_VERBOSE_LOGGING"); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			config.VerboseLogging = parsed
		}
	}

	return config
}

// ConfigValidator validates a configuration and reports settings that are
// legal but likely to surprise.
type ConfigValidator struct{}

// NewConfigValidator creates a new configuration validator
func NewConfigValidator() *ConfigValidator {
	return &ConfigValidator{}
}

// Validate validates a configuration and provides recommendations
func (cv *ConfigValidator) Validate(config Config) (Config, []string, error) {
	var warnings []string

	if err := config.Validate(); err != nil {
		return Config{}, warnings, err
	}

	if !config.IsNull(config.NAToken) {
		warnings = append(warnings,
			fmt.Sprintf("NA token %q is not a null value, written files will not read back as missing",
				config.NAToken))
	}

	if config.TrimSpace && strings.TrimSpace(config.Delimiter) == "" {
		warnings = append(warnings, "TrimSpace with a white space delimiter trims field separators")
	}

	if !config.Header {
		warnings = append(warnings, "Header is off, columns will be named column_0, column_1, ...")
	}

	return config, warnings, nil
}
