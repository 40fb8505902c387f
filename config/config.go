package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all configuration for the segmenter.
type Config struct {
	Segment SegmentConfig `yaml:"segment"`
	Corpus  CorpusConfig  `yaml:"corpus"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// SegmentConfig holds scoring and decision parameters.
type SegmentConfig struct {
	BranchThreshold int    `yaml:"branch_threshold"` // minimum distinct children at a split node
	MinStemLength   int    `yaml:"min_stem_length"`
	TiePolicy       string `yaml:"tie_policy"` // "later" or "earlier"
	Workers         int    `yaml:"workers"`    // 0 = one per CPU
	CacheSize       int    `yaml:"cache_size"` // 0 disables the decision cache
}

// CorpusConfig controls how the word list is read.
type CorpusConfig struct {
	Includes  []string `yaml:"includes"`
	Excludes  []string `yaml:"excludes"`
	Mode      string   `yaml:"mode"` // "lines" or "fields"
	Lowercase bool     `yaml:"lowercase"`
	SkipBlank bool     `yaml:"skip_blank"`
}

// OutputConfig holds output file names.
type OutputConfig struct {
	Dir         string `yaml:"dir"`
	PrefixFile  string `yaml:"prefix_file"`
	SuffixFile  string `yaml:"suffix_file"`
	FinalFile   string `yaml:"final_file"`
	SummaryFile string `yaml:"summary_file"`
	MetricsFile string `yaml:"metrics_file"` // Prometheus textfile, empty disables
	Store       bool   `yaml:"store"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Segment: SegmentConfig{
			BranchThreshold: 15,
			MinStemLength:   2,
			TiePolicy:       "later",
			Workers:         0,
			CacheSize:       512,
		},
		Corpus: CorpusConfig{
			Includes:  []string{"**/*.txt"},
			Excludes:  []string{"**/.morphseg/**", "**/*_out.txt", "**/trie_output.txt"},
			Mode:      "lines",
			Lowercase: true,
			SkipBlank: true,
		},
		Output: OutputConfig{
			Dir:         ".",
			PrefixFile:  "prefix_out.txt",
			SuffixFile:  "suffix_out.txt",
			FinalFile:   "trie_output.txt",
			SummaryFile: "summary.yaml",
			Store:       true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if c.Segment.BranchThreshold < 1 {
		return fmt.Errorf("%w: segment.branch_threshold must be >= 1, got %d", ErrInvalidConfig, c.Segment.BranchThreshold)
	}
	if c.Segment.MinStemLength < 1 {
		return fmt.Errorf("%w: segment.min_stem_length must be >= 1, got %d", ErrInvalidConfig, c.Segment.MinStemLength)
	}
	switch c.Segment.TiePolicy {
	case "later", "earlier":
	default:
		return fmt.Errorf("%w: segment.tie_policy must be \"later\" or \"earlier\", got %q", ErrInvalidConfig, c.Segment.TiePolicy)
	}
	if c.Segment.Workers < 0 {
		return fmt.Errorf("%w: segment.workers must be >= 0, got %d", ErrInvalidConfig, c.Segment.Workers)
	}
	if c.Segment.CacheSize < 0 {
		return fmt.Errorf("%w: segment.cache_size must be >= 0, got %d", ErrInvalidConfig, c.Segment.CacheSize)
	}
	switch c.Corpus.Mode {
	case "lines", "fields":
	default:
		return fmt.Errorf("%w: corpus.mode must be \"lines\" or \"fields\", got %q", ErrInvalidConfig, c.Corpus.Mode)
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: logging.format must be \"text\" or \"json\", got %q", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for morphseg.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "morphseg.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".morphseg", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// StoreDBPath returns the path to the run database.
func StoreDBPath(dir string) string {
	return filepath.Join(dir, ".morphseg", "runs.db")
}

// EnsureDataDir ensures the .morphseg directory exists.
func EnsureDataDir(dir string) error {
	return os.MkdirAll(filepath.Join(dir, ".morphseg"), 0755)
}
