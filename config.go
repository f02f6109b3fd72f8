package accord

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CheckerSettings is the YAML form of CheckerConfig. Pointer fields
// distinguish "absent, keep default" from an explicit zero.
type CheckerSettings struct {
	PreAdjMax             *int    `yaml:"pre_adj_max"`
	PostAdjMax            *int    `yaml:"post_adj_max"`
	MaxTotalAdjs          *int    `yaml:"max_total_adjs"`
	MaxConsecutiveSameAdj *int    `yaml:"max_consecutive_same_adj"`
	MaxSameAdjPerSentence *int    `yaml:"max_same_adj_per_sentence"`
	RequireDet            *bool   `yaml:"require_det"`
	RequireNoun           *bool   `yaml:"require_noun"`
	DefaultSubjPerson     *string `yaml:"default_subj_person"`
}

// GeneratorSettings configures generation runs.
type GeneratorSettings struct {
	Template       string              `yaml:"template"`
	ChunkSize      int                 `yaml:"chunk_size"`
	MaxRepetitions int                 `yaml:"max_repetitions"`
	Lexicon        map[string][]string `yaml:"lexicon"`
}

// DecoderSettings configures decoding runs.
type DecoderSettings struct {
	Vocabulary []string  `yaml:"vocabulary"`
	Scores     []float64 `yaml:"scores"`
	BeamWidth  int       `yaml:"beam_width"`
	MaxLength  int       `yaml:"max_length"`
}

// AnalyzerSettings selects and configures the analyzer.
type AnalyzerSettings struct {
	// Tool is "dict" (dictionary-backed, default) or "http".
	Tool string `yaml:"tool"`
	// BaseURL is the tagging-service address for the http tool.
	BaseURL string `yaml:"base_url"`
	// MorphalouPath and LefffPath are dictionary resources for the dict
	// tool; both are optional and cumulative.
	MorphalouPath string `yaml:"morphalou_path"`
	LefffPath     string `yaml:"lefff_path"`
}

// Config is the top-level YAML configuration.
type Config struct {
	Checker   CheckerSettings   `yaml:"checker"`
	Generator GeneratorSettings `yaml:"generator"`
	Decoder   DecoderSettings   `yaml:"decoder"`
	Analyzer  AnalyzerSettings  `yaml:"analyzer"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Generator: GeneratorSettings{
			Template:       "SN",
			ChunkSize:      DefaultChunkSize,
			MaxRepetitions: DefaultMaxRepetitions,
		},
		Decoder: DecoderSettings{
			BeamWidth: DefaultBeamWidth,
			MaxLength: DefaultMaxLength,
		},
		Analyzer: AnalyzerSettings{Tool: "dict"},
	}
}

// LoadConfig reads a YAML configuration file, filling defaults for
// anything left unset.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Generator.Template == "" {
		c.Generator.Template = "SN"
	}
	if c.Generator.ChunkSize <= 0 {
		c.Generator.ChunkSize = DefaultChunkSize
	}
	if c.Generator.MaxRepetitions <= 0 {
		c.Generator.MaxRepetitions = DefaultMaxRepetitions
	}
	if c.Decoder.BeamWidth <= 0 {
		c.Decoder.BeamWidth = DefaultBeamWidth
	}
	if c.Decoder.MaxLength <= 0 {
		c.Decoder.MaxLength = DefaultMaxLength
	}
	if c.Analyzer.Tool == "" {
		c.Analyzer.Tool = "dict"
	}
}

// CheckerConfig merges the settings over DefaultCheckerConfig.
func (s CheckerSettings) CheckerConfig() CheckerConfig {
	cfg := DefaultCheckerConfig()
	if s.PreAdjMax != nil {
		cfg.PreAdjMax = *s.PreAdjMax
	}
	if s.PostAdjMax != nil {
		cfg.PostAdjMax = *s.PostAdjMax
	}
	if s.MaxTotalAdjs != nil {
		cfg.MaxTotalAdjs = *s.MaxTotalAdjs
	}
	if s.MaxConsecutiveSameAdj != nil {
		cfg.MaxConsecutiveSameAdj = *s.MaxConsecutiveSameAdj
	}
	if s.MaxSameAdjPerSentence != nil {
		cfg.MaxSameAdjPerSentence = *s.MaxSameAdjPerSentence
	}
	if s.RequireDet != nil {
		cfg.RequireDet = *s.RequireDet
	}
	if s.RequireNoun != nil {
		cfg.RequireNoun = *s.RequireNoun
	}
	if s.DefaultSubjPerson != nil {
		cfg.DefaultSubjPerson = *s.DefaultSubjPerson
	}
	return cfg
}
