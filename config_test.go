package accord

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configSample = `
checker:
  pre_adj_max: 2
  require_det: false
generator:
  template: SV
  lexicon:
    NOUN: [chat, chien]
    VERB: [mange]
decoder:
  vocabulary: [Le, chat]
  scores: [0.5, 1.0]
  beam_width: 3
analyzer:
  tool: http
  base_url: http://localhost:9000
`

func TestLoadConfig(t *testing.T) {
	path := writeFile(t, "accord.yaml", configSample)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	checker := cfg.Checker.CheckerConfig()
	assert.Equal(t, 2, checker.PreAdjMax)
	assert.False(t, checker.RequireDet)
	// Unset fields keep their defaults.
	assert.Equal(t, 2, checker.PostAdjMax)
	assert.True(t, checker.RequireNoun)
	assert.Equal(t, "3", checker.DefaultSubjPerson)

	assert.Equal(t, "SV", cfg.Generator.Template)
	assert.Equal(t, DefaultChunkSize, cfg.Generator.ChunkSize)
	assert.Equal(t, []string{"chat", "chien"}, cfg.Generator.Lexicon[POSNoun])

	assert.Equal(t, 3, cfg.Decoder.BeamWidth)
	assert.Equal(t, DefaultMaxLength, cfg.Decoder.MaxLength)

	assert.Equal(t, "http", cfg.Analyzer.Tool)
	assert.Equal(t, "http://localhost:9000", cfg.Analyzer.BaseURL)
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "SN", cfg.Generator.Template)
	assert.Equal(t, "dict", cfg.Analyzer.Tool)
	assert.Equal(t, DefaultCheckerConfig(), cfg.Checker.CheckerConfig())
}

func TestRemoteAnalyzerConfigError(t *testing.T) {
	_, err := NewRemoteAnalyzer("")
	assert.Error(t, err)
	_, err = NewRemoteAnalyzer("not a url")
	assert.Error(t, err)

	a, err := NewRemoteAnalyzer("http://localhost:9000/")
	require.NoError(t, err)
	assert.NotNil(t, a)
}
