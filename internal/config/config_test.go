package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return NewFromViper(NewEmptyViper())
}

func TestDefaults(t *testing.T) {
	cfg := testConfig()

	triage := cfg.GetTriage()
	assert.Equal(t, "user_email@example.com", triage.SelfAddress)
	assert.Equal(t, "data/threads.json", triage.InputPath)

	mem := cfg.GetMemory()
	assert.Equal(t, "file", mem.Type)

	logging := cfg.GetLogging()
	assert.Equal(t, "info", logging.Level)
	assert.Equal(t, "json", logging.Format)
}

func TestEnhancerDefaults(t *testing.T) {
	cfg := testConfig()

	enh, err := cfg.GetEnhancer()
	require.NoError(t, err)
	assert.Equal(t, "none", enh.Provider)
	assert.True(t, enh.CacheEnabled)
	assert.Equal(t, time.Hour, enh.CacheTTL)
}

func TestEnhancerInvalidTTL(t *testing.T) {
	v := NewEmptyViper()
	v.Set("enhancer.cache_ttl", "not-a-duration")
	cfg := NewFromViper(v)

	_, err := cfg.GetEnhancer()
	assert.Error(t, err)
}

func TestOverrides(t *testing.T) {
	v := NewEmptyViper()
	v.Set("openai.model_name", "gpt-4o-mini")
	v.Set("openai.temperature", 0.7)
	v.Set("memory.type", "sqlite")
	cfg := NewFromViper(v)

	assert.Equal(t, "gpt-4o-mini", cfg.GetOpenAI().ModelName)
	assert.Equal(t, 0.7, cfg.GetOpenAI().Temperature)
	assert.Equal(t, "sqlite", cfg.GetMemory().Type)
}
