package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jonathan/career-readiness/internal/config"
	"github.com/jonathan/career-readiness/internal/llm"
	"github.com/jonathan/career-readiness/internal/store"
	"github.com/jonathan/career-readiness/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestOptionsCommand(t *testing.T) {
	out, _, err := executeCommand(t, "options")
	require.NoError(t, err)

	var opts types.Options
	require.NoError(t, json.Unmarshal([]byte(out), &opts))
	assert.Equal(t, types.Roles, opts.Roles)
	assert.Equal(t, types.AcademicYears, opts.AcademicYears)
	assert.Equal(t, types.DefaultRole, opts.DefaultRole)
	assert.Equal(t, types.DefaultAcademicYear, opts.DefaultAcademicYear)
}

func TestOptionsCommand_RejectsArgs(t *testing.T) {
	_, _, err := executeCommand(t, "options", "extra")
	assert.Error(t, err)
}

func TestAnalyzeCommand_FlagsValidation(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{
			name:        "Missing --file flag",
			args:        []string{"analyze"},
			errorString: `required flag(s) "file" not set`,
		},
		{
			name:        "Unknown role",
			args:        []string{"analyze", "--file", "cv.pdf", "--role", "Astronaut"},
			errorString: "invalid intake",
		},
		{
			name:        "Unknown year",
			args:        []string{"analyze", "--file", "cv.pdf", "--year", "5th Year"},
			errorString: "invalid intake",
		},
		{
			name:        "Unsupported extension",
			args:        []string{"analyze", "--file", "cv.png"},
			errorString: "invalid intake",
		},
		{
			name:        "Missing text file",
			args:        []string{"analyze", "--file", "cv.txt", "--text-file", filepath.Join(dir, "missing.txt")},
			errorString: "failed to read text file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestRecommendCommand_FlagsValidation(t *testing.T) {
	dir := t.TempDir()
	badJSON := filepath.Join(dir, "insight.json")
	require.NoError(t, os.WriteFile(badJSON, []byte("{not json"), 0644))

	tests := []struct {
		name        string
		args        []string
		errorString string
	}{
		{
			name:        "Missing --in flag",
			args:        []string{"recommend"},
			errorString: `required flag(s) "in" not set`,
		},
		{
			name:        "Insight file does not exist",
			args:        []string{"recommend", "--in", filepath.Join(dir, "missing.json")},
			errorString: "failed to read insight file",
		},
		{
			name:        "Insight file is not JSON",
			args:        []string{"recommend", "--in", badJSON},
			errorString: "failed to parse insight file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := executeCommand(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorString)
		})
	}
}

func TestLLMConfig_AppliesModelOverrides(t *testing.T) {
	cfg := &config.Config{LLM: config.LLMConfig{
		Provider: "openai",
		Models:   map[string]string{"lite": "gpt-test-lite", "standard": ""},
	}}

	out := llmConfig(cfg)
	assert.Equal(t, llm.ProviderOpenAI, out.Provider)
	assert.Equal(t, "gpt-test-lite", out.GetModel(llm.TierLite))
	assert.Equal(t, llm.DefaultOpenAIConfig().GetModel(llm.TierStandard), out.GetModel(llm.TierStandard))
	assert.Equal(t, llm.DefaultOpenAIConfig().GetModel(llm.TierAdvanced), out.GetModel(llm.TierAdvanced))
}

func TestLLMConfig_DefaultsToGemini(t *testing.T) {
	out := llmConfig(&config.Config{LLM: config.LLMConfig{Provider: "gemini"}})
	assert.Equal(t, llm.DefaultGeminiConfig(), out)
}

func TestNewPipelines_RequiresAPIKey(t *testing.T) {
	cfg := &config.Config{LLM: config.LLMConfig{Provider: "gemini", Timeout: time.Second}}
	_, _, err := newPipelines(context.Background(), cfg, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		cfg := &config.Config{Store: config.StoreConfig{Backend: config.StoreMemory}}
		kv, closeStore, err := openStore(ctx, cfg, zap.NewNop())
		require.NoError(t, err)
		defer closeStore()
		assert.IsType(t, &store.MemoryKV{}, kv)
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := &config.Config{Store: config.StoreConfig{Backend: config.StoreRedis, RedisAddr: mr.Addr(), RedisTTL: time.Hour}}
		kv, closeStore, err := openStore(ctx, cfg, zap.NewNop())
		require.NoError(t, err)
		defer closeStore()

		require.NoError(t, kv.Set(ctx, "k", "v"))
		got, err := kv.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", got)
		assert.Equal(t, time.Hour, mr.TTL("k"))
	})

	t.Run("redis unreachable", func(t *testing.T) {
		mr, err := miniredis.Run()
		require.NoError(t, err)
		addr := mr.Addr()
		mr.Close()

		cfg := &config.Config{Store: config.StoreConfig{Backend: config.StoreRedis, RedisAddr: addr}}
		_, _, err = openStore(ctx, cfg, zap.NewNop())
		assert.Error(t, err)
	})
}
