package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/schemadiff/internal/core/domain"
	"github.com/custodia-labs/schemadiff/internal/logger"
)

func TestRootCmd_Use(t *testing.T) {
	assert.Equal(t, "schemadiff", rootCmd.Use)
	assert.Same(t, rootCmd, RootCommand())
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"compare", "impact", "settings", "version", "mcp"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}

func TestRootCmd_VerboseFlag(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("--verbose", "version")

	require.NoError(t, err)
	assert.True(t, logger.IsVerbose())
}

func TestSetVersion(t *testing.T) {
	original := version
	defer func() { version = original }()

	SetVersion("")
	assert.Equal(t, original, version)

	SetVersion("1.2.3")
	assert.Equal(t, "1.2.3", version)
}

func TestResolveLLMSettings(t *testing.T) {
	stored := domain.LLMSettings{Provider: domain.AIProviderGemini, Model: "m", APIKey: "stored"}

	tests := []struct {
		name      string
		provider  domain.AIProvider
		flag      string
		envKey    string
		geminiKey string
		expected  string
	}{
		{name: "flag wins", flag: "flag", envKey: "env", geminiKey: "gem", expected: "flag"},
		{name: "flag is trimmed", flag: "  flag \n", expected: "flag"},
		{name: "blank flag ignored", flag: "   ", envKey: "env", expected: "env"},
		{name: "tool env before gemini env", envKey: "env", geminiKey: "gem", expected: "env"},
		{name: "gemini env", geminiKey: "gem", expected: "gem"},
		{name: "gemini env ignored for other providers", provider: domain.AIProviderOpenAI, geminiKey: "gem", expected: "stored"},
		{name: "stored key", expected: "stored"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvAPIKey, tt.envKey)
			t.Setenv(EnvGeminiAPIKey, tt.geminiKey)

			in := stored
			if tt.provider != "" {
				in.Provider = tt.provider
			}
			got := resolveLLMSettings(in, tt.flag)

			assert.Equal(t, tt.expected, got.APIKey)
			assert.Equal(t, in.Provider, got.Provider)
			assert.Equal(t, "m", got.Model)
		})
	}
}

func TestLoadSettings_DefaultsWithoutService(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	settingsService = nil

	settings, err := loadSettings()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}
