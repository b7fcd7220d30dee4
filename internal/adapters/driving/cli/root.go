// Package cli provides the cobra command tree for schemadiff.
package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/schemadiff/internal/core/domain"
	"github.com/custodia-labs/schemadiff/internal/core/ports/driven"
	"github.com/custodia-labs/schemadiff/internal/core/ports/driving"
	"github.com/custodia-labs/schemadiff/internal/logger"
)

// Environment variables consulted for the LLM API key.
const (
	EnvAPIKey       = "SCHEMADIFF_LLM_API_KEY"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
)

// version is set at build time via -ldflags.
var version = "dev"

var verbose bool

// ImpactFactory builds an impact service for the given model settings.
// Warnings describe why the service has no model; close releases it.
type ImpactFactory func(llm domain.LLMSettings, opts domain.ImpactSettings) (
	svc driving.ImpactService, warnings []string, closeFn func())

// Services holds everything the commands need.
type Services struct {
	Compare  driving.CompareService
	Settings driving.SettingsService
	Impact   ImpactFactory
	Reports  driven.ReportWriter
	Watcher  driven.SchemaWatcher
}

var (
	compareService  driving.CompareService
	settingsService driving.SettingsService
	impactFactory   ImpactFactory
	reportWriter    driven.ReportWriter
	schemaWatcher   driven.SchemaWatcher
)

var rootCmd = &cobra.Command{
	Use:   "schemadiff",
	Short: "Compare XSD schema versions",
	Long: `schemadiff flattens two XSD schema documents into element paths and
reports every element that was added, removed, retyped or newly marked.

Optionally a language model writes an impact summary and a test scenario
for each change, saved as an Excel workbook.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logging to stderr")
}

// Setup injects the services used by the commands.
func Setup(s Services) {
	compareService = s.Compare
	settingsService = s.Settings
	impactFactory = s.Impact
	reportWriter = s.Reports
	schemaWatcher = s.Watcher
}

// SetVersion sets the version printed by 'schemadiff version'.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// RootCommand exposes the command tree, for ExecuteContext.
func RootCommand() *cobra.Command {
	return rootCmd
}

// resolveLLMSettings applies the API key precedence: flag, then
// SCHEMADIFF_LLM_API_KEY, then GEMINI_API_KEY for the Gemini provider,
// then the stored configuration.
func resolveLLMSettings(stored domain.LLMSettings, flagKey string) domain.LLMSettings {
	resolved := stored
	switch {
	case strings.TrimSpace(flagKey) != "":
		resolved.APIKey = strings.TrimSpace(flagKey)
	case os.Getenv(EnvAPIKey) != "":
		resolved.APIKey = os.Getenv(EnvAPIKey)
	case resolved.Provider == domain.AIProviderGemini && os.Getenv(EnvGeminiAPIKey) != "":
		resolved.APIKey = os.Getenv(EnvGeminiAPIKey)
	}
	return resolved
}

// loadSettings returns stored settings, or defaults when no settings
// service is wired.
func loadSettings() (*domain.AppSettings, error) {
	if settingsService == nil {
		defaults := domain.DefaultAppSettings()
		return &defaults, nil
	}
	return settingsService.Get()
}
