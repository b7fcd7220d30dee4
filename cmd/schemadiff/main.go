// Command schemadiff compares XSD schema versions.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/schemadiff/internal/adapters/driven/ai"
	"github.com/custodia-labs/schemadiff/internal/adapters/driven/config/file"
	"github.com/custodia-labs/schemadiff/internal/adapters/driven/report"
	"github.com/custodia-labs/schemadiff/internal/adapters/driven/watch"
	"github.com/custodia-labs/schemadiff/internal/adapters/driven/xsd"
	"github.com/custodia-labs/schemadiff/internal/adapters/driving/cli"
	"github.com/custodia-labs/schemadiff/internal/core/domain"
	"github.com/custodia-labs/schemadiff/internal/core/ports/driving"
	"github.com/custodia-labs/schemadiff/internal/core/services"
	"github.com/custodia-labs/schemadiff/internal/logger"
)

// Exit codes.
const (
	exitError       = 1
	exitSchemaError = 2
	exitPanic       = 3
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(exitPanic)
		}
	}()

	os.Exit(run())
}

func run() int {
	// A missing .env file is normal.
	_ = godotenv.Load()
	defer logger.Sync()

	configStore, err := file.NewConfigStore("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open config: %v\n", err)
		return exitError
	}
	settingsService := services.NewSettingsService(configStore, ai.NewConfigValidator())

	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load settings: %v\n", err)
		return exitError
	}

	compareService := services.NewCompareService(
		xsd.NewParser(),
		services.NewFlattener(settings.Flatten.MaxDepth),
		services.NewDiffer(),
	)

	cli.SetVersion(version)
	cli.Setup(cli.Services{
		Compare:  compareService,
		Settings: settingsService,
		Impact:   newImpactService,
		Reports:  report.NewXLSXWriter(),
		Watcher:  watch.NewWatcher(watch.DefaultDebounce),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.RootCommand().ExecuteContext(ctx); err != nil {
		return exitCodeForError(err)
	}
	return 0
}

// newImpactService connects to the configured model. Without one the
// service is nil and the warnings say why.
func newImpactService(llm domain.LLMSettings, opts domain.ImpactSettings) (driving.ImpactService, []string, func()) {
	res := ai.Initialise(&llm, "")
	if res.LLMService == nil {
		return nil, res.Warnings, res.Close
	}
	svc := services.NewImpactService(res.LLMService, res.PromptStore, services.ImpactOptionsFromSettings(opts))
	return svc, res.Warnings, res.Close
}

func exitCodeForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrMalformedSchema),
		errors.Is(err, domain.ErrCyclicSchema),
		errors.Is(err, domain.ErrSchemaTooDeep):
		return exitSchemaError
	default:
		return exitError
	}
}
