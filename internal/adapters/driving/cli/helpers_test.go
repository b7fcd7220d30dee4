package cli

import (
	"bytes"
	"context"
	"sync"

	"github.com/custodia-labs/schemadiff/internal/adapters/driven/config/memory"
	"github.com/custodia-labs/schemadiff/internal/core/domain"
	"github.com/custodia-labs/schemadiff/internal/core/ports/driving"
	"github.com/custodia-labs/schemadiff/internal/core/services"
	"github.com/custodia-labs/schemadiff/internal/logger"
)

type mockCompareService struct {
	mu     sync.Mutex
	report *domain.ComparisonReport
	err    error
	calls  [][2]string
}

func (m *mockCompareService) CompareFiles(_ context.Context, oldPath, newPath string) (*domain.ComparisonReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, [2]string{oldPath, newPath})
	if m.err != nil {
		return nil, m.err
	}
	r := *m.report
	r.OldSource, r.NewSource = oldPath, newPath
	return &r, nil
}

func (m *mockCompareService) CompareBytes(
	_ context.Context, oldName string, _ []byte, newName string, _ []byte,
) (*domain.ComparisonReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	r := *m.report
	r.OldSource, r.NewSource = oldName, newName
	return &r, nil
}

func (m *mockCompareService) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

type mockImpactService struct {
	// err is returned as is when interruptAfter is zero.
	err            error
	interruptAfter int
	calls          int
}

func (m *mockImpactService) Assess(_ context.Context, changes []domain.ChangeRecord) ([]domain.ImpactAssessment, error) {
	m.calls++
	if m.err != nil && m.interruptAfter == 0 {
		return nil, m.err
	}
	out := make([]domain.ImpactAssessment, 0, len(changes))
	for i, c := range changes {
		if m.err != nil && i == m.interruptAfter {
			return out, m.err
		}
		out = append(out, domain.ImpactAssessment{
			Change:        c,
			ImpactSummary: "impact of " + c.Path,
			TestScenario:  "test " + c.Path,
		})
	}
	return out, nil
}

type mockReportWriter struct {
	path        string
	report      *domain.ComparisonReport
	assessments []domain.ImpactAssessment
	err         error
	calls       int
}

func (m *mockReportWriter) WriteImpactReport(
	path string, report *domain.ComparisonReport, assessments []domain.ImpactAssessment,
) error {
	m.calls++
	m.path = path
	m.report = report
	m.assessments = assessments
	return m.err
}

type mockWatcher struct {
	paths  []string
	events []string
	err    error
}

func (m *mockWatcher) Watch(_ context.Context, paths []string, onChange func(path string)) error {
	m.paths = paths
	for _, e := range m.events {
		onChange(e)
	}
	return m.err
}

// testEnv is the set of fakes installed by setupTestServices.
type testEnv struct {
	compare  *mockCompareService
	impact   *mockImpactService
	reports  *mockReportWriter
	watcher  *mockWatcher
	settings *services.SettingsService

	// lastLLM records the settings the impact factory was called with.
	lastLLM     domain.LLMSettings
	factoryHits int
	noModel     bool
}

func sampleReport() *domain.ComparisonReport {
	return &domain.ComparisonReport{
		RunID:       "run-1",
		OldElements: 2,
		NewElements: 3,
		Changes: []domain.ChangeRecord{
			{
				Kind: domain.ChangeModified, Path: "/Document/Amount",
				OldType: "xs:int", NewType: "xs:decimal", Annotation: "Change",
			},
			{Kind: domain.ChangeAdded, Path: "/Document/Reference", NewType: "xs:string"},
		},
	}
}

// setupTestServices wires fakes into the command tree and returns a cleanup
// that restores the previous services and resets flag values.
func setupTestServices() (*testEnv, func()) {
	env := &testEnv{
		compare:  &mockCompareService{report: sampleReport()},
		impact:   &mockImpactService{},
		reports:  &mockReportWriter{},
		watcher:  &mockWatcher{},
		settings: services.NewSettingsService(memory.NewConfigStore(), nil),
	}

	prev := Services{
		Compare:  compareService,
		Settings: settingsService,
		Impact:   impactFactory,
		Reports:  reportWriter,
		Watcher:  schemaWatcher,
	}

	Setup(Services{
		Compare:  env.compare,
		Settings: env.settings,
		Impact: func(llm domain.LLMSettings, _ domain.ImpactSettings) (driving.ImpactService, []string, func()) {
			env.factoryHits++
			env.lastLLM = llm
			if env.noModel || !llm.IsConfigured() {
				return nil, []string{"no LLM API key configured"}, func() {}
			}
			return env.impact, nil, func() {}
		},
		Reports: env.reports,
		Watcher: env.watcher,
	})

	return env, func() {
		Setup(prev)
		resetFlags()
	}
}

func resetFlags() {
	compareFormat = ""
	compareImpact = false
	compareOut = ""
	compareAPIKey = ""
	compareWatch = false
	impactOut = defaultImpactReport
	impactAPIKey = ""
	verbose = false
	logger.SetVerbose(false)
}

// execute runs the root command with args and returns combined output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
	}()

	err := rootCmd.Execute()
	return buf.String(), err
}
