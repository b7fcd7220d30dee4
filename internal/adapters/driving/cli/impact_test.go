package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/schemadiff/internal/core/domain"
	"github.com/custodia-labs/schemadiff/internal/core/ports/driving"
)

func TestImpactCmd_Use(t *testing.T) {
	assert.Equal(t, "impact OLD.xsd NEW.xsd", impactCmd.Use)
	assert.Contains(t, impactCmd.Long, "Impact Analysis")
}

func TestImpactCmd_OutDefault(t *testing.T) {
	flag := impactCmd.Flags().Lookup("out")
	require.NotNil(t, flag)
	assert.Equal(t, defaultImpactReport, flag.DefValue)
	assert.Equal(t, "impact_analysis_report_with_tests.xlsx", defaultImpactReport)
}

func TestImpactCmd_WritesWorkbook(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key")
	env, cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("impact", "v1.xsd", "v2.xsd")

	require.NoError(t, err)
	assert.Contains(t, out, "/Document/Reference")
	assert.Contains(t, out, "Generating impact summaries for 2 change(s)")
	assert.Equal(t, "env-key", env.lastLLM.APIKey)
	assert.Equal(t, 1, env.impact.calls)
	assert.Equal(t, defaultImpactReport, env.reports.path)
	assert.Equal(t, "run-1", env.reports.report.RunID)
	require.Len(t, env.reports.assessments, 2)
	assert.Equal(t, "test /Document/Reference", env.reports.assessments[1].TestScenario)
}

func TestImpactCmd_UsesStoredKey(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvGeminiAPIKey, "")
	env, cleanup := setupTestServices()
	defer cleanup()
	require.NoError(t, env.settings.Set("llm.api_key", "stored-key"))

	_, err := execute("impact", "v1.xsd", "v2.xsd", "-o", "custom.xlsx")

	require.NoError(t, err)
	assert.Equal(t, "stored-key", env.lastLLM.APIKey)
	assert.Equal(t, "custom.xlsx", env.reports.path)
}

func TestImpactCmd_ModelUnavailable(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	env.impact.err = domain.ErrLLMUnavailable

	out, err := execute("impact", "v1.xsd", "v2.xsd", "--api-key", "k")

	require.NoError(t, err)
	assert.Contains(t, out, "Impact workbook skipped")
	assert.Zero(t, env.reports.calls)
}

func TestImpactCmd_InterruptedWritesPartial(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	env.impact.err = context.Canceled
	env.impact.interruptAfter = 1

	out, err := execute("impact", "v1.xsd", "v2.xsd", "--api-key", "k")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, env.reports.calls)
	assert.Len(t, env.reports.assessments, 1)
	assert.Contains(t, out, "(1 assessed, 0 failed)")
}

func TestImpactCmd_CountsFailures(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()

	impactFactory = func(_ domain.LLMSettings, _ domain.ImpactSettings) (driving.ImpactService, []string, func()) {
		return failingImpact{}, nil, nil
	}

	out, err := execute("impact", "v1.xsd", "v2.xsd")

	require.NoError(t, err)
	assert.Contains(t, out, "(2 assessed, 2 failed)")
	assert.Equal(t, 1, env.reports.calls)
}

func TestImpactCmd_WriterError(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	env.reports.err = errors.New("disk full")

	_, err := execute("impact", "v1.xsd", "v2.xsd", "--api-key", "k")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write impact report: disk full")
}

func TestImpactCmd_NotConfigured(t *testing.T) {
	_, cleanup := setupTestServices()
	defer cleanup()
	impactFactory = nil

	_, err := execute("impact", "v1.xsd", "v2.xsd")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "impact service not configured")
}

func TestImpactCmd_ComparisonError(t *testing.T) {
	env, cleanup := setupTestServices()
	defer cleanup()
	env.compare.err = domain.ErrCyclicSchema

	_, err := execute("impact", "v1.xsd", "v2.xsd", "--api-key", "k")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCyclicSchema)
	assert.Zero(t, env.factoryHits)
}

type failingImpact struct{}

func (failingImpact) Assess(_ context.Context, changes []domain.ChangeRecord) ([]domain.ImpactAssessment, error) {
	out := make([]domain.ImpactAssessment, len(changes))
	for i := range changes {
		out[i] = domain.ImpactAssessment{
			Change:        changes[i],
			ImpactSummary: "[unavailable: boom]",
			TestScenario:  "[unavailable: boom]",
			Err:           "boom",
		}
	}
	return out, nil
}
