package mcp

import (
	"context"

	"github.com/custodia-labs/schemadiff/internal/core/domain"
)

// mockCompareService is a mock implementation of driving.CompareService.
type mockCompareService struct {
	report *domain.ComparisonReport
	err    error

	oldName, newName string
	oldXSD, newXSD   string
}

func (m *mockCompareService) CompareFiles(_ context.Context, _, _ string) (*domain.ComparisonReport, error) {
	return m.report, m.err
}

func (m *mockCompareService) CompareBytes(
	_ context.Context,
	oldName string, oldXSD []byte,
	newName string, newXSD []byte,
) (*domain.ComparisonReport, error) {
	m.oldName, m.newName = oldName, newName
	m.oldXSD, m.newXSD = string(oldXSD), string(newXSD)
	return m.report, m.err
}

// mockImpactService is a mock implementation of driving.ImpactService.
type mockImpactService struct {
	assessments []domain.ImpactAssessment
	err         error
	got         []domain.ChangeRecord
}

func (m *mockImpactService) Assess(_ context.Context, changes []domain.ChangeRecord) ([]domain.ImpactAssessment, error) {
	m.got = changes
	return m.assessments, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error {
	return m.err
}

func (m *mockSettingsService) SetLLMProvider(_ domain.AIProvider, _, _ string) error {
	return m.err
}

func (m *mockSettingsService) Set(_, _ string) error {
	return m.err
}

func (m *mockSettingsService) Keys() []string {
	return nil
}

func (m *mockSettingsService) Validate() error {
	return m.err
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) ValidateLLMConfig() error {
	return m.err
}
