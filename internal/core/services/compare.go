package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/schemadiff/internal/core/domain"
	"github.com/custodia-labs/schemadiff/internal/core/ports/driven"
	"github.com/custodia-labs/schemadiff/internal/core/ports/driving"
	"github.com/custodia-labs/schemadiff/internal/logger"
)

// Ensure CompareService implements the interface.
var _ driving.CompareService = (*CompareService)(nil)

// CompareService parses two schema documents, flattens them and diffs the result.
type CompareService struct {
	parser    driven.SchemaParser
	flattener *Flattener
	differ    *Differ
	now       func() time.Time
}

// NewCompareService creates a new compare service.
// A nil flattener or differ is replaced by a default one.
func NewCompareService(parser driven.SchemaParser, flattener *Flattener, differ *Differ) *CompareService {
	if flattener == nil {
		flattener = NewFlattener(DefaultMaxDepth)
	}
	if differ == nil {
		differ = NewDiffer()
	}
	return &CompareService{
		parser:    parser,
		flattener: flattener,
		differ:    differ,
		now:       time.Now,
	}
}

// CompareFiles compares the schemas stored at oldPath and newPath.
func (s *CompareService) CompareFiles(ctx context.Context, oldPath, newPath string) (*domain.ComparisonReport, error) {
	if s.parser == nil {
		return nil, errors.New("schema parser not configured")
	}

	logger.Section("Compare")
	logger.Debug("Old schema: %s", oldPath)
	logger.Debug("New schema: %s", newPath)

	oldSchema, err := s.parser.ParseFile(oldPath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	newSchema, err := s.parser.ParseFile(newPath)
	if err != nil {
		return nil, err
	}

	return s.compare(ctx, oldSchema, newSchema)
}

// CompareBytes compares two in-memory schema documents.
func (s *CompareService) CompareBytes(
	ctx context.Context,
	oldName string, oldXSD []byte,
	newName string, newXSD []byte,
) (*domain.ComparisonReport, error) {
	if s.parser == nil {
		return nil, errors.New("schema parser not configured")
	}

	logger.Section("Compare")
	logger.Debug("Old schema: %s (%d bytes)", oldName, len(oldXSD))
	logger.Debug("New schema: %s (%d bytes)", newName, len(newXSD))

	oldSchema, err := s.parser.Parse(bytes.NewReader(oldXSD), oldName)
	if err != nil {
		return nil, err
	}
	newSchema, err := s.parser.Parse(bytes.NewReader(newXSD), newName)
	if err != nil {
		return nil, err
	}

	return s.compare(ctx, oldSchema, newSchema)
}

func (s *CompareService) compare(ctx context.Context, oldSchema, newSchema *domain.Schema) (*domain.ComparisonReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	oldFlat, err := s.flattener.Flatten(oldSchema)
	if err != nil {
		return nil, fmt.Errorf("flatten %s: %w", oldSchema.Source, err)
	}
	newFlat, err := s.flattener.Flatten(newSchema)
	if err != nil {
		return nil, fmt.Errorf("flatten %s: %w", newSchema.Source, err)
	}

	changes := s.differ.Compare(oldFlat, newFlat)
	if changes == nil {
		// Encoders render an empty list, not null.
		changes = []domain.ChangeRecord{}
	}

	report := &domain.ComparisonReport{
		RunID:       uuid.New().String(),
		OldSource:   oldSchema.Source,
		NewSource:   newSchema.Source,
		GeneratedAt: s.now(),
		OldElements: len(oldFlat),
		NewElements: len(newFlat),
		Changes:     changes,
	}

	logger.Info("Comparison %s: %d old paths, %d new paths, %d changes",
		report.RunID, report.OldElements, report.NewElements, len(changes))

	return report, nil
}
