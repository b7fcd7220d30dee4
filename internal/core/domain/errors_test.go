package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrMalformedSchema", ErrMalformedSchema},
		{"ErrCyclicSchema", ErrCyclicSchema},
		{"ErrSchemaTooDeep", ErrSchemaTooDeep},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestCyclicSchemaError_Message(t *testing.T) {
	err := &CyclicSchemaError{
		Path:  "/Document/Node/Node",
		Chain: []string{"DocType", "NodeType", "NodeType"},
	}

	assert.Equal(t, "cyclic schema at /Document/Node/Node: DocType -> NodeType -> NodeType", err.Error())
}

func TestCyclicSchemaError_MatchesSentinel(t *testing.T) {
	var err error = &CyclicSchemaError{Path: "/Document/A", Chain: []string{"A", "A"}}
	wrapped := fmt.Errorf("flatten new.xsd: %w", err)

	assert.True(t, errors.Is(wrapped, ErrCyclicSchema))
	assert.False(t, errors.Is(wrapped, ErrMalformedSchema))

	var cyc *CyclicSchemaError
	assert.True(t, errors.As(wrapped, &cyc))
	assert.Equal(t, "/Document/A", cyc.Path)
}
