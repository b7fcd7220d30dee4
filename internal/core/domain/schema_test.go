package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsAnnotationMarker(t *testing.T) {
	assert.True(t, IsAnnotationMarker("yellow field"))
	assert.True(t, IsAnnotationMarker("Yellow Field"))
	assert.True(t, IsAnnotationMarker("YELLOW FIELD"))
	assert.False(t, IsAnnotationMarker("yellow"))
	assert.False(t, IsAnnotationMarker(" yellow field"))
	assert.False(t, IsAnnotationMarker(""))
}

func TestElementDecl_Marker(t *testing.T) {
	t.Run("no documentation", func(t *testing.T) {
		assert.Empty(t, ElementDecl{Name: "Amount"}.Marker())
	})

	t.Run("non-marker documentation is discarded", func(t *testing.T) {
		el := ElementDecl{Name: "Amount", DocSources: []string{"Rulebook", ""}}
		assert.Empty(t, el.Marker())
	})

	t.Run("keeps original spelling", func(t *testing.T) {
		el := ElementDecl{Name: "Amount", DocSources: []string{"Yellow Field", "Rulebook"}}
		assert.Equal(t, "Yellow Field", el.Marker())
	})

	t.Run("only the first documentation node counts", func(t *testing.T) {
		el := ElementDecl{Name: "Amount", DocSources: []string{"Rulebook", "Yellow Field"}}
		assert.Empty(t, el.Marker())
	})

	t.Run("first node without source hides a later marker", func(t *testing.T) {
		el := ElementDecl{Name: "Amount", DocSources: []string{"", "yellow field"}}
		assert.Empty(t, el.Marker())
	})
}

func TestSchema_TopLevelElement(t *testing.T) {
	s := &Schema{Elements: []ElementDecl{{Name: "Other"}, {Name: "Document", Type: "DocType"}}}

	el, ok := s.TopLevelElement("Document")
	require.True(t, ok)
	assert.Equal(t, "DocType", el.Type)

	_, ok = s.TopLevelElement("Missing")
	assert.False(t, ok)

	var nilSchema *Schema
	_, ok = nilSchema.TopLevelElement("Document")
	assert.False(t, ok)
}

func TestSchema_ResolveComplexType(t *testing.T) {
	docType := &ComplexType{Name: "DocType"}
	stringType := &ComplexType{Name: "string"}
	s := &Schema{
		ComplexTypes: map[string]*ComplexType{
			"DocType": docType,
			"string":  stringType,
		},
		XSDPrefixes: map[string]bool{"xs": true},
	}

	tests := []struct {
		name string
		ref  string
		want *ComplexType
	}{
		{"exact name", "DocType", docType},
		{"target namespace prefix", "tns:DocType", docType},
		{"xsd builtin never resolves", "xs:string", nil},
		{"unknown type", "AmountType", nil},
		{"empty reference", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.ResolveComplexType(tt.ref)
			if tt.want == nil {
				assert.False(t, ok)
				assert.Nil(t, got)
				return
			}
			require.True(t, ok)
			assert.Same(t, tt.want, got)
		})
	}
}

func TestFlattenedSchema_Paths(t *testing.T) {
	f := FlattenedSchema{
		"/Document/B": {Type: "xs:string"},
		"/Document":   {Type: "DocType"},
		"/Document/A": {Type: "xs:string"},
	}

	assert.Equal(t, []string{"/Document", "/Document/A", "/Document/B"}, f.Paths())
	assert.Empty(t, FlattenedSchema{}.Paths())
}
