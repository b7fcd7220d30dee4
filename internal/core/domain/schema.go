package domain

import (
	"sort"
	"strings"
)

// XSDNamespace is the namespace of the schema definition vocabulary.
const XSDNamespace = "http://www.w3.org/2001/XMLSchema"

// RootElementName is the top-level element every flattened path starts from.
const RootElementName = "Document"

// AnnotationMarker is the only documentation source value that is recognised.
// Elements carrying it are flagged for special review.
const AnnotationMarker = "yellow field"

// IsAnnotationMarker reports whether s is the marker, ignoring case.
func IsAnnotationMarker(s string) bool {
	return strings.EqualFold(s, AnnotationMarker)
}

// ElementDecl is an element declaration inside a schema document.
type ElementDecl struct {
	// Name is the value of the name attribute. Empty for references.
	Name string

	// Type is the type attribute exactly as written, e.g. "xs:decimal".
	Type string

	// DocSources holds the source attribute of every documentation node
	// found under the declaration's annotations, in document order. A node
	// without a source attribute contributes "".
	DocSources []string
}

// Marker returns the source of the first documentation node when it is the
// annotation marker, preserving its original spelling. Later nodes are not
// consulted, so a marker behind another documentation node yields "".
func (e ElementDecl) Marker() string {
	if len(e.DocSources) == 0 || !IsAnnotationMarker(e.DocSources[0]) {
		return ""
	}
	return e.DocSources[0]
}

// ComplexType is a named complex type definition.
type ComplexType struct {
	// Name is the value of the name attribute.
	Name string

	// Elements holds every element declaration in the type body, at any
	// depth, in document order.
	Elements []ElementDecl
}

// Schema is the parsed view of a schema document used for flattening.
type Schema struct {
	// Source names where the document came from (file path or label).
	Source string

	// TargetNamespace is the targetNamespace attribute of the schema root.
	TargetNamespace string

	// Elements holds the top-level element declarations.
	Elements []ElementDecl

	// ComplexTypes maps type name to definition. When a name is defined
	// more than once the first definition is kept.
	ComplexTypes map[string]*ComplexType

	// XSDPrefixes holds the namespace prefixes bound to XSDNamespace.
	XSDPrefixes map[string]bool
}

// TopLevelElement returns the top-level declaration with the given name.
func (s *Schema) TopLevelElement(name string) (ElementDecl, bool) {
	if s == nil {
		return ElementDecl{}, false
	}
	for _, el := range s.Elements {
		if el.Name == name {
			return el, true
		}
	}
	return ElementDecl{}, false
}

// ResolveComplexType finds the complex type a type reference points at.
// An exact name match wins; otherwise a prefixed reference resolves by its
// local part unless the prefix is bound to the XSD namespace.
func (s *Schema) ResolveComplexType(ref string) (*ComplexType, bool) {
	if s == nil || ref == "" {
		return nil, false
	}
	if ct, ok := s.ComplexTypes[ref]; ok {
		return ct, true
	}
	prefix, local, ok := strings.Cut(ref, ":")
	if !ok || s.XSDPrefixes[prefix] {
		return nil, false
	}
	ct, ok := s.ComplexTypes[local]
	return ct, ok
}

// ElementInfo is the value stored for each path of a flattened schema.
type ElementInfo struct {
	// Type is the declared type reference.
	Type string `json:"type" yaml:"type"`

	// Annotation is the marker value, or "" when absent.
	Annotation string `json:"annotation,omitempty" yaml:"annotation,omitempty"`
}

// FlattenedSchema maps element paths such as /Document/Body/Amount to
// their declared type and annotation marker.
type FlattenedSchema map[string]ElementInfo

// Paths returns the keys in lexicographic order.
func (f FlattenedSchema) Paths() []string {
	paths := make([]string, 0, len(f))
	for p := range f {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
