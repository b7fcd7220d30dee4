package xsd

import (
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"

	"github.com/custodia-labs/schemadiff/internal/core/domain"
	"github.com/custodia-labs/schemadiff/internal/core/ports/driven"
	"github.com/custodia-labs/schemadiff/internal/logger"
)

// Ensure Parser implements the interface.
var _ driven.SchemaParser = (*Parser)(nil)

const (
	tagSchema        = "schema"
	tagElement       = "element"
	tagComplexType   = "complexType"
	tagAnnotation    = "annotation"
	tagDocumentation = "documentation"
)

// Parser reads XSD documents with etree.
type Parser struct{}

// NewParser creates a new XSD parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile reads the schema stored at path.
func (p *Parser) ParseFile(path string) (*domain.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schema %s: %w", path, err)
	}
	defer f.Close()

	return p.Parse(f, path)
}

// Parse reads a schema document from r.
func (p *Parser) Parse(r io.Reader, source string) (*domain.Schema, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrMalformedSchema, source, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: %s: no root element", domain.ErrMalformedSchema, source)
	}

	schema := &domain.Schema{
		Source:          source,
		TargetNamespace: root.SelectAttrValue("targetNamespace", ""),
		ComplexTypes:    make(map[string]*domain.ComplexType),
		XSDPrefixes:     xsdPrefixes(root),
	}

	// Well-formed XML with another root declares nothing and flattens empty.
	if !isXSD(root, tagSchema) {
		logger.Debug("%s: root is %q, not an XSD schema; no declarations read", source, root.FullTag())
		return schema, nil
	}

	for _, child := range root.ChildElements() {
		if isXSD(child, tagElement) {
			schema.Elements = append(schema.Elements, elementDecl(child))
		}
	}

	walk(root, func(el *etree.Element) {
		if !isXSD(el, tagComplexType) {
			return
		}
		name := el.SelectAttrValue("name", "")
		if name == "" {
			return
		}
		if _, exists := schema.ComplexTypes[name]; exists {
			logger.Debug("Duplicate complex type %q in %s, keeping the first", name, source)
			return
		}
		schema.ComplexTypes[name] = complexType(name, el)
	})

	logger.Debug("Parsed %s: %d top-level elements, %d complex types",
		source, len(schema.Elements), len(schema.ComplexTypes))

	return schema, nil
}

// complexType collects every element declaration under el, at any depth,
// in document order.
func complexType(name string, el *etree.Element) *domain.ComplexType {
	ct := &domain.ComplexType{Name: name}
	for _, child := range el.ChildElements() {
		walk(child, func(d *etree.Element) {
			if isXSD(d, tagElement) {
				ct.Elements = append(ct.Elements, elementDecl(d))
			}
		})
	}
	return ct
}

func elementDecl(el *etree.Element) domain.ElementDecl {
	decl := domain.ElementDecl{
		Name: el.SelectAttrValue("name", ""),
		Type: el.SelectAttrValue("type", ""),
	}
	for _, ann := range el.ChildElements() {
		if !isXSD(ann, tagAnnotation) {
			continue
		}
		for _, doc := range ann.ChildElements() {
			if !isXSD(doc, tagDocumentation) {
				continue
			}
			decl.DocSources = append(decl.DocSources, doc.SelectAttrValue("source", ""))
		}
	}
	return decl
}

// walk visits el and its descendants in document order.
func walk(el *etree.Element, visit func(*etree.Element)) {
	visit(el)
	for _, child := range el.ChildElements() {
		walk(child, visit)
	}
}

// isXSD reports whether el is the named XSD construct. Unqualified
// elements are accepted when no namespace is in scope.
func isXSD(el *etree.Element, tag string) bool {
	if el.Tag != tag {
		return false
	}
	ns := el.NamespaceURI()
	return ns == domain.XSDNamespace || (ns == "" && el.Space == "")
}

// xsdPrefixes returns the prefixes the root binds to the XSD namespace.
func xsdPrefixes(root *etree.Element) map[string]bool {
	prefixes := make(map[string]bool)
	for _, attr := range root.Attr {
		if attr.Space == "xmlns" && attr.Value == domain.XSDNamespace {
			prefixes[attr.Key] = true
		}
	}
	if root.Space != "" && root.NamespaceURI() == domain.XSDNamespace {
		prefixes[root.Space] = true
	}
	return prefixes
}
