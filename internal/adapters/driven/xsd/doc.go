// Package xsd parses XML Schema documents into the domain schema model.
//
// Only the parts of the vocabulary needed for flattening are read:
// top-level element declarations, named complex types and the element
// declarations inside them, and documentation source attributes.
package xsd
