// Package schemafile reads and writes record schemas as YAML documents.
//
// A document names the byte order and lists the fields in layout order:
//
//	name: xsdp
//	order: big_endian        # or one of @ = < > !
//	fields:
//	  - {name: magic, type: string, count: 4, default: XSDP, readonly: true}
//	  - {name: version, type: octet, count: 2, default: [1, 0]}
//	  - {type: x, count: 2}   # anonymous padding
//	  - {name: correl_id, type: L}
//	  - {name: data, type: s, count: 16}
//
// Types are given as a format code character or by name. Count defaults to 1.
package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/structpack/errs"
	"github.com/arloliu/structpack/format"
	"github.com/arloliu/structpack/record"
)

// Document is the YAML form of a schema.
type Document struct {
	Name   string  `yaml:"name,omitempty"`
	Order  string  `yaml:"order,omitempty"`
	Fields []Field `yaml:"fields"`
}

// Field is the YAML form of a record.FieldSpec.
type Field struct {
	Name     string `yaml:"name,omitempty"`
	Type     string `yaml:"type"`
	Count    *int   `yaml:"count,omitempty"`
	Default  any    `yaml:"default,omitempty"`
	ReadOnly bool   `yaml:"readonly,omitempty"`
}

// Decode reads a single document from r. Unknown keys are rejected.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", errs.ErrInvalidSchemaDocument)
		}

		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidSchemaDocument, err)
	}

	return &doc, nil
}

// Parse decodes a YAML document and builds its schema.
func Parse(data []byte) (*record.Schema, error) {
	doc, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	return doc.Build()
}

// Load reads and builds the schema document at path.
func Load(path string) (*record.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("schema file %s: %w", path, err)
	}

	return s, nil
}

// Specs resolves the document's byte order and field specs.
func (d *Document) Specs() (format.Order, []record.FieldSpec, error) {
	order := format.Native
	if d.Order != "" {
		o, ok := format.ParseOrder(d.Order)
		if !ok {
			return 0, nil, fmt.Errorf("%w: %q", errs.ErrInvalidByteOrder, d.Order)
		}
		order = o
	}

	specs := make([]record.FieldSpec, len(d.Fields))
	for i, f := range d.Fields {
		code, ok := format.ParseCode(f.Type)
		if !ok {
			return 0, nil, fmt.Errorf("%w: field %d has type %q", errs.ErrBadFormatChar, i, f.Type)
		}

		count := 1
		if f.Count != nil {
			count = *f.Count
		}

		specs[i] = record.FieldSpec{
			Name:     f.Name,
			Code:     code,
			Count:    count,
			Default:  f.Default,
			ReadOnly: f.ReadOnly,
		}
	}

	return order, specs, nil
}

// Build builds the schema the document describes.
func (d *Document) Build() (*record.Schema, error) {
	order, specs, err := d.Specs()
	if err != nil {
		return nil, err
	}

	return record.Build(order, specs, record.WithName(d.Name))
}

// FromSchema converts a schema back into a document. Padding and zero-count specs
// that did not become fields are re-emitted as pad entries where they leave gaps, so
// the document rebuilds to the same layout.
func FromSchema(s *record.Schema) *Document {
	doc := &Document{
		Name:   s.Name(),
		Order:  s.Order().String(),
		Fields: make([]Field, 0, s.NumFields()),
	}

	offset := 0
	for _, f := range s.Fields() {
		if gap := f.Offset() - f.Entry().AlignOffset(offset); gap > 0 {
			doc.Fields = append(doc.Fields, Field{Type: format.Pad.String(), Count: &gap})
		}

		count := f.Count()
		doc.Fields = append(doc.Fields, Field{
			Name:     f.Name(),
			Type:     f.Code().String(),
			Count:    &count,
			Default:  f.Default(),
			ReadOnly: f.ReadOnly(),
		})
		offset = f.Offset() + f.Size()
	}

	if tail := s.Size() - offset; tail > 0 {
		doc.Fields = append(doc.Fields, Field{Type: format.Pad.String(), Count: &tail})
	}

	return doc
}

// Marshal encodes a schema as a YAML document.
func Marshal(s *record.Schema) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(FromSchema(s)); err != nil {
		return nil, fmt.Errorf("failed to encode schema: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode schema: %w", err)
	}

	return buf.Bytes(), nil
}
