// Package ooxml provides access to the parts of a zip-structured Office
// Open XML package and typed representations of the WordprocessingML
// parts this library cares about: word/document.xml, word/styles.xml,
// word/_rels/document.xml.rels, docProps/core.xml, and word/media.
package ooxml

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Standard part names within a WordprocessingML package.
const (
	PartDocument     = "word/document.xml"
	PartStyles       = "word/styles.xml"
	PartDocumentRels = "word/_rels/document.xml.rels"
	PartCoreProps    = "docProps/core.xml"
	MediaPrefix      = "word/media/"
)

// ErrPartNotFound is returned when a named part is absent from the
// package. Callers decide whether that is fatal for their part.
var ErrPartNotFound = errors.New("part not found in package")

// Package provides access to the parts of an opened OOXML package.
type Package struct {
	zr    *zip.Reader
	files map[string]*zip.File
}

// OpenBytes opens an OOXML package from an in-memory buffer.
func OpenBytes(data []byte) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	p := &Package{
		zr:    zr,
		files: make(map[string]*zip.File, len(zr.File)),
	}
	for _, f := range zr.File {
		p.files[f.Name] = f
	}
	return p, nil
}

// HasPart reports whether the package contains the named part.
func (p *Package) HasPart(name string) bool {
	_, ok := p.files[name]
	return ok
}

// Part reads the raw bytes of a named part.
func (p *Package) Part(name string) ([]byte, error) {
	f, ok := p.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPartNotFound, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening part %s: %w", name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// PartXML reads a named part and decodes its text honoring any charset
// declared in the XML declaration or byte-order mark.
func (p *Package) PartXML(name string) ([]byte, error) {
	data, err := p.Part(name)
	if err != nil {
		return nil, err
	}
	return DecodeXMLText(data)
}

// MediaFiles returns the archive paths of all files under word/media,
// sorted for deterministic iteration.
func (p *Package) MediaFiles() []string {
	var names []string
	for name := range p.files {
		if strings.HasPrefix(name, MediaPrefix) && name != MediaPrefix {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Document parses word/document.xml. Its absence is fatal for any
// analysis, so the error is returned as-is for the caller to wrap.
func (p *Package) Document() (*Document, error) {
	data, err := p.PartXML(PartDocument)
	if err != nil {
		return nil, err
	}
	doc := &Document{}
	if err := xml.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("unmarshaling document.xml: %w", err)
	}
	return doc, nil
}

// Styles parses word/styles.xml. A missing part returns
// ErrPartNotFound; callers degrade to an empty style table.
func (p *Package) Styles() (*Styles, error) {
	data, err := p.PartXML(PartStyles)
	if err != nil {
		return nil, err
	}
	st := &Styles{}
	if err := xml.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("unmarshaling styles.xml: %w", err)
	}
	return st, nil
}

// Relationships parses word/_rels/document.xml.rels. A missing part is
// not an error: documents without relationships simply have none.
func (p *Package) Relationships() (*Relationships, error) {
	data, err := p.PartXML(PartDocumentRels)
	if err != nil {
		if errors.Is(err, ErrPartNotFound) {
			return &Relationships{}, nil
		}
		return nil, err
	}
	rels := &Relationships{}
	if err := xml.Unmarshal(data, rels); err != nil {
		return nil, fmt.Errorf("unmarshaling document.xml.rels: %w", err)
	}
	return rels, nil
}

// CoreProperties parses docProps/core.xml when present.
func (p *Package) CoreProperties() (*CoreProperties, error) {
	data, err := p.PartXML(PartCoreProps)
	if err != nil {
		return nil, err
	}
	props := &CoreProperties{}
	if err := xml.Unmarshal(data, props); err != nil {
		return nil, fmt.Errorf("unmarshaling core.xml: %w", err)
	}
	return props, nil
}
