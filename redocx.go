// Package redocx analyzes and restyles DOCX (Office Open XML)
// documents. It infers document roles (title, author, body) from
// style heuristics, attributes fonts per run with full style
// inheritance, locates embedded images at paragraph/run granularity,
// and rebuilds documents with per-role style overrides while
// preserving image placement.
//
// Basic usage:
//
//	result, warnings, err := redocx.AnalyzeDocument(data)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", redocx.FormatWarnings(warnings))
//	}
//
// Restyling:
//
//	out, _, err := redocx.FromBytes(data).
//	    Body(&model.RoleOptions{FontName: model.String("宋体"), Size: model.Float(12)}).
//	    Modify()
//
// For advanced use cases, the lower-level ooxml, styles, fontscan,
// media, analyze, and rebuild packages are also available.
package redocx

import (
	"errors"
	"fmt"

	"github.com/luwenhao/redocx/analyze"
	"github.com/luwenhao/redocx/format"
	"github.com/luwenhao/redocx/model"
	"github.com/luwenhao/redocx/rebuild"
)

// ErrLegacyFormat is returned for binary .doc input. Converting
// legacy documents is an external collaborator's concern; this
// library only consumes OOXML packages.
var ErrLegacyFormat = errors.New("legacy .doc format requires external conversion")

// ErrMissingDocument mirrors analyze.ErrMissingDocument for callers
// that only import the facade.
var ErrMissingDocument = analyze.ErrMissingDocument

// AnalyzeDocument analyzes a DOCX buffer with deep font detection
// enabled. Warnings report recoverable degradations; the error is
// non-nil only when no useful result could be produced.
func AnalyzeDocument(data []byte) (*model.AnalysisResult, []Warning, error) {
	return FromBytes(data).Analyze()
}

// ModifyFonts re-analyzes a DOCX buffer and produces a new document
// applying the given per-role style overrides.
func ModifyFonts(data []byte, opts model.ModifyOptions) ([]byte, []Warning, error) {
	r := FromBytes(data)
	r.opts = opts
	return r.Modify()
}

// Restyler provides a fluent interface over analysis and
// modification. Each configuration method returns a new Restyler
// instance, making chains safe to fork.
type Restyler struct {
	data []byte
	deep bool
	opts model.ModifyOptions
	err  error
}

// FromBytes starts a Restyler over an in-memory document buffer.
func FromBytes(data []byte) *Restyler {
	r := &Restyler{data: data, deep: true}
	switch format.Detect(data) {
	case format.DOCX:
	case format.LegacyDoc:
		r.err = ErrLegacyFormat
	default:
		r.err = fmt.Errorf("unrecognized input: %w", errors.New("not an OOXML word-processing package"))
	}
	return r
}

// clone returns a copy so configuration methods do not mutate shared
// state.
func (r *Restyler) clone() *Restyler {
	next := *r
	return &next
}

// WithoutDeepFonts disables the deep font-detection pass; analysis
// falls back to explicit run properties only.
func (r *Restyler) WithoutDeepFonts() *Restyler {
	next := r.clone()
	next.deep = false
	return next
}

// Title sets the title role override for Modify.
func (r *Restyler) Title(opts *model.RoleOptions) *Restyler {
	next := r.clone()
	next.opts.Title = opts
	return next
}

// Author sets the author role override for Modify.
func (r *Restyler) Author(opts *model.RoleOptions) *Restyler {
	next := r.clone()
	next.opts.Author = opts
	return next
}

// Body sets the body role override for Modify.
func (r *Restyler) Body(opts *model.RoleOptions) *Restyler {
	next := r.clone()
	next.opts.Body = opts
	return next
}

// Analyze runs full-document analysis.
func (r *Restyler) Analyze() (*model.AnalysisResult, []Warning, error) {
	if r.err != nil {
		return nil, nil, r.err
	}
	return analyze.Run(r.data, r.deep)
}

// Modify rebuilds the document applying the configured overrides.
func (r *Restyler) Modify() ([]byte, []Warning, error) {
	if r.err != nil {
		return nil, nil, r.err
	}
	return rebuild.Modify(r.data, r.opts)
}

// Must is a helper that panics on error, for scripts and tests where
// error handling would be cumbersome.
func Must[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
