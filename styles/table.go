// Package styles builds a resolved style table from word/styles.xml.
//
// Styles form a directed graph via basedOn references. Resolution
// merges a style's explicit properties over its resolved parent, with
// document defaults at the root. A visited set per resolution call
// guards against cycles: a style that reaches itself resolves to its
// own unresolved definition, recorded as an anomaly rather than an
// error.
package styles

import (
	"math"
	"strconv"

	"github.com/luwenhao/redocx/ooxml"
)

// Fallback defaults used when styles.xml is absent or silent. The
// target corpus is Chinese-language documents, so the fallback font is
// SimSun and the size is the GB standard small-five body size.
const (
	FallbackFont = "宋体"
	FallbackSize = 10.5
)

// FontSet holds the four per-script font slots of one style. The
// slots are kept separate because fallback resolution needs them;
// collapsing to one font name loses information.
type FontSet struct {
	EastAsia string
	ASCII    string
	HAnsi    string
	CS       string
}

// Empty reports whether no slot is populated.
func (f FontSet) Empty() bool {
	return f.EastAsia == "" && f.ASCII == "" && f.HAnsi == "" && f.CS == ""
}

// Pick returns the preferred font name, eastAsia first, then hAnsi,
// then ascii.
func (f FontSet) Pick() string {
	switch {
	case f.EastAsia != "":
		return f.EastAsia
	case f.HAnsi != "":
		return f.HAnsi
	default:
		return f.ASCII
	}
}

// merge overlays f's populated slots over base.
func (f FontSet) merge(base FontSet) FontSet {
	out := base
	if f.EastAsia != "" {
		out.EastAsia = f.EastAsia
	}
	if f.ASCII != "" {
		out.ASCII = f.ASCII
	}
	if f.HAnsi != "" {
		out.HAnsi = f.HAnsi
	}
	if f.CS != "" {
		out.CS = f.CS
	}
	return out
}

// StyleDefinition is one named style. Nil pointer fields and empty
// strings mean "not set here": before resolution they signal
// inheritance, after resolution they mean the whole chain was silent
// and document defaults apply.
type StyleDefinition struct {
	ID        string
	Name      string
	Fonts     FontSet
	Size      *float64 // points
	Bold      *bool
	Italic    *bool
	Underline *bool
	Color     string
	Alignment string
	BasedOn   string
}

// Defaults are the document-wide fallbacks from docDefaults.
type Defaults struct {
	Fonts FontSet
	Size  float64
}

// Table is a parsed style sheet with memoized inheritance resolution.
// A Table is built per analysis call and not safe for concurrent use.
type Table struct {
	styles    map[string]*StyleDefinition
	resolved  map[string]*StyleDefinition
	defaults  Defaults
	anomalies []string
}

// NewTable parses styles.xml content into a table. A nil argument
// (missing styles.xml) yields an empty table with fixed fallback
// defaults; analysis continues with degraded fidelity.
func NewTable(src *ooxml.Styles) *Table {
	t := &Table{
		styles:   make(map[string]*StyleDefinition),
		resolved: make(map[string]*StyleDefinition),
		defaults: Defaults{
			Fonts: FontSet{EastAsia: FallbackFont},
			Size:  FallbackSize,
		},
	}
	if src == nil {
		return t
	}

	rpr := src.DocDefaults.RPrDefault.RPr
	if !fontSet(rpr.Fonts).Empty() {
		t.defaults.Fonts = fontSet(rpr.Fonts)
	}
	if size := ParseHalfPoints(rpr.FontSize.Val); size > 0 {
		t.defaults.Size = size
	}

	for i := range src.Styles {
		def := parseStyleDef(&src.Styles[i])
		t.styles[def.ID] = def
	}
	return t
}

// Defaults returns the document-wide default properties.
func (t *Table) Defaults() Defaults { return t.defaults }

// DefaultFont returns the preferred document default font name.
func (t *Table) DefaultFont() string {
	if name := t.defaults.Fonts.Pick(); name != "" {
		return name
	}
	return FallbackFont
}

// Anomalies returns the style ids on which a basedOn cycle was
// detected, in detection order.
func (t *Table) Anomalies() []string { return t.anomalies }

// Lookup returns the unresolved definition for a style id.
func (t *Table) Lookup(id string) (*StyleDefinition, bool) {
	def, ok := t.styles[id]
	return def, ok
}

// IDs returns all known style ids.
func (t *Table) IDs() []string {
	ids := make([]string, 0, len(t.styles))
	for id := range t.styles {
		ids = append(ids, id)
	}
	return ids
}

// Resolve returns the fully inherited definition for a style id,
// memoized per table. Unknown ids resolve to an empty definition so
// callers fall through to document defaults uniformly.
func (t *Table) Resolve(id string) *StyleDefinition {
	if cached, ok := t.resolved[id]; ok {
		return cached
	}
	resolved := t.resolve(id, make(map[string]bool))
	t.resolved[id] = resolved
	return resolved
}

func (t *Table) resolve(id string, visited map[string]bool) *StyleDefinition {
	def, ok := t.styles[id]
	if !ok {
		return &StyleDefinition{ID: id}
	}
	if visited[id] {
		// Inheritance cycle: return the style as-is instead of
		// recursing forever, and record the anomaly.
		t.anomalies = append(t.anomalies, id)
		return def
	}
	visited[id] = true

	if def.BasedOn == "" {
		return def
	}
	parent := t.resolve(def.BasedOn, visited)
	return mergeStyles(def, parent)
}

// mergeStyles overlays child's explicit fields over parent's resolved
// fields, returning a fresh definition.
func mergeStyles(child, parent *StyleDefinition) *StyleDefinition {
	out := &StyleDefinition{
		ID:      child.ID,
		Name:    child.Name,
		BasedOn: child.BasedOn,
		Fonts:   child.Fonts.merge(parent.Fonts),
	}
	out.Size = firstFloat(child.Size, parent.Size)
	out.Bold = firstBool(child.Bold, parent.Bold)
	out.Italic = firstBool(child.Italic, parent.Italic)
	out.Underline = firstBool(child.Underline, parent.Underline)
	out.Color = firstString(child.Color, parent.Color)
	out.Alignment = firstString(child.Alignment, parent.Alignment)
	return out
}

func parseStyleDef(src *ooxml.StyleDef) *StyleDefinition {
	def := &StyleDefinition{
		ID:      src.StyleID,
		Name:    src.Name.Val,
		BasedOn: src.BasedOn.Val,
		Fonts:   fontSet(src.RPr.Fonts),
	}
	if size := ParseHalfPoints(src.RPr.FontSize.Val); size > 0 {
		def.Size = &size
	}
	if src.RPr.Bold.Present() {
		v := src.RPr.Bold.On()
		def.Bold = &v
	}
	if src.RPr.Italic.Present() {
		v := src.RPr.Italic.On()
		def.Italic = &v
	}
	if src.RPr.Underline.Val != "" {
		v := src.RPr.Underline.Val != "none"
		def.Underline = &v
	}
	if src.RPr.Color.Val != "" && src.RPr.Color.Val != "auto" {
		def.Color = src.RPr.Color.Val
	}
	def.Alignment = NormalizeAlignment(src.PPr.Justification.Val)
	return def
}

func fontSet(f ooxml.Fonts) FontSet {
	return FontSet{
		EastAsia: f.EastAsia,
		ASCII:    f.ASCII,
		HAnsi:    f.HAnsi,
		CS:       f.CS,
	}
}

// NormalizeAlignment maps a w:jc value to the canonical alignment
// names. Absent or unrecognized values map to empty, not "left", so
// inheritance can distinguish "unset" from "explicitly left".
func NormalizeAlignment(jc string) string {
	switch jc {
	case "center":
		return "center"
	case "right", "end":
		return "right"
	case "both", "justify", "distribute":
		return "justify"
	case "left", "start":
		return "left"
	default:
		return ""
	}
}

// ParseHalfPoints parses an OOXML w:sz value (half-points) into
// points. Invalid input yields 0.
func ParseHalfPoints(s string) float64 {
	if s == "" {
		return 0
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return val / 2
}

// ToHalfPoints converts a point size to the nearest half-point wire
// value. Round-trips are exact for positive half-integer sizes.
func ToHalfPoints(points float64) int {
	return int(math.Round(points * 2))
}

func firstFloat(a, b *float64) *float64 {
	if a != nil {
		return a
	}
	return b
}

func firstBool(a, b *bool) *bool {
	if a != nil {
		return a
	}
	return b
}

func firstString(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
