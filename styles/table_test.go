package styles

import (
	"encoding/xml"
	"testing"

	"github.com/luwenhao/redocx/ooxml"
)

func parseStyles(t *testing.T, body string) *ooxml.Styles {
	t.Helper()
	doc := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` + body + `</w:styles>`
	var styles ooxml.Styles
	if err := xml.Unmarshal([]byte(doc), &styles); err != nil {
		t.Fatalf("parsing styles: %v", err)
	}
	return &styles
}

func TestNewTable_Defaults(t *testing.T) {
	src := parseStyles(t, `
  <w:docDefaults>
    <w:rPrDefault>
      <w:rPr>
        <w:rFonts w:eastAsia="仿宋" w:ascii="Times New Roman"/>
        <w:sz w:val="24"/>
      </w:rPr>
    </w:rPrDefault>
  </w:docDefaults>`)

	table := NewTable(src)
	if got := table.DefaultFont(); got != "仿宋" {
		t.Errorf("DefaultFont() = %q, want 仿宋", got)
	}
	if got := table.Defaults().Size; got != 12 {
		t.Errorf("Defaults().Size = %v, want 12", got)
	}
}

func TestNewTable_NilSource(t *testing.T) {
	table := NewTable(nil)
	if got := table.DefaultFont(); got != FallbackFont {
		t.Errorf("DefaultFont() = %q, want %q", got, FallbackFont)
	}
	if got := table.Defaults().Size; got != FallbackSize {
		t.Errorf("Defaults().Size = %v, want %v", got, FallbackSize)
	}
	resolved := table.Resolve("Missing")
	if resolved == nil || resolved.ID != "Missing" {
		t.Error("unknown id should resolve to an empty definition")
	}
}

func TestTable_ResolveInheritance(t *testing.T) {
	src := parseStyles(t, `
  <w:style w:type="paragraph" w:styleId="Normal">
    <w:name w:val="Normal"/>
    <w:rPr>
      <w:rFonts w:eastAsia="宋体"/>
      <w:sz w:val="21"/>
      <w:color w:val="333333"/>
    </w:rPr>
  </w:style>
  <w:style w:type="paragraph" w:styleId="Heading1">
    <w:name w:val="heading 1"/>
    <w:basedOn w:val="Normal"/>
    <w:pPr><w:jc w:val="center"/></w:pPr>
    <w:rPr>
      <w:b/>
      <w:sz w:val="32"/>
    </w:rPr>
  </w:style>`)

	table := NewTable(src)
	resolved := table.Resolve("Heading1")

	if got := resolved.Fonts.Pick(); got != "宋体" {
		t.Errorf("inherited font = %q, want 宋体", got)
	}
	if resolved.Size == nil || *resolved.Size != 16 {
		t.Errorf("own size should win, got %v, want 16", resolved.Size)
	}
	if resolved.Bold == nil || !*resolved.Bold {
		t.Error("own bold should be set")
	}
	if got := resolved.Color; got != "333333" {
		t.Errorf("inherited color = %q, want 333333", got)
	}
	if got := resolved.Alignment; got != "center" {
		t.Errorf("alignment = %q, want center", got)
	}
}

func TestTable_ResolveCycle(t *testing.T) {
	src := parseStyles(t, `
  <w:style w:type="paragraph" w:styleId="A">
    <w:name w:val="A"/>
    <w:basedOn w:val="B"/>
    <w:rPr><w:sz w:val="28"/></w:rPr>
  </w:style>
  <w:style w:type="paragraph" w:styleId="B">
    <w:name w:val="B"/>
    <w:basedOn w:val="A"/>
    <w:rPr><w:rFonts w:eastAsia="黑体"/></w:rPr>
  </w:style>`)

	table := NewTable(src)
	resolved := table.Resolve("A")

	// Termination matters more than the merge result here.
	if resolved == nil {
		t.Fatal("Resolve returned nil on a cyclic graph")
	}
	if resolved.Size == nil || *resolved.Size != 14 {
		t.Errorf("style's own size must survive the cycle, got %v", resolved.Size)
	}
	if len(table.Anomalies()) == 0 {
		t.Error("cycle should be recorded as an anomaly")
	}

	// Second call comes from the memo and must not re-append.
	before := len(table.Anomalies())
	table.Resolve("A")
	if got := len(table.Anomalies()); got != before {
		t.Errorf("memoized Resolve re-recorded the anomaly: %d -> %d", before, got)
	}
}

func TestTable_ResolveSelfReference(t *testing.T) {
	src := parseStyles(t, `
  <w:style w:type="paragraph" w:styleId="Loner">
    <w:name w:val="Loner"/>
    <w:basedOn w:val="Loner"/>
    <w:rPr><w:i/></w:rPr>
  </w:style>`)

	table := NewTable(src)
	resolved := table.Resolve("Loner")
	if resolved.Italic == nil || !*resolved.Italic {
		t.Error("self-referential style should keep its own properties")
	}
}

func TestFontSet_Pick(t *testing.T) {
	tests := []struct {
		name string
		set  FontSet
		want string
	}{
		{"eastAsia wins", FontSet{EastAsia: "宋体", HAnsi: "Calibri", ASCII: "Arial"}, "宋体"},
		{"hAnsi next", FontSet{HAnsi: "Calibri", ASCII: "Arial"}, "Calibri"},
		{"ascii last", FontSet{ASCII: "Arial"}, "Arial"},
		{"empty", FontSet{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.set.Pick(); got != tt.want {
				t.Errorf("Pick() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHalfPoints(t *testing.T) {
	if got := ParseHalfPoints("21"); got != 10.5 {
		t.Errorf("ParseHalfPoints(21) = %v, want 10.5", got)
	}
	if got := ParseHalfPoints(""); got != 0 {
		t.Errorf("ParseHalfPoints(empty) = %v, want 0", got)
	}
	if got := ParseHalfPoints("abc"); got != 0 {
		t.Errorf("ParseHalfPoints(abc) = %v, want 0", got)
	}
	if got := ToHalfPoints(10.5); got != 21 {
		t.Errorf("ToHalfPoints(10.5) = %v, want 21", got)
	}
	// Round trip must be exact for half-integer sizes.
	if got := ParseHalfPoints("21"); ToHalfPoints(got) != 21 {
		t.Error("half-point round trip drifted")
	}
}

func TestNormalizeAlignment(t *testing.T) {
	tests := []struct {
		jc   string
		want string
	}{
		{"center", "center"},
		{"left", "left"},
		{"start", "left"},
		{"right", "right"},
		{"end", "right"},
		{"both", "justify"},
		{"distribute", "justify"},
		{"", ""},
		{"mediumKashida", ""},
	}
	for _, tt := range tests {
		if got := NormalizeAlignment(tt.jc); got != tt.want {
			t.Errorf("NormalizeAlignment(%q) = %q, want %q", tt.jc, got, tt.want)
		}
	}
}
