package ooxml

import "encoding/xml"

// XML namespaces used in WordprocessingML parts.
const (
	NSMain          = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	NSRelationships = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NSDrawing       = "http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"
	NSDrawingMain   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	NSPicture       = "http://schemas.openxmlformats.org/drawingml/2006/picture"
)

// Document represents word/document.xml.
type Document struct {
	XMLName xml.Name `xml:"document"`
	Body    *Body    `xml:"body"`
}

// Body is the document body. Only paragraphs participate in analysis;
// tables and section properties are ignored.
type Body struct {
	Paragraphs []Paragraph `xml:"p"`
}

// Paragraph represents a <w:p> element. RawXML preserves the inner
// markup for reference scanning that the typed fields cannot express.
type Paragraph struct {
	XMLName    xml.Name       `xml:"p"`
	Properties ParagraphProps `xml:"pPr"`
	Runs       []Run          `xml:"r"`
	Hyperlinks []Hyperlink    `xml:"hyperlink"`
}

// ParagraphProps represents <w:pPr>.
type ParagraphProps struct {
	Style         ValAttr  `xml:"pStyle"`
	Justification ValAttr  `xml:"jc"`
	RunDefaults   RunProps `xml:"rPr"`
}

// Run represents a <w:r> element. The typed Drawing/Pict fields cover
// the common image carriers; RawXML is kept so embed/link relationship
// attributes in nonstandard wrappers can still be found by pattern.
type Run struct {
	XMLName    xml.Name  `xml:"r"`
	Properties RunProps  `xml:"rPr"`
	Text       []Text    `xml:"t"`
	Tabs       []Tab     `xml:"tab"`
	Breaks     []Break   `xml:"br"`
	Drawings   []Drawing `xml:"drawing"`
	Picts      []Pict    `xml:"pict"`
	Objects    []Object  `xml:"object"`
	RawXML     string    `xml:",innerxml"`
}

// Hyperlink represents <w:hyperlink>, which nests runs.
type Hyperlink struct {
	ID   string `xml:"id,attr"`
	Runs []Run  `xml:"r"`
}

// RunProps represents <w:rPr>.
type RunProps struct {
	Bold      Toggle  `xml:"b"`
	Italic    Toggle  `xml:"i"`
	Underline ValAttr `xml:"u"`
	FontSize  ValAttr `xml:"sz"`
	Fonts     Fonts   `xml:"rFonts"`
	Color     ValAttr `xml:"color"`
}

// Toggle is an OOXML on/off property: presence means on unless the val
// attribute says otherwise.
type Toggle struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"`
}

// Present reports whether the element appeared at all.
func (t Toggle) Present() bool { return t.XMLName.Local != "" }

// On reports the effective boolean value.
func (t Toggle) On() bool {
	return t.Present() && t.Val != "false" && t.Val != "0"
}

// ValAttr is any element whose payload is a single val attribute.
type ValAttr struct {
	Val string `xml:"val,attr"`
}

// Fonts represents <w:rFonts>, one slot per script range.
type Fonts struct {
	ASCII    string `xml:"ascii,attr"`
	HAnsi    string `xml:"hAnsi,attr"`
	EastAsia string `xml:"eastAsia,attr"`
	CS       string `xml:"cs,attr"`
}

// Empty reports whether no slot is set.
func (f Fonts) Empty() bool {
	return f.ASCII == "" && f.HAnsi == "" && f.EastAsia == "" && f.CS == ""
}

// Pick returns the preferred font name with east-Asian priority.
func (f Fonts) Pick() string {
	switch {
	case f.EastAsia != "":
		return f.EastAsia
	case f.HAnsi != "":
		return f.HAnsi
	default:
		return f.ASCII
	}
}

// Text represents <w:t>.
type Text struct {
	XMLName xml.Name `xml:"t"`
	Space   string   `xml:"space,attr"`
	Value   string   `xml:",chardata"`
}

// Tab represents <w:tab>.
type Tab struct {
	XMLName xml.Name `xml:"tab"`
}

// Break represents <w:br>.
type Break struct {
	XMLName xml.Name `xml:"br"`
	Type    string   `xml:"type,attr"`
}

// Drawing represents <w:drawing>, wrapping an inline or anchored image.
type Drawing struct {
	XMLName xml.Name       `xml:"drawing"`
	Inline  *DrawingExtent `xml:"inline"`
	Anchor  *DrawingExtent `xml:"anchor"`
}

// DrawingExtent is the common shape of wp:inline and wp:anchor.
type DrawingExtent struct {
	Extent Extent `xml:"extent"`
	DocPr  DocPr  `xml:"docPr"`
	Blip   *Blip  `xml:"graphic>graphicData>pic>blipFill>blip"`
}

// Extent holds display dimensions in EMUs.
type Extent struct {
	CX string `xml:"cx,attr"`
	CY string `xml:"cy,attr"`
}

// DocPr holds the drawing's identity attributes.
type DocPr struct {
	ID    string `xml:"id,attr"`
	Name  string `xml:"name,attr"`
	Descr string `xml:"descr,attr"`
}

// Blip references raster image data via a relationship id. Embed and
// Link carry r:embed / r:link respectively.
type Blip struct {
	Embed string `xml:"embed,attr"`
	Link  string `xml:"link,attr"`
}

// Pict represents the legacy <w:pict> VML image element. The image
// relationship hides in attribute soup, so only the raw XML is kept.
type Pict struct {
	XMLName xml.Name `xml:"pict"`
	RawXML  string   `xml:",innerxml"`
}

// Object represents an embedded <w:object>.
type Object struct {
	XMLName xml.Name `xml:"object"`
	RawXML  string   `xml:",innerxml"`
}
