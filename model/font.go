package model

// Alignment values used throughout analysis and modification.
const (
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "justify"
)

// FontInfo is one resolved style point for a run of text. Size is in
// points (half-point granularity, so 10.5 is representable). Color is a
// hex string without a leading '#'. StyleKey is an opaque correlation
// handle connecting analysis output to modification rules; callers must
// not parse it.
type FontInfo struct {
	Name      string  `json:"name,omitempty"`
	Size      float64 `json:"size,omitempty"`
	Bold      bool    `json:"bold"`
	Italic    bool    `json:"italic"`
	Underline bool    `json:"underline"`
	Color     string  `json:"color,omitempty"`
	Alignment string  `json:"alignment,omitempty"`
	StyleKey  string  `json:"originalStyleKey,omitempty"`
}

// FontUsage records how often a font name was seen across runs, with up
// to three distinct truncated text samples for diagnostic display.
type FontUsage struct {
	Name    string   `json:"name"`
	Count   int      `json:"count"`
	Samples []string `json:"samples,omitempty"`
}

// DefaultFonts holds the document-wide default font for each OOXML
// script slot, taken from docDefaults/rPrDefault.
type DefaultFonts struct {
	EastAsia string `json:"eastAsia,omitempty"`
	ASCII    string `json:"ascii,omitempty"`
	HAnsi    string `json:"hAnsi,omitempty"`
	CS       string `json:"cs,omitempty"`
}

// Pick returns the preferred default font name. East-Asian text is the
// primary target, so the priority order is eastAsia, hAnsi, ascii.
func (d DefaultFonts) Pick() string {
	switch {
	case d.EastAsia != "":
		return d.EastAsia
	case d.HAnsi != "":
		return d.HAnsi
	default:
		return d.ASCII
	}
}

// DeepFontAnalysis is the optional deep-detection sub-result: a
// key-sorted usage histogram, the document default fonts, and the raw
// per-run style list before deduplication.
type DeepFontAnalysis struct {
	Usage    []FontUsage  `json:"fontUsage"`
	Defaults DefaultFonts `json:"defaultFonts"`
	Styles   []FontInfo   `json:"styles,omitempty"`
}
