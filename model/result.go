package model

// ParagraphRecord is one paragraph of the source document. Index is
// 0-based and stable across all subsystems; it is the join key between
// text, font, and image data. Runs holds one FontInfo per text run in
// document order (a paragraph may mix styles across runs). IsTitle and
// IsAuthor are assigned during classification, never during parsing.
type ParagraphRecord struct {
	Index     int        `json:"index"`
	Text      string     `json:"text"`
	Runs      []FontInfo `json:"runs,omitempty"`
	Alignment string     `json:"alignment,omitempty"`
	IsTitle   bool       `json:"isTitle"`
	IsAuthor  bool       `json:"isAuthor"`
}

// ExtractedImage is one media file found in the package. Data is the
// base64 payload as a data URI. ParagraphIndex, RunIndex and
// RelationshipID are nil/empty until location succeeds; an image with
// all three unset is "unlocated" and still round-trips through
// modification. Width and Height are original pixel dimensions, 0 when
// the format could not be decoded.
type ExtractedImage struct {
	Filename       string `json:"filename"`
	MIMEType       string `json:"mimeType"`
	Size           int    `json:"size"`
	Data           string `json:"data"`
	Width          int    `json:"width,omitempty"`
	Height         int    `json:"height,omitempty"`
	ParagraphIndex *int   `json:"paragraphIndex,omitempty"`
	RunIndex       *int   `json:"runIndex,omitempty"`
	RelationshipID string `json:"relationshipId,omitempty"`
}

// Located reports whether the image was cross-referenced to an exact
// paragraph/run position.
func (img *ExtractedImage) Located() bool {
	return img.ParagraphIndex != nil && img.RunIndex != nil && img.RelationshipID != ""
}

// TitleInfo is the classified title paragraph with its run styles.
type TitleInfo struct {
	Text   string     `json:"text"`
	Styles []FontInfo `json:"styles,omitempty"`
}

// AuthorInfo is the classified author paragraph. Text is the captured
// author name, not the raw paragraph text.
type AuthorInfo struct {
	Text   string     `json:"text"`
	Styles []FontInfo `json:"styles,omitempty"`
}

// PackageMeta is metadata read from docProps/core.xml, distinct from
// the heuristic title/author classification.
type PackageMeta struct {
	Title   string `json:"title,omitempty"`
	Creator string `json:"creator,omitempty"`
}

// AnalysisResult is the top-level aggregate produced by document
// analysis. DeepFonts is nil when deep detection failed or was
// disabled; everything else is populated from the structural fallback.
type AnalysisResult struct {
	Title      *TitleInfo        `json:"title,omitempty"`
	Author     *AuthorInfo       `json:"author,omitempty"`
	Paragraphs []ParagraphRecord `json:"paragraphs"`
	BodyText   string            `json:"bodyText"`
	BodyStyles []FontInfo        `json:"bodyStyles,omitempty"`
	WordCount  int               `json:"wordCount"`
	Images     []ExtractedImage  `json:"images,omitempty"`
	DeepFonts  *DeepFontAnalysis `json:"deepFontAnalysis,omitempty"`
	Meta       PackageMeta       `json:"meta"`
}

// Warning describes a non-fatal degradation encountered during
// analysis or modification. Warnings are returned alongside results
// rather than logged; Context names the document part, paragraph, or
// image involved so the condition can be diagnosed.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

// Warning codes.
const (
	WarnMissingStyles   = "missing-styles"
	WarnStyleCycle      = "style-cycle"
	WarnDeepDetection   = "deep-detection-failed"
	WarnImageIntegrity  = "image-integrity-mismatch"
	WarnImageEmbed      = "image-embed-failed"
	WarnImageDimensions = "image-dimensions-unknown"
)
