package ooxml

import "encoding/xml"

// Styles represents word/styles.xml.
type Styles struct {
	XMLName     xml.Name    `xml:"styles"`
	DocDefaults DocDefaults `xml:"docDefaults"`
	Styles      []StyleDef  `xml:"style"`
}

// DocDefaults holds the document-wide fallback properties.
type DocDefaults struct {
	RPrDefault RPrDefault `xml:"rPrDefault"`
	PPrDefault PPrDefault `xml:"pPrDefault"`
}

// RPrDefault wraps the default run properties.
type RPrDefault struct {
	RPr RunProps `xml:"rPr"`
}

// PPrDefault wraps the default paragraph properties.
type PPrDefault struct {
	PPr StyleParagraphProps `xml:"pPr"`
}

// StyleDef represents one <w:style> element.
type StyleDef struct {
	XMLName xml.Name            `xml:"style"`
	Type    string              `xml:"type,attr"`
	StyleID string              `xml:"styleId,attr"`
	Default string              `xml:"default,attr"`
	Name    ValAttr             `xml:"name"`
	BasedOn ValAttr             `xml:"basedOn"`
	PPr     StyleParagraphProps `xml:"pPr"`
	RPr     RunProps            `xml:"rPr"`
}

// StyleParagraphProps is the paragraph-property subset a style carries.
type StyleParagraphProps struct {
	Justification ValAttr `xml:"jc"`
}

// Relationships represents a .rels part.
type Relationships struct {
	XMLName       xml.Name       `xml:"Relationships"`
	Relationships []Relationship `xml:"Relationship"`
}

// Relationship maps an internal reference id to a target.
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

// CoreProperties represents docProps/core.xml (Dublin Core metadata).
type CoreProperties struct {
	XMLName xml.Name `xml:"coreProperties"`
	Title   string   `xml:"title"`
	Creator string   `xml:"creator"`
	Subject string   `xml:"subject"`
}
