package rebuild

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/luwenhao/redocx/model"
	"github.com/luwenhao/redocx/styles"
)

// EMU conversion and the fixed display policy used when original
// pixel dimensions are unknown.
const (
	emuPerPixel    = 9525
	defaultWidthPx = 400
	defaultAspect  = 0.75
)

// embeddedImage is an image committed to the output package.
type embeddedImage struct {
	relID    string
	partName string // media/imageN.ext
	ext      string
	data     []byte
	widthPx  int
	heightPx int
}

// serialize assembles the complete OOXML package for the planned
// blocks. Per-image embed failures degrade that image to a
// placeholder paragraph and a warning; any other failure aborts with
// no partial output.
func serialize(blocks []block, bodyStyle model.FontInfo) ([]byte, []model.Warning, error) {
	var warnings []model.Warning

	// First pass: decode images, assign relationship ids and part
	// names, and rewrite failed embeds as placeholders.
	var images []*embeddedImage
	embedded := make(map[*model.ExtractedImage]*embeddedImage)
	for i := range blocks {
		b := &blocks[i]
		if b.kind != blockImage {
			continue
		}
		emb, err := prepareImage(b.image, len(images)+1)
		if err != nil {
			warnings = append(warnings, model.Warning{
				Code:    model.WarnImageEmbed,
				Message: err.Error(),
				Context: b.image.Filename,
			})
			b.kind = blockPlaceholder
			b.placeholder = b.image.Filename
			continue
		}
		images = append(images, emb)
		embedded[b.image] = emb
	}

	docXML, err := documentXML(blocks, embedded)
	if err != nil {
		return nil, warnings, fmt.Errorf("building document: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML(images))},
		{"_rels/.rels", []byte(rootRelsXML)},
		{"word/document.xml", docXML},
		{"word/_rels/document.xml.rels", []byte(documentRelsXML(images))},
		{"word/styles.xml", []byte(stylesXML(bodyStyle))},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, warnings, fmt.Errorf("serializing %s: %w", part.name, err)
		}
		if _, err := w.Write(part.data); err != nil {
			return nil, warnings, fmt.Errorf("serializing %s: %w", part.name, err)
		}
	}
	for _, img := range images {
		w, err := zw.Create("word/" + img.partName)
		if err != nil {
			return nil, warnings, fmt.Errorf("serializing %s: %w", img.partName, err)
		}
		if _, err := w.Write(img.data); err != nil {
			return nil, warnings, fmt.Errorf("serializing %s: %w", img.partName, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, warnings, fmt.Errorf("closing package: %w", err)
	}
	return buf.Bytes(), warnings, nil
}

// prepareImage decodes an extracted image's payload and derives its
// output name and display dimensions.
func prepareImage(img *model.ExtractedImage, ordinal int) (*embeddedImage, error) {
	payload := img.Data
	if idx := strings.Index(payload, "base64,"); idx >= 0 {
		payload = payload[idx+len("base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decoding image payload: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image payload is empty")
	}

	emb := &embeddedImage{
		relID: fmt.Sprintf("rId%d", ordinal+100),
		ext:   sniffImageExt(data),
		data:  data,
	}
	emb.partName = fmt.Sprintf("media/image%d.%s", ordinal, emb.ext)

	if img.Width > 0 && img.Height > 0 {
		emb.widthPx, emb.heightPx = fitWidth(img.Width, img.Height)
	} else {
		emb.widthPx = defaultWidthPx
		emb.heightPx = int(defaultWidthPx * defaultAspect)
	}
	return emb, nil
}

// fitWidth caps display width at defaultWidthPx while preserving the
// original aspect ratio.
func fitWidth(w, h int) (int, int) {
	if w <= defaultWidthPx {
		return w, h
	}
	scale := float64(defaultWidthPx) / float64(w)
	return defaultWidthPx, int(float64(h) * scale)
}

// sniffImageExt identifies the limited set of embeddable formats by
// magic bytes. Anything unrecognized is written as png, which is
// lossy for webp/tiff/svg/bmp inputs.
func sniffImageExt(data []byte) string {
	switch {
	case len(data) > 2 && data[0] == 0xFF && data[1] == 0xD8:
		return "jpg"
	case bytes.HasPrefix(data, []byte("GIF8")):
		return "gif"
	default:
		return "png"
	}
}

// documentXML renders word/document.xml for the planned blocks.
func documentXML(blocks []block, embedded map[*model.ExtractedImage]*embeddedImage) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"` + "\n")
	sb.WriteString(`            xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"` + "\n")
	sb.WriteString(`            xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"` + "\n")
	sb.WriteString(`            xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"` + "\n")
	sb.WriteString(`            xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">` + "\n")
	sb.WriteString("<w:body>\n")

	docPrID := 1
	for i := range blocks {
		b := &blocks[i]
		switch b.kind {
		case blockParagraph:
			writeParagraph(&sb, b)
		case blockImage:
			emb, ok := embedded[b.image]
			if !ok {
				return nil, fmt.Errorf("image %s was planned but not embedded", b.image.Filename)
			}
			writeImageParagraph(&sb, emb, docPrID)
			docPrID++
		case blockPlaceholder:
			writePlaceholder(&sb, b.placeholder)
		}
	}

	sb.WriteString("</w:body>\n</w:document>\n")
	return []byte(sb.String()), nil
}

func writeParagraph(sb *strings.Builder, b *block) {
	sb.WriteString("<w:p><w:pPr>")
	if jc := jcValue(b.align); jc != "" {
		fmt.Fprintf(sb, `<w:jc w:val="%s"/>`, jc)
	}
	sb.WriteString("</w:pPr>")
	for _, run := range b.runs {
		writeRun(sb, run)
	}
	sb.WriteString("</w:p>\n")
}

func writeRun(sb *strings.Builder, run styledRun) {
	sb.WriteString("<w:r><w:rPr>")
	if run.style.Name != "" {
		fmt.Fprintf(sb, `<w:rFonts w:ascii="%[1]s" w:hAnsi="%[1]s" w:eastAsia="%[1]s" w:cs="%[1]s"/>`,
			escapeAttr(run.style.Name))
	}
	if run.style.Bold {
		sb.WriteString("<w:b/>")
	}
	if run.style.Italic {
		sb.WriteString("<w:i/>")
	}
	if run.style.Underline {
		sb.WriteString(`<w:u w:val="single"/>`)
	}
	if run.style.Size > 0 {
		half := styles.ToHalfPoints(run.style.Size)
		fmt.Fprintf(sb, `<w:sz w:val="%d"/><w:szCs w:val="%d"/>`, half, half)
	}
	if run.style.Color != "" {
		fmt.Fprintf(sb, `<w:color w:val="%s"/>`, escapeAttr(run.style.Color))
	}
	sb.WriteString("</w:rPr>")
	fmt.Fprintf(sb, `<w:t xml:space="preserve">%s</w:t>`, escapeText(run.text))
	sb.WriteString("</w:r>")
}

func writeImageParagraph(sb *strings.Builder, emb *embeddedImage, docPrID int) {
	cx := int64(emb.widthPx) * emuPerPixel
	cy := int64(emb.heightPx) * emuPerPixel
	fmt.Fprintf(sb, `<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:drawing>`+
		`<wp:inline><wp:extent cx="%[1]d" cy="%[2]d"/>`+
		`<wp:docPr id="%[3]d" name="Image %[3]d"/>`+
		`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/picture">`+
		`<pic:pic><pic:nvPicPr><pic:cNvPr id="%[3]d" name="Image %[3]d"/><pic:cNvPicPr/></pic:nvPicPr>`+
		`<pic:blipFill><a:blip r:embed="%[4]s"/><a:stretch><a:fillRect/></a:stretch></pic:blipFill>`+
		`<pic:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="%[1]d" cy="%[2]d"/></a:xfrm>`+
		`<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></pic:spPr>`+
		`</pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r></w:p>`+"\n",
		cx, cy, docPrID, emb.relID)
}

func writePlaceholder(sb *strings.Builder, filename string) {
	fmt.Fprintf(sb, `<w:p><w:r><w:rPr><w:i/><w:color w:val="808080"/></w:rPr>`+
		`<w:t xml:space="preserve">%s</w:t></w:r></w:p>`+"\n",
		escapeText(fmt.Sprintf("[图片无法嵌入: %s]", filename)))
}

func jcValue(align string) string {
	switch align {
	case model.AlignCenter:
		return "center"
	case model.AlignRight:
		return "right"
	case model.AlignJustify:
		return "both"
	case model.AlignLeft:
		return "left"
	default:
		return ""
	}
}

const rootRelsXML = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

func contentTypesXML(images []*embeddedImage) string {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` + "\n")
	sb.WriteString(`  <Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` + "\n")
	sb.WriteString(`  <Default Extension="xml" ContentType="application/xml"/>` + "\n")

	seen := make(map[string]bool)
	for _, img := range images {
		if seen[img.ext] {
			continue
		}
		seen[img.ext] = true
		mime := "image/png"
		switch img.ext {
		case "jpg":
			mime = "image/jpeg"
		case "gif":
			mime = "image/gif"
		}
		fmt.Fprintf(&sb, `  <Default Extension="%s" ContentType="%s"/>`+"\n", img.ext, mime)
	}

	sb.WriteString(`  <Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` + "\n")
	sb.WriteString(`  <Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` + "\n")
	sb.WriteString(`</Types>`)
	return sb.String()
}

func documentRelsXML(images []*embeddedImage) string {
	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` + "\n")
	sb.WriteString(`  <Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` + "\n")
	for _, img := range images {
		fmt.Fprintf(&sb, `  <Relationship Id="%s" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="%s"/>`+"\n",
			img.relID, img.partName)
	}
	sb.WriteString(`</Relationships>`)
	return sb.String()
}

// stylesXML emits a minimal style sheet whose document defaults match
// the effective body style, so readers that reset formatting still
// land on the intended body font.
func stylesXML(body model.FontInfo) string {
	half := styles.ToHalfPoints(body.Size)
	return xml.Header + fmt.Sprintf(`<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:docDefaults>
    <w:rPrDefault>
      <w:rPr>
        <w:rFonts w:ascii="%[1]s" w:hAnsi="%[1]s" w:eastAsia="%[1]s" w:cs="%[1]s"/>
        <w:sz w:val="%[2]d"/>
        <w:szCs w:val="%[2]d"/>
      </w:rPr>
    </w:rPrDefault>
  </w:docDefaults>
  <w:style w:type="paragraph" w:styleId="Normal" w:default="1">
    <w:name w:val="Normal"/>
    <w:qFormat/>
  </w:style>
</w:styles>`, escapeAttr(body.Name), half)
}

func escapeText(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func escapeAttr(s string) string {
	return escapeText(s)
}
