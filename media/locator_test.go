package media

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"testing"

	"github.com/luwenhao/redocx/model"
	"github.com/luwenhao/redocx/ooxml"
)

// minimalPNG is a 1x1 RGBA PNG header, enough for dimension probing.
func minimalPNG() []byte {
	return []byte{
		0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
		0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4, 0x89,
	}
}

type testPart struct {
	name string
	data []byte
}

func buildPackage(t *testing.T, documentXML, relsXML string, media []testPart) *ooxml.Package {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	write := func(name string, data []byte) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}

	write("[Content_Types].xml", []byte(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`))
	write("word/document.xml", []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <w:body>`+documentXML+`</w:body>
</w:document>`))
	if relsXML != "" {
		write("word/_rels/document.xml.rels", []byte(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`+relsXML+`</Relationships>`))
	}
	for _, m := range media {
		write(m.name, m.data)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}

	pkg, err := ooxml.OpenBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("opening package: %v", err)
	}
	return pkg
}

func mustDocument(t *testing.T, pkg *ooxml.Package) *ooxml.Document {
	t.Helper()
	doc, err := pkg.Document()
	if err != nil {
		t.Fatalf("reading document: %v", err)
	}
	return doc
}

const drawingRun = `<w:r><w:drawing><wp:inline xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"><a:graphic xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"><a:graphicData><pic:pic xmlns:pic="http://schemas.openxmlformats.org/drawingml/2006/picture"><pic:blipFill><a:blip r:embed="%s"/></pic:blipFill></pic:pic></a:graphicData></a:graphic></wp:inline></w:drawing></w:r>`

func TestLocate_LocatedImage(t *testing.T) {
	pkg := buildPackage(t,
		`<w:p><w:r><w:t>第一段</w:t></w:r></w:p>
		 <w:p>`+fmt.Sprintf(drawingRun, "rId5")+`</w:p>`,
		`<Relationship Id="rId5" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/image" Target="media/image1.png"/>`,
		[]testPart{{"word/media/image1.png", minimalPNG()}},
	)

	res, err := Locate(pkg, mustDocument(t, pkg))
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if len(res.Images) != 1 {
		t.Fatalf("len(Images) = %d, want 1", len(res.Images))
	}
	img := res.Images[0]
	if !img.Located() {
		t.Fatal("image should be located")
	}
	if *img.ParagraphIndex != 1 || *img.RunIndex != 0 {
		t.Errorf("position = (%d,%d), want (1,0)", *img.ParagraphIndex, *img.RunIndex)
	}
	if img.RelationshipID != "rId5" {
		t.Errorf("RelationshipID = %q, want rId5", img.RelationshipID)
	}
	if img.Width != 1 || img.Height != 1 {
		t.Errorf("dimensions = %dx%d, want 1x1", img.Width, img.Height)
	}
	if img.MIMEType != "image/png" {
		t.Errorf("MIMEType = %q", img.MIMEType)
	}
	if res.Stats.Matched != 1 || res.Stats.Unlocated != 0 {
		t.Errorf("Stats = %+v", res.Stats)
	}
}

func TestLocate_BrokenRelationshipKeepsOthers(t *testing.T) {
	// Only image1..image4 exist; rId5 references an image5.png that is
	// not in the archive.
	var media []testPart
	var rels, doc string
	for i := 1; i <= 4; i++ {
		media = append(media, testPart{fmt.Sprintf("word/media/image%d.png", i), minimalPNG()})
	}
	for i := 1; i <= 5; i++ {
		relID := fmt.Sprintf("rId%d", i)
		rels += fmt.Sprintf(`<Relationship Id="%s" Type=".../image" Target="media/image%d.png"/>`, relID, i)
		doc += `<w:p>` + fmt.Sprintf(drawingRun, relID) + `</w:p>`
	}
	pkg := buildPackage(t, doc, rels, media)

	res, err := Locate(pkg, mustDocument(t, pkg))
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if len(res.Images) != 4 {
		t.Fatalf("len(Images) = %d, want 4: broken references must not drop inventory", len(res.Images))
	}
	located := 0
	for _, img := range res.Images {
		if img.Located() {
			located++
		}
	}
	if located != 4 {
		t.Errorf("located = %d, want 4", located)
	}
	found := false
	for _, w := range res.Warnings {
		if w.Code == model.WarnImageIntegrity {
			found = true
		}
	}
	if !found {
		t.Error("dangling relationship should emit an integrity warning")
	}
}

func TestLocate_UnreferencedImageKeptUnlocated(t *testing.T) {
	pkg := buildPackage(t,
		`<w:p><w:r><w:t>文字而已</w:t></w:r></w:p>`,
		``,
		[]testPart{{"word/media/image1.png", minimalPNG()}},
	)

	res, err := Locate(pkg, mustDocument(t, pkg))
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if len(res.Images) != 1 {
		t.Fatalf("len(Images) = %d, want 1", len(res.Images))
	}
	if res.Images[0].Located() {
		t.Error("unreferenced image must stay unlocated")
	}
	if res.Stats.Unlocated != 1 {
		t.Errorf("Stats.Unlocated = %d, want 1", res.Stats.Unlocated)
	}
}

func TestLocate_UndecodableDimensions(t *testing.T) {
	pkg := buildPackage(t,
		`<w:p><w:r><w:t>x</w:t></w:r></w:p>`,
		``,
		[]testPart{{"word/media/image1.png", []byte("not a png at all")}},
	)

	res, err := Locate(pkg, mustDocument(t, pkg))
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if len(res.Images) != 1 {
		t.Fatal("corrupt image must still enter the inventory")
	}
	if res.Images[0].Width != 0 || res.Images[0].Height != 0 {
		t.Error("dimensions should stay zero when probing fails")
	}
	found := false
	for _, w := range res.Warnings {
		if w.Code == model.WarnImageDimensions {
			found = true
		}
	}
	if !found {
		t.Error("expected a dimension warning")
	}
}

func TestLocate_LegacyPict(t *testing.T) {
	pkg := buildPackage(t,
		`<w:p><w:r><w:pict><v:shape xmlns:v="urn:schemas-microsoft-com:vml"><v:imagedata r:id="rId7"/></v:shape></w:pict></w:r></w:p>`,
		`<Relationship Id="rId7" Type=".../image" Target="media/image1.gif"/>`,
		[]testPart{{"word/media/image1.gif", []byte("GIF89a")}},
	)

	res, err := Locate(pkg, mustDocument(t, pkg))
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if len(res.Images) != 1 || !res.Images[0].Located() {
		t.Fatal("pict-carried image should be located via the raw scan")
	}
}

func TestRunRelIDs_Deduplicates(t *testing.T) {
	raw := `<w:r xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:object><o:OLEObject r:id="rId3"/><v:imagedata r:id="rId3"/></w:object></w:r>`
	var run ooxml.Run
	if err := xml.Unmarshal([]byte(raw), &run); err != nil {
		t.Fatalf("parsing run: %v", err)
	}
	ids := runRelIDs(&run)
	if len(ids) != 1 || ids[0] != "rId3" {
		t.Errorf("runRelIDs = %v, want [rId3]", ids)
	}
}
