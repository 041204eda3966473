package ooxml

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"
)

func buildPackage(t *testing.T, parts map[string][]byte) *Package {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating %s: %v", name, err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip: %v", err)
	}
	pkg, err := OpenBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("OpenBytes() error = %v", err)
	}
	return pkg
}

func TestOpenBytes_InvalidZip(t *testing.T) {
	if _, err := OpenBytes([]byte("definitely not a zip")); err == nil {
		t.Error("expected error for invalid archive")
	}
}

func TestPackage_Part(t *testing.T) {
	pkg := buildPackage(t, map[string][]byte{
		"word/document.xml": []byte("<doc/>"),
	})

	data, err := pkg.Part("word/document.xml")
	if err != nil {
		t.Fatalf("Part() error = %v", err)
	}
	if string(data) != "<doc/>" {
		t.Errorf("Part() = %q", data)
	}

	if _, err := pkg.Part("word/missing.xml"); !errors.Is(err, ErrPartNotFound) {
		t.Errorf("missing part error = %v, want ErrPartNotFound", err)
	}
	if pkg.HasPart("word/missing.xml") {
		t.Error("HasPart should be false for missing parts")
	}
}

func TestPackage_MediaFiles(t *testing.T) {
	pkg := buildPackage(t, map[string][]byte{
		"word/document.xml":     []byte("<doc/>"),
		"word/media/image2.png": {1},
		"word/media/image1.png": {2},
		"word/theme/theme1.xml": []byte("<t/>"),
	})

	files := pkg.MediaFiles()
	if len(files) != 2 {
		t.Fatalf("MediaFiles() = %v, want 2 entries", files)
	}
	if files[0] != "word/media/image1.png" || files[1] != "word/media/image2.png" {
		t.Errorf("MediaFiles() not sorted: %v", files)
	}
}

func TestPackage_Document(t *testing.T) {
	pkg := buildPackage(t, map[string][]byte{
		"word/document.xml": []byte(`<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>第一段</w:t></w:r></w:p>
    <w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:t>第二段</w:t></w:r></w:p>
  </w:body>
</w:document>`),
	})

	doc, err := pkg.Document()
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	if len(doc.Body.Paragraphs) != 2 {
		t.Fatalf("paragraphs = %d, want 2", len(doc.Body.Paragraphs))
	}
	if got := doc.Body.Paragraphs[0].Runs[0].Text[0].Value; got != "第一段" {
		t.Errorf("text = %q", got)
	}
	if got := doc.Body.Paragraphs[1].Properties.Justification.Val; got != "center" {
		t.Errorf("jc = %q, want center", got)
	}
}

func TestPackage_Relationships_Missing(t *testing.T) {
	pkg := buildPackage(t, map[string][]byte{
		"word/document.xml": []byte("<doc/>"),
	})

	rels, err := pkg.Relationships()
	if err != nil {
		t.Fatalf("Relationships() error = %v", err)
	}
	if len(rels.Relationships) != 0 {
		t.Errorf("expected empty relationships, got %+v", rels)
	}
}

func TestPackage_CoreProperties(t *testing.T) {
	pkg := buildPackage(t, map[string][]byte{
		"word/document.xml": []byte("<doc/>"),
		"docProps/core.xml": []byte(`<?xml version="1.0" encoding="UTF-8"?>
<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" xmlns:dc="http://purl.org/dc/elements/1.1/">
  <dc:title>年度报告</dc:title>
  <dc:creator>王五</dc:creator>
</cp:coreProperties>`),
	})

	props, err := pkg.CoreProperties()
	if err != nil {
		t.Fatalf("CoreProperties() error = %v", err)
	}
	if props.Title != "年度报告" || props.Creator != "王五" {
		t.Errorf("props = %+v", props)
	}
}

func TestToggle(t *testing.T) {
	var absent Toggle
	if absent.Present() || absent.On() {
		t.Error("zero Toggle should be absent and off")
	}

	var on Toggle
	on.XMLName.Local = "b"
	if !on.Present() || !on.On() {
		t.Error("bare element should be present and on")
	}

	off := on
	off.Val = "false"
	if off.On() {
		t.Error(`val="false" should read as off`)
	}
	off.Val = "0"
	if off.On() {
		t.Error(`val="0" should read as off`)
	}
}

func TestFonts_Pick(t *testing.T) {
	f := Fonts{ASCII: "Arial", HAnsi: "Calibri", EastAsia: "宋体"}
	if got := f.Pick(); got != "宋体" {
		t.Errorf("Pick() = %q, want 宋体", got)
	}
	f.EastAsia = ""
	if got := f.Pick(); got != "Calibri" {
		t.Errorf("Pick() = %q, want Calibri", got)
	}
}
