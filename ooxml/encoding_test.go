package ooxml

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

func TestDecodeXMLText_UTF8Passthrough(t *testing.T) {
	in := []byte(`<?xml version="1.0" encoding="UTF-8"?><root>中文</root>`)
	out, err := DecodeXMLText(in)
	if err != nil {
		t.Fatalf("DecodeXMLText() error = %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Error("UTF-8 input should pass through unchanged")
	}
}

func TestDecodeXMLText_UTF8BOM(t *testing.T) {
	in := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`<root>text</root>`)...)
	out, err := DecodeXMLText(in)
	if err != nil {
		t.Fatalf("DecodeXMLText() error = %v", err)
	}
	if string(out) != `<root>text</root>` {
		t.Errorf("BOM not stripped: %q", out)
	}
}

func TestDecodeXMLText_GBK(t *testing.T) {
	src := `<?xml version="1.0" encoding="GBK"?><root>简体中文内容</root>`
	enc, _, err := transform.Bytes(simplifiedchinese.GBK.NewEncoder(), []byte(src))
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	out, err := DecodeXMLText(enc)
	if err != nil {
		t.Fatalf("DecodeXMLText() error = %v", err)
	}
	if !strings.Contains(string(out), "简体中文内容") {
		t.Errorf("GBK content not decoded: %q", out)
	}
	// The declaration's encoding attribute must go away so encoding/xml
	// accepts the transcoded bytes.
	if end := strings.Index(string(out), "?>"); end < 0 || strings.Contains(string(out[:end]), "GBK") {
		t.Errorf("declaration still names GBK: %q", out)
	}
}

func TestDecodeXMLText_GB18030(t *testing.T) {
	src := `<?xml version="1.0" encoding="GB18030"?><root>汉字</root>`
	enc, _, err := transform.Bytes(simplifiedchinese.GB18030.NewEncoder(), []byte(src))
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	out, err := DecodeXMLText(enc)
	if err != nil {
		t.Fatalf("DecodeXMLText() error = %v", err)
	}
	if !strings.Contains(string(out), "汉字") {
		t.Errorf("GB18030 content not decoded: %q", out)
	}
}

func TestDecodeXMLText_UTF16BOM(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-16"?><root>双字节</root>`
	enc, _, err := transform.Bytes(unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder(), []byte(src))
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	out, err := DecodeXMLText(enc)
	if err != nil {
		t.Fatalf("DecodeXMLText() error = %v", err)
	}
	if !strings.Contains(string(out), "双字节") {
		t.Errorf("UTF-16 content not decoded: %q", out)
	}
}

func TestDecodeXMLText_UnknownCharsetPassthrough(t *testing.T) {
	in := []byte(`<?xml version="1.0" encoding="Shift_JIS"?><root/>`)
	out, err := DecodeXMLText(in)
	if err != nil {
		t.Fatalf("DecodeXMLText() error = %v", err)
	}
	if !bytes.Equal(out, in) {
		t.Error("unknown charsets should pass through untouched")
	}
}

func TestStripDeclEncoding_BodyUntouched(t *testing.T) {
	in := []byte(`<?xml version="1.0" encoding="GBK"?><root>encoding="GBK" in text</root>`)
	out := stripDeclEncoding(in)
	if !strings.Contains(string(out), `encoding="GBK" in text`) {
		t.Errorf("body text was rewritten: %q", out)
	}
	if end := strings.Index(string(out), "?>"); strings.Contains(string(out[:end]), "GBK") {
		t.Errorf("declaration not cleaned: %q", out)
	}
}
