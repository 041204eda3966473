package ooxml

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var xmlDeclEncoding = regexp.MustCompile(`encoding\s*=\s*["']([^"']+)["']`)

// DecodeXMLText converts the raw bytes of an XML part to UTF-8.
// encoding/xml only accepts UTF-8, but documents produced by older
// CJK-locale tooling ship parts with UTF-16 byte-order marks or a
// GBK/GB18030 charset in the XML declaration.
func DecodeXMLText(data []byte) ([]byte, error) {
	// A BOM wins over the declaration.
	if bytes.HasPrefix(data, []byte{0xFF, 0xFE}) || bytes.HasPrefix(data, []byte{0xFE, 0xFF}) {
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		out, err := decodeWith(data, dec)
		if err != nil {
			return nil, err
		}
		return stripDeclEncoding(out), nil
	}
	if bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		return data[3:], nil
	}

	head := data
	if len(head) > 200 {
		head = head[:200]
	}
	m := xmlDeclEncoding.FindSubmatch(head)
	if m == nil {
		return data, nil
	}

	var dec *encoding.Decoder
	switch strings.ToLower(string(m[1])) {
	case "utf-8", "us-ascii":
		return data, nil
	case "gbk", "gb2312":
		dec = simplifiedchinese.GBK.NewDecoder()
	case "gb18030":
		dec = simplifiedchinese.GB18030.NewDecoder()
	case "utf-16", "utf-16le":
		dec = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	case "utf-16be":
		dec = unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()
	default:
		// Unknown charsets pass through; the XML parser reports
		// anything genuinely unreadable.
		return data, nil
	}

	out, err := decodeWith(data, dec)
	if err != nil {
		return nil, err
	}
	// The declaration now lies about the bytes; strip the attribute so
	// encoding/xml does not reject the part.
	return stripDeclEncoding(out), nil
}

// stripDeclEncoding removes the encoding attribute from the XML
// declaration only, leaving any matching text in the body alone.
func stripDeclEncoding(data []byte) []byte {
	end := bytes.Index(data, []byte("?>"))
	if end < 0 || end > 200 {
		return data
	}
	decl := xmlDeclEncoding.ReplaceAll(data[:end], nil)
	return append(decl, data[end:]...)
}

func decodeWith(data []byte, dec *encoding.Decoder) ([]byte, error) {
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), dec))
	if err != nil {
		return nil, fmt.Errorf("decoding part text: %w", err)
	}
	return out, nil
}
