// Package format provides input format detection for document buffers.
package format

import (
	"archive/zip"
	"bytes"
	"path/filepath"
	"strings"
)

// Format represents a recognized input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// DOCX indicates an Office Open XML word-processing package.
	DOCX
	// LegacyDoc indicates the binary Word format (.doc), which this
	// library delegates to an external converter.
	LegacyDoc
	// Zip indicates a ZIP archive that is not a word-processing
	// package.
	Zip
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case DOCX:
		return "DOCX"
	case LegacyDoc:
		return "DOC"
	case Zip:
		return "ZIP"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case DOCX:
		return ".docx"
	case LegacyDoc:
		return ".doc"
	case Zip:
		return ".zip"
	default:
		return ""
	}
}

// cfbMagic is the Compound File Binary signature carried by legacy
// Office formats.
var cfbMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// DetectExt guesses the format from a filename extension.
func DetectExt(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		return DOCX
	case ".doc":
		return LegacyDoc
	case ".zip":
		return Zip
	default:
		return Unknown
	}
}

// Detect inspects a buffer's content to determine its format. ZIP
// archives are opened to check for word/document.xml, which
// distinguishes a word-processing package from other ZIP-based
// formats.
func Detect(data []byte) Format {
	if len(data) >= len(cfbMagic) && bytes.Equal(data[:len(cfbMagic)], cfbMagic) {
		return LegacyDoc
	}
	if len(data) < 4 || data[0] != 0x50 || data[1] != 0x4B || data[2] != 0x03 || data[3] != 0x04 {
		return Unknown
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Unknown
	}
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			return DOCX
		}
	}
	return Zip
}
