package media

import (
	"bytes"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// imageMIMETypes maps the recognized media extensions to their MIME
// types. Files outside this set are not part of the image inventory.
var imageMIMETypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"webp": "image/webp",
	"tiff": "image/tiff",
	"svg":  "image/svg+xml",
}

// probeDimensions reads the pixel dimensions of an encoded image
// without decoding the full pixel data. SVG has no intrinsic pixel
// dimensions and is reported as unknown.
func probeDimensions(data []byte, ext string) (int, int, error) {
	if ext == "svg" {
		return 0, 0, fmt.Errorf("svg has no pixel dimensions")
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("decoding image config: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
