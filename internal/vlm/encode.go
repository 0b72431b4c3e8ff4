package vlm

import (
	"encoding/base64"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// ReadAsDataURL reads a file and returns it as a base64 data URL plus its
// mime type, the payload shape OpenAI-compatible vision endpoints expect.
func ReadAsDataURL(path string) (string, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return EncodeDataURL(b, filepath.Ext(path)), mimeForExt(filepath.Ext(path)), nil
}

// EncodeDataURL encodes raw image bytes as a data URL for the given
// file extension.
func EncodeDataURL(b []byte, ext string) string {
	return "data:" + mimeForExt(ext) + ";base64," + base64.StdEncoding.EncodeToString(b)
}

func mimeForExt(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	mt := mime.TypeByExtension("." + ext)
	if mt == "" {
		// fallbacks
		switch ext {
		case "jpg", "jpeg":
			mt = "image/jpeg"
		case "png":
			mt = "image/png"
		default:
			mt = "application/octet-stream"
		}
	}
	return mt
}
