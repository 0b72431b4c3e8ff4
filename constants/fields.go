package constants

import "strings"

// FieldOrder is the canonical order of IdentityRecord fields in every
// output format. Keep in sync with entity.IdentityRecord.
var FieldOrder = []string{
	"ID_type", "dl_number", "expiry", "name", "dob",
	"address", "sex", "height", "weight", "hair", "eyes",
	"altered", "face_bbox",
}

// NASentinel is the canonical placeholder for a missing or unusable field.
const NASentinel = "na"

// MissingPhrases is the known family of "not provided" phrasings a model
// emits instead of omitting a field. Compared lowercase and trimmed.
// Versioned as a single constant set so normalization stays testable.
var MissingPhrases = map[string]struct{}{
	"":                              {},
	"na":                            {},
	"n/a":                           {},
	"none":                          {},
	"null":                          {},
	"nil":                           {},
	"unknown":                       {},
	"not provided":                  {},
	"not available":                 {},
	"none (not provided on the dl)": {},
}

// AlteredAffirmatives are the textual values that mark a document as
// altered. Anything else, including absence, maps to false.
var AlteredAffirmatives = map[string]struct{}{
	"true":    {},
	"yes":     {},
	"y":       {},
	"1":       {},
	"altered": {},
}

// AllowedExtensions holds the image extensions accepted for extraction.
var AllowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
}

// OutputFormats lists the supported output file formats.
var OutputFormats = []string{"json", "txt", "csv", "xlsx"}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
