package vlm

import (
	"strings"

	"idextract/constants"
	"idextract/internal/entity"
)

// Normalize maps a raw extracted field value to its canonical form: absent
// values and anything in the known "not provided" family become the "na"
// sentinel; everything else passes through trimmed. Idempotent.
func Normalize(raw *string) string {
	if raw == nil {
		return constants.NASentinel
	}
	trimmed := strings.TrimSpace(*raw)
	if _, missing := constants.MissingPhrases[strings.ToLower(trimmed)]; missing {
		return constants.NASentinel
	}
	return trimmed
}

// NormalizeAltered maps the altered field through its boolean-specific
// path: known textual affirmatives are true; everything else, including
// absent or unparseable values, is false. Ambiguity never flags a document.
func NormalizeAltered(raw *string) bool {
	if raw == nil {
		return false
	}
	_, yes := constants.AlteredAffirmatives[strings.ToLower(strings.TrimSpace(*raw))]
	return yes
}

// BuildRecord applies the normalizer to every scalar field and the bbox
// validator to the face region, producing the canonical record.
func BuildRecord(fields RawFields) entity.IdentityRecord {
	rec := entity.NewDefaultRecord()
	rec.IDType = Normalize(fields.IDType)
	rec.DLNumber = Normalize(fields.DLNumber)
	rec.Expiry = Normalize(fields.Expiry)
	rec.Name = Normalize(fields.Name)
	rec.DOB = Normalize(fields.DOB)
	rec.Address = Normalize(fields.Address)
	rec.Sex = Normalize(fields.Sex)
	// height values often carry inch marks ("5'10\"")
	if h := strings.TrimSpace(strings.ReplaceAll(Normalize(fields.Height), `"`, "")); h == "" {
		rec.Height = constants.NASentinel
	} else {
		rec.Height = h
	}
	rec.Weight = Normalize(fields.Weight)
	rec.Hair = Normalize(fields.Hair)
	rec.Eyes = Normalize(fields.Eyes)
	rec.Altered = NormalizeAltered(fields.Altered)
	if box, ok := entity.ValidateBBox(fields.FaceBBox); ok {
		rec.FaceBBox = &box
	}
	return rec
}
