package entity

import "idextract/constants"

// IdentityRecord is the canonical per-image result. Every field is always
// present so the output shape stays uniform across a run, including for
// images whose extraction failed outright.
type IdentityRecord struct {
	IDType   string `json:"ID_type"`
	DLNumber string `json:"dl_number"`
	Expiry   string `json:"expiry"`
	Name     string `json:"name"`
	DOB      string `json:"dob"`
	Address  string `json:"address"`
	Sex      string `json:"sex"`
	Height   string `json:"height"`
	Weight   string `json:"weight"`
	Hair     string `json:"hair"`
	Eyes     string `json:"eyes"`
	Altered  bool   `json:"altered"`
	FaceBBox *BBox  `json:"face_bbox,omitempty"`
}

// NewDefaultRecord returns a record with every field at its default:
// "na" for strings, false for altered, no face box. Used both as the
// failure placeholder and as the base an extraction fills in.
func NewDefaultRecord() IdentityRecord {
	na := constants.NASentinel
	return IdentityRecord{
		IDType:   na,
		DLNumber: na,
		Expiry:   na,
		Name:     na,
		DOB:      na,
		Address:  na,
		Sex:      na,
		Height:   na,
		Weight:   na,
		Hair:     na,
		Eyes:     na,
		Altered:  false,
		FaceBBox: nil,
	}
}

// StringFields returns the record's string-valued fields keyed by their
// wire names, in no particular order. Field ordering for output lives in
// constants.FieldOrder.
func (r IdentityRecord) StringFields() map[string]string {
	return map[string]string{
		"ID_type":   r.IDType,
		"dl_number": r.DLNumber,
		"expiry":    r.Expiry,
		"name":      r.Name,
		"dob":       r.DOB,
		"address":   r.Address,
		"sex":       r.Sex,
		"height":    r.Height,
		"weight":    r.Weight,
		"hair":      r.Hair,
		"eyes":      r.Eyes,
	}
}
