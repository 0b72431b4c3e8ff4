package vlm

import "context"

// RawFields is the optional-field shape of one model answer before
// normalization. Every scalar is a pointer so absence is a typed case
// rather than a zero value the normalizer can't tell apart from real data.
type RawFields struct {
	IDType   *string `json:"ID_type"`
	DLNumber *string `json:"dl_number"`
	Expiry   *string `json:"expiry"`
	Name     *string `json:"name"`
	DOB      *string `json:"dob"`
	Address  *string `json:"address"`
	Sex      *string `json:"sex"`
	Height   *string `json:"height"`
	Weight   *string `json:"weight"`
	Hair     *string `json:"hair"`
	Eyes     *string `json:"eyes"`
	Altered  *string `json:"altered"`
	FaceBBox []any   `json:"face_bbox"`
}

// Inferrer is the interface the extraction pipeline depends on. The
// production implementation lives in the fireworks subpackage; tests
// substitute fakes.
type Inferrer interface {
	// Infer sends one image (as a data URL) to the vision-language service
	// and returns the raw textual answer. The answer is untrusted: it may be
	// clean JSON, JSON wrapped in prose, or garbage.
	Infer(ctx context.Context, imageDataURL string) ([]byte, error)
}
