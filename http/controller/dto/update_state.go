package dto

import "encoding/json"

// UpdateStateRequest is the payload posted by the processing pipeline when a
// source object changes state. ExtraParameters carries model specific outputs
// such as the encoded resolutions of a video or the extension of a document;
// the signature covers them along with the key and state.
type UpdateStateRequest struct {
	Key             string                     `json:"key" binding:"required"`
	State           string                     `json:"state" binding:"required,oneof=processing ready error"`
	Signature       string                     `json:"signature" binding:"required,max=200"`
	ExtraParameters map[string]json.RawMessage `json:"extraParameters"`
}

// Resolutions extracts the encoded resolution ladder from ExtraParameters,
// returning nil when the pipeline sent none.
func (r *UpdateStateRequest) Resolutions() ([]int, error) {
	raw, ok := r.ExtraParameters["resolutions"]
	if !ok {
		return nil, nil
	}
	var resolutions []int
	if err := json.Unmarshal(raw, &resolutions); err != nil {
		return nil, err
	}
	return resolutions, nil
}

// Extension extracts the detected file extension from ExtraParameters.
func (r *UpdateStateRequest) Extension() (string, error) {
	raw, ok := r.ExtraParameters["extension"]
	if !ok {
		return "", nil
	}
	var extension string
	if err := json.Unmarshal(raw, &extension); err != nil {
		return "", err
	}
	return extension, nil
}
