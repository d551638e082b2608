package dto

import "time"

// activeStamp converts an upload timestamp to the integer form carried in
// API responses. Returns nil when the asset has never finished an upload.
func activeStamp(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	stamp := t.Unix()
	return &stamp
}
