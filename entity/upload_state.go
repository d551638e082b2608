package entity

// UploadState tracks the progression of an uploadable resource through the
// ingest pipeline.
type UploadState string

const (
	UploadStatePending    UploadState = "pending"
	UploadStateProcessing UploadState = "processing"
	UploadStateReady      UploadState = "ready"
	UploadStateError      UploadState = "error"
)

// NotifiableStates are the states a storage notification is allowed to carry.
// "pending" is only ever set by the service itself when an upload is initiated.
var NotifiableStates = []UploadState{
	UploadStateProcessing,
	UploadStateReady,
	UploadStateError,
}

func (s UploadState) Notifiable() bool {
	for _, state := range NotifiableStates {
		if s == state {
			return true
		}
	}
	return false
}
