package repository

import (
	"encoding/json"
	"errors"

	"github.com/tnqbao/gau-media-service/entity"
	"github.com/tnqbao/gau-media-service/utils"
)

// ErrUnknownModel is returned when a parsed key carries a model tag the
// service has no table for. ParseKey already restricts the tag set, so this
// only fires if the grammar and this dispatch drift apart.
var ErrUnknownModel = errors.New("storage key references an unknown model")

// UploadStateExtra carries the model specific outputs reported alongside a
// state transition.
type UploadStateExtra struct {
	Resolutions []int
	Extension   string
}

// ApplyUploadState applies a verified state notification to the resource the
// key points at. The timestamp embedded in the key becomes uploaded_on when
// the state is ready; for any other state the stored timestamp is untouched.
func (r *Repository) ApplyUploadState(key *utils.StorageKey, state entity.UploadState, extra UploadStateExtra) error {
	uploadedOn := key.UploadedOn

	switch key.Model {
	case utils.KeyModelVideo:
		if err := r.VideoRepo.UpdateUploadState(key.ObjectID, state, &uploadedOn); err != nil {
			return err
		}
		if state == entity.UploadStateReady && len(extra.Resolutions) > 0 {
			resolutions, err := json.Marshal(extra.Resolutions)
			if err != nil {
				return err
			}
			return r.VideoRepo.UpdateResolutions(key.ObjectID, resolutions)
		}
		return nil

	case utils.KeyModelThumbnail:
		return r.ThumbnailRepo.UpdateUploadState(key.ObjectID, state, &uploadedOn)

	case utils.KeyModelTimedTextTrack:
		return r.TimedTextTrackRepo.UpdateUploadState(key.ObjectID, state, &uploadedOn)

	case utils.KeyModelDocument:
		if err := r.DocumentRepo.UpdateUploadState(key.ObjectID, state, &uploadedOn); err != nil {
			return err
		}
		if state == entity.UploadStateReady && extra.Extension != "" {
			return r.DocumentRepo.UpdateExtension(key.ObjectID, extra.Extension)
		}
		return nil
	}

	return ErrUnknownModel
}
