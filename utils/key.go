package utils

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tnqbao/gau-media-service/entity"
)

// ErrInvalidKey is returned when a storage notification key does not match
// the key grammar. The whole notification must be rejected in that case.
var ErrInvalidKey = errors.New("storage key does not match the expected pattern")

// Resource type tags used in storage keys.
const (
	KeyModelVideo          = "video"
	KeyModelThumbnail      = "thumbnail"
	KeyModelTimedTextTrack = "timedtexttrack"
	KeyModelDocument       = "document"
)

const (
	uuidPattern = "[0-9A-Fa-f]{8}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{4}-[0-9A-Fa-f]{12}"
	// Extensions may not contain dots, path separators, colons, wildcards,
	// quotes, angle brackets, pipes or line breaks.
	extensionPattern = "[^.\\\\/:*?&\"<>|\r\n]+"
)

var (
	keyRegex  = buildKeyRegex()
	uuidRegex = regexp.MustCompile("^" + uuidPattern + "$")
)

// IsCanonicalUUID reports whether s is a UUID in the canonical 8-4-4-4-12
// form. Stricter than uuid.Parse, which also accepts undashed, braced and
// urn-prefixed variants.
func IsCanonicalUUID(s string) bool {
	return uuidRegex.MatchString(s)
}

func buildKeyRegex() *regexp.Regexp {
	modes := make([]string, len(entity.TimedTextModes))
	for i, mode := range entity.TimedTextModes {
		modes[i] = string(mode)
	}
	pattern := "^(?P<owner>" + uuidPattern + ")" +
		"/(?P<model>" + KeyModelVideo + "|" + KeyModelThumbnail + "|" + KeyModelTimedTextTrack + "|" + KeyModelDocument + ")" +
		"/(?P<object>" + uuidPattern + ")" +
		"/(?P<stamp>[0-9]{10})" +
		"(?:_(?P<language>[a-z-]{2,10})_(?P<mode>" + strings.Join(modes, "|") + "))?" +
		"(?:\\.(?P<extension>" + extensionPattern + "))?$"
	return regexp.MustCompile(pattern)
}

// StorageKey is the structured form of an object storage key:
// <owner>/<model>/<object>/<stamp>[_<language>_<mode>][.<extension>]
// Owner is the parent video for thumbnails and timed text tracks, and the
// resource itself for videos and documents.
type StorageKey struct {
	OwnerID    uuid.UUID
	Model      string
	ObjectID   uuid.UUID
	Stamp      string
	UploadedOn time.Time
	Language   string
	Mode       entity.TimedTextMode
	Extension  string
}

// ParseKey decomposes a raw storage key. It returns ErrInvalidKey on any key
// that does not match the grammar exactly; there is no partial acceptance.
func ParseKey(raw string) (*StorageKey, error) {
	match := keyRegex.FindStringSubmatch(raw)
	if match == nil {
		return nil, ErrInvalidKey
	}

	elements := make(map[string]string)
	for i, name := range keyRegex.SubexpNames() {
		if name != "" {
			elements[name] = match[i]
		}
	}

	ownerID, err := uuid.Parse(elements["owner"])
	if err != nil {
		return nil, ErrInvalidKey
	}
	objectID, err := uuid.Parse(elements["object"])
	if err != nil {
		return nil, ErrInvalidKey
	}
	uploadedOn, err := ToTime(elements["stamp"])
	if err != nil {
		return nil, ErrInvalidKey
	}

	return &StorageKey{
		OwnerID:    ownerID,
		Model:      elements["model"],
		ObjectID:   objectID,
		Stamp:      elements["stamp"],
		UploadedOn: uploadedOn,
		Language:   elements["language"],
		Mode:       entity.TimedTextMode(elements["mode"]),
		Extension:  elements["extension"],
	}, nil
}

// String rebuilds the raw key from its components. ParseKey(k.String())
// round-trips for every valid key.
func (k *StorageKey) String() string {
	var b strings.Builder
	b.WriteString(k.OwnerID.String())
	b.WriteString("/")
	b.WriteString(k.Model)
	b.WriteString("/")
	b.WriteString(k.ObjectID.String())
	b.WriteString("/")
	b.WriteString(k.Stamp)
	if k.Language != "" {
		b.WriteString("_")
		b.WriteString(k.Language)
		b.WriteString("_")
		b.WriteString(string(k.Mode))
	}
	if k.Extension != "" {
		b.WriteString(".")
		b.WriteString(k.Extension)
	}
	return b.String()
}
