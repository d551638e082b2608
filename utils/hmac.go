package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sort"
	"strings"
)

// ErrInvalidSignature is returned when a storage notification carries a
// signature no configured shared secret can reproduce. Deliberately carries
// no detail: a rejected notification is a security event, not a debugging aid.
var ErrInvalidSignature = errors.New("invalid notification signature")

// BuildNotificationPayload constructs the canonical string signed on a
// storage notification. Extra parameters are part of the signed payload:
// anything the notification persists must be covered by the signature.
// Format: KEY\nSTATE[\nNAME=VALUE]... with extras sorted by name.
func BuildNotificationPayload(key, state string, extra map[string]json.RawMessage) string {
	var b strings.Builder
	b.WriteString(key)
	b.WriteString("\n")
	b.WriteString(state)

	names := make([]string, 0, len(extra))
	for name := range extra {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.WriteString("\n")
		b.WriteString(name)
		b.WriteString("=")
		b.Write(extra[name])
	}
	return b.String()
}

// ComputeHMACSHA256 computes HMAC-SHA256 signature and returns hex-encoded string.
//
// Parameters:
//   - secretKey: The secret key for HMAC computation
//   - message: The message to sign (typically the canonical payload)
//
// Returns hex-encoded signature (64 characters)
func ComputeHMACSHA256(secretKey, message string) string {
	h := hmac.New(sha256.New, []byte(secretKey))
	h.Write([]byte(message))
	return hex.EncodeToString(h.Sum(nil))
}

// SecureCompare performs constant-time string comparison to prevent timing attacks.
// This MUST be used when comparing signatures.
//
// Returns true if both strings are equal, false otherwise.
func SecureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// VerifyNotificationSignature checks a notification signature against every
// configured shared secret. Keeping several secrets valid at once lets the
// transcoding stack and this service rotate secrets without a deploy window.
func VerifyNotificationSignature(key, state string, extra map[string]json.RawMessage, signature string, secrets []string) error {
	payload := BuildNotificationPayload(key, state, extra)
	for _, secret := range secrets {
		if SecureCompare(ComputeHMACSHA256(secret, payload), signature) {
			return nil
		}
	}
	return ErrInvalidSignature
}
