package dto

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tnqbao/gau-media-service/utils"
)

// XAPIVerb identifies what the learner did, per the xAPI vocabulary.
type XAPIVerb struct {
	ID      string            `json:"id"`
	Display map[string]string `json:"display"`
}

type XAPIContext struct {
	Extensions map[string]json.RawMessage `json:"extensions"`
}

// XAPIStatement is the subset of an xAPI statement accepted from players.
// The actor is attached server side from the authenticated session, so it is
// deliberately not part of the payload.
type XAPIStatement struct {
	ID        string          `json:"id"`
	Verb      XAPIVerb        `json:"verb"`
	Context   XAPIContext     `json:"context"`
	Result    json.RawMessage `json:"result,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

var xapiStatementFields = map[string]bool{
	"id":        true,
	"verb":      true,
	"context":   true,
	"result":    true,
	"timestamp": true,
}

// ValidateStatement parses a raw statement, rejects unknown top level fields
// by name, enforces the required shape and assigns an id when the player did
// not provide one.
func ValidateStatement(raw []byte) (*XAPIStatement, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("statement is not a JSON object: %w", err)
	}

	var unknown []string
	for name := range fields {
		if !xapiStatementFields[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown statement fields: %s", strings.Join(unknown, ", "))
	}

	var statement XAPIStatement
	if err := json.Unmarshal(raw, &statement); err != nil {
		return nil, fmt.Errorf("malformed statement: %w", err)
	}

	verbID, err := url.Parse(statement.Verb.ID)
	if err != nil || verbID.Scheme == "" || verbID.Host == "" {
		return nil, fmt.Errorf("verb.id must be an absolute URL")
	}
	if len(statement.Verb.Display) == 0 {
		return nil, fmt.Errorf("verb.display is required")
	}
	if statement.Context.Extensions == nil {
		return nil, fmt.Errorf("context.extensions is required")
	}
	if statement.Timestamp.IsZero() {
		return nil, fmt.Errorf("timestamp is required")
	}

	if statement.ID == "" {
		statement.ID = uuid.NewString()
	} else if !utils.IsCanonicalUUID(statement.ID) {
		return nil, fmt.Errorf("id must be a canonical UUID")
	}

	return &statement, nil
}
