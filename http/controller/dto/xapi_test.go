package dto

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

const validStatement = `{
	"verb": {
		"id": "https://w3id.org/xapi/video/verbs/played",
		"display": {"en-US": "played"}
	},
	"context": {
		"extensions": {"https://w3id.org/xapi/video/extensions/time": 12.4}
	},
	"timestamp": "2026-01-15T10:30:00Z"
}`

func TestValidateStatementGeneratesID(t *testing.T) {
	statement, err := ValidateStatement([]byte(validStatement))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uuid.Parse(statement.ID); err != nil {
		t.Errorf("expected a generated UUID id, got %q", statement.ID)
	}
	if statement.Verb.Display["en-US"] != "played" {
		t.Errorf("verb display lost: %+v", statement.Verb.Display)
	}
}

func TestValidateStatementKeepsProvidedID(t *testing.T) {
	raw := strings.Replace(validStatement, `"verb"`,
		`"id": "7b18457a-4f83-4029-b6c5-d0b3fa769a08", "verb"`, 1)
	statement, err := ValidateStatement([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if statement.ID != "7b18457a-4f83-4029-b6c5-d0b3fa769a08" {
		t.Errorf("id was not preserved: %q", statement.ID)
	}
}

func TestValidateStatementRejections(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{
			"unknown field listed by name",
			strings.Replace(validStatement, `"verb"`, `"bogus": 1, "verb"`, 1),
			"unknown statement fields: bogus",
		},
		{
			"relative verb id",
			strings.Replace(validStatement, "https://w3id.org/xapi/video/verbs/played", "played", 1),
			"verb.id must be an absolute URL",
		},
		{
			"empty verb display",
			strings.Replace(validStatement, `{"en-US": "played"}`, `{}`, 1),
			"verb.display is required",
		},
		{
			"missing context extensions",
			strings.Replace(validStatement,
				`"extensions": {"https://w3id.org/xapi/video/extensions/time": 12.4}`, ``, 1),
			"context.extensions is required",
		},
		{
			"missing timestamp",
			strings.Replace(validStatement, `"timestamp": "2026-01-15T10:30:00Z"`, `"result": {}`, 1),
			"timestamp is required",
		},
		{
			"non uuid id",
			strings.Replace(validStatement, `"verb"`, `"id": "not-a-uuid", "verb"`, 1),
			"id must be a canonical UUID",
		},
		{
			"undashed uuid id",
			strings.Replace(validStatement, `"verb"`, `"id": "550e8400e29b41d4a716446655440000", "verb"`, 1),
			"id must be a canonical UUID",
		},
		{
			"urn prefixed uuid id",
			strings.Replace(validStatement, `"verb"`, `"id": "urn:uuid:550e8400-e29b-41d4-a716-446655440000", "verb"`, 1),
			"id must be a canonical UUID",
		},
		{
			"braced uuid id",
			strings.Replace(validStatement, `"verb"`, `"id": "{550e8400-e29b-41d4-a716-446655440000}", "verb"`, 1),
			"id must be a canonical UUID",
		},
		{
			"not an object",
			`["not", "an", "object"]`,
			"statement is not a JSON object",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateStatement([]byte(tt.raw))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
