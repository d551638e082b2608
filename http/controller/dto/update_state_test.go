package dto

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func bindUpdateState(t *testing.T, body string) (*UpdateStateRequest, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/update-state", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req UpdateStateRequest
	err := c.ShouldBindJSON(&req)
	return &req, err
}

func TestUpdateStateRequestBinding(t *testing.T) {
	req, err := bindUpdateState(t, `{
		"key": "550e8400-e29b-41d4-a716-446655440000/video/550e8400-e29b-41d4-a716-446655440000/1700000000",
		"state": "ready",
		"signature": "abc123",
		"extraParameters": {"resolutions": [240, 720]}
	}`)
	if err != nil {
		t.Fatalf("unexpected binding error: %v", err)
	}
	resolutions, err := req.Resolutions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resolutions) != 2 || resolutions[0] != 240 || resolutions[1] != 720 {
		t.Errorf("expected [240 720], got %v", resolutions)
	}
}

func TestUpdateStateRequestRejections(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			// pending is only ever set by the service itself
			"pending state",
			`{"key": "k", "state": "pending", "signature": "s"}`,
		},
		{
			"missing signature",
			`{"key": "k", "state": "ready"}`,
		},
		{
			"missing key",
			`{"state": "ready", "signature": "s"}`,
		},
		{
			"oversized signature",
			`{"key": "k", "state": "ready", "signature": "` + strings.Repeat("a", 201) + `"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := bindUpdateState(t, tt.body); err == nil {
				t.Error("expected a binding error")
			}
		})
	}
}

func TestUpdateStateRequestExtension(t *testing.T) {
	req, err := bindUpdateState(t, `{
		"key": "k", "state": "ready", "signature": "s",
		"extraParameters": {"extension": "pdf"}
	}`)
	if err != nil {
		t.Fatalf("unexpected binding error: %v", err)
	}
	extension, err := req.Extension()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if extension != "pdf" {
		t.Errorf("expected pdf, got %q", extension)
	}

	req, err = bindUpdateState(t, `{"key": "k", "state": "ready", "signature": "s",
		"extraParameters": {"extension": 42}}`)
	if err != nil {
		t.Fatalf("unexpected binding error: %v", err)
	}
	if _, err := req.Extension(); err == nil {
		t.Error("expected an extraction error for a non-string extension")
	}
}
