package controller

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/tnqbao/gau-media-service/config"
	"github.com/tnqbao/gau-media-service/infra"
	"github.com/tnqbao/gau-media-service/utils"
)

const webhookSecret = "shared-secret"

func newWebhookController() *Controller {
	return &Controller{
		Config: &config.Config{EnvConfig: &config.EnvConfig{
			UpdateStateSecrets: []string{webhookSecret},
		}},
		Infra: &infra.Infra{
			Logger: &infra.LoggerClient{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))},
		},
	}
}

func postUpdateState(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/update-state", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	newWebhookController().UpdateState(c)
	return w
}

func TestUpdateStateMalformedKeyIsRejectedBeforeSignature(t *testing.T) {
	// A malformed key is a validation fault, not an auth fault, regardless of
	// whether the signature would have checked out.
	w := postUpdateState(t, `{"key": "not/a/storage/key", "state": "ready", "signature": "garbage"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a malformed key, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateStateInvalidSignature(t *testing.T) {
	key := "550e8400-e29b-41d4-a716-446655440000/video/550e8400-e29b-41d4-a716-446655440000/1700000000"
	w := postUpdateState(t, `{"key": "`+key+`", "state": "ready", "signature": "deadbeef"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a bad signature, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateStateTamperedExtrasRejected(t *testing.T) {
	key := "550e8400-e29b-41d4-a716-446655440000/video/550e8400-e29b-41d4-a716-446655440000/1700000000"
	// Signed without extras; delivering it with a resolution ladder attached
	// must fail verification.
	signature := utils.ComputeHMACSHA256(webhookSecret, utils.BuildNotificationPayload(key, "ready", nil))

	w := postUpdateState(t, `{
		"key": "`+key+`",
		"state": "ready",
		"signature": "`+signature+`",
		"extraParameters": {"resolutions": [144]}
	}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for tampered extras, got %d: %s", w.Code, w.Body.String())
	}
}
