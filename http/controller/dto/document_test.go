package dto

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tnqbao/gau-media-service/entity"
)

func testDocument(uploaded bool) *entity.Document {
	document := &entity.Document{
		ID:          uuid.MustParse("770e8400-e29b-41d4-a716-446655440000"),
		PlaylistID:  uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		Title:       "My Report",
		Extension:   "pdf",
		UploadState: entity.UploadStatePending,
		Playlist:    &entity.Playlist{Title: "Math 101"},
	}
	if uploaded {
		uploadedOn := time.Unix(1700000000, 0).UTC()
		document.UploadedOn = &uploadedOn
		document.UploadState = entity.UploadStateReady
	}
	return document
}

func TestDocumentFilename(t *testing.T) {
	tests := []struct {
		name      string
		playlist  string
		title     string
		extension string
		want      string
	}{
		{"with extension", "Math 101", "My Report", "pdf", "math-101_my-report.pdf"},
		{"without extension", "Math 101", "My Report", "", "math-101_my-report"},
		{"messy titles", "  Intro  to   GO ", "Final--Exam", "docx", "intro-to-go_final-exam.docx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			document := &entity.Document{
				Title:     tt.title,
				Extension: tt.extension,
				Playlist:  &entity.Playlist{Title: tt.playlist},
			}
			if got := DocumentFilename(document); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildDocumentResponsePendingHasNoURL(t *testing.T) {
	resp, err := BuildDocumentResponse(testDocument(false), newTestCDN(t, false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.URL != "" {
		t.Errorf("expected empty url before any upload, got %s", resp.URL)
	}
	if resp.Filename != "math-101_my-report.pdf" {
		t.Errorf("unexpected filename: %s", resp.Filename)
	}
}

func TestBuildDocumentResponseReady(t *testing.T) {
	resp, err := BuildDocumentResponse(testDocument(true), newTestCDN(t, false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "https://cdn.example.com/770e8400-e29b-41d4-a716-446655440000" +
		"/document/1700000000.pdf?response-content-disposition=attachment%3B+filename%3Dmath-101_my-report.pdf"
	if resp.URL != want {
		t.Errorf("url:\n got %s\nwant %s", resp.URL, want)
	}
}

func TestBuildDocumentResponseSigned(t *testing.T) {
	resp, err := BuildDocumentResponse(testDocument(true), newTestCDN(t, true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(resp.URL, "Signature=") || !strings.Contains(resp.URL, "Key-Pair-Id=") {
		t.Errorf("expected a signed url, got %s", resp.URL)
	}
	if !strings.Contains(resp.URL, "response-content-disposition=") {
		t.Errorf("signing must preserve the disposition parameter: %s", resp.URL)
	}
}
