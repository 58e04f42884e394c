package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

const sampleLabelText = `Nutrition Facts
Serving Size: 2 tbsp (32 g)
Calories 190
Total Fat 16g
Saturated Fat 2g
Total Carbohydrate 7g
Dietary Fiber 3g
Protein 7g`

func TestImportLabelParsesPastedText(t *testing.T) {
	sm, cleanupSM := withTestSessionManager(t)
	t.Cleanup(cleanupSM)
	_, cleanupReg := withTestRegistry(t)
	t.Cleanup(cleanupReg)

	ctx := loadSession(t, sm)
	req := postForm(ctx, "/tools/label-import", url.Values{"label_text": {sampleLabelText}})
	w := httptest.NewRecorder()

	ImportLabel(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	store := workspaceStore(req)
	entries := store.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected one imported entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry.ProteinGrams != 7 || entry.FatGrams != 16 || entry.TotalCarbGrams != 7 || entry.FiberGrams != 3 {
		t.Fatalf("expected parsed macros, got %+v", entry)
	}
	if !strings.Contains(entry.Label, "2 tbsp (32 g)") {
		t.Fatalf("expected the serving description in the label, got %q", entry.Label)
	}
}

func TestImportLabelReadsUploadedTextFile(t *testing.T) {
	sm, cleanupSM := withTestSessionManager(t)
	t.Cleanup(cleanupSM)
	_, cleanupReg := withTestRegistry(t)
	t.Cleanup(cleanupReg)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("label_file", "label.txt")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(sampleLabelText)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	ctx := loadSession(t, sm)
	req := httptest.NewRequest(http.MethodPost, "/tools/label-import", &buf).WithContext(ctx)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	ImportLabel(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	store := workspaceStore(req)
	if store.Len() != 1 {
		t.Fatalf("expected one imported entry, got %d", store.Len())
	}
	entry := store.Entries()[0]
	if entry.FatGrams != 16 {
		t.Fatalf("expected fat from the uploaded file, got %v", entry.FatGrams)
	}
}

func TestImportLabelUploadWinsOverPastedText(t *testing.T) {
	sm, cleanupSM := withTestSessionManager(t)
	t.Cleanup(cleanupSM)
	_, cleanupReg := withTestRegistry(t)
	t.Cleanup(cleanupReg)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("label_text", "Protein 99g"); err != nil {
		t.Fatalf("failed to write text field: %v", err)
	}
	part, err := mw.CreateFormFile("label_file", "label.txt")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte("Protein 12g")); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	ctx := loadSession(t, sm)
	req := httptest.NewRequest(http.MethodPost, "/tools/label-import", &buf).WithContext(ctx)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()

	ImportLabel(w, req)

	store := workspaceStore(req)
	if store.Len() != 1 {
		t.Fatalf("expected one imported entry, got %d", store.Len())
	}
	if got := store.Entries()[0].ProteinGrams; got != 12 {
		t.Fatalf("expected the uploaded file to win, got protein %v", got)
	}
}

func TestImportLabelRejectsEmptySubmission(t *testing.T) {
	sm, cleanupSM := withTestSessionManager(t)
	t.Cleanup(cleanupSM)
	_, cleanupReg := withTestRegistry(t)
	t.Cleanup(cleanupReg)

	ctx := loadSession(t, sm)
	req := postForm(ctx, "/tools/label-import", url.Values{"label_text": {"   "}})
	w := httptest.NewRecorder()

	ImportLabel(w, req)

	if !strings.Contains(w.Body.String(), "Paste label text or choose a file before importing.") {
		t.Fatal("expected the empty submission notice")
	}
	if workspaceStore(req).Len() != 0 {
		t.Fatal("expected no entry for an empty submission")
	}
}

func TestImportLabelRejectsTextWithoutMacros(t *testing.T) {
	sm, cleanupSM := withTestSessionManager(t)
	t.Cleanup(cleanupSM)
	_, cleanupReg := withTestRegistry(t)
	t.Cleanup(cleanupReg)

	ctx := loadSession(t, sm)
	req := postForm(ctx, "/tools/label-import", url.Values{"label_text": {"best before march, store in a cool place"}})
	w := httptest.NewRecorder()

	ImportLabel(w, req)

	if !strings.Contains(w.Body.String(), "No macro amounts were found in that label.") {
		t.Fatal("expected the no-macros notice")
	}
	if workspaceStore(req).Len() != 0 {
		t.Fatal("expected no entry when nothing parses")
	}
}

func TestImportLabelMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/tools/label-import", nil)
	w := httptest.NewRecorder()

	ImportLabel(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", w.Code)
	}
}

func TestImportedEntryLabel(t *testing.T) {
	if got := importedEntryLabel("1 cup (240 ml)"); got != "Imported (1 cup (240 ml))" {
		t.Fatalf("importedEntryLabel = %q", got)
	}
	if got := importedEntryLabel("  "); got != "Imported label" {
		t.Fatalf("importedEntryLabel for blank serving = %q", got)
	}
}

func TestLabelMimeFromName(t *testing.T) {
	tests := map[string]string{
		"label.PDF":   "application/pdf",
		"notes.txt":   "text/plain",
		"photo.jpeg":  "",
		"noextension": "",
	}
	for name, want := range tests {
		if got := labelMimeFromName(name); got != want {
			t.Fatalf("labelMimeFromName(%q) = %q, want %q", name, got, want)
		}
	}
}
