package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"pecalc/internal/label"
	applog "pecalc/internal/log"
	"pecalc/internal/recipe"
)

const maxLabelUploadSize = 5 << 20 // 5 MiB

// ImportLabel turns pasted nutrition label text, or an uploaded label
// file, into a new calculator entry. An uploaded file wins over pasted
// text when both are present.
func ImportLabel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseMultipartForm(maxLabelUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		applog.Error(r.Context(), "failed to parse label import form", "error", err)
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	store := workspaceStore(r)

	text := r.FormValue("label_text")
	data, mimeType, err := readLabelUpload(r)
	if err != nil {
		applog.Error(r.Context(), "failed to read label upload", "error", err)
		renderCalculatorNotice(w, r, store, "error", "We couldn't read that file. Please try again.")
		return
	}

	if len(data) > 0 {
		if strings.Contains(mimeType, "pdf") {
			extracted, err := label.ExtractPDFText(data)
			if err != nil {
				applog.Warn(r.Context(), "failed to extract text from label pdf", "error", err)
				renderCalculatorNotice(w, r, store, "error", "We couldn't read that PDF. Try pasting the label text instead.")
				return
			}
			text = extracted
		} else {
			text = string(data)
		}
	}

	if strings.TrimSpace(text) == "" {
		renderCalculatorNotice(w, r, store, "error", "Paste label text or choose a file before importing.")
		return
	}

	parsed, err := label.ParseText(text)
	if err != nil {
		if errors.Is(err, label.ErrNoMacros) {
			renderCalculatorNotice(w, r, store, "error", "No macro amounts were found in that label.")
			return
		}
		applog.Error(r.Context(), "failed to parse label text", "error", err)
		renderCalculatorNotice(w, r, store, "error", "We couldn't parse that label. Please try again.")
		return
	}

	store.AddEntry(recipe.EntryInit{
		Label:          importedEntryLabel(parsed.ServingDescription),
		ProteinGrams:   parsed.ProteinGrams,
		FatGrams:       parsed.FatGrams,
		TotalCarbGrams: parsed.TotalCarbGrams,
		FiberGrams:     parsed.FiberGrams,
	})
	renderCalculator(w, r, store)
}

// importedEntryLabel names an imported entry after the label's serving
// description so the user can tell it apart from hand-entered rows.
func importedEntryLabel(serving string) string {
	serving = strings.TrimSpace(serving)
	if serving == "" {
		return "Imported label"
	}
	return "Imported (" + serving + ")"
}

// readLabelUpload pulls the optional label file out of the multipart
// form. A missing file, or a plain form with no file part at all, is not
// an error; the caller falls back to pasted text.
func readLabelUpload(r *http.Request) ([]byte, string, error) {
	file, header, err := r.FormFile("label_file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("read uploaded label: %w", err)
	}
	defer file.Close()

	if header.Size > maxLabelUploadSize {
		return nil, "", fmt.Errorf("uploaded label exceeds %d bytes", maxLabelUploadSize)
	}

	buf := bytes.NewBuffer(make([]byte, 0, header.Size))
	if _, err := io.Copy(buf, file); err != nil {
		return nil, "", fmt.Errorf("read uploaded label: %w", err)
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = labelMimeFromName(header.Filename)
	}
	return buf.Bytes(), mimeType, nil
}

func labelMimeFromName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return "application/pdf"
	case ".txt":
		return "text/plain"
	default:
		return ""
	}
}
