// Package label extracts macro amounts from nutrition label text so a
// photographed or downloaded label can prefill a calculator entry. Parsing
// is line oriented and deliberately forgiving: labels differ between US and
// EU layouts, use either decimal separator, and bury the four values we
// care about between rows we ignore.
package label

import (
	"bytes"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoMacros reports label text in which no macro amount could be found.
var ErrNoMacros = errors.New("no macro amounts found in label text")

// Parsed holds the values recognized in one label. Fields the text never
// mentioned stay zero; ServingDescription is the raw serving-size text.
type Parsed struct {
	ServingDescription string
	ProteinGrams       float64
	FatGrams           float64
	TotalCarbGrams     float64
	FiberGrams         float64
}

const gramAmount = `([0-9]+(?:[.,][0-9]+)?)\s*g\b`

var (
	servingSizePattern = regexp.MustCompile(`(?i)^serving\s+size[:\s]+(.+)$`)
	totalFatPattern    = regexp.MustCompile(`(?i)\btotal\s+fat\b\D*?` + gramAmount)
	bareFatPattern     = regexp.MustCompile(`(?i)^fat\b\D*?` + gramAmount)
	totalCarbPattern   = regexp.MustCompile(`(?i)\btotal\s+carb(?:ohydrate)?s?\b\D*?` + gramAmount)
	bareCarbPattern    = regexp.MustCompile(`(?i)^carb(?:ohydrate)?s?\b\D*?` + gramAmount)
	fiberPattern       = regexp.MustCompile(`(?i)\bfib(?:er|re)\b\D*?` + gramAmount)
	proteinPattern     = regexp.MustCompile(`(?i)\bprotein\b\D*?` + gramAmount)
)

// ParseText scans label text for serving size, protein, total fat, total
// carbohydrate and fiber amounts. The first hit per field wins, mirroring
// top-to-bottom label order, so "Saturated Fat" below "Total Fat" never
// overwrites it. Text without a single macro amount fails with ErrNoMacros.
func ParseText(text string) (Parsed, error) {
	var p Parsed
	var haveServing, haveFat, haveCarb, haveFiber, haveProtein bool

	for _, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if !haveServing {
			if m := servingSizePattern.FindStringSubmatch(line); m != nil {
				p.ServingDescription = strings.TrimSpace(m[1])
				haveServing = true
				continue
			}
		}
		if !haveFat {
			if v, ok := matchGrams(totalFatPattern, line); ok {
				p.FatGrams, haveFat = v, true
			} else if v, ok := matchGrams(bareFatPattern, line); ok {
				p.FatGrams, haveFat = v, true
			}
		}
		if !haveCarb {
			if v, ok := matchGrams(totalCarbPattern, line); ok {
				p.TotalCarbGrams, haveCarb = v, true
			} else if v, ok := matchGrams(bareCarbPattern, line); ok && !strings.Contains(strings.ToLower(line), "net") {
				p.TotalCarbGrams, haveCarb = v, true
			}
		}
		if !haveFiber {
			if v, ok := matchGrams(fiberPattern, line); ok {
				p.FiberGrams, haveFiber = v, true
			}
		}
		if !haveProtein {
			if v, ok := matchGrams(proteinPattern, line); ok {
				p.ProteinGrams, haveProtein = v, true
			}
		}
	}

	if !haveFat && !haveCarb && !haveFiber && !haveProtein {
		return Parsed{}, ErrNoMacros
	}
	return p, nil
}

func matchGrams(pattern *regexp.Regexp, line string) (float64, bool) {
	m := pattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ExtractPDFText pulls the plain text out of an uploaded PDF, page by
// page, for ParseText to scan.
func ExtractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", err
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String(), nil
}
