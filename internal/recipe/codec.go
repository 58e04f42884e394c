package recipe

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// sharePayload is the wire shape of a shared recipe, carried in the
// recipe query parameter of a share link. Entry ids are not part of it;
// the importing store assigns fresh ones.
type sharePayload struct {
	Name    string       `json:"name,omitempty"`
	Entries []shareEntry `json:"entries"`
}

type shareEntry struct {
	Label     string   `json:"label,omitempty"`
	Protein   float64  `json:"protein"`
	Fat       float64  `json:"fat"`
	TotalCarb float64  `json:"totalCarb"`
	Fiber     float64  `json:"fiber"`
	Servings  *float64 `json:"servings,omitempty"`
}

// EncodeShare packs a recipe into a URL-safe token, JSON wrapped in
// unpadded base64. A blank name is left out of the payload.
func EncodeShare(name string, entries []Entry) (string, error) {
	payload := sharePayload{Entries: make([]shareEntry, 0, len(entries))}
	if strings.TrimSpace(name) != "" {
		payload.Name = name
	}
	for _, e := range entries {
		servings := e.Servings
		payload.Entries = append(payload.Entries, shareEntry{
			Label:     e.Label,
			Protein:   e.ProteinGrams,
			Fat:       e.FatGrams,
			TotalCarb: e.TotalCarbGrams,
			Fiber:     e.FiberGrams,
			Servings:  &servings,
		})
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode share: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeShare unpacks a share token back into a name and entry seeds.
// Tokens come from outside the process, so every quantity passes through
// the same coercion as any other seed value: feeding the result to
// Replace can only produce in-domain entries. A missing servings field
// defaults to one serving.
func DecodeShare(encoded string) (string, []EntryInit, error) {
	data, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", nil, fmt.Errorf("decode share: %w", err)
	}
	var payload sharePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", nil, fmt.Errorf("decode share: %w", err)
	}
	inits := make([]EntryInit, 0, len(payload.Entries))
	for _, e := range payload.Entries {
		inits = append(inits, EntryInit{
			Label:          e.Label,
			ProteinGrams:   e.Protein,
			FatGrams:       e.Fat,
			TotalCarbGrams: e.TotalCarb,
			FiberGrams:     e.Fiber,
			Servings:       e.Servings,
		})
	}
	return payload.Name, inits, nil
}
