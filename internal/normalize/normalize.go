// Package normalize maps raw summary documents onto the canonical record
// shape. Stored documents have been written by two generations of clients,
// one using camelCase keys and one using snake_case, with identifiers and
// timestamps in more than one encoding; everything funnels through here.
package normalize

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"recap/backend/internal/model"
)

// fieldKeys maps each canonical field to its accepted source keys, in
// precedence order. An explicit table, not reflection.
var fieldKeys = map[string][]string{
	"id":               {"id", "_id"},
	"transcript":       {"transcript"},
	"customPrompt":     {"customPrompt", "custom_prompt"},
	"generatedSummary": {"generatedSummary", "generated_summary"},
	"editedSummary":    {"editedSummary", "edited_summary"},
	"modelUsed":        {"modelUsed", "model_used"},
	"createdAt":        {"createdAt", "created_at"},
	"updatedAt":        {"updatedAt", "updated_at"},
}

// Record canonicalizes a raw document. Pure apart from the current-time
// fallback, which is only reached when a document carries no timestamp at
// all (a defect case, not a normal path).
func Record(doc map[string]any) model.SummaryRecord {
	createdAt, ok := timeField(doc, "createdAt")
	if !ok {
		createdAt = time.Now().UTC()
	}
	updatedAt, ok := timeField(doc, "updatedAt")
	if !ok {
		updatedAt = createdAt
	}

	return model.SummaryRecord{
		ID:               idString(doc),
		Transcript:       stringField(doc, "transcript"),
		CustomPrompt:     stringField(doc, "customPrompt"),
		GeneratedSummary: stringField(doc, "generatedSummary"),
		EditedSummary:    stringPtrField(doc, "editedSummary"),
		ModelUsed:        stringPtrField(doc, "modelUsed"),
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
}

// Doc renders a record in the canonical stored form (camelCase keys, string
// id, RFC3339 timestamps). Record(Doc(r)) == r for any normalized r.
func Doc(r model.SummaryRecord) map[string]any {
	doc := map[string]any{
		"id":               r.ID,
		"transcript":       r.Transcript,
		"customPrompt":     r.CustomPrompt,
		"generatedSummary": r.GeneratedSummary,
		"editedSummary":    nil,
		"modelUsed":        nil,
		"createdAt":        r.CreatedAt.UTC().Format(time.RFC3339Nano),
		"updatedAt":        r.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if r.EditedSummary != nil {
		doc["editedSummary"] = *r.EditedSummary
	}
	if r.ModelUsed != nil {
		doc["modelUsed"] = *r.ModelUsed
	}
	return doc
}

func lookup(doc map[string]any, canonical string) (any, bool) {
	for _, key := range fieldKeys[canonical] {
		if v, ok := doc[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// idString renders the identifier as a printable string regardless of
// whether the store handed it over as a string or a native numeric id.
func idString(doc map[string]any) string {
	v, ok := lookup(doc, "id")
	if !ok {
		return ""
	}
	switch id := v.(type) {
	case string:
		return id
	case json.Number:
		return id.String()
	case int64:
		return strconv.FormatInt(id, 10)
	case float64:
		return strconv.FormatInt(int64(id), 10)
	default:
		return fmt.Sprintf("%v", id)
	}
}

func stringField(doc map[string]any, canonical string) string {
	v, ok := lookup(doc, canonical)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func stringPtrField(doc map[string]any, canonical string) *string {
	v, ok := lookup(doc, canonical)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

// timeField accepts RFC3339 strings, epoch milliseconds, or time.Time.
func timeField(doc map[string]any, canonical string) (time.Time, bool) {
	v, ok := lookup(doc, canonical)
	if !ok {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed.UTC(), true
	case json.Number:
		millis, err := t.Int64()
		if err != nil {
			return time.Time{}, false
		}
		return time.UnixMilli(millis).UTC(), true
	case int64:
		return time.UnixMilli(t).UTC(), true
	case float64:
		return time.UnixMilli(int64(t)).UTC(), true
	default:
		return time.Time{}, false
	}
}
