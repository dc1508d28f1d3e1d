package review

import (
	"strings"

	"github.com/carbonlens/ghgreview/internal/model"
)

// noisePaths are exact field paths the backend emits on every submission
// that carry no reviewable information.
var noisePaths = map[string]bool{
	"root['updated_at']":          true,
	"root['created_at']":          true,
	"root['status']":              true,
	"root['is_latest_submitted']": true,
	"root['report_version_id']":   true,
}

// noiseKeys are terminal bracket keys dropped wherever they appear (audit
// timestamps and workflow flags nested inside section objects).
var noiseKeys = map[string]bool{
	"updated_at": true,
	"created_at": true,
	"updated_by": true,
	"created_by": true,
}

func isNoise(field string) bool {
	if noisePaths[field] {
		return true
	}
	return noiseKeys[terminalKey(field)]
}

func terminalKey(field string) string {
	i := strings.LastIndex(field, "['")
	if i < 0 {
		return ""
	}
	rest := field[i+2:]
	j := strings.Index(rest, "']")
	if j < 0 {
		return ""
	}
	return rest[:j]
}

// normalizeRecord canonicalizes key casing on a record's nested values:
// some backend endpoints spell change-record shapes camelCase inside
// snapshot diffs. The input record is not mutated; rewritten copies of the
// nested values are returned.
func normalizeRecord(rec model.ChangeRecord) model.ChangeRecord {
	rec.OldValue = normalizeValue(rec.OldValue)
	rec.NewValue = normalizeValue(rec.NewValue)
	return rec
}

var keyAliases = map[string]string{
	"oldValue":   "old_value",
	"newValue":   "new_value",
	"changeType": "change_type",
}

func normalizeValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			if canon, ok := keyAliases[k]; ok {
				k = canon
			}
			out[k] = normalizeValue(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = normalizeValue(child)
		}
		return out
	default:
		return v
	}
}
