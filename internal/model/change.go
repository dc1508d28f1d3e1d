package model

import "encoding/json"

// ChangeType classifies a single change record or a structural node.
type ChangeType string

const (
	ChangeAdded     ChangeType = "added"
	ChangeDeleted   ChangeType = "deleted"
	ChangeModified  ChangeType = "modified"
	ChangeUnchanged ChangeType = "unchanged"
)

// ChangeRecord is one entry of the flat diff the upstream backend produces
// for a report-version pair. Field is an opaque bracket path into the
// report document, e.g.
//
//	root['facility_reports']['Plant A']['activity_data']['Flaring']
//
// Records are treated as immutable once decoded; the engine never mutates
// OldValue/NewValue in place.
type ChangeRecord struct {
	Field      string     `json:"field"`
	OldValue   any        `json:"old_value"`
	NewValue   any        `json:"new_value"`
	ChangeType ChangeType `json:"change_type,omitempty"`
}

// UnmarshalJSON accepts both the canonical snake_case keys and the
// camelCase spelling some backend endpoints emit.
func (c *ChangeRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	pick := func(keys ...string) (json.RawMessage, bool) {
		for _, k := range keys {
			if v, ok := raw[k]; ok {
				return v, true
			}
		}
		return nil, false
	}

	if v, ok := pick("field"); ok {
		if err := json.Unmarshal(v, &c.Field); err != nil {
			return err
		}
	}
	if v, ok := pick("old_value", "oldValue"); ok {
		if err := json.Unmarshal(v, &c.OldValue); err != nil {
			return err
		}
	}
	if v, ok := pick("new_value", "newValue"); ok {
		if err := json.Unmarshal(v, &c.NewValue); err != nil {
			return err
		}
	}
	if v, ok := pick("change_type", "changeType"); ok {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return err
		}
		c.ChangeType = normalizeChangeType(s)
	}
	return nil
}

// normalizeChangeType maps the backend's wire vocabulary onto ours; the
// diff collaborator says "removed" where the review engine says "deleted".
func normalizeChangeType(s string) ChangeType {
	switch s {
	case "removed", "deleted":
		return ChangeDeleted
	case "added":
		return ChangeAdded
	case "modified":
		return ChangeModified
	case "unchanged":
		return ChangeUnchanged
	default:
		return ChangeType(s)
	}
}
