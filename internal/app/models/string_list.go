package models

import (
	"encoding/json"
	"strings"
)

// StringList is a set-valued profile or scholarship field. It is persisted as a
// JSON array in a text column.
type StringList []string

// ParseStringList decodes a stored list. Anything that is not a JSON array of
// strings yields an empty list; stored data never causes an error.
func ParseStringList(raw string) StringList {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return StringList{}
	}

	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return StringList{}
	}
	return NewStringList(values...)
}

// NewStringList trims entries, drops blanks and removes duplicates while keeping order.
func NewStringList(values ...string) StringList {
	list := make(StringList, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		list = append(list, v)
	}
	return list
}

// Encode returns the stored JSON form. A nil list encodes as "[]".
func (l StringList) Encode() string {
	if len(l) == 0 {
		return "[]"
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return "[]"
	}
	return string(b)
}

// Contains reports exact membership.
func (l StringList) Contains(value string) bool {
	for _, v := range l {
		if v == value {
			return true
		}
	}
	return false
}

// ContainsFold reports case-insensitive membership.
func (l StringList) ContainsFold(value string) bool {
	value = strings.TrimSpace(value)
	for _, v := range l {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}

// FirstShared returns the first entry of l that also appears in other.
func (l StringList) FirstShared(other StringList) (string, bool) {
	for _, v := range l {
		if other.Contains(v) {
			return v, true
		}
	}
	return "", false
}

// UnmarshalJSON accepts a JSON array of strings or a string holding one, and
// falls back to an empty list for anything else.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err == nil {
		*l = NewStringList(values...)
		return nil
	}
	var encoded string
	if err := json.Unmarshal(data, &encoded); err == nil {
		*l = ParseStringList(encoded)
		return nil
	}
	*l = StringList{}
	return nil
}

// MarshalJSON always emits an array, never null.
func (l StringList) MarshalJSON() ([]byte, error) {
	return []byte(l.Encode()), nil
}
