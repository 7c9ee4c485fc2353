package store

import (
	"encoding/json"
	"strconv"
	"time"
)

// Record is a loosely-typed row as returned by the store. Sparse updates
// are also Records: only the keys present in the request are sent, so the
// store merges them against the existing row.
type Record map[string]any

// String returns the value under key as a string, or "" when absent or
// of another type.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Int64 returns the value under key as an int64. JSON numbers decode as
// float64; numeric strings are also accepted because the store serializes
// bigint columns as strings.
func (r Record) Int64(key string) int64 {
	switch v := r[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	}
	return 0
}

// Float64 returns the value under key as a float64.
func (r Record) Float64(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case json.Number:
		f, _ := v.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	}
	return 0
}

// Bool returns the value under key as a bool. The store serializes some
// boolean columns as 0/1 depending on the column type.
func (r Record) Bool(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v == "true" || v == "t" || v == "1"
	}
	return false
}

// Time parses the value under key as an ISO-8601 timestamp. The second
// return is false when the key is absent or unparseable.
func (r Record) Time(key string) (time.Time, bool) {
	s := r.String(key)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Has reports whether key is present, regardless of its value.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Decode converts store records into a typed destination via JSON
// round-trip; dst must be a pointer.
func Decode(src, dst any) error {
	b, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}
