package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Score is a number that may be missing. The zero value is missing, so a
// Cambridge score of 0 must be built with Some(0).
type Score struct {
	value float64
	valid bool
}

// None is the missing score.
var None Score

// Some wraps a present value. NaN is treated as missing.
func Some(v float64) Score {
	if math.IsNaN(v) {
		return None
	}
	return Score{value: v, valid: true}
}

// ParseScore parses a raw score string such as "8" or "7,5".
// Empty or non-numeric input yields None.
func ParseScore(raw string) Score {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return None
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return None
	}
	return Some(v)
}

// Valid reports whether the score is present.
func (s Score) Valid() bool { return s.valid }

// Get returns the value and whether it is present.
func (s Score) Get() (float64, bool) { return s.value, s.valid }

// Or returns the value or def when missing.
func (s Score) Or(def float64) float64 {
	if !s.valid {
		return def
	}
	return s.value
}

// Format renders the value without trailing zeros, or missing when absent.
func (s Score) Format(missing string) string {
	if !s.valid {
		return missing
	}
	return FormatNumber(s.value)
}

func (s Score) String() string { return s.Format("null") }

// FormatNumber renders a number the shortest way that round-trips (60, 62.5).
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MarshalJSON encodes a missing score as null.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.value)
}

// UnmarshalJSON accepts numbers, numeric strings and null. Anything else is
// decoded as missing rather than failing the whole document.
func (s *Score) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = None
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err == nil {
		*s = Some(v)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = ParseScore(str)
		return nil
	}
	*s = None
	return nil
}

// MarshalYAML encodes a missing score as null.
func (s Score) MarshalYAML() (any, error) {
	if !s.valid {
		return nil, nil
	}
	return s.value, nil
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML student files.
func (s *Score) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		*s = None
		return nil
	}
	var v float64
	if err := node.Decode(&v); err == nil {
		*s = Some(v)
		return nil
	}
	*s = ParseScore(node.Value)
	return nil
}
