package votes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value is a submitted vote: Like, Dislike, or Retract.
type Value int

const (
	Dislike Value = -1
	Retract Value = 0
	Like    Value = 1
)

func (v Value) Valid() bool {
	return v == Dislike || v == Retract || v == Like
}

// ParseValue checks that n is one of -1, 0, 1.
func ParseValue(n int) (Value, error) {
	v := Value(n)
	if !v.Valid() {
		return 0, fmt.Errorf("%w: %d (expected -1, 0 or 1)", ErrInvalidVoteValue, n)
	}
	return v, nil
}

// CoerceValue turns the raw "value" field of a request body into a Value.
// Integers, integral floats and numeric strings are accepted; booleans,
// null and fractional numbers are not.
func CoerceValue(raw json.RawMessage) (Value, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, fmt.Errorf("%w: value is required", ErrInvalidVoteValue)
	}

	var text string
	switch raw[0] {
	case '"':
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidVoteValue, err)
		}
		text = strings.TrimSpace(text)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		text = string(raw)
	default:
		return 0, fmt.Errorf("%w: %s is not an integer", ErrInvalidVoteValue, raw)
	}

	if n, err := strconv.Atoi(text); err == nil {
		return ParseValue(n)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidVoteValue, text)
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidVoteValue, text)
	}
	return ParseValue(int(f))
}
