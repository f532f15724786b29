package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// errNotNumeric is returned when a numeric request field holds anything but a
// number or a numeric string.
var errNotNumeric = errors.New("value is not numeric")

// Int is an integer request field. Form-encoded clients send numbers as
// strings, so both 7 and "7" decode.
type Int int64

// Float is a decimal request field that also accepts numeric strings.
type Float float64

// numericText returns the number carried by a JSON number or a JSON string.
func numericText(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", errNotNumeric
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return "", errNotNumeric
		}
		return s, nil
	}
	if len(data) == 0 || !(data[0] == '-' || (data[0] >= '0' && data[0] <= '9')) {
		return "", errNotNumeric
	}
	return string(data), nil
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotNumeric
	}
	return f, nil
}

// UnmarshalJSON accepts 7, 7.0, 7e0 and "7". Fractional values are rejected.
func (n *Int) UnmarshalJSON(data []byte) error {
	s, err := numericText(data)
	if err != nil {
		return err
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		*n = Int(v)
		return nil
	}
	f, err := parseFloat(s)
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return errNotNumeric
	}
	*n = Int(f)
	return nil
}

// UnmarshalJSON accepts 1.5 and "1.5".
func (n *Float) UnmarshalJSON(data []byte) error {
	s, err := numericText(data)
	if err != nil {
		return err
	}
	f, err := parseFloat(s)
	if err != nil {
		return err
	}
	*n = Float(f)
	return nil
}

// IntPtr converts an optional Int to *int64.
func IntPtr(n *Int) *int64 {
	if n == nil {
		return nil
	}
	v := int64(*n)
	return &v
}
