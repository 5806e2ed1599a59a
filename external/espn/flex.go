package espn

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// The feed is not consistent about scalar encodings: ids and scores show up as
// strings, numbers or {value, displayValue} objects depending on sport and endpoint.
// These types accept all of them so one odd field never fails a whole payload.

var jsonNull = []byte("null")

type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull) {
		*f = ""
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := sonic.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
	case '{':
		var obj struct {
			DisplayValue string      `json:"displayValue"`
			Value        *flexNumber `json:"value"`
		}
		if err := sonic.Unmarshal(trimmed, &obj); err != nil {
			*f = ""
			return nil
		}
		switch {
		case strings.TrimSpace(obj.DisplayValue) != "":
			*f = flexString(strings.TrimSpace(obj.DisplayValue))
		case obj.Value != nil && obj.Value.Valid:
			*f = flexString(strconv.FormatFloat(obj.Value.Value, 'f', -1, 64))
		default:
			*f = ""
		}
	case '[':
		*f = ""
	default:
		*f = flexString(string(trimmed))
	}
	return nil
}

func (f flexString) String() string {
	return string(f)
}

// flexNumber holds a numeric value that may be encoded as a number, a signed
// string ("+150", "-110", "EVEN") or an object with a value field.
type flexNumber struct {
	Value float64
	Valid bool
}

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	*n = flexNumber{}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, jsonNull) {
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := sonic.Unmarshal(trimmed, &s); err != nil {
			return nil
		}
		if v := parseAmerican(s); v != nil {
			*n = flexNumber{Value: *v, Valid: true}
		}
	case '{':
		var obj struct {
			Value *flexNumber `json:"value"`
		}
		if err := sonic.Unmarshal(trimmed, &obj); err == nil && obj.Value != nil {
			*n = *obj.Value
		}
	case '[', 't', 'f':
		return nil
	default:
		v, err := strconv.ParseFloat(string(trimmed), 64)
		if err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			*n = flexNumber{Value: v, Valid: true}
		}
	}
	return nil
}

func (n *flexNumber) Ptr() *float64 {
	if n == nil || !n.Valid {
		return nil
	}
	v := n.Value
	return &v
}

// flexBool treats missing, null and anything but true/"true" as false.
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	trimmed := string(bytes.TrimSpace(data))
	*b = flexBool(trimmed == "true" || trimmed == `"true"`)
	return nil
}

func parseAmerican(raw string) *float64 {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	switch strings.ToUpper(value) {
	case "EVEN", "EV":
		v := 100.0
		return &v
	case "OFF", "-", "N/A":
		return nil
	}

	value = strings.TrimPrefix(value, "+")
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
