package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Amount is a monetary value that decodes tolerantly: the backend is known to
// serialize prices as numbers, numeric strings, or null depending on the
// endpoint. Anything unparseable decodes to 0 rather than failing the whole
// payload.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*a = 0
		return nil
	}
	*a = Amount(f)
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(a))
}

func (a Amount) Float64() float64 { return float64(a) }
