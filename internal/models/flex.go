package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexInt decodes a JSON number, a numeric string, null, or an empty
// string into an int. The legacy backend is inconsistent about which it
// emits (lead minutes arrive as "40" from one endpoint version and 40
// from another); anything non-numeric decodes to zero instead of failing
// the whole payload.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}

	s := string(data)
	if s[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			*f = 0
			return nil
		}
	}

	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		// Tolerate junk like "N/A"; absent lead/cutoff means "none".
		*f = 0
		return nil
	}
	*f = FlexInt(n)
	return nil
}

// FlexString decodes a JSON string or number into a string, so type
// codes sent as 3 and as "3" compare equal downstream.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}

	*f = FlexString(string(data))
	return nil
}
