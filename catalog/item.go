package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Item is a single catalog entry. Values are copied out of the catalog, so a
// caller can never change the catalog through an Item it was handed.
type Item struct {
	Title string `json:"title"`
	Price int    `json:"price"`
}

// ItemList wraps a list of items for the list-style responses.
type ItemList struct {
	Items []Item `json:"items"`
}

// UserRequest is the body accepted by the POST routes. Nothing about it is
// validated; it is only logged.
type UserRequest struct {
	Username Text `json:"username"`
	Password Text `json:"password"`
}

// Text is a string that also accepts JSON numbers, booleans and null,
// converting them to their textual form.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch v.(type) {
	case float64, bool:
		// Keep the literal as sent ("1e3" stays "1e3", 12 stays "12").
		*t = Text(data)
		return nil
	default:
		return fmt.Errorf("cannot use JSON %T as text", v)
	}
}

func (t Text) String() string { return string(t) }
