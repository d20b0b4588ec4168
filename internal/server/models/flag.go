package models

import "fmt"

// Flag is a boolean persisted as 0/1. Decoding also accepts true/false so
// hand-edited documents keep working.
type Flag bool

func (f Flag) Bool() bool { return bool(f) }

func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte("1"), nil
	}
	return []byte("0"), nil
}

func (f *Flag) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "0", "false":
		*f = false
	case "1", "true":
		*f = true
	default:
		return fmt.Errorf("invalid flag value: %s", data)
	}
	return nil
}
