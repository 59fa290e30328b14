package search

import "encoding/json"

// Secret holds a credential that must never appear in logs or serialized
// output. The zero value is "unset". The raw value is only extracted via
// Reveal at the point of building request headers.
type Secret string

const redactedPlaceholder = "**********"

// Reveal returns the raw credential value.
func (s Secret) Reveal() string {
	return string(s)
}

// IsZero reports whether no value is set.
func (s Secret) IsZero() bool {
	return s == ""
}

// String returns a redacted placeholder for non-empty secrets.
func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return redactedPlaceholder
}

// MarshalJSON serializes an empty string regardless of the held value.
// Secrets entering the process via config files or explicit fields never
// round-trip to plaintext.
func (s Secret) MarshalJSON() ([]byte, error) {
	return []byte(`""`), nil
}

// UnmarshalJSON reads a plain string value.
func (s *Secret) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	*s = Secret(value)
	return nil
}

// MarshalYAML serializes an empty string regardless of the held value.
func (s Secret) MarshalYAML() (any, error) {
	return "", nil
}

// UnmarshalYAML reads a plain string value.
func (s *Secret) UnmarshalYAML(unmarshal func(any) error) error {
	var value string
	if err := unmarshal(&value); err != nil {
		return err
	}
	*s = Secret(value)
	return nil
}
