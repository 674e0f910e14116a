package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// IDSet is a set of account ids stored as a JSON array column.
// Insertion order is kept so API output is stable.
type IDSet []string

// Value implements driver.Valuer interface for database storage
func (s IDSet) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

// Scan implements sql.Scanner interface for database retrieval
func (s *IDSet) Scan(value interface{}) error {
	if value == nil {
		*s = IDSet{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into IDSet", value)
	}

	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return err
	}
	*s = IDSet(ids)
	return nil
}

// GormDataType returns the data type for GORM
func (IDSet) GormDataType() string {
	return "json"
}

// MarshalJSON implements json.Marshaler interface
func (s IDSet) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

func (s IDSet) Contains(id string) bool {
	for _, existing := range s {
		if existing == id {
			return true
		}
	}
	return false
}

// With returns a copy of the set with id added. The receiver is not modified.
func (s IDSet) With(id string) IDSet {
	out := make(IDSet, 0, len(s)+1)
	out = append(out, s...)
	if !s.Contains(id) {
		out = append(out, id)
	}
	return out
}

// Without returns a copy of the set with id removed. The receiver is not modified.
func (s IDSet) Without(id string) IDSet {
	out := make(IDSet, 0, len(s))
	for _, existing := range s {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

// Intersect returns the ids present in both sets, in the receiver's order.
func (s IDSet) Intersect(other IDSet) IDSet {
	if len(s) == 0 || len(other) == 0 {
		return IDSet{}
	}
	lookup := make(map[string]struct{}, len(other))
	for _, id := range other {
		lookup[id] = struct{}{}
	}

	out := IDSet{}
	for _, id := range s {
		if _, ok := lookup[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// PollOption is a single answer of a poll with its vote count
type PollOption struct {
	Name           string `json:"name"`
	SelectionCount int    `json:"selection_count"`
}

// PollOptions is a custom type for handling JSON arrays of poll options in database
type PollOptions []PollOption

// Value implements driver.Valuer interface for database storage
func (o PollOptions) Value() (driver.Value, error) {
	if o == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]PollOption(o))
}

// Scan implements sql.Scanner interface for database retrieval
func (o *PollOptions) Scan(value interface{}) error {
	if value == nil {
		*o = PollOptions{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	default:
		return fmt.Errorf("cannot scan %T into PollOptions", value)
	}
}

// GormDataType returns the data type for GORM
func (PollOptions) GormDataType() string {
	return "json"
}
