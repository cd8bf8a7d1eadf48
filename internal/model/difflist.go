package model

import (
	"database/sql/driver"
	"encoding/json"
)

// DiffList stores a diff payload as a JSON text column.
type DiffList []DiffEntry

func (d DiffList) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]DiffEntry(d))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *DiffList) Scan(src interface{}) error {
	if src == nil {
		*d = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		*d = nil
		return nil
	}
	if len(data) == 0 {
		*d = nil
		return nil
	}
	return json.Unmarshal(data, (*[]DiffEntry)(d))
}
