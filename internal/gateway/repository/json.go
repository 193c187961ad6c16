// Package repository provides gateway persistence for PostgreSQL and MySQL.
package repository

import (
	"encoding/json"

	apperrors "github.com/allisson/gatewayconsole/internal/errors"
)

func encodeStringMap(m map[string]string) ([]byte, error) {
	if m == nil {
		m = map[string]string{}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode map")
	}
	return data, nil
}

func decodeStringMap(data []byte) (map[string]string, error) {
	m := map[string]string{}
	if len(data) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode map")
	}
	return m, nil
}
