package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"checklist-cli/internal/model"
)

// ErrMalformed marks a slot value that could not be turned back into an item list.
var ErrMalformed = errors.New("malformed tasks data")

// EncodeItems renders the wire form of the tasks slot: a JSON array of
// {id, text, completed}. An empty or nil list encodes as [].
func EncodeItems(items []model.Item) (string, error) {
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeItems parses the tasks slot. Besides JSON errors it rejects ids that would break
// the store invariants: non-positive, duplicated, or math.MaxInt (no next id above it).
func DecodeItems(v string) ([]model.Item, error) {
	if isNullOrEmpty([]byte(v)) {
		return []model.Item{}, nil
	}
	var items []model.Item
	if err := json.Unmarshal([]byte(v), &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	seen := make(map[int]bool, len(items))
	for _, it := range items {
		if it.ID <= 0 || it.ID == math.MaxInt {
			return nil, fmt.Errorf("%w: invalid id %d", ErrMalformed, it.ID)
		}
		if seen[it.ID] {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrMalformed, it.ID)
		}
		seen[it.ID] = true
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

func isNullOrEmpty(b []byte) bool {
	if len(b) == 0 {
		return true
	}
	s := strings.TrimSpace(string(b))
	return s == "" || s == "null"
}
