package core

import (
	"encoding/json"
	"fmt"
)

type ServerBundle struct {
	Entry string                     `json:"entry"`
	Files map[string]string          `json:"files"`
	Maps  map[string]json.RawMessage `json:"maps,omitempty"`
}

func ParseServerBundle(data []byte) (*ServerBundle, error) {
	var b ServerBundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBundleInvalid, err)
	}

	if b.Entry == "" {
		return nil, fmt.Errorf("%w: missing entry", ErrBundleInvalid)
	}

	if _, ok := b.Files[b.Entry]; !ok {
		return nil, fmt.Errorf("%w: entry %q not present in files", ErrBundleInvalid, b.Entry)
	}

	return &b, nil
}

func (b *ServerBundle) FileCount() int {
	if b == nil {
		return 0
	}
	return len(b.Files)
}
