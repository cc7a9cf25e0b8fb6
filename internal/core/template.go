package core

import (
	"fmt"
	"strings"
)

const OutletMarker = "<!--vue-ssr-outlet-->"

type Template struct {
	Source string
}

func ParseTemplate(data []byte) (*Template, error) {
	src := string(data)
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("%w: empty template", ErrTemplateInvalid)
	}

	if !strings.Contains(src, OutletMarker) {
		return nil, fmt.Errorf("%w: missing %s", ErrTemplateInvalid, OutletMarker)
	}

	return &Template{Source: src}, nil
}

// HasTitle reports whether the template interpolates the context title.
func (t *Template) HasTitle() bool {
	return strings.Contains(t.Source, "{{ title }}") || strings.Contains(t.Source, "{{title}}")
}
