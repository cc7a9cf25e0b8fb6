package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "sentinel", err: ErrNotFound, want: true},
		{name: "render error with 404", err: &RenderError{Message: "no route", Code: "404"}, want: true},
		{name: "wrapped render error with 404", err: fmt.Errorf("render /x: %w", &RenderError{Code: "404"}), want: true},
		{name: "render error with other code", err: &RenderError{Message: "boom", Code: "500"}, want: false},
		{name: "render error without code", err: &RenderError{Message: "boom"}, want: false},
		{name: "unrelated", err: errors.New("ssrkit: not found?"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsNotFoundError(tt.err); got != tt.want {
				t.Errorf("IsNotFoundError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRenderErrorMessage(t *testing.T) {
	err := &RenderError{Message: "window is not defined", Code: "500"}
	if got := err.Error(); got != "render failed (code 500): window is not defined" {
		t.Errorf("unexpected message %q", got)
	}

	err = &RenderError{Message: "boom"}
	if got := err.Error(); got != "render failed: boom" {
		t.Errorf("unexpected message %q", got)
	}
}
