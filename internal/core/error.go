package core

import (
	"errors"
	"fmt"
)

const InternalErrorMessage = "服务器内部错误"

var (
	ErrNotFound        = errors.New("ssrkit: not found")
	ErrBundleInvalid   = errors.New("ssrkit: invalid server bundle")
	ErrManifestInvalid = errors.New("ssrkit: invalid client manifest")
	ErrTemplateInvalid = errors.New("ssrkit: invalid template")
)

// RenderError is a failure reported by the renderer process.
type RenderError struct {
	Message string
	Stack   string
	Code    string
}

func (e *RenderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("render failed (code %s): %s", e.Code, e.Message)
	}
	return "render failed: " + e.Message
}

func (e *RenderError) Is(target error) bool {
	return target == ErrNotFound && e.Code == "404"
}

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
