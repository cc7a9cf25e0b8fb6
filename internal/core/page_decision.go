package core

import "fmt"

type PageAction int

const (
	ActionRender PageAction = iota
	ActionNotFound
	ActionError
)

func (a PageAction) String() string {
	switch a {
	case ActionRender:
		return "render"
	case ActionNotFound:
		return "not_found"
	case ActionError:
		return "error"
	default:
		return "unknown"
	}
}

// DecidePageAction classifies the outcome of a render call.
func DecidePageAction(err error) PageAction {
	switch {
	case err == nil:
		return ActionRender
	case IsNotFoundError(err):
		return ActionNotFound
	default:
		return ActionError
	}
}

// NotFoundPolicy selects what the page handler does when the renderer reports a
// route miss.
type NotFoundPolicy int

const (
	NotFoundFallthrough NotFoundPolicy = iota
	NotFoundStatus
)

func ParseNotFoundPolicy(s string) (NotFoundPolicy, error) {
	switch s {
	case "", "fallthrough":
		return NotFoundFallthrough, nil
	case "status":
		return NotFoundStatus, nil
	default:
		return NotFoundFallthrough, fmt.Errorf("unknown not-found policy %q", s)
	}
}

func (p NotFoundPolicy) String() string {
	if p == NotFoundStatus {
		return "status"
	}
	return "fallthrough"
}
