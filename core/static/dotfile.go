package static

import (
	"fmt"
	"strings"
)

// DotfilePolicy decides how files whose name starts with a dot are served.
// The zero value is DotfilesIgnore.
type DotfilePolicy int

const (
	// DotfilesIgnore answers 404, hiding the file's existence.
	DotfilesIgnore DotfilePolicy = iota
	// DotfilesAllow serves dotfiles like any other file.
	DotfilesAllow
	// DotfilesDeny answers 403.
	DotfilesDeny
)

func (p DotfilePolicy) String() string {
	switch p {
	case DotfilesIgnore:
		return "ignore"
	case DotfilesAllow:
		return "allow"
	case DotfilesDeny:
		return "deny"
	default:
		return fmt.Sprintf("DotfilePolicy(%d)", int(p))
	}
}

// ParseDotfilePolicy parses "allow", "deny" or "ignore" (case-insensitive).
func ParseDotfilePolicy(s string) (DotfilePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ignore", "":
		return DotfilesIgnore, nil
	case "allow":
		return DotfilesAllow, nil
	case "deny":
		return DotfilesDeny, nil
	default:
		return DotfilesIgnore, fmt.Errorf("%w: unknown dotfile policy %q", ErrInvalidMount, s)
	}
}

func (p DotfilePolicy) valid() bool {
	return p >= DotfilesIgnore && p <= DotfilesDeny
}

// check applies the policy to the final path segment.
func (p DotfilePolicy) check(name string) error {
	if !strings.HasPrefix(name, ".") || p == DotfilesAllow {
		return nil
	}
	if p == DotfilesDeny {
		return fmt.Errorf("%w: dotfile %s", ErrForbidden, name)
	}
	return fmt.Errorf("%w: dotfile %s", ErrNotFound, name)
}
