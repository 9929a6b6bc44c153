package types

import (
	"fmt"
	"strings"
)

// TransformSpec describes one rename transformation. It is a value type:
// two specs are the same transformation exactly when they compare equal.
type TransformSpec struct {
	Pattern         string `json:"pattern" yaml:"pattern"`
	Replacement     string `json:"replacement" yaml:"replacement"`
	IsRegex         bool   `json:"isRegex" yaml:"is_regex"`
	CaseInsensitive bool   `json:"caseInsensitive" yaml:"case_insensitive"`
}

// IsNoop reports whether the spec can never change a name
func (s TransformSpec) IsNoop() bool {
	return s.Pattern == ""
}

// String returns a short human-readable form, e.g. `"IMG_" -> "photo_" [regex, ignore case]`
func (s TransformSpec) String() string {
	var flags []string
	if s.IsRegex {
		flags = append(flags, "regex")
	}
	if s.CaseInsensitive {
		flags = append(flags, "ignore case")
	}
	out := fmt.Sprintf("%q -> %q", s.Pattern, s.Replacement)
	if len(flags) > 0 {
		out += " [" + strings.Join(flags, ", ") + "]"
	}
	return out
}
