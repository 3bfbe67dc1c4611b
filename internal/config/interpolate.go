package config

import (
	"fmt"
	"regexp"

	stepwiseerrors "github.com/alexisbeaulieu97/stepwise/pkg/errors"
)

// refPattern matches {{name}} references inside command text. Dollar-style
// variables pass through untouched so shells can expand them at run time.
var refPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// References returns the distinct var names referenced by s, in order of
// first appearance.
func References(s string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, match := range refPattern.FindAllStringSubmatch(s, -1) {
		name := match[1]
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// Expand replaces every {{name}} reference in s with its value from vars.
// A reference to an unknown name is an error, never a silent drop.
func Expand(s string, vars map[string]string) (string, error) {
	var missing string
	expanded := refPattern.ReplaceAllStringFunc(s, func(ref string) string {
		name := refPattern.FindStringSubmatch(ref)[1]
		value, ok := vars[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return ref
		}
		return value
	})

	if missing != "" {
		return "", stepwiseerrors.NewValidationError("vars", fmt.Sprintf("undefined var reference %q", missing), nil)
	}
	return expanded, nil
}
