package validator

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// RequiredString validates that a string is not empty after trimming whitespace.
func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "field is required",
		},
	}
}

func MinLenString(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) >= min
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %d characters long", min),
		},
	}
}

func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) <= max
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters long", max),
		},
	}
}

// MatchesRegex validates against custom patterns. Compiles the pattern on
// each call - cache externally for hot paths.
func MatchesRegex(field, value, pattern, description string) Rule {
	regex := regexp.MustCompile(pattern)
	return Rule{
		Check: func() bool {
			if value == "" {
				return false
			}
			return regex.MatchString(value)
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must match %s pattern", description),
		},
	}
}

// ValidURL validates that the value parses as an absolute http or https URL.
func ValidURL(field, value string) Rule {
	return Rule{
		Check: func() bool {
			u, err := url.Parse(value)
			if err != nil {
				return false
			}
			return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid http(s) URL",
		},
	}
}

// OneOfString validates membership in a fixed set of allowed values.
func OneOfString(field, value string, allowed ...string) Rule {
	return Rule{
		Check: func() bool {
			for _, a := range allowed {
				if value == a {
					return true
				}
			}
			return false
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
		},
	}
}

// ValidPort validates a decimal TCP port in the 1-65535 range.
func ValidPort(field, value string) Rule {
	return Rule{
		Check: func() bool {
			port, err := strconv.Atoi(value)
			if err != nil {
				return false
			}
			return port >= 1 && port <= 65535
		},
		Error: ValidationError{
			Field:   field,
			Message: "must be a valid port number (1-65535)",
		},
	}
}

// When applies the rule only if the condition holds; otherwise the rule
// passes unconditionally. Used for mode-dependent required fields.
func When(condition bool, rule Rule) Rule {
	return Rule{
		Check: func() bool {
			if !condition {
				return true
			}
			return rule.Check()
		},
		Error: rule.Error,
	}
}
