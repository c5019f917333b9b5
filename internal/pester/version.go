package pester

import (
	"fmt"
	"sort"

	goversion "github.com/hashicorp/go-version"
)

// Constraint restricts which installed Pester versions are acceptable.
// At most one of Required / Minimum is set.
type Constraint struct {
	Required *goversion.Version
	Minimum  *goversion.Version
}

// ParseConstraint validates and parses the version parameters. Setting both
// required and minimum is rejected, as is any string that does not parse
// as a version.
func ParseConstraint(required, minimum string) (Constraint, error) {
	if required != "" && minimum != "" {
		return Constraint{}, fmt.Errorf("parameters required_version and minimum_version are mutually exclusive")
	}

	var c Constraint
	if required != "" {
		v, err := goversion.NewVersion(required)
		if err != nil {
			return Constraint{}, fmt.Errorf("invalid value %q for required_version: %w", required, err)
		}
		c.Required = v
	}
	if minimum != "" {
		v, err := goversion.NewVersion(minimum)
		if err != nil {
			return Constraint{}, fmt.Errorf("invalid value %q for minimum_version: %w", minimum, err)
		}
		c.Minimum = v
	}
	return c, nil
}

// Satisfies reports whether v is acceptable under the constraint.
func (c Constraint) Satisfies(v *goversion.Version) bool {
	switch {
	case c.Required != nil:
		return v.Equal(c.Required)
	case c.Minimum != nil:
		return v.GreaterThanOrEqual(c.Minimum)
	default:
		return true
	}
}

// Select picks the install to use: the exact required version, or the
// highest version satisfying the minimum, or the highest installed when
// unconstrained. The returned errors are the user-facing messages for a
// missing or unimportable dependency.
func (c Constraint) Select(installed []Install) (Install, error) {
	if len(installed) == 0 {
		return Install{}, fmt.Errorf("Pester module is not installed on this host")
	}

	candidates := make([]Install, 0, len(installed))
	for _, in := range installed {
		if c.Satisfies(in.Version) {
			candidates = append(candidates, in)
		}
	}
	if len(candidates) == 0 {
		if c.Required != nil {
			return Install{}, fmt.Errorf("Pester version %s is not installed on this host", c.Required)
		}
		return Install{}, fmt.Errorf("Pester version %s or greater is not installed on this host", c.Minimum)
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Version.GreaterThan(candidates[j].Version)
	})
	return candidates[0], nil
}
