// Package version orders Maven/OSGi style version strings such as
// "4.10.0", "4.10.0-RC1" or "6.0.0.ALPHA1".
//
// A version is read as up to three numeric segments (major, minor, micro)
// followed by an optional qualifier. A release (empty qualifier) sorts after
// any qualified build with the same numbers; qualifiers are compared
// case-insensitively.
package version

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var reDigits = regexp.MustCompile(`^\d+$`)

// Parsed is the structured form of a version string.
type Parsed struct {
	Major     int
	Minor     int
	Micro     int
	Qualifier string
}

// Parse splits v into numeric segments and a qualifier. The first '-' is
// treated as a '.' separator. Once a segment is not purely numeric it and
// everything after it becomes the qualifier. Parse accepts any input.
func Parse(v string) Parsed {
	var p Parsed
	parts := strings.Split(strings.Replace(v, "-", ".", 1), ".")

	head := parts[0]
	parts = parts[1:]
	if !reDigits.MatchString(head) {
		// the unmodified input, not the dash-substituted one
		p.Qualifier = v
		return p
	}
	p.Major = atoi(head)

	for _, dst := range []*int{&p.Minor, &p.Micro} {
		if len(parts) == 0 {
			return p
		}
		seg := parts[0]
		parts = parts[1:]
		if !reDigits.MatchString(seg) {
			p.Qualifier = joinQualifier(seg, parts)
			return p
		}
		*dst = atoi(seg)
	}

	if len(parts) > 0 {
		p.Qualifier = strings.Join(parts, ".")
	}
	return p
}

func joinQualifier(seg string, rest []string) string {
	if remainder := strings.Join(rest, "."); remainder != "" {
		return seg + "." + remainder
	}
	return seg
}

// atoi parses a digit-only segment. Values too large for int saturate.
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return math.MaxInt
	}
	return n
}

// CompareOSGi orders two parsed versions. It returns the first non-zero
// difference of major, minor and micro, then ranks qualifiers: equal
// qualifiers are 0, an empty qualifier wins over a non-empty one, otherwise
// the lower-cased qualifiers decide with -1 or 1.
func CompareOSGi(v1, v2 Parsed) int {
	if v1 == v2 {
		return 0
	}
	// segments are non-negative, the differences cannot overflow
	if d := v1.Major - v2.Major; d != 0 {
		return d
	}
	if d := v1.Minor - v2.Minor; d != 0 {
		return d
	}
	if d := v1.Micro - v2.Micro; d != 0 {
		return d
	}
	if v1.Qualifier == v2.Qualifier {
		return 0
	}
	if v1.Qualifier == "" {
		return 1
	}
	if v2.Qualifier == "" {
		return -1
	}
	if strings.ToLower(v1.Qualifier) < strings.ToLower(v2.Qualifier) {
		return -1
	}
	return 1
}

// Compare orders two version strings in ascending order and is suitable as
// a sort comparator. Identical strings compare equal without parsing.
func Compare(v1, v2 string) int {
	if v1 == v2 {
		return 0
	}
	return CompareOSGi(Parse(v1), Parse(v2))
}

// CompareDesc is Compare with the arguments swapped.
func CompareDesc(v1, v2 string) int {
	return Compare(v2, v1)
}

// Sort returns a copy of versions in ascending order.
func Sort(versions []string) []string {
	out := slices.Clone(versions)
	slices.SortStableFunc(out, Compare)
	return out
}

// SortDesc returns a copy of versions in descending order, newest first.
func SortDesc(versions []string) []string {
	out := slices.Clone(versions)
	slices.SortStableFunc(out, CompareDesc)
	return out
}
