package core

import "fmt"

// Version represents a PDF version
type Version struct {
	Major int
	Minor int
}

// String returns the version as a string (e.g., "1.7")
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Less reports whether v is an older version than other.
func (v Version) Less(other Version) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	return v.Minor < other.Minor
}

// Max returns the newer of the given versions.
func Max(versions ...Version) Version {
	var out Version
	for _, v := range versions {
		if out.Less(v) {
			out = v
		}
	}
	return out
}
