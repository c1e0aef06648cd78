package textutil

import "strings"

// ContainsFold reports whether needle occurs in haystack ignoring case.
// An empty needle is contained in every haystack.
func ContainsFold(haystack, needle string) bool {
	return strings.Contains(Lower(haystack), Lower(needle))
}

// ContainsAnyFold reports whether any of needles occurs in haystack ignoring
// case. Needles are tested in order and the scan stops at the first hit.
func ContainsAnyFold(haystack string, needles []string) bool {
	if len(needles) == 0 {
		return false
	}
	lowered := Lower(haystack)
	for _, needle := range needles {
		if strings.Contains(lowered, Lower(needle)) {
			return true
		}
	}
	return false
}
