//go:build !windows

package fs

// IsHidden reports dot-files as hidden.
func IsHidden(_ string, name string) bool {
	return len(name) > 0 && name[0] == '.'
}

// shouldHideFromListing is a no-op outside Windows.
func shouldHideFromListing(_, _ string) bool {
	return false
}
