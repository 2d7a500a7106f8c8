//go:build windows

package fs

import (
	"os"
	"syscall"
)

const (
	fileAttributeHidden       = 0x02
	fileAttributeSystem       = 0x04
	fileAttributeReparsePoint = 0x0400
)

// IsHidden honours the Windows hidden attribute and falls back to the dot-file
// convention when attributes cannot be read.
func IsHidden(fullPath string, name string) bool {
	attrs, err := fileAttributes(fullPath, name)
	if err != nil {
		return len(name) > 0 && name[0] == '.'
	}
	return attrs&fileAttributeHidden != 0
}

// shouldHideFromListing drops protected system junctions (e.g. "Application Data")
// that cannot be entered anyway.
func shouldHideFromListing(fullPath, name string) bool {
	attrs, err := fileAttributes(fullPath, name)
	if err != nil {
		return false
	}
	const protected = fileAttributeSystem | fileAttributeReparsePoint
	return attrs&protected == protected
}

func fileAttributes(fullPath, name string) (uint32, error) {
	target := fullPath
	if target == "" {
		target = name
	}
	if target == "" {
		return 0, os.ErrInvalid
	}
	ptr, err := syscall.UTF16PtrFromString(target)
	if err != nil {
		return 0, err
	}
	return syscall.GetFileAttributes(ptr)
}
