package util

import (
	"errors"
	"path"
	"strings"
)

// ErrInvalidKey is returned for document keys that are empty or escape the store root.
var ErrInvalidKey = errors.New("invalid document key")

// CleanKey normalizes a slash-separated document key and rejects traversal.
func CleanKey(key string) (string, error) {
	s := strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	if s == "" || strings.Contains(s, "..") {
		return "", ErrInvalidKey
	}
	s = strings.TrimLeft(path.Clean("/"+s), "/")
	if s == "" || s == "." {
		return "", ErrInvalidKey
	}
	return s, nil
}
