package container

import (
	"fmt"
	"path"
	"strings"

	"github.com/arloliu/matlib/errs"
	"github.com/arloliu/matlib/section"
)

// CleanPath normalizes a dataset path: a leading slash, no trailing slash,
// no empty or dot elements. The root path itself is not a dataset path.
func CleanPath(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", fmt.Errorf("%w: empty path", errs.ErrInvalidDatapath)
	}

	cleaned := path.Clean("/" + p)
	if cleaned == "/" || len(cleaned) > section.MaxPathLength {
		return "", fmt.Errorf("%w: %q", errs.ErrInvalidDatapath, p)
	}

	return cleaned, nil
}
