package compare

import (
	"fmt"
	"path/filepath"
	"strings"

	"tablediff/core/diff"
	"tablediff/core/storage"
)

// confineParams rewrites the local locations of p to absolute paths inside
// root and rejects any that escape it. Relative paths are taken from root.
// Storage locations pass through; with an empty root only they are allowed.
func confineParams(p diff.Params, root string) (diff.Params, error) {
	for _, loc := range []*string{&p.SourceA, &p.SourceB, &p.SingleSource, &p.ReportPath} {
		confined, err := confinePath(root, *loc)
		if err != nil {
			return p, err
		}
		*loc = confined
	}
	return p, nil
}

func confinePath(root, location string) (string, error) {
	if location == "" || storage.IsURI(location) {
		return location, nil
	}
	if root == "" {
		return "", &diff.ConfigurationError{Reason: fmt.Sprintf("local path %q is not allowed, use an %sbucket/key location", location, storage.Scheme)}
	}

	base, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve data directory: %w", err)
	}
	p := location
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	p = filepath.Clean(p)

	if !within(base, p) {
		return "", &diff.ConfigurationError{Reason: fmt.Sprintf("path %q is outside the data directory", location)}
	}
	// Symlinks inside the directory must not lead out of it.
	if resolved, err := filepath.EvalSymlinks(p); err == nil {
		realBase, err := filepath.EvalSymlinks(base)
		if err != nil || !within(realBase, resolved) {
			return "", &diff.ConfigurationError{Reason: fmt.Sprintf("path %q is outside the data directory", location)}
		}
	}
	return p, nil
}

func within(base, p string) bool {
	rel, err := filepath.Rel(base, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
