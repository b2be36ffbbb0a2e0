// Package resolver computes the initial location offered by a chooser.
package resolver

import (
	"strings"

	"filebrowser/internal/constants"
	"filebrowser/internal/fileinfo"
)

// ExpandFunc expands macros in a stored path; ok=false means the path cannot
// be expanded in the current scope.
type ExpandFunc func(p string) (expanded string, ok bool)

// LookupFunc finds an existing node; (nil, nil) is a miss.
type LookupFunc func(p string) (fileinfo.Entry, error)

// ResolveInitialSuggestion picks the entry a chooser should open at.
//
// A non-nil hint wins outright. Otherwise the remembered path is expanded and
// walked upward one segment at a time until an ancestor exists. Nothing found
// is a nil entry, not an error; only lookup errors are returned.
func ResolveInitialSuggestion(hint fileinfo.Entry, remembered string, expand ExpandFunc, lookup LookupFunc) (fileinfo.Entry, error) {
	if hint != nil {
		return hint, nil
	}
	if remembered == "" {
		return nil, nil
	}
	expanded, ok := expand(remembered)
	if !ok {
		return nil, nil
	}
	for _, candidate := range Ancestors(expanded) {
		e, err := lookup(candidate)
		if err != nil {
			return nil, err
		}
		if e != nil {
			return e, nil
		}
	}
	return nil, nil
}

// Ancestors lists p followed by each prefix obtained by cutting at the last
// delimiter, stopping once the last delimiter sits at index 0 or is absent.
// "/a/b/c" yields "/a/b/c", "/a/b", "/a"; a root path like "/x" yields only
// itself, so the root is never looked up.
func Ancestors(p string) []string {
	if p == "" {
		return nil
	}
	out := []string{p}
	for {
		pos := strings.LastIndexByte(p, constants.PathDelimiter)
		if pos <= 0 {
			return out
		}
		p = p[:pos]
		out = append(out, p)
	}
}
