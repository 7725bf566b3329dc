// Package stacktrace trims raw goroutine stacks down to project frames.
package stacktrace

import "strings"

const marker = "/internal/"

// InternalPaths returns the "internal/<pkg>/<file>.go:<line>" locations found
// in a debug.Stack dump, in call order.
func InternalPaths(stack []byte) []string {
	var paths []string
	for line := range strings.Lines(string(stack)) {
		line = strings.TrimSpace(line)

		idx := strings.Index(line, ".go:")
		if idx == -1 || !strings.Contains(line, marker) {
			continue
		}

		loc := line
		if sp := strings.IndexByte(line[idx:], ' '); sp != -1 {
			loc = line[:idx+sp]
		}

		if at := strings.Index(loc, marker); at != -1 {
			paths = append(paths, loc[at+1:])
		}
	}
	return paths
}
