package main

import (
	"fmt"
	"strings"

	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

// changeSummary describes, line by line, how after differs from before.
// changeSummary описывает построчные отличия after от before.
func changeSummary(before, after string) string {
	if before == after {
		return "no changes"
	}
	d := dmp.New()
	a, b, lines := d.DiffLinesToChars(before, after)
	diffs := d.DiffCharsToLines(d.DiffMain(a, b, false), lines)

	added, removed := 0, 0
	for _, df := range diffs {
		switch df.Type {
		case dmp.DiffInsert:
			added += countLines(df.Text)
		case dmp.DiffDelete:
			removed += countLines(df.Text)
		}
	}
	return fmt.Sprintf("%d line%s added, %d removed", added, plural(added), removed)
}

func countLines(s string) int {
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
