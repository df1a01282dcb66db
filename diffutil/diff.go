// Package diffutil renders colored line diffs between two versions of a
// text document.
package diffutil

import (
	"fmt"
	"math"
	"strings"

	"github.com/aryann/difflib"
	"github.com/mgutz/ansi"
)

// Text diffs current against desired. A non-negative context elides common
// lines further than that many lines from a change.
func Text(current, desired string, context int) string {
	records := difflib.Diff(strings.Split(current, "\n"), strings.Split(desired, "\n"))

	var out []string
	if context >= 0 {
		distances := changeDistances(records)
		omitting := false
		for i, r := range records {
			if distances[i] > context {
				if !omitting {
					out = append(out, "...")
					omitting = true
				}
			} else {
				omitting = false
				out = append(out, sprintRecord(r))
			}
		}
	} else {
		for _, r := range records {
			out = append(out, sprintRecord(r))
		}
	}
	return strings.Join(out, "")
}

// HasChanges reports whether the two documents differ at all.
func HasChanges(current, desired string) bool {
	for _, r := range difflib.Diff(strings.Split(current, "\n"), strings.Split(desired, "\n")) {
		if r.Delta != difflib.Common {
			return true
		}
	}
	return false
}

// changeDistances maps each diff line to its distance from the closest change.
func changeDistances(records []difflib.DiffRecord) map[int]int {
	distances := map[int]int{}

	change := -1
	for i, r := range records {
		if r.Delta != difflib.Common {
			change = i
		}
		distance := math.MaxInt32
		if change != -1 {
			distance = i - change
		}
		distances[i] = distance
	}

	change = -1
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].Delta != difflib.Common {
			change = i
		}
		if change != -1 {
			if d := change - i; d < distances[i] {
				distances[i] = d
			}
		}
	}

	return distances
}

func sprintRecord(r difflib.DiffRecord) string {
	switch r.Delta {
	case difflib.RightOnly:
		return fmt.Sprintf("%s\n", ansi.Color("+ "+r.Payload, "green"))
	case difflib.LeftOnly:
		return fmt.Sprintf("%s\n", ansi.Color("- "+r.Payload, "red"))
	default:
		return fmt.Sprintf("  %s\n", r.Payload)
	}
}
