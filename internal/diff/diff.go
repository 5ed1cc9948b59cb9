// Package diff computes line diffs between expected and actual program
// output using the sergi/go-diff library, and renders them as unified diff
// text for verification reports.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineType represents the type of diff line
type LineType int

const (
	LineContext LineType = iota // Unchanged context line
	LineAdded                   // Present only in actual output
	LineRemoved                 // Present only in expected output
)

// Line is a single line in a hunk.
type Line struct {
	Content string
	Type    LineType
}

// Hunk is a run of changes with surrounding context.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// Result is the diff between an expected and an actual output.
type Result struct {
	OldName string
	NewName string
	Hunks   []Hunk
}

// Empty reports whether the two inputs were line-identical.
func (r *Result) Empty() bool {
	return len(r.Hunks) == 0
}

// Engine computes diffs.
type Engine struct {
	dmp     *diffmatchpatch.DiffMatchPatch
	context int
}

// NewEngine creates an engine that keeps contextLines of unchanged lines
// around every change.
func NewEngine(contextLines int) *Engine {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0 // Disable timeout for accuracy
	if contextLines < 0 {
		contextLines = 0
	}
	return &Engine{dmp: dmp, context: contextLines}
}

// DefaultEngine keeps three lines of context.
var DefaultEngine = NewEngine(3)

// Lines diffs expected against actual, line by line.
func (e *Engine) Lines(oldName, newName, expected, actual string) *Result {
	res := &Result{OldName: oldName, NewName: newName}
	if expected == actual {
		return res
	}

	// Line-level reduction avoids newline boundary artifacts.
	a, b, lineArray := e.dmp.DiffLinesToChars(expected, actual)
	diffs := e.dmp.DiffMain(a, b, false)
	diffs = e.dmp.DiffCharsToLines(diffs, lineArray)

	res.Hunks = e.group(toOps(diffs))
	return res
}

// Lines diffs with DefaultEngine.
func Lines(oldName, newName, expected, actual string) *Result {
	return DefaultEngine.Lines(oldName, newName, expected, actual)
}

type op struct {
	typ     LineType
	content string
}

func toOps(diffs []diffmatchpatch.Diff) []op {
	var ops []op
	for _, d := range diffs {
		lines := strings.SplitAfter(d.Text, "\n")
		if n := len(lines); n > 0 && lines[n-1] == "" {
			lines = lines[:n-1]
		}
		for _, l := range lines {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				ops = append(ops, op{LineContext, l})
			case diffmatchpatch.DiffDelete:
				ops = append(ops, op{LineRemoved, l})
			case diffmatchpatch.DiffInsert:
				ops = append(ops, op{LineAdded, l})
			}
		}
	}
	return ops
}

// group splits ops into hunks, merging changes separated by no more than
// twice the context width of unchanged lines.
func (e *Engine) group(ops []op) []Hunk {
	var changes []int
	for i, o := range ops {
		if o.typ != LineContext {
			changes = append(changes, i)
		}
	}
	if len(changes) == 0 {
		return nil
	}

	var hunks []Hunk
	from := max(changes[0]-e.context, 0)
	to := changes[0]
	for _, c := range changes[1:] {
		if c-to-1 > 2*e.context {
			hunks = append(hunks, e.hunk(ops, from, min(to+e.context, len(ops)-1)))
			from = c - e.context
		}
		to = c
	}
	hunks = append(hunks, e.hunk(ops, from, min(to+e.context, len(ops)-1)))
	return hunks
}

// hunk builds the hunk covering ops[from:to+1]. A side with no lines
// reports the line before the hunk as its start, as unified diff does.
func (e *Engine) hunk(ops []op, from, to int) Hunk {
	var h Hunk
	for _, o := range ops[:from] {
		if o.typ != LineAdded {
			h.OldStart++
		}
		if o.typ != LineRemoved {
			h.NewStart++
		}
	}
	for _, o := range ops[from : to+1] {
		h.Lines = append(h.Lines, Line{Content: o.content, Type: o.typ})
		if o.typ != LineAdded {
			h.OldCount++
		}
		if o.typ != LineRemoved {
			h.NewCount++
		}
	}
	if h.OldCount > 0 {
		h.OldStart++
	}
	if h.NewCount > 0 {
		h.NewStart++
	}
	return h
}

// Unified renders r in unified diff format. Lines missing a trailing
// newline get the conventional marker.
func (r *Result) Unified() string {
	if r.Empty() {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", r.OldName, r.NewName)
	for _, h := range r.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		for _, l := range h.Lines {
			prefix := " "
			switch l.Type {
			case LineAdded:
				prefix = "+"
			case LineRemoved:
				prefix = "-"
			}
			sb.WriteString(prefix)
			sb.WriteString(l.Content)
			if !strings.HasSuffix(l.Content, "\n") {
				sb.WriteString("\n\\ No newline at end of file\n")
			}
		}
	}
	return sb.String()
}
