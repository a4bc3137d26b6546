package mi

import "strings"

// rewriteBugWorkarounds applies the two textual pre-rewrites tied to GDB bug
// #14733, before the record parser sees the line. Both rewrites are
// line-local, terminator-preserving, and idempotent: once applied, the
// marker they look for no longer matches, so a second pass is a no-op.
func rewriteBugWorkarounds(line, terminator string) string {
	if strings.Contains(line, "BreakpointTable={") {
		line = strings.ReplaceAll(line, "bkpt=", "")
	}

	switch {
	case strings.Contains(line, "^done,bkpt={"):
		line = strings.Replace(line, "^done,bkpt={", "^done,bkpts=[{", 1)
		line = strings.TrimSuffix(line, terminator) + "]" + terminator
	case strings.Contains(line, "=breakpoint-modified,bkpt={"):
		line = strings.Replace(line, "=breakpoint-modified,bkpt={", "=breakpoints-modified,bkpts=[{", 1)
		line = strings.TrimSuffix(line, terminator) + "]" + terminator
	}

	return line
}
