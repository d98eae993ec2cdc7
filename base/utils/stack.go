package utils

import (
	"bytes"
	"runtime"
)

// Stack returns a formatted stack trace of the calling goroutine, dropping
// the given number of leading frames.
func Stack(skip int) []byte {
	buf := make([]byte, 4096)
	for {
		n := runtime.Stack(buf, false)
		if n < len(buf) {
			buf = buf[:n]
			break
		}
		buf = make([]byte, 2*len(buf))
	}
	// first line is the goroutine header, each frame takes two lines
	lines := bytes.SplitAfterN(buf, []byte("\n"), 1+2*skip+1)
	if len(lines) < 1+2*skip+1 {
		return buf
	}
	out := lines[0]
	return append(out, lines[len(lines)-1]...)
}
