package main

import (
	"bufio"
	"io"
)

// Result is the minified form of one file.
type Result struct {
	Path     string
	Minified string
}

// writeResults prints one "<path> <minified>" line per result, in order.
func writeResults(w io.Writer, results []Result) error {
	bw := bufio.NewWriter(w)
	for _, r := range results {
		bw.WriteString(r.Path)
		bw.WriteByte(' ')
		bw.WriteString(r.Minified)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
