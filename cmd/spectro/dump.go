package main

import (
	"bufio"
	"io"
	"strconv"
)

// writeSamples prints buf on one line as "[ a, b, ... ]".
func writeSamples(w io.Writer, buf []byte) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("[ ")
	for i, v := range buf {
		if i > 0 {
			bw.WriteString(", ")
		}
		bw.WriteString(strconv.Itoa(int(v)))
	}
	bw.WriteString(" ]\n")

	return bw.Flush()
}
