// Package stream filters newline-delimited candidates through a matcher
// without loading the whole input.
package stream

import (
	"bytes"
	"io"

	"github.com/KromDaniel/rulematch/internal/compiler"
)

const chunkSize = 4096

// Filter returns an io.Reader that outputs only the lines of r that m.Match
// accepts, or only the rejected ones when invert is set. Lines keep their
// original terminator; a trailing "\r" is not part of the matched text.
//
// Example - print the messages accepted by rule 0:
//
//	m, _ := compiler.ParseEngine(nfa, "thompson")
//	io.Copy(os.Stdout, stream.Filter(os.Stdin, m, false))
func Filter(r io.Reader, m compiler.Matcher, invert bool) io.Reader {
	return Lines(r, func(line []byte) []byte {
		if m.Match(string(trimEOL(line))) != invert {
			return line
		}
		return nil
	})
}

// Lines returns an io.Reader that replaces each line of r with fn(line).
// The line passed to fn includes its '\n' if it had one; returning nil drops it.
func Lines(r io.Reader, fn func(line []byte) []byte) io.Reader {
	return &lineReader{
		source: r,
		fn:     fn,
		buf:    make([]byte, 0, chunkSize),
	}
}

func trimEOL(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r"))
}

type lineReader struct {
	source io.Reader
	fn     func(line []byte) []byte

	// Pending input; buf[start:] has not been split into lines yet
	buf       []byte
	start     int
	sourceEOF bool

	// Output produced by fn and not yet returned
	output []byte
	outPos int

	err error
}

func (r *lineReader) Read(p []byte) (int, error) {
	for r.outPos == len(r.output) {
		r.output = r.output[:0]
		r.outPos = 0
		if r.err != nil {
			return 0, r.err
		}
		r.err = r.fill()
	}

	n := copy(p, r.output[r.outPos:])
	r.outPos += n
	return n, nil
}

// fill reads one chunk and runs fn over every complete line in it. It
// returns io.EOF once the source is drained and the last line handled.
// A read error is returned after the complete lines read with it.
func (r *lineReader) fill() error {
	if r.start > 0 {
		r.buf = r.buf[:copy(r.buf, r.buf[r.start:])]
		r.start = 0
	}

	var readErr error
	if !r.sourceEOF {
		if cap(r.buf)-len(r.buf) < chunkSize {
			grown := make([]byte, len(r.buf), len(r.buf)+chunkSize)
			copy(grown, r.buf)
			r.buf = grown
		}
		n, err := r.source.Read(r.buf[len(r.buf):cap(r.buf)])
		r.buf = r.buf[:len(r.buf)+n]
		if err == io.EOF {
			r.sourceEOF = true
		} else if err != nil {
			readErr = err
		}
	}

	for {
		data := r.buf[r.start:]
		idx := bytes.IndexByte(data, '\n')
		if idx < 0 {
			if readErr != nil {
				return readErr
			}
			if !r.sourceEOF {
				return nil
			}
			if len(data) > 0 {
				r.output = append(r.output, r.fn(data)...)
				r.start = len(r.buf)
			}
			return io.EOF
		}
		r.output = append(r.output, r.fn(data[:idx+1])...)
		r.start += idx + 1
	}
}
