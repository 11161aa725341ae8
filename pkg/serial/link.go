// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package serial

import (
	"bufio"
	"context"
	"io"
	"strings"
)

func NewLink(r io.Reader, w io.Writer) *Link {
	return &Link{
		MaxLine:    DEFAULT_MAX_LINE,
		Terminator: DEFAULT_TERMINATOR,
		reader:     r,
		writer:     bufio.NewWriter(w),
	}
}

// Returns the next inbound line without its terminator. A line longer than
// MaxLine is consumed and reported as *LineTooLongError. A line that
// arrives after ctx is done is kept for the next call.
func (ln *Link) ReadLine(ctx context.Context) (string, error) {
	ln.once.Do(ln.start)

	select {
	case rx, ok := <-ln.lines:
		if !ok {
			return "", ln.err
		}

		return rx.line, rx.err

	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (ln *Link) WriteLine(line string) error {
	if _, err := ln.writer.WriteString(line + ln.Terminator); err != nil {
		return err
	}

	return ln.writer.Flush()
}

func (ln *Link) start() {
	ln.lines = make(chan received)

	maxline := ln.MaxLine
	if maxline <= 0 {
		maxline = DEFAULT_MAX_LINE
	}

	go ln.pump(bufio.NewReaderSize(ln.reader, maxline+2), maxline)
}

func (ln *Link) pump(reader *bufio.Reader, maxline int) {
	defer close(ln.lines)

	for {
		chunk, err := reader.ReadSlice('\n')
		size := len(chunk)
		overflow := false

		var prev byte

		for err == bufio.ErrBufferFull {
			overflow = true
			prev = chunk[len(chunk)-1]
			chunk, err = reader.ReadSlice('\n')
			size += len(chunk)
		}

		line := strings.TrimRight(string(chunk), "\r\n")
		length := len(line)

		if overflow {
			length = size

			if err == nil {
				before := prev
				if len(chunk) >= 2 {
					before = chunk[len(chunk)-2]
				}

				length--
				if before == '\r' {
					length--
				}
			}
		}

		if overflow || length > maxline {
			ln.lines <- received{err: &LineTooLongError{maxline, length}}
		} else if len(line) > 0 || err == nil {
			ln.lines <- received{line: line}
		}

		if err != nil {
			ln.err = err
			return
		}
	}
}
