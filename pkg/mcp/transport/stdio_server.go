// Copyright 2026 Teradata
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package transport

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// maxLineSize bounds a single newline-delimited JSON-RPC message.
// Tool results carrying search or listing payloads can run large.
const maxLineSize = 1024 * 1024

// inboundLine is one line delivered by the reader goroutine.
type inboundLine struct {
	data []byte
	err  error
}

// StdioServerTransport speaks newline-delimited JSON-RPC over a
// reader/writer pair, normally os.Stdin and os.Stdout. Reading happens
// on a single goroutine started lazily on the first Receive and kept
// for the transport's lifetime, so a Receive cancelled mid-read does
// not leak a goroutine or drop the line it was waiting on.
type StdioServerTransport struct {
	reader *bufio.Reader
	writer io.Writer
	mu     sync.Mutex // guards writer and closed
	closed bool

	lines     chan inboundLine
	startOnce sync.Once
}

// NewStdioServerTransport wraps r and w as a stdio transport.
func NewStdioServerTransport(r io.Reader, w io.Writer) *StdioServerTransport {
	return &StdioServerTransport{
		reader: bufio.NewReaderSize(r, maxLineSize),
		writer: w,
		lines:  make(chan inboundLine, 1),
	}
}

func (t *StdioServerTransport) startReader() {
	t.startOnce.Do(func() {
		go func() {
			defer close(t.lines)
			for {
				line, err := t.reader.ReadBytes('\n')
				t.lines <- inboundLine{data: line, err: err}
				if err != nil {
					return
				}
			}
		}()
	})
}

// Send writes one message followed by a newline.
func (t *StdioServerTransport) Send(_ context.Context, message []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return fmt.Errorf("transport closed")
	}

	if _, err := t.writer.Write(message); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if _, err := t.writer.Write([]byte("\n")); err != nil {
		return fmt.Errorf("write newline: %w", err)
	}

	return nil
}

// Receive blocks until the next non-empty line arrives, the context is
// cancelled, or the reader is exhausted. Trailing CR/LF is stripped so
// clients that frame with \r\n behave the same as \n.
func (t *StdioServerTransport) Receive(ctx context.Context) ([]byte, error) {
	t.startReader()

	for {
		t.mu.Lock()
		closed := t.closed
		t.mu.Unlock()
		if closed {
			return nil, fmt.Errorf("transport closed")
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case in, ok := <-t.lines:
			if !ok {
				// Reader goroutine exited; the error that stopped it
				// was already delivered on an earlier Receive.
				return nil, io.EOF
			}
			if in.err != nil {
				if in.err == io.EOF {
					return nil, io.EOF
				}
				return nil, fmt.Errorf("read message: %w", in.err)
			}
			line := bytes.TrimRight(in.data, "\r\n")
			if len(line) == 0 {
				continue
			}
			return line, nil
		}
	}
}

// Close marks the transport closed. The underlying reader and writer
// are left open; they are usually the process's stdin and stdout.
func (t *StdioServerTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}
