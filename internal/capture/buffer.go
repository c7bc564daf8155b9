// pattern: Functional Core

package capture

import (
	"strings"
	"sync"
)

// DefaultBufferLines is the capacity of a log buffer unless configured
// otherwise.
const DefaultBufferLines = 500

// tabExpansion replaces horizontal tabs before storage so clipping math can
// treat every stored rune as one column.
const tabExpansion = "    "

// Buffer is a bounded ring of captured log lines. Appending past capacity
// evicts the oldest line. The channel reader goroutine is the single writer;
// the render path takes snapshots. Both sides go through the mutex, which is
// held only for the duration of the copy.
type Buffer struct {
	mu    sync.Mutex
	lines []string
	start int
	count int
}

func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultBufferLines
	}
	return &Buffer{lines: make([]string, capacity)}
}

// Append stores one line, expanding tabs and evicting the oldest line when
// the buffer is full.
func (b *Buffer) Append(line string) {
	line = strings.ReplaceAll(line, "\t", tabExpansion)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.count < len(b.lines) {
		b.lines[(b.start+b.count)%len(b.lines)] = line
		b.count++
		return
	}
	b.lines[b.start] = line
	b.start = (b.start + 1) % len(b.lines)
}

// Len reports the number of stored lines.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Snapshot copies out all stored lines, oldest first.
func (b *Buffer) Snapshot() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.copyTail(b.count)
}

// Tail copies out the most recent n lines, oldest first.
func (b *Buffer) Tail(n int) []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n > b.count {
		n = b.count
	}
	return b.copyTail(n)
}

func (b *Buffer) copyTail(n int) []string {
	out := make([]string, 0, n)
	for i := b.count - n; i < b.count; i++ {
		out = append(out, b.lines[(b.start+i)%len(b.lines)])
	}
	return out
}

// Clear drops all stored lines. Called on explicit reset and on a new
// subordinate launch.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.start, b.count = 0, 0
}
