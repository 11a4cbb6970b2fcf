// Package session tracks what an editor window knows about its document:
// the backing path, whether there are unsaved changes, and the encoding the
// file was last read or written with.
package session

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrUnconfirmed is returned by Reset when unsaved changes would be lost
// and the caller did not confirm.
var ErrUnconfirmed = errors.New("unsaved changes: reset not confirmed")

// Untitled is the title of a buffer with no backing file.
const Untitled = "Untitled"

// Buffer is the editable text the session is bound to.
type Buffer interface {
	Len() int
	SetText(text string)
}

// Session is the state of one open document.
type Session struct {
	buf           Buffer
	path          string
	dirty         bool
	knownEncoding string
}

// New returns an untitled, clean session bound to buf.
func New(buf Buffer) *Session {
	return &Session{buf: buf}
}

// Load replaces the buffer contents with text read from path.
// encoding is empty when the file was loaded as raw bytes.
func (s *Session) Load(text, path, encoding string) {
	s.buf.SetText(text)
	s.path = path
	s.knownEncoding = encoding
	s.dirty = false
}

// MarkSaved records a successful write of the buffer to path.
func (s *Session) MarkSaved(path, encoding string) {
	s.path = path
	s.knownEncoding = encoding
	s.dirty = false
}

func (s *Session) MarkDirty()  { s.dirty = true }
func (s *Session) ClearDirty() { s.dirty = false }

// Reset empties the buffer and forgets the file ("New"). A dirty session is
// only reset when the caller has confirmed discarding the changes.
func (s *Session) Reset(confirmed bool) error {
	if s.dirty && !confirmed {
		return ErrUnconfirmed
	}
	s.buf.SetText("")
	s.path = ""
	s.knownEncoding = ""
	s.dirty = false
	return nil
}

func (s *Session) Path() string          { return s.path }
func (s *Session) Dirty() bool           { return s.dirty }
func (s *Session) KnownEncoding() string { return s.knownEncoding }

// IsEmpty reports whether the buffer holds no text.
func (s *Session) IsEmpty() bool {
	return s.buf.Len() == 0
}

// Title is the file's base name up to the first dot, or Untitled.
func (s *Session) Title() string {
	if s.path == "" {
		return Untitled
	}
	name := filepath.Base(s.path)
	if i := strings.IndexByte(name, '.'); i != -1 {
		name = name[:i]
	}
	if name == "" {
		return Untitled
	}
	return name
}
