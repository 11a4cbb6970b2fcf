package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type textBuffer struct{ text string }

func (b *textBuffer) Len() int            { return len(b.text) }
func (b *textBuffer) SetText(text string) { b.text = text }

func TestLifecycle(t *testing.T) {
	buf := &textBuffer{}
	s := New(buf)
	assert.Equal(t, Untitled, s.Title())
	assert.False(t, s.Dirty())
	assert.True(t, s.IsEmpty())

	s.Load("abc", "/tmp/a.txt", "utf-8")
	assert.Equal(t, "/tmp/a.txt", s.Path())
	assert.Equal(t, "utf-8", s.KnownEncoding())
	assert.False(t, s.Dirty())
	assert.Equal(t, "abc", buf.text)
	assert.False(t, s.IsEmpty())

	s.MarkDirty()
	assert.True(t, s.Dirty())

	err := s.Reset(false)
	require.ErrorIs(t, err, ErrUnconfirmed)
	assert.Equal(t, "/tmp/a.txt", s.Path())
	assert.Equal(t, "utf-8", s.KnownEncoding())
	assert.True(t, s.Dirty())
	assert.Equal(t, "abc", buf.text)

	require.NoError(t, s.Reset(true))
	assert.Empty(t, s.Path())
	assert.Empty(t, s.KnownEncoding())
	assert.False(t, s.Dirty())
	assert.True(t, s.IsEmpty())
}

func TestResetCleanNeedsNoConfirmation(t *testing.T) {
	s := New(&textBuffer{})
	s.Load("x", "/tmp/x", "latin-1")
	require.NoError(t, s.Reset(false))
	assert.Empty(t, s.Path())
}

func TestMarkSaved(t *testing.T) {
	s := New(&textBuffer{})
	s.MarkDirty()
	s.MarkSaved("/srv/notes.md", "cp1252")
	assert.False(t, s.Dirty())
	assert.Equal(t, "cp1252", s.KnownEncoding())
	assert.Equal(t, "notes", s.Title())

	s.MarkDirty()
	s.ClearDirty()
	assert.False(t, s.Dirty())
}

func TestTitle(t *testing.T) {
	for path, want := range map[string]string{
		"":                      Untitled,
		"/home/u/report.tar.gz": "report",
		"README":                "README",
		"/home/u/.profile":      Untitled,
	} {
		s := New(&textBuffer{})
		s.MarkSaved(path, "")
		assert.Equal(t, want, s.Title(), path)
	}
}
