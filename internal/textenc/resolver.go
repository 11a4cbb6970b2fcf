package textenc

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
)

var (
	// ErrFileUnreadable means no candidate decoded the file and the raw
	// read failed too.
	ErrFileUnreadable = errors.New("file unreadable")
	// ErrEncodingUnresolved means no candidate could encode the text.
	ErrEncodingUnresolved = errors.New("no encoding can represent the text")
	// ErrWriteFailed means the encoded bytes could not be written.
	ErrWriteFailed = errors.New("write failed")
)

// Source tells where an encoding candidate came from.
type Source int

const (
	SourceExplicit Source = iota
	SourceKnown
	SourceUser
	SourceConfig
	SourcePlatform
	SourceBinary
)

func (s Source) String() string {
	switch s {
	case SourceExplicit:
		return "explicit"
	case SourceKnown:
		return "known"
	case SourceUser:
		return "user"
	case SourceConfig:
		return "config"
	case SourcePlatform:
		return "platform"
	case SourceBinary:
		return "binary"
	default:
		return fmt.Sprintf("Source(%d)", int(s))
	}
}

// Candidate is one encoding tried in the fallback chain.
type Candidate struct {
	Source Source
	Name   string
}

// Attempt records a candidate that failed and why.
type Attempt struct {
	Candidate
	Err error
}

// Policy is the encoding part of the user configuration.
type Policy struct {
	OpenAskUser  bool
	OpenEncoding string
	// SavesUseKnownEncoding: 0 never reuses the known encoding, 1 reuses it
	// when saving a file that already has a path, 2 reuses it always.
	SavesUseKnownEncoding int
	SavesAskUser          bool
	SavesEncoding         string
}

// Asker prompts the user for a string. ok is false when the prompt was
// dismissed.
type Asker interface {
	AskString(title, prompt, initial string) (answer string, ok bool)
}

// Document is what the save path needs to know about the open buffer.
type Document interface {
	Path() string
	KnownEncoding() string
}

// OpenResult is the outcome of ResolveForOpen. Encoding is empty when the
// file was loaded through the binary fallback.
type OpenResult struct {
	Text     string
	Encoding string
	Source   Source
	Attempts []Attempt
}

// SaveResult is the outcome of ResolveForSave.
type SaveResult struct {
	Data     []byte
	Encoding string
	Source   Source
	Attempts []Attempt
}

// Resolver runs the open and save fallback chains.
type Resolver struct {
	Policy Policy
	Asker  Asker
	// Title is shown as the prompt title.
	Title string

	PlatformDefault func() string
	ReadFile        func(name string) ([]byte, error)
	WriteFile       func(name string, data []byte, perm fs.FileMode) error
	Logger          *slog.Logger
}

// NewResolver returns a Resolver reading and writing the real filesystem.
func NewResolver(policy Policy, asker Asker, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolver{
		Policy:          policy,
		Asker:           asker,
		Title:           "textpad",
		PlatformDefault: PlatformDefault,
		ReadFile:        os.ReadFile,
		WriteFile:       os.WriteFile,
		Logger:          logger,
	}
}

func (r *Resolver) platformDefault() string {
	if r.PlatformDefault == nil {
		return PlatformDefault()
	}
	return r.PlatformDefault()
}

func (r *Resolver) ask(prompt, initial string) string {
	if r.Asker == nil {
		return ""
	}
	answer, ok := r.Asker.AskString(r.Title, prompt, initial)
	if !ok {
		return ""
	}
	return answer
}

// recoverable reports whether err only disqualifies the current candidate.
func recoverable(err error) bool {
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, ErrUnknownEncoding),
		errors.Is(err, ErrMalformed),
		errors.Is(err, ErrUnrepresentable):
		return true
	case errors.As(err, &pathErr),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission),
		errors.Is(err, io.ErrUnexpectedEOF):
		return true
	}
	return false
}

// ResolveForOpen reads path and decodes it with the first candidate that
// works: explicit, asked, configured, platform default, then raw bytes.
func (r *Resolver) ResolveForOpen(path, explicit string) (OpenResult, error) {
	var res OpenResult

	try := func(c Candidate) (bool, error) {
		data, err := r.ReadFile(path)
		if err == nil {
			var text string
			text, err = Decode(data, c.Name)
			if err == nil {
				res.Text, res.Encoding, res.Source = text, c.Name, c.Source
				r.Logger.Info("decoded file", "path", path, "encoding", c.Name, "source", c.Source)
				return true, nil
			}
		}
		if !recoverable(err) {
			return false, fmt.Errorf("open %s with %s: %w", path, c.Name, err)
		}
		r.Logger.Debug("encoding candidate failed", "path", path, "encoding", c.Name, "source", c.Source, "err", err)
		res.Attempts = append(res.Attempts, Attempt{Candidate: c, Err: err})
		return false, nil
	}

	if explicit != "" {
		if ok, err := try(Candidate{SourceExplicit, explicit}); ok || err != nil {
			return res, err
		}
	}
	if r.Policy.OpenAskUser {
		initial := r.Policy.OpenEncoding
		if initial == "" {
			initial = r.platformDefault()
		}
		if name := r.ask("Enter Unicode encoding for open", initial); name != "" {
			if ok, err := try(Candidate{SourceUser, name}); ok || err != nil {
				return res, err
			}
		}
	}
	if r.Policy.OpenEncoding != "" {
		if ok, err := try(Candidate{SourceConfig, r.Policy.OpenEncoding}); ok || err != nil {
			return res, err
		}
	}
	if ok, err := try(Candidate{SourcePlatform, r.platformDefault()}); ok || err != nil {
		return res, err
	}

	data, err := r.ReadFile(path)
	if err != nil {
		r.Logger.Warn("binary read failed", "path", path, "err", err)
		return res, fmt.Errorf("%w: %s: %v", ErrFileUnreadable, path, err)
	}
	res.Text = RawText(data)
	res.Encoding = ""
	res.Source = SourceBinary
	r.Logger.Info("loaded file as raw bytes", "path", path, "failed", len(res.Attempts))
	return res, nil
}

// ResolveForSave picks the encoding text will be written with: known,
// asked, configured, then platform default. Nothing is written.
func (r *Resolver) ResolveForSave(text string, doc Document) (SaveResult, error) {
	var res SaveResult

	try := func(c Candidate) bool {
		data, err := Encode(text, c.Name)
		if err != nil {
			r.Logger.Debug("encoding candidate failed", "encoding", c.Name, "source", c.Source, "err", err)
			res.Attempts = append(res.Attempts, Attempt{Candidate: c, Err: err})
			return false
		}
		res.Data, res.Encoding, res.Source = data, c.Name, c.Source
		return true
	}

	known := doc.KnownEncoding()
	level := r.Policy.SavesUseKnownEncoding
	existing := doc.Path() != ""
	if known != "" && ((existing && level >= 1) || level >= 2) {
		if try(Candidate{SourceKnown, known}) {
			return res, nil
		}
	}
	if r.Policy.SavesAskUser {
		initial := known
		if initial == "" {
			initial = r.Policy.SavesEncoding
		}
		if initial == "" {
			initial = r.platformDefault()
		}
		if name := r.ask("Enter Unicode encoding for save", initial); name != "" {
			if try(Candidate{SourceUser, name}) {
				return res, nil
			}
		}
	}
	if r.Policy.SavesEncoding != "" {
		if try(Candidate{SourceConfig, r.Policy.SavesEncoding}) {
			return res, nil
		}
	}
	if try(Candidate{SourcePlatform, r.platformDefault()}) {
		return res, nil
	}
	return res, fmt.Errorf("%w (%d candidates tried)", ErrEncodingUnresolved, len(res.Attempts))
}

// Save resolves an encoding for text and writes the whole file in one call.
// The file is not touched when no encoding fits.
func (r *Resolver) Save(path, text string, doc Document) (SaveResult, error) {
	res, err := r.ResolveForSave(text, doc)
	if err != nil {
		r.Logger.Warn("save aborted", "path", path, "err", err)
		return res, err
	}
	if err := r.WriteFile(path, res.Data, 0644); err != nil {
		r.Logger.Warn("write failed", "path", path, "err", err)
		return res, fmt.Errorf("%w: %s: %v", ErrWriteFailed, path, err)
	}
	r.Logger.Info("saved file", "path", path, "encoding", res.Encoding, "source", res.Source)
	return res, nil
}
