package parser

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// InputSource describes where a document comes from: an open reader, or
// a system identifier the parse session opens itself. Streams the
// session opens belong to the session until Cleanup or normal
// completion closes them.
type InputSource struct {
	// PublicID and SystemID identify the source for diagnostics; when
	// Reader is nil, SystemID is opened as a file.
	PublicID string
	SystemID string
	// Encoding is an optional character encoding label ("utf-8",
	// "windows-1252", ...). Empty means the configuration's default.
	Encoding string
	// Reader supplies the raw bytes when non-nil.
	Reader io.Reader
}

// NewInputSource creates an input source that reads the file named by
// systemID.
func NewInputSource(systemID string) *InputSource {
	return &InputSource{SystemID: systemID}
}

// NewReaderSource creates an input source around an open reader.
// systemID is used for diagnostics only.
func NewReaderSource(r io.Reader, systemID string) *InputSource {
	return &InputSource{SystemID: systemID, Reader: r}
}

// resolveEncoding maps a character encoding label to a decoder.
// Unknown labels are an error the caller reports before falling back to
// UTF-8.
func resolveEncoding(label string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding label %q", label)
	}
	return enc, nil
}

// open turns the source into a character reader plus whatever closers
// the session now owns. enc may be nil for plain UTF-8 input.
func (s *InputSource) open(enc encoding.Encoding) (io.Reader, []io.Closer, error) {
	var (
		r       = s.Reader
		closers []io.Closer
	)
	if r == nil {
		if s.SystemID == "" {
			return nil, nil, &ConfigError{Reason: "input source has neither a reader nor a system id"}
		}
		f, err := os.Open(s.SystemID)
		if err != nil {
			return nil, nil, errors.Wrap(err, "opening input source")
		}
		r = f
		closers = append(closers, f)
	} else if c, ok := r.(io.Closer); ok {
		closers = append(closers, c)
	}
	if enc != nil && enc != unicode.UTF8 {
		r = transform.NewReader(r, enc.NewDecoder())
	}
	return r, closers, nil
}
