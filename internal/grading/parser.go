package grading

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strings"

	"git.home.luguber.info/inful/gitgud/internal/foundation/errors"
	"git.home.luguber.info/inful/gitgud/internal/logfields"
)

const (
	// HeaderMarker starts a new student record.
	HeaderMarker = "### "
	// markdownMarker must appear somewhere in the document path.
	markdownMarker = ".md"
)

var (
	// ErrNotMarkdown signals a document path without the ".md" marker.
	ErrNotMarkdown = errors.GradingError("grading document is not a markdown file: the path must contain .md").Build()

	// ErrNoHeaders signals a document with no "### " record header.
	ErrNoHeaders = errors.GradingError("grading document has no student headers").Build()

	// ErrRecordNotFound signals a lookup of a student absent from the sheet.
	ErrRecordNotFound = errors.NewError(errors.CategoryNotFound, "no grading record for student").Build()
)

// ParseFile parses the grading document at path. The path is accepted when it
// contains ".md" anywhere, not only as a suffix.
func ParseFile(path string) (Sheet, error) {
	if !strings.Contains(path, markdownMarker) {
		return nil, ErrNotMarkdown.WithContext("path", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to open grading document").
			WithContext("path", path).Build()
	}
	defer func() { _ = f.Close() }()

	sheet, err := Parse(f)
	if err != nil {
		if c, ok := errors.AsClassified(err); ok {
			return nil, c.WithContext("path", path)
		}
		return nil, err
	}
	slog.Debug("Parsed grading document", logfields.Path(path), logfields.Count(len(sheet)))
	return sheet, nil
}

// Parse reads a grading document in a single line-oriented pass. Content is
// kept verbatim, line terminators included. A repeated header replaces the
// earlier record of the same name.
func Parse(r io.Reader) (Sheet, error) {
	sheet := make(Sheet)
	br := bufio.NewReader(r)

	var (
		open     bool
		name     string
		content  strings.Builder
		preamble int
	)
	commit := func() {
		switch {
		case !open:
		case name == "":
			slog.Warn("Ignored student header without a name", logfields.Count(strings.Count(content.String(), "\n")))
		default:
			sheet[name] = Record{StudentName: name, Content: content.String()}
		}
	}

	for {
		line, err := br.ReadString('\n')
		if line != "" {
			switch {
			case strings.HasPrefix(line, HeaderMarker):
				commit()
				open = true
				name = headerName(line)
				content.Reset()
				content.WriteString(line)
			case open:
				content.WriteString(line)
			default:
				preamble++
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read grading document").Build()
		}
	}

	if !open {
		return nil, ErrNoHeaders
	}
	commit()
	if len(sheet) == 0 {
		return nil, ErrNoHeaders
	}
	if preamble > 0 {
		slog.Debug("Ignored lines before the first student header", logfields.Count(preamble))
	}
	return sheet, nil
}

// headerName strips the marker and surrounding '#', space and line-break characters.
func headerName(line string) string {
	return strings.Trim(line, "# \r\n")
}
