// Package document loads business documents for analysis.
package document

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// StdinPath is the path that selects standard input
const StdinPath = "-"

// Format is the detected document format
type Format int

const (
	FormatPlain Format = iota
	FormatMarkdown
)

func (f Format) String() string {
	switch f {
	case FormatMarkdown:
		return "markdown"
	default:
		return "plain"
	}
}

// Document is a loaded document ready for analysis
type Document struct {
	Path   string
	Format Format

	// Raw is the file content after NFC normalisation, frontmatter included
	Raw []byte

	// Body is the text that gets analysed, with any frontmatter removed
	Body string

	// Frontmatter holds YAML metadata from the top of the file, if any
	Frontmatter map[string]any

	// LineOffset is the number of Raw lines that precede Body
	LineOffset int

	Outline []Section
	Stats   Stats
}

// Section is a heading in a markdown document
type Section struct {
	Title       string
	Level       int
	Line        int
	Subsections []Section
}

// Load reads and parses the document at path. StdinPath reads standard input.
func Load(path string) (*Document, error) {
	if path == StdinPath {
		return Read(path, os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(path, f)
}

// Read parses a document from r, using path for format detection
func Read(path string, r io.Reader) (*Document, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(path, content), nil
}

// Parse builds a document from content
func Parse(path string, content []byte) *Document {
	content = norm.NFC.Bytes(content)

	doc := &Document{
		Path:   path,
		Format: DetectFormat(path),
		Raw:    content,
	}

	frontmatter, body, offset := ParseFrontmatter(content)
	doc.Frontmatter = frontmatter
	doc.Body = string(body)
	doc.LineOffset = offset

	if doc.Format == FormatMarkdown {
		doc.Outline = extractOutline(body)
	}
	doc.Stats = ComputeStats(doc.Body)

	return doc
}

// DetectFormat returns the format for a path by extension. Standard input is
// treated as markdown since that is a superset of plain text.
func DetectFormat(path string) Format {
	if path == StdinPath {
		return FormatMarkdown
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatPlain
	}
}

// Context returns the frontmatter as analysis context, never nil
func (d *Document) Context() map[string]any {
	if d.Frontmatter == nil {
		return map[string]any{}
	}
	return d.Frontmatter
}

// Name returns a display name for the document
func (d *Document) Name() string {
	if d.Path == StdinPath {
		return "<stdin>"
	}
	return d.Path
}
