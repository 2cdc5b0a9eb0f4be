package document

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// ParseFrontmatter extracts YAML frontmatter between --- delimiters at the
// top of content. It returns the metadata, the remaining body and how many
// lines were consumed. Content without valid frontmatter is returned whole.
func ParseFrontmatter(content []byte) (map[string]any, []byte, int) {
	// Opening delimiter must be a line of its own
	if !bytes.HasPrefix(content, []byte("---\n")) && !bytes.HasPrefix(content, []byte("---\r\n")) {
		return nil, content, 0
	}

	rest := content[3:]
	endIdx := bytes.Index(rest, []byte("\n---"))
	if endIdx == -1 {
		return nil, content, 0
	}

	var frontmatter map[string]any
	if err := yaml.Unmarshal(bytes.TrimSpace(rest[:endIdx]), &frontmatter); err != nil {
		return nil, content, 0
	}

	remaining := rest[endIdx+4:] // +4 for "\n---"
	remaining = bytes.TrimPrefix(remaining, []byte("\r"))
	remaining = bytes.TrimPrefix(remaining, []byte("\n"))

	consumed := content[:len(content)-len(remaining)]
	offset := bytes.Count(consumed, []byte("\n"))

	if frontmatter == nil {
		frontmatter = map[string]any{}
	}
	return frontmatter, remaining, offset
}
