package ruleset

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path"
	"sort"

	"gopkg.in/yaml.v3"
)

// DefaultName is the rule set used when none is requested
const DefaultName = "business"

//go:embed configs/*.yaml
var configFS embed.FS

// builtinSources maps rule set names to their raw YAML. Sources are decoded
// on every Load so callers never share a RuleSet they did not construct.
var builtinSources = map[string][]byte{}

func init() {
	entries, err := configFS.ReadDir("configs")
	if err != nil {
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		data, err := configFS.ReadFile(path.Join("configs", entry.Name()))
		if err != nil {
			continue
		}

		var header struct {
			Name string `yaml:"name"`
		}
		if err := yaml.Unmarshal(data, &header); err != nil || header.Name == "" {
			continue
		}

		builtinSources[header.Name] = data
	}
}

// Load loads a builtin rule set by name
func Load(name string) (*RuleSet, error) {
	data, ok := builtinSources[name]
	if !ok {
		return nil, fmt.Errorf("unknown rule set: %s", name)
	}
	return Decode(data)
}

// Default returns the builtin business rule set. It panics if the embedded
// configuration is invalid, which can only happen at build time.
func Default() *RuleSet {
	rs, err := Load(DefaultName)
	if err != nil {
		panic(fmt.Sprintf("ruleset: builtin %s: %v", DefaultName, err))
	}
	return rs
}

// Available returns the names of all builtin rule sets
func Available() []string {
	names := make([]string, 0, len(builtinSources))
	for name := range builtinSources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadFromFile loads a rule set from a YAML file
func LoadFromFile(filename string) (*RuleSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule set: %w", err)
	}

	rs, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return rs, nil
}

// Decode parses and validates a YAML rule set. Unknown keys are rejected.
// The result is not compiled.
func Decode(data []byte) (*RuleSet, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var rs RuleSet
	if err := dec.Decode(&rs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rule set: %w", err)
	}

	if err := rs.Validate(); err != nil {
		return nil, err
	}

	return &rs, nil
}

// Marshal renders the rule set as YAML
func (rs *RuleSet) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(rs); err != nil {
		return nil, fmt.Errorf("failed to marshal rule set: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
