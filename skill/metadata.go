package skill

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the metadata document every skill directory carries at its root.
	FileName = "SKILL.md"

	frontmatterDelimiter = "---"
)

// Metadata is the parsed frontmatter block of a SKILL.md file.
// Only name and description are required; other keys are kept as parsed.
type Metadata map[string]any

// Has reports whether key is present, regardless of its value.
func (m Metadata) Has(key string) bool {
	_, ok := m[key]
	return ok
}

// Get returns the raw value stored under key.
func (m Metadata) Get(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// Name returns the declared package name.
func (m Metadata) Name() string {
	return m.stringValue("name")
}

// Description returns the declared description.
func (m Metadata) Description() string {
	return m.stringValue("description")
}

func (m Metadata) stringValue(key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Skill is a source directory together with its parsed metadata.
type Skill struct {
	Dir      string
	Metadata Metadata
	Body     string
}

// Name returns the package name declared in the skill's metadata.
func (s *Skill) Name() string {
	return s.Metadata.Name()
}

// Load reads and validates SKILL.md from dir.
func Load(dir string) (*Skill, error) {
	path := filepath.Join(dir, FileName)
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(ErrSkillFileNotFound, "in %s", dir)
		}
		return nil, errors.Wrap(err, "failed to read skill file")
	}

	meta, body, err := ParseFrontmatter(string(content))
	if err != nil {
		return nil, err
	}
	return &Skill{Dir: dir, Metadata: meta, Body: body}, nil
}

// ParseFrontmatter extracts the metadata block from the content of a SKILL.md
// file and checks the required fields. The block is the text between the first
// and second occurrence of '---'; everything after it is returned as body.
func ParseFrontmatter(content string) (Metadata, string, error) {
	if !strings.HasPrefix(content, frontmatterDelimiter) {
		return nil, "", ErrMissingFrontmatter
	}

	parts := strings.SplitN(content, frontmatterDelimiter, 3)
	if len(parts) < 3 {
		return nil, "", ErrInvalidFrontmatter
	}

	meta, err := decodeBlock(parts[1])
	if err != nil {
		return nil, "", err
	}

	if len(meta) == 0 {
		return nil, "", ErrEmptyFrontmatter
	}

	for _, field := range []string{"name", "description"} {
		if !meta.Has(field) {
			return nil, "", errors.Wrapf(ErrMissingField, "%s", field)
		}
	}

	return meta, strings.TrimLeft(parts[2], "\r\n"), nil
}

// decodeBlock parses the frontmatter block into Metadata. Repeated keys keep
// the last value instead of failing the way a direct map decode would.
func decodeBlock(block string) (Metadata, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(block), &doc); err != nil {
		return nil, errors.Wrapf(ErrInvalidYAML, "%v", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.Tag == "!!null" {
		return nil, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.Wrapf(ErrInvalidYAML, "line %d: frontmatter is not a mapping", root.Line)
	}

	v, err := nodeValue(root)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidYAML, "%v", err)
	}
	return Metadata(v.(map[string]any)), nil
}

func nodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return nodeValue(n.Alias)
	case yaml.MappingNode:
		m := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := nodeValue(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m[n.Content[i].Value] = v
		}
		return m, nil
	case yaml.SequenceNode:
		list := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := nodeValue(c)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// Validate checks the skill in dir and prints one diagnostic line to w when
// it is invalid. It never stops the process; the caller decides what to do.
func Validate(w io.Writer, dir string) (Metadata, bool) {
	s, err := Load(dir)
	if err != nil {
		fmt.Fprintf(w, "❌ Error: %s\n", Diagnostic(err))
		return nil, false
	}
	return s.Metadata, true
}

// Diagnostic renders a validation error the way it is shown to users, with
// sentinel text first and detail after it.
func Diagnostic(err error) string {
	switch {
	case errors.Is(err, ErrMissingField):
		return fmt.Sprintf("Missing required field: %s", detail(err, ErrMissingField))
	case errors.Is(err, ErrInvalidYAML):
		return fmt.Sprintf("Invalid YAML in frontmatter: %s", detail(err, ErrInvalidYAML))
	case errors.Is(err, ErrSkillFileNotFound):
		return fmt.Sprintf("%s %s", ErrSkillFileNotFound, detail(err, ErrSkillFileNotFound))
	case errors.Is(err, ErrMissingFrontmatter),
		errors.Is(err, ErrInvalidFrontmatter),
		errors.Is(err, ErrEmptyFrontmatter):
		return capitalize(errors.Cause(err).Error())
	}
	return err.Error()
}

// detail strips the sentinel suffix added by errors.Wrapf from err's message.
func detail(err, sentinel error) string {
	return strings.TrimSuffix(err.Error(), ": "+sentinel.Error())
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
