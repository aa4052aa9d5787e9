package persona

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// MaxListText bounds a list supplied as a single delimited string.
const MaxListText = 1000

var listSeparator = regexp.MustCompile(`[,;\n]+`)

// List is a string list that also accepts a single delimited string
// (comma, semicolon or newline) on input.
type List []string

// SplitList splits text on list delimiters, trims items and drops empties.
func SplitList(text string) List {
	parts := listSeparator.Split(text, -1)
	ret := make(List, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			ret = append(ret, part)
		}
	}
	return ret
}

// Strings returns a trimmed copy without empty items.
func (l *List) Strings() []string {
	if l == nil {
		return []string{}
	}
	ret := make([]string, 0, len(*l))
	for _, item := range *l {
		if item = strings.TrimSpace(item); item != "" {
			ret = append(ret, item)
		}
	}
	return ret
}

func (l *List) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		return l.fromText(text)
	}
	var items []string
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("expected a string or an array of strings: %w", err)
	}
	*l = items
	return nil
}

func (l *List) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return l.fromText(node.Value)
	}
	var items []string
	if err := node.Decode(&items); err != nil {
		return err
	}
	*l = items
	return nil
}

func (l *List) fromText(text string) error {
	if utf8.RuneCountInString(text) > MaxListText {
		return fmt.Errorf("list text must be at most %d characters", MaxListText)
	}
	*l = SplitList(text)
	return nil
}
