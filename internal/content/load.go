package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

var emptyMeta = json.RawMessage(`{}`)

// Load reads path and returns its content items in file order.
//
// The top-level value must be a JSON array (ErrFormat). Every element must be an
// object with a non-empty string "id" and a string "text" (ErrValidation).
// A missing or empty "meta" (null, false, 0, "", [], {}) becomes {}; any other
// value is kept as given.
// Unknown fields are dropped.
func Load(path string) ([]ContentItem, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read input %s: %v", ErrIO, path, err)
	}
	return Parse(b, path)
}

// Parse is Load without the file read; name is used in error messages.
func Parse(data []byte, name string) ([]ContentItem, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: %s is not valid JSON", ErrFormat, name)
	}
	if first := firstByte(data); first != '[' {
		return nil, fmt.Errorf("%w: %s must contain a JSON array", ErrFormat, name)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormat, name, err)
	}

	items := make([]ContentItem, 0, len(raw))
	for i, r := range raw {
		item, err := parseItem(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %s item %d: %v", ErrValidation, name, i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func parseItem(r json.RawMessage) (ContentItem, error) {
	if firstByte(r) != '{' {
		return ContentItem{}, fmt.Errorf("each item must be an object")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(r, &fields); err != nil {
		return ContentItem{}, err
	}

	var item ContentItem
	idRaw, okID := fields["id"]
	textRaw, okText := fields["text"]
	if !okID || !okText {
		return ContentItem{}, fmt.Errorf("each item must include 'id' and 'text'")
	}
	if err := json.Unmarshal(idRaw, &item.ID); err != nil || firstByte(idRaw) != '"' {
		return ContentItem{}, fmt.Errorf("'id' must be a string")
	}
	if item.ID == "" {
		return ContentItem{}, fmt.Errorf("'id' must not be empty")
	}
	if err := json.Unmarshal(textRaw, &item.Text); err != nil || firstByte(textRaw) != '"' {
		return ContentItem{}, fmt.Errorf("item %q: 'text' must be a string", item.ID)
	}

	item.Meta = emptyMeta
	if metaRaw, ok := fields["meta"]; ok && !isEmptyJSON(metaRaw) {
		var buf bytes.Buffer
		if err := json.Compact(&buf, metaRaw); err != nil {
			return ContentItem{}, err
		}
		item.Meta = json.RawMessage(buf.Bytes())
	}
	return item, nil
}

// isEmptyJSON reports whether v is null, false, zero, "", [] or {}.
// Such a meta is written as {}; any other value is kept as given.
func isEmptyJSON(v json.RawMessage) bool {
	var x any
	if err := json.Unmarshal(v, &x); err != nil {
		return false
	}
	switch x := x.(type) {
	case nil:
		return true
	case bool:
		return !x
	case float64:
		return x == 0
	case string:
		return x == ""
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	}
	return false
}

// firstByte returns the first non-whitespace byte of b, or 0.
func firstByte(b []byte) byte {
	t := bytes.TrimLeft(b, " \t\r\n")
	if len(t) == 0 {
		return 0
	}
	return t[0]
}

// DuplicateIDs returns ids that occur more than once, in first-seen order.
func DuplicateIDs(items []ContentItem) []string {
	seen := make(map[string]int, len(items))
	var dups []string
	for _, it := range items {
		seen[it.ID]++
		if seen[it.ID] == 2 {
			dups = append(dups, it.ID)
		}
	}
	return dups
}
