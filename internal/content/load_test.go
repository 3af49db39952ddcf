package content

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestLoad_HappyPath(t *testing.T) {
	p := writeInput(t, `[{"id":"a","text":"hello","meta":{"z":1, "a":[true,null]}},{"id":"b","text":""}]`)

	items, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "a" || items[0].Text != "hello" {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	// key order kept, whitespace compacted
	if string(items[0].Meta) != `{"z":1,"a":[true,null]}` {
		t.Fatalf("unexpected meta: %s", items[0].Meta)
	}
	if items[1].Text != "" || string(items[1].Meta) != "{}" {
		t.Fatalf("unexpected second item: %+v", items[1])
	}
}

func TestLoad_EmptyMetaValues(t *testing.T) {
	for _, meta := range []string{`null`, `false`, `0`, `0.0`, `""`, `[]`, `{ }`} {
		items, err := Parse([]byte(`[{"id":"a","text":"b","meta":`+meta+`}]`), "x")
		if err != nil {
			t.Fatalf("meta %s: %v", meta, err)
		}
		if string(items[0].Meta) != "{}" {
			t.Errorf("meta %s: expected {}, got %s", meta, items[0].Meta)
		}
	}
}

func TestLoad_NonObjectMetaKept(t *testing.T) {
	for meta, want := range map[string]string{
		`["x", 1]`: `["x",1]`,
		`"lesson"`: `"lesson"`,
		`7`:        `7`,
		`true`:     `true`,
	} {
		items, err := Parse([]byte(`[{"id":"a","text":"b","meta":`+meta+`}]`), "x")
		if err != nil {
			t.Fatalf("meta %s: %v", meta, err)
		}
		if string(items[0].Meta) != want {
			t.Errorf("meta %s: expected %s, got %s", meta, want, items[0].Meta)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
}

func TestParse_FormatErrors(t *testing.T) {
	for name, body := range map[string]string{
		"object":  `{"id":"a","text":"b"}`,
		"string":  `"hello"`,
		"invalid": `[{"id":"a",`,
		"empty":   ``,
	} {
		if _, err := Parse([]byte(body), name); !errors.Is(err, ErrFormat) {
			t.Errorf("%s: expected ErrFormat, got %v", name, err)
		}
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	for name, body := range map[string]string{
		"missing id":      `[{"text":"b"}]`,
		"missing text":    `[{"id":"a"}]`,
		"empty id":        `[{"id":"","text":"b"}]`,
		"numeric id":      `[{"id":1,"text":"b"}]`,
		"null text":       `[{"id":"a","text":null}]`,
		"non-object item": `[["a","b"]]`,
	} {
		if _, err := Parse([]byte(body), name); !errors.Is(err, ErrValidation) {
			t.Errorf("%s: expected ErrValidation, got %v", name, err)
		}
	}
}

func TestDuplicateIDs(t *testing.T) {
	items := []ContentItem{{ID: "a"}, {ID: "b"}, {ID: "a"}, {ID: "a"}, {ID: "b"}, {ID: "c"}}
	dups := DuplicateIDs(items)
	if len(dups) != 2 || dups[0] != "a" || dups[1] != "b" {
		t.Fatalf("unexpected duplicates: %v", dups)
	}
}
