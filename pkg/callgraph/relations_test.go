package callgraph

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/callgraph/pkg/errors"
)

func TestRelationsAdd(t *testing.T) {
	rel := NewRelations()
	rel.Add("b", "x")
	rel.Add("a")
	rel.Add("b", "y")

	if got := rel.Callers(); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("Callers() = %v, want [b a]", got)
	}
	if got := rel.Callees("b"); !slices.Equal(got, []string{"x", "y"}) {
		t.Errorf("Callees(b) = %v, want [x y]", got)
	}
	if got := rel.Callees("a"); got == nil || len(got) != 0 {
		t.Errorf("Callees(a) = %#v, want empty non-nil", got)
	}
	if rel.Len() != 2 || rel.Pairs() != 2 {
		t.Errorf("Len() = %d, Pairs() = %d; want 2, 2", rel.Len(), rel.Pairs())
	}
}

func TestRelationsZeroValue(t *testing.T) {
	var rel Relations
	rel.Add("a", "b")
	if rel.Len() != 1 {
		t.Errorf("Len() = %d, want 1", rel.Len())
	}
}

func TestRelationsAllStopsEarly(t *testing.T) {
	rel := relationsOf([]string{"a"}, []string{"b"}, []string{"c"})

	var seen []string
	for caller := range rel.All() {
		seen = append(seen, caller)
		if caller == "b" {
			break
		}
	}
	if !slices.Equal(seen, []string{"a", "b"}) {
		t.Errorf("iteration = %v, want [a b]", seen)
	}
}

func TestRelationsJSONKeepsOrder(t *testing.T) {
	doc := `{"zeta": ["b", "a"], "alpha": [], "mid": ["zeta"], "zeta": ["c"]}`

	var rel Relations
	if err := json.Unmarshal([]byte(doc), &rel); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got := rel.Callers(); !slices.Equal(got, []string{"zeta", "alpha", "mid"}) {
		t.Errorf("Callers() = %v", got)
	}
	if got := rel.Callees("zeta"); !slices.Equal(got, []string{"b", "a", "c"}) {
		t.Errorf("Callees(zeta) = %v", got)
	}

	out, err := json.Marshal(&rel)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"zeta":["b","a","c"],"alpha":[],"mid":["zeta"]}`
	if string(out) != want {
		t.Errorf("Marshal() = %s, want %s", out, want)
	}
}

func TestRelationsJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"array", `["a"]`},
		{"callee not array", `{"a": "b"}`},
		{"callee not string", `{"a": [1]}`},
		{"truncated", `{"a": ["b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rel Relations
			if err := json.Unmarshal([]byte(tt.doc), &rel); err == nil {
				t.Errorf("Unmarshal(%s) should fail", tt.doc)
			}
		})
	}
}

func TestReadTOMLKeepsOrder(t *testing.T) {
	doc := `
"com.example.App.main" = ["com.example.App.run", "com.example.Log.info"]
"com.example.App.run" = []
"com.example.Log.info" = ["com.example.Log.info"]
`
	rel, err := ReadTOML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadTOML: %v", err)
	}

	want := []string{"com.example.App.main", "com.example.App.run", "com.example.Log.info"}
	if got := rel.Callers(); !slices.Equal(got, want) {
		t.Errorf("Callers() = %v, want %v", got, want)
	}
	if got := rel.Callees("com.example.App.main"); len(got) != 2 {
		t.Errorf("Callees(main) = %v", got)
	}
}

func TestReadTOMLInvalid(t *testing.T) {
	_, err := ReadTOML(strings.NewReader(`a = "not a list"`))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ReadTOML() error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	jsonPath := write("rel.json", `{"A": ["B", "C"], "B": ["C"]}`)
	tomlPath := write("rel.toml", "A = [\"B\", \"C\"]\nB = [\"C\"]\n")
	yamlPath := write("rel.yaml", "A: [B]")

	for _, path := range []string{jsonPath, tomlPath} {
		rel, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s): %v", path, err)
		}
		if !slices.Equal(rel.Callers(), []string{"A", "B"}) || rel.Pairs() != 3 {
			t.Errorf("Load(%s) = %v callers, %d pairs", path, rel.Callers(), rel.Pairs())
		}
	}

	if _, err := Load(yamlPath); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Load(yaml) error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	if _, err := Load(filepath.Join(dir, "missing.json")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}
