package openapi

import (
	"testing"

	"gopkg.in/yaml.v3"
)

type document struct {
	OpenAPI string                          `yaml:"openapi"`
	Info    struct{ Title, Version string } `yaml:"info"`
	Paths   map[string]map[string]yaml.Node `yaml:"paths"`
}

func TestDocumentDescribesRoutes(t *testing.T) {
	var doc document
	if err := yaml.Unmarshal(YAML, &doc); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.OpenAPI == "" || doc.Info.Title != "Pokemon API" {
		t.Fatalf("unexpected header: %+v", doc)
	}
	want := map[string][]string{
		"/api/general":      {"get"},
		"/api/pokemon/{id}": {"get", "post"},
		"/healthz":          {"get"},
	}
	for path, methods := range want {
		ops, ok := doc.Paths[path]
		if !ok {
			t.Fatalf("missing path %s", path)
		}
		for _, m := range methods {
			if _, ok := ops[m]; !ok {
				t.Fatalf("missing %s %s", m, path)
			}
		}
	}
}
