package openapi

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-openapi/spec"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

var wantEndpoints = []struct{ method, path, id string }{
	{"POST", "/api/server/exchange-call", "exchangeCall"},
	{"GET", "/api/server/get-call-list", "getCallList"},
	{"GET", "/api/server/get-call-obj", "getCallObject"},
	{"POST", "/api/server/post-call/{query}", "postCall"},
}

func checkEndpoints(t *testing.T, d *Described) {
	t.Helper()
	if len(d.Endpoints) != len(wantEndpoints) {
		t.Fatalf("got %d endpoints, want %d: %+v", len(d.Endpoints), len(wantEndpoints), d.Endpoints)
	}
	for i, want := range wantEndpoints {
		got := d.Endpoints[i]
		if got.Method != want.method || got.Path != want.path || got.OperationID != want.id {
			t.Errorf("endpoint %d = %s %s (%s), want %s %s (%s)",
				i, got.Method, got.Path, got.OperationID, want.method, want.path, want.id)
		}
	}
}

func TestParseBuiltInDocument(t *testing.T) {
	d, err := Parse(Document("/api/server"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.Title != Title || d.Version != Version {
		t.Errorf("info = %q %q", d.Title, d.Version)
	}
	checkEndpoints(t, d)
}

func TestExchangeCallDocumentsHeader(t *testing.T) {
	d, err := Parse(Document("/api/server"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for _, ep := range d.Endpoints {
		if ep.OperationID != "exchangeCall" {
			continue
		}
		found := false
		for _, p := range ep.Params {
			if p == "header:X-Authorization" {
				found = true
			}
		}
		if !found {
			t.Errorf("exchangeCall params = %v, want header:X-Authorization", ep.Params)
		}
		return
	}
	t.Fatal("exchangeCall endpoint not found")
}

func TestParametersRequired(t *testing.T) {
	raw, err := json.Marshal(Document("/api/server"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var sw spec.Swagger
	if err := json.Unmarshal(raw, &sw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	ops := map[string]*spec.Operation{
		"getCallObject": sw.Paths.Paths[PathGetCallObj].Get,
		"postCall":      sw.Paths.Paths[PathPostCall].Post,
		"exchangeCall":  sw.Paths.Paths[PathExchangeCall].Post,
	}
	for id, op := range ops {
		if op == nil {
			t.Errorf("%s: operation missing", id)
			continue
		}
		if len(op.Parameters) == 0 {
			t.Errorf("%s: no parameters", id)
		}
		for _, p := range op.Parameters {
			if !p.Required {
				t.Errorf("%s: %s:%s is not required", id, p.In, p.Name)
			}
		}
	}
}

func TestExportAndParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swagger.json")
	if err := Export(path, Document("/api/server")); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !ValidateOpenAPIFile(path) {
		t.Fatal("exported file does not validate")
	}
	d, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if d.Source != path {
		t.Errorf("Source = %q, want %q", d.Source, path)
	}
	checkEndpoints(t, d)
}

func TestValidateOpenAPIFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.json")
	if err := os.WriteFile(path, []byte("not json at all"), 0644); err != nil {
		t.Fatal(err)
	}
	if ValidateOpenAPIFile(path) {
		t.Error("garbage file validated as OpenAPI")
	}
}

func TestDocumentWithoutPrefix(t *testing.T) {
	d, err := Parse(Document(""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for _, ep := range d.Endpoints {
		if !strings.HasPrefix(ep.Path, "/") || strings.HasPrefix(ep.Path, "/api/server") {
			t.Errorf("unexpected path %q", ep.Path)
		}
	}
}
