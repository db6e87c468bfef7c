package openapi

import (
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-openapi/loads"
	"github.com/go-openapi/spec"
)

// Endpoint is one method/path pair described by a Swagger document.
type Endpoint struct {
	Method      string   `json:"method"`
	Path        string   `json:"path"` // basePath + route
	OperationID string   `json:"operationId,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Params      []string `json:"params,omitempty"` // "in:name" pairs
}

// Described holds the endpoints of a document together with its metadata.
type Described struct {
	Title     string     `json:"title,omitempty"`
	Version   string     `json:"version,omitempty"`
	BasePath  string     `json:"basePath,omitempty"`
	Endpoints []Endpoint `json:"endpoints"`
	Source    string     `json:"source"` // file path, or "built-in"
}

// ParseFile loads a Swagger 2.0 file from disk and lists its endpoints.
func ParseFile(specPath string) (*Described, error) {
	doc, err := loads.Spec(specPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI spec from %s: %w", specPath, err)
	}

	d := describe(doc.Spec(), specPath)
	log.Printf("[OPENAPI] Discovered %d endpoints from %s", len(d.Endpoints), filepath.Base(specPath))
	return d, nil
}

// Parse round-trips an in-memory document through the loader so that it is
// read exactly as a client would read the served JSON.
func Parse(sw *spec.Swagger) (*Described, error) {
	raw, err := json.Marshal(sw)
	if err != nil {
		return nil, fmt.Errorf("marshal swagger document: %w", err)
	}
	doc, err := loads.Analyzed(raw, "")
	if err != nil {
		return nil, fmt.Errorf("analyze swagger document: %w", err)
	}
	return describe(doc.Spec(), "built-in"), nil
}

// ValidateOpenAPIFile checks if a file appears to be an OpenAPI specification
func ValidateOpenAPIFile(filePath string) bool {
	doc, err := loads.Spec(filePath)
	if err != nil {
		return false
	}

	sw := doc.Spec()
	if sw == nil {
		return false
	}
	return sw.Swagger != "" || (sw.Info != nil && sw.Info.Title != "")
}

func describe(sw *spec.Swagger, source string) *Described {
	d := &Described{
		BasePath:  sw.BasePath,
		Endpoints: []Endpoint{},
		Source:    source,
	}
	if sw.Info != nil {
		d.Title = sw.Info.Title
		d.Version = sw.Info.Version
	}

	if sw.Paths != nil {
		for path, item := range sw.Paths.Paths {
			d.Endpoints = append(d.Endpoints, endpointsFromPath(sw.BasePath, path, item)...)
		}
	}

	// Sort endpoints by path and method for consistent output
	sort.Slice(d.Endpoints, func(i, j int) bool {
		if d.Endpoints[i].Path == d.Endpoints[j].Path {
			return d.Endpoints[i].Method < d.Endpoints[j].Method
		}
		return d.Endpoints[i].Path < d.Endpoints[j].Path
	})
	return d
}

// endpointsFromPath extracts all HTTP methods for a given path
func endpointsFromPath(basePath, path string, item spec.PathItem) []Endpoint {
	var endpoints []Endpoint

	operations := map[string]*spec.Operation{
		"GET":     item.Get,
		"POST":    item.Post,
		"PUT":     item.Put,
		"DELETE":  item.Delete,
		"PATCH":   item.Patch,
		"HEAD":    item.Head,
		"OPTIONS": item.Options,
	}

	for method, op := range operations {
		if op == nil {
			continue
		}

		ep := Endpoint{
			Method:      method,
			Path:        strings.TrimRight(basePath, "/") + path,
			OperationID: op.ID,
			Summary:     op.Summary,
		}
		for _, p := range op.Parameters {
			ep.Params = append(ep.Params, p.In+":"+p.Name)
		}
		endpoints = append(endpoints, ep)
	}

	return endpoints
}
