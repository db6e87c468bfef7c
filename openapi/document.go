package openapi

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-openapi/spec"
)

// Route paths relative to the configured prefix.
const (
	PathGetCallObj   = "/get-call-obj"
	PathGetCallList  = "/get-call-list"
	PathPostCall     = "/post-call/{query}"
	PathExchangeCall = "/exchange-call"
	PathSwagger      = "/swagger.json"
)

// Title and Version describe the served API.
const (
	Title   = "itemserver"
	Version = "1.0.0"
)

// Document builds the Swagger 2.0 description of the item API mounted under
// prefix.
func Document(prefix string) *spec.Swagger {
	itemRef := spec.RefSchema("#/definitions/Item")
	listRef := spec.RefSchema("#/definitions/ItemList")
	userRef := spec.RefSchema("#/definitions/UserRequest")

	getObj := spec.NewOperation("getCallObject").
		WithSummary("Look an item up by title").
		WithDescription("Returns the first item whose title equals query exactly, or null.").
		WithTags("items").
		AddParam(spec.QueryParam("query").Typed("string", "").AsRequired()).
		RespondsWith(200, spec.NewResponse().WithDescription("The item, or null").WithSchema(itemRef)).
		RespondsWith(400, spec.NewResponse().WithDescription("Missing query parameter"))

	getList := spec.NewOperation("getCallList").
		WithSummary("List every item").
		WithTags("items").
		RespondsWith(200, spec.NewResponse().WithDescription("All items in catalog order").WithSchema(listRef))

	postCall := spec.NewOperation("postCall").
		WithSummary("Log the body and look an item up by path segment").
		WithTags("items").
		AddParam(spec.PathParam("query").Typed("string", "").AsRequired()).
		AddParam(spec.BodyParam("body", userRef).AsRequired()).
		RespondsWith(200, spec.NewResponse().WithDescription("The item, or null").WithSchema(itemRef)).
		RespondsWith(400, spec.NewResponse().WithDescription("Missing or malformed body"))

	exchange := spec.NewOperation("exchangeCall").
		WithSummary("Log the token and body and list every item").
		WithDescription("The X-Authorization header is required but never checked.").
		WithTags("items").
		AddParam(spec.HeaderParam("X-Authorization").Typed("string", "").AsRequired()).
		AddParam(spec.BodyParam("body", userRef).AsRequired()).
		RespondsWith(200, spec.NewResponse().WithDescription("All items in catalog order").WithSchema(listRef)).
		RespondsWith(400, spec.NewResponse().WithDescription("Missing header or malformed body"))

	item := new(spec.Schema).Typed("object", "").
		SetProperty("title", *spec.StringProperty()).
		SetProperty("price", *spec.Int64Property())
	list := new(spec.Schema).Typed("object", "").
		SetProperty("items", *spec.ArrayProperty(itemRef))
	user := new(spec.Schema).Typed("object", "").
		SetProperty("username", *spec.StringProperty()).
		SetProperty("password", *spec.StringProperty())

	doc := &spec.Swagger{
		SwaggerProps: spec.SwaggerProps{
			Swagger:  "2.0",
			Consumes: []string{"application/json"},
			Produces: []string{"application/json"},
			BasePath: prefix,
			Info: &spec.Info{
				InfoProps: spec.InfoProps{
					Title:       Title,
					Version:     Version,
					Description: "Fixed in-memory item catalog",
				},
			},
			Paths: &spec.Paths{
				Paths: map[string]spec.PathItem{
					PathGetCallObj:   {PathItemProps: spec.PathItemProps{Get: getObj}},
					PathGetCallList:  {PathItemProps: spec.PathItemProps{Get: getList}},
					PathPostCall:     {PathItemProps: spec.PathItemProps{Post: postCall}},
					PathExchangeCall: {PathItemProps: spec.PathItemProps{Post: exchange}},
				},
			},
			Definitions: spec.Definitions{
				"Item":        *item,
				"ItemList":    *list,
				"UserRequest": *user,
			},
		},
	}
	return doc
}

// Export writes doc to path as indented JSON.
func Export(path string, doc *spec.Swagger) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal swagger document: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
