// Package discovery models API discovery documents: machine-readable
// descriptions of an API's RPC-style HTTP methods, resources, and
// parameter schemas.
package discovery

import "sort"

// Document is the root of a discovery document.
type Document struct {
	Kind        string `json:"kind,omitempty"`
	Name        string `json:"name" validate:"required"`
	Version     string `json:"version" validate:"required"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	// BaseURL is the absolute URL all method paths are relative to.
	BaseURL string `json:"baseUrl" validate:"required,url"`

	// Methods are API-level methods not scoped to a resource.
	Methods map[string]*Method `json:"methods,omitempty" validate:"dive"`

	// Resources group related methods and may nest further resources.
	Resources map[string]*Resource `json:"resources,omitempty" validate:"dive"`
}

// Resource is a named group of methods and sub-resources.
type Resource struct {
	Methods   map[string]*Method   `json:"methods,omitempty" validate:"dive"`
	Resources map[string]*Resource `json:"resources,omitempty" validate:"dive"`
}

// Method describes one callable API method.
type Method struct {
	// ID is the fully-qualified RPC name (e.g. "books.volumes.get").
	ID          string `json:"id" validate:"required"`
	Description string `json:"description,omitempty"`

	// HTTPMethod is the verb used on the wire.
	HTTPMethod string `json:"httpMethod" validate:"required,oneof=GET PUT POST DELETE"`

	// Path is the URL path template, relative to the document BaseURL,
	// with "{name}" placeholders for path parameters.
	Path string `json:"path" validate:"required"`

	// Parameters maps wire names to parameter schemas.
	Parameters map[string]*Parameter `json:"parameters,omitempty" validate:"dive"`

	// ParameterOrder lists the names of required parameters in the
	// order generated method signatures should take them.
	ParameterOrder []string `json:"parameterOrder,omitempty"`
}

// Parameter describes one method parameter.
type Parameter struct {
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`

	// Location classifies the parameter: "path" or "query".
	Location string `json:"location" validate:"required,oneof=path query"`

	// Required parameters must be supplied and non-empty.
	Required bool `json:"required,omitempty"`

	// Pattern is an optional validation regexp, applied as an
	// unanchored search.
	Pattern string `json:"pattern,omitempty"`

	Default string `json:"default,omitempty"`
}

// MethodRef pairs a method with the resource path it was found under.
type MethodRef struct {
	// Resource is the dotted resource path ("volumes.annotations"),
	// empty for document-level methods.
	Resource string

	// Name is the method's key within its resource.
	Name string

	Method *Method
}

// AllMethods returns every method in the document, depth-first through
// resources, sorted by resource path then method name. The order is
// deterministic so generated output is stable.
func (d *Document) AllMethods() []MethodRef {
	var refs []MethodRef
	refs = appendMethods(refs, "", d.Methods)
	refs = appendResources(refs, "", d.Resources)
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Resource != refs[j].Resource {
			return refs[i].Resource < refs[j].Resource
		}
		return refs[i].Name < refs[j].Name
	})
	return refs
}

func appendMethods(refs []MethodRef, resource string, methods map[string]*Method) []MethodRef {
	for name, m := range methods {
		refs = append(refs, MethodRef{Resource: resource, Name: name, Method: m})
	}
	return refs
}

func appendResources(refs []MethodRef, prefix string, resources map[string]*Resource) []MethodRef {
	for name, res := range resources {
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		refs = appendMethods(refs, path, res.Methods)
		refs = appendResources(refs, path, res.Resources)
	}
	return refs
}
