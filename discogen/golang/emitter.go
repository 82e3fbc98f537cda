// Package golang emits Go client source for a discovery document.
// Emission assembles the generated file piecewise: constants, the
// service struct and constructor, per-resource service structs, one
// method descriptor per API method, and one call builder method per
// API method.
package golang

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/discokit/disco/discovery"
)

// Options configures emission.
type Options struct {
	// Package is the generated package name.
	Package string

	// RuntimeImport is the import path of the disco runtime.
	RuntimeImport string
}

// Emit renders the complete generated file for doc. The output is valid
// but unformatted Go source; callers run it through goimports.
func Emit(doc *discovery.Document, opts Options) ([]byte, error) {
	if opts.Package == "" {
		return nil, fmt.Errorf("package name is required")
	}
	if opts.RuntimeImport == "" {
		opts.RuntimeImport = "github.com/discokit/disco"
	}

	e := &emitter{doc: doc, opts: opts}
	e.emitHeader()
	e.emitConstants()

	docMethods, resources := splitMethods(doc)

	e.emitConstructor(resources)
	e.emitServiceStruct(resources)

	vars := make(nameSet)
	for _, ref := range docMethods {
		v := vars.unique(descriptorVar("", ref))
		e.emitMethodDescriptor(v, ref)
		e.emitCallMethod(v, "", ref)
	}
	for _, res := range resources {
		e.emitResourceService(res)
		for _, ref := range res.methods {
			v := vars.unique(descriptorVar(res.goName, ref))
			e.emitMethodDescriptor(v, ref)
			e.emitCallMethod(v, res.goName, ref)
		}
	}
	return e.buf.Bytes(), nil
}

type emitter struct {
	doc  *discovery.Document
	opts Options
	buf  bytes.Buffer
}

// resourceGroup is one resource path with its methods, in emission order.
type resourceGroup struct {
	path    string // dotted resource path, e.g. "animals.photos"
	goName  string // e.g. "AnimalsPhotos"
	methods []discovery.MethodRef
}

// splitMethods partitions the document's methods into document-level
// methods and per-resource groups, preserving AllMethods order. Resource
// service names are deduplicated: distinct resource paths can mangle to
// the same Go name ("animals.photos" and "animalsPhotos").
func splitMethods(doc *discovery.Document) ([]discovery.MethodRef, []resourceGroup) {
	var docMethods []discovery.MethodRef
	var resources []resourceGroup
	types := make(nameSet)
	for _, ref := range doc.AllMethods() {
		if ref.Resource == "" {
			docMethods = append(docMethods, ref)
			continue
		}
		if n := len(resources); n > 0 && resources[n-1].path == ref.Resource {
			resources[n-1].methods = append(resources[n-1].methods, ref)
			continue
		}
		resources = append(resources, resourceGroup{
			path:    ref.Resource,
			goName:  types.unique(GoName(ref.Resource)),
			methods: []discovery.MethodRef{ref},
		})
	}
	return docMethods, resources
}

// nameSet tracks allocated package-level identifiers. Colliding names
// get a numeric suffix so the generated file still compiles.
type nameSet map[string]bool

func (s nameSet) unique(name string) string {
	if !s[name] {
		s[name] = true
		return name
	}
	for i := 2; ; i++ {
		c := name + strconv.Itoa(i)
		if !s[c] {
			s[c] = true
			return c
		}
	}
}

func (e *emitter) printf(format string, args ...any) {
	fmt.Fprintf(&e.buf, format, args...)
}

func (e *emitter) emitHeader() {
	e.printf("// Code generated by disco; DO NOT EDIT.\n\n")
	title := e.doc.Title
	if title == "" {
		title = e.doc.Name
	}
	e.printf("// Package %s provides a client for %s (%s:%s),\n", e.opts.Package, title, e.doc.Name, e.doc.Version)
	e.printf("// generated from its discovery document.\n")
	e.printf("package %s\n\n", e.opts.Package)
	e.printf("import (\n")
	e.printf("\tdisco %q\n", e.opts.RuntimeImport)
	e.printf(")\n\n")
}

func (e *emitter) emitConstants() {
	e.printf("const (\n")
	e.printf("\tapiID      = %q\n", e.doc.Name+":"+e.doc.Version)
	e.printf("\tapiName    = %q\n", e.doc.Name)
	e.printf("\tapiVersion = %q\n", e.doc.Version)
	e.printf("\tbasePath   = %q\n", e.doc.BaseURL)
	e.printf(")\n\n")
}

func (e *emitter) emitConstructor(resources []resourceGroup) {
	e.printf("// New creates a Service that issues requests through auth.\n")
	e.printf("// Pass disco.NoAuth{} for APIs that need no credentials.\n")
	e.printf("func New(auth disco.Authenticator) *Service {\n")
	e.printf("\ts := &Service{BasePath: basePath, auth: auth}\n")
	for _, res := range resources {
		e.printf("\ts.%s = New%sService(s)\n", res.goName, res.goName)
	}
	e.printf("\treturn s\n")
	e.printf("}\n\n")
}

func (e *emitter) emitServiceStruct(resources []resourceGroup) {
	e.printf("// Service is the generated client for the %s API.\n", e.doc.Name)
	e.printf("type Service struct {\n")
	e.printf("\t// BasePath is the API endpoint base URL.\n")
	e.printf("\tBasePath string\n\n")
	e.printf("\tauth disco.Authenticator\n")
	if len(resources) > 0 {
		e.printf("\n")
	}
	for _, res := range resources {
		e.printf("\t%s *%sService\n", res.goName, res.goName)
	}
	e.printf("}\n\n")
}

func (e *emitter) emitResourceService(res resourceGroup) {
	e.printf("func New%sService(s *Service) *%sService {\n", res.goName, res.goName)
	e.printf("\treturn &%sService{s: s}\n", res.goName)
	e.printf("}\n\n")
	e.printf("type %sService struct {\n", res.goName)
	e.printf("\ts *Service\n")
	e.printf("}\n\n")
}

// emitMethodDescriptor emits the package-level disco.Method value for
// one API method. varName is the allocated descriptor variable name.
func (e *emitter) emitMethodDescriptor(varName string, ref discovery.MethodRef) {
	m := ref.Method
	e.printf("var %s = &disco.Method{\n", varName)
	e.printf("\tID:         %q,\n", m.ID)
	e.printf("\tHTTPMethod: %q,\n", m.HTTPMethod)
	e.printf("\tPath:       %q,\n", m.Path)
	params := orderedParams(m)
	if len(params) > 0 {
		e.printf("\tParams: []disco.Param{\n")
		for _, p := range params {
			e.printf("\t\t{Name: %q, WireName: %q, Location: %s", p.name, p.name, locationExpr(p.param.Location))
			if p.param.Required {
				e.printf(", Required: true")
			}
			if p.param.Pattern != "" {
				e.printf(", Pattern: %q", p.param.Pattern)
			}
			e.printf("},\n")
		}
		e.printf("\t},\n")
	}
	e.printf("}\n\n")
}

// emitCallMethod emits the generated method that assembles a
// *disco.Request. Required parameters become arguments; optional ones
// are added by the caller with Param on the returned request.
func (e *emitter) emitCallMethod(varName, serviceGoName string, ref discovery.MethodRef) {
	m := ref.Method
	goName := GoName(ref.Name)
	required := requiredParams(m)

	if m.Description != "" {
		e.printf("// %s: %s\n", goName, m.Description)
	} else {
		e.printf("// %s calls %s.\n", goName, m.ID)
	}
	if hasOptionalParams(m) {
		e.printf("// Optional parameters may be set with Param on the returned request.\n")
	}

	root := "s"
	if serviceGoName != "" {
		root = "r.s"
		e.printf("func (r *%sService) %s(", serviceGoName, goName)
	} else {
		e.printf("func (s *Service) %s(", goName)
	}
	for i, p := range required {
		if i > 0 {
			e.printf(", ")
		}
		e.printf("%s string", argName(p.name))
	}
	e.printf(") *disco.Request {\n")
	e.printf("\treturn disco.NewRequest(%s, %s.BasePath).\n", varName, root)
	e.printf("\t\tRPCName(%q).\n", m.ID)
	for _, p := range required {
		e.printf("\t\tParam(%q, %s).\n", p.name, argName(p.name))
	}
	e.printf("\t\tAuthenticator(%s.auth)\n", root)
	e.printf("}\n\n")
}

// namedParam pairs a parameter with its wire name (its key in the
// document's parameter map).
type namedParam struct {
	name  string
	param *discovery.Parameter
}

// orderedParams returns the method's parameters with parameterOrder
// names first and the remainder in sorted name order.
func orderedParams(m *discovery.Method) []namedParam {
	seen := make(map[string]bool, len(m.ParameterOrder))
	params := make([]namedParam, 0, len(m.Parameters))
	for _, name := range m.ParameterOrder {
		if p, ok := m.Parameters[name]; ok && !seen[name] {
			seen[name] = true
			params = append(params, namedParam{name: name, param: p})
		}
	}
	rest := make([]string, 0, len(m.Parameters))
	for name := range m.Parameters {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		params = append(params, namedParam{name: name, param: m.Parameters[name]})
	}
	return params
}

// requiredParams returns the required parameters in signature order.
func requiredParams(m *discovery.Method) []namedParam {
	var required []namedParam
	for _, p := range orderedParams(m) {
		if p.param.Required {
			required = append(required, p)
		}
	}
	return required
}

func hasOptionalParams(m *discovery.Method) bool {
	for _, p := range m.Parameters {
		if !p.Required {
			return true
		}
	}
	return false
}

// descriptorVar derives the base name of a method's descriptor
// variable. Emit deduplicates the result across the whole file.
func descriptorVar(serviceGoName string, ref discovery.MethodRef) string {
	return lowerFirst(serviceGoName+GoName(ref.Name)) + "Method"
}

// locationExpr renders a parameter location as a disco constant.
func locationExpr(location string) string {
	if location == "path" {
		return "disco.LocationPath"
	}
	return "disco.LocationQuery"
}
