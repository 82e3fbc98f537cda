package golang

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/discokit/disco/discovery"
)

func testDocument() *discovery.Document {
	return &discovery.Document{
		Name:    "zoo",
		Version: "v1",
		Title:   "Zoo API",
		BaseURL: "https://api.example.com/zoo/v1/",
		Methods: map[string]*discovery.Method{
			"ping": {
				ID:         "zoo.ping",
				HTTPMethod: "GET",
				Path:       "ping",
			},
		},
		Resources: map[string]*discovery.Resource{
			"animals": {
				Methods: map[string]*discovery.Method{
					"get": {
						ID:          "zoo.animals.get",
						Description: "Retrieves a single animal.",
						HTTPMethod:  "GET",
						Path:        "animals/{name}",
						Parameters: map[string]*discovery.Parameter{
							"name":       {Location: "path", Required: true, Pattern: "^[a-z]+$"},
							"projection": {Location: "query"},
						},
						ParameterOrder: []string{"name"},
					},
					"insert": {
						ID:         "zoo.animals.insert",
						HTTPMethod: "POST",
						Path:       "animals",
					},
				},
				Resources: map[string]*discovery.Resource{
					"photos": {
						Methods: map[string]*discovery.Method{
							"list": {
								ID:         "zoo.animals.photos.list",
								HTTPMethod: "GET",
								Path:       "animals/{name}/photos",
								Parameters: map[string]*discovery.Parameter{
									"name":       {Location: "path", Required: true},
									"maxResults": {Location: "query"},
								},
								ParameterOrder: []string{"name"},
							},
						},
					},
				},
			},
		},
	}
}

func emitTestDocument(t *testing.T) string {
	t.Helper()
	src, err := Emit(testDocument(), Options{Package: "zoo"})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	return string(src)
}

func TestEmit_ParsesAsGo(t *testing.T) {
	src := emitTestDocument(t)
	fset := token.NewFileSet()
	if _, err := parser.ParseFile(fset, "zoo.gen.go", src, 0); err != nil {
		t.Fatalf("generated source does not parse: %v\n%s", err, src)
	}
}

func TestEmit_Header(t *testing.T) {
	src := emitTestDocument(t)
	if !strings.HasPrefix(src, "// Code generated by disco; DO NOT EDIT.\n") {
		t.Error("missing generated-code marker")
	}
	if !strings.Contains(src, "package zoo\n") {
		t.Error("missing package clause")
	}
	if !strings.Contains(src, `disco "github.com/discokit/disco"`) {
		t.Error("missing runtime import")
	}
}

func TestEmit_Constants(t *testing.T) {
	src := emitTestDocument(t)
	for _, want := range []string{
		`apiID      = "zoo:v1"`,
		`apiName    = "zoo"`,
		`apiVersion = "v1"`,
		`basePath   = "https://api.example.com/zoo/v1/"`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("missing constant %q", want)
		}
	}
}

func TestEmit_ServiceStruct(t *testing.T) {
	src := emitTestDocument(t)
	for _, want := range []string{
		"type Service struct {",
		"Animals *AnimalsService",
		"AnimalsPhotos *AnimalsPhotosService",
		"func New(auth disco.Authenticator) *Service {",
		"s.Animals = NewAnimalsService(s)",
		"s.AnimalsPhotos = NewAnimalsPhotosService(s)",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestEmit_MethodDescriptor(t *testing.T) {
	src := emitTestDocument(t)
	for _, want := range []string{
		"var animalsGetMethod = &disco.Method{",
		`ID:         "zoo.animals.get"`,
		`HTTPMethod: "GET"`,
		`Path:       "animals/{name}"`,
		`{Name: "name", WireName: "name", Location: disco.LocationPath, Required: true, Pattern: "^[a-z]+$"}`,
		`{Name: "projection", WireName: "projection", Location: disco.LocationQuery}`,
	} {
		if !strings.Contains(src, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestEmit_CallMethods(t *testing.T) {
	src := emitTestDocument(t)
	for _, want := range []string{
		"// Get: Retrieves a single animal.",
		"func (r *AnimalsService) Get(name string) *disco.Request {",
		"disco.NewRequest(animalsGetMethod, r.s.BasePath).",
		`RPCName("zoo.animals.get").`,
		`Param("name", name).`,
		"Authenticator(r.s.auth)",
		"func (r *AnimalsService) Insert() *disco.Request {",
		"func (r *AnimalsPhotosService) List(name string) *disco.Request {",
		// Document-level methods hang off Service itself.
		"func (s *Service) Ping() *disco.Request {",
		"disco.NewRequest(pingMethod, s.BasePath).",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestEmit_RequiredBeforeOptional(t *testing.T) {
	src := emitTestDocument(t)
	// Optional parameters never appear in signatures.
	if strings.Contains(src, "projection string") {
		t.Error("optional parameter leaked into a method signature")
	}
	if !strings.Contains(src, "// Optional parameters may be set with Param on the returned request.") {
		t.Error("missing optional-parameter note")
	}
}

func TestEmit_Deterministic(t *testing.T) {
	first, err := Emit(testDocument(), Options{Package: "zoo"})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := Emit(testDocument(), Options{Package: "zoo"})
		if err != nil {
			t.Fatalf("Emit: %v", err)
		}
		if string(first) != string(again) {
			t.Fatal("Emit output is not deterministic")
		}
	}
}

func TestEmit_RequiresPackage(t *testing.T) {
	if _, err := Emit(testDocument(), Options{}); err == nil {
		t.Error("Emit should require a package name")
	}
}

func TestEmit_CollidingDescriptorVars(t *testing.T) {
	// "animals" method "photosList" and "animals.photos" method "list"
	// both mangle to animalsPhotosListMethod.
	doc := &discovery.Document{
		Name:    "zoo",
		Version: "v1",
		BaseURL: "https://api.example.com/zoo/v1/",
		Resources: map[string]*discovery.Resource{
			"animals": {
				Methods: map[string]*discovery.Method{
					"photosList": {
						ID:         "zoo.animals.photosList",
						HTTPMethod: "GET",
						Path:       "animals/photos",
					},
				},
				Resources: map[string]*discovery.Resource{
					"photos": {
						Methods: map[string]*discovery.Method{
							"list": {
								ID:         "zoo.animals.photos.list",
								HTTPMethod: "GET",
								Path:       "animals/photos/all",
							},
						},
					},
				},
			},
		},
	}
	src, err := Emit(doc, Options{Package: "zoo"})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	s := string(src)

	if got := strings.Count(s, "var animalsPhotosListMethod ="); got != 1 {
		t.Errorf("animalsPhotosListMethod declared %d times, want 1", got)
	}
	if !strings.Contains(s, "var animalsPhotosListMethod2 =") {
		t.Error("colliding descriptor not renamed to animalsPhotosListMethod2")
	}
	// The suffixed descriptor belongs to animals.photos.list, which
	// sorts after animals.photosList, and its call method must use it.
	if !strings.Contains(s, "disco.NewRequest(animalsPhotosListMethod2, r.s.BasePath)") {
		t.Error("call method does not reference the renamed descriptor")
	}

	fset := token.NewFileSet()
	if _, err := parser.ParseFile(fset, "zoo.gen.go", s, 0); err != nil {
		t.Fatalf("generated source does not parse: %v\n%s", err, s)
	}
}

func TestEmit_CollidingServiceNames(t *testing.T) {
	// Resource paths "animals.photos" and "animalsPhotos" both mangle
	// to the AnimalsPhotos service name.
	doc := &discovery.Document{
		Name:    "zoo",
		Version: "v1",
		BaseURL: "https://api.example.com/zoo/v1/",
		Resources: map[string]*discovery.Resource{
			"animalsPhotos": {
				Methods: map[string]*discovery.Method{
					"get": {
						ID:         "zoo.animalsPhotos.get",
						HTTPMethod: "GET",
						Path:       "animalsPhotos",
					},
				},
			},
			"animals": {
				Resources: map[string]*discovery.Resource{
					"photos": {
						Methods: map[string]*discovery.Method{
							"get": {
								ID:         "zoo.animals.photos.get",
								HTTPMethod: "GET",
								Path:       "animals/photos",
							},
						},
					},
				},
			},
		},
	}
	src, err := Emit(doc, Options{Package: "zoo"})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	s := string(src)

	if got := strings.Count(s, "type AnimalsPhotosService struct"); got != 1 {
		t.Errorf("AnimalsPhotosService declared %d times, want 1", got)
	}
	if !strings.Contains(s, "type AnimalsPhotos2Service struct") {
		t.Error("colliding service not renamed to AnimalsPhotos2Service")
	}
	if !strings.Contains(s, "s.AnimalsPhotos2 = NewAnimalsPhotos2Service(s)") {
		t.Error("constructor does not wire the renamed service")
	}

	fset := token.NewFileSet()
	if _, err := parser.ParseFile(fset, "zoo.gen.go", s, 0); err != nil {
		t.Fatalf("generated source does not parse: %v\n%s", err, s)
	}
}

func TestEmit_RuntimeImportOverride(t *testing.T) {
	src, err := Emit(testDocument(), Options{Package: "zoo", RuntimeImport: "example.com/vendored/disco"})
	if err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if !strings.Contains(string(src), `disco "example.com/vendored/disco"`) {
		t.Error("RuntimeImport override not honored")
	}
}
