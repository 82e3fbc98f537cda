package discovery

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/discokit/disco"
)

var validate = validator.New()

// Parse decodes and validates a discovery document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse discovery document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and parses a discovery document from r.
func Load(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read discovery document: %w", err)
	}
	return Parse(data)
}

// LoadFile reads and parses a discovery document from a file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Validate checks the document structurally (struct tags) and
// semantically: every path placeholder must be declared as a path
// parameter, declared patterns must compile, and parameterOrder entries
// must reference declared parameters.
func (d *Document) Validate() error {
	if err := validate.Struct(d); err != nil {
		var valErrs validator.ValidationErrors
		if errors.As(err, &valErrs) {
			return fmt.Errorf("invalid discovery document: %s", formatValidationErrors(valErrs))
		}
		return fmt.Errorf("invalid discovery document: %w", err)
	}

	for _, ref := range d.AllMethods() {
		if err := validateMethod(ref.Method); err != nil {
			return fmt.Errorf("method %s: %w", ref.Method.ID, err)
		}
	}
	return nil
}

func validateMethod(m *Method) error {
	tmpl, err := disco.ParseTemplate(m.Path)
	if err != nil {
		return err
	}

	for _, name := range tmpl.Names() {
		p, ok := m.Parameters[name]
		if !ok {
			return fmt.Errorf("path placeholder {%s} has no declared parameter", name)
		}
		if p.Location != "path" {
			return fmt.Errorf("path placeholder {%s} is declared with location %q", name, p.Location)
		}
	}

	for name, p := range m.Parameters {
		if p.Pattern == "" {
			continue
		}
		if _, err := regexp.Compile(p.Pattern); err != nil {
			return fmt.Errorf("parameter %q has invalid pattern %q: %v", name, p.Pattern, err)
		}
	}

	for _, name := range m.ParameterOrder {
		if _, ok := m.Parameters[name]; !ok {
			return fmt.Errorf("parameterOrder names undeclared parameter %q", name)
		}
	}
	return nil
}

// formatValidationErrors renders validator errors with the struct
// namespace so the failing field is recognizable in CLI output.
func formatValidationErrors(errs validator.ValidationErrors) string {
	msg := ""
	for i, ve := range errs {
		if i > 0 {
			msg += "; "
		}
		msg += fmt.Sprintf("%s failed %q", ve.Namespace(), ve.Tag())
	}
	return msg
}
