package disco

// Location classifies where a parameter is placed in the request URL.
type Location string

const (
	// LocationPath parameters are substituted into the path template.
	LocationPath Location = "path"

	// LocationQuery parameters are appended to the query string.
	LocationQuery Location = "query"
)

// Param describes one declared parameter of an API method.
// Values are immutable once constructed; generated code declares them
// as package-level data.
type Param struct {
	// Name is the logical parameter name used by callers.
	Name string

	// WireName is the name sent on the wire. Empty means same as Name.
	WireName string

	// Location is where the parameter appears: path or query.
	Location Location

	// Required marks parameters that must be present and non-empty.
	Required bool

	// Pattern is an optional validation regexp. Values are checked with
	// an unanchored search, matching the discovery document semantics.
	Pattern string
}

// Wire returns the name sent on the wire.
func (p Param) Wire() string {
	if p.WireName != "" {
		return p.WireName
	}
	return p.Name
}

// Method describes one callable API method, as declared by a discovery
// document. Generated code declares one Method per API method and hands
// it to NewRequest.
type Method struct {
	// ID is the fully-qualified RPC name (e.g. "books.volumes.get").
	ID string

	// HTTPMethod is the verb: GET, PUT, POST, or DELETE.
	HTTPMethod string

	// Path is the URL path template relative to the service base URL.
	// Placeholders use the form "{name}" where name is a declared
	// path parameter.
	Path string

	// Params are the declared parameters, in declaration order.
	Params []Param
}

// Param returns the declared parameter with the given logical name.
func (m *Method) Param(name string) (Param, bool) {
	for _, p := range m.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}
