package disco

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"
)

// Encoding selects the response representation requested from the API.
type Encoding string

const (
	// EncodingJSON requests JSON responses. This is the default.
	EncodingJSON Encoding = "json"

	// EncodingAtom requests Atom feed responses.
	EncodingAtom Encoding = "atom"
)

// ContentType returns the request content type for the encoding.
func (e Encoding) ContentType() string {
	if e == EncodingAtom {
		return "application/atom+xml"
	}
	return "application/json"
}

// RequestEditorFn can mutate the outbound *http.Request before dispatch.
type RequestEditorFn func(ctx context.Context, req *http.Request) error

// Request builds and executes a single call to an API method.
//
// A Request is single-use: create it with NewRequest, configure it with
// chained calls, execute it once with Do, and discard it. Instances are
// not safe for concurrent use, but independent instances may be used
// from any number of goroutines.
type Request struct {
	method   *Method
	base     *url.URL
	tmpl     *Template
	rpcName  string
	encoding Encoding
	params   map[string]string
	body     []byte
	auth     Authenticator
	client   *http.Client
	editors  []RequestEditorFn
	logger   *slog.Logger
	done     bool

	// err holds the first configuration error; surfaced by Do.
	err error
}

// Response is the outcome of an executed Request. Any HTTP response
// received from the endpoint is returned as a Response, including error
// statuses: the raw body stream is handed to the caller as-is so that
// error bodies can be interpreted by the caller. Closing Body is the
// caller's responsibility.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       io.ReadCloser
}

// Success reports whether the response carries a 2xx status.
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// NewRequest creates a request builder scoped to the method's HTTP verb.
// An unsupported verb, an unparsable base URL, or a malformed path
// template is recorded and surfaced as a typed error by Do.
func NewRequest(m *Method, baseURL string) *Request {
	r := &Request{
		method:   m,
		encoding: EncodingJSON,
		params:   make(map[string]string),
		auth:     NoAuth{},
		client:   http.DefaultClient,
	}
	switch m.HTTPMethod {
	case http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete:
	default:
		r.err = Errorf(CodeUnsupportedMethod, "unsupported HTTP method %q for %s", m.HTTPMethod, m.ID)
		return r
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		r.err = Errorf(CodeInvalidBase, "invalid base URL %q: %v", baseURL, err)
		return r
	}
	r.base = base
	tmpl, err := ParseTemplate(m.Path)
	if err != nil {
		r.err = err
		return r
	}
	r.tmpl = tmpl
	return r
}

// HTTPMethod returns the verb the request was scoped to.
func (r *Request) HTTPMethod() string {
	return r.method.HTTPMethod
}

// RPCName sets a diagnostic name used in logs. Defaults to the method ID.
func (r *Request) RPCName(name string) *Request {
	r.rpcName = name
	return r
}

// Encoding sets the desired response encoding.
func (r *Request) Encoding(e Encoding) *Request {
	if e != EncodingJSON && e != EncodingAtom {
		r.fail(Errorf(CodeInvalidEncoding, "unsupported response encoding %q", e))
		return r
	}
	r.encoding = e
	return r
}

// Param sets a single named parameter.
func (r *Request) Param(name, value string) *Request {
	r.params[name] = value
	return r
}

// Params merges a mapping of name to value into the parameters.
func (r *Request) Params(params map[string]string) *Request {
	for name, value := range params {
		r.params[name] = value
	}
	return r
}

// ParamsFromQuery parses a raw query string and merges the result into
// the parameters.
func (r *Request) ParamsFromQuery(raw string) *Request {
	params, err := ParseParams(raw)
	if err != nil {
		r.fail(err)
		return r
	}
	return r.Params(params)
}

// ParamsFromStruct encodes a struct with `schema` tags and merges the
// result into the parameters.
func (r *Request) ParamsFromStruct(v any) *Request {
	params, err := EncodeParams(v)
	if err != nil {
		r.fail(err)
		return r
	}
	return r.Params(params)
}

// Body sets the request body from a string. Bytes are sent UTF-8 encoded.
func (r *Request) Body(body string) *Request {
	r.body = []byte(body)
	return r
}

// BodyBytes sets the request body from raw bytes.
func (r *Request) BodyBytes(body []byte) *Request {
	r.body = body
	return r
}

// BodyJSON sets the request body to the JSON encoding of v.
func (r *Request) BodyJSON(v any) *Request {
	data, err := json.Marshal(v)
	if err != nil {
		r.fail(fmt.Errorf("marshal request body: %w", err))
		return r
	}
	r.body = data
	return r
}

// Authenticator sets the authenticator that produces the transport-level
// request with credentials attached.
func (r *Request) Authenticator(a Authenticator) *Request {
	if a != nil {
		r.auth = a
	}
	return r
}

// Client sets the HTTP client used to dispatch the request.
func (r *Request) Client(c *http.Client) *Request {
	if c != nil {
		r.client = c
	}
	return r
}

// Editor appends editors that may mutate the outbound request before
// dispatch, in the order given.
func (r *Request) Editor(editors ...RequestEditorFn) *Request {
	r.editors = append(r.editors, editors...)
	return r
}

// Logger sets a logger for request start/completion events.
func (r *Request) Logger(logger *slog.Logger) *Request {
	r.logger = logger
	return r
}

// fail records the first configuration error.
func (r *Request) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// Validate checks the supplied parameters against the method's declared
// parameter specs. It must succeed before any network I/O is attempted;
// Do calls it internally.
//
// A required parameter that is absent or empty fails with
// CodeMissingParameter. A present value that does not match its declared
// pattern (unanchored search) fails with CodeInvalidParameter. A supplied
// parameter with no declared spec fails with CodeUnknownParameter. The
// returned error names every offending parameter of the reported kind.
func (r *Request) Validate() error {
	if r.err != nil {
		return r.err
	}

	var missing, invalid []string
	for _, p := range r.method.Params {
		value, ok := r.params[p.Name]
		if p.Required && (!ok || value == "") {
			missing = append(missing, p.Name)
			continue
		}
		if !ok {
			continue
		}
		if p.Pattern == "" {
			continue
		}
		re, err := regexp.Compile(p.Pattern)
		if err != nil {
			return Errorf(CodeInvalidPattern, "parameter %q has invalid pattern %q: %v", p.Name, p.Pattern, err).
				WithParams(p.Name)
		}
		if !re.MatchString(value) {
			invalid = append(invalid, p.Name)
		}
	}

	var unknown []string
	for name := range r.params {
		if _, ok := r.method.Param(name); !ok {
			unknown = append(unknown, name)
		}
	}

	sort.Strings(missing)
	sort.Strings(invalid)
	sort.Strings(unknown)

	switch {
	case len(missing) > 0:
		return Errorf(CodeMissingParameter, "required parameters missing or empty").WithParams(missing...)
	case len(invalid) > 0:
		return Errorf(CodeInvalidParameter, "parameter values do not match their declared patterns").WithParams(invalid...)
	case len(unknown) > 0:
		return Errorf(CodeUnknownParameter, "parameters not declared by %s", r.method.ID).WithParams(unknown...)
	}
	return nil
}

// URL builds the full request URL: the base URL joined with the expanded
// path template, followed by the query string. The alt parameter
// reflecting the encoding is always the first query parameter; remaining
// query parameters follow in sorted wire-name order.
func (r *Request) URL() (string, error) {
	if r.err != nil {
		return "", r.err
	}

	names := make([]string, 0, len(r.params))
	for name := range r.params {
		names = append(names, name)
	}
	sort.Strings(names)

	pathValues := make(map[string]string)
	query := []string{"alt=" + string(r.encoding)}
	for _, name := range names {
		p, ok := r.method.Param(name)
		if !ok {
			return "", Errorf(CodeUnknownParameter, "parameter %q is not declared by %s", name, r.method.ID).
				WithParams(name)
		}
		switch p.Location {
		case LocationPath:
			pathValues[name] = r.params[name]
		case LocationQuery:
			query = append(query, url.QueryEscape(p.Wire())+"="+url.QueryEscape(r.params[name]))
		default:
			return "", Errorf(CodeInvalidParameter, "parameter %q has unknown location %q", name, p.Location).
				WithParams(name)
		}
	}

	path, err := r.tmpl.Expand(pathValues)
	if err != nil {
		return "", err
	}

	// JoinPath keeps the expanded path's percent-encoding intact. Any
	// query or fragment on the base URL is replaced, not appended to.
	u := *r.base.JoinPath(path)
	u.RawQuery = strings.Join(query, "&")
	u.Fragment = ""
	return u.String(), nil
}

// Do validates the parameters, builds the URL, obtains a credentialed
// request from the authenticator, and dispatches it.
//
// Any HTTP response received from the endpoint, success or error status,
// is returned as a *Response with its raw body stream intact. A nil
// Response means no response was received: validation failed, the verb
// was unsupported, or the connection itself failed (CodeTransport).
func (r *Request) Do(ctx context.Context) (*Response, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.done {
		return nil, ErrReused
	}
	r.done = true

	if err := r.Validate(); err != nil {
		return nil, err
	}
	target, err := r.URL()
	if err != nil {
		return nil, err
	}

	req, err := r.auth.NewRequest(ctx, r.method.HTTPMethod, target)
	if err != nil {
		return nil, fmt.Errorf("authenticate request: %w", err)
	}
	req.Header.Set("Content-Type", r.encoding.ContentType())

	if r.sendsBody() && len(r.body) > 0 {
		body := r.body
		req.Body = io.NopCloser(bytes.NewReader(body))
		req.ContentLength = int64(len(body))
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(body)), nil
		}
	}

	for _, edit := range r.editors {
		if err := edit(ctx, req); err != nil {
			return nil, fmt.Errorf("request editor: %w", err)
		}
	}

	start := time.Now()
	if r.logger != nil {
		r.logger.DebugContext(ctx, "request started",
			slog.String("rpc", r.name()),
			slog.String("method", r.method.HTTPMethod),
			slog.String("url", target),
		)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		if r.logger != nil {
			r.logger.ErrorContext(ctx, "request failed",
				slog.String("rpc", r.name()),
				slog.Duration("duration", time.Since(start)),
				slog.Any("error", err),
			)
		}
		return nil, &Error{Code: CodeTransport, Message: "request failed", Err: err}
	}

	if r.logger != nil {
		r.logger.DebugContext(ctx, "request completed",
			slog.String("rpc", r.name()),
			slog.Int("status", resp.StatusCode),
			slog.Duration("duration", time.Since(start)),
		)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       resp.Body,
	}, nil
}

// sendsBody reports whether the verb carries a request body.
func (r *Request) sendsBody() bool {
	return r.method.HTTPMethod == http.MethodPost || r.method.HTTPMethod == http.MethodPut
}

func (r *Request) name() string {
	if r.rpcName != "" {
		return r.rpcName
	}
	return r.method.ID
}
