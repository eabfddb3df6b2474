// Package openapi describes the HTTP surface of the facade and renders it as
// an OpenAPI 2.0 or 3.0 document, or as a Swagger UI page.
package openapi

import (
	"net/http"
	"strings"
)

const (
	VersionV2 = "v2"
	VersionV3 = "v3"

	FormatJSON = "json"
	FormatYAML = "yaml"
)

type Info struct {
	Title       string
	Version     string
	Description string
}

// Property is a field of a Schema. Ref names another Schema; ItemsRef makes it an array of one.
type Property struct {
	Name        string
	Type        string
	Format      string
	Description string
	Ref         string
	ItemsRef    string
}

type Schema struct {
	Name        string
	Description string
	Properties  []Property
	Required    []string
}

type Parameter struct {
	Name        string
	In          string
	Type        string
	Description string
	Required    bool
}

// Response names the Schema returned with StatusCode; Schema may be empty.
type Response struct {
	StatusCode  int
	Description string
	Schema      string
}

type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	Tags        []string
	Parameters  []Parameter
	Responses   []Response
}

// Document is immutable once built; WithServer returns a copy bound to one address.
type Document struct {
	Info       Info
	ServerURL  string
	Operations []Operation
	Schemas    []Schema
}

func NewDocument(info Info, operations []Operation, schemas []Schema) *Document {
	return &Document{Info: info, Operations: operations, Schemas: schemas}
}

// WithServer returns a copy of d served from serverURL.
func (d *Document) WithServer(serverURL string) *Document {
	cp := *d
	cp.ServerURL = serverURL
	return &cp
}

// ServerURL derives the public address of the API from r: scheme from TLS, host
// from Host, then the route prefix. When trustForwarded is set, X-Forwarded-Proto
// and X-Forwarded-Host override them; a proto other than http or https and a host
// that is not a bare authority are ignored.
func ServerURL(r *http.Request, prefix string, trustForwarded bool) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	host := r.Host

	if trustForwarded {
		switch proto := strings.ToLower(firstValue(r.Header.Get("X-Forwarded-Proto"))); proto {
		case "http", "https":
			scheme = proto
		}
		if fwd := firstValue(r.Header.Get("X-Forwarded-Host")); validHost(fwd) {
			host = fwd
		}
	}

	url := scheme + "://" + host
	if prefix = strings.Trim(prefix, "/"); prefix != "" {
		url += "/" + prefix
	}
	return url
}

func validHost(h string) bool {
	return h != "" && !strings.ContainsAny(h, "/\\?#@ \t\"'<>")
}

// firstValue keeps the left-most entry of a comma separated proxy header.
func firstValue(h string) string {
	if i := strings.IndexByte(h, ','); i >= 0 {
		h = h[:i]
	}
	return strings.TrimSpace(h)
}
