package openapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"k8s.io/kube-openapi/pkg/spec3"
	"k8s.io/kube-openapi/pkg/validation/spec"
	"sigs.k8s.io/yaml"
)

var (
	ErrUnsupportedVersion = errors.New("openapi: unsupported document version")
	ErrUnsupportedFormat  = errors.New("openapi: unsupported document format")
)

// ContentType returns the media type of a rendered document.
func ContentType(format string) string {
	if format == FormatYAML {
		return "application/yaml"
	}
	return "application/json"
}

// Render encodes d as an OpenAPI document of the given version (v2 or v3) and format (json or yaml).
func Render(d *Document, version, format string) ([]byte, error) {
	if format != FormatJSON && format != FormatYAML {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	var doc any
	switch version {
	case VersionV2:
		v2, err := d.swagger()
		if err != nil {
			return nil, err
		}
		doc = v2
	case VersionV3:
		doc = d.openAPI()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, version)
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("openapi: encoding %s document: %w", version, err)
	}
	if format == FormatYAML {
		return yaml.JSONToYAML(out)
	}
	return out, nil
}

func (d *Document) swagger() (*spec.Swagger, error) {
	props := spec.SwaggerProps{
		Swagger:     "2.0",
		Info:        d.info(),
		Consumes:    []string{"application/json"},
		Produces:    []string{"application/json"},
		Paths:       &spec.Paths{Paths: map[string]spec.PathItem{}},
		Definitions: spec.Definitions{},
	}

	if d.ServerURL != "" {
		u, err := url.Parse(d.ServerURL)
		if err != nil {
			return nil, fmt.Errorf("openapi: server url: %w", err)
		}
		props.Host = u.Host
		props.BasePath = "/" + strings.Trim(u.Path, "/")
		if u.Scheme != "" {
			props.Schemes = []string{u.Scheme}
		}
	}

	for _, op := range d.Operations {
		item := props.Paths.Paths[op.Path]
		setV2Operation(&item.PathItemProps, op.Method, v2Operation(op))
		props.Paths.Paths[op.Path] = item
	}

	for _, s := range d.Schemas {
		props.Definitions[s.Name] = schemaOf(s, "#/definitions/")
	}

	return &spec.Swagger{SwaggerProps: props}, nil
}

func (d *Document) openAPI() *spec3.OpenAPI {
	doc := &spec3.OpenAPI{
		Version:    "3.0.3",
		Info:       d.info(),
		Paths:      &spec3.Paths{Paths: map[string]*spec3.Path{}},
		Components: &spec3.Components{Schemas: map[string]*spec.Schema{}},
	}

	if d.ServerURL != "" {
		doc.Servers = []*spec3.Server{{ServerProps: spec3.ServerProps{URL: d.ServerURL}}}
	}

	for _, op := range d.Operations {
		path, ok := doc.Paths.Paths[op.Path]
		if !ok {
			path = &spec3.Path{}
			doc.Paths.Paths[op.Path] = path
		}
		setV3Operation(&path.PathProps, op.Method, v3Operation(op))
	}

	for _, s := range d.Schemas {
		schema := schemaOf(s, "#/components/schemas/")
		doc.Components.Schemas[s.Name] = &schema
	}

	return doc
}

func (d *Document) info() *spec.Info {
	return &spec.Info{InfoProps: spec.InfoProps{
		Title:       d.Info.Title,
		Version:     d.Info.Version,
		Description: d.Info.Description,
	}}
}

func v2Operation(op Operation) *spec.Operation {
	params := make([]spec.Parameter, 0, len(op.Parameters))
	for _, p := range op.Parameters {
		params = append(params, spec.Parameter{
			SimpleSchema: spec.SimpleSchema{Type: p.Type},
			ParamProps: spec.ParamProps{
				Name:        p.Name,
				In:          p.In,
				Description: p.Description,
				Required:    p.Required,
			},
		})
	}

	responses := map[int]spec.Response{}
	for _, r := range op.Responses {
		resp := spec.Response{ResponseProps: spec.ResponseProps{Description: r.Description}}
		if r.Schema != "" {
			resp.Schema = refSchema("#/definitions/" + r.Schema)
		}
		responses[r.StatusCode] = resp
	}

	return &spec.Operation{OperationProps: spec.OperationProps{
		ID:          op.ID,
		Summary:     op.Summary,
		Description: op.Description,
		Tags:        op.Tags,
		Produces:    []string{"application/json"},
		Parameters:  params,
		Responses:   &spec.Responses{ResponsesProps: spec.ResponsesProps{StatusCodeResponses: responses}},
	}}
}

func v3Operation(op Operation) *spec3.Operation {
	params := make([]*spec3.Parameter, 0, len(op.Parameters))
	for _, p := range op.Parameters {
		params = append(params, &spec3.Parameter{ParameterProps: spec3.ParameterProps{
			Name:        p.Name,
			In:          p.In,
			Description: p.Description,
			Required:    p.Required,
			Schema:      typeSchema(p.Type, ""),
		}})
	}

	responses := map[int]*spec3.Response{}
	for _, r := range op.Responses {
		resp := &spec3.Response{ResponseProps: spec3.ResponseProps{Description: r.Description}}
		if r.Schema != "" {
			resp.Content = map[string]*spec3.MediaType{
				"application/json": {MediaTypeProps: spec3.MediaTypeProps{
					Schema: refSchema("#/components/schemas/" + r.Schema),
				}},
			}
		}
		responses[r.StatusCode] = resp
	}

	return &spec3.Operation{OperationProps: spec3.OperationProps{
		OperationId: op.ID,
		Summary:     op.Summary,
		Description: op.Description,
		Tags:        op.Tags,
		Parameters:  params,
		Responses:   &spec3.Responses{ResponsesProps: spec3.ResponsesProps{StatusCodeResponses: responses}},
	}}
}

func setV2Operation(item *spec.PathItemProps, method string, op *spec.Operation) {
	switch strings.ToUpper(method) {
	case "GET":
		item.Get = op
	case "PUT":
		item.Put = op
	case "POST":
		item.Post = op
	case "DELETE":
		item.Delete = op
	case "PATCH":
		item.Patch = op
	case "HEAD":
		item.Head = op
	case "OPTIONS":
		item.Options = op
	}
}

func setV3Operation(item *spec3.PathProps, method string, op *spec3.Operation) {
	switch strings.ToUpper(method) {
	case "GET":
		item.Get = op
	case "PUT":
		item.Put = op
	case "POST":
		item.Post = op
	case "DELETE":
		item.Delete = op
	case "PATCH":
		item.Patch = op
	case "HEAD":
		item.Head = op
	case "OPTIONS":
		item.Options = op
	}
}

func schemaOf(s Schema, refPrefix string) spec.Schema {
	props := make(map[string]spec.Schema, len(s.Properties))
	for _, p := range s.Properties {
		switch {
		case p.Ref != "":
			props[p.Name] = *refSchema(refPrefix + p.Ref)
		case p.ItemsRef != "":
			props[p.Name] = spec.Schema{SchemaProps: spec.SchemaProps{
				Type:        spec.StringOrArray{"array"},
				Description: p.Description,
				Items:       &spec.SchemaOrArray{Schema: refSchema(refPrefix + p.ItemsRef)},
			}}
		default:
			prop := typeSchema(p.Type, p.Format)
			prop.Description = p.Description
			props[p.Name] = *prop
		}
	}

	return spec.Schema{SchemaProps: spec.SchemaProps{
		Type:        spec.StringOrArray{"object"},
		Description: s.Description,
		Properties:  props,
		Required:    s.Required,
	}}
}

func typeSchema(typ, format string) *spec.Schema {
	return &spec.Schema{SchemaProps: spec.SchemaProps{
		Type:   spec.StringOrArray{typ},
		Format: format,
	}}
}

func refSchema(ref string) *spec.Schema {
	return &spec.Schema{SchemaProps: spec.SchemaProps{Ref: spec.MustCreateRef(ref)}}
}
