package openapi

import (
	"maps"
	"slices"
)

// The clone helpers copy the object graph reachable from an Operation so
// that fragments never share structure with callers or with assembled
// documents. Example and default values typed as any are copied by value
// and are expected to be immutable.

func cloneOperation(op *Operation) *Operation {
	if op == nil {
		return nil
	}
	out := *op
	out.Tags = slices.Clone(op.Tags)
	out.ExternalDocs = cloneExternalDocs(op.ExternalDocs)
	out.RequestBody = cloneRequestBody(op.RequestBody)
	out.Servers = cloneServers(op.Servers)

	if op.Parameters != nil {
		out.Parameters = make([]*Parameter, len(op.Parameters))
		for i, p := range op.Parameters {
			out.Parameters[i] = cloneParameter(p)
		}
	}

	out.Responses = make(map[string]*Response, len(op.Responses))
	for status, resp := range op.Responses {
		out.Responses[status] = cloneResponse(resp)
	}

	if op.Security != nil {
		out.Security = make([]SecurityRequirement, len(op.Security))
		for i, req := range op.Security {
			out.Security[i] = cloneSecurityRequirement(req)
		}
	}
	return &out
}

func cloneExternalDocs(d *ExternalDocs) *ExternalDocs {
	if d == nil {
		return nil
	}
	out := *d
	return &out
}

func cloneServers(servers []Server) []Server {
	if servers == nil {
		return nil
	}
	out := make([]Server, len(servers))
	for i, srv := range servers {
		out[i] = srv
		if srv.Variables != nil {
			out[i].Variables = make(map[string]*ServerVariable, len(srv.Variables))
			for name, v := range srv.Variables {
				if v == nil {
					out[i].Variables[name] = nil
					continue
				}
				cp := *v
				cp.Enum = slices.Clone(v.Enum)
				out[i].Variables[name] = &cp
			}
		}
	}
	return out
}

func cloneParameter(p *Parameter) *Parameter {
	if p == nil {
		return nil
	}
	out := *p
	if p.Explode != nil {
		explode := *p.Explode
		out.Explode = &explode
	}
	out.Schema = cloneSchema(p.Schema)
	out.Content = cloneContent(p.Content)
	return &out
}

func cloneRequestBody(body *RequestBody) *RequestBody {
	if body == nil {
		return nil
	}
	out := *body
	out.Content = cloneContent(body.Content)
	return &out
}

func cloneResponse(resp *Response) *Response {
	if resp == nil {
		return nil
	}
	out := *resp
	out.Content = cloneContent(resp.Content)

	if resp.Headers != nil {
		out.Headers = make(map[string]*Header, len(resp.Headers))
		for name, h := range resp.Headers {
			out.Headers[name] = cloneHeader(h)
		}
	}

	if resp.Links != nil {
		out.Links = make(map[string]*Link, len(resp.Links))
		for name, l := range resp.Links {
			if l == nil {
				out.Links[name] = nil
				continue
			}
			cp := *l
			cp.Parameters = maps.Clone(l.Parameters)
			out.Links[name] = &cp
		}
	}
	return &out
}

func cloneHeader(h *Header) *Header {
	if h == nil {
		return nil
	}
	out := *h
	out.Schema = cloneSchema(h.Schema)
	return &out
}

func cloneContent(content map[string]*MediaType) map[string]*MediaType {
	if content == nil {
		return nil
	}
	out := make(map[string]*MediaType, len(content))
	for mime, mt := range content {
		if mt == nil {
			out[mime] = nil
			continue
		}
		cp := *mt
		cp.Schema = cloneSchema(mt.Schema)
		if mt.Examples != nil {
			cp.Examples = make(map[string]*Example, len(mt.Examples))
			for name, ex := range mt.Examples {
				if ex == nil {
					cp.Examples[name] = nil
					continue
				}
				e := *ex
				cp.Examples[name] = &e
			}
		}
		out[mime] = &cp
	}
	return out
}

func cloneSecurityRequirement(req SecurityRequirement) SecurityRequirement {
	if req == nil {
		return nil
	}
	out := make(SecurityRequirement, len(req))
	for scheme, scopes := range req {
		out[scheme] = slices.Clone(scopes)
	}
	return out
}

func cloneSchema(s *Schema) *Schema {
	if s == nil {
		return nil
	}
	out := *s
	if s.Type != nil {
		st := SchemaType{value: slices.Clone(s.Type.value)}
		out.Type = &st
	}
	out.MultipleOf = clonePtr(s.MultipleOf)
	out.Minimum = clonePtr(s.Minimum)
	out.Maximum = clonePtr(s.Maximum)
	out.MinLength = clonePtr(s.MinLength)
	out.MaxLength = clonePtr(s.MaxLength)
	out.MinItems = clonePtr(s.MinItems)
	out.MaxItems = clonePtr(s.MaxItems)

	out.Items = cloneSchema(s.Items)
	out.AdditionalProperties = cloneSchema(s.AdditionalProperties)
	out.Not = cloneSchema(s.Not)
	out.Required = slices.Clone(s.Required)
	out.Enum = slices.Clone(s.Enum)
	out.AllOf = cloneSchemas(s.AllOf)
	out.OneOf = cloneSchemas(s.OneOf)
	out.AnyOf = cloneSchemas(s.AnyOf)

	if s.Properties != nil {
		out.Properties = make(map[string]*Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = cloneSchema(prop)
		}
	}

	if s.Discriminator != nil {
		d := *s.Discriminator
		d.Mapping = maps.Clone(s.Discriminator.Mapping)
		out.Discriminator = &d
	}
	return &out
}

func cloneSchemas(list []*Schema) []*Schema {
	if list == nil {
		return nil
	}
	out := make([]*Schema, len(list))
	for i, s := range list {
		out[i] = cloneSchema(s)
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
