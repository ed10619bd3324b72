package openapi

import (
	"slices"
)

// MergeOperation merges a partial Operation Object into the fragment of an
// operation identity:
//
//   - Summary, Description, OperationID, ExternalDocs, Tags: overwrite when set
//   - Deprecated: one-way latch
//   - RequestBody: overwrite when set
//   - Responses: merged per status key, later keys overwrite
//   - Parameters, Security, Servers: append in call order
//
// Fields left at their zero value do not touch the fragment. The partial is
// deep-copied; later changes to it do not reach the store.
func (s *Store) MergeOperation(owner, operation string, partial *Operation) error {
	if partial == nil {
		partial = &Operation{}
	}
	return s.update(owner, operation, func(op *Operation) {
		if partial.Summary != "" {
			op.Summary = partial.Summary
		}
		if partial.Description != "" {
			op.Description = partial.Description
		}
		if partial.OperationID != "" {
			op.OperationID = partial.OperationID
		}
		if partial.ExternalDocs != nil {
			op.ExternalDocs = cloneExternalDocs(partial.ExternalDocs)
		}
		if len(partial.Tags) > 0 {
			op.Tags = slices.Clone(partial.Tags)
		}
		if partial.Deprecated {
			op.Deprecated = true
		}
		if partial.RequestBody != nil {
			op.RequestBody = cloneRequestBody(partial.RequestBody)
		}
		for status, resp := range partial.Responses {
			op.Responses[status] = cloneResponse(resp)
		}
		for _, p := range partial.Parameters {
			op.Parameters = append(op.Parameters, cloneParameter(p))
		}
		for _, req := range partial.Security {
			op.Security = append(op.Security, cloneSecurityRequirement(req))
		}
		op.Servers = append(op.Servers, cloneServers(partial.Servers)...)
	})
}

// AppendParameter appends a parameter to the operation. Parameters keep
// call order and are not de-duplicated by name and location.
//
// See: https://spec.openapis.org/oas/v3.0.3#parameter-object
func (s *Store) AppendParameter(owner, operation string, param *Parameter) error {
	return s.update(owner, operation, func(op *Operation) {
		op.Parameters = append(op.Parameters, cloneParameter(param))
	})
}

// SetRequestBody sets the request body of the operation. The last call wins.
//
// See: https://spec.openapis.org/oas/v3.0.3#request-body-object
func (s *Store) SetRequestBody(owner, operation string, body *RequestBody) error {
	return s.update(owner, operation, func(op *Operation) {
		op.RequestBody = cloneRequestBody(body)
	})
}

// SetResponse stores the response for a status key ("200", "default", ...),
// replacing any earlier response for the same key.
//
// See: https://spec.openapis.org/oas/v3.0.3#responses-object
func (s *Store) SetResponse(owner, operation, status string, resp *Response) error {
	return s.update(owner, operation, func(op *Operation) {
		op.Responses[status] = cloneResponse(resp)
	})
}

// AppendSecurity appends the single-scheme requirement {scheme: scopes} to
// the operation. Separate calls produce alternative requirements.
//
// See: https://spec.openapis.org/oas/v3.0.3#security-requirement-object
func (s *Store) AppendSecurity(owner, operation, scheme string, scopes ...string) error {
	scopes = slices.Clone(scopes)
	if scopes == nil {
		scopes = []string{}
	}
	return s.update(owner, operation, func(op *Operation) {
		op.Security = append(op.Security, SecurityRequirement{scheme: scopes})
	})
}
