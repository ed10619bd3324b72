package openapi

// DefaultOAuth2TokenURL is the token endpoint of the default OAuth2 flow.
const DefaultOAuth2TokenURL = "/oauth/token"

// SchemeKind identifies one of the built-in security scheme shapes.
type SchemeKind int

const (
	SchemeBearer SchemeKind = iota
	SchemeBasic
	SchemeAPIKey
	SchemeCookie
	SchemeOAuth2
)

// DefaultName returns the component name used when a security call does
// not name its scheme.
func (k SchemeKind) DefaultName() string {
	switch k {
	case SchemeBearer:
		return "bearerAuth"
	case SchemeBasic:
		return "basicAuth"
	case SchemeAPIKey:
		return "api_key"
	case SchemeCookie:
		return "cookieAuth"
	case SchemeOAuth2:
		return "oauth2"
	}
	return ""
}

// SecurityScheme returns the components definition matching the kind.
// OAuth2 schemes get a client credentials flow against DefaultOAuth2TokenURL
// with no declared scopes; callers that need other flows pass them to
// DocumentBuilder.AddOAuth2.
//
// See: https://spec.openapis.org/oas/v3.0.3#security-scheme-object
func (k SchemeKind) SecurityScheme() *SecurityScheme {
	switch k {
	case SchemeBearer:
		return &SecurityScheme{Type: "http", Scheme: "bearer", BearerFormat: "JWT"}
	case SchemeBasic:
		return &SecurityScheme{Type: "http", Scheme: "basic"}
	case SchemeAPIKey:
		return &SecurityScheme{Type: "apiKey", Name: "X-API-Key", In: "header"}
	case SchemeCookie:
		return &SecurityScheme{Type: "apiKey", Name: "session", In: "cookie"}
	case SchemeOAuth2:
		return &SecurityScheme{Type: "oauth2", Flows: &OAuthFlows{
			ClientCredentials: &OAuthFlow{TokenURL: DefaultOAuth2TokenURL, Scopes: map[string]string{}},
		}}
	}
	return nil
}

// AddSecurity appends a requirement for a built-in scheme kind to the
// operation. An empty name selects the kind's default name.
func (s *Store) AddSecurity(owner, operation string, kind SchemeKind, name string, scopes ...string) error {
	if name == "" {
		name = kind.DefaultName()
	}
	return s.AppendSecurity(owner, operation, name, scopes...)
}
