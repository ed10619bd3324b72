package openapi

import "maps"

// DocumentBuilder assembles the document shell passed to Assemble: the
// top-level fields the store does not compute.
//
//	shell := openapi.NewDocumentBuilder().
//	    SetTitle("Pet Store").
//	    SetVersion("1.0.0").
//	    AddServer(openapi.Server{URL: "https://api.example.com"}).
//	    AddBearerAuth().
//	    Build()
type DocumentBuilder struct {
	doc             Document
	securitySchemes map[string]*SecurityScheme
}

// NewDocumentBuilder creates a builder with the default OpenAPI version.
func NewDocumentBuilder() *DocumentBuilder {
	return &DocumentBuilder{
		doc: Document{OpenAPI: DefaultOpenAPIVersion},
	}
}

// SetOpenAPIVersion overrides the openapi field.
func (b *DocumentBuilder) SetOpenAPIVersion(version string) *DocumentBuilder {
	b.doc.OpenAPI = version
	return b
}

// SetTitle sets info.title.
func (b *DocumentBuilder) SetTitle(title string) *DocumentBuilder {
	b.doc.Info.Title = title
	return b
}

// SetDescription sets info.description.
func (b *DocumentBuilder) SetDescription(description string) *DocumentBuilder {
	b.doc.Info.Description = description
	return b
}

// SetVersion sets info.version.
func (b *DocumentBuilder) SetVersion(version string) *DocumentBuilder {
	b.doc.Info.Version = version
	return b
}

// SetTermsOfService sets info.termsOfService.
func (b *DocumentBuilder) SetTermsOfService(url string) *DocumentBuilder {
	b.doc.Info.TermsOfService = url
	return b
}

// SetContact sets info.contact.
func (b *DocumentBuilder) SetContact(name, url, email string) *DocumentBuilder {
	b.doc.Info.Contact = &Contact{Name: name, URL: url, Email: email}
	return b
}

// SetLicense sets info.license.
func (b *DocumentBuilder) SetLicense(name, url string) *DocumentBuilder {
	b.doc.Info.License = &License{Name: name, URL: url}
	return b
}

// AddServer appends a server.
func (b *DocumentBuilder) AddServer(server Server) *DocumentBuilder {
	b.doc.Servers = append(b.doc.Servers, server)
	return b
}

// SetExternalDocs sets the document-level external documentation link.
func (b *DocumentBuilder) SetExternalDocs(url, description string) *DocumentBuilder {
	b.doc.ExternalDocs = &ExternalDocs{URL: url, Description: description}
	return b
}

// AddSecurityRequirement appends a document-level security requirement.
func (b *DocumentBuilder) AddSecurityRequirement(req SecurityRequirement) *DocumentBuilder {
	b.doc.Security = append(b.doc.Security, req)
	return b
}

// AddSecurityScheme registers a security scheme in components.
func (b *DocumentBuilder) AddSecurityScheme(name string, scheme *SecurityScheme) *DocumentBuilder {
	if b.securitySchemes == nil {
		b.securitySchemes = make(map[string]*SecurityScheme)
	}
	b.securitySchemes[name] = scheme
	return b
}

func (b *DocumentBuilder) addKind(kind SchemeKind, name []string) *DocumentBuilder {
	n := kind.DefaultName()
	if len(name) > 0 && name[0] != "" {
		n = name[0]
	}
	return b.AddSecurityScheme(n, kind.SecurityScheme())
}

// AddBearerAuth registers an HTTP bearer scheme, named "bearerAuth" unless
// a name is given.
func (b *DocumentBuilder) AddBearerAuth(name ...string) *DocumentBuilder {
	return b.addKind(SchemeBearer, name)
}

// AddBasicAuth registers an HTTP basic scheme, named "basicAuth" unless a
// name is given.
func (b *DocumentBuilder) AddBasicAuth(name ...string) *DocumentBuilder {
	return b.addKind(SchemeBasic, name)
}

// AddAPIKey registers a header API key scheme, named "api_key" unless a
// name is given.
func (b *DocumentBuilder) AddAPIKey(name ...string) *DocumentBuilder {
	return b.addKind(SchemeAPIKey, name)
}

// AddCookieAuth registers a cookie API key scheme, named "cookieAuth"
// unless a name is given.
func (b *DocumentBuilder) AddCookieAuth(name ...string) *DocumentBuilder {
	return b.addKind(SchemeCookie, name)
}

// AddOAuth2 registers an OAuth2 scheme with the given flows, named "oauth2".
func (b *DocumentBuilder) AddOAuth2(flows *OAuthFlows) *DocumentBuilder {
	scheme := SchemeOAuth2.SecurityScheme()
	if flows != nil {
		scheme.Flows = flows
	}
	return b.AddSecurityScheme(SchemeOAuth2.DefaultName(), scheme)
}

// Build returns the document shell. The builder can keep being used; the
// returned document does not share its security scheme map.
func (b *DocumentBuilder) Build() *Document {
	doc := b.doc
	doc.Servers = append([]Server(nil), b.doc.Servers...)
	doc.Security = append([]SecurityRequirement(nil), b.doc.Security...)
	if len(b.securitySchemes) > 0 {
		doc.Components = &Components{SecuritySchemes: maps.Clone(b.securitySchemes)}
	}
	return &doc
}
