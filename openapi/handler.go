package openapi

import (
	"fmt"
	"html"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// DocsUI selects which interactive documentation UI to serve.
type DocsUI int

const (
	DocsSwaggerUI DocsUI = iota
	DocsRapiDoc
	DocsRedoc
)

// Endpoint names used for metrics labels.
const (
	EndpointUI   = "ui"
	EndpointJSON = "json"
	EndpointYAML = "yaml"
	EndpointInit = "init"
)

// HandleConfig configures the documentation endpoints. UI options are
// passed through to the page untouched.
type HandleConfig struct {
	// UI selects the interactive docs UI (default: DocsSwaggerUI).
	UI DocsUI

	// Title overrides the HTML page title (default: shell info.title).
	Title string

	// Schemas is the external schema converter handed to Assemble.
	Schemas SchemaFunc

	// SwaggerUIConfig provides additional SwaggerUIBundle options, rendered
	// as object properties next to url and dom_id, e.g.
	// {"docExpansion": "none", "deepLinking": true}.
	//
	// See: https://swagger.io/docs/open-source-tools/swagger-ui/usage/configuration/
	SwaggerUIConfig map[string]any

	// DisableYAML drops the <docURL>/yaml endpoint.
	DisableYAML bool

	// Reload assembles the document on every request instead of once on
	// first use.
	Reload bool

	// Metrics records builds and requests when set.
	Metrics *Metrics

	// Logger receives assembly and encoding failures (default: no-op).
	Logger *zerolog.Logger
}

// Docs assembles the document for serving and renders the UI assets. It is
// shared by the net/http and fiber serving adapters.
type Docs struct {
	store  *Store
	shell  *Document
	cfg    HandleConfig
	logger zerolog.Logger

	basePath string

	once   sync.Once
	cached *rendered
	err    error
}

// rendered is one assembled and encoded document.
type rendered struct {
	doc      *Document
	jsonData []byte
	yamlData []byte
}

// NewDocs prepares the documentation endpoints for docURL. The config
// parameter is optional; pass nil for defaults.
func NewDocs(store *Store, docURL string, shell *Document, cfg *HandleConfig) *Docs {
	if cfg == nil {
		cfg = &HandleConfig{}
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Docs{
		store:    store,
		shell:    shell,
		cfg:      *cfg,
		logger:   logger,
		basePath: strings.TrimRight(docURL, "/"),
	}
}

// UIPath returns the path of the docs UI page.
func (d *Docs) UIPath() string {
	if d.basePath == "" {
		return "/"
	}
	return d.basePath
}

// JSONPath returns the path of the JSON document endpoint.
func (d *Docs) JSONPath() string {
	return d.basePath + "/json"
}

// YAMLPath returns the path of the YAML document endpoint, or "" when
// disabled.
func (d *Docs) YAMLPath() string {
	if d.cfg.DisableYAML {
		return ""
	}
	return d.basePath + "/yaml"
}

// InitPath returns the path of the UI bootstrap script.
func (d *Docs) InitPath() string {
	return d.basePath + "/swagger-ui-init.js"
}

// Observe records a request for the named endpoint.
func (d *Docs) Observe(endpoint string) {
	d.cfg.Metrics.observeRequest(endpoint)
}

// Document returns the assembled document.
func (d *Docs) Document() (*Document, error) {
	r, err := d.render()
	if err != nil {
		return nil, err
	}
	return r.doc, nil
}

// JSON returns the assembled document encoded as JSON.
func (d *Docs) JSON() ([]byte, error) {
	r, err := d.render()
	if err != nil {
		return nil, err
	}
	return r.jsonData, nil
}

// YAML returns the assembled document encoded as YAML.
func (d *Docs) YAML() ([]byte, error) {
	r, err := d.render()
	if err != nil {
		return nil, err
	}
	return r.yamlData, nil
}

func (d *Docs) render() (*rendered, error) {
	if d.cfg.Reload {
		return d.build()
	}
	d.once.Do(func() {
		d.cached, d.err = d.build()
	})
	return d.cached, d.err
}

func (d *Docs) build() (r *rendered, err error) {
	defer func() {
		if rv := recover(); rv != nil {
			r, err = nil, fmt.Errorf("openapi: assemble document: %v", rv)
		}
		if err != nil {
			d.logger.Error().Err(err).Msg("failed to build OpenAPI document")
		}
	}()

	doc := d.store.Assemble(d.shell, WithSchemas(d.cfg.Schemas))
	d.cfg.Metrics.observeBuild()

	r = &rendered{doc: doc}
	if r.jsonData, err = MarshalJSON(doc); err != nil {
		return nil, err
	}
	if !d.cfg.DisableYAML {
		if r.yamlData, err = MarshalYAML(doc); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Page renders the interactive documentation HTML page.
func (d *Docs) Page() []byte {
	title := d.cfg.Title
	if title == "" && d.shell != nil {
		title = d.shell.Info.Title
	}

	switch d.cfg.UI {
	case DocsRapiDoc:
		return []byte(rapidocTemplate(title, d.JSONPath()))
	case DocsRedoc:
		return []byte(redocTemplate(title, d.JSONPath()))
	default:
		return []byte(swaggerUITemplate(title, d.InitPath()))
	}
}

// InitScript renders the Swagger UI bootstrap script. It only points the
// UI at the JSON endpoint; it does not embed the document.
func (d *Docs) InitScript() []byte {
	var extra string
	if len(d.cfg.SwaggerUIConfig) > 0 {
		keys := make([]string, 0, len(d.cfg.SwaggerUIConfig))
		for k := range d.cfg.SwaggerUIConfig {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var buf strings.Builder
		for _, k := range keys {
			v, err := json.Marshal(d.cfg.SwaggerUIConfig[k])
			if err != nil {
				continue
			}
			fmt.Fprintf(&buf, ", %q: %s", k, v)
		}
		extra = buf.String()
	}

	return fmt.Appendf(nil, `window.onload = function () {
  window.ui = SwaggerUIBundle({url: %q, dom_id: "#swagger-ui"%s});
};
`, d.JSONPath(), extra)
}

// Handle registers the documentation endpoints on a chi router:
//
//	<docURL>                    - interactive HTML docs (also <docURL>/)
//	<docURL>/json               - assembled document as JSON
//	<docURL>/yaml               - assembled document as YAML (unless DisableYAML)
//	<docURL>/swagger-ui-init.js - Swagger UI bootstrap script
//
// The config parameter is optional; pass nil for defaults:
//
//	store.Handle(r, "/docs", shell, nil)
func (s *Store) Handle(r chi.Router, docURL string, shell *Document, cfg *HandleConfig) *Docs {
	d := NewDocs(s, docURL, shell, cfg)

	page := func(w http.ResponseWriter, _ *http.Request) {
		d.Observe(EndpointUI)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(d.Page())
	}
	r.Get(d.UIPath(), page)
	if d.basePath != "" {
		r.Get(d.basePath+"/", page)
	}

	r.Get(d.JSONPath(), func(w http.ResponseWriter, _ *http.Request) {
		d.Observe(EndpointJSON)
		data, err := d.JSON()
		if err != nil {
			http.Error(w, "failed to serialize OpenAPI document as JSON", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	})

	if yamlPath := d.YAMLPath(); yamlPath != "" {
		r.Get(yamlPath, func(w http.ResponseWriter, _ *http.Request) {
			d.Observe(EndpointYAML)
			data, err := d.YAML()
			if err != nil {
				http.Error(w, "failed to serialize OpenAPI document as YAML", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/yaml")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(data)
		})
	}

	r.Get(d.InitPath(), func(w http.ResponseWriter, _ *http.Request) {
		d.Observe(EndpointInit)
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(d.InitScript())
	})

	return d
}

func swaggerUITemplate(title, initPath string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist/swagger-ui-bundle.js"></script>
<script src=%q></script>
</body>
</html>`, html.EscapeString(title), initPath)
}

func rapidocTemplate(title, specPath string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<script type="module" src="https://unpkg.com/rapidoc/dist/rapidoc-min.js"></script>
</head>
<body>
<rapi-doc spec-url=%q></rapi-doc>
</body>
</html>`, html.EscapeString(title), specPath)
}

func redocTemplate(title, specPath string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
</head>
<body>
<redoc spec-url=%q></redoc>
<script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
</body>
</html>`, html.EscapeString(title), specPath)
}
