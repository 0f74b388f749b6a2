package apidocs

import (
	"bytes"
	"fmt"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"html/template"
	"net/http"
	"path"
)

type Opts func(*config)

type config struct {
	// SpecURL the url to find the spec for
	SpecURL string
	// When this return value is false, 403 will be responsed.
	Authorizer func(*http.Request) bool
}

func WithAuthorizer(authorizer func(*http.Request) bool) Opts {
	return func(cfg *config) {
		cfg.Authorizer = authorizer
	}
}

func prepare(basePath string, cfg *config, doc *openapi3.T) (string, string, []byte, error) {
	docPath := path.Join(basePath, "apidocs")

	// html
	tmpl := template.Must(template.New("apidoc").Parse(pageTemplate))
	buf := bytes.NewBuffer(nil)
	_ = tmpl.Execute(buf, cfg)
	uiHTML := buf.String()

	// json
	responseJSON, err := doc.MarshalJSON()
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to marshal openapi document: %w", err)
	}

	return docPath, uiHTML, responseJSON, nil
}

func strIn(target string, source ...string) bool {
	for _, s := range source {
		if target == s {
			return true
		}
	}

	return false
}

// Doc 在 basePath 下提供 API 参考页面与 OpenAPI 文档（JSON）
func Doc(basePath string, doc *openapi3.T, opts ...Opts) (echo.MiddlewareFunc, error) {
	cfg := &config{
		SpecURL: path.Join(basePath, "apispec.json"),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	docPath, uiHTML, responseJSON, err := prepare(basePath, cfg, doc)
	if err != nil {
		return nil, err
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			reqPath := c.Request().URL.Path
			if strIn(reqPath, basePath, docPath, cfg.SpecURL) {
				if cfg.Authorizer != nil && !cfg.Authorizer(c.Request()) {
					return c.String(http.StatusForbidden, http.StatusText(http.StatusForbidden))
				}

				switch reqPath {
				case docPath:
					return c.HTML(http.StatusOK, uiHTML)
				case cfg.SpecURL:
					return c.JSONBlob(http.StatusOK, responseJSON)
				case basePath:
					return c.Redirect(http.StatusFound, docPath)
				}
			}

			if next == nil {
				return c.String(http.StatusNotFound, fmt.Sprintf("%q not found", reqPath))
			}

			return next(c)
		}
	}, nil
}

const pageTemplate = `
<!DOCTYPE html>
<html lang="en">
  <head>
    <title>API documentation</title>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1" />
  </head>

  <body>
    <script id="api-reference" data-url="{{ .SpecURL }}"></script>

    <script src="https://cdnjs.cloudflare.com/ajax/libs/scalar-api-reference/1.25.99/standalone.min.js" integrity="sha512-ai3lOYZ5efNXMYwnqhz0mnCaImbqfwLE1VCx9Y9nhB3OJX4/uegjIAoQtJHy3SILHp/gS1OlPCIeNFPZT5i2WQ==" crossorigin="anonymous" referrerpolicy="no-referrer"></script>
  </body>
</html>`
