package openapi

import (
	"bytes"
	"html/template"
	"net/url"
)

const swaggerUIVersion = "5.17.14"

var uiTemplate = template.Must(template.New("swagger-ui").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@{{.Version}}/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@{{.Version}}/swagger-ui-bundle.js" crossorigin></script>
  <script>
    window.onload = function () {
      window.ui = SwaggerUIBundle({
        url: {{.DocumentURL}},
        dom_id: "#swagger-ui",
        deepLinking: true
      });
    };
  </script>
</body>
</html>
`))

// DocumentURL is the address of the JSON document under serverURL, carrying
// the document key as the code query parameter when one is set.
func DocumentURL(serverURL, key string) string {
	u := serverURL + "/swagger.json"
	if key != "" {
		u += "?" + url.Values{"code": {key}}.Encode()
	}
	return u
}

// RenderUI renders a Swagger UI page that loads documentURL.
func RenderUI(title, documentURL string) ([]byte, error) {
	var buf bytes.Buffer
	err := uiTemplate.Execute(&buf, struct {
		Title       string
		Version     string
		DocumentURL string
	}{
		Title:       title,
		Version:     swaggerUIVersion,
		DocumentURL: documentURL,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
