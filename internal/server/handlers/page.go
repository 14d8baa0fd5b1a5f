package handlers

import (
	"bytes"
	"html/template"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { max-width: 700px; margin: auto; font-family: sans-serif; padding: 20px; }
pre { background: #f4f4f4; padding: 10px; overflow-x: auto; }
code { background: #f4f4f4; padding: 2px 4px; font-family: monospace; }
pre code { padding: 0; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 4px 8px; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

type page struct {
	Title string
	Body  template.HTML
}

// RenderPage wraps an HTML fragment in a complete document titled with
// the resolved path. The title is escaped; the fragment is inserted as is.
func RenderPage(title string, fragment []byte) ([]byte, error) {
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, page{
		Title: title,
		Body:  template.HTML(fragment), //nolint:gosec // fragment is converter output, not request data
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
