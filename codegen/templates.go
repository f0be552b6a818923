package codegen

import (
	"embed"
	"strconv"
	"text/template"
)

//go:embed _templates/*.go.tmpl
var embeddedTemplatesFS embed.FS

// Template returns the embedded template used for code generation. The
// main template renders the file; struct.go.tmpl and sum.go.tmpl render
// declaration fragments.
func Template() *template.Template {
	t := template.New("main.go.tmpl").Option("missingkey=error").Funcs(template.FuncMap{
		"quote": strconv.Quote,
	})
	return template.Must(t.ParseFS(embeddedTemplatesFS, "_templates/*"))
}
