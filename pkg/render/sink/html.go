package sink

import (
	"bytes"
	"html/template"
	"strconv"

	"github.com/matzehuels/okrdash/pkg/errors"
	"github.com/matzehuels/okrdash/pkg/render"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="generator" content="okrdash">
<meta name="document-id" content="{{.ID}}">
<title>{{.Title}}</title>
</head>
<body style="margin:0;padding:0;background:{{.Background}};font-family:{{.FontFamily}};">
<main style="max-width:{{.Width}}px;margin:0 auto;">
{{.SVG}}</main>
</body>
</html>
`))

type pageData struct {
	ID         string
	Title      string
	Background string
	FontFamily template.CSS
	Width      string
	SVG        template.HTML
}

// RenderHTML wraps doc in a standalone HTML page. The page references no
// external files.
func RenderHTML(doc *render.Document) ([]byte, error) {
	if err := doc.Theme.Validate(); err != nil {
		return nil, err
	}
	title := doc.Title
	if title == "" {
		title = "OKR Dashboard"
	}
	data := pageData{
		ID:         doc.ID.String(),
		Title:      title,
		Background: string(doc.Theme.Background),
		FontFamily: template.CSS(doc.Theme.FontFamily),
		Width:      strconv.FormatFloat(doc.Width, 'f', -1, 64),
		SVG:        template.HTML(doc.SVG),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render html page")
	}
	return buf.Bytes(), nil
}
