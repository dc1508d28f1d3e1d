// Package htmlreport renders a review tree into a standalone HTML document
// suitable for archiving or printing. The markup is self-contained: inline
// CSS, no scripts, no external references.
package htmlreport

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/carbonlens/ghgreview/internal/model"
)

var pageTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"statusClass": statusClass,
	"statusLabel": statusLabel,
	"formatValue": formatValue,
}).Parse(pageHTML))

type pageData struct {
	Title       string
	GeneratedAt string
	Sections    []model.RenderNode
}

// Render produces the full HTML document for tree.
func Render(title string, tree *model.RenderTree) ([]byte, error) {
	if tree == nil {
		tree = &model.RenderTree{}
	}
	data := pageData{
		Title:       title,
		GeneratedAt: time.Now().UTC().Format("2006-01-02 15:04 UTC"),
		Sections:    tree.Sections,
	}
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render report template: %w", err)
	}
	return buf.Bytes(), nil
}

func statusClass(s model.ChangeType) string {
	switch s {
	case model.ChangeAdded:
		return "added"
	case model.ChangeDeleted:
		return "deleted"
	case model.ChangeModified:
		return "modified"
	}
	return ""
}

func statusLabel(s model.ChangeType) string {
	switch s {
	case model.ChangeAdded:
		return "Added"
	case model.ChangeDeleted:
		return "Deleted"
	case model.ChangeModified:
		return "Modified"
	}
	return ""
}

func formatValue(v any) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%v", v)
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Georgia, serif; margin: 2.5rem auto; max-width: 60rem; color: #1a1a1a; }
h1 { font-size: 1.5rem; border-bottom: 2px solid #1a1a1a; padding-bottom: 0.4rem; }
h2 { font-size: 1.15rem; margin-top: 2rem; }
.meta { color: #555; font-size: 0.85rem; }
ul.tree { list-style: none; padding-left: 1.25rem; border-left: 1px solid #ddd; }
li.node { margin: 0.25rem 0; }
.status { font-size: 0.75rem; font-weight: bold; padding: 0.05rem 0.4rem; border-radius: 3px; margin-left: 0.4rem; }
.status.added { background: #e3f4e3; color: #1d6b1d; }
.status.deleted { background: #f8e1e1; color: #8c1c1c; }
.status.modified { background: #fdf3d7; color: #7a5c00; }
.values { font-family: "Courier New", monospace; font-size: 0.85rem; }
.values .old { color: #8c1c1c; text-decoration: line-through; }
.values .new { color: #1d6b1d; }
.textdiff { font-family: "Courier New", monospace; font-size: 0.85rem; background: #f6f6f6; padding: 0.3rem 0.5rem; display: block; }
.empty { color: #555; font-style: italic; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">Generated {{.GeneratedAt}}</p>
{{if .Sections}}
{{range $s := .Sections}}
<h2>{{$s.Title}}{{with statusLabel $s.Status}} <span class="status {{statusClass $s.Status}}">{{.}}</span>{{end}}</h2>
{{template "children" $s.Children}}
{{end}}
{{else}}
<p class="empty">No changes detected.</p>
{{end}}
</body>
</html>
{{define "children"}}
{{if .}}
<ul class="tree">
{{range $n := .}}
<li class="node">{{$n.Title}}{{with statusLabel $n.Status}} <span class="status {{statusClass $n.Status}}">{{.}}</span>{{end}}
{{if $n.TextDiff}} <span class="textdiff">{{$n.TextDiff}}</span>
{{else if or $n.OldValue $n.NewValue}} <span class="values"><span class="old">{{formatValue $n.OldValue}}</span> &rarr; <span class="new">{{formatValue $n.NewValue}}</span></span>{{end}}
{{template "children" $n.Children}}
</li>
{{end}}
</ul>
{{end}}
{{end}}`
