package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// IndexPage 首页模板名
const IndexPage = "index.html"

// Load 解析内嵌的页面模板
func Load() (*template.Template, error) {
	return template.ParseFS(files, "*.html")
}
