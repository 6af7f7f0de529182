// Package web embeds the HTML templates of the site.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"

	"github.com/gin-contrib/multitemplate"
)

//go:embed templates
var templatesFS embed.FS

const viewsDir = "templates/views"

// Views lists every page template by the name handlers render it with
var Views = []string{
	"index.html",
	"group.html",
	"profile.html",
	"follow.html",
	"post.html",
	"new.html",
	"misc/404.html",
	"misc/500.html",
	"about/author.html",
	"about/tech.html",
	"auth/signup.html",
	"auth/login.html",
	"auth/logged_out.html",
	"admin/index.html",
	"admin/groups.html",
	"admin/posts.html",
	"admin/comments.html",
	"admin/follows.html",
}

// Renderer assembles every view with the layout, includes and components
func Renderer(funcMap template.FuncMap) (multitemplate.Renderer, error) {
	shared, err := sharedFiles()
	if err != nil {
		return nil, err
	}

	r := multitemplate.NewRenderer()
	for _, view := range Views {
		files := append(append([]string{}, shared...), path.Join(viewsDir, view))
		tmpl, err := template.New(path.Base(files[0])).Funcs(funcMap).ParseFS(templatesFS, files...)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", view, err)
		}
		r.Add(view, tmpl)
	}
	return r, nil
}

// sharedFiles returns the layout first, then includes and components
func sharedFiles() ([]string, error) {
	var files []string
	for _, pattern := range []string{
		"templates/layouts/*.html",
		"templates/includes/*.html",
		"templates/components/*.html",
	} {
		matches, err := fs.Glob(templatesFS, pattern)
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no layout templates found")
	}
	return files, nil
}
