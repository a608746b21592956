package httpapi

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/valyala/bytebufferpool"

	"github.com/matchboard/matchboard/web"
)

// pageRenderer executes the embedded HTML templates through a pooled
// buffer so a mid-render failure never leaves a half-written response.
type pageRenderer struct {
	templates *template.Template
}

func newPageRenderer() (*pageRenderer, error) {
	templates, err := template.ParseFS(web.Templates, "templates/*.html.tmpl")
	if err != nil {
		return nil, err
	}
	return &pageRenderer{templates: templates}, nil
}

func (p *pageRenderer) Render(ctx context.Context, w http.ResponseWriter, name string, data any) error {
	ctx, span := startSpan(ctx, "httpapi.render")
	defer span.End()
	_ = ctx

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := p.templates.ExecuteTemplate(buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := w.Write(buf.Bytes())
	return err
}

func staticAssetHandler() (http.Handler, error) {
	assets, err := fs.Sub(web.Static, "static")
	if err != nil {
		return nil, err
	}
	return http.StripPrefix("/static/", http.FileServerFS(assets)), nil
}
