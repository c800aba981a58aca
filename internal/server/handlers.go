package server

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	apierrors "github.com/ojroom/preview/internal/errors"
	"github.com/ojroom/preview/internal/render"
)

type homePage struct {
	Text      string
	ClassName string
}

type previewPage struct {
	Text      string
	ClassName string
	Preview   template.HTML
	Blocks    int
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return s.pages.ExecuteTemplate(w, "home.html", homePage{})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody())
	if err := r.ParseForm(); err != nil {
		return requestError(err)
	}

	req := render.Request{
		Text:      r.PostForm.Get("text"),
		ClassName: strings.TrimSpace(r.PostForm.Get("class")),
	}
	res := s.pipeline.Render(req)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return s.pages.ExecuteTemplate(w, "preview.html", previewPage{
		Text:      req.Text,
		ClassName: req.ClassName,
		// Pipeline output is sanitized restricted markup.
		Preview: template.HTML(res.HTML),
		Blocks:  len(res.Tree.Children),
	})
}

func (s *Server) handleAPIRender(w http.ResponseWriter, r *http.Request) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody()))
	if err != nil {
		return requestError(err)
	}
	if !gjson.ValidBytes(body) {
		return apierrors.BadRequest("body is not valid JSON")
	}

	text := gjson.GetBytes(body, "text")
	if !text.Exists() {
		return apierrors.BadRequest("missing field: text")
	}
	if text.Type != gjson.String {
		return apierrors.BadRequest("field text must be a string")
	}

	req := render.Request{
		Text:      text.String(),
		ClassName: gjson.GetBytes(body, "className").String(),
	}
	format := gjson.GetBytes(body, "format").String()
	if format == "" {
		format = "html"
	}

	switch format {
	case "html":
		writeJSON(w, http.StatusOK, map[string]any{"html": s.pipeline.HTML(req)})
	case "tree":
		writeJSON(w, http.StatusOK, map[string]any{"tree": s.pipeline.Tree(req)})
	case "all":
		res := s.pipeline.Render(req)
		writeJSON(w, http.StatusOK, map[string]any{"html": res.HTML, "tree": res.Tree})
	default:
		return apierrors.BadRequest(fmt.Sprintf("unknown format %q (want html, tree or all)", format))
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err := w.Write([]byte("ok"))
	return err
}

func (s *Server) maxBody() int64 {
	if s.cfg.MaxBodyBytes > 0 {
		return s.cfg.MaxBodyBytes
	}
	return 1 << 20
}

// requestError maps body read failures onto route errors.
func requestError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apierrors.NewRouteError(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("body exceeds %d bytes", tooLarge.Limit))
	}
	return apierrors.BadRequest(fmt.Sprintf("unreadable body: %v", err))
}
