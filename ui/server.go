// Package ui renders a read-only HTML view of the parsed project: the list
// of source files with their issue counts and, per file, the source
// annotated with its issues and the parse tree.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/dhamidi/texls/latex/codebase"
	"github.com/dhamidi/texls/latex/parser"
)

//go:embed templates
var embeddedFS embed.FS

type Server struct {
	codebase  *codebase.Codebase
	templates *template.Template
	mux       *http.ServeMux
}

func NewServer(c *codebase.Codebase) (*Server, error) {
	tmpl, err := template.ParseFS(embeddedFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		codebase:  c,
		templates: tmpl,
		mux:       http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /f/{file...}", s.handleFile)
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, "template error: "+err.Error(), http.StatusInternalServerError)
	}
}

type FileSummary struct {
	Path     string
	Errors   int
	Tasks    int
	IsMaster bool
	Aborted  bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var files []FileSummary
	for _, path := range s.codebase.Paths() {
		f := s.codebase.GetFile(path)
		if f == nil {
			continue
		}
		files = append(files, FileSummary{
			Path:     s.codebase.Rel(path),
			Errors:   parser.IssueList(f.Issues).Count(parser.SeverityError),
			Tasks:    len(f.Tasks),
			IsMaster: f.Doc != nil && f.Doc.IsMaster(),
			Aborted:  f.Aborted(),
		})
	}
	s.render(w, "index.html", struct{ Files []FileSummary }{files})
}

// Line is one source line with the issues starting on it.
type Line struct {
	Number int
	Text   string
	Issues []parser.Issue
}

type FileViewData struct {
	Path   string
	Master string
	Lines  []Line
	Tree   string
}

func (s *Server) handleFile(w http.ResponseWriter, r *http.Request) {
	rel := r.PathValue("file")
	path := filepath.Join(s.codebase.RootDir(), filepath.FromSlash(rel))
	f := s.codebase.GetFile(path)
	if f == nil {
		http.Error(w, "file not found", http.StatusNotFound)
		return
	}

	data := FileViewData{Path: rel}
	if master, ok := s.codebase.MasterOf(path); ok && master != path {
		data.Master = s.codebase.Rel(master)
	}
	if f.Doc != nil {
		data.Tree = f.Doc.StringWithPositions()
	}

	for i, text := range strings.Split(f.Content, "\n") {
		data.Lines = append(data.Lines, Line{Number: i + 1, Text: text})
	}
	for _, issue := range s.codebase.Issues(path) {
		line := f.Lines.Position(issue.Start).Line
		if line < len(data.Lines) {
			data.Lines[line].Issues = append(data.Lines[line].Issues, issue)
		}
	}

	s.render(w, "file.html", data)
}
