package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/dhamidi/texls/format"
	"github.com/dhamidi/texls/latex/completion"
	"github.com/dhamidi/texls/latex/parser"
)

type sourceRequest struct {
	Source string `json:"source"`
	File   string `json:"file"`
}

type parseResponse struct {
	Tree     *format.JSONNode   `json:"tree"`
	Issues   []format.JSONIssue `json:"issues"`
	Tasks    []format.JSONIssue `json:"tasks"`
	IsMaster bool               `json:"is_master"`
}

type abortResponse struct {
	Error  string             `json:"error"`
	Issue  format.JSONIssue   `json:"issue"`
	Issues []format.JSONIssue `json:"issues"`
}

type completeRequest struct {
	Source string `json:"source"`
	// Offset is the cursor as a character offset; the end of the source
	// when absent.
	Offset *int `json:"offset"`
}

type completionItem struct {
	Label      string `json:"label"`
	Kind       string `json:"kind"`
	InsertText string `json:"insert_text"`
	Typed      string `json:"typed"`
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req sourceRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	var issues parser.IssueList
	doc, err := parser.Parse(req.Source, req.File, &issues)
	if err != nil {
		var abort *parser.AbortError
		if !errors.As(err, &abort) {
			jsonError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusUnprocessableEntity, abortResponse{
			Error:  abort.Error(),
			Issue:  format.IssuesJSON([]parser.Issue{abort.Issue})[0],
			Issues: format.IssuesJSON(issues),
		})
		return
	}

	writeJSON(w, http.StatusOK, parseResponse{
		Tree:     format.TreeJSON(&doc.Tree),
		Issues:   format.IssuesJSON(issues),
		Tasks:    format.IssuesJSON(doc.Tasks()),
		IsMaster: doc.IsMaster(),
	})
}

func (s *Server) handleComplete(w http.ResponseWriter, r *http.Request) {
	var req completeRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	runes := []rune(req.Source)
	offset := len(runes)
	if req.Offset != nil {
		if *req.Offset < 0 || *req.Offset > len(runes) {
			jsonError(w, "offset out of range", http.StatusBadRequest)
			return
		}
		offset = *req.Offset
	}

	var ctx completion.Context
	if doc, err := parser.Parse(req.Source, "", nil); err == nil {
		ctx = completion.Harvest(doc)
	}

	items := []completionItem{}
	for _, item := range s.engine.Complete(ctx, string(runes[:offset])) {
		items = append(items, completionItem{
			Label:      item.Label,
			Kind:       item.Kind.String(),
			InsertText: item.InsertText,
			Typed:      item.Typed,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

// handleTasks reads the comments straight from the token stream, so tasks
// are reported even for sources whose parse would abort.
func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	var req sourceRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	var comments []parser.Comment
	for tok := range parser.Tokenize(req.Source) {
		if tok.Kind == parser.TokenComment {
			comments = append(comments, parser.Comment{Text: tok.Literal, Offset: tok.Offset})
		}
	}
	tasks := parser.ExtractTasks(comments)
	for i := range tasks {
		tasks[i].File = req.File
	}
	writeJSON(w, http.StatusOK, map[string]any{"tasks": format.IssuesJSON(tasks)})
}

func decodeRequest(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxSourceBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("encode response: %s", err)
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
