package codebase

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/texls/latex/completion"
	"github.com/dhamidi/texls/latex/parser"
	"github.com/dhamidi/texls/project"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "texls"

type LSPServer struct {
	codebase *Codebase
	watcher  *FileWatcher
	handler  protocol.Handler
	server   *server.Server
	version  string
	notify   glsp.NotifyFunc
	cancel   context.CancelFunc
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		version: version,
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentCompletion: ls.textDocumentCompletion,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) RunTCP(address string) error {
	return ls.server.RunTCP(address)
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	proj, err := project.LoadFrom(rootDir)
	if err != nil {
		log.Errorf("loading project: %s; using defaults", err)
		proj = &project.Project{RootDir: rootDir, Config: project.DefaultConfig()}
	}
	ls.codebase = New(proj)

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{`\`, "{", ","},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

// notify is only written here, before the watcher goroutine starts.
func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	ls.notify = ctx.Notify
	if err := ls.codebase.ScanAll(); err != nil {
		log.Errorf("scan: %s", err)
	}

	watchCtx, cancel := context.WithCancel(context.Background())
	ls.cancel = cancel
	ls.watcher = NewFileWatcher(ls.codebase)
	ls.watcher.OnUpdate = ls.publishDiagnostics
	if err := ls.watcher.Start(watchCtx); err != nil {
		log.Errorf("watcher disabled: %s", err)
	}
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.cancel != nil {
		ls.cancel()
	}
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.codebase.SetOpen(path, true)
	ls.codebase.UpdateFile(path, params.TextDocument.Text)
	ls.publishDiagnostics(path)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.codebase.UpdateFile(path, textChange.Text)
			ls.publishDiagnostics(path)
		}
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.codebase.SetOpen(path, false)
	if err := ls.codebase.ScanFile(path); err != nil {
		ls.codebase.RemoveFile(path)
	}
	ls.publishDiagnostics(path)
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.codebase.UpdateFile(path, *params.Text)
	} else if err := ls.codebase.ScanFile(path); err != nil {
		log.Warningf("%s", err)
	}
	ls.publishDiagnostics(path)
	return nil
}

func (ls *LSPServer) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}

	file := ls.codebase.GetFile(path)
	if file == nil {
		return nil, nil
	}

	offset := file.Lines.Offset(parser.Position{
		Line:   int(params.Position.Line),
		Column: int(params.Position.Character),
	})
	items := ls.codebase.Complete(path, offset)
	if len(items) == 0 {
		return nil, nil
	}
	return completionItems(items, file.Lines, offset), nil
}

func (ls *LSPServer) publishDiagnostics(path string) {
	if ls.notify == nil {
		return
	}
	diagnostics := []protocol.Diagnostic{}
	if file := ls.codebase.GetFile(path); file != nil {
		diagnostics = toDiagnostics(ls.codebase.Issues(path), file.Lines)
	}
	ls.notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         pathToURI(path),
		Diagnostics: diagnostics,
	})
}

func toDiagnostics(issues []parser.Issue, lines *parser.LineIndex) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, len(issues))
	source := lsName
	for _, issue := range issues {
		severity := toDiagnosticSeverity(issue.Severity)
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    toRange(lines, issue.Start, issue.End),
			Severity: &severity,
			Source:   &source,
			Message:  issue.Message,
		})
	}
	return diagnostics
}

func toDiagnosticSeverity(severity parser.Severity) protocol.DiagnosticSeverity {
	switch severity {
	case parser.SeverityError:
		return protocol.DiagnosticSeverityError
	case parser.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}

// completionItems replaces the typed part of the word left of the cursor
// with the full proposal.
func completionItems(items []completion.Item, lines *parser.LineIndex, offset int) []protocol.CompletionItem {
	result := make([]protocol.CompletionItem, 0, len(items))
	for _, item := range items {
		kind := toProtocolKind(item.Kind)
		detail := item.Kind.String()
		start := offset - utf8.RuneCountInString(item.Typed)
		result = append(result, protocol.CompletionItem{
			Label:  item.Label,
			Kind:   &kind,
			Detail: &detail,
			TextEdit: protocol.TextEdit{
				Range:   toRange(lines, start, offset),
				NewText: item.Typed + item.InsertText,
			},
		})
	}
	return result
}

func toRange(lines *parser.LineIndex, start, end int) protocol.Range {
	return protocol.Range{
		Start: toPosition(lines.Position(start)),
		End:   toPosition(lines.Position(end)),
	}
}

func toPosition(pos parser.Position) protocol.Position {
	return protocol.Position{
		Line:      protocol.UInteger(pos.Line),
		Character: protocol.UInteger(pos.Column),
	}
}

func toProtocolKind(kind completion.Kind) protocol.CompletionItemKind {
	switch kind {
	case completion.KindCommand:
		return protocol.CompletionItemKindFunction
	case completion.KindEnvironment:
		return protocol.CompletionItemKindClass
	case completion.KindLabel, completion.KindCitation:
		return protocol.CompletionItemKindReference
	case completion.KindFile:
		return protocol.CompletionItemKindFile
	case completion.KindPackage:
		return protocol.CompletionItemKindModule
	default:
		return protocol.CompletionItemKindText
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) protocol.DocumentUri {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return protocol.DocumentUri(u.String())
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
