package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "cyk"

type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string

	mu   sync.Mutex
	docs map[string]*Document
}

func NewServer(version string) *Server {
	ls := &Server{
		version: version,
		docs:    make(map[string]*Document),
	}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
		TextDocumentHover:     ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	capabilities.HoverProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	logger().Infof("%s %s ready", lsName, ls.version)
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.update(ctx, params.TextDocument.URI, textChange.Text)
		}
	}
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, *params.Text)
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	delete(ls.docs, params.TextDocument.URI)
	ls.mu.Unlock()

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         params.TextDocument.URI,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func (ls *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	ls.mu.Lock()
	doc := ls.docs[params.TextDocument.URI]
	ls.mu.Unlock()
	if doc == nil {
		return nil, nil
	}

	text := doc.Hover(int(params.Position.Line)+1, int(params.Position.Character)+1)
	if text == "" {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: text,
		},
	}, nil
}

func (ls *Server) update(ctx *glsp.Context, uri string, text string) {
	doc := Analyze(displayName(uri), text)
	doc.URI = uri

	ls.mu.Lock()
	ls.docs[uri] = doc
	ls.mu.Unlock()

	logger().Debugf("analyzed %s: %d diagnostics", uri, len(doc.Diagnostics))

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: toProtocolDiagnostics(doc.Diagnostics),
	})
}

func toProtocolDiagnostics(diags []Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(diags))
	source := lsName
	for _, d := range diags {
		severity := toProtocolSeverity(d.Severity)
		start := protocol.Position{
			Line:      protocol.UInteger(d.Line - 1),
			Character: protocol.UInteger(d.Column - 1),
		}
		end := start
		end.Character += protocol.UInteger(d.Length)
		out = append(out, protocol.Diagnostic{
			Range:    protocol.Range{Start: start, End: end},
			Severity: &severity,
			Source:   &source,
			Message:  d.Message,
		})
	}
	return out
}

func toProtocolSeverity(s Severity) protocol.DiagnosticSeverity {
	switch s {
	case SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityError
	}
}

// displayName turns a file URI into the path used in grammar positions.
func displayName(uri string) string {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err == nil {
			return filepath.Base(parsed.Path)
		}
	}
	return uri
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}

func logger() commonlog.Logger {
	return commonlog.GetLogger("cyk.lsp")
}
