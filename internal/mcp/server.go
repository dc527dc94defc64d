package mcp

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/toolrisk/internal/catalog"
	"github.com/ppiankov/toolrisk/internal/i18n"
)

// Config holds MCP server configuration.
type Config struct {
	CatalogPath      string
	TranslationsPath string
	DefaultLang      string
	Version          string
	Logger           *slog.Logger
}

// Server wraps the MCP SDK server with catalog-backed risk evaluation.
type Server struct {
	mcpServer   *mcpsdk.Server
	cat         *catalog.Catalog
	catalogHash string
	tr          *i18n.Translator
	defaultLang string
	logger      *slog.Logger
}

// New creates an MCP server with the catalog, translations and tools loaded.
func New(cfg Config) (*Server, error) {
	cat, hash, err := catalog.LoadWithHash(cfg.CatalogPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load catalog")
	}

	dict := i18n.Builtin()
	if cfg.TranslationsPath != "" {
		overlay, err := i18n.LoadFile(cfg.TranslationsPath)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to load translations")
		}
		dict = i18n.Merge(dict, overlay)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	s := &Server{
		cat:         cat,
		catalogHash: hash,
		tr:          i18n.New(dict, i18n.DefaultLanguage),
		defaultLang: cfg.DefaultLang,
		logger:      logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "toolrisk",
			Version: version,
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) localizer(lang string) i18n.Localizer {
	if lang == "" {
		lang = s.defaultLang
	}
	return s.tr.For(lang)
}

// registerTools adds all toolrisk tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toolrisk_evaluate",
		Description: "Score using an AI tool with a category of input data. Returns the risk score, level, required action and approver. Unknown keys and scores outside every risk level return an error with its kind.",
	}, s.handleEvaluate)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toolrisk_matrix",
		Description: "Evaluate every input data category against every AI tool and return the full decision matrix.",
	}, s.handleMatrix)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toolrisk_catalog",
		Description: "List the input data categories, AI tools, AI type scores and risk levels that evaluation uses.",
	}, s.handleCatalog)
}
