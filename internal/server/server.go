package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ppiankov/toolrisk/api/riskv1"
	"github.com/ppiankov/toolrisk/internal/catalog"
	"github.com/ppiankov/toolrisk/internal/i18n"
	"github.com/ppiankov/toolrisk/internal/metrics"
	"github.com/ppiankov/toolrisk/internal/render"
	"github.com/ppiankov/toolrisk/internal/risk"
)

// Config holds gRPC server configuration.
type Config struct {
	Port             int
	CatalogPath      string
	TranslationsPath string
	DefaultLang      string
	Logger           *slog.Logger
}

// Server implements the RiskService gRPC server.
type Server struct {
	mu          sync.RWMutex
	cat         *catalog.Catalog
	catalogHash string
	tr          *i18n.Translator
	cfg         Config
	logger      *slog.Logger

	grpcServer *grpc.Server
}

// snapshot is everything one request evaluates against.
type snapshot struct {
	cat  *catalog.Catalog
	hash string
	tr   *i18n.Translator
}

// New creates a gRPC server with the catalog and translations loaded.
func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	snap, err := load(cfg)
	if err != nil {
		return nil, err
	}
	for _, issue := range catalog.Lint(snap.cat) {
		logger.Warn("catalog issue", "kind", issue.Kind, "subject", issue.Subject, "message", issue.Message)
	}

	s := &Server{
		cat:         snap.cat,
		catalogHash: snap.hash,
		tr:          snap.tr,
		cfg:         cfg,
		logger:      logger,
	}
	s.grpcServer = grpc.NewServer(grpc.UnaryInterceptor(s.logUnary))

	riskv1.RegisterRiskServiceServer(s.grpcServer, s)
	logger.Info("catalog loaded", "path", cfg.CatalogPath, "hash", snap.hash)
	return s, nil
}

func load(cfg Config) (snapshot, error) {
	cat, hash, err := catalog.LoadWithHash(cfg.CatalogPath)
	if err != nil {
		return snapshot{}, goerr.Wrap(err, "failed to load catalog")
	}

	dict := i18n.Builtin()
	if cfg.TranslationsPath != "" {
		overlay, err := i18n.LoadFile(cfg.TranslationsPath)
		if err != nil {
			return snapshot{}, goerr.Wrap(err, "failed to load translations")
		}
		dict = i18n.Merge(dict, overlay)
	}

	return snapshot{cat: cat, hash: hash, tr: i18n.New(dict, i18n.DefaultLanguage)}, nil
}

// Serve starts the gRPC server on the configured port. Blocks until stopped.
func (s *Server) Serve() error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return goerr.Wrap(err, "failed to listen", goerr.V("port", s.cfg.Port))
	}
	return s.grpcServer.Serve(lis)
}

// ServeOn starts the gRPC server on the given listener. For testing.
func (s *Server) ServeOn(lis net.Listener) error {
	return s.grpcServer.Serve(lis)
}

// GracefulStop gracefully shuts down the gRPC server.
func (s *Server) GracefulStop() {
	s.grpcServer.GracefulStop()
}

// WatchPaths returns the files whose changes should trigger Reload.
func (s *Server) WatchPaths() []string {
	catalogPath := s.cfg.CatalogPath
	if catalogPath == "" {
		catalogPath = catalog.DefaultPath()
	}
	return []string{catalogPath, s.cfg.TranslationsPath}
}

func (s *Server) current() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{cat: s.cat, hash: s.catalogHash, tr: s.tr}
}

// Evaluate implements the Evaluate RPC.
func (s *Server) Evaluate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req riskv1.EvaluateRequest
	if err := riskv1.Decode(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	snap := s.current()
	res, err := risk.Evaluate(snap.cat, req.Input, req.Tool)
	metrics.ObserveEvaluation(metrics.OriginGRPC, res, err)
	if err != nil {
		s.logger.Debug("evaluation failed", "input", req.Input, "tool", req.Tool, "kind", risk.ErrorKind(err), "error", err)
		return nil, riskv1.ToStatus(err)
	}

	inCat, _ := snap.cat.InputCategory(req.Input)
	tool, _ := snap.cat.Tool(req.Tool)
	return riskv1.Encode(riskv1.EvaluateResponse{
		Result: res,
		Row:    render.NewRow(inCat, tool, res, s.localizer(snap, req.Lang)),
	})
}

// Matrix implements the Matrix RPC.
func (s *Server) Matrix(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req riskv1.MatrixRequest
	if err := riskv1.Decode(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	snap := s.current()
	entries, err := risk.EvaluateAll(snap.cat)
	if err != nil {
		metrics.ObserveEvaluation(metrics.OriginGRPC, risk.Result{}, err)
		return nil, riskv1.ToStatus(err)
	}

	loc := s.localizer(snap, req.Lang)
	return riskv1.Encode(riskv1.MatrixResponse{
		Lang: loc.Lang(),
		Rows: render.Rows(entries, loc),
	})
}

// localizer binds the requested language, or the configured default when the
// request names none.
func (s *Server) localizer(snap snapshot, lang string) i18n.Localizer {
	if lang == "" {
		lang = s.cfg.DefaultLang
	}
	return snap.tr.For(lang)
}

// Catalog implements the Catalog RPC.
func (s *Server) Catalog(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	snap := s.current()
	return riskv1.Encode(riskv1.NewCatalogResponse(snap.cat, snap.hash))
}

// Reload atomically swaps catalog and translations. On failure the previous
// data stays in service. Called by the hot-reloader on file change.
func (s *Server) Reload() error {
	snap, err := load(s.cfg)
	metrics.ObserveReload(err)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cat = snap.cat
	s.catalogHash = snap.hash
	s.tr = snap.tr
	s.mu.Unlock()

	for _, issue := range catalog.Lint(snap.cat) {
		s.logger.Warn("catalog issue", "kind", issue.Kind, "subject", issue.Subject, "message", issue.Message)
	}
	return nil
}

// CatalogHash returns the hash of the catalog currently in service.
func (s *Server) CatalogHash() string {
	return s.current().hash
}

func (s *Server) logUnary(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	s.logger.Debug("rpc", "method", info.FullMethod, "code", status.Code(err).String())
	return resp, err
}
