package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/toolrisk/api/riskv1"
	"github.com/ppiankov/toolrisk/internal/metrics"
	"github.com/ppiankov/toolrisk/internal/render"
	"github.com/ppiankov/toolrisk/internal/risk"
)

// --- Input/Output types ---

// EvaluateInput defines parameters for the toolrisk_evaluate tool.
type EvaluateInput struct {
	Input string `json:"input" jsonschema:"input data category key, e.g. Confidential"`
	Tool  string `json:"tool" jsonschema:"AI tool key, e.g. ChatGPT Enterprise"`
	Lang  string `json:"lang,omitempty" jsonschema:"display language (en, de), omit for the default"`
}

// EvaluateOutput is the recommendation or the reason none could be made.
type EvaluateOutput struct {
	Row       *render.Row `json:"row,omitempty"`
	ErrorKind string      `json:"error_kind,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// MatrixInput defines parameters for the toolrisk_matrix tool.
type MatrixInput struct {
	Lang string `json:"lang,omitempty" jsonschema:"display language (en, de), omit for the default"`
}

// MatrixOutput is the decision matrix, input-major.
type MatrixOutput struct {
	Lang      string       `json:"lang,omitempty"`
	Rows      []render.Row `json:"rows,omitempty"`
	ErrorKind string       `json:"error_kind,omitempty"`
	Error     string       `json:"error,omitempty"`
}

// CatalogInput is empty; no parameters needed.
type CatalogInput struct{}

// --- Handlers ---

func (s *Server) handleEvaluate(ctx context.Context, req *mcpsdk.CallToolRequest, input EvaluateInput) (*mcpsdk.CallToolResult, EvaluateOutput, error) {
	res, err := risk.Evaluate(s.cat, input.Input, input.Tool)
	metrics.ObserveEvaluation(metrics.OriginMCP, res, err)
	if err != nil {
		s.logger.Debug("evaluation failed", "input", input.Input, "tool", input.Tool, "error", err)
		return &mcpsdk.CallToolResult{IsError: true}, EvaluateOutput{
			ErrorKind: risk.ErrorKind(err),
			Error:     err.Error(),
		}, nil
	}

	in, _ := s.cat.InputCategory(input.Input)
	tool, _ := s.cat.Tool(input.Tool)
	row := render.NewRow(in, tool, res, s.localizer(input.Lang))
	return nil, EvaluateOutput{Row: &row}, nil
}

func (s *Server) handleMatrix(ctx context.Context, req *mcpsdk.CallToolRequest, input MatrixInput) (*mcpsdk.CallToolResult, MatrixOutput, error) {
	entries, err := risk.EvaluateAll(s.cat)
	if err != nil {
		metrics.ObserveEvaluation(metrics.OriginMCP, risk.Result{}, err)
		return &mcpsdk.CallToolResult{IsError: true}, MatrixOutput{
			ErrorKind: risk.ErrorKind(err),
			Error:     err.Error(),
		}, nil
	}

	loc := s.localizer(input.Lang)
	return nil, MatrixOutput{Lang: loc.Lang(), Rows: render.Rows(entries, loc)}, nil
}

func (s *Server) handleCatalog(ctx context.Context, req *mcpsdk.CallToolRequest, input CatalogInput) (*mcpsdk.CallToolResult, riskv1.CatalogResponse, error) {
	return nil, riskv1.NewCatalogResponse(s.cat, s.catalogHash), nil
}
