package riskv1

import (
	"encoding/json"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ppiankov/toolrisk/internal/catalog"
	"github.com/ppiankov/toolrisk/internal/render"
	"github.com/ppiankov/toolrisk/internal/risk"
)

// EvaluateRequest selects one (input, tool) pair. Lang picks the display
// language of the returned row; empty means the server default.
type EvaluateRequest struct {
	Input string `json:"input"`
	Tool  string `json:"tool"`
	Lang  string `json:"lang,omitempty"`
}

// EvaluateResponse carries the canonical result and its localized row.
type EvaluateResponse struct {
	Result risk.Result `json:"result"`
	Row    render.Row  `json:"row"`
}

// MatrixRequest asks for the full decision matrix.
type MatrixRequest struct {
	Lang string `json:"lang,omitempty"`
}

// MatrixResponse lists matrix rows input-major.
type MatrixResponse struct {
	Lang string       `json:"lang"`
	Rows []render.Row `json:"rows"`
}

// TypeScore is one AI type with its base score.
type TypeScore struct {
	Type  string `json:"type"`
	Score int    `json:"score"`
}

// CatalogResponse describes the catalog the server is evaluating against.
type CatalogResponse struct {
	Hash    string                  `json:"hash"`
	Inputs  []catalog.InputCategory `json:"inputs"`
	Tools   []catalog.Tool          `json:"tools"`
	AITypes []TypeScore             `json:"ai_types"`
	Tiers   []catalog.Tier          `json:"tiers"`
}

// NewCatalogResponse snapshots c.
func NewCatalogResponse(c *catalog.Catalog, hash string) CatalogResponse {
	resp := CatalogResponse{
		Hash:   hash,
		Inputs: c.InputCategories(),
		Tools:  c.Tools(),
		Tiers:  c.Tiers(),
	}
	for _, t := range c.AITypes() {
		score, _ := c.TypeScore(t)
		resp.AITypes = append(resp.AITypes, TypeScore{Type: t, Score: score})
	}
	return resp
}

// Encode converts v to a Struct through its JSON form.
func Encode(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal message")
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(data, s); err != nil {
		return nil, goerr.Wrap(err, "failed to build struct message")
	}
	return s, nil
}

// Decode fills v from a Struct.
func Decode(s *structpb.Struct, v any) error {
	if s == nil {
		s = &structpb.Struct{}
	}
	data, err := protojson.Marshal(s)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal struct message")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return goerr.Wrap(err, "failed to decode message")
	}
	return nil
}

// ToStatus maps evaluation errors to gRPC status errors.
func ToStatus(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, risk.ErrTierNotFound):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// FromStatus maps a gRPC status error back to the sentinel it came from, so
// callers can use errors.Is the same way as for local evaluation.
func FromStatus(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.NotFound:
		return goerr.Wrap(catalog.ErrNotFound, st.Message())
	case codes.FailedPrecondition:
		return goerr.Wrap(risk.ErrTierNotFound, st.Message())
	default:
		return goerr.Wrap(err, "remote call failed", goerr.V("code", st.Code().String()))
	}
}
