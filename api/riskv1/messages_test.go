package riskv1_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/ppiankov/toolrisk/api/riskv1"
	"github.com/ppiankov/toolrisk/internal/catalog"
	"github.com/ppiankov/toolrisk/internal/risk"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     codes.Code
		sentinel error
	}{
		{"unknown key", goerr.Wrap(catalog.ErrNotFound, "unknown tool"), codes.NotFound, catalog.ErrNotFound},
		{"tier gap", goerr.Wrap(risk.ErrTierNotFound, "gap"), codes.FailedPrecondition, risk.ErrTierNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := riskv1.ToStatus(tt.err)
			gt.Value(t, status.Code(st)).Equal(tt.code)

			back := riskv1.FromStatus(st)
			gt.Error(t, back).Is(tt.sentinel)
		})
	}

	t.Run("other errors stay internal", func(t *testing.T) {
		st := riskv1.ToStatus(errors.New("boom"))
		gt.Value(t, status.Code(st)).Equal(codes.Internal)

		back := riskv1.FromStatus(st)
		gt.Bool(t, errors.Is(back, catalog.ErrNotFound)).False()
		gt.Bool(t, errors.Is(back, risk.ErrTierNotFound)).False()
	})

	gt.NoError(t, riskv1.ToStatus(nil))
}

func TestEncodeDecodeRequest(t *testing.T) {
	s, err := riskv1.Encode(riskv1.EvaluateRequest{Input: "Public", Tool: "Local LLM", Lang: "de"})
	gt.NoError(t, err).Required()
	gt.Value(t, s.Fields["input"].GetStringValue()).Equal("Public")

	var req riskv1.EvaluateRequest
	gt.NoError(t, riskv1.Decode(s, &req)).Required()
	gt.Value(t, req.Tool).Equal("Local LLM")
	gt.Value(t, req.Lang).Equal("de")
}

func TestNewCatalogResponseKeepsTypeOrder(t *testing.T) {
	resp := riskv1.NewCatalogResponse(catalog.Default(), "sha256:x")
	gt.Array(t, resp.AITypes).Length(3).Required()
	gt.Value(t, resp.AITypes[0]).Equal(riskv1.TypeScore{Type: "Enterprise", Score: 0})
	gt.Value(t, resp.AITypes[2]).Equal(riskv1.TypeScore{Type: "Consumer", Score: 3})
	gt.Value(t, resp.Hash).Equal("sha256:x")
}
