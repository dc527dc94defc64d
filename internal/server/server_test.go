package server

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ppiankov/toolrisk/api/riskv1"
)

const gapCatalog = `
input_data:
  Public: {score: 0, description: public}
  Secret: {score: 9, description: secret}
ai_tools:
  ToolA: {type: assistant, provider: Acme, modifier: 0}
ai_type_scores:
  assistant: 0
risk_levels:
  - {range: [0, 3], level: Low, action: none, approver: self}
`

const smallCatalog = `
input_data:
  Public: {score: 0, description: public}
  Confidential: {score: 5, description: confidential}
ai_tools:
  ToolA: {type: assistant, provider: Acme, modifier: 1}
ai_type_scores:
  assistant: 2
risk_levels:
  - {range: [0, 3], level: Low, action: none, approver: self}
  - {range: [4, 10], level: High, action: review, approver: manager}
`

// testServer spins up an in-process gRPC server on a random port and returns a client.
func testServer(t *testing.T, cfg Config) (riskv1.RiskServiceClient, *Server, func()) {
	t.Helper()

	if cfg.CatalogPath == "" {
		cfg.CatalogPath = filepath.Join(t.TempDir(), "missing.yaml")
	}

	srv, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	go srv.ServeOn(lis)

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		srv.GracefulStop()
		t.Fatalf("dial: %v", err)
	}

	client := riskv1.NewRiskServiceClient(conn)

	cleanup := func() {
		conn.Close()
		srv.GracefulStop()
	}
	return client, srv, cleanup
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func evaluate(t *testing.T, client riskv1.RiskServiceClient, req riskv1.EvaluateRequest) (riskv1.EvaluateResponse, error) {
	t.Helper()
	in, err := riskv1.Encode(req)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := client.Evaluate(context.Background(), in)
	if err != nil {
		return riskv1.EvaluateResponse{}, err
	}
	var resp riskv1.EvaluateResponse
	if err := riskv1.Decode(out, &resp); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return resp, nil
}

func TestEvaluateDefaultCatalog(t *testing.T) {
	client, _, cleanup := testServer(t, Config{})
	defer cleanup()

	resp, err := evaluate(t, client, riskv1.EvaluateRequest{Input: "Confidential", Tool: "ChatGPT Free"})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if resp.Result.TotalScore != 9 {
		t.Errorf("expected total 9, got %d", resp.Result.TotalScore)
	}
	if resp.Result.Tier.Level != "Critical" {
		t.Errorf("expected Critical, got %s", resp.Result.Tier.Level)
	}
	if resp.Row.Class != "risk-critical" {
		t.Errorf("expected class risk-critical, got %s", resp.Row.Class)
	}
}

func TestEvaluateLocalizedRow(t *testing.T) {
	client, _, cleanup := testServer(t, Config{})
	defer cleanup()

	resp, err := evaluate(t, client, riskv1.EvaluateRequest{Input: "Public", Tool: "Local LLM", Lang: "de-AT"})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if resp.Row.Input != "Öffentlich" {
		t.Errorf("expected German input label, got %q", resp.Row.Input)
	}
	if resp.Row.LevelKey != "Low" || resp.Row.Level != "Niedrig" {
		t.Errorf("expected Low/Niedrig, got %s/%s", resp.Row.LevelKey, resp.Row.Level)
	}
	if resp.Result.Tier.Level != "Low" {
		t.Errorf("canonical level should stay untranslated, got %s", resp.Result.Tier.Level)
	}
}

func TestEvaluateErrorCodes(t *testing.T) {
	gapPath := writeTempFile(t, "catalog.yaml", gapCatalog)

	tests := []struct {
		name string
		cfg  Config
		req  riskv1.EvaluateRequest
		code codes.Code
	}{
		{
			name: "unknown input",
			req:  riskv1.EvaluateRequest{Input: "Nope", Tool: "Local LLM"},
			code: codes.NotFound,
		},
		{
			name: "unknown tool",
			req:  riskv1.EvaluateRequest{Input: "Public", Tool: "Nope"},
			code: codes.NotFound,
		},
		{
			name: "score in a tier gap",
			cfg:  Config{CatalogPath: gapPath},
			req:  riskv1.EvaluateRequest{Input: "Secret", Tool: "ToolA"},
			code: codes.FailedPrecondition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _, cleanup := testServer(t, tt.cfg)
			defer cleanup()

			_, err := evaluate(t, client, tt.req)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := status.Code(err); got != tt.code {
				t.Errorf("expected %s, got %s: %v", tt.code, got, err)
			}
		})
	}
}

func TestMatrix(t *testing.T) {
	client, _, cleanup := testServer(t, Config{})
	defer cleanup()

	in, _ := riskv1.Encode(riskv1.MatrixRequest{Lang: "de"})
	out, err := client.Matrix(context.Background(), in)
	if err != nil {
		t.Fatalf("Matrix: %v", err)
	}

	var resp riskv1.MatrixResponse
	if err := riskv1.Decode(out, &resp); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if resp.Lang != "de" {
		t.Errorf("expected lang de, got %s", resp.Lang)
	}
	if len(resp.Rows) != 24 {
		t.Fatalf("expected 24 rows, got %d", len(resp.Rows))
	}
	if resp.Rows[0].InputKey != "Public" || resp.Rows[23].InputKey != "Restricted" {
		t.Errorf("expected input-major order, got %s..%s", resp.Rows[0].InputKey, resp.Rows[23].InputKey)
	}
}

func TestMatrixStopsOnGap(t *testing.T) {
	client, _, cleanup := testServer(t, Config{CatalogPath: writeTempFile(t, "catalog.yaml", gapCatalog)})
	defer cleanup()

	in, _ := riskv1.Encode(riskv1.MatrixRequest{})
	_, err := client.Matrix(context.Background(), in)
	if status.Code(err) != codes.FailedPrecondition {
		t.Errorf("expected FailedPrecondition, got %v", err)
	}
}

func TestCatalogReportsBuiltinHash(t *testing.T) {
	client, _, cleanup := testServer(t, Config{})
	defer cleanup()

	out, err := client.Catalog(context.Background(), &structpb.Struct{})
	if err != nil {
		t.Fatalf("Catalog: %v", err)
	}
	var resp riskv1.CatalogResponse
	if err := riskv1.Decode(out, &resp); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	const emptyHash = "sha256:e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if resp.Hash != emptyHash {
		t.Errorf("expected empty-input hash for built-in catalog, got %s", resp.Hash)
	}
	if len(resp.Inputs) != 4 || len(resp.Tools) != 6 || len(resp.AITypes) != 3 || len(resp.Tiers) != 4 {
		t.Errorf("unexpected catalog shape: %d inputs, %d tools, %d types, %d tiers",
			len(resp.Inputs), len(resp.Tools), len(resp.AITypes), len(resp.Tiers))
	}
}

func TestConcurrentEvaluations(t *testing.T) {
	client, _, cleanup := testServer(t, Config{})
	defer cleanup()

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			in, err := riskv1.Encode(riskv1.EvaluateRequest{Input: "Internal", Tool: "ChatGPT Enterprise"})
			if err != nil {
				errs <- err
				return
			}
			if _, err := client.Evaluate(context.Background(), in); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent eval error: %v", err)
	}
}

func TestHotReloadCatalogChange(t *testing.T) {
	catalogPath := writeTempFile(t, "catalog.yaml", smallCatalog)

	client, srv, cleanup := testServer(t, Config{CatalogPath: catalogPath})
	defer cleanup()

	resp, err := evaluate(t, client, riskv1.EvaluateRequest{Input: "Confidential", Tool: "ToolA"})
	if err != nil {
		t.Fatalf("Evaluate before reload: %v", err)
	}
	if resp.Result.TotalScore != 8 || resp.Result.Tier.Level != "High" {
		t.Fatalf("expected 8/High before reload, got %d/%s", resp.Result.TotalScore, resp.Result.Tier.Level)
	}
	before := srv.CatalogHash()

	// Raise the low tier so 8 falls into it
	updated := `
input_data:
  Confidential: {score: 5, description: confidential}
ai_tools:
  ToolA: {type: assistant, provider: Acme, modifier: 1}
ai_type_scores:
  assistant: 2
risk_levels:
  - {range: [0, 8], level: Low, action: none, approver: self}
  - {range: [9, 10], level: High, action: review, approver: manager}
`
	if err := os.WriteFile(catalogPath, []byte(updated), 0644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	// Manually trigger reload (no need to wait for fsnotify in tests)
	if err := srv.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}

	resp, err = evaluate(t, client, riskv1.EvaluateRequest{Input: "Confidential", Tool: "ToolA"})
	if err != nil {
		t.Fatalf("Evaluate after reload: %v", err)
	}
	if resp.Result.Tier.Level != "Low" {
		t.Errorf("expected Low after reload, got %s", resp.Result.Tier.Level)
	}
	if srv.CatalogHash() == before {
		t.Error("expected catalog hash to change after reload")
	}

	_, err = evaluate(t, client, riskv1.EvaluateRequest{Input: "Public", Tool: "ToolA"})
	if status.Code(err) != codes.NotFound {
		t.Errorf("expected NotFound for input removed by reload, got %v", err)
	}
}

func TestFailedReloadKeepsPreviousCatalog(t *testing.T) {
	catalogPath := writeTempFile(t, "catalog.yaml", smallCatalog)

	client, srv, cleanup := testServer(t, Config{CatalogPath: catalogPath})
	defer cleanup()
	before := srv.CatalogHash()

	if err := os.WriteFile(catalogPath, []byte("input_data: [broken"), 0644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	if err := srv.Reload(); err == nil {
		t.Fatal("expected reload of a broken catalog to fail")
	}

	if srv.CatalogHash() != before {
		t.Error("catalog hash changed after failed reload")
	}
	resp, err := evaluate(t, client, riskv1.EvaluateRequest{Input: "Confidential", Tool: "ToolA"})
	if err != nil {
		t.Fatalf("Evaluate after failed reload: %v", err)
	}
	if resp.Result.Tier.Level != "High" {
		t.Errorf("expected previous catalog to stay in service, got %s", resp.Result.Tier.Level)
	}
}

func TestTranslationsOverlay(t *testing.T) {
	trPath := writeTempFile(t, "translations.yaml", `
fr:
  Low: Faible
  label.risk_level: Niveau de risque
`)
	client, _, cleanup := testServer(t, Config{TranslationsPath: trPath})
	defer cleanup()

	resp, err := evaluate(t, client, riskv1.EvaluateRequest{Input: "Public", Tool: "Local LLM", Lang: "fr"})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if resp.Row.Level != "Faible" {
		t.Errorf("expected overlay translation, got %q", resp.Row.Level)
	}
	// Keys missing from the overlay fall back to the default language
	if resp.Row.Input != "Public" {
		t.Errorf("expected fallback to default text, got %q", resp.Row.Input)
	}
}

func TestReloaderPicksUpWrite(t *testing.T) {
	catalogPath := writeTempFile(t, "catalog.yaml", smallCatalog)

	srv, err := New(Config{CatalogPath: catalogPath})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r, err := NewReloader(srv, srv.WatchPaths())
	if err != nil {
		t.Fatalf("NewReloader: %v", err)
	}
	if len(r.Paths()) != 1 {
		t.Fatalf("expected only the existing catalog to be watched, got %v", r.Paths())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	before := srv.CatalogHash()

	// Write to trigger reload
	os.WriteFile(catalogPath, []byte(smallCatalog+"\n# touched\n"), 0644)
	time.Sleep(800 * time.Millisecond) // reloadDelay is 500ms

	if srv.CatalogHash() == before {
		t.Error("expected catalog hash to change after file write")
	}
}

func TestReloaderFollowsRenameReplace(t *testing.T) {
	catalogPath := writeTempFile(t, "catalog.yaml", smallCatalog)

	srv, err := New(Config{CatalogPath: catalogPath})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r, err := NewReloader(srv, srv.WatchPaths())
	if err != nil {
		t.Fatalf("NewReloader: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go r.Run(ctx)

	// Save the way editors do: write a sibling, rename it over the original.
	replace := func(content string) {
		tmp := catalogPath + ".tmp"
		if err := os.WriteFile(tmp, []byte(content), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if err := os.Rename(tmp, catalogPath); err != nil {
			t.Fatalf("rename: %v", err)
		}
		time.Sleep(800 * time.Millisecond)
	}

	before := srv.CatalogHash()
	replace(smallCatalog + "\n# first save\n")
	first := srv.CatalogHash()
	if first == before {
		t.Fatal("expected reload after rename-replace")
	}

	// The replaced file must still be watched.
	replace(smallCatalog + "\n# second save\n")
	if srv.CatalogHash() == first {
		t.Error("expected reload after a second rename-replace")
	}
}
