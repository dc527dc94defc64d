package client

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/ppiankov/toolrisk/api/riskv1"
)

// DefaultTimeout bounds each RPC when the caller's context has no deadline.
const DefaultTimeout = 5 * time.Second

// Client connects to a toolrisk gRPC evaluation server.
type Client struct {
	conn   *grpc.ClientConn
	client riskv1.RiskServiceClient
}

// New creates a gRPC client connected to the given address.
func New(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to connect to risk server", goerr.V("addr", addr))
	}
	return &Client{
		conn:   conn,
		client: riskv1.NewRiskServiceClient(conn),
	}, nil
}

// Evaluate scores one pair on the remote server. Unknown keys and tier gaps
// come back as catalog.ErrNotFound and risk.ErrTierNotFound.
func (c *Client) Evaluate(ctx context.Context, input, tool, lang string) (riskv1.EvaluateResponse, error) {
	var resp riskv1.EvaluateResponse
	err := c.call(ctx, c.client.Evaluate, riskv1.EvaluateRequest{Input: input, Tool: tool, Lang: lang}, &resp)
	return resp, err
}

// Matrix fetches the full decision matrix.
func (c *Client) Matrix(ctx context.Context, lang string) (riskv1.MatrixResponse, error) {
	var resp riskv1.MatrixResponse
	err := c.call(ctx, c.client.Matrix, riskv1.MatrixRequest{Lang: lang}, &resp)
	return resp, err
}

// Catalog describes the catalog the server evaluates against.
func (c *Client) Catalog(ctx context.Context) (riskv1.CatalogResponse, error) {
	var resp riskv1.CatalogResponse
	err := c.call(ctx, c.client.Catalog, struct{}{}, &resp)
	return resp, err
}

// Close closes the gRPC connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

type rpc func(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)

func (c *Client) call(ctx context.Context, method rpc, req, resp any) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultTimeout)
		defer cancel()
	}

	in, err := riskv1.Encode(req)
	if err != nil {
		return err
	}
	out, err := method(ctx, in)
	if err != nil {
		return riskv1.FromStatus(err)
	}
	return riskv1.Decode(out, resp)
}
