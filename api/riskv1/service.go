// Package riskv1 defines the toolrisk.v1.RiskService gRPC contract.
//
// Messages travel as google.protobuf.Struct so the service needs no
// generated code; the typed request and response structs below are
// converted with Encode and Decode on both sides.
package riskv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully-qualified gRPC service name.
const ServiceName = "toolrisk.v1.RiskService"

// Full method names.
const (
	MethodEvaluate = "/" + ServiceName + "/Evaluate"
	MethodMatrix   = "/" + ServiceName + "/Matrix"
	MethodCatalog  = "/" + ServiceName + "/Catalog"
)

// RiskServiceServer is the server API for RiskService.
type RiskServiceServer interface {
	Evaluate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Matrix(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Catalog(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterRiskServiceServer registers srv on s.
func RegisterRiskServiceServer(s grpc.ServiceRegistrar, srv RiskServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

func unaryHandler(method string, call func(RiskServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(RiskServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(RiskServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RiskServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Evaluate", Handler: unaryHandler(MethodEvaluate, RiskServiceServer.Evaluate)},
		{MethodName: "Matrix", Handler: unaryHandler(MethodMatrix, RiskServiceServer.Matrix)},
		{MethodName: "Catalog", Handler: unaryHandler(MethodCatalog, RiskServiceServer.Catalog)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "toolrisk/v1/risk.proto",
}

// RiskServiceClient is the client API for RiskService.
type RiskServiceClient interface {
	Evaluate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Matrix(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Catalog(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type riskServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewRiskServiceClient wraps cc.
func NewRiskServiceClient(cc grpc.ClientConnInterface) RiskServiceClient {
	return &riskServiceClient{cc: cc}
}

func (c *riskServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *riskServiceClient) Evaluate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodEvaluate, in, opts)
}

func (c *riskServiceClient) Matrix(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodMatrix, in, opts)
}

func (c *riskServiceClient) Catalog(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodCatalog, in, opts)
}
