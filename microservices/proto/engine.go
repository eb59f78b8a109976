// Package proto describes the engine gRPC service. Messages are
// google.protobuf.Struct values carrying the same fields as the HTTP API.
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	EngineServiceName     = "nxn_tictactoe.Engine"
	MakeMoveFullMethod    = "/" + EngineServiceName + "/MakeMove"
	CheckWinnerFullMethod = "/" + EngineServiceName + "/CheckWinner"
)

type EngineServiceClient interface {
	MakeMove(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	CheckWinner(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type engineServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewEngineServiceClient(cc grpc.ClientConnInterface) EngineServiceClient {
	return &engineServiceClient{cc: cc}
}

func (c *engineServiceClient) MakeMove(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MakeMoveFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *engineServiceClient) CheckWinner(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, CheckWinnerFullMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type EngineServiceServer interface {
	MakeMove(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CheckWinner(context.Context, *structpb.Struct) (*structpb.Struct, error)
	mustEmbedUnimplementedEngineServiceServer()
}

// UnimplementedEngineServiceServer must be embedded by server implementations.
type UnimplementedEngineServiceServer struct{}

func (UnimplementedEngineServiceServer) MakeMove(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method MakeMove not implemented")
}

func (UnimplementedEngineServiceServer) CheckWinner(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method CheckWinner not implemented")
}

func (UnimplementedEngineServiceServer) mustEmbedUnimplementedEngineServiceServer() {}

func RegisterEngineServiceServer(s grpc.ServiceRegistrar, srv EngineServiceServer) {
	s.RegisterService(&EngineServiceDesc, srv)
}

type unaryMethod func(EngineServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(EngineServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(EngineServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var EngineServiceDesc = grpc.ServiceDesc{
	ServiceName: EngineServiceName,
	HandlerType: (*EngineServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "MakeMove",
			Handler:    unaryHandler(MakeMoveFullMethod, EngineServiceServer.MakeMove),
		},
		{
			MethodName: "CheckWinner",
			Handler:    unaryHandler(CheckWinnerFullMethod, EngineServiceServer.CheckWinner),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "engine.proto",
}
