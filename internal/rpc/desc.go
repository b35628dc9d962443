// Package rpc serves the party games over gRPC. The service is described by
// hand with protobuf well-known types, so there is no generated code and no
// .proto build step.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "party.v1.PartyService"

// PartyServiceServer is implemented by Service.
type PartyServiceServer interface {
	DrawNext(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	ResetBingo(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetBingo(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetAmida(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	GetAmidaResult(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	SetParticipants(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

func newEmpty() *emptypb.Empty { return new(emptypb.Empty) }
func newStruct() *structpb.Struct { return new(structpb.Struct) }

// ServiceDesc registers PartyServiceServer on a grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PartyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("DrawNext", newEmpty, PartyServiceServer.DrawNext),
		unary("ResetBingo", newEmpty, PartyServiceServer.ResetBingo),
		unary("GetBingo", newEmpty, PartyServiceServer.GetBingo),
		unary("GetAmida", newEmpty, PartyServiceServer.GetAmida),
		unary("GetAmidaResult", newEmpty, PartyServiceServer.GetAmidaResult),
		unary("SetParticipants", newStruct, PartyServiceServer.SetParticipants),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "party/v1/party.proto",
}

// Register attaches srv to s.
func Register(s grpc.ServiceRegistrar, srv PartyServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func fullMethod(name string) string {
	return "/" + ServiceName + "/" + name
}

// unary builds the MethodDesc that generated code would otherwise emit for
// one request/response method.
func unary[Req proto.Message](
	name string,
	newReq func() Req,
	call func(PartyServiceServer, context.Context, Req) (*structpb.Struct, error),
) grpc.MethodDesc {
	full := fullMethod(name)
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := newReq()
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(PartyServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: full}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(Req))
			})
		},
	}
}
