// Package v1alpha1 serves the TeamService defined in
// proto/cosmo/teams/v1alpha1/team.proto. Every message is a
// google.protobuf.Struct, so the service descriptor is written by hand in the
// layout protoc-gen-go-grpc produces.
package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "cosmo.teams.v1alpha1.TeamService"

// Full method names
const (
	MethodCreateShare      = "/" + ServiceName + "/CreateShare"
	MethodGetShare         = "/" + ServiceName + "/GetShare"
	MethodEncodeInline     = "/" + ServiceName + "/EncodeInline"
	MethodDecodeInline     = "/" + ServiceName + "/DecodeInline"
	MethodResolveSynergies = "/" + ServiceName + "/ResolveSynergies"
	MethodListCharacters   = "/" + ServiceName + "/ListCharacters"
)

// TeamServiceServer is the server API. Every message is a
// google.protobuf.Struct holding the same JSON the HTTP API uses.
type TeamServiceServer interface {
	CreateShare(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetShare(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EncodeInline(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DecodeInline(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ResolveSynergies(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListCharacters(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterTeamServiceServer registers srv on s
func RegisterTeamServiceServer(s grpc.ServiceRegistrar, srv TeamServiceServer) {
	s.RegisterService(&TeamServiceDesc, srv)
}

type unaryCall func(TeamServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryCall) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(TeamServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(TeamServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// TeamServiceDesc describes the service for grpc.Server
var TeamServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TeamServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateShare", Handler: unaryHandler(MethodCreateShare, TeamServiceServer.CreateShare)},
		{MethodName: "GetShare", Handler: unaryHandler(MethodGetShare, TeamServiceServer.GetShare)},
		{MethodName: "EncodeInline", Handler: unaryHandler(MethodEncodeInline, TeamServiceServer.EncodeInline)},
		{MethodName: "DecodeInline", Handler: unaryHandler(MethodDecodeInline, TeamServiceServer.DecodeInline)},
		{MethodName: "ResolveSynergies", Handler: unaryHandler(MethodResolveSynergies, TeamServiceServer.ResolveSynergies)},
		{MethodName: "ListCharacters", Handler: unaryHandler(MethodListCharacters, TeamServiceServer.ListCharacters)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "cosmo/teams/v1alpha1/team.proto",
}

// TeamServiceClient is the client API
type TeamServiceClient interface {
	CreateShare(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetShare(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	EncodeInline(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	DecodeInline(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ResolveSynergies(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListCharacters(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type teamServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewTeamServiceClient wraps a connection
func NewTeamServiceClient(cc grpc.ClientConnInterface) TeamServiceClient {
	return &teamServiceClient{cc: cc}
}

func (c *teamServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *teamServiceClient) CreateShare(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodCreateShare, in, opts...)
}

func (c *teamServiceClient) GetShare(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetShare, in, opts...)
}

func (c *teamServiceClient) EncodeInline(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodEncodeInline, in, opts...)
}

func (c *teamServiceClient) DecodeInline(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodDecodeInline, in, opts...)
}

func (c *teamServiceClient) ResolveSynergies(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodResolveSynergies, in, opts...)
}

func (c *teamServiceClient) ListCharacters(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodListCharacters, in, opts...)
}
