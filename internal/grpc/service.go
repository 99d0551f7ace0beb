package grpcserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "floodsos.intake.v1.IntakeService"

const (
	methodSubmitSosRequest = "/" + ServiceName + "/SubmitSosRequest"
	methodSubmitHelpOffer  = "/" + ServiceName + "/SubmitHelpOffer"
	methodListReliefCamps  = "/" + ServiceName + "/ListReliefCamps"
	methodListSosRequests  = "/" + ServiceName + "/ListSosRequests"
	methodUpdateSosRequest = "/" + ServiceName + "/UpdateSosRequest"
)

// IntakeServiceServer is the server API. Records travel as google.protobuf.Struct
// using the same field names as the JSON API.
type IntakeServiceServer interface {
	SubmitSosRequest(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SubmitHelpOffer(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListReliefCamps(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	// ListSosRequests reads optional "district" and "status" keys.
	ListSosRequests(context.Context, *structpb.Struct) (*structpb.ListValue, error)
	// UpdateSosRequest reads "id" plus "status" and/or "internal_notes".
	UpdateSosRequest(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterIntakeServiceServer registers srv on s.
func RegisterIntakeServiceServer(s grpc.ServiceRegistrar, srv IntakeServiceServer) {
	s.RegisterService(&intakeServiceDesc, srv)
}

var intakeServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IntakeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SubmitSosRequest",
			Handler: unaryHandler(methodSubmitSosRequest, func(s IntakeServiceServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.SubmitSosRequest(ctx, in)
			}),
		},
		{
			MethodName: "SubmitHelpOffer",
			Handler: unaryHandler(methodSubmitHelpOffer, func(s IntakeServiceServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.SubmitHelpOffer(ctx, in)
			}),
		},
		{
			MethodName: "ListReliefCamps",
			Handler: unaryHandler(methodListReliefCamps, func(s IntakeServiceServer, ctx context.Context, in *emptypb.Empty) (any, error) {
				return s.ListReliefCamps(ctx, in)
			}),
		},
		{
			MethodName: "ListSosRequests",
			Handler: unaryHandler(methodListSosRequests, func(s IntakeServiceServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.ListSosRequests(ctx, in)
			}),
		},
		{
			MethodName: "UpdateSosRequest",
			Handler: unaryHandler(methodUpdateSosRequest, func(s IntakeServiceServer, ctx context.Context, in *structpb.Struct) (any, error) {
				return s.UpdateSosRequest(ctx, in)
			}),
		},
	},
	Streams: []grpc.StreamDesc{},
}

// unaryHandler builds a grpc.MethodDesc handler the way generated code does.
func unaryHandler[Req any, PReq interface {
	*Req
}](fullMethod string, call func(IntakeServiceServer, context.Context, PReq) (any, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := PReq(new(Req))
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(IntakeServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(IntakeServiceServer), ctx, req.(PReq))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// IntakeClient calls IntakeService over cc.
type IntakeClient struct {
	cc grpc.ClientConnInterface
}

func NewIntakeClient(cc grpc.ClientConnInterface) *IntakeClient {
	return &IntakeClient{cc: cc}
}

func (c *IntakeClient) SubmitSosRequest(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodSubmitSosRequest, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *IntakeClient) SubmitHelpOffer(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodSubmitHelpOffer, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *IntakeClient) ListReliefCamps(ctx context.Context, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, methodListReliefCamps, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *IntakeClient) ListSosRequests(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, methodListSosRequests, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *IntakeClient) UpdateSosRequest(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodUpdateSosRequest, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
