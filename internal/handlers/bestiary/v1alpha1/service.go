package v1alpha1

import (
	"context"

	"google.golang.org/grpc"

	"github.com/KirkDiggler/rpg-encounters/internal/pkg/jsoncodec"
)

// Fully qualified service names, also used for health reporting
const (
	EncounterServiceName = "bestiary.v1alpha1.EncounterService"
	BestiaryServiceName  = "bestiary.v1alpha1.BestiaryService"
)

// Full method names
const (
	EncounterServiceGetEncounterInfoFullMethodName  = "/" + EncounterServiceName + "/GetEncounterInfo"
	EncounterServiceGenerateEncounterFullMethodName = "/" + EncounterServiceName + "/GenerateEncounter"
	BestiaryServiceListCreaturesFullMethodName      = "/" + BestiaryServiceName + "/ListCreatures"
	BestiaryServiceGetCreatureFullMethodName        = "/" + BestiaryServiceName + "/GetCreature"
	BestiaryServiceListFilterValuesFullMethodName   = "/" + BestiaryServiceName + "/ListFilterValues"
)

// EncounterServiceServer is the server API for the encounter service
type EncounterServiceServer interface {
	GetEncounterInfo(context.Context, *GetEncounterInfoRequest) (*GetEncounterInfoResponse, error)
	GenerateEncounter(context.Context, *GenerateEncounterRequest) (*GenerateEncounterResponse, error)
}

// BestiaryServiceServer is the server API for the bestiary service
type BestiaryServiceServer interface {
	ListCreatures(context.Context, *ListCreaturesRequest) (*ListCreaturesResponse, error)
	GetCreature(context.Context, *GetCreatureRequest) (*GetCreatureResponse, error)
	ListFilterValues(context.Context, *ListFilterValuesRequest) (*ListFilterValuesResponse, error)
}

// RegisterEncounterServiceServer registers the encounter service
func RegisterEncounterServiceServer(s grpc.ServiceRegistrar, srv EncounterServiceServer) {
	s.RegisterService(&EncounterServiceDesc, srv)
}

// RegisterBestiaryServiceServer registers the bestiary service
func RegisterBestiaryServiceServer(s grpc.ServiceRegistrar, srv BestiaryServiceServer) {
	s.RegisterService(&BestiaryServiceDesc, srv)
}

// unaryHandler adapts a typed method to a grpc.MethodDesc handler
func unaryHandler[Req, Resp any](
	fullMethod string,
	call func(srv any, ctx context.Context, req *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv, ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv, ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// EncounterServiceDesc describes the encounter service
var EncounterServiceDesc = grpc.ServiceDesc{
	ServiceName: EncounterServiceName,
	HandlerType: (*EncounterServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetEncounterInfo",
			Handler: unaryHandler(EncounterServiceGetEncounterInfoFullMethodName,
				func(srv any, ctx context.Context, req *GetEncounterInfoRequest) (*GetEncounterInfoResponse, error) {
					return srv.(EncounterServiceServer).GetEncounterInfo(ctx, req)
				}),
		},
		{
			MethodName: "GenerateEncounter",
			Handler: unaryHandler(EncounterServiceGenerateEncounterFullMethodName,
				func(srv any, ctx context.Context, req *GenerateEncounterRequest) (*GenerateEncounterResponse, error) {
					return srv.(EncounterServiceServer).GenerateEncounter(ctx, req)
				}),
		},
	},
	Streams: []grpc.StreamDesc{},
}

// BestiaryServiceDesc describes the bestiary service
var BestiaryServiceDesc = grpc.ServiceDesc{
	ServiceName: BestiaryServiceName,
	HandlerType: (*BestiaryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListCreatures",
			Handler: unaryHandler(BestiaryServiceListCreaturesFullMethodName,
				func(srv any, ctx context.Context, req *ListCreaturesRequest) (*ListCreaturesResponse, error) {
					return srv.(BestiaryServiceServer).ListCreatures(ctx, req)
				}),
		},
		{
			MethodName: "GetCreature",
			Handler: unaryHandler(BestiaryServiceGetCreatureFullMethodName,
				func(srv any, ctx context.Context, req *GetCreatureRequest) (*GetCreatureResponse, error) {
					return srv.(BestiaryServiceServer).GetCreature(ctx, req)
				}),
		},
		{
			MethodName: "ListFilterValues",
			Handler: unaryHandler(BestiaryServiceListFilterValuesFullMethodName,
				func(srv any, ctx context.Context, req *ListFilterValuesRequest) (*ListFilterValuesResponse, error) {
					return srv.(BestiaryServiceServer).ListFilterValues(ctx, req)
				}),
		},
	},
	Streams: []grpc.StreamDesc{},
}

// EncounterServiceClient is the client API for the encounter service
type EncounterServiceClient interface {
	GetEncounterInfo(ctx context.Context, in *GetEncounterInfoRequest, opts ...grpc.CallOption) (*GetEncounterInfoResponse, error)
	GenerateEncounter(ctx context.Context, in *GenerateEncounterRequest, opts ...grpc.CallOption) (*GenerateEncounterResponse, error)
}

// BestiaryServiceClient is the client API for the bestiary service
type BestiaryServiceClient interface {
	ListCreatures(ctx context.Context, in *ListCreaturesRequest, opts ...grpc.CallOption) (*ListCreaturesResponse, error)
	GetCreature(ctx context.Context, in *GetCreatureRequest, opts ...grpc.CallOption) (*GetCreatureResponse, error)
	ListFilterValues(ctx context.Context, in *ListFilterValuesRequest, opts ...grpc.CallOption) (*ListFilterValuesResponse, error)
}

type jsonClient struct {
	cc grpc.ClientConnInterface
}

// invoke sends the call with the JSON content subtype
func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(jsoncodec.Name)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// NewEncounterServiceClient creates an encounter client on the connection
func NewEncounterServiceClient(cc grpc.ClientConnInterface) EncounterServiceClient {
	return &encounterClient{jsonClient{cc: cc}}
}

type encounterClient struct{ jsonClient }

func (c *encounterClient) GetEncounterInfo(ctx context.Context, in *GetEncounterInfoRequest, opts ...grpc.CallOption) (*GetEncounterInfoResponse, error) {
	return invoke[GetEncounterInfoResponse](ctx, c.cc, EncounterServiceGetEncounterInfoFullMethodName, in, opts)
}

func (c *encounterClient) GenerateEncounter(ctx context.Context, in *GenerateEncounterRequest, opts ...grpc.CallOption) (*GenerateEncounterResponse, error) {
	return invoke[GenerateEncounterResponse](ctx, c.cc, EncounterServiceGenerateEncounterFullMethodName, in, opts)
}

// NewBestiaryServiceClient creates a bestiary client on the connection
func NewBestiaryServiceClient(cc grpc.ClientConnInterface) BestiaryServiceClient {
	return &bestiaryClient{jsonClient{cc: cc}}
}

type bestiaryClient struct{ jsonClient }

func (c *bestiaryClient) ListCreatures(ctx context.Context, in *ListCreaturesRequest, opts ...grpc.CallOption) (*ListCreaturesResponse, error) {
	return invoke[ListCreaturesResponse](ctx, c.cc, BestiaryServiceListCreaturesFullMethodName, in, opts)
}

func (c *bestiaryClient) GetCreature(ctx context.Context, in *GetCreatureRequest, opts ...grpc.CallOption) (*GetCreatureResponse, error) {
	return invoke[GetCreatureResponse](ctx, c.cc, BestiaryServiceGetCreatureFullMethodName, in, opts)
}

func (c *bestiaryClient) ListFilterValues(ctx context.Context, in *ListFilterValuesRequest, opts ...grpc.CallOption) (*ListFilterValuesResponse, error) {
	return invoke[ListFilterValuesResponse](ctx, c.cc, BestiaryServiceListFilterValuesFullMethodName, in, opts)
}
