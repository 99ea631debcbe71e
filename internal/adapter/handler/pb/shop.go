package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	ShopServiceName      = "gildedrose.Shop"
	Shop_Simulate_Method = "/gildedrose.Shop/Simulate"
)

type Seed struct {
	Name    string `json:"name"`
	SellIn  int32  `json:"sell_in"`
	Quality int32  `json:"quality"`
}

// ItemState.SellIn is 64-bit since it keeps counting down past the int32
// range accepted in Seed.SellIn.
type ItemState struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	SellIn   int64  `json:"sell_in"`
	Quality  int32  `json:"quality"`
}

type DayReport struct {
	Day   int32        `json:"day"`
	Items []*ItemState `json:"items"`
	Text  string       `json:"text"`
}

type SimulateRequest struct {
	// Items empty means: use the server's configured item source.
	Items []*Seed `json:"items,omitempty"`
	Days  int32   `json:"days"`
}

func (x *SimulateRequest) GetItems() []*Seed {
	if x != nil {
		return x.Items
	}
	return nil
}

func (x *SimulateRequest) GetDays() int32 {
	if x != nil {
		return x.Days
	}
	return 0
}

type SimulateResponse struct {
	SimulationId string       `json:"simulation_id"`
	Reports      []*DayReport `json:"reports"`
}

type ShopServer interface {
	Simulate(context.Context, *SimulateRequest) (*SimulateResponse, error)
}

type UnimplementedShopServer struct{}

func (UnimplementedShopServer) Simulate(context.Context, *SimulateRequest) (*SimulateResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Simulate not implemented")
}

func RegisterShopServer(s grpc.ServiceRegistrar, srv ShopServer) {
	s.RegisterService(&Shop_ServiceDesc, srv)
}

func _Shop_Simulate_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SimulateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ShopServer).Simulate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Shop_Simulate_Method,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ShopServer).Simulate(ctx, req.(*SimulateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

var Shop_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ShopServiceName,
	HandlerType: (*ShopServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Simulate",
			Handler:    _Shop_Simulate_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gildedrose/shop",
}

type ShopClient interface {
	Simulate(ctx context.Context, in *SimulateRequest, opts ...grpc.CallOption) (*SimulateResponse, error)
}

type shopClient struct {
	cc grpc.ClientConnInterface
}

func NewShopClient(cc grpc.ClientConnInterface) ShopClient {
	return &shopClient{cc}
}

func (c *shopClient) Simulate(ctx context.Context, in *SimulateRequest, opts ...grpc.CallOption) (*SimulateResponse, error) {
	out := new(SimulateResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(JSONCodecName)}, opts...)
	if err := c.cc.Invoke(ctx, Shop_Simulate_Method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
