package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls PartyService over any grpc connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client { return &Client{cc: cc} }

func (c *Client) DrawNext(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.callEmpty(ctx, "DrawNext", opts)
}

func (c *Client) ResetBingo(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.callEmpty(ctx, "ResetBingo", opts)
}

func (c *Client) GetBingo(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.callEmpty(ctx, "GetBingo", opts)
}

func (c *Client) GetAmida(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.callEmpty(ctx, "GetAmida", opts)
}

func (c *Client) GetAmidaResult(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.callEmpty(ctx, "GetAmidaResult", opts)
}

// SetParticipants sends names as {items: [...]}.
func (c *Client) SetParticipants(ctx context.Context, names []string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	items := make([]any, len(names))
	for i, n := range names {
		items[i] = n
	}
	in, err := structpb.NewStruct(map[string]any{"items": items})
	if err != nil {
		return nil, err
	}
	return c.SetParticipantsRaw(ctx, in, opts...)
}

// SetParticipantsRaw sends in unchanged.
func (c *Client) SetParticipantsRaw(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod("SetParticipants"), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) callEmpty(ctx context.Context, method string, opts []grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod(method), &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
