package grpc

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/GriffinCanCode/drivy/backend/internal/infrastructure/tracing"
	storageprovider "github.com/GriffinCanCode/drivy/backend/internal/providers/storage"
	"github.com/GriffinCanCode/drivy/backend/internal/shared/types"
)

// Client calls the bridge service
type Client struct {
	conn           *grpc.ClientConn
	addr           string
	storageChannel string
}

// NewClient creates a bridge client. Extra dial options are appended to the
// defaults, which lets tests dial an in-memory listener.
func NewClient(addr string, tracer *tracing.Tracer, extra ...grpc.DialOption) (*Client, error) {
	opts := []grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:    60 * time.Second,
			Timeout: 20 * time.Second,
		}),
	}
	if tracer != nil {
		opts = append(opts, grpc.WithUnaryInterceptor(tracing.GRPCClientInterceptor(tracer)))
	}
	opts = append(opts, extra...)

	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to dial bridge: %w", err)
	}
	return &Client{conn: conn, addr: addr, storageChannel: storageprovider.DefaultChannel}, nil
}

// WithStorageChannel points StoragePaths at a non-default storage channel
func (c *Client) WithStorageChannel(name string) *Client {
	if name != "" {
		c.storageChannel = name
	}
	return c
}

// Conn exposes the underlying connection, e.g. for health checks
func (c *Client) Conn() *grpc.ClientConn {
	return c.conn
}

// Invoke calls method on channel with optional arguments
func (c *Client) Invoke(ctx context.Context, channel, method string, args interface{}) (*types.Result, error) {
	fields := map[string]interface{}{
		"channel": channel,
		"method":  method,
	}
	if args != nil {
		fields["arguments"] = args
	}
	plain, err := plainJSON(fields)
	if err != nil {
		return nil, fmt.Errorf("encode arguments: %w", err)
	}
	req, err := structpb.NewStruct(plain)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	reply := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, InvokeMethod, req, reply); err != nil {
		return nil, err
	}
	return structToResult(reply)
}

// StoragePaths returns the mount roots of the available volumes
func (c *Client) StoragePaths(ctx context.Context) ([]string, error) {
	result, err := c.Invoke(ctx, c.storageChannel, storageprovider.MethodGetStoragePaths, nil)
	if err != nil {
		return nil, err
	}
	return storageprovider.DecodePaths(result)
}

// Close closes the connection
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
