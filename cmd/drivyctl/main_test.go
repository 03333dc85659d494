package main

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"github.com/GriffinCanCode/drivy/backend/internal/channel"
	"github.com/GriffinCanCode/drivy/backend/internal/client"
	"github.com/GriffinCanCode/drivy/backend/internal/domain/storage"
	bridgegrpc "github.com/GriffinCanCode/drivy/backend/internal/grpc"
	storageprovider "github.com/GriffinCanCode/drivy/backend/internal/providers/storage"
)

func TestRunCommands(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/channels":
			_, _ = w.Write([]byte(`{"channels":[{"name":"com.example.drivy/storage","methods":[{"name":"getStoragePaths"}]}]}`))
		default:
			_, _ = w.Write([]byte(`{"status":"success","result":["/storage/emulated/0"]}`))
		}
	}))
	defer server.Close()

	c := client.New(client.DefaultConfig(server.URL))
	ctx := context.Background()

	require.NoError(t, run(ctx, c, []string{"paths"}))
	require.NoError(t, run(ctx, c, []string{"channels"}))
	require.NoError(t, run(ctx, c, []string{"invoke", "com.example.drivy/storage", "getStoragePaths", `{"x":1}`}))
}

func TestRunRejectsBadInput(t *testing.T) {
	c := client.New(client.DefaultConfig("http://127.0.0.1:1"))
	ctx := context.Background()

	assert.Error(t, run(ctx, c, nil))
	assert.Error(t, run(ctx, c, []string{"format"}))
	assert.Error(t, run(ctx, c, []string{"invoke", "only-channel"}))
	assert.Error(t, run(ctx, c, []string{"invoke", "ch", "m", "{not json"}))
}

func startGRPCBridge(t *testing.T) *bridgegrpc.Client {
	t.Helper()

	reg := channel.NewRegistry(nil, nil)
	src := storage.NewStaticSource(&storage.Dir{Path: "/storage/emulated/0/Android/data/com.example.drivy/files"})
	require.NoError(t, reg.Register(storageprovider.New(storage.NewResolver(src, nil), "")))

	lis := bufconn.Listen(1 << 20)
	srv := bridgegrpc.NewServer(reg, nil, nil, nil)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	c, err := bridgegrpc.NewClient("passthrough:///bufnet", nil,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestRunOverGRPC(t *testing.T) {
	c := startGRPCBridge(t)
	ctx := context.Background()

	require.NoError(t, run(ctx, c, []string{"paths"}))
	require.NoError(t, run(ctx, c, []string{"invoke", storageprovider.DefaultChannel, "getStoragePaths"}))
	require.NoError(t, run(ctx, c, []string{"invoke", storageprovider.DefaultChannel, "format"}))
	assert.ErrorIs(t, run(ctx, c, []string{"channels"}), errChannelsOverGRPC)
}
