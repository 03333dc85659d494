package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/drivy/backend/internal/channel"
	"github.com/GriffinCanCode/drivy/backend/internal/domain/storage"
	"github.com/GriffinCanCode/drivy/backend/internal/infrastructure/monitoring"
	storageprovider "github.com/GriffinCanCode/drivy/backend/internal/providers/storage"
	"github.com/GriffinCanCode/drivy/backend/internal/shared/types"
)

type failingChannel struct{}

func (failingChannel) Definition() types.Channel {
	return types.Channel{Name: "test/failing", Category: types.CategorySystem}
}

func (failingChannel) Handle(ctx context.Context, call types.MethodCall) *types.Result {
	return types.Failure("UNAVAILABLE", "nothing here", map[string]interface{}{"path": "/data"})
}

func setupRouter(t *testing.T) (*gin.Engine, *monitoring.Metrics) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	metrics := monitoring.New(prometheus.NewRegistry())
	reg := channel.NewRegistry(nil, metrics)

	src := storage.NewStaticSource(
		&storage.Dir{Path: "/storage/emulated/0/Android/data/app/files"},
		nil,
		&storage.Dir{Path: "/storage/emulated/0/Android/data/app/files"},
		&storage.Dir{Path: "/storage/1234-5678/Android/data/app/files"},
	)
	require.NoError(t, reg.Register(storageprovider.New(storage.NewResolver(src, nil), "")))
	require.NoError(t, reg.Register(failingChannel{}))

	router := gin.New()
	NewHandlers(reg, metrics, nil, "test").Routes(router)
	return router, metrics
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestInvokeGetStoragePaths(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(router, "POST", "/channels/com.example.drivy/storage/invoke", `{"method":"getStoragePaths"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","result":["/storage/emulated/0","/storage/1234-5678"]}`, w.Body.String())
}

func TestInvokeNotImplemented(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(router, "POST", "/channels/com.example.drivy/storage/invoke", `{"method":"deleteEverything"}`)

	require.Equal(t, http.StatusNotImplemented, w.Code)
	body := decode(t, w)
	assert.Equal(t, "not_implemented", body["status"])
	assert.Equal(t, "deleteEverything", body["method"])
}

func TestInvokeErrorEnvelope(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(router, "POST", "/channels/test/failing/invoke", `{"method":"anything"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"status":"error","error":{"code":"UNAVAILABLE","message":"nothing here","details":{"path":"/data"}}}`, w.Body.String())
}

func TestInvokeUnknownChannel(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(router, "POST", "/channels/nope/invoke", `{"method":"getStoragePaths"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "nope", decode(t, w)["channel"])
}

func TestInvokeBadRequests(t *testing.T) {
	router, _ := setupRouter(t)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"malformed json", "/channels/com.example.drivy/storage/invoke", `{`, http.StatusBadRequest},
		{"missing method", "/channels/com.example.drivy/storage/invoke", `{"arguments":1}`, http.StatusBadRequest},
		{"missing invoke suffix", "/channels/com.example.drivy/storage", `{"method":"getStoragePaths"}`, http.StatusNotFound},
		{"empty channel", "/channels/invoke", `{"method":"getStoragePaths"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, do(router, "POST", tt.path, tt.body).Code)
		})
	}
}

func TestListChannels(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(router, "GET", "/channels", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Channels []types.Channel        `json:"channels"`
		Stats    map[string]interface{} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Channels, 2)
	assert.Equal(t, "com.example.drivy/storage", body.Channels[0].Name)
	assert.Equal(t, float64(2), body.Stats["total_channels"])
}

func TestRootAndHealth(t *testing.T) {
	router, _ := setupRouter(t)

	w := do(router, "GET", "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "online", decode(t, w)["status"])

	w = do(router, "GET", "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Contains(t, body, "metrics")
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := setupRouter(t)

	do(router, "POST", "/channels/com.example.drivy/storage/invoke", `{"method":"getStoragePaths"}`)

	w := do(router, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "getStoragePaths")
}
