// Package client is a Go client for the bridge HTTP API, used by drivyctl
// and integration tests.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/drivy/backend/internal/channel"
	storageprovider "github.com/GriffinCanCode/drivy/backend/internal/providers/storage"
	"github.com/GriffinCanCode/drivy/backend/internal/shared/types"
)

// ErrUnexpectedReply is returned when the server answers with an unknown shape
var ErrUnexpectedReply = errors.New("unexpected reply")

// Config configures a Client
type Config struct {
	BaseURL        string
	Timeout        time.Duration
	RetryMax       int
	RetryWaitMin   time.Duration
	RetryWaitMax   time.Duration
	RequestsPerSec float64
	StorageChannel string
}

// DefaultConfig returns the configuration for a bridge at baseURL
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:        baseURL,
		Timeout:        30 * time.Second,
		RetryMax:       3,
		RetryWaitMin:   200 * time.Millisecond,
		RetryWaitMax:   5 * time.Second,
		RequestsPerSec: 20,
		StorageChannel: storageprovider.DefaultChannel,
	}
}

// Client calls the bridge HTTP API
type Client struct {
	resty          *resty.Client
	limiter        *rate.Limiter
	storageChannel string
}

// New creates a client. Transport errors and 502/503/504 replies are retried
// by go-retryablehttp; channel error replies (500) are not.
func New(cfg Config) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.Logger = nil
	retryClient.CheckRetry = checkRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	restyClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetTransport(retryClient.StandardClient().Transport).
		SetHeader("User-Agent", "drivyctl/1.0").
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RequestsPerSec > 0 {
		burst := int(cfg.RequestsPerSec)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), burst)
	}

	storageChannel := cfg.StorageChannel
	if storageChannel == "" {
		storageChannel = storageprovider.DefaultChannel
	}

	return &Client{
		resty:          restyClient,
		limiter:        limiter,
		storageChannel: storageChannel,
	}
}

func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	switch resp.StatusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true, nil
	}
	return false, nil
}

type channelList struct {
	Channels []types.Channel `json:"channels"`
}

// Channels lists the channels registered on the bridge
func (c *Client) Channels(ctx context.Context) ([]types.Channel, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var out channelList
	resp, err := c.resty.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/channels")
	if err != nil {
		return nil, fmt.Errorf("list channels: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("list channels: %s", resp.Status())
	}
	return out.Channels, nil
}

type invokeReply struct {
	Status types.Status `json:"status"`
	Result interface{}  `json:"result"`
	Error  *types.Error `json:"error"`
}

type failureReply struct {
	Error string `json:"error"`
}

// Invoke calls method on a channel. Error and not-implemented replies are
// returned as results; only transport problems and unknown channels are errors.
func (c *Client) Invoke(ctx context.Context, name, method string, args interface{}) (*types.Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var reply invokeReply
	resp, err := c.resty.R().
		SetContext(ctx).
		SetRawPathParam("channel", name).
		SetBody(types.InvokeRequest{Method: method, Arguments: args}).
		Post("/channels/{channel}/invoke")
	if err != nil {
		return nil, fmt.Errorf("invoke %s.%s: %w", name, method, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK, http.StatusInternalServerError, http.StatusNotImplemented:
		if err := sonic.Unmarshal(resp.Body(), &reply); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedReply, err)
		}
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", channel.ErrChannelNotFound, name)
	default:
		var f failureReply
		_ = sonic.Unmarshal(resp.Body(), &f)
		return nil, fmt.Errorf("invoke %s.%s: %s %s", name, method, resp.Status(), f.Error)
	}

	switch reply.Status {
	case types.StatusSuccess:
		return types.Success(reply.Result), nil
	case types.StatusError:
		if reply.Error == nil {
			return nil, fmt.Errorf("%w: error reply without error", ErrUnexpectedReply)
		}
		return &types.Result{Status: types.StatusError, Error: reply.Error}, nil
	case types.StatusNotImplemented:
		return types.NotImplemented(), nil
	default:
		return nil, fmt.Errorf("%w: status %q", ErrUnexpectedReply, reply.Status)
	}
}

// StoragePaths returns the mount roots of the available volumes
func (c *Client) StoragePaths(ctx context.Context) ([]string, error) {
	result, err := c.Invoke(ctx, c.storageChannel, storageprovider.MethodGetStoragePaths, nil)
	if err != nil {
		return nil, err
	}
	roots, err := storageprovider.DecodePaths(result)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedReply, err)
	}
	return roots, nil
}
