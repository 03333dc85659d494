package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/drivy/backend/internal/channel"
	"github.com/GriffinCanCode/drivy/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/drivy/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/drivy/backend/internal/shared/types"
)

const invokeSuffix = "/invoke"

// Handlers contains all HTTP handlers
type Handlers struct {
	registry *channel.Registry
	metrics  *monitoring.Metrics
	logger   *logging.Logger
	version  string
}

// NewHandlers creates a new handler set. metrics and logger may be nil.
func NewHandlers(registry *channel.Registry, metrics *monitoring.Metrics, logger *logging.Logger, version string) *Handlers {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handlers{
		registry: registry,
		metrics:  metrics,
		logger:   logger.Named("http"),
		version:  version,
	}
}

// Root handles the service banner
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "drivy storage bridge",
		"version": h.version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	body := gin.H{
		"status":   "healthy",
		"channels": h.registry.Stats(),
	}
	if h.metrics != nil {
		body["metrics"] = h.metrics.Snapshot()
	}
	c.JSON(http.StatusOK, body)
}

// ListChannels lists all registered channels
func (h *Handlers) ListChannels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"channels": h.registry.List(),
		"stats":    h.registry.Stats(),
	})
}

// Invoke handles POST /channels/<channel>/invoke. Channel names may contain
// slashes, so the route is a catch-all and the suffix is checked here.
func (h *Handlers) Invoke(c *gin.Context) {
	name, ok := channelFromPath(c.Param("path"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
		return
	}

	var req types.InvokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.registry.Invoke(c.Request.Context(), name, types.MethodCall{
		Method:    req.Method,
		Arguments: req.Arguments,
	})
	if err != nil {
		if errors.Is(err, channel.ErrChannelNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "channel": name})
			return
		}
		h.logger.Ctx(c.Request.Context()).Error("Channel invocation failed",
			zap.String("channel", name),
			zap.String("method", req.Method),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	switch result.Status {
	case types.StatusSuccess:
		c.JSON(http.StatusOK, gin.H{
			"status": result.Status,
			"result": result.Value,
		})
	case types.StatusError:
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": result.Status,
			"error":  result.Error,
		})
	default:
		c.JSON(http.StatusNotImplemented, gin.H{
			"status": types.StatusNotImplemented,
			"method": req.Method,
		})
	}
}

// Metrics serves the Prometheus exposition
func (h *Handlers) Metrics() gin.HandlerFunc {
	if h.metrics == nil {
		return func(c *gin.Context) {
			c.Status(http.StatusNotFound)
		}
	}
	return gin.WrapH(h.metrics.Handler())
}

// Routes registers the bridge endpoints on router
func (h *Handlers) Routes(router gin.IRouter) {
	router.GET("/", h.Root)
	router.GET("/health", h.Health)
	router.GET("/metrics", h.Metrics())
	router.GET("/channels", h.ListChannels)
	router.POST("/channels/*path", h.Invoke)
}

func channelFromPath(p string) (string, bool) {
	p = strings.TrimPrefix(p, "/")
	if !strings.HasSuffix(p, invokeSuffix) {
		return "", false
	}
	name := strings.TrimSuffix(p, invokeSuffix)
	return name, name != ""
}
