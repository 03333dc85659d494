package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/drivy/backend/internal/channel"
	"github.com/GriffinCanCode/drivy/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/drivy/backend/internal/infrastructure/monitoring"
)

const (
	maxFrameSize = 64 << 10
	writeTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // UI shell runs on a local origin
	},
}

// Frame is one method call sent by the UI shell
type Frame struct {
	ID      string          `json:"id"`
	Channel string          `json:"channel"`
	Call    json.RawMessage `json:"call"`
}

// Reply carries the codec envelope for a frame; a null envelope means the
// method is not implemented
type Reply struct {
	ID       string          `json:"id"`
	Envelope json.RawMessage `json:"envelope"`
}

// ErrorReply reports a frame that never reached a handler
type ErrorReply struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// Handler manages WebSocket connections
type Handler struct {
	registry *channel.Registry
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(registry *channel.Registry, metrics *monitoring.Metrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Handler{
		registry: registry,
		metrics:  metrics,
		logger:   logger.Named("ws"),
	}
}

// HandleConnection upgrades the request and serves frames until the peer
// disconnects. Frames are answered in the order they arrive.
func (h *Handler) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	ctx := logging.WithFields(c.Request.Context(), zap.String("conn_id", connID))
	log := h.logger.Ctx(ctx)

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}
	log.Debug("WebSocket connected", zap.String("remote", c.ClientIP()))

	conn.SetReadLimit(maxFrameSize)

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn("WebSocket read error", zap.Error(err))
			}
			break
		}
		if msgType != websocket.TextMessage && msgType != websocket.BinaryMessage {
			continue
		}
		h.record("in", "frame")

		if err := h.send(conn, h.dispatch(ctx, data)); err != nil {
			log.Warn("WebSocket write error", zap.Error(err))
			break
		}
	}

	log.Debug("WebSocket disconnected")
}

// dispatch turns one inbound frame into the reply to send back
func (h *Handler) dispatch(ctx context.Context, data []byte) interface{} {
	var frame Frame
	if err := sonic.Unmarshal(data, &frame); err != nil {
		return h.fail("", "malformed frame: "+err.Error())
	}
	if frame.Channel == "" {
		return h.fail(frame.ID, "missing channel")
	}

	call, err := channel.DecodeMethodCall(frame.Call)
	if err != nil {
		return h.fail(frame.ID, err.Error())
	}

	result, err := h.registry.Invoke(ctx, frame.Channel, call)
	if err != nil {
		if errors.Is(err, channel.ErrChannelNotFound) {
			return h.fail(frame.ID, err.Error())
		}
		return h.fail(frame.ID, "invoke failed: "+err.Error())
	}

	envelope, err := channel.EncodeEnvelope(result)
	if err != nil {
		return h.fail(frame.ID, err.Error())
	}
	if len(envelope) == 0 {
		envelope = json.RawMessage("null")
	}

	h.record("out", string(result.Status))
	return Reply{ID: frame.ID, Envelope: envelope}
}

func (h *Handler) fail(id, msg string) ErrorReply {
	h.record("out", "error_frame")
	return ErrorReply{ID: id, Error: msg}
}

func (h *Handler) send(conn *websocket.Conn, reply interface{}) error {
	data, err := sonic.Marshal(reply)
	if err != nil {
		return err
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}

func (h *Handler) record(direction, msgType string) {
	if h.metrics != nil {
		h.metrics.RecordWSMessage(direction, msgType)
	}
}
