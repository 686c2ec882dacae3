package live

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/zhouzirui/speakit/backend/internal/service/analyzer"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
)

// Handler 实时反馈通道的WebSocket处理器。录音进行中逐块接收音频，
// 交给快速分析提供方并按到达顺序回推近似反馈，与最终完整分析互不依赖。
type Handler struct {
	quick    analyzer.QuickProvider
	upgrader websocket.Upgrader
}

// New 创建实时反馈处理器
func New(quick analyzer.QuickProvider) *Handler {
	return &Handler{
		quick: quick,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册实时反馈路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/live/ws", h.handleWebSocket)
}

type inboundMessage struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// AudioChunkMessage 音频分片消息
type AudioChunkMessage struct {
	AudioData  []byte `json:"audioData"`
	ChunkIndex int    `json:"chunkIndex"`
	IsFinal    bool   `json:"isFinal"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// connection 单个实时连接的状态。writeMu 串行化读循环与ping循环的写入。
type connection struct {
	id      string
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *connection) writeJSON(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(v)
}

func (c *connection) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.PingMessage, nil)
}

// handleWebSocket 处理一条实时反馈连接。分片在读循环内依次处理，
// 因此同一连接上反馈事件的顺序与分片到达顺序一致。
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	wsConn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[live] upgrade failed: %v", err)
		return
	}
	defer wsConn.Close()

	c := &connection{id: uuid.NewString(), conn: wsConn}
	log.Printf("[live] new connection id=%s", c.id)

	// 连接关闭时取消上下文，丢弃仍在途的快速分析调用。
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	wsConn.SetReadDeadline(time.Now().Add(readTimeout))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	go h.pingLoop(ctx, c)

	h.send(c, "connected", map[string]any{"connectionId": c.id})

	for {
		select {
		case <-ctx.Done():
			return
		default:
			// 帧读取与JSON解析分开处理：读取失败关闭连接，
			// 解析失败只丢弃该帧。
			_, raw, err := wsConn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
					log.Printf("[live] read error id=%s: %v", c.id, err)
				}
				return
			}

			wsConn.SetReadDeadline(time.Now().Add(readTimeout))

			var msg inboundMessage
			if err := json.Unmarshal(raw, &msg); err != nil {
				log.Printf("[live] dropping unparseable frame id=%s: %v", c.id, err)
				continue
			}
			h.handleMessage(ctx, c, &msg)
		}
	}
}

// handleMessage 分发入站消息。不可解析或未知类型的消息只记录告警并丢弃，
// 连接保持打开。
func (h *Handler) handleMessage(ctx context.Context, c *connection, msg *inboundMessage) {
	switch msg.Type {
	case "audio_chunk":
		h.handleAudioChunk(ctx, c, msg.Data)
	default:
		log.Printf("[live] dropping unsupported message type=%q id=%s", msg.Type, c.id)
	}
}

func (h *Handler) handleAudioChunk(ctx context.Context, c *connection, raw json.RawMessage) {
	var chunk AudioChunkMessage
	if err := json.Unmarshal(raw, &chunk); err != nil {
		log.Printf("[live] dropping malformed audio chunk id=%s: %v", c.id, err)
		return
	}

	feedback, err := h.quick.QuickAnalyze(ctx, chunk.AudioData)
	if err != nil {
		// 快速分析尽力而为，单个分片失败不影响后续分片。
		log.Printf("[live] quick analysis failed id=%s chunk=%d: %v", c.id, chunk.ChunkIndex, err)
		return
	}

	h.send(c, "live_feedback", feedback)
}

func (h *Handler) send(c *connection, msgType string, data interface{}) {
	msg := outgoingMessage{
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now().Unix(),
	}
	if err := c.writeJSON(msg); err != nil {
		log.Printf("[live] write failed id=%s: %v", c.id, err)
	}
}

// pingLoop 定期发送ping消息
func (h *Handler) pingLoop(ctx context.Context, c *connection) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.ping(); err != nil {
				return
			}
		}
	}
}
