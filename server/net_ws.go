package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/multierr"

	"ssrarena/engine"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 1 << 10 // 输入包很小，1KB 足够
)

// SessionHeader 升级响应中携带会话 ID，便于客户端查询预览与指标
const SessionHeader = "X-Session-Id"

// ClientConn 一个 WS 连接：读协程投递输入包，写协程发送帧
type ClientConn struct {
	ws      *websocket.Conn
	session *Session
}

func NewClientConn(ws *websocket.Conn, s *Session) *ClientConn {
	return &ClientConn{ws: ws, session: s}
}

// writePump 独立协程，从会话输出通道取帧写出到 WS
// 收到关闭信号或写失败时关闭输出通道，引擎随之停止
func (c *ClientConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	out := c.session.Output()
	defer func() {
		ticker.Stop()
		c.session.Close()
		GetSessionManager().Remove(c.session.ID)
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
		if err := c.ws.Close(); err != nil {
			Log.Debugw("ws close", "session", c.session.ID, "err", err)
		}
		Log.Infow("session closed", "session", c.session.ID)
	}()

	for {
		select {
		case msg := <-out.Messages():
			if msg.Kind == engine.MessageClose {
				return
			}
			if err := c.writeFrame(msg.Pix); err != nil {
				Log.Debugw("write frame", "session", c.session.ID, "err", err)
				return
			}
			c.session.recordFrame(msg.Pix)
		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-out.Done():
			return
		}
	}
}

func (c *ClientConn) writeFrame(pix []byte) error {
	return multierr.Append(
		c.ws.SetWriteDeadline(time.Now().Add(writeWait)),
		c.ws.WriteMessage(websocket.BinaryMessage, pix),
	)
}

// readPump 读取客户端二进制输入包，注入会话输入队列
func (c *ClientConn) readPump() {
	// 读泵退出时，通过输出通道通知写协程结束出站会话
	defer c.session.Output().SignalClose()
	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error { return c.ws.SetReadDeadline(time.Now().Add(pongWait)) })

	for {
		mt, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				Log.Warnw("read", "session", c.session.ID, "err", err)
			}
			return
		}
		switch mt {
		case websocket.BinaryMessage:
			c.session.OnInput(payload)
		case websocket.TextMessage:
			c.session.metrics.IncTextIgnored()
			Log.Debugw("text message ignored", "session", c.session.ID, "msg", string(payload))
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 64 << 10,
	CheckOrigin: func(r *http.Request) bool {
		// 跨域限制交给 CORS 中间件
		return true
	},
}

// HandleConnect WebSocket 接入：每个连接创建一个会话并启动引擎
func HandleConnect(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := NewSession(cfg)
		if err != nil {
			Log.Errorw("create session", "err", err)
			http.Error(w, "engine unavailable", http.StatusInternalServerError)
			return
		}

		ws, err := upgrader.Upgrade(w, r, http.Header{SessionHeader: {sess.ID}})
		if err != nil {
			Log.Warnf("upgrade error: %v", err)
			sess.Close()
			return
		}

		GetSessionManager().Add(sess)
		Log.Infow("session opened", "session", sess.ID, "remote", r.RemoteAddr)

		client := NewClientConn(ws, sess)
		sess.Start()
		go client.writePump()
		go client.readPump()
	}
}
