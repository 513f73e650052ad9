package server

import (
	"encoding/json"
	"image"
	"image/png"
	"net/http"

	xdraw "golang.org/x/image/draw"
)

// HandleAdminConfig 提供运行配置的读取，以及日志级别的热更新
// GET /admin/config  返回当前配置
// POST /admin/config 以 JSON 载荷更新日志级别，如 {"logLevel":"debug"}
func HandleAdminConfig(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			writeJSON(w, http.StatusOK, map[string]any{
				"width":         cfg.Width,
				"height":        cfg.Height,
				"tickRate":      cfg.TickRate,
				"tickPeriod":    cfg.EngineConfig().Period().String(),
				"inboundQueue":  cfg.InboundQueue,
				"outboundQueue": cfg.OutboundQueue,
				"logLevel":      Level.Level().String(),
			})
		case http.MethodPost:
			var body struct {
				LogLevel *string `json:"logLevel,omitempty"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
			if body.LogLevel != nil {
				if err := Level.UnmarshalText([]byte(*body.LogLevel)); err != nil {
					http.Error(w, "invalid log level", http.StatusBadRequest)
					return
				}
			}
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "logLevel": Level.Level().String()})
			Log.Infof("config updated: logLevel=%s", Level.Level())
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// HandleMetrics 输出会话运行指标
// GET /metrics?session=<id>  不带参数时输出全部会话
func HandleMetrics(w http.ResponseWriter, r *http.Request) {
	rm := GetSessionManager()
	if id := r.URL.Query().Get("session"); id != "" {
		s, ok := rm.Get(id)
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, s.Snapshot())
		return
	}
	list := rm.List()
	sessions := make([]map[string]any, 0, len(list))
	for _, s := range list {
		sessions = append(sessions, s.Snapshot())
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":    len(sessions),
		"sessions": sessions,
	})
}

// HandlePreview 将会话最近写出的一帧缩放为 PNG 缩略图
// GET /preview?session=<id>
func HandlePreview(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("session")
		if id == "" {
			http.Error(w, "missing session query", http.StatusBadRequest)
			return
		}
		s, ok := GetSessionManager().Get(id)
		if !ok {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		src, ok := s.LastFrame()
		if !ok {
			http.Error(w, "no frame yet", http.StatusNotFound)
			return
		}
		dst := image.NewNRGBA(previewRect(src.Bounds(), cfg.PreviewWidth))
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

		w.Header().Set("Content-Type", "image/png")
		if err := png.Encode(w, dst); err != nil {
			Log.Debugw("encode preview", "session", id, "err", err)
		}
	}
}

// previewRect 按宽度等比缩放，宽高至少 1
func previewRect(b image.Rectangle, width int) image.Rectangle {
	if width <= 0 || width > b.Dx() {
		width = b.Dx()
	}
	height := b.Dy() * width / max(b.Dx(), 1)
	return image.Rect(0, 0, max(width, 1), max(height, 1))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
