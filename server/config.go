package server

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"ssrarena/engine"
)

// Config 服务进程配置，来自 .env 与环境变量
type Config struct {
	Addr string

	Width    int
	Height   int
	TickRate int

	InboundQueue  int // 每个会话的输入包队列容量
	OutboundQueue int // 每个会话的帧输出队列容量

	LogFile  string
	LogLevel string

	CORSOrigins  []string
	StaticDir    string
	PreviewWidth int
}

// LoadConfig 读取 .env（不存在则忽略）后按环境变量覆盖默认值
func LoadConfig() Config {
	_ = godotenv.Load()
	return Config{
		Addr:          getEnv("ADDR", ":8080"),
		Width:         getEnvInt("FRAME_WIDTH", engine.DefaultWidth),
		Height:        getEnvInt("FRAME_HEIGHT", engine.DefaultHeight),
		TickRate:      getEnvInt("TICK_RATE", engine.DefaultTickRate),
		InboundQueue:  getEnvInt("INBOUND_QUEUE", 100),
		OutboundQueue: getEnvInt("OUTBOUND_QUEUE", 100),
		LogFile:       getEnv("LOG_FILE", "app.log"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
		StaticDir:     getEnv("STATIC_DIR", "web"),
		PreviewWidth:  getEnvInt("PREVIEW_WIDTH", 200),
	}
}

// EngineConfig 单个会话引擎的构造参数
func (c Config) EngineConfig() engine.Config {
	return engine.Config{
		Width:    c.Width,
		Height:   c.Height,
		TickRate: c.TickRate,
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return def
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
