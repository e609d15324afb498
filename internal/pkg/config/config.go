package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL,    default=24h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`

	Mongo      MongoConfig
	Redis      RedisConfig
	Gemini     GeminiConfig
	Dispatcher DispatcherConfig
	SOS        SOSConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=vasa_platform"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// GeminiConfig configures the hosted matching model. An empty APIKey disables
// the model entirely and the local scorer answers every matching request.
type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
	Model  string `env:"GEMINI_MODEL, default=gemini-2.0-flash"`
}

type DispatcherConfig struct {
	Workers    int `env:"DISPATCHER_WORKERS,     default=4"`
	BufferSize int `env:"DISPATCHER_BUFFER_SIZE, default=64"`
}

type SOSConfig struct {
	DedupWindow time.Duration `env:"SOS_DEDUP_WINDOW, default=60s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
