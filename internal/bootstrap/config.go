package bootstrap

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort     string        `mapstructure:"SERVER_PORT"`
	EngineGrpcPort string        `mapstructure:"ENGINE_GRPC_PORT"`
	EngineGrpcAddr string        `mapstructure:"ENGINE_GRPC_ADDR"`
	RedisUrl       string        `mapstructure:"REDIS_URL"`
	MoveCacheTTL   time.Duration `mapstructure:"MOVE_CACHE_TTL"`
	MongoUri       string        `mapstructure:"MONGO_URI"`
	MongoDatabase  string        `mapstructure:"MONGO_DATABASE"`
	IsLocalCors    bool          `mapstructure:"LOCAL_CORS"`
	StaticDir      string        `mapstructure:"STATIC_DIR"`
	SearchTimeout  time.Duration `mapstructure:"SEARCH_TIMEOUT"`
	MaxBoardSize   int           `mapstructure:"MAX_BOARD_SIZE"`
	WarmBoardSizes string        `mapstructure:"WARM_BOARD_SIZES"`
	WsReadTimeout  time.Duration `mapstructure:"WS_READ_TIMEOUT"`
	Debug          bool          `mapstructure:"DEBUG"`
}

var defaults = map[string]any{
	"SERVER_PORT":      ":8080",
	"ENGINE_GRPC_PORT": ":8082",
	"ENGINE_GRPC_ADDR": "",
	"REDIS_URL":        "",
	"MOVE_CACHE_TTL":   "1h",
	"MONGO_URI":        "",
	"MONGO_DATABASE":   "nxn_tictactoe",
	"LOCAL_CORS":       false,
	"STATIC_DIR":       "",
	"SEARCH_TIMEOUT":   "10s",
	"MAX_BOARD_SIZE":   10,
	"WARM_BOARD_SIZES": "3,4,5",
	"WS_READ_TIMEOUT":  "5m",
	"DEBUG":            false,
}

// Setup loads cfgPath into the environment when it exists and reads the
// configuration from the environment, falling back to defaults.
func Setup(cfgPath string) (*Config, error) {
	if cfgPath != "" {
		if err := godotenv.Load(cfgPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", cfgPath, err)
		}
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.SearchTimeout <= 0 {
		return nil, fmt.Errorf("SEARCH_TIMEOUT must be positive, got %s", cfg.SearchTimeout)
	}
	if cfg.MaxBoardSize < 0 {
		return nil, fmt.Errorf("MAX_BOARD_SIZE must not be negative, got %d", cfg.MaxBoardSize)
	}
	return &cfg, nil
}

// WarmSizes parses WARM_BOARD_SIZES ("3,4,5").
func (c Config) WarmSizes() ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(c.WarmBoardSizes, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("WARM_BOARD_SIZES: %w", err)
		}
		sizes = append(sizes, n)
	}
	return sizes, nil
}
