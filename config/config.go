// =============================================================================
// 📦 condcache 配置加载器
// =============================================================================
// 插件级默认值加载，支持 YAML 文件 + 环境变量覆盖
//
// 使用方法:
//
//	cfg, err := config.Load("condcache.yaml")
//
// 配置优先级: 默认值 → YAML 文件 → 环境变量
// =============================================================================
package config

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// EnvPrefix 环境变量前缀.
const EnvPrefix = "CONDCACHE"

// Config 是插件的完整配置.每次调用传入的 cache_limit 始终优先；
// 这里只提供宿主在图中省略字段时使用的默认值.
type Config struct {
	// Node 节点默认值
	Node NodeConfig `yaml:"node"`

	// Log 日志配置
	Log LogConfig `yaml:"log"`

	// Metrics 指标配置
	Metrics MetricsConfig `yaml:"metrics"`
}

// NodeConfig 节点默认值
type NodeConfig struct {
	// 缓存上限默认值
	CacheLimit int `yaml:"cache_limit"`
	// guidance 默认值
	Guidance float64 `yaml:"guidance"`
}

// LogConfig 日志配置
type LogConfig struct {
	// 级别: debug, info, warn, error
	Level string `yaml:"level"`
	// 格式: json, console
	Format string `yaml:"format"`
}

// MetricsConfig 指标配置
type MetricsConfig struct {
	// 是否启用
	Enabled bool `yaml:"enabled"`
	// Prometheus namespace
	Namespace string `yaml:"namespace"`
}

// DefaultConfig 返回默认配置.
func DefaultConfig() *Config {
	return &Config{
		Node: NodeConfig{
			CacheLimit: 10,
			Guidance:   3.5,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Metrics: MetricsConfig{
			Enabled:   false,
			Namespace: "condcache",
		},
	}
}

// Load 加载配置：默认值 → YAML 文件（path 为空或文件不存在时跳过）→
// 环境变量覆盖，最后做校验.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv 应用环境变量覆盖
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvPrefix + "_CACHE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Node.CacheLimit = n
		}
	}
	if v := os.Getenv(EnvPrefix + "_GUIDANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Node.Guidance = f
		}
	}
	if v := os.Getenv(EnvPrefix + "_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvPrefix + "_METRICS_NAMESPACE"); v != "" {
		cfg.Metrics.Namespace = v
	}
}

// Validate 校验配置.范围与节点输入声明一致.
func (c *Config) Validate() error {
	if c.Node.CacheLimit < 1 || c.Node.CacheLimit > 100 {
		return fmt.Errorf("node.cache_limit must be in [1, 100], got %d", c.Node.CacheLimit)
	}
	if c.Node.Guidance < 0.0 || c.Node.Guidance > 100.0 {
		return fmt.Errorf("node.guidance must be in [0.0, 100.0], got %g", c.Node.Guidance)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug/info/warn/error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("metrics.namespace must not be empty when metrics are enabled")
	}
	return nil
}

// NewLogger 按日志配置构建 zap 日志器.
func (c *Config) NewLogger() (*zap.Logger, error) {
	var zapCfg zap.Config
	if c.Log.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(c.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	zapCfg.Level = level

	return zapCfg.Build()
}
