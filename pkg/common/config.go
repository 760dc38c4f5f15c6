package common

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/matst80/slask-storefront/pkg/types"
	"gopkg.in/yaml.v3"
)

// Config is the process configuration. Values come from an optional yaml
// file, then environment variables override them.
type Config struct {
	ListenAddress   string           `yaml:"listenAddress"`
	DataDir         string           `yaml:"dataDir"`
	RedisUrl        string           `yaml:"redisUrl"`
	RedisPassword   string           `yaml:"redisPassword"`
	RedisDB         int              `yaml:"redisDb"`
	RabbitUrl       string           `yaml:"rabbitUrl"`
	Prefix          string           `yaml:"prefix"`
	CacheSize       int              `yaml:"cacheSize"`
	Profiling       bool             `yaml:"profiling"`
	DefaultSort     types.SortKey    `yaml:"defaultSort"`
	PopularityRules []map[string]any `yaml:"popularityRules"`
	Timeouts        Timeouts         `yaml:"timeouts"`
}

func DefaultConfig() Config {
	return Config{
		ListenAddress: ":8080",
		DataDir:       "data",
		Prefix:        "storefront",
		CacheSize:     256,
		Timeouts:      DefaultTimeouts(),
	}
}

func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err = yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	str := func(curr *string, env string) {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*curr = v
		}
	}
	num := func(curr *int, env string) {
		if v := os.Getenv(env); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n >= 0 {
				*curr = n
			}
		}
	}
	str(&c.ListenAddress, "LISTEN_ADDRESS")
	str(&c.DataDir, "DATA_DIR")
	str(&c.RedisUrl, "REDIS_URL")
	str(&c.RedisPassword, "REDIS_PASSWORD")
	str(&c.RabbitUrl, "RABBIT_URL")
	str(&c.Prefix, "RABBIT_PREFIX")
	num(&c.RedisDB, "REDIS_DB")
	num(&c.CacheSize, "CACHE_SIZE")
	if v := os.Getenv("PROFILING"); v != "" {
		c.Profiling, _ = strconv.ParseBool(v)
	}
	c.Timeouts.applyEnv()
}

// ApplySettings copies the sort default and popularity rules from the
// config into settings. Rules use the same $type tagged shape as the
// settings file.
func (c *Config) ApplySettings(settings *types.Settings) error {
	if c.DefaultSort == "" && len(c.PopularityRules) == 0 {
		return nil
	}
	incoming := &types.Settings{DefaultSort: c.DefaultSort}
	if len(c.PopularityRules) > 0 {
		data, err := sonic.Marshal(c.PopularityRules)
		if err != nil {
			return err
		}
		if err = sonic.Unmarshal(data, &incoming.PopularityRules); err != nil {
			return fmt.Errorf("popularity rules: %w", err)
		}
	} else {
		settings.RLock()
		incoming.PopularityRules = settings.PopularityRules
		settings.RUnlock()
	}
	return settings.Replace(incoming)
}
