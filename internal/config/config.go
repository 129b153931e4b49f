package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

const envPrefix = "GREENHOUSE"

// Config is the full runtime configuration, read from configs/config.yml and
// GREENHOUSE_* environment variables.
type Config struct {
	Port        string            `mapstructure:"port"`
	Log         LogConfig         `mapstructure:"log"`
	Server      ServerConfig      `mapstructure:"server"`
	Refresh     RefreshConfig     `mapstructure:"refresh"`
	Greenhouses GreenhousesConfig `mapstructure:"greenhouses"`
	Store       StoreConfig       `mapstructure:"store"`
	DB          DBConfig          `mapstructure:"db"`
	Redis       RedisConfig       `mapstructure:"redis"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ServerConfig struct {
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

// RefreshConfig tunes the refresh scheduler.
type RefreshConfig struct {
	Interval              time.Duration `mapstructure:"interval"`
	ReconnectDelay        time.Duration `mapstructure:"reconnect_delay"`
	DisconnectProbability float64       `mapstructure:"disconnect_probability"`
	TrendPoints           int           `mapstructure:"trend_points"`
	Seed                  int64         `mapstructure:"seed"` // 0 = time based
}

type GreenhousesConfig struct {
	PlantTypes []string `mapstructure:"plant_types"`
}

type StoreConfig struct {
	Actuators string `mapstructure:"actuators"` // memory | sqlite
	Snapshots string `mapstructure:"snapshots"` // memory | redis
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("server.read_header_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("refresh.interval", 5*time.Minute)
	v.SetDefault("refresh.reconnect_delay", 3*time.Second)
	v.SetDefault("refresh.disconnect_probability", 0.05)
	v.SetDefault("refresh.trend_points", 24)
	v.SetDefault("refresh.seed", 0)

	v.SetDefault("greenhouses.plant_types", []string{"Tomato", "Lettuce", "Basil", "Strawberry"})

	v.SetDefault("store.actuators", DriverMemory)
	v.SetDefault("store.snapshots", DriverMemory)
	v.SetDefault("db.path", "greenhouse.db")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 15*time.Minute)
}

// Load reads the config file (if any) into a Config. An empty path searches
// ./configs/config.yml; a missing file falls back to defaults and env.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs")
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the scheduler and stores cannot run with.
func (c Config) Validate() error {
	if c.Refresh.Interval <= 0 {
		return fmt.Errorf("refresh.interval must be positive, got %s", c.Refresh.Interval)
	}
	if c.Refresh.ReconnectDelay <= 0 {
		return fmt.Errorf("refresh.reconnect_delay must be positive, got %s", c.Refresh.ReconnectDelay)
	}
	if p := c.Refresh.DisconnectProbability; p < 0 || p > 1 {
		return fmt.Errorf("refresh.disconnect_probability must be within [0,1], got %g", p)
	}
	if c.Refresh.TrendPoints < 0 {
		return fmt.Errorf("refresh.trend_points must not be negative, got %d", c.Refresh.TrendPoints)
	}
	if len(c.Greenhouses.PlantTypes) == 0 {
		return errors.New("greenhouses.plant_types must list at least one greenhouse")
	}
	switch c.Store.Actuators {
	case DriverMemory, DriverSQLite:
	default:
		return fmt.Errorf("store.actuators: unsupported driver %q", c.Store.Actuators)
	}
	switch c.Store.Snapshots {
	case DriverMemory, DriverRedis:
	default:
		return fmt.Errorf("store.snapshots: unsupported driver %q", c.Store.Snapshots)
	}
	// The cached snapshot must outlive a refresh period, or readers see the
	// zero baseline between ticks.
	if c.Store.Snapshots == DriverRedis && c.Redis.TTL > 0 && c.Redis.TTL <= c.Refresh.Interval {
		return fmt.Errorf("redis.ttl (%s) must exceed refresh.interval (%s) or be 0", c.Redis.TTL, c.Refresh.Interval)
	}
	return nil
}
