package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"passInWeb/internal/modules/attendees/domain"
)

const (
	defaultPort         = "8080"
	defaultAPIBaseURL   = "https://nlwunit2024-production.up.railway.app"
	defaultEventID      = "264d0ff8-325b-439d-93a8-e433594e4606"
	defaultAPITimeout   = 10 * time.Second
	defaultCacheTTL     = 15 * time.Second
	defaultCheckInTopic = "attendees.checked-in"
	defaultKafkaGroupID = "passin-web"
	defaultWSSendBuffer = 16
	defaultLogDirectory = "./logs"
	defaultRedisAddress = "localhost:6379"
	cacheDriverNone     = "none"
	cacheDriverMemory   = "memory"
	cacheDriverRedis    = "redis"
)

type Config struct {
	Server    ServerConfig
	Attendees AttendeesConfig
	Cache     CacheConfig
	Kafka     KafkaConfig
	Websocket WebsocketConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Port            string
	DevProxyEnabled bool
}

// AttendeesConfig points at the remote attendee endpoint.
type AttendeesConfig struct {
	BaseURL    string
	EventID    string
	Timeout    time.Duration
	FilterMode domain.FilterMode
}

type CacheConfig struct {
	Driver        string
	TTL           time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func (c CacheConfig) Enabled() bool { return c.Driver != cacheDriverNone && c.TTL > 0 }

func (c CacheConfig) UsesRedis() bool { return c.Driver == cacheDriverRedis }

type KafkaConfig struct {
	Brokers      []string
	GroupID      string
	CheckInTopic string
}

type WebsocketConfig struct {
	SendBuffer int
}

type LoggingConfig struct {
	Level     string
	Format    string
	Directory string
}

// Load reads the process environment.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom reads configuration through getenv.
func LoadFrom(getenv func(string) string) (*Config, error) {
	env := reader{getenv: getenv}

	cfg := &Config{
		Server: ServerConfig{
			Port:            env.str("PORT", defaultPort),
			DevProxyEnabled: env.boolean("DEV_PROXY_ENABLED", false),
		},
		Attendees: AttendeesConfig{
			BaseURL: strings.TrimRight(env.str("ATTENDEES_API_BASE_URL", defaultAPIBaseURL), "/"),
			EventID: env.str("ATTENDEES_EVENT_ID", defaultEventID),
			Timeout: env.duration("ATTENDEES_API_TIMEOUT", defaultAPITimeout),
		},
		Cache: CacheConfig{
			Driver:        strings.ToLower(env.str("CACHE_DRIVER", cacheDriverMemory)),
			TTL:           env.duration("CACHE_TTL", defaultCacheTTL),
			RedisAddr:     env.str("REDIS_ADDR", defaultRedisAddress),
			RedisPassword: getenv("REDIS_PASSWORD"),
			RedisDB:       env.integer("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers:      env.list("KAFKA_BROKERS", "KAFKA_BROKER"),
			GroupID:      env.str("KAFKA_GROUP_ID", defaultKafkaGroupID),
			CheckInTopic: env.str("KAFKA_CHECKIN_TOPIC", defaultCheckInTopic),
		},
		Websocket: WebsocketConfig{
			SendBuffer: env.integer("WS_SEND_BUFFER", defaultWSSendBuffer),
		},
		Logging: LoggingConfig{
			Level:     env.str("LOG_LEVEL", "info"),
			Format:    env.str("LOG_FORMAT", "text"),
			Directory: env.str("LOG_DIR", defaultLogDirectory),
		},
	}

	mode, err := domain.ParseFilterMode(getenv("ATTENDEES_FILTER_MODE"))
	if err != nil {
		return nil, fmt.Errorf("ATTENDEES_FILTER_MODE: %w", err)
	}
	cfg.Attendees.FilterMode = mode

	if len(env.errs) > 0 {
		return nil, env.errs[0]
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if _, err := uuid.Parse(c.Attendees.EventID); err != nil {
		return fmt.Errorf("ATTENDEES_EVENT_ID must be a uuid: %w", err)
	}
	base, err := url.Parse(c.Attendees.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return fmt.Errorf("ATTENDEES_API_BASE_URL must be an absolute url, got %q", c.Attendees.BaseURL)
	}
	switch c.Cache.Driver {
	case cacheDriverNone, cacheDriverMemory, cacheDriverRedis:
	default:
		return fmt.Errorf("CACHE_DRIVER must be one of none, memory, redis; got %q", c.Cache.Driver)
	}
	if c.Websocket.SendBuffer <= 0 {
		return fmt.Errorf("WS_SEND_BUFFER must be positive, got %d", c.Websocket.SendBuffer)
	}
	if c.Attendees.Timeout <= 0 {
		return fmt.Errorf("ATTENDEES_API_TIMEOUT must be positive, got %s", c.Attendees.Timeout)
	}
	return nil
}

type reader struct {
	getenv func(string) string
	errs   []error
}

func (r *reader) str(key, fallback string) string {
	if v := strings.TrimSpace(r.getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (r *reader) boolean(key string, fallback bool) bool {
	raw := strings.TrimSpace(r.getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

func (r *reader) integer(key string, fallback int) int {
	raw := strings.TrimSpace(r.getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

// duration accepts Go durations ("5s") or a plain number of seconds.
func (r *reader) duration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(r.getenv(key))
	if raw == "" {
		return fallback
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return v
}

// list reads a comma separated list from the first key that is set.
func (r *reader) list(keys ...string) []string {
	for _, key := range keys {
		raw := strings.TrimSpace(r.getenv(key))
		if raw == "" {
			continue
		}
		var out []string
		for _, part := range strings.Split(raw, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return nil
}
