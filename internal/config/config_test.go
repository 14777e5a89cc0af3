package config

import (
	"strings"
	"testing"
	"time"

	"passInWeb/internal/modules/attendees/domain"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(envMap(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "8080" || cfg.Server.DevProxyEnabled {
		t.Fatalf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Attendees.BaseURL != "https://nlwunit2024-production.up.railway.app" {
		t.Fatalf("unexpected base url: %s", cfg.Attendees.BaseURL)
	}
	if cfg.Attendees.EventID != "264d0ff8-325b-439d-93a8-e433594e4606" {
		t.Fatalf("unexpected event id: %s", cfg.Attendees.EventID)
	}
	if cfg.Attendees.Timeout != 10*time.Second || cfg.Attendees.FilterMode != domain.FilterModeServer {
		t.Fatalf("unexpected attendees config: %+v", cfg.Attendees)
	}
	if !cfg.Cache.Enabled() || cfg.Cache.UsesRedis() {
		t.Fatalf("expected in-memory cache by default: %+v", cfg.Cache)
	}
	if len(cfg.Kafka.Brokers) != 0 || cfg.Kafka.CheckInTopic != "attendees.checked-in" {
		t.Fatalf("unexpected kafka config: %+v", cfg.Kafka)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{
		"PORT":                   "3000",
		"DEV_PROXY_ENABLED":      "true",
		"ATTENDEES_API_BASE_URL": "http://localhost:3333/",
		"ATTENDEES_API_TIMEOUT":  "3",
		"ATTENDEES_FILTER_MODE":  "legacy",
		"CACHE_DRIVER":           "REDIS",
		"CACHE_TTL":              "1m",
		"REDIS_DB":               "2",
		"KAFKA_BROKER":           "localhost:9092, localhost:9093",
		"WS_SEND_BUFFER":         "4",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "3000" || !cfg.Server.DevProxyEnabled {
		t.Fatalf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Attendees.BaseURL != "http://localhost:3333" {
		t.Fatalf("trailing slash must be trimmed: %s", cfg.Attendees.BaseURL)
	}
	if cfg.Attendees.Timeout != 3*time.Second || cfg.Attendees.FilterMode != domain.FilterModeClient {
		t.Fatalf("unexpected attendees config: %+v", cfg.Attendees)
	}
	if !cfg.Cache.UsesRedis() || cfg.Cache.TTL != time.Minute || cfg.Cache.RedisDB != 2 {
		t.Fatalf("unexpected cache config: %+v", cfg.Cache)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "localhost:9093" {
		t.Fatalf("unexpected brokers: %v", cfg.Kafka.Brokers)
	}
	if cfg.Websocket.SendBuffer != 4 {
		t.Fatalf("unexpected send buffer: %d", cfg.Websocket.SendBuffer)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"ATTENDEES_EVENT_ID":     {"ATTENDEES_EVENT_ID": "not-a-uuid"},
		"ATTENDEES_FILTER_MODE":  {"ATTENDEES_FILTER_MODE": "sideways"},
		"CACHE_DRIVER":           {"CACHE_DRIVER": "memcached"},
		"CACHE_TTL":              {"CACHE_TTL": "soon"},
		"ATTENDEES_API_BASE_URL": {"ATTENDEES_API_BASE_URL": "localhost"},
		"WS_SEND_BUFFER":         {"WS_SEND_BUFFER": "0"},
		"DEV_PROXY_ENABLED":      {"DEV_PROXY_ENABLED": "maybe"},
	}

	for key, values := range cases {
		_, err := LoadFrom(envMap(values))
		if err == nil || !strings.Contains(err.Error(), key) {
			t.Fatalf("%s: expected error naming the key, got %v", key, err)
		}
	}
}

func TestCacheConfig_Disabled(t *testing.T) {
	cfg, err := LoadFrom(envMap(map[string]string{"CACHE_DRIVER": "none"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Cache.Enabled() {
		t.Fatal("expected cache to be disabled")
	}
}
