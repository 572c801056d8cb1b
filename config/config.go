package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"

	defaultGraceTimeout     = 10 * time.Second
	defaultPresenceDebounce = 150 * time.Millisecond
	defaultSocketPing       = 5 * time.Second
	defaultSocketWrite      = 5 * time.Second
	defaultSendBuffer       = 64
	defaultMaxMessageBytes  = 4096

	defaultReconnectAttempts = 5
	defaultReconnectInterval = time.Second
	defaultPingInterval      = 10 * time.Second
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port int `json:"port" yaml:"port"`
		// InternalPort serves the cluster push endpoint; 0 disables it.
		InternalPort       int    `json:"internalPort" yaml:"internalPort"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Postgres is optional; without it the service runs on the in-memory store.
	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	SecretKey struct {
		Access string `json:"access" yaml:"access"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// Realtime configuration for the websocket hub
	Realtime *RealtimeConfig `json:"realtime" yaml:"realtime"`

	// Reconnect configuration shared by realtime clients
	Reconnect *ReconnectConfig `json:"reconnect" yaml:"reconnect"`

	// Client configuration for cmd/fieldagent
	Client *ClientConfig `json:"client" yaml:"client"`

	// Firebase configuration for push notifications
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	// PubSub configuration for cluster fan-out
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`
}

// AuthConfig defines how caller identity is resolved on REST routes
type AuthConfig struct {
	// TrustGatewayHeaders accepts X-User-Id / X-User-Role set by the upstream gateway.
	TrustGatewayHeaders bool `json:"trustGatewayHeaders" yaml:"trustGatewayHeaders"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// RealtimeConfig tunes connection liveness and presence fan-out
type RealtimeConfig struct {
	GraceTimeout     time.Duration `json:"graceTimeout" yaml:"graceTimeout"`
	PresenceDebounce time.Duration `json:"presenceDebounce" yaml:"presenceDebounce"`
	PingInterval     time.Duration `json:"pingInterval" yaml:"pingInterval"`
	WriteTimeout     time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
	SendBuffer       int           `json:"sendBuffer" yaml:"sendBuffer"`
	MaxMessageBytes  int64         `json:"maxMessageBytes" yaml:"maxMessageBytes"`
	AllowedOrigins   []string      `json:"allowedOrigins" yaml:"allowedOrigins"`
}

// ReconnectConfig bounds client reconnection attempts
type ReconnectConfig struct {
	MaxAttempts int           `json:"maxAttempts" yaml:"maxAttempts"`
	Interval    time.Duration `json:"interval" yaml:"interval"`
}

// ClientConfig defines the endpoint and identity used by cmd/fieldagent
type ClientConfig struct {
	URL          string        `json:"url" yaml:"url"`
	APIURL       string        `json:"apiUrl" yaml:"apiUrl"`
	UserID       string        `json:"userId" yaml:"userId"`
	Role         string        `json:"role" yaml:"role"`
	Token        string        `json:"token" yaml:"token"`
	PingInterval time.Duration `json:"pingInterval" yaml:"pingInterval"`
	Latitude     float64       `json:"latitude" yaml:"latitude"`
	Longitude    float64       `json:"longitude" yaml:"longitude"`
}

// FirebaseConfig defines Firebase configuration for push notifications
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`

	// Audience expected in push OIDC tokens (for google provider)
	PushAudience string `json:"pushAudience" yaml:"pushAudience"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: POSTGRES_SSLMODE -> postgres.sslMode (not postgres.sslmode)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	// Build replicas from environment variables (POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, etc.)
	if cfg.Postgres != nil {
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

// applyDefaults fills optional sections so callers never nil-check them.
func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}

	if cfg.Realtime == nil {
		cfg.Realtime = &RealtimeConfig{}
	}
	if cfg.Realtime.GraceTimeout <= 0 {
		cfg.Realtime.GraceTimeout = defaultGraceTimeout
	}
	if cfg.Realtime.PresenceDebounce <= 0 {
		cfg.Realtime.PresenceDebounce = defaultPresenceDebounce
	}
	if cfg.Realtime.PingInterval <= 0 {
		cfg.Realtime.PingInterval = defaultSocketPing
	}
	if cfg.Realtime.WriteTimeout <= 0 {
		cfg.Realtime.WriteTimeout = defaultSocketWrite
	}
	if cfg.Realtime.SendBuffer <= 0 {
		cfg.Realtime.SendBuffer = defaultSendBuffer
	}
	if cfg.Realtime.MaxMessageBytes <= 0 {
		cfg.Realtime.MaxMessageBytes = defaultMaxMessageBytes
	}

	if cfg.Reconnect == nil {
		cfg.Reconnect = &ReconnectConfig{}
	}
	if cfg.Reconnect.MaxAttempts <= 0 {
		cfg.Reconnect.MaxAttempts = defaultReconnectAttempts
	}
	if cfg.Reconnect.Interval <= 0 {
		cfg.Reconnect.Interval = defaultReconnectInterval
	}

	if cfg.Client == nil {
		cfg.Client = &ClientConfig{}
	}
	if cfg.Client.PingInterval <= 0 {
		cfg.Client.PingInterval = defaultPingInterval
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Environment variable format: POSTGRES_REPLICAS_{index}_{field}
// Example: POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, POSTGRES_REPLICAS_0_USERNAME, POSTGRES_REPLICAS_0_PASSWORD
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			// No more replicas or incomplete configuration.
			break
		}

		replica := postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		}

		replicas = append(replicas, replica)
	}

	return replicas
}
