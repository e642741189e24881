package common

import (
	"time"

	"github.com/alwitt/goutils"
	"github.com/spf13/viper"
)

// ===============================================================================
// Common Submodule Config

// HTTPServerTimeoutConfig defines the timeout settings for HTTP server
type HTTPServerTimeoutConfig struct {
	// ReadTimeout is the maximum duration for reading the entire
	// request, including the body in seconds. A zero or negative
	// value means there will be no timeout.
	ReadTimeout int `mapstructure:"read" json:"read" validate:"gte=0"`
	// WriteTimeout is the maximum duration before timing out
	// writes of the response in seconds. A zero or negative value
	// means there will be no timeout.
	WriteTimeout int `mapstructure:"write" json:"write" validate:"gte=0"`
	// IdleTimeout is the maximum amount of time to wait for the
	// next request when keep-alives are enabled in seconds. If
	// IdleTimeout is zero, the value of ReadTimeout is used. If
	// both are zero, there is no timeout.
	IdleTimeout int `mapstructure:"idle" json:"idle" validate:"gte=0"`
}

// HTTPServerConfig defines the HTTP server parameters
type HTTPServerConfig struct {
	// ListenOn is the interface the HTTP server will listen on
	ListenOn string `mapstructure:"listenOn" json:"listenOn" validate:"required,ip"`
	// Port is the port the HTTP server will listen on
	Port uint16 `mapstructure:"appPort" json:"appPort" validate:"required,gt=0,lt=65536"`
	// Timeouts sets the HTTP timeout settings
	Timeouts HTTPServerTimeoutConfig `mapstructure:"timeoutSecs" json:"timeoutSecs" validate:"required,dive"`
}

// HTTPRequestLogging defines HTTP request logging parameters
type HTTPRequestLogging struct {
	// LogLevel output request logs at this level
	LogLevel goutils.HTTPRequestLogLevel `mapstructure:"logLevel" json:"logLevel" validate:"oneof=warn info debug"`
	// HealthLogLevel output health check logs at this level
	HealthLogLevel goutils.HTTPRequestLogLevel `mapstructure:"healthLogLevel" json:"healthLogLevel" validate:"oneof=warn info debug"`
	// RequestIDHeader is the HTTP header containing the API request ID
	RequestIDHeader string `mapstructure:"requestIDHeader" json:"requestIDHeader"`
	// DoNotLogHeaders is the list of headers to not include in logging metadata
	DoNotLogHeaders []string `mapstructure:"skipHeaders" json:"skipHeaders"`
}

// EndpointConfig defines API endpoint config
type EndpointConfig struct {
	// PathPrefix is the end-point path prefix for the APIs
	PathPrefix string `mapstructure:"pathPrefix" json:"pathPrefix" validate:"required"`
}

// APIConfig defines API settings for a submodule
type APIConfig struct {
	// Endpoint sets API endpoint related parameters
	Endpoint EndpointConfig `mapstructure:"endPoint" json:"endPoint" validate:"required,dive"`
	// RequestLogging sets API request logging parameters
	RequestLogging HTTPRequestLogging `mapstructure:"requestLogging" json:"requestLogging" validate:"required,dive"`
}

// APIServerConfig defines HTTP API / server parameters
type APIServerConfig struct {
	// Enabled whether this API is enabled
	Enabled bool `mapstructure:"enabled" json:"enabled"`
	// Server defines HTTP server parameters
	Server HTTPServerConfig `mapstructure:"service" json:"service" validate:"required_with=Enabled,dive"`
	// APIs defines API settings for a submodule
	APIs APIConfig `mapstructure:"apis" json:"apis" validate:"required_with=Enabled,dive"`
}

// HTTPClientRetryConfig HTTP client config retry configuration
type HTTPClientRetryConfig struct {
	// MaxAttempts max number of retry attempts
	MaxAttempts int `mapstructure:"maxAttempts" json:"maxAttempts" validate:"gte=0"`
	// InitWaitTimeInSec wait time before the first wait retry
	InitWaitTimeInSec uint32 `mapstructure:"initialWaitTimeInSec" json:"initialWaitTimeInSec" validate:"gte=1"`
	// MaxWaitTimeInSec max wait time
	MaxWaitTimeInSec uint32 `mapstructure:"maxWaitTimeInSec" json:"maxWaitTimeInSec" validate:"gte=1"`
}

// InitWaitTime convert InitWaitTimeInSec to time.Duration
func (c HTTPClientRetryConfig) InitWaitTime() time.Duration {
	return time.Second * time.Duration(c.InitWaitTimeInSec)
}

// MaxWaitTime convert MaxWaitTimeInSec to time.Duration
func (c HTTPClientRetryConfig) MaxWaitTime() time.Duration {
	return time.Second * time.Duration(c.MaxWaitTimeInSec)
}

// HTTPClientConfig HTTP client config targeting `go-resty`
type HTTPClientConfig struct {
	// Retry client retry configuration. See https://github.com/go-resty/resty#retries for details
	Retry HTTPClientRetryConfig `mapstructure:"retry" json:"retry" validate:"required,dive"`
}

// MetricsConfig application metrics config
type MetricsConfig struct {
	// Server defines HTTP server parameters
	Server HTTPServerConfig `mapstructure:"service" json:"service" validate:"required,dive"`
	// MetricsEndpoint path to host the Prometheus metrics endpoint
	MetricsEndpoint string `mapstructure:"metricsEndpoint" json:"metricsEndpoint" validate:"required"`
}

// ===============================================================================
// Persistence Configuration Structures

// PostgresSSLConfig Postgres connection SSL config
type PostgresSSLConfig struct {
	// Enabled whether to enable SSL when connecting to Postgres
	Enabled bool `mapstructure:"enabled" json:"enabled"`
	// CAFile the CA cert file to challenge remote with
	CAFile *string `mapstructure:"caFile" json:"caFile,omitempty" validate:"omitempty,file"`
}

// PostgresConfig Postgres connection config
type PostgresConfig struct {
	// Host Postgres server host
	Host string `mapstructure:"host" json:"host" validate:"required"`
	// Port Postgres server port
	Port uint16 `mapstructure:"port" json:"port" validate:"lte=65535,gte=0"`
	// Database the specific database to use
	Database string `mapstructure:"db" json:"db" validate:"required"`
	// User the user to connect with
	User string `mapstructure:"user" json:"user" validate:"required"`
	// SSL the connection SSL settings
	SSL PostgresSSLConfig `mapstructure:"ssl" json:"ssl" validate:"required,dive"`
}

// SqliteConfig sqlite config
type SqliteConfig struct {
	// DBFile the sqlite DB file path
	DBFile string `mapstructure:"db" json:"db" validate:"required"`
}

// ===============================================================================
// External Collaborator Configuration Structures

// StreamProviderConfig external streaming infrastructure control API config
type StreamProviderConfig struct {
	// BaseURL base URL of the provider control API
	BaseURL string `mapstructure:"baseURL" json:"baseURL" validate:"required,url"`
	// RequestIDHeader request ID header name to set on provider requests
	RequestIDHeader string `mapstructure:"requestIDHeader" json:"requestIDHeader" validate:"required"`
	// ChannelReadyTimeoutInSec max duration to wait for a newly provisioned
	// channel to become ready
	ChannelReadyTimeoutInSec uint32 `mapstructure:"channelReadyTimeoutInSec" json:"channelReadyTimeoutInSec" validate:"gte=5,lte=900"`
	// ChannelReadyPollIntInSec interval between channel readiness probes
	ChannelReadyPollIntInSec uint32 `mapstructure:"channelReadyPollIntInSec" json:"channelReadyPollIntInSec" validate:"gte=1,lte=60"`
	// Client HTTP client config. This is designed to support `go-resty`
	Client HTTPClientConfig `mapstructure:"client" json:"client" validate:"required,dive"`
}

// ChannelReadyTimeout convert ChannelReadyTimeoutInSec to time.Duration
func (c StreamProviderConfig) ChannelReadyTimeout() time.Duration {
	return time.Second * time.Duration(c.ChannelReadyTimeoutInSec)
}

// ChannelReadyPollInt convert ChannelReadyPollIntInSec to time.Duration
func (c StreamProviderConfig) ChannelReadyPollInt() time.Duration {
	return time.Second * time.Duration(c.ChannelReadyPollIntInSec)
}

// ChatServiceConfig chat room service API config
type ChatServiceConfig struct {
	// BaseURL base URL of the chat room service API
	BaseURL string `mapstructure:"baseURL" json:"baseURL" validate:"required,url"`
	// RequestIDHeader request ID header name to set on chat service requests
	RequestIDHeader string `mapstructure:"requestIDHeader" json:"requestIDHeader" validate:"required"`
	// Client HTTP client config. This is designed to support `go-resty`
	Client HTTPClientConfig `mapstructure:"client" json:"client" validate:"required,dive"`
}

// ===============================================================================
// Webhook Ingestion Configuration Structures

// WebhookConfig inbound provider webhook ingestion config
type WebhookConfig struct {
	// APIServer webhook ingestion REST API server config
	APIServer APIServerConfig `mapstructure:"api" json:"api" validate:"required,dive"`
	// SignatureHeader HTTP header carrying the HMAC signature of the raw body
	SignatureHeader string `mapstructure:"signatureHeader" json:"signatureHeader" validate:"required"`
	// SecretsFile path of the JSON file holding the active set of shared
	// secrets. The file is watched, so secrets rotate without downtime.
	SecretsFile string `mapstructure:"secretsFile" json:"secretsFile" validate:"required,file"`
}

// ===============================================================================
// Live Session Support Configuration Structures

// LivePairingConfig external device pairing secret config
type LivePairingConfig struct {
	// SecretTTLInSec lifetime of a pairing secret in secs
	SecretTTLInSec uint32 `mapstructure:"secretTTLInSec" json:"secretTTLInSec" validate:"gte=10,lte=3600"`
}

// SecretTTL convert SecretTTLInSec to time.Duration
func (c LivePairingConfig) SecretTTL() time.Duration {
	return time.Second * time.Duration(c.SecretTTLInSec)
}

// MemcachedStatusCacheConfig memcached live status cache config
type MemcachedStatusCacheConfig struct {
	// Servers list of memcached servers to establish connection with
	Servers []string `mapstructure:"servers" json:"servers" validate:"required,gte=1"`
}

// LiveStatusCacheConfig live status summary cache config
type LiveStatusCacheConfig struct {
	// TTLInSec cached summary retention in secs
	TTLInSec uint32 `mapstructure:"ttlInSec" json:"ttlInSec" validate:"gte=1,lte=600"`
	// RetentionCheckIntInSec cache entry retention check interval in secs.
	// Only used by the in-process cache.
	RetentionCheckIntInSec uint32 `mapstructure:"retentionCheckIntInSec" json:"retentionCheckIntInSec" validate:"gte=10,lte=300"`
	// Memcached optionally, use memcached instead of the in-process cache
	Memcached *MemcachedStatusCacheConfig `mapstructure:"memcached,omitempty" json:"memcached,omitempty" validate:"omitempty,dive"`
}

// TTL convert TTLInSec to time.Duration
func (c LiveStatusCacheConfig) TTL() time.Duration {
	return time.Second * time.Duration(c.TTLInSec)
}

// RetentionCheckInt convert RetentionCheckIntInSec to time.Duration
func (c LiveStatusCacheConfig) RetentionCheckInt() time.Duration {
	return time.Second * time.Duration(c.RetentionCheckIntInSec)
}

// ===============================================================================
// Event Broadcast Configuration Structures

// BroadcastSystemConfig live lifecycle event broadcast configuration
type BroadcastSystemConfig struct {
	// GCPProject the GCP project to operate in
	GCPProject string `mapstructure:"gcpProject" json:"gcpProject" validate:"required"`
	// Topic the PubSub topic lifecycle events are published on
	Topic string `mapstructure:"topic" json:"topic" validate:"required"`
	// MsgTTLInSec message retention within the subscription in secs
	MsgTTLInSec uint32 `mapstructure:"msgTTL" json:"msgTTL" validate:"gte=600,lte=604800"`
}

// MsgTTL convert MsgTTLInSec to time.Duration
func (c BroadcastSystemConfig) MsgTTL() time.Duration {
	return time.Second * time.Duration(c.MsgTTLInSec)
}

// ===============================================================================
// Complete Configuration Structures

// OrchestratorConfig define live lifecycle orchestrator node settings and behavior
type OrchestratorConfig struct {
	// Metrics metrics framework configuration
	Metrics MetricsConfig `mapstructure:"metrics" json:"metrics" validate:"required,dive"`
	// Postgres postgres DB configuration
	Postgres PostgresConfig `mapstructure:"postgres" json:"postgres" validate:"required,dive"`
	// Management management REST API server config
	Management APIServerConfig `mapstructure:"management" json:"management" validate:"required,dive"`
	// Webhook inbound provider webhook ingestion config
	Webhook WebhookConfig `mapstructure:"webhook" json:"webhook" validate:"required,dive"`
	// StreamProvider external streaming infrastructure control API config
	StreamProvider StreamProviderConfig `mapstructure:"streamProvider" json:"streamProvider" validate:"required,dive"`
	// ChatService chat room service API config
	ChatService ChatServiceConfig `mapstructure:"chatService" json:"chatService" validate:"required,dive"`
	// Pairing external device pairing secret config
	Pairing LivePairingConfig `mapstructure:"pairing" json:"pairing" validate:"required,dive"`
	// StatusCache live status summary cache config
	StatusCache LiveStatusCacheConfig `mapstructure:"statusCache" json:"statusCache" validate:"required,dive"`
	// BroadcastSystem live lifecycle event broadcast configuration
	BroadcastSystem BroadcastSystemConfig `mapstructure:"broadcast" json:"broadcast" validate:"required,dive"`
}

// ===============================================================================
// Default Configuration Setter

// InstallDefaultOrchestratorConfigValues installs default config parameters
// in viper for the live lifecycle orchestrator node
func InstallDefaultOrchestratorConfigValues() {
	// Default metrics config
	viper.SetDefault("metrics.metricsEndpoint", "/metrics")
	// Default metrics HTTP server config
	viper.SetDefault("metrics.service.listenOn", "0.0.0.0")
	viper.SetDefault("metrics.service.appPort", 3001)
	viper.SetDefault("metrics.service.timeoutSecs.read", 60)
	viper.SetDefault("metrics.service.timeoutSecs.write", 60)
	viper.SetDefault("metrics.service.timeoutSecs.idle", 60)

	// Default Postgres config
	viper.SetDefault("postgres.port", 5432)
	viper.SetDefault("postgres.ssl.enabled", false)

	// Default management HTTP server config
	viper.SetDefault("management.enabled", true)
	viper.SetDefault("management.service.listenOn", "0.0.0.0")
	viper.SetDefault("management.service.appPort", 8080)
	viper.SetDefault("management.service.timeoutSecs.read", 60)
	viper.SetDefault("management.service.timeoutSecs.write", 60)
	viper.SetDefault("management.service.timeoutSecs.idle", 60)
	viper.SetDefault("management.apis.endPoint.pathPrefix", "/")
	viper.SetDefault("management.apis.requestLogging.logLevel", "warn")
	viper.SetDefault("management.apis.requestLogging.healthLogLevel", "debug")
	viper.SetDefault("management.apis.requestLogging.requestIDHeader", "X-Request-ID")
	viper.SetDefault("management.apis.requestLogging.skipHeaders", []string{
		"WWW-Authenticate", "Authorization", "Proxy-Authenticate", "Proxy-Authorization",
	})

	// Default webhook ingestion config
	viper.SetDefault("webhook.api.enabled", true)
	viper.SetDefault("webhook.api.service.listenOn", "0.0.0.0")
	viper.SetDefault("webhook.api.service.appPort", 8081)
	viper.SetDefault("webhook.api.service.timeoutSecs.read", 60)
	viper.SetDefault("webhook.api.service.timeoutSecs.write", 60)
	viper.SetDefault("webhook.api.service.timeoutSecs.idle", 60)
	viper.SetDefault("webhook.api.apis.endPoint.pathPrefix", "/")
	viper.SetDefault("webhook.api.apis.requestLogging.logLevel", "debug")
	viper.SetDefault("webhook.api.apis.requestLogging.healthLogLevel", "debug")
	viper.SetDefault("webhook.api.apis.requestLogging.requestIDHeader", "X-Request-ID")
	viper.SetDefault("webhook.api.apis.requestLogging.skipHeaders", []string{
		"WWW-Authenticate", "Authorization", "Proxy-Authenticate", "Proxy-Authorization",
	})
	viper.SetDefault("webhook.signatureHeader", "X-Marsha-Signature")

	// Default stream provider config
	viper.SetDefault("streamProvider.requestIDHeader", "X-Request-ID")
	viper.SetDefault("streamProvider.channelReadyTimeoutInSec", 300)
	viper.SetDefault("streamProvider.channelReadyPollIntInSec", 5)
	viper.SetDefault("streamProvider.client.retry.maxAttempts", 3)
	viper.SetDefault("streamProvider.client.retry.initialWaitTimeInSec", 2)
	viper.SetDefault("streamProvider.client.retry.maxWaitTimeInSec", 15)

	// Default chat service config
	viper.SetDefault("chatService.requestIDHeader", "X-Request-ID")
	viper.SetDefault("chatService.client.retry.maxAttempts", 3)
	viper.SetDefault("chatService.client.retry.initialWaitTimeInSec", 2)
	viper.SetDefault("chatService.client.retry.maxWaitTimeInSec", 15)

	// Default pairing secret config
	viper.SetDefault("pairing.secretTTLInSec", 60)

	// Default live status cache config
	viper.SetDefault("statusCache.ttlInSec", 15)
	viper.SetDefault("statusCache.retentionCheckIntInSec", 60)

	// Default broadcast channel config
	viper.SetDefault("broadcast.topic", "live-lifecycle-events")
	viper.SetDefault("broadcast.msgTTL", 600)
}
