package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/openfun/marsha-live/common"
	"github.com/openfun/marsha-live/live"
	"github.com/openfun/marsha-live/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// ====================================================================================
// Live Management Server

/*
BuildLiveManagementServer create the live management API server

	@param httpCfg common.APIServerConfig - HTTP server configuration
	@param manager live.Manager - core live lifecycle manager
	@returns HTTP server instance
*/
func BuildLiveManagementServer(
	httpCfg common.APIServerConfig,
	manager live.Manager,
) (*http.Server, error) {
	httpHandler, err := NewLiveManagementHandler(manager, httpCfg.APIs.RequestLogging)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	mainRouter := registerPathPrefix(router, httpCfg.APIs.Endpoint.PathPrefix, nil)
	v1Router := registerPathPrefix(mainRouter, "/v1", nil)

	// --------------------------------------------------------------------------------
	// Health check
	_ = registerPathPrefix(v1Router, "/alive", map[string]http.HandlerFunc{
		"get": httpHandler.AliveHandler(),
	})
	_ = registerPathPrefix(v1Router, "/ready", map[string]http.HandlerFunc{
		"get": httpHandler.ReadyHandler(),
	})

	// --------------------------------------------------------------------------------
	// Video
	videoRouter := registerPathPrefix(v1Router, "/video", map[string]http.HandlerFunc{
		"post": httpHandler.DefineNewVideoHandler(),
		"get":  httpHandler.ListVideosHandler(),
	})

	perVideoRouter := registerPathPrefix(
		videoRouter, "/{videoID}", map[string]http.HandlerFunc{
			"get":    httpHandler.GetVideoHandler(),
			"delete": httpHandler.DeleteVideoHandler(),
		},
	)

	// --------------------------------------------------------------------------------
	// Live lifecycle
	liveRouter := registerPathPrefix(perVideoRouter, "/live", map[string]http.HandlerFunc{
		"get":  httpHandler.GetLiveStatusHandler(),
		"post": httpHandler.InitiateLiveHandler(),
	})

	_ = registerPathPrefix(liveRouter, "/start", map[string]http.HandlerFunc{
		"post": httpHandler.StartLiveHandler(),
	})

	_ = registerPathPrefix(liveRouter, "/stop", map[string]http.HandlerFunc{
		"post": httpHandler.StopLiveHandler(),
	})

	_ = registerPathPrefix(liveRouter, "/end", map[string]http.HandlerFunc{
		"post": httpHandler.EndLiveHandler(),
	})

	_ = registerPathPrefix(liveRouter, "/pairing", map[string]http.HandlerFunc{
		"post": httpHandler.RequestPairingSecretHandler(),
	})

	// --------------------------------------------------------------------------------
	// Middleware

	router.Use(func(next http.Handler) http.Handler {
		return httpHandler.LoggingMiddleware(next.ServeHTTP)
	})

	// The management API is called from browser frontends
	corsWrapper := cors.New(cors.Options{
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders: []string{"*"},
	})

	// --------------------------------------------------------------------------------
	// HTTP Server

	serverListen := fmt.Sprintf(
		"%s:%d", httpCfg.Server.ListenOn, httpCfg.Server.Port,
	)
	httpSrv := &http.Server{
		Addr:         serverListen,
		WriteTimeout: time.Second * time.Duration(httpCfg.Server.Timeouts.WriteTimeout),
		ReadTimeout:  time.Second * time.Duration(httpCfg.Server.Timeouts.ReadTimeout),
		IdleTimeout:  time.Second * time.Duration(httpCfg.Server.Timeouts.IdleTimeout),
		Handler:      h2c.NewHandler(corsWrapper.Handler(router), &http2.Server{}),
	}

	return httpSrv, nil
}

// ====================================================================================
// Provider Webhook Server

/*
BuildWebhookServer create the provider webhook ingestion server

	@param webhookCfg common.WebhookConfig - webhook ingestion configuration
	@param manager live.Manager - core live lifecycle manager
	@param secrets utils.WebhookSecretStore - webhook signature secret store
	@returns HTTP server instance
*/
func BuildWebhookServer(
	webhookCfg common.WebhookConfig,
	manager live.Manager,
	secrets utils.WebhookSecretStore,
) (*http.Server, error) {
	httpCfg := webhookCfg.APIServer
	httpHandler, err := NewWebhookHandler(
		manager, secrets, webhookCfg.SignatureHeader, httpCfg.APIs.RequestLogging,
	)
	if err != nil {
		return nil, err
	}

	router := mux.NewRouter()
	mainRouter := registerPathPrefix(router, httpCfg.APIs.Endpoint.PathPrefix, nil)
	v1Router := registerPathPrefix(mainRouter, "/v1", nil)

	// --------------------------------------------------------------------------------
	// Health check
	_ = registerPathPrefix(v1Router, "/alive", map[string]http.HandlerFunc{
		"get": httpHandler.AliveHandler(),
	})

	// --------------------------------------------------------------------------------
	// Stream state reports
	webhookRouter := registerPathPrefix(v1Router, "/webhook", nil)
	videoRouter := registerPathPrefix(webhookRouter, "/video", nil)
	perVideoRouter := registerPathPrefix(videoRouter, "/{videoID}", nil)
	_ = registerPathPrefix(perVideoRouter, "/state", map[string]http.HandlerFunc{
		"post": httpHandler.UpdateLiveStateHandler(),
	})

	// --------------------------------------------------------------------------------
	// Middleware

	router.Use(func(next http.Handler) http.Handler {
		return httpHandler.LoggingMiddleware(next.ServeHTTP)
	})

	// --------------------------------------------------------------------------------
	// HTTP Server

	serverListen := fmt.Sprintf(
		"%s:%d", httpCfg.Server.ListenOn, httpCfg.Server.Port,
	)
	httpSrv := &http.Server{
		Addr:         serverListen,
		WriteTimeout: time.Second * time.Duration(httpCfg.Server.Timeouts.WriteTimeout),
		ReadTimeout:  time.Second * time.Duration(httpCfg.Server.Timeouts.ReadTimeout),
		IdleTimeout:  time.Second * time.Duration(httpCfg.Server.Timeouts.IdleTimeout),
		Handler:      h2c.NewHandler(router, &http2.Server{}),
	}

	return httpSrv, nil
}

// ====================================================================================
// Metrics Server

/*
BuildMetricsServer create the Prometheus metrics server

	@param metricsCfg common.MetricsConfig - metrics server configuration
	@param registry *prometheus.Registry - metrics registry to expose
	@returns HTTP server instance
*/
func BuildMetricsServer(
	metricsCfg common.MetricsConfig, registry *prometheus.Registry,
) (*http.Server, error) {
	router := mux.NewRouter()
	router.
		Methods("get").
		Path(metricsCfg.MetricsEndpoint).
		Handler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	serverListen := fmt.Sprintf(
		"%s:%d", metricsCfg.Server.ListenOn, metricsCfg.Server.Port,
	)
	httpSrv := &http.Server{
		Addr:         serverListen,
		WriteTimeout: time.Second * time.Duration(metricsCfg.Server.Timeouts.WriteTimeout),
		ReadTimeout:  time.Second * time.Duration(metricsCfg.Server.Timeouts.ReadTimeout),
		IdleTimeout:  time.Second * time.Duration(metricsCfg.Server.Timeouts.IdleTimeout),
		Handler:      router,
	}

	return httpSrv, nil
}
