package bin

import (
	"context"
	"net/http"
	"net/url"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/openfun/marsha-live/api"
	"github.com/openfun/marsha-live/common"
	"github.com/openfun/marsha-live/db"
	"github.com/openfun/marsha-live/live"
	"github.com/openfun/marsha-live/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm/logger"
)

// OrchestratorNode live lifecycle orchestrator node
type OrchestratorNode struct {
	psClient         goutils.PubSubClient
	MgmtAPIServer    *http.Server
	WebhookAPIServer *http.Server
	MetricsServer    *http.Server
}

/*
Cleanup stop and clean up the orchestrator node

	@param ctxt context.Context - execution context
*/
func (n OrchestratorNode) Cleanup(ctxt context.Context) error {
	return n.psClient.Close(ctxt)
}

/*
DefineOrchestratorNode setup new live lifecycle orchestrator node

	@param parentCtxt context.Context - parent execution context
	@param config common.OrchestratorConfig - orchestrator node configuration
	@param psqlPassword string - Postgres SQL user password
	@returns new orchestrator node
*/
func DefineOrchestratorNode(
	parentCtxt context.Context,
	config common.OrchestratorConfig,
	psqlPassword string,
) (OrchestratorNode, error) {
	/*
		Steps for preparing the orchestrator node are

		* Prepare database
		* Prepare PubSub client and lifecycle event notifier
		* Prepare external collaborator clients
		* Prepare webhook secret store and status cache
		* Prepare core live lifecycle manager
		* Prepare the HTTP servers
	*/

	theNode := OrchestratorNode{}

	sqlDSN, err := db.GetPostgresDialector(config.Postgres, psqlPassword)
	if err != nil {
		log.WithError(err).Error("Failed to define Postgres connection DSN")
		return theNode, err
	}

	// Define the persistence manager
	dbManager, err := db.NewManager(sqlDSN, logger.Error)
	if err != nil {
		log.WithError(err).Error("Failed to define persistence manager")
		return theNode, err
	}

	// Define PubSub client and lifecycle event notifier
	theNode.psClient, err = buildPubSubClient(parentCtxt, config.BroadcastSystem.GCPProject)
	if err != nil {
		log.WithError(err).Error("PubSub client initialization failed")
		return theNode, err
	}
	notifier, err := live.NewPubSubNotifier(theNode.psClient, config.BroadcastSystem.Topic)
	if err != nil {
		log.WithError(err).Error("Failed to create lifecycle event notifier")
		return theNode, err
	}

	// Define stream provider control client
	providerURL, err := url.Parse(config.StreamProvider.BaseURL)
	if err != nil {
		log.WithError(err).Error("Failed to parse stream provider base URL")
		return theNode, err
	}
	providerHTTPClient, err := utils.DefineHTTPClient(config.StreamProvider.Client)
	if err != nil {
		log.WithError(err).Error("Failed to define stream provider HTTP client")
		return theNode, err
	}
	provider, err := live.NewRestStreamProvider(providerURL, config.StreamProvider, providerHTTPClient)
	if err != nil {
		log.WithError(err).Error("Failed to create stream provider control client")
		return theNode, err
	}

	// Define chat room service client
	chatURL, err := url.Parse(config.ChatService.BaseURL)
	if err != nil {
		log.WithError(err).Error("Failed to parse chat service base URL")
		return theNode, err
	}
	chatHTTPClient, err := utils.DefineHTTPClient(config.ChatService.Client)
	if err != nil {
		log.WithError(err).Error("Failed to define chat service HTTP client")
		return theNode, err
	}
	chatRooms, err := live.NewRestChatRoomService(
		chatURL, config.ChatService.RequestIDHeader, chatHTTPClient,
	)
	if err != nil {
		log.WithError(err).Error("Failed to create chat room service client")
		return theNode, err
	}

	// Define webhook secret store
	secrets, err := utils.NewFileWebhookSecretStore(parentCtxt, config.Webhook.SecretsFile)
	if err != nil {
		log.WithError(err).Error("Failed to create webhook secret store")
		return theNode, err
	}

	// Define live status cache
	var statusCache utils.LiveStatusCache
	if config.StatusCache.Memcached != nil {
		statusCache, err = utils.NewMemcachedLiveStatusCache(config.StatusCache.Memcached.Servers)
	} else {
		statusCache, err = utils.NewLocalLiveStatusCache(
			parentCtxt, config.StatusCache.RetentionCheckInt(),
		)
	}
	if err != nil {
		log.WithError(err).Error("Failed to create live status cache")
		return theNode, err
	}

	// Define metrics framework
	metricsRegistry := prometheus.NewRegistry()
	metricsRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsAgent := live.NewMetricsCollector(metricsRegistry)

	// Define the core live lifecycle manager
	coreManager, err := live.NewManager(
		dbManager,
		provider,
		chatRooms,
		notifier,
		statusCache,
		metricsAgent,
		config.Pairing.SecretTTL(),
		config.StatusCache.TTL(),
	)
	if err != nil {
		log.WithError(err).Error("Failed to create live lifecycle manager")
		return theNode, err
	}

	// Define management API HTTP server
	mgmtAPIServer, err := api.BuildLiveManagementServer(config.Management, coreManager)
	if err != nil {
		log.WithError(err).Error("Failed to create live management API HTTP server")
		return theNode, err
	}
	theNode.MgmtAPIServer = mgmtAPIServer

	// Define webhook API HTTP server
	webhookAPIServer, err := api.BuildWebhookServer(config.Webhook, coreManager, secrets)
	if err != nil {
		log.WithError(err).Error("Failed to create webhook API HTTP server")
		return theNode, err
	}
	theNode.WebhookAPIServer = webhookAPIServer

	// Define metrics HTTP server
	metricsServer, err := api.BuildMetricsServer(config.Metrics, metricsRegistry)
	if err != nil {
		log.WithError(err).Error("Failed to create metrics HTTP server")
		return theNode, err
	}
	theNode.MetricsServer = metricsServer

	return theNode, nil
}
