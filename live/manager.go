package live

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/oklog/ulid/v2"
	"github.com/openfun/marsha-live/common"
	"github.com/openfun/marsha-live/db"
	"github.com/openfun/marsha-live/utils"
)

// Live lifecycle operation names
const (
	OperationInitiateLive     = "initiate-live"
	OperationStartLive        = "start-live"
	OperationStopLive         = "stop-live"
	OperationEndLive          = "end-live"
	OperationUpdateLiveState  = "update-live-state"
	OperationRequestPairing   = "request-pairing-secret"
	maxSecretGenerationTries  = 3
	pairingSecretLengthInByte = 6
)

// StateUpdate one provider stream state report delivered through the webhook
type StateUpdate struct {
	// RequestID provider request ID used to deduplicate redeliveries
	RequestID string `json:"requestId" validate:"required"`
	// State the reported stream state
	State string `json:"state" validate:"required,oneof=running stopped"`
	// LogGroupName optionally, the provider-side log group of the session
	LogGroupName *string `json:"logGroupName,omitempty"`
}

// Manager core live broadcast lifecycle controller
type Manager interface {
	/*
		Ready check whether the manager's backing store is ready

			@param ctxt context.Context - execution context
	*/
	Ready(ctxt context.Context) error

	// =====================================================================================
	// Videos

	/*
		DefineVideo create new video entry

			@param ctxt context.Context - execution context
			@param title string - video title
			@param description *string - optionally, video description
			@returns new video entry ID
	*/
	DefineVideo(ctxt context.Context, title string, description *string) (string, error)

	/*
		GetVideo retrieve a video entry

			@param ctxt context.Context - execution context
			@param videoID string - video entry ID
			@returns video entry
	*/
	GetVideo(ctxt context.Context, videoID string) (common.Video, error)

	/*
		ListVideos list all video entries

			@param ctxt context.Context - execution context
			@returns all video entries
	*/
	ListVideos(ctxt context.Context) ([]common.Video, error)

	/*
		DeleteVideo delete a video entry

			@param ctxt context.Context - execution context
			@param videoID string - video entry ID
	*/
	DeleteVideo(ctxt context.Context, videoID string) error

	/*
		GetLiveStatus fetch the condensed live status of a video. Reads through
		the status cache.

			@param ctxt context.Context - execution context
			@param videoID string - video entry ID
			@returns live status summary
	*/
	GetLiveStatus(ctxt context.Context, videoID string) (common.LiveStateSummary, error)

	// =====================================================================================
	// Live lifecycle

	/*
		InitiateLive attach a live session to a video. Purely local, no external
		resources are touched. Allowed from any state; re-initiating resets the
		live related fields of the video.

			@param ctxt context.Context - execution context
			@param videoID string - video entry ID
			@param liveType common.LiveType - the kind of live session to attach
			@returns the updated video entry
	*/
	InitiateLive(
		ctxt context.Context, videoID string, liveType common.LiveType,
	) (common.Video, error)

	/*
		StartLive provision streaming resources if needed and request stream start

			@param ctxt context.Context - execution context
			@param videoID string - video entry ID
			@returns the updated video entry
	*/
	StartLive(ctxt context.Context, videoID string) (common.Video, error)

	/*
		StopLive request stream stop

			@param ctxt context.Context - execution context
			@param videoID string - video entry ID
			@returns the updated video entry
	*/
	StopLive(ctxt context.Context, videoID string) (common.Video, error)

	/*
		EndLive finalize a live session. From a paused session the streaming
		resources are torn down and the recording is handed off for harvest.

			@param ctxt context.Context - execution context
			@param videoID string - video entry ID
			@returns the updated video entry
	*/
	EndLive(ctxt context.Context, videoID string) (common.Video, error)

	/*
		ApplyStateUpdate apply one provider stream state report against a video.
		Redelivered reports and reports racing a concurrent update are absorbed
		without error.

			@param ctxt context.Context - execution context
			@param videoID string - video entry ID
			@param update StateUpdate - the reported stream state
			@returns the processing outcome label
	*/
	ApplyStateUpdate(ctxt context.Context, videoID string, update StateUpdate) (string, error)

	/*
		GeneratePairingSecret issue a short-lived pairing secret allowing an
		external streaming device to join the video's live session

			@param ctxt context.Context - execution context
			@param videoID string - video entry ID
			@returns the new pairing entry
	*/
	GeneratePairingSecret(ctxt context.Context, videoID string) (common.LivePairing, error)
}

// managerImpl implements Manager
type managerImpl struct {
	goutils.Component
	db             db.PersistenceManager
	provider       StreamProvider
	chat           ChatRoomService
	notifier       Notifier
	cache          utils.LiveStatusCache
	metrics        MetricsCollector
	pairingTTL     time.Duration
	statusCacheTTL time.Duration
}

/*
NewManager define a new live lifecycle manager

	@param dbClient db.PersistenceManager - DB access client
	@param provider StreamProvider - streaming infrastructure control client
	@param chat ChatRoomService - chat room service client
	@param notifier Notifier - lifecycle event broadcaster
	@param cache utils.LiveStatusCache - live status summary cache
	@param metrics MetricsCollector - lifecycle metrics collector
	@param pairingTTL time.Duration - pairing secret lifetime
	@param statusCacheTTL time.Duration - cached status summary retention
	@returns new manager
*/
func NewManager(
	dbClient db.PersistenceManager,
	provider StreamProvider,
	chat ChatRoomService,
	notifier Notifier,
	cache utils.LiveStatusCache,
	metrics MetricsCollector,
	pairingTTL time.Duration,
	statusCacheTTL time.Duration,
) (Manager, error) {
	logTags := log.Fields{"module": "live", "component": "manager"}
	return &managerImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		db:             dbClient,
		provider:       provider,
		chat:           chat,
		notifier:       notifier,
		cache:          cache,
		metrics:        metrics,
		pairingTTL:     pairingTTL,
		statusCacheTTL: statusCacheTTL,
	}, nil
}

func (m *managerImpl) Ready(ctxt context.Context) error {
	return m.db.Ready(ctxt)
}

// =====================================================================================
// Videos

func (m *managerImpl) DefineVideo(
	ctxt context.Context, title string, description *string,
) (string, error) {
	return m.db.DefineVideo(ctxt, title, description)
}

func (m *managerImpl) GetVideo(ctxt context.Context, videoID string) (common.Video, error) {
	return m.db.GetVideo(ctxt, videoID)
}

func (m *managerImpl) ListVideos(ctxt context.Context) ([]common.Video, error) {
	return m.db.ListVideos(ctxt)
}

func (m *managerImpl) DeleteVideo(ctxt context.Context, videoID string) error {
	if err := m.db.DeleteVideo(ctxt, videoID); err != nil {
		return err
	}
	m.dropCachedStatus(ctxt, videoID)
	return nil
}

func (m *managerImpl) GetLiveStatus(
	ctxt context.Context, videoID string,
) (common.LiveStateSummary, error) {
	logTags := m.GetLogTagsForContext(ctxt)

	if summary, err := m.cache.GetStatus(ctxt, videoID); err == nil {
		return summary, nil
	} else if !errors.Is(err, utils.ErrCacheMiss) {
		// Fall through to the DB on cache trouble
		log.WithError(err).WithFields(logTags).WithField("video", videoID).
			Error("Status cache read failed")
	}

	video, err := m.db.GetVideo(ctxt, videoID)
	if err != nil {
		return common.LiveStateSummary{}, err
	}

	summary := common.NewLiveStateSummary(video)
	if err := m.cache.RecordStatus(ctxt, summary, m.statusCacheTTL); err != nil {
		log.WithError(err).WithFields(logTags).WithField("video", videoID).
			Error("Status cache write failed")
	}
	return summary, nil
}

// =====================================================================================
// Live lifecycle

func (m *managerImpl) InitiateLive(
	ctxt context.Context, videoID string, liveType common.LiveType,
) (common.Video, error) {
	logTags := m.GetLogTagsForContext(ctxt)

	video, err := m.db.GetVideo(ctxt, videoID)
	if err != nil {
		return common.Video{}, err
	}
	previous := video.LiveState

	// Reset the live related fields. Provisioning happens at start.
	newState := common.LiveStateIdle
	video.LiveState = &newState
	video.LiveType = &liveType
	video.LiveInfo = nil
	video.UploadState = common.UploadStatePending
	video.UploadedOn = nil

	if err := m.db.UpdateVideoLiveFields(ctxt, video); err != nil {
		return common.Video{}, err
	}

	log.
		WithFields(logTags).
		WithField("video", videoID).
		WithField("live-type", liveType).
		Info("Initiated live session")
	m.metrics.RecordTransition(OperationInitiateLive)
	m.reportStateChange(ctxt, videoID, previous, video.LiveState, nil)
	return video, nil
}

func (m *managerImpl) StartLive(ctxt context.Context, videoID string) (common.Video, error) {
	logTags := m.GetLogTagsForContext(ctxt)

	video, err := m.db.GetVideo(ctxt, videoID)
	if err != nil {
		return common.Video{}, err
	}
	if !video.IsLive() || !stateOneOf(
		*video.LiveState, common.LiveStateIdle, common.LiveStatePaused,
	) {
		return common.Video{}, common.InvalidStateError{
			VideoID:   videoID,
			Operation: OperationStartLive,
			Current:   video.LiveState,
			Allowed:   []common.LiveState{common.LiveStateIdle, common.LiveStatePaused},
		}
	}
	previous := video.LiveState

	newInfo := common.LiveInfo{}
	if video.LiveInfo != nil {
		newInfo = *video.LiveInfo
	}

	// Provision streaming resources on first start
	if newInfo.Stream == nil {
		streamKey, err := randomHex(16)
		if err != nil {
			return common.Video{}, err
		}
		stream, err := m.provider.CreateStream(ctxt, videoID, streamKey)
		if err != nil {
			return common.Video{}, common.ProvisioningError{Operation: "create-stream", Err: err}
		}
		newInfo.Stream = &stream

		if err := m.chat.CreateRoom(ctxt, videoID); err != nil {
			return common.Video{}, common.ProvisioningError{Operation: "create-chat-room", Err: err}
		}
		if err := m.provider.WaitUntilReady(ctxt, stream.ChannelID); err != nil {
			return common.Video{}, common.ProvisioningError{Operation: "await-channel", Err: err}
		}
	}

	if err := m.provider.StartChannel(ctxt, newInfo.Stream.ChannelID); err != nil {
		return common.Video{}, common.ProvisioningError{Operation: "start-channel", Err: err}
	}

	// Local state changes only after every provider call succeeded
	newState := common.LiveStateStarting
	video.LiveState = &newState
	video.LiveInfo = &newInfo

	if err := m.db.UpdateVideoLiveFields(ctxt, video); err != nil {
		return common.Video{}, err
	}

	log.
		WithFields(logTags).
		WithField("video", videoID).
		WithField("channel", newInfo.Stream.ChannelID).
		Info("Requested live stream start")
	m.metrics.RecordTransition(OperationStartLive)
	m.reportStateChange(ctxt, videoID, previous, video.LiveState, nil)
	return video, nil
}

func (m *managerImpl) StopLive(ctxt context.Context, videoID string) (common.Video, error) {
	logTags := m.GetLogTagsForContext(ctxt)

	video, err := m.db.GetVideo(ctxt, videoID)
	if err != nil {
		return common.Video{}, err
	}
	if !video.IsLive() || *video.LiveState != common.LiveStateRunning {
		return common.Video{}, common.InvalidStateError{
			VideoID:   videoID,
			Operation: OperationStopLive,
			Current:   video.LiveState,
			Allowed:   []common.LiveState{common.LiveStateRunning},
		}
	}
	previous := video.LiveState

	if video.LiveInfo == nil || video.LiveInfo.Stream == nil {
		return common.Video{}, fmt.Errorf("video '%s' is running without stream records", videoID)
	}

	if err := m.provider.StopChannel(ctxt, video.LiveInfo.Stream.ChannelID); err != nil {
		return common.Video{}, common.ProvisioningError{Operation: "stop-channel", Err: err}
	}

	newState := common.LiveStateStopping
	video.LiveState = &newState
	pausedAt := time.Now().UTC()
	video.LiveInfo.PausedAt = &pausedAt

	if err := m.db.UpdateVideoLiveFields(ctxt, video); err != nil {
		return common.Video{}, err
	}

	log.WithFields(logTags).WithField("video", videoID).Info("Requested live stream stop")
	m.metrics.RecordTransition(OperationStopLive)
	m.reportStateChange(ctxt, videoID, previous, video.LiveState, nil)
	return video, nil
}

func (m *managerImpl) EndLive(ctxt context.Context, videoID string) (common.Video, error) {
	logTags := m.GetLogTagsForContext(ctxt)

	video, err := m.db.GetVideo(ctxt, videoID)
	if err != nil {
		return common.Video{}, err
	}
	if !video.IsLive() || !stateOneOf(
		*video.LiveState, common.LiveStateIdle, common.LiveStatePaused,
	) {
		return common.Video{}, common.InvalidStateError{
			VideoID:   videoID,
			Operation: OperationEndLive,
			Current:   video.LiveState,
			Allowed:   []common.LiveState{common.LiveStateIdle, common.LiveStatePaused},
		}
	}
	previous := video.LiveState

	// A session ended before anything streamed has nothing to harvest
	if *video.LiveState == common.LiveStateIdle ||
		video.LiveInfo == nil || video.LiveInfo.Stream == nil {
		video.LiveState = nil
		video.LiveType = nil
		video.LiveInfo = nil
		video.UploadState = common.UploadStateDeleted

		if err := m.db.UpdateVideoLiveFields(ctxt, video); err != nil {
			return common.Video{}, err
		}

		log.WithFields(logTags).WithField("video", videoID).Info("Discarded unused live session")
		m.metrics.RecordTransition(OperationEndLive)
		m.reportStateChange(ctxt, videoID, previous, nil, nil)
		return video, nil
	}

	stream := *video.LiveInfo.Stream
	if err := m.provider.TeardownStack(ctxt, stream); err != nil {
		return common.Video{}, common.ProvisioningError{Operation: "teardown-stack", Err: err}
	}
	if err := m.chat.CloseRoom(ctxt, videoID); err != nil {
		return common.Video{}, common.ProvisioningError{Operation: "close-chat-room", Err: err}
	}

	jobID, err := m.provider.CreateHarvestJob(ctxt, videoID, stream.ChannelID)
	if err != nil {
		if errors.As(err, &common.ManifestMissingError{}) {
			// Nothing was recorded. Compensate by removing the channel and
			// discarding the session entirely.
			if err := m.provider.DeleteChannel(ctxt, stream.ChannelID); err != nil {
				return common.Video{}, common.ProvisioningError{Operation: "delete-channel", Err: err}
			}

			video.LiveState = nil
			video.LiveType = nil
			video.LiveInfo = nil
			video.UploadState = common.UploadStateDeleted

			if err := m.db.UpdateVideoLiveFields(ctxt, video); err != nil {
				return common.Video{}, err
			}

			log.
				WithFields(logTags).
				WithField("video", videoID).
				WithField("channel", stream.ChannelID).
				Info("Ended live session with no recording to harvest")
			m.metrics.RecordTransition(OperationEndLive)
			m.reportStateChange(ctxt, videoID, previous, nil, nil)
			return video, nil
		}
		return common.Video{}, common.ProvisioningError{Operation: "create-harvest-job", Err: err}
	}

	newState := common.LiveStateStopped
	video.LiveState = &newState
	video.UploadState = common.UploadStateHarvesting
	stoppedAt := time.Now().UTC()
	video.LiveInfo.StoppedAt = &stoppedAt

	if err := m.db.UpdateVideoLiveFields(ctxt, video); err != nil {
		return common.Video{}, err
	}

	log.
		WithFields(logTags).
		WithField("video", videoID).
		WithField("harvest-job", jobID).
		Info("Ended live session, recording handed off for harvest")
	m.metrics.RecordTransition(OperationEndLive)
	m.reportStateChange(ctxt, videoID, previous, video.LiveState, nil)
	return video, nil
}

func (m *managerImpl) ApplyStateUpdate(
	ctxt context.Context, videoID string, update StateUpdate,
) (string, error) {
	logTags := m.GetLogTagsForContext(ctxt)

	var previous, current *common.LiveState
	noSession := false
	outcome, err := m.db.UpdateVideoLiveFieldsUnderLock(
		ctxt, videoID, func(video *common.Video) (bool, error) {
			if !video.IsLive() {
				// The session was torn down locally before this report arrived. The
				// provider redelivers until it sees a success, so absorb the report
				// instead of rejecting it.
				noSession = true
				return false, nil
			}
			previousState := *video.LiveState
			previous = &previousState

			if video.LiveInfo == nil {
				video.LiveInfo = &common.LiveInfo{}
			}
			if video.LiveInfo.SeenRequestID(update.RequestID) {
				return false, nil
			}
			video.LiveInfo.RememberRequestID(update.RequestID)
			if update.LogGroupName != nil {
				video.LiveInfo.LogGroupName = update.LogGroupName
			}

			now := time.Now().UTC()
			switch update.State {
			case "running":
				newState := common.LiveStateRunning
				video.LiveState = &newState
				video.LiveInfo.PausedAt = nil
				if video.LiveInfo.StartedAt == nil {
					video.LiveInfo.StartedAt = &now
				}
			case "stopped":
				newState := common.LiveStatePaused
				video.LiveState = &newState
				video.LiveInfo.PausedAt = &now
			default:
				return false, fmt.Errorf("unknown stream state '%s'", update.State)
			}
			current = video.LiveState
			return true, nil
		},
	)
	if err != nil {
		m.metrics.RecordWebhookOutcome(WebhookOutcomeRejected)
		return WebhookOutcomeRejected, err
	}

	switch outcome {
	case db.LiveUpdateApplied:
		log.
			WithFields(logTags).
			WithField("video", videoID).
			WithField("request-id", update.RequestID).
			WithField("state", update.State).
			Info("Applied stream state update")
		m.metrics.RecordWebhookOutcome(WebhookOutcomeApplied)
		m.reportStateChange(ctxt, videoID, previous, current, &update.RequestID)
		return WebhookOutcomeApplied, nil

	case db.LiveUpdateYielded:
		m.metrics.RecordWebhookOutcome(WebhookOutcomeYielded)
		return WebhookOutcomeYielded, nil

	default:
		if noSession {
			log.
				WithFields(logTags).
				WithField("video", videoID).
				WithField("request-id", update.RequestID).
				Info("Absorbed stream state update for video without live session")
			m.metrics.RecordWebhookOutcome(WebhookOutcomeIgnored)
			return WebhookOutcomeIgnored, nil
		}
		log.
			WithFields(logTags).
			WithField("video", videoID).
			WithField("request-id", update.RequestID).
			Info("Ignored redelivered stream state update")
		m.metrics.RecordWebhookOutcome(WebhookOutcomeDuplicate)
		return WebhookOutcomeDuplicate, nil
	}
}

func (m *managerImpl) GeneratePairingSecret(
	ctxt context.Context, videoID string,
) (common.LivePairing, error) {
	logTags := m.GetLogTagsForContext(ctxt)

	video, err := m.db.GetVideo(ctxt, videoID)
	if err != nil {
		return common.LivePairing{}, err
	}
	// Only direct device ingest sessions pair with external hardware
	if !video.IsLive() || video.LiveType == nil || *video.LiveType != common.LiveTypeRaw {
		return common.LivePairing{}, common.UnsupportedLiveTypeError{LiveType: video.LiveType}
	}

	currentTime := time.Now().UTC()
	if _, err := m.db.PurgeExpiredLivePairings(ctxt, currentTime); err != nil {
		return common.LivePairing{}, err
	}

	for attempt := 1; attempt <= maxSecretGenerationTries; attempt++ {
		secret, err := randomHex(pairingSecretLengthInByte)
		if err != nil {
			return common.LivePairing{}, err
		}
		pairing := common.LivePairing{
			ID:        ulid.Make().String(),
			VideoID:   videoID,
			Secret:    secret,
			ExpiresAt: currentTime.Add(m.pairingTTL),
		}
		if err := m.db.SaveLivePairing(ctxt, pairing); err != nil {
			if errors.Is(err, db.ErrDuplicateSecret) {
				log.
					WithFields(logTags).
					WithField("video", videoID).
					WithField("attempt", attempt).
					Info("Pairing secret collided, regenerating")
				continue
			}
			return common.LivePairing{}, err
		}

		log.WithFields(logTags).WithField("video", videoID).Info("Issued pairing secret")
		m.metrics.RecordTransition(OperationRequestPairing)
		return pairing, nil
	}

	return common.LivePairing{}, common.SecretGenerationError{Attempts: maxSecretGenerationTries}
}

// =====================================================================================
// Support

// reportStateChange invalidate the cached status and broadcast a lifecycle
// event. Failures here never fail the triggering operation.
func (m *managerImpl) reportStateChange(
	ctxt context.Context, videoID string, previous, current *common.LiveState, requestID *string,
) {
	logTags := m.GetLogTagsForContext(ctxt)

	m.dropCachedStatus(ctxt, videoID)

	event := NewLiveStateChangeEvent(videoID, previous, current)
	event.RequestID = requestID
	if err := m.notifier.PublishStateChange(ctxt, event); err != nil {
		log.WithError(err).WithFields(logTags).WithField("video", videoID).
			Error("Lifecycle event broadcast failed")
	}
}

// dropCachedStatus invalidate the cached status summary of a video
func (m *managerImpl) dropCachedStatus(ctxt context.Context, videoID string) {
	logTags := m.GetLogTagsForContext(ctxt)
	if err := m.cache.InvalidateStatus(ctxt, videoID); err != nil {
		log.WithError(err).WithFields(logTags).WithField("video", videoID).
			Error("Status cache invalidation failed")
	}
}

// stateOneOf check whether a live state is within an allowed set
func stateOneOf(state common.LiveState, allowed ...common.LiveState) bool {
	for _, candidate := range allowed {
		if state == candidate {
			return true
		}
	}
	return false
}

// randomHex generate a hex encoded random string of the given byte length
func randomHex(byteLen int) (string, error) {
	buf := make([]byte, byteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
