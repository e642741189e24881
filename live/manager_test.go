package live_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/openfun/marsha-live/common"
	"github.com/openfun/marsha-live/db"
	"github.com/openfun/marsha-live/live"
	"github.com/openfun/marsha-live/mocks"
	"github.com/openfun/marsha-live/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type managerTestFixture struct {
	db       *mocks.PersistenceManager
	provider *mocks.StreamProvider
	chat     *mocks.ChatRoomService
	notifier *mocks.Notifier
	cache    *mocks.LiveStatusCache
	uut      live.Manager
}

func getTestFixture(t *testing.T) managerTestFixture {
	fixture := managerTestFixture{
		db:       mocks.NewPersistenceManager(t),
		provider: mocks.NewStreamProvider(t),
		chat:     mocks.NewChatRoomService(t),
		notifier: mocks.NewNotifier(t),
		cache:    mocks.NewLiveStatusCache(t),
	}

	uut, err := live.NewManager(
		fixture.db,
		fixture.provider,
		fixture.chat,
		fixture.notifier,
		fixture.cache,
		live.NewMetricsCollector(prometheus.NewRegistry()),
		time.Minute,
		time.Second*15,
	)
	assert.Nil(t, err)
	fixture.uut = uut
	return fixture
}

// expectStateChangeReport the cache invalidation and event broadcast every
// committed transition triggers
func (f managerTestFixture) expectStateChangeReport(videoID string) {
	f.cache.On("InvalidateStatus", mock.Anything, videoID).Return(nil).Once()
	f.notifier.On(
		"PublishStateChange", mock.Anything, mock.AnythingOfType("live.LiveStateChangeEvent"),
	).Return(nil).Once()
}

func newTestVideo(state *common.LiveState, liveType *common.LiveType) common.Video {
	return common.Video{
		ID:          uuid.NewString(),
		Title:       fmt.Sprintf("video-%s", uuid.NewString()),
		LiveState:   state,
		LiveType:    liveType,
		UploadState: common.UploadStatePending,
	}
}

func TestLiveManagerInitiateLive(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtxt := context.Background()

	// Case 0: video not live yet
	{
		fixture := getTestFixture(t)
		video := newTestVideo(nil, nil)

		fixture.db.On("GetVideo", mock.Anything, video.ID).Return(video, nil).Once()
		fixture.db.On(
			"UpdateVideoLiveFields", mock.Anything, mock.AnythingOfType("common.Video"),
		).Run(func(args mock.Arguments) {
			updated := args.Get(1).(common.Video)
			assert.NotNil(updated.LiveState)
			assert.Equal(common.LiveStateIdle, *updated.LiveState)
			assert.NotNil(updated.LiveType)
			assert.Equal(common.LiveTypeRaw, *updated.LiveType)
			assert.Nil(updated.LiveInfo)
			assert.Equal(common.UploadStatePending, updated.UploadState)
		}).Return(nil).Once()
		fixture.expectStateChangeReport(video.ID)

		result, err := fixture.uut.InitiateLive(utCtxt, video.ID, common.LiveTypeRaw)
		assert.Nil(err)
		assert.NotNil(result.LiveState)
		assert.Equal(common.LiveStateIdle, *result.LiveState)
	}

	// Case 1: re-initiating over an active live session resets the live fields
	{
		fixture := getTestFixture(t)
		liveState := common.LiveStateRunning
		liveType := common.LiveTypeRaw
		video := newTestVideo(&liveState, &liveType)
		startedAt := time.Now().UTC().Add(-time.Hour)
		video.LiveInfo = &common.LiveInfo{
			Stream:    &common.StreamHandle{ChannelID: uuid.NewString(), InputID: uuid.NewString()},
			StartedAt: &startedAt,
		}

		fixture.db.On("GetVideo", mock.Anything, video.ID).Return(video, nil).Once()
		fixture.db.On(
			"UpdateVideoLiveFields", mock.Anything, mock.AnythingOfType("common.Video"),
		).Run(func(args mock.Arguments) {
			updated := args.Get(1).(common.Video)
			assert.NotNil(updated.LiveState)
			assert.Equal(common.LiveStateIdle, *updated.LiveState)
			assert.NotNil(updated.LiveType)
			assert.Equal(common.LiveTypeJitsi, *updated.LiveType)
			assert.Nil(updated.LiveInfo)
			assert.Equal(common.UploadStatePending, updated.UploadState)
		}).Return(nil).Once()
		fixture.expectStateChangeReport(video.ID)

		result, err := fixture.uut.InitiateLive(utCtxt, video.ID, common.LiveTypeJitsi)
		assert.Nil(err)
		assert.NotNil(result.LiveState)
		assert.Equal(common.LiveStateIdle, *result.LiveState)
		assert.Nil(result.LiveInfo)
	}
}

func TestLiveManagerStartLive(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtxt := context.Background()

	// Case 0: first start provisions the streaming resources
	{
		fixture := getTestFixture(t)
		liveState := common.LiveStateIdle
		liveType := common.LiveTypeRaw
		video := newTestVideo(&liveState, &liveType)
		stream := common.StreamHandle{
			ChannelID: uuid.NewString(), InputID: uuid.NewString(), StreamKey: "provider-key",
		}

		fixture.db.On("GetVideo", mock.Anything, video.ID).Return(video, nil).Once()
		fixture.provider.On(
			"CreateStream", mock.Anything, video.ID, mock.AnythingOfType("string"),
		).Return(stream, nil).Once()
		fixture.chat.On("CreateRoom", mock.Anything, video.ID).Return(nil).Once()
		fixture.provider.On("WaitUntilReady", mock.Anything, stream.ChannelID).Return(nil).Once()
		fixture.provider.On("StartChannel", mock.Anything, stream.ChannelID).Return(nil).Once()
		fixture.db.On(
			"UpdateVideoLiveFields", mock.Anything, mock.AnythingOfType("common.Video"),
		).Run(func(args mock.Arguments) {
			updated := args.Get(1).(common.Video)
			assert.NotNil(updated.LiveState)
			assert.Equal(common.LiveStateStarting, *updated.LiveState)
			assert.NotNil(updated.LiveInfo)
			assert.NotNil(updated.LiveInfo.Stream)
			assert.Equal(stream.ChannelID, updated.LiveInfo.Stream.ChannelID)
		}).Return(nil).Once()
		fixture.expectStateChangeReport(video.ID)

		result, err := fixture.uut.StartLive(utCtxt, video.ID)
		assert.Nil(err)
		assert.NotNil(result.LiveState)
		assert.Equal(common.LiveStateStarting, *result.LiveState)
	}

	// Case 1: resuming a paused session skips provisioning
	{
		fixture := getTestFixture(t)
		liveState := common.LiveStatePaused
		liveType := common.LiveTypeRaw
		video := newTestVideo(&liveState, &liveType)
		stream := common.StreamHandle{ChannelID: uuid.NewString(), InputID: uuid.NewString()}
		pausedAt := time.Now().UTC()
		video.LiveInfo = &common.LiveInfo{Stream: &stream, PausedAt: &pausedAt}

		fixture.db.On("GetVideo", mock.Anything, video.ID).Return(video, nil).Once()
		fixture.provider.On("StartChannel", mock.Anything, stream.ChannelID).Return(nil).Once()
		fixture.db.On(
			"UpdateVideoLiveFields", mock.Anything, mock.AnythingOfType("common.Video"),
		).Return(nil).Once()
		fixture.expectStateChangeReport(video.ID)

		result, err := fixture.uut.StartLive(utCtxt, video.ID)
		assert.Nil(err)
		assert.NotNil(result.LiveState)
		assert.Equal(common.LiveStateStarting, *result.LiveState)
	}

	// Case 2: provider failure leaves local state untouched
	{
		fixture := getTestFixture(t)
		liveState := common.LiveStateIdle
		liveType := common.LiveTypeRaw
		video := newTestVideo(&liveState, &liveType)

		fixture.db.On("GetVideo", mock.Anything, video.ID).Return(video, nil).Once()
		fixture.provider.On(
			"CreateStream", mock.Anything, video.ID, mock.AnythingOfType("string"),
		).Return(common.StreamHandle{}, fmt.Errorf("provider down")).Once()

		_, err := fixture.uut.StartLive(utCtxt, video.ID)
		assert.NotNil(err)
		assert.ErrorAs(err, &common.ProvisioningError{})
	}

	// Case 3: not startable while running
	{
		fixture := getTestFixture(t)
		liveState := common.LiveStateRunning
		liveType := common.LiveTypeRaw
		video := newTestVideo(&liveState, &liveType)

		fixture.db.On("GetVideo", mock.Anything, video.ID).Return(video, nil).Once()

		_, err := fixture.uut.StartLive(utCtxt, video.ID)
		assert.NotNil(err)
		assert.ErrorAs(err, &common.InvalidStateError{})
	}
}

func TestLiveManagerStopLive(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtxt := context.Background()

	// Case 0: running stream is stopped
	{
		fixture := getTestFixture(t)
		liveState := common.LiveStateRunning
		liveType := common.LiveTypeRaw
		video := newTestVideo(&liveState, &liveType)
		stream := common.StreamHandle{ChannelID: uuid.NewString(), InputID: uuid.NewString()}
		startedAt := time.Now().UTC()
		video.LiveInfo = &common.LiveInfo{Stream: &stream, StartedAt: &startedAt}

		fixture.db.On("GetVideo", mock.Anything, video.ID).Return(video, nil).Once()
		fixture.provider.On("StopChannel", mock.Anything, stream.ChannelID).Return(nil).Once()
		fixture.db.On(
			"UpdateVideoLiveFields", mock.Anything, mock.AnythingOfType("common.Video"),
		).Run(func(args mock.Arguments) {
			updated := args.Get(1).(common.Video)
			assert.NotNil(updated.LiveState)
			assert.Equal(common.LiveStateStopping, *updated.LiveState)
			assert.NotNil(updated.LiveInfo)
			assert.NotNil(updated.LiveInfo.PausedAt)
		}).Return(nil).Once()
		fixture.expectStateChangeReport(video.ID)

		result, err := fixture.uut.StopLive(utCtxt, video.ID)
		assert.Nil(err)
		assert.NotNil(result.LiveState)
		assert.Equal(common.LiveStateStopping, *result.LiveState)
	}

	// Case 1: only a running stream can be stopped
	{
		fixture := getTestFixture(t)
		liveState := common.LiveStateIdle
		liveType := common.LiveTypeRaw
		video := newTestVideo(&liveState, &liveType)

		fixture.db.On("GetVideo", mock.Anything, video.ID).Return(video, nil).Once()

		_, err := fixture.uut.StopLive(utCtxt, video.ID)
		assert.NotNil(err)
		assert.ErrorAs(err, &common.InvalidStateError{})
	}
}

func TestLiveManagerEndLive(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtxt := context.Background()

	// Case 0: ending an idle session discards it locally
	{
		fixture := getTestFixture(t)
		liveState := common.LiveStateIdle
		liveType := common.LiveTypeRaw
		video := newTestVideo(&liveState, &liveType)

		fixture.db.On("GetVideo", mock.Anything, video.ID).Return(video, nil).Once()
		fixture.db.On(
			"UpdateVideoLiveFields", mock.Anything, mock.AnythingOfType("common.Video"),
		).Run(func(args mock.Arguments) {
			updated := args.Get(1).(common.Video)
			assert.Nil(updated.LiveState)
			assert.Nil(updated.LiveType)
			assert.Nil(updated.LiveInfo)
			assert.Equal(common.UploadStateDeleted, updated.UploadState)
		}).Return(nil).Once()
		fixture.expectStateChangeReport(video.ID)

		result, err := fixture.uut.EndLive(utCtxt, video.ID)
		assert.Nil(err)
		assert.Nil(result.LiveState)
		assert.Equal(common.UploadStateDeleted, result.UploadState)
	}

	// Case 1: ending a paused session hands the recording off for harvest
	{
		fixture := getTestFixture(t)
		liveState := common.LiveStatePaused
		liveType := common.LiveTypeRaw
		video := newTestVideo(&liveState, &liveType)
		stream := common.StreamHandle{ChannelID: uuid.NewString(), InputID: uuid.NewString()}
		video.LiveInfo = &common.LiveInfo{Stream: &stream}

		fixture.provider.On("TeardownStack", mock.Anything, stream).Return(nil).Once()
		fixture.chat.On("CloseRoom", mock.Anything, video.ID).Return(nil).Once()
		fixture.provider.On(
			"CreateHarvestJob", mock.Anything, video.ID, stream.ChannelID,
		).Return(uuid.NewString(), nil).Once()
		fixture.db.On("GetVideo", mock.Anything, video.ID).Return(video, nil).Once()
		fixture.db.On(
			"UpdateVideoLiveFields", mock.Anything, mock.AnythingOfType("common.Video"),
		).Run(func(args mock.Arguments) {
			updated := args.Get(1).(common.Video)
			assert.NotNil(updated.LiveState)
			assert.Equal(common.LiveStateStopped, *updated.LiveState)
			assert.Equal(common.UploadStateHarvesting, updated.UploadState)
			assert.NotNil(updated.LiveInfo)
			assert.NotNil(updated.LiveInfo.StoppedAt)
		}).Return(nil).Once()
		fixture.expectStateChangeReport(video.ID)

		result, err := fixture.uut.EndLive(utCtxt, video.ID)
		assert.Nil(err)
		assert.NotNil(result.LiveState)
		assert.Equal(common.LiveStateStopped, *result.LiveState)
		assert.Equal(common.UploadStateHarvesting, result.UploadState)
	}

	// Case 2: missing recording manifest triggers compensating teardown
	{
		fixture := getTestFixture(t)
		liveState := common.LiveStatePaused
		liveType := common.LiveTypeRaw
		video := newTestVideo(&liveState, &liveType)
		stream := common.StreamHandle{ChannelID: uuid.NewString(), InputID: uuid.NewString()}
		video.LiveInfo = &common.LiveInfo{Stream: &stream}

		fixture.provider.On("TeardownStack", mock.Anything, stream).Return(nil).Once()
		fixture.chat.On("CloseRoom", mock.Anything, video.ID).Return(nil).Once()
		fixture.provider.On(
			"CreateHarvestJob", mock.Anything, video.ID, stream.ChannelID,
		).Return("", common.ManifestMissingError{ChannelID: stream.ChannelID}).Once()
		fixture.provider.On("DeleteChannel", mock.Anything, stream.ChannelID).Return(nil).Once()
		fixture.db.On("GetVideo", mock.Anything, video.ID).Return(video, nil).Once()
		fixture.db.On(
			"UpdateVideoLiveFields", mock.Anything, mock.AnythingOfType("common.Video"),
		).Run(func(args mock.Arguments) {
			updated := args.Get(1).(common.Video)
			assert.Nil(updated.LiveState)
			assert.Nil(updated.LiveType)
			assert.Nil(updated.LiveInfo)
			assert.Equal(common.UploadStateDeleted, updated.UploadState)
		}).Return(nil).Once()
		fixture.expectStateChangeReport(video.ID)

		result, err := fixture.uut.EndLive(utCtxt, video.ID)
		assert.Nil(err)
		assert.Nil(result.LiveState)
		assert.Equal(common.UploadStateDeleted, result.UploadState)
	}

	// Case 3: harvest job failure leaves local state untouched
	{
		fixture := getTestFixture(t)
		liveState := common.LiveStatePaused
		liveType := common.LiveTypeRaw
		video := newTestVideo(&liveState, &liveType)
		stream := common.StreamHandle{ChannelID: uuid.NewString(), InputID: uuid.NewString()}
		video.LiveInfo = &common.LiveInfo{Stream: &stream}

		fixture.provider.On("TeardownStack", mock.Anything, stream).Return(nil).Once()
		fixture.chat.On("CloseRoom", mock.Anything, video.ID).Return(nil).Once()
		fixture.provider.On(
			"CreateHarvestJob", mock.Anything, video.ID, stream.ChannelID,
		).Return("", fmt.Errorf("provider down")).Once()
		fixture.db.On("GetVideo", mock.Anything, video.ID).Return(video, nil).Once()

		_, err := fixture.uut.EndLive(utCtxt, video.ID)
		assert.NotNil(err)
		assert.ErrorAs(err, &common.ProvisioningError{})
	}
}

func TestLiveManagerApplyStateUpdate(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtxt := context.Background()

	// runMutation wire the locked update mock against an actual video entry
	runMutation := func(
		fixture managerTestFixture, video *common.Video,
	) {
		fixture.db.On(
			"UpdateVideoLiveFieldsUnderLock", mock.Anything, video.ID, mock.Anything,
		).Return(func(
			ctxt context.Context, id string, mutate func(*common.Video) (bool, error),
		) (db.LiveUpdateOutcome, error) {
			apply, err := mutate(video)
			if err != nil {
				return db.LiveUpdateSkipped, err
			}
			if !apply {
				return db.LiveUpdateSkipped, nil
			}
			return db.LiveUpdateApplied, nil
		}).Once()
	}

	// Case 0: running report applied against a starting session
	{
		fixture := getTestFixture(t)
		liveState := common.LiveStateStarting
		liveType := common.LiveTypeRaw
		video := newTestVideo(&liveState, &liveType)

		runMutation(fixture, &video)
		fixture.expectStateChangeReport(video.ID)

		outcome, err := fixture.uut.ApplyStateUpdate(utCtxt, video.ID, live.StateUpdate{
			RequestID: "req-0", State: "running",
		})
		assert.Nil(err)
		assert.Equal(live.WebhookOutcomeApplied, outcome)
		assert.NotNil(video.LiveState)
		assert.Equal(common.LiveStateRunning, *video.LiveState)
		assert.NotNil(video.LiveInfo)
		assert.NotNil(video.LiveInfo.StartedAt)
		assert.Nil(video.LiveInfo.PausedAt)
		assert.True(video.LiveInfo.SeenRequestID("req-0"))
	}

	// Case 1: stopped report pauses a running session
	{
		fixture := getTestFixture(t)
		liveState := common.LiveStateRunning
		liveType := common.LiveTypeRaw
		video := newTestVideo(&liveState, &liveType)
		startedAt := time.Now().UTC()
		video.LiveInfo = &common.LiveInfo{
			RequestIDs: []string{"req-0"}, StartedAt: &startedAt,
		}

		runMutation(fixture, &video)
		fixture.expectStateChangeReport(video.ID)

		outcome, err := fixture.uut.ApplyStateUpdate(utCtxt, video.ID, live.StateUpdate{
			RequestID: "req-1", State: "stopped",
		})
		assert.Nil(err)
		assert.Equal(live.WebhookOutcomeApplied, outcome)
		assert.NotNil(video.LiveState)
		assert.Equal(common.LiveStatePaused, *video.LiveState)
		assert.NotNil(video.LiveInfo.PausedAt)
		// The started timestamp survives the pause
		assert.NotNil(video.LiveInfo.StartedAt)
	}

	// Case 2: redelivered report is absorbed without effect
	{
		fixture := getTestFixture(t)
		liveState := common.LiveStateRunning
		liveType := common.LiveTypeRaw
		video := newTestVideo(&liveState, &liveType)
		video.LiveInfo = &common.LiveInfo{RequestIDs: []string{"req-0"}}

		runMutation(fixture, &video)

		outcome, err := fixture.uut.ApplyStateUpdate(utCtxt, video.ID, live.StateUpdate{
			RequestID: "req-0", State: "stopped",
		})
		assert.Nil(err)
		assert.Equal(live.WebhookOutcomeDuplicate, outcome)
		assert.Equal(common.LiveStateRunning, *video.LiveState)
	}

	// Case 3: concurrent update yields without error
	{
		fixture := getTestFixture(t)
		videoID := uuid.NewString()

		fixture.db.On(
			"UpdateVideoLiveFieldsUnderLock", mock.Anything, videoID, mock.Anything,
		).Return(db.LiveUpdateYielded, nil).Once()

		outcome, err := fixture.uut.ApplyStateUpdate(utCtxt, videoID, live.StateUpdate{
			RequestID: "req-0", State: "running",
		})
		assert.Nil(err)
		assert.Equal(live.WebhookOutcomeYielded, outcome)
	}

	// Case 4: report against a video without a live session is absorbed
	{
		fixture := getTestFixture(t)
		video := newTestVideo(nil, nil)

		runMutation(fixture, &video)

		outcome, err := fixture.uut.ApplyStateUpdate(utCtxt, video.ID, live.StateUpdate{
			RequestID: "req-0", State: "running",
		})
		assert.Nil(err)
		assert.Equal(live.WebhookOutcomeIgnored, outcome)
		assert.Nil(video.LiveState)
		assert.Nil(video.LiveInfo)
	}

	// Case 5: final stop report arriving after the session ended is absorbed
	{
		fixture := getTestFixture(t)
		video := newTestVideo(nil, nil)
		video.UploadState = common.UploadStateHarvesting

		runMutation(fixture, &video)

		outcome, err := fixture.uut.ApplyStateUpdate(utCtxt, video.ID, live.StateUpdate{
			RequestID: "req-final", State: "stopped",
		})
		assert.Nil(err)
		assert.Equal(live.WebhookOutcomeIgnored, outcome)
		assert.Equal(common.UploadStateHarvesting, video.UploadState)
	}
}

func TestLiveManagerGeneratePairingSecret(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtxt := context.Background()

	// Case 0: raw live session gets a secret
	{
		fixture := getTestFixture(t)
		liveState := common.LiveStateIdle
		liveType := common.LiveTypeRaw
		video := newTestVideo(&liveState, &liveType)

		fixture.db.On("GetVideo", mock.Anything, video.ID).Return(video, nil).Once()
		fixture.db.On(
			"PurgeExpiredLivePairings", mock.Anything, mock.AnythingOfType("time.Time"),
		).Return(int64(0), nil).Once()
		fixture.db.On(
			"SaveLivePairing", mock.Anything, mock.AnythingOfType("common.LivePairing"),
		).Return(nil).Once()

		pairing, err := fixture.uut.GeneratePairingSecret(utCtxt, video.ID)
		assert.Nil(err)
		assert.Equal(video.ID, pairing.VideoID)
		assert.NotEmpty(pairing.Secret)
		assert.False(pairing.Expired(time.Now().UTC()))
	}

	// Case 1: secret collisions are retried
	{
		fixture := getTestFixture(t)
		liveState := common.LiveStateRunning
		liveType := common.LiveTypeRaw
		video := newTestVideo(&liveState, &liveType)

		fixture.db.On("GetVideo", mock.Anything, video.ID).Return(video, nil).Once()
		fixture.db.On(
			"PurgeExpiredLivePairings", mock.Anything, mock.AnythingOfType("time.Time"),
		).Return(int64(0), nil).Once()
		fixture.db.On(
			"SaveLivePairing", mock.Anything, mock.AnythingOfType("common.LivePairing"),
		).Return(db.ErrDuplicateSecret).Twice()
		fixture.db.On(
			"SaveLivePairing", mock.Anything, mock.AnythingOfType("common.LivePairing"),
		).Return(nil).Once()

		pairing, err := fixture.uut.GeneratePairingSecret(utCtxt, video.ID)
		assert.Nil(err)
		assert.NotEmpty(pairing.Secret)
	}

	// Case 2: collision retries are bounded
	{
		fixture := getTestFixture(t)
		liveState := common.LiveStateRunning
		liveType := common.LiveTypeRaw
		video := newTestVideo(&liveState, &liveType)

		fixture.db.On("GetVideo", mock.Anything, video.ID).Return(video, nil).Once()
		fixture.db.On(
			"PurgeExpiredLivePairings", mock.Anything, mock.AnythingOfType("time.Time"),
		).Return(int64(0), nil).Once()
		fixture.db.On(
			"SaveLivePairing", mock.Anything, mock.AnythingOfType("common.LivePairing"),
		).Return(db.ErrDuplicateSecret).Times(3)

		_, err := fixture.uut.GeneratePairingSecret(utCtxt, video.ID)
		assert.NotNil(err)
		assert.ErrorAs(err, &common.SecretGenerationError{})
	}

	// Case 3: only direct device ingest sessions support pairing
	{
		fixture := getTestFixture(t)
		liveState := common.LiveStateRunning
		liveType := common.LiveTypeJitsi
		video := newTestVideo(&liveState, &liveType)

		fixture.db.On("GetVideo", mock.Anything, video.ID).Return(video, nil).Once()

		_, err := fixture.uut.GeneratePairingSecret(utCtxt, video.ID)
		assert.NotNil(err)
		assert.ErrorAs(err, &common.UnsupportedLiveTypeError{})
	}
}

func TestLiveManagerGetLiveStatus(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtxt := context.Background()

	// Case 0: cache hit short-circuits the DB
	{
		fixture := getTestFixture(t)
		videoID := uuid.NewString()
		liveState := common.LiveStateRunning
		cached := common.LiveStateSummary{
			VideoID: videoID, LiveState: &liveState, UploadState: common.UploadStatePending,
		}

		fixture.cache.On("GetStatus", mock.Anything, videoID).Return(cached, nil).Once()

		summary, err := fixture.uut.GetLiveStatus(utCtxt, videoID)
		assert.Nil(err)
		assert.Equal(cached, summary)
	}

	// Case 1: cache miss reads through to the DB and repopulates
	{
		fixture := getTestFixture(t)
		liveState := common.LiveStatePaused
		liveType := common.LiveTypeRaw
		video := newTestVideo(&liveState, &liveType)
		pausedAt := time.Now().UTC()
		video.LiveInfo = &common.LiveInfo{PausedAt: &pausedAt}

		fixture.cache.On("GetStatus", mock.Anything, video.ID).
			Return(common.LiveStateSummary{}, utils.ErrCacheMiss).Once()
		fixture.db.On("GetVideo", mock.Anything, video.ID).Return(video, nil).Once()
		fixture.cache.On(
			"RecordStatus",
			mock.Anything,
			mock.AnythingOfType("common.LiveStateSummary"),
			time.Second*15,
		).Return(nil).Once()

		summary, err := fixture.uut.GetLiveStatus(utCtxt, video.ID)
		assert.Nil(err)
		assert.Equal(video.ID, summary.VideoID)
		assert.NotNil(summary.LiveState)
		assert.Equal(common.LiveStatePaused, *summary.LiveState)
		assert.NotNil(summary.PausedAt)
	}
}
