package live

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/go-resty/resty/v2"
	"github.com/oklog/ulid/v2"
	"github.com/openfun/marsha-live/common"
)

// StreamProvider control client for the external live streaming infrastructure
type StreamProvider interface {
	/*
		CreateStream provision a new input / channel pair for a video

			@param ctxt context.Context - execution context
			@param videoID string - video entry ID
			@param streamKey string - ingest stream key to provision with
			@returns handle of the provisioned resources
	*/
	CreateStream(ctxt context.Context, videoID, streamKey string) (common.StreamHandle, error)

	/*
		WaitUntilReady block until a provisioned channel is ready for use. The
		wait is bounded by the client's configured readiness timeout.

			@param ctxt context.Context - execution context
			@param channelID string - provider channel ID
	*/
	WaitUntilReady(ctxt context.Context, channelID string) error

	/*
		StartChannel request the provider start a channel

			@param ctxt context.Context - execution context
			@param channelID string - provider channel ID
	*/
	StartChannel(ctxt context.Context, channelID string) error

	/*
		StopChannel request the provider stop a channel

			@param ctxt context.Context - execution context
			@param channelID string - provider channel ID
	*/
	StopChannel(ctxt context.Context, channelID string) error

	/*
		TeardownStack delete the streaming resources provisioned for a live session

			@param ctxt context.Context - execution context
			@param stream common.StreamHandle - the resources to delete
	*/
	TeardownStack(ctxt context.Context, stream common.StreamHandle) error

	/*
		CreateHarvestJob request conversion of the channel's live recording into
		an on-demand asset. Returns common.ManifestMissingError when the provider
		has no recording manifest for the channel.

			@param ctxt context.Context - execution context
			@param videoID string - video entry ID
			@param channelID string - provider channel ID
			@returns provider harvest job ID
	*/
	CreateHarvestJob(ctxt context.Context, videoID, channelID string) (string, error)

	/*
		DeleteChannel delete a provider channel

			@param ctxt context.Context - execution context
			@param channelID string - provider channel ID
	*/
	DeleteChannel(ctxt context.Context, channelID string) error
}

// restStreamProviderImpl implements StreamProvider over the provider's REST
// control API
type restStreamProviderImpl struct {
	goutils.Component
	baseURI         *url.URL
	requestIDHeader string
	readyTimeout    time.Duration
	readyPollInt    time.Duration
	client          *resty.Client
}

/*
NewRestStreamProvider define a new stream provider control client based on REST

	@param baseURI *url.URL - provider control API base URL
	@param config common.StreamProviderConfig - provider client config
	@param httpClient *resty.Client - HTTP client to use
	@returns new client
*/
func NewRestStreamProvider(
	baseURI *url.URL, config common.StreamProviderConfig, httpClient *resty.Client,
) (StreamProvider, error) {
	logTags := log.Fields{
		"module":    "live",
		"component": "rest-stream-provider",
		"instance":  baseURI.String(),
	}

	// The assumption is that the HTTP client has been prepared for operation

	return &restStreamProviderImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		baseURI:         baseURI,
		requestIDHeader: config.RequestIDHeader,
		readyTimeout:    config.ChannelReadyTimeout(),
		readyPollInt:    config.ChannelReadyPollInt(),
		client:          httpClient,
	}, nil
}

// streamCreateRequest parameters to provision a new input / channel pair
type streamCreateRequest struct {
	VideoID   string `json:"video_id" validate:"required"`
	StreamKey string `json:"stream_key" validate:"required"`
}

// streamCreateResponse response containing the provisioned resources
type streamCreateResponse struct {
	goutils.RestAPIBaseResponse
	// Stream the provisioned resources
	Stream common.StreamHandle `json:"stream"`
}

// channelStatusResponse response containing the channel readiness state
type channelStatusResponse struct {
	goutils.RestAPIBaseResponse
	// Ready whether the channel is ready for use
	Ready bool `json:"ready"`
}

// harvestJobResponse response containing the new harvest job
type harvestJobResponse struct {
	goutils.RestAPIBaseResponse
	// JobID provider harvest job ID
	JobID string `json:"job_id"`
}

func (p *restStreamProviderImpl) CreateStream(
	ctxt context.Context, videoID, streamKey string,
) (common.StreamHandle, error) {
	logTags := p.GetLogTagsForContext(ctxt)

	requestURL := p.baseURI.JoinPath("/v1/stream")
	resp, err := p.client.R().
		SetContext(ctxt).
		SetHeader(p.requestIDHeader, ulid.Make().String()).
		SetBody(streamCreateRequest{VideoID: videoID, StreamKey: streamKey}).
		SetResult(&streamCreateResponse{}).
		SetError(goutils.RestAPIBaseResponse{}).
		Post(requestURL.String())
	if err != nil {
		log.WithError(err).WithFields(logTags).WithField("video", videoID).
			Error("Stream provisioning request failed on call")
		return common.StreamHandle{}, err
	}
	if !resp.IsSuccess() {
		err := remoteCallError(resp)
		log.WithError(err).WithFields(logTags).WithField("video", videoID).
			Error("Stream provisioning failed")
		return common.StreamHandle{}, err
	}

	result := resp.Result().(*streamCreateResponse)
	log.
		WithFields(logTags).
		WithField("video", videoID).
		WithField("channel", result.Stream.ChannelID).
		WithField("input", result.Stream.InputID).
		Info("Provisioned new stream")
	return result.Stream, nil
}

func (p *restStreamProviderImpl) WaitUntilReady(ctxt context.Context, channelID string) error {
	logTags := p.GetLogTagsForContext(ctxt)

	waitCtxt, cancel := context.WithTimeout(ctxt, p.readyTimeout)
	defer cancel()

	requestURL := p.baseURI.JoinPath("/v1/channel", channelID, "status")
	for {
		resp, err := p.client.R().
			SetContext(waitCtxt).
			SetHeader(p.requestIDHeader, ulid.Make().String()).
			SetResult(&channelStatusResponse{}).
			SetError(goutils.RestAPIBaseResponse{}).
			Get(requestURL.String())
		if err != nil {
			return err
		}
		if !resp.IsSuccess() {
			return remoteCallError(resp)
		}
		if resp.Result().(*channelStatusResponse).Ready {
			log.WithFields(logTags).WithField("channel", channelID).Info("Channel ready")
			return nil
		}

		select {
		case <-waitCtxt.Done():
			return fmt.Errorf("channel '%s' not ready within %s", channelID, p.readyTimeout)
		case <-time.After(p.readyPollInt):
		}
	}
}

func (p *restStreamProviderImpl) StartChannel(ctxt context.Context, channelID string) error {
	return p.postChannelAction(ctxt, channelID, "start")
}

func (p *restStreamProviderImpl) StopChannel(ctxt context.Context, channelID string) error {
	return p.postChannelAction(ctxt, channelID, "stop")
}

func (p *restStreamProviderImpl) postChannelAction(
	ctxt context.Context, channelID, action string,
) error {
	logTags := p.GetLogTagsForContext(ctxt)

	requestURL := p.baseURI.JoinPath("/v1/channel", channelID, action)
	resp, err := p.client.R().
		SetContext(ctxt).
		SetHeader(p.requestIDHeader, ulid.Make().String()).
		SetError(goutils.RestAPIBaseResponse{}).
		Post(requestURL.String())
	if err != nil {
		log.WithError(err).WithFields(logTags).WithField("channel", channelID).
			Errorf("Channel %s request failed on call", action)
		return err
	}
	if !resp.IsSuccess() {
		err := remoteCallError(resp)
		log.WithError(err).WithFields(logTags).WithField("channel", channelID).
			Errorf("Channel %s failed", action)
		return err
	}

	log.WithFields(logTags).WithField("channel", channelID).Infof("Channel %s requested", action)
	return nil
}

// teardownRequest parameters to delete a live session's streaming resources
type teardownRequest struct {
	ChannelID string `json:"channel_id" validate:"required"`
	InputID   string `json:"input_id" validate:"required"`
}

func (p *restStreamProviderImpl) TeardownStack(
	ctxt context.Context, stream common.StreamHandle,
) error {
	logTags := p.GetLogTagsForContext(ctxt)

	requestURL := p.baseURI.JoinPath("/v1/stack/teardown")
	resp, err := p.client.R().
		SetContext(ctxt).
		SetHeader(p.requestIDHeader, ulid.Make().String()).
		SetBody(teardownRequest{ChannelID: stream.ChannelID, InputID: stream.InputID}).
		SetError(goutils.RestAPIBaseResponse{}).
		Post(requestURL.String())
	if err != nil {
		log.WithError(err).WithFields(logTags).WithField("channel", stream.ChannelID).
			Error("Stack teardown request failed on call")
		return err
	}
	if !resp.IsSuccess() {
		err := remoteCallError(resp)
		log.WithError(err).WithFields(logTags).WithField("channel", stream.ChannelID).
			Error("Stack teardown failed")
		return err
	}

	log.WithFields(logTags).WithField("channel", stream.ChannelID).Info("Stack torn down")
	return nil
}

// harvestJobRequest parameters to convert a live recording into a VOD asset
type harvestJobRequest struct {
	VideoID   string `json:"video_id" validate:"required"`
	ChannelID string `json:"channel_id" validate:"required"`
}

func (p *restStreamProviderImpl) CreateHarvestJob(
	ctxt context.Context, videoID, channelID string,
) (string, error) {
	logTags := p.GetLogTagsForContext(ctxt)

	requestURL := p.baseURI.JoinPath("/v1/harvest")
	resp, err := p.client.R().
		SetContext(ctxt).
		SetHeader(p.requestIDHeader, ulid.Make().String()).
		SetBody(harvestJobRequest{VideoID: videoID, ChannelID: channelID}).
		SetResult(&harvestJobResponse{}).
		SetError(goutils.RestAPIBaseResponse{}).
		Post(requestURL.String())
	if err != nil {
		log.WithError(err).WithFields(logTags).WithField("channel", channelID).
			Error("Harvest job request failed on call")
		return "", err
	}
	if resp.StatusCode() == http.StatusNotFound {
		// The provider recorded nothing for this channel
		return "", common.ManifestMissingError{ChannelID: channelID}
	}
	if !resp.IsSuccess() {
		err := remoteCallError(resp)
		log.WithError(err).WithFields(logTags).WithField("channel", channelID).
			Error("Harvest job creation failed")
		return "", err
	}

	result := resp.Result().(*harvestJobResponse)
	log.
		WithFields(logTags).
		WithField("channel", channelID).
		WithField("job", result.JobID).
		Info("Harvest job created")
	return result.JobID, nil
}

func (p *restStreamProviderImpl) DeleteChannel(ctxt context.Context, channelID string) error {
	logTags := p.GetLogTagsForContext(ctxt)

	requestURL := p.baseURI.JoinPath("/v1/channel", channelID)
	resp, err := p.client.R().
		SetContext(ctxt).
		SetHeader(p.requestIDHeader, ulid.Make().String()).
		SetError(goutils.RestAPIBaseResponse{}).
		Delete(requestURL.String())
	if err != nil {
		log.WithError(err).WithFields(logTags).WithField("channel", channelID).
			Error("Channel delete request failed on call")
		return err
	}
	if !resp.IsSuccess() {
		err := remoteCallError(resp)
		log.WithError(err).WithFields(logTags).WithField("channel", channelID).
			Error("Channel delete failed")
		return err
	}

	log.WithFields(logTags).WithField("channel", channelID).Info("Channel deleted")
	return nil
}

// remoteCallError derive an error from a non-success REST response
func remoteCallError(resp *resty.Response) error {
	respError, ok := resp.Error().(*goutils.RestAPIBaseResponse)
	if ok && respError != nil && respError.Error != nil {
		return fmt.Errorf("%s", respError.Error.Detail)
	}
	return fmt.Errorf("status code %d", resp.StatusCode())
}
