package live_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/jarcoal/httpmock"
	"github.com/openfun/marsha-live/common"
	"github.com/openfun/marsha-live/live"
	"github.com/stretchr/testify/assert"
)

func getTestStreamProvider(
	t *testing.T, baseURL string, readyTimeoutInSec, readyPollIntInSec uint32,
) (live.StreamProvider, *resty.Client) {
	testClient := resty.New()
	// Install with mock
	httpmock.ActivateNonDefault(testClient.GetClient())

	testURL, err := url.Parse(baseURL)
	assert.Nil(t, err)

	uut, err := live.NewRestStreamProvider(testURL, common.StreamProviderConfig{
		BaseURL:                  baseURL,
		RequestIDHeader:          "Request-ID",
		ChannelReadyTimeoutInSec: readyTimeoutInSec,
		ChannelReadyPollIntInSec: readyPollIntInSec,
	}, testClient)
	assert.Nil(t, err)
	return uut, testClient
}

func TestRestStreamProviderCreateStream(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtxt := context.Background()

	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	uut, _ := getTestStreamProvider(t, "http://ut.testing.dev", 30, 1)

	testVideoID := uuid.NewString()
	testStreamKey := uuid.NewString()
	testStream := common.StreamHandle{
		ChannelID:       uuid.NewString(),
		InputID:         uuid.NewString(),
		StreamKey:       testStreamKey,
		IngestEndpoints: []string{"rtmp://ingest.ut.testing.dev/live"},
	}

	// Prepare mock
	httpmock.RegisterResponder(
		"POST",
		"http://ut.testing.dev/v1/stream",
		func(r *http.Request) (*http.Response, error) {
			// Verify the headers
			assert.NotEmpty(r.Header.Get("Request-ID"))

			// Verify payload
			payload, err := io.ReadAll(r.Body)
			assert.Nil(err)
			defer func() {
				assert.Nil(r.Body.Close())
			}()
			var request map[string]string
			assert.Nil(json.Unmarshal(payload, &request))
			assert.Equal(testVideoID, request["video_id"])
			assert.Equal(testStreamKey, request["stream_key"])

			// Send response
			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"success": true, "stream": testStream,
			})
		},
	)

	// Case 0: provisioning succeeds
	stream, err := uut.CreateStream(utCtxt, testVideoID, testStreamKey)
	assert.Nil(err)
	assert.Equal(testStream, stream)

	// Case 1: provider reports an error
	httpmock.RegisterResponder(
		"POST",
		"http://ut.testing.dev/v1/stream",
		func(r *http.Request) (*http.Response, error) {
			return httpmock.NewJsonResponse(http.StatusInternalServerError, goutils.RestAPIBaseResponse{
				Success: false,
				Error:   &goutils.ErrorDetail{Code: 500, Detail: "provider exploded"},
			})
		},
	)
	_, err = uut.CreateStream(utCtxt, testVideoID, testStreamKey)
	assert.NotNil(err)
	assert.Equal("provider exploded", err.Error())
}

func TestRestStreamProviderWaitUntilReady(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtxt := context.Background()

	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	testChannelID := uuid.NewString()
	statusURL := fmt.Sprintf("http://ut.testing.dev/v1/channel/%s/status", testChannelID)

	// Case 0: channel becomes ready after a few probes
	{
		uut, _ := getTestStreamProvider(t, "http://ut.testing.dev", 30, 1)

		var probes atomic.Int32
		httpmock.RegisterResponder(
			"GET",
			statusURL,
			func(r *http.Request) (*http.Response, error) {
				assert.NotEmpty(r.Header.Get("Request-ID"))
				return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
					"success": true, "ready": probes.Add(1) >= 3,
				})
			},
		)

		startTime := time.Now()
		assert.Nil(uut.WaitUntilReady(utCtxt, testChannelID))
		assert.GreaterOrEqual(time.Since(startTime), time.Second*2)
		assert.EqualValues(3, probes.Load())
	}

	// Case 1: the wait is bounded
	{
		uut, _ := getTestStreamProvider(t, "http://ut.testing.dev", 1, 1)

		httpmock.RegisterResponder(
			"GET",
			statusURL,
			func(r *http.Request) (*http.Response, error) {
				return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
					"success": true, "ready": false,
				})
			},
		)

		assert.NotNil(uut.WaitUntilReady(utCtxt, testChannelID))
	}
}

func TestRestStreamProviderChannelActions(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtxt := context.Background()

	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	uut, _ := getTestStreamProvider(t, "http://ut.testing.dev", 30, 1)

	testChannelID := uuid.NewString()

	// Prepare mock
	httpmock.RegisterResponder(
		"POST",
		fmt.Sprintf("http://ut.testing.dev/v1/channel/%s/start", testChannelID),
		httpmock.NewJsonResponderOrPanic(http.StatusOK, goutils.RestAPIBaseResponse{Success: true}),
	)
	httpmock.RegisterResponder(
		"POST",
		fmt.Sprintf("http://ut.testing.dev/v1/channel/%s/stop", testChannelID),
		httpmock.NewJsonResponderOrPanic(http.StatusOK, goutils.RestAPIBaseResponse{Success: true}),
	)
	httpmock.RegisterResponder(
		"DELETE",
		fmt.Sprintf("http://ut.testing.dev/v1/channel/%s", testChannelID),
		httpmock.NewJsonResponderOrPanic(http.StatusOK, goutils.RestAPIBaseResponse{Success: true}),
	)

	assert.Nil(uut.StartChannel(utCtxt, testChannelID))
	assert.Nil(uut.StopChannel(utCtxt, testChannelID))
	assert.Nil(uut.DeleteChannel(utCtxt, testChannelID))

	info := httpmock.GetCallCountInfo()
	assert.Equal(
		1, info[fmt.Sprintf("POST http://ut.testing.dev/v1/channel/%s/start", testChannelID)],
	)
	assert.Equal(
		1, info[fmt.Sprintf("POST http://ut.testing.dev/v1/channel/%s/stop", testChannelID)],
	)
	assert.Equal(
		1, info[fmt.Sprintf("DELETE http://ut.testing.dev/v1/channel/%s", testChannelID)],
	)
}

func TestRestStreamProviderCreateHarvestJob(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtxt := context.Background()

	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	uut, _ := getTestStreamProvider(t, "http://ut.testing.dev", 30, 1)

	testVideoID := uuid.NewString()
	testChannelID := uuid.NewString()
	testJobID := uuid.NewString()

	// Case 0: harvest job created
	httpmock.RegisterResponder(
		"POST",
		"http://ut.testing.dev/v1/harvest",
		func(r *http.Request) (*http.Response, error) {
			payload, err := io.ReadAll(r.Body)
			assert.Nil(err)
			defer func() {
				assert.Nil(r.Body.Close())
			}()
			var request map[string]string
			assert.Nil(json.Unmarshal(payload, &request))
			assert.Equal(testVideoID, request["video_id"])
			assert.Equal(testChannelID, request["channel_id"])

			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"success": true, "job_id": testJobID,
			})
		},
	)
	jobID, err := uut.CreateHarvestJob(utCtxt, testVideoID, testChannelID)
	assert.Nil(err)
	assert.Equal(testJobID, jobID)

	// Case 1: no recording manifest for the channel
	httpmock.RegisterResponder(
		"POST",
		"http://ut.testing.dev/v1/harvest",
		httpmock.NewJsonResponderOrPanic(http.StatusNotFound, goutils.RestAPIBaseResponse{
			Success: false,
			Error:   &goutils.ErrorDetail{Code: 404, Detail: "no recording manifest"},
		}),
	)
	_, err = uut.CreateHarvestJob(utCtxt, testVideoID, testChannelID)
	assert.NotNil(err)
	assert.ErrorAs(err, &common.ManifestMissingError{})
}

func TestRestStreamProviderTeardownStack(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtxt := context.Background()

	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	uut, _ := getTestStreamProvider(t, "http://ut.testing.dev", 30, 1)

	testStream := common.StreamHandle{ChannelID: uuid.NewString(), InputID: uuid.NewString()}

	httpmock.RegisterResponder(
		"POST",
		"http://ut.testing.dev/v1/stack/teardown",
		func(r *http.Request) (*http.Response, error) {
			payload, err := io.ReadAll(r.Body)
			assert.Nil(err)
			defer func() {
				assert.Nil(r.Body.Close())
			}()
			var request map[string]string
			assert.Nil(json.Unmarshal(payload, &request))
			assert.Equal(testStream.ChannelID, request["channel_id"])
			assert.Equal(testStream.InputID, request["input_id"])

			return httpmock.NewJsonResponse(http.StatusOK, goutils.RestAPIBaseResponse{Success: true})
		},
	)

	assert.Nil(uut.TeardownStack(utCtxt, testStream))
}
