package api_test

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/apex/log"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/openfun/marsha-live/api"
	"github.com/openfun/marsha-live/common"
	"github.com/openfun/marsha-live/live"
	"github.com/openfun/marsha-live/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// signBody compute the hex encoded HMAC-SHA256 of a payload
func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestWebhookUpdateLiveState(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	mockManager := mocks.NewManager(t)
	mockSecrets := mocks.NewWebhookSecretStore(t)

	testSignatureHeader := "X-Marsha-Signature"
	uut, err := api.NewWebhookHandler(
		mockManager, mockSecrets, testSignatureHeader, common.HTTPRequestLogging{
			RequestIDHeader: "X-Request-ID", DoNotLogHeaders: []string{},
		},
	)
	assert.Nil(err)

	testVideoID := uuid.NewString()
	targetURL := fmt.Sprintf("/v1/webhook/video/%s/state", testVideoID)
	testSecret := uuid.NewString()

	buildRouter := func() (*mux.Router, *httptest.ResponseRecorder) {
		router := mux.NewRouter()
		respRecorder := httptest.NewRecorder()
		router.HandleFunc(
			"/v1/webhook/video/{videoID}/state",
			uut.LoggingMiddleware(uut.UpdateLiveStateHandler()),
		)
		return router, respRecorder
	}

	// Case 0: signature does not match the body
	{
		payloadByte, err := json.Marshal(&live.StateUpdate{
			RequestID: uuid.NewString(), State: "running",
		})
		assert.Nil(err)
		req, err := http.NewRequest("POST", targetURL, bytes.NewBuffer(payloadByte))
		assert.Nil(err)
		req.Header.Set(testSignatureHeader, signBody("wrong-secret", payloadByte))

		router, respRecorder := buildRouter()

		// Prepare mock
		mockSecrets.On(
			"VerifySignature", signBody("wrong-secret", payloadByte), payloadByte,
		).Return(false).Once()

		// Request
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusForbidden, respRecorder.Code)
	}

	// Case 1: signature missing entirely
	{
		payloadByte, err := json.Marshal(&live.StateUpdate{
			RequestID: uuid.NewString(), State: "running",
		})
		assert.Nil(err)
		req, err := http.NewRequest("POST", targetURL, bytes.NewBuffer(payloadByte))
		assert.Nil(err)

		router, respRecorder := buildRouter()

		// Prepare mock
		mockSecrets.On("VerifySignature", "", payloadByte).Return(false).Once()

		// Request
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusForbidden, respRecorder.Code)
	}

	// Case 2: signed but malformed payload
	{
		payloadByte := []byte(uuid.NewString())
		req, err := http.NewRequest("POST", targetURL, bytes.NewBuffer(payloadByte))
		assert.Nil(err)
		signature := signBody(testSecret, payloadByte)
		req.Header.Set(testSignatureHeader, signature)

		router, respRecorder := buildRouter()

		// Prepare mock
		mockSecrets.On("VerifySignature", signature, payloadByte).Return(true).Once()

		// Request
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusBadRequest, respRecorder.Code)
	}

	// Case 3: signed payload with unsupported state value
	{
		payloadByte, err := json.Marshal(&live.StateUpdate{
			RequestID: uuid.NewString(), State: "exploded",
		})
		assert.Nil(err)
		req, err := http.NewRequest("POST", targetURL, bytes.NewBuffer(payloadByte))
		assert.Nil(err)
		signature := signBody(testSecret, payloadByte)
		req.Header.Set(testSignatureHeader, signature)

		router, respRecorder := buildRouter()

		// Prepare mock
		mockSecrets.On("VerifySignature", signature, payloadByte).Return(true).Once()

		// Request
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusBadRequest, respRecorder.Code)
	}

	// Case 4: valid report applied
	{
		update := live.StateUpdate{RequestID: uuid.NewString(), State: "running"}
		payloadByte, err := json.Marshal(&update)
		assert.Nil(err)
		req, err := http.NewRequest("POST", targetURL, bytes.NewBuffer(payloadByte))
		assert.Nil(err)
		signature := signBody(testSecret, payloadByte)
		req.Header.Set(testSignatureHeader, signature)

		router, respRecorder := buildRouter()

		// Prepare mock
		mockSecrets.On("VerifySignature", signature, payloadByte).Return(true).Once()
		mockManager.On(
			"ApplyStateUpdate",
			mock.AnythingOfType("*context.valueCtx"),
			testVideoID,
			update,
		).Return(live.WebhookOutcomeApplied, nil).Once()

		// Request
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusOK, respRecorder.Code)
		var resp api.StateUpdateResponse
		assert.Nil(json.Unmarshal(respRecorder.Body.Bytes(), &resp))
		assert.Equal(live.WebhookOutcomeApplied, resp.Outcome)
	}

	// Case 5: redelivered report absorbed
	{
		update := live.StateUpdate{RequestID: uuid.NewString(), State: "stopped"}
		payloadByte, err := json.Marshal(&update)
		assert.Nil(err)
		req, err := http.NewRequest("POST", targetURL, bytes.NewBuffer(payloadByte))
		assert.Nil(err)
		signature := signBody(testSecret, payloadByte)
		req.Header.Set(testSignatureHeader, signature)

		router, respRecorder := buildRouter()

		// Prepare mock
		mockSecrets.On("VerifySignature", signature, payloadByte).Return(true).Once()
		mockManager.On(
			"ApplyStateUpdate",
			mock.AnythingOfType("*context.valueCtx"),
			testVideoID,
			update,
		).Return(live.WebhookOutcomeDuplicate, nil).Once()

		// Request
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusOK, respRecorder.Code)
		var resp api.StateUpdateResponse
		assert.Nil(json.Unmarshal(respRecorder.Body.Bytes(), &resp))
		assert.Equal(live.WebhookOutcomeDuplicate, resp.Outcome)
	}

	// Case 6: report against an unknown video
	{
		update := live.StateUpdate{RequestID: uuid.NewString(), State: "running"}
		payloadByte, err := json.Marshal(&update)
		assert.Nil(err)
		req, err := http.NewRequest("POST", targetURL, bytes.NewBuffer(payloadByte))
		assert.Nil(err)
		signature := signBody(testSecret, payloadByte)
		req.Header.Set(testSignatureHeader, signature)

		router, respRecorder := buildRouter()

		// Prepare mock
		mockSecrets.On("VerifySignature", signature, payloadByte).Return(true).Once()
		mockManager.On(
			"ApplyStateUpdate",
			mock.AnythingOfType("*context.valueCtx"),
			testVideoID,
			update,
		).Return(live.WebhookOutcomeRejected, gorm.ErrRecordNotFound).Once()

		// Request
		router.ServeHTTP(respRecorder, req)

		assert.Equal(http.StatusNotFound, respRecorder.Code)
	}
}
