package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/openfun/marsha-live/common"
	"github.com/openfun/marsha-live/live"
	"github.com/openfun/marsha-live/utils"
)

// WebhookHandler REST API ingesting provider stream state reports
type WebhookHandler struct {
	goutils.RestAPIHandler
	validate        *validator.Validate
	manager         live.Manager
	secrets         utils.WebhookSecretStore
	signatureHeader string
}

/*
NewWebhookHandler define a new provider webhook REST API handler

	@param manager live.Manager - core live lifecycle manager
	@param secrets utils.WebhookSecretStore - webhook signature secret store
	@param signatureHeader string - HTTP header carrying the body signature
	@param logConfig common.HTTPRequestLogging - handler log settings
	@returns new WebhookHandler
*/
func NewWebhookHandler(
	manager live.Manager,
	secrets utils.WebhookSecretStore,
	signatureHeader string,
	logConfig common.HTTPRequestLogging,
) (WebhookHandler, error) {
	return WebhookHandler{
		RestAPIHandler: goutils.RestAPIHandler{
			Component: goutils.Component{
				LogTags: log.Fields{"module": "api", "component": "webhook-handler"},
				LogTagModifiers: []goutils.LogMetadataModifier{
					goutils.ModifyLogMetadataByRestRequestParam,
				},
			},
			CallRequestIDHeaderField: &logConfig.RequestIDHeader,
			DoNotLogHeaders: func() map[string]bool {
				result := map[string]bool{}
				for _, v := range logConfig.DoNotLogHeaders {
					result[v] = true
				}
				return result
			}(),
			LogLevel: logConfig.LogLevel,
		},
		validate:        validator.New(),
		manager:         manager,
		secrets:         secrets,
		signatureHeader: signatureHeader,
	}, nil
}

// StateUpdateResponse response indicating how a stream state report was processed
type StateUpdateResponse struct {
	goutils.RestAPIBaseResponse
	// Outcome the processing outcome label
	Outcome string `json:"outcome" validate:"required"`
}

// UpdateLiveState godoc
// @Summary Ingest stream state report
// @Description Apply one provider stream state report against a video. The raw
// request body must carry a valid HMAC signature. Redelivered reports are
// absorbed without effect.
// @tags webhook
// @Accept json
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param videoID path string true "Video ID"
// @Param param body live.StateUpdate true "Stream state report"
// @Success 200 {object} StateUpdateResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 403 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {object} goutils.RestAPIBaseResponse "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/webhook/video/{videoID}/state [post]
func (h WebhookHandler) UpdateLiveState(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	vars := mux.Vars(r)
	videoID, ok := vars["videoID"]
	if !ok {
		msg := "video ID missing from request URL"
		log.WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
		return
	}

	if r.Body == nil {
		msg := "no payload provided with stream state report"
		log.WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
		return
	}

	// The signature covers the raw body, so read it before parsing
	body, err := io.ReadAll(r.Body)
	if err != nil {
		msg := "unable to read stream state report"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, err.Error())
		return
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			log.WithError(err).WithFields(logTags).Error("Request body close error")
		}
	}()

	if !h.secrets.VerifySignature(r.Header.Get(h.signatureHeader), body) {
		err := common.AuthenticationError{}
		log.WithError(err).WithFields(logTags).WithField("video", videoID).
			Error("Rejected unauthenticated stream state report")
		respCode = http.StatusForbidden
		response = h.GetStdRESTErrorMsg(
			r.Context(), http.StatusForbidden, "signature verification failed", err.Error(),
		)
		return
	}

	var update live.StateUpdate
	if err := json.Unmarshal(body, &update); err != nil {
		msg := "unable to parse stream state report"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, err.Error())
		return
	}
	if err := h.validate.Struct(&update); err != nil {
		msg := "invalid stream state report"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, err.Error())
		return
	}

	outcome, err := h.manager.ApplyStateUpdate(r.Context(), videoID, update)
	if err != nil {
		msg := "failed to apply stream state report"
		log.WithError(err).WithFields(logTags).WithField("video", videoID).Error(msg)
		respCode = statusCodeForError(err)
		response = h.GetStdRESTErrorMsg(r.Context(), respCode, msg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = StateUpdateResponse{
		RestAPIBaseResponse: h.GetStdRESTSuccessMsg(r.Context()), Outcome: outcome,
	}
}

// UpdateLiveStateHandler Wrapper around UpdateLiveState
func (h WebhookHandler) UpdateLiveStateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.UpdateLiveState(w, r)
	}
}

// Alive godoc
// @Summary Webhook API liveness check
// @Description Will return success to indicate the webhook REST API module is live
// @tags util,webhook
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Success 200 {object} goutils.RestAPIBaseResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/alive [get]
func (h WebhookHandler) Alive(w http.ResponseWriter, r *http.Request) {
	logTags := h.GetLogTagsForContext(r.Context())
	if err := h.WriteRESTResponse(
		w, http.StatusOK, h.GetStdRESTSuccessMsg(r.Context()), nil,
	); err != nil {
		log.WithError(err).WithFields(logTags).Error("Failed to form response")
	}
}

// AliveHandler Wrapper around Alive
func (h WebhookHandler) AliveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.Alive(w, r)
	}
}
