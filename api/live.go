package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/openfun/marsha-live/common"
	"github.com/openfun/marsha-live/live"
)

// LiveManagementHandler REST API interface to the live lifecycle manager
type LiveManagementHandler struct {
	goutils.RestAPIHandler
	validate *validator.Validate
	manager  live.Manager
}

/*
NewLiveManagementHandler define a new live management REST API handler

	@param manager live.Manager - core live lifecycle manager
	@param logConfig common.HTTPRequestLogging - handler log settings
	@returns new LiveManagementHandler
*/
func NewLiveManagementHandler(
	manager live.Manager, logConfig common.HTTPRequestLogging,
) (LiveManagementHandler, error) {
	return LiveManagementHandler{
		RestAPIHandler: goutils.RestAPIHandler{
			Component: goutils.Component{
				LogTags: log.Fields{"module": "api", "component": "live-management-handler"},
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
		}, validate: validator.New(), manager: manager,
	}, nil
}

// ====================================================================================
// Video CRUD

// NewVideoRequest parameters to define a new video
type NewVideoRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description,omitempty"`
}

// VideoInfoResponse response containing information for one video
type VideoInfoResponse struct {
	goutils.RestAPIBaseResponse
	// Video the video entry
	Video common.Video `json:"video" validate:"required,dive"`
}

// DefineNewVideo godoc
// @Summary Define a new video
// @Description Define a new video entry within the system.
// @tags management
// @Accept json
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param param body NewVideoRequest true "Video parameters"
// @Success 200 {object} VideoInfoResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/video [post]
func (h LiveManagementHandler) DefineNewVideo(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	if r.Body == nil {
		msg := "no payload provided to define new video"
		log.WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
		return
	}

	// Parse the create parameters
	var params NewVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		msg := "unable to parse new video parameters from request"
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

	// Validate parameters
	if err := h.validate.Struct(&params); err != nil {
		msg := "missing required values to define new video"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, err.Error())
		return
	}

	// Define the video
	entryID, err := h.manager.DefineVideo(r.Context(), params.Title, params.Description)
	if err != nil {
		msg := "failed to define new video"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusInternalServerError
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusInternalServerError, msg, err.Error())
		return
	}

	// Read back the video
	entry, err := h.manager.GetVideo(r.Context(), entryID)
	if err != nil {
		msg := "failed to read back the new video entry"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusInternalServerError
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusInternalServerError, msg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = VideoInfoResponse{
		RestAPIBaseResponse: h.GetStdRESTSuccessMsg(r.Context()), Video: entry,
	}
}

// DefineNewVideoHandler Wrapper around DefineNewVideo
func (h LiveManagementHandler) DefineNewVideoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.DefineNewVideo(w, r)
	}
}

// ------------------------------------------------------------------------------------

// VideoInfoListResponse response containing list of videos
type VideoInfoListResponse struct {
	goutils.RestAPIBaseResponse
	// Videos list of video entries
	Videos []common.Video `json:"videos" validate:"required,dive"`
}

// ListVideos godoc
// @Summary List known videos
// @Description Fetch list of known videos in the system
// @tags management
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Success 200 {object} VideoInfoListResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/video [get]
func (h LiveManagementHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	entries, err := h.manager.ListVideos(r.Context())
	if err != nil {
		msg := "failed to list videos"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusInternalServerError
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusInternalServerError, msg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = VideoInfoListResponse{
		RestAPIBaseResponse: h.GetStdRESTSuccessMsg(r.Context()), Videos: entries,
	}
}

// ListVideosHandler Wrapper around ListVideos
func (h LiveManagementHandler) ListVideosHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.ListVideos(w, r)
	}
}

// ------------------------------------------------------------------------------------

// GetVideo godoc
// @Summary Fetch video
// @Description Fetch a particular video entry
// @tags management
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param videoID path string true "Video ID"
// @Success 200 {object} VideoInfoResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {object} goutils.RestAPIBaseResponse "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/video/{videoID} [get]
func (h LiveManagementHandler) GetVideo(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	videoID, ok := h.videoIDFromRequest(w, r, &respCode, &response)
	if !ok {
		return
	}

	entry, err := h.manager.GetVideo(r.Context(), videoID)
	if err != nil {
		msg := "failed to fetch video"
		log.WithError(err).WithFields(logTags).WithField("video", videoID).Error(msg)
		respCode = statusCodeForError(err)
		response = h.GetStdRESTErrorMsg(r.Context(), respCode, msg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = VideoInfoResponse{
		RestAPIBaseResponse: h.GetStdRESTSuccessMsg(r.Context()), Video: entry,
	}
}

// GetVideoHandler Wrapper around GetVideo
func (h LiveManagementHandler) GetVideoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.GetVideo(w, r)
	}
}

// ------------------------------------------------------------------------------------

// DeleteVideo godoc
// @Summary Delete video
// @Description Delete a particular video entry
// @tags management
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param videoID path string true "Video ID"
// @Success 200 {object} goutils.RestAPIBaseResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {object} goutils.RestAPIBaseResponse "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/video/{videoID} [delete]
func (h LiveManagementHandler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	videoID, ok := h.videoIDFromRequest(w, r, &respCode, &response)
	if !ok {
		return
	}

	if err := h.manager.DeleteVideo(r.Context(), videoID); err != nil {
		msg := "failed to delete video"
		log.WithError(err).WithFields(logTags).WithField("video", videoID).Error(msg)
		respCode = statusCodeForError(err)
		response = h.GetStdRESTErrorMsg(r.Context(), respCode, msg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = h.GetStdRESTSuccessMsg(r.Context())
}

// DeleteVideoHandler Wrapper around DeleteVideo
func (h LiveManagementHandler) DeleteVideoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.DeleteVideo(w, r)
	}
}

// ====================================================================================
// Live lifecycle

// LiveStatusResponse response containing the live status of one video
type LiveStatusResponse struct {
	goutils.RestAPIBaseResponse
	// Status the live status summary
	Status common.LiveStateSummary `json:"status" validate:"required,dive"`
}

// GetLiveStatus godoc
// @Summary Fetch video live status
// @Description Fetch the condensed live status of a video
// @tags management
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param videoID path string true "Video ID"
// @Success 200 {object} LiveStatusResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {object} goutils.RestAPIBaseResponse "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/video/{videoID}/live [get]
func (h LiveManagementHandler) GetLiveStatus(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	videoID, ok := h.videoIDFromRequest(w, r, &respCode, &response)
	if !ok {
		return
	}

	status, err := h.manager.GetLiveStatus(r.Context(), videoID)
	if err != nil {
		msg := "failed to fetch video live status"
		log.WithError(err).WithFields(logTags).WithField("video", videoID).Error(msg)
		respCode = statusCodeForError(err)
		response = h.GetStdRESTErrorMsg(r.Context(), respCode, msg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = LiveStatusResponse{
		RestAPIBaseResponse: h.GetStdRESTSuccessMsg(r.Context()), Status: status,
	}
}

// GetLiveStatusHandler Wrapper around GetLiveStatus
func (h LiveManagementHandler) GetLiveStatusHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.GetLiveStatus(w, r)
	}
}

// ------------------------------------------------------------------------------------

// InitiateLiveRequest parameters to attach a live session to a video
type InitiateLiveRequest struct {
	LiveType string `json:"type" validate:"required,oneof=raw jitsi"`
}

// InitiateLive godoc
// @Summary Initiate live session
// @Description Attach a live session to a video. No streaming resources are
// provisioned at this point.
// @tags management
// @Accept json
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param videoID path string true "Video ID"
// @Param param body InitiateLiveRequest true "Live session parameters"
// @Success 200 {object} VideoInfoResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {object} goutils.RestAPIBaseResponse "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/video/{videoID}/live [post]
func (h LiveManagementHandler) InitiateLive(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	videoID, ok := h.videoIDFromRequest(w, r, &respCode, &response)
	if !ok {
		return
	}

	if r.Body == nil {
		msg := "no payload provided to initiate live session"
		log.WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
		return
	}

	var params InitiateLiveRequest
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		msg := "unable to parse live session parameters from request"
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

	if err := h.validate.Struct(&params); err != nil {
		msg := "invalid live session parameters"
		log.WithError(err).WithFields(logTags).Error(msg)
		respCode = http.StatusBadRequest
		response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, err.Error())
		return
	}

	entry, err := h.manager.InitiateLive(r.Context(), videoID, common.LiveType(params.LiveType))
	if err != nil {
		msg := "failed to initiate live session"
		log.WithError(err).WithFields(logTags).WithField("video", videoID).Error(msg)
		respCode = statusCodeForError(err)
		response = h.GetStdRESTErrorMsg(r.Context(), respCode, msg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = VideoInfoResponse{
		RestAPIBaseResponse: h.GetStdRESTSuccessMsg(r.Context()), Video: entry,
	}
}

// InitiateLiveHandler Wrapper around InitiateLive
func (h LiveManagementHandler) InitiateLiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.InitiateLive(w, r)
	}
}

// ------------------------------------------------------------------------------------

// StartLive godoc
// @Summary Start live stream
// @Description Provision streaming resources if needed and request stream start
// @tags management
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param videoID path string true "Video ID"
// @Success 200 {object} VideoInfoResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {object} goutils.RestAPIBaseResponse "error"
// @Failure 409 {object} goutils.RestAPIBaseResponse "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/video/{videoID}/live/start [post]
func (h LiveManagementHandler) StartLive(w http.ResponseWriter, r *http.Request) {
	h.runLifecycleOperation(w, r, "start live stream", h.manager.StartLive)
}

// StartLiveHandler Wrapper around StartLive
func (h LiveManagementHandler) StartLiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.StartLive(w, r)
	}
}

// StopLive godoc
// @Summary Stop live stream
// @Description Request stream stop. The session remains resumable.
// @tags management
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param videoID path string true "Video ID"
// @Success 200 {object} VideoInfoResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {object} goutils.RestAPIBaseResponse "error"
// @Failure 409 {object} goutils.RestAPIBaseResponse "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/video/{videoID}/live/stop [post]
func (h LiveManagementHandler) StopLive(w http.ResponseWriter, r *http.Request) {
	h.runLifecycleOperation(w, r, "stop live stream", h.manager.StopLive)
}

// StopLiveHandler Wrapper around StopLive
func (h LiveManagementHandler) StopLiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.StopLive(w, r)
	}
}

// EndLive godoc
// @Summary End live session
// @Description Finalize a live session, tearing down streaming resources and
// handing the recording off for harvest.
// @tags management
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param videoID path string true "Video ID"
// @Success 200 {object} VideoInfoResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {object} goutils.RestAPIBaseResponse "error"
// @Failure 409 {object} goutils.RestAPIBaseResponse "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/video/{videoID}/live/end [post]
func (h LiveManagementHandler) EndLive(w http.ResponseWriter, r *http.Request) {
	h.runLifecycleOperation(w, r, "end live session", h.manager.EndLive)
}

// EndLiveHandler Wrapper around EndLive
func (h LiveManagementHandler) EndLiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.EndLive(w, r)
	}
}

// runLifecycleOperation shared request plumbing for the parameterless
// lifecycle transitions
func (h LiveManagementHandler) runLifecycleOperation(
	w http.ResponseWriter,
	r *http.Request,
	opName string,
	operation func(ctxt context.Context, videoID string) (common.Video, error),
) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	videoID, ok := h.videoIDFromRequest(w, r, &respCode, &response)
	if !ok {
		return
	}

	entry, err := operation(r.Context(), videoID)
	if err != nil {
		msg := "failed to " + opName
		log.WithError(err).WithFields(logTags).WithField("video", videoID).Error(msg)
		respCode = statusCodeForError(err)
		response = h.GetStdRESTErrorMsg(r.Context(), respCode, msg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = VideoInfoResponse{
		RestAPIBaseResponse: h.GetStdRESTSuccessMsg(r.Context()), Video: entry,
	}
}

// ------------------------------------------------------------------------------------

// LivePairingResponse response containing a new pairing secret
type LivePairingResponse struct {
	goutils.RestAPIBaseResponse
	// Pairing the new pairing entry
	Pairing common.LivePairing `json:"pairing" validate:"required,dive"`
}

// RequestPairingSecret godoc
// @Summary Request device pairing secret
// @Description Issue a short-lived secret allowing an external streaming
// device to join the video's live session.
// @tags management
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Param videoID path string true "Video ID"
// @Success 200 {object} LivePairingResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {object} goutils.RestAPIBaseResponse "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/video/{videoID}/live/pairing [post]
func (h LiveManagementHandler) RequestPairingSecret(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()

	videoID, ok := h.videoIDFromRequest(w, r, &respCode, &response)
	if !ok {
		return
	}

	pairing, err := h.manager.GeneratePairingSecret(r.Context(), videoID)
	if err != nil {
		msg := "failed to issue pairing secret"
		log.WithError(err).WithFields(logTags).WithField("video", videoID).Error(msg)
		respCode = statusCodeForError(err)
		response = h.GetStdRESTErrorMsg(r.Context(), respCode, msg, err.Error())
		return
	}

	respCode = http.StatusOK
	response = LivePairingResponse{
		RestAPIBaseResponse: h.GetStdRESTSuccessMsg(r.Context()), Pairing: pairing,
	}
}

// RequestPairingSecretHandler Wrapper around RequestPairingSecret
func (h LiveManagementHandler) RequestPairingSecretHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.RequestPairingSecret(w, r)
	}
}

// ====================================================================================
// Support

// videoIDFromRequest read the video ID path variable off a request
func (h LiveManagementHandler) videoIDFromRequest(
	w http.ResponseWriter, r *http.Request, respCode *int, response *interface{},
) (string, bool) {
	logTags := h.GetLogTagsForContext(r.Context())
	vars := mux.Vars(r)
	videoID, ok := vars["videoID"]
	if !ok {
		msg := "video ID missing from request URL"
		log.WithFields(logTags).Error(msg)
		*respCode = http.StatusBadRequest
		*response = h.GetStdRESTErrorMsg(r.Context(), http.StatusBadRequest, msg, msg)
		return "", false
	}
	return videoID, true
}

// ====================================================================================
// Health check

// Alive godoc
// @Summary Live management API liveness check
// @Description Will return success to indicate the management REST API module is live
// @tags util,management
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Success 200 {object} goutils.RestAPIBaseResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/alive [get]
func (h LiveManagementHandler) Alive(w http.ResponseWriter, r *http.Request) {
	logTags := h.GetLogTagsForContext(r.Context())
	if err := h.WriteRESTResponse(
		w, http.StatusOK, h.GetStdRESTSuccessMsg(r.Context()), nil,
	); err != nil {
		log.WithError(err).WithFields(logTags).Error("Failed to form response")
	}
}

// AliveHandler Wrapper around Alive
func (h LiveManagementHandler) AliveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.Alive(w, r)
	}
}

// Ready godoc
// @Summary Live management API readiness check
// @Description Will return success if the system is ready to accept requests
// @tags util,management
// @Produce json
// @Param X-Request-ID header string false "Request ID"
// @Success 200 {object} goutils.RestAPIBaseResponse "success"
// @Failure 400 {object} goutils.RestAPIBaseResponse "error"
// @Failure 404 {string} string "error"
// @Failure 500 {object} goutils.RestAPIBaseResponse "error"
// @Router /v1/ready [get]
func (h LiveManagementHandler) Ready(w http.ResponseWriter, r *http.Request) {
	var respCode int
	var response interface{}
	logTags := h.GetLogTagsForContext(r.Context())
	defer func() {
		if err := h.WriteRESTResponse(w, respCode, response, nil); err != nil {
			log.WithError(err).WithFields(logTags).Error("Failed to form response")
		}
	}()
	if err := h.manager.Ready(r.Context()); err != nil {
		respCode = http.StatusInternalServerError
		response = h.GetStdRESTErrorMsg(
			r.Context(), http.StatusInternalServerError, "not ready", err.Error(),
		)
	} else {
		respCode = http.StatusOK
		response = h.GetStdRESTSuccessMsg(r.Context())
	}
}

// ReadyHandler Wrapper around Ready
func (h LiveManagementHandler) ReadyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.Ready(w, r)
	}
}
