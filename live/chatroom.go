package live

import (
	"context"
	"net/url"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/go-resty/resty/v2"
	"github.com/oklog/ulid/v2"
)

// ChatRoomService client for the chat room service collocated with live videos
type ChatRoomService interface {
	/*
		CreateRoom create the chat room associated with a video

			@param ctxt context.Context - execution context
			@param videoID string - video entry ID
	*/
	CreateRoom(ctxt context.Context, videoID string) error

	/*
		CloseRoom close the chat room associated with a video

			@param ctxt context.Context - execution context
			@param videoID string - video entry ID
	*/
	CloseRoom(ctxt context.Context, videoID string) error
}

// restChatRoomServiceImpl implements ChatRoomService over the service's REST API
type restChatRoomServiceImpl struct {
	goutils.Component
	baseURI         *url.URL
	requestIDHeader string
	client          *resty.Client
}

/*
NewRestChatRoomService define a new chat room service client based on REST

	@param baseURI *url.URL - chat service API base URL
	@param requestIDHeader string - request ID header name to set on requests
	@param httpClient *resty.Client - HTTP client to use
	@returns new client
*/
func NewRestChatRoomService(
	baseURI *url.URL, requestIDHeader string, httpClient *resty.Client,
) (ChatRoomService, error) {
	logTags := log.Fields{
		"module":    "live",
		"component": "rest-chat-room-service",
		"instance":  baseURI.String(),
	}

	return &restChatRoomServiceImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		baseURI:         baseURI,
		requestIDHeader: requestIDHeader,
		client:          httpClient,
	}, nil
}

func (c *restChatRoomServiceImpl) CreateRoom(ctxt context.Context, videoID string) error {
	return c.postRoomAction(ctxt, videoID, "Put")
}

func (c *restChatRoomServiceImpl) CloseRoom(ctxt context.Context, videoID string) error {
	return c.postRoomAction(ctxt, videoID, "Delete")
}

func (c *restChatRoomServiceImpl) postRoomAction(
	ctxt context.Context, videoID, method string,
) error {
	logTags := c.GetLogTagsForContext(ctxt)

	requestURL := c.baseURI.JoinPath("/v1/room", videoID)
	request := c.client.R().
		SetContext(ctxt).
		SetHeader(c.requestIDHeader, ulid.Make().String()).
		SetError(goutils.RestAPIBaseResponse{})

	var resp *resty.Response
	var err error
	if method == "Put" {
		resp, err = request.Put(requestURL.String())
	} else {
		resp, err = request.Delete(requestURL.String())
	}
	if err != nil {
		log.WithError(err).WithFields(logTags).WithField("video", videoID).
			Errorf("Chat room %s request failed on call", method)
		return err
	}
	if !resp.IsSuccess() {
		err := remoteCallError(resp)
		log.WithError(err).WithFields(logTags).WithField("video", videoID).
			Errorf("Chat room %s failed", method)
		return err
	}

	log.WithFields(logTags).WithField("video", videoID).Infof("Chat room %s complete", method)
	return nil
}
