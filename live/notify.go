package live

import (
	"context"
	"encoding/json"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
)

// Notifier live lifecycle event notification client
type Notifier interface {
	/*
		PublishStateChange announce a committed live state transition

			@param ctxt context.Context - execution context
			@param event LiveStateChangeEvent - the transition event
	*/
	PublishStateChange(ctxt context.Context, event LiveStateChangeEvent) error
}

// pubsubNotifierImpl implements Notifier
type pubsubNotifierImpl struct {
	goutils.Component
	psClient goutils.PubSubClient
	topic    string
}

/*
NewPubSubNotifier define new PubSub lifecycle event notification client

	@param psClient goutils.PubSubClient - PubSub client
	@param topic string - lifecycle event PubSub topic
	@returns new client
*/
func NewPubSubNotifier(psClient goutils.PubSubClient, topic string) (Notifier, error) {
	return &pubsubNotifierImpl{
		Component: goutils.Component{
			LogTags: log.Fields{
				"module":      "live",
				"component":   "pubsub-notifier",
				"event-topic": topic,
			},
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		}, psClient: psClient, topic: topic,
	}, nil
}

func (n *pubsubNotifierImpl) PublishStateChange(
	ctxt context.Context, event LiveStateChangeEvent,
) error {
	payload, err := json.Marshal(&event)
	if err != nil {
		return err
	}
	_, err = n.psClient.Publish(ctxt, n.topic, payload, nil, true)
	return err
}
