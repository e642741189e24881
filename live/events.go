package live

import (
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/openfun/marsha-live/common"
)

// LiveStateChangeEvent broadcast message announcing a committed live state
// transition
type LiveStateChangeEvent struct {
	// EventID unique event ID
	EventID string `json:"event_id" validate:"required"`
	// VideoID the video whose live state changed
	VideoID string `json:"video_id" validate:"required"`
	// Previous live state before the transition. NULL when the video was not live.
	Previous *common.LiveState `json:"previous,omitempty"`
	// Current live state after the transition. NULL when the live was torn down.
	Current *common.LiveState `json:"current,omitempty"`
	// RequestID provider request ID, set when the transition was webhook driven
	RequestID *string `json:"request_id,omitempty"`
	// Timestamp when the transition was committed
	Timestamp time.Time `json:"timestamp" validate:"required"`
}

/*
NewLiveStateChangeEvent define a new live state change event

	@param videoID string - the video whose live state changed
	@param previous *common.LiveState - live state before the transition
	@param current *common.LiveState - live state after the transition
	@returns event message
*/
func NewLiveStateChangeEvent(
	videoID string, previous, current *common.LiveState,
) LiveStateChangeEvent {
	return LiveStateChangeEvent{
		EventID:   ulid.Make().String(),
		VideoID:   videoID,
		Previous:  previous,
		Current:   current,
		Timestamp: time.Now().UTC(),
	}
}
