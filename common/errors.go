package common

import (
	"fmt"
	"strings"
)

// InvalidStateError a caller attempted a live state transition not permitted
// from the video's current state. Never retried automatically.
type InvalidStateError struct {
	// VideoID the video the transition was attempted on
	VideoID string
	// Operation the transition operation attempted
	Operation string
	// Current the video's live state at the time of the attempt. NULL when the
	// video is not a live video.
	Current *LiveState
	// Allowed the live states the operation is permitted from
	Allowed []LiveState
}

func (e InvalidStateError) Error() string {
	current := "null"
	if e.Current != nil {
		current = string(*e.Current)
	}
	allowed := make([]string, 0, len(e.Allowed))
	for _, state := range e.Allowed {
		allowed = append(allowed, string(state))
	}
	return fmt.Sprintf(
		"'%s' not permitted on video '%s': current live state is '%s', requires one of [%s]",
		e.Operation,
		e.VideoID,
		current,
		strings.Join(allowed, ", "),
	)
}

// ProvisioningError an external provider call failed. Local state was left
// unchanged; the operation is safe to retry.
type ProvisioningError struct {
	// Operation the provider call that failed
	Operation string
	// Err the underlying failure
	Err error
}

func (e ProvisioningError) Error() string {
	return fmt.Sprintf("provider call '%s' failed: %s", e.Operation, e.Err.Error())
}

func (e ProvisioningError) Unwrap() error {
	return e.Err
}

// ManifestMissingError harvest job creation failed because the provider has
// no recording manifest for the channel. Handled by compensating teardown
// rather than retry.
type ManifestMissingError struct {
	// ChannelID the provider channel with no recording to harvest
	ChannelID string
}

func (e ManifestMissingError) Error() string {
	return fmt.Sprintf("no recording manifest available for channel '%s'", e.ChannelID)
}

// UnsupportedLiveTypeError pairing secrets were requested for a live type
// which does not support device pairing
type UnsupportedLiveTypeError struct {
	// LiveType the video's live type, if any
	LiveType *LiveType
}

func (e UnsupportedLiveTypeError) Error() string {
	liveType := "null"
	if e.LiveType != nil {
		liveType = string(*e.LiveType)
	}
	return fmt.Sprintf("live type '%s' does not support device pairing", liveType)
}

// SecretGenerationError pairing secret generation exhausted its collision
// retries. Transient, safe to retry.
type SecretGenerationError struct {
	// Attempts number of generation attempts made
	Attempts int
}

func (e SecretGenerationError) Error() string {
	return fmt.Sprintf("failed to generate a unique pairing secret after %d attempts", e.Attempts)
}

// AuthenticationError an inbound webhook's signature matched none of the
// active shared secrets. The request was dropped without any state change.
type AuthenticationError struct{}

func (e AuthenticationError) Error() string {
	return "webhook signature does not match any active secret"
}
