package common

import (
	"time"
)

// LiveState video live broadcast state
type LiveState string

// Live broadcast states. A video with no live state set is not a live video.
const (
	// LiveStateIdle live session initialized, streaming infrastructure not running
	LiveStateIdle LiveState = "idle"
	// LiveStateStarting streaming infrastructure start requested
	LiveStateStarting LiveState = "starting"
	// LiveStateRunning provider reported the stream as running
	LiveStateRunning LiveState = "running"
	// LiveStateStopping stream stop requested, provider not yet confirmed
	LiveStateStopping LiveState = "stopping"
	// LiveStateStopped live session finalized, recording handed off for harvest
	LiveStateStopped LiveState = "stopped"
	// LiveStatePaused provider reported the stream as stopped, session resumable
	LiveStatePaused LiveState = "paused"
	// LiveStateHarvesting recording conversion in progress
	LiveStateHarvesting LiveState = "harvesting"
)

// LiveType the kind of live session attached to a video
type LiveType string

const (
	// LiveTypeRaw direct ingest from an external streaming device
	LiveTypeRaw LiveType = "raw"
	// LiveTypeJitsi live session driven through a Jitsi conference
	LiveTypeJitsi LiveType = "jitsi"
)

// UploadState state of the VOD asset attached to a video
type UploadState string

const (
	// UploadStatePending no VOD asset available yet
	UploadStatePending UploadState = "pending"
	// UploadStateHarvesting live recording being converted into a VOD asset
	UploadStateHarvesting UploadState = "harvesting"
	// UploadStateDeleted the video's assets were discarded
	UploadStateDeleted UploadState = "deleted"
)

// StreamHandle externally provisioned streaming resources for one live session
type StreamHandle struct {
	// ChannelID provider channel ID
	ChannelID string `json:"channel_id" validate:"required"`
	// InputID provider input ID
	InputID string `json:"input_id" validate:"required"`
	// StreamKey ingest stream key the broadcasting device authenticates with
	StreamKey string `json:"stream_key,omitempty"`
	// IngestEndpoints ingest endpoint URLs exposed by the provider
	IngestEndpoints []string `json:"ingest_endpoints,omitempty"`
}

// LiveInfo provisioning metadata for a video's live session.
//
// Absence of this record while a live state is set means provisioning has not
// been attempted yet.
type LiveInfo struct {
	// Stream provider resources backing the session
	Stream *StreamHandle `json:"stream,omitempty"`
	// RequestIDs dedup ledger of already applied provider state update request IDs
	RequestIDs []string `json:"request_ids,omitempty"`
	// LogGroupName provider-side log group associated with the session
	LogGroupName *string `json:"log_group,omitempty"`
	// StartedAt when the provider first reported the stream running
	StartedAt *time.Time `json:"started_at,omitempty"`
	// StoppedAt when the live session was finalized
	StoppedAt *time.Time `json:"stopped_at,omitempty"`
	// PausedAt when the stream was last reported or requested stopped
	PausedAt *time.Time `json:"paused_at,omitempty"`
}

// SeenRequestID check whether a provider request ID was already applied
func (i LiveInfo) SeenRequestID(requestID string) bool {
	for _, seen := range i.RequestIDs {
		if seen == requestID {
			return true
		}
	}
	return false
}

// MaxTrackedRequestIDs upper bound on the dedup ledger length. Provider
// retries arrive within minutes of each other, so a bounded recent window is
// sufficient to keep ingestion idempotent over a long-running session.
const MaxTrackedRequestIDs = 512

// RememberRequestID append a provider request ID to the dedup ledger. When
// the ledger is full, the oldest half is discarded first.
func (i *LiveInfo) RememberRequestID(requestID string) {
	if len(i.RequestIDs) >= MaxTrackedRequestIDs {
		retained := make([]string, 0, MaxTrackedRequestIDs/2+1)
		retained = append(retained, i.RequestIDs[MaxTrackedRequestIDs/2:]...)
		i.RequestIDs = retained
	}
	i.RequestIDs = append(i.RequestIDs, requestID)
}

// Video a single video entry and its live broadcast related fields
type Video struct {
	// ID video entry ID
	ID string `json:"id" gorm:"column:id;primaryKey" validate:"required"`
	// Title video title
	Title string `json:"title" gorm:"column:title;not null" validate:"required"`
	// Description an optional description of the video
	Description *string `json:"description,omitempty" gorm:"column:description;default:null"`
	// LiveState live broadcast state. NULL when the video is not live.
	LiveState *LiveState `json:"live_state,omitempty" gorm:"column:live_state;default:null" validate:"omitempty,oneof=idle starting running stopping stopped paused harvesting"`
	// LiveType kind of live session. Set at initiation, cleared on full teardown.
	LiveType *LiveType `json:"live_type,omitempty" gorm:"column:live_type;default:null" validate:"omitempty,oneof=raw jitsi"`
	// LiveInfo provisioning metadata, serialized as JSON
	LiveInfo *LiveInfo `json:"live_info,omitempty" gorm:"column:live_info;type:text;serializer:json"`
	// UploadState state of the attached VOD asset
	UploadState UploadState `json:"upload_state" gorm:"column:upload_state;not null" validate:"required,oneof=pending harvesting deleted"`
	// UploadedOn when a VOD asset was attached to this video
	UploadedOn *time.Time `json:"uploaded_on,omitempty" gorm:"column:uploaded_on;default:null"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// IsLive whether the video currently has a live session attached
func (v Video) IsLive() bool {
	return v.LiveState != nil
}

// LivePairing short-lived secret allowing an external device to join a
// video's live session without full authentication
type LivePairing struct {
	// ID pairing entry ID
	ID string `json:"id" gorm:"column:id;primaryKey" validate:"required"`
	// VideoID the live video this pairing belongs to
	VideoID string `json:"video" gorm:"column:video;not null;uniqueIndex:live_pairing_video_index" validate:"required"`
	// Secret the pairing secret
	Secret string `json:"secret" gorm:"column:secret;not null;uniqueIndex:live_pairing_secret_index" validate:"required"`
	// ExpiresAt when the secret stops being accepted
	ExpiresAt time.Time `json:"expires_at" gorm:"column:expires_at;not null" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Expired whether the pairing secret is expired at the given time
func (p LivePairing) Expired(currentTime time.Time) bool {
	return p.ExpiresAt.Before(currentTime)
}

// LiveStateSummary condensed live session status for read endpoints
type LiveStateSummary struct {
	// VideoID video entry ID
	VideoID string `json:"video_id" validate:"required"`
	// LiveState live broadcast state, if any
	LiveState *LiveState `json:"live_state,omitempty"`
	// LiveType kind of live session, if any
	LiveType *LiveType `json:"live_type,omitempty"`
	// UploadState state of the attached VOD asset
	UploadState UploadState `json:"upload_state"`
	// StartedAt when the provider first reported the stream running
	StartedAt *time.Time `json:"started_at,omitempty"`
	// PausedAt when the stream was last reported or requested stopped
	PausedAt *time.Time `json:"paused_at,omitempty"`
}

// NewLiveStateSummary build the live status summary for a video
func NewLiveStateSummary(video Video) LiveStateSummary {
	summary := LiveStateSummary{
		VideoID:     video.ID,
		LiveState:   video.LiveState,
		LiveType:    video.LiveType,
		UploadState: video.UploadState,
	}
	if video.LiveInfo != nil {
		summary.StartedAt = video.LiveInfo.StartedAt
		summary.PausedAt = video.LiveInfo.PausedAt
	}
	return summary
}
