package utils

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/bradfitz/gomemcache/memcache"
	"github.com/openfun/marsha-live/common"
)

// ErrCacheMiss no cached status summary found for a video
var ErrCacheMiss = errors.New("no cached live status")

// LiveStatusCache cache of live status summaries backing the status read endpoint
type LiveStatusCache interface {
	/*
		RecordStatus cache the live status summary of a video

			@param ctxt context.Context - execution context
			@param summary common.LiveStateSummary - summary to cache
			@param ttl time.Duration - data retention before the entry expires
	*/
	RecordStatus(ctxt context.Context, summary common.LiveStateSummary, ttl time.Duration) error

	/*
		GetStatus fetch the cached live status summary of a video. Returns
		ErrCacheMiss when no live entry is cached.

			@param ctxt context.Context - execution context
			@param videoID string - video entry ID
			@returns cached summary
	*/
	GetStatus(ctxt context.Context, videoID string) (common.LiveStateSummary, error)

	/*
		InvalidateStatus drop the cached live status summary of a video

			@param ctxt context.Context - execution context
			@param videoID string - video entry ID
	*/
	InvalidateStatus(ctxt context.Context, videoID string) error
}

// =====================================================================================
// In-Process (Local Ram) Live Status Cache

// inProcessStatusEntry wrapper structure holding a summary with retention support
type inProcessStatusEntry struct {
	expireAt time.Time
	summary  common.LiveStateSummary
}

// inProcessStatusCacheImpl implements LiveStatusCache
type inProcessStatusCacheImpl struct {
	goutils.Component
	cache               map[string]inProcessStatusEntry
	lock                sync.RWMutex
	retentionCheckTimer goutils.IntervalTimer
	wg                  sync.WaitGroup
}

/*
NewLocalLiveStatusCache define new local in process live status cache

	@param parentContext context.Context - parent context from which a worker context is defined
		for the data retention enforcement process
	@param retentionCheckInterval time.Duration - cache entry retention enforce interval
	@returns new LiveStatusCache
*/
func NewLocalLiveStatusCache(
	parentContext context.Context, retentionCheckInterval time.Duration,
) (LiveStatusCache, error) {
	logTags := log.Fields{
		"module":    "utils",
		"component": "live-status-cache",
		"instance":  "in-process",
	}

	instance := &inProcessStatusCacheImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		cache: make(map[string]inProcessStatusEntry),
		lock:  sync.RWMutex{},
		wg:    sync.WaitGroup{},
	}

	timer, err := goutils.GetIntervalTimerInstance(parentContext, &instance.wg, logTags)
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Unable to define support timer")
		return nil, err
	}
	instance.retentionCheckTimer = timer

	// Start interval timer to trigger the cache retention enforcement logic
	if err := timer.Start(retentionCheckInterval, func() error {
		currentTime := time.Now().UTC()
		return instance.purgeExpiredEntry(parentContext, currentTime)
	}, false); err != nil {
		log.WithError(err).WithFields(logTags).Error("Unable to start support timer")
		return nil, err
	}

	return instance, nil
}

func (c *inProcessStatusCacheImpl) RecordStatus(
	ctxt context.Context, summary common.LiveStateSummary, ttl time.Duration,
) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.cache[summary.VideoID] = inProcessStatusEntry{
		expireAt: time.Now().UTC().Add(ttl), summary: summary,
	}
	return nil
}

func (c *inProcessStatusCacheImpl) GetStatus(
	ctxt context.Context, videoID string,
) (common.LiveStateSummary, error) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	entry, ok := c.cache[videoID]
	if !ok || entry.expireAt.Before(time.Now().UTC()) {
		return common.LiveStateSummary{}, ErrCacheMiss
	}
	return entry.summary, nil
}

func (c *inProcessStatusCacheImpl) InvalidateStatus(
	ctxt context.Context, videoID string,
) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	delete(c.cache, videoID)
	return nil
}

// purgeExpiredEntry purge expired cache entries
func (c *inProcessStatusCacheImpl) purgeExpiredEntry(
	ctxt context.Context, currentTime time.Time,
) error {
	logTags := c.GetLogTagsForContext(ctxt)

	c.lock.Lock()
	defer c.lock.Unlock()

	purgeIDs := []string{}
	for videoID, entry := range c.cache {
		if entry.expireAt.Before(currentTime) {
			purgeIDs = append(purgeIDs, videoID)
		}
	}

	for _, purgeID := range purgeIDs {
		delete(c.cache, purgeID)
	}

	if len(purgeIDs) > 0 {
		log.
			WithFields(logTags).
			Infof("Purged [%d] expired status entries. [%d] remain in cache", len(purgeIDs), len(c.cache))
	}

	return nil
}

// =====================================================================================
// Memcached Live Status Cache

// memcachedStatusCacheImpl implements LiveStatusCache
type memcachedStatusCacheImpl struct {
	goutils.Component
	client *memcache.Client
}

/*
NewMemcachedLiveStatusCache define new memcached live status cache

	@param servers []string - list of memcached servers to connect to
	@returns new LiveStatusCache
*/
func NewMemcachedLiveStatusCache(servers []string) (LiveStatusCache, error) {
	logTags := log.Fields{
		"module":    "utils",
		"component": "live-status-cache",
		"instance":  "memcached",
		"servers":   servers,
	}

	// Define memcached client
	mc := memcache.New(servers...)
	if err := mc.Ping(); err != nil {
		log.WithError(err).WithFields(logTags).Error("Server Up check failed")
		return nil, err
	}

	return &memcachedStatusCacheImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		}, client: mc,
	}, nil
}

// statusCacheKey derive the memcached key of a video's status summary
func statusCacheKey(videoID string) string {
	return "live-status/" + videoID
}

func (c *memcachedStatusCacheImpl) RecordStatus(
	ctxt context.Context, summary common.LiveStateSummary, ttl time.Duration,
) error {
	logTags := c.GetLogTagsForContext(ctxt)

	payload, err := json.Marshal(&summary)
	if err != nil {
		log.WithError(err).WithFields(logTags).WithField("video", summary.VideoID).
			Error("Unable to serialize status summary")
		return err
	}

	cacheEntry := &memcache.Item{
		Key: statusCacheKey(summary.VideoID), Value: payload, Expiration: int32(ttl.Seconds()),
	}
	if err := c.client.Set(cacheEntry); err != nil {
		log.WithError(err).WithFields(logTags).WithField("video", summary.VideoID).
			Error("Failed to cache status summary")
		return err
	}
	return nil
}

func (c *memcachedStatusCacheImpl) GetStatus(
	ctxt context.Context, videoID string,
) (common.LiveStateSummary, error) {
	logTags := c.GetLogTagsForContext(ctxt)

	entry, err := c.client.Get(statusCacheKey(videoID))
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			return common.LiveStateSummary{}, ErrCacheMiss
		}
		log.WithError(err).WithFields(logTags).WithField("video", videoID).
			Error("Status summary fetch failed")
		return common.LiveStateSummary{}, err
	}

	var summary common.LiveStateSummary
	if err := json.Unmarshal(entry.Value, &summary); err != nil {
		log.WithError(err).WithFields(logTags).WithField("video", videoID).
			Error("Unable to parse cached status summary")
		return common.LiveStateSummary{}, err
	}
	return summary, nil
}

func (c *memcachedStatusCacheImpl) InvalidateStatus(
	ctxt context.Context, videoID string,
) error {
	if err := c.client.Delete(statusCacheKey(videoID)); err != nil &&
		!errors.Is(err, memcache.ErrCacheMiss) {
		return err
	}
	return nil
}
