package utils

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/alwitt/goutils"
	"github.com/apex/log"
	"github.com/fsnotify/fsnotify"
)

// WebhookSecretStore holds the shared secrets accepted on inbound webhook
// requests, reloading them when the backing file changes
type WebhookSecretStore interface {
	/*
		VerifySignature check an HMAC-SHA256 signature of a request body against
		the active secret set

			@param signature string - hex encoded signature from the request header
			@param body []byte - raw request body
			@returns whether any active secret produced the signature
	*/
	VerifySignature(signature string, body []byte) bool
}

// webhookSecretFile layout of the JSON secrets file
type webhookSecretFile struct {
	// Secrets the active set of shared secrets. Multiple entries allow
	// overlapping old and new secrets during a rotation.
	Secrets []string `json:"secrets" validate:"required,gte=1"`
}

// fileWebhookSecretStoreImpl implements WebhookSecretStore
type fileWebhookSecretStoreImpl struct {
	goutils.Component
	filePath string
	secrets  [][]byte
	lock     sync.RWMutex
	watcher  *fsnotify.Watcher
}

/*
NewFileWebhookSecretStore define a webhook secret store backed by a JSON file.
The file's parent directory is watched so secret rotations take effect without
a restart.

	@param parentContext context.Context - parent context of the file watch process
	@param filePath string - path of the JSON secrets file
	@returns new WebhookSecretStore
*/
func NewFileWebhookSecretStore(
	parentContext context.Context, filePath string,
) (WebhookSecretStore, error) {
	logTags := log.Fields{
		"module":    "utils",
		"component": "webhook-secret-store",
		"instance":  filePath,
	}

	instance := &fileWebhookSecretStoreImpl{
		Component: goutils.Component{
			LogTags: logTags,
			LogTagModifiers: []goutils.LogMetadataModifier{
				goutils.ModifyLogMetadataByRestRequestParam,
			},
		},
		filePath: filePath,
		lock:     sync.RWMutex{},
	}

	if err := instance.reload(); err != nil {
		log.WithError(err).WithFields(logTags).Error("Unable to load webhook secrets")
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.WithError(err).WithFields(logTags).Error("Unable to define file watcher")
		return nil, err
	}
	// Watch the directory instead of the file. Rotation tooling typically
	// replaces the file by rename, which retires the old inode.
	if err := watcher.Add(filepath.Dir(filePath)); err != nil {
		log.WithError(err).WithFields(logTags).Error("Unable to watch secrets directory")
		return nil, err
	}
	instance.watcher = watcher

	go instance.watchForChanges(parentContext)

	return instance, nil
}

func (s *fileWebhookSecretStoreImpl) VerifySignature(signature string, body []byte) bool {
	provided, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	s.lock.RLock()
	defer s.lock.RUnlock()
	for _, secret := range s.secrets {
		mac := hmac.New(sha256.New, secret)
		mac.Write(body)
		if hmac.Equal(provided, mac.Sum(nil)) {
			return true
		}
	}
	return false
}

// reload re-read the secrets file and swap in the new secret set
func (s *fileWebhookSecretStoreImpl) reload() error {
	content, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	var parsed webhookSecretFile
	if err := json.Unmarshal(content, &parsed); err != nil {
		return err
	}
	if len(parsed.Secrets) == 0 {
		return fmt.Errorf("secrets file '%s' holds no secrets", s.filePath)
	}

	newSecrets := make([][]byte, 0, len(parsed.Secrets))
	for _, secret := range parsed.Secrets {
		newSecrets = append(newSecrets, []byte(secret))
	}

	s.lock.Lock()
	defer s.lock.Unlock()
	s.secrets = newSecrets
	return nil
}

// watchForChanges reload the secret set whenever the backing file changes
func (s *fileWebhookSecretStoreImpl) watchForChanges(ctxt context.Context) {
	logTags := s.GetLogTagsForContext(ctxt)
	defer func() {
		if err := s.watcher.Close(); err != nil {
			log.WithError(err).WithFields(logTags).Error("File watcher close failed")
		}
	}()

	for {
		select {
		case <-ctxt.Done():
			return

		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Name != s.filePath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := s.reload(); err != nil {
				// Keep the previous secret set on a bad reload
				log.WithError(err).WithFields(logTags).Error("Webhook secret reload failed")
				continue
			}
			log.WithFields(logTags).Info("Reloaded webhook secrets")

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).WithFields(logTags).Error("File watcher reported error")
		}
	}
}
