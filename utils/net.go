package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/openfun/marsha-live/common"
)

/*
DefineHTTPClient define a resty HTTP client based on the provided config

	@param config common.HTTPClientConfig - HTTP client config
	@returns new resty client
*/
func DefineHTTPClient(config common.HTTPClientConfig) (*resty.Client, error) {
	client := resty.New()
	client = client.
		SetRetryCount(config.Retry.MaxAttempts).
		SetRetryWaitTime(time.Second * time.Duration(config.Retry.InitWaitTimeInSec)).
		SetRetryMaxWaitTime(time.Second * time.Duration(config.Retry.MaxWaitTimeInSec))
	return client, nil
}
