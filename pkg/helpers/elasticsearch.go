package helpers

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// NewESClient returns an Elasticsearch client with bounded dial and header timeouts.
func NewESClient(addrs []string, username, password string) (*elasticsearch.Client, error) {
	return elasticsearch.NewClient(elasticsearch.Config{
		Addresses: addrs,
		Username:  username,
		Password:  password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: 5 * time.Second,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		},
	})
}

// EnsureIndex creates index with the given mapping body unless it exists.
func EnsureIndex(ctx context.Context, es *elasticsearch.Client, index string, mapping []byte) error {
	exists, err := esapi.IndicesExistsRequest{Index: []string{index}}.Do(ctx, es)
	if err != nil {
		return fmt.Errorf("check index %s: %w", index, err)
	}
	_ = exists.Body.Close()
	if exists.StatusCode == http.StatusOK {
		return nil
	}

	res, err := esapi.IndicesCreateRequest{Index: index, Body: bytes.NewReader(mapping)}.Do(ctx, es)
	if err != nil {
		return fmt.Errorf("create index %s: %w", index, err)
	}
	defer func() { _ = res.Body.Close() }()
	// 400 resource_already_exists_exception when another process won the race
	if res.IsError() && res.StatusCode != http.StatusBadRequest {
		return fmt.Errorf("create index %s: %s", index, res.Status())
	}
	return nil
}
