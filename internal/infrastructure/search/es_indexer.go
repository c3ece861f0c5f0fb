// Package search mirrors profiles into Elasticsearch.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-profile-manager/internal/domain/entity"
	"github.com/oksasatya/go-profile-manager/pkg/helpers"
)

const requestTimeout = 3 * time.Second

// Indexer implements application.ProfileIndexer on one index.
type Indexer struct {
	es    *elasticsearch.Client
	index string
}

func NewIndexer(es *elasticsearch.Client, index string) *Indexer {
	return &Indexer{es: es, index: index}
}

// emails are matched both as keywords and as analysed text
var profileMapping = []byte(`{
  "mappings": {
    "properties": {
      "id":         {"type": "keyword"},
      "name":       {"type": "text"},
      "email":      {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "role":       {"type": "text"},
      "avatar":     {"type": "keyword", "index": false},
      "created_at": {"type": "date"}
    }
  }
}`)

// EnsureIndex creates the profiles index with its mapping if missing.
func (i *Indexer) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	return helpers.EnsureIndex(c, i.es, i.index, profileMapping)
}

type profileDoc struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Avatar    string `json:"avatar"`
	CreatedAt string `json:"created_at,omitempty"`
}

func toDoc(p entity.Profile) profileDoc {
	d := profileDoc{ID: p.ID, Name: p.Name, Email: p.Email, Role: p.Role, Avatar: p.Avatar}
	if !p.CreatedAt.IsZero() {
		d.CreatedAt = p.CreatedAt.Format(time.RFC3339Nano)
	}
	return d
}

func (d profileDoc) profile() entity.Profile {
	p := entity.Profile{ID: d.ID, Name: d.Name, Email: d.Email, Role: d.Role, Avatar: d.Avatar}
	if t, err := time.Parse(time.RFC3339Nano, d.CreatedAt); err == nil {
		p.CreatedAt = t
	}
	return p
}

func (i *Indexer) Index(ctx context.Context, p entity.Profile) error {
	b, err := json.Marshal(toDoc(p))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: i.index, DocumentID: p.ID, Body: bytes.NewReader(b), Refresh: "false"}
	return i.do(ctx, req)
}

func (i *Indexer) Delete(ctx context.Context, id string) error {
	return i.do(ctx, esapi.DeleteRequest{Index: i.index, DocumentID: id})
}

func (i *Indexer) DeleteAll(ctx context.Context) error {
	body := []byte(`{"query":{"match_all":{}}}`)
	return i.do(ctx, esapi.DeleteByQueryRequest{Index: []string{i.index}, Body: bytes.NewReader(body)})
}

// Search performs a multi_match over name, email and role.
func (i *Indexer) Search(ctx context.Context, q string, size int) ([]entity.Profile, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name", "role"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := i.es.Search(i.es.Search.WithContext(c), i.es.Search.WithIndex(i.index), i.es.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source profileDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]entity.Profile, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source.profile())
	}
	return out, nil
}

type esRequest interface {
	Do(ctx context.Context, transport esapi.Transport) (*esapi.Response, error)
}

func (i *Indexer) do(ctx context.Context, req esRequest) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, i.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es %s: %s", i.index, res.Status())
	}
	return nil
}
