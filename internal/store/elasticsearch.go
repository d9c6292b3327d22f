// internal/store/elasticsearch.go
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"revintel-workers/internal/common/errors"
	"revintel-workers/internal/common/logger"
	"revintel-workers/internal/generation"
)

// ResourceDocument is the index shape for one generated resource. Content
// goes in for full-text search; the rest supports the library's filters.
type ResourceDocument struct {
	RequestID   string    `json:"requestId"`
	CustomerID  string    `json:"customerId"`
	ResourceID  string    `json:"resourceId"`
	Method      string    `json:"method"`
	Quality     int       `json:"quality"`
	Confidence  float64   `json:"confidence"`
	Content     string    `json:"content"`
	Sources     []string  `json:"sources"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// ResourceIndexer writes completed resources into the search index backing
// the resource library. Indexing is caller-side best effort: the worker
// logs and continues when it fails.
type ResourceIndexer struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewResourceIndexer(client *elasticsearch.Client, index string, log logger.Logger) *ResourceIndexer {
	if index == "" {
		index = "resources"
	}
	return &ResourceIndexer{
		client: client,
		index:  index,
		logger: log.With(map[string]interface{}{"component": "resource_indexer"}),
	}
}

func (i *ResourceIndexer) Index(ctx context.Context, out *generation.Outcome, customerID string, resourceID generation.ResourceID) error {
	doc := ResourceDocument{
		RequestID:   out.RequestID,
		CustomerID:  customerID,
		ResourceID:  string(resourceID),
		Method:      string(out.Result.GenerationMethod),
		Quality:     out.Result.Quality,
		Confidence:  out.Result.Confidence,
		Content:     out.Result.Content,
		Sources:     out.Result.Sources,
		GeneratedAt: time.Now().UTC(),
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return errors.NewIndexWriteFailedError(err)
	}

	req := esapi.IndexRequest{
		Index:      i.index,
		DocumentID: out.RequestID,
		Body:       bytes.NewReader(body),
		Refresh:    "false",
	}
	res, err := req.Do(ctx, i.client)
	if err != nil {
		return errors.NewIndexWriteFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return errors.NewIndexWriteFailedError(fmt.Errorf("index response: %s", res.Status()))
	}

	i.logger.Debug("Resource indexed", map[string]interface{}{
		"requestId":  out.RequestID,
		"resourceId": resourceID,
		"index":      i.index,
	})
	return nil
}
