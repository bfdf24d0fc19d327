package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/remiges-tech/fuzzysearch/sources"
)

const (
	// indexMappingTemplate stores records without analysing their fields;
	// scoring happens in process, Elasticsearch only keeps and returns them.
	indexMappingTemplate = `{
		"settings": {
			"number_of_shards": %d,
			"number_of_replicas": %d
		},
		"mappings": {
			"properties": {
				"id": {"type": "keyword"},
				"key": {"type": "keyword"},
				"seq": {"type": "long"},
				"fields": {"type": "object", "enabled": false}
			}
		}
	}`

	httpOK       = 200
	httpNotFound = 404
)

// Source implements the record Source interface using Elasticsearch.
type Source struct {
	client        *elasticsearch.Client
	index         string
	refreshPolicy string
	pageSize      int
}

// document represents the structure stored in Elasticsearch.
type document struct {
	ID     string            `json:"id"`
	Key    string            `json:"key"`
	Seq    int64             `json:"seq"`
	Fields map[string]string `json:"fields"`
}

// searchResponse represents the Elasticsearch search response.
type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source document      `json:"_source"`
			Sort   []interface{} `json:"sort"`
		} `json:"hits"`
	} `json:"hits"`
}

// searchPage is one page of a namespace read.
type searchPage struct {
	docs []sources.Document
	// after holds the sort values of the last hit, used as search_after.
	after []interface{}
}

// getResponse represents the Elasticsearch get-document response.
type getResponse struct {
	Found  bool     `json:"found"`
	Source document `json:"_source"`
}

// New creates a new Elasticsearch source with the given configuration.
func New(config *Config) (*Source, error) {
	config.setDefaults()

	esConfig := elasticsearch.Config{
		Addresses: config.URLs,
		Username:  config.Username,
		Password:  config.Password,
		CloudID:   config.CloudID,
		APIKey:    config.APIKey,
	}

	client, err := elasticsearch.NewClient(esConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	// Test connection
	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Elasticsearch: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return nil, fmt.Errorf("Elasticsearch connection error: %s", res.String())
	}

	source := &Source{
		client:        client,
		index:         config.Index,
		refreshPolicy: config.RefreshPolicy,
		pageSize:      config.PageSize,
	}

	if err := source.createIndexIfNotExists(config); err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return source, nil
}

// createIndexIfNotExists creates the index with the record mapping if it doesn't exist.
func (s *Source) createIndexIfNotExists(config *Config) error {
	exists, err := s.indexExists()
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	mapping := fmt.Sprintf(indexMappingTemplate, config.NumberOfShards, config.NumberOfReplicas)

	req := esapi.IndicesCreateRequest{
		Index: s.index,
		Body:  strings.NewReader(mapping),
	}

	res, err := req.Do(context.Background(), s.client)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("failed to create index: %s", res.String())
	}

	return nil
}

// indexExists checks if the index exists.
func (s *Source) indexExists() (bool, error) {
	req := esapi.IndicesExistsRequest{
		Index: []string{s.index},
	}

	res, err := req.Do(context.Background(), s.client)
	if err != nil {
		return false, err
	}
	defer func() { _ = res.Body.Close() }()

	return res.StatusCode == httpOK, nil
}

// Put adds or updates a document. An existing document keeps its sequence number.
func (s *Source) Put(ctx context.Context, key string, doc sources.Document) error {
	seq, found, err := s.existingSeq(ctx, key, doc.ID)
	if err != nil {
		return err
	}
	if !found {
		seq = time.Now().UnixNano()
	}

	docJSON, err := json.Marshal(document{
		ID:     doc.ID,
		Key:    key,
		Seq:    seq,
		Fields: doc.Fields,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      s.index,
		DocumentID: generateDocumentID(key, doc.ID),
		Body:       bytes.NewReader(docJSON),
		Refresh:    s.refreshPolicy,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("failed to index document: %s", res.String())
	}

	return nil
}

// existingSeq returns the sequence number of a stored document.
func (s *Source) existingSeq(ctx context.Context, key, id string) (int64, bool, error) {
	req := esapi.GetRequest{
		Index:      s.index,
		DocumentID: generateDocumentID(key, id),
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return 0, false, fmt.Errorf("failed to get document: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode == httpNotFound {
		return 0, false, nil
	}
	if res.IsError() {
		return 0, false, fmt.Errorf("failed to get document: %s", res.String())
	}

	var got getResponse
	if err := json.NewDecoder(res.Body).Decode(&got); err != nil {
		return 0, false, fmt.Errorf("failed to decode document: %w", err)
	}
	return got.Source.Seq, got.Found, nil
}

// Load returns all documents of a namespace sorted by insertion sequence.
// The namespace is read in pages of PageSize using search_after.
func (s *Source) Load(ctx context.Context, key string) ([]sources.Document, error) {
	return collectPages(s.pageSize, func(after []interface{}) (searchPage, error) {
		return s.loadPage(ctx, key, after)
	})
}

// collectPages calls fetch until a page comes back short.
func collectPages(pageSize int, fetch func(after []interface{}) (searchPage, error)) ([]sources.Document, error) {
	docs := []sources.Document{}
	var after []interface{}
	for {
		page, err := fetch(after)
		if err != nil {
			return nil, err
		}
		docs = append(docs, page.docs...)
		if len(page.docs) < pageSize || len(page.after) == 0 {
			return docs, nil
		}
		after = page.after
	}
}

func (s *Source) loadPage(ctx context.Context, key string, after []interface{}) (searchPage, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(buildLoadQuery(key, after)); err != nil {
		return searchPage{}, fmt.Errorf("failed to encode query: %w", err)
	}

	size := s.pageSize
	req := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  &buf,
		Size:  &size,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return searchPage{}, fmt.Errorf("failed to execute search: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return searchPage{}, fmt.Errorf("search failed: %s", res.String())
	}

	return parseSearchResponse(res.Body)
}

// buildLoadQuery selects a namespace ordered by sequence, starting after the
// given sort values when paging.
func buildLoadQuery(key string, after []interface{}) map[string]interface{} {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{
						"term": map[string]interface{}{
							"key": key,
						},
					},
				},
			},
		},
		"sort": []interface{}{
			map[string]interface{}{"seq": "asc"},
			map[string]interface{}{"id": "asc"},
		},
	}
	if len(after) > 0 {
		query["search_after"] = after
	}
	return query
}

// parseSearchResponse converts search hits to documents, preserving hit order.
func parseSearchResponse(body io.Reader) (searchPage, error) {
	var response searchResponse
	d := json.NewDecoder(body)
	// seq values are nanosecond timestamps; keep them exact for search_after.
	d.UseNumber()
	if err := d.Decode(&response); err != nil {
		return searchPage{}, fmt.Errorf("failed to decode response: %w", err)
	}

	page := searchPage{docs: make([]sources.Document, 0, len(response.Hits.Hits))}
	for _, hit := range response.Hits.Hits {
		page.docs = append(page.docs, sources.Document{
			ID:     hit.Source.ID,
			Fields: hit.Source.Fields,
		})
		page.after = hit.Sort
	}

	return page, nil
}

// Delete removes a document.
func (s *Source) Delete(ctx context.Context, key, id string) error {
	req := esapi.DeleteRequest{
		Index:      s.index,
		DocumentID: generateDocumentID(key, id),
		Refresh:    s.refreshPolicy,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	// 404 is not an error for delete (idempotent)
	if res.IsError() && res.StatusCode != httpNotFound {
		return fmt.Errorf("failed to delete document: %s", res.String())
	}

	return nil
}

// DeleteAll removes all documents for a given namespace.
func (s *Source) DeleteAll(ctx context.Context, key string) error {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"term": map[string]interface{}{
				"key": key,
			},
		},
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return fmt.Errorf("failed to encode query: %w", err)
	}

	refresh := s.refreshPolicy != "false"
	req := esapi.DeleteByQueryRequest{
		Index:   []string{s.index},
		Body:    &buf,
		Refresh: &refresh,
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return fmt.Errorf("failed to delete by query: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.IsError() {
		return fmt.Errorf("failed to delete by query: %s", res.String())
	}

	return nil
}

// Close closes the source.
func (s *Source) Close() error {
	// The Elasticsearch Go client has no Close method; its HTTP connections
	// are managed by net/http.
	return nil
}

// generateDocumentID creates a unique document ID from namespace and id.
func generateDocumentID(key, id string) string {
	return fmt.Sprintf("%s:%s", key, id)
}
