package search

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"fanclub/internal/common/errors"
	"fanclub/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ElasticSearcher indexes artists as documents keyed by id and searches
// name, genre and bio with name boosted.
type ElasticSearcher struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticSearcher(client *elasticsearch.Client, index string) *ElasticSearcher {
	return &ElasticSearcher{client: client, index: index}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source models.Artist `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (e *ElasticSearcher) Index(ctx context.Context, artists []models.Artist) error {
	for _, a := range artists {
		body, err := json.Marshal(a)
		if err != nil {
			return errors.NewSearchQueryFailedError(err)
		}
		req := esapi.IndexRequest{
			Index:      e.index,
			DocumentID: a.ID,
			Body:       bytes.NewReader(body),
		}
		if err := e.do(ctx, req, nil); err != nil {
			return err
		}
	}

	refresh := esapi.IndicesRefreshRequest{Index: []string{e.index}}
	return e.do(ctx, refresh, nil)
}

func (e *ElasticSearcher) Search(ctx context.Context, query string, limit int) ([]models.Artist, error) {
	limit = clampLimit(limit)
	body, err := json.Marshal(buildQuery(strings.TrimSpace(query), limit))
	if err != nil {
		return nil, errors.NewSearchQueryFailedError(err)
	}

	req := esapi.SearchRequest{
		Index: []string{e.index},
		Body:  bytes.NewReader(body),
	}
	var res searchResponse
	if err := e.do(ctx, req, &res); err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return nil, errors.NewSearchTimeoutError(query)
		}
		return nil, err
	}

	out := make([]models.Artist, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		out = append(out, hit.Source)
	}
	return out, nil
}

func buildQuery(query string, limit int) map[string]interface{} {
	if query == "" {
		return map[string]interface{}{
			"size": limit,
			"query": map[string]interface{}{
				"bool": map[string]interface{}{
					"filter": []interface{}{
						map[string]interface{}{"term": map[string]interface{}{"subscriptionsEnabled": true}},
					},
				},
			},
		}
	}
	return map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^3", "genre", "bio"},
				"fuzziness": "AUTO",
			},
		},
	}
}

func (e *ElasticSearcher) do(ctx context.Context, req esapi.Request, out interface{}) error {
	res, err := req.Do(ctx, e.client)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return errors.NewSearchQueryFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(res.Body)
		return errors.NewSearchQueryFailedError(fmt.Errorf("%s: %s", res.Status(), bytes.TrimSpace(msg)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return errors.NewSearchQueryFailedError(err)
	}
	return nil
}
