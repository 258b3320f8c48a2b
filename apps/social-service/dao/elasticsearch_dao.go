package dao

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	"social-server/apps/social-service/model"
	"social-server/pkg/database"
	"social-server/pkg/logger"
)

// elasticsearchDAO 用户检索数据访问对象
type elasticsearchDAO struct {
	es     *database.ElasticSearch
	index  string
	logger logger.Logger
}

// NewElasticsearchDAO 创建检索DAO实例
func NewElasticsearchDAO(es *database.ElasticSearch, index string, log logger.Logger) SearchDAO {
	return &elasticsearchDAO{
		es:     es,
		index:  index,
		logger: log,
	}
}

// userDocument 索引文档
type userDocument struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// IndexUser 写入或覆盖用户文档
func (d *elasticsearchDAO) IndexUser(ctx context.Context, user *model.User) error {
	doc := userDocument{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}

	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal user document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      d.index,
		DocumentID: strconv.FormatInt(user.ID, 10),
		Body:       bytes.NewReader(docJSON),
		Refresh:    "false",
	}

	res, err := req.Do(ctx, d.es.GetClient())
	if err != nil {
		return fmt.Errorf("failed to index user: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("failed to index user: %s", res.String())
	}

	d.logger.Debug(ctx, "User indexed",
		logger.F("index", d.index),
		logger.F("user_id", user.ID))
	return nil
}

// SearchUserIDs 按关键字检索用户ID
func (d *elasticsearchDAO) SearchUserIDs(ctx context.Context, keyword string, excludeID int64) ([]int64, error) {
	query := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":  keyword,
						"fields": []string{"username^2", "first_name", "last_name"},
						"type":   "best_fields",
					},
				},
				"must_not": map[string]interface{}{
					"term": map[string]interface{}{"id": excludeID},
				},
			},
		},
		"size": 100,
	}

	queryJSON, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	res, err := d.es.GetClient().Search(
		d.es.GetClient().Search.WithContext(ctx),
		d.es.GetClient().Search.WithIndex(d.index),
		d.es.GetClient().Search.WithBody(bytes.NewReader(queryJSON)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("failed to search users: %s", res.String())
	}

	var result struct {
		Hits struct {
			Hits []struct {
				Source userDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	ids := make([]int64, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		ids = append(ids, hit.Source.ID)
	}
	return ids, nil
}
