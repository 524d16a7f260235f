package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/fitness-auth-api/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// userDoc is the indexed projection of a user. Credentials and tokens are never indexed.
type userDoc struct {
	ID                 string `json:"id"`
	Email              string `json:"email"`
	UserName           string `json:"userName"`
	FitnessGoal        string `json:"fitnessGoal"`
	FitnessLevel       string `json:"fitnessLevel"`
	SubscriptionStatus string `json:"subscriptionStatus"`
}

func docFrom(u *entity.User) userDoc {
	return userDoc{
		ID:                 u.ID,
		Email:              u.Email,
		UserName:           u.UserName,
		FitnessGoal:        u.FitnessGoal,
		FitnessLevel:       u.FitnessLevel,
		SubscriptionStatus: u.SubscriptionStatus,
	}
}

// UserIndex mirrors user profiles into an Elasticsearch index.
type UserIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewUserIndex(es *elasticsearch.Client, index string) *UserIndex {
	return &UserIndex{es: es, index: index}
}

func (x *UserIndex) Index(ctx context.Context, u *entity.User) error {
	b, err := json.Marshal(docFrom(u))
	if err != nil {
		return err
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req := esapi.IndexRequest{Index: x.index, DocumentID: u.ID, Body: bytes.NewReader(b), Refresh: "false"}
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index user %s: %s", u.ID, res.Status())
	}
	return nil
}

func (x *UserIndex) Delete(ctx context.Context, id string) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := esapi.DeleteRequest{Index: x.index, DocumentID: id}.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("delete user %s: %s", id, res.Status())
	}
	return nil
}

func (x *UserIndex) DeleteAll(ctx context.Context) error {
	body := []byte(`{"query":{"match_all":{}}}`)
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.es.DeleteByQuery([]string{x.index}, bytes.NewReader(body), x.es.DeleteByQuery.WithContext(c))
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("clear index: %s", res.Status())
	}
	return nil
}

func (d userDoc) toEntity() *entity.User {
	return &entity.User{
		ID:                 d.ID,
		Email:              d.Email,
		UserName:           d.UserName,
		FitnessGoal:        d.FitnessGoal,
		FitnessLevel:       d.FitnessLevel,
		SubscriptionStatus: d.SubscriptionStatus,
	}
}

// Search runs a multi_match over email, user name and fitness attributes.
// Returned users carry only the indexed fields.
func (x *UserIndex) Search(ctx context.Context, q string, size int) ([]*entity.User, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "userName^2", "fitnessGoal", "fitnessLevel"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.es.Search(x.es.Search.WithContext(c), x.es.Search.WithIndex(x.index), x.es.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		if res.StatusCode == 404 {
			return []*entity.User{}, nil
		}
		return nil, fmt.Errorf("search users: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source userDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]*entity.User, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source.toEntity())
	}
	return out, nil
}
