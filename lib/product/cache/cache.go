package productcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	dbmodels "fin-tools-backend/models/db"
)

// Provider is a read-through cache over the product store. The product
// drift check runs on every step load, so product reads are by far the
// hottest path of the issuer portal.
type Provider interface {
	Get(ctx context.Context, id string) (*dbmodels.Product, bool)
	Put(ctx context.Context, rec dbmodels.Product)
	Invalidate(ctx context.Context, id string)
}

func NewInstance(client *redis.Client, ttl time.Duration) Provider {
	return &impl{
		client: client,
		ttl:    ttl,
	}
}

type impl struct {
	client *redis.Client
	ttl    time.Duration
}

func cacheKey(id string) string {
	return "product:" + id
}

func (i impl) Get(ctx context.Context, id string) (*dbmodels.Product, bool) {
	raw, err := i.client.Get(ctx, cacheKey(id)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.WithError(err).Warn("product cache read failed")
		}
		return nil, false
	}
	rec := dbmodels.Product{}
	if err = json.Unmarshal([]byte(raw), &rec); err != nil {
		log.WithError(err).Warn("product cache entry is not readable")
		return nil, false
	}
	return &rec, true
}

func (i impl) Put(ctx context.Context, rec dbmodels.Product) {
	raw, err := json.Marshal(rec)
	if err != nil {
		log.WithError(err).Warn("product cache write failed")
		return
	}
	if err = i.client.Set(ctx, cacheKey(rec.ID), string(raw), i.ttl).Err(); err != nil {
		log.WithError(err).Warn("product cache write failed")
	}
}

func (i impl) Invalidate(ctx context.Context, id string) {
	if err := i.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		log.WithError(err).Warn("product cache invalidation failed")
	}
}
