package producthandler

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"fin-tools-backend/config"
	"fin-tools-backend/db"
	productcache "fin-tools-backend/lib/product/cache"
	productstore "fin-tools-backend/lib/product/store"
	"fin-tools-backend/models"
	productapimodels "fin-tools-backend/models/api/product"
	dbmodels "fin-tools-backend/models/db"
)

type Provider interface {
	Create(data productapimodels.ProductData) (id string, err error)
	Update(ctx context.Context, id string, data productapimodels.ProductData) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (item productapimodels.ProductView, err error)
	List(page, limit int, activeOnly bool) (list []productapimodels.ProductView, rowCount int64, err error)
	// CheckDrift compares an application's product snapshot against the live
	// catalog. It is read-only and idempotent; a non-empty block reason
	// freezes all mutation of the application.
	CheckDrift(ctx context.Context, productID string, snapshotVersion int) (models.BlockReason, error)
	GetRecord(ctx context.Context, id string) (*dbmodels.Product, error)
}

var Instance Provider

func NewHandler(redisClient *redis.Client) {
	Instance = impl{
		store: productstore.NewInstance(db.DB),
		cache: productcache.NewInstance(redisClient, time.Duration(config.Conf.Redis.CacheTTLSec)*time.Second),
	}
}

func NewHandlerWithTx(tx *gorm.DB, cache productcache.Provider) Provider {
	return impl{
		store: productstore.NewInstance(tx),
		cache: cache,
	}
}

type impl struct {
	store productstore.Provider
	cache productcache.Provider
}

func (i impl) Create(data productapimodels.ProductData) (id string, err error) {
	rec := dbmodels.Product{
		Name:        data.Name,
		Description: data.Description,
		Version:     1,
		Active:      true,
		Steps:       data.Steps,
	}
	if data.Active != nil {
		rec.Active = *data.Active
	}
	return i.store.Create(rec)
}

func (i impl) Update(ctx context.Context, id string, data productapimodels.ProductData) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("product not found")
	}
	updMap := map[string]interface{}{
		"name":        data.Name,
		"description": data.Description,
		"steps":       data.Steps,
		// any edit bumps the version; in-flight applications created against
		// the previous version freeze until restarted
		"version": rec.Version + 1,
	}
	if data.Active != nil {
		updMap["active"] = *data.Active
	}
	err = i.store.Update(id, updMap)
	if err != nil {
		return err
	}
	i.cache.Invalidate(ctx, id)
	return nil
}

func (i impl) Delete(ctx context.Context, id string) error {
	err := i.store.Delete(id)
	if err != nil {
		return err
	}
	i.cache.Invalidate(ctx, id)
	return nil
}

func (i impl) GetByID(ctx context.Context, id string) (item productapimodels.ProductView, err error) {
	rec, err := i.GetRecord(ctx, id)
	if err != nil {
		return productapimodels.ProductView{}, err
	}
	if rec == nil {
		return productapimodels.ProductView{}, errors.New("product not found")
	}
	return productapimodels.ToProductView(*rec), nil
}

func (i impl) GetRecord(ctx context.Context, id string) (*dbmodels.Product, error) {
	if rec, hit := i.cache.Get(ctx, id); hit {
		return rec, nil
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec != nil {
		i.cache.Put(ctx, *rec)
	}
	return rec, nil
}

func (i impl) List(page, limit int, activeOnly bool) (list []productapimodels.ProductView, rowCount int64, err error) {
	rowCount, err = i.store.ListCount(activeOnly)
	if err != nil {
		return nil, 0, err
	}
	recs, err := i.store.List(page, limit, activeOnly)
	if err != nil {
		return nil, 0, err
	}
	list = make([]productapimodels.ProductView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, productapimodels.ToProductView(rec))
	}
	return list, rowCount, nil
}

func (i impl) CheckDrift(ctx context.Context, productID string, snapshotVersion int) (models.BlockReason, error) {
	rec, err := i.GetRecord(ctx, productID)
	if err != nil {
		return models.BlockReasonNone, err
	}
	if rec == nil {
		return models.BlockProductDeleted, nil
	}
	if rec.Version != snapshotVersion {
		return models.BlockProductVersionChange, nil
	}
	return models.BlockReasonNone, nil
}
