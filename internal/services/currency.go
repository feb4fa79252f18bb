package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bundleworks/commerce-backend/internal/logger"
	"github.com/bundleworks/commerce-backend/internal/repos"
)

// CurrencyProvider yields the currency pricing happens in when an entity has
// no static price of its own.
type CurrencyProvider interface {
	DefaultCurrency(ctx context.Context) (string, error)
}

// StoreCurrencyProvider reads the default currency off the current store.
type StoreCurrencyProvider struct {
	log       *logger.Logger
	storeRepo repos.StoreRepo
	storeID   uuid.UUID
}

func NewStoreCurrencyProvider(baseLog *logger.Logger, storeRepo repos.StoreRepo, storeID uuid.UUID) *StoreCurrencyProvider {
	return &StoreCurrencyProvider{
		log:       baseLog.With("service", "StoreCurrencyProvider"),
		storeRepo: storeRepo,
		storeID:   storeID,
	}
}

func (p *StoreCurrencyProvider) DefaultCurrency(ctx context.Context) (string, error) {
	stores, err := p.storeRepo.GetByIDs(ctx, nil, []uuid.UUID{p.storeID})
	if err != nil {
		return "", fmt.Errorf("error fetching store %s: %w", p.storeID, err)
	}
	if len(stores) == 0 {
		return "", fmt.Errorf("store %s not found", p.storeID)
	}
	return stores[0].DefaultCurrencyCode, nil
}
