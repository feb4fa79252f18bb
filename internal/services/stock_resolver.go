package services

import (
	"fmt"

	"github.com/bundleworks/commerce-backend/internal/logger"
	"github.com/bundleworks/commerce-backend/internal/types"
)

// StockServiceResolver locates the stock service responsible for a
// purchasable entity. Services register per purchasable kind; registration
// order is kept so location-list unions are deterministic.
type StockServiceResolver interface {
	ResolveService(entity types.Purchasable) (StockService, error)
	Services() []StockService
}

// PurchasableStockResolver is the registry-backed StockServiceResolver.
type PurchasableStockResolver struct {
	log     *logger.Logger
	byKind  map[string]StockService
	ordered []StockService
}

func NewStockServiceResolver(baseLog *logger.Logger) *PurchasableStockResolver {
	return &PurchasableStockResolver{
		log:    baseLog.With("service", "StockServiceResolver"),
		byKind: map[string]StockService{},
	}
}

// Register binds a stock service to a purchasable kind. Registering the same
// kind twice replaces the earlier binding; the replaced service stays in the
// order as long as any other kind still routes to it.
func (r *PurchasableStockResolver) Register(kind string, service StockService) {
	previous, replaced := r.byKind[kind]
	r.byKind[kind] = service
	if replaced && !r.stillBound(previous) {
		rebuilt := make([]StockService, 0, len(r.ordered))
		for _, existing := range r.ordered {
			if existing != previous {
				rebuilt = append(rebuilt, existing)
			}
		}
		r.ordered = rebuilt
	}
	r.ordered = append(r.ordered, service)
}

func (r *PurchasableStockResolver) stillBound(service StockService) bool {
	for _, bound := range r.byKind {
		if bound == service {
			return true
		}
	}
	return false
}

func (r *PurchasableStockResolver) ResolveService(entity types.Purchasable) (StockService, error) {
	if entity == nil {
		return nil, fmt.Errorf("no purchasable entity given")
	}
	service, ok := r.byKind[entity.PurchasableType()]
	if !ok {
		return nil, fmt.Errorf("no stock service registered for %s", entity.PurchasableType())
	}
	return service, nil
}

// Services lists the distinct registered services in registration order.
func (r *PurchasableStockResolver) Services() []StockService {
	seen := map[StockService]bool{}
	out := make([]StockService, 0, len(r.ordered))
	for _, service := range r.ordered {
		if seen[service] {
			continue
		}
		seen[service] = true
		out = append(out, service)
	}
	return out
}
