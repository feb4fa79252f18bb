package services

import (
	"context"

	"github.com/bundleworks/commerce-backend/internal/logger"
	"github.com/bundleworks/commerce-backend/internal/types"
)

// PriceContext carries the request-scoped pricing inputs: the currency the
// current store prices in. Resolvers price a single unit; quantity scaling
// happens in the caller.
type PriceContext struct {
	CurrencyCode string
}

// PriceResolver is one strategy in a resolver chain. A (nil, nil) return
// means "no opinion": the entity is outside this resolver's domain and the
// chain moves on to the next one.
type PriceResolver interface {
	Resolve(ctx context.Context, entity types.Purchasable, pctx PriceContext) (*types.Price, error)
}

// ChainPriceResolver consults its resolvers in priority order and returns the
// first resolved price. All resolvers declining yields (nil, nil).
type ChainPriceResolver struct {
	log       *logger.Logger
	resolvers []PriceResolver
}

func NewChainPriceResolver(baseLog *logger.Logger, resolvers ...PriceResolver) *ChainPriceResolver {
	return &ChainPriceResolver{
		log:       baseLog.With("service", "ChainPriceResolver"),
		resolvers: resolvers,
	}
}

func (c *ChainPriceResolver) Resolve(ctx context.Context, entity types.Purchasable, pctx PriceContext) (*types.Price, error) {
	for _, resolver := range c.resolvers {
		price, err := resolver.Resolve(ctx, entity, pctx)
		if err != nil {
			return nil, err
		}
		if price != nil {
			return price, nil
		}
	}
	return nil, nil
}

// BundlePriceResolver prices product bundles. A static bundle price always
// wins; otherwise the price is the sum of the items' effective unit prices,
// accumulated from zero in the context currency. An item without a resolvable
// unit price fails the whole resolution.
type BundlePriceResolver struct {
	log *logger.Logger
}

func NewBundlePriceResolver(baseLog *logger.Logger) *BundlePriceResolver {
	return &BundlePriceResolver{log: baseLog.With("service", "BundlePriceResolver")}
}

func (r *BundlePriceResolver) Resolve(ctx context.Context, entity types.Purchasable, pctx PriceContext) (*types.Price, error) {
	bundle, ok := entity.(*types.ProductBundle)
	if !ok {
		return nil, nil
	}
	if price := bundle.PurchasablePrice(); price != nil {
		return price, nil
	}
	total := types.ZeroPrice(pctx.CurrencyCode)
	for _, item := range bundle.Items {
		unit := item.EffectiveUnitPrice()
		if unit == nil {
			return nil, &types.MissingPriceError{BundleID: bundle.ID, ItemID: item.ID}
		}
		sum, err := total.Add(*unit)
		if err != nil {
			return nil, err
		}
		total = sum
	}
	return &total, nil
}

// VariationPriceResolver prices plain product variations and declines
// everything else, including variations without a price of their own.
type VariationPriceResolver struct {
	log *logger.Logger
}

func NewVariationPriceResolver(baseLog *logger.Logger) *VariationPriceResolver {
	return &VariationPriceResolver{log: baseLog.With("service", "VariationPriceResolver")}
}

func (r *VariationPriceResolver) Resolve(ctx context.Context, entity types.Purchasable, pctx PriceContext) (*types.Price, error) {
	variation, ok := entity.(*types.ProductVariation)
	if !ok {
		return nil, nil
	}
	return variation.PurchasablePrice(), nil
}
