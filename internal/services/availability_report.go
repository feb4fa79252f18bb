package services

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/bundleworks/commerce-backend/internal/logger"
	"github.com/bundleworks/commerce-backend/internal/repos"
)

const reportConcurrency = 8

// AvailabilityReportService computes availability for the whole bundle
// catalog. Bundles are processed concurrently with a bounded group; inside
// one bundle the aggregation stays sequential.
type AvailabilityReportService interface {
	Report(ctx context.Context, locationIDs []uuid.UUID) ([]*BundleAvailability, error)
}

type availabilityReportService struct {
	db         *gorm.DB
	log        *logger.Logger
	bundleRepo repos.ProductBundleRepo
	stockProxy *BundleStockProxy
}

func NewAvailabilityReportService(db *gorm.DB, baseLog *logger.Logger, bundleRepo repos.ProductBundleRepo, stockProxy *BundleStockProxy) AvailabilityReportService {
	return &availabilityReportService{
		db:         db,
		log:        baseLog.With("service", "AvailabilityReportService"),
		bundleRepo: bundleRepo,
		stockProxy: stockProxy,
	}
}

func (rs *availabilityReportService) Report(ctx context.Context, locationIDs []uuid.UUID) ([]*BundleAvailability, error) {
	bundles, err := rs.bundleRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	rows := make([]*BundleAvailability, len(bundles))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(reportConcurrency)
	for i, bundle := range bundles {
		group.Go(func() error {
			inStock, err := rs.stockProxy.IsInStock(groupCtx, bundle, locationIDs)
			if err != nil {
				return err
			}
			always, err := rs.stockProxy.IsAlwaysInStock(groupCtx, bundle)
			if err != nil {
				return err
			}
			row := &BundleAvailability{
				BundleID:      bundle.ID,
				InStock:       inStock,
				AlwaysInStock: always,
				StockManaged:  true,
			}
			// Empty bundles have no level; they still appear in the report.
			if len(bundle.Items) > 0 {
				level, err := rs.stockProxy.TotalStockLevel(groupCtx, bundle, locationIDs)
				if err != nil {
					return err
				}
				row.Level = &level
			}
			rows[i] = row
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].BundleID.String() < rows[j].BundleID.String()
	})
	return rows, nil
}
