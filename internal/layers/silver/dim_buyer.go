package silver

import (
	"context"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/layers/bronze"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/dataframe"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/etl"
)

// DimBuyer conforms buyers enriched with their account identity.
func DimBuyer(rt *etl.Runtime, opts ...etl.Option) *etl.Table {
	return etl.New(rt, etl.Spec{
		Name:        TableDimBuyer,
		Layer:       Layer,
		PrimaryKeys: []string{"buyer_id"},
		Columns:     []string{"buyer_id", "user_id", "username", "email", "first_time_purchased_timestamp", etl.StampColumn},
		Upstreams:   []etl.Factory{bronze.Buyer, bronze.Appuser},
		Transform:   transformDimBuyer,
	}, opts...)
}

func transformDimBuyer(ctx context.Context, in []etl.DataSet, ingested string) (*dataframe.DataFrame, error) {
	buyers, err := in[0].Data.Select(ctx, "buyer_id", "user_id", "first_time_purchased_timestamp")
	if err != nil {
		return nil, err
	}
	accounts, err := in[1].Data.Select(ctx, "user_id", "username", "email")
	if err != nil {
		return nil, err
	}
	enriched, err := buyers.Join(ctx, accounts, []string{"user_id"}, dataframe.Left)
	if err != nil {
		return nil, err
	}
	return enriched.WithColumn(ctx, etl.StampColumn, dataframe.Lit(ingested))
}
