package silver

import (
	"context"

	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/internal/layers/bronze"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/dataframe"
	"github.com/Anirudh77777/End-to-End-Ecommerce-Data-Workflow/pkg/etl"
)

// DimSeller conforms sellers enriched with their account identity. A seller
// whose account is missing still survives the join with null identity
// columns; validation only guards the seller key itself.
func DimSeller(rt *etl.Runtime, opts ...etl.Option) *etl.Table {
	return etl.New(rt, etl.Spec{
		Name:        TableDimSeller,
		Layer:       Layer,
		PrimaryKeys: []string{"seller_id"},
		Columns:     []string{"seller_id", "user_id", "username", "email", "first_time_sold_timestamp", etl.StampColumn},
		Upstreams:   []etl.Factory{bronze.Seller, bronze.Appuser},
		Transform:   transformDimSeller,
	}, opts...)
}

func transformDimSeller(ctx context.Context, in []etl.DataSet, ingested string) (*dataframe.DataFrame, error) {
	sellers, err := in[0].Data.Select(ctx, "seller_id", "user_id", "first_time_sold_timestamp")
	if err != nil {
		return nil, err
	}
	accounts, err := in[1].Data.Select(ctx, "user_id", "username", "email")
	if err != nil {
		return nil, err
	}
	enriched, err := sellers.Join(ctx, accounts, []string{"user_id"}, dataframe.Left)
	if err != nil {
		return nil, err
	}
	return enriched.WithColumn(ctx, etl.StampColumn, dataframe.Lit(ingested))
}
