package inventory

import (
	"github.com/jhoicas/Siparis-api/pkg/listquery"
)

// MovementListSchema campos de orden y filtros admitidos en el listado de movimientos.
var MovementListSchema = listquery.Schema{
	SortFields: []string{"created_at", "quantity", "movement_type"},
	Filters: map[string]listquery.Kind{
		"product_id":     listquery.KindSelect,
		"movement_type":  listquery.KindMulti,
		"reference_type": listquery.KindMulti,
		"reference_id":   listquery.KindText,
		"created_at":     listquery.KindDateRange,
	},
	DefaultSort: "created_at",
	DefaultDir:  listquery.Desc,
}
