package postgres

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Siparis-api/pkg/listquery"
)

// listSpec traduce campos de listquery a columnas SQL de una entidad.
type listSpec struct {
	columns  map[string]string // campo de la API -> expresión SQL
	search   []string          // columnas para la búsqueda libre (q)
	tiebreak string            // orden estable entre filas iguales
}

// whereBuilder acumula condiciones con placeholders posicionales.
type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", fmt.Sprintf("$%d", len(w.args))))
}

func (w *whereBuilder) sql() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// where arma el WHERE de filtros y búsqueda. Los campos sin columna se ignoran
// (el schema de la API ya los rechazó).
func (s listSpec) where(q listquery.Query) *whereBuilder {
	w := &whereBuilder{}
	for _, f := range q.Filters {
		col, ok := s.columns[f.Field]
		if !ok {
			continue
		}
		switch f.Kind {
		case listquery.KindText:
			w.add(col+" ILIKE ?", "%"+likeEscape(first(f.Values))+"%")
		case listquery.KindSelect:
			w.add(col+" = ?", first(f.Values))
		case listquery.KindMulti:
			w.add(col+" = ANY(?)", f.Values)
		case listquery.KindDateRange:
			if f.From != nil {
				w.add(col+" >= ?", *f.From)
			}
			if f.To != nil {
				w.add(col+" < ?", f.To.Add(24*time.Hour))
			}
		}
	}
	if q.Search != "" && len(s.search) > 0 {
		parts := make([]string, len(s.search))
		for i, c := range s.search {
			parts[i] = c + " ILIKE ?"
		}
		w.add("("+strings.Join(parts, " OR ")+")", "%"+likeEscape(q.Search)+"%")
	}
	return w
}

// page devuelve ORDER BY + LIMIT/OFFSET, agregando los args a w.
func (s listSpec) page(q listquery.Query, w *whereBuilder) string {
	col, ok := s.columns[q.Sort]
	if !ok {
		col = s.tiebreak
	}
	dir := "ASC"
	if q.Direction == listquery.Desc {
		dir = "DESC"
	}
	out := fmt.Sprintf(" ORDER BY %s %s, %s", col, dir, s.tiebreak)
	if q.PageSize > 0 {
		w.args = append(w.args, q.PageSize, q.Offset())
		out += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)-1, len(w.args))
	}
	return out
}

func first(v []string) string {
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

func likeEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}
