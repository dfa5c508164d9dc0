// Package listquery codifica y decodifica la especificación de listados (página,
// orden, búsqueda y filtros por columna) hacia y desde parámetros de URL.
//
// Formato:
//
//	page=2&size=20&sort=name&dir=desc&q=vida
//	f.status=PENDING&f.status=CONFIRMED      (select / multi-select, orden preservado)
//	f.code=P-0                               (texto)
//	f.order_date.from=2026-01-01&f.order_date.to=2026-01-31   (rango de fechas)
package listquery

import (
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Límites de paginación.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	DateLayout      = "2006-01-02"
	filterPrefix    = "f."
)

// Direcciones de orden.
const (
	Asc  = "asc"
	Desc = "desc"
)

// Kind tipo de filtro de columna.
type Kind string

const (
	KindText      Kind = "text"
	KindSelect    Kind = "select"
	KindMulti     Kind = "multi"
	KindDateRange Kind = "date_range"
)

// Filter filtro sobre una columna.
type Filter struct {
	Field  string
	Kind   Kind
	Values []string   // text/select: un valor; multi: varios, en orden
	From   *time.Time // date_range
	To     *time.Time // date_range
}

// ParamError parámetros de listado inválidos (parámetro -> motivo).
type ParamError struct {
	Fields map[string]string
}

func (e *ParamError) add(param, reason string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[param] = reason
}

func (e *ParamError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ParamError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "listado: " + strings.Join(parts, ", ")
}

// Query especificación completa de un listado.
type Query struct {
	Page      int // base 1
	PageSize  int
	Sort      string
	Direction string
	Search    string
	Filters   []Filter
}

// Schema reglas por entidad: campos ordenables, filtros admitidos y orden por defecto.
type Schema struct {
	SortFields  []string
	Filters     map[string]Kind
	DefaultSort string
	DefaultDir  string
}

// Offset desplazamiento de la página actual.
func (q Query) Offset() int {
	if q.Page <= 1 {
		return 0
	}
	return (q.Page - 1) * q.PageSize
}

// Filter devuelve el filtro de un campo, si existe.
func (q Query) Filter(field string) (Filter, bool) {
	for _, f := range q.Filters {
		if f.Field == field {
			return f, true
		}
	}
	return Filter{}, false
}

// Encode serializa la query a parámetros de URL.
func Encode(q Query) url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("size", strconv.Itoa(q.PageSize))
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Direction != "" {
		v.Set("dir", q.Direction)
	}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	for _, f := range q.Filters {
		key := filterPrefix + f.Field
		switch f.Kind {
		case KindDateRange:
			if f.From != nil {
				v.Set(key+".from", f.From.Format(DateLayout))
			}
			if f.To != nil {
				v.Set(key+".to", f.To.Format(DateLayout))
			}
		default:
			for _, val := range f.Values {
				v.Add(key, val)
			}
		}
	}
	return v
}

// Decode interpreta los parámetros según el schema. Campos de orden o filtros no
// admitidos fallan con *ParamError; los filtros se devuelven en el orden del schema.
// Los valores multi-select se conservan tal como llegan, en orden.
func Decode(v url.Values, s Schema) (Query, error) {
	verr := &ParamError{}
	q := Query{
		Page:      1,
		PageSize:  DefaultPageSize,
		Sort:      s.DefaultSort,
		Direction: s.DefaultDir,
		Search:    strings.TrimSpace(v.Get("q")),
	}
	if q.Direction == "" {
		q.Direction = Asc
	}
	if raw := v.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			verr.add("page", "must be a positive integer")
		} else {
			q.Page = n
		}
	}
	if raw := v.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			verr.add("size", "must be an integer")
		} else {
			q.PageSize = min(max(n, 1), MaxPageSize)
		}
	}
	if raw := v.Get("sort"); raw != "" {
		if !slices.Contains(s.SortFields, raw) {
			verr.add("sort", "unsupported sort field")
		} else {
			q.Sort = raw
		}
	}
	if raw := strings.ToLower(v.Get("dir")); raw != "" {
		if raw != Asc && raw != Desc {
			verr.add("dir", "must be asc or desc")
		} else {
			q.Direction = raw
		}
	}

	for key := range v {
		if !strings.HasPrefix(key, filterPrefix) {
			continue
		}
		field := strings.TrimSuffix(strings.TrimSuffix(strings.TrimPrefix(key, filterPrefix), ".from"), ".to")
		if _, ok := s.Filters[field]; !ok {
			verr.add(key, "unsupported filter")
		}
	}

	for _, field := range sortedKeys(s.Filters) {
		kind := s.Filters[field]
		key := filterPrefix + field
		switch kind {
		case KindDateRange:
			from, okFrom := parseDate(v.Get(key+".from"), key+".from", verr)
			to, okTo := parseDate(v.Get(key+".to"), key+".to", verr)
			if okFrom || okTo {
				q.Filters = append(q.Filters, Filter{Field: field, Kind: kind, From: from, To: to})
			}
		case KindMulti:
			if vals := v[key]; len(vals) > 0 {
				q.Filters = append(q.Filters, Filter{Field: field, Kind: kind, Values: slices.Clone(vals)})
			}
		default:
			if val := strings.TrimSpace(v.Get(key)); val != "" {
				q.Filters = append(q.Filters, Filter{Field: field, Kind: kind, Values: []string{val}})
			}
		}
	}
	if err := verr.orNil(); err != nil {
		return Query{}, err
	}
	return q, nil
}

func parseDate(raw, field string, verr *ParamError) (*time.Time, bool) {
	if raw == "" {
		return nil, false
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		verr.add(field, "must be YYYY-MM-DD")
		return nil, false
	}
	return &t, true
}

func sortedKeys(m map[string]Kind) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
