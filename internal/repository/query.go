package repository

import (
	"context"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultPage  = 1
	DefaultLimit = 25
)

// claves reservadas que no son filtros
var reservedKeys = map[string]bool{
	"select": true,
	"sort":   true,
	"page":   true,
	"limit":  true,
}

// averageCost[lte]=10000 → campo "averageCost", operador "lte"
var opKeyRe = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9.]*)\[(gt|gte|lt|lte|in)\]$`)

type PageRef struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type Pagination struct {
	Next *PageRef `json:"next,omitempty"`
	Prev *PageRef `json:"prev,omitempty"`
}

// ListQuery es la forma ya parseada de los query params de un listado.
type ListQuery struct {
	Filter     bson.M
	Projection bson.D
	Sort       bson.D
	Page       int
	Limit      int
}

func (q ListQuery) Skip() int { return (q.Page - 1) * q.Limit }

// ParseListQuery traduce los query params de un listado al lenguaje de
// consulta de mongo. Los sufijos [gt] [gte] [lt] [lte] [in] se reescriben
// al operador $ nativo, así el cliente puede pedir rangos tipo
// averageCost[lte]=10000 sin conocer la sintaxis de mongo.
func ParseListQuery(values url.Values) ListQuery {
	q := ListQuery{
		Filter: bson.M{},
		Page:   DefaultPage,
		Limit:  DefaultLimit,
	}

	for key, vals := range values {
		if reservedKeys[key] || len(vals) == 0 {
			continue
		}
		raw := vals[0]

		if m := opKeyRe.FindStringSubmatch(key); m != nil {
			field, op := m[1], m[2]
			cond, _ := q.Filter[field].(bson.M)
			if cond == nil {
				cond = bson.M{}
			}
			if op == "in" {
				parts := strings.Split(raw, ",")
				list := make([]any, 0, len(parts))
				for _, p := range parts {
					list = append(list, castValue(p))
				}
				cond["$in"] = list
			} else {
				cond["$"+op] = castValue(raw)
			}
			q.Filter[field] = cond
			continue
		}

		q.Filter[key] = equalityValue(raw)
	}

	if sel := values.Get("select"); sel != "" {
		for _, f := range strings.Split(sel, ",") {
			if f = strings.TrimSpace(f); f != "" {
				q.Projection = append(q.Projection, bson.E{Key: f, Value: 1})
			}
		}
	}

	if sort := values.Get("sort"); sort != "" {
		for _, f := range strings.Split(sort, ",") {
			if f = strings.TrimSpace(f); f == "" {
				continue
			}
			dir := 1
			if strings.HasPrefix(f, "-") {
				dir = -1
				f = f[1:]
			}
			q.Sort = append(q.Sort, bson.E{Key: f, Value: dir})
		}
	}
	if len(q.Sort) == 0 {
		// orden por defecto: nombre ascendente
		q.Sort = bson.D{{Key: "name", Value: 1}}
	}

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit > 0 {
		q.Limit = limit
	}

	return q
}

// castValue convierte el literal del query param al tipo que mongo
// va a comparar: bool, número o string.
func castValue(s string) any {
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return n
	}
	return s
}

// equalityValue arma el valor de un filtro de igualdad simple. Acá el
// tipo del campo no se conoce: "02215" puede ser un postcode guardado
// como string o el número 2215, así que cuando el literal castea a
// otra cosa se aceptan las dos representaciones. Los sufijos de
// comparación siguen usando el cast puro, ahí el orden numérico es
// el punto.
func equalityValue(raw string) any {
	cast := castValue(raw)
	if _, isString := cast.(string); isString {
		return cast
	}
	return bson.M{"$in": bson.A{raw, cast}}
}

// Page es una página de resultados más su metadata.
type Page[T any] struct {
	Count      int
	Total      int64
	Pagination Pagination
	Data       []T
}

// FindPage ejecuta un ListQuery contra cualquier colección. El total se
// cuenta sobre el set filtrado completo, antes de paginar.
func FindPage[T any](ctx context.Context, col *mongo.Collection, q ListQuery) (*Page[T], error) {
	total, err := col.CountDocuments(ctx, q.Filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(q.Sort).
		SetSkip(int64(q.Skip())).
		SetLimit(int64(q.Limit))
	if len(q.Projection) > 0 {
		opts.SetProjection(q.Projection)
	}

	cur, err := col.Find(ctx, q.Filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	data := []T{}
	for cur.Next(ctx) {
		var doc T
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		data = append(data, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	return &Page[T]{
		Count:      len(data),
		Total:      total,
		Pagination: BuildPagination(q.Page, q.Limit, total),
		Data:       data,
	}, nil
}

// BuildPagination arma los descriptores next/prev:
// next existe si quedan documentos después de esta página,
// prev si no estamos en la primera.
func BuildPagination(page, limit int, total int64) Pagination {
	var p Pagination
	if int64(page*limit) < total {
		p.Next = &PageRef{Page: page + 1, Limit: limit}
	}
	if page > 1 {
		p.Prev = &PageRef{Page: page - 1, Limit: limit}
	}
	return p
}
