package http

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Siparis-api/internal/domain"
	"github.com/jhoicas/Siparis-api/pkg/listquery"
)

// parseBody decodifica el cuerpo JSON en out.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return errInvalidBody
	}
	return nil
}

// queryValues copia los query params conservando los repetidos y su orden.
func queryValues(c *fiber.Ctx) url.Values {
	v := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		v.Add(string(key), string(value))
	})
	return v
}

// listQuery interpreta page/size/sort/dir/q/f.* según el schema del listado.
// Los parámetros rechazados salen como VALIDATION_ERROR con el detalle por parámetro.
func listQuery(c *fiber.Ctx, s listquery.Schema) (listquery.Query, error) {
	q, err := listquery.Decode(queryValues(c), s)
	var perr *listquery.ParamError
	if errors.As(err, &perr) {
		return q, &domain.ValidationError{Fields: perr.Fields}
	}
	return q, err
}

// requireConfirm exige ?confirm=true en operaciones destructivas.
func requireConfirm(c *fiber.Ctx) error {
	if c.QueryBool("confirm", false) {
		return nil
	}
	return domain.ErrConfirmationRequired
}
