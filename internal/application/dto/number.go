package dto

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number cantidad numérica de entrada. Acepta número JSON o string numérico;
// cualquier otro valor queda como NaN para que la validación lo rechace con detalle de campo
// en lugar de fallar el parseo del body completo.
type Number float64

// UnmarshalJSON implementa json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = Number(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*n = Number(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*n = Number(f)
			return nil
		}
	}
	*n = Number(math.NaN())
	return nil
}

// Float64 valor crudo.
func (n Number) Float64() float64 { return float64(n) }
