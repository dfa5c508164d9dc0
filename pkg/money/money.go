// Package money convierte montos en unidades menores (int64) a su forma decimal.
// Solo debe usarse en el borde de presentación; la lógica de negocio opera en enteros.
package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// MinorDigits cantidad de decimales de las unidades menores (kuruş, centavos).
const MinorDigits = 2

// ToDecimal 1500 → 15.00.
func ToDecimal(minor int64) decimal.Decimal {
	return decimal.New(minor, -MinorDigits)
}

// String representación decimal fija: 1500 → "15.00", -15000 → "-150.00".
func String(minor int64) string {
	return ToDecimal(minor).StringFixed(MinorDigits)
}

// Format monto con código de moneda: "150.00 TRY".
func Format(minor int64, code string) string {
	return String(minor) + " " + strings.ToUpper(code)
}

// ParseMinor convierte "12.5" o "12,50" a unidades menores (1250). Rechaza más de dos decimales.
func ParseMinor(s string) (int64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("money: monto inválido %q: %w", s, err)
	}
	scaled := d.Shift(MinorDigits)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, fmt.Errorf("money: %q tiene más de %d decimales", s, MinorDigits)
	}
	return scaled.IntPart(), nil
}

// ValidCurrency indica si code es un código ISO 4217 reconocido.
func ValidCurrency(code string) bool {
	if len(code) != 3 {
		return false
	}
	_, err := currency.ParseISO(code)
	return err == nil
}
