package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// OrderNumberPrefix prefijo diario de pedidos: ORD-YYYYMMDD-
func OrderNumberPrefix(day time.Time) string {
	return "ORD-" + day.Format("20060102") + "-"
}

// DeliveryNumberPrefix DLV-YYYYMMDD- para entregas, RET-YYYYMMDD- para devoluciones.
func DeliveryNumberPrefix(kind string, day time.Time) string {
	if kind == DeliveryKindReturn {
		return "RET-" + day.Format("20060102") + "-"
	}
	return "DLV-" + day.Format("20060102") + "-"
}

// SequenceNumber prefix seguido del secuencial con cuatro dígitos.
func SequenceNumber(prefix string, seq int) string {
	return fmt.Sprintf("%s%04d", prefix, seq)
}

// SequenceOf secuencial de number si empieza por prefix y el resto es numérico.
func SequenceOf(number, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(number, prefix)
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// NextSequence siguiente secuencial para prefix: el mayor existente más uno.
// Los huecos que deja un borrado no se reutilizan salvo el último.
func NextSequence(numbers []string, prefix string) int {
	last := 0
	for _, n := range numbers {
		if seq, ok := SequenceOf(n, prefix); ok && seq > last {
			last = seq
		}
	}
	return last + 1
}
