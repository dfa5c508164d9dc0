package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Siparis-api/internal/domain/entity"
)

func TestNextSequence_UsaElMayorExistente(t *testing.T) {
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	prefix := entity.DeliveryNumberPrefix(entity.DeliveryKindDelivery, day)
	assert.Equal(t, "DLV-20260315-", prefix)

	existing := []string{"DLV-20260315-0002", "DLV-20260315-0007", "RET-20260315-0009", "DLV-20260315-manual", "DLV-20260314-0011"}
	assert.Equal(t, 8, entity.NextSequence(existing, prefix))
	assert.Equal(t, 1, entity.NextSequence(nil, prefix))
	assert.Equal(t, "ORD-20260315-0042", entity.SequenceNumber(entity.OrderNumberPrefix(day), 42))
}
