package validation_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Siparis-api/internal/application/dto"
	"github.com/jhoicas/Siparis-api/internal/application/validation"
	"github.com/jhoicas/Siparis-api/internal/domain"
)

func TestStruct_Valido(t *testing.T) {
	in := dto.CreateCustomerRequest{Code: "C-1", Name: "Acme"}
	assert.NoError(t, validation.Struct(in))
}

func TestStruct_CamposConNombreJSON(t *testing.T) {
	in := dto.CreateMovementRequest{MovementType: "SWAP"}
	err := validation.Struct(in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	verr, ok := domain.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "product_id")
	assert.Contains(t, verr.Fields, "movement_type")
}

func TestStruct_LineasAnidadas(t *testing.T) {
	in := dto.CreateOrderRequest{
		CustomerID: "c1",
		Lines:      []dto.OrderLineRequest{{ProductID: "p1", Currency: "TRYX"}},
	}
	verr, ok := domain.AsValidation(validation.Struct(in))
	require.True(t, ok)
	assert.Contains(t, verr.Fields, "lines[0].currency")
}
