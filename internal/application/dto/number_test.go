package dto_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Siparis-api/internal/application/dto"
)

func TestNumber_Unmarshal(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		nan  bool
	}{
		{`{"q": 5}`, 5, false},
		{`{"q": "7"}`, 7, false},
		{`{"q": 2.5}`, 2.5, false},
		{`{"q": "abc"}`, 0, true},
		{`{"q": null}`, 0, true},
		{`{"q": true}`, 0, true},
	}
	for _, tc := range cases {
		var body struct {
			Q dto.Number `json:"q"`
		}
		require.NoError(t, json.Unmarshal([]byte(tc.in), &body), tc.in)
		if tc.nan {
			assert.True(t, math.IsNaN(body.Q.Float64()), tc.in)
			continue
		}
		assert.Equal(t, tc.want, body.Q.Float64(), tc.in)
	}
}

func TestNumber_Ausente(t *testing.T) {
	var body struct {
		Q dto.Number `json:"q"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &body))
	assert.Equal(t, 0.0, body.Q.Float64())
}
