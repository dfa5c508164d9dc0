package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Siparis-api/pkg/jwt"
)

func TestGenerateAndParse(t *testing.T) {
	id := pkgjwt.Identity{UserID: "u1", Role: "bodeguero", SessionID: "s1"}
	tok, err := pkgjwt.Generate("secret", id, "siparis-test", 5)
	require.NoError(t, err)

	got, err := pkgjwt.Parse("secret", tok)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := pkgjwt.Generate("secret", pkgjwt.Identity{UserID: "u1"}, "x", 5)
	require.NoError(t, err)
	_, err = pkgjwt.Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate("secret", pkgjwt.Identity{UserID: "u1"}, "x", -1)
	require.NoError(t, err)
	_, err = pkgjwt.Parse("secret", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", pkgjwt.Identity{}, "x", 5)
	assert.Error(t, err)
}
