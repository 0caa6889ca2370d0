package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	tok, err := Generate("64f000000000000000000001", "amina@sos.tn", "psychologist", "gammarth", "test-secret", 1)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := Validate(tok, "test-secret")
	require.NoError(t, err)
	require.Equal(t, "64f000000000000000000001", claims.UserID)
	require.Equal(t, "amina@sos.tn", claims.Email)
	require.Equal(t, "psychologist", claims.Role)
	require.Equal(t, "gammarth", claims.Village)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	tok, err := Generate("id", "x@y.z", "admin", "", "secret-a", 1)
	require.NoError(t, err)

	_, err = Validate(tok, "secret-b")
	require.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	tok, err := Generate("id", "x@y.z", "admin", "", "secret", -1)
	require.NoError(t, err)

	_, err = Validate(tok, "secret")
	require.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := Validate("not-a-jwt", "secret")
	require.Error(t, err)
}
