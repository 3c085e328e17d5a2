package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}

func TestJWTRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")
	SetJWTExpiry(60)

	token, err := GenerateJWTToken("65f1c0ffee", "utkarsh@college.edu")
	require.NoError(t, err)

	userID, email, err := ValidateJWTToken(token)
	require.NoError(t, err)
	assert.Equal(t, "65f1c0ffee", userID)
	assert.Equal(t, "utkarsh@college.edu", email)
}

func TestValidateJWTTokenRejectsGarbage(t *testing.T) {
	SetJWTSecret("test-secret")

	_, _, err := ValidateJWTToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateRandomCode(t *testing.T) {
	code := GenerateRandomCode(6)
	assert.Len(t, code, 6)
	for _, ch := range code {
		assert.True(t, ch >= '0' && ch <= '9')
	}
}

func TestExtractNameFromEmail(t *testing.T) {
	assert.Equal(t, "utkarsh", ExtractNameFromEmail("utkarsh@college.edu"))
	assert.Equal(t, "no-at-sign", ExtractNameFromEmail("no-at-sign"))
}

func TestGenerateImageURL(t *testing.T) {
	url := GenerateImageURL("Utkarsh Sharma")
	assert.True(t, strings.HasPrefix(url, "https://ui-avatars.com/api/?name=US&background="))

	url = GenerateImageURL("Utkarsh")
	assert.Contains(t, url, "name=U&")

	url = GenerateImageURL("")
	assert.Contains(t, url, "name=User")

	// Whitespace-only names have no fields to take initials from.
	url = GenerateImageURL("   ")
	assert.Contains(t, url, "name=User")

	// Initials come from the first rune, not the first byte.
	url = GenerateImageURL("éloise dupont")
	assert.Contains(t, url, "name=ÉD&")
}
