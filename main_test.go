package main

import (
	"bytes"
	"strings"
	"testing"

	"friendgraph-api/config"
	"friendgraph-api/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintDevToken(t *testing.T) {
	var out bytes.Buffer
	printDevToken(&out, &config.Config{JWTSecret: "secret", SeedData: true})

	line := strings.TrimSpace(out.String())
	require.True(t, strings.HasPrefix(line, "development token for user-alice: "))
	raw := strings.TrimPrefix(line, "development token for user-alice: ")

	token, err := jwt.Parse(raw, func(*jwt.Token) (any, error) { return []byte("secret"), nil })
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "user-alice", claims["user_id"])
}

func TestPrintDevToken_SeedDisabled(t *testing.T) {
	var out bytes.Buffer
	printDevToken(&out, &config.Config{JWTSecret: "secret"})
	assert.Empty(t, out.String())
}

func TestPrintDevToken_PlainLine(t *testing.T) {
	var out bytes.Buffer
	printDevToken(&out, &config.Config{JWTSecret: "secret", SeedData: true})
	token, err := middleware.GenerateToken("secret", "user-alice", nil)
	require.NoError(t, err)
	assert.Contains(t, out.String(), token)
	assert.NotContains(t, out.String(), `"level"`)
}
