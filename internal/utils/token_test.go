package utils

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	os.Setenv("JWT_SECRET", "test_secret")
	os.Setenv("JWT_TTL", "1h")
	defer os.Unsetenv("JWT_TTL")

	token, err := GenerateToken(7, "ana@example.com", "admin")
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)

	userID, ok := ClaimUserID(claims)
	assert.True(t, ok)
	assert.Equal(t, uint(7), userID)
	assert.Equal(t, "ana@example.com", claims["email"])
	assert.Equal(t, "admin", claims["role"])

	remaining, err := TokenRemaining(claims)
	require.NoError(t, err)
	assert.InDelta(t, time.Hour.Seconds(), remaining.Seconds(), 5)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	os.Setenv("JWT_SECRET", "first")
	token, err := GenerateToken(1, "a@b.c", "user")
	require.NoError(t, err)

	os.Setenv("JWT_SECRET", "second")
	defer os.Setenv("JWT_SECRET", "test_secret")

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestExtractToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr string
	}{
		{name: "missing", wantErr: "authorization header is required"},
		{name: "no bearer", header: "Token abc", wantErr: "bearer token not found"},
		{name: "ok", header: "Bearer abc.def", want: "abc.def"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				c.Request.Header.Set("Authorization", tt.header)
			}

			got, err := ExtractToken(c)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
