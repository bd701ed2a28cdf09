package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jwksServer(t *testing.T, kid string, pub *rsa.PublicKey) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(JWKS{Keys: []JWK{{
			Kid: kid,
			Kty: "RSA",
			Alg: "RS256",
			Use: "sig",
			N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		}}})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func signToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.RegisteredClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	s, err := token.SignedString(key)
	require.NoError(t, err)
	return s
}

func TestJWTValidator(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv := jwksServer(t, "k1", &key.PublicKey)
	v := NewJWTValidator(srv.URL, "bridge-auth")
	require.True(t, v.IsConfigured())

	subject := common.HexToAddress("0x1111111111111111111111111111111111111111")
	valid := jwt.RegisteredClaims{
		Subject:   subject.Hex(),
		Issuer:    "bridge-auth",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}

	got, err := v.Authenticate(context.Background(), signToken(t, key, "k1", valid))
	require.NoError(t, err)
	assert.Equal(t, subject, got)

	t.Run("wrong issuer", func(t *testing.T) {
		c := valid
		c.Issuer = "someone-else"
		_, err := v.Authenticate(context.Background(), signToken(t, key, "k1", c))
		require.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		c := valid
		c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		_, err := v.Authenticate(context.Background(), signToken(t, key, "k1", c))
		require.Error(t, err)
	})

	t.Run("subject is not an address", func(t *testing.T) {
		c := valid
		c.Subject = "alice"
		_, err := v.Authenticate(context.Background(), signToken(t, key, "k1", c))
		require.Error(t, err)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := v.Authenticate(context.Background(), signToken(t, key, "k2", valid))
		require.Error(t, err)
	})

	t.Run("foreign signing key", func(t *testing.T) {
		other, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		_, err = v.Authenticate(context.Background(), signToken(t, other, "k1", valid))
		require.Error(t, err)
	})
}

func TestJWTMiddleware(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	srv := jwksServer(t, "k1", &key.PublicKey)

	a := NewAuthenticator(5*time.Minute, NewJWTValidator(srv.URL, ""), nil)
	h := a.Middleware(echoCaller())

	subject := common.HexToAddress("0x2222222222222222222222222222222222222222")
	token := signToken(t, key, "k1", jwt.RegisteredClaims{
		Subject:   subject.Hex(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	req := httptest.NewRequest(http.MethodPost, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, subject.Hex(), got["caller"])
	assert.Equal(t, MethodJWT, got["method"])
}
