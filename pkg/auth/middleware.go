package auth

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/burnmint-bridge/pkg/app/errors"
	apphttp "github.com/chainsafe/burnmint-bridge/pkg/app/http"
)

// MaxBodyBytes bounds the request bodies read for signature verification.
const MaxBodyBytes = 1 << 20

var errNoCredentials = errors.New("missing credentials")

// Authenticator resolves the caller of a request from its signature headers or
// from a bearer token.
type Authenticator struct {
	window time.Duration
	replay *ReplayGuard
	jwt    *JWTValidator
	logger *zap.Logger
	now    func() time.Time
}

// NewAuthenticator creates an authenticator accepting signed requests whose timestamp
// is within window. jwtValidator may be nil to disable bearer tokens.
func NewAuthenticator(window time.Duration, jwtValidator *JWTValidator, logger *zap.Logger) *Authenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Authenticator{
		window: window,
		// a signature stays acceptable from ts-window to ts+window
		replay: NewReplayGuard(2 * window),
		jwt:    jwtValidator,
		logger: logger,
		now:    time.Now,
	}
}

// Authenticate returns the caller of r. The request body is read and restored.
func (a *Authenticator) Authenticate(r *http.Request) (common.Address, string, error) {
	if bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		if !a.jwt.IsConfigured() {
			return common.Address{}, "", fmt.Errorf("bearer tokens are not accepted")
		}
		addr, err := a.jwt.Authenticate(r.Context(), bearer)
		if err != nil {
			return common.Address{}, "", err
		}
		return addr, MethodJWT, nil
	}

	sig := r.Header.Get(HeaderSignature)
	rawTS := r.Header.Get(HeaderTimestamp)
	if sig == "" || rawTS == "" {
		return common.Address{}, "", errNoCredentials
	}
	ts, err := ParseTimestamp(rawTS, a.now(), a.window)
	if err != nil {
		return common.Address{}, "", err
	}

	var body []byte
	if r.Body != nil {
		body, err = io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
		if err != nil {
			return common.Address{}, "", fmt.Errorf("failed to read body: %w", err)
		}
		if len(body) > MaxBodyBytes {
			return common.Address{}, "", fmt.Errorf("request body too large")
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
	}

	msg := RequestMessage(r.Method, r.URL.RequestURI(), body, ts)
	addr, err := VerifyEIP191Signature(msg, sig)
	if err != nil {
		return common.Address{}, "", err
	}
	if !a.replay.Check(addr.Hex() + crypto.Keccak256Hash(msg).Hex()) {
		return common.Address{}, "", fmt.Errorf("request already seen")
	}
	return addr, MethodSignature, nil
}

// Middleware rejects unauthenticated requests and stores the caller in the context.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller, method, err := a.Authenticate(r)
		if err != nil {
			a.logger.Debug("Request authentication failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Error(err))
			msg := "invalid credentials"
			if errors.Is(err, errNoCredentials) {
				msg = "authentication required"
			}
			apphttp.DefaultErrorHandler(w, apperrors.UnAuthorizedError(err, msg))
			return
		}
		next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller, method)))
	})
}
