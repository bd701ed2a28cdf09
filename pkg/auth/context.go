package auth

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

type contextKey string

const (
	// ContextKeyCaller is the context key for the authenticated caller address
	ContextKeyCaller contextKey = "caller"
	// ContextKeyMethod is the context key for the authentication method used
	ContextKeyMethod contextKey = "auth_method"
)

// Authentication methods recorded in the request context.
const (
	MethodSignature = "signature"
	MethodJWT       = "jwt"
)

// WithCaller adds the authenticated caller to the context
func WithCaller(ctx context.Context, caller common.Address, method string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyCaller, caller)
	return context.WithValue(ctx, ContextKeyMethod, method)
}

// CallerFromContext retrieves the authenticated caller from the context
func CallerFromContext(ctx context.Context) (common.Address, bool) {
	addr, ok := ctx.Value(ContextKeyCaller).(common.Address)
	return addr, ok
}

// MethodFromContext retrieves how the caller authenticated
func MethodFromContext(ctx context.Context) string {
	m, _ := ctx.Value(ContextKeyMethod).(string)
	return m
}
