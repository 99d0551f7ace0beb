package auth

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Access says how a gRPC method treats the caller's token.
type Access int

const (
	// AccessOperator requires a valid token. Methods missing from the policy get this.
	AccessOperator Access = iota
	// AccessOptional parses a token when one is sent and rejects a bad one.
	AccessOptional
	// AccessPublic never looks at the token (health checks).
	AccessPublic
)

// NewUnaryAuthInterceptor returns a gRPC unary interceptor that extracts and validates
// a Bearer JWT from incoming metadata and injects the Principal into the context.
// policy maps full method names to their Access; unlisted methods require a token.
func NewUnaryAuthInterceptor(secret string, policy map[string]Access) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		access := policy[info.FullMethod]
		if access == AccessPublic {
			return handler(ctx, req)
		}
		p, err := ParseFromMD(ctx, secret)
		switch {
		case err == nil:
			return handler(WithPrincipal(ctx, p), req)
		case errors.Is(err, ErrNoToken) && access == AccessOptional:
			return handler(ctx, req)
		default:
			return nil, status.Errorf(codes.Unauthenticated, "auth error: %v", err)
		}
	}
}

// RequirePrincipal ensures a principal is present in context.
func RequirePrincipal(ctx context.Context) (*Principal, error) {
	p, ok := FromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "missing principal")
	}
	return p, nil
}

// RequireOperator ensures the caller is an operator or admin.
func RequireOperator(ctx context.Context) (*Principal, error) {
	p, err := RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	if !p.IsOperator() {
		return nil, status.Error(codes.PermissionDenied, "only operator or admin can perform this action")
	}
	return p, nil
}
