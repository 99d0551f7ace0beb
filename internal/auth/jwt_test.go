package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"google.golang.org/grpc/metadata"

	"github.com/DInduwara/Flood-management-system/internal/testutil"
)

const testSecret = "test-secret"

func TestParseFromMD_ValidBearer(t *testing.T) {
	tok := testutil.GenerateJWTHS256(t, testSecret, "desk-1", "Operator")
	ctx := testutil.CtxWithBearer(context.Background(), tok)
	p, err := ParseFromMD(ctx, testSecret)
	if err != nil {
		t.Fatalf("ParseFromMD: %v", err)
	}
	if p.Name != "desk-1" || p.Kind != KindOperator {
		t.Fatalf("principal mismatch: %+v", p)
	}
	if !p.IsOperator() {
		t.Fatalf("operator kind should be operator")
	}
}

func TestParseFromMD_MissingHeader(t *testing.T) {
	_, err := ParseFromMD(context.Background(), testSecret)
	if !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken, got %v", err)
	}
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-other", "1"))
	if _, err := ParseFromMD(ctx, testSecret); !errors.Is(err, ErrNoToken) {
		t.Fatalf("expected ErrNoToken without authorization key, got %v", err)
	}
}

func TestParseBearer_InvalidScheme(t *testing.T) {
	tok := testutil.GenerateJWTHS256(t, testSecret, "bob", "operator")
	if _, err := ParseBearer("Basic "+tok, testSecret); err == nil || errors.Is(err, ErrNoToken) {
		t.Fatalf("expected scheme error, got %v", err)
	}
	if _, err := ParseBearer("bearer "+tok, testSecret); err != nil {
		t.Fatalf("scheme must be case-insensitive: %v", err)
	}
	if _, err := parseJWT(tok, "wrong"); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
}

func TestParseJWT_ClaimsValidation(t *testing.T) {
	tok := testutil.GenerateJWTHS256(t, testSecret, "", "")
	if _, err := parseJWT(tok, testSecret); err == nil {
		t.Fatalf("expected invalid claims error")
	}
	if _, err := parseJWT(tok, ""); err == nil {
		t.Fatalf("expected empty secret error")
	}
}

func TestIssueToken(t *testing.T) {
	tok, err := IssueToken(testSecret, "coordinator", "ADMIN", time.Hour)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	p, err := ParseBearer("Bearer "+tok, testSecret)
	if err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if p.Name != "coordinator" || p.Kind != KindAdmin || !p.IsOperator() {
		t.Fatalf("principal mismatch: %+v", p)
	}

	expired, err := IssueToken(testSecret, "coordinator", KindOperator, time.Nanosecond)
	if err != nil {
		t.Fatalf("IssueToken short ttl: %v", err)
	}
	time.Sleep(1100 * time.Millisecond)
	if _, err := ParseBearer("Bearer "+expired, testSecret); err == nil {
		t.Fatalf("expected expired token to be rejected")
	}

	for _, tc := range []struct{ secret, name, kind string }{
		{"", "a", KindOperator},
		{testSecret, " ", KindOperator},
		{testSecret, "a", "volunteer"},
	} {
		if _, err := IssueToken(tc.secret, tc.name, tc.kind, time.Hour); err == nil {
			t.Fatalf("expected error for %+v", tc)
		}
	}
}
