package api

import (
	"testing"
	"time"

	"github.com/dreambody011-stack/dream--body/internal/models"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Parallel()

	handler := &Handler{secretKey: []byte("test-secret-key")}

	token, err := handler.buildToken(session{Role: models.RoleClient, UserID: "ABC234"}, time.Hour)
	if err != nil {
		t.Fatalf("buildToken() unexpected error: %v", err)
	}
	parsed, err := handler.parseToken(token)
	if err != nil {
		t.Fatalf("parseToken() unexpected error: %v", err)
	}
	if parsed.Role != models.RoleClient || parsed.UserID != "ABC234" {
		t.Fatalf("unexpected session %#v", parsed)
	}

	adminToken, err := handler.buildToken(session{Role: models.RoleAdmin, UserID: "ignored"}, time.Hour)
	if err != nil {
		t.Fatalf("buildToken() unexpected error: %v", err)
	}
	admin, err := handler.parseToken(adminToken)
	if err != nil {
		t.Fatalf("parseToken() unexpected error: %v", err)
	}
	if admin.Role != models.RoleAdmin || admin.UserID != "" {
		t.Fatalf("expected admin session without user id, got %#v", admin)
	}
}

func TestSessionTokenRejectsForeignOrBrokenTokens(t *testing.T) {
	t.Parallel()

	handler := &Handler{secretKey: []byte("test-secret-key")}
	other := &Handler{secretKey: []byte("another-secret")}

	foreign, err := other.buildToken(session{Role: models.RoleClient, UserID: "ABC234"}, time.Hour)
	if err != nil {
		t.Fatalf("buildToken() unexpected error: %v", err)
	}
	if _, err := handler.parseToken(foreign); err == nil {
		t.Fatal("expected token signed with another key to be rejected")
	}

	clientWithoutUser, err := handler.buildToken(session{Role: models.RoleClient}, time.Hour)
	if err != nil {
		t.Fatalf("buildToken() unexpected error: %v", err)
	}
	if _, err := handler.parseToken(clientWithoutUser); err == nil {
		t.Fatal("expected client token without user id to be rejected")
	}

	unknownRole, err := handler.buildToken(session{Role: "OWNER", UserID: "ABC234"}, time.Hour)
	if err != nil {
		t.Fatalf("buildToken() unexpected error: %v", err)
	}
	if _, err := handler.parseToken(unknownRole); err == nil {
		t.Fatal("expected unknown role to be rejected")
	}

	if _, err := handler.parseToken("garbage"); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
}
