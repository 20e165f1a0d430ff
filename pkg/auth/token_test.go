package auth

import (
	"testing"
	"time"

	"github.com/shopledger/shopledger-backend/pkg/config"
	"github.com/shopledger/shopledger-backend/pkg/enums"
)

func testConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "shopledger",
		ExpirationMinutes: 60,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	now := time.Now().UTC()
	token, err := MintAccessToken(testConfig(), now, AccessTokenPayload{
		Phone: "11111111",
		Role:  enums.ActorRoleVendor,
	})
	if err != nil {
		t.Fatalf("MintAccessToken returned error: %v", err)
	}

	claims, err := ParseAccessToken(testConfig(), token)
	if err != nil {
		t.Fatalf("ParseAccessToken returned error: %v", err)
	}
	if claims.Phone != "11111111" || claims.Role != enums.ActorRoleVendor {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != "shopledger" {
		t.Fatalf("unexpected issuer %q", claims.Issuer)
	}
	if claims.ID == "" {
		t.Fatal("expected a generated token id")
	}
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	token, err := MintAccessToken(testConfig(), time.Now().UTC(), AccessTokenPayload{
		Phone: "11111111",
		Role:  enums.ActorRoleVendor,
	})
	if err != nil {
		t.Fatalf("MintAccessToken returned error: %v", err)
	}

	other := testConfig()
	other.Secret = "different-secret"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected rejection with a different secret")
	}
}

func TestParseAccessToken_WrongIssuer(t *testing.T) {
	token, err := MintAccessToken(testConfig(), time.Now().UTC(), AccessTokenPayload{
		Phone: "11111111",
		Role:  enums.ActorRoleVendor,
	})
	if err != nil {
		t.Fatalf("MintAccessToken returned error: %v", err)
	}

	other := testConfig()
	other.Issuer = "someone-else"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected rejection with a different issuer")
	}
}

func TestParseAccessToken_Expired(t *testing.T) {
	past := time.Now().UTC().Add(-2 * time.Hour)
	token, err := MintAccessToken(testConfig(), past, AccessTokenPayload{
		Phone: "11111111",
		Role:  enums.ActorRoleVendor,
	})
	if err != nil {
		t.Fatalf("MintAccessToken returned error: %v", err)
	}
	if _, err := ParseAccessToken(testConfig(), token); err == nil {
		t.Fatal("expected rejection of an expired token")
	}
}

func TestMintAccessToken_Validation(t *testing.T) {
	now := time.Now().UTC()

	missingSecret := testConfig()
	missingSecret.Secret = ""
	if _, err := MintAccessToken(missingSecret, now, AccessTokenPayload{Phone: "11111111", Role: enums.ActorRoleVendor}); err == nil {
		t.Fatal("expected error without a secret")
	}
	if _, err := MintAccessToken(testConfig(), now, AccessTokenPayload{Role: enums.ActorRoleVendor}); err == nil {
		t.Fatal("expected error without a phone")
	}
	if _, err := MintAccessToken(testConfig(), now, AccessTokenPayload{Phone: "11111111", Role: enums.ActorRole("admin")}); err == nil {
		t.Fatal("expected error for an invalid role")
	}
}
