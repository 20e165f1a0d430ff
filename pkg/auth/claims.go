package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/shopledger/shopledger-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	Phone string
	Role  enums.ActorRole
	JTI   string
}

// AccessTokenClaims represents the typed JWT issued to clients. Phone is the
// canonical identity on both sides of the ledger.
type AccessTokenClaims struct {
	Phone string          `json:"phone"`
	Role  enums.ActorRole `json:"role"`
	jwt.RegisteredClaims
}
