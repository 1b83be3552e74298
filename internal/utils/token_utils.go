package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AudiencePortal marks tokens issued to end customers via the portal
// magic-link flow, as opposed to staff access tokens.
const AudiencePortal = "portal"

// PortalSessionCookie is the cookie name carrying the portal session token.
const PortalSessionCookie = "th_portal_session"

// AuthClaims are the JWT claims carried by both staff and portal tokens.
// Subject holds the user ID (staff) or customer ID (portal); CompanyID pins
// the token to a single tenant.
type AuthClaims struct {
	jwt.RegisteredClaims
	CompanyID string `json:"companyID"`
	Role      string `json:"role,omitempty"`
	Audience  string `json:"aud2,omitempty"`
}

// GenerateJWT generates a signed staff access token.
func GenerateJWT(userID, companyID, role, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		CompanyID: companyID,
		Role:      role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// GeneratePortalJWT generates a signed portal session token for an end customer.
func GeneratePortalJWT(customerID, companyID, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   customerID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
		CompanyID: companyID,
		Audience:  AudiencePortal,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a token string and validates its signature and
// standard claims. It returns the AuthClaims if the token is valid.
func ParseAndValidateJWT(tokenString string, secretKey string) (*AuthClaims, error) {
	claims := &AuthClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}

	return claims, nil
}
