// Copyright (c) 2026 Bnusa. All rights reserved.

// Package sec verifies the bearer tokens issued by the identity provider.
//
// Tokens are RS256 JWTs. The provider owns sign-in and signing keys; this
// service only holds the public key and reconstructs the caller from claims.
package sec

import (
	"crypto/rsa"
	"fmt"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims is the verified identity of a caller.
//
// The JSON names follow the identity provider's ID token layout.
type AuthClaims struct {
	jwt.RegisteredClaims

	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	DisplayName string `json:"name"`
	PhotoURL    string `json:"picture"`
}

// Username returns a handle for display: the local part of the email, or the user ID.
func (c *AuthClaims) Username() string {
	if local, _, ok := strings.Cut(c.Email, "@"); ok && local != "" {
		return local
	}
	return c.UserID
}

// Name returns the display name, falling back to [AuthClaims.Username].
func (c *AuthClaims) Name() string {
	if name := strings.TrimSpace(c.DisplayName); name != "" {
		return name
	}
	return c.Username()
}

// TokenVerifier checks RS256 signatures and standard claims.
type TokenVerifier struct {
	publicKey *rsa.PublicKey
	issuer    string
	audience  string
}

// NewTokenVerifier reads a PEM encoded RSA public key from disk.
func NewTokenVerifier(publicKeyPath, issuer, audience string) (*TokenVerifier, error) {
	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse public key: %w", err)
	}

	return NewTokenVerifierFromKey(publicKey, issuer, audience), nil
}

// NewTokenVerifierFromKey builds a verifier around an already parsed key.
// Empty issuer or audience disables that check.
func NewTokenVerifierFromKey(publicKey *rsa.PublicKey, issuer, audience string) *TokenVerifier {
	return &TokenVerifier{publicKey: publicKey, issuer: issuer, audience: audience}
}

// VerifyToken checks the signature and validity of a JWT string.
func (verifier *TokenVerifier) VerifyToken(tokenString string) (*AuthClaims, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if verifier.issuer != "" {
		options = append(options, jwt.WithIssuer(verifier.issuer))
	}
	if verifier.audience != "" {
		options = append(options, jwt.WithAudience(verifier.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (any, error) {
		return verifier.publicKey, nil
	}, options...)
	if err != nil {
		return nil, fmt.Errorf("sec: invalid token: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("sec: invalid token claims")
	}

	if claims.UserID == "" {
		claims.UserID = claims.Subject
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("sec: token has no subject")
	}

	return claims, nil
}
