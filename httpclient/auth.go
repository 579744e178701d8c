package httpclient

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// defaultJWTTTL bounds the lifetime of per-request minted tokens.
const defaultJWTTTL = time.Minute

// AuthType identifies the authentication method.
type AuthType int

const (
	// AuthNone disables authentication.
	AuthNone AuthType = iota
	// AuthBearer uses Bearer token authentication.
	AuthBearer
	// AuthBasic uses HTTP Basic authentication.
	AuthBasic
	// AuthAPIKey uses API key authentication (header or query parameter).
	AuthAPIKey
	// AuthJWT mints a short-lived HS256 JWT for every request.
	AuthJWT
	// AuthCustom uses a custom authentication function.
	AuthCustom
)

// AuthConfig configures request authentication.
type AuthConfig struct {
	// Type is the authentication method.
	Type AuthType
	// Token is the bearer token (AuthBearer).
	Token string
	// Username is the basic auth username (AuthBasic).
	Username string
	// Password is the basic auth password (AuthBasic).
	Password string
	// Key is the API key value (AuthAPIKey).
	Key string
	// In specifies where to place the API key: "header" (default) or "query" (AuthAPIKey).
	In string
	// Name is the header or query parameter name (AuthAPIKey). Defaults to "X-API-Key".
	Name string
	// Secret is the HS256 signing secret (AuthJWT).
	Secret []byte
	// Issuer is the iss claim of minted tokens (AuthJWT).
	Issuer string
	// Subject is the sub claim of minted tokens (AuthJWT).
	Subject string
	// Audience is the aud claim of minted tokens (AuthJWT).
	Audience []string
	// TTL is the lifetime of minted tokens (AuthJWT). Defaults to one minute.
	TTL time.Duration
	// ExtraClaims are additional claims merged into minted tokens (AuthJWT).
	ExtraClaims map[string]any
	// Apply is a custom function to modify the request (AuthCustom).
	Apply func(*http.Request)
}

// BearerAuth creates a bearer token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

// BasicAuth creates a basic auth config.
func BasicAuth(username, password string) *AuthConfig {
	return &AuthConfig{Type: AuthBasic, Username: username, Password: password}
}

// APIKeyAuth creates an API key auth config sent via header.
func APIKeyAuth(key string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: "header", Name: "X-API-Key"}
}

// APIKeyAuthHeader creates an API key auth config with a custom header name.
func APIKeyAuthHeader(key, headerName string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: "header", Name: headerName}
}

// APIKeyAuthQuery creates an API key auth config sent via query parameter.
func APIKeyAuthQuery(key, paramName string) *AuthConfig {
	return &AuthConfig{Type: AuthAPIKey, Key: key, In: "query", Name: paramName}
}

// JWTAuth creates an auth config that signs a fresh HS256 token per request.
// Each token carries iss, sub, iat, and exp claims; set Audience or
// ExtraClaims on the returned config for more.
func JWTAuth(secret []byte, issuer, subject string, ttl time.Duration) *AuthConfig {
	return &AuthConfig{
		Type:    AuthJWT,
		Secret:  secret,
		Issuer:  issuer,
		Subject: subject,
		TTL:     ttl,
	}
}

// CustomAuth creates a custom auth config with a request modifier function.
func CustomAuth(fn func(*http.Request)) *AuthConfig {
	return &AuthConfig{Type: AuthCustom, Apply: fn}
}

// apply applies authentication to an HTTP request.
func (a *AuthConfig) apply(req *http.Request) error {
	if a == nil {
		return nil
	}
	switch a.Type {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+a.Token)
	case AuthBasic:
		req.SetBasicAuth(a.Username, a.Password)
	case AuthAPIKey:
		name := a.Name
		if name == "" {
			name = "X-API-Key"
		}
		if a.In == "query" {
			q := req.URL.Query()
			q.Set(name, a.Key)
			req.URL.RawQuery = q.Encode()
		} else {
			req.Header.Set(name, a.Key)
		}
	case AuthJWT:
		token, err := a.mintJWT(time.Now())
		if err != nil {
			return fmt.Errorf("httpclient: mint jwt: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	case AuthCustom:
		if a.Apply != nil {
			a.Apply(req)
		}
	}
	return nil
}

// mintJWT signs a fresh HS256 token with the configured claims.
func (a *AuthConfig) mintJWT(now time.Time) (string, error) {
	if len(a.Secret) == 0 {
		return "", errors.New("jwt secret is empty")
	}

	ttl := a.TTL
	if ttl <= 0 {
		ttl = defaultJWTTTL
	}

	claims := gojwt.MapClaims{
		"iat": gojwt.NewNumericDate(now),
		"exp": gojwt.NewNumericDate(now.Add(ttl)),
	}
	if a.Issuer != "" {
		claims["iss"] = a.Issuer
	}
	if a.Subject != "" {
		claims["sub"] = a.Subject
	}
	if len(a.Audience) > 0 {
		claims["aud"] = gojwt.ClaimStrings(a.Audience)
	}
	for k, v := range a.ExtraClaims {
		claims[k] = v
	}

	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	return token.SignedString(a.Secret)
}
