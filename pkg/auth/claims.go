package auth

import (
	"github.com/golang-jwt/jwt/v4"
)

// UsernameFromClaims picks the caller's stable username out of provider
// claims. Access tokens carry username, id tokens cognito:username;
// email and sub are last resorts.
func UsernameFromClaims(claims jwt.MapClaims) string {
	for _, key := range []string{"username", "cognito:username", "email", "sub"} {
		if value, ok := claims[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

// StringClaim returns a string claim or empty.
func StringClaim(claims jwt.MapClaims, key string) string {
	value, _ := claims[key].(string)
	return value
}
