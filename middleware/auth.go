package middleware

import (
	"errors"
	"net/http"
	"strings"

	"friendgraph-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// UserIDKey is the gin context key holding the authenticated account id.
const UserIDKey = "user_id"

var errNoToken = errors.New("no bearer token")

// AuthMiddleware rejects requests without a valid HS256 bearer token and
// stores the token's user_id claim under UserIDKey.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := authenticate(c, jwtSecret)
		if err != nil {
			utils.AbortWithError(c, http.StatusUnauthorized, "Not authorized!")
			return
		}
		c.Set(UserIDKey, userID)
		c.Next()
	}
}

// OptionalAuth sets UserIDKey when a valid token is present and otherwise
// lets the request through as anonymous. A malformed token is still rejected.
func OptionalAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := authenticate(c, jwtSecret)
		switch {
		case errors.Is(err, errNoToken):
		case err != nil:
			utils.AbortWithError(c, http.StatusUnauthorized, "Not authorized!")
			return
		default:
			c.Set(UserIDKey, userID)
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, jwtSecret string) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", errNoToken
	}
	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenString == "" {
		return "", errors.New("malformed authorization header")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("unexpected claims type")
	}
	userID, _ := claims["user_id"].(string)
	if !utils.IsValidAccountID(userID) {
		return "", errors.New("token carries no user_id")
	}
	return userID, nil
}

// GenerateToken signs a token for userID. Used by the seed tooling and tests.
func GenerateToken(jwtSecret, userID string, claims jwt.MapClaims) (string, error) {
	all := jwt.MapClaims{"user_id": userID}
	for k, v := range claims {
		all[k] = v
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, all).SignedString([]byte(jwtSecret))
}
