// utils/auth.go
package utils

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Hash admin PIN
func HashPin(pin string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(pin), 14)
	return string(bytes), err
}

// Check PIN against stored hash
func CheckPinHash(pin, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin))
	return err == nil
}

// IsBcryptHash reports whether a stored setting value is already hashed.
// Databases from older releases hold the PIN in plaintext.
func IsBcryptHash(value string) bool {
	return strings.HasPrefix(value, "$2")
}

// GenerateAdminToken mints the token handed out after a successful PIN
// verification; admin routes require it.
func GenerateAdminToken() (string, error) {
	expiryHours := 12 // default
	if env := os.Getenv("JWT_EXPIRY_HOURS"); env != "" {
		if h, err := strconv.Atoi(env); err == nil {
			expiryHours = h
		}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(time.Duration(expiryHours) * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	})

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}

	return token.SignedString([]byte(secret))
}

// Admin middleware
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.AbortWithStatusJSON(401, gin.H{"success": false, "error": "Authorization header required"})
			return
		}

		if len(tokenString) > 7 && strings.ToUpper(tokenString[0:6]) == "BEARER" {
			tokenString = tokenString[7:]
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(401, gin.H{"success": false, "error": "Invalid token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["role"] != "admin" {
			c.AbortWithStatusJSON(401, gin.H{"success": false, "error": "Admin access required"})
			return
		}

		c.Next()
	}
}

// PinThrottle locks PIN verification out for a cooldown period after too
// many consecutive failures.
type PinThrottle struct {
	mu          sync.Mutex
	failures    int
	lockedUntil time.Time
	maxFailures int
	lockout     time.Duration
}

func NewPinThrottle(maxFailures int, lockout time.Duration) *PinThrottle {
	return &PinThrottle{maxFailures: maxFailures, lockout: lockout}
}

func (t *PinThrottle) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return time.Now().After(t.lockedUntil)
}

func (t *PinThrottle) Fail() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failures++
	if t.failures >= t.maxFailures {
		t.lockedUntil = time.Now().Add(t.lockout)
		t.failures = 0
	}
}

func (t *PinThrottle) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.failures = 0
	t.lockedUntil = time.Time{}
}
