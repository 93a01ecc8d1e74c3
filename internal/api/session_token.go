package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dreambody011-stack/dream--body/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const authTokenTTL = 7 * 24 * time.Hour

type authClaims struct {
	UserID string `json:"uid,omitempty"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (handler *Handler) setAuthCookie(c *fiber.Ctx, current session) error {
	token, err := handler.buildToken(current, authTokenTTL)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(authTokenTTL),
	})
	return nil
}

func (handler *Handler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

func (handler *Handler) buildToken(current session, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = authTokenTTL
	}
	now := time.Now()

	userID, subject := current.UserID, current.UserID
	if current.Role == models.RoleAdmin {
		userID, subject = "", strings.ToLower(models.RoleAdmin)
	}
	claims := authClaims{
		UserID: userID,
		Role:   current.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

func (handler *Handler) parseToken(rawToken string) (session, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return session{}, errors.New("invalid token")
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return session{}, errors.New("token expired")
	}

	switch claims.Role {
	case models.RoleAdmin:
		return session{Role: models.RoleAdmin}, nil
	case models.RoleClient:
		if strings.TrimSpace(claims.UserID) == "" {
			return session{}, errors.New("client token without user")
		}
		return session{Role: models.RoleClient, UserID: claims.UserID}, nil
	default:
		return session{}, errors.New("unknown role")
	}
}
