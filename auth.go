package main

import (
	"context"
	"crypto/rand"
	"net/http"
	"strings"
	"time"

	"github.com/asdine/storm"
	"github.com/dgrijalva/jwt-go"
	"github.com/go-chi/render"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const jwtKeyLength = 32

var (
	// JWT_HMAC_SECRET signs every token. It is installed once at startup by
	// setJWTSecret and is never compiled in.
	JWT_HMAC_SECRET []byte
	JWT_LIFESPAN    = time.Hour
)

var (
	ErrNoSigningKey   = errors.New("no token signing key configured")
	ErrTokenEmpty     = errors.New("Bearer token not provided")
	ErrTokenInvalid   = errors.New("Invalid token")
	ErrTokenExpired   = errors.New("Token has expired")
	ErrNotAdmin       = errors.New("admin rights required")
	ErrUnknownAccount = errors.New("account no longer exists")
	ErrEmptyEmail     = errors.New("email is required")
	ErrEmptyPassword  = errors.New("password is required")
)

type contextKey string

const claimsContextKey contextKey = "claims"

// setJWTSecret installs secret as the signing key. An empty secret gets a
// random key, so tokens do not survive a restart. generated reports which
// case applied.
func setJWTSecret(secret string) (generated bool, err error) {
	if secret != "" {
		JWT_HMAC_SECRET = []byte(secret)
		return false, nil
	}

	key := make([]byte, jwtKeyLength)
	if _, err = rand.Read(key); err != nil {
		return false, errors.Wrap(err, "unable to generate token key")
	}
	JWT_HMAC_SECRET = key
	return true, nil
}

//---
// Accounts
//---

// User is someone allowed to drive the brick. Admins may also change the
// stored presets.
type User struct {
	ID       int    `storm:"increment"` // pk
	Email    string `storm:"unique"`
	Name     string
	Password string
	Admin    bool
}

func newUser(email, password string, admin bool) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, ErrEmptyEmail
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}

	user := &User{Email: email, Name: email, Admin: admin}
	if err := user.SetPassword([]byte(password)); err != nil {
		return nil, err
	}
	return user, nil
}

// SetPassword stores the bcrypt hash of pass.
func (u *User) SetPassword(pass []byte) error {
	hash, err := bcrypt.GenerateFromPassword(pass, bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "unable to hash password")
	}
	u.Password = string(hash)
	return nil
}

// VerifyPassword returns bcrypt's error unchanged so callers can tell a
// mismatch from a broken hash.
func (u *User) VerifyPassword(pass []byte) error {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), pass)
}

//---
// Tokens
//---

// Claims identify the account behind a request.
type Claims struct {
	jwt.StandardClaims
	Admin bool `json:"admin,omitempty"`
}

func newJWT(sub string, admin bool) (string, error) {
	if len(JWT_HMAC_SECRET) == 0 {
		return "", ErrNoSigningKey
	}

	now := time.Now().UTC()
	claims := Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    ENV.JWT_ISSUER,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(JWT_LIFESPAN).Unix(),
			Subject:   sub,
		},
		Admin: admin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return token.SignedString(JWT_HMAC_SECRET)
}

func parseJWT(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return JWT_HMAC_SECRET, nil
	})
	if err != nil {
		if jwterr, ok := err.(*jwt.ValidationError); ok && jwterr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

func claimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsContextKey).(*Claims)
	return claims
}

// tokenFromRequest looks in the query, then the Authorization header, then
// the jwt cookie. Browsers cannot set headers on websocket upgrades.
func tokenFromRequest(r *http.Request) string {
	if token := r.URL.Query().Get("jwt"); token != "" {
		return token
	}

	bearer := r.Header.Get("Authorization")
	if len(bearer) > 7 && strings.ToUpper(bearer[0:6]) == "BEARER" {
		return bearer[7:]
	}

	if cookie, err := r.Cookie("jwt"); err == nil {
		return cookie.Value
	}
	return ""
}

//---
// Payloads
//---

type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (l *LoginPayload) Bind(r *http.Request) error {
	return nil
}

type JWTPayload struct {
	SignedToken string `json:"token"`
	Admin       bool   `json:"admin"`
}

//---
// Views
//---

func Login(w http.ResponseWriter, r *http.Request) {
	data := &LoginPayload{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	var user User
	if err := ENV.DB.One("Email", data.Email, &user); err != nil {
		if err == storm.ErrNotFound {
			render.Render(w, r, ErrNotFound)
			return
		}
		render.Render(w, r, ErrRender(err))
		return
	}

	if err := user.VerifyPassword([]byte(data.Password)); err != nil {
		if err == bcrypt.ErrMismatchedHashAndPassword {
			render.Render(w, r, ErrPermissionDenied(errors.New("Invalid password")))
			return
		}
		render.Render(w, r, ErrRender(err))
		return
	}

	issueToken(w, r, &user)
}

// JWTRefresh re-reads the account so a revoked admin flag or a deleted
// account takes effect on the next refresh.
func JWTRefresh(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())

	var user User
	if err := ENV.DB.One("Email", claims.Subject, &user); err != nil {
		if err == storm.ErrNotFound {
			render.Render(w, r, ErrUnauthorized(ErrUnknownAccount))
			return
		}
		render.Render(w, r, ErrRender(err))
		return
	}

	issueToken(w, r, &user)
}

func issueToken(w http.ResponseWriter, r *http.Request, user *User) {
	tokenString, err := newJWT(user.Email, user.Admin)
	if err != nil {
		render.Render(w, r, ErrRender(err))
		return
	}

	render.JSON(w, r, JWTPayload{SignedToken: tokenString, Admin: user.Admin})
}

//---
// Middleware
//---

func ValidateJWT(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := tokenFromRequest(r)
		if tokenStr == "" {
			render.Render(w, r, ErrUnauthorized(ErrTokenEmpty))
			return
		}

		claims, err := parseJWT(tokenStr)
		if err != nil {
			render.Render(w, r, ErrUnauthorized(err))
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin must sit behind ValidateJWT.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r.Context())
		if claims == nil || !claims.Admin {
			render.Render(w, r, ErrPermissionDenied(ErrNotAdmin))
			return
		}
		next.ServeHTTP(w, r)
	})
}
