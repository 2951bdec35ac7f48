package middlewarex

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"money_saver/pkg/contextx"
	"money_saver/pkg/errcodes"
	"money_saver/pkg/httpx/reply"
	"money_saver/pkg/logx"
)

var ErrEmptySecret = errors.New("empty signing secret")

// IssueToken signs an HS256 token for subject valid for ttl.
func IssueToken(secret []byte, subject string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", fmt.Errorf("middlewarex.IssueToken: %w", ErrEmptySecret)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("token.SignedString: %w", err)
	}

	return token, nil
}

// BearerAuth accepts requests carrying a valid HS256 token and puts its
// subject into the context as the user id.
func BearerAuth(secret []byte) func(next http.Handler) http.Handler {
	keyFunc := func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}

		return secret, nil
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				reply.CodedError(ctx, w, http.StatusUnauthorized, errcodes.AccessTokenInvalid,
					"missing bearer token", errors.New("no bearer token"))

				return
			}

			token, err := jwt.Parse(raw, keyFunc,
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
				jwt.WithExpirationRequired(),
			)
			if err != nil {
				code := errcodes.AccessTokenInvalid
				if errors.Is(err, jwt.ErrTokenExpired) {
					code = errcodes.AccessTokenExpired
				}

				reply.CodedError(ctx, w, http.StatusUnauthorized, code, "invalid access token", err)

				return
			}

			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				reply.CodedError(ctx, w, http.StatusUnauthorized, errcodes.AccessTokenInvalid,
					"invalid access token", fmt.Errorf("token subject: %w", err))

				return
			}

			ctx = contextx.WithUserID(ctx, contextx.UserID(subject))
			ctx = contextx.WithLogger(ctx, logger(ctx).With(slog.String(logx.FieldUserID, subject)))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
