package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ImVadimush/brawl-stars-tournament-bot/models"
	"github.com/ImVadimush/brawl-stars-tournament-bot/services"
)

type contextKey string

const playerContextKey contextKey = "player"

// PlayerFromContext достаёт личность игрока, положенную Authenticate.
func PlayerFromContext(ctx context.Context) (*services.AuthenticatedPlayer, bool) {
	player, ok := ctx.Value(playerContextKey).(*services.AuthenticatedPlayer)
	return player, ok
}

// Authenticate проверяет bearer-токен и кладёт игрока в контекст запроса.
func Authenticate(auth services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				writeAuthError(w, http.StatusUnauthorized, "missing or malformed authorization header")
				return
			}

			player, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), playerContextKey, player)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole пропускает только игроков с ролью не ниже указанной.
// Должен стоять после Authenticate.
func RequireRole(min models.PlayerRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			player, ok := PlayerFromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if !player.Role.AtLeast(min) {
				writeAuthError(w, http.StatusForbidden, "insufficient role for this operation")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"error": "` + message + `"}`))
}
