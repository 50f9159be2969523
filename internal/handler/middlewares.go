package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/sdh-lhota/duty-roster/backend/internal/domain"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("request handled", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // slog would mangle the multi-line trace
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// IdentityClaims is the session token minted by the upstream identity
// provider. Legacy tokens carry a single role field instead of the array.
type IdentityClaims struct {
	Name     string   `json:"name"`
	Roles    []string `json:"roles,omitempty"`
	Role     string   `json:"role,omitempty"`
	Approved bool     `json:"approved"`
	Disabled bool     `json:"disabled"`
	jwt.RegisteredClaims
}

func (h *Handler) identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("__sdh_duty_roster_token")
		if err != nil {
			switch {
			case errors.Is(err, http.ErrNoCookie):
				h.errorResponse(w, r, "not signed in")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		tokenString := cookie.Value
		claims := &IdentityClaims{}
		_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(h.config.JWT.Secret), nil
		})
		if err != nil {
			h.errorResponse(w, r, "invalid session token")
			return
		}

		// roles are normalized once at the boundary; the engine only ever
		// sees the canonical set
		ident := &domain.Identity{
			UID:      claims.Subject,
			Name:     claims.Name,
			Roles:    domain.NormalizeRoles(claims.Roles, claims.Role),
			Approved: claims.Approved,
			Disabled: claims.Disabled,
		}

		ctx := context.WithValue(r.Context(), IdentityCtx, ident)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) rosterMonth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "month")
		year, month, err := domain.ParseMonthID(id)
		if err != nil {
			h.errorResponse(w, r, "invalid month, expected YYYY-MM")
			return
		}

		ctx := context.WithValue(r.Context(), MonthCtx, &monthParam{ID: id, Year: year, Month: month})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) rosterDay(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		month := r.Context().Value(MonthCtx).(*monthParam)

		day, err := strconv.Atoi(chi.URLParam(r, "day"))
		if err != nil || day < 1 || day > domain.DaysInMonth(month.Year, month.Month) {
			h.errorResponse(w, r, "invalid day for this month")
			return
		}

		ctx := context.WithValue(r.Context(), DayCtx, day)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
