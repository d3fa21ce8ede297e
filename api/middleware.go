package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/akashkatakam/vehicle-sales-system/internal/models"
	"github.com/akashkatakam/vehicle-sales-system/internal/utils"
)

// Logger writes one line per request with the caller, route, and how
// long the handler took.
func (app *application) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		app.infoLog.Printf("%s %s %s %s", r.RemoteAddr, r.Method, r.URL.RequestURI(), time.Since(start))
	})
}

// AuthUser verifies the Bearer token and stores its claims on the
// request context; everything behind it can assume a signed-in user.
// When the request names a branch, the claims must cover it.
func (app *application) AuthUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Vary", "Authorization")

		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			app.unauthorized(w, "missing bearer token")
			return
		}

		claims, err := utils.ParseJWT(strings.TrimSpace(token), app.Config.JWT)
		if err != nil {
			app.unauthorized(w, "invalid or expired token")
			return
		}

		if branchID := utils.GetBranchID(r); branchID != "" && !utils.CanAccessBranch(claims, branchID) {
			app.forbidden(w, "no access to branch "+branchID)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.ContextWithClaims(r.Context(), claims)))
	})
}

func (app *application) unauthorized(w http.ResponseWriter, message string) {
	resp := models.Response{
		Error:   true,
		Status:  "unauthorized",
		Message: message,
	}
	utils.WriteJSON(w, http.StatusUnauthorized, resp)
}

func (app *application) forbidden(w http.ResponseWriter, message string) {
	resp := models.Response{
		Error:   true,
		Status:  "forbidden",
		Message: message,
	}
	utils.WriteJSON(w, http.StatusForbidden, resp)
}
