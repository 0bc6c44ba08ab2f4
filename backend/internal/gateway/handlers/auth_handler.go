package handlers

import (
	"net/http"

	"studysync/backend/internal/auth"
	"studysync/backend/internal/gateway/util"
)

// AuthHandler exposes the caller's identity. Tokens themselves are issued by
// the identity provider (or minted with studysyncctl in development).
type AuthHandler struct{}

// ValidateToken handles GET /auth/validate
// It runs behind AuthMiddleware, so reaching it means the token is valid.
func (h *AuthHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		// auth disabled
		util.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"valid":   true,
		})
		return
	}

	resp := map[string]interface{}{
		"success": true,
		"valid":   true,
		"user_id": claims.UserID,
		"role":    claims.Role,
	}
	if claims.ExpiresAt != nil {
		resp["expires_at"] = claims.ExpiresAt.Time
	}
	util.WriteJSON(w, http.StatusOK, resp)
}
