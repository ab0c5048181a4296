package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/dmaidana/toolrelay/internal/infra/config"
	pkgauth "github.com/dmaidana/toolrelay/pkg/auth"
)

// TokenHandler exchanges the admin token for a short-lived JWT.
type TokenHandler struct {
	auth config.Auth
}

func NewTokenHandler(auth config.Auth) *TokenHandler {
	return &TokenHandler{auth: auth}
}

type tokenRequest struct {
	Token string `json:"token"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// Issue handles POST /auth/token. The plaintext admin token is verified
// against the configured bcrypt hash; a match yields an HS256 JWT good for
// pkgauth.DefaultTokenTTL.
func (h *TokenHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	if !pkgauth.VerifyToken(h.auth.AdminTokenHash, req.Token) {
		writeError(w, http.StatusUnauthorized, "invalid admin token")
		return
	}

	signed, err := pkgauth.GenerateJWT([]byte(h.auth.Secret), "admin", pkgauth.DefaultTokenTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		Token:     signed,
		ExpiresIn: int64(pkgauth.DefaultTokenTTL.Seconds()),
	})
}
