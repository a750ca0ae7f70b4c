package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"fit1-backend/internal/apperr"
	"fit1-backend/internal/identity"
	"fit1-backend/internal/middleware"
	"fit1-backend/internal/notify"
	"fit1-backend/internal/session"
)

type AuthConfig struct {
	AppURL       string
	CookieSecure bool
}

type AuthHandler struct {
	provider identity.Provider
	users    UserStore
	issuer   SessionIssuer
	resolver middleware.IdentityResolver
	revoker  Revoker
	notifier notify.Notifier
	cfg      AuthConfig
}

func NewAuthHandler(
	provider identity.Provider,
	users UserStore,
	issuer SessionIssuer,
	resolver middleware.IdentityResolver,
	revoker Revoker,
	notifier notify.Notifier,
	cfg AuthConfig,
) *AuthHandler {
	return &AuthHandler{
		provider: provider,
		users:    users,
		issuer:   issuer,
		resolver: resolver,
		revoker:  revoker,
		notifier: notifier,
		cfg:      cfg,
	}
}

// --- GET /auth/sign-in ---

func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	state := safeReturnPath(r.URL.Query().Get("returnTo"))
	target, err := h.provider.AuthorizationURL(state)
	if err != nil {
		log.Printf("Error building sign-in URL: %v", err)
		writeError(w, apperr.NewHTTPError(http.StatusServiceUnavailable, "sign-in is unavailable"))
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// --- GET /auth/callback ---

func (h *AuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, apperr.NewHTTPError(http.StatusBadRequest, "authorization code is required"))
		return
	}

	auth, err := h.provider.Authenticate(r.Context(), code)
	if err != nil {
		log.Printf("Error exchanging authorization code: %v", err)
		writeError(w, apperr.NewHTTPError(http.StatusUnauthorized, "authentication failed"))
		return
	}

	user, created, err := h.users.UpsertFromProvider(r.Context(), auth.User)
	if err != nil {
		writeError(w, err)
		return
	}

	token, _, err := h.issuer.Issue(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	maxAge := int(session.TTL.Seconds())
	h.setCookie(w, session.CookieName, token, maxAge)
	if auth.AccessToken != "" {
		h.setCookie(w, session.AccessTokenCookie, auth.AccessToken, maxAge)
	}
	if auth.RefreshToken != "" {
		h.setCookie(w, session.RefreshCookie, auth.RefreshToken, maxAge)
	}

	if created {
		// Fire the welcome email in a background goroutine (non-blocking)
		msg := notify.WelcomeMessage(user.Name, user.Email, h.cfg.AppURL)
		go func() {
			if err := h.notifier.Send(context.Background(), msg); err != nil {
				log.Printf("Error sending welcome email: %v", err)
			}
		}()
		log.Printf("👤 New user signed up: %s", user.ID.Hex())
	}

	http.Redirect(w, r, h.cfg.AppURL+safeReturnPath(r.URL.Query().Get("state")), http.StatusFound)
}

// --- GET /auth/sign-out ---

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if id, ok := h.resolver.Resolve(r.Context(), r.Header.Get("Cookie")); ok && h.revoker != nil {
		if err := h.revoker.Revoke(r.Context(), id.TokenID, id.ExpiresAt); err != nil {
			log.Printf("⚠️  Failed to revoke session: %v", err)
		}
	}

	var sid string
	if c, err := r.Cookie(session.AccessTokenCookie); err == nil {
		sid = session.ProviderSessionID(c.Value)
	}

	for _, name := range []string{session.CookieName, session.AccessTokenCookie, session.RefreshCookie} {
		h.setCookie(w, name, "", -1)
	}

	target := h.cfg.AppURL + "/"
	if sid != "" {
		if logoutURL, err := h.provider.LogoutURL(sid); err == nil {
			target = logoutURL
		} else {
			log.Printf("Error building logout URL: %v", err)
		}
	}
	http.Redirect(w, r, target, http.StatusFound)
}

func (h *AuthHandler) setCookie(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

// safeReturnPath only allows same-site absolute paths.
func safeReturnPath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, `\`) {
		return "/"
	}
	return p
}
