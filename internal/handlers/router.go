package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers groups every route handler for mounting on a router.
type Handlers struct {
	Auth      *AuthHandler
	User      *UserHandler
	Nutrition *NutritionHandler
	Water     *WaterHandler
	Weight    *WeightHandler
	Sleep     *SleepHandler
}

// Mount registers public routes and puts every domain route behind requireSession.
func (h Handlers) Mount(r chi.Router, requireSession func(http.Handler) http.Handler) {
	r.Get("/health", Health)

	// Public routes (no session required)
	r.Get("/auth/sign-in", h.Auth.SignIn)
	r.Get("/auth/callback", h.Auth.Callback)
	r.Get("/auth/sign-out", h.Auth.SignOut)

	r.Group(func(r chi.Router) {
		r.Use(requireSession)

		r.Get("/user/details", h.User.GetDetails)
		r.Put("/user/details", h.User.PutDetails)

		r.Post("/nutrition/analyze", h.Nutrition.Analyze)
		r.Get("/nutrition/history", h.Nutrition.History)
		r.Get("/nutrition/recent", h.Nutrition.Recent)
		r.Get("/nutrition/stats", h.Nutrition.Stats)

		r.Post("/water/track", h.Water.Track)
		r.Get("/water/history", h.Water.History)

		r.Post("/weight/track", h.Weight.Track)
		r.Get("/weight/history", h.Weight.History)

		r.Post("/sleep/track", h.Sleep.Track)
		r.Get("/sleep/history", h.Sleep.History)
	})
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "fit1-backend"})
}
