package httpapi

import (
	"net/http"

	"distributor-be/internal/middleware"
	"distributor-be/internal/user"

	"github.com/go-chi/chi/v5"
)

// NewRouter wires the REST surface. Auth runs globally and only
// attaches identity; per-route guards decide who gets in.
func NewRouter(users *UserHandler, products *ProductHandler, orders *OrderHandler, wishlists *WishlistHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.Auth)
	r.Use(middleware.RateLimit)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", users.Register)
		r.Post("/verify-otp", users.VerifyOTP)
		r.Post("/login", users.Login)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", products.List)
		r.Get("/{id}", products.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(user.RoleAdmin))
			r.Post("/", products.Create)
			r.Put("/{id}", products.Update)
		})
	})

	r.Route("/orders", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/", orders.Place)
			r.Get("/myorders", orders.ListMine)
			r.Get("/{id}", orders.Get)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(user.RoleAdmin))
			r.Get("/", orders.ListAll)
			r.Put("/{id}/status", orders.UpdateStatus)
		})
	})

	r.Route("/wishlist", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", wishlists.List)
		r.Post("/", wishlists.Add)
		r.Delete("/{id}", wishlists.Remove)
	})

	return r
}
