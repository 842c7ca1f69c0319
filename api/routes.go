package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes registers the API surface. Literal sub-paths (/projects/my,
// /projects/favorites/my) are safe next to /projects/{projectID} because chi
// matches static segments before parameters.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Public reads; a valid credential enriches the view, an invalid or
		// absent one just means an anonymous requester.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.optional)

			r.Get("/projects", handlers.projectHandler.listProjects())
			r.Get("/projects/{projectID}", handlers.projectHandler.getProject())
			r.Get("/projects/{projectID}/comments", handlers.commentHandler.listComments())
		})

		// Everything below requires a verified identity.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.require)

			r.Get("/profile", handlers.profileHandler.getProfile())
			r.Put("/profile", handlers.profileHandler.updateProfile())

			r.Get("/projects/my", handlers.projectHandler.myProjects())
			r.Get("/projects/favorites/my", handlers.projectHandler.myFavorites())
			r.Post("/projects", handlers.projectHandler.createProject())
			r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
			r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())

			r.Post("/projects/{projectID}/like", handlers.projectHandler.toggleLike())
			r.Post("/projects/{projectID}/favorite", handlers.projectHandler.toggleFavorite())
			r.Post("/projects/{projectID}/rate", handlers.projectHandler.rateProject())

			r.Post("/projects/{projectID}/comments", handlers.commentHandler.addComment())
			r.Delete("/projects/{projectID}/comments/{commentID}", handlers.commentHandler.deleteComment())
		})
	})
}
