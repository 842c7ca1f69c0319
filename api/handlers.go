package api

import (
	"github.com/rpupo63/project-showcase-backend/database"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	profileHandler profileHandler
	projectHandler projectHandler
	commentHandler commentHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(profiles database.ProfileStore, projects database.ProjectStore) *routeHandlers {
	return &routeHandlers{
		profileHandler: newProfileHandler(profiles),
		projectHandler: newProjectHandler(profiles, projects),
		commentHandler: newCommentHandler(projects),
	}
}
