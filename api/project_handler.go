package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/project-showcase-backend/database"
	"github.com/rpupo63/project-showcase-backend/errs"
	"github.com/rpupo63/project-showcase-backend/models"
	"github.com/rpupo63/project-showcase-backend/services"
)

const (
	defaultPage  = 1
	defaultLimit = 9
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	profiles  database.ProfileStore
	projects  database.ProjectStore
}

func newProjectHandler(profiles database.ProfileStore, projects database.ProjectStore) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		profiles:  profiles,
		projects:  projects,
	}
}

// projectPage is the paginated list response.
type projectPage struct {
	Projects      []services.ProjectView `json:"projects"`
	CurrentPage   int                    `json:"currentPage"`
	TotalPages    int                    `json:"totalPages"`
	TotalProjects int64                  `json:"totalProjects"`
}

// projectCollection wraps non-paginated project lists (my projects, favorites).
type projectCollection struct {
	Projects []services.ProjectView `json:"projects"`
	Total    int                    `json:"total"`
}

type projectInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	GithubLink  string   `json:"githubLink"`
	LiveDemo    string   `json:"liveDemo"`
}

// loadProject parses {projectID} and fetches the project. Writes the error
// response itself and returns nil when the request cannot proceed.
func (h projectHandler) loadProject(w http.ResponseWriter, r *http.Request) *models.Project {
	projectIDStr := chi.URLParam(r, "projectID")
	if projectIDStr == "" {
		h.responder.WriteError(w, errs.NewBadRequestError("missing projectID"))
		return nil
	}

	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
		return nil
	}

	project, err := h.projects.FindByID(projectID)
	if err != nil {
		h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
		return nil
	}
	if project == nil {
		h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
		return nil
	}
	return project
}

// listProjects returns one page of projects, newest first. Anonymous
// requesters get zeroed per-user fields.
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := queryInt(r, "page", defaultPage)
		limit := queryInt(r, "limit", defaultLimit)
		if page < 1 {
			page = defaultPage
		}
		if limit < 1 {
			limit = defaultLimit
		}

		offset := (page - 1) * limit
		projects, total, err := h.projects.FindPage(offset, limit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		totalPages := int((total + int64(limit) - 1) / int64(limit))

		h.responder.WriteJSON(w, projectPage{
			Projects:      services.MaterializeAll(projects, ctxSubjectID(r.Context())),
			CurrentPage:   page,
			TotalPages:    totalPages,
			TotalProjects: total,
		})
	}
}

// myProjects lists the requester's own projects. Owners always see their own
// work as liked; that is the documented product behavior of this view.
func (h projectHandler) myProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requesterID := ctxSubjectID(r.Context())

		projects, err := h.projects.FindByOwner(requesterID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		views := make([]services.ProjectView, 0, len(projects))
		for _, project := range projects {
			views = append(views, services.MaterializeOwned(project, requesterID))
		}

		h.responder.WriteJSON(w, projectCollection{Projects: views, Total: len(views)})
	}
}

// myFavorites lists the projects the requester has favorited, newest first.
func (h projectHandler) myFavorites() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requesterID := ctxSubjectID(r.Context())

		projects, err := h.projects.FindByFavoritedBy(requesterID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		h.responder.WriteJSON(w, projectCollection{
			Projects: services.MaterializeAll(projects, requesterID),
			Total:    len(projects),
		})
	}
}

// getProject returns a single project view; 404 when the id does not resolve.
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project := h.loadProject(w, r)
		if project == nil {
			return
		}

		h.responder.WriteJSON(w, services.Materialize(project, ctxSubjectID(r.Context())))
	}
}

// createProject creates a project for the requester. The profile must be
// complete; authorName and authorBio snapshot the profile at this instant and
// are never synced afterwards.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := ctxIdentity(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		profile, err := h.profiles.FindBySubjectID(ident.SubjectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "profile", err))
			return
		}
		if !services.CanCreateProject(profile) {
			h.responder.WriteError(w, errs.NewProfileIncompleteError())
			return
		}

		var input projectInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project", err))
			return
		}
		if input.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}

		project := &models.Project{
			ID:          uuid.New(),
			Title:       input.Title,
			Description: input.Description,
			Tags:        input.Tags,
			GithubLink:  input.GithubLink,
			LiveDemo:    input.LiveDemo,
			OwnerID:     ident.SubjectID,
			AuthorName:  profile.Name,
			AuthorBio:   profile.Bio,
			LikedBy:     []string{},
			FavoritedBy: []string{},
			Comments:    []models.Comment{},
			Ratings:     []models.Rating{},
			CreatedAt:   time.Now().UTC(),
		}

		if err := h.projects.Add(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, services.Materialize(project, ident.SubjectID))
	}
}

// updateProject edits title/description/tags/links. Owner only; ownership and
// the author snapshot are immutable.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requesterID := ctxSubjectID(r.Context())

		project := h.loadProject(w, r)
		if project == nil {
			return
		}

		if !services.CanEditProject(project, requesterID) {
			h.responder.WriteError(w, errs.NewForbiddenError("only the project owner can edit it"))
			return
		}

		var input projectInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode project request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("project", err))
			return
		}
		if input.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}

		project.Title = input.Title
		project.Description = input.Description
		project.Tags = input.Tags
		project.GithubLink = input.GithubLink
		project.LiveDemo = input.LiveDemo

		if err := h.projects.Save(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"message": "project updated successfully",
			"project": services.Materialize(project, requesterID),
		})
	}
}

// deleteProject removes a project. Owner only.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requesterID := ctxSubjectID(r.Context())

		project := h.loadProject(w, r)
		if project == nil {
			return
		}

		if !services.CanEditProject(project, requesterID) {
			h.responder.WriteError(w, errs.NewForbiddenError("only the project owner can delete it"))
			return
		}

		if err := h.projects.Delete(project.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

// toggleLike flips the requester's like on a project and returns the new
// membership and count.
func (h projectHandler) toggleLike() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requesterID := ctxSubjectID(r.Context())

		project := h.loadProject(w, r)
		if project == nil {
			return
		}

		likedBy, liked := services.ToggleMembership(project.LikedBy, requesterID)
		project.LikedBy = likedBy

		if err := h.projects.Save(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"liked": liked,
			"likes": len(likedBy),
		})
	}
}

// toggleFavorite flips the requester's favorite on a project.
func (h projectHandler) toggleFavorite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requesterID := ctxSubjectID(r.Context())

		project := h.loadProject(w, r)
		if project == nil {
			return
		}

		favoritedBy, favorited := services.ToggleMembership(project.FavoritedBy, requesterID)
		project.FavoritedBy = favoritedBy

		if err := h.projects.Save(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"favorited": favorited,
		})
	}
}

// rateProject upserts the requester's rating and returns the recomputed
// average along with the requester's value.
func (h projectHandler) rateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requesterID := ctxSubjectID(r.Context())

		var input struct {
			Value int `json:"value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode rating request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("rating", err))
			return
		}

		project := h.loadProject(w, r)
		if project == nil {
			return
		}

		ratings, err := services.ApplyRating(project.Ratings, requesterID, input.Value)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		project.Ratings = ratings

		if err := h.projects.Save(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]any{
			"averageRating": services.AverageRating(project.Ratings),
			"userRating":    input.Value,
		})
	}
}

// queryInt parses an integer query parameter, falling back on the default for
// absent or unparseable values.
func queryInt(r *http.Request, key string, defaultValue int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
