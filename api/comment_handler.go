package api

import (
	"encoding/json"
	"net/http"
	"sort"
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

type commentHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  database.ProjectStore
}

func newCommentHandler(projects database.ProjectStore) commentHandler {
	logger := log.With().Str("handlerName", "commentHandler").Logger()

	return commentHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
	}
}

type commentCollection struct {
	Comments []models.Comment `json:"comments"`
	Total    int              `json:"total"`
}

// loadProject parses {projectID} and fetches the project, writing the error
// response itself when the request cannot proceed.
func (h commentHandler) loadProject(w http.ResponseWriter, r *http.Request) *models.Project {
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

// listComments returns a project's comments, most recent first. Storage keeps
// append order; the sort here is presentation only.
func (h commentHandler) listComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project := h.loadProject(w, r)
		if project == nil {
			return
		}

		comments := make([]models.Comment, len(project.Comments))
		copy(comments, project.Comments)
		sort.SliceStable(comments, func(i, j int) bool {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		})

		h.responder.WriteJSON(w, commentCollection{Comments: comments, Total: len(comments)})
	}
}

// addComment appends a comment authored by the verified identity. Text is
// stored exactly as provided; the only boundary rule is that it must not be
// empty.
func (h commentHandler) addComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := ctxIdentity(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var input struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode comment request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("comment", err))
			return
		}
		if input.Text == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("text"))
			return
		}

		project := h.loadProject(w, r)
		if project == nil {
			return
		}

		comment := services.NewComment(ident.SubjectID, ident.Email, input.Text, time.Now().UTC())
		project.Comments = append(project.Comments, comment)

		if err := h.projects.Save(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, comment)
	}
}

// deleteComment removes a comment; allowed for the comment author and the
// project owner, 403 for anybody else, 404 when the comment does not exist.
func (h commentHandler) deleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requesterID := ctxSubjectID(r.Context())

		commentIDStr := chi.URLParam(r, "commentID")
		commentID, err := uuid.Parse(commentIDStr)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid commentID"))
			return
		}

		project := h.loadProject(w, r)
		if project == nil {
			return
		}

		remaining, comment, found := services.RemoveComment(project.Comments, commentID)
		if !found {
			h.responder.WriteError(w, errs.NewNotFoundError("comment not found"))
			return
		}
		if !services.CanDeleteComment(project, comment, requesterID) {
			h.responder.WriteError(w, errs.NewForbiddenError("only the comment author or project owner can delete it"))
			return
		}

		project.Comments = remaining
		if err := h.projects.Save(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "comment deleted successfully",
		})
	}
}
