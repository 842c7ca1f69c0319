package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/project-showcase-backend/database"
	"github.com/rpupo63/project-showcase-backend/errs"
	"github.com/rpupo63/project-showcase-backend/models"
)

type profileHandler struct {
	responder Responder
	logger    zerolog.Logger
	profiles  database.ProfileStore
}

func newProfileHandler(profiles database.ProfileStore) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return profileHandler{
		responder: NewResponder(logger),
		logger:    logger,
		profiles:  profiles,
	}
}

type updateProfileRequest struct {
	Name string `json:"name"`
	Bio  string `json:"bio"`
}

// getProfile returns the requester's profile, creating an empty one on first
// authenticated fetch.
func (h profileHandler) getProfile() http.HandlerFunc {
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

		if profile == nil {
			profile = &models.Profile{
				SubjectID: ident.SubjectID,
				Email:     ident.Email,
			}
			profile.RecomputeComplete()
			if err := h.profiles.Save(profile); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("create", "profile", err))
				return
			}
		}

		h.responder.WriteJSON(w, profile)
	}
}

// updateProfile sets name and bio and recomputes the completeness flag.
func (h profileHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ident, ok := ctxIdentity(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}

		var input updateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode profile request body")
			h.responder.WriteError(w, errs.NewMalformedPayloadError("profile", err))
			return
		}

		profile, err := h.profiles.FindBySubjectID(ident.SubjectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "profile", err))
			return
		}
		if profile == nil {
			profile = &models.Profile{
				SubjectID: ident.SubjectID,
				Email:     ident.Email,
			}
		}

		profile.Name = input.Name
		profile.Bio = input.Bio
		profile.RecomputeComplete()

		if err := h.profiles.Save(profile); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "profile", err))
			return
		}

		h.responder.WriteJSON(w, profile)
	}
}
