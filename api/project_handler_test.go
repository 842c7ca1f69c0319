package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/project-showcase-backend/models"
	"github.com/rpupo63/project-showcase-backend/services"
)

func seedProject(t *testing.T, projects *mockProjectStore, owner, title string, createdAt time.Time) *models.Project {
	t.Helper()
	project := &models.Project{
		ID:          uuid.New(),
		Title:       title,
		Description: "a project",
		Tags:        []string{"go"},
		OwnerID:     owner,
		AuthorName:  "Owner of " + title,
		AuthorBio:   "bio",
		LikedBy:     []string{},
		FavoritedBy: []string{},
		Comments:    []models.Comment{},
		Ratings:     []models.Rating{},
		CreatedAt:   createdAt,
	}
	require.NoError(t, projects.Add(project))
	return project
}

func seedProfile(t *testing.T, profiles *mockProfileStore, subjectID, name, bio string) {
	t.Helper()
	profile := &models.Profile{
		SubjectID: subjectID,
		Email:     subjectID + "@example.com",
		Name:      name,
		Bio:       bio,
	}
	profile.RecomputeComplete()
	require.NoError(t, profiles.Save(profile))
}

func decodeJSON[T any](t *testing.T, body []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestListProjects(t *testing.T) {
	t.Run("pagination with 20 projects", func(t *testing.T) {
		router, _, projects := newTestRouter(t)
		base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		for i := 0; i < 20; i++ {
			seedProject(t, projects, "alice", fmt.Sprintf("project-%02d", i), base.Add(time.Duration(i)*time.Minute))
		}

		rr := doRequest(t, router, http.MethodGet, "/projects?page=2&limit=9", "", "")
		require.Equal(t, http.StatusOK, rr.Code)

		page := decodeJSON[projectPage](t, rr.Body.Bytes())
		assert.Equal(t, 2, page.CurrentPage)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, int64(20), page.TotalProjects)
		require.Len(t, page.Projects, 9)
		// Newest first: page 2 holds the 10th through 18th newest.
		assert.Equal(t, "project-10", page.Projects[0].Title)
		assert.Equal(t, "project-02", page.Projects[8].Title)
	})

	t.Run("defaults page=1 limit=9", func(t *testing.T) {
		router, _, projects := newTestRouter(t)
		base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		for i := 0; i < 12; i++ {
			seedProject(t, projects, "alice", fmt.Sprintf("project-%02d", i), base.Add(time.Duration(i)*time.Minute))
		}

		rr := doRequest(t, router, http.MethodGet, "/projects", "", "")
		require.Equal(t, http.StatusOK, rr.Code)

		page := decodeJSON[projectPage](t, rr.Body.Bytes())
		assert.Equal(t, 1, page.CurrentPage)
		assert.Equal(t, 2, page.TotalPages)
		require.Len(t, page.Projects, 9)
		assert.Equal(t, "project-11", page.Projects[0].Title)
	})

	t.Run("authenticated requester gets per-user fields", func(t *testing.T) {
		router, _, projects := newTestRouter(t)
		project := seedProject(t, projects, "alice", "liked one", time.Now())
		project.LikedBy = []string{"bob"}
		require.NoError(t, projects.Save(project))

		rr := doRequest(t, router, http.MethodGet, "/projects", "bob-token", "")
		require.Equal(t, http.StatusOK, rr.Code)

		page := decodeJSON[projectPage](t, rr.Body.Bytes())
		require.Len(t, page.Projects, 1)
		assert.True(t, page.Projects[0].LikedByCurrentUser)
	})

	t.Run("invalid credential is treated as anonymous", func(t *testing.T) {
		router, _, projects := newTestRouter(t)
		seedProject(t, projects, "alice", "public", time.Now())

		rr := doRequest(t, router, http.MethodGet, "/projects", "bogus-token", "")
		require.Equal(t, http.StatusOK, rr.Code)

		page := decodeJSON[projectPage](t, rr.Body.Bytes())
		require.Len(t, page.Projects, 1)
		assert.False(t, page.Projects[0].LikedByCurrentUser)
	})
}

func TestGetProject(t *testing.T) {
	router, _, projects := newTestRouter(t)
	project := seedProject(t, projects, "alice", "solo", time.Now())

	t.Run("found", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/projects/"+project.ID.String(), "", "")
		require.Equal(t, http.StatusOK, rr.Code)

		view := decodeJSON[services.ProjectView](t, rr.Body.Bytes())
		assert.Equal(t, "solo", view.Title)
		assert.Equal(t, "alice", view.OwnerID)
	})

	t.Run("missing project is 404", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/projects/"+uuid.NewString(), "", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/projects/not-a-uuid", "", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestMyProjects(t *testing.T) {
	router, _, projects := newTestRouter(t)
	project := seedProject(t, projects, "alice", "mine", time.Now())
	seedProject(t, projects, "bob", "not mine", time.Now())

	t.Run("requires credential", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/projects/my", "", "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("owner view forces the like flag", func(t *testing.T) {
		// Alice never liked her own project.
		assert.NotContains(t, project.LikedBy, "alice")

		rr := doRequest(t, router, http.MethodGet, "/projects/my", "alice-token", "")
		require.Equal(t, http.StatusOK, rr.Code)

		collection := decodeJSON[projectCollection](t, rr.Body.Bytes())
		require.Len(t, collection.Projects, 1)
		assert.Equal(t, "mine", collection.Projects[0].Title)
		assert.True(t, collection.Projects[0].LikedByCurrentUser)
		assert.Equal(t, 0, collection.Projects[0].Likes)
	})
}

func TestCreateProject(t *testing.T) {
	body := `{"title":"new project","description":"desc","tags":["go"],"githubLink":"https://github.com/x/y","liveDemo":"https://demo"}`

	t.Run("requires credential", func(t *testing.T) {
		router, _, _ := newTestRouter(t)
		rr := doRequest(t, router, http.MethodPost, "/projects", "", body)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("incomplete profile is forbidden", func(t *testing.T) {
		router, profiles, _ := newTestRouter(t)
		seedProfile(t, profiles, "alice", "Alice", "   ")

		rr := doRequest(t, router, http.MethodPost, "/projects", "alice-token", body)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("missing profile is forbidden", func(t *testing.T) {
		router, _, _ := newTestRouter(t)
		rr := doRequest(t, router, http.MethodPost, "/projects", "alice-token", body)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("complete profile creates with author snapshot", func(t *testing.T) {
		router, profiles, projects := newTestRouter(t)
		seedProfile(t, profiles, "alice", "Alice", "builds engines")

		rr := doRequest(t, router, http.MethodPost, "/projects", "alice-token", body)
		require.Equal(t, http.StatusCreated, rr.Code)

		view := decodeJSON[services.ProjectView](t, rr.Body.Bytes())
		assert.Equal(t, "new project", view.Title)
		assert.Equal(t, "alice", view.OwnerID)
		assert.Equal(t, "Alice", view.AuthorName)
		assert.Equal(t, "builds engines", view.AuthorBio)

		// Later profile edits do not retroactively change the snapshot.
		rr = doRequest(t, router, http.MethodPut, "/profile", "alice-token", `{"name":"Alice Renamed","bio":"new bio"}`)
		require.Equal(t, http.StatusOK, rr.Code)

		stored, err := projects.FindByID(view.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "Alice", stored.AuthorName)
		assert.Equal(t, "builds engines", stored.AuthorBio)
	})

	t.Run("title is required", func(t *testing.T) {
		router, profiles, _ := newTestRouter(t)
		seedProfile(t, profiles, "alice", "Alice", "builds engines")

		rr := doRequest(t, router, http.MethodPost, "/projects", "alice-token", `{"description":"no title"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUpdateProject(t *testing.T) {
	body := `{"title":"renamed","description":"updated","tags":["go","api"],"githubLink":"https://github.com/x/z","liveDemo":""}`

	t.Run("requires credential", func(t *testing.T) {
		router, _, projects := newTestRouter(t)
		project := seedProject(t, projects, "alice", "original", time.Now())

		rr := doRequest(t, router, http.MethodPut, "/projects/"+project.ID.String(), "", body)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("missing project is 404", func(t *testing.T) {
		router, _, _ := newTestRouter(t)
		rr := doRequest(t, router, http.MethodPut, "/projects/"+uuid.NewString(), "bob-token", body)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		router, _, projects := newTestRouter(t)
		project := seedProject(t, projects, "alice", "original", time.Now())

		rr := doRequest(t, router, http.MethodPut, "/projects/"+project.ID.String(), "bob-token", body)
		assert.Equal(t, http.StatusForbidden, rr.Code)

		stored, err := projects.FindByID(project.ID)
		require.NoError(t, err)
		assert.Equal(t, "original", stored.Title)
	})

	t.Run("owner update persists", func(t *testing.T) {
		router, _, projects := newTestRouter(t)
		project := seedProject(t, projects, "alice", "original", time.Now())

		rr := doRequest(t, router, http.MethodPut, "/projects/"+project.ID.String(), "alice-token", body)
		require.Equal(t, http.StatusOK, rr.Code)

		var response struct {
			Message string               `json:"message"`
			Project services.ProjectView `json:"project"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.NotEmpty(t, response.Message)
		assert.Equal(t, "renamed", response.Project.Title)

		stored, err := projects.FindByID(project.ID)
		require.NoError(t, err)
		assert.Equal(t, "renamed", stored.Title)
		assert.Equal(t, "updated", stored.Description)
		assert.Equal(t, []string{"go", "api"}, []string(stored.Tags))
		assert.Equal(t, "alice", stored.OwnerID, "ownership never changes")
	})
}

func TestDeleteProject(t *testing.T) {
	t.Run("non-owner is forbidden", func(t *testing.T) {
		router, _, projects := newTestRouter(t)
		project := seedProject(t, projects, "alice", "keep me", time.Now())

		rr := doRequest(t, router, http.MethodDelete, "/projects/"+project.ID.String(), "bob-token", "")
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("owner delete removes the project", func(t *testing.T) {
		router, _, projects := newTestRouter(t)
		project := seedProject(t, projects, "alice", "temporary", time.Now())

		rr := doRequest(t, router, http.MethodDelete, "/projects/"+project.ID.String(), "alice-token", "")
		require.Equal(t, http.StatusOK, rr.Code)

		rr = doRequest(t, router, http.MethodGet, "/projects/"+project.ID.String(), "", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestToggleLike(t *testing.T) {
	t.Run("requires credential", func(t *testing.T) {
		router, _, projects := newTestRouter(t)
		project := seedProject(t, projects, "alice", "likeable", time.Now())

		rr := doRequest(t, router, http.MethodPost, "/projects/"+project.ID.String()+"/like", "", "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("missing project is 404", func(t *testing.T) {
		router, _, _ := newTestRouter(t)
		rr := doRequest(t, router, http.MethodPost, "/projects/"+uuid.NewString()+"/like", "bob-token", "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("double toggle restores the original state", func(t *testing.T) {
		router, _, projects := newTestRouter(t)
		project := seedProject(t, projects, "alice", "likeable", time.Now())
		path := "/projects/" + project.ID.String() + "/like"

		rr := doRequest(t, router, http.MethodPost, path, "bob-token", "")
		require.Equal(t, http.StatusOK, rr.Code)
		first := decodeJSON[map[string]any](t, rr.Body.Bytes())
		assert.Equal(t, true, first["liked"])
		assert.Equal(t, float64(1), first["likes"])

		rr = doRequest(t, router, http.MethodPost, path, "bob-token", "")
		require.Equal(t, http.StatusOK, rr.Code)
		second := decodeJSON[map[string]any](t, rr.Body.Bytes())
		assert.Equal(t, false, second["liked"])
		assert.Equal(t, float64(0), second["likes"])

		stored, err := projects.FindByID(project.ID)
		require.NoError(t, err)
		assert.Empty(t, stored.LikedBy)
	})
}

func TestToggleFavoriteAndMyFavorites(t *testing.T) {
	router, _, projects := newTestRouter(t)
	project := seedProject(t, projects, "alice", "favoritable", time.Now())
	path := "/projects/" + project.ID.String() + "/favorite"

	t.Run("favorites list requires credential", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodGet, "/projects/favorites/my", "", "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("favorite then list then unfavorite", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodPost, path, "bob-token", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, true, decodeJSON[map[string]any](t, rr.Body.Bytes())["favorited"])

		rr = doRequest(t, router, http.MethodGet, "/projects/favorites/my", "bob-token", "")
		require.Equal(t, http.StatusOK, rr.Code)
		collection := decodeJSON[projectCollection](t, rr.Body.Bytes())
		require.Len(t, collection.Projects, 1)
		assert.Equal(t, "favoritable", collection.Projects[0].Title)
		assert.True(t, collection.Projects[0].FavoritedByCurrentUser)

		rr = doRequest(t, router, http.MethodPost, path, "bob-token", "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, false, decodeJSON[map[string]any](t, rr.Body.Bytes())["favorited"])

		rr = doRequest(t, router, http.MethodGet, "/projects/favorites/my", "bob-token", "")
		require.Equal(t, http.StatusOK, rr.Code)
		collection = decodeJSON[projectCollection](t, rr.Body.Bytes())
		assert.Empty(t, collection.Projects)
	})
}

func TestRateProject(t *testing.T) {
	t.Run("requires credential", func(t *testing.T) {
		router, _, projects := newTestRouter(t)
		project := seedProject(t, projects, "alice", "rateable", time.Now())

		rr := doRequest(t, router, http.MethodPost, "/projects/"+project.ID.String()+"/rate", "", `{"value":3}`)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("out-of-range value is 400", func(t *testing.T) {
		router, _, projects := newTestRouter(t)
		project := seedProject(t, projects, "alice", "rateable", time.Now())
		path := "/projects/" + project.ID.String() + "/rate"

		for _, body := range []string{`{"value":0}`, `{"value":6}`} {
			rr := doRequest(t, router, http.MethodPost, path, "bob-token", body)
			assert.Equal(t, http.StatusBadRequest, rr.Code, body)
		}
	})

	t.Run("missing project is 404", func(t *testing.T) {
		router, _, _ := newTestRouter(t)
		rr := doRequest(t, router, http.MethodPost, "/projects/"+uuid.NewString()+"/rate", "bob-token", `{"value":3}`)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("upsert keeps one entry per rater", func(t *testing.T) {
		router, _, projects := newTestRouter(t)
		project := seedProject(t, projects, "owner", "rateable", time.Now())
		path := "/projects/" + project.ID.String() + "/rate"

		rr := doRequest(t, router, http.MethodPost, path, "alice-token", `{"value":1}`)
		require.Equal(t, http.StatusOK, rr.Code)

		rr = doRequest(t, router, http.MethodPost, path, "bob-token", `{"value":2}`)
		require.Equal(t, http.StatusOK, rr.Code)
		response := decodeJSON[map[string]any](t, rr.Body.Bytes())
		assert.Equal(t, 1.5, response["averageRating"])

		// Alice re-rates: her entry is replaced in place, list length unchanged.
		rr = doRequest(t, router, http.MethodPost, path, "alice-token", `{"value":5}`)
		require.Equal(t, http.StatusOK, rr.Code)
		response = decodeJSON[map[string]any](t, rr.Body.Bytes())
		assert.Equal(t, 3.5, response["averageRating"])
		assert.Equal(t, float64(5), response["userRating"])

		stored, err := projects.FindByID(project.ID)
		require.NoError(t, err)
		require.Len(t, stored.Ratings, 2)
		assert.Equal(t, models.Rating{RaterID: "alice", Value: 5}, stored.Ratings[0])
		assert.Equal(t, models.Rating{RaterID: "bob", Value: 2}, stored.Ratings[1])
	})
}
