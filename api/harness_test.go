package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/google/uuid"

	"github.com/rpupo63/project-showcase-backend/identity"
	"github.com/rpupo63/project-showcase-backend/models"
	"github.com/rpupo63/project-showcase-backend/services"
)

// stubVerifier maps fixed credentials to identities, standing in for Descope.
type stubVerifier struct {
	identities map[string]identity.Identity
}

func (v stubVerifier) Verify(_ context.Context, credential string) (identity.Identity, error) {
	ident, ok := v.identities[credential]
	if !ok {
		return identity.Identity{}, identity.ErrInvalidCredential
	}
	return ident, nil
}

// mockProfileStore keeps profiles in memory, same contract as ProfileRepo.
type mockProfileStore struct {
	profiles map[string]*models.Profile
}

func newMockProfileStore() *mockProfileStore {
	return &mockProfileStore{profiles: make(map[string]*models.Profile)}
}

func (m *mockProfileStore) FindBySubjectID(subjectID string) (*models.Profile, error) {
	profile, ok := m.profiles[subjectID]
	if !ok {
		return nil, nil
	}
	copied := *profile
	return &copied, nil
}

func (m *mockProfileStore) Save(profile *models.Profile) error {
	copied := *profile
	m.profiles[profile.SubjectID] = &copied
	return nil
}

// mockProjectStore keeps projects in memory, same contract as ProjectRepo.
type mockProjectStore struct {
	projects map[uuid.UUID]*models.Project
}

func newMockProjectStore() *mockProjectStore {
	return &mockProjectStore{projects: make(map[uuid.UUID]*models.Project)}
}

func (m *mockProjectStore) FindByID(id uuid.UUID) (*models.Project, error) {
	project, ok := m.projects[id]
	if !ok {
		return nil, nil
	}
	copied := *project
	return &copied, nil
}

// newestFirst returns all stored projects ordered by creation time descending.
func (m *mockProjectStore) newestFirst() []*models.Project {
	all := make([]*models.Project, 0, len(m.projects))
	for _, project := range m.projects {
		copied := *project
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all
}

func (m *mockProjectStore) FindByOwner(subjectID string) ([]*models.Project, error) {
	var owned []*models.Project
	for _, project := range m.newestFirst() {
		if project.OwnerID == subjectID {
			owned = append(owned, project)
		}
	}
	return owned, nil
}

func (m *mockProjectStore) FindByFavoritedBy(subjectID string) ([]*models.Project, error) {
	var favorited []*models.Project
	for _, project := range m.newestFirst() {
		if services.Contains(project.FavoritedBy, subjectID) {
			favorited = append(favorited, project)
		}
	}
	return favorited, nil
}

func (m *mockProjectStore) FindPage(offset, limit int) ([]*models.Project, int64, error) {
	all := m.newestFirst()
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

func (m *mockProjectStore) Add(project *models.Project) error {
	copied := *project
	m.projects[project.ID] = &copied
	return nil
}

func (m *mockProjectStore) Save(project *models.Project) error {
	copied := *project
	m.projects[project.ID] = &copied
	return nil
}

func (m *mockProjectStore) Delete(id uuid.UUID) error {
	delete(m.projects, id)
	return nil
}

// newTestRouter builds the real router over mock stores and a stub verifier.
// Known credentials: alice-token, bob-token, carol-token.
func newTestRouter(t *testing.T) (http.Handler, *mockProfileStore, *mockProjectStore) {
	t.Helper()

	profiles := newMockProfileStore()
	projects := newMockProjectStore()
	verifier := stubVerifier{identities: map[string]identity.Identity{
		"alice-token": {SubjectID: "alice", Email: "alice@example.com"},
		"bob-token":   {SubjectID: "bob", Email: "bob@example.com"},
		"carol-token": {SubjectID: "carol", Email: "carol@example.com"},
	}}

	return newRouter(profiles, projects, verifier), profiles, projects
}

// doRequest runs one request through the router. token == "" means anonymous.
func doRequest(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}
