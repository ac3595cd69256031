package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/consite-erp/consite-backend-go/internal/config"
	"github.com/consite-erp/consite-backend-go/internal/domain/project"
	"github.com/consite-erp/consite-backend-go/internal/domain/user"
	"github.com/consite-erp/consite-backend-go/internal/pkg/identity"
	"github.com/consite-erp/consite-backend-go/internal/pkg/jwt"
	"github.com/consite-erp/consite-backend-go/internal/pkg/token"
	"github.com/consite-erp/consite-backend-go/internal/repository/memory"
	invitationService "github.com/consite-erp/consite-backend-go/internal/service/invitation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret      = "test-secret-key-for-jwt"
	handlerTestSessionExp  = "1h"
	handlerTestFrontendURL = "http://localhost:3000"
)

var (
	testAdmin    = user.Principal{ID: "adm-1", Email: "admin@consite.test", Role: user.RoleAdmin}
	testEngineer = user.Principal{ID: "eng-7", Email: "e@x.com", Role: user.RoleTenderEngineer}
)

type handlerTestEnv struct {
	router     http.Handler
	jwtService jwt.Service
	projects   *memory.ProjectRepository
}

func newHandlerTestEnv(t *testing.T) *handlerTestEnv {
	t.Helper()

	invitations := memory.NewInvitationRepository()
	projects := memory.NewProjectRepository()
	projects.Put(project.ProjectRef{
		ID:              "proj-1",
		ReferenceNumber: "PRJ-2024-0113",
		Name:            "Riverside Depot",
		Client:          "Harbour Authority",
	})

	jwtService := jwt.NewJWTService(handlerTestSecret, handlerTestSessionExp)

	service := invitationService.NewInvitationService(
		invitations,
		projects,
		token.NewLegacyCodec(),
		identity.NewDefaultBinder(),
		nil, // no mail relay in handler tests
		config.InvitationConfig{TTL: 30 * 24 * time.Hour, Codec: "legacy"},
		handlerTestFrontendURL,
	)

	router := NewRouter(
		jwtService,
		NewInvitationHandler(service),
		NewSessionHandler(),
		handlerTestFrontendURL,
		"test",
	)

	return &handlerTestEnv{router: router, jwtService: jwtService, projects: projects}
}

func (e *handlerTestEnv) do(t *testing.T, method, path string, body interface{}, principal *user.Principal) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if principal != nil {
		sessionToken, _, err := e.jwtService.GenerateSessionToken(*principal)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+sessionToken)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	return envelope.Data
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Error.Message
}

func (e *handlerTestEnv) issue(t *testing.T) (tokenStr, link string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/invitations", map[string]interface{}{
		"project_id": "proj-1",
		"engineer":   map[string]string{"id": "eng-7", "email": "e@x.com"},
	}, &testAdmin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	data := decodeData(t, rec)
	return data["token"].(string), data["invitation_link"].(string)
}

func TestInvitationFlow_IssueAcceptComplete(t *testing.T) {
	env := newHandlerTestEnv(t)

	// Admin issues an invitation
	tok, link := env.issue(t)
	assert.Equal(t, handlerTestFrontendURL+"/tender/invitation/"+tok, link)

	// Engineer opens the link
	rec := env.do(t, http.MethodGet, "/api/v1/invitations/"+tok, nil, &testEngineer)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	detail := decodeData(t, rec)
	assert.Equal(t, "pending", detail["status"])
	assert.Equal(t, true, detail["project_found"])
	assert.Equal(t, "Riverside Depot", detail["project_name"])

	// Engineer accepts
	rec = env.do(t, http.MethodPost, "/api/v1/invitations/"+tok+"/accept", nil, &testEngineer)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	accepted := decodeData(t, rec)
	assert.Equal(t, "accepted", accepted["status"])
	assert.NotEmpty(t, accepted["accepted_at"])

	// The submission workflow completes it
	rec = env.do(t, http.MethodPost, "/api/v1/invitations/"+tok+"/complete", nil, &testAdmin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	completed := decodeData(t, rec)
	assert.Equal(t, "completed", completed["status"])
}

func TestInvitationFlow_CompleteBeforeAcceptConflicts(t *testing.T) {
	env := newHandlerTestEnv(t)

	tok, _ := env.issue(t)

	rec := env.do(t, http.MethodPost, "/api/v1/invitations/"+tok+"/complete", nil, &testAdmin)
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
}

func TestInvitationFlow_MissingProjectDegradesToSnapshot(t *testing.T) {
	env := newHandlerTestEnv(t)

	tok, _ := env.issue(t)
	env.projects.Remove("proj-1")

	rec := env.do(t, http.MethodGet, "/api/v1/invitations/"+tok, nil, &testEngineer)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	detail := decodeData(t, rec)
	assert.Equal(t, false, detail["project_found"])
	assert.Equal(t, "Riverside Depot", detail["project_name"])
	assert.Equal(t, "Harbour Authority", detail["project_client"])
}

func TestInvitationRoutes_RoleGating(t *testing.T) {
	env := newHandlerTestEnv(t)
	tok, _ := env.issue(t)

	// Engineers cannot reach the assignment screens
	rec := env.do(t, http.MethodPost, "/api/v1/invitations", map[string]interface{}{
		"project_id": "proj-1",
		"engineer":   map[string]string{"email": "e@x.com"},
	}, &testEngineer)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Administrator access is required", errorMessage(t, rec))

	// Admins cannot reach the submission screens
	rec = env.do(t, http.MethodPost, "/api/v1/invitations/"+tok+"/accept", nil, &testAdmin)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Tender engineer access is required", errorMessage(t, rec))

	// No session at all
	rec = env.do(t, http.MethodGet, "/api/v1/invitations/my", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestInvitationDetail_MismatchHidesOwner(t *testing.T) {
	env := newHandlerTestEnv(t)
	tok, _ := env.issue(t)

	stranger := user.Principal{ID: "eng-9", Email: "stranger@x.com", Role: user.RoleTenderEngineer}
	rec := env.do(t, http.MethodGet, "/api/v1/invitations/"+tok, nil, &stranger)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// The response must not hint at whose invitation it is
	assert.Equal(t, "This invitation is not assigned to your account", errorMessage(t, rec))
	assert.NotContains(t, rec.Body.String(), "e@x.com")
}

func TestListMine_ReturnsEngineerInvitations(t *testing.T) {
	env := newHandlerTestEnv(t)
	env.issue(t)
	env.issue(t)

	rec := env.do(t, http.MethodGet, "/api/v1/invitations/my", nil, &testEngineer)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var envelope struct {
		Data []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data, 2)
}

func TestSessionLanding(t *testing.T) {
	env := newHandlerTestEnv(t)

	cases := []struct {
		name      string
		principal user.Principal
		want      string
	}{
		{"admin", testAdmin, "/dashboard"},
		{"engineer", testEngineer, "/tender-engineer/dashboard"},
		{"unknown role", user.Principal{ID: "g-1", Email: "g@x.com", Role: "GUEST"}, "/login"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := env.do(t, http.MethodGet, "/api/v1/session/landing", nil, &c.principal)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			data := decodeData(t, rec)
			assert.Equal(t, c.want, data["path"])
		})
	}
}

func TestGetInvitation_ErrorsPerCause(t *testing.T) {
	env := newHandlerTestEnv(t)

	// Malformed token
	rec := env.do(t, http.MethodGet, "/api/v1/invitations/not-a-token", nil, &testEngineer)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Well-formed but unknown
	unknown := fmt.Sprintf("TND-%013d-abcdef-ghijkl", time.Now().UnixMilli())
	rec = env.do(t, http.MethodGet, "/api/v1/invitations/"+unknown, nil, &testEngineer)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
