package selection

import (
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auditlink/internal/jwtauth"
	id "auditlink/pkg/domain"
	"auditlink/pkg/testutil"
)

const testSigningKey = "selection-test-signing-key"

type handlerFixture struct {
	router chi.Router
	token  string
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	logger := slog.New(slog.DiscardHandler)
	manager := NewManager(NewInMemoryStore(), logger)

	jwtService := jwtauth.NewService(testSigningKey, "auditlink-test")
	token, err := jwtService.GenerateToken("auditor-1", "Pat Auditor", time.Hour)
	require.NoError(t, err)

	router := chi.NewRouter()
	NewHandler(manager, logger, nil, jwtauth.NewAdapter(jwtService)).Register(router)

	return &handlerFixture{router: router, token: token}
}

func authed(token string, req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestHandleToggleEvidence(t *testing.T) {
	f := newHandlerFixture(t)
	evidenceID := id.NewEvidenceID()

	rr := testutil.DoRequest(f.router, authed(f.token, testutil.NewJSONRequest(t, http.MethodPost, "/selection/evidence", map[string]any{
		"evidence_id": evidenceID.String(),
		"selected":    true,
	})))
	require.Equal(t, http.StatusOK, rr.Code)

	var snapshot Snapshot
	testutil.DecodeJSON(t, rr, &snapshot)
	assert.Equal(t, 1, snapshot.EvidenceCount)
	assert.Equal(t, uint64(1), snapshot.Revision)

	rr = testutil.DoRequest(f.router, authed(f.token, testutil.NewJSONRequest(t, http.MethodPost, "/selection/evidence", map[string]any{
		"evidence_id": evidenceID.String(),
		"selected":    false,
	})))
	require.Equal(t, http.StatusOK, rr.Code)
	testutil.DecodeJSON(t, rr, &snapshot)
	assert.Equal(t, 0, snapshot.EvidenceCount)
}

func TestHandleToggleEvidence_MissingID(t *testing.T) {
	f := newHandlerFixture(t)

	rr := testutil.DoRequest(f.router, authed(f.token, testutil.NewJSONRequest(t, http.MethodPost, "/selection/evidence", map[string]any{
		"selected": true,
	})))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var errBody map[string]string
	testutil.DecodeJSON(t, rr, &errBody)
	assert.Equal(t, "invalid_input", errBody["error"])
}

func TestHandleSelectAllEvidence(t *testing.T) {
	f := newHandlerFixture(t)
	visible := []string{id.NewEvidenceID().String(), id.NewEvidenceID().String(), id.NewEvidenceID().String()}

	rr := testutil.DoRequest(f.router, authed(f.token, testutil.NewJSONRequest(t, http.MethodPut, "/selection/evidence", map[string]any{
		"evidence_ids": visible,
	})))
	require.Equal(t, http.StatusOK, rr.Code)

	var snapshot Snapshot
	testutil.DecodeJSON(t, rr, &snapshot)
	assert.Equal(t, 3, snapshot.EvidenceCount)
}

func TestHandleSelectionFlow(t *testing.T) {
	f := newHandlerFixture(t)

	for range 2 {
		rr := testutil.DoRequest(f.router, authed(f.token, testutil.NewJSONRequest(t, http.MethodPost, "/selection/evidence", map[string]any{
			"evidence_id": id.NewEvidenceID().String(),
			"selected":    true,
		})))
		require.Equal(t, http.StatusOK, rr.Code)
	}
	rr := testutil.DoRequest(f.router, authed(f.token, testutil.NewJSONRequest(t, http.MethodPost, "/selection/requirements", map[string]any{
		"requirement_id": id.NewRequirementID().String(),
		"selected":       true,
	})))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = testutil.DoRequest(f.router, authed(f.token, testutil.NewJSONRequest(t, http.MethodGet, "/selection", nil)))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		EvidenceIDs    []string `json:"evidence_ids"`
		RequirementIDs []string `json:"requirement_ids"`
		Snapshot       Snapshot `json:"snapshot"`
	}
	testutil.DecodeJSON(t, rr, &body)
	assert.Len(t, body.EvidenceIDs, 2)
	assert.Len(t, body.RequirementIDs, 1)
	assert.Equal(t, 2, body.Snapshot.PotentialLinkCount)

	rr = testutil.DoRequest(f.router, authed(f.token, testutil.NewJSONRequest(t, http.MethodDelete, "/selection", nil)))
	require.Equal(t, http.StatusOK, rr.Code)

	var snapshot Snapshot
	testutil.DecodeJSON(t, rr, &snapshot)
	assert.Equal(t, 0, snapshot.EvidenceCount)
	assert.Equal(t, 0, snapshot.RequirementCount)
}

func TestHandleSelection_RequiresAuth(t *testing.T) {
	f := newHandlerFixture(t)

	rr := testutil.DoRequest(f.router, testutil.NewJSONRequest(t, http.MethodGet, "/selection", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
