package upvotes

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"sugary-backend/testutils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

const (
	ownerID   = "11111111-e89b-12d3-a456-426614174000"
	companyID = "33333333-e89b-12d3-a456-426614174000"
	featureID = "44444444-e89b-12d3-a456-426614174000"
	sessionID = "session-abc123"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

func mockPublicLookup(mock sqlmock.Sqlmock) {
	mock.ExpectQuery(`SELECT (.+) FROM "companies" WHERE slug = \$1 (.+)`).
		WithArgs("acme", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "name", "owner_id"}).
			AddRow(companyID, "acme", "Acme", ownerID))

	mock.ExpectQuery(`SELECT (.+) FROM "features" WHERE company_id = \$1 AND slug = \$2 (.+)`).
		WithArgs(companyID, "dark-mode", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "title", "slug", "status"}).
			AddRow(featureID, companyID, "Dark Mode", "dark-mode", "requested"))
}

func postUpvote(r http.Handler, payload map[string]interface{}) *httptest.ResponseRecorder {
	jsonData, _ := json.Marshal(payload)

	req, _ := http.NewRequest(http.MethodPost, "/roadmap/acme/dark-mode/upvote", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)
	return resp
}

func TestToggleUpvote_Add(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mockPublicLookup(mock)

	mock.ExpectQuery(`SELECT (.+) FROM "upvotes" WHERE feature_id = \$1 AND session_id = \$2 (.+)`).
		WithArgs(featureID, sessionID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "upvotes" (.+)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "notify_on_ship"}).AddRow("upvote-uuid", false))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.POST("/roadmap/:companySlug/:featureSlug/upvote", ToggleUpvote)

	resp := postUpvote(r, map[string]interface{}{"sessionId": sessionID})

	assert.Equal(t, http.StatusOK, resp.Code)

	var body map[string]string
	json.Unmarshal(resp.Body.Bytes(), &body)
	assert.Equal(t, "Upvote added successfully", body["message"])
}

func TestToggleUpvote_Remove(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mockPublicLookup(mock)

	mock.ExpectQuery(`SELECT (.+) FROM "upvotes" WHERE feature_id = \$1 AND session_id = \$2 (.+)`).
		WithArgs(featureID, sessionID, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "feature_id", "session_id"}).
			AddRow("upvote-uuid", featureID, sessionID))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "upvotes" (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.POST("/roadmap/:companySlug/:featureSlug/upvote", ToggleUpvote)

	resp := postUpvote(r, map[string]interface{}{"sessionId": sessionID})

	assert.Equal(t, http.StatusOK, resp.Code)

	var body map[string]string
	json.Unmarshal(resp.Body.Bytes(), &body)
	assert.Equal(t, "Upvote removed successfully", body["message"])
}

func TestToggleUpvote_EmailAlreadyUsed(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mockPublicLookup(mock)

	mock.ExpectQuery(`SELECT (.+) FROM "upvotes" WHERE feature_id = \$1 AND session_id = \$2 (.+)`).
		WithArgs(featureID, sessionID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	// same email from another browser session still counts as one vote
	mock.ExpectQuery(`SELECT (.+) FROM "upvotes" WHERE feature_id = \$1 AND email = \$2 (.+)`).
		WithArgs(featureID, "fan@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "feature_id", "session_id", "email"}).
			AddRow("upvote-uuid", featureID, "other-session", "fan@example.com"))

	r := testutils.SetupTestRouter()
	r.POST("/roadmap/:companySlug/:featureSlug/upvote", ToggleUpvote)

	resp := postUpvote(r, map[string]interface{}{
		"sessionId": sessionID,
		"email":     "fan@example.com",
	})

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestToggleUpvote_HiddenFeature(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "companies" WHERE slug = \$1 (.+)`).
		WithArgs("acme", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "slug", "name", "owner_id"}).
			AddRow(companyID, "acme", "Acme", ownerID))

	mock.ExpectQuery(`SELECT (.+) FROM "features" WHERE company_id = \$1 AND slug = \$2 (.+)`).
		WithArgs(companyID, "dark-mode", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	r := testutils.SetupTestRouter()
	r.POST("/roadmap/:companySlug/:featureSlug/upvote", ToggleUpvote)

	resp := postUpvote(r, map[string]interface{}{"sessionId": sessionID})

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
