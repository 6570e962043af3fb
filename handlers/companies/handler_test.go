package companies

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"sugary-backend/models"
	"sugary-backend/testutils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

const ownerID = "11111111-e89b-12d3-a456-426614174000"

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

func TestCreateCompany_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "companies" WHERE owner_id = \$1 (.+)`).
		WithArgs(ownerID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	mock.ExpectQuery(`SELECT (.+) FROM "companies" WHERE slug = \$1 (.+)`).
		WithArgs("acme", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "companies" (.+)`).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow("company-uuid"))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.POST("/companies", func(c *gin.Context) {
		c.Set("user_id", ownerID)
		CreateCompany(c)
	})

	jsonData, _ := json.Marshal(map[string]string{
		"name": "Acme",
		"slug": "acme",
	})

	req, _ := http.NewRequest(http.MethodPost, "/companies", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var company models.Company
	json.Unmarshal(resp.Body.Bytes(), &company)
	assert.Equal(t, "acme", company.Slug)
	assert.Equal(t, ownerID, company.OwnerID)
}

func TestCreateCompany_AlreadyHasOne(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "companies" WHERE owner_id = \$1 (.+)`).
		WithArgs(ownerID, 1).
		WillReturnRows(mock.NewRows([]string{"id", "slug", "name", "owner_id"}).
			AddRow("company-uuid", "acme", "Acme", ownerID))

	r := testutils.SetupTestRouter()
	r.POST("/companies", func(c *gin.Context) {
		c.Set("user_id", ownerID)
		CreateCompany(c)
	})

	jsonData, _ := json.Marshal(map[string]string{
		"name": "Second Co",
		"slug": "second-co",
	})

	req, _ := http.NewRequest(http.MethodPost, "/companies", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestCreateCompany_SlugTaken(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "companies" WHERE owner_id = \$1 (.+)`).
		WithArgs(ownerID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	mock.ExpectQuery(`SELECT (.+) FROM "companies" WHERE slug = \$1 (.+)`).
		WithArgs("acme", 1).
		WillReturnRows(mock.NewRows([]string{"id", "slug", "name", "owner_id"}).
			AddRow("other-company-uuid", "acme", "Other Acme", "other-owner"))

	r := testutils.SetupTestRouter()
	r.POST("/companies", func(c *gin.Context) {
		c.Set("user_id", ownerID)
		CreateCompany(c)
	})

	jsonData, _ := json.Marshal(map[string]string{
		"name": "Acme",
		"slug": "acme",
	})

	req, _ := http.NewRequest(http.MethodPost, "/companies", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestCreateCompany_InvalidSlug(t *testing.T) {
	_, _, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	r := testutils.SetupTestRouter()
	r.POST("/companies", func(c *gin.Context) {
		c.Set("user_id", ownerID)
		CreateCompany(c)
	})

	jsonData, _ := json.Marshal(map[string]string{
		"name": "Acme",
		"slug": "Not A Slug",
	})

	req, _ := http.NewRequest(http.MethodPost, "/companies", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestGetMyCompany_None(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "companies" WHERE owner_id = \$1 (.+)`).
		WithArgs(ownerID, 1).
		WillReturnError(gorm.ErrRecordNotFound)

	r := testutils.SetupTestRouter()
	r.GET("/companies/me", func(c *gin.Context) {
		c.Set("user_id", ownerID)
		GetMyCompany(c)
	})

	req, _ := http.NewRequest(http.MethodGet, "/companies/me", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNotFound, resp.Code)
}
