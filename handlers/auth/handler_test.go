package auth

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

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	testutils.InitTestMain()

	log.SetOutput(io.Discard)

	exitCode := m.Run()

	log.SetOutput(os.Stdout)

	os.Exit(exitCode)
}

func TestRegister_Success(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = \$1 (.+)`).
		WithArgs("founder@example.com", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users" (.+)`).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow("user-uuid"))
	mock.ExpectCommit()

	r := testutils.SetupTestRouter()
	r.POST("/register", Register)

	jsonData, _ := json.Marshal(map[string]string{
		"email":    "founder@example.com",
		"password": "Password1",
	})

	req, _ := http.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusCreated, resp.Code)

	var body map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &body)
	assert.Equal(t, "founder@example.com", body["email"])
}

func TestRegister_WeakPassword(t *testing.T) {
	_, _, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	r := testutils.SetupTestRouter()
	r.POST("/register", Register)

	jsonData, _ := json.Marshal(map[string]string{
		"email":    "founder@example.com",
		"password": "password",
	})

	req, _ := http.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = \$1 (.+)`).
		WithArgs("founder@example.com", 1).
		WillReturnRows(mock.NewRows([]string{"id", "email"}).
			AddRow("user-uuid", "founder@example.com"))

	r := testutils.SetupTestRouter()
	r.POST("/register", Register)

	jsonData, _ := json.Marshal(map[string]string{
		"email":    "founder@example.com",
		"password": "Password1",
	})

	req, _ := http.NewRequest(http.MethodPost, "/register", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestLogin_Success(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	hash, _ := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.DefaultCost)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = \$1 (.+)`).
		WithArgs("founder@example.com", 1).
		WillReturnRows(mock.NewRows([]string{"id", "email", "password"}).
			AddRow("user-uuid", "founder@example.com", string(hash)))

	r := testutils.SetupTestRouter()
	r.POST("/login", Login)

	jsonData, _ := json.Marshal(map[string]string{
		"email":    "founder@example.com",
		"password": "Password1",
	})

	req, _ := http.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)

	var body map[string]interface{}
	json.Unmarshal(resp.Body.Bytes(), &body)
	assert.NotEmpty(t, body["token"])
}

func TestLogin_WrongPassword(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	hash, _ := bcrypt.GenerateFromPassword([]byte("Password1"), bcrypt.DefaultCost)

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = \$1 (.+)`).
		WithArgs("founder@example.com", 1).
		WillReturnRows(mock.NewRows([]string{"id", "email", "password"}).
			AddRow("user-uuid", "founder@example.com", string(hash)))

	r := testutils.SetupTestRouter()
	r.POST("/login", Login)

	jsonData, _ := json.Marshal(map[string]string{
		"email":    "founder@example.com",
		"password": "NotThePassword1",
	})

	req, _ := http.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	_, mock, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT (.+) FROM "users" WHERE email = \$1 (.+)`).
		WithArgs("nobody@example.com", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	r := testutils.SetupTestRouter()
	r.POST("/login", Login)

	jsonData, _ := json.Marshal(map[string]string{
		"email":    "nobody@example.com",
		"password": "Password1",
	})

	req, _ := http.NewRequest(http.MethodPost, "/login", bytes.NewBuffer(jsonData))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
