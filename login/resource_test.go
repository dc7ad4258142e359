package login

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"user-directory/account"
	"user-directory/database"
	"user-directory/rest"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	l, _ := test.NewNullLogger()
	db, err := database.Connect(l, database.SetDriver(database.DriverSqlite), database.SetDSN(":memory:"), database.SetMigrations(account.Migration))
	require.NoError(t, err)
	t.Cleanup(database.Teardown(l, db))

	router := rest.NewRouter(l, "/", account.InitResource(db), InitResource(db))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/users", strings.NewReader(`{"username":"alice","password":"pw1"}`)))
	require.Equal(t, http.StatusCreated, rr.Code)

	cases := []struct {
		body   string
		status int
		text   string
	}{
		{`{"username":"alice","password":"pw1"}`, http.StatusOK, loginSuccessful},
		{`{"username":"alice","password":"wrong"}`, http.StatusBadRequest, loginFailed},
		{`{"username":"nobody","password":"pw1"}`, http.StatusBadRequest, loginFailed},
		{`{}`, http.StatusBadRequest, loginFailed},
	}
	for _, c := range cases {
		rr = httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(c.body)))
		assert.Equal(t, c.status, rr.Code, c.body)
		assert.Equal(t, c.text, rr.Body.String(), c.body)
	}
}

func TestLoginStoreFailure(t *testing.T) {
	l, _ := test.NewNullLogger()
	db, err := database.Connect(l, database.SetDriver(database.DriverSqlite), database.SetDSN(":memory:"))
	require.NoError(t, err)
	t.Cleanup(database.Teardown(l, db))

	// no migration: the accounts table is missing, so every lookup fails
	router := rest.NewRouter(l, "/", InitResource(db))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"alice","password":"pw1"}`)))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, loginError, rr.Body.String())
}
