package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gamestash/marketplace-backend/internal/model"
	"github.com/gamestash/marketplace-backend/internal/repository"
	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthTestEnv(t *testing.T) (*AuthMiddleware, *model.User, *model.Token) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Token{}))

	user := &model.User{Username: "alice", Email: "alice@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	tokens := repository.NewTokenRepository(db)
	token, err := tokens.GetOrCreate(context.Background(), user.ID)
	require.NoError(t, err)

	return NewAuthMiddleware(tokens), user, token
}

func resolve(t *testing.T, mw *AuthMiddleware, cookie *http.Cookie) *model.User {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var resolved *model.User
	h := mw.ResolveIdentity(func(c echo.Context) error {
		resolved = CurrentUser(c)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return resolved
}

func TestResolveIdentity(t *testing.T) {
	mw, user, token := newAuthTestEnv(t)

	resolved := resolve(t, mw, &http.Cookie{Name: CookieName, Value: token.Key})
	require.NotNil(t, resolved)
	require.Equal(t, user.ID, resolved.ID)
}

func TestResolveIdentityAnonymousWithoutCookie(t *testing.T) {
	mw, _, _ := newAuthTestEnv(t)
	require.Nil(t, resolve(t, mw, nil))
}

// An unmatched token fails open: the request proceeds anonymously, no
// error reaches the handler.
func TestResolveIdentityFailsOpenOnUnknownToken(t *testing.T) {
	mw, _, _ := newAuthTestEnv(t)
	require.Nil(t, resolve(t, mw, &http.Cookie{Name: CookieName, Value: "not-a-token"}))
}

func TestRequireAuth(t *testing.T) {
	mw, _, token := newAuthTestEnv(t)
	e := echo.New()

	handler := mw.ResolveIdentity(mw.RequireAuth(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token.Key})
	rec = httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	require.Equal(t, http.StatusOK, rec.Code)
}
