package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alimovshaxzod89/SMS/internal/models"
	"github.com/alimovshaxzod89/SMS/internal/query"
	appErrors "github.com/alimovshaxzod89/SMS/pkg/errors"
)

type fakeBlacklist struct {
	tokens map[string]time.Time
	users  map[string]time.Time
	err    error
}

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{tokens: map[string]time.Time{}, users: map[string]time.Time{}}
}

func (f *fakeBlacklist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.tokens[jti] = expiresAt
	return nil
}

func (f *fakeBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.tokens[jti]
	return ok, nil
}

func (f *fakeBlacklist) RevokeAll(ctx context.Context, role models.UserRole, userID string, at time.Time, ttl time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.users[string(role)+":"+userID] = at
	return nil
}

func (f *fakeBlacklist) RevokedBefore(ctx context.Context, role models.UserRole, userID string) (time.Time, bool, error) {
	if f.err != nil {
		return time.Time{}, false, f.err
	}
	at, ok := f.users[string(role)+":"+userID]
	return at, ok, nil
}

type authFixture struct {
	*school
	svc       *AuthService
	blacklist *fakeBlacklist
	clock     time.Time
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{school: newSchool(t), blacklist: newFakeBlacklist(), clock: testNow}
	f.svc = NewAuthService(f.store, f.blacklist, nil, zap.NewNop(), AuthConfig{
		Secret:            "test-secret",
		Expiry:            time.Hour,
		Issuer:            "sms-test",
		AdminUsername:     "admin",
		AdminPasswordHash: hashed(t, "adminpass"),
	})
	f.svc.now = func() time.Time { return f.clock }
	return f
}

func (f *authFixture) login(t *testing.T, role models.UserRole, username, password string) (*models.LoginResponse, *models.JWTClaims) {
	t.Helper()
	resp, err := f.svc.Login(context.Background(), models.LoginRequest{Username: username, Password: password, Role: role})
	require.NoError(t, err)
	claims, err := f.svc.ValidateToken(context.Background(), resp.Token)
	require.NoError(t, err)
	return resp, claims
}

func TestLoginIssuesRoleScopedToken(t *testing.T) {
	f := newAuthFixture(t)

	resp, claims := f.login(t, models.RoleTeacher, "JDoe", testPassword)
	assert.True(t, resp.Success)
	assert.NotContains(t, resp.User, query.FieldPassword)
	assert.Equal(t, models.RoleTeacher, resp.User["role"])
	assert.Equal(t, f.teacher.ID(), claims.UserID)
	assert.Equal(t, models.RoleTeacher, claims.Role)
	assert.Equal(t, "jdoe", claims.Username)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, "sms-test", claims.Issuer)
	assert.Equal(t, testNow.Add(time.Hour).Unix(), claims.ExpiresAt.Unix())

	_, admin := f.login(t, models.RoleAdmin, "admin", "adminpass")
	assert.Equal(t, models.AdminUserID, admin.UserID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	cases := []models.LoginRequest{
		{Username: "jdoe", Password: "wrong-pass", Role: models.RoleTeacher},
		{Username: "jdoe", Password: testPassword, Role: models.RoleStudent},
		{Username: "ghost", Password: testPassword, Role: models.RoleParent},
		{Username: "admin", Password: "nope", Role: models.RoleAdmin},
	}
	for _, req := range cases {
		_, err := f.svc.Login(ctx, req)
		requireAppError(t, err, http.StatusUnauthorized, "Invalid credentials")
	}

	_, err := f.svc.Login(ctx, models.LoginRequest{Username: "jdoe", Password: testPassword, Role: "janitor"})
	requireAppError(t, err, http.StatusBadRequest, "")
}

func TestLoginRejectsInactiveTeacher(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.store.Update(context.Background(), models.CollectionTeachers, f.teacher.ID(), query.Document{"isActive": false})
	require.NoError(t, err)

	_, err = f.svc.Login(context.Background(), models.LoginRequest{Username: "jdoe", Password: testPassword, Role: models.RoleTeacher})
	requireAppError(t, err, http.StatusForbidden, "")
}

func TestMeOmitsPassword(t *testing.T) {
	f := newAuthFixture(t)
	_, claims := f.login(t, models.RoleStudent, "kid", testPassword)

	me, err := f.svc.Me(context.Background(), claims)
	require.NoError(t, err)
	assert.Equal(t, "Kim", me["name"])
	assert.NotContains(t, me, query.FieldPassword)

	admin, err := f.svc.Me(context.Background(), &models.JWTClaims{UserID: models.AdminUserID, Role: models.RoleAdmin, Username: "admin"})
	require.NoError(t, err)
	assert.Equal(t, query.Document{"_id": "admin", "username": "admin", "role": models.RoleAdmin}, admin)
}

func TestLogoutInvalidatesToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	resp, claims := f.login(t, models.RoleParent, "mdoe", testPassword)

	require.NoError(t, f.svc.Logout(ctx, claims))
	assert.Equal(t, claims.ExpiresAt.Time, f.blacklist.tokens[claims.ID])

	_, err := f.svc.ValidateToken(ctx, resp.Token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrTokenRevoked))
}

func TestLogoutAllRejectsEarlierTokens(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	first, claims := f.login(t, models.RoleTeacher, "jdoe", testPassword)
	f.clock = f.clock.Add(time.Minute)
	second, _ := f.login(t, models.RoleTeacher, "jdoe", testPassword)

	f.clock = f.clock.Add(time.Minute)
	require.NoError(t, f.svc.LogoutAll(ctx, claims))

	for _, token := range []string{first.Token, second.Token} {
		_, err := f.svc.ValidateToken(ctx, token)
		requireAppError(t, err, http.StatusUnauthorized, appErrors.ErrTokenRevoked.Message)
	}

	f.clock = f.clock.Add(time.Minute)
	f.login(t, models.RoleTeacher, "jdoe", testPassword)
}

func TestValidateTokenRejectsForeignAndExpiredTokens(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	resp, _ := f.login(t, models.RoleStudent, "kid", testPassword)

	f.clock = f.clock.Add(2 * time.Hour)
	_, err := f.svc.ValidateToken(ctx, resp.Token)
	requireAppError(t, err, http.StatusUnauthorized, appErrors.ErrUnauthorized.Message)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.JWTClaims{
		UserID: "x", Role: models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(f.clock.Add(time.Hour))},
	}).SignedString([]byte("other-secret"))
	require.NoError(t, err)
	_, err = f.svc.ValidateToken(ctx, forged)
	requireAppError(t, err, http.StatusUnauthorized, "")

	f.clock = testNow
	f.blacklist.err = errors.New("redis down")
	_, err = f.svc.ValidateToken(ctx, resp.Token)
	requireAppError(t, err, http.StatusInternalServerError, "")
}

func TestUpdatePasswordRotatesToken(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	old, claims := f.login(t, models.RoleStudent, "kid", testPassword)

	_, err := f.svc.UpdatePassword(ctx, claims, models.UpdatePasswordRequest{CurrentPassword: "wrong-pass", NewPassword: "brandnew"})
	requireAppError(t, err, http.StatusUnauthorized, "Current password is incorrect")

	_, err = f.svc.UpdatePassword(ctx, claims, models.UpdatePasswordRequest{CurrentPassword: testPassword, NewPassword: "short"})
	requireAppError(t, err, http.StatusBadRequest, "")

	token, err := f.svc.UpdatePassword(ctx, claims, models.UpdatePasswordRequest{CurrentPassword: testPassword, NewPassword: "brandnew"})
	require.NoError(t, err)
	assert.NotEqual(t, old.Token, token)

	_, err = f.svc.ValidateToken(ctx, old.Token)
	requireAppError(t, err, http.StatusUnauthorized, appErrors.ErrTokenRevoked.Message)
	_, err = f.svc.ValidateToken(ctx, token)
	require.NoError(t, err)

	f.login(t, models.RoleStudent, "kid", "brandnew")

	_, err = f.svc.UpdatePassword(ctx, &models.JWTClaims{UserID: models.AdminUserID, Role: models.RoleAdmin}, models.UpdatePasswordRequest{CurrentPassword: "adminpass", NewPassword: "another"})
	requireAppError(t, err, http.StatusForbidden, "")
}
