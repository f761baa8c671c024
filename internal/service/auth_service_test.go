package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/kairos-api/internal/models"
	appErrors "github.com/noah-isme/kairos-api/pkg/errors"
)

const testSecret = "provider-secret"

type fakeAdminRepo struct {
	admins   map[string]*models.Admin
	created  []*models.Admin
	approved map[string]bool
	err      error
}

func newFakeAdminRepo(admins ...*models.Admin) *fakeAdminRepo {
	repo := &fakeAdminRepo{admins: map[string]*models.Admin{}, approved: map[string]bool{}}
	for _, a := range admins {
		repo.admins[a.ID] = a
	}
	return repo
}

func (f *fakeAdminRepo) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, a := range f.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAdminRepo) FindByID(ctx context.Context, id string) (*models.Admin, error) {
	if a, ok := f.admins[id]; ok {
		return a, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAdminRepo) List(ctx context.Context) ([]models.Admin, error) {
	out := make([]models.Admin, 0, len(f.admins))
	for _, a := range f.admins {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAdminRepo) Create(ctx context.Context, admin *models.Admin) error {
	admin.ID = "admin-new"
	f.admins[admin.ID] = admin
	f.created = append(f.created, admin)
	return nil
}

func (f *fakeAdminRepo) UpdateApproval(ctx context.Context, id string, approved bool) error {
	a, ok := f.admins[id]
	if !ok {
		return sql.ErrNoRows
	}
	a.IsApproved = approved
	f.approved[id] = approved
	return nil
}

func signToken(t *testing.T, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":           "user-1",
		"email":         "Ana@Example.com",
		"aud":           "authenticated",
		"exp":           time.Now().Add(time.Hour).Unix(),
		"user_metadata": map[string]interface{}{"full_name": "Ana Pop"},
	}
}

func newTestAuthService(repo authAdminRepository) *AuthService {
	return NewAuthService(repo, nil, AuthConfig{Secret: testSecret, Audience: "authenticated"})
}

func TestValidateToken(t *testing.T) {
	svc := newTestAuthService(newFakeAdminRepo())

	claims, err := svc.ValidateToken(signToken(t, jwt.SigningMethodHS256, validClaims()))
	require.NoError(t, err)
	assert.Equal(t, &models.AuthClaims{Subject: "user-1", Email: "ana@example.com", FullName: "Ana Pop"}, claims)
}

func TestValidateTokenRejects(t *testing.T) {
	svc := newTestAuthService(newFakeAdminRepo())

	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()

	noExp := validClaims()
	delete(noExp, "exp")

	wrongAud := validClaims()
	wrongAud["aud"] = "anon"

	noEmail := validClaims()
	delete(noEmail, "email")

	cases := map[string]string{
		"expired":        signToken(t, jwt.SigningMethodHS256, expired),
		"missing exp":    signToken(t, jwt.SigningMethodHS256, noExp),
		"wrong audience": signToken(t, jwt.SigningMethodHS256, wrongAud),
		"missing email":  signToken(t, jwt.SigningMethodHS256, noEmail),
		"wrong alg":      signToken(t, jwt.SigningMethodHS512, validClaims()),
		"garbage":        "not-a-token",
	}
	for name, token := range cases {
		_, err := svc.ValidateToken(token)
		require.Error(t, err, name)
		assert.True(t, appErrors.HasCode(err, appErrors.ErrUnauthorized), name)
	}
}

func TestEnsureAdminRegistersPendingOnFirstSignIn(t *testing.T) {
	repo := newFakeAdminRepo()
	svc := newTestAuthService(repo)

	admin, created, err := svc.EnsureAdmin(context.Background(), &models.AuthClaims{Email: "ana@example.com"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, admin.IsApproved)
	assert.False(t, admin.IsMainAdmin)
	assert.Equal(t, "ana@example.com", admin.Name)

	again, created, err := svc.EnsureAdmin(context.Background(), &models.AuthClaims{Email: "ana@example.com"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, admin.ID, again.ID)
	assert.Len(t, repo.created, 1)
}

func TestResolveAdminUnknownIsForbidden(t *testing.T) {
	svc := newTestAuthService(newFakeAdminRepo())

	_, err := svc.ResolveAdmin(context.Background(), &models.AuthClaims{Email: "ghost@example.com"})
	assert.True(t, appErrors.HasCode(err, appErrors.ErrForbidden))
}
