package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-hub/adapters/event"
	"github.com/khoahotran/portfolio-hub/internal/domain/role"
	"github.com/khoahotran/portfolio-hub/internal/domain/user"
	"github.com/khoahotran/portfolio-hub/internal/mocks"
	"github.com/khoahotran/portfolio-hub/pkg/apperror"
	"github.com/khoahotran/portfolio-hub/pkg/auth"
	"github.com/khoahotran/portfolio-hub/pkg/logger"
)

type fixture struct {
	uc            *AuthUseCase
	users         *mocks.UserRepository
	roles         *mocks.RoleRepository
	sessions      *mocks.SessionStore
	confirmations *mocks.ConfirmationStore
	publisher     *mocks.EventPublisher
	jwt           *auth.JWTService
}

func newFixture() *fixture {
	f := &fixture{
		users:         &mocks.UserRepository{},
		roles:         &mocks.RoleRepository{},
		sessions:      &mocks.SessionStore{},
		confirmations: &mocks.ConfirmationStore{},
		publisher:     &mocks.EventPublisher{Published: make(chan any, 4)},
		jwt:           auth.NewJWTService("test-secret", time.Hour),
	}
	f.uc = NewAuthUseCase(Deps{
		UserRepo:        f.users,
		RoleRepo:        f.roles,
		JWT:             f.jwt,
		Sessions:        f.sessions,
		Confirmations:   f.confirmations,
		Publisher:       f.publisher,
		Logger:          logger.NewNopLogger(),
		ConfirmationTTL: 24 * time.Hour,
	})
	return f
}

func waitPublished(t *testing.T, ch chan any) any {
	t.Helper()
	select {
	case p := <-ch:
		return p
	case <-time.After(time.Second):
		t.Fatal("event was not published")
		return nil
	}
}

func confirmedUser(t *testing.T, password string) *user.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	now := time.Now()
	return &user.User{ID: uuid.New(), Email: "ada@example.com", PasswordHash: hash, EmailConfirmedAt: &now}
}

func signedIn(ctx context.Context, userID uuid.UUID) context.Context {
	return auth.WithSession(ctx, &auth.Session{
		Claims: &auth.CustomClaims{UserID: userID},
	})
}

func TestSignUp(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.users.On("Create", mock.Anything, mock.MatchedBy(func(u *user.User) bool {
		return u.Email == "ada@example.com" && u.PasswordHash != "secret1" && !u.Confirmed()
	})).Return(nil)
	f.confirmations.On("Save", mock.Anything, mock.AnythingOfType("string"), mock.Anything, 24*time.Hour).Return(nil)
	f.publisher.On("PublishAuthEvent", mock.Anything, mock.Anything).Return(nil)

	out, err := f.uc.SignUp(ctx, SignUpInput{Email: " Ada@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.True(t, out.ConfirmationSent)
	assert.Equal(t, "ada@example.com", out.User.Email)

	payload := waitPublished(t, f.publisher.Published).(event.AuthEventPayload)
	assert.Equal(t, event.AuthEventTypeSignedUp, payload.EventType)
	assert.Equal(t, out.User.ID, payload.UserID)
	assert.NotEmpty(t, payload.ConfirmationToken)
	f.users.AssertExpectations(t)
	f.confirmations.AssertExpectations(t)
}

func TestSignUpValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   SignUpInput
		message string
	}{
		{"bad email", SignUpInput{Email: "not-an-email", Password: "secret1"}, "Unable to validate email address: invalid format"},
		{"short password", SignUpInput{Email: "ada@example.com", Password: "12345"}, "Password should be at least 6 characters"},
		{"missing password", SignUpInput{Email: "ada@example.com"}, "Email and password are required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.uc.SignUp(context.Background(), tt.input)
			require.ErrorIs(t, err, apperror.ErrUnauthorized)

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.message, appErr.Message)
			f.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	f := newFixture()
	f.users.On("Create", mock.Anything, mock.Anything).Return(apperror.NewConflict("user", "email", "ada@example.com"))
	f.users.On("FindByEmail", mock.Anything, "ada@example.com").Return(confirmedUser(t, "secret1"), nil)

	_, err := f.uc.SignUp(context.Background(), SignUpInput{Email: "ada@example.com", Password: "secret1"})
	require.ErrorIs(t, err, apperror.ErrUnauthorized)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "User already registered", appErr.Message)
}

func TestSignUpTokenStoreFailureIsRetryable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	input := SignUpInput{Email: "ada@example.com", Password: "secret1"}

	var created *user.User
	f.users.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*user.User)
	}).Return(nil).Once()
	f.confirmations.On("Save", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(apperror.NewTransport("redis set", errors.New("connection refused"))).Once()

	out, err := f.uc.SignUp(ctx, input)
	require.ErrorIs(t, err, apperror.ErrTransport)
	assert.Nil(t, out)
	f.publisher.AssertNotCalled(t, "PublishAuthEvent", mock.Anything, mock.Anything)

	// The row exists now, unconfirmed. Signing up again must issue a token.
	f.users.On("Create", mock.Anything, mock.Anything).Return(apperror.NewConflict("user", "email", input.Email))
	f.users.On("FindByEmail", mock.Anything, input.Email).Return(created, nil)
	f.confirmations.On("Save", mock.Anything, mock.AnythingOfType("string"), mock.Anything, 24*time.Hour).Return(nil)
	f.publisher.On("PublishAuthEvent", mock.Anything, mock.Anything).Return(nil)

	out, err = f.uc.SignUp(ctx, input)
	require.NoError(t, err)
	assert.True(t, out.ConfirmationSent)
	assert.Equal(t, created.ID, out.User.ID)

	payload := waitPublished(t, f.publisher.Published).(event.AuthEventPayload)
	assert.Equal(t, event.AuthEventTypeSignedUp, payload.EventType)
	assert.Equal(t, created.ID, payload.UserID)
}

func TestSignUpUnconfirmedKeepsStoredPassword(t *testing.T) {
	f := newFixture()
	hash, err := auth.HashPassword("original")
	require.NoError(t, err)
	pending := &user.User{ID: uuid.New(), Email: "ada@example.com", PasswordHash: hash}

	f.users.On("Create", mock.Anything, mock.Anything).Return(apperror.NewConflict("user", "email", pending.Email))
	f.users.On("FindByEmail", mock.Anything, pending.Email).Return(pending, nil)
	f.confirmations.On("Save", mock.Anything, mock.AnythingOfType("string"), pending.ID, 24*time.Hour).Return(nil)
	f.publisher.On("PublishAuthEvent", mock.Anything, mock.Anything).Return(nil)

	out, err := f.uc.SignUp(context.Background(), SignUpInput{Email: pending.Email, Password: "another1"})
	require.NoError(t, err)
	assert.Same(t, pending, out.User)
	assert.True(t, auth.CheckPasswordHash("original", out.User.PasswordHash))
	waitPublished(t, f.publisher.Published)
}

func TestConfirmEmail(t *testing.T) {
	f := newFixture()
	u := confirmedUser(t, "secret1")

	f.confirmations.On("Consume", mock.Anything, "tok").Return(u.ID, true, nil)
	f.users.On("MarkEmailConfirmed", mock.Anything, u.ID, mock.AnythingOfType("time.Time")).Return(nil)
	f.users.On("FindByID", mock.Anything, u.ID).Return(u, nil)
	f.publisher.On("PublishAuthEvent", mock.Anything, mock.Anything).Return(nil)

	got, err := f.uc.ConfirmEmail(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	payload := waitPublished(t, f.publisher.Published).(event.AuthEventPayload)
	assert.Equal(t, event.AuthEventTypeEmailConfirmed, payload.EventType)
}

func TestConfirmEmailUnknownToken(t *testing.T) {
	f := newFixture()
	f.confirmations.On("Consume", mock.Anything, "nope").Return(uuid.Nil, false, nil)

	_, err := f.uc.ConfirmEmail(context.Background(), "nope")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	f.users.AssertNotCalled(t, "MarkEmailConfirmed", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignIn(t *testing.T) {
	f := newFixture()
	u := confirmedUser(t, "secret1")
	f.users.On("FindByEmail", mock.Anything, "ada@example.com").Return(u, nil)

	out, err := f.uc.SignIn(context.Background(), SignInInput{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, u, out.User)

	claims, err := f.jwt.ValidateToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.True(t, claims.ExpiresAtTime().Equal(out.ExpiresAt))
}

func TestSignInFailures(t *testing.T) {
	u := confirmedUser(t, "secret1")
	unconfirmed := *u
	unconfirmed.EmailConfirmedAt = nil

	tests := []struct {
		name     string
		found    *user.User
		findErr  error
		password string
		want     error
	}{
		{"unknown email", nil, apperror.NewNotFound("user", "ada@example.com"), "secret1", apperror.ErrUnauthorized},
		{"wrong password", u, nil, "wrong", apperror.ErrUnauthorized},
		{"unconfirmed", &unconfirmed, nil, "secret1", apperror.ErrUnauthorized},
		{"store down", nil, apperror.NewTransport("failed", errors.New("dial")), "secret1", apperror.ErrTransport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.users.On("FindByEmail", mock.Anything, "ada@example.com").Return(tt.found, tt.findErr)

			out, err := f.uc.SignIn(context.Background(), SignInInput{Email: "ada@example.com", Password: tt.password})
			assert.Nil(t, out)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSignOutRevokesToken(t *testing.T) {
	f := newFixture()
	token, claims, err := f.jwt.GenerateToken(uuid.New(), "ada@example.com")
	require.NoError(t, err)
	ctx := auth.WithSession(context.Background(), &auth.Session{AccessToken: token, Claims: claims})

	f.sessions.On("Revoke", mock.Anything, claims.TokenID(), mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 59*time.Minute && ttl <= time.Hour
	})).Return(nil)

	require.NoError(t, f.uc.SignOut(ctx))
	f.sessions.AssertExpectations(t)
}

func TestSignOutAnonymousIsNoop(t *testing.T) {
	f := newFixture()
	assert.NoError(t, f.uc.SignOut(context.Background()))
	f.sessions.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthenticate(t *testing.T) {
	f := newFixture()
	token, claims, err := f.jwt.GenerateToken(uuid.New(), "ada@example.com")
	require.NoError(t, err)

	f.sessions.On("IsRevoked", mock.Anything, claims.TokenID()).Return(false, nil).Once()
	s, err := f.uc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, claims.UserID, s.Claims.UserID)

	f.sessions.On("IsRevoked", mock.Anything, claims.TokenID()).Return(true, nil).Once()
	_, err = f.uc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	_, err = f.uc.Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestGetUser(t *testing.T) {
	f := newFixture()

	u, err := f.uc.GetUser(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, u)

	gone := uuid.New()
	f.users.On("FindByID", mock.Anything, gone).Return(nil, apperror.NewNotFound("user", gone.String()))
	u, err = f.uc.GetUser(signedIn(context.Background(), gone))
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestGetUserRoleSwallowsFailure(t *testing.T) {
	f := newFixture()
	userID := uuid.New()
	f.roles.On("FindByUserID", mock.Anything, userID).Return(nil, apperror.NewTransport("failed", errors.New("dial")))

	assert.Nil(t, f.uc.GetUserRole(context.Background(), userID))
	assert.False(t, f.uc.IsAdmin(context.Background(), userID))
}

func TestIsAdmin(t *testing.T) {
	f := newFixture()
	admin, member, nobody := uuid.New(), uuid.New(), uuid.New()
	f.roles.On("FindByUserID", mock.Anything, admin).Return(&role.UserRole{UserID: admin, Role: role.RoleAdmin}, nil)
	f.roles.On("FindByUserID", mock.Anything, member).Return(&role.UserRole{UserID: member, Role: role.RoleUser}, nil)
	f.roles.On("FindByUserID", mock.Anything, nobody).Return(nil, nil)

	ctx := context.Background()
	assert.True(t, f.uc.IsAdmin(ctx, admin))
	assert.False(t, f.uc.IsAdmin(ctx, member))
	assert.False(t, f.uc.IsAdmin(ctx, nobody))
}

func TestGetCurrentUserRole(t *testing.T) {
	f := newFixture()

	r, err := f.uc.GetCurrentUserRole(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, r)

	u := confirmedUser(t, "secret1")
	f.users.On("FindByID", mock.Anything, u.ID).Return(u, nil)
	f.roles.On("FindByUserID", mock.Anything, u.ID).Return(&role.UserRole{UserID: u.ID, Role: role.RoleAdmin}, nil)

	r, err = f.uc.GetCurrentUserRole(signedIn(context.Background(), u.ID))
	require.NoError(t, err)
	assert.Equal(t, role.RoleAdmin, role.Of(r))
}
