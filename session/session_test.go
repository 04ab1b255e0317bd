package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jathol7/oz-baby-toys-store/client"
	"github.com/Jathol7/oz-baby-toys-store/models"
	"github.com/Jathol7/oz-baby-toys-store/storage"
)

type fakeAuth struct {
	payload     client.AuthPayload
	err         error
	logoutErr   error
	loginCalls  int
	logoutCalls int
}

func (f *fakeAuth) Login(ctx context.Context, creds client.Credentials) (client.AuthPayload, error) {
	f.loginCalls++
	return f.payload, f.err
}

func (f *fakeAuth) Register(ctx context.Context, form client.RegisterForm) (client.AuthPayload, error) {
	return f.payload, f.err
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.logoutCalls++
	return f.logoutErr
}

func TestRehydratesValidSessionWithoutNetworkCall(t *testing.T) {
	st := storage.NewMemory()
	require.NoError(t, st.Set(storage.KeyAuthToken, []byte("tok-1")))
	require.NoError(t, st.Set(storage.KeyUser, []byte(`{"id":7,"name":"Pat","email":"pat@example.com","role":"customer"}`)))

	api := &fakeAuth{}
	s := New(st, api)

	assert.True(t, s.IsAuthenticated())
	assert.Equal(t, StateAuthenticated, s.State())
	assert.Equal(t, "tok-1", s.Token())
	user, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "pat@example.com", user.Email)
	assert.Zero(t, api.loginCalls)
}

func TestCorruptPersistedUserClearsStorage(t *testing.T) {
	st := storage.NewMemory()
	require.NoError(t, st.Set(storage.KeyAuthToken, []byte("tok-1")))
	require.NoError(t, st.Set(storage.KeyUser, []byte(`{"id":`)))

	s := New(st, &fakeAuth{})

	assert.False(t, s.IsAuthenticated())
	assert.Equal(t, StateAnonymous, s.State())
	_, ok := st.Get(storage.KeyAuthToken)
	assert.False(t, ok, "storage should be cleared")
}

func TestMissingTokenStaysAnonymous(t *testing.T) {
	st := storage.NewMemory()
	require.NoError(t, st.Set(storage.KeyUser, []byte(`{"id":7}`)))

	s := New(st, &fakeAuth{})
	assert.Equal(t, StateAnonymous, s.State())
}

func TestLoginPersistsSession(t *testing.T) {
	st := storage.NewMemory()
	api := &fakeAuth{payload: client.AuthPayload{
		User:  models.User{ID: 3, Name: "Sam", Email: "sam@example.com"},
		Token: "tok-3",
	}}
	s := New(st, api)

	require.NoError(t, s.Login(context.Background(), client.Credentials{Email: "sam@example.com", Password: "pw"}))

	assert.True(t, s.IsAuthenticated())
	token, ok := st.Get(storage.KeyAuthToken)
	require.True(t, ok)
	assert.Equal(t, "tok-3", string(token))
	_, ok = st.Get(storage.KeyUser)
	assert.True(t, ok)
}

func TestLoginFailureIsReturnedAndStateUntouched(t *testing.T) {
	api := &fakeAuth{err: &client.APIError{Kind: client.KindUnauthorized, StatusCode: 401, Message: "Invalid credentials"}}
	s := New(storage.NewMemory(), api)

	err := s.Login(context.Background(), client.Credentials{})
	require.Error(t, err)
	assert.True(t, client.IsUnauthorized(err))
	assert.False(t, s.IsAuthenticated())
}

func TestLoginExtractsTokenFromNestedShape(t *testing.T) {
	// End to end through the real client: the backend answers with the
	// nested {data: {user, token}} shape.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"user":{"id":1,"name":"Ada","email":"ada@example.com","role":"admin"},"token":"abc"}}`))
	}))
	defer srv.Close()

	st := storage.NewMemory()
	s := New(st, client.New(srv.URL))

	require.NoError(t, s.Login(context.Background(), client.Credentials{Email: "ada@example.com", Password: "pw"}))
	assert.Equal(t, "abc", s.Token())
	user, _ := s.User()
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestRegisterWithoutTokenIsNotAnError(t *testing.T) {
	api := &fakeAuth{err: &client.ParseError{Reason: "no token received from server"}}
	s := New(storage.NewMemory(), api)

	require.NoError(t, s.Register(context.Background(), client.RegisterForm{}))
	assert.False(t, s.IsAuthenticated())
}

func TestLogoutAlwaysClearsLocalState(t *testing.T) {
	st := storage.NewMemory()
	require.NoError(t, st.Set(storage.KeyAuthToken, []byte("tok-1")))
	require.NoError(t, st.Set(storage.KeyUser, []byte(`{"id":7,"email":"pat@example.com"}`)))

	api := &fakeAuth{logoutErr: &client.APIError{Kind: client.KindUnauthorized, StatusCode: 401, Message: "expired"}}
	s := New(st, api)
	require.True(t, s.IsAuthenticated())

	s.Logout(context.Background())

	assert.Equal(t, 1, api.logoutCalls, "remote invalidation should be attempted first")
	assert.False(t, s.IsAuthenticated())
	_, ok := st.Get(storage.KeyAuthToken)
	assert.False(t, ok)
	_, ok = st.Get(storage.KeyUser)
	assert.False(t, ok)
}

func TestLogoutWhileAnonymousSkipsRemoteCall(t *testing.T) {
	api := &fakeAuth{}
	s := New(storage.NewMemory(), api)

	s.Logout(context.Background())
	assert.Zero(t, api.logoutCalls)
}
