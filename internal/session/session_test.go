package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/medimart/medimart/internal/model"
)

func testUser() model.UserProfile {
	return model.UserProfile{
		ID:          "u1",
		Name:        "Ann",
		Email:       "ann@example.com",
		AccountType: model.RoleCustomer,
	}
}

type cookieStub struct {
	token   string
	cleared int
}

func (c *cookieStub) SetAuthCookie(token string) { c.token = token }
func (c *cookieStub) ClearAuthCookie()           { c.token = ""; c.cleared++ }

func TestFileStorage(t *testing.T) {
	storage := NewFileStorage(filepath.Join(t.TempDir(), "session.json"))

	_, ok := storage.Get(KeyToken)
	require.False(t, ok)

	require.NoError(t, storage.Set(KeyToken, "abc"))
	require.NoError(t, storage.Set(KeyUser, `{"accountType":"Customer"}`))

	token, ok := storage.Get(KeyToken)
	require.True(t, ok)
	require.Equal(t, "abc", token)

	require.NoError(t, storage.Delete(KeyToken))
	_, ok = storage.Get(KeyToken)
	require.False(t, ok)

	require.NoError(t, storage.Clear())
	_, ok = storage.Get(KeyUser)
	require.False(t, ok)
}

func TestSqliteStorage(t *testing.T) {
	storage, err := NewSqliteStorage(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	defer storage.Close()

	require.NoError(t, storage.Set(KeyToken, "abc"))
	// перезапись того же ключа
	require.NoError(t, storage.Set(KeyToken, "def"))

	token, ok := storage.Get(KeyToken)
	require.True(t, ok)
	require.Equal(t, "def", token)

	require.NoError(t, storage.Clear())
	_, ok = storage.Get(KeyToken)
	require.False(t, ok)
}

func TestInitializeAuth(t *testing.T) {
	const (
		token = "abc"
		user  = `{"_id":"u1","name":"Ann","email":"ann@example.com","accountType":"Customer"}`
	)

	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(KeyToken, token))
	require.NoError(t, storage.Set(KeyUser, user))

	cookies := &cookieStub{}
	manager := NewManager(storage, cookies, zap.NewNop())

	sess := manager.InitializeAuth()
	require.True(t, sess.IsAuthenticated)
	require.Equal(t, token, sess.Token)
	require.NotNil(t, sess.User)
	require.Equal(t, "Customer", string(sess.User.AccountType))
	require.Equal(t, token, cookies.token)

	// идемпотентность: повторный вызов даёт то же состояние
	again := manager.InitializeAuth()
	require.Equal(t, sess, again)
}

func TestInitializeAuthMalformedUser(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(KeyToken, "abc"))
	require.NoError(t, storage.Set(KeyUser, "{not json"))

	manager := NewManager(storage, &cookieStub{}, zap.NewNop())

	// повреждённый профиль: сессия и хранилище очищены
	sess := manager.InitializeAuth()
	require.False(t, sess.IsAuthenticated)
	require.Nil(t, sess.User)
	require.Empty(t, sess.Token)

	_, ok := storage.Get(KeyToken)
	require.False(t, ok)
	_, ok = storage.Get(KeyUser)
	require.False(t, ok)
}

func TestInitializeAuthMissingToken(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(KeyUser, `{"accountType":"Customer"}`))

	manager := NewManager(storage, &cookieStub{}, zap.NewNop())

	sess := manager.InitializeAuth()
	require.False(t, sess.IsAuthenticated)
	require.Nil(t, sess.User)
}

func TestLogout(t *testing.T) {
	storage := NewMemoryStorage()
	cookies := &cookieStub{}
	manager := NewManager(storage, cookies, zap.NewNop())

	require.NoError(t, manager.SetSession("abc", testUser()))
	require.True(t, manager.Session().IsAuthenticated)

	manager.Logout()

	sess := manager.Session()
	require.False(t, sess.IsAuthenticated)
	require.Nil(t, sess.User)
	_, ok := storage.Get(KeyToken)
	require.False(t, ok)
	require.Empty(t, cookies.token)
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	// срок читается без проверки подписи
	got, err := TokenExpiry(signed)
	require.NoError(t, err)
	require.Equal(t, exp.Unix(), got.Unix())

	_, err = TokenExpiry("not-a-token")
	require.Error(t, err)
}
