package session_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskboard/internal/session"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestDecode(t *testing.T) {
	tok := signToken(t, jwt.MapClaims{"userId": 42, "name": "Ada"})

	sess, err := session.Decode(tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), sess.UserID)
	assert.Equal(t, "Ada", sess.UserName)
	assert.Equal(t, tok, sess.Token)
}

func TestDecode_StringUserID(t *testing.T) {
	sess, err := session.Decode(signToken(t, jwt.MapClaims{"userId": "7"}))
	require.NoError(t, err)
	assert.Equal(t, int64(7), sess.UserID)
	assert.Equal(t, "User", sess.DisplayName())
}

func TestDecode_Rejects(t *testing.T) {
	_, err := session.Decode("not-a-jwt")
	assert.True(t, errors.Is(err, session.ErrInvalidToken))

	_, err = session.Decode(signToken(t, jwt.MapClaims{"name": "Ada"}))
	assert.True(t, errors.Is(err, session.ErrInvalidToken))
}

func TestStore_LoginPersistsAndLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store := session.NewStore(path)
	require.NoError(t, store.Load())

	_, ok := store.Current()
	assert.False(t, ok)
	assert.Equal(t, "", store.Token())

	tok := signToken(t, jwt.MapClaims{"userId": 3, "name": "Grace"})
	_, err := store.Login(tok)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	reloaded := session.NewStore(path)
	require.NoError(t, reloaded.Load())
	sess, ok := reloaded.Current()
	require.True(t, ok)
	assert.Equal(t, int64(3), sess.UserID)
	assert.Equal(t, "Grace", sess.UserName)
	assert.Equal(t, tok, reloaded.Token())
}

func TestStore_LoginRejectsBadToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := session.NewStore(path)

	_, err := store.Login("garbage")
	assert.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no session file should be written")
}

func TestStore_Logout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := session.NewStore(path)

	_, err := store.Login(signToken(t, jwt.MapClaims{"userId": 1}))
	require.NoError(t, err)

	require.NoError(t, store.Logout())
	_, ok := store.Current()
	assert.False(t, ok)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))

	// Second logout is a no-op
	assert.NoError(t, store.Logout())
}

func TestStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	store := session.NewStore(path)
	assert.Error(t, store.Load())
	_, ok := store.Current()
	assert.False(t, ok)
}
