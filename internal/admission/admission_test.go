package admission_test

import (
	"errors"
	"testing"

	"github.com/mauv0809/urban-bracket/internal/admission"
	"github.com/mauv0809/urban-bracket/internal/apperr"
	"github.com/mauv0809/urban-bracket/internal/arena"
	"github.com/mauv0809/urban-bracket/internal/bracket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func knownUser(id string) func(string) (*arena.User, error) {
	return func(userID string) (*arena.User, error) {
		if userID == id {
			return &arena.User{ID: id, Name: "Test User"}, nil
		}
		return nil, nil
	}
}

func TestCheck_BracketMissing(t *testing.T) {
	registry := bracket.NewMock()
	store := arena.NewMock()
	ctrl := admission.New(registry, store)

	_, err := ctrl.Check("u1", "nope")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "bracket does not exist", apperr.Message(err))
	// The user lookup must not even happen.
	assert.Empty(t, store.GetUserCalls)
}

func TestCheck_Whitelist(t *testing.T) {
	registry := bracket.NewMock()
	registry.Add(&bracket.Bracket{
		ID:        "B1",
		Whitelist: bracket.Gate{Active: true, Users: []string{"u2"}},
	})
	store := arena.NewMock()
	store.GetUserFunc = knownUser("u1")
	ctrl := admission.New(registry, store)

	_, err := ctrl.Check("u1", "B1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	assert.Equal(t, "not whitelisted", apperr.Message(err))
}

func TestCheck_BlacklistBeatsWhitelist(t *testing.T) {
	// A user on both lists is still rejected: whitelist admits, then
	// blacklist excludes.
	registry := bracket.NewMock()
	registry.Add(&bracket.Bracket{
		ID:        "B1",
		Whitelist: bracket.Gate{Active: true, Users: []string{"u1"}},
		Blacklist: bracket.Gate{Active: true, Users: []string{"u1"}},
	})
	store := arena.NewMock()
	store.GetUserFunc = knownUser("u1")
	ctrl := admission.New(registry, store)

	_, err := ctrl.Check("u1", "B1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindForbidden, apperr.KindOf(err))
	assert.Equal(t, "blacklisted", apperr.Message(err))
}

func TestCheck_WhitelistCheckedFirst(t *testing.T) {
	// Not on either list with both active: the whitelist failure wins.
	registry := bracket.NewMock()
	registry.Add(&bracket.Bracket{
		ID:        "B1",
		Whitelist: bracket.Gate{Active: true, Users: []string{"u9"}},
		Blacklist: bracket.Gate{Active: true, Users: []string{"u8"}},
	})
	store := arena.NewMock()
	store.GetUserFunc = knownUser("u1")
	ctrl := admission.New(registry, store)

	_, err := ctrl.Check("u1", "B1")
	require.Error(t, err)
	assert.Equal(t, "not whitelisted", apperr.Message(err))
}

func TestCheck_UserMissing(t *testing.T) {
	registry := bracket.NewMock()
	registry.Add(&bracket.Bracket{ID: "B1"})
	store := arena.NewMock()
	ctrl := admission.New(registry, store)

	_, err := ctrl.Check("ghost", "B1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, "user does not exist", apperr.Message(err))
}

func TestCheck_Success(t *testing.T) {
	registry := bracket.NewMock()
	registry.Add(&bracket.Bracket{
		ID:        "B1",
		Blacklist: bracket.Gate{Active: true, Users: []string{"u2"}},
		Specs:     bracket.Specs{StartRating: 1000},
	})
	store := arena.NewMock()
	store.GetUserFunc = knownUser("u1")
	ctrl := admission.New(registry, store)

	b, err := ctrl.Check("u1", "B1")
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, 1000.0, b.Specs.StartRating)
}

func TestCheck_StoreFailureIsInternal(t *testing.T) {
	registry := bracket.NewMock()
	registry.GetFunc = func(string) (*bracket.Bracket, error) {
		return nil, errors.New("SQLITE_IOERR")
	}
	ctrl := admission.New(registry, arena.NewMock())

	_, err := ctrl.Check("u1", "B1")
	require.Error(t, err)
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	assert.Equal(t, "something went wrong", apperr.Message(err))
}
