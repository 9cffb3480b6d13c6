// translate/translator_test.go
package translate_test

import (
	"context"
	"encoding/json"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dev-mohitbeniwal/warden/cache"
	warden_mock "github.com/dev-mohitbeniwal/warden/test/mock"
	"github.com/dev-mohitbeniwal/warden/translate"
)

func newTranslator(t *warden_mock.Transport) (*translate.Translator, *cache.Store[string]) {
	translations := cache.New[string](50, time.Minute)
	return translate.NewTranslator(t, translations), translations
}

func postedNames(expected ...string) any {
	return mock.MatchedBy(func(body any) bool {
		m, ok := body.(map[string]any)
		if !ok {
			return false
		}
		names, ok := m["uuids"].([]string)
		if !ok || len(names) != len(expected) {
			return false
		}
		sorted := append([]string(nil), names...)
		sort.Strings(sorted)
		want := append([]string(nil), expected...)
		sort.Strings(want)
		for i := range want {
			if sorted[i] != want[i] {
				return false
			}
		}
		return true
	})
}

func TestGetName(t *testing.T) {
	ctx := context.Background()

	t.Run("AllCached_NoNetworkCall", func(t *testing.T) {
		transport := new(warden_mock.Transport)
		translator, translations := newTranslator(transport)
		translations.Set(translate.UUIDKey("uuid-1"), "one")
		translations.Set(translate.UUIDKey("uuid-2"), "two")

		names, err := translator.GetName(ctx, []string{"uuid-1", "uuid-2"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"uuid-1": "one", "uuid-2": "two"}, names)
		transport.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("PartialHit_OneBatchForMisses", func(t *testing.T) {
		transport := new(warden_mock.Transport)
		transport.On("Post", mock.Anything, "/names", postedNames("uuid-2", "uuid-3")).
			Return(json.RawMessage(`{"uuid-2": "two", "uuid-3": "three"}`), nil).Once()
		translator, translations := newTranslator(transport)
		translations.Set(translate.UUIDKey("uuid-1"), "one")

		names, err := translator.GetName(ctx, []string{"uuid-1", "uuid-2", "uuid-3"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"uuid-1": "one", "uuid-2": "two", "uuid-3": "three"}, names)

		// The fetched pairs are now cached.
		for uuid, want := range map[string]string{"uuid-2": "two", "uuid-3": "three"} {
			got, ok := translations.Get(translate.UUIDKey(uuid))
			require.True(t, ok)
			assert.Equal(t, want, got)
		}
		transport.AssertExpectations(t)
	})

	t.Run("UnknownUUID_NotCached", func(t *testing.T) {
		transport := new(warden_mock.Transport)
		transport.On("Post", mock.Anything, "/names", mock.Anything).
			Return(json.RawMessage(`{}`), nil).Twice()
		translator, translations := newTranslator(transport)

		names, err := translator.GetName(ctx, []string{"uuid-ghost"})
		require.NoError(t, err)
		assert.Empty(t, names)
		_, ok := translations.Get(translate.UUIDKey("uuid-ghost"))
		assert.False(t, ok)

		// Misses are re-attempted on every call, never negatively cached.
		_, err = translator.GetName(ctx, []string{"uuid-ghost"})
		require.NoError(t, err)
		transport.AssertExpectations(t)
	})
}

func TestGetUUID(t *testing.T) {
	ctx := context.Background()

	t.Run("RequestConstructors", func(t *testing.T) {
		_, err := translate.NewUUIDRequest("")
		assert.Error(t, err)

		_, err = translate.NewScopedUUIDRequest("alice", "", []string{"worker"})
		assert.Error(t, err)

		_, err = translate.NewScopedUUIDRequest("alice", translate.TypeUser, nil)
		assert.Error(t, err)

		_, err = translate.NewScopedUUIDRequest("alice", translate.TypeUser, []string{"worker"})
		assert.NoError(t, err)
	})

	t.Run("AccountOnly_CachedShortCircuit", func(t *testing.T) {
		transport := new(warden_mock.Transport)
		translator, translations := newTranslator(transport)
		translations.Set(translate.AccountKey("alice"), "uuid-a")

		req, err := translate.NewUUIDRequest("alice")
		require.NoError(t, err)

		result, err := translator.GetUUID(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "uuid-a", result.Account)
		transport.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("AccountOnly_FetchOnMiss", func(t *testing.T) {
		transport := new(warden_mock.Transport)
		transport.On("Post", mock.Anything, "/uuids", mock.Anything).
			Return(json.RawMessage(`{"account": "uuid-a"}`), nil).Once()
		translator, translations := newTranslator(transport)

		req, err := translate.NewUUIDRequest("alice")
		require.NoError(t, err)

		result, err := translator.GetUUID(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "uuid-a", result.Account)

		cached, ok := translations.Get(translate.AccountKey("alice"))
		require.True(t, ok)
		assert.Equal(t, "uuid-a", cached)
	})

	t.Run("Scoped_BatchesOnlyMisses", func(t *testing.T) {
		transport := new(warden_mock.Transport)
		transport.On("Post", mock.Anything, "/uuids", mock.MatchedBy(func(body any) bool {
			m, ok := body.(map[string]any)
			if !ok {
				return false
			}
			names, ok := m["names"].([]string)
			return ok && m["account"] == "alice" && m["type"] == translate.TypeUser &&
				len(names) == 1 && names[0] == "worker"
		})).Return(json.RawMessage(`{"account": "uuid-a", "uuids": {"worker": "uuid-u"}}`), nil).Once()
		translator, translations := newTranslator(transport)
		translations.Set(translate.NameKey("alice", translate.TypeUser, "deploy"), "uuid-d")

		req, err := translate.NewScopedUUIDRequest("alice", translate.TypeUser, []string{"deploy", "worker"})
		require.NoError(t, err)

		result, err := translator.GetUUID(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "uuid-a", result.Account)
		assert.Equal(t, map[string]string{"deploy": "uuid-d", "worker": "uuid-u"}, result.UUIDs)

		cached, ok := translations.Get(translate.NameKey("alice", translate.TypeUser, "worker"))
		require.True(t, ok)
		assert.Equal(t, "uuid-u", cached)
		transport.AssertExpectations(t)
	})

	t.Run("Scoped_AllCached_NoNetworkCall", func(t *testing.T) {
		transport := new(warden_mock.Transport)
		translator, translations := newTranslator(transport)
		translations.Set(translate.AccountKey("alice"), "uuid-a")
		translations.Set(translate.NameKey("alice", translate.TypeUser, "worker"), "uuid-u")

		req, err := translate.NewScopedUUIDRequest("alice", translate.TypeUser, []string{"worker"})
		require.NoError(t, err)

		result, err := translator.GetUUID(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "uuid-a", result.Account)
		assert.Equal(t, map[string]string{"worker": "uuid-u"}, result.UUIDs)
		transport.AssertNotCalled(t, "Post", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Scoped_RefreshesStaleAccountUUID", func(t *testing.T) {
		transport := new(warden_mock.Transport)
		transport.On("Post", mock.Anything, "/uuids", mock.Anything).
			Return(json.RawMessage(`{"account": "uuid-a-fresh", "uuids": {"worker": "uuid-u"}}`), nil).Once()
		translator, translations := newTranslator(transport)
		translations.Set(translate.AccountKey("alice"), "uuid-a-stale")

		req, err := translate.NewScopedUUIDRequest("alice", translate.TypeUser, []string{"worker"})
		require.NoError(t, err)

		// The response is authoritative for the account uuid even though a
		// cached value existed.
		result, err := translator.GetUUID(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, "uuid-a-fresh", result.Account)

		cached, _ := translations.Get(translate.AccountKey("alice"))
		assert.Equal(t, "uuid-a-fresh", cached)
	})
}
