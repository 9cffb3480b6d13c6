// identity/retriever.go

package identity

import (
	"context"
	"net/url"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/dev-mohitbeniwal/warden/cache"
	warden_errors "github.com/dev-mohitbeniwal/warden/errors"
	logger "github.com/dev-mohitbeniwal/warden/logging"
	"github.com/dev-mohitbeniwal/warden/model"
	"github.com/dev-mohitbeniwal/warden/translate"
	"github.com/dev-mohitbeniwal/warden/transport"
	"github.com/dev-mohitbeniwal/warden/util"
)

// Retriever resolves account and user identity blobs through the auth
// cache, fetching from the identity service on a miss. Every fetched blob
// opportunistically backfills the translation cache so later name/uuid
// lookups for the same identity skip the network. Fetch failures are never
// cached, and concurrent misses for the same key share a single fetch.
type Retriever struct {
	transport    transport.Transport
	authCache    *cache.Store[*model.Principal]
	translations *cache.Store[string]
	validator    *util.ValidationUtil
	group        singleflight.Group
}

// NewRetriever creates a retriever over the given transport and caches.
func NewRetriever(t transport.Transport, authCache *cache.Store[*model.Principal], translations *cache.Store[string], validator *util.ValidationUtil) *Retriever {
	return &Retriever{
		transport:    t,
		authCache:    authCache,
		translations: translations,
		validator:    validator,
	}
}

// GetAccount resolves an account identity blob by login.
func (r *Retriever) GetAccount(ctx context.Context, login string) (*model.Principal, error) {
	return r.fetch(ctx, "/accounts/"+url.PathEscape(login), false)
}

// GetAccountByUUID resolves an account identity blob by uuid.
func (r *Retriever) GetAccountByUUID(ctx context.Context, uuid string) (*model.Principal, error) {
	return r.fetch(ctx, "/accounts/uuid/"+url.PathEscape(uuid), false)
}

// GetUser resolves a user identity blob by login under the given account
// login. With fallback set, a user-not-found failure still yields the
// account portion of the blob instead of failing the call.
func (r *Retriever) GetUser(ctx context.Context, account, login string, fallback bool) (*model.Principal, error) {
	path := "/users/" + url.PathEscape(account) + "/" + url.PathEscape(login)
	if fallback {
		path += "?fallback=true"
	}
	return r.fetch(ctx, path, fallback)
}

// GetUserByUUID resolves a user identity blob by uuid.
func (r *Retriever) GetUserByUUID(ctx context.Context, uuid string) (*model.Principal, error) {
	return r.fetch(ctx, "/users/uuid/"+url.PathEscape(uuid), false)
}

// fetch serves path from the auth cache, or performs one coalesced network
// fetch. The request path doubles as the canonical cache key.
func (r *Retriever) fetch(ctx context.Context, path string, fallback bool) (*model.Principal, error) {
	if principal, ok := r.authCache.Get(path); ok {
		logger.Debug("Auth cache hit", zap.String("key", path))
		return principal, nil
	}

	v, err, _ := r.group.Do(path, func() (interface{}, error) {
		raw, err := r.transport.Get(ctx, path)
		if err != nil {
			if fallback && warden_errors.IsUserNotFound(err) {
				return r.accountFallback(path, err)
			}
			return nil, err
		}
		principal, err := model.DecodePrincipal(raw)
		if err != nil {
			return nil, err
		}
		if err := r.validator.ValidateIdentity(principal); err != nil {
			return nil, err
		}
		r.store(path, principal)
		return principal, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Principal), nil
}

// accountFallback extracts the account portion of the blob the service
// attaches to its user-not-found failure.
func (r *Retriever) accountFallback(path string, fetchErr error) (interface{}, error) {
	apiErr := warden_errors.AsAPIError(fetchErr)
	if apiErr == nil || len(apiErr.Body) == 0 {
		return nil, fetchErr
	}
	principal, err := model.DecodePrincipal(apiErr.Body)
	if err != nil {
		return nil, fetchErr
	}
	principal.User = nil
	logger.Debug("User not found, falling back to account blob", zap.String("key", path))
	r.store(path, principal)
	return principal, nil
}

func (r *Retriever) store(key string, principal *model.Principal) {
	r.authCache.Set(key, principal)

	account := principal.Account
	r.translations.Set(translate.UUIDKey(account.UUID), account.Login)
	r.translations.Set(translate.AccountKey(account.Login), account.UUID)
	if user := principal.User; user != nil {
		r.translations.Set(translate.UUIDKey(user.UUID), user.Login)
		r.translations.Set(translate.NameKey(account.Login, translate.TypeUser, user.Login), user.UUID)
	}
}
