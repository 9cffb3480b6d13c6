// translate/translator.go

package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/dev-mohitbeniwal/warden/cache"
	logger "github.com/dev-mohitbeniwal/warden/logging"
	"github.com/dev-mohitbeniwal/warden/transport"
)

const (
	namesPath = "/names"
	uuidsPath = "/uuids"
)

// Translator resolves batches of uuid→name and name→uuid mappings through
// the translation cache, issuing at most one network call per lookup for
// the uncached remainder. Failed lookups are never cached.
type Translator struct {
	transport transport.Transport
	cache     *cache.Store[string]
	group     singleflight.Group
}

// NewTranslator creates a translator over the given transport and
// translation cache.
func NewTranslator(t transport.Transport, c *cache.Store[string]) *Translator {
	return &Translator{
		transport: t,
		cache:     c,
	}
}

// UUIDRequest describes a name→uuid translation. Construct it with
// NewUUIDRequest or NewScopedUUIDRequest.
type UUIDRequest struct {
	account string
	typ     string
	names   []string
}

// NewUUIDRequest builds a request resolving only the account login to its
// uuid.
func NewUUIDRequest(account string) (UUIDRequest, error) {
	if account == "" {
		return UUIDRequest{}, fmt.Errorf("uuid request must name an account")
	}
	return UUIDRequest{account: account}, nil
}

// NewScopedUUIDRequest builds a request that additionally resolves names of
// the given type scoped by the account.
func NewScopedUUIDRequest(account, translationType string, names []string) (UUIDRequest, error) {
	if account == "" {
		return UUIDRequest{}, fmt.Errorf("uuid request must name an account")
	}
	if translationType == "" {
		return UUIDRequest{}, fmt.Errorf("scoped uuid request must carry a type")
	}
	if len(names) == 0 {
		return UUIDRequest{}, fmt.Errorf("scoped uuid request must carry at least one name")
	}
	return UUIDRequest{account: account, typ: translationType, names: names}, nil
}

// UUIDResult is the outcome of a GetUUID call.
type UUIDResult struct {
	Account string
	UUIDs   map[string]string
}

// GetName resolves the given uuids to names. Cached entries are served
// directly; the uncached remainder is fetched in a single batched call and
// merged into the cache. Uuids unknown to the service are simply absent
// from the result.
func (t *Translator) GetName(ctx context.Context, uuids []string) (map[string]string, error) {
	names := make(map[string]string, len(uuids))
	var missing []string
	for _, id := range uuids {
		if name, ok := t.cache.Get(UUIDKey(id)); ok {
			names[id] = name
		} else {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return names, nil
	}

	logger.Debug("Batching uuid→name fetch",
		zap.Int("cached", len(names)),
		zap.Int("missing", len(missing)))

	fetched, err := t.fetchNames(ctx, missing)
	if err != nil {
		return nil, err
	}
	for id, name := range fetched {
		names[id] = name
	}
	return names, nil
}

// GetUUID resolves the account login and, for scoped requests, the given
// names to uuids. The account-uuid translation is always refreshed from a
// batch response, even when it was already cached.
func (t *Translator) GetUUID(ctx context.Context, req UUIDRequest) (*UUIDResult, error) {
	accountUUID, accountCached := t.cache.Get(AccountKey(req.account))

	if req.typ == "" {
		if accountCached {
			return &UUIDResult{Account: accountUUID}, nil
		}
		resp, err := t.fetchUUIDs(ctx, req.account, "", nil)
		if err != nil {
			return nil, err
		}
		return &UUIDResult{Account: resp.Account}, nil
	}

	uuids := make(map[string]string, len(req.names))
	var missing []string
	for _, name := range req.names {
		if id, ok := t.cache.Get(NameKey(req.account, req.typ, name)); ok {
			uuids[name] = id
		} else {
			missing = append(missing, name)
		}
	}
	if accountCached && len(missing) == 0 {
		return &UUIDResult{Account: accountUUID, UUIDs: uuids}, nil
	}

	resp, err := t.fetchUUIDs(ctx, req.account, req.typ, missing)
	if err != nil {
		return nil, err
	}
	for name, id := range resp.UUIDs {
		uuids[name] = id
	}
	return &UUIDResult{Account: resp.Account, UUIDs: uuids}, nil
}

func (t *Translator) fetchNames(ctx context.Context, missing []string) (map[string]string, error) {
	v, err, _ := t.group.Do(flightKey(namesPath, missing), func() (interface{}, error) {
		raw, err := t.transport.Post(ctx, namesPath, map[string]any{"uuids": missing})
		if err != nil {
			return nil, err
		}
		var resp map[string]string
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, fmt.Errorf("failed to decode name translation response: %w", err)
		}
		for id, name := range resp {
			t.cache.Set(UUIDKey(id), name)
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[string]string), nil
}

type uuidsResponse struct {
	Account string            `json:"account"`
	UUIDs   map[string]string `json:"uuids"`
}

func (t *Translator) fetchUUIDs(ctx context.Context, account, translationType string, missing []string) (*uuidsResponse, error) {
	key := flightKey(uuidsPath+"/"+account+"/"+translationType, missing)
	v, err, _ := t.group.Do(key, func() (interface{}, error) {
		body := map[string]any{"account": account}
		if translationType != "" {
			body["type"] = translationType
			body["names"] = missing
		}
		raw, err := t.transport.Post(ctx, uuidsPath, body)
		if err != nil {
			return nil, err
		}
		var resp uuidsResponse
		if err := json.Unmarshal(raw, &resp); err != nil {
			return nil, fmt.Errorf("failed to decode uuid translation response: %w", err)
		}
		// The service is the single source of truth for the account uuid;
		// refresh it on every response.
		t.cache.Set(AccountKey(account), resp.Account)
		for name, id := range resp.UUIDs {
			t.cache.Set(NameKey(account, translationType, name), id)
		}
		return &resp, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*uuidsResponse), nil
}

func flightKey(path string, parts []string) string {
	sorted := append([]string(nil), parts...)
	sort.Strings(sorted)
	return path + "?" + strings.Join(sorted, ",")
}
