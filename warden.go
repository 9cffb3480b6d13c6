// warden.go

// Package warden is a client for an identity and authorization service. It
// resolves identity blobs and name/uuid translations through two bounded,
// time-expiring caches, and decides authorization requests locally with a
// pure decision engine that delegates policy evaluation to a pluggable rule
// evaluator.
package warden

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/warden/audit"
	"github.com/dev-mohitbeniwal/warden/auth"
	"github.com/dev-mohitbeniwal/warden/cache"
	"github.com/dev-mohitbeniwal/warden/config"
	"github.com/dev-mohitbeniwal/warden/engine"
	warden_errors "github.com/dev-mohitbeniwal/warden/errors"
	"github.com/dev-mohitbeniwal/warden/identity"
	logger "github.com/dev-mohitbeniwal/warden/logging"
	"github.com/dev-mohitbeniwal/warden/model"
	"github.com/dev-mohitbeniwal/warden/translate"
	"github.com/dev-mohitbeniwal/warden/transport"
	"github.com/dev-mohitbeniwal/warden/util"
)

// DecisionEvent is the payload published on util.EventDecision for every
// authorization decision the client makes.
type DecisionEvent struct {
	Principal *model.Principal
	Action    string
	Resource  *model.Resource
	Allowed   bool
	Err       error
}

// Client is the top-level handle. Each client exclusively owns its two
// caches; independent clients never share cache state. All methods are safe
// for concurrent use.
type Client struct {
	transport     transport.Transport
	authCache     *cache.Store[*model.Principal]
	translations  *cache.Store[string]
	retriever     *identity.Retriever
	translator    *translate.Translator
	engine        *engine.Engine
	authenticator *auth.Authenticator
	auditSvc      audit.Service
	eventBus      *util.EventBus
	cancel        context.CancelFunc
	closed        atomic.Bool
}

// NewClient wires a client from the given configuration. A nil cfg selects
// the defaults, a nil transport selects the HTTP transport against the
// configured service URL, and a nil auditRepo selects Elasticsearch or a
// no-op repository according to cfg.Audit.
func NewClient(cfg *config.Configuration, t transport.Transport, evaluator engine.RuleEvaluator, auditRepo audit.Repository) (*Client, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if t == nil {
		t = transport.NewHTTPTransport(cfg.Service.URL, cfg.Service.Timeout)
	}
	if auditRepo == nil {
		if cfg.Audit.Enabled {
			esRepo, err := audit.NewElasticsearchRepository(cfg.Audit.URL)
			if err != nil {
				return nil, err
			}
			auditRepo = esRepo
		} else {
			auditRepo = audit.NoopRepository{}
		}
	}

	authCache := cache.New[*model.Principal](cfg.AuthCache.Size, cfg.AuthCache.TTL)
	translations := cache.New[string](cfg.TranslationCache.Size, cfg.TranslationCache.TTL)
	validator := util.NewValidationUtil()
	retriever := identity.NewRetriever(t, authCache, translations, validator)

	ctx, cancel := context.WithCancel(context.Background())
	eventBus := util.NewEventBus()
	eventBus.Start(ctx)

	c := &Client{
		transport:     t,
		authCache:     authCache,
		translations:  translations,
		retriever:     retriever,
		translator:    translate.NewTranslator(t, translations),
		engine:        engine.NewEngine(evaluator, cfg.Authorization.AdminRole, nil),
		authenticator: auth.NewAuthenticator(retriever, nil),
		auditSvc:      audit.NewService(auditRepo),
		eventBus:      eventBus,
		cancel:        cancel,
	}
	eventBus.Subscribe(util.EventDecision, c.recordDecision)
	return c, nil
}

// GetAccount resolves an account identity blob by login.
func (c *Client) GetAccount(ctx context.Context, login string) (*model.Principal, error) {
	if c.closed.Load() {
		return nil, warden_errors.ErrClientClosed
	}
	return c.retriever.GetAccount(ctx, login)
}

// GetAccountByUUID resolves an account identity blob by uuid.
func (c *Client) GetAccountByUUID(ctx context.Context, uuid string) (*model.Principal, error) {
	if c.closed.Load() {
		return nil, warden_errors.ErrClientClosed
	}
	return c.retriever.GetAccountByUUID(ctx, uuid)
}

// GetUser resolves a user identity blob. With fallback set, a user-not-found
// failure yields the account portion of the blob instead.
func (c *Client) GetUser(ctx context.Context, account, login string, fallback bool) (*model.Principal, error) {
	if c.closed.Load() {
		return nil, warden_errors.ErrClientClosed
	}
	return c.retriever.GetUser(ctx, account, login, fallback)
}

// GetUserByUUID resolves a user identity blob by uuid.
func (c *Client) GetUserByUUID(ctx context.Context, uuid string) (*model.Principal, error) {
	if c.closed.Load() {
		return nil, warden_errors.ErrClientClosed
	}
	return c.retriever.GetUserByUUID(ctx, uuid)
}

// GetName resolves a batch of uuids to names.
func (c *Client) GetName(ctx context.Context, uuids []string) (map[string]string, error) {
	if c.closed.Load() {
		return nil, warden_errors.ErrClientClosed
	}
	return c.translator.GetName(ctx, uuids)
}

// GetUUID resolves an account login and optionally a scoped batch of names
// to uuids.
func (c *Client) GetUUID(ctx context.Context, req translate.UUIDRequest) (*translate.UUIDResult, error) {
	if c.closed.Load() {
		return nil, warden_errors.ErrClientClosed
	}
	return c.translator.GetUUID(ctx, req)
}

// Authenticate verifies a key-based authentication request and returns the
// authenticated principal.
func (c *Client) Authenticate(ctx context.Context, req auth.Request) (*model.Principal, error) {
	if c.closed.Load() {
		return nil, warden_errors.ErrClientClosed
	}
	return c.authenticator.Authenticate(ctx, req)
}

// Authorize decides the request. It returns nil to allow, or one of the
// structured access errors. Every decision is published on the event bus
// and recorded in the audit trail.
func (c *Client) Authorize(ctx context.Context, req *model.AuthorizationRequest) error {
	if c.closed.Load() {
		return warden_errors.ErrClientClosed
	}
	err := c.engine.Authorize(req)

	c.eventBus.Publish(ctx, util.EventDecision, DecisionEvent{
		Principal: req.Principal,
		Action:    req.Action,
		Resource:  req.Resource,
		Allowed:   err == nil,
		Err:       err,
	})
	return err
}

// Subscribe registers a handler for client events, e.g. decision hooks.
func (c *Client) Subscribe(eventType string, handler util.EventHandler) {
	c.eventBus.Subscribe(eventType, handler)
}

func (c *Client) recordDecision(ctx context.Context, event util.Event) error {
	decision, ok := event.Payload.(DecisionEvent)
	if !ok {
		return nil
	}
	log := audit.DecisionLog{
		Timestamp:      time.Now().UTC(),
		PrincipalUUID:  decision.Principal.Account.UUID,
		PrincipalLogin: decision.Principal.Account.Login,
		Action:         decision.Action,
		ResourceOwner:  decision.Resource.Owner.Account.UUID,
		Allowed:        decision.Allowed,
	}
	if decision.Err != nil {
		log.Reason = decision.Err.Error()
	}
	return c.auditSvc.LogDecision(ctx, log)
}

// Close releases the transport and clears both caches. No cache hit is
// served after Close; subsequent calls fail with ErrClientClosed.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	c.cancel()
	c.authCache.Reset()
	c.translations.Reset()
	err := c.transport.Close()
	logger.Info("Client closed", zap.Bool("transportClosed", err == nil))
	return err
}
