// auth/authenticator.go

package auth

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	warden_errors "github.com/dev-mohitbeniwal/warden/errors"
	"github.com/dev-mohitbeniwal/warden/identity"
	logger "github.com/dev-mohitbeniwal/warden/logging"
	"github.com/dev-mohitbeniwal/warden/model"
)

// Request describes a key-based authentication attempt. User is optional;
// when empty the request authenticates the bare account. TargetAccount
// optionally binds the request to an account uuid, enforcing the
// cross-account restriction.
type Request struct {
	Account       string
	User          string
	TargetAccount string
	Material      SignatureMaterial
}

// Authenticator resolves an identity through the retriever and verifies the
// request signature against its registered keys.
type Authenticator struct {
	retriever *identity.Retriever
	verifier  Verifier
}

// NewAuthenticator creates an authenticator. A nil verifier selects the
// default SSHVerifier.
func NewAuthenticator(retriever *identity.Retriever, verifier Verifier) *Authenticator {
	if verifier == nil {
		verifier = SSHVerifier{}
	}
	return &Authenticator{
		retriever: retriever,
		verifier:  verifier,
	}
}

// Authenticate resolves and verifies the identity named by req, returning
// the authenticated principal.
func (a *Authenticator) Authenticate(ctx context.Context, req Request) (*model.Principal, error) {
	if req.Account == "" {
		return nil, fmt.Errorf("authentication request must name an account")
	}
	if req.Material.KeyID == "" {
		return nil, fmt.Errorf("authentication request must name a key id")
	}

	var principal *model.Principal
	var err error
	if req.User != "" {
		principal, err = a.retriever.GetUser(ctx, req.Account, req.User, false)
	} else {
		principal, err = a.retriever.GetAccount(ctx, req.Account)
	}
	if err != nil {
		return nil, err
	}

	keys := principal.Account.Keys
	login := principal.Account.Login
	if principal.User != nil {
		keys = principal.User.Keys
		login = principal.User.Login
	}
	key, ok := keys[req.Material.KeyID]
	if !ok {
		return nil, &warden_errors.KeyDoesNotExistError{Login: login, KeyID: req.Material.KeyID}
	}
	if !a.verifier.Verify(req.Material, key) {
		logger.Warn("Signature verification failed",
			zap.String("login", login),
			zap.String("keyId", req.Material.KeyID))
		return nil, warden_errors.ErrInvalidSignature
	}

	if req.TargetAccount != "" && req.TargetAccount != principal.Account.UUID && !principal.Account.IsOperator {
		return nil, &warden_errors.CrossAccountError{
			AccountUUID: principal.Account.UUID,
			TargetUUID:  req.TargetAccount,
		}
	}
	return principal, nil
}
