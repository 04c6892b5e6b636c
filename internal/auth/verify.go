// ABOUTME: Verification pipeline resolving a strategy and checking submitted credentials
// ABOUTME: Collapses not-found, ineligible, and wrong-secret into one uniform failure

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/AtharvGangwar48/campus-gateway/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// Verify authenticates the submitted fields against the named strategy
// and returns the normalized Identity on success.
//
// The pipeline performs no writes and touches no shared mutable state;
// concurrent calls are independent. All credential-level failures return
// ErrInvalidCredentials with the specific cause logged at debug level
// only, so callers cannot distinguish a missing account from a wrong
// password. Store infrastructure failures return ErrStoreUnavailable
// instead, since those say nothing about the credentials.
func (r *Registry) Verify(ctx context.Context, strategyName string, fields map[string]string) (*Identity, error) {
	strat, ok := r.strategies[Role(strategyName)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategyName)
	}

	key := fields[strat.KeyField]
	secret := fields[strat.SecretField]
	if key == "" || secret == "" {
		r.logger.Debug("verification failed", "strategy", strategyName, "reason", "missing fields")
		return nil, ErrInvalidCredentials
	}

	cred, err := strat.find(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a bcrypt comparison so a lookup miss is not
			// observably faster than a wrong password
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(secret))
			r.logger.Debug("verification failed", "strategy", strategyName, "reason", "principal not found")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if reason := strat.eligible(cred); reason != "" {
		r.logger.Debug("verification failed", "strategy", strategyName, "reason", reason)
		return nil, ErrInvalidCredentials
	}

	if !strat.compare(cred, secret) {
		r.logger.Debug("verification failed", "strategy", strategyName, "reason", "secret mismatch")
		return nil, ErrInvalidCredentials
	}

	identity := cred.identity
	r.logger.Info("verification succeeded", "strategy", strategyName, "principal_id", identity.ID)
	return &identity, nil
}
