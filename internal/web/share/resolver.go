// Package share serves token-scoped public content.
//
// A share link grants access to exactly one content record, addressed
// by an unguessable token. Every request hits storage directly: caching
// a lookup here would keep revoked links alive past revocation.
package share

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/meridianworks/meridian.studio/internal/storage"
	apperrors "github.com/meridianworks/meridian.studio/internal/web/platform/errors"
	"github.com/meridianworks/meridian.studio/internal/web/platform/metrics"
)

const tracerName = "meridian.studio/web/share"

// Lookup outcome labels recorded on the share metrics counter.
const (
	outcomeActive  = "active"
	outcomeRevoked = "revoked"
	outcomeMissing = "missing"
	outcomeError   = "error"
)

// Resolver resolves share tokens to active content records.
type Resolver struct {
	Store   storage.ShareStore
	Metrics *metrics.Registry
}

// Resolve returns the active content for token. Missing and revoked
// tokens are both reported as not found so a revoked link is
// indistinguishable from one that never existed.
func (r *Resolver) Resolve(ctx context.Context, token string) (storage.ShareableContent, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "share.Resolve")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		r.Metrics.CountShareLookup(outcomeMissing)
		return storage.ShareableContent{}, apperrors.E(apperrors.KindNotFound, "share not found")
	}

	content, err := r.Store.GetShareableContentByToken(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			r.Metrics.CountShareLookup(outcomeMissing)
			span.SetAttributes(attribute.String("share.outcome", outcomeMissing))
			return storage.ShareableContent{}, apperrors.E(apperrors.KindNotFound, "share not found")
		}
		r.Metrics.CountShareLookup(outcomeError)
		span.SetAttributes(attribute.String("share.outcome", outcomeError))
		return storage.ShareableContent{}, err
	}
	if !content.IsActive() {
		r.Metrics.CountShareLookup(outcomeRevoked)
		span.SetAttributes(attribute.String("share.outcome", outcomeRevoked))
		return storage.ShareableContent{}, apperrors.E(apperrors.KindNotFound, "share not found")
	}

	r.Metrics.CountShareLookup(outcomeActive)
	span.SetAttributes(attribute.String("share.outcome", outcomeActive))
	return content, nil
}
