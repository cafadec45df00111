package gateways

import (
	"context"

	"github.com/berrysetup/berrysetup/internal/domain/entities"
)

// NegotiationRequest carries everything the operator needs to decide what
// to do about a failed resolution
type NegotiationRequest struct {
	Software          string // Entry ID shown to the operator
	SourceDescription string // e.g. "owner/repo" or the listing page URL
	FallbackURL       string // May be empty; the fallback choice is then hidden
	Reason            string // Why automatic resolution did not produce a URL
}

// Negotiator presents the interactive fallback choice. It must never
// substitute a URL without operator consent; aborting the prompt is
// equivalent to choosing skip.
type Negotiator interface {
	Negotiate(ctx context.Context, req NegotiationRequest) entities.Resolution
}
