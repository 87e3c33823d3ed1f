package quotes

import (
	"offerly/internal/availability"
	"offerly/internal/exclusions"
	"offerly/internal/pricing"
)

// SessionView is the wire shape of a wizard session: configuration, stage,
// resolved services, price preview and any advisory warnings.
type SessionView struct {
	SessionID         string                        `json:"session_id"`
	Stage             string                        `json:"stage"`
	Configuration     QuoteConfiguration            `json:"configuration"`
	EffectiveServices []exclusions.EffectiveService `json:"effective_services,omitempty"`
	Breakdown         *pricing.Breakdown            `json:"breakdown,omitempty"`
	Advisories        []availability.Conflict       `json:"advisories,omitempty"`
}

func viewOf(b *Builder) *SessionView {
	cfg := b.Config()
	return &SessionView{
		SessionID:         cfg.SessionID,
		Stage:             cfg.Stage.String(),
		Configuration:     cfg,
		EffectiveServices: b.Effective(),
		Breakdown:         b.Breakdown(),
		Advisories:        b.Advisories(),
	}
}
