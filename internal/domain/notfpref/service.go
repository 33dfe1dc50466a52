package notfpref

import (
	"context"
)

// Service orchestrates preference writes and resolution for the API layer.
type Service interface {
	SetPreference(ctx context.Context, siteID, memberID string, req SetPreferenceRequest) (PreferenceResponse, error)
	RemovePreference(ctx context.Context, siteID, memberID string, req RemovePreferenceRequest) (bool, error)
	ListPreferences(ctx context.Context, siteID, memberID string) ([]PreferenceResponse, error)

	// ResolveForPage computes the effective preference for one member on one
	// page, combining own settings with group inheritance.
	ResolveForPage(ctx context.Context, siteID, memberID, pageID string) (EffectivePreferenceResponse, error)

	// ResolveForPages resolves one member across many pages with a single
	// bulk read, e.g. when rendering a topic list. Result is keyed by page id.
	ResolveForPages(ctx context.Context, siteID, memberID string, pageIDs []string) (map[string]EffectivePreferenceResponse, error)

	// ResolveForSite computes the member's effective whole-site preference.
	ResolveForSite(ctx context.Context, siteID, memberID string) (EffectivePreferenceResponse, error)
}
