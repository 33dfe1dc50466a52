package notfpref

import (
	"context"
	"fmt"

	"github.com/talkweave/forum-backend-go/internal/domain/member"
	"github.com/talkweave/forum-backend-go/internal/domain/notfpref"
	"github.com/talkweave/forum-backend-go/internal/domain/page"
)

type NotfPrefServiceImpl struct {
	prefRepo   notfpref.Repository
	pageRepo   page.Repository
	memberRepo member.Repository
}

// NewNotfPrefService creates a new notification preference service
func NewNotfPrefService(
	prefRepo notfpref.Repository,
	pageRepo page.Repository,
	memberRepo member.Repository,
) notfpref.Service {
	return &NotfPrefServiceImpl{
		prefRepo:   prefRepo,
		pageRepo:   pageRepo,
		memberRepo: memberRepo,
	}
}

// SetPreference implements notfpref.Service.
func (s *NotfPrefServiceImpl) SetPreference(ctx context.Context, siteID, memberID string, req notfpref.SetPreferenceRequest) (notfpref.PreferenceResponse, error) {
	scope, err := notfpref.ScopeFrom(req.PageID, req.CategoryID, req.WholeSite)
	if err != nil {
		return notfpref.PreferenceResponse{}, err
	}

	pref, err := notfpref.NewPageNotfPref(siteID, memberID, notfpref.NotfLevel(req.Level), scope)
	if err != nil {
		return notfpref.PreferenceResponse{}, err
	}

	if err := s.prefRepo.Upsert(ctx, pref); err != nil {
		return notfpref.PreferenceResponse{}, fmt.Errorf("failed to save preference: %w", err)
	}

	return notfpref.ToPreferenceResponse(pref), nil
}

// RemovePreference implements notfpref.Service. Removing an absent preference
// reports false without error.
func (s *NotfPrefServiceImpl) RemovePreference(ctx context.Context, siteID, memberID string, req notfpref.RemovePreferenceRequest) (bool, error) {
	scope, err := notfpref.ScopeFrom(req.PageID, req.CategoryID, req.WholeSite)
	if err != nil {
		return false, err
	}

	removed, err := s.prefRepo.Delete(ctx, siteID, memberID, scope)
	if err != nil {
		return false, fmt.Errorf("failed to remove preference: %w", err)
	}

	return removed, nil
}

// ListPreferences implements notfpref.Service.
func (s *NotfPrefServiceImpl) ListPreferences(ctx context.Context, siteID, memberID string) ([]notfpref.PreferenceResponse, error) {
	prefs, err := s.prefRepo.LoadForSubjects(ctx, siteID, []string{memberID})
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	responses := make([]notfpref.PreferenceResponse, len(prefs))
	for i, pref := range prefs {
		responses[i] = notfpref.ToPreferenceResponse(pref)
	}
	return responses, nil
}

// ResolveForPage implements notfpref.Service.
func (s *NotfPrefServiceImpl) ResolveForPage(ctx context.Context, siteID, memberID, pageID string) (notfpref.EffectivePreferenceResponse, error) {
	pageData, err := s.pageRepo.GetByID(ctx, siteID, pageID)
	if err != nil {
		return notfpref.EffectivePreferenceResponse{}, err
	}

	categoryID := ""
	if pageData.CategoryID != nil {
		categoryID = *pageData.CategoryID
	}

	groupIDs, err := s.memberRepo.ListGroupIDs(ctx, siteID, memberID)
	if err != nil {
		return notfpref.EffectivePreferenceResponse{}, fmt.Errorf("failed to list member groups: %w", err)
	}

	subjectIDs := append([]string{memberID}, groupIDs...)
	rows, err := s.prefRepo.LoadApplicableForPage(ctx, siteID, pageID, categoryID, subjectIDs)
	if err != nil {
		return notfpref.EffectivePreferenceResponse{}, fmt.Errorf("failed to load applicable preferences: %w", err)
	}

	snapshot := notfpref.BuildSnapshot(memberID, groupIDs, rows)
	eff, err := notfpref.Resolve(notfpref.PageTarget(pageID, categoryID), snapshot)
	if err != nil {
		return notfpref.EffectivePreferenceResponse{}, err
	}

	return notfpref.ToEffectiveResponse(eff), nil
}

// ResolveForPages implements notfpref.Service. One bulk read covers every
// page; each page is then resolved against a snapshot narrowed to the rows
// that apply to it, so the outcome matches resolving that page alone.
func (s *NotfPrefServiceImpl) ResolveForPages(ctx context.Context, siteID, memberID string, pageIDs []string) (map[string]notfpref.EffectivePreferenceResponse, error) {
	results := make(map[string]notfpref.EffectivePreferenceResponse, len(pageIDs))
	if len(pageIDs) == 0 {
		return results, nil
	}

	groupIDs, err := s.memberRepo.ListGroupIDs(ctx, siteID, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to list member groups: %w", err)
	}

	subjectIDs := append([]string{memberID}, groupIDs...)
	rows, err := s.prefRepo.LoadForSubjects(ctx, siteID, subjectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	for _, pageID := range pageIDs {
		pageData, err := s.pageRepo.GetByID(ctx, siteID, pageID)
		if err != nil {
			return nil, err
		}

		categoryID := ""
		if pageData.CategoryID != nil {
			categoryID = *pageData.CategoryID
		}

		snapshot := notfpref.BuildSnapshot(memberID, groupIDs, filterApplicable(rows, pageID, categoryID))
		eff, err := notfpref.Resolve(notfpref.PageTarget(pageID, categoryID), snapshot)
		if err != nil {
			return nil, err
		}
		results[pageID] = notfpref.ToEffectiveResponse(eff)
	}

	return results, nil
}

// ResolveForSite implements notfpref.Service.
func (s *NotfPrefServiceImpl) ResolveForSite(ctx context.Context, siteID, memberID string) (notfpref.EffectivePreferenceResponse, error) {
	groupIDs, err := s.memberRepo.ListGroupIDs(ctx, siteID, memberID)
	if err != nil {
		return notfpref.EffectivePreferenceResponse{}, fmt.Errorf("failed to list member groups: %w", err)
	}

	subjectIDs := append([]string{memberID}, groupIDs...)
	rows, err := s.prefRepo.LoadForSubjectsAtScope(ctx, siteID, notfpref.WholeSiteScope(), subjectIDs)
	if err != nil {
		return notfpref.EffectivePreferenceResponse{}, fmt.Errorf("failed to load whole-site preferences: %w", err)
	}

	snapshot := notfpref.BuildSnapshot(memberID, groupIDs, rows)
	eff, err := notfpref.Resolve(notfpref.WholeSiteTarget(), snapshot)
	if err != nil {
		return notfpref.EffectivePreferenceResponse{}, err
	}

	return notfpref.ToEffectiveResponse(eff), nil
}

// filterApplicable narrows a member's full preference set to the rows that
// apply to one page: that page's scope, its category (if any) and whole site.
func filterApplicable(rows []*notfpref.PageNotfPref, pageID, categoryID string) []*notfpref.PageNotfPref {
	applicable := make([]*notfpref.PageNotfPref, 0, len(rows))
	for _, row := range rows {
		switch {
		case row.Scope.IsPage() && row.Scope.ID() == pageID:
			applicable = append(applicable, row)
		case row.Scope.IsCategory() && categoryID != "" && row.Scope.ID() == categoryID:
			applicable = append(applicable, row)
		case row.Scope.IsWholeSite():
			applicable = append(applicable, row)
		}
	}
	return applicable
}
