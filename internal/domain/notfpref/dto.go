package notfpref

// ============= Request DTOs =============

// SetPreferenceRequest sets a member's preference at exactly one scope.
type SetPreferenceRequest struct {
	Level      int    `json:"level"`
	PageID     string `json:"page_id,omitempty"`
	CategoryID string `json:"category_id,omitempty"`
	WholeSite  bool   `json:"whole_site,omitempty"`
}

// RemovePreferenceRequest removes a member's preference at exactly one scope.
type RemovePreferenceRequest struct {
	PageID     string `json:"page_id,omitempty"`
	CategoryID string `json:"category_id,omitempty"`
	WholeSite  bool   `json:"whole_site,omitempty"`
}

// ============= Response DTOs =============

// PreferenceResponse is one stored preference in API responses.
type PreferenceResponse struct {
	Level      int    `json:"level"`
	LevelName  string `json:"level_name"`
	ScopeKind  string `json:"scope_kind"`
	PageID     string `json:"page_id,omitempty"`
	CategoryID string `json:"category_id,omitempty"`
}

// Effective-preference sources.
const (
	SourceOwn       = "own"
	SourceInherited = "inherited"
	SourceDefault   = "default"
)

// EffectivePreferenceResponse is the resolved preference for one target.
// InheritedFrom names the subject (a group, or the member itself at a broader
// scope) the preference was inherited from, when Source is "inherited".
type EffectivePreferenceResponse struct {
	Level         int    `json:"level"`
	LevelName     string `json:"level_name"`
	Description   string `json:"description"`
	Source        string `json:"source"`
	InheritedFrom string `json:"inherited_from,omitempty"`
	ScopeKind     string `json:"inherited_scope_kind,omitempty"`
}

// LevelResponse describes one selectable level for preference settings UIs.
type LevelResponse struct {
	Level       int    `json:"level"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToPreferenceResponse maps a stored preference to its API shape.
func ToPreferenceResponse(pref *PageNotfPref) PreferenceResponse {
	resp := PreferenceResponse{
		Level:     int(pref.Level),
		LevelName: pref.Level.String(),
		ScopeKind: string(pref.Scope.Kind()),
	}
	switch pref.Scope.Kind() {
	case ScopePage:
		resp.PageID = pref.Scope.ID()
	case ScopeCategory:
		resp.CategoryID = pref.Scope.ID()
	}
	return resp
}

// ToEffectiveResponse maps a resolution outcome to its API shape.
func ToEffectiveResponse(eff EffectivePreference) EffectivePreferenceResponse {
	level := eff.EffectiveLevel()
	resp := EffectivePreferenceResponse{
		Level:       int(level),
		LevelName:   level.String(),
		Description: level.Description(),
		Source:      SourceDefault,
	}
	switch {
	case eff.OwnLevel != nil:
		resp.Source = SourceOwn
	case eff.Inherited != nil:
		resp.Source = SourceInherited
		resp.InheritedFrom = eff.Inherited.MemberID
		resp.ScopeKind = string(eff.Inherited.Scope.Kind())
	}
	return resp
}

// AllLevelResponses lists every level with its label and description.
func AllLevelResponses() []LevelResponse {
	levels := AllLevels()
	responses := make([]LevelResponse, len(levels))
	for i, l := range levels {
		responses[i] = LevelResponse{
			Level:       int(l),
			Name:        l.String(),
			Description: l.Description(),
		}
	}
	return responses
}
