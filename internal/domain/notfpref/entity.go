package notfpref

// ScopeKind distinguishes the granularity a preference applies to.
type ScopeKind string

const (
	ScopePage      ScopeKind = "page"
	ScopeCategory  ScopeKind = "category"
	ScopeWholeSite ScopeKind = "whole_site"
)

// Scope is the granularity a preference applies to: a single page, every page
// in a category, or the whole site. The zero value is not a valid scope; use
// the constructors so that exactly one variant can ever be set.
type Scope struct {
	kind ScopeKind
	id   string
}

// PageScope scopes a preference to a single page.
func PageScope(pageID string) Scope {
	return Scope{kind: ScopePage, id: pageID}
}

// CategoryScope scopes a preference to every page in a category.
func CategoryScope(categoryID string) Scope {
	return Scope{kind: ScopeCategory, id: categoryID}
}

// WholeSiteScope scopes a preference to the whole site.
func WholeSiteScope() Scope {
	return Scope{kind: ScopeWholeSite}
}

// ScopeFrom builds a Scope from the optional fields of an API request.
// Exactly one of pageID, categoryID and wholeSite must be set.
func ScopeFrom(pageID, categoryID string, wholeSite bool) (Scope, error) {
	set := 0
	if pageID != "" {
		set++
	}
	if categoryID != "" {
		set++
	}
	if wholeSite {
		set++
	}
	if set != 1 {
		return Scope{}, ErrInvalidScope
	}

	switch {
	case pageID != "":
		return PageScope(pageID), nil
	case categoryID != "":
		return CategoryScope(categoryID), nil
	default:
		return WholeSiteScope(), nil
	}
}

// Kind returns the scope variant.
func (s Scope) Kind() ScopeKind { return s.kind }

// ID returns the page or category id; empty for whole-site scope.
func (s Scope) ID() string { return s.id }

func (s Scope) IsPage() bool      { return s.kind == ScopePage }
func (s Scope) IsCategory() bool  { return s.kind == ScopeCategory }
func (s Scope) IsWholeSite() bool { return s.kind == ScopeWholeSite }

// IsZero reports whether s was never constructed via a scope constructor.
func (s Scope) IsZero() bool { return s.kind == "" }

func (s Scope) valid() bool {
	switch s.kind {
	case ScopePage, ScopeCategory:
		return s.id != ""
	case ScopeWholeSite:
		return s.id == ""
	default:
		return false
	}
}

// PageNotfPref is one stored notification preference: who it applies to, what
// level, and the single scope it covers. Rows are replaced atomically on
// upsert; no history is kept.
type PageNotfPref struct {
	SiteID   string
	MemberID string
	Level    NotfLevel
	Scope    Scope
}

// NewPageNotfPref validates and builds a preference record.
// A page-scoped preference must not carry LevelWatchingFirst: that level only
// makes sense where new topics can appear, i.e. category or site scope.
func NewPageNotfPref(siteID, memberID string, level NotfLevel, scope Scope) (*PageNotfPref, error) {
	if !level.IsValid() {
		return nil, ErrInvalidLevel
	}
	if !scope.valid() {
		return nil, ErrInvalidScope
	}
	if scope.IsPage() && level == LevelWatchingFirst {
		return nil, ErrLevelScopeMismatch
	}

	return &PageNotfPref{
		SiteID:   siteID,
		MemberID: memberID,
		Level:    level,
		Scope:    scope,
	}, nil
}

// EffectivePreference is the outcome of resolving a member's preference for a
// target. OwnLevel is the member's own explicit setting at the most specific
// scope asked about; Inherited is the best applicable fallback from a less
// specific scope or from group memberships.
type EffectivePreference struct {
	OwnLevel  *NotfLevel
	Inherited *PageNotfPref
}

// EffectiveLevel is the level that actually governs behavior: the member's own
// if set, else the inherited one, else DefaultLevel.
func (e EffectivePreference) EffectiveLevel() NotfLevel {
	if e.OwnLevel != nil {
		return *e.OwnLevel
	}
	if e.Inherited != nil {
		return e.Inherited.Level
	}
	return DefaultLevel
}
