package notfpref

// ResolveTarget identifies what a resolution is asked about: a single page
// (with the category it sits in, possibly none) or the whole site. Anything
// else is a programming error upstream and resolves loudly.
type ResolveTarget struct {
	PageID     string
	CategoryID string
	WholeSite  bool
}

// PageTarget targets a single page. categoryID may be empty for pages outside
// any category.
func PageTarget(pageID, categoryID string) ResolveTarget {
	return ResolveTarget{PageID: pageID, CategoryID: categoryID}
}

// WholeSiteTarget targets the whole site.
func WholeSiteTarget() ResolveTarget {
	return ResolveTarget{WholeSite: true}
}

// MemberAndGroupsPrefs is an immutable snapshot of one member's own explicit
// preferences partitioned by scope kind, plus the most eager preference held
// by any of the member's groups, partitioned the same way. Within a partition
// there is at most one preference per scope key; the store's upsert semantics
// guarantee that, not the resolver.
type MemberAndGroupsPrefs struct {
	MemberID string

	OwnByPageID     map[string]*PageNotfPref
	OwnByCategoryID map[string]*PageNotfPref
	OwnWholeSite    *PageNotfPref

	GroupsByPageID     map[string]*PageNotfPref
	GroupsByCategoryID map[string]*PageNotfPref
	GroupsWholeSite    *PageNotfPref
}

// BuildSnapshot partitions raw preference rows into the member's own settings
// and the most-eager group setting per scope key. groupIDs comes from the
// membership provider; rows for subjects that are neither the member nor one
// of its groups are ignored.
func BuildSnapshot(memberID string, groupIDs []string, rows []*PageNotfPref) MemberAndGroupsPrefs {
	groups := make(map[string]bool, len(groupIDs))
	for _, id := range groupIDs {
		groups[id] = true
	}

	snap := MemberAndGroupsPrefs{
		MemberID:           memberID,
		OwnByPageID:        make(map[string]*PageNotfPref),
		OwnByCategoryID:    make(map[string]*PageNotfPref),
		GroupsByPageID:     make(map[string]*PageNotfPref),
		GroupsByCategoryID: make(map[string]*PageNotfPref),
	}

	for _, row := range rows {
		switch {
		case row.MemberID == memberID:
			switch row.Scope.Kind() {
			case ScopePage:
				snap.OwnByPageID[row.Scope.ID()] = row
			case ScopeCategory:
				snap.OwnByCategoryID[row.Scope.ID()] = row
			case ScopeWholeSite:
				snap.OwnWholeSite = row
			}
		case groups[row.MemberID]:
			switch row.Scope.Kind() {
			case ScopePage:
				snap.GroupsByPageID[row.Scope.ID()] = moreEager(snap.GroupsByPageID[row.Scope.ID()], row)
			case ScopeCategory:
				snap.GroupsByCategoryID[row.Scope.ID()] = moreEager(snap.GroupsByCategoryID[row.Scope.ID()], row)
			case ScopeWholeSite:
				snap.GroupsWholeSite = moreEager(snap.GroupsWholeSite, row)
			}
		}
	}

	return snap
}

// moreEager keeps the preference with the higher level. On a tie the current
// one stays, so the resulting level is deterministic even though the source
// record need not be.
func moreEager(current, candidate *PageNotfPref) *PageNotfPref {
	if current == nil {
		return candidate
	}
	if candidate != nil && candidate.Level.MoreEagerThan(current.Level) {
		return candidate
	}
	return current
}

// maxOf reduces a partition to its single most eager preference.
func maxOf(partition map[string]*PageNotfPref) *PageNotfPref {
	var best *PageNotfPref
	for _, pref := range partition {
		best = moreEager(best, pref)
	}
	return best
}

// Resolve computes the effective preference for a member on a target from an
// immutable snapshot. It is a pure function: no I/O, no shared state, safe to
// call concurrently.
//
// For a page target the member's own page-scoped preference always wins and
// resolution stops there. Otherwise the inherited preference is the first
// defined of: a group's preference for this exact page, the member's most
// eager category preference, the groups' most eager category preference, the
// member's whole-site preference, the groups' whole-site preference. Category
// ancestry is never walked here.
func Resolve(target ResolveTarget, prefs MemberAndGroupsPrefs) (EffectivePreference, error) {
	switch {
	case target.WholeSite && target.PageID == "":
		return resolveWholeSite(prefs), nil
	case !target.WholeSite && target.PageID != "":
		return resolvePage(target, prefs), nil
	default:
		return EffectivePreference{}, ErrBadResolveTarget
	}
}

func resolvePage(target ResolveTarget, prefs MemberAndGroupsPrefs) EffectivePreference {
	if own := prefs.OwnByPageID[target.PageID]; own != nil {
		// An explicit per-page choice is authoritative, never overridden by
		// inheritance no matter how eager the inherited level would be.
		level := own.Level
		return EffectivePreference{OwnLevel: &level}
	}

	inherited := firstDefined(
		prefs.GroupsByPageID[target.PageID],
		maxOf(prefs.OwnByCategoryID),
		maxOf(prefs.GroupsByCategoryID),
		prefs.OwnWholeSite,
		prefs.GroupsWholeSite,
	)
	return EffectivePreference{Inherited: inherited}
}

func resolveWholeSite(prefs MemberAndGroupsPrefs) EffectivePreference {
	if own := prefs.OwnWholeSite; own != nil {
		level := own.Level
		return EffectivePreference{OwnLevel: &level}
	}
	return EffectivePreference{Inherited: prefs.GroupsWholeSite}
}

func firstDefined(candidates ...*PageNotfPref) *PageNotfPref {
	for _, c := range candidates {
		if c != nil {
			return c
		}
	}
	return nil
}
