package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/talkweave/forum-backend-go/internal/domain/notfpref"
	"github.com/talkweave/forum-backend-go/internal/pkg/database"
)

type notfPrefRepository struct {
	db *database.DB
}

// NewNotfPrefRepository creates a new notification preference repository
func NewNotfPrefRepository(db *database.DB) notfpref.Repository {
	return &notfPrefRepository{db: db}
}

const prefColumns = `site_id, member_id, notf_level, page_id, category_id, whole_site`

// Upsert writes a preference row. One row per (site, member, scope kind,
// scope value): the partial unique index for the scope kind is the conflict
// target, and a conflict overwrites the level.
func (r *notfPrefRepository) Upsert(ctx context.Context, pref *notfpref.PageNotfPref) error {
	q := GetQuerier(ctx, r.db)

	var query string
	var scopeValue interface{}

	switch pref.Scope.Kind() {
	case notfpref.ScopePage:
		query = `
			INSERT INTO page_notf_prefs (id, site_id, member_id, notf_level, page_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			ON CONFLICT (site_id, member_id, page_id) WHERE page_id IS NOT NULL
			DO UPDATE SET notf_level = EXCLUDED.notf_level, updated_at = NOW()
		`
		scopeValue = pref.Scope.ID()
	case notfpref.ScopeCategory:
		query = `
			INSERT INTO page_notf_prefs (id, site_id, member_id, notf_level, category_id, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			ON CONFLICT (site_id, member_id, category_id) WHERE category_id IS NOT NULL
			DO UPDATE SET notf_level = EXCLUDED.notf_level, updated_at = NOW()
		`
		scopeValue = pref.Scope.ID()
	case notfpref.ScopeWholeSite:
		query = `
			INSERT INTO page_notf_prefs (id, site_id, member_id, notf_level, whole_site, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			ON CONFLICT (site_id, member_id) WHERE whole_site
			DO UPDATE SET notf_level = EXCLUDED.notf_level, updated_at = NOW()
		`
		scopeValue = true
	default:
		return notfpref.ErrInvalidScope
	}

	_, err := q.Exec(ctx, query,
		uuid.New().String(),
		pref.SiteID,
		pref.MemberID,
		int(pref.Level),
		scopeValue,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert notf pref: %w", err)
	}

	return nil
}

// Delete removes the row for (member, scope) and reports whether one existed.
func (r *notfPrefRepository) Delete(ctx context.Context, siteID, memberID string, scope notfpref.Scope) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var query string
	args := []interface{}{siteID, memberID}

	switch scope.Kind() {
	case notfpref.ScopePage:
		query = `DELETE FROM page_notf_prefs WHERE site_id = $1 AND member_id = $2 AND page_id = $3`
		args = append(args, scope.ID())
	case notfpref.ScopeCategory:
		query = `DELETE FROM page_notf_prefs WHERE site_id = $1 AND member_id = $2 AND category_id = $3`
		args = append(args, scope.ID())
	case notfpref.ScopeWholeSite:
		query = `DELETE FROM page_notf_prefs WHERE site_id = $1 AND member_id = $2 AND whole_site`
	default:
		return false, notfpref.ErrInvalidScope
	}

	result, err := q.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete notf pref: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// LoadForScope returns every subject's preference at exactly this scope.
func (r *notfPrefRepository) LoadForScope(ctx context.Context, siteID string, scope notfpref.Scope) ([]*notfpref.PageNotfPref, error) {
	q := GetQuerier(ctx, r.db)

	var query string
	args := []interface{}{siteID}

	switch scope.Kind() {
	case notfpref.ScopePage:
		query = fmt.Sprintf(`SELECT %s FROM page_notf_prefs WHERE site_id = $1 AND page_id = $2`, prefColumns)
		args = append(args, scope.ID())
	case notfpref.ScopeCategory:
		query = fmt.Sprintf(`SELECT %s FROM page_notf_prefs WHERE site_id = $1 AND category_id = $2`, prefColumns)
		args = append(args, scope.ID())
	case notfpref.ScopeWholeSite:
		query = fmt.Sprintf(`SELECT %s FROM page_notf_prefs WHERE site_id = $1 AND whole_site`, prefColumns)
	default:
		return nil, notfpref.ErrInvalidScope
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notf prefs for scope: %w", err)
	}
	defer rows.Close()

	return scanPrefs(rows)
}

// LoadForSubjectsAtScope returns the given subjects' preferences at exactly
// this scope.
func (r *notfPrefRepository) LoadForSubjectsAtScope(ctx context.Context, siteID string, scope notfpref.Scope, subjectIDs []string) ([]*notfpref.PageNotfPref, error) {
	if len(subjectIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	var query string
	args := []interface{}{siteID, subjectIDs}

	switch scope.Kind() {
	case notfpref.ScopePage:
		query = fmt.Sprintf(`SELECT %s FROM page_notf_prefs WHERE site_id = $1 AND member_id = ANY($2) AND page_id = $3`, prefColumns)
		args = append(args, scope.ID())
	case notfpref.ScopeCategory:
		query = fmt.Sprintf(`SELECT %s FROM page_notf_prefs WHERE site_id = $1 AND member_id = ANY($2) AND category_id = $3`, prefColumns)
		args = append(args, scope.ID())
	case notfpref.ScopeWholeSite:
		query = fmt.Sprintf(`SELECT %s FROM page_notf_prefs WHERE site_id = $1 AND member_id = ANY($2) AND whole_site`, prefColumns)
	default:
		return nil, notfpref.ErrInvalidScope
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notf prefs for subjects at scope: %w", err)
	}
	defer rows.Close()

	return scanPrefs(rows)
}

// LoadApplicableForPage returns the union of page, category and whole-site
// rows that could influence the given subjects on this page. Subjects with no
// explicit setting anywhere simply contribute no rows.
func (r *notfPrefRepository) LoadApplicableForPage(ctx context.Context, siteID, pageID, categoryID string, subjectIDs []string) ([]*notfpref.PageNotfPref, error) {
	if len(subjectIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	var catID *string
	if categoryID != "" {
		catID = &categoryID
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM page_notf_prefs
		WHERE site_id = $1
		  AND member_id = ANY($2)
		  AND (page_id = $3
		    OR ($4::uuid IS NOT NULL AND category_id = $4::uuid)
		    OR whole_site)
	`, prefColumns)

	rows, err := q.Query(ctx, query, siteID, subjectIDs, pageID, catID)
	if err != nil {
		return nil, fmt.Errorf("failed to query applicable notf prefs: %w", err)
	}
	defer rows.Close()

	return scanPrefs(rows)
}

// LoadForSubjects returns every row for the subjects at any scope. Used for
// bulk resolution across a topic list.
func (r *notfPrefRepository) LoadForSubjects(ctx context.Context, siteID string, subjectIDs []string) ([]*notfpref.PageNotfPref, error) {
	if len(subjectIDs) == 0 {
		return nil, nil
	}
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM page_notf_prefs WHERE site_id = $1 AND member_id = ANY($2)`, prefColumns)

	rows, err := q.Query(ctx, query, siteID, subjectIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query notf prefs for subjects: %w", err)
	}
	defer rows.Close()

	return scanPrefs(rows)
}

func scanPrefs(rows pgx.Rows) ([]*notfpref.PageNotfPref, error) {
	var prefs []*notfpref.PageNotfPref
	for rows.Next() {
		var (
			siteID, memberID   string
			level              int
			pageID, categoryID *string
			wholeSite          bool
		)
		if err := rows.Scan(&siteID, &memberID, &level, &pageID, &categoryID, &wholeSite); err != nil {
			return nil, fmt.Errorf("failed to scan notf pref: %w", err)
		}

		var scope notfpref.Scope
		switch {
		case pageID != nil:
			scope = notfpref.PageScope(*pageID)
		case categoryID != nil:
			scope = notfpref.CategoryScope(*categoryID)
		default:
			scope = notfpref.WholeSiteScope()
		}

		prefs = append(prefs, &notfpref.PageNotfPref{
			SiteID:   siteID,
			MemberID: memberID,
			Level:    notfpref.NotfLevel(level),
			Scope:    scope,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read notf pref rows: %w", err)
	}

	return prefs, nil
}
