package fixtures

import (
	"context"
	"errors"
	"fmt"

	"github.com/talkweave/forum-backend-go/internal/domain/category"
	"github.com/talkweave/forum-backend-go/internal/domain/member"
)

// SeededSiteIDs holds the ids of a site's built-in rows.
type SeededSiteIDs struct {
	EveryoneGroupID string
	RootCategoryID  string
}

// SeedSiteDefaults makes sure the built-in rows a site cannot function
// without exist: the everyone group (group-level preference fallbacks hang
// off it) and the general category. Safe to call on every startup.
func SeedSiteDefaults(
	ctx context.Context,
	siteID string,
	groupRepo member.GroupRepository,
	categoryRepo category.Repository,
) (SeededSiteIDs, error) {
	var seeded SeededSiteIDs

	everyone, err := groupRepo.GetByName(ctx, siteID, member.EveryoneGroupName)
	switch {
	case err == nil:
		seeded.EveryoneGroupID = everyone.ID
	case errors.Is(err, member.ErrGroupNotFound):
		created, err := groupRepo.Create(ctx, member.Group{
			SiteID:  siteID,
			Name:    member.EveryoneGroupName,
			BuiltIn: true,
		})
		if err != nil {
			return SeededSiteIDs{}, fmt.Errorf("failed to create everyone group: %w", err)
		}
		seeded.EveryoneGroupID = created.ID
	default:
		return SeededSiteIDs{}, fmt.Errorf("failed to get everyone group: %w", err)
	}

	root, err := categoryRepo.GetBySlug(ctx, siteID, category.RootSlug)
	switch {
	case err == nil:
		seeded.RootCategoryID = root.ID
	case errors.Is(err, category.ErrCategoryNotFound):
		created, err := categoryRepo.Create(ctx, category.Category{
			SiteID: siteID,
			Name:   "General",
			Slug:   category.RootSlug,
		})
		if err != nil {
			return SeededSiteIDs{}, fmt.Errorf("failed to create general category: %w", err)
		}
		seeded.RootCategoryID = created.ID
	default:
		return SeededSiteIDs{}, fmt.Errorf("failed to get general category: %w", err)
	}

	return seeded, nil
}
