package confluence

import (
	"context"
	"errors"
	"fmt"
)

// ErrScopeViolation signals that a write targets a page outside the configured
// scope root. It is distinct from upstream failures so the HTTP layer can map
// it to a fixed 403.
var ErrScopeViolation = errors.New("operation not allowed on a page outside the configured parent scope")

// ensureAllowed verifies that pageID is the scope root itself or one of its
// descendants. Without a configured scope root every page is allowed and no
// upstream call is made.
func (c *client) ensureAllowed(ctx context.Context, pageID string) error {
	if c.settings.ScopeRoot == "" {
		return nil
	}
	if pageID == c.settings.ScopeRoot {
		return nil
	}
	cql := fmt.Sprintf("id=%s and ancestor=%s", pageID, c.settings.ScopeRoot)
	listing, err := c.search(ctx, cql, searchOptions{batchSize: 1, limit: 1})
	if err != nil {
		return err
	}
	if len(listing.Results) == 0 {
		return ErrScopeViolation
	}
	return nil
}
