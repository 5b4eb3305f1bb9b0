package portal

import (
	"context"
	"fmt"
	"net/url"

	"github.com/stakemetrics/stakemetrics-server/internal/util"
)

// RecommendationExport is a recommendation-list document pulled from the
// portal, ready to feed through the import pipeline.
type RecommendationExport struct {
	Filename string
	Data     []byte
}

// RecommendationList fetches the current recommendation-list export for one
// unit, or for the whole stake when unit is empty. The portal serves it as a
// CSV document.
func (c *Client) RecommendationList(ctx context.Context, unit string) (*RecommendationExport, error) {
	query := url.Values{}
	if unit != "" {
		query.Set("unit", unit)
	}

	body, err := c.doRequest(ctx, "/api/v1/recommendations/export", query)
	if err != nil {
		return nil, err
	}

	filename := "recommendations.csv"
	if unit != "" {
		filename = fmt.Sprintf("recommendations-%s.csv", util.NormalizeUnitSlug(unit))
	}
	return &RecommendationExport{Filename: filename, Data: body}, nil
}
