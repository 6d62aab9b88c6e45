package bilibili

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

const seasonPageSize = 20

// Videos lists the video ids of a season (collection) in series order.
func (c *Client) Videos(ctx context.Context, seasonID int64) ([]string, error) {
	var ids []string

	for pn := 1; ; pn++ {
		data, err := c.getJSON(ctx, "/x/space/fav/season/list", url.Values{
			"season_id": {strconv.FormatInt(seasonID, 10)},
			"pn":        {strconv.Itoa(pn)},
			"ps":        {strconv.Itoa(seasonPageSize)},
		})
		if err != nil {
			return nil, fmt.Errorf("list season %d page %d: %w", seasonID, pn, err)
		}

		medias := data.Get("medias").Array()
		for _, m := range medias {
			if id := m.Get("bvid").String(); id != "" {
				ids = append(ids, id)
			}
		}

		total := data.Get("info.media_count").Int()
		if len(medias) == 0 || int64(len(ids)) >= total {
			break
		}
	}

	return ids, nil
}
