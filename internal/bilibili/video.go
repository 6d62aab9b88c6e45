package bilibili

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/nguyentantai21042004/bilisum/internal/models"
	"github.com/tidwall/gjson"
)

// Pages lists every page of a video in page order.
func (c *Client) Pages(ctx context.Context, videoID string) ([]models.Page, error) {
	infos, err := c.pageInfos(ctx, videoID)
	if err != nil {
		return nil, err
	}

	pages := make([]models.Page, 0, len(infos))
	for _, info := range infos {
		pages = append(pages, info.page)
	}
	return pages, nil
}

// ContentID returns the internal content id (cid) of the page at pageIndex (0-based).
func (c *Client) ContentID(ctx context.Context, videoID string, pageIndex int) (int64, error) {
	infos, err := c.pageInfos(ctx, videoID)
	if err != nil {
		return 0, err
	}
	if pageIndex < 0 || pageIndex >= len(infos) {
		return 0, fmt.Errorf("page index %d out of range for %s (%d pages)", pageIndex, videoID, len(infos))
	}
	return infos[pageIndex].cid, nil
}

// SubtitleTracks lists the official subtitle tracks of one page.
func (c *Client) SubtitleTracks(ctx context.Context, videoID string, cid int64) ([]models.SubtitleTrack, error) {
	data, err := c.getJSON(ctx, "/x/player/v2", url.Values{
		"bvid": {videoID},
		"cid":  {strconv.FormatInt(cid, 10)},
	})
	if err != nil {
		return nil, fmt.Errorf("get subtitle metadata: %w", err)
	}

	var tracks []models.SubtitleTrack
	data.Get("subtitle.subtitles").ForEach(func(_, s gjson.Result) bool {
		if u := s.Get("subtitle_url").String(); u != "" {
			tracks = append(tracks, models.SubtitleTrack{
				Language: s.Get("lan").String(),
				URL:      u,
			})
		}
		return true
	})

	return tracks, nil
}

// pageInfos fetches the page list once per video and memoizes it,
// since ContentID is asked for the same video once per page.
func (c *Client) pageInfos(ctx context.Context, videoID string) ([]pageInfo, error) {
	c.mu.Lock()
	cached, ok := c.pages[videoID]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	data, err := c.getJSON(ctx, "/x/player/pagelist", url.Values{"bvid": {videoID}})
	if err != nil {
		return nil, fmt.Errorf("get pages of %s: %w", videoID, err)
	}

	var infos []pageInfo
	data.ForEach(func(_, p gjson.Result) bool {
		infos = append(infos, pageInfo{
			page: models.Page{
				VideoID: videoID,
				Number:  int(p.Get("page").Int()),
				Title:   p.Get("part").String(),
			},
			cid: p.Get("cid").Int(),
		})
		return true
	})

	c.mu.Lock()
	c.pages[videoID] = infos
	c.mu.Unlock()

	return infos, nil
}
