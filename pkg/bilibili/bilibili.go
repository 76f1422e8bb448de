package bilibili

import (
	"fmt"
	"regexp"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	apiBaseURL = "https://api.bilibili.com"
	searchPath = "/x/web-interface/search/type"
	browserUA  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Video is one search hit, passed through to the frontend player.
type Video struct {
	Bvid     string `json:"bvid"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Pic      string `json:"pic"`
	Play     int    `json:"play"`
	Duration string `json:"duration"`
	URL      string `json:"url"`
}

type searchResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Result []struct {
			Bvid     string `json:"bvid"`
			Title    string `json:"title"`
			Author   string `json:"author"`
			Pic      string `json:"pic"`
			Play     int    `json:"play"`
			Duration string `json:"duration"`
		} `json:"result"`
	} `json:"data"`
}

// Client wraps the Bilibili web search API. Requests need a browser UA and a
// bilibili Referer or the endpoint answers with an error page.
type Client struct {
	http *resty.Client
}

func NewClient() *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(apiBaseURL).
			SetTimeout(10 * time.Second).
			SetHeader("User-Agent", browserUA).
			SetHeader("Referer", "https://www.bilibili.com/"),
	}
}

// keyword hits come back wrapped in <em class="keyword"> highlight markup
var highlightRe = regexp.MustCompile(`</?em[^>]*>`)

// Search runs a video search and returns up to pageSize normalized hits.
func (c *Client) Search(keyword string, pageSize int) ([]Video, error) {
	if pageSize <= 0 {
		pageSize = 10
	}

	var result searchResponse
	resp, err := c.http.R().
		SetQueryParams(map[string]string{
			"search_type": "video",
			"keyword":     keyword,
			"page":        "1",
			"page_size":   fmt.Sprintf("%d", pageSize),
		}).
		SetResult(&result).
		Get(searchPath)
	if err != nil {
		return nil, fmt.Errorf("bilibili request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("bilibili error: status %d", resp.StatusCode())
	}
	if result.Code != 0 {
		return nil, fmt.Errorf("bilibili error: code %d (%s)", result.Code, result.Message)
	}

	videos := make([]Video, 0, len(result.Data.Result))
	for _, r := range result.Data.Result {
		pic := r.Pic
		if len(pic) >= 2 && pic[:2] == "//" {
			pic = "https:" + pic
		}
		videos = append(videos, Video{
			Bvid:     r.Bvid,
			Title:    highlightRe.ReplaceAllString(r.Title, ""),
			Author:   r.Author,
			Pic:      pic,
			Play:     r.Play,
			Duration: r.Duration,
			URL:      "https://www.bilibili.com/video/" + r.Bvid,
		})
	}
	return videos, nil
}
