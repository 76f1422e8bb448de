package booru

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	safebooruURL = "https://safebooru.org/index.php"
	browserUA    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Image is the metadata handed to the frontend; the bytes themselves are never
// proxied through this backend.
type Image struct {
	ImageURL  string   `json:"image_url"`
	SourceURL string   `json:"source_url"`
	Tags      []string `json:"tags"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	Rating    string   `json:"rating"`
}

type post struct {
	Id        int    `json:"id"`
	Directory string `json:"directory"`
	Image     string `json:"image"`
	FileURL   string `json:"file_url"`
	Tags      string `json:"tags"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Rating    string `json:"rating"`
}

// Client queries the Safebooru dapi endpoint.
type Client struct {
	http         *resty.Client
	tags         string
	excludedTags []string
}

func NewClient() *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(safebooruURL).
			SetTimeout(10 * time.Second).
			SetHeader("User-Agent", browserUA),
		tags:         "hatsune_miku rating:safe",
		excludedTags: []string{"demon"},
	}
}

// Random fetches a page of posts and picks one at random, skipping posts whose
// tag list contains an excluded word.
func (c *Client) Random() (*Image, error) {
	var posts []post
	resp, err := c.http.R().
		SetQueryParams(map[string]string{
			"page":  "dapi",
			"s":     "post",
			"q":     "index",
			"tags":  c.tags,
			"limit": "20",
			"json":  "1",
		}).
		SetResult(&posts).
		Get("")
	if err != nil {
		return nil, fmt.Errorf("safebooru request failed: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("safebooru error: status %d", resp.StatusCode())
	}

	filtered := filterPosts(posts, c.excludedTags)
	if len(filtered) == 0 {
		return nil, fmt.Errorf("safebooru: no posts after filtering")
	}

	p := filtered[rand.Intn(len(filtered))]

	imageURL := p.FileURL
	if imageURL == "" {
		imageURL = fmt.Sprintf("https://safebooru.org/images/%s/%s", p.Directory, p.Image)
	}

	tags := strings.Fields(p.Tags)
	if len(tags) > 10 {
		tags = tags[:10]
	}

	return &Image{
		ImageURL:  imageURL,
		SourceURL: fmt.Sprintf("https://safebooru.org/index.php?page=post&s=view&id=%d", p.Id),
		Tags:      tags,
		Width:     p.Width,
		Height:    p.Height,
		Rating:    p.Rating,
	}, nil
}

// filterPosts drops posts whose tags contain any excluded word.
func filterPosts(posts []post, excluded []string) []post {
	filtered := make([]post, 0, len(posts))
	for _, p := range posts {
		tags := strings.ToLower(p.Tags)
		skip := false
		for _, ex := range excluded {
			if strings.Contains(tags, ex) {
				skip = true
				break
			}
		}
		if !skip {
			filtered = append(filtered, p)
		}
	}
	return filtered
}
