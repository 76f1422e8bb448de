package feed

import (
	"html"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Item is one normalized news entry, ready for the frontend.
type Item struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Category    string `json:"category"`
	Source      string `json:"source"`
	PublishTime string `json:"publishTime"`
	URL         string `json:"url"`
	Thumbnail   string `json:"thumbnail,omitempty"`
}

// category keyword tables are checked in order; first hit wins.
type category struct {
	name     string
	keywords []string
}

var categories = []category{
	{"演唱会/活动", []string{"演唱会", "live", "magical mirai", "雪miku", "活动", "展会"}},
	{"新曲发布", []string{"新曲", "新歌", "投稿", "殿堂", "发布"}},
	{"周边商品", []string{"手办", "周边", "预售", "发售", "特典"}},
	{"游戏更新", []string{"project diva", "project sekai", "更新", "联动"}},
	{"社区动态", []string{"粉丝", "同人", "创作", "感谢"}},
}

const defaultCategory = "社区动态"

// Client aggregates RSS sources into a classified, newest-first feed.
type Client struct {
	http      *resty.Client
	googleURL string
	piaproURL string
}

func NewClient() *Client {
	return &Client{
		http: resty.New().
			SetTimeout(10 * time.Second).
			SetHeader("User-Agent", browserUA).
			SetHeader("Referer", "https://www.bilibili.com/"),
		googleURL: "https://news.google.com/rss/search?q=%E5%88%9D%E9%9F%B3%E6%9C%AA%E6%9D%A5&hl=zh-CN&gl=CN&ceid=CN:zh-Hans",
		piaproURL: "https://blog.piapro.net/feed",
	}
}

// Latest fetches news from the requested source ("all", "google" or "piapro"),
// newest first. Sources that fail are skipped, not fatal.
func (c *Client) Latest(source string) []Item {
	var items []Item
	if source == "all" || source == "piapro" {
		items = append(items, c.fetch(c.piaproURL, "Piapro Blog")...)
	}
	if source == "all" || source == "google" {
		items = append(items, c.fetch(c.googleURL, "Google News")...)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishTime > items[j].PublishTime
	})
	return items
}

func (c *Client) fetch(url, sourceName string) []Item {
	resp, err := c.http.R().Get(url)
	if err != nil || resp.StatusCode() != 200 {
		return nil
	}
	return ParseRSS(resp.Body(), sourceName)
}

// --- RSS parsing ---

var (
	itemRe    = regexp.MustCompile(`(?s)<item>(.*?)</item>`)
	titleRe   = regexp.MustCompile(`(?s)<title>(.*?)</title>`)
	linkRe    = regexp.MustCompile(`(?s)<link>(.*?)</link>`)
	pubDateRe = regexp.MustCompile(`<pubDate>(.*?)</pubDate>`)
	descRe    = regexp.MustCompile(`(?s)<description>(.*?)</description>`)
	contentRe = regexp.MustCompile(`(?s)<content:encoded>(.*?)</content:encoded>`)
	imgRe     = regexp.MustCompile(`<img[^>]+src="([^"]+)"`)
	tagRe     = regexp.MustCompile(`<[^>]+>`)
	cdataRe   = regexp.MustCompile(`<!\[CDATA\[|\]\]>`)
)

// ParseRSS extracts items from an RSS 2.0 document. Feeds in the wild are
// sloppy, so this is regex-based like the upstream producers tolerate, not a
// strict XML decode.
func ParseRSS(body []byte, sourceName string) []Item {
	var items []Item
	for _, m := range itemRe.FindAllStringSubmatch(string(body), -1) {
		raw := m[1]

		title := firstGroup(titleRe, raw)
		title = cdataRe.ReplaceAllString(title, "")
		link := firstGroup(linkRe, raw)

		pubDate := normalizeDate(firstGroup(pubDateRe, raw))

		desc := firstGroup(contentRe, raw)
		if desc == "" {
			desc = firstGroup(descRe, raw)
		}
		thumb := firstGroup(imgRe, html.UnescapeString(desc))
		desc = html.UnescapeString(desc)
		desc = cdataRe.ReplaceAllString(desc, "")
		desc = tagRe.ReplaceAllString(desc, "")
		if runes := []rune(desc); len(runes) > 200 {
			desc = string(runes[:200]) + "..."
		}

		items = append(items, Item{
			Id:          link,
			Title:       title,
			Content:     desc,
			Category:    Classify(title),
			Source:      sourceName,
			PublishTime: pubDate,
			URL:         link,
			Thumbnail:   thumb,
		})
	}
	return items
}

func firstGroup(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

var pubDateLayouts = []string{
	"Mon, 02 Jan 2006 15:04:05 -0700",
	"Mon, 02 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
}

// normalizeDate turns RFC 1123 style pubDates into "2006-01-02 15:04" so the
// feed can be string-sorted. Unparseable dates pass through untouched.
func normalizeDate(raw string) string {
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("2006-01-02 15:04")
		}
	}
	return raw
}

// Classify buckets a headline by keyword.
func Classify(text string) string {
	lower := strings.ToLower(text)
	for _, cat := range categories {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				return cat.name
			}
		}
	}
	return defaultCategory
}
