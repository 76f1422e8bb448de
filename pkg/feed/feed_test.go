package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
<title>Test Feed</title>
<item>
<title><![CDATA[雪MIKU 2026 演唱会情报公开]]></title>
<link>https://example.com/live</link>
<pubDate>Thu, 27 Nov 2025 08:00:02 +0000</pubDate>
<description>&lt;p&gt;今年的&lt;b&gt;雪miku&lt;/b&gt;活动详情。&lt;/p&gt;</description>
</item>
<item>
<title>New figure 手办 pre-order</title>
<link>https://example.com/figure</link>
<pubDate>Tue, 05 Aug 2025 07:00:00 GMT</pubDate>
<description>pre-order opens</description>
</item>
</channel>
</rss>`

func TestParseRSS(t *testing.T) {
	items := ParseRSS([]byte(sampleRSS), "Test Feed")
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "雪MIKU 2026 演唱会情报公开", first.Title)
	assert.Equal(t, "https://example.com/live", first.URL)
	assert.Equal(t, "https://example.com/live", first.Id)
	assert.Equal(t, "Test Feed", first.Source)
	assert.Equal(t, "2025-11-27 08:00", first.PublishTime)
	assert.Equal(t, "演唱会/活动", first.Category)
	assert.NotContains(t, first.Content, "<p>", "html tags must be stripped")

	second := items[1]
	assert.Equal(t, "2025-08-05 07:00", second.PublishTime)
	assert.Equal(t, "周边商品", second.Category)
}

func TestClassify(t *testing.T) {
	cases := map[string]string{
		"MAGICAL MIRAI 2026 announced": "演唱会/活动",
		"新曲投稿しました":                     "新曲发布",
		"手办预售开始":                       "周边商品",
		"Project SEKAI 联动":             "游戏更新",
		"感谢粉丝的支持":                      "社区动态",
		"unrelated headline":           "社区动态",
	}
	for text, want := range cases {
		assert.Equal(t, want, Classify(text), "text %q", text)
	}
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2025-08-05 07:00", normalizeDate("Tue, 05 Aug 2025 07:00:00 GMT"))
	assert.Equal(t, "2025-11-27 08:00", normalizeDate("Thu, 27 Nov 2025 08:00:02 +0000"))
	// Unparseable dates pass through so sorting stays stable.
	assert.Equal(t, "yesterday", normalizeDate("yesterday"))
}
