package bilibili

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return &Client{http: resty.New().SetBaseURL(url).SetTimeout(2 * time.Second)}
}

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, searchPath, r.URL.Path)
		assert.Equal(t, "video", r.URL.Query().Get("search_type"))
		assert.Equal(t, "千本樱", r.URL.Query().Get("keyword"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"code": 0,
			"data": {"result": [
				{"bvid": "BV1xx411c7mD", "title": "【初音ミク】<em class=\"keyword\">千本樱</em>【PV】", "author": "someone", "pic": "//i0.hdslb.com/pic.jpg", "play": 123456, "duration": "4:02"}
			]}
		}`))
	}))
	defer srv.Close()

	videos, err := newTestClient(srv.URL).Search("千本樱", 10)
	require.NoError(t, err)
	require.Len(t, videos, 1)

	v := videos[0]
	assert.Equal(t, "BV1xx411c7mD", v.Bvid)
	assert.Equal(t, "【初音ミク】千本樱【PV】", v.Title, "highlight markup must be stripped")
	assert.Equal(t, "https://i0.hdslb.com/pic.jpg", v.Pic)
	assert.Equal(t, "https://www.bilibili.com/video/BV1xx411c7mD", v.URL)
}

func TestSearchAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code": -412, "message": "request was rejected"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Search("anything", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-412")
}
