package landing

import (
	"encoding/xml"
	"time"

	"github.com/eringen/landing/locale"
	"github.com/eringen/landing/urls"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Language    string    `xml:"language"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        string `xml:"guid"`
}

// feed is the Mempool RSS feed of one locale.
func (a *App) feed(loc locale.Locale) (rssXML, error) {
	posts, err := a.Store.ListPosts(loc)
	if err != nil {
		return rssXML{}, err
	}
	link, err := a.URLs.Absolute(loc, urls.MempoolIndex, nil)
	if err != nil {
		return rssXML{}, err
	}
	t := a.Catalog.For(loc)
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		pubDate := ""
		if d, err := time.Parse("2006-01-02", p.Date); err == nil {
			pubDate = d.Format(time.RFC1123Z)
		}
		postURL, err := a.URLs.Absolute(loc, urls.MempoolPost, urls.Slug(p.Slug))
		if err != nil {
			return rssXML{}, err
		}
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Excerpt,
			PubDate:     pubDate,
			GUID:        postURL,
		})
	}
	return rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       t.T("Mempool") + " · " + t.T(a.Config.Name),
			Link:        link,
			Description: t.T(a.Config.Description),
			Language:    loc.String(),
			Items:       items,
		},
	}, nil
}
