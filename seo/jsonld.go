package seo

import (
	"encoding/json"
)

// Site describes the publisher for JSON-LD blocks.
type Site struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// WebsiteJsonLD returns a Schema.org WebSite block for a localized home page.
func WebsiteJsonLD(site Site, pageURL, inLanguage string) string {
	data := map[string]interface{}{
		"@context":   "https://schema.org",
		"@type":      "WebSite",
		"name":       site.Name,
		"url":        pageURL,
		"inLanguage": inLanguage,
	}
	if site.Description != "" {
		data["description"] = site.Description
	}
	if site.Author != "" {
		data["author"] = map[string]string{
			"@type": "Organization",
			"name":  site.Author,
		}
	}
	return marshalJsonLD(data)
}

// BlogPostingJsonLD returns a Schema.org BlogPosting block for a post.
// datePublished is YYYY-MM-DD and omitted when empty.
func BlogPostingJsonLD(site Site, postURL, headline, description, datePublished string) string {
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "BlogPosting",
		"headline":    headline,
		"description": description,
		"url":         postURL,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  site.Name,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if datePublished != "" {
		data["datePublished"] = datePublished
	}
	return marshalJsonLD(data)
}

func marshalJsonLD(data map[string]interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
