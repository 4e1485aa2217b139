// Package feed builds the merchant product feed: RSS 2.0 with the Google
// Shopping "g:" namespace, consumed by ad and marketplace platforms.
package feed

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/application/catalog"
	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"
)

// Ensure Builder satisfies the catalog port.
var _ catalog.FeedBuilder = (*Builder)(nil)

// Builder serializes the active catalog into feed XML.
type Builder struct {
	title   string
	baseURL string // public site URL, item links are baseURL + /products/<slug>
}

// NewBuilder builds the feed builder.
func NewBuilder(title, baseURL string) *Builder {
	return &Builder{title: title, baseURL: baseURL}
}

// Build returns the indented feed document.
func (b *Builder) Build(products []*entity.Product, categoryNames map[string]string) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")
	rss.CreateAttr("xmlns:g", "http://base.google.com/ns/1.0")

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText(b.title)
	channel.CreateElement("link").SetText(b.baseURL)
	channel.CreateElement("description").SetText(b.title + " product feed")

	for _, p := range products {
		item := channel.CreateElement("item")
		item.CreateElement("g:id").SetText(p.ID)
		item.CreateElement("title").SetText(p.Name)
		if p.Description != "" {
			item.CreateElement("description").SetText(p.Description)
		}
		item.CreateElement("link").SetText(fmt.Sprintf("%s/products/%s", b.baseURL, p.Slug))
		if p.ImageURL != "" {
			item.CreateElement("g:image_link").SetText(p.ImageURL)
		}
		item.CreateElement("g:price").SetText(p.Price.StringFixed(2) + " INR")
		item.CreateElement("g:availability").SetText(availability(p.Stock))
		item.CreateElement("g:condition").SetText("new")
		if name, ok := categoryNames[p.CategoryID]; ok {
			item.CreateElement("g:product_type").SetText(name)
		}
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("feed: serialize: %w", err)
	}
	return out, nil
}

func availability(stock int) string {
	if stock > 0 {
		return "in stock"
	}
	return "out of stock"
}
