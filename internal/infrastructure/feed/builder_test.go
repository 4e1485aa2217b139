package feed

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnnapuraniA/Arudhra-Fashions/internal/domain/entity"
)

func TestBuild_ProducesMerchantFeed(t *testing.T) {
	b := NewBuilder("Arudhra Fashions", "https://shop.test")
	products := []*entity.Product{
		{
			ID: "p-1", CategoryID: "c-1", Name: "Soft Cotton Saree", Slug: "soft-cotton-saree",
			Description: "Everyday wear", Price: decimal.RequireFromString("1299.5"),
			ImageURL: "https://cdn.test/saree.jpg", Stock: 3,
		},
		{
			ID: "p-2", CategoryID: "c-missing", Name: "Anarkali Kurti", Slug: "anarkali-kurti",
			Price: decimal.NewFromInt(899), Stock: 0,
		},
	}

	out, err := b.Build(products, map[string]string{"c-1": "Sarees"})
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))

	channel := doc.FindElement("/rss/channel")
	require.NotNil(t, channel)
	assert.Equal(t, "Arudhra Fashions", channel.SelectElement("title").Text())

	items := channel.SelectElements("item")
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "p-1", first.FindElement("g:id").Text())
	assert.Equal(t, "https://shop.test/products/soft-cotton-saree", first.FindElement("link").Text())
	assert.Equal(t, "1299.50 INR", first.FindElement("g:price").Text())
	assert.Equal(t, "in stock", first.FindElement("g:availability").Text())
	assert.Equal(t, "Sarees", first.FindElement("g:product_type").Text())

	second := items[1]
	assert.Equal(t, "out of stock", second.FindElement("g:availability").Text())
	assert.Nil(t, second.FindElement("g:product_type"), "unknown category omits product_type")
	assert.Nil(t, second.FindElement("g:image_link"), "no image omits image_link")
}

func TestBuild_EmptyCatalog(t *testing.T) {
	b := NewBuilder("Arudhra Fashions", "https://shop.test")

	out, err := b.Build(nil, nil)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	assert.Empty(t, doc.FindElements("/rss/channel/item"))
}
