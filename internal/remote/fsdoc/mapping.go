package fsdoc

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/five82/storefront/internal/shop"
)

// itemFromData maps a stored document onto an Item. A non-blank "id" field
// wins over the document name; numeric fields stored as strings are parsed.
func itemFromData(docID string, data map[string]any) shop.Item {
	id := shop.ID(docID)
	if raw, ok := data["id"].(string); ok && strings.TrimSpace(raw) != "" {
		id = shop.ID(raw)
	}
	return shop.Item{
		ID:          id,
		Title:       stringField(data, "title"),
		Author:      stringField(data, "author"),
		Description: stringField(data, "description"),
		Price:       numberField(data, "price"),
		Image:       stringField(data, "coverImage"),
		Category:    stringField(data, "genre"),
		Note:        stringField(data, "publisher"),
		Stock:       int(numberField(data, "stock")),
	}.Sanitized()
}

func itemData(item shop.Item) map[string]any {
	return map[string]any{
		"id":          string(item.ID),
		"title":       item.Title,
		"author":      item.Author,
		"description": item.Description,
		"price":       item.Price,
		"coverImage":  item.Image,
		"genre":       item.Category,
		"publisher":   item.Note,
		"stock":       int64(item.Stock),
	}
}

func contentFromData(data map[string]any) shop.PageContent {
	return shop.PageContent{
		HeroTitle:    stringField(data, "heroTitle"),
		HeroSubtitle: stringField(data, "heroSubtitle"),
		HeroImage:    stringField(data, "heroImage"),
		About:        stringField(data, "aboutContent"),
		LogoImage:    stringField(data, "logoImage"),
	}
}

func contentData(c shop.PageContent) map[string]any {
	return map[string]any{
		"heroTitle":    c.HeroTitle,
		"heroSubtitle": c.HeroSubtitle,
		"heroImage":    c.HeroImage,
		"aboutContent": c.About,
		"logoImage":    c.LogoImage,
	}
}

func stringField(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

// numberField reads a number the way the storefront has always stored them:
// as a number, or occasionally as a numeric string. Anything else is zero.
func numberField(data map[string]any, key string) float64 {
	var f float64
	switch v := data[key].(type) {
	case float64:
		f = v
	case int64:
		f = float64(v)
	case int:
		f = float64(v)
	case json.Number:
		f, _ = v.Float64()
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
