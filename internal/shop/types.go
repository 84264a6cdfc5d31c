package shop

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ID is the canonical identity of catalog items and collections. Remote
// documents carry string ids while older local data used numbers, so every
// ingestion point normalizes to this form.
type ID string

// NormalizeID converts the id shapes seen in persisted data into an ID.
func NormalizeID(v any) ID {
	switch id := v.(type) {
	case nil:
		return ""
	case ID:
		return ID(strings.TrimSpace(string(id)))
	case string:
		return ID(strings.TrimSpace(id))
	case json.Number:
		return ID(id.String())
	case float64:
		if id == math.Trunc(id) && math.Abs(id) < 1e15 {
			return ID(strconv.FormatInt(int64(id), 10))
		}
		return ID(strconv.FormatFloat(id, 'f', -1, 64))
	case int:
		return ID(strconv.Itoa(id))
	case int64:
		return ID(strconv.FormatInt(id, 10))
	default:
		return ID(strings.TrimSpace(fmt.Sprint(id)))
	}
}

// String returns the id as a plain string.
func (id ID) String() string { return string(id) }

// UnmarshalJSON accepts both JSON strings and JSON numbers.
func (id *ID) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = NormalizeID(raw)
	return nil
}

// Item is a catalog entry offered for sale.
type Item struct {
	ID          ID      `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"coverImage"`
	Category    string  `json:"genre"`
	Note        string  `json:"publisher"`
	Stock       int     `json:"stock"`
}

// ItemInput is an Item before the persistence layer has assigned an id.
type ItemInput struct {
	Title       string
	Author      string
	Description string
	Price       float64
	Image       string
	Category    string
	Note        string
	Stock       int
}

// Input returns the item's fields without its id.
func (it Item) Input() ItemInput {
	return ItemInput{
		Title:       it.Title,
		Author:      it.Author,
		Description: it.Description,
		Price:       it.Price,
		Image:       it.Image,
		Category:    it.Category,
		Note:        it.Note,
		Stock:       it.Stock,
	}
}

// WithID builds the Item for the given identity.
func (in ItemInput) WithID(id ID) Item {
	return Item{
		ID:          id,
		Title:       in.Title,
		Author:      in.Author,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		Category:    in.Category,
		Note:        in.Note,
		Stock:       in.Stock,
	}.Sanitized()
}

// Sanitized coerces numeric fields onto their valid ranges. Prices are
// kept in whole cents so line and cart totals are exact sums.
func (it Item) Sanitized() Item {
	it.ID = NormalizeID(it.ID)
	if it.Price < 0 || math.IsNaN(it.Price) || math.IsInf(it.Price, 0) {
		it.Price = 0
	}
	it.Price = FromCents(Cents(it.Price))
	if it.Stock < 0 {
		it.Stock = 0
	}
	return it
}

// Customer is the contact snapshot captured on an order.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// CartLine is an item snapshot plus a quantity.
type CartLine struct {
	Item
	Quantity int `json:"quantity"`
}

// LineTotal returns price times quantity computed in cents.
func (l CartLine) LineTotal() float64 {
	return FromCents(Cents(l.Price) * int64(l.Quantity))
}

// Order is an append-only checkout record; only Status changes after creation.
type Order struct {
	ID       string     `json:"id"`
	Customer Customer   `json:"customer"`
	Items    []CartLine `json:"items"`
	Total    float64    `json:"total"`
	Date     time.Time  `json:"date"`
	Status   Status     `json:"status"`
}

// Clone returns a copy that shares no slices with o.
func (o Order) Clone() Order {
	o.Items = CloneLines(o.Items)
	return o
}

// Collection is a named curation of item ids.
type Collection struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	ItemIDs []ID   `json:"bookIds"`
}

// Clone returns a copy that shares no slices with c.
func (c Collection) Clone() Collection {
	if c.ItemIDs != nil {
		c.ItemIDs = append([]ID(nil), c.ItemIDs...)
	}
	return c
}

// PageContent is the singleton record of editable site copy.
type PageContent struct {
	HeroTitle    string `json:"heroTitle" firestore:"heroTitle"`
	HeroSubtitle string `json:"heroSubtitle" firestore:"heroSubtitle"`
	HeroImage    string `json:"heroImage" firestore:"heroImage"`
	About        string `json:"aboutContent" firestore:"aboutContent"`
	LogoImage    string `json:"logoImage,omitempty" firestore:"logoImage"`
}

// Cents converts a decimal amount into integer cents.
func Cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromCents converts integer cents back into a decimal amount.
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}

// CartCount sums line quantities.
func CartCount(lines []CartLine) int {
	count := 0
	for _, l := range lines {
		count += l.Quantity
	}
	return count
}

// CartTotal sums price times quantity over lines using each line's stored price.
func CartTotal(lines []CartLine) float64 {
	var cents int64
	for _, l := range lines {
		cents += Cents(l.Price) * int64(l.Quantity)
	}
	return FromCents(cents)
}

// CloneLines copies a line slice.
func CloneLines(lines []CartLine) []CartLine {
	if len(lines) == 0 {
		return nil
	}
	dup := make([]CartLine, len(lines))
	copy(dup, lines)
	return dup
}

// CloneItems copies an item slice.
func CloneItems(items []Item) []Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}

// FormatPrice renders an amount with two decimals.
func FormatPrice(amount float64) string {
	return "$" + strconv.FormatFloat(amount, 'f', 2, 64)
}
