package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/storefront/internal/shop"
)

// formKind identifies what a submitted form does.
type formKind int

const (
	formLogin formKind = iota
	formCheckout
	formNewItem
	formEditItem
	formContent
	formNewCollection
	formEditCollection
	formRecommend
	formAPIKey
)

type formField struct {
	label string
	input textinput.Model
}

// form is a modal stack of text inputs. Enter advances and submits on the
// last field; esc cancels.
type form struct {
	kind   formKind
	title  string
	fields []formField
	focus  int
	err    string
	target shop.ID // item or collection being edited
}

func newForm(kind formKind, title string, fields ...formField) *form {
	f := &form{kind: kind, title: title, fields: fields}
	f.setFocus(0)
	return f
}

func textField(label, value, placeholder string) formField {
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = placeholder
	in.CharLimit = 2000
	in.Width = 40
	in.SetValue(value)
	return formField{label: label, input: in}
}

func secretField(label string) formField {
	f := textField(label, "", "")
	f.input.EchoMode = textinput.EchoPassword
	f.input.EchoCharacter = '•'
	return f
}

func (f *form) setFocus(i int) {
	if len(f.fields) == 0 {
		return
	}
	f.focus = (i + len(f.fields)) % len(f.fields)
	for idx := range f.fields {
		if idx == f.focus {
			f.fields[idx].input.Focus()
		} else {
			f.fields[idx].input.Blur()
		}
	}
}

// value returns the trimmed value of field i.
func (f *form) value(i int) string {
	if i < 0 || i >= len(f.fields) {
		return ""
	}
	return strings.TrimSpace(f.fields[i].input.Value())
}

// update feeds a key to the form. It reports whether the form was
// submitted or cancelled.
func (f *form) update(msg tea.KeyMsg) (submitted, cancelled bool, cmd tea.Cmd) {
	switch msg.String() {
	case "esc":
		return false, true, nil
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return false, false, nil
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return false, false, nil
	case "enter":
		if f.focus < len(f.fields)-1 {
			f.setFocus(f.focus + 1)
			return false, false, nil
		}
		return true, false, nil
	}
	f.err = ""
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return false, false, cmd
}

func (f *form) view(styles Styles, width int) string {
	labelWidth := 0
	for _, fld := range f.fields {
		if w := lipgloss.Width(fld.label); w > labelWidth {
			labelWidth = w
		}
	}
	inputWidth := width - labelWidth - 8
	if inputWidth < 10 {
		inputWidth = 10
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(f.title))
	b.WriteString("\n\n")
	for i, fld := range f.fields {
		label := styles.MutedText.Render(padRight(fld.label, labelWidth))
		if i == f.focus {
			label = styles.AccentText.Render(padRight(fld.label, labelWidth))
		}
		fld.input.Width = inputWidth
		b.WriteString(label + "  " + fld.input.View() + "\n")
	}
	if f.err != "" {
		b.WriteString("\n" + styles.DangerText.Render(f.err) + "\n")
	}
	b.WriteString("\n" + styles.FaintText.Render("enter next/submit · tab move · esc cancel"))
	return b.String()
}

// Form builders

func loginForm() *form {
	return newForm(formLogin, "Owner login", secretField("Password"))
}

func checkoutForm() *form {
	return newForm(formCheckout, "Checkout",
		textField("Name", "", "Jane Reader"),
		textField("Email", "", "jane@example.com"),
		textField("Address", "", "12 Long Beach Blvd"),
		textField("Phone", "", "optional"),
	)
}

const (
	itemTitle = iota
	itemAuthor
	itemPrice
	itemStock
	itemCategory
	itemNote
	itemImage
	itemDescription
)

func itemForm(existing *shop.Item) *form {
	var it shop.Item
	kind, title := formNewItem, "New book"
	if existing != nil {
		it = *existing
		kind, title = formEditItem, "Edit "+truncate(existing.Title, 40)
	}
	price, stock := "", ""
	if existing != nil {
		price = strconv.FormatFloat(it.Price, 'f', 2, 64)
		stock = strconv.Itoa(it.Stock)
	}
	f := newForm(kind, title,
		textField("Title", it.Title, ""),
		textField("Author", it.Author, ""),
		textField("Price", price, "0.00"),
		textField("Stock", stock, "0"),
		textField("Genre", it.Category, ""),
		textField("Publisher", it.Note, ""),
		textField("Cover", it.Image, "https://… or data:image/…"),
		textField("Description", it.Description, ""),
	)
	f.target = it.ID
	return f
}

var (
	errTitleRequired = errors.New("title is required")
	errNameRequired  = errors.New("name is required")
)

// itemInput reads an item form. Price and stock must parse; negative
// values are coerced by the store.
func (f *form) itemInput() (shop.ItemInput, error) {
	in := shop.ItemInput{
		Title:       f.value(itemTitle),
		Author:      f.value(itemAuthor),
		Category:    f.value(itemCategory),
		Note:        f.value(itemNote),
		Image:       f.value(itemImage),
		Description: f.value(itemDescription),
	}
	if in.Title == "" {
		return in, errTitleRequired
	}
	if raw := strings.TrimPrefix(f.value(itemPrice), "$"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return in, fmt.Errorf("price %q is not a number", raw)
		}
		in.Price = price
	}
	if raw := f.value(itemStock); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil {
			return in, fmt.Errorf("stock %q is not a whole number", raw)
		}
		in.Stock = stock
	}
	return in, nil
}

func (f *form) customer() (shop.Customer, error) {
	c := shop.Customer{
		Name:    f.value(0),
		Email:   f.value(1),
		Address: f.value(2),
		Phone:   f.value(3),
	}
	if c.Name == "" {
		return c, errNameRequired
	}
	return c, nil
}

func contentForm(pc shop.PageContent) *form {
	return newForm(formContent, "Edit page content",
		textField("Hero title", pc.HeroTitle, ""),
		textField("Hero subtitle", pc.HeroSubtitle, ""),
		textField("Hero image", pc.HeroImage, ""),
		textField("Logo", pc.LogoImage, ""),
		textField("About", pc.About, ""),
	)
}

func (f *form) pageContent() shop.PageContent {
	return shop.PageContent{
		HeroTitle:    f.value(0),
		HeroSubtitle: f.value(1),
		HeroImage:    f.value(2),
		LogoImage:    f.value(3),
		About:        f.value(4),
	}
}

func collectionForm(existing *shop.Collection) *form {
	kind, title := formNewCollection, "New collection"
	name, ids := "", ""
	var target shop.ID
	if existing != nil {
		kind, title = formEditCollection, "Edit collection"
		name = existing.Name
		parts := make([]string, len(existing.ItemIDs))
		for i, id := range existing.ItemIDs {
			parts[i] = id.String()
		}
		ids = strings.Join(parts, ", ")
		target = existing.ID
	}
	f := newForm(kind, title,
		textField("Name", name, "Staff picks"),
		textField("Book ids", ids, "1, 4, 6"),
	)
	f.target = target
	return f
}

func (f *form) collectionMembers() (string, []shop.ID, error) {
	name := f.value(0)
	if name == "" {
		return "", nil, errNameRequired
	}
	raw := splitIDs(f.value(1))
	ids := make([]shop.ID, 0, len(raw))
	for _, r := range raw {
		ids = append(ids, shop.NormalizeID(r))
	}
	return name, ids, nil
}

func recommendForm(previous string) *form {
	return newForm(formRecommend, "What are you in the mood for?",
		textField("Looking for", previous, "a hopeful sci-fi adventure"),
	)
}

func apiKeyForm(reason string) *form {
	f := newForm(formAPIKey, "Gemini API key", secretField("API key"))
	f.err = reason
	return f
}
