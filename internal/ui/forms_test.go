package ui

import (
	"errors"
	"reflect"
	"testing"

	"github.com/five82/storefront/internal/shop"
)

func TestItemForm_Prefills(t *testing.T) {
	it := shop.Item{ID: "7", Title: "Dune", Author: "Frank Herbert", Price: 9.5, Stock: 3}
	f := itemForm(&it)
	if f.kind != formEditItem || f.target != "7" {
		t.Fatalf("kind = %v target = %q, want edit of 7", f.kind, f.target)
	}
	if f.value(itemPrice) != "9.50" || f.value(itemStock) != "3" {
		t.Fatalf("price = %q stock = %q", f.value(itemPrice), f.value(itemStock))
	}
	if got := itemForm(nil); got.kind != formNewItem || got.value(itemPrice) != "" {
		t.Fatalf("new item form = %+v", got)
	}
}

func TestItemInput(t *testing.T) {
	f := itemForm(nil)
	if _, err := f.itemInput(); !errors.Is(err, errTitleRequired) {
		t.Fatalf("blank title error = %v", err)
	}

	f.fields[itemTitle].input.SetValue("  Dune ")
	f.fields[itemPrice].input.SetValue("$12.00")
	f.fields[itemStock].input.SetValue("2.5")
	if _, err := f.itemInput(); err == nil {
		t.Fatalf("fractional stock accepted")
	}

	f.fields[itemStock].input.SetValue("4")
	in, err := f.itemInput()
	if err != nil {
		t.Fatalf("itemInput returned error: %v", err)
	}
	if in.Title != "Dune" || in.Price != 12 || in.Stock != 4 {
		t.Fatalf("itemInput = %+v", in)
	}
}

func TestCollectionForm(t *testing.T) {
	existing := shop.Collection{ID: "9", Name: "Picks", ItemIDs: []shop.ID{"1", "2"}}
	f := collectionForm(&existing)
	if f.value(1) != "1, 2" || f.target != "9" {
		t.Fatalf("ids = %q target = %q", f.value(1), f.target)
	}

	f.fields[1].input.SetValue("3 4,5")
	name, ids, err := f.collectionMembers()
	if err != nil {
		t.Fatalf("collectionMembers returned error: %v", err)
	}
	if name != "Picks" || !reflect.DeepEqual(ids, []shop.ID{"3", "4", "5"}) {
		t.Fatalf("collectionMembers = %q %v", name, ids)
	}

	f.fields[0].input.SetValue(" ")
	if _, _, err := f.collectionMembers(); !errors.Is(err, errNameRequired) {
		t.Fatalf("blank name error = %v", err)
	}
}

func TestForm_Navigation(t *testing.T) {
	f := checkoutForm()
	if f.focus != 0 || !f.fields[0].input.Focused() {
		t.Fatalf("first field not focused")
	}

	submitted, cancelled, _ := f.update(keyMsg("enter"))
	if submitted || cancelled || f.focus != 1 {
		t.Fatalf("enter on first field: submitted=%v cancelled=%v focus=%d", submitted, cancelled, f.focus)
	}
	f.setFocus(-1)
	if f.focus != len(f.fields)-1 {
		t.Fatalf("focus did not wrap backwards: %d", f.focus)
	}
	if submitted, _, _ = f.update(keyMsg("enter")); !submitted {
		t.Fatalf("enter on last field did not submit")
	}
	if _, cancelled, _ = f.update(keyMsg("esc")); !cancelled {
		t.Fatalf("esc did not cancel")
	}
}

func TestForm_TypingClearsError(t *testing.T) {
	f := apiKeyForm("rejected")
	if f.err != "rejected" {
		t.Fatalf("err = %q", f.err)
	}
	f.update(keyMsg("k"))
	if f.err != "" || f.value(0) != "k" {
		t.Fatalf("err = %q value = %q", f.err, f.value(0))
	}
}

func TestContentForm_RoundTrip(t *testing.T) {
	pc := shop.PageContent{HeroTitle: "Hi", HeroSubtitle: "Sub", HeroImage: "img", About: "About us", LogoImage: "logo"}
	if got := contentForm(pc).pageContent(); got != pc {
		t.Fatalf("pageContent = %+v, want %+v", got, pc)
	}
}
