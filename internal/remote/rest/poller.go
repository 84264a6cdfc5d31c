package rest

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/five82/storefront/internal/remote"
	"github.com/five82/storefront/internal/shop"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// calculateBackoff doubles the base interval per consecutive failure, capped
// at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}

// Subscribe polls the catalog and delivers a snapshot whenever it differs
// from the last one delivered. The first successful fetch, and the first one
// after a failed poll, are always delivered so the receiver sees recovery.
func (c *Client) Subscribe(ctx context.Context, onSnapshot func([]shop.Item), onError func(error)) remote.Unsubscribe {
	var last []shop.Item
	delivered := false
	return c.poll(ctx, func(ctx context.Context) error {
		items, err := c.FetchAll(ctx)
		if err != nil {
			delivered = false
			return err
		}
		if delivered && reflect.DeepEqual(items, last) {
			return nil
		}
		last = items
		delivered = true
		onSnapshot(shop.CloneItems(items))
		return nil
	}, onError)
}

// subscribeContent polls the content document. A missing document is not an
// error and produces no callback. Like Subscribe, a failed poll forces the
// next value through.
func (c *Client) subscribeContent(ctx context.Context, onValue func(shop.PageContent), onError func(error)) remote.Unsubscribe {
	var last shop.PageContent
	delivered := false
	return c.poll(ctx, func(ctx context.Context) error {
		content, err := c.Fetch(ctx)
		if errors.Is(err, remote.ErrNotFound) {
			return nil
		}
		if err != nil {
			delivered = false
			return err
		}
		if delivered && content == last {
			return nil
		}
		last = content
		delivered = true
		onValue(content)
		return nil
	}, onError)
}

// ContentDocument adapts the client to remote.Content, whose Subscribe
// signature differs from the catalog's.
type ContentDocument struct {
	*Client
}

var _ remote.Content = ContentDocument{}

// Subscribe polls the content document.
func (d ContentDocument) Subscribe(ctx context.Context, onValue func(shop.PageContent), onError func(error)) remote.Unsubscribe {
	return d.Client.subscribeContent(ctx, onValue, onError)
}

// poll runs refresh until the returned func is called. The returned func
// waits for the goroutine to exit, so it must not be called from a callback.
func (c *Client) poll(parent context.Context, refresh func(context.Context) error, onError func(error)) remote.Unsubscribe {
	ctx, cancel := context.WithCancel(parent)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		failures := 0
		for {
			err := refresh(ctx)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				failures++
				if onError != nil {
					onError(err)
				}
			} else {
				failures = 0
			}

			timer := time.NewTimer(calculateBackoff(failures, c.pollEvery))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			wg.Wait()
		})
	}
}

func sortByTitle(items []shop.Item) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].Title < items[j].Title })
}
