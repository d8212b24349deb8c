// Package storefront serves the public page shell: resolved header and
// footer plus the cart and wishlist badge counts of the visitor's session.
package storefront

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/settings"
)

// CountSource reads the badge counts of a session. The shell only observes
// these counts; the cart and wishlist services own them.
type CountSource interface {
	CartCount(ctx context.Context, session string) (int64, error)
	WishlistCount(ctx context.Context, session string) (int64, error)
}

// RedisCounts reads counts from the cart hash and wishlist set the
// storefront keeps per session.
type RedisCounts struct {
	rdb *redis.Client
}

// NewRedisCounts creates a CountSource backed by Redis.
func NewRedisCounts(rdb *redis.Client) *RedisCounts {
	return &RedisCounts{rdb: rdb}
}

// CartCount returns the number of distinct products in the cart.
func (c *RedisCounts) CartCount(ctx context.Context, session string) (int64, error) {
	n, err := c.rdb.HLen(ctx, "cart:"+session).Result()
	if err != nil {
		return 0, fmt.Errorf("reading cart count: %w", err)
	}
	return n, nil
}

// WishlistCount returns the number of wishlisted products.
func (c *RedisCounts) WishlistCount(ctx context.Context, session string) (int64, error) {
	n, err := c.rdb.SCard(ctx, "wishlist:"+session).Result()
	if err != nil {
		return 0, fmt.Errorf("reading wishlist count: %w", err)
	}
	return n, nil
}

// SettingsSource supplies the settings bag.
type SettingsSource interface {
	Bag(ctx context.Context) (settings.Bag, error)
}

// Shell is everything the storefront layout needs besides page content.
// A count is nil when its header badge is switched off.
type Shell struct {
	Header        settings.Header `json:"header"`
	Footer        settings.Footer `json:"footer"`
	CartCount     *int64          `json:"cart_count,omitempty"`
	WishlistCount *int64          `json:"wishlist_count,omitempty"`
}

// Service builds shells.
type Service struct {
	settings SettingsSource
	counts   CountSource
	logger   *slog.Logger
}

// NewService creates a storefront Service.
func NewService(src SettingsSource, counts CountSource, logger *slog.Logger) *Service {
	return &Service{settings: src, counts: counts, logger: logger}
}

// Shell resolves the header and footer and, for a known session, the badge
// counts the header shows. A failed count is logged and reported as zero.
func (s *Service) Shell(ctx context.Context, session string) (Shell, error) {
	bag, err := s.settings.Bag(ctx)
	if err != nil {
		return Shell{}, fmt.Errorf("loading settings: %w", err)
	}
	shell := Shell{
		Header: settings.ResolveHeader(bag),
		Footer: settings.ResolveFooter(bag),
	}

	var cart, wishlist int64
	g, gctx := errgroup.WithContext(ctx)
	if shell.Header.ShowCart {
		shell.CartCount = &cart
		if session != "" {
			g.Go(func() error {
				cart = s.count(gctx, "cart", session, s.counts.CartCount)
				return nil
			})
		}
	}
	if shell.Header.ShowWishlist {
		shell.WishlistCount = &wishlist
		if session != "" {
			g.Go(func() error {
				wishlist = s.count(gctx, "wishlist", session, s.counts.WishlistCount)
				return nil
			})
		}
	}
	_ = g.Wait()
	return shell, nil
}

func (s *Service) count(ctx context.Context, what, session string, fn func(context.Context, string) (int64, error)) int64 {
	n, err := fn(ctx, session)
	if err != nil {
		s.logger.Warn("reading badge count", "error", err, "count", what)
		return 0
	}
	return n
}
