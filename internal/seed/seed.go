// Package seed populates a fresh database with the back-office admin account
// and the storefront's default settings.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/internal/auth"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/settings"
)

// DefaultSettings are written on first seed. Existing values are never
// overwritten, so re-running the seed is safe after staff edit the site.
var DefaultSettings = []settings.Value{
	{Group: settings.GroupHeader, Key: "site_name", Value: settings.DefaultSiteName},
	{Group: settings.GroupHeader, Key: "tagline", Value: "Furniture and lifestyle, curated in Dhaka"},
	{Group: settings.GroupHeader, Key: "top_bar_text", Value: "Free delivery inside Dhaka on orders over ৳5,000"},
	{Group: settings.GroupHeader, Key: "show_top_bar", Value: "1"},
	{Group: settings.GroupHeader, Key: "show_search", Value: "1"},
	{Group: settings.GroupHeader, Key: "show_wishlist", Value: "1"},
	{Group: settings.GroupHeader, Key: "show_cart", Value: "1"},
	{Group: settings.GroupHeader, Key: "show_account", Value: "1"},
	{Group: settings.GroupContact, Key: "phone", Value: "+880 1700-000000"},
	{Group: settings.GroupContact, Key: "email", Value: "hello@eclub.example"},
	{Group: settings.GroupFooter, Key: "copyright", Value: "© E-Club. All rights reserved."},
}

// Run ensures the admin account exists with the configured password and
// inserts any missing default settings. It is idempotent.
func Run(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger, adminEmail, adminPassword string) error {
	if adminPassword == "" {
		return errors.New("ADMIN_PASSWORD must be set to seed the admin account")
	}

	users := auth.NewStore(pool)
	admin, err := users.Upsert(ctx, adminEmail, "Administrator", adminPassword, auth.RoleAdmin)
	if err != nil {
		return fmt.Errorf("seeding admin user: %w", err)
	}
	logger.Info("seed: admin user ready", "email", admin.Email, "id", admin.ID)

	if err := settings.NewStore(pool).SeedDefaults(ctx, DefaultSettings); err != nil {
		return err
	}
	logger.Info("seed: default settings ensured", "count", len(DefaultSettings))

	return nil
}
