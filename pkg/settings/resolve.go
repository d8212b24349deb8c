package settings

import (
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/media"
	"github.com/najmus-sakib-hossain/e-club-latest-project-sub000/pkg/payment"
)

// Link is a labelled navigation link.
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Header is the resolved storefront header.
type Header struct {
	SiteName     string `json:"site_name"`
	Tagline      string `json:"tagline"`
	LogoURL      string `json:"logo_url"`
	TopBarText   string `json:"top_bar_text"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email"`
	NavLinks     []Link `json:"nav_links"`

	ShowTopBar   bool `json:"show_top_bar"`
	ShowSearch   bool `json:"show_search"`
	ShowWishlist bool `json:"show_wishlist"`
	ShowCart     bool `json:"show_cart"`
	ShowAccount  bool `json:"show_account"`
}

// SocialLinks are the footer social profile URLs. Empty means not configured.
type SocialLinks struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
	YouTube   string `json:"youtube"`
	LinkedIn  string `json:"linkedin"`
}

// Footer is the resolved storefront footer.
type Footer struct {
	SiteName        string           `json:"site_name"`
	LogoURL         string           `json:"logo_url"`
	Description     string           `json:"description"`
	Address         string           `json:"address"`
	Phone           string           `json:"phone"`
	Email           string           `json:"email"`
	Copyright       string           `json:"copyright"`
	NewsletterTitle string           `json:"newsletter_title"`
	NewsletterText  string           `json:"newsletter_text"`
	QuickLinks      []Link           `json:"quick_links"`
	CustomerLinks   []Link           `json:"customer_links"`
	Social          SocialLinks      `json:"social"`
	PaymentMethods  []payment.Method `json:"payment_methods"`

	ShowContactInfo    bool `json:"show_contact_info"`
	ShowPaymentMethods bool `json:"show_payment_methods"`
	ShowSocialLinks    bool `json:"show_social_links"`
	ShowNewsletter     bool `json:"show_newsletter"`
}

// ResolveHeader resolves every header field from b.
func ResolveHeader(b Bag) Header {
	return Header{
		SiteName:     Resolve(b, HeaderSiteName),
		Tagline:      Resolve(b, HeaderTagline),
		LogoURL:      media.URL(Resolve(b, HeaderLogo)),
		TopBarText:   Resolve(b, HeaderTopBarText),
		ContactPhone: Resolve(b, HeaderContactPhone),
		ContactEmail: Resolve(b, HeaderContactEmail),
		NavLinks:     ResolveList(b, HeaderNavLinks, DefaultNavLinks),

		ShowTopBar:   ResolveBool(b, HeaderShowTopBar),
		ShowSearch:   ResolveBool(b, HeaderShowSearch),
		ShowWishlist: ResolveBool(b, HeaderShowWishlist),
		ShowCart:     ResolveBool(b, HeaderShowCart),
		ShowAccount:  ResolveBool(b, HeaderShowAccount),
	}
}

// ResolveFooter resolves every footer field from b.
func ResolveFooter(b Bag) Footer {
	return Footer{
		SiteName:        Resolve(b, HeaderSiteName),
		LogoURL:         media.URL(Resolve(b, FooterLogo)),
		Description:     Resolve(b, FooterDescription),
		Address:         Resolve(b, FooterAddress),
		Phone:           Resolve(b, FooterPhone),
		Email:           Resolve(b, FooterEmail),
		Copyright:       Resolve(b, FooterCopyright),
		NewsletterTitle: Resolve(b, FooterNewsletterTitle),
		NewsletterText:  Resolve(b, FooterNewsletterText),
		QuickLinks:      ResolveList(b, FooterQuickLinks, DefaultQuickLinks),
		CustomerLinks:   ResolveList(b, FooterCustomerLinks, DefaultCustomerLinks),
		Social: SocialLinks{
			Facebook:  Resolve(b, FooterFacebook),
			Instagram: Resolve(b, FooterInstagram),
			Twitter:   Resolve(b, FooterTwitter),
			YouTube:   Resolve(b, FooterYouTube),
			LinkedIn:  Resolve(b, FooterLinkedIn),
		},
		PaymentMethods: payment.Normalize(Resolve(b, FooterPaymentMethods)),

		ShowContactInfo:    ResolveBool(b, FooterShowContactInfo),
		ShowPaymentMethods: ResolveBool(b, FooterShowPaymentMethods),
		ShowSocialLinks:    ResolveBool(b, FooterShowSocialLinks),
		ShowNewsletter:     ResolveBool(b, FooterShowNewsletter),
	}
}
