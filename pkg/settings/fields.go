package settings

// Groups used in the settings store. "header", "footer" and "social" hold the
// current flat keys; "general" and "contact" are the older shared groups that
// the header and footer still fall back to.
const (
	GroupGeneral = "general"
	GroupContact = "contact"
	GroupHeader  = "header"
	GroupFooter  = "footer"
	GroupSocial  = "social"
)

// DefaultSiteName is shown when no site name has been configured.
const DefaultSiteName = "E-Club"

// Header fields.
var (
	HeaderSiteName     = Field{"site_name", []Candidate{At(GroupHeader, "site_name"), At(GroupGeneral, "site_name")}, DefaultSiteName}
	HeaderTagline      = Field{"tagline", []Candidate{At(GroupHeader, "tagline"), At(GroupGeneral, "site_tagline")}, "Your trusted shopping destination"}
	HeaderLogo         = Field{"logo", []Candidate{At(GroupHeader, "logo"), At(GroupGeneral, "logo")}, ""}
	HeaderTopBarText   = Field{"top_bar_text", []Candidate{At(GroupHeader, "top_bar_text"), At(GroupGeneral, "announcement")}, "Welcome to E-Club"}
	HeaderContactPhone = Field{"contact_phone", []Candidate{At(GroupHeader, "contact_phone"), At(GroupContact, "phone")}, ""}
	HeaderContactEmail = Field{"contact_email", []Candidate{At(GroupHeader, "contact_email"), At(GroupContact, "email")}, ""}
	HeaderNavLinks     = Field{"nav_links", []Candidate{At(GroupHeader, "nav_links")}, ""}

	HeaderShowTopBar   = Field{"show_top_bar", []Candidate{At(GroupHeader, "show_top_bar")}, ""}
	HeaderShowSearch   = Field{"show_search", []Candidate{At(GroupHeader, "show_search")}, ""}
	HeaderShowWishlist = Field{"show_wishlist", []Candidate{At(GroupHeader, "show_wishlist")}, ""}
	HeaderShowCart     = Field{"show_cart", []Candidate{At(GroupHeader, "show_cart")}, ""}
	HeaderShowAccount  = Field{"show_account", []Candidate{At(GroupHeader, "show_account")}, ""}
)

// Footer fields. The footer logo falls back to the header logo before the
// shared one.
var (
	FooterLogo            = Field{"logo", []Candidate{At(GroupFooter, "logo"), At(GroupHeader, "logo"), At(GroupGeneral, "logo")}, ""}
	FooterDescription     = Field{"description", []Candidate{At(GroupFooter, "description"), At(GroupGeneral, "site_description")}, "Quality products delivered to your door."}
	FooterAddress         = Field{"address", []Candidate{At(GroupFooter, "address"), At(GroupContact, "address")}, ""}
	FooterPhone           = Field{"phone", []Candidate{At(GroupFooter, "phone"), At(GroupContact, "phone")}, ""}
	FooterEmail           = Field{"email", []Candidate{At(GroupFooter, "email"), At(GroupContact, "email")}, ""}
	FooterCopyright       = Field{"copyright", []Candidate{At(GroupFooter, "copyright"), At(GroupGeneral, "copyright")}, "© E-Club. All rights reserved."}
	FooterNewsletterTitle = Field{"newsletter_title", []Candidate{At(GroupFooter, "newsletter_title")}, "Subscribe to our newsletter"}
	FooterNewsletterText  = Field{"newsletter_text", []Candidate{At(GroupFooter, "newsletter_text")}, "Get the latest offers and new arrivals in your inbox."}
	FooterQuickLinks      = Field{"quick_links", []Candidate{At(GroupFooter, "quick_links")}, ""}
	FooterCustomerLinks   = Field{"customer_links", []Candidate{At(GroupFooter, "customer_links")}, ""}
	FooterPaymentMethods  = Field{"payment_methods", []Candidate{At(GroupFooter, "payment_methods")}, ""}

	FooterFacebook  = Field{"facebook", []Candidate{At(GroupFooter, "facebook_url"), At(GroupSocial, "facebook")}, ""}
	FooterInstagram = Field{"instagram", []Candidate{At(GroupFooter, "instagram_url"), At(GroupSocial, "instagram")}, ""}
	FooterTwitter   = Field{"twitter", []Candidate{At(GroupFooter, "twitter_url"), At(GroupSocial, "twitter")}, ""}
	FooterYouTube   = Field{"youtube", []Candidate{At(GroupFooter, "youtube_url"), At(GroupSocial, "youtube")}, ""}
	FooterLinkedIn  = Field{"linkedin", []Candidate{At(GroupFooter, "linkedin_url"), At(GroupSocial, "linkedin")}, ""}

	FooterShowContactInfo    = Field{"show_contact_info", []Candidate{At(GroupFooter, "show_contact_info")}, ""}
	FooterShowPaymentMethods = Field{"show_payment_methods", []Candidate{At(GroupFooter, "show_payment_methods")}, ""}
	FooterShowSocialLinks    = Field{"show_social_links", []Candidate{At(GroupFooter, "show_social_links")}, ""}
	FooterShowNewsletter     = Field{"show_newsletter", []Candidate{At(GroupFooter, "show_newsletter")}, ""}
)

// Default link lists.
var (
	DefaultNavLinks = []Link{
		{Label: "Home", URL: "/"},
		{Label: "Shop", URL: "/products"},
		{Label: "About", URL: "/about"},
		{Label: "Contact", URL: "/contact"},
	}
	DefaultQuickLinks = []Link{
		{Label: "About Us", URL: "/about"},
		{Label: "Shop", URL: "/products"},
		{Label: "Book a Meeting", URL: "/meetings/book"},
		{Label: "Request a Callback", URL: "/callbacks/request"},
	}
	DefaultCustomerLinks = []Link{
		{Label: "Privacy Policy", URL: "/privacy"},
		{Label: "Terms & Conditions", URL: "/terms"},
		{Label: "My Account", URL: "/account"},
		{Label: "Wishlist", URL: "/wishlist"},
	}
)
