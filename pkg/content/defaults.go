package content

// Defaults is the built-in text of a section that has never been saved.
type Defaults struct {
	Title    string
	Subtitle string
	Content  string
	Items    []Item
}

var defaultContent = map[string]map[string]Defaults{
	"about": {
		"hero": {
			Title:    "About E-Club",
			Subtitle: "Quality products and honest service since day one.",
		},
		"story": {
			Title:   "Our Story",
			Content: "E-Club started as a small shop with a simple idea: make good products easy to find and easy to buy.\n\nToday we serve customers across the country from our showroom and online store.",
		},
		"values": {
			Title: "What We Stand For",
			Items: []Item{
				{"title": "Quality", "description": "Every product is checked before it reaches you."},
				{"title": "Service", "description": "Real people answer your calls and messages."},
				{"title": "Trust", "description": "Clear prices, secure payments and easy returns."},
			},
		},
		"team": {
			Title:    "Meet the Team",
			Subtitle: "The people behind E-Club.",
		},
	},
	"privacy": {
		"introduction": {
			Title:   "Introduction",
			Content: "This policy explains what information we collect when you use our store and how we use it.",
		},
		"data_collection": {
			Title:   "Information We Collect",
			Content: "We collect the details you give us when you place an order, book a meeting or request a callback: your name, email address, phone number and delivery address.",
		},
		"data_usage": {
			Title:   "How We Use Your Information",
			Content: "We use your information to process orders, arrange meetings and callbacks, and to contact you about your purchases. We do not sell your personal data.",
		},
		"cookies": {
			Title:   "Cookies",
			Content: "We use cookies to keep your cart and wishlist between visits and to understand how the store is used.",
		},
		"contact": {
			Title:    "Contact Us",
			Subtitle: "Questions about your data?",
			Content:  "Contact our support team and we will respond within two business days.",
		},
	},
	"terms": {
		"overview": {
			Title:   "Overview",
			Content: "By using this store you agree to these terms. Please read them carefully before placing an order.",
		},
		"orders": {
			Title:   "Orders & Payment",
			Content: "All prices are shown in local currency and include applicable taxes. An order is confirmed once payment has been received or cash on delivery has been accepted.",
		},
		"returns": {
			Title:   "Returns & Refunds",
			Content: "Unused items in their original packaging may be returned within 7 days of delivery. Refunds are issued to the original payment method.",
		},
		"faq": {
			Title: "Frequently Asked Questions",
			Items: []Item{
				{"question": "How long does delivery take?", "answer": "Orders inside the city arrive within 2 business days; elsewhere within 5."},
				{"question": "Can I change my order?", "answer": "Yes, contact us before the order is dispatched."},
			},
		},
	},
}

// DefaultsFor returns the built-in text for a page section, if any.
func DefaultsFor(slug, key string) (Defaults, bool) {
	d, ok := defaultContent[slug][key]
	return d, ok
}
