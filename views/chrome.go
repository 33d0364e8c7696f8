package views

type Link struct {
	Label  string
	Href   string
	Active bool
}

type Navbar struct {
	Brand      string
	Links      []Link
	SearchOpen bool
	Query      string
}

// NewNavbar marks the link for path as active. The search box starts open
// when asked for or when a query is already showing.
func NewNavbar(brand, path string, searchOpen bool, query string) Navbar {
	links := []Link{
		{Label: "Home", Href: "/"},
		{Label: "Browse", Href: "/browse"},
		{Label: "Trending", Href: "/trending"},
		{Label: "Seasonal", Href: "/seasonal"},
	}
	for i := range links {
		links[i].Active = links[i].Href == path
	}
	return Navbar{
		Brand:      brand,
		Links:      links,
		SearchOpen: searchOpen || query != "",
		Query:      query,
	}
}

type FooterGroup struct {
	Heading string
	Links   []Link
}

type Footer struct {
	Groups []FooterGroup
	Site   string
	Year   int
}

func NewFooter(site string, year int) Footer {
	return Footer{
		Site: site,
		Year: year,
		Groups: []FooterGroup{
			{Heading: "About", Links: []Link{
				{Label: "About Us", Href: "/about"},
				{Label: "Contact", Href: "/contact"},
				{Label: "Careers", Href: "/careers"},
			}},
			{Heading: "Browse", Links: []Link{
				{Label: "All Anime", Href: "/browse"},
				{Label: "Trending", Href: "/trending"},
				{Label: "Seasonal", Href: "/seasonal"},
				{Label: "Genres", Href: "/genres"},
			}},
			{Heading: "Support", Links: []Link{
				{Label: "Help Center", Href: "/help"},
				{Label: "FAQ", Href: "/faq"},
				{Label: "Terms", Href: "/terms"},
				{Label: "Privacy", Href: "/privacy"},
			}},
			{Heading: "Community", Links: []Link{
				{Label: "Twitter", Href: "#"},
				{Label: "Discord", Href: "#"},
				{Label: "Reddit", Href: "#"},
			}},
		},
	}
}
