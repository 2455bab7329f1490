package model

const (
	// ScrollThreshold is the offset above which the nav switches to its
	// scrolled style.
	ScrollThreshold = 50.0
	// ParallaxFactor scales the scroll offset into the hero backdrop shift.
	ParallaxFactor = 0.5

	NavClassScrolled = "apple-glass backdrop-blur-md"
	NavClassTop      = "bg-transparent"

	HighlightStagger = 0.2
	ProjectStagger   = 0.2
	SkillStagger     = 0.1

	sectionDuration = 0.8
	revealOffset    = 50
)

// Motion is an entrance animation: a fade in from an offset over Duration
// seconds, starting after Delay seconds.
type Motion struct {
	Duration float64 `json:"duration"`
	Delay    float64 `json:"delay"`
	OffsetX  int     `json:"offsetX"`
	OffsetY  int     `json:"offsetY"`
}

type Profile struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Accent    string `json:"accent"`
	Tagline   string `json:"tagline"`
	About     string `json:"about"`
	Footer    string `json:"footer"`
	Year      int    `json:"year"`
	CTAWork   string `json:"ctaWork"`
	CTAResume string `json:"ctaResume"`
	CTAStart  string `json:"ctaStart"`
}

type NavItem struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

type Highlight struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Motion      Motion `json:"motion"`
}

type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tech        []string `json:"tech"`
	Image       string   `json:"image"`
	GitHub      string   `json:"github"`
	Live        string   `json:"live"`
	Motion      Motion   `json:"motion"`
}

type Skill struct {
	Name   string `json:"name"`
	Level  int    `json:"level"`
	Motion Motion `json:"motion"`
}

type Contact struct {
	Icon string `json:"icon"`
	Text string `json:"text"`
	Href string `json:"href"`
}

type Content struct {
	Profile    Profile     `json:"profile"`
	Nav        []NavItem   `json:"nav"`
	Highlights []Highlight `json:"highlights"`
	Projects   []Project   `json:"projects"`
	Skills     []Skill     `json:"skills"`
	Contacts   []Contact   `json:"contacts"`
}

// Stagger returns the entrance motion of the index-th card of a section.
func Stagger(index int, step float64, offsetX, offsetY int) Motion {
	return Motion{
		Duration: sectionDuration,
		Delay:    float64(index) * step,
		OffsetX:  offsetX,
		OffsetY:  offsetY,
	}
}

// NewContent returns the page content. Every call builds fresh slices so
// callers may change the result freely.
func NewContent() Content {
	content := Content{
		Profile: Profile{
			Name:      "Alex Chen",
			Role:      "Frontend",
			Accent:    "Developer",
			Tagline:   "I craft exceptional digital experiences with modern web technologies",
			About:     "With 5+ years of experience in frontend development, I specialize in creating user-centered digital experiences that combine beautiful design with robust functionality.",
			Footer:    "Crafted with passion and code.",
			Year:      2024,
			CTAWork:   "View My Work",
			CTAResume: "Download Resume",
			CTAStart:  "Start a Project",
		},
		Nav: []NavItem{
			{Label: "About", Href: "#about"},
			{Label: "Projects", Href: "#projects"},
			{Label: "Skills", Href: "#skills"},
			{Label: "Contact", Href: "#contact"},
		},
		Highlights: []Highlight{
			{Icon: "code", Title: "Clean Code", Description: "Writing maintainable, scalable code following best practices"},
			{Icon: "palette", Title: "Design Focus", Description: "Bringing designs to life with pixel-perfect precision"},
			{Icon: "zap", Title: "Performance", Description: "Optimizing for speed and exceptional user experience"},
		},
		Projects: []Project{
			{
				Title:       "E-Commerce Platform",
				Description: "A modern React-based e-commerce platform with real-time inventory management and seamless checkout experience.",
				Tech:        []string{"React", "TypeScript", "Node.js", "PostgreSQL"},
				Image:       "https://images.unsplash.com/photo-1556742049-0cfed4f6a45d?w=800&h=600&fit=crop",
				GitHub:      "https://github.com",
				Live:        "https://demo.com",
			},
			{
				Title:       "Design System",
				Description: "Comprehensive design system with reusable components, built with Storybook and used across multiple products.",
				Tech:        []string{"React", "Storybook", "Tailwind CSS", "Figma"},
				Image:       "https://images.unsplash.com/photo-1558655146-d09347e92766?w=800&h=600&fit=crop",
				GitHub:      "https://github.com",
				Live:        "https://storybook.com",
			},
			{
				Title:       "Analytics Dashboard",
				Description: "Real-time analytics dashboard with interactive charts and data visualization for business intelligence.",
				Tech:        []string{"Next.js", "D3.js", "Prisma", "Vercel"},
				Image:       "https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=800&h=600&fit=crop",
				GitHub:      "https://github.com",
				Live:        "https://dashboard.com",
			},
		},
		Skills: []Skill{
			{Name: "React/Next.js", Level: 95},
			{Name: "TypeScript", Level: 90},
			{Name: "Tailwind CSS", Level: 95},
			{Name: "Node.js", Level: 85},
			{Name: "GraphQL", Level: 80},
			{Name: "AWS/Vercel", Level: 75},
		},
		Contacts: []Contact{
			{Icon: "mail", Text: "alex@example.com", Href: "mailto:alex@example.com"},
			{Icon: "github", Text: "GitHub", Href: "https://github.com"},
			{Icon: "linkedin", Text: "LinkedIn", Href: "https://linkedin.com"},
		},
	}

	for i := range content.Highlights {
		content.Highlights[i].Motion = Stagger(i, HighlightStagger, 0, revealOffset)
	}

	for i := range content.Projects {
		content.Projects[i].Motion = Stagger(i, ProjectStagger, 0, revealOffset)
	}

	for i := range content.Skills {
		content.Skills[i].Motion = Stagger(i, SkillStagger, -revealOffset, 0)
	}

	return content
}

// WithOwner replaces the page owner's name and contact address. Empty
// values keep the defaults.
func (c Content) WithOwner(name, email string) Content {
	if name != "" {
		c.Profile.Name = name
	}

	if email == "" {
		return c
	}

	contacts := make([]Contact, len(c.Contacts))
	copy(contacts, c.Contacts)

	for i := range contacts {
		if contacts[i].Icon == "mail" {
			contacts[i].Text = email
			contacts[i].Href = "mailto:" + email
		}
	}

	c.Contacts = contacts

	return c
}

// NavScrolled reports whether the nav takes its scrolled style at scrollY.
func NavScrolled(scrollY float64) bool {
	return scrollY > ScrollThreshold
}

func NavClass(scrollY float64) string {
	if NavScrolled(scrollY) {
		return NavClassScrolled
	}

	return NavClassTop
}

func ParallaxOffset(scrollY float64) float64 {
	return scrollY * ParallaxFactor
}
