package pages

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// feature is one card in the landing page feature grid.
type feature struct {
	title string
	body  string
}

var features = []feature{
	{
		title: "Adaptive by default",
		body:  "Every visual scales itself to the device in front of it. Small screens, slow networks, and modest CPUs get a lighter experience automatically.",
	},
	{
		title: "Alive to the page",
		body:  "Scenes respond to how far you've scrolled, rotating and fading with the story instead of looping in a corner.",
	},
	{
		title: "Fails soft",
		body:  "No GPU, no problem. When hardware acceleration is unavailable the experience degrades to a styled static hero, never a broken page.",
	},
}

type socialLink struct {
	label string
	href  string
}

var socials = []socialLink{
	{label: "X", href: "https://x.com/nexusnext"},
	{label: "GitHub", href: "https://github.com/nexusnext"},
	{label: "LinkedIn", href: "https://linkedin.com/company/nexusnext"},
}

// Landing renders the full landing page document.
//
// Returns:
//   - g.Node: the HTML document, doctype included
func Landing() g.Node {
	return Doctype(HTML(
		Lang("en"),
		Head(
			Meta(Charset("utf-8")),
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			TitleEl(g.Text("Nexusnext — Build what's next")),
			Meta(Name("description"), Content("Nexusnext is the adaptive platform for teams building what comes next. Join the waitlist for early access.")),
			StyleEl(g.Raw(landingCSS)),
		),
		Body(
			hero(),
			featureGrid(),
			waitlistForm(),
			footer(),
		),
	))
}

func hero() g.Node {
	return Section(
		Class("hero"),
		ID("hero"),
		H1(g.Text("Build what's next.")),
		P(
			Class("tagline"),
			g.Text("Nexusnext adapts to every device, every network, and every person who shows up."),
		),
		A(Href("#waitlist"), Class("cta"), g.Text("Join the waitlist")),
	)
}

func featureGrid() g.Node {
	cards := make([]g.Node, 0, len(features))
	for _, f := range features {
		cards = append(cards, Div(
			Class("card"),
			H3(g.Text(f.title)),
			P(g.Text(f.body)),
		))
	}
	return Section(
		Class("features"),
		ID("features"),
		g.Group(cards),
	)
}

func waitlistForm() g.Node {
	return Section(
		Class("waitlist"),
		ID("waitlist"),
		H2(g.Text("Get early access")),
		Form(
			Method("post"),
			Action("/api/waitlist"),
			Input(
				Type("email"),
				Name("email"),
				Placeholder("you@example.com"),
				Required(),
			),
			Button(Type("submit"), g.Text("Join")),
		),
	)
}

func footer() g.Node {
	links := make([]g.Node, 0, len(socials))
	for _, s := range socials {
		links = append(links, A(
			Href(s.href),
			Rel("noopener"),
			Target("_blank"),
			g.Text(s.label),
		))
	}
	return Footer(
		Div(Class("socials"), g.Group(links)),
		P(g.Text("© 2026 Nexusnext")),
	)
}

const landingCSS = `
:root { color-scheme: dark; }
body { margin: 0; font-family: system-ui, sans-serif; background: #05060f; color: #e8eaf6; }
.hero { min-height: 70vh; display: flex; flex-direction: column; justify-content: center; align-items: center; text-align: center; padding: 2rem; }
.hero h1 { font-size: clamp(2.5rem, 6vw, 4.5rem); margin: 0; }
.tagline { max-width: 40rem; color: #9aa3c7; font-size: 1.2rem; }
.cta { margin-top: 2rem; padding: 0.8rem 2rem; border-radius: 999px; background: #5468ff; color: #fff; text-decoration: none; }
.features { display: grid; gap: 1.5rem; grid-template-columns: repeat(auto-fit, minmax(16rem, 1fr)); padding: 3rem clamp(1rem, 8vw, 6rem); }
.card { background: #0c0e1d; border: 1px solid #1c2140; border-radius: 12px; padding: 1.5rem; }
.waitlist { text-align: center; padding: 4rem 1rem; }
.waitlist form { display: inline-flex; gap: 0.5rem; }
.waitlist input { padding: 0.7rem 1rem; border-radius: 8px; border: 1px solid #1c2140; background: #0c0e1d; color: inherit; min-width: 18rem; }
.waitlist button { padding: 0.7rem 1.5rem; border-radius: 8px; border: none; background: #5468ff; color: #fff; }
footer { text-align: center; padding: 2rem; color: #9aa3c7; }
.socials a { margin: 0 0.75rem; color: inherit; }
`
