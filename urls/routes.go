package urls

import "strings"

// Route is a logical route name.
type Route string

// Routes linked from the landing page and its layout.
const (
	Home         Route = "home"
	LibraryDoc   Route = "library.doc"
	MempoolIndex Route = "mempool.index"
	MempoolPost  Route = "mempool.post"
	MempoolFeed  Route = "mempool.feed"
	PodcastIndex Route = "podcast.index"
	DonateIndex  Route = "donate.index"
	Skeptics     Route = "skeptics"
	CrashCourse  Route = "crash-course"
	FinneyRPOW   Route = "finney.rpow"
	Substack     Route = "substack"
)

// Params carries the values a parameterized route needs, keyed by name.
type Params map[string]string

// Slug is shorthand for the single-parameter routes.
func Slug(slug string) Params { return Params{"slug": slug} }

const localeSegment = "{locale}"

// route is one row of the link table. Patterns are slash separated; a
// segment in braces is a placeholder. External routes have no pattern and
// resolve to a configured absolute URL.
type route struct {
	name     Route
	pattern  string
	external bool
}

// table is ordered; Match walks it top to bottom.
var table = []route{
	{name: Home, pattern: "/{locale}/"},
	{name: LibraryDoc, pattern: "/{locale}/library/{slug}/"},
	{name: MempoolIndex, pattern: "/{locale}/mempool/"},
	{name: MempoolFeed, pattern: "/{locale}/mempool/feed.xml"},
	{name: MempoolPost, pattern: "/{locale}/mempool/{slug}/"},
	{name: PodcastIndex, pattern: "/{locale}/podcast/"},
	{name: DonateIndex, pattern: "/{locale}/donate/"},
	{name: Skeptics, pattern: "/{locale}/the-skeptics/"},
	{name: CrashCourse, pattern: "/{locale}/crash-course/"},
	{name: FinneyRPOW, pattern: "/finney/rpow/"},
	{name: Substack, external: true},
}

var byName = func() map[Route]route {
	m := make(map[Route]route, len(table))
	for _, r := range table {
		m[r.name] = r
	}
	return m
}()

// Names lists every known route in table order.
func Names() []Route {
	out := make([]Route, 0, len(table))
	for _, r := range table {
		out = append(out, r.name)
	}
	return out
}

func (r route) segments() []string {
	return strings.Split(strings.Trim(r.pattern, "/"), "/")
}

// params returns the placeholder names other than {locale}.
func (r route) params() []string {
	var out []string
	for _, seg := range r.segments() {
		if seg != localeSegment && isPlaceholder(seg) {
			out = append(out, seg[1:len(seg)-1])
		}
	}
	return out
}

func (r route) localized() bool {
	return strings.Contains(r.pattern, localeSegment)
}

func (r route) trailingSlash() bool {
	return strings.HasSuffix(r.pattern, "/")
}

func isPlaceholder(seg string) bool {
	return len(seg) > 2 && seg[0] == '{' && seg[len(seg)-1] == '}'
}
