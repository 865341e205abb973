package planner

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/maheshrc27/marketing-planner/internal/models"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	headerStyle = "padding:8px;border:1px solid #E0E0E0;background:#FAFAFA;font-weight:600;text-align:center;"
	cellStyle   = "padding:6px;border:1px solid #E0E0E0;vertical-align:top;width:14%;height:96px;"
	postStyle   = "margin-top:4px;padding:4px 6px;border-radius:4px;font-size:12px;background:%s;"
)

var audienceColors = map[int]string{
	1: "#E3F2FD",
	2: "#E8F5E9",
	3: "#FFF3E0",
}

func audienceColor(idx int) string {
	if c, ok := audienceColors[idx]; ok {
		return c
	}
	return "#F5F5F5"
}

var tablePolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("table", "thead", "tbody", "tr", "th", "td", "div", "span", "br", "strong", "em", "p")
	p.AllowAttrs("class").OnElements("table", "div", "span", "td")
	p.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
	p.AllowDataAttributes()
	return p
}()

var errDoubleBooked = errors.New("more than one post on a day")

// slotTable reads the model's table back into slots and restyles it.
func slotTable(table string, slots []Slot, prefs Preferences) (*CalendarPlan, error) {
	clean := tablePolicy.Sanitize(table)
	doc, err := html.Parse(strings.NewReader(clean))
	if err != nil {
		return nil, fmt.Errorf("parse calendar table: %w", err)
	}
	root := findElement(doc, atom.Table)
	if root == nil {
		return nil, errors.New("sanitized output has no table")
	}

	byKey := make(map[[2]int]Slot, len(slots))
	for _, s := range slots {
		byKey[[2]int{s.Week, s.Index}] = s
	}
	allowed := map[string]bool{}
	channels := prefs.channels()
	for _, c := range channels {
		allowed[c] = true
	}
	clock := prefs.clock()

	var placed []Slot
	used := map[[2]int]bool{}
	perDay := map[string]int{}
	var walkErr error

	walk(root, func(n *html.Node) {
		if walkErr != nil || n.Type != html.ElementNode {
			return
		}
		switch n.DataAtom {
		case atom.Th:
			setAttr(n, "style", headerStyle)
		case atom.Td:
			setAttr(n, "style", cellStyle)
			date, ok := attr(n, "data-date")
			if !ok {
				return
			}
			day, err := time.Parse("2006-01-02", date)
			if err != nil {
				return
			}
			walk(n, func(d *html.Node) {
				if walkErr != nil || d.Type != html.ElementNode || d.DataAtom != atom.Div || !hasClass(d, "post") {
					return
				}
				week, _ := strconv.Atoi(attrOr(d, "data-week"))
				idx, _ := strconv.Atoi(attrOr(d, "data-post"))
				key := [2]int{week, idx}
				s, known := byKey[key]
				if !known || used[key] {
					return
				}
				perDay[date]++
				if perDay[date] > 1 {
					walkErr = fmt.Errorf("%w: %s", errDoubleBooked, date)
					return
				}
				used[key] = true

				if a, err := strconv.Atoi(attrOr(d, "data-audience")); err == nil && a >= 1 && a <= 3 {
					s.AudienceIndex = a
				}
				s.Channel = strings.ToLower(attrOr(d, "data-channel"))
				if !allowed[s.Channel] {
					s.Channel = channels[len(placed)%len(channels)]
				}
				s.Date = day.Add(clock)
				setAttr(d, "data-audience", strconv.Itoa(s.AudienceIndex))
				setAttr(d, "data-channel", s.Channel)
				setAttr(d, "style", fmt.Sprintf(postStyle, audienceColor(s.AudienceIndex)))
				placed = append(placed, s)
			})
		}
	})
	if walkErr != nil {
		return nil, walkErr
	}
	if len(placed) == 0 {
		return nil, errors.New("calendar table has no recognisable posts")
	}
	if len(placed) != len(slots) {
		return nil, fmt.Errorf("calendar table placed %d of %d posts", len(placed), len(slots))
	}

	sort.SliceStable(placed, func(i, j int) bool { return placed[i].Date.Before(placed[j].Date) })

	var sb strings.Builder
	if err := html.Render(&sb, root); err != nil {
		return nil, fmt.Errorf("render calendar table: %w", err)
	}
	return &CalendarPlan{Source: SourceLLM, HTML: sb.String(), Slots: placed}, nil
}

// renderGrid draws a fallback grid with the same markup and styling as a
// restyled model table.
func renderGrid(g *Grid) string {
	table := element(atom.Table, "class", "calendar")
	thead := element(atom.Thead)
	head := element(atom.Tr)
	for _, h := range g.Headers {
		th := element(atom.Th, "style", headerStyle)
		th.AppendChild(text(h))
		head.AppendChild(th)
	}
	thead.AppendChild(head)
	table.AppendChild(thead)

	tbody := element(atom.Tbody)
	for _, row := range g.Rows {
		tr := element(atom.Tr)
		for _, cell := range row {
			td := element(atom.Td, "data-date", cell.Date.Format("2006-01-02"), "style", cellStyle)
			day := element(atom.Span, "class", "day")
			day.AppendChild(text(strconv.Itoa(cell.Date.Day())))
			td.AppendChild(day)
			for _, s := range cell.Posts {
				div := element(atom.Div,
					"class", "post",
					"data-week", strconv.Itoa(s.Week),
					"data-post", strconv.Itoa(s.Index),
					"data-audience", strconv.Itoa(s.AudienceIndex),
					"data-channel", s.Channel,
					"style", fmt.Sprintf(postStyle, audienceColor(s.AudienceIndex)))
				div.AppendChild(text(postLabel(s.Post)))
				td.AppendChild(div)
			}
			tr.AppendChild(td)
		}
		tbody.AppendChild(tr)
	}
	table.AppendChild(tbody)

	var sb strings.Builder
	// rendering an in-memory tree into a builder cannot fail
	_ = html.Render(&sb, table)
	return sb.String()
}

func postLabel(p models.PostPlan) string {
	if p.Type == "" {
		return p.Topic
	}
	return p.Type + ": " + p.Topic
}

func element(a atom.Atom, kv ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for i := 0; i+1 < len(kv); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func attrOr(n *html.Node, key string) string {
	v, _ := attr(n, key)
	return v
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attrOr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
