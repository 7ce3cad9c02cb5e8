package response

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/sant0-9/promptmaster/internal/prompts"
)

// Section is one titled block of the remainder, e.g. "Rationale".
type Section struct {
	Title string
	Body  string
}

var markdown = goldmark.New()

// Sections splits markdown into titled sections. A markdown heading or a
// paragraph whose first line is only bold text starts a new section. Text before the
// first title becomes a section with an empty title.
func Sections(src string) []Section {
	source := []byte(src)
	doc := markdown.Parser().Parse(text.NewReader(source))

	var sections []Section
	title := ""
	bodyStart := 0

	flush := func(stop int) {
		body := ""
		if bodyStart < stop {
			body = strings.TrimSpace(string(source[bodyStart:stop]))
		}
		if title == "" && body == "" {
			return
		}
		sections = append(sections, Section{Title: title, Body: body})
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		t, start, stop, ok := titleOf(n, source)
		if !ok {
			continue
		}
		flush(lineStart(source, start))
		title = t
		bodyStart = stop
	}
	flush(len(source))

	return sections
}

// Find returns the section whose title matches name, ignoring case.
func Find(sections []Section, name string) (Section, bool) {
	for _, s := range sections {
		if strings.EqualFold(s.Title, name) {
			return s, true
		}
	}
	return Section{}, false
}

var boldLine = regexp.MustCompile(`^(\*\*|__)([^*_]+)(\*\*|__):?$`)

// titleOf reports whether block n opens a section. For a paragraph only the
// first line is considered, so "**Rationale**" directly followed by text on
// the next line still counts.
func titleOf(n ast.Node, source []byte) (title string, start, stop int, ok bool) {
	if n.Type() != ast.TypeBlock || n.Lines().Len() == 0 {
		return "", 0, 0, false
	}
	lines := n.Lines()
	switch node := n.(type) {
	case *ast.Heading:
		var b strings.Builder
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			b.Write(seg.Value(source))
		}
		return cleanTitle(b.String()), lines.At(0).Start, lines.At(lines.Len() - 1).Stop, true
	case *ast.Paragraph:
		em, isEm := node.FirstChild().(*ast.Emphasis)
		if !isEm || em.Level != 2 {
			return "", 0, 0, false
		}
		first := lines.At(0)
		m := boldLine.FindStringSubmatch(strings.TrimSpace(string(first.Value(source))))
		if m == nil {
			return "", 0, 0, false
		}
		return cleanTitle(m[2]), first.Start, first.Stop, true
	default:
		return "", 0, 0, false
	}
}

func cleanTitle(s string) string {
	return strings.Trim(strings.TrimSpace(s), "*_: ")
}

func lineStart(source []byte, pos int) int {
	for pos > 0 && source[pos-1] != '\n' {
		pos--
	}
	return pos
}

// Score is one axis of the self-assessment at the end of a response.
type Score struct {
	Axis  string
	Value float64
	Max   float64
}

func (s Score) String() string {
	return s.Axis + " " + strconv.FormatFloat(s.Value, 'f', -1, 64) + "/" + strconv.FormatFloat(s.Max, 'f', -1, 64)
}

var scorePattern = func() *regexp.Regexp {
	axes := make([]string, len(prompts.ScoreAxes))
	for i, a := range prompts.ScoreAxes {
		axes[i] = regexp.QuoteMeta(a)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(axes, "|") + `)\b[*_:\s]*(\d+(?:\.\d+)?)(?:\s*/\s*(\d+))?`)
}()

// Scores finds the first score reported for each axis, in axis order.
// Axes the model did not score are left out.
func Scores(src string) []Score {
	found := make(map[string]Score)
	for _, m := range scorePattern.FindAllStringSubmatch(src, -1) {
		axis := canonicalAxis(m[1])
		if _, ok := found[axis]; ok {
			continue
		}
		v, err := strconv.ParseFloat(m[2], 64)
		if err != nil {
			continue
		}
		maxScore := 10.0
		if m[3] != "" {
			if mv, err := strconv.ParseFloat(m[3], 64); err == nil && mv > 0 {
				maxScore = mv
			}
		}
		found[axis] = Score{Axis: axis, Value: v, Max: maxScore}
	}

	var scores []Score
	for _, axis := range prompts.ScoreAxes {
		if s, ok := found[axis]; ok {
			scores = append(scores, s)
		}
	}
	return scores
}

func canonicalAxis(name string) string {
	for _, a := range prompts.ScoreAxes {
		if strings.EqualFold(a, name) {
			return a
		}
	}
	return name
}
