package docs

import (
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// The readme lists every topic as "* <topic>: <hook>". This test keeps
// the list and the embedded files in sync both ways.
func TestTopics(t *testing.T) {
	readme, err := GetTopic("readme")
	if err != nil {
		t.Fatalf("failed to load readme: %v", err)
	}

	// Walk the readme's markdown AST and collect the list item topics.
	source := []byte(readme)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))
	var topicsInReadme []string
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		item, ok := n.(*ast.ListItem)
		if !ok {
			return ast.WalkContinue, nil
		}
		var b strings.Builder
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			if txt, ok := c.(*ast.TextBlock); ok {
				for l := 0; l < txt.Lines().Len(); l++ {
					seg := txt.Lines().At(l)
					b.Write(seg.Value(source))
				}
			}
		}
		if topic, _, found := strings.Cut(b.String(), ":"); found {
			topicsInReadme = append(topicsInReadme, strings.TrimSpace(topic))
		}
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		t.Fatalf("failed to walk readme: %v", err)
	}
	if len(topicsInReadme) == 0 {
		t.Fatal("no topics listed in readme.md")
	}

	// Every listed topic loads.
	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("topic %q listed in readme but not loadable: %v", topic, err)
			}
		})
	}

	// Every embedded topic is listed.
	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() error = %v", err)
	}
	for _, topic := range all {
		if !slices.Contains(topicsInReadme, topic) {
			t.Errorf("topic %q embedded but missing from readme.md", topic)
		}
	}
}

func TestGetTopics_star(t *testing.T) {
	all, err := GetTopics("*")
	if err != nil {
		t.Fatalf("GetTopics(*) error = %v", err)
	}
	for _, want := range []string{"# Exchange rates", "# Classification", "# Reports"} {
		if !strings.Contains(all, want) {
			t.Errorf("GetTopics(*) missing %q", want)
		}
	}
}

func TestGetTopic_unknown(t *testing.T) {
	if _, err := GetTopic("nope"); err == nil {
		t.Error("GetTopic(nope): want error, got none")
	}
}
