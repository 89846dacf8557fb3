package internal

import (
	"errors"
	"io"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrNoLogTable is returned when a page has no irclog table
var ErrNoLogTable = errors.New(`no <table class="irclog"> in page`)

// archive row ids look like "t2024-01-15T14:30:25", sometimes with a suffix
const rowTimestampLayout = "2006-01-02T15:04:05"

// ParseLog parses an archived log page into messages in page order.
// Rows without an id, nick cell or text cell are skipped.
func ParseLog(r io.Reader) ([]Message, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	table := findNode(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Table && hasClass(n, "irclog")
	})
	if table == nil {
		return nil, ErrNoLogTable
	}

	messages := []Message{}
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == atom.Tr {
				if msg, ok := parseRow(c); ok {
					messages = append(messages, msg)
				}
				continue
			}
			walk(c)
		}
	}
	walk(table)

	return messages, nil
}

func parseRow(tr *html.Node) (Message, bool) {
	id := attr(tr, "id")
	if id == "" {
		return Message{}, false
	}
	stamp := strings.TrimPrefix(id, "t")
	if len(stamp) > len(rowTimestampLayout) {
		stamp = stamp[:len(rowTimestampLayout)]
	}
	ts, err := time.Parse(rowTimestampLayout, stamp)
	if err != nil {
		LogDebug("Skipping row with unparseable id %q: %v", id, err)
		return Message{}, false
	}

	nickCell := findNode(tr, func(n *html.Node) bool {
		return n.Type == html.ElementNode && (n.DataAtom == atom.Th || n.DataAtom == atom.Td) && hasClass(n, "nick")
	})
	if nickCell == nil {
		return Message{}, false
	}
	textCell := findNode(tr, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.Td && hasClass(n, "text")
	})
	if textCell == nil {
		return Message{}, false
	}

	return Message{
		Timestamp: ts.UTC(),
		Nickname:  strings.TrimSpace(textContent(nickCell)),
		Text:      strings.TrimSpace(textContent(textCell)),
	}, true
}

func findNode(n *html.Node, match func(*html.Node) bool) *html.Node {
	if match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}
