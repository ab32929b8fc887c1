package article

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// HTTP fetches pages over plain HTTP and extracts readable text from the
// HTML, preferring article/main containers over the whole body.
type HTTP struct {
	client *http.Client
}

// NewHTTP creates a fetcher with the given request timeout.
func NewHTTP(timeout time.Duration) *HTTP {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTP{client: &http.Client{Timeout: timeout}}
}

// FetchBody downloads url and returns its extracted article text.
func (f *HTTP) FetchBody(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("article: build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("article: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("article: fetch %s: status %d", url, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return "", fmt.Errorf("article: parse html: %w", err)
	}

	root := findContainer(doc)
	if root == nil {
		root = doc
	}
	text := extractText(root)
	if text == "" {
		return "", fmt.Errorf("article: no text extracted from %s", url)
	}
	return text, nil
}

// findContainer returns the first article, main, or body element.
func findContainer(doc *html.Node) *html.Node {
	var body *html.Node
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "article", "main":
				found = n
				return
			case "body":
				if body == nil {
					body = n
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if found != nil {
		return found
	}
	return body
}

// extractText collects text content below n, emitting one line per block
// element and skipping script, style, and navigation chrome.
func extractText(n *html.Node) string {
	var lines []string
	var cur strings.Builder

	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			lines = append(lines, s)
		}
		cur.Reset()
	}

	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode {
			switch node.Data {
			case "script", "style", "nav", "aside", "header", "footer", "noscript":
				return
			case "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "br", "div", "blockquote", "pre":
				flush()
			}
		}
		if node.Type == html.TextNode {
			text := strings.Join(strings.Fields(node.Data), " ")
			if text != "" {
				if cur.Len() > 0 {
					cur.WriteByte(' ')
				}
				cur.WriteString(text)
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	flush()

	return strings.Join(lines, "\n")
}
