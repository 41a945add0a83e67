// Package doccheck verifies the integrity of a directory of markdown pages:
// internal anchors resolve, relative images exist on disk, and external
// links are well-formed.
package doccheck

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Kind classifies a reported issue.
type Kind string

const (
	// KindBrokenAnchor marks a fragment link with no matching id in the page.
	KindBrokenAnchor Kind = "broken-anchor"
	// KindMissingImage marks a relative image reference with no file on disk.
	KindMissingImage Kind = "missing-image"
	// KindMissingPage marks a relative page link with no file on disk.
	KindMissingPage Kind = "missing-page"
	// KindMalformedLink marks an external link that does not parse as a URL.
	KindMalformedLink Kind = "malformed-link"
	// KindUnreachableLink marks an external link that failed an HTTP probe.
	KindUnreachableLink Kind = "unreachable-link"
)

// Issue is one integrity failure found in a page.
type Issue struct {
	Page   string
	Kind   Kind
	Target string
	Detail string
}

func (i Issue) String() string {
	if i.Detail == "" {
		return fmt.Sprintf("%s: %s: %s", i.Page, i.Kind, i.Target)
	}
	return fmt.Sprintf("%s: %s: %s (%s)", i.Page, i.Kind, i.Target, i.Detail)
}

// Doer performs HTTP requests for external link probing.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Checker walks a directory tree of markdown pages and reports integrity
// issues. A nil Client skips external link probing.
type Checker struct {
	// Root is the directory holding the markdown pages. Required.
	Root string
	// Client probes external links when set.
	Client Doer
}

// Check scans every markdown page under Root and returns the issues found,
// ordered by page then target.
func (c Checker) Check(ctx context.Context) ([]Issue, error) {
	if strings.TrimSpace(c.Root) == "" {
		return nil, fmt.Errorf("root directory is required")
	}

	var issues []Issue
	err := filepath.WalkDir(c.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".md") {
			return nil
		}
		pageIssues, err := c.checkPage(ctx, p)
		if err != nil {
			return fmt.Errorf("check %s: %w", p, err)
		}
		issues = append(issues, pageIssues...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(issues, func(a, b int) bool {
		if issues[a].Page != issues[b].Page {
			return issues[a].Page < issues[b].Page
		}
		return issues[a].Target < issues[b].Target
	})
	return issues, nil
}

func (c Checker) checkPage(ctx context.Context, path string) ([]Issue, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	page, err := parsePage(string(raw))
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(c.Root, path)
	if err != nil {
		rel = path
	}

	var issues []Issue
	for _, link := range page.links {
		issues = append(issues, c.checkLink(ctx, rel, path, page, link)...)
	}
	return issues, nil
}

func (c Checker) checkLink(ctx context.Context, rel, pagePath string, page *page, link reference) []Issue {
	target := strings.TrimSpace(link.target)
	if target == "" {
		return nil
	}

	switch {
	case strings.HasPrefix(target, "#"):
		fragment := strings.TrimPrefix(target, "#")
		if !page.hasAnchor(fragment) {
			return []Issue{{Page: rel, Kind: KindBrokenAnchor, Target: target}}
		}
		return nil

	case isExternal(target):
		return c.checkExternal(ctx, rel, target)

	case link.image:
		if !relativeExists(pagePath, target) {
			return []Issue{{Page: rel, Kind: KindMissingImage, Target: target}}
		}
		return nil

	default:
		if !relativeExists(pagePath, target) {
			return []Issue{{Page: rel, Kind: KindMissingPage, Target: target}}
		}
		return nil
	}
}

func (c Checker) checkExternal(ctx context.Context, rel, target string) []Issue {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return []Issue{{Page: rel, Kind: KindMalformedLink, Target: target}}
	}
	if c.Client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return []Issue{{Page: rel, Kind: KindMalformedLink, Target: target, Detail: err.Error()}}
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return []Issue{{Page: rel, Kind: KindUnreachableLink, Target: target, Detail: err.Error()}}
	}
	defer resp.Body.Close()
	// Some hosts reject HEAD outright; only status >= 400 other than 405
	// counts as broken.
	if resp.StatusCode >= http.StatusBadRequest && resp.StatusCode != http.StatusMethodNotAllowed {
		return []Issue{{
			Page:   rel,
			Kind:   KindUnreachableLink,
			Target: target,
			Detail: fmt.Sprintf("status %d", resp.StatusCode),
		}}
	}
	return nil
}

func isExternal(target string) bool {
	lower := strings.ToLower(target)
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "mailto:")
}

func relativeExists(pagePath, target string) bool {
	clean := target
	if i := strings.IndexAny(clean, "#?"); i >= 0 {
		clean = clean[:i]
	}
	if clean == "" {
		return true
	}
	decoded, err := url.PathUnescape(clean)
	if err == nil {
		clean = decoded
	}
	full := filepath.Join(filepath.Dir(pagePath), filepath.FromSlash(path.Clean(clean)))
	_, statErr := os.Stat(full)
	return statErr == nil
}

// reference is one outgoing link or image found in a page.
type reference struct {
	target string
	image  bool
}

type page struct {
	anchors map[string]struct{}
	links   []reference
}

func (p *page) hasAnchor(fragment string) bool {
	if p == nil {
		return false
	}
	_, ok := p.anchors[fragment]
	return ok
}

// parsePage collects heading anchors, embedded HTML ids, and outgoing
// references from a markdown page. Fenced code blocks are skipped.
func parsePage(content string) (*page, error) {
	p := &page{anchors: make(map[string]struct{})}

	slugs := make(map[string]int)
	inFence := false
	var prose strings.Builder
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if heading, ok := strings.CutPrefix(trimmed, "#"); ok {
			heading = strings.TrimLeft(heading, "#")
			slug := headingSlug(strings.TrimSpace(heading))
			if slug != "" {
				if n := slugs[slug]; n > 0 {
					p.anchors[fmt.Sprintf("%s-%d", slug, n)] = struct{}{}
				} else {
					p.anchors[slug] = struct{}{}
				}
				slugs[slug]++
			}
		}
		scanMarkdownRefs(line, p)
		prose.WriteString(line)
		prose.WriteString("\n")
	}

	// Embedded HTML carries its own ids and references (badges, named
	// anchors). html.Parse tolerates the surrounding markdown text.
	doc, err := html.Parse(strings.NewReader(prose.String()))
	if err != nil {
		return nil, fmt.Errorf("parse embedded html: %w", err)
	}
	collectHTML(doc, p)

	return p, nil
}

// scanMarkdownRefs extracts inline links and images from one line of
// markdown.
func scanMarkdownRefs(line string, p *page) {
	for i := 0; i < len(line); i++ {
		image := false
		start := i
		if line[i] == '!' && i+1 < len(line) && line[i+1] == '[' {
			image = true
			start = i + 1
		} else if line[i] != '[' {
			continue
		}
		closing := strings.IndexByte(line[start:], ']')
		if closing < 0 {
			return
		}
		rest := line[start+closing+1:]
		if !strings.HasPrefix(rest, "(") {
			continue
		}
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			continue
		}
		target := rest[1:end]
		// Inline titles follow the destination after a space.
		if sp := strings.IndexAny(target, " \t"); sp >= 0 {
			target = target[:sp]
		}
		target = strings.Trim(target, "<>")
		if target != "" {
			p.links = append(p.links, reference{target: target, image: image})
		}
		i = start + closing + end
	}
}

func collectHTML(n *html.Node, p *page) {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			switch {
			case attr.Key == "id" && attr.Val != "":
				p.anchors[attr.Val] = struct{}{}
			case attr.Key == "name" && n.Data == "a" && attr.Val != "":
				p.anchors[attr.Val] = struct{}{}
			case attr.Key == "href" && n.Data == "a" && attr.Val != "":
				p.links = append(p.links, reference{target: attr.Val})
			case attr.Key == "src" && n.Data == "img" && attr.Val != "":
				p.links = append(p.links, reference{target: attr.Val, image: true})
			}
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectHTML(child, p)
	}
}

// headingSlug derives the anchor id a markdown renderer assigns to a
// heading: lowercase, punctuation stripped, spaces become hyphens.
func headingSlug(heading string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(heading) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	return b.String()
}
