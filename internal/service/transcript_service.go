package service

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	readability "codeberg.org/readeck/go-readability/v2"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"recap/backend/internal/logger"
	"recap/backend/internal/network"
	"recap/backend/internal/service/ai"
)

const fetchTimeout = 30 * time.Second

// ExtractedTranscript is readable page text ready to use as a transcript.
type ExtractedTranscript struct {
	Title      string
	Transcript string
}

// TranscriptService imports a transcript from a web page URL.
type TranscriptService interface {
	Extract(ctx context.Context, rawURL string) (ExtractedTranscript, error)
}

type transcriptService struct {
	clients   *network.ClientFactory
	sanitizer *bluemonday.Policy
}

// NewTranscriptService creates a new transcript service.
func NewTranscriptService(clients *network.ClientFactory) TranscriptService {
	// Strip scripts and other elements that interfere with readability
	// parsing before handing the page over.
	p := bluemonday.UGCPolicy()
	p.AllowElements("article", "section", "header", "footer", "nav", "aside", "main", "figure", "figcaption")
	p.AllowAttrs("id", "class", "lang", "dir").Globally()

	return &transcriptService{
		clients:   clients,
		sanitizer: p,
	}
}

func (s *transcriptService) Extract(ctx context.Context, rawURL string) (ExtractedTranscript, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil || (parsedURL.Scheme != "http" && parsedURL.Scheme != "https") || parsedURL.Host == "" {
		return ExtractedTranscript{}, fmt.Errorf("a valid http(s) url is required: %w", ErrInvalid)
	}

	body, err := s.clients.Fetch(ctx, rawURL, fetchTimeout)
	if err != nil {
		logger.Warn("transcript fetch failed", "module", "service", "action", "fetch", "resource", "transcript", "result", "failed", "url", rawURL, "error", err)
		return ExtractedTranscript{}, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	sanitized := s.sanitizer.Sanitize(string(body))

	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(sanitized), parsedURL)
	if err != nil {
		return ExtractedTranscript{}, fmt.Errorf("%w: parse content: %w", ErrFetch, err)
	}

	var buf bytes.Buffer
	if err := article.RenderHTML(&buf); err != nil {
		return ExtractedTranscript{}, fmt.Errorf("%w: render: %w", ErrFetch, err)
	}

	text := ai.HTMLToText(buf.String())
	if text == "" {
		return ExtractedTranscript{}, fmt.Errorf("%w: no readable content", ErrFetch)
	}

	logger.Info("transcript extracted", "module", "service", "action", "fetch", "resource", "transcript", "result", "ok", "url", rawURL, "chars", len(text))
	return ExtractedTranscript{
		Title:      pageTitle(string(body)),
		Transcript: text,
	}, nil
}

// pageTitle pulls the <title> element out of the raw page, if any.
func pageTitle(content string) string {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return ""
	}

	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
			title = strings.TrimSpace(n.FirstChild.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title
}
