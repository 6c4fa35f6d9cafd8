package email

import (
	"bytes"
	"encoding/base64"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobscout/internal/source"
)

// htmlPart digs the text/html body out of a raw RFC822 message. Returns ""
// when there is none; callers treat that as "not a job alert".
func htmlPart(raw []byte) string {
	msg, err := mail.ReadMessage(bytes.NewReader(raw))
	if err != nil {
		return ""
	}
	body, _ := io.ReadAll(io.LimitReader(msg.Body, 8<<20))
	return findHTML(msg.Header.Get("Content-Type"), msg.Header.Get("Content-Transfer-Encoding"), body)
}

func findHTML(contentType, cte string, body []byte) string {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	mediaType = strings.ToLower(mediaType)

	switch {
	case strings.HasPrefix(mediaType, "multipart/"):
		boundary := params["boundary"]
		if boundary == "" {
			return ""
		}
		mr := multipart.NewReader(bytes.NewReader(body), boundary)
		for {
			p, err := mr.NextPart()
			if err != nil {
				return ""
			}
			pb, _ := io.ReadAll(io.LimitReader(p, 8<<20))
			if h := findHTML(p.Header.Get("Content-Type"), p.Header.Get("Content-Transfer-Encoding"), pb); h != "" {
				return h
			}
		}
	case mediaType == "text/html":
		return string(decodeTransfer(body, cte))
	}
	return ""
}

func decodeTransfer(b []byte, cte string) []byte {
	switch strings.ToLower(strings.TrimSpace(cte)) {
	case "quoted-printable":
		if d, err := io.ReadAll(quotedprintable.NewReader(bytes.NewReader(b))); err == nil {
			return d
		}
	case "base64":
		if d, err := io.ReadAll(base64.NewDecoder(base64.StdEncoding, bytes.NewReader(b))); err == nil {
			return d
		}
	}
	return b
}

// parseJobAlert extracts postings from a LinkedIn job-alert HTML body. Each
// posting is an anchor to /jobs/view/<id>, with "Company · Location" text
// somewhere in the same table cell. Best-effort: anything that doesn't fit
// the shape is skipped, never an error.
func parseJobAlert(htmlBody string) []source.RawPosting {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlBody))
	if err != nil {
		return nil
	}

	seen := map[string]bool{}
	var out []source.RawPosting

	doc.Find(`a[href*="/jobs/view/"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		u := canonicalJobURL(href)
		if u == "" || seen[u] {
			return
		}

		title := collapse(a.Text())
		if title == "" {
			return
		}

		company, location := companyAndLocation(a)

		seen[u] = true
		out = append(out, source.RawPosting{
			URL:      u,
			Title:    title,
			Company:  company,
			Location: location,
		})
	})

	return out
}

// canonicalJobURL normalizes alert links (often /comm/jobs/view/<id> with
// tracking params) down to the plain posting URL, so email and web sources
// agree on identity.
func canonicalJobURL(href string) string {
	href = strings.TrimSpace(href)
	i := strings.Index(href, "/jobs/view/")
	if i < 0 {
		return ""
	}
	id := href[i+len("/jobs/view/"):]
	for j, r := range id {
		if r < '0' || r > '9' {
			id = id[:j]
			break
		}
	}
	if id == "" {
		return ""
	}
	return "https://www.linkedin.com/jobs/view/" + id
}

// companyAndLocation looks for the "Company · Location" line in the anchor's
// enclosing table cell.
func companyAndLocation(a *goquery.Selection) (company, location string) {
	cell := a.Closest("td")
	if cell.Length() == 0 {
		return "", ""
	}
	for _, line := range strings.Split(cell.Text(), "\n") {
		if !strings.Contains(line, "·") {
			continue
		}
		parts := strings.SplitN(line, "·", 2)
		company = collapse(parts[0])
		location = collapse(parts[1])
		if company != "" {
			return company, location
		}
	}
	return "", ""
}

func collapse(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}
