package message

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"os"
	"strings"

	"github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"golang.org/x/text/encoding/charmap"
)

func init() {
	// Register additional charsets that are commonly used in emails
	charset.RegisterEncoding("windows-1252", charmap.Windows1252)
	charset.RegisterEncoding("iso-8859-1", charmap.ISO8859_1)
	charset.RegisterEncoding("iso-8859-15", charmap.ISO8859_15)
}

// ParseFile parses an .eml file into a View.
func ParseFile(filePath string) (*View, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse parses an email from a reader into a View. Undecodable parts
// degrade to an empty body rather than failing the whole message.
func Parse(r io.Reader) (*View, error) {
	// Read the entire message first to capture raw headers
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, r); err != nil {
		return nil, fmt.Errorf("failed to read email: %w", err)
	}

	mr, err := mail.CreateReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("failed to create mail reader: %w", err)
	}

	v := &View{
		headers:    make(map[string]string),
		rawHeaders: extractRawHeaders(buf.String()),
	}

	header := mr.Header

	// Capture every header, decoded. First occurrence wins, matching the
	// single-value lookup the classifier expects.
	fields := header.Fields()
	for fields.Next() {
		key := strings.ToLower(fields.Key())
		if _, ok := v.headers[key]; ok {
			continue
		}
		v.headers[key] = decodeMIMEWord(fields.Value())
	}

	if contentType, _, err := header.ContentType(); err == nil {
		v.multipart = strings.HasPrefix(contentType, "multipart/")
	}

	if fromAddrs, err := header.AddressList("From"); err == nil && len(fromAddrs) > 0 {
		v.fromName = fromAddrs[0].Name
		v.fromAddr = fromAddrs[0].Address
	}
	if replyAddrs, err := header.AddressList("Reply-To"); err == nil && len(replyAddrs) > 0 {
		v.replyToName = replyAddrs[0].Name
		v.replyToAddr = replyAddrs[0].Address
	}

	// Pick the body: first text/plain part for multipart messages, first
	// inline part otherwise. Read failures leave the body empty.
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Undecodable part (unknown charset, truncated content).
			// Keep whatever we already have.
			break
		}

		h, ok := part.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}
		if v.body != "" {
			continue
		}
		contentType, _, _ := h.ContentType()
		if v.multipart && !strings.HasPrefix(contentType, "text/plain") {
			continue
		}
		body, err := io.ReadAll(part.Body)
		if err != nil {
			continue
		}
		v.body = string(body)
	}

	return v, nil
}

// extractRawHeaders extracts the raw header section from the email
func extractRawHeaders(emailContent string) string {
	// Headers end at the first blank line
	parts := strings.SplitN(emailContent, "\r\n\r\n", 2)
	if len(parts) < 2 {
		parts = strings.SplitN(emailContent, "\n\n", 2)
	}
	if len(parts) > 0 {
		return parts[0]
	}
	return ""
}

// decodeMIMEWord decodes MIME-encoded words (RFC 2047)
func decodeMIMEWord(s string) string {
	dec := new(mime.WordDecoder)
	decoded, err := dec.DecodeHeader(s)
	if err != nil {
		// If decoding fails, return original string
		return s
	}
	return decoded
}
