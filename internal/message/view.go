package message

import "strings"

// View is a normalized, read-only projection of a parsed email message.
// It is constructed once per input file and never mutated afterwards.
type View struct {
	headers    map[string]string
	rawHeaders string
	multipart  bool
	body       string

	fromName    string
	fromAddr    string
	replyToName string
	replyToAddr string
}

// Empty returns a view with no headers and no body. It stands in for
// messages that could not be parsed so that classification can still run.
func Empty() *View {
	return &View{headers: map[string]string{}}
}

// Header returns the decoded value of the named header, or the empty
// string if the header is absent. Lookup is case-insensitive.
func (v *View) Header(name string) string {
	return v.headers[strings.ToLower(name)]
}

// RawHeaders returns the undecoded header section of the message.
func (v *View) RawHeaders() string { return v.rawHeaders }

// Multipart reports whether the message has a multipart structure.
func (v *View) Multipart() bool { return v.multipart }

// Body returns the decoded plain-text body, or the empty string if the
// body could not be decoded.
func (v *View) Body() string { return v.body }

func (v *View) Subject() string       { return v.Header("Subject") }
func (v *View) Date() string          { return v.Header("Date") }
func (v *View) To() string            { return v.Header("To") }
func (v *View) AutoSubmitted() string { return v.Header("Auto-Submitted") }

// From returns the display name and address parsed from the From header.
func (v *View) From() (name, addr string) { return v.fromName, v.fromAddr }

// ReplyTo returns the display name and address parsed from the Reply-To header.
func (v *View) ReplyTo() (name, addr string) { return v.replyToName, v.replyToAddr }
