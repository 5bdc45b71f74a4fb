/* fragment.go
 * Contains the fragment value types that cards are built from. A fragment is one atomic piece of chat UI (header,
 * text section, context line, divider); a Sequence is an ordered run of them that platform sinks translate into
 * their own message format
 * Authors: Zachary Bower
 */

package cards

import "context"

// FragmentType names the kind of UI element a Fragment renders as
type FragmentType string

const (
	HeaderFragment    FragmentType = "header"
	SectionFragment   FragmentType = "section"
	ContextFragment   FragmentType = "context"
	PlainTextFragment FragmentType = "plain_text"
	DividerFragment   FragmentType = "divider"
)

// Fragment is one atomic unit of chat UI. Section text uses *bold* and _italic_ markup
type Fragment struct {
	Type     FragmentType `json:"type"`
	Text     string       `json:"text,omitempty"`
	ImageURL string       `json:"image_url,omitempty"`
	AltText  string       `json:"alt_text,omitempty"`
}

// Sequence is an ordered list of fragments
type Sequence []Fragment

// Unit is one outbound message: everything a sink needs to deliver it in a single call
type Unit struct {
	Destination string
	Fallback    string
	Fragments   Sequence
}

// Sink delivers outbound units to a chat platform
type Sink interface {
	Send(ctx context.Context, unit Unit) error
}

// Header returns the opening fragments of a card: a header followed by a divider
func Header(title string) Sequence {
	return Sequence{
		{Type: HeaderFragment, Text: title},
		{Type: DividerFragment},
	}
}

// Notice returns a single plain text section, used for error messages and empty results
func Notice(text string) Sequence {
	return Sequence{{Type: PlainTextFragment, Text: text}}
}

// Context returns a single context line
func Context(text string) Sequence {
	return Sequence{{Type: ContextFragment, Text: text}}
}

func section(text string) Fragment {
	return Fragment{Type: SectionFragment, Text: text}
}

func sectionWithLogo(text string, logoURL string) Fragment {
	f := section(text)
	if logoURL != "" {
		f.ImageURL = logoURL
		f.AltText = "Team Logo"
	}
	return f
}

func divider() Fragment {
	return Fragment{Type: DividerFragment}
}
