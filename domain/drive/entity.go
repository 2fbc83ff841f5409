package drive

// File is a single entry in a Drive folder, as returned by the provider's
// files.list and files.get endpoints. Entries are transient: built from one
// provider response, used within one request, then discarded.
type File struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	MimeType        string           `json:"mimeType"`
	WebViewLink     string           `json:"webViewLink,omitempty"`
	WebContentLink  string           `json:"webContentLink,omitempty"`
	ShortcutDetails *ShortcutDetails `json:"shortcutDetails,omitempty"`
}

// ShortcutDetails identifies the target of a shortcut entry. An entry either
// carries no shortcut reference (it is content itself) or exactly one (it is
// an alias and must never be served directly).
type ShortcutDetails struct {
	TargetID string `json:"targetId"`
}

// IsShortcut reports whether the entry is an alias rather than content.
func (f *File) IsShortcut() bool {
	return f.ShortcutDetails != nil && f.ShortcutDetails.TargetID != ""
}

// FileList is the provider's files.list response shape. Order follows the
// provider response and is not guaranteed stable across calls.
type FileList struct {
	Files []File `json:"files"`
}
