// Package session holds the client-side state of one watermarking session:
// the selected local file, the pipeline filename chain produced by the
// upload, watermark, and edit stages, and the detection statistics. The
// state is an explicit, serializable struct so the chain invariants are
// checkable without any UI, and it persists between command invocations in a
// small JSON state file — one state file is one session.
package session

// LocalFile is a reference to the user-chosen local file. It is owned
// exclusively by the session and never shared.
type LocalFile struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Path string `json:"path"`
}

// Stats are the detection statistics shown to the user. Tests and Found only
// ever increase within a session; LastScore is overwritten on every check.
type Stats struct {
	Tests     int    `json:"tests"`
	Found     int    `json:"found"`
	LastScore string `json:"last_score"`
}

// Session is the whole client-side state. The filename chain fields each
// name a file known to exist on the backend after the corresponding stage
// succeeded: Watermarked is only meaningful while Uploaded is set, and
// Edited only while Watermarked or Uploaded is set.
type Session struct {
	Local *LocalFile `json:"local,omitempty"`

	Uploaded    string `json:"uploaded,omitempty"`
	Watermarked string `json:"watermarked,omitempty"`
	Edited      string `json:"edited,omitempty"`

	// Displayed is the server-side filename currently shown to the user,
	// empty while the local preview is displayed instead.
	Displayed string `json:"displayed,omitempty"`

	Stats Stats `json:"stats"`
}

// New returns an empty session.
func New() *Session {
	return &Session{}
}

// SetLocal makes a new local file the active selection. Accepting a new file
// invalidates the entire downstream pipeline chain and switches the display
// back to the local preview. No network call is involved. The statistics
// survive; only an explicit Clear resets them.
func (s *Session) SetLocal(f LocalFile) {
	s.Local = &f
	s.Uploaded = ""
	s.Watermarked = ""
	s.Edited = ""
	s.Displayed = ""
}

// Latest returns the most recently produced pipeline filename, in
// edited > watermarked > uploaded precedence, or empty when no stage has
// completed.
func (s *Session) Latest() string {
	switch {
	case s.Edited != "":
		return s.Edited
	case s.Watermarked != "":
		return s.Watermarked
	default:
		return s.Uploaded
	}
}

// HasLocal reports whether a local file is selected.
func (s *Session) HasLocal() bool {
	return s.Local != nil && s.Local.Path != ""
}

// Clear discards everything, returning the session to its initial state.
func (s *Session) Clear() {
	*s = Session{}
}
