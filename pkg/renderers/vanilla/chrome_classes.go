package vanilla

// ChromeClass is a semantic CSS class emitted around field controls.
type ChromeClass string

const (
	ClassGroup    ChromeClass = "formfields-group"
	ClassLabel    ChromeClass = "formfields-label"
	ClassRequired ChromeClass = "formfields-required"
	ClassFeedback ChromeClass = "formfields-feedback"
	ClassHelp     ChromeClass = "formfields-help"
)
