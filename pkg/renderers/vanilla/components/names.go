package components

// Component names registered by NewDefaultRegistry. Field kinds map onto the
// component of the same name; text fields with a textarea input type use
// NameTextarea.
const (
	NameText     = "text"
	NameTextarea = "textarea"
	NameCheckbox = "checkbox"
	NameRadio    = "radio"
	NameSelect   = "select"
	NameDateTime = "datetime"
	NameToggle   = "toggle"
)

// Stylesheets shipped in the vanilla asset bundle.
const (
	BaseStylesheet   = "formfields.css"
	ToggleStylesheet = "formfields-toggle.css"
)
