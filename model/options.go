package model

// RoleOptions is a whole-style override request for one document role.
// Nil fields fall back to the builder's default style for that role,
// not to the source document's values. Prefix and Suffix are honored
// for title and author only and always compose with the original text.
type RoleOptions struct {
	FontName  *string  `json:"fontName,omitempty" yaml:"fontName,omitempty"`
	Size      *float64 `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	Bold      *bool    `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic    *bool    `json:"italic,omitempty" yaml:"italic,omitempty"`
	Underline *bool    `json:"underline,omitempty" yaml:"underline,omitempty"`
	Color     *string  `json:"color,omitempty" yaml:"color,omitempty"`
	Alignment *string  `json:"alignment,omitempty" yaml:"alignment,omitempty"`
	Prefix    string   `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Suffix    string   `json:"suffix,omitempty" yaml:"suffix,omitempty"`

	// Rules target individual source styles by their originalStyleKey
	// for fine-grained control over multi-style documents.
	Rules []StyleRule `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// StyleRule overrides formatting for runs whose originalStyleKey
// matches Key. Nil fields inherit from the enclosing role override.
type StyleRule struct {
	Key       string   `json:"key" yaml:"key"`
	FontName  *string  `json:"fontName,omitempty" yaml:"fontName,omitempty"`
	Size      *float64 `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	Bold      *bool    `json:"bold,omitempty" yaml:"bold,omitempty"`
	Italic    *bool    `json:"italic,omitempty" yaml:"italic,omitempty"`
	Underline *bool    `json:"underline,omitempty" yaml:"underline,omitempty"`
	Color     *string  `json:"color,omitempty" yaml:"color,omitempty"`
}

// ModifyOptions holds the per-role overrides for one modification
// call. Nil roles keep the builder defaults for that role.
type ModifyOptions struct {
	Title  *RoleOptions `json:"titleOptions,omitempty" yaml:"title,omitempty"`
	Author *RoleOptions `json:"authorOptions,omitempty" yaml:"author,omitempty"`
	Body   *RoleOptions `json:"bodyOptions,omitempty" yaml:"body,omitempty"`
}

// String returns a pointer to s, for building RoleOptions literals.
func String(s string) *string { return &s }

// Float returns a pointer to f, for building RoleOptions literals.
func Float(f float64) *float64 { return &f }

// Bool returns a pointer to b, for building RoleOptions literals.
func Bool(b bool) *bool { return &b }
