package rebuild

import "github.com/luwenhao/redocx/model"

// Default role styles. An override with unset fields inherits these,
// not the source document's values: overrides are whole-style
// replacements per role. The defaults follow common Chinese manuscript
// conventions (heiti title, kaiti author line, songti body).
var (
	defaultTitleStyle = model.FontInfo{
		Name:      "黑体",
		Size:      16,
		Bold:      true,
		Alignment: model.AlignCenter,
	}
	defaultAuthorStyle = model.FontInfo{
		Name:      "楷体",
		Size:      12,
		Alignment: model.AlignCenter,
	}
	defaultBodyStyle = model.FontInfo{
		Name:      "宋体",
		Size:      12,
		Alignment: model.AlignLeft,
	}
)

// effectiveStyle overlays the set fields of opts onto the role
// default.
func effectiveStyle(base model.FontInfo, opts *model.RoleOptions) model.FontInfo {
	if opts == nil {
		return base
	}
	out := base
	if opts.FontName != nil {
		out.Name = *opts.FontName
	}
	if opts.Size != nil {
		out.Size = *opts.Size
	}
	if opts.Bold != nil {
		out.Bold = *opts.Bold
	}
	if opts.Italic != nil {
		out.Italic = *opts.Italic
	}
	if opts.Underline != nil {
		out.Underline = *opts.Underline
	}
	if opts.Color != nil {
		out.Color = *opts.Color
	}
	if opts.Alignment != nil {
		out.Alignment = *opts.Alignment
	}
	return out
}

// applyRule overlays one per-style rule onto an already effective
// style.
func applyRule(base model.FontInfo, rule *model.StyleRule) model.FontInfo {
	out := base
	if rule.FontName != nil {
		out.Name = *rule.FontName
	}
	if rule.Size != nil {
		out.Size = *rule.Size
	}
	if rule.Bold != nil {
		out.Bold = *rule.Bold
	}
	if rule.Italic != nil {
		out.Italic = *rule.Italic
	}
	if rule.Underline != nil {
		out.Underline = *rule.Underline
	}
	if rule.Color != nil {
		out.Color = *rule.Color
	}
	return out
}

// findRule returns the rule matching a run's originalStyleKey, if any.
func findRule(opts *model.RoleOptions, styleKey string) *model.StyleRule {
	if opts == nil || styleKey == "" {
		return nil
	}
	for i := range opts.Rules {
		if opts.Rules[i].Key == styleKey {
			return &opts.Rules[i]
		}
	}
	return nil
}

// decorate applies prefix/suffix composition. Only title and author
// roles carry prefix/suffix.
func decorate(text string, opts *model.RoleOptions) string {
	if opts == nil {
		return text
	}
	return opts.Prefix + text + opts.Suffix
}
