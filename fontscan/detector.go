// Package fontscan attributes font properties to every run of a
// document. Explicit run properties win; absent properties fall back
// to the paragraph's referenced style, then to document defaults.
// Font name selection always prefers the eastAsia slot, then hAnsi,
// then ascii, because the target documents are primarily
// Chinese-language.
package fontscan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/luwenhao/redocx/model"
	"github.com/luwenhao/redocx/ooxml"
	"github.com/luwenhao/redocx/styles"
)

// maxSamples and sampleLen bound the diagnostic text retained per font.
const (
	maxSamples = 3
	sampleLen  = 50
)

// Result is the deep-detection output: one FontInfo list per
// paragraph (index-aligned with the document's paragraphs), the
// paragraph-level alignments, and the aggregate usage statistics.
type Result struct {
	Paragraphs [][]model.FontInfo
	Alignments []string
	Usage      []model.FontUsage
	Defaults   model.DefaultFonts
	Styles     []model.FontInfo
}

// Detect walks every paragraph and run of doc, resolving each run's
// font properties against table.
func Detect(doc *ooxml.Document, table *styles.Table) (*Result, error) {
	if doc == nil || doc.Body == nil {
		return nil, fmt.Errorf("document has no body")
	}

	res := &Result{
		Paragraphs: make([][]model.FontInfo, 0, len(doc.Body.Paragraphs)),
		Alignments: make([]string, 0, len(doc.Body.Paragraphs)),
		Defaults:   defaultFonts(table),
	}
	usage := make(UsageMap)

	for i := range doc.Body.Paragraphs {
		p := &doc.Body.Paragraphs[i]
		style := table.Resolve(p.Properties.Style.Val)
		align := paragraphAlignment(p, style)

		var infos []model.FontInfo
		for _, run := range paragraphRuns(p) {
			if runText(&run) == "" && len(run.Drawings) == 0 {
				continue
			}
			info := resolveRun(&run, style, table, align)
			infos = append(infos, info)
			usage = usage.Add(info.Name, runText(&run))
		}

		res.Paragraphs = append(res.Paragraphs, infos)
		res.Alignments = append(res.Alignments, align)
		res.Styles = append(res.Styles, infos...)
	}

	res.Usage = usage.Sorted()
	return res, nil
}

// resolveRun attributes one run. Every property resolves
// independently: run-level wins, then paragraph style, then document
// defaults.
func resolveRun(run *ooxml.Run, style *styles.StyleDefinition, table *styles.Table, align string) model.FontInfo {
	def := table.Defaults()

	info := model.FontInfo{Alignment: align}

	switch {
	case !run.Properties.Fonts.Empty():
		info.Name = run.Properties.Fonts.Pick()
	case style != nil && !style.Fonts.Empty():
		info.Name = style.Fonts.Pick()
	default:
		info.Name = def.Fonts.Pick()
	}
	if info.Name == "" {
		info.Name = styles.FallbackFont
	}

	if size := styles.ParseHalfPoints(run.Properties.FontSize.Val); size > 0 {
		info.Size = size
	} else if style != nil && style.Size != nil {
		info.Size = *style.Size
	} else {
		info.Size = def.Size
	}

	if run.Properties.Bold.Present() {
		info.Bold = run.Properties.Bold.On()
	} else if style != nil && style.Bold != nil {
		info.Bold = *style.Bold
	}

	if run.Properties.Italic.Present() {
		info.Italic = run.Properties.Italic.On()
	} else if style != nil && style.Italic != nil {
		info.Italic = *style.Italic
	}

	if u := run.Properties.Underline.Val; u != "" {
		info.Underline = u != "none"
	} else if style != nil && style.Underline != nil {
		info.Underline = *style.Underline
	}

	if c := run.Properties.Color.Val; c != "" && c != "auto" {
		info.Color = c
	} else if style != nil {
		info.Color = style.Color
	}

	info.StyleKey = StyleKey(info)
	return info
}

// StyleKey derives the opaque correlation handle for a resolved style
// point. Two runs with identical resolved properties share a key.
func StyleKey(f model.FontInfo) string {
	return fmt.Sprintf("%s|%g|%t|%t|%t|%s|%s",
		f.Name, f.Size, f.Bold, f.Italic, f.Underline, f.Color, f.Alignment)
}

// paragraphAlignment prefers the paragraph's own w:jc, then the
// referenced style's alignment. Empty means left for display
// purposes, but the empty value is preserved here so classification
// can tell explicit centering from default layout.
func paragraphAlignment(p *ooxml.Paragraph, style *styles.StyleDefinition) string {
	if a := styles.NormalizeAlignment(p.Properties.Justification.Val); a != "" {
		return a
	}
	if style != nil {
		return style.Alignment
	}
	return ""
}

// paragraphRuns returns direct runs and hyperlink-nested runs in
// document order. Nested runs follow direct ones; hyperlink-heavy
// documents are rare in the target corpus.
func paragraphRuns(p *ooxml.Paragraph) []ooxml.Run {
	if len(p.Hyperlinks) == 0 {
		return p.Runs
	}
	runs := make([]ooxml.Run, 0, len(p.Runs)+len(p.Hyperlinks))
	runs = append(runs, p.Runs...)
	for _, h := range p.Hyperlinks {
		runs = append(runs, h.Runs...)
	}
	return runs
}

func runText(run *ooxml.Run) string {
	var sb strings.Builder
	for _, t := range run.Text {
		sb.WriteString(t.Value)
	}
	return sb.String()
}

// UsageMap accumulates per-font usage. Add returns the updated map so
// accumulation composes as a reduction and the merge step can be
// tested without re-walking the document.
type UsageMap map[string]*model.FontUsage

// Add increments the counter for font and retains up to maxSamples
// distinct truncated samples.
func (u UsageMap) Add(font, sample string) UsageMap {
	if font == "" {
		return u
	}
	entry, ok := u[font]
	if !ok {
		entry = &model.FontUsage{Name: font}
		u[font] = entry
	}
	entry.Count++

	sample = strings.TrimSpace(sample)
	if sample == "" || len(entry.Samples) >= maxSamples {
		return u
	}
	sample = truncate(sample, sampleLen)
	for _, existing := range entry.Samples {
		if existing == sample {
			return u
		}
	}
	entry.Samples = append(entry.Samples, sample)
	return u
}

// Merge combines two usage maps into a fresh one, summing counts and
// keeping the first maxSamples distinct samples.
func Merge(a, b UsageMap) UsageMap {
	out := make(UsageMap, len(a)+len(b))
	for _, src := range []UsageMap{a, b} {
		for name, entry := range src {
			dst, ok := out[name]
			if !ok {
				dst = &model.FontUsage{Name: name}
				out[name] = dst
			}
			dst.Count += entry.Count
			for _, s := range entry.Samples {
				if len(dst.Samples) >= maxSamples {
					break
				}
				if !contains(dst.Samples, s) {
					dst.Samples = append(dst.Samples, s)
				}
			}
		}
	}
	return out
}

// Sorted returns usage entries ordered by descending count, ties by
// name, for deterministic output.
func (u UsageMap) Sorted() []model.FontUsage {
	out := make([]model.FontUsage, 0, len(u))
	for _, entry := range u {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func defaultFonts(table *styles.Table) model.DefaultFonts {
	f := table.Defaults().Fonts
	return model.DefaultFonts{
		EastAsia: f.EastAsia,
		ASCII:    f.ASCII,
		HAnsi:    f.HAnsi,
		CS:       f.CS,
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
