// Package analyze orchestrates full-document analysis: structural
// text extraction, deep font detection behind its own failure
// boundary, image location, title/author classification, and assembly
// of the aggregate result.
package analyze

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/luwenhao/redocx/fontscan"
	"github.com/luwenhao/redocx/media"
	"github.com/luwenhao/redocx/model"
	"github.com/luwenhao/redocx/ooxml"
	"github.com/luwenhao/redocx/styles"
)

// ErrMissingDocument is returned when the package has no
// word/document.xml. There is no body to analyze, so no degraded
// result is possible.
var ErrMissingDocument = errors.New("package has no word/document.xml")

// Run analyzes one document buffer. Deep font detection is
// best-effort when deep is true: its failure degrades the result to
// structural fallback attribution and surfaces as a warning instead
// of an error.
func Run(data []byte, deep bool) (*model.AnalysisResult, []model.Warning, error) {
	var warnings []model.Warning

	pkg, err := ooxml.OpenBytes(data)
	if err != nil {
		return nil, nil, fmt.Errorf("opening package: %w", err)
	}

	doc, err := pkg.Document()
	if err != nil {
		if errors.Is(err, ooxml.ErrPartNotFound) {
			return nil, nil, ErrMissingDocument
		}
		return nil, nil, fmt.Errorf("parsing document: %w", err)
	}

	stylesSrc, err := pkg.Styles()
	if err != nil {
		if !errors.Is(err, ooxml.ErrPartNotFound) {
			return nil, nil, fmt.Errorf("parsing styles: %w", err)
		}
		warnings = append(warnings, model.Warning{
			Code:    model.WarnMissingStyles,
			Message: "styles.xml missing, using fallback defaults",
			Context: ooxml.PartStyles,
		})
		stylesSrc = nil
	}
	table := styles.NewTable(stylesSrc)

	// Deep detection and image location have no data dependency on
	// each other; run them concurrently and merge afterwards.
	var (
		wg      sync.WaitGroup
		deepRes *fontscan.Result
		deepErr error
		imgRes  *media.Result
		imgErr  error
	)
	if deep {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					deepErr = fmt.Errorf("deep detection panicked: %v", r)
				}
			}()
			deepRes, deepErr = fontscan.Detect(doc, table)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		imgRes, imgErr = media.Locate(pkg, doc)
	}()
	wg.Wait()

	if deep && deepErr != nil {
		deepRes = nil
		warnings = append(warnings, model.Warning{
			Code:    model.WarnDeepDetection,
			Message: deepErr.Error(),
			Context: ooxml.PartDocument,
		})
	}
	for _, id := range table.Anomalies() {
		warnings = append(warnings, model.Warning{
			Code:    model.WarnStyleCycle,
			Message: "basedOn cycle detected, style left unresolved",
			Context: id,
		})
	}

	result := assemble(doc, deepRes)

	if imgErr != nil {
		warnings = append(warnings, model.Warning{
			Code:    model.WarnImageIntegrity,
			Message: imgErr.Error(),
			Context: ooxml.MediaPrefix,
		})
	} else {
		result.Images = imgRes.Images
		warnings = append(warnings, imgRes.Warnings...)
	}

	if props, err := pkg.CoreProperties(); err == nil {
		result.Meta = model.PackageMeta{Title: props.Title, Creator: props.Creator}
	}

	return result, warnings, nil
}

// assemble merges the structural baseline with deep-detection output
// and classifies the lead paragraphs.
func assemble(doc *ooxml.Document, deepRes *fontscan.Result) *model.AnalysisResult {
	paragraphs := buildParagraphs(doc, deepRes)
	classify(paragraphs)

	result := &model.AnalysisResult{Paragraphs: paragraphs}

	bodyStart := 0
	for i := range paragraphs {
		p := &paragraphs[i]
		switch {
		case p.IsTitle:
			result.Title = &model.TitleInfo{Text: p.Text, Styles: p.Runs}
			bodyStart = i + 1
		case p.IsAuthor:
			result.Author = &model.AuthorInfo{
				Text:   authorText(p.Text),
				Styles: p.Runs,
			}
			bodyStart = i + 1
		}
		result.WordCount += countWords(p.Text)
	}

	var bodyParts []string
	var bodyRuns []model.FontInfo
	for _, p := range paragraphs[bodyStart:] {
		bodyParts = append(bodyParts, p.Text)
		bodyRuns = append(bodyRuns, p.Runs...)
	}
	result.BodyText = strings.Join(bodyParts, "\n\n")
	result.BodyStyles = DedupeStyles(bodyRuns)

	if deepRes != nil {
		result.DeepFonts = &model.DeepFontAnalysis{
			Usage:    deepRes.Usage,
			Defaults: deepRes.Defaults,
			Styles:   deepRes.Styles,
		}
	}
	return result
}

// buildParagraphs extracts raw text per paragraph and attaches run
// font attribution: deep results when available, the structural
// fallback otherwise.
func buildParagraphs(doc *ooxml.Document, deepRes *fontscan.Result) []model.ParagraphRecord {
	if doc.Body == nil {
		return nil
	}
	records := make([]model.ParagraphRecord, 0, len(doc.Body.Paragraphs))
	for i := range doc.Body.Paragraphs {
		p := &doc.Body.Paragraphs[i]
		rec := model.ParagraphRecord{
			Index: i,
			Text:  paragraphText(p),
		}
		if deepRes != nil && i < len(deepRes.Paragraphs) {
			rec.Runs = deepRes.Paragraphs[i]
			rec.Alignment = deepRes.Alignments[i]
		} else {
			rec.Runs = fallbackRuns(p)
			rec.Alignment = styles.NormalizeAlignment(p.Properties.Justification.Val)
		}
		records = append(records, rec)
	}
	return records
}

// classify applies the title/author decision table to the lead
// paragraphs. Role flags are only ever set here, never during parsing.
func classify(paragraphs []model.ParagraphRecord) {
	if len(paragraphs) == 0 {
		return
	}
	first := leadFacts(&paragraphs[0])
	var second *LeadFacts
	if len(paragraphs) > 1 {
		second = leadFacts(&paragraphs[1])
	}

	if d := ClassifyTitle(first, second); d.Role == RoleTitle {
		paragraphs[0].IsTitle = true
		if a := ClassifyAuthor(second); a.Role == RoleAuthor {
			paragraphs[1].IsAuthor = true
		}
	}
}

func leadFacts(p *model.ParagraphRecord) *LeadFacts {
	f := &LeadFacts{Text: p.Text, Alignment: p.Alignment}
	if len(p.Runs) > 0 {
		f.FirstSize = p.Runs[0].Size
		f.Bold = p.Runs[0].Bold
	}
	if f.Alignment == "" && len(p.Runs) > 0 {
		f.Alignment = p.Runs[0].Alignment
	}
	return f
}

// authorText re-runs the author patterns to extract the captured name
// from the raw paragraph text.
func authorText(text string) string {
	if d := ClassifyAuthor(&LeadFacts{Text: text}); d.Role == RoleAuthor {
		return d.Author
	}
	return strings.TrimSpace(text)
}

// fallbackRuns attributes fonts from explicit run properties only,
// for when deep detection is disabled or failed.
func fallbackRuns(p *ooxml.Paragraph) []model.FontInfo {
	align := styles.NormalizeAlignment(p.Properties.Justification.Val)
	var infos []model.FontInfo
	for _, run := range p.Runs {
		if len(run.Text) == 0 {
			continue
		}
		info := model.FontInfo{
			Name:      run.Properties.Fonts.Pick(),
			Size:      styles.ParseHalfPoints(run.Properties.FontSize.Val),
			Bold:      run.Properties.Bold.On(),
			Italic:    run.Properties.Italic.On(),
			Underline: run.Properties.Underline.Val != "" && run.Properties.Underline.Val != "none",
			Alignment: align,
		}
		if c := run.Properties.Color.Val; c != "" && c != "auto" {
			info.Color = c
		}
		if info.Name == "" {
			info.Name = styles.FallbackFont
		}
		if info.Size == 0 {
			info.Size = styles.FallbackSize
		}
		info.StyleKey = fontscan.StyleKey(info)
		infos = append(infos, info)
	}
	return infos
}

// DedupeStyles collapses styles that are equal on the full value
// tuple. Styles with an empty name are normalized to the fallback
// font first so near-duplicates collapse correctly.
func DedupeStyles(runs []model.FontInfo) []model.FontInfo {
	seen := make(map[string]bool)
	var out []model.FontInfo
	for _, run := range runs {
		if run.Name == "" {
			run.Name = styles.FallbackFont
		}
		key := fontscan.StyleKey(run)
		if seen[key] {
			continue
		}
		seen[key] = true
		run.StyleKey = key
		out = append(out, run)
	}
	return out
}

func paragraphText(p *ooxml.Paragraph) string {
	var sb strings.Builder
	writeRun := func(run *ooxml.Run) {
		for _, t := range run.Text {
			sb.WriteString(t.Value)
		}
		for range run.Tabs {
			sb.WriteString("\t")
		}
		for range run.Breaks {
			sb.WriteString("\n")
		}
	}
	for i := range p.Runs {
		writeRun(&p.Runs[i])
	}
	for _, h := range p.Hyperlinks {
		for i := range h.Runs {
			writeRun(&h.Runs[i])
		}
	}
	return sb.String()
}

// countWords counts CJK characters individually and runs of
// non-CJK letters or digits as single words.
func countWords(text string) int {
	count := 0
	inWord := false
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			count++
			inWord = false
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if !inWord {
				count++
				inWord = true
			}
		default:
			inWord = false
		}
	}
	return count
}
