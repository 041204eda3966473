// Package rebuild constructs a new document from an analysis result,
// applying per-role style overrides and re-embedding every extracted
// image. Each modification call is self-contained: it re-analyzes its
// input and shares no state with prior calls.
package rebuild

import (
	"math"
	"sort"

	"github.com/luwenhao/redocx/model"
)

// blockKind discriminates the output block union.
type blockKind int

const (
	blockParagraph blockKind = iota
	blockImage
	blockPlaceholder
)

// block is one element of the output document in final order.
type block struct {
	kind  blockKind
	runs  []styledRun
	align string
	image *model.ExtractedImage
	// placeholder names the image lost to an embed failure.
	placeholder string
}

// styledRun is one output run with its fully resolved style.
type styledRun struct {
	text  string
	style model.FontInfo
}

// plan builds the ordered output blocks from the analysis. Every
// image in the inventory appears exactly once: located images
// directly after their matched paragraph (title and author paragraphs
// keep theirs), unlocated ones by the proportional-position
// heuristic, leftovers at document end.
func plan(analysis *model.AnalysisResult, opts model.ModifyOptions) []block {
	var blocks []block
	located := groupLocated(analysis.Images)

	titleIdx, authorIdx := -1, -1
	for i := range analysis.Paragraphs {
		p := &analysis.Paragraphs[i]
		if p.IsTitle {
			titleIdx = p.Index
		}
		if p.IsAuthor {
			authorIdx = p.Index
		}
	}

	// emit appends the located group for one source paragraph and
	// marks it consumed.
	emit := func(idx int) {
		for _, img := range located[idx] {
			blocks = append(blocks, block{kind: blockImage, image: img})
		}
		delete(located, idx)
	}

	if analysis.Title != nil {
		style := effectiveStyle(defaultTitleStyle, opts.Title)
		blocks = append(blocks, block{
			kind:  blockParagraph,
			runs:  []styledRun{{text: decorate(analysis.Title.Text, opts.Title), style: style}},
			align: style.Alignment,
		})
		emit(titleIdx)
	}
	if analysis.Author != nil {
		style := effectiveStyle(defaultAuthorStyle, opts.Author)
		blocks = append(blocks, block{
			kind:  blockParagraph,
			runs:  []styledRun{{text: decorate(analysis.Author.Text, opts.Author), style: style}},
			align: style.Alignment,
		})
		emit(authorIdx)
	}

	bodyStyle := effectiveStyle(defaultBodyStyle, opts.Body)

	var bodyBlockIdx []int // positions of body paragraphs within blocks
	for i := range analysis.Paragraphs {
		p := &analysis.Paragraphs[i]
		if p.IsTitle || p.IsAuthor {
			continue
		}
		bodyBlockIdx = append(bodyBlockIdx, len(blocks))
		blocks = append(blocks, bodyParagraph(p, bodyStyle, opts.Body))
		emit(p.Index)
	}

	// Located groups whose source paragraph produced no output block
	// still round-trip: append them at the document end in paragraph
	// order.
	rest := make([]int, 0, len(located))
	for idx := range located {
		rest = append(rest, idx)
	}
	sort.Ints(rest)
	for _, idx := range rest {
		emit(idx)
	}

	blocks = placeUnlocated(blocks, bodyBlockIdx, unlocatedOf(analysis.Images))
	return blocks
}

// bodyParagraph resolves one body paragraph's output style. A rule
// matching the paragraph's leading run retargets that paragraph;
// analysis retains text per paragraph rather than per run, so rule
// granularity is per paragraph.
func bodyParagraph(p *model.ParagraphRecord, bodyStyle model.FontInfo, opts *model.RoleOptions) block {
	style := bodyStyle
	if len(p.Runs) > 0 {
		if rule := findRule(opts, p.Runs[0].StyleKey); rule != nil {
			style = applyRule(bodyStyle, rule)
		}
	}
	return block{
		kind:  blockParagraph,
		align: style.Alignment,
		runs:  []styledRun{{text: p.Text, style: style}},
	}
}

// groupLocated indexes located images by paragraph index, ordered by
// run index within a paragraph.
func groupLocated(images []model.ExtractedImage) map[int][]*model.ExtractedImage {
	out := make(map[int][]*model.ExtractedImage)
	for i := range images {
		img := &images[i]
		if img.Located() {
			out[*img.ParagraphIndex] = append(out[*img.ParagraphIndex], img)
		}
	}
	for _, group := range out {
		sort.Slice(group, func(i, j int) bool {
			return *group[i].RunIndex < *group[j].RunIndex
		})
	}
	return out
}

func unlocatedOf(images []model.ExtractedImage) []*model.ExtractedImage {
	var out []*model.ExtractedImage
	for i := range images {
		if !images[i].Located() {
			out = append(out, &images[i])
		}
	}
	return out
}

// placeUnlocated distributes unlocated images across the body by
// relative position: image i of n targets position (i+1)/(n+1),
// matched to the nearest body paragraph within a tolerance of
// 1/(bodyCount+1). Images that match nothing are appended at the end,
// so every image appears exactly once regardless. The exact tolerance
// formula is a policy knob, not a guaranteed-correct algorithm.
func placeUnlocated(blocks []block, bodyBlockIdx []int, unlocated []*model.ExtractedImage) []block {
	if len(unlocated) == 0 {
		return blocks
	}
	n := len(unlocated)
	bodyCount := len(bodyBlockIdx)

	// insertions[k] collects images to insert after body paragraph k.
	insertions := make(map[int][]*model.ExtractedImage)
	var leftovers []*model.ExtractedImage

	if bodyCount == 0 {
		leftovers = unlocated
	} else {
		tolerance := 1.0 / float64(bodyCount+1)
		for i, img := range unlocated {
			target := float64(i+1) / float64(n+1)
			best, bestDiff := -1, math.MaxFloat64
			for k := 0; k < bodyCount; k++ {
				rel := float64(k+1) / float64(bodyCount+1)
				if diff := math.Abs(rel - target); diff < bestDiff {
					best, bestDiff = k, diff
				}
			}
			if bestDiff <= tolerance {
				insertions[best] = append(insertions[best], img)
			} else {
				leftovers = append(leftovers, img)
			}
		}
	}

	var out []block
	bodySeen := 0
	for bi, b := range blocks {
		out = append(out, b)
		if bodySeen < len(bodyBlockIdx) && bodyBlockIdx[bodySeen] == bi {
			for _, img := range insertions[bodySeen] {
				out = append(out, block{kind: blockImage, image: img})
			}
			bodySeen++
		}
	}
	for _, img := range leftovers {
		out = append(out, block{kind: blockImage, image: img})
	}
	return out
}
