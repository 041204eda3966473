// Package media inventories the embedded images of a document package
// and locates each one at paragraph/run granularity by
// cross-referencing relationship ids between word/document.xml,
// word/_rels/document.xml.rels, and word/media.
package media

import (
	"encoding/base64"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/luwenhao/redocx/model"
	"github.com/luwenhao/redocx/ooxml"
)

// relIDPattern matches relationship-id attribute values referenced
// from run content: r:embed, r:id, or r:link.
var relIDPattern = regexp.MustCompile(`(?:r:embed|r:id|r:link)\s*=\s*"(rId\d+)"`)

// Relationship is one image relationship from document.xml.rels.
type Relationship struct {
	ID       string
	Target   string
	Type     string
	Filename string
}

// Reference is one image reference found inside a run.
type Reference struct {
	ParagraphIndex int
	RunIndex       int
	RelationshipID string
}

// Stats is the diagnostic summary of a location pass. It is
// informational only; downstream logic keys off the images
// themselves.
type Stats struct {
	TotalParagraphs      int `json:"totalParagraphs"`
	ParagraphsWithImages int `json:"paragraphsWithImages"`
	ReferencesFound      int `json:"referencesFound"`
	Matched              int `json:"matched"`
	Unlocated            int `json:"unlocated"`
}

// Result is the full output of a location pass. Images always
// contains every media file found in the archive, located or not.
type Result struct {
	Images        []model.ExtractedImage
	Relationships map[string]Relationship
	References    []Reference
	Stats         Stats
	Warnings      []model.Warning
}

// Locate builds the image inventory and fills in paragraph/run
// positions where a relationship chain can be followed end to end.
func Locate(pkg *ooxml.Package, doc *ooxml.Document) (*Result, error) {
	res := &Result{Relationships: make(map[string]Relationship)}

	if err := res.collectInventory(pkg); err != nil {
		return nil, err
	}

	rels, err := pkg.Relationships()
	if err != nil {
		return nil, fmt.Errorf("parsing relationships: %w", err)
	}
	for _, rel := range rels.Relationships {
		if !isImageRelationship(rel) {
			continue
		}
		res.Relationships[rel.ID] = Relationship{
			ID:       rel.ID,
			Target:   rel.Target,
			Type:     rel.Type,
			Filename: path.Base(rel.Target),
		}
	}

	res.scanReferences(doc)
	res.join()
	return res, nil
}

// collectInventory reads every media file with a known image
// extension. Nothing found here is ever dropped, even if location
// fails later.
func (r *Result) collectInventory(pkg *ooxml.Package) error {
	for _, name := range pkg.MediaFiles() {
		ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
		mime, ok := imageMIMETypes[ext]
		if !ok {
			continue
		}
		data, err := pkg.Part(name)
		if err != nil {
			return fmt.Errorf("reading media file %s: %w", name, err)
		}

		img := model.ExtractedImage{
			Filename: name,
			MIMEType: mime,
			Size:     len(data),
			Data:     "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data),
		}
		if w, h, err := probeDimensions(data, ext); err == nil {
			img.Width, img.Height = w, h
		} else {
			r.Warnings = append(r.Warnings, model.Warning{
				Code:    model.WarnImageDimensions,
				Message: "could not decode image dimensions",
				Context: name,
			})
		}
		r.Images = append(r.Images, img)
	}
	return nil
}

// scanReferences walks paragraphs and runs collecting every
// relationship id referenced by an image carrier.
func (r *Result) scanReferences(doc *ooxml.Document) {
	if doc == nil || doc.Body == nil {
		return
	}
	r.Stats.TotalParagraphs = len(doc.Body.Paragraphs)

	for pi := range doc.Body.Paragraphs {
		p := &doc.Body.Paragraphs[pi]
		found := false
		for ri, run := range runsOf(p) {
			for _, relID := range runRelIDs(&run) {
				r.References = append(r.References, Reference{
					ParagraphIndex: pi,
					RunIndex:       ri,
					RelationshipID: relID,
				})
				found = true
			}
		}
		if found {
			r.Stats.ParagraphsWithImages++
		}
	}
	r.Stats.ReferencesFound = len(r.References)
}

// runRelIDs extracts the distinct relationship ids referenced by one
// run: typed blip references first, then a pattern scan over the raw
// run markup for legacy pict, object, and nonstandard wrappers.
func runRelIDs(run *ooxml.Run) []string {
	var ids []string
	seen := make(map[string]bool)
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, d := range run.Drawings {
		if d.Inline != nil && d.Inline.Blip != nil {
			add(d.Inline.Blip.Embed)
			add(d.Inline.Blip.Link)
		}
		if d.Anchor != nil && d.Anchor.Blip != nil {
			add(d.Anchor.Blip.Embed)
			add(d.Anchor.Blip.Link)
		}
	}
	if len(run.Picts) > 0 || len(run.Objects) > 0 || len(ids) == 0 {
		for _, m := range relIDPattern.FindAllStringSubmatch(run.RawXML, -1) {
			add(m[1])
		}
	}
	return ids
}

// join matches references to relationships to inventory entries. The
// relationship target may be a relative path while the inventory key
// is a full archive path, so matching is by filename suffix.
func (r *Result) join() {
	for _, ref := range r.References {
		rel, ok := r.Relationships[ref.RelationshipID]
		if !ok {
			continue
		}
		img := r.findByFilename(rel.Filename)
		if img == nil {
			r.Warnings = append(r.Warnings, model.Warning{
				Code:    model.WarnImageIntegrity,
				Message: fmt.Sprintf("relationship %s references missing media file", ref.RelationshipID),
				Context: rel.Target,
			})
			continue
		}
		if img.Located() {
			continue
		}
		pi, ri := ref.ParagraphIndex, ref.RunIndex
		img.ParagraphIndex = &pi
		img.RunIndex = &ri
		img.RelationshipID = ref.RelationshipID
		r.Stats.Matched++
	}

	for i := range r.Images {
		if !r.Images[i].Located() {
			r.Stats.Unlocated++
		}
	}
}

func (r *Result) findByFilename(filename string) *model.ExtractedImage {
	for i := range r.Images {
		if strings.HasSuffix(r.Images[i].Filename, "/"+filename) || r.Images[i].Filename == filename {
			return &r.Images[i]
		}
	}
	return nil
}

func isImageRelationship(rel ooxml.Relationship) bool {
	return strings.Contains(strings.ToLower(rel.Type), "image") ||
		strings.Contains(strings.ToLower(rel.Target), "image")
}

// runsOf flattens a paragraph's direct runs followed by its hyperlink
// runs. Indexes into this order only sequence images within a
// paragraph; they are not positions into the paragraph's detected
// font list, which omits empty runs.
func runsOf(p *ooxml.Paragraph) []ooxml.Run {
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
