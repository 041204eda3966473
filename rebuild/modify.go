package rebuild

import (
	"fmt"

	"github.com/luwenhao/redocx/analyze"
	"github.com/luwenhao/redocx/model"
)

// Modify re-analyzes data and produces a new document applying the
// per-role overrides in opts. The call is a pure function of
// (input, options); repeated calls over identical input produce
// equivalent output.
//
// Every extracted image appears exactly once in the result, either
// embedded or as a placeholder paragraph when its payload cannot be
// decoded.
func Modify(data []byte, opts model.ModifyOptions) ([]byte, []model.Warning, error) {
	analysis, warnings, err := analyze.Run(data, true)
	if err != nil {
		return nil, nil, fmt.Errorf("analyzing source: %w", err)
	}

	blocks := plan(analysis, opts)
	out, serWarnings, err := serialize(blocks, effectiveStyle(defaultBodyStyle, opts.Body))
	if err != nil {
		return nil, nil, err
	}
	return out, append(warnings, serWarnings...), nil
}
