package definition

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/layoutgrid/internal/ctxlog"
	"github.com/specialistvlad/layoutgrid/internal/engine"
	"github.com/specialistvlad/layoutgrid/internal/grid"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Build creates a fresh layout and applies the definition to it.
func (d *Definition) Build(ctx context.Context, env engine.Env) (*engine.Layout, error) {
	var opts []engine.Option
	if d.MainArea {
		opts = append(opts, engine.WithMainArea())
	}
	return d.Apply(ctx, engine.New(env, opts...))
}

// Apply adds the parts and views of the definition to l.
func (d *Definition) Apply(ctx context.Context, l *engine.Layout) (*engine.Layout, error) {
	logger := ctxlog.FromContext(ctx)
	for _, p := range d.Parts {
		var err error
		if l, err = applyPart(l, p); err != nil {
			return nil, err
		}
		logger.Debug("Applied part definition.", "part", p.ID, "views", len(p.Views))
	}
	return l, nil
}

func applyPart(l *engine.Layout, p *PartBlock) (*engine.Layout, error) {
	if _, exists := l.LookupPart(engine.PartFilter{ID: p.ID}); !exists {
		opts := engine.AddPartOptions{
			Align:      engine.Align(p.Align),
			Ratio:      p.Ratio,
			Structural: true,
		}
		if p.Structural != nil {
			opts.Structural = *p.Structural
		}
		next, err := l.AddPart(p.ID, p.RelativeTo, opts)
		var nullErr *grid.NullElementError
		switch {
		case errors.As(err, &nullErr):
			return nil, unknownReference(p, nullErr)
		case err != nil:
			return nil, fmt.Errorf("%s: part %q: %w", p.DefRange, p.ID, err)
		}
		l = next
	}

	if len(p.CSSClass) > 0 {
		next, err := l.SetPartCSSClass(p.ID, p.CSSClass)
		if err != nil {
			return nil, fmt.Errorf("%s: part %q: %w", p.DefRange, p.ID, err)
		}
		l = next
	}

	for _, v := range p.Views {
		next, err := applyView(l, p.ID, v)
		if err != nil {
			return nil, err
		}
		l = next
	}

	if p.Activate {
		next, err := l.ActivatePart(p.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: part %q: %w", p.DefRange, p.ID, err)
		}
		l = next
	}
	return l, nil
}

func applyView(l *engine.Layout, partID string, v *ViewBlock) (*engine.Layout, error) {
	data, err := stringMap(v.Data)
	if err != nil {
		return nil, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid view data",
			Detail:   fmt.Sprintf("The data of view %q must be an object of strings: %s.", v.ID, err),
			Subject:  v.DefRange.Ptr(),
		}
	}

	opts := engine.AddViewOptions{
		PartID:       partID,
		ActivateView: v.Activate,
		CSSClass:     v.CSSClass,
	}
	if len(v.Path) > 0 || v.Hint != "" || len(data) > 0 {
		opts.Navigation = &grid.Navigation{
			ID:   l.Env().IDs.NavigationID(),
			Path: grid.Segments(v.Path...),
			Hint: v.Hint,
			Data: data,
		}
	}
	next, err := l.AddView(v.ID, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: view %q: %w", v.DefRange, v.ID, err)
	}
	return next, nil
}

// stringMap converts an HCL object or map value into a Go string map.
func stringMap(val cty.Value) (map[string]string, error) {
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsWhollyKnown() {
		return nil, errors.New("value is not known")
	}
	converted, err := convert.Convert(val, cty.Map(cty.String))
	if err != nil {
		return nil, err
	}
	var out map[string]string
	if err := gocty.FromCtyValue(converted, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func unknownReference(p *PartBlock, nullErr *grid.NullElementError) error {
	detail := fmt.Sprintf("Part %q is placed relative to %q, which is neither a part nor a node.", p.ID, p.RelativeTo)
	if nullErr.Suggestion != "" {
		detail += fmt.Sprintf(" Did you mean %q?", nullErr.Suggestion)
	}
	subject := p.RelativeToRange
	if subject.Filename == "" {
		subject = p.DefRange
	}
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Unknown relative_to reference",
		Detail:   detail,
		Subject:  subject.Ptr(),
	}}
}
