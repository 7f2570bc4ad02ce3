package definition

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/layoutgrid/internal/ctxlog"
	"github.com/specialistvlad/layoutgrid/internal/fsutil"
)

// Load finds every .hcl file below the given paths and merges them into
// one definition.
func Load(ctx context.Context, paths ...string) (*Definition, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Definition loader started.", "path_count", len(paths))

	files, err := fsutil.ResolvePaths(paths, ".hcl")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	logger.Debug("Discovered definition files.", "count", len(files))

	parser := hclparse.NewParser()
	def := &Definition{}
	for _, file := range files {
		src, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read definition file %s: %w", file, err)
		}
		root, diags := parse(parser, file, src)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to load definition file %s: %w", file, diags)
		}
		def.merge(root, file)
	}

	logger.Debug("Definition loading complete.", "files", len(def.Files), "parts", len(def.Parts), "main_area", def.MainArea)
	return def, nil
}

// Parse decodes a single definition from source.
func Parse(filename string, src []byte) (*Definition, error) {
	root, diags := parse(hclparse.NewParser(), filename, src)
	if diags.HasErrors() {
		return nil, diags
	}
	def := &Definition{}
	def.merge(root, filename)
	return def, nil
}

func (d *Definition) merge(root *fileRoot, file string) {
	if root.Layout != nil && root.Layout.MainArea {
		d.MainArea = true
	}
	d.Parts = append(d.Parts, root.Parts...)
	d.Files = append(d.Files, file)
}

func parse(parser *hclparse.Parser, filename string, src []byte) (*fileRoot, hcl.Diagnostics) {
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diags
	}

	var root fileRoot
	diags = append(diags, gohcl.DecodeBody(file.Body, nil, &root)...)
	if diags.HasErrors() {
		return nil, diags
	}
	recordRanges(file.Body, &root)
	return &root, diags
}

// recordRanges copies source positions of the syntax tree onto the decoded
// blocks. gohcl preserves block order, so the n-th part block of the syntax
// body is the n-th decoded part.
func recordRanges(body hcl.Body, root *fileRoot) {
	syntaxBody, ok := body.(*hclsyntax.Body)
	if !ok {
		return
	}
	i := 0
	for _, blk := range syntaxBody.Blocks {
		if blk.Type != "part" || i >= len(root.Parts) {
			continue
		}
		part := root.Parts[i]
		i++
		part.DefRange = blk.DefRange()
		if attr, ok := blk.Body.Attributes["relative_to"]; ok {
			part.RelativeToRange = attr.Expr.Range()
		}
		j := 0
		for _, vblk := range blk.Body.Blocks {
			if vblk.Type != "view" || j >= len(part.Views) {
				continue
			}
			part.Views[j].DefRange = vblk.DefRange()
			j++
		}
	}
}
