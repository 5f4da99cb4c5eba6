// Package hclgen renders image configurations as image blocks of the settings file,
// so generated output can be pasted into imagegen.hcl and edited from there.
package hclgen

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/thecloudstation/imagegen/pkg/image"
	"github.com/zclconf/go-cty/cty"
)

// Generate renders one image block per configuration. Empty fields are left out.
func Generate(images []image.ImageConfiguration) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	for i, img := range images {
		if img.Name == "" {
			return nil, fmt.Errorf("image at index %d has no name", i)
		}
		if i > 0 {
			body.AppendNewline()
		}

		block := body.AppendNewBlock("image", []string{img.Name}).Body()
		setString(block, "alias", img.Alias)
		if img.Build != nil {
			writeBuild(block.AppendNewBlock("build", nil).Body(), img.Build)
		}
	}

	return hclwrite.Format(f.Bytes()), nil
}

func writeBuild(body *hclwrite.Body, build *image.BuildConfiguration) {
	setString(body, "from", build.From)

	if len(build.FromExt) > 0 {
		keys := make([]string, 0, len(build.FromExt))
		for k := range build.FromExt {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		ext := make(map[string]cty.Value, len(keys))
		for _, k := range keys {
			ext[k] = cty.StringVal(build.FromExt[k])
		}
		body.SetAttributeValue("from_ext", cty.MapVal(ext))
	}

	setList(body, "ports", build.Ports)
	setList(body, "tags", build.Tags)

	if build.Assembly != nil {
		assembly := body.AppendNewBlock("assembly", nil).Body()
		setString(assembly, "basedir", build.Assembly.BaseDir)
		setString(assembly, "descriptor_ref", build.Assembly.DescriptorRef)
	}
}

func setString(body *hclwrite.Body, name, value string) {
	if value != "" {
		body.SetAttributeValue(name, cty.StringVal(value))
	}
}

func setList(body *hclwrite.Body, name string, values []string) {
	if len(values) == 0 {
		return
	}
	list := make([]cty.Value, len(values))
	for i, v := range values {
		list[i] = cty.StringVal(v)
	}
	body.SetAttributeValue(name, cty.ListVal(list))
}
