package markdown

import (
	"bytes"
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

// frontMatter matches a --- delimited block at the very start of a file,
// non-greedily, so a later horizontal rule pair is left alone.
var frontMatter = regexp.MustCompile(`\A\x{FEFF}?\s*---([\s\S]*?)---`)

// StripFrontMatter removes a leading front-matter block and trims the
// remaining body. The block's inner text is returned separately; it is nil
// when the file has none.
func StripFrontMatter(src []byte) (body, meta []byte) {
	loc := frontMatter.FindSubmatchIndex(src)
	if loc == nil {
		return bytes.TrimSpace(src), nil
	}
	return bytes.TrimSpace(src[loc[1]:]), src[loc[2]:loc[3]]
}

// ParseFrontMatter decodes the front-matter block of src as YAML. A file
// without front-matter yields an empty map.
func ParseFrontMatter(src []byte) (map[string]any, error) {
	_, meta := StripFrontMatter(src)
	out := map[string]any{}
	if len(bytes.TrimSpace(meta)) == 0 {
		return out, nil
	}
	if err := yaml.Unmarshal(meta, &out); err != nil {
		return nil, fmt.Errorf("parsing front-matter: %w", err)
	}
	return out, nil
}
