package override

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	ctyjson "github.com/zclconf/go-cty/cty/json"
	"gopkg.in/yaml.v3"
)

// Decoder turns the content of a local config file into top-level bindings.
type Decoder func(data []byte, filename string) (map[string]any, error)

// Decoders maps file extensions to the decoder used for them.
var Decoders = map[string]Decoder{
	".yaml":  decodeYAML,
	".yml":   decodeYAML,
	".toml":  decodeTOML,
	".json":  decodeJSON,
	".jsonc": decodeJSONC,
	".hcl":   decodeHCL,
}

func decoderFor(path string) (Decoder, bool) {
	d, ok := Decoders[strings.ToLower(filepath.Ext(path))]
	return d, ok
}

func decodeYAML(data []byte, _ string) (map[string]any, error) {
	out := map[string]any{}
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeTOML(data []byte, _ string) (map[string]any, error) {
	out := map[string]any{}
	if err := toml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeJSON(data []byte, _ string) (map[string]any, error) {
	out := map[string]any{}
	if len(bytes.TrimSpace(data)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decodeJSONC(data []byte, filename string) (map[string]any, error) {
	return decodeJSON(jsonc.ToJSON(data), filename)
}

// decodeHCL reads top-level attributes only. Values are converted through
// their JSON form so they come out as the same plain Go types as the other
// formats.
func decodeHCL(data []byte, filename string) (map[string]any, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, diags
	}
	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	out := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		raw, err := ctyjson.Marshal(val, val.Type())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[name] = v
	}
	return out, nil
}
