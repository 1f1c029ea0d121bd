package main

import (
	"encoding/json"
	"io"
	"strconv"

	"go.yaml.in/yaml/v3"

	"github.com/omeyang/xipbin/pkg/config/xconf"
)

// render 按输出格式写出 v，text 格式交给 text 回调。
func (e *env) render(v any, text func(w io.Writer) error) error {
	switch e.settings.Output {
	case xconf.OutputJSON:
		enc := json.NewEncoder(e.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case xconf.OutputYAML:
		enc := yaml.NewEncoder(e.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(e.stdout)
	}
}

// formatFloat 输出最短的可还原十进制表示，不使用指数形式。
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
