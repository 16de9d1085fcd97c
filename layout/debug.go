package layout

import (
	"encoding/json"
	"os"
)

// WriteDebugJSON 将页面指令列表输出为 JSON，便于调试或可视化。
func WriteDebugJSON(pages []Page, path string) error {
	data, err := json.MarshalIndent(pages, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
