package server

import "testing"

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()
	if len(tools) != 14 {
		t.Errorf("tool count: got %d, want 14", len(tools))
	}

	seen := make(map[string]bool)
	for _, tool := range tools {
		if tool.Name == "" {
			t.Error("tool with empty name")
		}
		if seen[tool.Name] {
			t.Errorf("duplicate tool name: %s", tool.Name)
		}
		seen[tool.Name] = true

		if tool.Description == "" {
			t.Errorf("%s: empty description", tool.Name)
		}
		if tool.InputSchema["type"] != "object" {
			t.Errorf("%s: schema type is not object", tool.Name)
		}
		props, ok := tool.InputSchema["properties"].(map[string]interface{})
		if !ok {
			t.Errorf("%s: schema has no properties", tool.Name)
			continue
		}
		if _, ok := props["path"]; !ok {
			t.Errorf("%s: missing path property", tool.Name)
		}
		required, ok := tool.InputSchema["required"].([]string)
		if !ok || len(required) == 0 {
			t.Errorf("%s: missing required list", tool.Name)
		}
	}
}

func TestGetToolDefinitions_EveryToolDispatches(t *testing.T) {
	s := New()
	for _, tool := range GetToolDefinitions() {
		// Dispatch with empty arguments: every defined tool must at least
		// be routable, failing on its missing path rather than as unknown.
		_, err := s.executeTool(tool.Name, []byte(`{}`))
		if err != nil && err.Error() == "unknown tool: "+tool.Name {
			t.Errorf("defined tool %s is not wired into executeTool", tool.Name)
		}
	}
}
