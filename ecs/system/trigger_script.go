package system

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

const triggerScriptTimeout = 250 * time.Millisecond

// RunTriggerScript runs an end-of-level script. vars are exposed as integer
// globals; the script picks the next level by assigning the string global
// `next`. An empty result means the campaign order decides.
func RunTriggerScript(src []byte, vars map[string]int) (string, error) {
	if len(strings.TrimSpace(string(src))) == 0 {
		return "", nil
	}
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math", "text", "fmt"))
	for name, v := range vars {
		if err := script.Add(name, v); err != nil {
			return "", fmt.Errorf("trigger script: add %s: %w", name, err)
		}
	}
	if err := script.Add("next", ""); err != nil {
		return "", fmt.Errorf("trigger script: add next: %w", err)
	}

	compiled, err := script.Compile()
	if err != nil {
		return "", fmt.Errorf("trigger script: compile: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), triggerScriptTimeout)
	defer cancel()
	if err := compiled.RunContext(ctx); err != nil {
		return "", fmt.Errorf("trigger script: run: %w", err)
	}
	return strings.TrimSpace(compiled.Get("next").String()), nil
}
