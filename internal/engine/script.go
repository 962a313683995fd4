package engine

import (
	"fmt"
	"os"
	"strings"

	"github.com/dop251/goja"
	"pkt.systems/pslog"
)

// runVerifyScript evaluates the user-supplied JS once for a modified file,
// before its rewrite is committed. The script can inspect the old and new
// content and throw to veto the rewrite.
func runVerifyScript(scriptPath, filePath, before, after string, vars map[string]string, logger pslog.Base) error {
	code, err := os.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("verify script %s: %w", scriptPath, err)
	}

	vm := goja.New()
	registerConsole(vm, logger)

	fileObj := vm.NewObject()
	fileObj.Set("path", filePath)
	fileObj.Set("before", before)
	fileObj.Set("after", after)
	vm.Set("file", fileObj)

	varsObj := vm.NewObject()
	for k, v := range vars {
		varsObj.Set(k, v)
	}
	vm.Set("vars", varsObj)

	if _, err := vm.RunString(string(code)); err != nil {
		return fmt.Errorf("verify %s: %w", filePath, err)
	}
	return nil
}

func registerConsole(vm *goja.Runtime, logger pslog.Base) {
	console := vm.NewObject()
	logFn := func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		if logger != nil {
			logger.Info("verify", "msg", strings.Join(parts, " "))
		}
		return goja.Undefined()
	}
	console.Set("log", logFn)
	console.Set("error", logFn)
	console.Set("warn", logFn)
	vm.Set("console", console)
}
