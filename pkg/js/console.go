package js

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dop251/goja"

	"toybrowser/pkg/logger"
)

// consoleAPI implements console.log, console.warn, and console.error on
// top of the process logger. console.log is logged at info level.
type consoleAPI struct{}

func (c *consoleAPI) register(vm *goja.Runtime) {
	console := vm.NewObject()
	console.Set("log", c.at(slog.LevelInfo))
	console.Set("warn", c.at(slog.LevelWarn))
	console.Set("error", c.at(slog.LevelError))
	vm.Set("console", console)
}

func (c *consoleAPI) at(level slog.Level) func(call goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		logger.Get().Log(context.Background(), level, formatArgs(call.Arguments), "source", "script")
		return goja.Undefined()
	}
}

func formatArgs(args []goja.Value) string {
	parts := make([]string, len(args))
	for i, arg := range args {
		parts[i] = arg.String()
	}
	return strings.Join(parts, " ")
}
