package expcache

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bool64/ctxd"
)

// faultOutput receives sweep faults of sweepers configured without Logger, Stats and OnFault.
var faultOutput io.Writer = os.Stderr

var _ ctxd.Logger = errorLogger{}

// errorLogger writes error messages and discards other levels.
type errorLogger struct {
	w io.Writer
}

func (errorLogger) Debug(context.Context, string, ...interface{})     {}
func (errorLogger) Info(context.Context, string, ...interface{})      {}
func (errorLogger) Important(context.Context, string, ...interface{}) {}
func (errorLogger) Warn(context.Context, string, ...interface{})      {}

func (l errorLogger) Error(_ context.Context, msg string, keysAndValues ...interface{}) {
	_, _ = fmt.Fprintln(l.w, append([]interface{}{"expcache:", msg}, keysAndValues...)...)
}
