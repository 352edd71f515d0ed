package node

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
)

var (
	fatalOutput io.Writer = colorable.NewColorableStderr()
	exit                  = os.Exit
)

// Fatalf prints the message to stderr and stops the command with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(fatalOutput, "%s %s\n", color.New(color.FgRed, color.Bold).Sprint("Fatal:"), msg)
	exit(1)
}
