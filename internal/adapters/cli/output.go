package cli

import (
	"fmt"
	"io"
	"os"
)

// Output prints human-readable command results. Colors are enabled only when
// out is a terminal.
type Output struct {
	out          io.Writer
	errOut       io.Writer
	enableColors bool
}

func NewOutput(out, errOut io.Writer) *Output {
	return &Output{
		out:          out,
		errOut:       errOut,
		enableColors: isTerminal(out),
	}
}

func (o *Output) DisableColors() {
	o.enableColors = false
}

func (o *Output) Green(text string) string {
	return o.paint("\033[32m", text)
}

func (o *Output) Yellow(text string) string {
	return o.paint("\033[33m", text)
}

func (o *Output) Red(text string) string {
	return o.paint("\033[31m", text)
}

func (o *Output) Gray(text string) string {
	return o.paint("\033[90m", text)
}

func (o *Output) paint(code, text string) string {
	if !o.enableColors {
		return text
	}
	return code + text + "\033[0m"
}

func (o *Output) PrintHeader(msg string) {
	fmt.Fprintln(o.out, msg)
	fmt.Fprintln(o.out)
}

func (o *Output) PrintStep(emoji, msg string, args ...any) {
	prefix := "  "
	if emoji != "" {
		prefix += emoji + " "
	}
	fmt.Fprintf(o.out, prefix+"%s\n", fmt.Sprintf(msg, args...))
}

func (o *Output) PrintSuccess(msg string, args ...any) {
	fmt.Fprintf(o.out, "  "+o.Green("✓ ")+"%s\n", fmt.Sprintf(msg, args...))
}

func (o *Output) PrintWarning(msg string, args ...any) {
	fmt.Fprintf(o.out, "  "+o.Yellow("⚠ ")+"%s\n", fmt.Sprintf(msg, args...))
}

func (o *Output) PrintError(msg string, args ...any) {
	fmt.Fprintf(o.errOut, "  "+o.Red("✗ ")+"%s\n", fmt.Sprintf(msg, args...))
}

func (o *Output) PrintFile(path string) {
	fmt.Fprintf(o.out, "    %s\n", o.Gray(path))
}

// PrintErrorFile lists a path under a PrintError header, on the same stream.
func (o *Output) PrintErrorFile(path string) {
	fmt.Fprintf(o.errOut, "    %s\n", path)
}

func (o *Output) PrintDone(msg string) {
	fmt.Fprintln(o.out)
	fmt.Fprintln(o.out, msg)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == os.ModeCharDevice
}
