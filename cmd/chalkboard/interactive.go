package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/chalkboard/internal/canvas"
	"github.com/example/chalkboard/internal/clipboard"
	"github.com/example/chalkboard/internal/export"
	"github.com/example/chalkboard/internal/interaction"
	"github.com/example/chalkboard/internal/script"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// interactiveCmd reads script commands from stdin and runs them against one
// session. save, copy, export, help and exit are handled here.
type interactiveCmd struct {
	*root
	fs     *flag.FlagSet
	execs  commandList
	width  int
	height int
	output string
	shadow bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	machine *interaction.Machine
	raster  *canvas.Raster
	line    int
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	i := &interactiveCmd{root: r, fs: fs, stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	fs.Usage = usageFunc(i)
	fs.Var(&i.execs, "e", "execute a command in immediate mode (may be specified multiple times)")
	fs.IntVar(&i.width, "width", 800, "surface width in pixels")
	fs.IntVar(&i.height, "height", 600, "surface height in pixels")
	fs.StringVar(&i.output, "output", export.DefaultName(r.cfg().SaveDir, "", export.FormatPNG), "file written by save without an argument")
	fs.BoolVar(&i.shadow, "shadow", false, "add a drop shadow to saved images")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: i}
	}
	return i, nil
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func (i *interactiveCmd) start() error {
	if i.machine != nil {
		return nil
	}
	i.raster = canvas.NewRaster(i.width, i.height, canvas.WithLogger(i.logger("raster")))
	m, err := i.newSession(i.raster)
	if err != nil {
		return err
	}
	i.machine = m
	return nil
}

func (i *interactiveCmd) Run() error {
	if err := i.start(); err != nil {
		return err
	}
	defer i.machine.Close()

	if len(i.execs) > 0 {
		for _, line := range i.execs {
			done, err := i.executeLine(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	fmt.Fprintln(i.stdout, "Enter commands (type 'help' for a list, 'exit' to quit)")
	scanner := bufio.NewScanner(i.stdin)
	for {
		fmt.Fprint(i.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := i.executeLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(i.stderr, err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

// executeLine runs one line and reports whether the session should end.
func (i *interactiveCmd) executeLine(line string) (bool, error) {
	if err := i.start(); err != nil {
		return true, err
	}
	i.line++
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return false, nil
	}
	switch strings.ToLower(fields[0]) {
	case "exit", "quit":
		return true, nil
	case "help":
		i.printHelp()
		return false, nil
	case "save":
		return false, i.save(argOr(fields, i.output))
	case "export":
		return false, i.save(argOr(fields, pdfName(i.output)))
	case "copy":
		return false, i.copy()
	}
	cmd, ok, err := script.ParseLine(i.line, line)
	if err != nil || !ok {
		return false, err
	}
	return false, script.Exec(i.machine, i.machine.Store(), cmd)
}

func (i *interactiveCmd) exportOptions() export.Options {
	return export.Options{Shadow: i.shadow, Title: "Chalkboard"}
}

func (i *interactiveCmd) save(path string) error {
	if err := export.Write(path, i.raster.Image(), i.exportOptions()); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	fmt.Fprintf(i.stdout, "saved %s\n", path)
	if export.FormatFor(path) == export.FormatPDF {
		i.notifyExport(path)
	} else {
		i.notifySave(path)
	}
	return nil
}

func (i *interactiveCmd) copy() error {
	if err := clipboard.WriteImage(export.Flatten(i.raster.Image(), i.exportOptions())); err != nil {
		return fmt.Errorf("copy PNG to clipboard: %w", err)
	}
	fmt.Fprintln(i.stdout, "copied drawing to clipboard")
	i.notifyCopy("drawing")
	return nil
}

func (i *interactiveCmd) printHelp() {
	for _, name := range script.Names() {
		fmt.Fprintf(i.stdout, "  %-10s %s\n", name, script.Usage(name))
	}
	fmt.Fprintf(i.stdout, "  %-10s %s\n", "save", "[file]")
	fmt.Fprintf(i.stdout, "  %-10s %s\n", "export", "[file.pdf]")
	fmt.Fprintf(i.stdout, "  %-10s\n", "copy")
	fmt.Fprintf(i.stdout, "  %-10s\n", "exit")
}

func argOr(fields []string, def string) string {
	if len(fields) > 1 {
		return strings.Join(fields[1:], " ")
	}
	return def
}

func pdfName(png string) string {
	return strings.TrimSuffix(png, ".png") + ".pdf"
}
