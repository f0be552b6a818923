// The keyedgen command is a code generator for keyed JSON coding of Go
// types.
//
// Declarations are read from a JSON or YAML configuration file. Struct
// declarations get DecodeKeyed and EncodeKeyed methods along with
// json.UnmarshalerFrom and json.MarshalerTo implementations, and a
// memberwise constructor. Sum type declarations, that is interfaces with a
// closed set of case types, get decode and encode functions for one of the
// following representations:
//
//   - Externally Tagged Object:
//     {"circle": {"radius": 10}}
//     {"square": {"side": 5}}
//
//   - Internally Tagged Object:
//     {"type": "circle", "radius": 10}
//     {"type": "square", "side": 5}
//
//   - Adjacently Tagged Object:
//     {"type": "circle", "content": {"radius": 10}}
//     {"type": "square", "content": {"side": 5}}
//
//   - Untagged Value:
//     {"radius": 10}
//     {"side": 5}
//
// Directives attached to declarations, fields and cases customize key
// paths, aliases, default values, helper coders and tag values. For
// example:
//
//	declarations:
//	  - name: Post
//	    fields:
//	      - name: Title
//	        type: string
//	        directives:
//	          - kind: alias
//	            values: [name]
//	      - name: Author
//	        type: string
//	        directives:
//	          - kind: keyPath
//	            path: [meta, author]
//
// Diagnostics are printed to standard error. Declarations with errors are
// left out of the generated file and the command exits with a non-zero
// status.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/kr/text"
	"go.uber.org/zap"

	"go.pact.im/x/keyedgen/codegen"
	"go.pact.im/x/keyedgen/model"
)

// errFailed is returned when code generation reports error diagnostics
// that were already printed.
var errFailed = errors.New("code generation failed")

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case errors.Is(err, flag.ErrHelp):
		os.Exit(0)
	case errors.Is(err, errFailed):
		os.Exit(1)
	case err != nil:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var config codegen.Config
	var outputPath string
	var verbose bool

	fs := flag.NewFlagSet("keyedgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&outputPath, "o", "", "output path")
	fs.BoolVar(&verbose, "v", false, "log expansion events")
	fs.Func("config", "read configuration file (JSON or YAML)", func(p string) error {
		return model.ReadFile(p, &config)
	})
	fs.Func("package", "override package name", func(p string) error {
		return config.Header.PackageName.UnmarshalText([]byte(p))
	})
	if err := fs.Parse(args); err != nil {
		return err
	}

	if config.Header.PackageName == "" {
		// Environment variable is set by `go generate`.
		packageName := os.Getenv("GOPACKAGE")
		if err := config.Header.PackageName.UnmarshalText([]byte(packageName)); err != nil {
			return err
		}
	}

	log := zap.NewNop()
	if verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return err
		}
		defer func() { _ = l.Sync() }()
		log = l
	}

	var buf bytes.Buffer
	var diagnostics codegen.Diagnostics
	genErr := codegen.Generate(&buf, config, codegen.Options{
		Logger: log,
		Sink:   &diagnostics,
	})
	printDiagnostics(stderr, diagnostics)
	if buf.Len() == 0 {
		return genErr
	}

	if outputPath == "" {
		if _, err := stdout.Write(buf.Bytes()); err != nil {
			return err
		}
	} else if err := os.WriteFile(outputPath, buf.Bytes(), 0o666); err != nil {
		return err
	}
	if genErr != nil {
		return errFailed
	}
	return nil
}

func printDiagnostics(w io.Writer, ds codegen.Diagnostics) {
	for _, d := range ds {
		fmt.Fprintln(w, d.Error())
		if d.Fix != "" {
			fmt.Fprintln(w, text.Indent(text.Wrap("fix: "+d.Fix, 72), "\t"))
		}
	}
}
