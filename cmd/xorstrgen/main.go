package main

import (
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/saylorsolutions/xorstr/cmd/internal"
	"github.com/saylorsolutions/xorstr/cmd/xorstrgen/internal/tmpl"
	"github.com/saylorsolutions/xorstr/pkg/obfs"
	"github.com/saylorsolutions/xorstr/pkg/scope"
)

var version = "dev"

func main() {
	var (
		helpFlag    bool
		versionFlag bool
		exposedFlag bool
		wideFlag    bool
		seedFlag    uint64
		roundsFlag  int
		packageFlag string
		packFlag    string
	)
	flags := flag.NewFlagSet("xorstrgen", flag.ContinueOnError)
	flags.BoolVarP(&helpFlag, "help", "h", false, "Prints this usage information.")
	flags.BoolVar(&versionFlag, "version", false, "Prints the version of this tool.")
	flags.BoolVarP(&exposedFlag, "exposed", "E", false, "Make the generated accessors exposed from the file. It's recommended to only expose from within an internal package.")
	flags.BoolVarP(&wideFlag, "wide", "w", false, "Encrypt entries as UTF-16 code units instead of bytes.")
	flags.Uint64VarP(&seedFlag, "seed", "s", obfs.DefaultSeed, "Key schedule seed. Must be the same for every generated file in a build.")
	flags.IntVarP(&roundsFlag, "rounds", "r", obfs.DefaultRounds, "Key schedule rounds, in the range [1, 255].")
	flags.StringVarP(&packageFlag, "package", "p", "", "Package name for the generated file, defaults to the name of the current directory.")
	flags.StringVar(&packFlag, "pack", "", "Write FILE's contents as an obfuscated payload envelope to the given path instead of generating Go code.")
	flags.Usage = func() {
		fmt.Printf(`
xorstrgen generates code that embeds XOR obfuscated string literals by generating a *.go file based on an input manifest. This pairs well with go:generate comments.
The manifest holds one entry per line as 'name = "literal"' (Go quoting optional), with '#' comments and blank lines ignored.
The name of the generated Go file will be based on the name of the input file, replacing characters that match the regex pattern [^a-zA-Z0-9_] with "_".
For example, given a manifest called secret-strings.txt, a Go file will be created in the current directory called secret_strings_txt.go, containing one accessor per entry that decrypts the embedded ciphertext on first use.
The key is derived from the seed value and baked into the generated file, so the same seed and manifest always produce identical output.
See the -E flag below to make the accessors exposed, and make sure you review the SECURITY notes below if you're unfamiliar with XOR obfuscation.

USAGE:  xorstrgen [FLAGS] FILE

ARGS:
    FILE is the input manifest, or the raw file to embed when --pack is given.

FLAGS:
%s
SECURITY:
    This is not encryption, this is obfuscation, and they are very different things!
XOR obfuscation is intended to hide embedded strings from passive binary analysis only, since the transform is easily reversible.
The derived key is stored right next to the obfuscated data, so a motivated analyst with a disassembler will recover the plain text.
`, flags.FlagUsages())
	}
	if len(os.Args) == 1 {
		flags.Usage()
		return
	}
	if err := flags.Parse(os.Args[1:]); err != nil {
		flags.Usage()
		internal.Fatal("Error parsing flags: %v", err)
	}
	if helpFlag {
		flags.Usage()
		return
	}
	if versionFlag {
		internal.Version("xorstrgen", version)
		return
	}
	if flags.NArg() == 0 {
		internal.Fatal("Missing required FILE argument")
	}
	input := flags.Arg(0)

	if len(packFlag) > 0 {
		if err := packPayload(input, packFlag, seedFlag, roundsFlag, wideFlag); err != nil {
			internal.Fatal("Failed to pack payload: %v", err)
		}
		internal.Echo("Packed %s into %s", input, packFlag)
		return
	}

	err := tmpl.GenerateFile(
		input,
		tmpl.Seed(seedFlag),
		tmpl.Rounds(roundsFlag),
		tmpl.WideChars(wideFlag),
		tmpl.ExposeFunctions(exposedFlag),
		tmpl.PackageName(packageFlag),
	)
	if err != nil {
		internal.Fatal("Failed to generate file: %v", err)
	}
}

func packPayload(input, output string, seed uint64, rounds int, wide bool) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	out, err := os.Create(output)
	if err != nil {
		return err
	}
	guard := scope.OnExit(func() {
		_ = out.Close()
	})
	defer guard.Done()

	if wide {
		err = obfs.PackWide(out, seed, rounds, string(data))
	} else {
		err = obfs.Pack(out, seed, rounds, data)
	}
	if err != nil {
		return err
	}
	guard.Done()
	return nil
}
