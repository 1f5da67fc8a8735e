package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	flag "github.com/spf13/pflag"

	"github.com/saylorsolutions/xorstr/cmd/internal"
	"github.com/saylorsolutions/xorstr/pkg/obfs"
	"github.com/saylorsolutions/xorstr/pkg/scope"
)

var version = "dev"

func main() {
	var (
		helpFlag    bool
		versionFlag bool
	)
	flags := flag.NewFlagSet("obfsview", flag.ContinueOnError)
	flags.BoolVarP(&helpFlag, "help", "h", false, "Prints this usage information.")
	flags.BoolVar(&versionFlag, "version", false, "Prints the version of this tool.")
	flags.Usage = func() {
		fmt.Printf(`
obfsview inspects an obfuscated payload envelope written by 'xorstrgen --pack'.
It shows the envelope header, a hex dump of the stored ciphertext, and the decrypted text side by side.
Press 'q' or ESC to quit.

USAGE:  obfsview FILE

ARGS:
    FILE is the payload envelope to inspect.

FLAGS:
%s`, flags.FlagUsages())
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
		internal.Version("obfsview", version)
		return
	}
	if flags.NArg() == 0 {
		internal.Fatal("Missing required FILE argument")
	}

	name := flags.Arg(0)
	payload, err := readPayload(name)
	if err != nil {
		internal.Fatal("Failed to read payload: %v", err)
	}
	cipherDump := hex.Dump(payload.Ciphertext())
	text, err := payload.Plaintext()
	if err != nil {
		internal.Fatal("Failed to decrypt payload: %v", err)
	}
	if err := run(name, payload, cipherDump, text); err != nil {
		internal.Fatal("Display error: %v", err)
	}
}

func readPayload(name string) (*obfs.Payload, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer scope.OnExit(func() {
		_ = f.Close()
	}).Done()
	return obfs.Unpack(f)
}

func run(name string, payload *obfs.Payload, cipherDump, text string) error {
	app := tview.NewApplication()

	header := tview.NewTextView()
	header.SetBorder(true)
	header.SetTitle(" envelope ")
	fmt.Fprintf(header, "file:   %s\nseed:   %d\nrounds: %d\nwidth:  %s\nlength: %d bytes",
		name, payload.Seed(), payload.Rounds(), widthName(payload.Width()), payload.Len())

	cipher := tview.NewTextView()
	cipher.SetBorder(true)
	cipher.SetTitle(" ciphertext ")
	cipher.SetText(cipherDump)

	plain := tview.NewTextView()
	plain.SetBorder(true)
	plain.SetTitle(" plaintext ")
	plain.SetText(text)

	columns := tview.NewFlex().
		AddItem(cipher, 0, 1, false).
		AddItem(plain, 0, 1, false)
	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(header, 7, 0, false).
		AddItem(columns, 0, 1, true)

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' {
			app.Stop()
			return nil
		}
		return event
	})
	return app.SetRoot(root, true).Run()
}

func widthName(width uint8) string {
	switch width {
	case obfs.WidthWide:
		return "wide (UTF-16)"
	default:
		return "narrow (byte)"
	}
}
