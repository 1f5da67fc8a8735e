package tmpl

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"github.com/saylorsolutions/xorstr/pkg/obfs"
)

var (
	//go:embed xor_embed.go.tmpl
	tmplText     string
	tmplTemplate = template.Must(template.New("template").Parse(tmplText))
)

// ErrBadManifest indicates that the input manifest can't be parsed into string entries.
var ErrBadManifest = errors.New("malformed string manifest")

// Entry is one rendered manifest entry: the ciphertext literal and the accessor emitted for it.
type Entry struct {
	Name       string
	MethodName string
	DataString string
}

type manifestEntry struct {
	name  string
	value string
}

type Params struct {
	Package string
	Exposed bool
	Wide    bool
	Seed    uint64
	Rounds  int
	Key     byte
	Entries []Entry

	manifest       []manifestEntry
	targetFileName string
}

// ParamOpt operates on Params in a standard and predictable way, and is used in GenerateFile.
// If any ParamOpt returns an error, then file generation ceases and the error is returned.
type ParamOpt = func(params *Params) error

// Seed overrides the key schedule seed for this generation run.
// The seed must not vary within a build: every generated file sharing a binary should use the same one.
func Seed(seed uint64) ParamOpt {
	return func(params *Params) error {
		params.Seed = seed
		return nil
	}
}

// Rounds overrides the generator round count used to derive the key.
func Rounds(rounds int) ParamOpt {
	return func(params *Params) error {
		if rounds < 1 || rounds > 255 {
			return fmt.Errorf("rounds %d outside of [1, 255]", rounds)
		}
		params.Rounds = rounds
		return nil
	}
}

// WideChars indicates that entries should be encrypted as UTF-16 code units instead of bytes.
func WideChars(val ...bool) ParamOpt {
	return func(params *Params) error {
		if len(val) > 0 {
			params.Wide = val[0]
			return nil
		}
		params.Wide = true
		return nil
	}
}

// ExposeFunctions indicates that generated accessors should be exposed.
func ExposeFunctions(val ...bool) ParamOpt {
	return func(params *Params) error {
		if len(val) > 0 {
			params.Exposed = val[0]
			return nil
		}
		params.Exposed = true
		return nil
	}
}

// PackageName specifies the package name of the generated file.
// This is useful for cases where the expected package name doesn't match the name of the containing directory.
func PackageName(name string) ParamOpt {
	name = strings.TrimSpace(name)
	return func(params *Params) error {
		if len(name) == 0 {
			return nil
		}
		params.Package = name
		return nil
	}
}

// GenerateFile will generate a file embedding every string named in the input manifest, encrypted with the key derived from the configured seed.
// Various generation options may be passed as zero or more ParamOpt.
func GenerateFile(input string, opts ...ParamOpt) error {
	params := &Params{
		Seed:   obfs.DefaultSeed,
		Rounds: obfs.DefaultRounds,
	}
	if err := populateContextData(params); err != nil {
		return err
	}
	if err := populateManifest(params, input); err != nil {
		return err
	}

	for _, opt := range opts {
		if err := opt(params); err != nil {
			return err
		}
	}

	if err := screenEntries(params); err != nil {
		return err
	}

	out, err := os.Create(params.targetFileName + ".go")
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	if err := tmplTemplate.Execute(out, params); err != nil {
		return err
	}
	return nil
}

func populateContextData(params *Params) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	params.Package = filepath.Base(cwd)
	return nil
}

var (
	fileCleansePattern = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	identPattern       = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)
)

func populateManifest(params *Params, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	var (
		scanner = bufio.NewScanner(f)
		lineNum int
		seen    = map[string]bool{}
	)
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}
		name, value, found := strings.Cut(line, "=")
		if !found {
			return fmt.Errorf("%w: line %d has no '=' separator", ErrBadManifest, lineNum)
		}
		name = strings.TrimSpace(name)
		if !identPattern.MatchString(name) {
			return fmt.Errorf("%w: line %d: %q is not a valid Go identifier", ErrBadManifest, lineNum, name)
		}
		if seen[name] {
			return fmt.Errorf("%w: line %d: duplicate entry %q", ErrBadManifest, lineNum, name)
		}
		seen[name] = true
		value = strings.TrimSpace(value)
		if strings.HasPrefix(value, `"`) {
			unquoted, err := strconv.Unquote(value)
			if err != nil {
				return fmt.Errorf("%w: line %d: %v", ErrBadManifest, lineNum, err)
			}
			value = unquoted
		}
		params.manifest = append(params.manifest, manifestEntry{name: name, value: value})
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	if len(params.manifest) == 0 {
		return fmt.Errorf("%w: no entries found in %s", ErrBadManifest, file)
	}

	_, fname := filepath.Split(file)
	params.targetFileName = fileCleansePattern.ReplaceAllString(fname, "_")
	return nil
}

func screenEntries(params *Params) error {
	params.Key = byte(obfs.InRange(params.Seed, params.Rounds, 0, 255))
	methods := map[string]string{}
	for _, m := range params.manifest {
		method := m.name
		if params.Exposed {
			method = unicap(method)
		}
		// entry names are unique, but unicapping can collapse two of them onto one accessor
		if prev, ok := methods[method]; ok {
			return fmt.Errorf("%w: entries %q and %q both generate accessor %q", ErrBadManifest, prev, m.name, method)
		}
		methods[method] = m.name
		var data string
		if params.Wide {
			data = fmt.Sprintf("%#v", obfs.NewWideString(m.value, params.Key).Ciphertext())
		} else {
			data = fmt.Sprintf("%#v", obfs.NewString(m.value, params.Key).Ciphertext())
		}
		params.Entries = append(params.Entries, Entry{
			Name:       m.name,
			MethodName: method,
			DataString: data,
		})
	}
	return nil
}

func unicap(s string) string {
	runes := []rune(s)
	switch len(runes) {
	case 0:
		return ""
	case 1:
		return string(unicode.ToUpper(runes[0]))
	default:
		return string(append([]rune{unicode.ToUpper(runes[0])}, runes[1:]...))
	}
}
