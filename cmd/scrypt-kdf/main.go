package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/fanatid/scrypt-bridge/binding"
	"github.com/fanatid/scrypt-bridge/engine"
	scrypterrors "github.com/fanatid/scrypt-bridge/errors"
	"github.com/fanatid/scrypt-bridge/hostlocal"
	"github.com/fanatid/scrypt-bridge/marshal"
)

func main() {
	var (
		nFlag       = flag.Int("N", 16384, "work factor (conventionally a power of two)")
		rFlag       = flag.Int("r", 8, "block size")
		pFlag       = flag.Int("p", 1, "parallelization")
		keyLen      = flag.Int("keylen", 64, "derived key length in bytes")
		salt        = flag.String("salt", "", "salt value (random when omitted)")
		saltEnc     = flag.String("salt-encoding", "utf8", "salt encoding (utf8, hex, base64, ascii, binary, ucs2)")
		saltLen     = flag.Int("salt-len", 32, "random salt length when -salt is omitted")
		passEnc     = flag.String("password-encoding", "utf8", "password encoding")
		maxMem      = flag.Uint64("maxmem", 0, "memory bound in bytes for the derivation (0 = unbounded)")
		verbose     = flag.Bool("v", false, "verbose logging")
		interactive = flag.Bool("i", false, "interactive mode with TUI")
	)
	flag.Parse()

	if *interactive {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	err := run(runConfig{
		n: *nFlag, r: *rFlag, p: *pFlag,
		keyLen:  *keyLen,
		salt:    *salt,
		saltEnc: *saltEnc,
		saltLen: *saltLen,
		passEnc: *passEnc,
		maxMem:  *maxMem,
		verbose: *verbose,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type runConfig struct {
	salt    string
	saltEnc string
	passEnc string
	n       int
	r       int
	p       int
	keyLen  int
	saltLen int
	maxMem  uint64
	verbose bool
}

func run(rc runConfig) error {
	logger := zap.NewNop()
	if rc.verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		defer logger.Sync()
	}

	passwordEnc, err := marshal.ParseEncoding(rc.passEnc)
	if err != nil {
		return err
	}
	saltEnc, err := marshal.ParseEncoding(rc.saltEnc)
	if err != nil {
		return err
	}

	table := hostlocal.NewTable()
	defer table.Close()

	b, errVal := binding.New(
		&engine.Scrypt{MaxMem: rc.maxMem},
		table.Factory(),
		binding.WithConfig(binding.Config{
			PasswordEncoding:    passwordEnc,
			SaltEncoding:        saltEnc,
			KeyLen:              rc.keyLen,
			RejectEmptyPassword: true,
		}),
		binding.WithLogger(logger),
	)
	if errVal != nil {
		return wireError(errVal)
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	var saltArg any
	if rc.salt != "" {
		saltArg = rc.salt
	} else {
		raw, code := engine.RandomSalt(rc.saltLen)
		if code != engine.StatusOK {
			return wireError(scrypterrors.MakeScrypt(code))
		}
		saltArg = raw
	}

	key, errVal := b.KDF(map[string]any{"N": rc.n, "r": rc.r, "p": rc.p}, password, saltArg)
	if errVal != nil {
		return wireError(errVal)
	}

	if raw, ok := saltArg.([]byte); ok {
		fmt.Printf("salt: %s\n", hex.EncodeToString(raw))
	}
	fmt.Printf("key:  %s\n", hex.EncodeToString(key.Bytes()))
	return nil
}

// wireError renders a structured error value in its wire shape.
func wireError(v *scrypterrors.Value) error {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	return fmt.Errorf("%s", data)
}

// readPassword reads without echo when stdin is a terminal and falls back
// to a plain line read when input is piped.
func readPassword(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, prompt)
		password, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		return password, err
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return nil, fmt.Errorf("read password: %w", err)
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}
