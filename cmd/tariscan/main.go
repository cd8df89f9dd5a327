// Command tariscan finds one-sided payments to a wallet in a set of outputs.
//
// Usage:
//
//	tariscan keygen      [-words 24] [-mnemonic "..."] -password PW
//	tariscan scan        -password PW (-outputs FILE | -rpc-url URL -from H -to H)
//	tariscan ledger-scan -view HEX -spend HEX (-outputs FILE | -rpc-url URL ...)
//	tariscan list
//
// Every subcommand accepts -datadir and -network. Settings are read from
// DATADIR/config, then TARISCAN_* environment variables, then flags.
package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/bitfsorg/tariscan-go/binding"
	"github.com/bitfsorg/tariscan-go/config"
	"github.com/bitfsorg/tariscan-go/keys"
	"github.com/bitfsorg/tariscan-go/network"
	"github.com/bitfsorg/tariscan-go/scanner"
	"github.com/bitfsorg/tariscan-go/store"
	"github.com/bitfsorg/tariscan-go/wallet"
)

const (
	walletFile   = "wallet.enc"
	paymentsFile = "payments.db"
	envPassword  = "TARISCAN_PASSWORD"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, config.EnvMap(os.Environ()))
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, env map[string]string) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	var err error
	switch args[0] {
	case "keygen":
		err = cmdKeygen(args[1:], stdout, stderr, env)
	case "scan":
		err = cmdScan(ctx, args[1:], stdout, stderr, env)
	case "ledger-scan":
		err = cmdLedgerScan(ctx, args[1:], stdout, stderr, env)
	case "list":
		err = cmdList(args[1:], stdout, stderr, env)
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "tariscan: unknown command %q\n", args[0])
		usage(stderr)
		return 2
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "tariscan: %v\n", err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: tariscan <keygen|scan|ledger-scan|list> [flags]")
}

// common holds the flags shared by every subcommand.
type common struct {
	dataDir string
	network string
}

func newFlagSet(name string, stderr io.Writer, c *common) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&c.dataDir, "datadir", config.DefaultDataDir(), "data directory")
	fs.StringVar(&c.network, "network", "", "network name (overrides config)")
	return fs
}

// settings resolves the config file, environment and flags, in that order.
func (c *common) settings(env map[string]string) (config.Config, error) {
	cfg, err := config.LoadConfig(config.ConfigPath(c.dataDir))
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return cfg, err
	}
	cfg.DataDir = c.dataDir
	if cfg, err = config.ApplyEnv(cfg, env); err != nil {
		return cfg, err
	}
	if c.network != "" {
		cfg.Network = c.network
	}
	return cfg, config.ValidateConfig(cfg)
}

// logger returns the configured logger and a function that closes its file.
func logger(cfg config.Config, stderr io.Writer) (*slog.Logger, func(), error) {
	w := stderr
	closeFn := func() {}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}
	l, err := config.NewLogger(cfg, w)
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return l, closeFn, nil
}

func password(flagValue string, env map[string]string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if v := env[envPassword]; v != "" {
		return v, nil
	}
	return "", fmt.Errorf("a password is required (-password or %s)", envPassword)
}

// --- keygen ---

func cmdKeygen(args []string, stdout, stderr io.Writer, env map[string]string) error {
	var c common
	fs := newFlagSet("keygen", stderr, &c)
	words := fs.Int("words", 24, "mnemonic length: 12 or 24")
	mnemonic := fs.String("mnemonic", "", "restore from this mnemonic instead of generating one")
	passphrase := fs.String("passphrase", "", "optional BIP39 passphrase")
	pw := fs.String("password", "", "password protecting the seed file")
	force := fs.Bool("force", false, "overwrite an existing wallet")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.settings(env)
	if err != nil {
		return err
	}
	pass, err := password(*pw, env)
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.DataDir, walletFile)
	if _, err := os.Stat(path); err == nil && !*force {
		return fmt.Errorf("%s already exists (use -force to overwrite)", path)
	}

	generated := false
	if *mnemonic == "" {
		bits := wallet.Mnemonic24Words
		if *words == 12 {
			bits = wallet.Mnemonic12Words
		} else if *words != 24 {
			return wallet.ErrInvalidEntropy
		}
		if *mnemonic, err = wallet.GenerateMnemonic(bits); err != nil {
			return err
		}
		generated = true
	}

	seed, err := wallet.SeedFromMnemonic(*mnemonic, *passphrase)
	if err != nil {
		return err
	}
	defer keys.Wipe(seed)

	enc, err := wallet.EncryptSeed(seed, pass)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := os.WriteFile(path, enc, 0600); err != nil {
		return fmt.Errorf("write wallet: %w", err)
	}

	w, err := wallet.NewWallet(seed)
	if err != nil {
		return err
	}
	defer w.Zeroize()

	if generated {
		fmt.Fprintf(stdout, "mnemonic: %s\n", *mnemonic)
	}
	fmt.Fprintf(stdout, "view public key:  %s\n", w.ViewPublicKey().Hex())
	fmt.Fprintf(stdout, "spend public key: %s\n", w.SpendPublicKey().Hex())
	fmt.Fprintf(stdout, "wallet written to %s\n", path)
	return nil
}

// --- scan and ledger-scan ---

// sourceFlags selects where outputs come from.
type sourceFlags struct {
	outputs string
	rpc     network.RPCConfig
	from    uint64
	to      uint64
}

func (s *sourceFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&s.outputs, "outputs", "", "file of hex Borsh outputs, one per line")
	fs.StringVar(&s.rpc.URL, "rpc-url", "", "JSON-RPC endpoint serving get_outputs")
	fs.StringVar(&s.rpc.User, "rpc-user", "", "JSON-RPC user")
	fs.StringVar(&s.rpc.Password, "rpc-pass", "", "JSON-RPC password")
	fs.Uint64Var(&s.from, "from", 0, "first block height (RPC)")
	fs.Uint64Var(&s.to, "to", 0, "last block height, 0 for the chain tip (RPC)")
}

func (s *sourceFlags) source(cfg config.Config, env map[string]string) (network.OutputSource, error) {
	if s.outputs != "" {
		return &network.FileSource{Path: s.outputs}, nil
	}
	n, err := cfg.NetworkValue()
	if err != nil {
		return nil, err
	}
	rpcCfg, err := network.ResolveConfig(n, s.rpc, env)
	if err != nil {
		return nil, fmt.Errorf("no -outputs file given: %w", err)
	}
	return &network.RPCSource{Client: network.NewRPCClient(rpcCfg), FromHeight: s.from, ToHeight: s.to}, nil
}

func cmdScan(ctx context.Context, args []string, stdout, stderr io.Writer, env map[string]string) error {
	var c common
	var src sourceFlags
	fs := newFlagSet("scan", stderr, &c)
	src.register(fs)
	pw := fs.String("password", "", "password protecting the seed file")
	nScript := fs.Int("script-keys", 16, "number of plain one-sided script keys to try")
	secrets := fs.Bool("secrets", false, "print spending and script keys")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.settings(env)
	if err != nil {
		return err
	}
	pass, err := password(*pw, env)
	if err != nil {
		return err
	}

	enc, err := os.ReadFile(filepath.Join(cfg.DataDir, walletFile))
	if err != nil {
		return fmt.Errorf("read wallet: %w", err)
	}
	seed, err := wallet.DecryptSeed(enc, pass)
	if err != nil {
		return err
	}
	w, err := wallet.NewWallet(seed)
	keys.Wipe(seed)
	if err != nil {
		return err
	}
	defer w.Zeroize()

	km, err := w.SoftwareKeyMaterial(*nScript)
	if err != nil {
		return err
	}
	defer func() {
		for _, k := range km.KnownScriptKeys {
			k.Zeroize()
		}
	}()

	return scanAndStore(ctx, cfg, &src, km, *secrets, stdout, stderr, env)
}

func cmdLedgerScan(ctx context.Context, args []string, stdout, stderr io.Writer, env map[string]string) error {
	var c common
	var src sourceFlags
	fs := newFlagSet("ledger-scan", stderr, &c)
	src.register(fs)
	viewHex := fs.String("view", "", "private view key (hex)")
	spendHex := fs.String("spend", "", "public spend key (hex)")
	secrets := fs.Bool("secrets", false, "print spending keys")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := c.settings(env)
	if err != nil {
		return err
	}
	view, err := keys.PrivateKeyFromHex(*viewHex)
	if err != nil {
		return fmt.Errorf("-view: %w", err)
	}
	defer view.Zeroize()
	spend, err := keys.PublicKeyFromHex(*spendHex)
	if err != nil {
		return fmt.Errorf("-spend: %w", err)
	}

	km := scanner.LedgerKeys{View: view, SpendPublic: spend}
	return scanAndStore(ctx, cfg, &src, km, *secrets, stdout, stderr, env)
}

func scanAndStore(ctx context.Context, cfg config.Config, src *sourceFlags, km scanner.KeyMaterial, secrets bool, stdout, stderr io.Writer, env map[string]string) error {
	n, err := cfg.NetworkValue()
	if err != nil {
		return err
	}
	log, closeLog, err := logger(cfg, stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	outputs, err := src.source(cfg, env)
	if err != nil {
		return err
	}

	db, err := store.OpenBoltStore(filepath.Join(cfg.DataDir, paymentsFile))
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	s := scanner.New(scanner.WithNetwork(n), scanner.WithLogger(log), scanner.WithWorkers(cfg.Workers))
	results, err := s.ScanSource(ctx, outputs, km)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(stdout)
	for _, p := range scanner.Matches(results) {
		rec, err := store.NewRecord(p, n)
		if err != nil {
			p.Zeroize()
			return err
		}
		if err := db.Put(rec); err != nil && !errors.Is(err, store.ErrDuplicate) {
			p.Zeroize()
			return err
		}

		r := binding.FromPayment(p)
		if !secrets {
			r.SpendingKey, r.ScriptKey = "", ""
		}
		p.Zeroize()
		if err := enc.Encode(r); err != nil {
			return err
		}
	}

	if bad := scanner.InvalidInputs(results); len(bad) > 0 {
		log.Warn("outputs with invalid data were skipped", "count", len(bad))
	}
	return nil
}

// --- list ---

type listedRecord struct {
	Hash         string `json:"hash"`
	Network      string `json:"network"`
	OutputSource string `json:"output_source"`
	OutputType   string `json:"output_type"`
	Value        uint64 `json:"value"`
	Maturity     uint64 `json:"maturity"`
	PaymentID    string `json:"payment_id,omitempty"`
}

func cmdList(args []string, stdout, stderr io.Writer, env map[string]string) error {
	var c common
	fs := newFlagSet("list", stderr, &c)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := c.settings(env)
	if err != nil {
		return err
	}
	n, err := cfg.NetworkValue()
	if err != nil {
		return err
	}

	db, err := store.OpenBoltStore(filepath.Join(cfg.DataDir, paymentsFile))
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	records, err := db.List()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(stdout)
	for _, r := range records {
		if r.Network != n {
			continue
		}
		lr := listedRecord{
			Hash:         hex.EncodeToString(r.Hash),
			Network:      r.Network.String(),
			OutputSource: r.Source.String(),
			OutputType:   r.OutputType.String(),
			Value:        uint64(r.Value),
			Maturity:     r.Maturity,
		}
		if len(r.PaymentID) > 0 {
			lr.PaymentID = hex.EncodeToString(r.PaymentID)
		}
		if err := enc.Encode(lr); err != nil {
			return err
		}
	}

	total, err := db.TotalValue(n)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "total: %s (%s)\n", total.Minotari(), total)
	return nil
}
