// Package scanner decides whether a transaction output is a one-sided payment
// to a wallet and, if so, recovers its value, mask and spending material.
//
// Two entry points cover the two kinds of wallet:
//
//   - ScanForOneSidedPayment: a software wallet holding its secret key.
//     Recovers the script private key.
//   - ScanForOneSidedPaymentLedger: a hardware wallet exposing only its view
//     key and public spend key. Recovers a SpendHint; never a script private
//     key.
//
// A scan returns exactly one of: a payment (the output is ours), (nil, nil)
// (not ours), or an error wrapping ErrInvalidInput (the inputs are unusable).
// Scans are stateless and safe to run concurrently.
package scanner

import (
	"log/slog"
	"runtime"

	"github.com/bitfsorg/tariscan-go/keys"
	"github.com/bitfsorg/tariscan-go/network"
	"github.com/bitfsorg/tariscan-go/transaction"
)

// Scanner scans outputs for one network. The zero value is not usable; use New.
type Scanner struct {
	network network.Network
	logger  *slog.Logger
	workers int
	factory *keys.CommitmentFactory
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithNetwork sets the network whose consensus hash identifies outputs.
func WithNetwork(n network.Network) Option {
	return func(s *Scanner) { s.network = n }
}

// WithLogger sets the logger. Secrets are never logged.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scanner) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWorkers bounds the number of outputs ScanBatch scans at once.
func WithWorkers(n int) Option {
	return func(s *Scanner) {
		if n > 0 {
			s.workers = n
		}
	}
}

// New returns a Scanner. Defaults: MainNet, a discarding logger and one
// worker per CPU.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		network: network.MainNet,
		logger:  slog.New(slog.DiscardHandler),
		workers: runtime.NumCPU(),
		factory: keys.DefaultCommitmentFactory(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Network returns the configured network.
func (s *Scanner) Network() network.Network {
	return s.network
}

// ScanForOneSidedPayment scans out for a software wallet with secret walletSK.
// knownScriptKeys are the private keys behind plain one-sided script keys the
// wallet has handed out; stealth outputs need none.
func (s *Scanner) ScanForOneSidedPayment(out *transaction.TransactionOutput, walletSK *keys.PrivateKey, knownScriptKeys ...*keys.PrivateKey) (*RecoveredPayment, error) {
	return s.Scan(out, SoftwareKeys{Secret: walletSK, KnownScriptKeys: knownScriptKeys})
}

// ScanForOneSidedPaymentLedger scans out for a hardware wallet exposing its
// view key and public spend key. Only stealth outputs can match.
func (s *Scanner) ScanForOneSidedPaymentLedger(out *transaction.TransactionOutput, viewSK *keys.PrivateKey, spendPK *keys.PublicKey) (*RecoveredPayment, error) {
	return s.Scan(out, LedgerKeys{View: viewSK, SpendPublic: spendPK})
}

var defaultScanner = New()

// ScanForOneSidedPayment scans out on MainNet. See Scanner.ScanForOneSidedPayment.
func ScanForOneSidedPayment(out *transaction.TransactionOutput, walletSK *keys.PrivateKey, knownScriptKeys ...*keys.PrivateKey) (*RecoveredPayment, error) {
	return defaultScanner.ScanForOneSidedPayment(out, walletSK, knownScriptKeys...)
}

// ScanForOneSidedPaymentLedger scans out on MainNet. See
// Scanner.ScanForOneSidedPaymentLedger.
func ScanForOneSidedPaymentLedger(out *transaction.TransactionOutput, viewSK *keys.PrivateKey, spendPK *keys.PublicKey) (*RecoveredPayment, error) {
	return defaultScanner.ScanForOneSidedPaymentLedger(out, viewSK, spendPK)
}
