package binding

import (
	"fmt"

	"go.uber.org/zap"

	scryptbridge "github.com/fanatid/scrypt-bridge"
	"github.com/fanatid/scrypt-bridge/engine"
	"github.com/fanatid/scrypt-bridge/errors"
	"github.com/fanatid/scrypt-bridge/marshal"
	"github.com/fanatid/scrypt-bridge/params"
)

// Config controls how a Binding marshals its arguments.
type Config struct {
	// PasswordEncoding interprets text passwords. Raw mandates a buffer.
	PasswordEncoding marshal.Encoding

	// SaltEncoding interprets text salts. Raw mandates a buffer.
	SaltEncoding marshal.Encoding

	// KeyLen is the derived key length in bytes.
	KeyLen int

	// RejectEmptyPassword fails calls whose password marshals to zero bytes.
	RejectEmptyPassword bool
}

// DefaultConfig mirrors the defaults the original wrapper ships with.
func DefaultConfig() Config {
	return Config{
		PasswordEncoding:    marshal.UTF8,
		SaltEncoding:        marshal.UTF8,
		KeyLen:              64,
		RejectEmptyPassword: true,
	}
}

// Validate checks the config object; failures carry the config-object
// error category.
func (c Config) Validate() *errors.Value {
	if c.KeyLen < 1 {
		return errors.Make(errors.ConfigObject, "keyLen must be a positive integer")
	}
	return nil
}

// Binding is the call-site collaborator exposed to the host.
type Binding struct {
	cfg     Config
	engine  engine.Engine
	factory scryptbridge.BufferFactory
	logger  *zap.Logger
}

// Option customizes a Binding.
type Option func(*Binding)

// WithConfig replaces the default config.
func WithConfig(cfg Config) Option {
	return func(b *Binding) { b.cfg = cfg }
}

// WithLogger replaces the default no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Binding) { b.logger = l }
}

// New builds a Binding over a native engine and a host buffer factory.
// A config-object error is returned if the assembled config is invalid.
func New(eng engine.Engine, factory scryptbridge.BufferFactory, opts ...Option) (*Binding, *errors.Value) {
	b := &Binding{
		cfg:     DefaultConfig(),
		engine:  eng,
		factory: factory,
		logger:  Logger(),
	}
	for _, opt := range opts {
		opt(b)
	}

	if errVal := b.cfg.Validate(); errVal != nil {
		return nil, errVal
	}
	return b, nil
}

// KDF derives a key. The candidate must carry numeric N, r and p fields;
// password and salt are text or pre-existing buffers per the config's
// encodings. The result is a host-visible buffer holding the derived key,
// or a structured error value; never both.
func (b *Binding) KDF(candidate map[string]any, password, salt any) (scryptbridge.Buffer, *errors.Value) {
	p, err := params.Validate(candidate)
	if err != nil {
		b.logger.Debug("cost parameters rejected", zap.Error(err))
		return nil, errors.Make(errors.ParamObject, err.Error())
	}

	pw, err := marshal.Produce(password, "password", b.cfg.PasswordEncoding, b.cfg.RejectEmptyPassword, b.factory)
	if err != nil {
		b.logger.Debug("password rejected", zap.Error(err))
		return nil, errors.Make(errors.AddonArg, err.Error())
	}

	sl, err := marshal.Produce(salt, "salt", b.cfg.SaltEncoding, false, b.factory)
	if err != nil {
		b.logger.Debug("salt rejected", zap.Error(err))
		return nil, errors.Make(errors.AddonArg, err.Error())
	}

	key, code := b.engine.DeriveKey(pw.Bytes(), sl.Bytes(), p, b.cfg.KeyLen)
	if code != engine.StatusOK {
		b.logger.Debug("scrypt routine failed",
			zap.Int("scrypt_err_code", code),
			zap.String("scrypt_err_message", errors.Describe(code)))
		return nil, errors.MakeScrypt(code)
	}

	// The wrapper owns the key; zeroization rides its release hook.
	out, wrapErr := b.factory.Wrap(key, func() { zero(key) })
	if wrapErr != nil {
		zero(key)
		return nil, errors.Make(errors.AddonArg, fmt.Sprintf("derived key could not be wrapped: %s", wrapErr))
	}

	b.logger.Debug("key derived",
		zap.Int("N", p.N), zap.Int("r", p.R), zap.Int("p", p.P),
		zap.Int("key_len", out.Len()))
	return out, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
