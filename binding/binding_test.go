package binding

import (
	"testing"

	"github.com/fanatid/scrypt-bridge/engine"
	"github.com/fanatid/scrypt-bridge/errors"
	"github.com/fanatid/scrypt-bridge/hostlocal"
	"github.com/fanatid/scrypt-bridge/marshal"
	"github.com/fanatid/scrypt-bridge/params"
)

// fakeEngine reports a fixed status code and counts invocations.
type fakeEngine struct {
	code  int
	key   []byte
	calls int
}

func (f *fakeEngine) DeriveKey(password, salt []byte, p params.Params, keyLen int) ([]byte, int) {
	f.calls++
	if f.code != engine.StatusOK {
		return nil, f.code
	}
	return f.key, engine.StatusOK
}

func goodCandidate() map[string]any {
	return map[string]any{"N": 16384, "r": 8, "p": 1}
}

func newTestBinding(t *testing.T, eng engine.Engine, opts ...Option) (*Binding, *hostlocal.Table) {
	t.Helper()
	table := hostlocal.NewTable()
	t.Cleanup(func() { table.Close() })

	b, errVal := New(eng, table.Factory(), opts...)
	if errVal != nil {
		t.Fatalf("New() error = %v", errVal)
	}
	return b, table
}

func TestKDF_EndToEnd(t *testing.T) {
	// candidate {N:16384,r:8,p:1}, password "hunter2" under UTF-8, then a
	// simulated native failure with code 11.
	eng := &fakeEngine{code: engine.StatusBadPassword}
	b, _ := newTestBinding(t, eng)

	_, errVal := b.KDF(goodCandidate(), "hunter2", "salty")
	if errVal == nil {
		t.Fatal("KDF() succeeded, want native failure")
	}
	if errVal.Code != int(errors.Scrypt) {
		t.Errorf("Code = %d, want %d", errVal.Code, errors.Scrypt)
	}
	if errVal.Message != "Scrypt error" {
		t.Errorf("Message = %q, want %q", errVal.Message, "Scrypt error")
	}
	if errVal.ScryptCode != 11 {
		t.Errorf("ScryptCode = %d, want 11", errVal.ScryptCode)
	}
	if errVal.ScryptMessage != "password is incorrect" {
		t.Errorf("ScryptMessage = %q, want %q", errVal.ScryptMessage, "password is incorrect")
	}
	if eng.calls != 1 {
		t.Errorf("engine invoked %d times, want 1", eng.calls)
	}
}

func TestKDF_Success(t *testing.T) {
	b, table := newTestBinding(t, &engine.Scrypt{}, WithConfig(Config{
		PasswordEncoding:    marshal.UTF8,
		SaltEncoding:        marshal.UTF8,
		KeyLen:              32,
		RejectEmptyPassword: true,
	}))

	key, errVal := b.KDF(map[string]any{"N": 16, "r": 8, "p": 1}, "hunter2", "salty")
	if errVal != nil {
		t.Fatalf("KDF() error = %v", errVal)
	}
	if key.Len() != 32 {
		t.Errorf("key length = %d, want 32", key.Len())
	}

	// password, salt and derived key wrappers are all live in the host table.
	if table.Len() != 3 {
		t.Errorf("table.Len() = %d, want 3", table.Len())
	}

	// Host reclamation zeroes the derived key storage.
	raw := key.Bytes()
	table.Remove(key.(*hostlocal.Buffer).Handle())
	for i, c := range raw {
		if c != 0 {
			t.Errorf("key byte %d = %#x after reclamation, want 0", i, c)
			break
		}
	}
}

func TestKDF_ParamFailureShortCircuits(t *testing.T) {
	eng := &fakeEngine{code: engine.StatusOK, key: []byte("k")}
	b, table := newTestBinding(t, eng)

	_, errVal := b.KDF(map[string]any{"N": 16384, "r": 8}, "hunter2", "salty")
	if errVal == nil {
		t.Fatal("KDF() succeeded with missing p")
	}
	if errVal.Code != int(errors.ParamObject) {
		t.Errorf("Code = %d, want %d", errVal.Code, errors.ParamObject)
	}
	if want := "Scrypt parameter object error: p value is not present"; errVal.Message != want {
		t.Errorf("Message = %q, want %q", errVal.Message, want)
	}
	if eng.calls != 0 {
		t.Errorf("engine invoked %d times before validation, want 0", eng.calls)
	}
	if table.Len() != 0 {
		t.Errorf("table.Len() = %d, want 0 (no marshaling after validation failure)", table.Len())
	}
}

func TestKDF_MarshalFailureShortCircuits(t *testing.T) {
	eng := &fakeEngine{code: engine.StatusOK, key: []byte("k")}
	b, _ := newTestBinding(t, eng)

	tests := []struct {
		name     string
		password any
		salt     any
		wantMsg  string
	}{
		{
			name:     "password wrong type",
			password: 42,
			salt:     "salty",
			wantMsg:  "Module addon argument error: password must be a buffer or string",
		},
		{
			name:     "password empty",
			password: "",
			salt:     "salty",
			wantMsg:  "Module addon argument error: password cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng.calls = 0
			_, errVal := b.KDF(goodCandidate(), tt.password, tt.salt)
			if errVal == nil {
				t.Fatal("KDF() succeeded")
			}
			if errVal.Code != int(errors.AddonArg) {
				t.Errorf("Code = %d, want %d", errVal.Code, errors.AddonArg)
			}
			if errVal.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", errVal.Message, tt.wantMsg)
			}
			if eng.calls != 0 {
				t.Errorf("engine invoked %d times after marshal failure, want 0", eng.calls)
			}
		})
	}
}

func TestKDF_RawEncodingMandatesBuffer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SaltEncoding = marshal.Raw
	b, _ := newTestBinding(t, &fakeEngine{code: engine.StatusOK, key: []byte("k")}, WithConfig(cfg))

	_, errVal := b.KDF(goodCandidate(), "hunter2", "text salt")
	if errVal == nil {
		t.Fatal("KDF() accepted text salt with raw encoding")
	}
	if want := "Module addon argument error: salt must be a buffer as specified by config"; errVal.Message != want {
		t.Errorf("Message = %q, want %q", errVal.Message, want)
	}

	// A pre-existing raw salt passes.
	key, errVal := b.KDF(goodCandidate(), "hunter2", []byte("raw salt"))
	if errVal != nil {
		t.Fatalf("KDF() error = %v", errVal)
	}
	if key.Len() == 0 {
		t.Error("empty derived key")
	}
}

func TestNew_ConfigValidation(t *testing.T) {
	table := hostlocal.NewTable()
	defer table.Close()

	_, errVal := New(&engine.Scrypt{}, table.Factory(), WithConfig(Config{KeyLen: 0}))
	if errVal == nil {
		t.Fatal("New() accepted zero keyLen")
	}
	if errVal.Code != int(errors.ConfigObject) {
		t.Errorf("Code = %d, want %d", errVal.Code, errors.ConfigObject)
	}
	if want := "Scrypt config object error: keyLen must be a positive integer"; errVal.Message != want {
		t.Errorf("Message = %q, want %q", errVal.Message, want)
	}
}
