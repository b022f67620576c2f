package main

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/lunfardo314/easyfl"
	"github.com/lunfardo314/easysh/dispatch"
	"github.com/lunfardo314/easysh/shortcut"
	"github.com/lunfardo314/unitrie/common"
	"golang.org/x/crypto/blake2b"
)

// commandSource declares the demo command set: descriptor groups bound
// by name to the implementations below.
const commandSource = `
// greetings and type exercises
s     : greet greetAgain read kvget kvdel expr,
ss    : greet2 kvput,
qq    : sum,
wFs   : mix,
tt    : flags,
c     : chr,
x     : big,
v     : reset keygen kvlist,
// files, digests, signatures
sqb   : write,
h     : blake2b sign,
hhh   : verify
`

const shortcutSource = `
+ : { l : listcmds,
      h : helpcmd,
      e : echocmd
    }
`

type kvStore interface {
	common.KVReader
	common.KVWriter
	common.Traversable
}

// demoState carries the mutable pieces behind the demo command set:
// the in-memory key/value store and the current signature key pair.
type demoState struct {
	out  io.Writer
	kv   kvStore
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

func newDemoState(out io.Writer) *demoState {
	return &demoState{
		out: out,
		kv:  common.NewInMemoryKVStore(),
	}
}

func (st *demoState) printf(format string, args ...interface{}) {
	fmt.Fprintf(st.out, format+"\n", args...)
}

func (st *demoState) implementations() map[string]interface{} {
	return map[string]interface{}{
		"greet":      st.greet,
		"greetAgain": st.greetAgain,
		"greet2":     st.greet2,
		"sum":        st.sum,
		"mix":        st.mix,
		"flags":      st.flagsDemo,
		"chr":        st.chr,
		"big":        st.big,
		"reset":      st.reset,
		"write":      st.writeFile,
		"read":       st.readFile,
		"blake2b":    st.digest,
		"keygen":     st.keygen,
		"sign":       st.sign,
		"verify":     st.verify,
		"kvput":      st.kvput,
		"kvget":      st.kvget,
		"kvdel":      st.kvdel,
		"kvlist":     st.kvlist,
		"expr":       st.expr,
	}
}

func (st *demoState) shortcuts(reg *dispatch.Registry) map[string]shortcut.Handler {
	return map[string]shortcut.Handler{
		"listcmds": func(string) {
			for _, fi := range reg.Functions() {
				st.printf("%-10s %s", fi.Name, fi.Descriptor)
			}
		},
		"helpcmd": func(string) {
			st.printf("%s", dispatch.DescriptorHelp())
		},
		"echocmd": func(param string) {
			st.printf("echo: '%s'", param)
		},
	}
}

func (st *demoState) greet(name string) {
	st.printf("Hello, %s!", name)
}

func (st *demoState) greetAgain(name string) {
	st.printf("Welcome again, %s!", name)
}

func (st *demoState) greet2(s1, s2 string) {
	st.printf("%s - %s", s1, s2)
}

func (st *demoState) sum(a, b uint64) {
	st.printf("%d + %d = %d", a, b, a+b)
}

func (st *demoState) mix(w uint16, f float64, s string) {
	st.printf("mix: w=%d, f=%g, s=%s", w, f, s)
}

func (st *demoState) flagsDemo(a, b bool) {
	st.printf("flags: %v %v", a, b)
}

func (st *demoState) chr(c rune) {
	st.printf("char %c (U+%04X)", c, c)
}

func (st *demoState) big(x dispatch.Uint128) {
	st.printf("uint128: %s (hi=%d, lo=%d)", x.String(), x.Hi, x.Lo)
}

func (st *demoState) reset() {
	st.kv = common.NewInMemoryKVStore()
	st.priv = nil
	st.pub = nil
	st.printf("state reset")
}

const maxWriteSize = 1 << 20

func (st *demoState) writeFile(path string, n uint64, fill uint8) {
	easyfl.Assert(n <= maxWriteSize, "write: too many bytes (%d)", n)
	err := os.WriteFile(path, bytes.Repeat([]byte{fill}, int(n)), 0o644)
	easyfl.AssertNoError(err)
	st.printf("%s: %d byte(s) of 0x%02x written", path, n, fill)
}

func (st *demoState) readFile(path string) {
	data, err := os.ReadFile(path)
	easyfl.AssertNoError(err)
	head := data
	if len(head) > 16 {
		head = head[:16]
	}
	st.printf("%s: %d byte(s), head %s", path, len(data), hex.EncodeToString(head))
}

func (st *demoState) digest(data []byte) {
	h := blake2b.Sum256(data)
	st.printf("blake2b-256: %s", hex.EncodeToString(h[:]))
}

func (st *demoState) keygen() {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	easyfl.AssertNoError(err)
	st.pub = pub
	st.priv = priv
	st.printf("ed25519 public key: %s", hex.EncodeToString(pub))
}

func (st *demoState) sign(msg []byte) {
	easyfl.Assert(st.priv != nil, "sign: no key pair, run 'keygen' first")
	sig := ed25519.Sign(st.priv, msg)
	st.printf("signature: %s", hex.EncodeToString(sig))
}

func (st *demoState) verify(msg, sig, pub []byte) {
	easyfl.Assert(len(pub) == ed25519.PublicKeySize, "verify: wrong public key size %d", len(pub))
	easyfl.Assert(len(sig) == ed25519.SignatureSize, "verify: wrong signature size %d", len(sig))
	if ed25519.Verify(ed25519.PublicKey(pub), msg, sig) {
		st.printf("signature VALID")
	} else {
		st.printf("signature INVALID")
	}
}

func (st *demoState) kvput(k, v string) {
	st.kv.Set([]byte(k), []byte(v))
	st.printf("[kv] %s = %s", k, v)
}

func (st *demoState) kvget(k string) {
	if !st.kv.Has([]byte(k)) {
		st.printf("[kv] %s: not found", k)
		return
	}
	st.printf("[kv] %s = %s", k, string(st.kv.Get([]byte(k))))
}

func (st *demoState) kvdel(k string) {
	st.kv.Set([]byte(k), nil)
	st.printf("[kv] %s deleted", k)
}

func (st *demoState) kvlist() {
	n := 0
	st.kv.Iterator(nil).Iterate(func(k, v []byte) bool {
		st.printf("[kv] %s = %s", string(k), string(v))
		n++
		return true
	})
	st.printf("[kv] %d key(s)", n)
}

func (st *demoState) expr(src string) {
	ret, err := easyfl.EvalFromSource(nil, src)
	easyfl.AssertNoError(err)
	st.printf("%s -> 0x%s", src, hex.EncodeToString(ret))
}
