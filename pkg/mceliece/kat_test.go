package mceliece

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/pzverkov/mceliece-go/internal/drbg"
)

// katVector is one response-file entry: a 48-byte DRBG seed plus the
// expected key pair, ciphertext, and shared secret.
type katVector struct {
	count int
	seed  []byte
	pk    []byte
	sk    []byte
	ct    []byte
	ss    []byte
}

// parseKATFile reads the NIST .rsp format: blank-line separated blocks of
// "name = hexvalue" lines, with # comments ignored.
func parseKATFile(t *testing.T, path string) []katVector {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()

	var vectors []katVector
	cur := katVector{count: -1}
	flush := func() {
		if cur.count >= 0 {
			vectors = append(vectors, cur)
		}
		cur = katVector{count: -1}
	}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 1<<20), 1<<24)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			flush()
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			t.Fatalf("%s: malformed line %q", path, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if key == "count" {
			n, err := strconv.Atoi(value)
			if err != nil {
				t.Fatalf("%s: bad count %q", path, value)
			}
			cur.count = n
			continue
		}
		raw, err := hex.DecodeString(value)
		if err != nil {
			t.Fatalf("%s: bad hex for %s: %v", path, key, err)
		}
		switch key {
		case "seed":
			cur.seed = raw
		case "pk":
			cur.pk = raw
		case "sk":
			cur.sk = raw
		case "ct":
			cur.ct = raw
		case "ss":
			cur.ss = raw
		}
	}
	flush()
	if err := sc.Err(); err != nil {
		t.Fatalf("scan %s: %v", path, err)
	}
	return vectors
}

// TestKnownAnswerVectors replays testdata/<paramset>.rsp files. Vector
// files are generated with the gen-kat command; the test is skipped when
// none are present.
func TestKnownAnswerVectors(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.rsp"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Skip("no KAT vector files under testdata")
	}

	for _, path := range files {
		name := strings.TrimSuffix(filepath.Base(path), ".rsp")
		t.Run(name, func(t *testing.T) {
			p, err := ParamsByName(name)
			if err != nil {
				t.Fatalf("unknown parameter set %q: %v", name, err)
			}
			for _, v := range parseKATFile(t, path) {
				rng, err := drbg.New(v.seed)
				if err != nil {
					t.Fatalf("count %d: drbg: %v", v.count, err)
				}

				pk, sk, err := GenerateKeyPair(p, rng)
				if err != nil {
					t.Fatalf("count %d: GenerateKeyPair: %v", v.count, err)
				}
				if !bytes.Equal(pk.Bytes(), v.pk) {
					t.Fatalf("count %d: public key mismatch", v.count)
				}
				if !bytes.Equal(sk.Bytes(), v.sk) {
					t.Fatalf("count %d: private key mismatch", v.count)
				}

				ct, ss, err := Encapsulate(pk, rng)
				if err != nil {
					t.Fatalf("count %d: Encapsulate: %v", v.count, err)
				}
				if !bytes.Equal(ct, v.ct) {
					t.Fatalf("count %d: ciphertext mismatch", v.count)
				}
				if !bytes.Equal(ss, v.ss) {
					t.Fatalf("count %d: shared secret mismatch", v.count)
				}

				got, err := Decapsulate(sk, ct)
				if err != nil {
					t.Fatalf("count %d: Decapsulate: %v", v.count, err)
				}
				if !bytes.Equal(got, v.ss) {
					t.Fatalf("count %d: decapsulated secret mismatch", v.count)
				}
			}
		})
	}
}
