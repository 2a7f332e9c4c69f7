package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pzverkov/mceliece-go/internal/constants"
	"github.com/pzverkov/mceliece-go/internal/drbg"
	"github.com/pzverkov/mceliece-go/pkg/mceliece"
)

func runGenKAT(paramSet string, count int, outDir string) {
	var sets []mceliece.Params
	if paramSet == "all" {
		sets = mceliece.AllParams()
	} else {
		p, err := mceliece.ParamsByName(paramSet)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: unknown parameter set %q\n", paramSet)
			os.Exit(1)
		}
		sets = []mceliece.Params{p}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, p := range sets {
		path := filepath.Join(outDir, p.Name+".rsp")
		if err := writeKATFile(path, p, count); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", p.Name, err)
			os.Exit(1)
		}
		fmt.Printf("✓ %s (%d vectors)\n", path, count)
	}
}

// writeKATFile produces a .rsp response file in the NIST format. Vector
// seeds come from a master DRBG with a fixed entropy input, so repeated
// runs produce identical files.
func writeKATFile(path string, p mceliece.Params, count int) error {
	entropy := make([]byte, constants.KATSeedSize)
	for i := range entropy {
		entropy[i] = byte(i)
	}
	master, err := drbg.New(entropy)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "# %s\n\n", p.Name)

	for i := 0; i < count; i++ {
		seed := make([]byte, constants.KATSeedSize)
		if _, err := master.Read(seed); err != nil {
			return err
		}

		rng, err := drbg.New(seed)
		if err != nil {
			return err
		}
		pk, sk, err := mceliece.GenerateKeyPair(p, rng)
		if err != nil {
			return err
		}
		ct, ss, err := mceliece.Encapsulate(pk, rng)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "count = %d\n", i)
		fmt.Fprintf(w, "seed = %s\n", hex.EncodeToString(seed))
		fmt.Fprintf(w, "pk = %s\n", hex.EncodeToString(pk.Bytes()))
		fmt.Fprintf(w, "sk = %s\n", hex.EncodeToString(sk.Bytes()))
		fmt.Fprintf(w, "ct = %s\n", hex.EncodeToString(ct))
		fmt.Fprintf(w, "ss = %s\n\n", hex.EncodeToString(ss))
	}

	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}
