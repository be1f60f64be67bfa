package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/eldtechnologies/graphmsg/internal/identity"
)

func main() {
	bits := flag.Int("bits", identity.DefaultRSABits, "RSA modulus size in bits")
	flag.Parse()

	keys, err := identity.GenerateKeyPair(*bits)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Key generation failed: %v\n", err)
		os.Exit(1)
	}

	rsaPriv, err := identity.EncodeRSAPrivateKeyPEM(keys.RSAKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Encoding RSA key failed: %v\n", err)
		os.Exit(1)
	}
	rsaPub, err := identity.EncodeRSAPublicKeyPEM(keys.RSAPublic())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Encoding RSA public key failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Ed25519 public key (base64):  %s\n", identity.EncodeSigningPublic(keys.SigningPublic()))
	fmt.Printf("Ed25519 private seed (base64): %s\n", identity.EncodeSigningSeed(keys.SigningKey))
	fmt.Printf("\n%s\n%s", rsaPub, rsaPriv)
}
