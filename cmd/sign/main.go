package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/eldtechnologies/graphmsg/internal/identity"
	"github.com/eldtechnologies/graphmsg/internal/transform"
)

func main() {
	alg := flag.String("alg", transform.AlgEd25519, "Signature algorithm: ed25519 or SHA256withRSA")
	seedB64 := flag.String("key", "", "Base64-encoded Ed25519 private seed (for ed25519)")
	rsaKeyFile := flag.String("rsa-key", "", "PEM file holding the RSA private key (for SHA256withRSA)")
	bodyFile := flag.String("body", "", "File containing message body (or use stdin)")
	originalFile := flag.String("original", "", "File containing the original body when signing a confirmation")
	flag.Parse()

	if !transform.SupportsSignature(*alg) || (*seedB64 == "" && *rsaKeyFile == "") {
		fmt.Fprintln(os.Stderr, "Usage: sign -alg <ed25519|SHA256withRSA> (-key <seed-base64> | -rsa-key <pem-file>) [-body <file>] [-original <file>]")
		fmt.Fprintln(os.Stderr, "  Reads body from stdin if -body not specified")
		os.Exit(1)
	}

	var keys identity.KeyPair
	if *seedB64 != "" {
		key, err := identity.DecodeSigningSeed(*seedB64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid private key: %v\n", err)
			os.Exit(1)
		}
		keys.SigningKey = key
	}
	if *rsaKeyFile != "" {
		pemBytes, err := os.ReadFile(*rsaKeyFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read RSA key: %v\n", err)
			os.Exit(1)
		}
		key, err := identity.DecodeRSAPrivateKeyPEM(pemBytes)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid RSA key: %v\n", err)
			os.Exit(1)
		}
		keys.RSAKey = key
	}

	// Read body
	var body []byte
	var err error
	if *bodyFile != "" {
		body, err = os.ReadFile(*bodyFile)
	} else {
		body, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read body: %v\n", err)
		os.Exit(1)
	}

	signature, err := transform.Sign(*alg, keys, body)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Signing failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Metadata: %s\n", *alg)
	fmt.Printf("Body-Digest: %s\n", transform.Digest(string(body)))
	fmt.Printf("Signature: %s\n", base64.StdEncoding.EncodeToString(signature))

	if *originalFile == "" {
		return
	}

	// Confirmation: sign the digest of the original body as well
	original, err := os.ReadFile(*originalFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read original: %v\n", err)
		os.Exit(1)
	}
	hash := transform.Digest(string(original))
	originalSig, err := transform.Sign(*alg, keys, []byte(hash))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Signing original failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Original-Hash: %s\n", hash)
	fmt.Printf("Original-Signature: %s\n", base64.StdEncoding.EncodeToString(originalSig))
}
