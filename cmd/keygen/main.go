package main

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"aidanwoods.dev/go-paseto"
)

// Generates the PASETO v4 key pair the API needs at startup. The output
// pastes directly into a .env file.
func main() {
	secretKey := paseto.NewV4AsymmetricSecretKey()
	publicKey := secretKey.Public()

	privateKeyBase64 := base64.StdEncoding.EncodeToString(secretKey.ExportBytes())
	publicKeyBase64 := base64.StdEncoding.EncodeToString(publicKey.ExportBytes())

	fmt.Printf("Generated PASETO v4 key pair:\n\n")
	fmt.Printf("PASETO_PRIVATE_KEY=%s\n", privateKeyBase64)
	fmt.Printf("PASETO_PUBLIC_KEY=%s\n", publicKeyBase64)

	if len(os.Args) > 1 && os.Args[1] == "--update-env" {
		if err := updateEnvFile(".env", privateKeyBase64, publicKeyBase64); err != nil {
			fmt.Fprintf(os.Stderr, "failed to update .env: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("\nUpdated .env with the new keys")
	}
}

func updateEnvFile(path, privateKey, publicKey string) error {
	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	updated := updateEnvContent(string(content), privateKey, publicKey)
	return os.WriteFile(path, []byte(updated), 0o644)
}

// updateEnvContent rewrites the two key lines, appending them when absent.
func updateEnvContent(content, privateKey, publicKey string) string {
	var (
		out          strings.Builder
		foundPrivate bool
		foundPublic  bool
	)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "PASETO_PRIVATE_KEY"):
			fmt.Fprintf(&out, "PASETO_PRIVATE_KEY=%s\n", privateKey)
			foundPrivate = true
		case strings.HasPrefix(line, "PASETO_PUBLIC_KEY"):
			fmt.Fprintf(&out, "PASETO_PUBLIC_KEY=%s\n", publicKey)
			foundPublic = true
		case line == "" && content == "":
		default:
			out.WriteString(line + "\n")
		}
	}

	if !foundPrivate {
		fmt.Fprintf(&out, "PASETO_PRIVATE_KEY=%s\n", privateKey)
	}
	if !foundPublic {
		fmt.Fprintf(&out, "PASETO_PUBLIC_KEY=%s\n", publicKey)
	}

	return out.String()
}
