// Command genhash prints a bcrypt hash for seeding usuarios by hand.
// Uso: go run ./cmd/genhash <senha>
package main

import (
	"fmt"
	"os"

	"prestadores-api/internal/config"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "uso: genhash <senha>")
		os.Exit(2)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(os.Args[1]), config.BcryptCost())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(string(h))
}
