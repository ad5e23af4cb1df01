// Command issue-token mints a signed role token for operators and scripts.
//
//	go run ./cmd/issue-token -sub alice -role accountant -ttl 24h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"taxcredit/internal/config"
	"taxcredit/internal/middleware"
)

func main() {
	subject := flag.String("sub", "", "token subject (user id or name)")
	role := flag.String("role", middleware.RoleViewer, "role: admin, accountant or viewer")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *subject == "" {
		fmt.Fprintln(os.Stderr, "-sub is required")
		os.Exit(2)
	}

	// Loads JWT_SECRET from configs/.env when present.
	_, _ = config.Load()

	token, err := middleware.IssueToken(middleware.GetJWTSecret(), *subject, *role, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to issue token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
