package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"money_saver/pkg/logx"
	"money_saver/pkg/middlewarex"
)

// go run ./cmd/admintoken -sub ops -ttl 1h
//
// Секрет берётся из ADMIN_JWT_SECRET (.env тоже читается).
func main() {
	subject := flag.String("sub", "admin", "token subject")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()

	token, err := middlewarex.IssueToken([]byte(os.Getenv("ADMIN_JWT_SECRET")), *subject, *ttl)
	if err != nil {
		slog.Error("issue token failed", logx.Error(err))
		os.Exit(1)
	}

	fmt.Println(token) //nolint:forbidigo
}
