// Copyright (c) 2026 Bibliotheca. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command token mints access tokens for local development and smoke tests.
//
// Usage:
//
//	JWT_PRIVATE_KEY_PATH=./keys/private.pem JWT_PUBLIC_KEY_PATH=./keys/public.pem \
//	    go run ./cmd/token --user u-1 --name ana --role admin --ttl 1h
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/bibliotheca/internal/platform/constants"
	"github.com/taibuivan/bibliotheca/internal/platform/sec"
)

type keyConfig struct {
	PrivateKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	PublicKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`
}

var (
	userID   = flag.String("user", "", "Caller id placed in the uid claim")
	username = flag.String("name", "", "Display name placed in the unm claim")
	role     = flag.String("role", string(sec.RoleReader), "Role placed in the rol claim (admin or user)")
	ttl      = flag.Duration("ttl", time.Hour, "Token lifetime")
)

func main() {
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *userID == "" {
		log.Error("missing --user")
		os.Exit(2)
	}

	if *role != string(sec.RoleAdmin) && *role != string(sec.RoleReader) {
		log.Error("unknown role", slog.String("role", *role))
		os.Exit(2)
	}

	var keys keyConfig
	if err := env.Parse(&keys); err != nil {
		log.Error("load key paths", slog.Any("error", err))
		os.Exit(1)
	}

	service, err := sec.NewTokenService(keys.PrivateKeyPath, keys.PublicKeyPath, constants.AuthIssuer)
	if err != nil {
		log.Error("load keys", slog.Any("error", err))
		os.Exit(1)
	}

	token, err := service.GenerateAccessToken(*userID, *username, *role, *ttl)
	if err != nil {
		log.Error("sign token", slog.Any("error", err))
		os.Exit(1)
	}

	fmt.Println(token)
}
