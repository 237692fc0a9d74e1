// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

LoadDotEnv reads an optional .env file, then ParseFlags returns a Config
struct with all settings:

	if err := cliparse.LoadDotEnv(); err != nil {
		log.Fatal(err)
	}
	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3000)
  - DatabaseType: sqlite, postgres, file or mongo (default: sqlite)
  - DatabaseURL: DSN, or document path for the file backend
  - MongoDatabase: Database name for the mongo backend (default: quickly_meet)
  - AdminUser, AdminPass: The single admin identity (required)
  - SessionSecret: HMAC key for session cookies (required)
  - SessionTTL: Admin session lifetime (default: 24h)
  - CookieSecure: Send the session cookie over HTTPS only
  - RedisURL: Keep admin sessions in redis instead of memory

# CLI Flags

	-p               Server port
	-d               Database URL or file path
	-t               Database type
	--mongo-db       MongoDB database name
	--redis          Redis URL
	--admin-user     Admin username
	--admin-pass     Admin password
	--session-secret Session signing secret
	--session-ttl    Session lifetime
	--cookie-secure  Secure session cookie

# Environment Variables

Flags fall back to environment variables:

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	MONGO_DB       → --mongo-db
	REDIS_URL      → --redis
	ADMIN_USER     → --admin-user
	ADMIN_PASS     → --admin-pass
	SESSION_SECRET → --session-secret
	SESSION_TTL    → --session-ttl
	COOKIE_SECURE  → --cookie-secure

CLI flags take precedence over environment variables, and variables
already in the environment take precedence over .env entries.

# Validation

ParseFlags returns an error if:

  - ADMIN_USER, ADMIN_PASS or SESSION_SECRET is missing
  - DATABASE_URL is missing for postgres or mongo
  - DATABASE_TYPE, PORT, SESSION_TTL or COOKIE_SECURE cannot be parsed
*/
package cliparse
