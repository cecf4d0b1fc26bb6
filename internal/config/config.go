package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types

	"github.com/joho/godotenv" // godotenv loads a local .env file during development
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The struct is built once at startup and passed
// by value into the components that need it; nothing reads the environment
// after Load returns.
type Config struct {
	Env         string // application environment (e.g. "dev", "prod")
	Port        string // HTTP port to listen on
	MongoURI    string // document store connection string
	MongoDB     string // name of the database holding the users collection
	JWTSecret   string // secret used to sign session tokens
	TokenTTLHrs int    // session cookie lifetime in hours
	BcryptCost  int    // bcrypt cost for password hashing
}

// Load reads configuration values from environment variables and returns a
// Config.  A .env file is loaded first when present so local development
// does not need exported variables.  Required variables are enforced by
// must() and missing values cause the program to exit with a fatal log
// message.
func Load() Config {
	_ = godotenv.Load() // absence of a .env file is fine in production

	return Config{
		Env:         must("APP_ENV"),              // environment (dev/test/prod)
		Port:        must("APP_PORT"),             // port to bind the HTTP server
		MongoURI:    must("MONGO_URI"),            // document store connection string
		MongoDB:     must("MONGO_DB"),             // database name
		JWTSecret:   must("JWT_SECRET"),           // secret used for signing session tokens
		TokenTTLHrs: intOr("TOKEN_TTL_HOURS", 24), // cookie lifetime, defaults to one day
		BcryptCost:  intOr("BCRYPT_COST", 10),     // bcrypt work factor
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// intOr retrieves an optional integer environment variable, falling back to
// def when the variable is unset.  An unparsable value is treated as a
// configuration error and exits the process.
func intOr(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
