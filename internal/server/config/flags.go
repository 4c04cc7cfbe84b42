package config

import (
	"flag"

	"github.com/dmitrijs2005/dramahub/internal/flagx"
)

// parseFlags overrides Config fields from command-line flags.
//
//	-a string   HTTP listen address (e.g. ":8080")
//	-g string   gRPC health listen address (e.g. ":50051")
//	-d string   database DSN
//	-D string   database driver: pgx or sqlite
//	-r string   Redis URL for the catalog cache (empty disables it)
//	-l string   log level
//
// Unknown flags are filtered out first so that -c/-config and flags owned by
// other layers do not trip the parser. A malformed flag panics.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-D", "-r", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run HTTP server")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "address and port to run gRPC health server")
	fs.StringVar(&config.Database.DSN, "d", config.Database.DSN, "database DSN")
	fs.StringVar(&config.Database.Driver, "D", config.Database.Driver, "database driver (pgx|sqlite)")
	fs.StringVar(&config.Redis.URL, "r", config.Redis.URL, "redis URL")
	fs.StringVar(&config.Log.Level, "l", config.Log.Level, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
