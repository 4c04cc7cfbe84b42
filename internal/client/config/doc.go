// Package config provides configuration loading for the DramaHub CLI.
//
// Values are resolved in order, later sources overriding earlier ones:
//  1. Defaults (LoadDefaults)
//  2. JSON file given by -c or -config
//  3. Command-line flags (-a, -i, -t)
package config
