package cmdutil

import "github.com/spf13/pflag"

// PersistentFlags defines the flags shared by every command.
func PersistentFlags(flags *pflag.FlagSet) {
	flags.Bool("debug", false, "debug mode")
	flags.String("config", "", "config file, the built-in defaults are used when empty")
	flags.String("dotenv", ".env.local", "the dotenv file you want to load")
	flags.String("numeric", "", "numeric type, float or decimal")
	flags.Int("precision", 0, "decimal places of the decimal numeric type")
	flags.Int("max-bar-count", 0, "maximum number of bars kept by the series, 0 keeps every bar")
}
