/*
Copyright © 2026 MSP Docs <maintainers@mspdocs.dev>
*/

package main

import (
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/fatih/structs"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var (
	// Store the result of binding cobra flags
	Config       string
	ConfigActual string
	Debug        bool

	// Shell command to retrieve the vendor API key, so the secret never
	// lives in the config file.
	APIKeyCmd []string

	Vendor     string
	Instance   string
	LocalStore string

	ParsedConfig YamlConfig
)

// Build the cobra command that handles our command line tool.
var rootCmd = &cobra.Command{
	Use:   "vendor-dump",
	Short: "Export an MSP/ITSM vendor's documentation to local Markdown",
	Long: `
Migrating your documentation out of a proprietary MSP/ITSM platform?  This tool
walks a vendor's API (Atera, IT Glue, NinjaOne) and mirrors every organization,
device, document, and knowledge-base article into a tree of Markdown files with
YAML front matter — ready for git, grep, and your static-site generator.
`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// You can bind cobra and viper in a few locations, but PersistentPreRunE on the root command works well
		if err := initializeConfig(cmd); err != nil {
			return fmt.Errorf("vendor-dump: failed to initialise config: %w", err)
		}
		return nil
	},
}

func init() {
	// Define cobra flags, the default value has the lowest (least significant) precedence
	rootCmd.PersistentFlags().StringVar(&Config, "config", "", "config file location (default: ~/.config/vendor-dump.yaml, respects VENDOR_DUMP_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&Debug, "debug", false, "display debug output")
	rootCmd.PersistentFlags().StringSliceVar(&APIKeyCmd, "api-key-cmd", []string{}, "shell command to retrieve the vendor API key")
	rootCmd.PersistentFlags().StringVar(&LocalStore, "store", "", "location to save exported Markdown")
	rootCmd.PersistentFlags().StringVar(&Vendor, "vendor", "", "vendor profile to use (see 'list vendors')")
	rootCmd.PersistentFlags().StringVar(&Instance, "instance", "", "vendor instance URL, if not the profile default")
}

func initializeConfig(cmd *cobra.Command) error {
	explicit := Config != ""
	if Config == "" {
		// Did the user provide an ENV?
		envConfig := os.Getenv("VENDOR_DUMP_CONFIG")
		if envConfig != "" {
			Config = envConfig
			explicit = true
		} else {
			// As fallback, search for config in home XDG-ish directory
			Config = "~/.config/vendor-dump.yaml"
		}
	}
	config, err := homedir.Expand(Config)
	if err != nil {
		return fmt.Errorf("vendor-dump: unable to expand homedir: %w", err)
	}
	ConfigActual = config

	if _, err := os.Stat(ConfigActual); errors.Is(err, os.ErrNotExist) {
		if explicit {
			return fmt.Errorf("vendor-dump: specified config file does not exist: %w", err)
		}
		// no config file is fine; env vars and flags carry everything.
		return nil
	}

	yamlFile, err := os.ReadFile(ConfigActual)
	if err != nil {
		return fmt.Errorf("vendor-dump: error reading config file: %w", err)
	}

	// I'd like to bark if a user sets a flag we don't recognise:
	if err := yaml.UnmarshalStrict(yamlFile, &ParsedConfig); err != nil {
		return fmt.Errorf("vendor-dump: issue parsing config file: %w", err)
	}

	if err := bindFlags(cmd, ParsedConfig); err != nil {
		return fmt.Errorf("vendor-dump: failed to bind flags: %w", err)
	}

	return nil
}

type YamlConfig struct {
	DryRun  *bool `yaml:"dry-run"`
	Prune   *bool `yaml:"prune"`
	WithVCR *bool `yaml:"with-vcr"`

	StorePath string   `yaml:"store"`
	Vendor    string   `yaml:"vendor"`
	Instance  string   `yaml:"instance"`
	APIKeyCmd []string `yaml:"api-key-cmd"`
}

// Bind each config file key to its identically named cobra flag.
func bindFlags(cmd *cobra.Command, v YamlConfig) error {
	for _, field := range structs.Fields(v) {
		key := field.Tag("yaml")
		if key == "" {
			return fmt.Errorf("vendor-dump: could not retrieve struct tag 'yaml'")
		}
		if flag := cmd.Flag(key); flag == nil {
			// hmm... the flag is unknown.  but that can legitimately happen if you're running
			// e.g. `list vendors` which has no `prune` flag but your YAML file does
			// define that key...
			continue
		}
		if !cmd.Flags().Changed(key) {
			switch field.Kind() {
			case reflect.Ptr:
				// err, this is crappy, but i know YamlConfig only uses pointers for bools.....
				b, ok := field.Value().(*bool)
				if !ok {
					return fmt.Errorf("vendor-dump: found unrecognised field: %+v", field)
				}
				if b != nil {
					cmd.Flags().Set(key, fmt.Sprintf("%v", *b))
				}

			case reflect.String:
				s, ok := field.Value().(string)
				if !ok {
					return fmt.Errorf("vendor-dump: found unrecognised field: %+v", field)
				}
				if s != "" {
					cmd.Flags().Set(key, s)
				}

			case reflect.Slice:
				ss, ok := field.Value().([]string)
				if !ok {
					return fmt.Errorf("vendor-dump: found unrecognised field: %+v", field)
				}
				for _, s := range ss {
					// yes, repeatedly calling Set() appends to the slice...
					cmd.Flags().Set(key, s)
				}

			default:
				return fmt.Errorf("vendor-dump: found unrecognised field: %+v", field)
			}
		}
	}

	return nil
}
