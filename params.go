package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/SW-CD/mediahub-workflow-tests/workflowtests"
)

// envDefaults are the environment-variable defaults for the command-line
// flags; flags win when both are set. Credentials generally come from the
// environment in CI.
type envDefaults struct {
	BaseURL       string `env:"MEDIAHUB_URL" envDefault:"http://localhost:8080/api"`
	AdminUsername string `env:"MEDIAHUB_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"MEDIAHUB_ADMIN_PASSWORD" envDefault:"verysecret"`
	TestUsername  string `env:"MEDIAHUB_TEST_USERNAME" envDefault:"testuser"`
	TestPassword  string `env:"MEDIAHUB_TEST_PASSWORD" envDefault:"testpassword"`
}

type commandParams struct {
	config   workflowtests.Config
	debug    bool
	debugAll bool
}

func (c *commandParams) Read(args []string) bool {
	var defaults envDefaults
	if err := env.Parse(&defaults); err != nil {
		fmt.Fprintf(os.Stderr, "invalid environment configuration: %s\n", err)
		return false
	}

	fs := flag.NewFlagSet("", flag.ExitOnError)
	fs.StringVar(&c.config.BaseURL, "url", defaults.BaseURL, "base URL of the MediaHub API (including /api)")
	fs.StringVar(&c.config.Admin.Username, "admin-username", defaults.AdminUsername, "administrator account name")
	fs.StringVar(&c.config.Admin.Password, "admin-password", defaults.AdminPassword, "administrator account password")
	fs.StringVar(&c.config.User.Username, "test-username", defaults.TestUsername, "name of the regular user account the workflow creates")
	fs.StringVar(&c.config.User.Password, "test-password", defaults.TestPassword, "password of the regular user account")
	fs.DurationVar(&c.config.StartupTimeout, "startup-timeout", 30*time.Second, "how long to wait for the server to become ready")
	fs.DurationVar(&c.config.RequestTimeout, "request-timeout", 15*time.Second, "timeout for each individual API call")
	fs.StringVar(&c.config.FixtureDir, "fixture-dir", "", "directory for the local fixture files (default: current directory)")
	fs.BoolVar(&c.debug, "debug", false, "enable debug logging for failed stages")
	fs.BoolVar(&c.debugAll, "debug-all", false, "enable debug logging for all stages")

	if err := fs.Parse(args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fs.Usage()
		return false
	}
	return true
}
