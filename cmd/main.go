// Package main is the entry point for beeminder-wordcount.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
)

// Version is set at build time via ldflags
var Version = "v0.1.0"

// appName names the config directory and the binary in help output.
const appName = "beeminder-wordcount"

// getConfigDir returns ~/.config/beeminder-wordcount
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config", appName)
}

// loadEnvFiles loads .env from standard locations
func loadEnvFiles() {
	if dir := getConfigDir(); dir != "" {
		configEnv := filepath.Join(dir, ".env")
		if _, err := os.Stat(configEnv); err == nil {
			_ = godotenv.Load(configEnv)
		}
	}

	// Also load local .env (values already set are kept)
	_ = godotenv.Load()
}

func main() {
	loadEnvFiles()
	os.Exit(run(os.Args[1:]))
}

// run dispatches a subcommand and returns the exit code.
func run(args []string) int {
	if len(args) > 0 {
		switch args[0] {
		case "watch":
			return runWatch(args[1:])
		case "send":
			return runSend(args[1:])
		case "count":
			return runCount(args[1:])
		case "select":
			return runSelect(args[1:])
		case "settings":
			return runSettings(args[1:])
		case "history":
			return runHistory(args[1:])
		case "version", "-v", "--version":
			PrintVersion()
			return 0
		case "help", "-h", "--help":
			printHelp()
			return 0
		}
		if !strings.HasPrefix(args[0], "-") {
			fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
			printHelp()
			return 1
		}
	}

	// Default: interactive watch session (flags only)
	return runWatch(args)
}

// PrintVersion prints the version and runtime.
func PrintVersion() {
	fmt.Printf("%s %s\n", appName, Version)
	fmt.Printf("Runtime: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// printHelp prints usage information
func printHelp() {
	fmt.Println("beeminder-wordcount - send your word count to a Beeminder goal")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  beeminder-wordcount [command] [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  watch        Measure the active selection every tick; type 'send' to submit (default)")
	fmt.Println("  send         Submit one datapoint using the stored settings")
	fmt.Println("  count        Print the vault-wide word count, or the count of the given files")
	fmt.Println("  select       Publish stdin as the active selection (for editor hooks)")
	fmt.Println("  settings     Edit user, goal, auth token and scope")
	fmt.Println("  history      Show recent submissions")
	fmt.Println("  version      Print version information")
	fmt.Println("  help         Show this help message")
	fmt.Println()
	fmt.Println("Options (all commands):")
	fmt.Println("  --config FILE    Config file (default: ~/.config/beeminder-wordcount/config.yaml, then embedded)")
	fmt.Println("  --debug          Enable debug logging")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  beeminder-wordcount settings")
	fmt.Println("  xclip -o | beeminder-wordcount select --title \"Chapter 3\"")
	fmt.Println("  beeminder-wordcount send")
	fmt.Println("  beeminder-wordcount count notes/*.md")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  BEEMINDER_AUTH_TOKEN          Use this token instead of the stored one (never saved)")
	fmt.Println("  BEEMINDER_BASE_URL            Override service.base_url")
	fmt.Println("  BEEMINDER_WORDCOUNT_VAULT     Override paths.vault")
	fmt.Println("  BEEMINDER_WORDCOUNT_LOG_LEVEL Override monitoring.log_level")
}
