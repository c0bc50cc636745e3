package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/domaincomb/domaincomb/internal/core/checker"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <domain>",
	Short: "Show registration details for one domain",
	Long:  "Fetch the full RDAP object for a domain and print registrar, status, and expiration",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().String("server", "", "RDAP server base URL (default: bootstrap resolution)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	domain := strings.ToLower(strings.TrimSpace(args[0]))
	if domain == "" || !strings.Contains(domain, ".") {
		return errors.New("a fully qualified domain is required")
	}

	server, err := cmd.Flags().GetString("server")
	if err != nil {
		return err
	}

	cfg := appConfig
	if cfg == nil {
		return errors.New("config not loaded")
	}

	inspector := &checker.Inspector{
		Server:  server,
		Timeout: cfg.Registry.Timeout,
	}

	details, err := inspector.Inspect(cmd.Context(), domain)
	if err != nil {
		return err
	}

	if !details.Registered {
		fmt.Printf("%s: no registration record found\n", domain)
		return nil
	}

	fmt.Printf("Domain:     %s\n", details.Domain)
	if details.LDHName != "" && details.LDHName != details.Domain {
		fmt.Printf("LDH name:   %s\n", details.LDHName)
	}
	if details.Registrar != "" {
		fmt.Printf("Registrar:  %s\n", details.Registrar)
	}
	if len(details.Status) > 0 {
		fmt.Printf("Status:     %s\n", strings.Join(details.Status, ", "))
	}
	if details.Expiration != "" {
		fmt.Printf("Expires:    %s\n", details.Expiration)
	}
	return nil
}
