package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/prodsearch/internal/core/domain"
)

var identityCmd = &cobra.Command{
	Use:   "identity",
	Short: "Manage the client identifier",
	Long: `The client identifier is an anonymous random string generated on first use
and sent with every search. It is not tied to any account.`,
	RunE: runIdentityShow,
}

var identityShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the client identifier, creating it if needed",
	RunE:  runIdentityShow,
}

var identityResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the client identifier",
	Long:  `Deletes the stored identifier. A new one is generated on the next search.`,
	RunE:  runIdentityReset,
}

func init() {
	identityCmd.AddCommand(identityShowCmd)
	identityCmd.AddCommand(identityResetCmd)
	rootCmd.AddCommand(identityCmd)
}

func identityLength() int {
	if appConfig != nil && appConfig.IdentityLength > 0 {
		return appConfig.IdentityLength
	}
	return domain.DefaultIdentifierLength
}

func runIdentityShow(cmd *cobra.Command, _ []string) error {
	if identityService == nil {
		return fmt.Errorf("identity %w", errNotConfigured)
	}

	id, err := identityService.GetOrCreate(identityLength())
	if err != nil {
		return fmt.Errorf("getting client identifier: %w", err)
	}

	cmd.Println(id.String())
	return nil
}

func runIdentityReset(cmd *cobra.Command, _ []string) error {
	if identityService == nil {
		return fmt.Errorf("identity %w", errNotConfigured)
	}

	if err := identityService.Reset(); err != nil {
		return fmt.Errorf("resetting client identifier: %w", err)
	}

	cmd.Println("Client identifier removed. A new one is generated on the next search.")
	return nil
}
