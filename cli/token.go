// Copyright (c) tkc17.

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	svc "github.com/tkc17/iw-parser/app/service"
	"github.com/tkc17/iw-parser/util"
)

var (
	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Generate an API token for the agent HTTP API",
		Run:   tokenCmdHandler,
	}
)

func SetupTokenCommand(parentCmd *cobra.Command) {
	tokenCmd.PersistentFlags().
		Duration("ttl", util.JwtExpirationTime*time.Second, "Validity duration of the token")
	parentCmd.AddCommand(tokenCmd)
}

// Mints a signed token against the shared secret. The secret file is
// created on first use and its path is saved in the config, so the
// server picks it up on the next start.
func tokenCmdHandler(cmd *cobra.Command, args []string) {
	ctx := svc.Context()
	config := util.CurrentConfig()
	ttl, err := cmd.Flags().GetDuration("ttl")
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Error in reading ttl - %s", err.Error())
	}
	if _, err = util.EnsureAuthSecret(ctx, config); err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Error in setting up the auth secret - %s", err.Error())
	}
	token, err := util.GenerateJWT(ctx, config, ttl)
	if err != nil {
		util.ConsoleLogger().Fatalf(ctx, "Error in generating the token - %s", err.Error())
	}
	// Print the bare token for use in scripts.
	fmt.Println(token)
}
