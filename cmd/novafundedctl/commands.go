package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRootCmd(rt *env) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "novafundedctl",
		Short:         "Operator tool for the novafunded service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&rt.cfg.Database, "database", "d", rt.cfg.Database, "database DSN")
	rootCmd.PersistentFlags().StringVarP(&rt.cfg.LogLvl, "log-level", "l", rt.cfg.LogLvl, "log level")

	rootCmd.AddCommand(migrateCmd(rt))
	rootCmd.AddCommand(grantAdminCmd(rt))
	rootCmd.AddCommand(paymentsCmd(rt))
	return rootCmd
}

func migrateCmd(rt *env) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := rt.migrate(cmd.Context(), rt.cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations applied, schema version %d\n", version)
			return nil
		},
	}
}

func grantAdminCmd(rt *env) *cobra.Command {
	return &cobra.Command{
		Use:   "grant-admin <login>",
		Short: "Give a registered user the admin role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, closeFn, err := rt.admin(cmd.Context(), rt.cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			user, err := admin.GrantAdmin(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("can't grant admin to %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "user %s (id %d) is now %s\n", user.Login, user.ID, user.Role)
			return nil
		},
	}
}

func paymentsCmd(rt *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Inspect and repair payments",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "inconsistent",
		Short: "List confirmed payments that have no challenge",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, closeFn, err := rt.admin(cmd.Context(), rt.cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			payments, err := admin.InconsistentPayments(cmd.Context())
			if err != nil {
				return fmt.Errorf("can't list inconsistent payments: %w", err)
			}
			if len(payments) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no inconsistent payments")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PAYMENT\tUSER\tPLAN\tAMOUNT\tTRANSACTION")
			for _, p := range payments {
				hash := ""
				if p.TransactionHash != nil {
					hash = *p.TransactionHash
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%s\n", p.ID, p.UserLogin, p.PlanName, p.Amount.String(), p.Currency, hash)
			}
			return w.Flush()
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "provision <payment-id>",
		Short: "Create the missing challenge of a confirmed payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, closeFn, err := rt.admin(cmd.Context(), rt.cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			challenge, err := admin.ProvisionChallenge(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("can't provision payment %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "challenge %d created for payment %s\n", challenge.ID, args[0])
			return nil
		},
	})
	return cmd
}
