package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/goaccounts/internal/adapter/http/dto"
	"github.com/iho/goaccounts/internal/domain"
)

type rootOptions struct {
	baseURL string
	timeout time.Duration
	json    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "goaccounts-cli",
		Short:         "GoAccounts CLI tool",
		Long:          `A command line interface for the current-account reporting API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the GoAccounts API")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&opts.json, "json", false, "Print raw JSON instead of a table")

	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Current-account operations",
	}

	accountsCmd.AddCommand(
		reportCmd(opts),
		listCmd(opts),
		overviewCmd(opts),
		statementCmd(opts),
		exportCmd(opts),
	)
	rootCmd.AddCommand(accountsCmd)

	return rootCmd
}

func (o *rootOptions) client() *apiClient {
	return newAPIClient(o.baseURL, o.timeout)
}

// kindArg normalizes a kind argument to the plural URL form.
func kindArg(s string) (string, error) {
	kind, err := domain.ParseEntityKind(s)
	if err != nil {
		return "", err
	}
	return string(kind) + "s", nil
}

func addWindowFlags(cmd *cobra.Command, q *windowFlags) {
	cmd.Flags().StringVar(&q.start, "start", "", "Window start (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&q.end, "end", "", "Window end (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringVar(&q.types, "types", "", "Comma separated movement types (sale,purchase,payment)")
}

type windowFlags struct {
	start string
	end   string
	types string
}

func (w windowFlags) values() url.Values {
	q := url.Values{}
	if w.start != "" {
		q.Set("start_date", w.start)
	}
	if w.end != "" {
		q.Set("end_date", w.end)
	}
	if w.types != "" {
		q.Set("movement_types", w.types)
	}
	return q
}

func reportCmd(opts *rootOptions) *cobra.Command {
	var window windowFlags

	cmd := &cobra.Command{
		Use:   "report <customer|supplier> <id>",
		Short: "Show the current account of one entity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(args[0])
			if err != nil {
				return err
			}

			report, err := opts.client().Report(cmd.Context(), kind, args[1], window.values())
			if err != nil {
				return err
			}

			if opts.json {
				return printJSON(cmd.OutOrStdout(), report)
			}
			return printReport(cmd.OutOrStdout(), report)
		},
	}
	addWindowFlags(cmd, &window)

	return cmd
}

func listCmd(opts *rootOptions) *cobra.Command {
	var (
		window     windowFlags
		minBalance string
		maxBalance string
		status     string
	)

	cmd := &cobra.Command{
		Use:   "list <company-id> <customer|supplier>",
		Short: "List the current accounts of a company, highest balance first",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(args[1])
			if err != nil {
				return err
			}

			q := window.values()
			if minBalance != "" {
				q.Set("min_balance", minBalance)
			}
			if maxBalance != "" {
				q.Set("max_balance", maxBalance)
			}
			if status != "" {
				q.Set("status", status)
			}

			rollup, err := opts.client().List(cmd.Context(), args[0], kind, q)
			if err != nil {
				return err
			}

			if opts.json {
				return printJSON(cmd.OutOrStdout(), rollup)
			}
			return printRollup(cmd.OutOrStdout(), rollup)
		},
	}
	addWindowFlags(cmd, &window)
	cmd.Flags().StringVar(&minBalance, "min-balance", "", "Minimum balance")
	cmd.Flags().StringVar(&maxBalance, "max-balance", "", "Maximum balance")
	cmd.Flags().StringVar(&status, "status", "", "active or inactive")

	return cmd
}

func overviewCmd(opts *rootOptions) *cobra.Command {
	var window windowFlags

	cmd := &cobra.Command{
		Use:   "overview <company-id> <customer|supplier>",
		Short: "Show balance and aging totals of a company",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(args[1])
			if err != nil {
				return err
			}

			overview, err := opts.client().Overview(cmd.Context(), args[0], kind, window.values())
			if err != nil {
				return err
			}

			if opts.json {
				return printJSON(cmd.OutOrStdout(), overview)
			}
			return printOverview(cmd.OutOrStdout(), overview)
		},
	}
	addWindowFlags(cmd, &window)

	return cmd
}

func statementCmd(opts *rootOptions) *cobra.Command {
	var email, key string

	cmd := &cobra.Command{
		Use:   "statement <customer|supplier> <id>",
		Short: "E-mail the account statement",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(args[0])
			if err != nil {
				return err
			}

			result, err := opts.client().SendStatement(cmd.Context(), kind, args[1], email, key)
			if err != nil {
				return err
			}

			if opts.json {
				if err := printJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), result.Message)
			}

			if !result.Success {
				return fmt.Errorf("statement not sent")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Recipient address")
	cmd.Flags().StringVar(&key, "idempotency-key", "", "Idempotency key for safe retries")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func exportCmd(opts *rootOptions) *cobra.Command {
	var (
		window windowFlags
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export <customer|supplier> <id>",
		Short: "Download the account statement as XLSX",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := kindArg(args[0])
			if err != nil {
				return err
			}

			data, name, err := opts.client().ExportStatement(cmd.Context(), kind, args[1], window.values())
			if err != nil {
				return err
			}

			if out == "" {
				out = name
			}
			if out == "" {
				out = "statement.xlsx"
			}

			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s (%d bytes)\n", out, len(data))
			return nil
		},
	}
	addWindowFlags(cmd, &window)
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output file (defaults to the server's file name)")

	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printReport(w io.Writer, r *dto.ReportResponse) error {
	fmt.Fprintf(w, "%s (%s %s)\n", r.EntityName, r.EntityType, r.EntityID)
	fmt.Fprintf(w, "Balance: %s", r.CurrentBalance.StringFixed(2))
	if r.CreditLimit != nil {
		fmt.Fprintf(w, "  Credit limit: %s", r.CreditLimit.StringFixed(2))
	}
	fmt.Fprintf(w, "  Avg payment days: %d\n\n", r.Summary.AveragePaymentDays)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTYPE\tDESCRIPTION\tDEBIT\tCREDIT\tBALANCE")
	for _, m := range r.Movements {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			m.Date.Format("2006-01-02"), m.Type, truncate(m.Description, 32),
			m.Debit.StringFixed(2), m.Credit.StringFixed(2), m.Balance.StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	return printAging(w, r.Aging)
}

func printRollup(w io.Writer, r *dto.RollupResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBALANCE\tOVER 90\tAVG DAYS")
	for _, a := range r.Accounts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n",
			a.EntityID, truncate(a.EntityName, 32), a.CurrentBalance.StringFixed(2),
			a.Aging.Over90.StringFixed(2), a.AveragePaymentDays)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d %s accounts", r.Count, r.Kind)
	if len(r.Failures) > 0 {
		fmt.Fprintf(w, ", %d failed", len(r.Failures))
	}
	fmt.Fprintln(w)

	return nil
}

func printOverview(w io.Writer, o *dto.OverviewResponse) error {
	fmt.Fprintf(w, "Company %s, %s accounts\n", o.CompanyID, o.Kind)
	fmt.Fprintf(w, "Accounts: %d  Active: %d  Over limit: %d  Failed: %d\n",
		o.Accounts, o.ActiveAccounts, o.OverCreditLimit, o.FailedAccounts)
	fmt.Fprintf(w, "Total balance: %s\n\n", o.TotalBalance.StringFixed(2))

	return printAging(w, o.Aging)
}

func printAging(w io.Writer, a dto.AgingResponse) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "0-30\t31-60\t61-90\t90+\tTOTAL")
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
		a.Current.StringFixed(2), a.Days30To60.StringFixed(2), a.Days61To90.StringFixed(2),
		a.Over90.StringFixed(2), a.Total.StringFixed(2))
	return tw.Flush()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
