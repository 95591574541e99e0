package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/energy-oracle/eo-api/internal/analytics"
	"github.com/energy-oracle/eo-api/internal/config"
	"github.com/energy-oracle/eo-api/internal/model"
	"github.com/energy-oracle/eo-api/internal/prices"
	"github.com/energy-oracle/eo-api/internal/settlement"
)

var cfgFile string

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	rootCmd := &cobra.Command{
		Use:   "eoctl",
		Short: "EnergyOracle - query UK electricity market data and settle PPAs",
		Long: `eoctl queries the EnergyOracle datastore directly: raw settlement
prices, price analytics, and monthly PPA settlement statements.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./eo-api.yaml, env EO_*)")

	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(monthlyAvgCmd())
	rootCmd.AddCommand(settleCmd())
	rootCmd.AddCommand(contractsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openServices() (*prices.Service, *analytics.Service, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}
	db, err := cfg.OpenStore()
	if err != nil {
		return nil, nil, err
	}
	return prices.NewService(db), analytics.NewService(db), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseDateFlag(raw string) (time.Time, error) {
	d, err := model.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", raw)
	}
	return d, nil
}

func statsCmd() *cobra.Command {
	var from, to, priceType string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Price statistics for a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, an, err := openServices()
			if err != nil {
				return err
			}
			fromDate, err := parseDateFlag(from)
			if err != nil {
				return err
			}
			toDate, err := parseDateFlag(to)
			if err != nil {
				return err
			}
			result, err := an.PriceStatistics(context.Background(), fromDate, toDate, priceType)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "start date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&to, "to", "", "end date YYYY-MM-DD (required)")
	cmd.Flags().StringVarP(&priceType, "type", "t", prices.TypeSystem, "price series (system or dayahead)")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")

	return cmd
}

func monthlyAvgCmd() *cobra.Command {
	var year, month int
	var priceType string

	cmd := &cobra.Command{
		Use:   "monthly-avg",
		Short: "Monthly average price (the PPA reference price)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, _, err := openServices()
			if err != nil {
				return err
			}
			result, err := ps.MonthlyAverage(context.Background(), priceType, year, time.Month(month))
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "settlement year (required)")
	cmd.Flags().IntVarP(&month, "month", "m", 0, "settlement month 1-12 (required)")
	cmd.Flags().StringVarP(&priceType, "type", "t", prices.TypeSystem, "price series (system or dayahead)")
	cmd.MarkFlagRequired("year")
	cmd.MarkFlagRequired("month")

	return cmd
}

func settleCmd() *cobra.Command {
	var year, month int
	var contract, priceType, discount, volume string

	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Compute a monthly PPA settlement statement",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			db, err := cfg.OpenStore()
			if err != nil {
				return err
			}
			contracts, err := settlement.LoadContracts(cfg.ContractDir)
			if err != nil {
				return err
			}
			svc := settlement.NewService(prices.NewService(db), contracts)

			req := settlement.Request{
				Year:      year,
				Month:     month,
				Contract:  contract,
				PriceType: priceType,
			}
			if discount != "" {
				d, err := decimal.NewFromString(discount)
				if err != nil {
					return fmt.Errorf("invalid discount %q: %w", discount, err)
				}
				req.DiscountPerMWh = d
			}
			if volume != "" {
				v, err := decimal.NewFromString(volume)
				if err != nil {
					return fmt.Errorf("invalid volume %q: %w", volume, err)
				}
				req.VolumeMWh = &v
			}

			result, err := svc.Calculate(context.Background(), req)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "settlement year (required)")
	cmd.Flags().IntVarP(&month, "month", "m", 0, "settlement month 1-12 (required)")
	cmd.Flags().StringVarP(&contract, "contract", "c", "", "contract preset name")
	cmd.Flags().StringVarP(&priceType, "type", "t", "", "price series (default from contract, else system)")
	cmd.Flags().StringVarP(&discount, "discount", "d", "", "discount in GBP/MWh")
	cmd.Flags().StringVar(&volume, "volume", "", "contracted volume in MWh")
	cmd.MarkFlagRequired("year")
	cmd.MarkFlagRequired("month")

	return cmd
}

func contractsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contracts",
		Short: "List loaded PPA contract presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			contracts, err := settlement.LoadContracts(cfg.ContractDir)
			if err != nil {
				return err
			}
			if len(contracts) == 0 {
				fmt.Println("No contract presets found")
				return nil
			}

			fmt.Printf("%-20s %-20s %-10s %12s %12s\n", "NAME", "COUNTERPARTY", "TYPE", "DISCOUNT", "VOLUME")
			fmt.Println("--------------------------------------------------------------------------------")
			for _, c := range contracts {
				volume := "-"
				if c.VolumeMWh != nil {
					volume = c.VolumeMWh.String()
				}
				fmt.Printf("%-20s %-20s %-10s %12s %12s\n",
					c.Name, c.Counterparty, c.PriceType, c.DiscountPerMWh.String(), volume)
			}
			return nil
		},
	}
}
