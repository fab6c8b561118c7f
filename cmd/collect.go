package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/khanhnv2901/scope-intel/internal/collector"
	"github.com/khanhnv2901/scope-intel/internal/intel"
	persistence "github.com/khanhnv2901/scope-intel/internal/infrastructure/persistence/json"
)

var collectCmd = &cobra.Command{
	Use:   "collect <domain> [domain...]",
	Short: "Collect security intelligence for one or more vendor domains",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		shodanKey, _ := cmd.Flags().GetString("shodan-key")
		if shodanKey == "" {
			shodanKey = viper.GetString("shodan_api_key")
		}
		if shodanKey == "" {
			shodanKey = os.Getenv("SHODAN_API_KEY")
		}

		deadlineSecs, _ := cmd.Flags().GetInt("deadline")
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		rateLimit, _ := cmd.Flags().GetInt("rate")
		asJSON, _ := cmd.Flags().GetBool("json")
		noSave, _ := cmd.Flags().GetBool("no-save")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		c := collector.New(collector.Config{
			CollectionDeadline: time.Duration(deadlineSecs) * time.Second,
			ShodanAPIKey:       shodanKey,
		}, logger)

		runner := &collector.Runner{Concurrency: concurrency, RateLimit: rateLimit}
		records := runner.Run(ctx, args, c)

		var repo *persistence.RecordRepository
		if !noSave {
			var err error
			repo, err = persistence.NewRecordRepository(resultsDir)
			if err != nil {
				return err
			}
		}

		for _, rec := range records {
			if rec == nil {
				continue
			}

			if asJSON {
				data, err := json.MarshalIndent(rec, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode record: %w", err)
				}
				fmt.Println(string(data))
			} else {
				printRecordSummary(rec)
			}

			if repo != nil {
				path, err := repo.Save(rec)
				if err != nil {
					logger.Warnf("failed to save record for %s: %v", rec.Domain, err)
					continue
				}
				fmt.Printf("%s record saved to %s\n", colorInfo("→"), path)
			}
		}

		return nil
	},
}

func printRecordSummary(rec *intel.Record) {
	fmt.Printf("\n%s %s (collected %s)\n", colorInfo("Domain:"), rec.Domain,
		rec.CollectionTimestamp.Format(time.RFC3339))

	fmt.Printf("  SSL/TLS:        %s\n", formatScore(rec.Scores.SSLScore))
	fmt.Printf("  DNS & email:    %s\n", formatScore(rec.Scores.DNSEmailScore))
	fmt.Printf("  HTTP headers:   %s\n", formatScore(rec.Scores.HTTPHeadersScore))
	fmt.Printf("  Open ports:     %s\n", formatScore(rec.Scores.OpenPortsScore))
	fmt.Printf("  Reputation:     %s\n", formatScore(rec.Scores.ReputationScore))

	for name, errMsg := range probeErrors(rec) {
		fmt.Printf("  %s %s: %s\n", colorWarn("!"), name, errMsg)
	}
}

func probeErrors(rec *intel.Record) map[string]string {
	errs := map[string]string{}
	if rec.BasicInfo != nil && rec.BasicInfo.Error != "" {
		errs["registry"] = rec.BasicInfo.Error
	}
	if rec.SSLInfo != nil && rec.SSLInfo.Error != "" {
		errs["tls"] = rec.SSLInfo.Error
	}
	if rec.DNSInfo != nil && rec.DNSInfo.Error != "" {
		errs["dns"] = rec.DNSInfo.Error
	}
	if rec.HTTPHeaders != nil && rec.HTTPHeaders.Error != "" {
		errs["http"] = rec.HTTPHeaders.Error
	}
	if rec.PortScan != nil && rec.PortScan.Error != "" {
		errs["ports"] = rec.PortScan.Error
	}
	if rec.ShodanData != nil && rec.ShodanData.Error != "" {
		errs["threat-feed"] = rec.ShodanData.Error
	}
	if rec.DarkWebExposure != nil && rec.DarkWebExposure.Error != "" {
		errs["dark-web"] = rec.DarkWebExposure.Error
	}
	return errs
}

func init() {
	collectCmd.Flags().String("shodan-key", "", "Shodan API key (or SHODAN_API_KEY env / config)")
	collectCmd.Flags().Int("deadline", 30, "collection deadline in seconds")
	collectCmd.Flags().Int("concurrency", 4, "maximum concurrent domain collections")
	collectCmd.Flags().Int("rate", 2, "collections started per second")
	collectCmd.Flags().Bool("json", false, "print full records as JSON")
	collectCmd.Flags().Bool("no-save", false, "do not save records to the results directory")
}
