package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	persistence "github.com/khanhnv2901/scope-intel/internal/infrastructure/persistence/json"
	"github.com/khanhnv2901/scope-intel/internal/intel"
	"github.com/khanhnv2901/scope-intel/internal/risk"
	sharedErrors "github.com/khanhnv2901/scope-intel/internal/shared/errors"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Run baseline and advanced risk models over vendor attributes",
	RunE: func(cmd *cobra.Command, args []string) error {
		fs := cmd.Flags()

		attrs, err := baselineAttributesFromFlags(fs)
		if err != nil {
			return err
		}
		vendor := vendorContextFromFlags(fs)

		rec, err := loadIntelRecord(fs)
		if err != nil {
			return err
		}

		baseline := risk.Baseline(attrs, time.Now())
		assessment := risk.NewModel().Assess(vendor, rec)

		asJSON, _ := fs.GetBool("json")
		if asJSON {
			out := struct {
				Baseline risk.Profile    `json:"baseline"`
				Advanced risk.Assessment `json:"advanced"`
			}{baseline, assessment}

			data, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode assessment: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		printAssessment(baseline, assessment)
		return nil
	},
}

func baselineAttributesFromFlags(fs *pflag.FlagSet) (risk.BaselineAttributes, error) {
	tools, _ := fs.GetStringSlice("tools")
	gaps, _ := fs.GetString("gaps")
	standards, _ := fs.GetStringSlice("standards")
	breaches, _ := fs.GetString("breaches")

	attrs := risk.BaselineAttributes{
		SecurityTools:       tools,
		SecurityGaps:        gaps,
		ComplianceStandards: standards,
		KnownDataBreaches:   breaches,
	}

	if lastAudit, _ := fs.GetString("last-audit"); lastAudit != "" {
		t, err := time.Parse("2006-01-02", lastAudit)
		if err != nil {
			return attrs, fmt.Errorf("invalid --last-audit date %q (expected YYYY-MM-DD): %w", lastAudit, err)
		}
		attrs.LastAuditDate = &t
	}

	return attrs, nil
}

func vendorContextFromFlags(fs *pflag.FlagSet) risk.VendorContext {
	industry, _ := fs.GetString("industry")
	employees, _ := fs.GetString("employees")
	data, _ := fs.GetStringSlice("data")
	frameworks, _ := fs.GetStringSlice("frameworks")
	country, _ := fs.GetString("country")
	region, _ := fs.GetString("region")
	alternatives, _ := fs.GetInt("alternatives")
	revenue, _ := fs.GetString("revenue")

	return risk.VendorContext{
		Industry:             industry,
		EmployeeCount:        employees,
		DataProcessed:        data,
		ComplianceFrameworks: frameworks,
		Country:              country,
		Region:               region,
		AlternativeVendors:   alternatives,
		RevenueBucket:        revenue,
	}
}

// loadIntelRecord resolves the optional intelligence input: an explicit
// record file, or the latest saved record for a domain. Absence is not an
// error; the risk models substitute documented defaults.
func loadIntelRecord(fs *pflag.FlagSet) (*intel.Record, error) {
	repo, err := persistence.NewRecordRepository(resultsDir)
	if err != nil {
		return nil, err
	}

	if path, _ := fs.GetString("intel"); path != "" {
		return repo.Load(path)
	}

	if domain, _ := fs.GetString("domain"); domain != "" {
		rec, err := repo.LoadLatest(domain)
		if errors.Is(err, sharedErrors.ErrRecordNotFound) {
			logger.Warnf("no saved intelligence record for %s; assessing without OSINT context", domain)
			return nil, nil
		}
		return rec, err
	}

	return nil, nil
}

func printAssessment(baseline risk.Profile, assessment risk.Assessment) {
	fmt.Printf("\n%s\n", colorInfo("Baseline risk"))
	fmt.Printf("  Overall: %.2f (%s)\n", baseline.OverallScore, formatLevel(baseline.RiskLevel))
	for _, factor := range baseline.RiskFactors {
		fmt.Printf("  %s %s\n", colorWarn("!"), factor)
	}
	for _, rec := range baseline.Recommendations {
		fmt.Printf("  - %s\n", rec)
	}

	fmt.Printf("\n%s\n", colorInfo("Advanced risk"))
	printSubAssessment("Behavioral", assessment.Behavioral)
	printSubAssessment("Geopolitical", assessment.Geopolitical)
	printSubAssessment("Supply chain", assessment.SupplyChain)
	printSubAssessment("ML-enhanced", assessment.MLEnhanced.SubAssessment)
	fmt.Printf("  ML confidence: %.2f\n", assessment.MLEnhanced.Confidence)
	fmt.Printf("  Overall: %.2f (%s)\n", assessment.OverallScore, formatLevel(assessment.OverallLevel))

	for _, rec := range assessment.Recommendations {
		fmt.Printf("\n  [%s/%s] %s\n", rec.Category, rec.Priority, rec.Headline)
		for _, action := range rec.Actions {
			fmt.Printf("    - %s\n", action)
		}
	}
}

func printSubAssessment(name string, sub risk.SubAssessment) {
	fmt.Printf("  %-13s %.2f (%s)\n", name+":", sub.Score, formatLevel(sub.RiskLevel))
	for _, factor := range sub.RiskFactors {
		fmt.Printf("    %s %s\n", colorWarn("!"), factor)
	}
}

func init() {
	// baseline attributes
	assessCmd.Flags().StringSlice("tools", nil, "deployed security tools")
	assessCmd.Flags().String("gaps", "", "comma-separated security gaps")
	assessCmd.Flags().StringSlice("standards", nil, "adopted compliance standards")
	assessCmd.Flags().String("last-audit", "", "last audit date (YYYY-MM-DD)")
	assessCmd.Flags().String("breaches", "", `known data breaches ("None reported" for a clean history)`)

	// vendor context
	assessCmd.Flags().String("industry", "", "vendor industry")
	assessCmd.Flags().String("employees", "", "employee-count bucket (e.g. 1-50, 51-200)")
	assessCmd.Flags().StringSlice("data", nil, "sensitive data categories processed")
	assessCmd.Flags().StringSlice("frameworks", nil, "compliance frameworks in place")
	assessCmd.Flags().String("country", "", "vendor country")
	assessCmd.Flags().String("region", "", "vendor region")
	assessCmd.Flags().Int("alternatives", 0, "number of known alternative vendors")
	assessCmd.Flags().String("revenue", "", "revenue bucket (e.g. <1M, 1M-10M)")

	// intelligence input
	assessCmd.Flags().String("intel", "", "path to a saved intelligence record")
	assessCmd.Flags().String("domain", "", "use the latest saved record for this domain")

	assessCmd.Flags().Bool("json", false, "print the assessment as JSON")
}
