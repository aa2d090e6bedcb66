// Package export renders health reports and batch results for people and
// downstream tools: plain text, JSON, XLSX and Parquet.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/gyeh/healthrisk/internal/model"
)

const (
	rule = 80
	// Disclaimer closes every text report.
	Disclaimer = "DISCLAIMER: This is an automated risk assessment, not a medical diagnosis.\n   Consult healthcare professionals for medical advice and diagnosis."
)

// WriteText renders r as the human-readable report.
func WriteText(w io.Writer, r *model.HealthReport) error {
	var b strings.Builder
	heavy := strings.Repeat("=", rule)
	light := strings.Repeat("-", rule)

	fmt.Fprintf(&b, "\n%s\n%s\n%s\n", heavy, center("COMPREHENSIVE HEALTH ASSESSMENT REPORT", rule), heavy)
	fmt.Fprintf(&b, "\nOVERALL HEALTH SCORE: %.1f/100 (Grade: %s)\n", r.HealthScore, r.HealthGrade)
	fmt.Fprintf(&b, "COMPOSITE RISK LEVEL: %.1f%% (%s)\n", r.CompositeRisk, strings.ToUpper(string(r.RiskLevel)))

	fmt.Fprintf(&b, "\n%s\nINDIVIDUAL HEALTH RISK BREAKDOWN:\n%s\n", light, light)
	for _, ci := range model.AllConditions {
		rs := r.Risk(ci.Condition)
		fmt.Fprintf(&b, "  %-22s %6.1f%%  [%s]\n", ci.Label+" Risk:", rs.Score, strings.ToUpper(string(rs.Level)))
	}

	fmt.Fprintf(&b, "\n%s\nRISK WEIGHTING FACTORS:\n%s\n", light, light)
	for _, ci := range model.AllConditions {
		fmt.Fprintf(&b, "  %-15s %.0f%%\n", ci.Label+":", r.WeightsUsed[ci.Condition]*100)
	}

	fmt.Fprintf(&b, "\n%s\nPERSONALIZED HEALTH RECOMMENDATIONS:\n%s\n", light, light)
	for _, line := range r.Recommendations {
		fmt.Fprintf(&b, "  %s\n", line)
	}

	fmt.Fprintf(&b, "\n%s\n%s\n%s\n", heavy, Disclaimer, heavy)

	_, err := io.WriteString(w, b.String())
	return err
}

func center(s string, width int) string {
	pad := (width - len(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}
