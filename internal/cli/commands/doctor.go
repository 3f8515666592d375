package commands

import (
	"context"
	"fmt"
	"net"
	"slices"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leapstack-labs/launchdash/internal/cli/config"
	"github.com/leapstack-labs/launchdash/internal/cli/output"
	"github.com/leapstack-labs/launchdash/internal/dashboard"
	"github.com/leapstack-labs/launchdash/internal/dataset"
	"github.com/spf13/cobra"
)

// Health check statuses.
const (
	statusPass  = "pass"
	statusWarn  = "warn"
	statusError = "error"
)

// NewDoctorCommand creates the doctor command.
func NewDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the launch records file and dashboard settings",
		Long: `Check that the dashboard can start and will show sensible charts.

The doctor command loads the launch records file and inspects the
configuration, then reports:
- Dataset summary (records, sites, payload extent)
- Health checks grouped by category (Data, Config)
- Health score (0-100)
- Actionable recommendations

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Markdown format
  - JSON/YAML: use --output`,
		Example: `  # Run health check
  launchdash doctor

  # Output as JSON
  launchdash doctor -o json`,
		Args: cobra.NoArgs,
		RunE: runDoctor,
	}
}

// DoctorOutput is the machine-readable result of the doctor command.
type DoctorOutput struct {
	Summary         DatasetSummary `json:"summary" yaml:"summary"`
	HealthChecks    []HealthCheck  `json:"health_checks" yaml:"health_checks"`
	Score           int            `json:"score" yaml:"score"`
	Recommendations []string       `json:"recommendations" yaml:"recommendations"`
	IssueCount      int            `json:"issue_count" yaml:"issue_count"`
}

// DatasetSummary describes the loaded launch records.
type DatasetSummary struct {
	DataPath   string  `json:"data_path" yaml:"data_path"`
	Records    int     `json:"records" yaml:"records"`
	Sites      int     `json:"sites" yaml:"sites"`
	MinPayload float64 `json:"min_payload_kg" yaml:"min_payload_kg"`
	MaxPayload float64 `json:"max_payload_kg" yaml:"max_payload_kg"`
}

// HealthCheck is the result of a single check.
type HealthCheck struct {
	RuleID     string   `json:"rule_id" yaml:"rule_id"`
	Name       string   `json:"name" yaml:"name"`
	Group      string   `json:"group" yaml:"group"`
	Status     string   `json:"status" yaml:"status"`
	IssueCount int      `json:"issue_count" yaml:"issue_count"`
	Details    []string `json:"details,omitempty" yaml:"details,omitempty"`
}

// DoctorFailedError is returned when at least one check has error status.
type DoctorFailedError struct {
	Failed int
}

func (e *DoctorFailedError) Error() string {
	return fmt.Sprintf("%d health check(s) failed", e.Failed)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	cmdCtx := NewCommandContext(cmd)
	out := diagnose(cmd.Context(), cmdCtx.Cfg)

	r := cmdCtx.Renderer
	var err error
	switch r.EffectiveMode() {
	case output.ModeJSON:
		err = r.JSON(out)
	case output.ModeYAML:
		err = r.YAML(out)
	case output.ModeMarkdown:
		renderDoctorMarkdown(r, out)
	default:
		renderDoctorText(r, out)
	}
	if err != nil {
		return err
	}

	failed := 0
	for _, check := range out.HealthChecks {
		if check.Status == statusError {
			failed++
		}
	}
	if failed > 0 {
		return &DoctorFailedError{Failed: failed}
	}
	return nil
}

func diagnose(ctx context.Context, cfg *config.Config) *DoctorOutput {
	var checks []HealthCheck
	summary := DatasetSummary{DataPath: cfg.DataPath}

	ds, err := dataset.Load(ctx, cfg.DataPath)
	if err != nil {
		checks = append(checks, newCheck("DL01", "Launch records load", "data", statusError, []string{err.Error()}))
	} else {
		checks = append(checks, newCheck("DL01", "Launch records load", "data", statusWarn, nil))
		summary.Records = ds.Len()
		summary.Sites = len(ds.Sites())
		summary.MinPayload = ds.MinPayload()
		summary.MaxPayload = ds.MaxPayload()
		checks = append(checks, checkDataset(ds)...)
	}
	checks = append(checks, checkConfig(cfg)...)

	sort.Slice(checks, func(i, j int) bool {
		if checks[i].Group != checks[j].Group {
			return checks[i].Group > checks[j].Group
		}
		return checks[i].RuleID < checks[j].RuleID
	})

	issues := 0
	for _, c := range checks {
		issues += c.IssueCount
	}

	return &DoctorOutput{
		Summary:         summary,
		HealthChecks:    checks,
		Score:           calculateHealthScore(checks),
		Recommendations: generateRecommendations(checks),
		IssueCount:      issues,
	}
}

// newCheck builds a check whose status is failStatus when details is
// non-empty and pass otherwise.
func newCheck(id, name, group, failStatus string, details []string) HealthCheck {
	status := statusPass
	if len(details) > 0 {
		status = failStatus
	}
	return HealthCheck{
		RuleID:     id,
		Name:       name,
		Group:      group,
		Status:     status,
		IssueCount: len(details),
		Details:    details,
	}
}

func checkDataset(ds *dataset.Dataset) []HealthCheck {
	var unknown []string
	for _, site := range ds.Sites() {
		if !slices.Contains(dataset.KnownSites, site) {
			unknown = append(unknown, fmt.Sprintf("%q is not a known launch pad", site))
		}
	}

	var heavy []string
	for _, r := range ds.Records() {
		if r.PayloadMass > dashboard.SliderMax {
			heavy = append(heavy, fmt.Sprintf("%s: %.0f kg", r.Site, r.PayloadMass))
		}
	}

	var noSuccess []string
	for _, s := range dataset.Summarize(ds.Records()) {
		if s.Successes == 0 {
			noSuccess = append(noSuccess, fmt.Sprintf("%s: 0 of %d launches succeeded", s.Site, s.Launches))
		}
	}

	return []HealthCheck{
		newCheck("DL02", "Sites outside the known launch pads", "data", statusWarn, unknown),
		newCheck("DL03", "Payloads beyond the slider range", "data", statusWarn, heavy),
		newCheck("DL04", "Sites without a successful launch", "data", statusWarn, noSuccess),
	}
}

func checkConfig(cfg *config.Config) []HealthCheck {
	ui := cfg.GetUIConfig()

	var secret []string
	if ui.SessionSecret == config.DefaultSessionSecret {
		secret = append(secret, "ui.session_secret is the built-in default")
	}

	var listen []string
	addr := net.JoinHostPort(ui.Host, strconv.Itoa(ui.Port))
	if ln, err := net.Listen("tcp", addr); err != nil {
		listen = append(listen, err.Error())
	} else {
		_ = ln.Close()
	}

	return []HealthCheck{
		newCheck("CF01", "Session secret", "config", statusWarn, secret),
		newCheck("CF02", "Listen address available", "config", statusError, listen),
	}
}

// calculateHealthScore starts at 100 and takes 5 points per warning and 20
// per error, clamped to 0.
func calculateHealthScore(checks []HealthCheck) int {
	score := 100
	for _, check := range checks {
		switch check.Status {
		case statusError:
			score -= 20 * check.IssueCount
		case statusWarn:
			score -= 5 * check.IssueCount
		}
	}
	return max(score, 0)
}

func generateRecommendations(checks []HealthCheck) []string {
	var recommendations []string
	for _, check := range checks {
		if check.IssueCount == 0 {
			continue
		}
		if rec := getRecommendation(check.RuleID); rec != "" {
			recommendations = append(recommendations, rec)
		}
	}
	return recommendations
}

func getRecommendation(ruleID string) string {
	switch ruleID {
	case "DL01":
		return "Fix the launch records file or point --data at a valid CSV"
	case "DL02":
		return "Check the site names; unknown sites are appended to the dropdown"
	case "DL03":
		return fmt.Sprintf("Payloads above %d kg are only reachable with the CLI --max-payload flag", dashboard.SliderMax)
	case "DL04":
		return "Expect a single-slice pie chart for sites without successes"
	case "CF01":
		return "Set ui.session_secret or LAUNCHDASH_UI__SESSION_SECRET before exposing the dashboard"
	case "CF02":
		return "Choose a free --port or stop the process holding it"
	default:
		return ""
	}
}

func renderDoctorText(r *output.Renderer, out *DoctorOutput) {
	styles := r.Styles()

	r.Println("")
	r.Println(styles.Header1.Render("Launch Dashboard Health Report"))
	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	r.Println("")

	r.Println(styles.Header2.Render("Dataset Summary"))
	r.Printf("   File: %s\n", out.Summary.DataPath)
	r.Printf("   Records: %d | Sites: %d | Payload: %.0f-%.0f kg\n",
		out.Summary.Records, out.Summary.Sites, out.Summary.MinPayload, out.Summary.MaxPayload)
	r.Println("")

	r.Println(styles.Header2.Render("Health Checks"))
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println(styles.Bold.Render("   " + titleCaser.String(currentGroup)))
			r.Println(styles.Muted.Render("   " + strings.Repeat("-", 40)))
		}

		icon := styles.Success.Render("✓")
		switch check.Status {
		case statusWarn:
			icon = styles.Warning.Render("!")
		case statusError:
			icon = styles.Error.Render("✗")
		}

		status := fmt.Sprintf("%s %s: %s", icon, check.RuleID, check.Name)
		if check.IssueCount > 0 {
			status += fmt.Sprintf(" (%d issues)", check.IssueCount)
		}
		r.Println("   " + status)

		for i, detail := range check.Details {
			if i >= 3 {
				r.Println(styles.Muted.Render(fmt.Sprintf("       ... and %d more", len(check.Details)-3)))
				break
			}
			r.Println(styles.Muted.Render("       - " + detail))
		}
	}
	r.Println("")

	r.Println(styles.Muted.Render(strings.Repeat("=", 55)))
	scoreStyle := styles.Success
	if out.Score < 70 {
		scoreStyle = styles.Warning
	}
	if out.Score < 50 {
		scoreStyle = styles.Error
	}
	r.Printf("   Health Score: %s\n", scoreStyle.Render(fmt.Sprintf("%d/100", out.Score)))
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println(styles.Header2.Render("Recommendations"))
		for i, rec := range out.Recommendations {
			r.Printf("   %d. %s\n", i+1, rec)
		}
		r.Println("")
	}
}

func renderDoctorMarkdown(r *output.Renderer, out *DoctorOutput) {
	r.Println("# Launch Dashboard Health Report")
	r.Println("")

	r.Println("## Dataset Summary")
	r.Println("")
	r.Println(output.FormatKeyValue("File", out.Summary.DataPath))
	r.Println(output.FormatKeyValue("Records", strconv.Itoa(out.Summary.Records)))
	r.Println(output.FormatKeyValue("Sites", strconv.Itoa(out.Summary.Sites)))
	r.Println(output.FormatKeyValue("Payload", fmt.Sprintf("%.0f-%.0f kg", out.Summary.MinPayload, out.Summary.MaxPayload)))
	r.Println("")

	r.Println("## Health Checks")
	r.Println("")

	currentGroup := ""
	titleCaser := cases.Title(language.English)
	for _, check := range out.HealthChecks {
		if check.Group != currentGroup {
			currentGroup = check.Group
			r.Println("### " + titleCaser.String(currentGroup))
			r.Println("")
		}

		line := fmt.Sprintf("- **[%s]** %s: %s", strings.ToUpper(check.Status), check.RuleID, check.Name)
		if check.IssueCount > 0 {
			line += fmt.Sprintf(" (%d issues)", check.IssueCount)
		}
		r.Println(line)
		for _, detail := range check.Details {
			r.Printf("  - %s\n", detail)
		}
	}
	r.Println("")

	r.Println("## Health Score")
	r.Println("")
	r.Printf("**%d/100**\n", out.Score)
	r.Println("")

	if len(out.Recommendations) > 0 {
		r.Println("## Recommendations")
		r.Println("")
		for i, rec := range out.Recommendations {
			r.Printf("%d. %s\n", i+1, rec)
		}
		r.Println("")
	}
}
