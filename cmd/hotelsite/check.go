package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-hotelsite/pkg/content"
	"github.com/goliatone/go-hotelsite/pkg/forms"
)

type checkOptions struct {
	form       string
	contentDir string
	json       bool
}

// checkReport is the machine-readable result of a check.
type checkReport struct {
	Form       string            `json:"form"`
	Valid      bool              `json:"valid"`
	Errors     map[string]string `json:"errors"`
	FormErrors []string          `json:"formErrors,omitempty"`
}

func checkCmd() *cobra.Command {
	opts := checkOptions{}
	cmd := &cobra.Command{
		Use:   "check <payload.yaml|payload.json>",
		Short: "Validate a form payload offline",
		Long: `check validates a YAML or JSON payload against the rules of one of the
site's forms and prints the error map. It exits non-zero when the payload
fails validation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.form, "form", "f", forms.ReservationForm, "Form name (contact, reservation, newsletter)")
	cmd.Flags().StringVar(&opts.contentDir, "content-dir", "", "Directory holding site.yaml; embedded content when empty")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the report as JSON")
	return cmd
}

func runCheck(out io.Writer, path string, opts checkOptions) error {
	site, err := loadSite(opts.contentDir)
	if err != nil {
		return err
	}
	form, ok := forms.SiteForms(forms.Static(site)).Lookup(opts.form)
	if !ok {
		return fmt.Errorf("unknown form %q", opts.form)
	}
	values, err := readPayload(path)
	if err != nil {
		return err
	}

	v := form.NewValidator()
	formErrors := form.Validate(v, form.Normalize(values))
	report := checkReport{
		Form:       form.Name,
		Valid:      !v.HasErrors() && len(formErrors) == 0,
		Errors:     v.Errors(),
		FormErrors: formErrors,
	}

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printReport(out, path, report)
	}
	if !report.Valid {
		return errReported
	}
	return nil
}

func printReport(out io.Writer, path string, report checkReport) {
	st := newStyles(out)
	fmt.Fprintln(out, st.title.Render(fmt.Sprintf("%s form: %s", report.Form, path)))
	if report.Valid {
		fmt.Fprintln(out, st.ok.Render("✓ payload is valid"))
		return
	}
	for _, name := range slices.Sorted(maps.Keys(report.Errors)) {
		fmt.Fprintf(out, "%s %s %s\n", st.bad.Render("✗"), st.field.Render(name+":"), report.Errors[name])
	}
	for _, msg := range report.FormErrors {
		fmt.Fprintf(out, "%s %s\n", st.bad.Render("✗"), msg)
	}
	fmt.Fprintln(out, st.muted.Render(fmt.Sprintf("%d problem(s)", len(report.Errors)+len(report.FormErrors))))
}

func loadSite(dir string) (*content.Site, error) {
	if dir == "" {
		return content.Default()
	}
	site, err := content.Load(os.DirFS(dir), content.DefaultFile)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return site, nil
}

// readPayload decodes a flat YAML or JSON object into form values. Scalars
// keep their source text, so dates and numbers reach the validator as typed.
func readPayload(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	raw := map[string]yaml.Node{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode payload %s: %w", path, err)
	}
	values := make(map[string]string, len(raw))
	for name, node := range raw {
		if node.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("decode payload %s: field %q must be a scalar", path, name)
		}
		if node.ShortTag() == "!!null" {
			values[name] = ""
			continue
		}
		values[name] = node.Value
	}
	return values, nil
}
