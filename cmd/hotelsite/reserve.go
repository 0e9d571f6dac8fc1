package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-hotelsite/internal/logging"
	"github.com/goliatone/go-hotelsite/pkg/forms"
	"github.com/goliatone/go-hotelsite/pkg/notify"
	"github.com/goliatone/go-hotelsite/pkg/renderers/tui"
)

type reserveOptions struct {
	form       string
	contentDir string
	output     string
	prefill    string
	attempts   int
}

func reserveCmd() *cobra.Command {
	opts := reserveOptions{}
	cmd := &cobra.Command{
		Use:   "reserve",
		Short: "Fill in a site form interactively",
		Long: `reserve asks for every field of a site form in the terminal, checking
each answer with the same rules the site uses, and prints the accepted
submission.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReserve(cmd, opts, nil)
		},
	}
	cmd.Flags().StringVarP(&opts.form, "form", "f", forms.ReservationForm, "Form name (contact, reservation, newsletter)")
	cmd.Flags().StringVar(&opts.contentDir, "content-dir", "", "Directory holding site.yaml; embedded content when empty")
	cmd.Flags().StringVarP(&opts.output, "output", "o", string(tui.OutputFormatPrettyText), "Output format (json, form, pretty)")
	cmd.Flags().StringVar(&opts.prefill, "prefill", "", "YAML or JSON file with default answers")
	cmd.Flags().IntVar(&opts.attempts, "attempts", 3, "Attempts per field before giving up")
	return cmd
}

// runReserve drives the prompts. driver overrides the terminal prompts.
func runReserve(cmd *cobra.Command, opts reserveOptions, driver tui.PromptDriver) error {
	format, ok := tui.ParseOutputFormat(opts.output)
	if !ok {
		return fmt.Errorf("unknown output format %q", opts.output)
	}
	site, err := loadSite(opts.contentDir)
	if err != nil {
		return err
	}
	src := forms.Static(site)

	logger, err := logging.New(cmd.ErrOrStderr(), "warn", logging.FormatText)
	if err != nil {
		return err
	}
	form, ok := forms.SiteForms(src, forms.WithLogger(logger)).Lookup(opts.form)
	if !ok {
		return fmt.Errorf("unknown form %q", opts.form)
	}

	prefill := map[string]string{}
	if opts.prefill != "" {
		if prefill, err = readPayload(opts.prefill); err != nil {
			return err
		}
	}

	st := newStyles(cmd.ErrOrStderr())
	renderer := tui.New(
		tui.WithPromptDriver(driver),
		tui.WithOutput(cmd.ErrOrStderr()),
		tui.WithOutputFormat(format),
		tui.WithPrompts(tui.SitePrompts(src)),
		tui.WithMaxAttempts(opts.attempts),
		tui.WithTheme(tui.Theme{
			InfoPrefix:  st.ok.Render("✓") + " ",
			ErrorPrefix: st.bad.Render("✗") + " ",
		}),
	)

	surface := notify.NewSurface(notify.WithLogger(logger))
	defer surface.Unmount()

	res, _, err := renderer.Submit(cmd.Context(), form, surface.Broadcaster(), form.NewValidator(), prefill)
	if err != nil {
		return err
	}
	payload, err := renderer.Encode(res)
	if err != nil {
		return err
	}
	return writeAll(cmd.OutOrStdout(), payload)
}

func writeAll(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}
