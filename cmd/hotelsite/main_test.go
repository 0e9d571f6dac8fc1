package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-hotelsite/internal/config"
	"github.com/goliatone/go-hotelsite/pkg/content"
	"github.com/goliatone/go-hotelsite/pkg/forms"
	"github.com/goliatone/go-hotelsite/pkg/orchestrator"
	"github.com/goliatone/go-hotelsite/pkg/renderers/tui"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writePayload(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "hotelsite version dev (build: unknown)\n", out)
}

func TestCheckValidReservation(t *testing.T) {
	path := writePayload(t, "reservation.yaml", `
checkIn: 2099-06-10
checkOut: 2099-06-13
roomType: deluxe
adults: 2
children: 0
firstName: Ayesha
lastName: Rahman
email: ayesha@example.com
terms: true
`)
	out, err := execute(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "reservation form")
	assert.Contains(t, out, "payload is valid")
}

func TestCheckReportsErrors(t *testing.T) {
	path := writePayload(t, "contact.json", `{"name": "Karim", "email": "nope", "phone": "call me"}`)

	out, err := execute(t, "check", "--form", "contact", path)
	require.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "email: Invalid format")
	assert.Contains(t, out, "message: This field is required")
	assert.Contains(t, out, "phone: Enter a valid phone number")
	assert.Contains(t, out, "3 problem(s)")
}

func TestCheckJSONReport(t *testing.T) {
	path := writePayload(t, "reservation.yaml", `
checkIn: 2099-06-10
checkOut: 2099-06-09
roomType: penthouse
adults: 9
firstName: Ayesha
lastName: Rahman
email: ayesha@example.com
terms: "on"
`)
	out, err := execute(t, "check", "--json", path)
	require.ErrorIs(t, err, errReported)

	var report checkReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.False(t, report.Valid)
	assert.Equal(t, map[string]string{
		"checkOut": "Check-out must be after check-in",
		"roomType": "Invalid value",
		"adults":   "Invalid value",
	}, report.Errors)
}

func TestCheckFailures(t *testing.T) {
	path := writePayload(t, "payload.yaml", "email: guest@example.com\n")

	_, err := execute(t, "check", "--form", "careers", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown form "careers"`)

	_, err = execute(t, "check", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	nested := writePayload(t, "nested.yaml", "email:\n  primary: guest@example.com\n")
	_, err = execute(t, "check", "--form", "newsletter", nested)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a scalar")

	_, err = execute(t, "check")
	require.Error(t, err)
}

type scriptedDriver struct {
	answers map[string]string
}

func (d scriptedDriver) answer(message string) (string, error) {
	key := strings.TrimSuffix(message, " *")
	value, ok := d.answers[key]
	if !ok {
		return "", errors.New("unexpected prompt " + key)
	}
	return value, nil
}

func (d scriptedDriver) Input(_ context.Context, cfg tui.InputConfig) (string, error) {
	return d.answer(cfg.Message)
}

func (d scriptedDriver) Confirm(_ context.Context, cfg tui.ConfirmConfig) (bool, error) {
	v, err := d.answer(cfg.Message)
	return v == "yes", err
}

func (d scriptedDriver) Select(_ context.Context, cfg tui.SelectConfig) (int, error) {
	v, err := d.answer(cfg.Message)
	for i, option := range cfg.Options {
		if option == v {
			return i, err
		}
	}
	return -1, err
}

func (d scriptedDriver) TextArea(_ context.Context, cfg tui.TextAreaConfig) (string, error) {
	return d.answer(cfg.Message)
}

func (d scriptedDriver) Info(context.Context, string) error { return nil }

func TestReserveNewsletter(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)

	driver := scriptedDriver{answers: map[string]string{"Email address": "guest@example.com"}}
	err := runReserve(cmd, reserveOptions{form: "newsletter", output: "json", attempts: 3}, driver)
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &payload))
	assert.Equal(t, "newsletter", payload["form"])
	assert.Equal(t, map[string]any{"email": "guest@example.com"}, payload["values"])
}

func TestReservePrefill(t *testing.T) {
	prefill := writePayload(t, "prefill.yaml", "name: Karim\nemail: karim@example.com\n")
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})

	driver := scriptedDriver{answers: map[string]string{
		"Your name":     "Karim",
		"Email address": "karim@example.com",
		"Phone number":  "",
		"Subject":       "Feedback",
		"Your message":  "Lovely stay.",
	}}
	err := runReserve(cmd, reserveOptions{form: "contact", output: "form", prefill: prefill, attempts: 1}, driver)
	require.NoError(t, err)
	assert.Equal(t, "email=karim%40example.com&message=Lovely+stay.&name=Karim&phone=&subject=feedback", out.String())
}

func TestReserveRejectsUnknownFormat(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	err := runReserve(cmd, reserveOptions{form: "contact", output: "xml"}, scriptedDriver{})
	require.Error(t, err)
}

func TestPagePipelineMarksCanonicalAndErrorPages(t *testing.T) {
	cfg := config.Defaults()
	cfg.PublicURL = "https://uttarahotel.example"
	store := content.NewStore(content.MustDefault())

	pages, err := pagePipeline(cfg, store, forms.SiteForms(store))
	require.NoError(t, err)

	out, err := pages.Generate(context.Background(), orchestrator.Request{Page: orchestrator.PageDining, Path: "/dining"})
	require.NoError(t, err)
	assert.Contains(t, string(out.Body), `<link rel="canonical" href="https://uttarahotel.example/dining">`)
	assert.NotContains(t, string(out.Body), `name="robots"`)

	out, err = pages.Generate(context.Background(), orchestrator.Request{Page: orchestrator.PageNotFound, Path: "/nope"})
	require.NoError(t, err)
	assert.Contains(t, string(out.Body), `<meta name="robots" content="noindex">`)
	assert.NotContains(t, string(out.Body), `rel="canonical"`)
}
