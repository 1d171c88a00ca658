package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/Veraticus/crux/internal/analysis"
	"github.com/Veraticus/crux/internal/cli"
	"github.com/Veraticus/crux/internal/common"
	"github.com/Veraticus/crux/internal/config"
	"github.com/Veraticus/crux/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the dashboard to Google Sheets",
		Long: `Write every report section to its own tab of a Google spreadsheet.

The spreadsheet named by sheets.spreadsheet_id is updated in place, or a new
one is created from sheets.spreadsheet_name. Run 'crux export auth' once to
obtain an OAuth2 refresh token, or point sheets.service_account_path at a
service account key.`,
		RunE: runExport,
	}

	cmd.Flags().StringSliceP("months", "m", nil, "months to include")
	cmd.Flags().StringSliceP("weekdays", "w", nil, "weekdays to include")
	cmd.Flags().String("spreadsheet-id", "", "existing spreadsheet to update")

	_ = viper.BindPFlag("sheets.spreadsheet_id", cmd.Flags().Lookup("spreadsheet-id"))

	cmd.AddCommand(exportAuthCmd())

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx, cancel := handler.HandleInterrupts(cmd.Context(), "Export")
	defer cancel()

	sheetsConfig, err := config.LoadSheetsConfig()
	if err != nil {
		if errors.Is(err, common.ErrMissingConfig) {
			return common.NewUserError("Google Sheets is not configured. Run 'crux export auth' or set sheets.service_account_path", err)
		}
		return err
	}

	s, err := loadSession(ctx, stderrIfTerminal())
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	months, _ := cmd.Flags().GetStringSlice("months")
	weekdays, _ := cmd.Flags().GetStringSlice("weekdays")
	sel, err := parseSelection(s.table, s.names, months, weekdays)
	if err != nil {
		return err
	}

	writer, err := sheets.NewWriter(ctx, *sheetsConfig, s.names, slog.Default())
	if err != nil {
		return err
	}

	result, err := writer.Write(ctx, analysis.Build(s.table, sel))
	if err != nil {
		if handler.WasInterrupted() {
			return common.NewUserError("Export interrupted; the spreadsheet may be partially updated", err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Exported %d tabs, %d rows", result.Tabs, result.Rows)))
	fmt.Fprintln(out, cli.FormatInfo(result.URL))
	return nil
}

func exportAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with Google Sheets",
		Long: `Authenticate with Google Sheets using OAuth2.

This command will:
1. Open your browser to authenticate with Google
2. Save the token next to the config file
3. Update your config file with the refresh token`,
		RunE: runExportAuth,
	}

	cmd.Flags().String("client-id", "", "OAuth2 Client ID (overrides config)")
	cmd.Flags().String("client-secret", "", "OAuth2 Client Secret (overrides config)")
	cmd.Flags().String("listen", "localhost:8080", "address of the local callback server")

	return cmd
}

func runExportAuth(cmd *cobra.Command, _ []string) error {
	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx, cancel := handler.HandleInterrupts(cmd.Context(), "Authentication")
	defer cancel()

	clientID := viper.GetString("sheets.client_id")
	clientSecret := viper.GetString("sheets.client_secret")

	if flagID, _ := cmd.Flags().GetString("client-id"); flagID != "" {
		clientID = flagID
	}
	if flagSecret, _ := cmd.Flags().GetString("client-secret"); flagSecret != "" {
		clientSecret = flagSecret
	}

	if clientID == "" {
		clientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if clientSecret == "" {
		clientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}

	if clientID == "" || clientSecret == "" {
		return common.NewUserError(
			"OAuth2 credentials not found. Set sheets.client_id and sheets.client_secret or use --client-id and --client-secret",
			common.ErrMissingConfig)
	}

	listen, _ := cmd.Flags().GetString("listen")
	tokenFile := filepath.Join(config.ConfigDir(), "sheets-token.json")
	slog.Info("Starting Google Sheets authentication", "token_file", tokenFile)

	out := cmd.OutOrStdout()
	token, err := sheets.AuthenticateOAuth2Interactive(ctx, sheets.OAuth2Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenFile:    tokenFile,
		ListenAddr:   listen,
	}, func(url string) {
		fmt.Fprintln(out, cli.FormatInfo("Open this URL to authorize crux:"))
		fmt.Fprintln(out, url)
		openBrowser(url)
	})
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	viper.Set("sheets.refresh_token", token.RefreshToken)

	if err := saveConfig(); err != nil {
		slog.Warn("Failed to update config file with refresh token", "error", err)
		fmt.Fprintln(out, cli.FormatWarning("Could not save the refresh token. Add this to config.yaml:"))
		fmt.Fprintf(out, "sheets:\n  refresh_token: %q\n", token.RefreshToken)
		return nil
	}

	fmt.Fprintln(out, cli.FormatSuccess("Authentication successful. Run 'crux export' to publish the dashboard."))
	return nil
}

func saveConfig() error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = filepath.Join(config.ConfigDir(), "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0750); err != nil {
		return err
	}

	return viper.WriteConfigAs(configFile)
}

// openBrowser tries to open the URL in the default browser.
func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start() //nolint:gosec
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start() //nolint:gosec
	case "darwin":
		err = exec.Command("open", url).Start() //nolint:gosec
	}
	if err != nil {
		slog.Debug("Failed to open browser", "error", err)
	}
}
