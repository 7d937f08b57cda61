// cmd/navctl/locations/locations.go

package locations

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"
)

const (
	apiURLFlag = "api-url"
	tokenFlag  = "token"
	outFlag    = "out"
	fileFlag   = "file"
)

var exportFlags = map[string]cobraflags.Flag{
	apiURLFlag: &cobraflags.StringFlag{
		Name:  apiURLFlag,
		Value: "http://localhost:8080",
		Usage: "Base URL of the campus navigator API",
	},
	outFlag: &cobraflags.StringFlag{
		Name:  outFlag,
		Value: "",
		Usage: "Output file (defaults to the server-suggested filename)",
	},
}

var importFlags = map[string]cobraflags.Flag{
	apiURLFlag: &cobraflags.StringFlag{
		Name:  apiURLFlag,
		Value: "http://localhost:8080",
		Usage: "Base URL of the campus navigator API",
	},
	tokenFlag: &cobraflags.StringFlag{
		Name:  tokenFlag,
		Value: "",
		Usage: "Admin bearer token (required)",
	},
	fileFlag: &cobraflags.StringFlag{
		Name:  fileFlag,
		Value: "",
		Usage: "JSON file to import (required)",
	},
}

// NewExportCommand builds the export subcommand.
func NewExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the full location list as JSON",
		RunE:  runExport,
	}
	cobraflags.RegisterMap(cmd, exportFlags)
	return cmd
}

// NewImportCommand builds the import subcommand.
func NewImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Upload a JSON location list, creating each record",
		RunE:  runImport,
	}
	cobraflags.RegisterMap(cmd, importFlags)
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	apiURL := exportFlags[apiURLFlag].GetString()
	out := exportFlags[outFlag].GetString()

	client := &http.Client{Timeout: 30 * time.Second}

	resp, err := client.Get(apiURL + "/api/v1/locations/export")
	if err != nil {
		return fmt.Errorf("export request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	if out == "" {
		out = "locations.json"
	}

	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", out, err)
	}
	defer file.Close()

	n, err := io.Copy(file, resp.Body)
	if err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	fmt.Printf("Exported %d bytes to %s\n", n, out)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	apiURL := importFlags[apiURLFlag].GetString()
	token := importFlags[tokenFlag].GetString()
	path := importFlags[fileFlag].GetString()

	if token == "" {
		return fmt.Errorf("--token is required")
	}
	if path == "" {
		return fmt.Errorf("--file is required")
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer file.Close()

	req, err := http.NewRequest(http.MethodPost, apiURL+"/api/v1/locations/import", file)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{Timeout: 5 * time.Minute}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("import request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	var report struct {
		Created int `json:"created"`
		Skipped int `json:"skipped"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
		return fmt.Errorf("unreadable import report: %w", err)
	}

	fmt.Printf("Imported %d locations (%d skipped)\n", report.Created, report.Skipped)
	return nil
}

func apiError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return fmt.Errorf("server returned %s: %s", resp.Status, body.Error)
	}
	return fmt.Errorf("server returned %s", resp.Status)
}
