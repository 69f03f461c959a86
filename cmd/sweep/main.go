// Command sweep triggers one reminder sweep on a running server, the way an
// external cron would.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"collabnote-be/internal/dto"
	"collabnote-be/internal/pkg/serverutils"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	baseURL := flag.String("url", envOr("APP_BASE_URL", "http://localhost:3000"), "server base URL")
	timeout := flag.Duration("timeout", time.Minute, "request timeout")
	flag.Parse()

	secret := os.Getenv("CRON_SECRET")
	if secret == "" {
		color.Red("CRON_SECRET is not set")
		os.Exit(1)
	}

	endpoint := strings.TrimRight(*baseURL, "/") + "/api/reminders/check"
	color.Cyan("Triggering reminder sweep at %s", endpoint)

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	req.Header.Set("Authorization", "Bearer "+secret)

	client := &http.Client{Timeout: *timeout}
	resp, err := client.Do(req)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		color.Red("Status: %s", resp.Status)
		fmt.Println(string(body))
		os.Exit(1)
	}

	var out serverutils.Response[dto.SweepResponse]
	if err := json.Unmarshal(body, &out); err != nil {
		color.Red("Unexpected response: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	color.Green("due=%d sent=%d deliveries=%d failures=%d pruned=%d",
		out.Data.Due, out.Data.Sent, out.Data.Deliveries, out.Data.Failures, out.Data.Pruned)
	if out.Data.Failures > 0 {
		color.Yellow("%d deliveries failed, see server logs", out.Data.Failures)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
