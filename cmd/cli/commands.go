package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(bracketsCmd)
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(leaveCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List the registered users",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/users")
	},
}

var bracketsCmd = &cobra.Command{
	Use:   "brackets",
	Short: "List the configured brackets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/brackets")
	},
}

var joinCmd = &cobra.Command{
	Use:   "join <userID> <bracketID>",
	Short: "Join a bracket's waiting queue",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/queue/join", args[0], args[1])
	},
}

var leaveCmd = &cobra.Command{
	Use:   "leave <userID> <bracketID>",
	Short: "Leave a bracket's waiting queue",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/queue/leave", args[0], args[1])
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint, userID, bracketID string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	body := fmt.Sprintf(`{"userID":%q,"bracketID":%q}`, userID, bracketID)
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
