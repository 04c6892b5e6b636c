// ABOUTME: Operator CLI for campus-gateway account and approval management
// ABOUTME: Talks HTTP to the gateway and caches the session locally between invocations

package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/AtharvGangwar48/campus-gateway/internal/auth"
	"github.com/AtharvGangwar48/campus-gateway/internal/clientcache"
	"github.com/AtharvGangwar48/campus-gateway/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	baseURL := os.Getenv("CAMPUS_GATEWAY_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	cli := &client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		cache:   clientcache.New(clientcache.DefaultPath()),
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "login":
		err = cli.login(args)
	case "whoami":
		err = cli.whoami()
	case "logout":
		err = cli.logout()
	case "universities":
		err = cli.universities(args)
	case "approve":
		err = cli.updateStatus(args, "approve")
	case "reject":
		err = cli.updateStatus(args, "reject")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: campus-admin <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  login <strategy>        Log in (admin, university, spoc, student, faculty)")
	fmt.Println("  whoami                  Show the cached identity")
	fmt.Println("  logout                  Log out and clear the cached session")
	fmt.Println("  universities [status]   List universities (admin only)")
	fmt.Println("  approve <id>            Approve a pending university (admin only)")
	fmt.Println("  reject <id>             Reject a university (admin only)")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  CAMPUS_GATEWAY_URL      Gateway base URL (default http://localhost:8080)")
}

type client struct {
	baseURL string
	http    *http.Client
	cache   *clientcache.Cache
}

// loginFields maps each strategy to the fields it prompts for
var loginFields = map[string][]string{
	"admin":      {"passcode"},
	"university": {"username", "password"},
	"spoc":       {"username", "password"},
	"student":    {"username", "password"},
	"faculty":    {"employeeId", "password"},
}

func (c *client) login(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: campus-admin login <strategy>")
	}
	strategy := args[0]

	fields, ok := loginFields[strategy]
	if !ok {
		return fmt.Errorf("unknown strategy %q", strategy)
	}

	reader := bufio.NewReader(os.Stdin)
	body := map[string]string{}
	for _, field := range fields {
		fmt.Printf("%s: ", field)
		value, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading %s: %w", field, err)
		}
		body[field] = strings.TrimSpace(value)
	}

	var resp struct {
		Identity   auth.Identity     `json:"identity"`
		Token      string            `json:"token"`
		University *store.University `json:"university,omitempty"`
	}
	if err := c.post("/auth/"+strategy+"/login", body, "", &resp); err != nil {
		return err
	}

	entry := &clientcache.Entry{
		Identity:   resp.Identity,
		Token:      resp.Token,
		University: resp.University,
	}
	if err := c.cache.Save(entry); err != nil {
		return fmt.Errorf("saving session cache: %w", err)
	}

	color.Green("Logged in as %s (%s)", resp.Identity.DisplayKey, resp.Identity.Role)
	return nil
}

func (c *client) whoami() error {
	entry, err := c.cache.Load()
	if err != nil {
		return err
	}
	if entry == nil {
		fmt.Println("Not logged in.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%s\n", entry.Identity.ID)
	fmt.Fprintf(w, "Role:\t%s\n", entry.Identity.Role)
	fmt.Fprintf(w, "Key:\t%s\n", entry.Identity.DisplayKey)
	if entry.Identity.UniversityID != "" {
		fmt.Fprintf(w, "University:\t%s\n", entry.Identity.UniversityID)
	}
	if entry.Identity.ProgramID != "" {
		fmt.Fprintf(w, "Program:\t%s\n", entry.Identity.ProgramID)
	}
	if entry.University != nil {
		fmt.Fprintf(w, "University name:\t%s\n", entry.University.Name)
		fmt.Fprintf(w, "University status:\t%s\n", entry.University.Status)
	}
	return w.Flush()
}

func (c *client) logout() error {
	// Best effort against the server; the local cache is what matters
	_ = c.post("/auth/logout", nil, "", nil)

	if err := c.cache.Clear(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func (c *client) universities(args []string) error {
	token, err := c.token()
	if err != nil {
		return err
	}

	path := "/universities"
	if len(args) > 0 {
		path += "?status=" + args[0]
	}

	var universities []*store.University
	if err := c.get(path, token, &universities); err != nil {
		return err
	}

	if len(universities) == 0 {
		fmt.Println("No universities found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tNAME\tSTATUS")
	for _, u := range universities {
		status := string(u.Status)
		switch u.Status {
		case store.UniversityStatusApproved:
			status = color.GreenString(status)
		case store.UniversityStatusPending:
			status = color.YellowString(status)
		case store.UniversityStatusRejected:
			status = color.RedString(status)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Name, status)
	}
	return w.Flush()
}

func (c *client) updateStatus(args []string, action string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: campus-admin %s <university-id>", action)
	}

	token, err := c.token()
	if err != nil {
		return err
	}

	var resp map[string]string
	if err := c.post("/universities/"+args[0]+"/"+action, nil, token, &resp); err != nil {
		return err
	}

	color.Green("University %s is now %s", resp["id"], resp["status"])
	return nil
}

// token returns the cached session token or an instruction to log in
func (c *client) token() (string, error) {
	entry, err := c.cache.Load()
	if err != nil {
		return "", err
	}
	if entry == nil || entry.Token == "" {
		return "", fmt.Errorf("not logged in, run: campus-admin login admin")
	}
	return entry.Token, nil
}

func (c *client) get(path, token string, out any) error {
	return c.do(http.MethodGet, path, nil, token, out)
}

func (c *client) post(path string, body any, token string, out any) error {
	return c.do(http.MethodPost, path, body, token, out)
}

func (c *client) do(method, path string, body any, token string, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s (%d)", apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
